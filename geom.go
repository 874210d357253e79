package sgview

import (
	"image"
	"math"
)

// Size is a 2D extent in logical units.
type Size struct {
	Width, Height float64
}

// Sz is a convenience function to create a Size.
func Sz(w, h float64) Size {
	return Size{Width: w, Height: h}
}

// SizeOf converts an integer pixel size to a Size.
func SizeOf(p image.Point) Size {
	return Size{Width: float64(p.X), Height: float64(p.Y)}
}

// IsEmpty reports whether either dimension is zero or negative.
func (s Size) IsEmpty() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Scale returns the size multiplied by f.
func (s Size) Scale(f float64) Size {
	return Size{Width: s.Width * f, Height: s.Height * f}
}

// Ceil rounds both dimensions up to whole pixels.
// Negative dimensions are clamped to zero.
func (s Size) Ceil() image.Point {
	return image.Point{
		X: int(math.Ceil(math.Max(s.Width, 0))),
		Y: int(math.Ceil(math.Max(s.Height, 0))),
	}
}

// Rect is an axis-aligned rectangle with floating point origin and size.
//
// The zero Rect is invalid, which is how an unset crop region is expressed.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// R is a convenience function to create a Rect.
func R(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, Width: w, Height: h}
}

// RectOf returns a rectangle at the origin with the given size.
func RectOf(s Size) Rect {
	return Rect{Width: s.Width, Height: s.Height}
}

// IsValid reports whether the rectangle has positive width and height.
func (r Rect) IsValid() bool {
	return r.Width > 0 && r.Height > 0
}

// Size returns the extent of the rectangle.
func (r Rect) Size() Size {
	return Size{Width: r.Width, Height: r.Height}
}

// Min returns the top-left corner.
func (r Rect) Min() Point {
	return Point{X: r.X, Y: r.Y}
}

// Max returns the bottom-right corner.
func (r Rect) Max() Point {
	return Point{X: r.X + r.Width, Y: r.Y + r.Height}
}

// Intersects reports whether r and o overlap with positive area.
func (r Rect) Intersects(o Rect) bool {
	return r.IsValid() && o.IsValid() &&
		r.X < o.X+o.Width && o.X < r.X+r.Width &&
		r.Y < o.Y+o.Height && o.Y < r.Y+r.Height
}

// Image converts the rectangle to integer pixel bounds, rounding outwards.
func (r Rect) Image() image.Rectangle {
	return image.Rect(
		int(math.Floor(r.X)),
		int(math.Floor(r.Y)),
		int(math.Ceil(r.X+r.Width)),
		int(math.Ceil(r.Y+r.Height)),
	)
}

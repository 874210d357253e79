// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/gogpu/gputypes"
)

// ErrInvalidDimensions is returned when width or height is not positive.
var ErrInvalidDimensions = errors.New("render: invalid dimensions")

// RenderTarget defines where rendering output goes.
type RenderTarget interface {
	// Width returns the target width in pixels.
	Width() int

	// Height returns the target height in pixels.
	Height() int

	// Format returns the pixel format of the target.
	Format() gputypes.TextureFormat

	// Pixels returns direct access to pixel data.
	// For RGBA format, each pixel is 4 bytes: R, G, B, A.
	Pixels() []byte

	// Stride returns the number of bytes per row.
	Stride() int
}

// Buffer is a pixel buffer owned by the caller and lent to a viewport.
//
// The viewport writes frames into Image while it holds the buffer and drops
// its reference on release; it never frees the buffer.
type Buffer interface {
	RenderTarget

	// Image returns the backing image. It shares memory with the buffer.
	Image() *image.RGBA
}

// PixmapTarget is a CPU-backed render target using *image.RGBA.
//
// Example:
//
//	target := render.NewPixmapTarget(800, 600)
//	img := target.Image()
type PixmapTarget struct {
	img *image.RGBA
}

// NewPixmapTarget creates a new CPU-backed render target.
// Negative dimensions are clamped to zero.
func NewPixmapTarget(width, height int) *PixmapTarget {
	return &PixmapTarget{
		img: image.NewRGBA(image.Rect(0, 0, max(width, 0), max(height, 0))),
	}
}

// NewPixmapTargetFromImage wraps an existing *image.RGBA as a render target.
// The image is used directly without copying.
func NewPixmapTargetFromImage(img *image.RGBA) *PixmapTarget {
	return &PixmapTarget{img: img}
}

// NewBuffer allocates a Buffer suitable for an offscreen viewport.
func NewBuffer(width, height int) (*PixmapTarget, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, width, height)
	}
	return NewPixmapTarget(width, height), nil
}

// Width returns the target width in pixels.
func (t *PixmapTarget) Width() int {
	return t.img.Bounds().Dx()
}

// Height returns the target height in pixels.
func (t *PixmapTarget) Height() int {
	return t.img.Bounds().Dy()
}

// Format returns the pixel format (RGBA8).
func (t *PixmapTarget) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}

// Pixels returns direct access to the pixel data.
func (t *PixmapTarget) Pixels() []byte {
	return t.img.Pix
}

// Stride returns the number of bytes per row.
func (t *PixmapTarget) Stride() int {
	return t.img.Stride
}

// Image returns the underlying *image.RGBA.
// The returned image shares memory with the target.
func (t *PixmapTarget) Image() *image.RGBA {
	return t.img
}

// Clear fills the entire target with the given color.
func (t *PixmapTarget) Clear(c color.Color) {
	draw.Draw(t.img, t.img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

// Resize replaces the backing image if the dimensions differ.
// The contents are not preserved. It reports whether a new image was allocated.
func (t *PixmapTarget) Resize(width, height int) bool {
	if t.Width() == width && t.Height() == height {
		return false
	}
	t.img = image.NewRGBA(image.Rect(0, 0, max(width, 0), max(height, 0)))
	return true
}

// Ensure PixmapTarget implements RenderTarget and Buffer.
var (
	_ RenderTarget = (*PixmapTarget)(nil)
	_ Buffer       = (*PixmapTarget)(nil)
)

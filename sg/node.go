// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package sg

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/sgview"
	xdraw "golang.org/x/image/draw"
)

// PaintNode is a retained node that draws an item's content.
type PaintNode interface {
	// Render draws the node. m maps item-local coordinates to dst pixels.
	Render(dst draw.Image, m sgview.Matrix)

	// Release drops the node's resources. Safe to call more than once.
	Release()
}

// DirtyState flags which parts of a node changed since the last frame.
type DirtyState uint8

const (
	// DirtyGeometry marks changed rectangles.
	DirtyGeometry DirtyState = 1 << iota

	// DirtyMaterial marks changed texture or sampling state.
	DirtyMaterial
)

// Filtering selects how a texture is sampled.
type Filtering uint8

const (
	// FilterNone disables the filter. Only meaningful for mipmap filtering.
	FilterNone Filtering = iota

	// FilterNearest samples the closest texel.
	FilterNearest

	// FilterLinear interpolates between neighbouring texels.
	FilterLinear
)

// Mode returns the WebGPU filter mode for f.
// FilterNone maps to nearest; callers check Mipmaps in SamplerState.
func (f Filtering) Mode() gputypes.FilterMode {
	if f == FilterLinear {
		return gputypes.FilterModeLinear
	}
	return gputypes.FilterModeNearest
}

// String returns the filter name.
func (f Filtering) String() string {
	switch f {
	case FilterNone:
		return "none"
	case FilterNearest:
		return "nearest"
	case FilterLinear:
		return "linear"
	default:
		return "unknown"
	}
}

// Anisotropy is the anisotropic filtering level.
type Anisotropy uint8

// Anisotropy levels.
const (
	AnisotropyNone Anisotropy = iota
	Anisotropy2x
	Anisotropy4x
	Anisotropy8x
	Anisotropy16x
)

// Clamp returns the sampler anisotropy clamp (1 when disabled).
func (a Anisotropy) Clamp() uint16 {
	return 1 << a
}

// SamplerState is the sampler a GPU backend creates for an ImageNode.
type SamplerState struct {
	MinFilter     gputypes.FilterMode
	MagFilter     gputypes.FilterMode
	MipmapFilter  gputypes.FilterMode
	Mipmaps       bool
	MaxAnisotropy uint16
}

// ImageNode samples a region of a texture into a destination rectangle.
type ImageNode struct {
	texture     Texture
	ownsTexture bool
	sourceRect  sgview.Rect
	rect        sgview.Rect
	filtering   Filtering
	mipmap      Filtering
	anisotropy  Anisotropy
	dirty       DirtyState
	released    bool
}

// NewImageNode creates an image node that samples with nearest filtering.
// Most code should use Window.CreateImageNode.
func NewImageNode() *ImageNode {
	return &ImageNode{filtering: FilterNearest}
}

// SetTexture sets the sampled texture.
func (n *ImageNode) SetTexture(t Texture) {
	if n.texture == t {
		return
	}
	n.texture = t
	n.dirty |= DirtyMaterial
}

// Texture returns the sampled texture.
func (n *ImageNode) Texture() Texture { return n.texture }

// SetOwnsTexture controls whether Release destroys the texture.
func (n *ImageNode) SetOwnsTexture(owns bool) { n.ownsTexture = owns }

// OwnsTexture reports whether Release destroys the texture.
func (n *ImageNode) OwnsTexture() bool { return n.ownsTexture }

// SetSourceRect sets the sampled region in texture pixels.
func (n *ImageNode) SetSourceRect(r sgview.Rect) {
	if n.sourceRect == r {
		return
	}
	n.sourceRect = r
	n.dirty |= DirtyGeometry
}

// SourceRect returns the sampled region.
func (n *ImageNode) SourceRect() sgview.Rect { return n.sourceRect }

// SetRect sets the destination rectangle in item-local coordinates.
func (n *ImageNode) SetRect(r sgview.Rect) {
	if n.rect == r {
		return
	}
	n.rect = r
	n.dirty |= DirtyGeometry
}

// Rect returns the destination rectangle.
func (n *ImageNode) Rect() sgview.Rect { return n.rect }

// SetFiltering sets the minification and magnification filter.
func (n *ImageNode) SetFiltering(f Filtering) {
	if n.filtering == f {
		return
	}
	n.filtering = f
	n.dirty |= DirtyMaterial
}

// Filtering returns the minification and magnification filter.
func (n *ImageNode) Filtering() Filtering { return n.filtering }

// SetMipmapFiltering sets the mipmap filter; FilterNone disables mipmaps.
func (n *ImageNode) SetMipmapFiltering(f Filtering) {
	if n.mipmap == f {
		return
	}
	n.mipmap = f
	n.dirty |= DirtyMaterial
}

// MipmapFiltering returns the mipmap filter.
func (n *ImageNode) MipmapFiltering() Filtering { return n.mipmap }

// SetAnisotropyLevel sets the anisotropic filtering level.
func (n *ImageNode) SetAnisotropyLevel(a Anisotropy) {
	if n.anisotropy == a {
		return
	}
	n.anisotropy = a
	n.dirty |= DirtyMaterial
}

// AnisotropyLevel returns the anisotropic filtering level.
func (n *ImageNode) AnisotropyLevel() Anisotropy { return n.anisotropy }

// MarkDirty flags state for the next frame.
func (n *ImageNode) MarkDirty(d DirtyState) { n.dirty |= d }

// Dirty returns the pending dirty state.
func (n *ImageNode) Dirty() DirtyState { return n.dirty }

// SamplerState returns the sampler description for GPU backends.
func (n *ImageNode) SamplerState() SamplerState {
	return SamplerState{
		MinFilter:     n.filtering.Mode(),
		MagFilter:     n.filtering.Mode(),
		MipmapFilter:  n.mipmap.Mode(),
		Mipmaps:       n.mipmap != FilterNone,
		MaxAnisotropy: n.anisotropy.Clamp(),
	}
}

// Release drops the texture reference, destroying it only if owned.
func (n *ImageNode) Release() {
	if n.released {
		return
	}
	n.released = true
	if n.ownsTexture {
		if d, ok := n.texture.(interface{ Destroy() }); ok {
			d.Destroy()
		}
	}
	n.texture = nil
}

// Released reports whether Release was called.
func (n *ImageNode) Released() bool { return n.released }

// interpolator picks the CPU sampler matching the node's filtering.
func (n *ImageNode) interpolator(minifying bool) xdraw.Interpolator {
	switch {
	case n.filtering == FilterNearest:
		return xdraw.NearestNeighbor
	case minifying && n.mipmap != FilterNone:
		// Wider kernel stands in for trilinear sampling of a mip chain.
		return xdraw.CatmullRom
	default:
		return xdraw.BiLinear
	}
}

// Render samples the source rectangle of the texture into the node rect.
func (n *ImageNode) Render(dst draw.Image, m sgview.Matrix) {
	if n.released || n.texture == nil {
		return
	}
	n.dirty = 0

	src := n.texture.Image()
	if src == nil {
		return
	}
	sr := n.sourceRect
	if !sr.IsValid() || !n.rect.IsValid() {
		return
	}
	srcPx := sr.Image().Intersect(src.Bounds())
	if srcPx.Empty() {
		return
	}

	sx := n.rect.Width / sr.Width
	sy := n.rect.Height / sr.Height
	s2d := m.
		Multiply(sgview.Translate(n.rect.X, n.rect.Y)).
		Multiply(sgview.Scale(sx, sy)).
		Multiply(sgview.Translate(-sr.X, -sr.Y))

	minifying := math.Abs(s2d.A*s2d.E-s2d.B*s2d.D) < 1
	n.interpolator(minifying).Transform(dst, s2d.Aff3(), src, srcPx, xdraw.Over, nil)
}

// FillNode paints a solid color rectangle.
type FillNode struct {
	rect     sgview.Rect
	color    color.Color
	released bool
}

// NewFillNode creates a fill node.
func NewFillNode(r sgview.Rect, c color.Color) *FillNode {
	return &FillNode{rect: r, color: c}
}

// SetRect sets the filled rectangle in item-local coordinates.
func (n *FillNode) SetRect(r sgview.Rect) { n.rect = r }

// Rect returns the filled rectangle.
func (n *FillNode) Rect() sgview.Rect { return n.rect }

// SetColor sets the fill color.
func (n *FillNode) SetColor(c color.Color) { n.color = c }

// Color returns the fill color.
func (n *FillNode) Color() color.Color { return n.color }

// Render fills the rectangle.
func (n *FillNode) Render(dst draw.Image, m sgview.Matrix) {
	if n.released || n.color == nil || !n.rect.IsValid() {
		return
	}
	px := n.rect.Size().Ceil()
	if px.X == 0 || px.Y == 0 {
		return
	}
	s2d := m.
		Multiply(sgview.Translate(n.rect.X, n.rect.Y)).
		Multiply(sgview.Scale(n.rect.Width/float64(px.X), n.rect.Height/float64(px.Y)))
	xdraw.NearestNeighbor.Transform(dst, s2d.Aff3(), image.NewUniform(n.color),
		image.Rectangle{Max: px}, xdraw.Over, nil)
}

// Release marks the node released.
func (n *FillNode) Release() { n.released = true }

// Ensure nodes implement PaintNode.
var (
	_ PaintNode = (*ImageNode)(nil)
	_ PaintNode = (*FillNode)(nil)
)

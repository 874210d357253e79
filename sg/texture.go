// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package sg

import (
	"image"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/sgview"
)

// Texture is a sampleable pixel source owned by the scene-graph substrate.
type Texture interface {
	// Size returns the texture size in physical pixels.
	Size() image.Point

	// Format returns the texture pixel format.
	Format() gputypes.TextureFormat

	// Image returns the CPU-side pixels, or nil for GPU-only textures.
	Image() image.Image
}

// ImageTexture is a Texture backed by an *image.RGBA.
// It borrows the image; pixels written to it are visible to every sampler.
type ImageTexture struct {
	img *image.RGBA
}

// NewImageTexture wraps img without copying.
func NewImageTexture(img *image.RGBA) *ImageTexture {
	return &ImageTexture{img: img}
}

// Size returns the image size.
func (t *ImageTexture) Size() image.Point {
	if t.img == nil {
		return image.Point{}
	}
	return t.img.Bounds().Size()
}

// Format returns RGBA8.
func (t *ImageTexture) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}

// Image returns the backing image.
func (t *ImageTexture) Image() image.Image {
	if t.img == nil {
		return nil
	}
	return t.img
}

// RGBA returns the backing image with its concrete type.
func (t *ImageTexture) RGBA() *image.RGBA {
	return t.img
}

// TextureProvider is implemented by anything that can hand its current
// texture to another drawable.
type TextureProvider interface {
	// Texture returns the current texture, or nil if nothing is rendered yet.
	Texture() Texture

	// TextureChanged fires whenever the texture is replaced or updated.
	TextureChanged() *sgview.Signal
}

// TextureSource is a ready-made TextureProvider.
type TextureSource struct {
	tex     Texture
	changed sgview.Signal
}

// Texture returns the current texture.
func (s *TextureSource) Texture() Texture {
	return s.tex
}

// TextureChanged returns the change signal.
func (s *TextureSource) TextureChanged() *sgview.Signal {
	return &s.changed
}

// SetTexture replaces the texture and notifies subscribers if it differs.
func (s *TextureSource) SetTexture(t Texture) {
	if s.tex == t {
		return
	}
	s.tex = t
	s.changed.Emit()
}

// Notify tells subscribers the current texture's content was updated in place.
func (s *TextureSource) Notify() {
	s.changed.Emit()
}

// Ensure texture types implement their interfaces.
var (
	_ Texture         = (*ImageTexture)(nil)
	_ TextureProvider = (*TextureSource)(nil)
)

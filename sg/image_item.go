// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package sg

import (
	"github.com/gogpu/sgview"
)

// ImageItem shows a texture supplied by the application. It is a texture
// provider natively, so dependents can sample it without an offscreen layer.
type ImageItem struct {
	Item
	source TextureSource
}

// NewImageItem creates an image item showing t. t may be nil.
func NewImageItem(t Texture) *ImageItem {
	it := &ImageItem{}
	it.Init(it)
	it.SetTexture(t)
	return it
}

// SetTexture replaces the shown texture and updates the implicit size.
func (it *ImageItem) SetTexture(t Texture) {
	it.source.SetTexture(t)
	it.updateImplicitSize()
	it.Update()
}

// Texture returns the shown texture.
func (it *ImageItem) Texture() Texture { return it.source.Texture() }

// IsTextureProvider always reports true.
func (it *ImageItem) IsTextureProvider() bool { return true }

// TextureProvider returns the item's own layer provider while the layer is
// enabled, otherwise the shown texture.
func (it *ImageItem) TextureProvider() TextureProvider {
	if p := it.Item.TextureProvider(); p != nil {
		return p
	}
	return &it.source
}

// ItemChange keeps the implicit size in logical units.
func (it *ImageItem) ItemChange(ItemChange) {
	it.updateImplicitSize()
}

func (it *ImageItem) updateImplicitSize() {
	t := it.source.Texture()
	if t == nil {
		return
	}
	s := sgview.SizeOf(t.Size())
	if s.IsEmpty() {
		return
	}
	it.SetImplicitSize(s.Scale(1 / it.EffectiveDevicePixelRatio()))
}

// UpdatePaintNode draws the full texture over the item.
func (it *ImageItem) UpdatePaintNode(old PaintNode) PaintNode {
	t := it.source.Texture()
	if t == nil || it.Size().IsEmpty() {
		return nil
	}
	node, ok := old.(*ImageNode)
	if !ok {
		node = it.Window().CreateImageNode()
		node.SetOwnsTexture(false)
	}
	node.SetTexture(t)
	node.SetSourceRect(sgview.RectOf(sgview.SizeOf(t.Size())))
	node.SetRect(sgview.RectOf(it.Size()))
	if it.Smooth() {
		node.SetFiltering(FilterLinear)
	} else {
		node.SetFiltering(FilterNearest)
	}
	return node
}

var (
	_ Drawable = (*ImageItem)(nil)
	_ Painter  = (*ImageItem)(nil)
)

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package sg

import (
	"image/color"

	"github.com/gogpu/sgview"
)

// Rectangle is a solid color drawable. It is not a texture provider unless
// its layer is enabled.
type Rectangle struct {
	Item
	color color.Color
}

// NewRectangle creates a rectangle with the given color and zero size.
func NewRectangle(c color.Color) *Rectangle {
	r := &Rectangle{color: c}
	r.Init(r)
	return r
}

// Color returns the fill color.
func (r *Rectangle) Color() color.Color { return r.color }

// SetColor changes the fill color.
func (r *Rectangle) SetColor(c color.Color) {
	if r.color == c {
		return
	}
	r.color = c
	r.Update()
}

// UpdatePaintNode builds a fill node covering the item.
func (r *Rectangle) UpdatePaintNode(old PaintNode) PaintNode {
	if r.Size().IsEmpty() || r.color == nil {
		return nil
	}
	node, ok := old.(*FillNode)
	if !ok {
		node = NewFillNode(sgview.Rect{}, r.color)
	}
	node.SetRect(sgview.RectOf(r.Size()))
	node.SetColor(r.color)
	return node
}

var (
	_ Drawable = (*Rectangle)(nil)
	_ Painter  = (*Rectangle)(nil)
)

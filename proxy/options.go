// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package proxy

import (
	"github.com/gogpu/sgview"
	"github.com/gogpu/sgview/sg"
)

// Option configures a TextureProxy before it is completed.
// Options record intent only; the source is bound in ComponentComplete.
type Option func(*TextureProxy)

// WithSourceItem sets the drawable whose texture is shown.
func WithSourceItem(d sg.Drawable) Option {
	return func(p *TextureProxy) {
		p.source = d
	}
}

// WithSourceRect crops the source texture, in texture pixels.
func WithSourceRect(r sgview.Rect) Option {
	return func(p *TextureProxy) {
		p.sourceRect = r
	}
}

// WithHideSource suppresses the source's own rendering while bound.
func WithHideSource(hide bool) Option {
	return func(p *TextureProxy) {
		p.hideSource = hide
	}
}

// WithMipmap enables mipmap filtering.
func WithMipmap(mipmap bool) Option {
	return func(p *TextureProxy) {
		p.mipmap = mipmap
	}
}

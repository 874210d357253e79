// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package sg

import (
	"image/color"

	"github.com/gogpu/sgview"
	"github.com/gogpu/sgview/render"
)

// Layer captures an item's content into an offscreen texture.
//
// A layer is enabled either explicitly by the application (SetEnabled) or
// by dependents that need a sampleable texture (Force). Forced claims are
// counted so that the layer stays on until the last dependent lets go, and
// releasing them never turns off an explicit enable.
type Layer struct {
	item    *Item
	enabled bool
	forced  int

	target *render.PixmapTarget
	source TextureSource
}

// Enabled reports whether the layer is on, explicitly or forced.
func (l *Layer) Enabled() bool {
	return l.enabled || l.forced > 0
}

// ExplicitlyEnabled reports whether the application enabled the layer.
func (l *Layer) ExplicitlyEnabled() bool {
	return l.enabled
}

// SetEnabled explicitly enables or disables the layer.
func (l *Layer) SetEnabled(v bool) {
	if l.enabled == v {
		return
	}
	was := l.Enabled()
	l.enabled = v
	l.changed(was)
}

// Force adds one forced-enable claim.
func (l *Layer) Force() {
	was := l.Enabled()
	l.forced++
	l.changed(was)
}

// Unforce drops one forced-enable claim. Extra calls are ignored.
func (l *Layer) Unforce() {
	if l.forced == 0 {
		return
	}
	was := l.Enabled()
	l.forced--
	l.changed(was)
}

// Forced returns the number of forced-enable claims.
func (l *Layer) Forced() int {
	return l.forced
}

// Texture returns the captured texture, or nil before the first capture.
func (l *Layer) Texture() Texture {
	return l.source.Texture()
}

func (l *Layer) changed(was bool) {
	if was != l.Enabled() && l.item != nil {
		l.item.Update()
		l.item.providerChanged.Emit()
	}
}

// capture renders node into the layer texture at the given ratio.
// A new texture is published when the pixel size changes; otherwise the
// existing one is redrawn in place and subscribers are notified.
func (l *Layer) capture(node PaintNode, size sgview.Size, dpr float64) {
	px := size.Scale(dpr).Ceil()
	if px.X == 0 || px.Y == 0 {
		l.release()
		return
	}

	if l.target == nil {
		l.target = render.NewPixmapTarget(px.X, px.Y)
	} else {
		l.target.Resize(px.X, px.Y)
	}
	img := l.target.Image()
	l.target.Clear(color.Transparent)
	if node != nil {
		node.Render(img, sgview.Scale(dpr, dpr))
	}

	if tex, ok := l.source.Texture().(*ImageTexture); ok && tex.RGBA() == img {
		l.source.Notify()
		return
	}
	sgview.Logger().Debug("sg: layer texture allocated", "width", px.X, "height", px.Y)
	l.source.SetTexture(NewImageTexture(img))
}

// release drops the captured texture.
func (l *Layer) release() {
	l.target = nil
	l.source.SetTexture(nil)
}

// captured reports whether the layer currently holds a texture.
func (l *Layer) captured() bool {
	return l.target != nil
}

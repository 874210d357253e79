// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package proxy

import (
	"image"

	"github.com/gogpu/sgview"
	"github.com/gogpu/sgview/sg"
)

// TextureProxy is a drawable that republishes the texture of its source.
//
// TextureProxy is NOT safe for concurrent use.
type TextureProxy struct {
	sg.Item

	source     sg.Drawable
	sourceRect sgview.Rect
	hideSource bool
	mipmap     bool

	// textureSize is the last observed source texture size in pixels.
	textureSize image.Point

	// Binding to the source, valid between bind and unbind.
	provider     sg.TextureProvider
	textureConn  sgview.Connection
	providerConn sgview.Connection
	forcedLayer  bool
	destroyed   bool

	sourceItemChanged sgview.Signal
	sourceRectChanged sgview.Signal
	hideSourceChanged sgview.Signal
	mipmapChanged     sgview.Signal
}

// New creates a texture proxy.
func New(opts ...Option) *TextureProxy {
	p := &TextureProxy{}
	p.Init(p)
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// SourceItem returns the source drawable, or nil.
func (p *TextureProxy) SourceItem() sg.Drawable { return p.source }

// SetSourceItem changes the source. A completed proxy rebinds at once;
// before completion the binding waits for ComponentComplete.
// A proxy cannot be its own source.
func (p *TextureProxy) SetSourceItem(d sg.Drawable) {
	if p.isSelf(d) {
		sgview.Logger().Warn("proxy: refusing to bind proxy to itself")
		return
	}
	if p.source == d {
		return
	}
	if p.IsComponentComplete() && !p.destroyed {
		p.rebind(p.source, d)
	}
	p.source = d
	p.sourceItemChanged.Emit()
	p.Update()
	p.notifyProvider()
}

// SourceItemChanged fires after SetSourceItem changes the source.
func (p *TextureProxy) SourceItemChanged() *sgview.Signal { return &p.sourceItemChanged }

// SourceRect returns the crop rectangle in source texture pixels.
func (p *TextureProxy) SourceRect() sgview.Rect { return p.sourceRect }

// SetSourceRect sets the crop rectangle. An invalid rectangle selects the
// whole texture.
func (p *TextureProxy) SetSourceRect(r sgview.Rect) {
	if p.sourceRect == r {
		return
	}
	p.sourceRect = r
	p.sourceRectChanged.Emit()
	p.Update()
}

// SourceRectChanged fires after SetSourceRect changes the crop.
func (p *TextureProxy) SourceRectChanged() *sgview.Signal { return &p.sourceRectChanged }

// HideSource reports whether the source is suppressed from its own rendering.
func (p *TextureProxy) HideSource() bool { return p.hideSource }

// SetHideSource toggles source suppression. A bound source's claim is
// re-issued at the new strength immediately.
func (p *TextureProxy) SetHideSource(hide bool) {
	if p.hideSource == hide {
		return
	}
	if p.bound() {
		fx := p.source.Base().Effects()
		fx.Ref(hide)
		fx.Deref(p.hideSource)
	}
	p.hideSource = hide
	p.hideSourceChanged.Emit()
}

// HideSourceChanged fires after SetHideSource changes the flag.
func (p *TextureProxy) HideSourceChanged() *sgview.Signal { return &p.hideSourceChanged }

// Mipmap reports whether mipmap filtering is enabled.
func (p *TextureProxy) Mipmap() bool { return p.mipmap }

// SetMipmap toggles mipmap filtering.
func (p *TextureProxy) SetMipmap(mipmap bool) {
	if p.mipmap == mipmap {
		return
	}
	p.mipmap = mipmap
	p.Update()
	p.mipmapChanged.Emit()
}

// MipmapChanged fires after SetMipmap changes the flag.
func (p *TextureProxy) MipmapChanged() *sgview.Signal { return &p.mipmapChanged }

// TextureSize returns the last observed source texture size in pixels.
func (p *TextureProxy) TextureSize() image.Point { return p.textureSize }

// IsTextureProvider reports whether the proxy's own layer or its source
// can provide a texture.
func (p *TextureProxy) IsTextureProvider() bool {
	if p.Item.IsTextureProvider() {
		return true
	}
	return p.source != nil && p.source.IsTextureProvider()
}

// TextureProvider returns the proxy's own layer provider if enabled,
// otherwise the source's provider.
func (p *TextureProxy) TextureProvider() sg.TextureProvider {
	if p.Item.IsTextureProvider() {
		return p.Item.TextureProvider()
	}
	if p.source == nil {
		return nil
	}
	return p.source.TextureProvider()
}

// ComponentComplete binds a source set before completion.
func (p *TextureProxy) ComponentComplete() error {
	if p.source != nil && !p.destroyed {
		if p.isSelf(p.source) {
			sgview.Logger().Warn("proxy: refusing to bind proxy to itself")
			p.source = nil
		} else {
			p.rebind(nil, p.source)
		}
	}
	return p.Item.ComponentComplete()
}

// ItemChange recomputes the implicit size for the new window or ratio.
func (p *TextureProxy) ItemChange(change sg.ItemChange) {
	switch change {
	case sg.ItemSceneChange, sg.ItemDevicePixelRatioHasChanged:
		p.updateImplicitSize()
	}
}

// Destroy unbinds the source and takes the proxy out of its window.
// The proxy renders nothing afterwards. Idempotent.
func (p *TextureProxy) Destroy() {
	if p.destroyed {
		return
	}
	if p.bound() {
		p.rebind(p.source, nil)
	}
	p.destroyed = true
	p.source = nil
	p.notifyProvider()
	if w := p.Window(); w != nil {
		if err := w.Remove(p); err != nil {
			sgview.Logger().Warn("proxy: remove on destroy", "err", err)
		}
	}
}

// bound reports whether the source currently holds this proxy's claim.
func (p *TextureProxy) bound() bool {
	return p.source != nil && p.IsComponentComplete() && !p.destroyed
}

func (p *TextureProxy) isSelf(d sg.Drawable) bool {
	return d != nil && d.Base() == p.Base()
}

// rebind moves the claim, the forced layer and the texture subscription
// from old to next.
func (p *TextureProxy) rebind(old, next sg.Drawable) {
	p.providerConn.Disconnect()
	p.providerConn = sgview.Connection{}
	p.unsubscribe()

	if old != nil {
		b := old.Base()
		b.Effects().Deref(p.hideSource)
		if p.forcedLayer {
			b.Layer().Unforce()
			p.forcedLayer = false
		}
	}

	if next != nil {
		b := next.Base()
		b.Effects().Ref(p.hideSource)
		// A layer forced by other proxies is not native providerhood.
		if b.Layer().Forced() > 0 || !next.IsTextureProvider() {
			p.forcedLayer = true
			b.Layer().Force()
		}
		p.subscribe(next)
		p.providerConn = b.TextureProviderChanged().Connect(p.onProviderChanged)
	}

	sgview.Logger().Debug("proxy: source rebound",
		"old", old != nil, "new", next != nil, "forced_layer", p.forcedLayer)
	p.updateImplicitSize()
}

// subscribe follows the texture of d's current provider.
func (p *TextureProxy) subscribe(d sg.Drawable) {
	if tp := d.TextureProvider(); tp != nil {
		p.provider = tp
		p.textureConn = tp.TextureChanged().Connect(p.onTextureChanged)
		p.onTextureChanged()
	}
}

func (p *TextureProxy) unsubscribe() {
	p.textureConn.Disconnect()
	p.textureConn = sgview.Connection{}
	p.provider = nil
}

// onProviderChanged moves the texture subscription when the source starts
// handing out a different provider, as a chained proxy does on rebind.
func (p *TextureProxy) onProviderChanged() {
	if !p.bound() {
		return
	}
	p.unsubscribe()
	p.subscribe(p.source)
	if p.provider == nil {
		p.onTextureChanged()
	}
	p.notifyProvider()
}

// notifyProvider tells consumers that TextureProvider now resolves through
// a different source, unless the proxy's own layer is what they see.
func (p *TextureProxy) notifyProvider() {
	if !p.Item.IsTextureProvider() {
		p.TextureProviderChanged().Emit()
	}
}

// onTextureChanged caches the new texture size and schedules a repaint.
func (p *TextureProxy) onTextureChanged() {
	var size image.Point
	if p.provider != nil {
		if t := p.provider.Texture(); t != nil {
			size = t.Size()
		}
	}
	if size != p.textureSize {
		p.textureSize = size
		p.updateImplicitSize()
	}
	p.Update()
}

// updateImplicitSize sets the implicit size to the texture size in logical
// units. An empty texture size leaves it unchanged.
func (p *TextureProxy) updateImplicitSize() {
	s := sgview.SizeOf(p.textureSize)
	if s.IsEmpty() {
		return
	}
	p.SetImplicitSize(s.Scale(1 / p.EffectiveDevicePixelRatio()))
}

// UpdatePaintNode samples the source texture into the proxy bounds.
func (p *TextureProxy) UpdatePaintNode(old sg.PaintNode) sg.PaintNode {
	src := p.source
	if src == nil || src.Base().Width() <= 0 || src.Base().Height() <= 0 {
		return nil
	}
	tp := src.TextureProvider()
	if tp == nil || tp.Texture() == nil {
		return nil
	}

	node, ok := old.(*sg.ImageNode)
	if !ok {
		node = p.Window().CreateImageNode()
		node.SetOwnsTexture(false)
	} else {
		node.MarkDirty(sg.DirtyMaterial)
	}
	node.SetTexture(tp.Texture())

	sr := p.sourceRect
	if !sr.IsValid() {
		sr = sgview.RectOf(sgview.SizeOf(p.textureSize))
	}
	node.SetSourceRect(sr)
	node.SetRect(sgview.RectOf(p.Size()))

	filter := sg.FilterNearest
	if p.Smooth() {
		filter = sg.FilterLinear
	}
	node.SetFiltering(filter)
	if p.mipmap {
		node.SetMipmapFiltering(filter)
	} else {
		node.SetMipmapFiltering(sg.FilterNone)
	}
	if p.Antialiasing() {
		node.SetAnisotropyLevel(sg.Anisotropy4x)
	} else {
		node.SetAnisotropyLevel(sg.AnisotropyNone)
	}
	return node
}

var (
	_ sg.Drawable = (*TextureProxy)(nil)
	_ sg.Painter  = (*TextureProxy)(nil)
)

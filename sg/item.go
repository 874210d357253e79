// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package sg

import (
	"github.com/gogpu/sgview"
)

// ItemChange identifies a change delivered to Drawable.ItemChange.
type ItemChange uint8

const (
	// ItemSceneChange is delivered after the item joins or leaves a window.
	ItemSceneChange ItemChange = iota

	// ItemDevicePixelRatioHasChanged is delivered when the window ratio changes.
	ItemDevicePixelRatioHasChanged
)

// Drawable is a node of the retained scene graph.
//
// Concrete drawables embed Item, which supplies defaults for every method
// except the ones they override.
type Drawable interface {
	// Base returns the embedded Item.
	Base() *Item

	// IsTextureProvider reports whether TextureProvider returns non-nil.
	IsTextureProvider() bool

	// TextureProvider returns the provider of the drawable's pixels.
	TextureProvider() TextureProvider

	// ComponentComplete finalizes construction. Called once by Window.Add.
	ComponentComplete() error

	// ReleaseResources drops texture and buffer references. It runs before
	// GPU-context teardown and when the item leaves its window. Idempotent.
	ReleaseResources()

	// ItemChange is notified about scene and ratio changes.
	ItemChange(change ItemChange)
}

// Painter is implemented by drawables with visual content.
type Painter interface {
	// UpdatePaintNode returns the node to draw this frame, updating old in
	// place or building a new one. Returning nil means "draw nothing";
	// the window releases old whenever a different node is returned.
	UpdatePaintNode(old PaintNode) PaintNode
}

// FrameRenderer is implemented by drawables that render the whole scene
// once per Sync, after paint nodes and layers are up to date.
type FrameRenderer interface {
	RenderFrame()
}

// Item is the drawable base type.
//
// Item is NOT safe for concurrent use, except for its EffectRefs.
type Item struct {
	self   Drawable
	window *Window

	pos          sgview.Point
	size         sgview.Size
	implicit     sgview.Size
	widthSet     bool
	heightSet    bool
	visible      bool
	smooth       bool
	antialiasing bool
	complete     bool
	dirty        bool

	effects EffectRefs
	layer   Layer
	node    PaintNode
	drawn   sgview.Rect

	sizeChanged     sgview.Signal
	providerChanged sgview.Signal
	implicitChanged sgview.Signal
}

// Init binds the item to the drawable that embeds it and sets defaults.
// Constructors of concrete drawables call it first.
func (i *Item) Init(self Drawable) {
	i.self = self
	i.visible = true
	i.smooth = true
	i.layer.item = i
	i.effects.onChange = i.Update
}

// Base returns the item itself.
func (i *Item) Base() *Item { return i }

// IsTextureProvider reports whether the item's layer is enabled.
func (i *Item) IsTextureProvider() bool {
	return i.layer.Enabled()
}

// TextureProvider returns the layer provider while the layer is enabled.
func (i *Item) TextureProvider() TextureProvider {
	if !i.layer.Enabled() {
		return nil
	}
	return &i.layer.source
}

// TextureProviderChanged fires when TextureProvider starts returning a
// different provider.
func (i *Item) TextureProviderChanged() *sgview.Signal { return &i.providerChanged }

// ComponentComplete marks construction complete.
func (i *Item) ComponentComplete() error {
	i.complete = true
	return nil
}

// ReleaseResources is a no-op for plain items.
func (i *Item) ReleaseResources() {}

// ItemChange is a no-op for plain items.
func (i *Item) ItemChange(ItemChange) {}

// IsComponentComplete reports whether ComponentComplete ran.
func (i *Item) IsComponentComplete() bool { return i.complete }

// Window returns the window the item belongs to, or nil.
func (i *Item) Window() *Window { return i.window }

// EffectiveDevicePixelRatio returns the window ratio, or the platform
// ratio while the item is not in a window.
func (i *Item) EffectiveDevicePixelRatio() float64 {
	if i.window != nil {
		return i.window.DevicePixelRatio()
	}
	return sgview.PlatformDevicePixelRatio()
}

// Effects returns the effect-dependency claim counter.
func (i *Item) Effects() *EffectRefs { return &i.effects }

// Layer returns the offscreen layer.
func (i *Item) Layer() *Layer { return &i.layer }

// PaintNode returns the node built by the last Sync, or nil.
func (i *Item) PaintNode() PaintNode { return i.node }

// Update schedules a repaint in the next Sync.
func (i *Item) Update() {
	if i.window != nil && i.self != nil {
		i.window.scheduleUpdate(i.self)
		return
	}
	i.dirty = true
}

// IsDirty reports whether a repaint is pending.
func (i *Item) IsDirty() bool { return i.dirty }

// Position returns the item position in window coordinates.
func (i *Item) Position() sgview.Point { return i.pos }

// SetPosition moves the item.
func (i *Item) SetPosition(p sgview.Point) {
	if i.pos == p {
		return
	}
	i.pos = p
	i.Update()
}

// Size returns the item size.
func (i *Item) Size() sgview.Size { return i.size }

// Width returns the item width.
func (i *Item) Width() float64 { return i.size.Width }

// Height returns the item height.
func (i *Item) Height() float64 { return i.size.Height }

// SetSize sets an explicit size. Explicit dimensions win over the implicit size.
func (i *Item) SetSize(s sgview.Size) {
	i.widthSet = true
	i.heightSet = true
	i.resize(s)
}

// ResetSize drops the explicit size and returns to the implicit size.
func (i *Item) ResetSize() {
	i.widthSet = false
	i.heightSet = false
	i.resize(i.implicit)
}

// ImplicitSize returns the natural size reported by the item.
func (i *Item) ImplicitSize() sgview.Size { return i.implicit }

// SetImplicitSize sets the natural size. Dimensions without an explicit
// value follow it.
func (i *Item) SetImplicitSize(s sgview.Size) {
	if i.implicit == s {
		return
	}
	i.implicit = s
	i.implicitChanged.Emit()

	next := i.size
	if !i.widthSet {
		next.Width = s.Width
	}
	if !i.heightSet {
		next.Height = s.Height
	}
	i.resize(next)
}

func (i *Item) resize(s sgview.Size) {
	if i.size == s {
		return
	}
	i.size = s
	i.sizeChanged.Emit()
	i.Update()
}

// SizeChanged fires after the size changes.
func (i *Item) SizeChanged() *sgview.Signal { return &i.sizeChanged }

// ImplicitSizeChanged fires after the implicit size changes.
func (i *Item) ImplicitSizeChanged() *sgview.Signal { return &i.implicitChanged }

// Visible reports whether the item is drawn.
func (i *Item) Visible() bool { return i.visible }

// SetVisible shows or hides the item.
func (i *Item) SetVisible(v bool) {
	if i.visible == v {
		return
	}
	i.visible = v
	i.Update()
}

// Smooth reports whether textures are sampled with linear filtering.
func (i *Item) Smooth() bool { return i.smooth }

// SetSmooth toggles linear filtering.
func (i *Item) SetSmooth(v bool) {
	if i.smooth == v {
		return
	}
	i.smooth = v
	i.Update()
}

// Antialiasing reports whether antialiasing is requested.
func (i *Item) Antialiasing() bool { return i.antialiasing }

// SetAntialiasing toggles antialiasing.
func (i *Item) SetAntialiasing(v bool) {
	if i.antialiasing == v {
		return
	}
	i.antialiasing = v
	i.Update()
}

// Ensure Item implements Drawable.
var _ Drawable = (*Item)(nil)

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package sg

import (
	"errors"
	"fmt"
	"image/draw"
	"slices"

	"github.com/gogpu/sgview"
	"github.com/gogpu/sgview/render"
)

// Window membership errors.
var (
	// ErrAlreadyAdded is returned when adding an item that already has a window.
	ErrAlreadyAdded = errors.New("sg: item already belongs to a window")

	// ErrNotAdded is returned when removing an item that is not in the window.
	ErrNotAdded = errors.New("sg: item does not belong to this window")

	// ErrWindowClosed is returned when operations are attempted on a closed window.
	ErrWindowClosed = errors.New("sg: window is closed")
)

// Window owns a scene and drives its frame pipeline.
//
// Items are drawn in the order they were added. Window is NOT safe for
// concurrent use.
type Window struct {
	dpr       float64
	device    render.DeviceHandle
	maxPasses int

	items  []Drawable
	dirty  []Drawable
	serial uint64
	frames uint64
	closed bool

	// damage holds window-space bounds repainted since the last frame.
	damage    []sgview.Rect
	damageAll bool

	invalidated sgview.Signal
	dprChanged  sgview.Signal
}

// NewWindow creates an empty window.
func NewWindow(opts ...WindowOption) *Window {
	o := defaultWindowOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Window{
		dpr:       o.dpr,
		device:    o.device,
		maxPasses: o.maxPasses,
	}
}

// Device returns the injected host device handle.
func (w *Window) Device() render.DeviceHandle { return w.device }

// DevicePixelRatio returns the effective device pixel ratio.
func (w *Window) DevicePixelRatio() float64 {
	if w.dpr > 0 {
		return w.dpr
	}
	return sgview.PlatformDevicePixelRatio()
}

// SetDevicePixelRatio changes the window ratio and notifies every item.
func (w *Window) SetDevicePixelRatio(r float64) {
	if r <= 0 || r == w.dpr {
		return
	}
	w.dpr = r
	for _, d := range slices.Clone(w.items) {
		d.ItemChange(ItemDevicePixelRatioHasChanged)
		d.Base().Update()
	}
	w.dprChanged.Emit()
}

// DevicePixelRatioChanged fires after SetDevicePixelRatio changes the ratio.
func (w *Window) DevicePixelRatioChanged() *sgview.Signal { return &w.dprChanged }

// SceneGraphInvalidated fires when the GPU context is reset, before any
// resources are released. It is the private invalidation path drawables
// subscribe to in ComponentComplete.
func (w *Window) SceneGraphInvalidated() *sgview.Signal { return &w.invalidated }

// Items returns the drawables in draw order.
func (w *Window) Items() []Drawable { return slices.Clone(w.items) }

// Contains reports whether d belongs to the window.
func (w *Window) Contains(d Drawable) bool {
	return d != nil && d.Base().window == w
}

// Serial increases whenever anything in the scene schedules an update.
func (w *Window) Serial() uint64 { return w.serial }

// Damaged reports whether anything overlapping r was repainted, added,
// moved or removed since the previous Sync finished. It is meant for
// frame renderers deciding whether their output is stale.
func (w *Window) Damaged(r sgview.Rect) bool {
	if w.damageAll {
		return true
	}
	for _, d := range w.damage {
		if d.Intersects(r) {
			return true
		}
	}
	return false
}

// Frames returns how many times Sync ran.
func (w *Window) Frames() uint64 { return w.frames }

// CreateImageNode creates an image-sampling paint node.
func (w *Window) CreateImageNode() *ImageNode {
	return NewImageNode()
}

// Add inserts d on top of the scene and completes it.
//
// If ComponentComplete fails the item is taken out again and the error is
// returned wrapped.
func (w *Window) Add(d Drawable) error {
	if w.closed {
		return ErrWindowClosed
	}
	b := d.Base()
	if b.window != nil {
		return ErrAlreadyAdded
	}
	if b.self == nil {
		b.Init(d)
	}

	b.dirty = false // updates recorded before Add are folded into the first one
	b.window = w
	w.items = append(w.items, d)
	d.ItemChange(ItemSceneChange)

	if !b.complete {
		if err := d.ComponentComplete(); err != nil {
			w.detach(d)
			return fmt.Errorf("sg: complete %T: %w", d, err)
		}
	}
	w.scheduleUpdate(d)
	return nil
}

// Remove takes d out of the scene and releases its resources.
func (w *Window) Remove(d Drawable) error {
	if d == nil || d.Base().window != w {
		return ErrNotAdded
	}
	w.addDamage(d.Base().drawn)
	w.detach(d)
	w.serial++
	return nil
}

func (w *Window) detach(d Drawable) {
	b := d.Base()
	d.ReleaseResources()
	w.releaseItem(b)

	w.items = slices.DeleteFunc(w.items, func(x Drawable) bool { return x.Base() == b })
	w.dirty = slices.DeleteFunc(w.dirty, func(x Drawable) bool { return x.Base() == b })
	b.window = nil
	b.dirty = false
	b.drawn = sgview.Rect{}
	d.ItemChange(ItemSceneChange)
}

func (w *Window) releaseItem(b *Item) {
	if b.node != nil {
		b.node.Release()
		b.node = nil
	}
	b.layer.release()
}

func (w *Window) scheduleUpdate(d Drawable) {
	w.serial++
	b := d.Base()
	if b.dirty {
		return
	}
	b.dirty = true
	w.dirty = append(w.dirty, d)
}

// Sync runs the render/sync phase of one frame.
func (w *Window) Sync() {
	if w.closed {
		return
	}
	w.frames++

	for pass := 0; pass < w.maxPasses && len(w.dirty) > 0; pass++ {
		batch := w.dirty
		w.dirty = nil
		for _, d := range batch {
			d.Base().dirty = false
		}
		for _, d := range batch {
			if d.Base().window == w {
				w.damageItem(d.Base())
				w.updatePaintNode(d)
			}
		}
		for _, d := range batch {
			if d.Base().window == w {
				w.updateLayer(d.Base())
			}
		}
	}
	if len(w.dirty) > 0 {
		sgview.Logger().Debug("sg: updates deferred to next frame", "items", len(w.dirty))
	}

	for _, d := range slices.Clone(w.items) {
		if fr, ok := d.(FrameRenderer); ok && d.Base().window == w {
			fr.RenderFrame()
		}
	}
	w.damage = w.damage[:0]
	w.damageAll = false
}

// damageItem marks the previous and current bounds of b.
func (w *Window) damageItem(b *Item) {
	w.addDamage(b.drawn)
	b.drawn = sgview.R(b.pos.X, b.pos.Y, b.size.Width, b.size.Height)
	w.addDamage(b.drawn)
}

func (w *Window) addDamage(r sgview.Rect) {
	if r.IsValid() {
		w.damage = append(w.damage, r)
	}
}

func (w *Window) updatePaintNode(d Drawable) {
	p, ok := d.(Painter)
	if !ok {
		return
	}
	b := d.Base()
	old := b.node
	node := p.UpdatePaintNode(old)
	if old != nil && node != old {
		old.Release()
	}
	b.node = node
}

func (w *Window) updateLayer(b *Item) {
	switch {
	case b.layer.Enabled():
		b.layer.capture(b.node, b.size, w.DevicePixelRatio())
	case b.layer.captured():
		b.layer.release()
	}
}

// DrawScene draws every visible, non-hidden item into dst.
// m maps window coordinates to dst pixels. Items in skip are left out.
func (w *Window) DrawScene(dst draw.Image, m sgview.Matrix, skip ...Drawable) {
	for _, d := range w.items {
		b := d.Base()
		if !b.visible || b.node == nil || b.effects.Hidden() {
			continue
		}
		if slices.ContainsFunc(skip, func(s Drawable) bool { return s != nil && s.Base() == b }) {
			continue
		}
		b.node.Render(dst, m.Multiply(sgview.Translate(b.pos.X, b.pos.Y)))
	}
}

// Invalidate handles a GPU context reset: it fires SceneGraphInvalidated,
// lets every item release its resources and drops all retained nodes and
// layer textures. The next Sync rebuilds everything from property state.
func (w *Window) Invalidate() {
	sgview.Logger().Info("sg: scene graph invalidated", "items", len(w.items))
	w.invalidated.Emit()
	w.damageAll = true
	for _, d := range slices.Clone(w.items) {
		d.ReleaseResources()
		w.releaseItem(d.Base())
		w.scheduleUpdate(d)
	}
}

// Close releases every item and rejects further additions. Idempotent.
func (w *Window) Close() {
	if w.closed {
		return
	}
	w.Invalidate()
	w.dirty = nil
	w.closed = true
}

// IsClosed reports whether Close was called.
func (w *Window) IsClosed() bool { return w.closed }

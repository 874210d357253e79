// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package viewport

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"log/slog"
	"strings"
	"testing"

	"github.com/gogpu/sgview"
	"github.com/gogpu/sgview/output"
	"github.com/gogpu/sgview/render"
	"github.com/gogpu/sgview/sg"
)

var red = color.RGBA{R: 0xff, A: 0xff}

// scene builds a window with a 10x10 red square at the origin.
func scene(t *testing.T) (*sg.Window, *sg.Rectangle) {
	t.Helper()
	w := sg.NewWindow(sg.WithDevicePixelRatio(1))
	r := sg.NewRectangle(red)
	r.SetSize(sgview.Sz(10, 10))
	if err := w.Add(r); err != nil {
		t.Fatalf("Add(rectangle) = %v", err)
	}
	return w, r
}

func TestViewportRequiresOutput(t *testing.T) {
	w := sg.NewWindow()
	vp := New()
	if err := w.Add(vp); !errors.Is(err, ErrNoOutput) {
		t.Fatalf("Add() = %v, want ErrNoOutput", err)
	}
	if w.Contains(vp) {
		t.Error("viewport without output should not stay in the window")
	}
}

func TestViewportSetOutput(t *testing.T) {
	vp := New()
	if err := vp.SetOutput(nil); !errors.Is(err, ErrNilOutput) {
		t.Errorf("SetOutput(nil) = %v, want ErrNilOutput", err)
	}

	a := output.NewHeadless("a", 10, 10)
	b := output.NewHeadless("b", 10, 10)
	if err := vp.SetOutput(a); err != nil {
		t.Fatalf("SetOutput(a) = %v", err)
	}
	if err := vp.SetOutput(b); err != nil {
		t.Fatalf("SetOutput(b) before completion = %v", err)
	}

	w := sg.NewWindow()
	if err := w.Add(vp); err != nil {
		t.Fatalf("Add() = %v", err)
	}
	if err := vp.SetOutput(b); err != nil {
		t.Errorf("SetOutput(same) = %v, want nil", err)
	}
	if err := vp.SetOutput(a); !errors.Is(err, ErrOutputBound) {
		t.Errorf("SetOutput(other) = %v, want ErrOutputBound", err)
	}
	if vp.Output() != b {
		t.Error("output changed after completion")
	}
}

func TestViewportImplicitSize(t *testing.T) {
	out := output.NewHeadless("a", 40, 20, output.WithScale(2))
	vp := New(WithOutput(out))
	w := sg.NewWindow()
	if err := w.Add(vp); err != nil {
		t.Fatalf("Add() = %v", err)
	}
	if got, want := vp.ImplicitSize(), sgview.Sz(20, 10); got != want {
		t.Errorf("ImplicitSize() = %v, want %v", got, want)
	}

	vp.RotateOutput(output.Transform90)
	if got, want := vp.ImplicitSize(), sgview.Sz(10, 20); got != want {
		t.Errorf("rotated ImplicitSize() = %v, want %v", got, want)
	}
	if vp.Size() != vp.ImplicitSize() {
		t.Errorf("Size() = %v, want implicit %v", vp.Size(), vp.ImplicitSize())
	}
}

func TestViewportDevicePixelRatio(t *testing.T) {
	out := output.NewHeadless("a", 40, 20)
	vp := New(WithOutput(out))
	w := sg.NewWindow()
	if err := w.Add(vp); err != nil {
		t.Fatalf("Add() = %v", err)
	}

	var changes int
	vp.DevicePixelRatioChanged().Connect(func() { changes++ })

	vp.SetOutputScale(2)
	if vp.DevicePixelRatio() != 2 {
		t.Errorf("DevicePixelRatio() = %v, want output scale 2", vp.DevicePixelRatio())
	}
	if changes != 1 {
		t.Errorf("changes = %d, want 1", changes)
	}

	vp.SetDevicePixelRatio(2)
	if changes != 1 {
		t.Errorf("setting the current ratio emitted, changes = %d", changes)
	}

	vp.SetDevicePixelRatio(1)
	vp.SetOutputScale(3)
	if vp.DevicePixelRatio() != 1 {
		t.Errorf("explicit ratio overridden by output scale: %v", vp.DevicePixelRatio())
	}
	if changes != 2 {
		t.Errorf("changes = %d, want 2", changes)
	}
	if got, want := vp.ImplicitSize(), sgview.Sz(40, 20); got != want {
		t.Errorf("ImplicitSize() = %v, want %v", got, want)
	}
}

func TestViewportRenderOnScreen(t *testing.T) {
	w, _ := scene(t)
	out := output.NewHeadless("a", 20, 10)
	vp := New(WithOutput(out), WithRoot(true))
	if err := w.Add(vp); err != nil {
		t.Fatalf("Add() = %v", err)
	}

	w.Sync()
	if out.Commits() != 1 {
		t.Fatalf("Commits() = %d, want 1", out.Commits())
	}
	fb := out.Framebuffer()
	if got := fb.RGBAAt(5, 5); got != red {
		t.Errorf("pixel (5,5) = %v, want red", got)
	}
	if got := fb.RGBAAt(15, 5); got.A != 0 {
		t.Errorf("pixel (15,5) = %v, want transparent", got)
	}
	if vp.TextureProvider().Texture() == nil {
		t.Error("frame not published")
	}

	w.Sync()
	if out.Commits() != 1 {
		t.Errorf("unchanged scene committed again, Commits() = %d", out.Commits())
	}
	if vp.Frames() != 1 {
		t.Errorf("Frames() = %d, want 1", vp.Frames())
	}
}

func TestViewportRenderRotated(t *testing.T) {
	w, _ := scene(t)
	out := output.NewHeadless("a", 20, 10, output.WithTransform(output.Transform90))
	vp := New(WithOutput(out))
	if err := w.Add(vp); err != nil {
		t.Fatalf("Add() = %v", err)
	}
	if got, want := vp.Size(), sgview.Sz(10, 20); got != want {
		t.Fatalf("Size() = %v, want %v", got, want)
	}

	w.Sync()
	fb := out.Framebuffer()
	if fb == nil {
		t.Fatal("nothing committed")
	}
	if b := fb.Bounds().Size(); b.X != 20 || b.Y != 10 {
		t.Fatalf("framebuffer = %v, want 20x10", b)
	}
	// Content (5,5) is presented at (5,5); content (5,15) lands at (15,5).
	if got := fb.RGBAAt(5, 5); got != red {
		t.Errorf("pixel (5,5) = %v, want red", got)
	}
	if got := fb.RGBAAt(15, 5); got.A != 0 {
		t.Errorf("pixel (15,5) = %v, want transparent", got)
	}
}

func TestViewportOffscreen(t *testing.T) {
	w, _ := scene(t)
	out := output.NewHeadless("a", 20, 10)
	buf, err := render.NewBuffer(20, 10)
	if err != nil {
		t.Fatalf("NewBuffer() = %v", err)
	}
	vp := New(WithOutput(out), WithOffscreen(true), WithBuffer(buf))
	if err := w.Add(vp); err != nil {
		t.Fatalf("Add() = %v", err)
	}

	var published int
	vp.TextureProvider().TextureChanged().Connect(func() { published++ })

	w.Sync()
	if out.Commits() != 0 {
		t.Errorf("offscreen viewport committed %d frames", out.Commits())
	}
	if got := buf.Image().RGBAAt(5, 5); got != red {
		t.Errorf("buffer pixel (5,5) = %v, want red", got)
	}
	tex, ok := vp.TextureProvider().Texture().(*sg.ImageTexture)
	if !ok || tex.RGBA() != buf.Image() {
		t.Error("published texture should wrap the lent buffer")
	}
	if published != 1 {
		t.Errorf("published = %d, want 1", published)
	}

	var modes int
	vp.OffscreenChanged().Connect(func() { modes++ })
	vp.SetOffscreen(true)
	vp.SetOffscreen(false)
	if modes != 1 {
		t.Errorf("OffscreenChanged fired %d times, want 1", modes)
	}
	w.Sync()
	if out.Commits() != 1 {
		t.Errorf("Commits() = %d after switching on-screen, want 1", out.Commits())
	}
}

func TestViewportReleaseResources(t *testing.T) {
	w, _ := scene(t)
	out := output.NewHeadless("a", 20, 10)
	buf, _ := render.NewBuffer(20, 10)
	vp := New(WithOutput(out), WithBuffer(buf))
	if err := w.Add(vp); err != nil {
		t.Fatalf("Add() = %v", err)
	}
	w.Sync()

	if err := w.Remove(vp); err != nil {
		t.Fatalf("Remove() = %v", err)
	}
	if vp.Buffer() != nil {
		t.Error("buffer kept after release")
	}
	if vp.TextureProvider().Texture() != nil {
		t.Error("frame texture kept after release")
	}
	vp.ReleaseResources()

	out.SetScale(2)
	if vp.DevicePixelRatio() != 2 {
		t.Errorf("DevicePixelRatio() = %v, want 2", vp.DevicePixelRatio())
	}
	if vp.IsDirty() {
		t.Error("removed viewport should not follow output changes")
	}
}

func TestViewportInvalidate(t *testing.T) {
	w, _ := scene(t)
	out := output.NewHeadless("a", 20, 10)
	vp := New(WithOutput(out))
	if err := w.Add(vp); err != nil {
		t.Fatalf("Add() = %v", err)
	}
	w.Sync()

	w.Invalidate()
	if vp.TextureProvider().Texture() != nil {
		t.Error("frame texture kept across invalidation")
	}
	w.Sync()
	if out.Commits() != 2 {
		t.Errorf("Commits() = %d, want 2", out.Commits())
	}
	if vp.TextureProvider().Texture() == nil {
		t.Error("frame not republished after invalidation")
	}
}

func TestViewportRootAdvisory(t *testing.T) {
	var logs bytes.Buffer
	sgview.SetLogger(slog.New(slog.NewTextHandler(&logs, nil)))
	defer sgview.SetLogger(nil)

	w := sg.NewWindow()
	out := output.NewHeadless("HDMI-A-1", 20, 10)
	first := New(WithOutput(out), WithRoot(true))
	second := New(WithOutput(out))
	for _, vp := range []*Viewport{first, second} {
		if err := w.Add(vp); err != nil {
			t.Fatalf("Add() = %v", err)
		}
	}

	var changes int
	second.RootChanged().Connect(func() { changes++ })
	second.SetRoot(true)
	second.SetRoot(true)

	if !first.IsRoot() || !second.IsRoot() {
		t.Error("root flag should be accepted on both viewports")
	}
	if changes != 1 {
		t.Errorf("RootChanged fired %d times, want 1", changes)
	}
	if RootViewport(w, out) != first {
		t.Error("RootViewport() should return the first root")
	}
	if !strings.Contains(logs.String(), "already has a root viewport") {
		t.Errorf("missing warning, log = %q", logs.String())
	}
}

func TestViewportSkipsDamageOutside(t *testing.T) {
	w, _ := scene(t)
	blue := color.RGBA{B: 0xff, A: 0xff}
	other := sg.NewRectangle(red)
	other.SetSize(sgview.Sz(10, 10))
	other.SetPosition(sgview.Pt(100, 100))
	if err := w.Add(other); err != nil {
		t.Fatalf("Add(other) = %v", err)
	}
	out := output.NewHeadless("a", 20, 10)
	vp := New(WithOutput(out))
	if err := w.Add(vp); err != nil {
		t.Fatalf("Add() = %v", err)
	}
	w.Sync()

	other.SetColor(blue)
	w.Sync()
	if vp.Frames() != 1 {
		t.Errorf("Frames() = %d after a change outside the viewport, want 1", vp.Frames())
	}

	other.SetPosition(sgview.Pt(5, 0))
	w.Sync()
	if vp.Frames() != 2 {
		t.Fatalf("Frames() = %d after moving into view, want 2", vp.Frames())
	}
	if got := out.Framebuffer().RGBAAt(7, 5); got != blue {
		t.Errorf("pixel (7,5) = %v, want blue", got)
	}

	other.SetPosition(sgview.Pt(100, 100))
	w.Sync()
	if vp.Frames() != 3 {
		t.Fatalf("Frames() = %d after moving out of view, want 3", vp.Frames())
	}
	if got := out.Framebuffer().RGBAAt(7, 5); got != red {
		t.Errorf("pixel (7,5) = %v, want red once uncovered", got)
	}
}

func TestViewportDevicePixelRatioPinned(t *testing.T) {
	out := output.NewHeadless("a", 40, 20, output.WithScale(2))
	vp := New(WithOutput(out))
	w := sg.NewWindow()
	if err := w.Add(vp); err != nil {
		t.Fatalf("Add() = %v", err)
	}
	var changes int
	vp.DevicePixelRatioChanged().Connect(func() { changes++ })

	// Pinning the value the output already reports emits nothing.
	vp.SetDevicePixelRatio(2)
	if changes != 0 {
		t.Errorf("changes = %d, want 0", changes)
	}

	out.SetScale(3)
	if vp.DevicePixelRatio() != 2 {
		t.Errorf("DevicePixelRatio() = %v, want pinned 2", vp.DevicePixelRatio())
	}
	if changes != 0 {
		t.Errorf("output scale change emitted on a pinned viewport, changes = %d", changes)
	}
	if got, want := vp.ImplicitSize(), sgview.Sz(20, 10); got != want {
		t.Errorf("ImplicitSize() = %v, want %v", got, want)
	}
}

func TestViewportOffscreenInvalidate(t *testing.T) {
	w, _ := scene(t)
	out := output.NewHeadless("a", 20, 10)
	buf, err := render.NewBuffer(20, 10)
	if err != nil {
		t.Fatalf("NewBuffer() = %v", err)
	}
	vp := New(WithOutput(out), WithOffscreen(true), WithBuffer(buf))
	if err := w.Add(vp); err != nil {
		t.Fatalf("Add() = %v", err)
	}
	w.Sync()

	// A context reset drops the lent buffer; offscreen frames pause until
	// the host lends one again.
	w.Invalidate()
	if vp.Buffer() != nil {
		t.Error("buffer kept across invalidation")
	}
	w.Sync()
	if vp.Frames() != 1 {
		t.Errorf("Frames() = %d without a buffer, want 1", vp.Frames())
	}

	draw.Draw(buf.Image(), buf.Image().Bounds(), image.Transparent, image.Point{}, draw.Src)
	vp.SetBuffer(buf)
	w.Sync()
	if vp.Frames() != 2 {
		t.Fatalf("Frames() = %d after lending the buffer again, want 2", vp.Frames())
	}
	if got := buf.Image().RGBAAt(5, 5); got != red {
		t.Errorf("buffer pixel (5,5) = %v, want red", got)
	}
	if vp.TextureProvider().Texture() == nil {
		t.Error("frame not republished after invalidation")
	}
}

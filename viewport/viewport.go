// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package viewport

import (
	"errors"
	"image"
	"image/draw"

	"github.com/gogpu/sgview"
	"github.com/gogpu/sgview/output"
	"github.com/gogpu/sgview/render"
	"github.com/gogpu/sgview/sg"
)

// Output binding errors.
var (
	// ErrNilOutput is returned when binding a nil output.
	ErrNilOutput = errors.New("viewport: nil output")

	// ErrOutputBound is returned when rebinding a completed viewport.
	ErrOutputBound = errors.New("viewport: output already bound")

	// ErrNoOutput is returned by ComponentComplete when no output is bound.
	ErrNoOutput = errors.New("viewport: output is required")
)

// Viewport maps a drawable rectangle onto one output.
//
// Viewport is NOT safe for concurrent use.
type Viewport struct {
	sg.Item

	output    output.Output
	dpr       float64 // explicit ratio, 0 while following the output
	offscreen bool
	buffer    render.Buffer
	root      bool

	swapchain  *render.PixmapTarget
	frame      sg.TextureSource
	frames     int
	needsFrame bool
	reported   float64

	outputConn     sgview.Connection
	invalidateConn sgview.Connection

	dprChanged       sgview.Signal
	offscreenChanged sgview.Signal
	rootChanged      sgview.Signal
}

// New creates a viewport. The output must be bound, through WithOutput or
// SetOutput, before the viewport is added to a window.
func New(opts ...Option) *Viewport {
	v := &Viewport{needsFrame: true}
	v.Init(v)
	for _, opt := range opts {
		opt(v)
	}
	v.reported = v.DevicePixelRatio()
	return v
}

// Output returns the bound output.
func (v *Viewport) Output() output.Output { return v.output }

// SetOutput binds the output. It may be replaced until the viewport is
// completed; afterwards only the current output is accepted.
func (v *Viewport) SetOutput(o output.Output) error {
	if o == nil {
		return ErrNilOutput
	}
	if v.output == o {
		return nil
	}
	if v.IsComponentComplete() {
		return ErrOutputBound
	}
	v.output = o
	v.notifyRatio()
	return nil
}

// Buffer returns the lent buffer, or nil.
func (v *Viewport) Buffer() render.Buffer { return v.buffer }

// SetBuffer lends the buffer the viewport renders into while offscreen.
// The caller keeps ownership. The reference is dropped whenever resources
// are released, which includes Window.Invalidate, so after a context reset
// the host lends the buffer again before offscreen frames resume.
func (v *Viewport) SetBuffer(b render.Buffer) {
	if v.buffer == b {
		return
	}
	v.buffer = b
	v.requestFrame()
}

// DevicePixelRatio returns the explicit ratio if one was set, otherwise the
// output scale, otherwise the window ratio.
func (v *Viewport) DevicePixelRatio() float64 {
	if v.dpr > 0 {
		return v.dpr
	}
	if v.output != nil && v.output.Scale() > 0 {
		return v.output.Scale()
	}
	return v.EffectiveDevicePixelRatio()
}

// SetDevicePixelRatio pins the ratio to r, even when r equals the ratio
// currently taken from the output. Non-positive values are ignored.
func (v *Viewport) SetDevicePixelRatio(r float64) {
	if r <= 0 || r == v.dpr {
		return
	}
	v.dpr = r
	v.notifyRatio()
}

// DevicePixelRatioChanged fires after the effective ratio changes.
func (v *Viewport) DevicePixelRatioChanged() *sgview.Signal { return &v.dprChanged }

// Offscreen reports whether frames go to the lent buffer.
func (v *Viewport) Offscreen() bool { return v.offscreen }

// SetOffscreen switches between presenting on the output and rendering
// into the lent buffer.
func (v *Viewport) SetOffscreen(offscreen bool) {
	if v.offscreen == offscreen {
		return
	}
	v.offscreen = offscreen
	v.requestFrame()
	v.offscreenChanged.Emit()
}

// OffscreenChanged fires after SetOffscreen changes the mode.
func (v *Viewport) OffscreenChanged() *sgview.Signal { return &v.offscreenChanged }

// IsRoot reports whether this is the primary viewport of its output.
func (v *Viewport) IsRoot() bool { return v.root }

// SetRoot marks the viewport as primary. Exclusivity is advisory: a second
// root for the same output is logged, not refused.
func (v *Viewport) SetRoot(root bool) {
	if v.root == root {
		return
	}
	if root {
		if other := RootViewport(v.Window(), v.output); other != nil && other != v {
			sgview.Logger().Warn("viewport: output already has a root viewport",
				"output", outputName(v.output))
		}
	}
	v.root = root
	v.rootChanged.Emit()
}

// RootChanged fires after SetRoot changes the flag.
func (v *Viewport) RootChanged() *sgview.Signal { return &v.rootChanged }

// SetOutputScale changes the output scale. A viewport without an explicit
// ratio follows it.
func (v *Viewport) SetOutputScale(scale float64) {
	if v.output == nil {
		return
	}
	v.output.SetScale(scale)
}

// RotateOutput changes the transform the output applies to presented frames.
func (v *Viewport) RotateOutput(t output.Transform) {
	if v.output == nil || !t.IsValid() {
		return
	}
	v.output.SetTransform(t)
}

// IsTextureProvider always reports true: the last frame is sampleable.
func (v *Viewport) IsTextureProvider() bool { return true }

// TextureProvider returns the provider of the last rendered frame.
func (v *Viewport) TextureProvider() sg.TextureProvider { return &v.frame }

// Frames returns how many frames the viewport rendered.
func (v *Viewport) Frames() int { return v.frames }

// ComponentComplete requires a bound output and subscribes to its changes.
func (v *Viewport) ComponentComplete() error {
	if v.output == nil {
		return ErrNoOutput
	}
	v.outputConn.Disconnect()
	v.outputConn = v.output.Changed().Connect(v.onOutputChanged)
	v.updateImplicitSize()

	gpu := false
	if w := v.Window(); w != nil {
		gpu = render.HasDevice(w.Device())
	}
	sgview.Logger().Info("viewport: completed",
		"output", v.output.Name(), "root", v.root, "offscreen", v.offscreen, "gpu", gpu)
	return v.Item.ComponentComplete()
}

// ReleaseResources drops the lent buffer, the swapchain and the published
// frame. It makes no GPU calls and is safe to call at any point, more than
// once.
func (v *Viewport) ReleaseResources() {
	v.buffer = nil
	v.swapchain = nil
	v.frame.SetTexture(nil)
	v.needsFrame = true
}

// ItemChange follows window membership and ratio changes.
func (v *Viewport) ItemChange(change sg.ItemChange) {
	switch change {
	case sg.ItemSceneChange:
		v.invalidateConn.Disconnect()
		v.outputConn.Disconnect()
		v.invalidateConn = sgview.Connection{}
		v.outputConn = sgview.Connection{}
		if w := v.Window(); w != nil {
			v.invalidateConn = w.SceneGraphInvalidated().Connect(v.invalidateSceneGraph)
			if v.IsComponentComplete() && v.output != nil {
				v.outputConn = v.output.Changed().Connect(v.onOutputChanged)
			}
		}
		v.notifyRatio()
		v.needsFrame = true
	case sg.ItemDevicePixelRatioHasChanged:
		v.notifyRatio()
	}
}

// invalidateSceneGraph runs on GPU context reset. Presentation state is
// rebuilt from scratch on the next frame.
func (v *Viewport) invalidateSceneGraph() {
	v.swapchain = nil
	v.frame.SetTexture(nil)
	v.needsFrame = true
}

func (v *Viewport) onOutputChanged() {
	v.notifyRatio()
	v.updateImplicitSize()
	v.requestFrame()
}

// notifyRatio emits DevicePixelRatioChanged if the effective ratio moved.
func (v *Viewport) notifyRatio() {
	r := v.DevicePixelRatio()
	if r == v.reported {
		return
	}
	v.reported = r
	v.updateImplicitSize()
	v.requestFrame()
	v.dprChanged.Emit()
}

// updateImplicitSize sizes the viewport to the output mode in logical units.
func (v *Viewport) updateImplicitSize() {
	if v.output == nil {
		return
	}
	mode := v.output.Transform().Invert().OutputSize(v.output.Size())
	if mode.X <= 0 || mode.Y <= 0 {
		return
	}
	v.SetImplicitSize(sgview.SizeOf(mode).Scale(1 / v.DevicePixelRatio()))
}

func (v *Viewport) requestFrame() {
	v.needsFrame = true
	v.Update()
}

// RenderFrame renders the covered part of the scene. Frames are skipped
// when nothing inside the viewport rectangle was repainted since the last
// Sync.
func (v *Viewport) RenderFrame() {
	w := v.Window()
	if w == nil || v.output == nil {
		return
	}
	pos := v.Position()
	if !v.needsFrame && !w.Damaged(sgview.R(pos.X, pos.Y, v.Width(), v.Height())) {
		return
	}

	dpr := v.DevicePixelRatio()
	content := v.Size().Scale(dpr)
	px := content.Ceil()
	if px.X == 0 || px.Y == 0 {
		return
	}
	t := v.output.Transform()

	var target *image.RGBA
	if v.offscreen {
		if v.buffer == nil {
			return
		}
		target = v.buffer.Image()
	} else {
		out := t.OutputSize(px)
		if v.swapchain == nil {
			v.swapchain = render.NewPixmapTarget(out.X, out.Y)
		} else {
			v.swapchain.Resize(out.X, out.Y)
		}
		target = v.swapchain.Image()
	}

	draw.Draw(target, target.Bounds(), image.Transparent, image.Point{}, draw.Src)
	m := t.Matrix(float64(px.X), float64(px.Y)).
		Multiply(sgview.Scale(dpr, dpr)).
		Multiply(sgview.Translate(-pos.X, -pos.Y))
	w.DrawScene(target, m, v)
	v.frames++

	if !v.offscreen {
		if err := v.output.Commit(v.swapchain); err != nil {
			sgview.Logger().Warn("viewport: commit failed", "output", v.output.Name(), "err", err)
		}
	}
	v.publish(target)

	v.needsFrame = false
}

// publish exposes img as the frame texture.
func (v *Viewport) publish(img *image.RGBA) {
	if tex, ok := v.frame.Texture().(*sg.ImageTexture); ok && tex.RGBA() == img {
		v.frame.Notify()
		return
	}
	v.frame.SetTexture(sg.NewImageTexture(img))
}

// RootViewport returns the first root viewport of o in w, or nil.
func RootViewport(w *sg.Window, o output.Output) *Viewport {
	if w == nil || o == nil {
		return nil
	}
	for _, d := range w.Items() {
		if vp, ok := d.(*Viewport); ok && vp.root && vp.output == o {
			return vp
		}
	}
	return nil
}

func outputName(o output.Output) string {
	if o == nil {
		return ""
	}
	return o.Name()
}

var (
	_ sg.Drawable      = (*Viewport)(nil)
	_ sg.FrameRenderer = (*Viewport)(nil)
)

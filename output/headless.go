// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package output

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/gogpu/sgview"
	"github.com/gogpu/sgview/render"
)

// Headless output errors.
var (
	// ErrClosed is returned when committing to a closed output.
	ErrClosed = errors.New("output: output is closed")

	// ErrSizeMismatch is returned when a frame does not fit the output mode
	// under the current transform.
	ErrSizeMismatch = errors.New("output: frame size does not match output")
)

// HeadlessOption configures a Headless output during creation.
type HeadlessOption func(*Headless)

// WithScale sets the initial output scale.
func WithScale(scale float64) HeadlessOption {
	return func(h *Headless) {
		if validScale(scale) {
			h.scale = scale
		}
	}
}

// WithTransform sets the initial presentation transform.
func WithTransform(t Transform) HeadlessOption {
	return func(h *Headless) {
		if t.IsValid() {
			h.transform = t
		}
	}
}

// WithStrictSize makes Commit reject frames that do not match the mode.
func WithStrictSize() HeadlessOption {
	return func(h *Headless) {
		h.strict = true
	}
}

// Headless is an in-memory Output. Committed frames are copied into a
// framebuffer that can be inspected with Framebuffer.
type Headless struct {
	name      string
	size      image.Point
	scale     float64
	transform Transform
	strict    bool

	fb      *render.PixmapTarget
	commits int
	closed  bool
	changed sgview.Signal
}

// NewHeadless creates a headless output with the given mode size.
func NewHeadless(name string, width, height int, opts ...HeadlessOption) *Headless {
	h := &Headless{
		name:  name,
		size:  image.Pt(max(width, 0), max(height, 0)),
		scale: 1,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Name returns the output name.
func (h *Headless) Name() string { return h.name }

// Size returns the mode size.
func (h *Headless) Size() image.Point { return h.size }

// Scale returns the output scale.
func (h *Headless) Scale() float64 { return h.scale }

// SetScale changes the output scale. Invalid or unchanged values are ignored.
func (h *Headless) SetScale(scale float64) {
	if !validScale(scale) || scale == h.scale {
		return
	}
	h.scale = scale
	h.changed.Emit()
}

// Transform returns the presentation transform.
func (h *Headless) Transform() Transform { return h.transform }

// SetTransform changes the presentation transform.
func (h *Headless) SetTransform(t Transform) {
	if !t.IsValid() || t == h.transform {
		return
	}
	h.transform = t
	h.changed.Emit()
}

// Changed fires after the scale or transform changes.
func (h *Headless) Changed() *sgview.Signal { return &h.changed }

// Commit copies frame into the framebuffer.
func (h *Headless) Commit(frame render.RenderTarget) error {
	if h.closed {
		return ErrClosed
	}
	fw, fh := frame.Width(), frame.Height()
	if h.strict && (fw != h.size.X || fh != h.size.Y) {
		return fmt.Errorf("%w: frame %dx%d, mode %dx%d", ErrSizeMismatch, fw, fh, h.size.X, h.size.Y)
	}

	if h.fb == nil {
		h.fb = render.NewPixmapTarget(fw, fh)
	} else {
		h.fb.Resize(fw, fh)
	}
	dst := h.fb.Image()
	src := frame.Pixels()
	stride := frame.Stride()
	for y := 0; y < fh; y++ {
		copy(dst.Pix[y*dst.Stride:y*dst.Stride+fw*4], src[y*stride:y*stride+fw*4])
	}
	h.commits++
	return nil
}

// Framebuffer returns the last committed frame, or nil before the first commit.
func (h *Headless) Framebuffer() *image.RGBA {
	if h.fb == nil {
		return nil
	}
	return h.fb.Image()
}

// Commits returns the number of successful commits.
func (h *Headless) Commits() int { return h.commits }

// Close rejects further commits and drops the framebuffer.
func (h *Headless) Close() {
	h.closed = true
	h.fb = nil
}

func validScale(s float64) bool {
	return s > 0 && !math.IsInf(s, 0) && !math.IsNaN(s)
}

// Ensure Headless implements Output.
var _ Output = (*Headless)(nil)

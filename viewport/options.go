// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package viewport

import (
	"github.com/gogpu/sgview/output"
	"github.com/gogpu/sgview/render"
)

// Option configures a Viewport before it is completed.
//
// Example:
//
//	vp := viewport.New(
//	    viewport.WithOutput(out),
//	    viewport.WithOffscreen(true),
//	    viewport.WithBuffer(buf),
//	)
type Option func(*Viewport)

// WithOutput binds the output.
func WithOutput(o output.Output) Option {
	return func(v *Viewport) {
		if o != nil {
			v.output = o
		}
	}
}

// WithDevicePixelRatio sets an explicit device pixel ratio.
func WithDevicePixelRatio(r float64) Option {
	return func(v *Viewport) {
		if r > 0 {
			v.dpr = r
		}
	}
}

// WithOffscreen renders into the supplied buffer instead of the output.
func WithOffscreen(offscreen bool) Option {
	return func(v *Viewport) {
		v.offscreen = offscreen
	}
}

// WithRoot marks the viewport as the primary viewport of its output.
func WithRoot(root bool) Option {
	return func(v *Viewport) {
		v.root = root
	}
}

// WithBuffer lends the buffer used while offscreen.
func WithBuffer(b render.Buffer) Option {
	return func(v *Viewport) {
		v.buffer = b
	}
}

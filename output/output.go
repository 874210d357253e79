// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package output

import (
	"image"

	"github.com/gogpu/sgview"
	"github.com/gogpu/sgview/render"
)

// Output is a display output as consumed by a viewport.
type Output interface {
	// Name returns the connector name, e.g. "HDMI-A-1".
	Name() string

	// Size returns the current mode size in physical pixels.
	Size() image.Point

	// Scale returns the output scale factor.
	Scale() float64

	// SetScale changes the output scale factor.
	SetScale(scale float64)

	// Transform returns the presentation transform.
	Transform() Transform

	// SetTransform changes the presentation transform.
	SetTransform(t Transform)

	// Commit presents a finished frame. The output copies what it needs;
	// the frame is not retained after Commit returns.
	Commit(frame render.RenderTarget) error

	// Changed fires after the scale or transform changes.
	Changed() *sgview.Signal
}

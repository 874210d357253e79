// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package output

import (
	"image"

	"github.com/gogpu/sgview"
)

// Transform is one of the eight dihedral transforms applied to content when
// it is presented on an output. Rotations are counter-clockwise; flipped
// variants mirror around the vertical axis before rotating.
type Transform uint8

const (
	// TransformNormal presents content unchanged.
	TransformNormal Transform = iota

	// Transform90 rotates content 90 degrees.
	Transform90

	// Transform180 rotates content 180 degrees.
	Transform180

	// Transform270 rotates content 270 degrees.
	Transform270

	// TransformFlipped mirrors content horizontally.
	TransformFlipped

	// TransformFlipped90 mirrors, then rotates 90 degrees.
	TransformFlipped90

	// TransformFlipped180 mirrors, then rotates 180 degrees.
	TransformFlipped180

	// TransformFlipped270 mirrors, then rotates 270 degrees.
	TransformFlipped270
)

var transformNames = [...]string{
	"normal", "90", "180", "270",
	"flipped", "flipped-90", "flipped-180", "flipped-270",
}

// String returns the transform name.
func (t Transform) String() string {
	if int(t) < len(transformNames) {
		return transformNames[t]
	}
	return "invalid"
}

// ParseTransform parses a name produced by String.
func ParseTransform(s string) (Transform, bool) {
	for i, name := range transformNames {
		if name == s {
			return Transform(i), true
		}
	}
	return TransformNormal, false
}

// IsValid reports whether t is one of the eight transforms.
func (t Transform) IsValid() bool {
	return t <= TransformFlipped270
}

// SwapsAxes reports whether the transform exchanges width and height.
func (t Transform) SwapsAxes() bool {
	return t&1 == 1
}

// Invert returns the transform that undoes t.
func (t Transform) Invert() Transform {
	switch t {
	case Transform90:
		return Transform270
	case Transform270:
		return Transform90
	default:
		// 180 and every mirrored transform are involutions.
		return t
	}
}

// OutputSize returns the presented size of content of the given size.
func (t Transform) OutputSize(content image.Point) image.Point {
	if t.SwapsAxes() {
		return image.Point{X: content.Y, Y: content.X}
	}
	return content
}

// Matrix maps content coordinates inside a w x h rectangle to presented
// coordinates.
func (t Transform) Matrix(w, h float64) sgview.Matrix {
	switch t {
	case Transform90:
		return sgview.Matrix{A: 0, B: 1, C: 0, D: -1, E: 0, F: w}
	case Transform180:
		return sgview.Matrix{A: -1, B: 0, C: w, D: 0, E: -1, F: h}
	case Transform270:
		return sgview.Matrix{A: 0, B: -1, C: h, D: 1, E: 0, F: 0}
	case TransformFlipped:
		return sgview.Matrix{A: -1, B: 0, C: w, D: 0, E: 1, F: 0}
	case TransformFlipped90:
		return sgview.Matrix{A: 0, B: 1, C: 0, D: 1, E: 0, F: 0}
	case TransformFlipped180:
		return sgview.Matrix{A: 1, B: 0, C: 0, D: 0, E: -1, F: h}
	case TransformFlipped270:
		return sgview.Matrix{A: 0, B: -1, C: h, D: -1, E: 0, F: w}
	default:
		return sgview.Identity()
	}
}

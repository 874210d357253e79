// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package output

import (
	"image"
	"math"
	"testing"

	"github.com/gogpu/sgview"
)

var allTransforms = []Transform{
	TransformNormal, Transform90, Transform180, Transform270,
	TransformFlipped, TransformFlipped90, TransformFlipped180, TransformFlipped270,
}

func near(a, b sgview.Point) bool {
	return math.Abs(a.X-b.X) < 1e-9 && math.Abs(a.Y-b.Y) < 1e-9
}

func TestTransformCorners(t *testing.T) {
	const w, h = 100, 50
	// Where the content's top-left corner lands.
	tests := []struct {
		t       Transform
		topLeft sgview.Point
	}{
		{TransformNormal, sgview.Pt(0, 0)},
		{Transform90, sgview.Pt(0, w)},
		{Transform180, sgview.Pt(w, h)},
		{Transform270, sgview.Pt(h, 0)},
		{TransformFlipped, sgview.Pt(w, 0)},
		{TransformFlipped90, sgview.Pt(0, 0)},
		{TransformFlipped180, sgview.Pt(0, h)},
		{TransformFlipped270, sgview.Pt(h, w)},
	}
	for _, tt := range tests {
		t.Run(tt.t.String(), func(t *testing.T) {
			got := tt.t.Matrix(w, h).TransformPoint(sgview.Pt(0, 0))
			if !near(got, tt.topLeft) {
				t.Errorf("top-left -> %v, want %v", got, tt.topLeft)
			}
		})
	}
}

func TestTransformStaysInBounds(t *testing.T) {
	const w, h = 100, 50
	for _, tr := range allTransforms {
		t.Run(tr.String(), func(t *testing.T) {
			out := tr.OutputSize(image.Pt(w, h))
			got := tr.Matrix(w, h).MapRect(sgview.R(0, 0, w, h))
			want := sgview.R(0, 0, float64(out.X), float64(out.Y))
			if got != want {
				t.Errorf("mapped bounds = %+v, want %+v", got, want)
			}
		})
	}
}

func TestTransformInvert(t *testing.T) {
	const w, h = 100, 50
	p := sgview.Pt(13, 7)
	for _, tr := range allTransforms {
		t.Run(tr.String(), func(t *testing.T) {
			out := tr.OutputSize(image.Pt(w, h))
			fwd := tr.Matrix(w, h)
			back := tr.Invert().Matrix(float64(out.X), float64(out.Y))
			if got := back.TransformPoint(fwd.TransformPoint(p)); !near(got, p) {
				t.Errorf("round trip = %v, want %v", got, p)
			}
		})
	}
}

func TestTransformSwapsAxes(t *testing.T) {
	for _, tr := range allTransforms {
		want := tr == Transform90 || tr == Transform270 || tr == TransformFlipped90 || tr == TransformFlipped270
		if tr.SwapsAxes() != want {
			t.Errorf("%v.SwapsAxes() = %v, want %v", tr, tr.SwapsAxes(), want)
		}
	}
	if got := Transform90.OutputSize(image.Pt(4, 3)); got != image.Pt(3, 4) {
		t.Errorf("OutputSize = %v, want (3,4)", got)
	}
}

func TestParseTransform(t *testing.T) {
	for _, tr := range allTransforms {
		got, ok := ParseTransform(tr.String())
		if !ok || got != tr {
			t.Errorf("ParseTransform(%q) = %v, %v", tr.String(), got, ok)
		}
	}
	if _, ok := ParseTransform("sideways"); ok {
		t.Error("ParseTransform accepted an unknown name")
	}
	if Transform(42).IsValid() || Transform(42).String() != "invalid" {
		t.Error("Transform(42) should be invalid")
	}
}

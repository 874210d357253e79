// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package sg

import (
	"image"
	"image/color"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/sgview"
)

// quadrants returns a 4x4 texture with a distinct color per 2x2 quadrant.
func quadrants() (*ImageTexture, [4]color.RGBA) {
	cols := [4]color.RGBA{
		{R: 255, A: 255},
		{G: 255, A: 255},
		{B: 255, A: 255},
		{R: 255, G: 255, A: 255},
	}
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.SetRGBA(x, y, cols[(y/2)*2+x/2])
		}
	}
	return NewImageTexture(img), cols
}

type destroyTexture struct {
	*ImageTexture
	destroyed int
}

func (d *destroyTexture) Destroy() { d.destroyed++ }

func TestImageNodeCrop(t *testing.T) {
	tex, cols := quadrants()
	n := NewImageNode()
	n.SetTexture(tex)
	n.SetSourceRect(sgview.R(2, 2, 2, 2)) // bottom-right quadrant
	n.SetRect(sgview.R(0, 0, 8, 8))

	dst := image.NewRGBA(image.Rect(0, 0, 8, 8))
	n.Render(dst, sgview.Identity())

	for _, p := range []image.Point{{0, 0}, {7, 7}, {3, 4}} {
		if got := dst.RGBAAt(p.X, p.Y); got != cols[3] {
			t.Errorf("pixel %v = %v, want %v", p, got, cols[3])
		}
	}
}

func TestImageNodeInvalidRectsDrawNothing(t *testing.T) {
	tex, _ := quadrants()
	n := NewImageNode()
	n.SetTexture(tex)
	n.SetRect(sgview.R(0, 0, 4, 4))

	dst := image.NewRGBA(image.Rect(0, 0, 4, 4))
	n.Render(dst, sgview.Identity()) // no source rect
	if dst.RGBAAt(0, 0).A != 0 {
		t.Error("node without a valid source rect should not draw")
	}
}

func TestImageNodeDirtyTracking(t *testing.T) {
	n := NewImageNode()
	if n.Dirty() != 0 {
		t.Fatalf("new node Dirty() = %v", n.Dirty())
	}
	n.SetRect(sgview.R(0, 0, 1, 1))
	if n.Dirty()&DirtyGeometry == 0 {
		t.Error("SetRect should mark geometry dirty")
	}
	n.MarkDirty(DirtyMaterial)
	if n.Dirty()&DirtyMaterial == 0 {
		t.Error("MarkDirty(DirtyMaterial) not recorded")
	}
}

func TestImageNodeReleaseOwnership(t *testing.T) {
	tex, _ := quadrants()

	borrowed := &destroyTexture{ImageTexture: tex}
	n := NewImageNode()
	n.SetTexture(borrowed)
	n.SetOwnsTexture(false)
	n.Release()
	n.Release()
	if borrowed.destroyed != 0 {
		t.Errorf("borrowed texture destroyed %d times", borrowed.destroyed)
	}
	if !n.Released() || n.Texture() != nil {
		t.Error("Release should drop the texture reference")
	}

	owned := &destroyTexture{ImageTexture: tex}
	n = NewImageNode()
	n.SetTexture(owned)
	n.SetOwnsTexture(true)
	n.Release()
	n.Release()
	if owned.destroyed != 1 {
		t.Errorf("owned texture destroyed %d times, want 1", owned.destroyed)
	}
}

func TestImageNodeSamplerState(t *testing.T) {
	tests := []struct {
		name      string
		filter    Filtering
		mipmap    Filtering
		aniso     Anisotropy
		wantMode  gputypes.FilterMode
		wantMips  bool
		wantClamp uint16
	}{
		{"nearest plain", FilterNearest, FilterNone, AnisotropyNone, gputypes.FilterModeNearest, false, 1},
		{"linear mipmapped", FilterLinear, FilterLinear, Anisotropy4x, gputypes.FilterModeLinear, true, 4},
		{"linear 16x", FilterLinear, FilterNone, Anisotropy16x, gputypes.FilterModeLinear, false, 16},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NewImageNode()
			n.SetFiltering(tt.filter)
			n.SetMipmapFiltering(tt.mipmap)
			n.SetAnisotropyLevel(tt.aniso)
			s := n.SamplerState()
			if s.MinFilter != tt.wantMode || s.MagFilter != tt.wantMode {
				t.Errorf("filters = %v/%v, want %v", s.MinFilter, s.MagFilter, tt.wantMode)
			}
			if s.Mipmaps != tt.wantMips {
				t.Errorf("Mipmaps = %v, want %v", s.Mipmaps, tt.wantMips)
			}
			if s.MaxAnisotropy != tt.wantClamp {
				t.Errorf("MaxAnisotropy = %d, want %d", s.MaxAnisotropy, tt.wantClamp)
			}
		})
	}
}

func TestFillNodeRender(t *testing.T) {
	c := color.RGBA{G: 200, A: 255}
	n := NewFillNode(sgview.R(1, 1, 2, 2), c)
	dst := image.NewRGBA(image.Rect(0, 0, 4, 4))
	n.Render(dst, sgview.Identity())

	if got := dst.RGBAAt(1, 1); got != c {
		t.Errorf("pixel (1,1) = %v, want %v", got, c)
	}
	if got := dst.RGBAAt(0, 0); got.A != 0 {
		t.Errorf("pixel (0,0) = %v, want transparent", got)
	}
	if got := dst.RGBAAt(3, 3); got.A != 0 {
		t.Errorf("pixel (3,3) = %v, want transparent", got)
	}

	n.Release()
	dst2 := image.NewRGBA(image.Rect(0, 0, 4, 4))
	n.Render(dst2, sgview.Identity())
	if dst2.RGBAAt(1, 1).A != 0 {
		t.Error("released node should not draw")
	}
}

func TestFilteringString(t *testing.T) {
	if FilterLinear.String() != "linear" || FilterNone.String() != "none" || Filtering(9).String() != "unknown" {
		t.Error("unexpected Filtering names")
	}
}

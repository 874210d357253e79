// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package viewport binds a drawable rectangle of the scene to a display output.
//
// A Viewport renders the part of its window covered by its own rectangle at
// its device pixel ratio, applies the output transform and either commits
// the frame to the output or, when offscreen, writes it into a buffer lent
// by the caller. The last frame is published through the viewport's texture
// provider, so proxies can show a viewport like any other source.
//
//	out := output.NewHeadless("HDMI-A-1", 1920, 1080)
//	vp := viewport.New(viewport.WithOutput(out), viewport.WithRoot(true))
//	if err := window.Add(vp); err != nil {
//	    return err // no output bound
//	}
//	vp.RotateOutput(output.Transform90)
//	window.Sync()
//
// # Scale Controls
//
// DevicePixelRatio sets how many physical pixels map to one logical unit.
// Until it is set explicitly it follows the output scale, which
// SetOutputScale changes. The two are never multiplied.
package viewport

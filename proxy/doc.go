// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package proxy shows the already rendered pixels of one drawable in another.
//
// A TextureProxy samples the texture of its source item instead of drawing
// the source again. Sources that are not texture providers are forced into
// an offscreen layer while bound; the proxy undoes exactly what it did when
// it lets go. With HideSource set the source stops drawing on its own and
// is only seen through its proxies.
//
//	thumb := proxy.New(
//	    proxy.WithSourceItem(panel),
//	    proxy.WithSourceRect(sgview.R(0, 0, 64, 64)),
//	    proxy.WithHideSource(true),
//	)
//	thumb.SetSize(sgview.Sz(32, 32))
//	if err := window.Add(thumb); err != nil {
//	    return err
//	}
//
// Proxies are texture providers themselves, so a proxy of a proxy (or of a
// viewport) samples the first texture in the chain without extra passes.
package proxy

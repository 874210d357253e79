// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package sg is the retained scene-graph substrate used by viewports and
// texture proxies.
//
// # Drawables
//
// Every node of the scene embeds Item and implements Drawable. The Item base
// carries geometry, the effect-dependency claim counter (EffectRefs), the
// offscreen Layer and the retained paint node. Drawables that produce pixels
// also implement Painter.
//
// # Texture Providers
//
// A TextureProvider exposes a current Texture and a TextureChanged signal.
// Any drawable can be one: an ImageItem is a provider natively, and every item
// becomes one while its Layer is enabled.
//
// # Frame Pipeline
//
// Window drives the two-phase pipeline. Property setters run in the control
// phase and schedule updates. Window.Sync runs the render/sync phase:
//
//	for each dirty item:   node = UpdatePaintNode(node)
//	for each dirty layer:  capture node into the layer texture
//	for each viewport:     RenderFrame
//
// Updates scheduled during Sync (for example by TextureChanged handlers) are
// processed in further passes of the same Sync, up to WithMaxSyncPasses.
//
// # Thread Safety
//
// Window and Item are NOT thread-safe. EffectRefs and sgview.Signal are safe
// for concurrent use; everything else must stay on the control goroutine.
package sg

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render provides the integration layer between sgview and the host
// GPU framework.
//
// # Key Principle
//
// sgview RECEIVES a GPU device from the host application, it does NOT create
// its own. Windows carry the injected DeviceHandle so that drawables can
// reach the shared device; texture and buffer lifetime below that handle
// belongs to the host.
//
// # Core Types
//
//   - DeviceHandle: GPU device access from the host application
//   - RenderTarget: where a frame is written (CPU pixels)
//   - Buffer: an externally owned target handed to offscreen viewports
//   - PixmapTarget: CPU-backed *image.RGBA implementation of both
//
// # Thread Safety
//
// Targets are NOT thread-safe. A target should only be written during the
// render/sync phase of the frame that owns it.
package render

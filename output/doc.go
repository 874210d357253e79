// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package output describes display outputs as seen by viewports.
//
// An Output exposes its physical scale, a settable presentation Transform
// and a Commit entry point that receives finished frames. Mode-setting and
// physical geometry belong to the compositor backend; this package only
// carries what a viewport consumes.
//
// Headless is a complete in-memory Output used by tests, the demo command
// and servers running without a display.
package output

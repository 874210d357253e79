// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package sg

import "github.com/gogpu/sgview/render"

// defaultMaxSyncPasses bounds how often one Sync re-runs paint updates that
// were scheduled while it was running.
const defaultMaxSyncPasses = 4

// WindowOption configures a Window during creation.
//
// Example:
//
//	w := sg.NewWindow(
//	    sg.WithDevicePixelRatio(2),
//	    sg.WithDevice(app.GPUContextProvider()),
//	)
type WindowOption func(*windowOptions)

// windowOptions holds optional configuration for Window creation.
type windowOptions struct {
	dpr       float64
	device    render.DeviceHandle
	maxPasses int
}

// defaultWindowOptions returns the default window options.
func defaultWindowOptions() windowOptions {
	return windowOptions{
		dpr:       0, // Follows the platform ratio if unset
		device:    render.NullDeviceHandle{},
		maxPasses: defaultMaxSyncPasses,
	}
}

// WithDevicePixelRatio sets the window's effective device pixel ratio.
// Non-positive values leave the platform ratio in place.
func WithDevicePixelRatio(r float64) WindowOption {
	return func(o *windowOptions) {
		if r > 0 {
			o.dpr = r
		}
	}
}

// WithDevice injects the host GPU device.
func WithDevice(h render.DeviceHandle) WindowOption {
	return func(o *windowOptions) {
		if h != nil {
			o.device = h
		}
	}
}

// WithMaxSyncPasses sets how many paint passes one Sync may run.
// Values below 1 are ignored.
func WithMaxSyncPasses(n int) WindowOption {
	return func(o *windowOptions) {
		if n >= 1 {
			o.maxPasses = n
		}
	}
}

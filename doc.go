// Package sgview provides the output-viewport and texture-proxy layer of a
// compositor rendering front-end.
//
// # Overview
//
// sgview maps display outputs onto drawable rectangles of a retained scene
// graph, and lets one drawable reuse the already-rendered pixels of another
// without re-rendering the source.
//
//	window := sg.NewWindow(sg.WithDevicePixelRatio(2))
//
//	// A plain drawable that is not a texture provider by itself.
//	src := sg.NewRectangle(color.RGBA{R: 255, A: 255})
//	src.SetSize(sgview.Sz(100, 50))
//
//	// Re-show the source elsewhere and hide the source itself.
//	p := proxy.New(proxy.WithSourceItem(src), proxy.WithHideSource(true))
//
//	window.Add(src)
//	window.Add(p)
//
//	// Present everything on a rotated headless output.
//	out := output.NewHeadless("HEADLESS-1", 1920, 1080, output.WithTransform(output.Transform90))
//	vp := viewport.New(viewport.WithOutput(out), viewport.WithRoot(true))
//	window.Add(vp)
//
//	// Render/sync phase.
//	window.Sync()
//
// # Architecture
//
// The library is organized into:
//   - Root: geometry (Point, Size, Rect, Matrix), Signal, logging
//   - render: host GPU device injection and CPU render targets
//   - sg: retained scene-graph substrate (items, textures, paint nodes, window)
//   - output: output transforms and a headless output
//   - viewport: binds a drawable rectangle to an output
//   - proxy: republishes a source drawable's texture
//
// # Frame Pipeline
//
// Property setters run in the control phase and only record state and schedule
// repaints. Window.Sync runs the render/sync phase: paint nodes are rebuilt for
// dirty items, offscreen layers are captured into textures and viewports render
// their frames. Nothing in this module spawns goroutines.
//
// # Coordinate System
//
// Uses standard computer graphics coordinates:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
package sgview

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)

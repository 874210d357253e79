// Command sgviewdemo renders a small scene through a headless output.
//
// The scene holds a background, a panel and a texture proxy that shows a
// magnified corner of the panel. It is presented through a rotated viewport
// and the committed framebuffer is written as PNG.
package main

import (
	"flag"
	"image"
	"image/color"
	"image/png"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/sgview"
	"github.com/gogpu/sgview/output"
	"github.com/gogpu/sgview/proxy"
	"github.com/gogpu/sgview/render"
	"github.com/gogpu/sgview/sg"
	"github.com/gogpu/sgview/viewport"
)

func main() {
	var (
		width     = flag.Int("width", 640, "output mode width")
		height    = flag.Int("height", 480, "output mode height")
		scale     = flag.Float64("scale", 1, "output scale")
		rotate    = flag.String("transform", "normal", "output transform (normal, 90, 180, 270, flipped, flipped-90, ...)")
		outFile   = flag.String("output", "sgview.png", "framebuffer PNG")
		layerFile = flag.String("offscreen", "", "also render offscreen into this PNG")
		hide      = flag.Bool("hide-source", false, "hide the proxied panel")
		bgHex     = flag.String("background", "#1e2a3a", "background color")
		verbose   = flag.Bool("v", false, "log pipeline events")
	)
	flag.Parse()

	if *verbose {
		sgview.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	background, err := sgview.ParseHex(*bgHex)
	if err != nil {
		log.Fatal(err)
	}
	transform, ok := output.ParseTransform(*rotate)
	if !ok {
		log.Fatalf("unknown transform %q", *rotate)
	}

	out := output.NewHeadless("headless-1", *width, *height,
		output.WithScale(*scale), output.WithTransform(transform))
	w := sg.NewWindow(sg.WithDevicePixelRatio(*scale))
	defer w.Close()

	vp := viewport.New(viewport.WithOutput(out), viewport.WithRoot(true))
	buildScene(w, background, *hide)
	if err := w.Add(vp); err != nil {
		log.Fatalf("Failed to add viewport: %v", err)
	}

	var buf *render.PixmapTarget
	if *layerFile != "" {
		px := vp.Size().Scale(vp.DevicePixelRatio()).Ceil()
		if buf, err = render.NewBuffer(px.X, px.Y); err != nil {
			log.Fatalf("Failed to allocate buffer: %v", err)
		}
		offscreen := viewport.New(viewport.WithOutput(out), viewport.WithOffscreen(true), viewport.WithBuffer(buf))
		if err := w.Add(offscreen); err != nil {
			log.Fatalf("Failed to add offscreen viewport: %v", err)
		}
	}

	// Layers and proxies settle over two frames.
	w.Sync()
	w.Sync()

	if err := savePNG(*outFile, out.Framebuffer()); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	log.Printf("Frame saved to %s (%v, %d commits)\n", *outFile, transform, out.Commits())

	if buf != nil {
		if err := savePNG(*layerFile, buf.Image()); err != nil {
			log.Fatalf("Failed to save: %v", err)
		}
		log.Printf("Offscreen frame saved to %s\n", *layerFile)
	}
}

func buildScene(w *sg.Window, background color.Color, hide bool) {
	bg := sg.NewRectangle(background)
	bg.SetSize(sgview.Sz(4096, 4096))

	panel := sg.NewImageItem(sg.NewImageTexture(checkerboard(128, 128, 16)))
	panel.SetPosition(sgview.Pt(40, 40))

	badge := sg.NewRectangle(color.RGBA{R: 0xf0, G: 0x80, B: 0x20, A: 0xff})
	badge.SetPosition(sgview.Pt(200, 60))
	badge.SetSize(sgview.Sz(80, 40))

	zoom := proxy.New(
		proxy.WithSourceItem(panel),
		proxy.WithSourceRect(sgview.R(0, 0, 32, 32)),
		proxy.WithHideSource(hide),
	)
	zoom.SetSmooth(false)
	zoom.SetPosition(sgview.Pt(40, 200))
	zoom.SetSize(sgview.Sz(128, 128))

	mirror := proxy.New(proxy.WithSourceItem(badge), proxy.WithMipmap(true))
	mirror.SetPosition(sgview.Pt(200, 200))
	mirror.SetSize(sgview.Sz(40, 20))

	for _, d := range []sg.Drawable{bg, panel, badge, zoom, mirror} {
		if err := w.Add(d); err != nil {
			log.Fatalf("Failed to add %T: %v", d, err)
		}
	}
}

func checkerboard(w, h, cell int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	light := color.RGBA{R: 0xe0, G: 0xe0, B: 0xe0, A: 0xff}
	dark := color.RGBA{R: 0x40, G: 0x60, B: 0xa0, A: 0xff}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x/cell+y/cell)%2 == 0 {
				img.SetRGBA(x, y, light)
			} else {
				img.SetRGBA(x, y, dark)
			}
		}
	}
	return img
}

func savePNG(path string, img image.Image) error {
	if img == nil {
		return os.ErrNotExist
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// Command rtrender renders one ray-traced frame to a PNG file.
//
// By default the frame is partitioned into tiles and rendered on a worker
// pool; -single renders the whole frame on one engine instead, which is
// useful for comparing pooled output against the single-threaded path.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/gorast/rt"
	"github.com/gorast/rt/pool"
)

func main() {
	var (
		width    = flag.Int("width", 400, "image width")
		height   = flag.Int("height", 400, "image height")
		workers  = flag.Int("workers", 0, "pool size, 0 = all CPUs")
		tileSize = flag.Int("tile", 50, "tile edge length in pixels")
		output   = flag.String("output", "render.png", "output file")
		single   = flag.Bool("single", false, "render on one engine, no tiling")
		lightX   = flag.Float64("lx", 10, "light x position")
		lightY   = flag.Float64("ly", 10, "light y position")
		lightZ   = flag.Float64("lz", -10, "light z position")
		verbose  = flag.Bool("v", false, "log to stderr")
	)
	flag.Parse()

	if *verbose {
		rt.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	}

	light := rt.V3(*lightX, *lightY, *lightZ)
	sphere := rt.V3(0, 0, 0)

	var frame *rt.Pixmap
	var err error
	start := time.Now()
	if *single {
		frame, err = renderSingle(*width, *height, light, sphere)
	} else {
		frame, err = renderPooled(*width, *height, *workers, *tileSize, light, sphere)
	}
	if err != nil {
		log.Fatalf("rtrender: %v", err)
	}

	if err := frame.SavePNG(*output); err != nil {
		log.Fatalf("rtrender: save: %v", err)
	}
	log.Printf("Rendered %s (%dx%d) in %v\n", *output, *width, *height, time.Since(start).Round(time.Millisecond))
}

func renderSingle(width, height int, light, sphere rt.Vec3) (*rt.Pixmap, error) {
	rc, err := rt.NewRenderContext(width, height)
	if err != nil {
		return nil, err
	}
	rc.UpdateScene(light, sphere)

	frame := rt.NewPixmap(width, height)
	frame.WriteRegion(0, 0, width, height, rc.RenderFull(0))
	return frame, nil
}

func renderPooled(width, height, workers, tileSize int, light, sphere rt.Vec3) (*rt.Pixmap, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	done := make(chan *rt.Pixmap, 1)
	p, err := pool.New(width, height,
		pool.WithWorkers(workers),
		pool.WithTileSize(tileSize),
		pool.WithTickInterval(time.Millisecond),
		pool.WithFrameHandler(func(frame *rt.Pixmap, _ time.Duration) {
			out := rt.NewPixmap(frame.Width(), frame.Height())
			out.WriteRegion(0, 0, frame.Width(), frame.Height(), frame.Data())
			select {
			case done <- out:
			default:
			}
		}),
	)
	if err != nil {
		return nil, err
	}
	p.UpdateScene(light, sphere)

	errc := make(chan error, 1)
	go func() { errc <- p.Run(ctx) }()

	select {
	case frame := <-done:
		cancel()
		<-errc
		return frame, nil
	case err := <-errc:
		return nil, err
	}
}

// Command rtview animates the ray-traced scene in the terminal.
//
// Frames render on a worker pool and are scaled to the terminal, two pixels
// per character cell using the upper-half-block glyph. Keys: +/- pool size,
// [/] tile size, d debug tiles, q quit.
package main

import (
	"context"
	"flag"
	"image"
	"log"
	"log/slog"
	"math"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/image/draw"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gorast/rt"
	"github.com/gorast/rt/config"
	"github.com/gorast/rt/pool"
)

func main() {
	var (
		cfgPath  = flag.String("config", "rt.toml", "config file (TOML, optional)")
		width    = flag.Int("width", 0, "frame width (overrides config)")
		height   = flag.Int("height", 0, "frame height (overrides config)")
		workers  = flag.Int("workers", -1, "pool size, 0 = all CPUs (overrides config)")
		tileSize = flag.Int("tile", 0, "tile edge length (overrides config)")
		verbose  = flag.Bool("v", false, "log to stderr")
	)
	flag.Parse()

	if *verbose {
		rt.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("rtview: %v", err)
	}
	if *width > 0 {
		cfg.Width = *width
	}
	if *height > 0 {
		cfg.Height = *height
	}
	if *workers >= 0 {
		cfg.Workers = *workers
	}
	if *tileSize > 0 {
		cfg.TileSize = *tileSize
	}

	if err := run(cfg, *cfgPath); err != nil {
		log.Fatalf("rtview: %v", err)
	}
}

func run(cfg config.Config, cfgPath string) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.HideCursor()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	frames := make(chan *image.RGBA, 1)
	p, err := pool.New(cfg.Width, cfg.Height,
		pool.WithWorkers(cfg.Workers),
		pool.WithTileSize(cfg.TileSize),
		pool.WithDebugTiles(cfg.DebugTiles),
		pool.WithTickInterval(33*time.Millisecond),
		pool.WithFrameHandler(func(frame *rt.Pixmap, _ time.Duration) {
			img := frame.ToImage()
			select {
			case frames <- img:
			default: // display is behind, drop the frame
			}
		}),
	)
	if err != nil {
		return err
	}

	errc := make(chan error, 1)
	go func() { errc <- p.Run(ctx) }()
	go animateLight(ctx, p)
	go func() {
		err := config.Watch(ctx, cfgPath, func(c config.Config) {
			p.SetWorkers(c.Workers)
			p.SetTileSize(c.TileSize)
			p.SetDebugTiles(c.DebugTiles)
		})
		if err != nil && ctx.Err() == nil {
			rt.Logger().Warn("rtview: config watch stopped", "error", err)
		}
	}()

	events := make(chan tcell.Event, 8)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	debug := cfg.DebugTiles
	status := message.NewPrinter(language.English)

	for {
		select {
		case err := <-errc:
			if ctx.Err() != nil {
				return nil
			}
			return err

		case img := <-frames:
			drawFrame(screen, img)
			drawStatus(screen, status, p.Metrics())
			screen.Show()

		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventResize:
				screen.Sync()
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
					return nil
				}
				if ev.Key() != tcell.KeyRune {
					continue
				}
				m := p.Metrics()
				switch ev.Rune() {
				case 'q':
					return nil
				case '+', '=':
					p.SetWorkers(m.Workers + 1)
				case '-', '_':
					p.SetWorkers(m.Workers - 1)
				case ']':
					p.SetTileSize(m.TileSize * 2)
				case '[':
					p.SetTileSize(m.TileSize / 2)
				case 'd':
					debug = !debug
					p.SetDebugTiles(debug)
				}
			}
		}
	}
}

// animateLight orbits the point light around the sphere.
func animateLight(ctx context.Context, p *pool.Pool) {
	ticker := time.NewTicker(33 * time.Millisecond)
	defer ticker.Stop()

	start := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			theta := now.Sub(start).Seconds()
			light := rt.V3(10*math.Cos(theta), 10, -10+5*math.Sin(theta))
			p.UpdateScene(light, rt.V3(0, 0, 0))
		}
	}
}

// drawFrame scales the frame to the terminal and paints it two pixels per
// cell with the upper-half-block glyph: foreground is the top pixel,
// background the bottom.
func drawFrame(screen tcell.Screen, img *image.RGBA) {
	cols, rows := screen.Size()
	if rows > 1 {
		rows-- // bottom row is the status line
	}
	if cols < 1 || rows < 1 {
		return
	}

	scaled := image.NewRGBA(image.Rect(0, 0, cols, rows*2))
	draw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), img, img.Bounds(), draw.Src, nil)

	for cy := 0; cy < rows; cy++ {
		for cx := 0; cx < cols; cx++ {
			top := scaled.RGBAAt(cx, cy*2)
			bot := scaled.RGBAAt(cx, cy*2+1)
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B))).
				Background(tcell.NewRGBColor(int32(bot.R), int32(bot.G), int32(bot.B)))
			screen.SetContent(cx, cy, '▀', nil, style)
		}
	}
}

func drawStatus(screen tcell.Screen, p *message.Printer, m pool.Metrics) {
	cols, rows := screen.Size()
	if rows < 1 {
		return
	}
	y := rows - 1
	line := p.Sprintf(" %.1f fps | frame %v | workers %d | tile %dpx | frames %d | dropped %d | +/- workers  [/] tile  d debug  q quit",
		m.FPS, m.LastFrame.Round(time.Millisecond), m.Workers, m.TileSize, m.Frames, m.DroppedTiles)

	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorDarkBlue)
	x := 0
	for _, r := range line {
		if x >= cols {
			break
		}
		screen.SetContent(x, y, r, nil, style)
		x++
	}
	for ; x < cols; x++ {
		screen.SetContent(x, y, ' ', nil, style)
	}
}

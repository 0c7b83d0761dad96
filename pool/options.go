package pool

import "time"

// Option configures a Pool during creation.
// Use functional options to customize Pool behavior.
//
// Example:
//
//	// Default pool: one worker per CPU, 50px tiles, ~16ms ticks.
//	p, err := pool.New(400, 400)
//
//	// Explicit sizing for deterministic tests.
//	p, err := pool.New(400, 400, pool.WithWorkers(4), pool.WithTileSize(50))
type Option func(*options)

type options struct {
	workers   int
	tileSize  int
	tick      time.Duration
	presenter Presenter
	onFrame   FrameHandler
	debug     bool
}

func defaultOptions() options {
	return options{
		workers:  0, // resolved to available parallelism in New
		tileSize: DefaultTileSize,
		tick:     16 * time.Millisecond,
	}
}

// WithWorkers sets the initial number of worker slots. Values are clamped
// to [1, available parallelism]; zero selects available parallelism.
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

// WithTileSize sets the tile edge length in pixels (default 50).
// Values below 1 are clamped to 1.
func WithTileSize(px int) Option {
	return func(o *options) { o.tileSize = px }
}

// WithTickInterval sets the period of the animation tick that issues frame
// requests (default ~16ms). Tests can set a long interval and drive frames
// through RequestFrame instead.
func WithTickInterval(d time.Duration) Option {
	return func(o *options) { o.tick = d }
}

// WithPresenter registers a presentation sink that receives each completed
// tile region. See Presenter for the ownership contract.
func WithPresenter(p Presenter) Option {
	return func(o *options) { o.presenter = p }
}

// WithFrameHandler registers a callback invoked on the scheduler goroutine
// after each frame settles. The frame pixmap is scheduler-owned; handlers
// that keep pixels must copy synchronously.
func WithFrameHandler(f FrameHandler) Option {
	return func(o *options) { o.onFrame = f }
}

// WithDebugTiles enables per-tile debug logging from the start.
// It can also be toggled at runtime with Pool.SetDebugTiles.
func WithDebugTiles(enabled bool) Option {
	return func(o *options) { o.debug = enabled }
}

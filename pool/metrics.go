package pool

import "time"

// fpsWindowSize is the rolling window over which frames-per-second is
// computed. FPS counts frame completions, not scheduler ticks.
const fpsWindowSize = time.Second

// Metrics is a point-in-time snapshot of the pool's performance counters.
type Metrics struct {
	// FPS is the completion rate over the last rolling window.
	FPS float64

	// LastFrame is the duration of the most recently completed frame.
	LastFrame time.Duration

	// Frames is the total number of completed frames.
	Frames uint64

	// DroppedTiles counts tiles abandoned after worker render errors.
	DroppedTiles uint64

	// Workers is the current pool size.
	Workers int

	// TileSize is the current tile edge length in pixels.
	TileSize int
}

// fpsWindow tracks frame completion timestamps inside a rolling window.
// It is touched only from the scheduler goroutine.
type fpsWindow struct {
	window  time.Duration
	samples []time.Time
}

func newFPSWindow(window time.Duration) *fpsWindow {
	return &fpsWindow{window: window}
}

// add records one frame completion.
func (w *fpsWindow) add(now time.Time) {
	w.prune(now)
	w.samples = append(w.samples, now)
}

// rate returns completions per second over the window.
func (w *fpsWindow) rate(now time.Time) float64 {
	w.prune(now)
	return float64(len(w.samples)) / w.window.Seconds()
}

func (w *fpsWindow) prune(now time.Time) {
	cutoff := now.Add(-w.window)
	i := 0
	for i < len(w.samples) && !w.samples[i].After(cutoff) {
		i++
	}
	if i > 0 {
		w.samples = append(w.samples[:0], w.samples[i:]...)
	}
}

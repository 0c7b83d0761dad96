package pool

import (
	"context"
	"errors"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/gorast/rt"
)

// ErrPoolClosed is returned by Run when the pool has already been shut down.
var ErrPoolClosed = errors.New("pool: pool is closed")

// Presenter receives completed tile regions for compositing onto a display
// surface. pix is an unpadded row-major RGBA8 buffer of w*h*4 bytes; (x, y)
// is the target offset in the frame. The buffer is valid only for the
// duration of the call; implementations that keep pixels must copy them.
//
// Present is invoked on the scheduler goroutine and should return quickly.
type Presenter interface {
	Present(x, y, w, h int, pix []byte)
}

// FrameHandler is invoked on the scheduler goroutine after a frame settles.
// frame is the scheduler-owned composited pixmap; handlers that keep pixels
// must copy synchronously before returning.
type FrameHandler func(frame *rt.Pixmap, elapsed time.Duration)

// slot pairs one worker runtime with its lifecycle state. Slots are
// fungible: tiles are never pinned to a particular slot across frames.
type slot struct {
	id    int
	state SlotState
	inbox chan Message
}

// Pool partitions frames into tiles, dispatches them across worker slots,
// composites completed tiles into a frame, and drives the animation loop.
//
// The scheduler is single-threaded: every field below the ctrl/replies
// channels is touched only from the goroutine running Run, so no locking is
// needed at this layer.
type Pool struct {
	width  int
	height int
	tick   time.Duration

	ctrl    chan func()
	replies chan reply
	done    chan struct{}
	running atomic.Bool

	slots   []*slot
	gen     uint64
	workers int

	tileSize int
	grid     *Grid
	next     int // index of the next undispatched tile

	state     FrameState
	pending   bool
	completed map[int]struct{}
	start     time.Time

	// Scene parameters. light/sphere are the latest operator values;
	// frameLight/frameSphere are the snapshot taken at frame start so every
	// tile of one frame renders the same scene.
	light       rt.Vec3
	sphere      rt.Vec3
	frameLight  rt.Vec3
	frameSphere rt.Vec3

	canvas    *rt.Pixmap
	presenter Presenter
	onFrame   FrameHandler
	debug     bool

	fps       *fpsWindow
	frames    uint64
	dropped   uint64
	lastFrame time.Duration
	metrics   atomic.Pointer[Metrics]
}

// New creates a pool rendering width x height frames. It returns
// rt.ErrInvalidDimensions if either dimension is not positive. The pool
// does nothing until Run is called.
func New(width, height int, opts ...Option) (*Pool, error) {
	if width <= 0 || height <= 0 {
		return nil, rt.ErrInvalidDimensions
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	scene := rt.DefaultScene()
	p := &Pool{
		width:     width,
		height:    height,
		tick:      o.tick,
		ctrl:      make(chan func(), 16),
		replies:   make(chan reply, 64),
		done:      make(chan struct{}),
		workers:   clampWorkers(o.workers),
		tileSize:  max(1, o.tileSize),
		light:     scene.Light.Position,
		sphere:    scene.Sphere.Center,
		canvas:    rt.NewPixmap(width, height),
		presenter: o.presenter,
		onFrame:   o.onFrame,
		debug:     o.debug,
		fps:       newFPSWindow(fpsWindowSize),
	}
	p.running.Store(true)
	p.publishMetrics()
	return p, nil
}

// clampWorkers bounds a requested pool size to [1, available parallelism].
// Zero selects available parallelism.
func clampWorkers(n int) int {
	limit := runtime.NumCPU()
	switch {
	case n == 0:
		return limit
	case n < 1:
		return 1
	case n > limit:
		return limit
	}
	return n
}

// Run executes the scheduler loop until ctx is canceled. It owns all
// mutable pool state; worker replies and control commands funnel into this
// loop and are processed strictly in arrival order.
func (p *Pool) Run(ctx context.Context) error {
	if !p.running.Load() {
		return ErrPoolClosed
	}
	defer p.shutdown()

	p.startSlots()

	ticker := time.NewTicker(p.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			p.requestFrame()
			p.publishMetrics()
		case fn := <-p.ctrl:
			fn()
		case r := <-p.replies:
			p.handleReply(r)
		}
	}
}

// RequestFrame asks the scheduler to render one frame. Requests arriving
// while a frame is in progress (or while slots are still initializing)
// coalesce into a single pending request.
func (p *Pool) RequestFrame() { p.do(p.requestFrame) }

// SetWorkers resizes the pool to n slots, clamped to [1, available
// parallelism]. Every existing slot is torn down; tiles in flight on
// torn-down slots are abandoned for the current frame with no retry. The
// next frame starts once all new slots are ready.
func (p *Pool) SetWorkers(n int) { p.do(func() { p.resize(n) }) }

// SetTileSize changes the tile edge length. The tile grid is recomputed at
// the next frame start; a frame already in progress keeps its partition.
func (p *Pool) SetTileSize(px int) {
	p.do(func() {
		p.tileSize = max(1, px)
		p.publishMetrics()
	})
}

// UpdateScene sets the light and sphere positions used for subsequent
// frames. A frame already in progress keeps its scene snapshot.
func (p *Pool) UpdateScene(light, sphere rt.Vec3) {
	p.do(func() {
		p.light = light
		p.sphere = sphere
	})
}

// SetDebugTiles toggles per-tile debug logging at runtime.
func (p *Pool) SetDebugTiles(enabled bool) {
	p.do(func() { p.debug = enabled })
}

// Metrics returns the latest performance snapshot. Safe from any goroutine.
func (p *Pool) Metrics() Metrics { return *p.metrics.Load() }

// Width returns the frame width in pixels.
func (p *Pool) Width() int { return p.width }

// Height returns the frame height in pixels.
func (p *Pool) Height() int { return p.height }

// do hands a command to the scheduler goroutine.
func (p *Pool) do(fn func()) {
	select {
	case p.ctrl <- fn:
	case <-p.done:
	}
}

// startSlots creates p.workers fresh slots for the current generation and
// kicks off their runtimes with an init message.
func (p *Pool) startSlots() {
	p.slots = make([]*slot, p.workers)
	for i := range p.slots {
		p.slots[i] = &slot{
			id:    i,
			state: SlotUninitialized,
			inbox: make(chan Message, 1),
		}
	}
	rt.Logger().Info("pool: starting worker slots", "workers", p.workers, "generation", p.gen)

	for _, s := range p.slots {
		w := &worker{
			slot:    s.id,
			gen:     p.gen,
			width:   p.width,
			height:  p.height,
			inbox:   s.inbox,
			replies: p.replies,
			done:    p.done,
		}
		go w.run()
		s.state = SlotInitializing
		s.inbox <- Init{}
	}
}

func (p *Pool) allReady() bool {
	for _, s := range p.slots {
		if s.state != SlotReady {
			return false
		}
	}
	return len(p.slots) > 0
}

func (p *Pool) anyBusy() bool {
	for _, s := range p.slots {
		if s.state == SlotBusy {
			return true
		}
	}
	return false
}

func (p *Pool) requestFrame() {
	if p.state == FrameInProgress || !p.allReady() {
		p.pending = true
		return
	}
	p.startFrame()
}

func (p *Pool) startFrame() {
	if p.grid == nil || p.grid.TileSize() != p.tileSize {
		p.grid = NewGrid(p.width, p.height, p.tileSize)
		rt.Logger().Info("pool: tile grid recomputed",
			"tiles", p.grid.Len(), "tileSize", p.tileSize)
	}

	p.state = FrameInProgress
	p.pending = false
	p.next = 0
	p.completed = make(map[int]struct{}, p.grid.Len())
	p.start = time.Now()
	p.frameLight = p.light
	p.frameSphere = p.sphere
	p.dispatch()
}

// dispatch greedily assigns undispatched tiles, in tile-id order, to ready
// slots in index order. It re-runs whenever a slot becomes idle, so a slot
// finishing early immediately receives the next tile.
func (p *Pool) dispatch() {
	if p.state != FrameInProgress {
		return
	}
	for _, s := range p.slots {
		if p.next >= p.grid.Len() {
			return
		}
		if s.state != SlotReady {
			continue
		}
		t := p.grid.Tiles()[p.next]
		p.next++
		s.state = SlotBusy
		s.inbox <- RenderTile{
			Tile:       t,
			FullWidth:  p.width,
			FullHeight: p.height,
			Light:      p.frameLight,
			Sphere:     p.frameSphere,
		}
		if p.debug {
			rt.Logger().Debug("pool: tile dispatched", "tile", t.ID, "slot", s.id)
		}
	}
}

func (p *Pool) handleReply(r reply) {
	if r.gen != p.gen {
		// A torn-down slot finished a tile after the pool was resized.
		// The result is silently abandoned.
		return
	}
	if r.slot < 0 || r.slot >= len(p.slots) {
		return
	}
	s := p.slots[r.slot]

	switch m := r.msg.(type) {
	case Ready:
		s.state = SlotReady
		rt.Logger().Info("pool: slot ready", "slot", s.id)
		if p.state != FrameInProgress && p.pending && p.allReady() {
			p.startFrame()
		}

	case TileComplete:
		s.state = SlotReady
		if p.state == FrameInProgress {
			if _, dup := p.completed[m.Tile.ID]; !dup {
				p.completed[m.Tile.ID] = struct{}{}
				p.canvas.WriteRegion(m.Tile.X, m.Tile.Y, m.Tile.Width, m.Tile.Height, m.Pixels)
				if p.presenter != nil {
					p.presenter.Present(m.Tile.X, m.Tile.Y, m.Tile.Width, m.Tile.Height, m.Pixels)
				}
				if p.debug {
					rt.Logger().Debug("pool: tile complete", "tile", m.Tile.ID, "slot", s.id)
				}
			}
			p.dispatch()
			p.settleFrame()
		}

	case Error:
		p.handleError(s, m)

	default:
		rt.Logger().Warn("pool: unexpected reply kind", "slot", s.id, "kind", r.msg.MessageKind().String())
	}
}

// handleError applies the per-kind recovery policy: failures stay local to
// one slot or one tile, and the render loop keeps going.
func (p *Pool) handleError(s *slot, m Error) {
	switch {
	case s.state == SlotInitializing:
		// The slot's engine failed to construct; the slot never reaches
		// Ready and no work is ever dispatched to it.
		rt.Logger().Error("pool: slot failed to initialize", "slot", s.id, "reason", m.Reason)

	case m.TileID >= 0:
		// Render failure: the slot returns to service, the tile is dropped
		// from the current frame. No retry; the frame settles with a gap.
		s.state = SlotReady
		p.dropped++
		rt.Logger().Warn("pool: tile dropped", "slot", s.id, "tile", m.TileID, "reason", m.Reason)
		if p.state == FrameInProgress {
			p.dispatch()
			p.settleFrame()
		}

	default:
		// Protocol violation report; slot state is unaffected.
		rt.Logger().Warn("pool: worker protocol error", "slot", s.id, "reason", m.Reason)
	}
}

// settleFrame finishes the current frame once nothing remains in flight:
// either every tile completed, or every tile was dispatched and the
// remainder was dropped by render errors.
func (p *Pool) settleFrame() {
	if p.state != FrameInProgress {
		return
	}
	if len(p.completed) != p.grid.Len() {
		if p.next < p.grid.Len() || p.anyBusy() {
			return
		}
		rt.Logger().Warn("pool: frame settled with gaps",
			"missing", p.grid.Len()-len(p.completed))
	}

	p.state = FrameComplete
	now := time.Now()
	p.lastFrame = now.Sub(p.start)
	p.frames++
	p.fps.add(now)
	p.publishMetrics()

	if p.onFrame != nil {
		p.onFrame(p.canvas, p.lastFrame)
	}
	if p.pending {
		p.startFrame()
	}
}

// resize tears down every slot and restarts the pool at the new size.
// Stale replies are fenced off by bumping the generation counter.
func (p *Pool) resize(n int) {
	n = clampWorkers(n)
	if n == p.workers {
		return
	}
	rt.Logger().Info("pool: resizing", "from", p.workers, "to", n)

	for _, s := range p.slots {
		close(s.inbox)
	}
	p.gen++
	p.workers = n
	p.state = FrameNotStarted
	p.pending = false
	p.completed = nil
	p.next = 0
	p.startSlots()
	p.publishMetrics()
}

func (p *Pool) publishMetrics() {
	now := time.Now()
	p.metrics.Store(&Metrics{
		FPS:          p.fps.rate(now),
		LastFrame:    p.lastFrame,
		Frames:       p.frames,
		DroppedTiles: p.dropped,
		Workers:      p.workers,
		TileSize:     p.tileSize,
	})
}

func (p *Pool) shutdown() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	for _, s := range p.slots {
		close(s.inbox)
	}
}

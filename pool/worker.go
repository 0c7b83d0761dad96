package pool

import (
	"fmt"

	"github.com/gorast/rt"
)

// worker is the isolated runtime for one slot. It runs on its own
// goroutine, owns exactly one rt.RenderContext built in response to Init,
// and processes its inbox strictly in order. Rendering is synchronous with
// respect to the inbox: a worker cannot accept a second tile while
// rendering the first.
//
// Teardown is the closing of the inbox. There is no mid-tile cancellation;
// a tile in progress is finished, its reply discarded by the scheduler as
// stale.
type worker struct {
	slot    int
	gen     uint64
	width   int
	height  int
	inbox   chan Message
	replies chan<- reply
	done    <-chan struct{}
}

func (w *worker) run() {
	var rc *rt.RenderContext

	for msg := range w.inbox {
		switch m := msg.(type) {
		case Init:
			var err error
			rc, err = rt.NewRenderContext(w.width, w.height)
			if err != nil {
				w.send(Error{TileID: -1, Reason: fmt.Sprintf("engine init: %v", err)})
				continue
			}
			w.send(Ready{})

		case RenderTile:
			if rc == nil {
				w.send(Error{TileID: m.Tile.ID, Reason: "render-tile before init"})
				continue
			}
			rc.UpdateScene(m.Light, m.Sphere)
			pix, err := rc.RenderTile(m.Tile.X, m.Tile.Y, m.Tile.Width, m.Tile.Height, m.FullWidth, m.FullHeight)
			if err != nil {
				w.send(Error{TileID: m.Tile.ID, Reason: fmt.Sprintf("render tile %d: %v", m.Tile.ID, err)})
				continue
			}
			// Value transfer: the scratch buffer stays worker-owned, the
			// reply carries its own copy.
			out := make([]byte, len(pix))
			copy(out, pix)
			w.send(TileComplete{Tile: m.Tile, Pixels: out})

		default:
			// Unrecognized tags get an explicit error response, never a
			// silent drop.
			w.send(Error{TileID: -1, Reason: fmt.Sprintf("unknown message kind %q", msg.MessageKind())})
		}
	}
}

// send delivers a reply unless the pool is shutting down.
func (w *worker) send(msg Message) {
	select {
	case w.replies <- reply{slot: w.slot, gen: w.gen, msg: msg}:
	case <-w.done:
	}
}

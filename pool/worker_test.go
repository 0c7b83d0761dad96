package pool

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// bogusMessage is a message kind no worker understands.
type bogusMessage struct{}

func (bogusMessage) MessageKind() Kind { return Kind(99) }

// startWorker launches one worker runtime and returns its channels.
func startWorker(t *testing.T, width, height int) (chan Message, chan reply, chan struct{}) {
	t.Helper()
	inbox := make(chan Message, 4)
	replies := make(chan reply, 4)
	done := make(chan struct{})
	t.Cleanup(func() {
		close(done)
		close(inbox)
	})

	w := &worker{slot: 0, gen: 7, width: width, height: height, inbox: inbox, replies: replies, done: done}
	go w.run()
	return inbox, replies, done
}

func recvReply(t *testing.T, replies chan reply) reply {
	t.Helper()
	select {
	case r := <-replies:
		return r
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for worker reply")
		return reply{}
	}
}

func TestWorker_InitThenReady(t *testing.T) {
	inbox, replies, _ := startWorker(t, 40, 40)

	inbox <- Init{}
	r := recvReply(t, replies)

	assert.Equal(t, 0, r.slot)
	assert.Equal(t, uint64(7), r.gen, "replies carry the worker's generation")
	assert.IsType(t, Ready{}, r.msg)
}

func TestWorker_RenderTileProducesCopy(t *testing.T) {
	inbox, replies, _ := startWorker(t, 40, 40)
	inbox <- Init{}
	recvReply(t, replies)

	tile := Tile{ID: 3, X: 10, Y: 10, Width: 8, Height: 8}
	req := RenderTile{Tile: tile, FullWidth: 40, FullHeight: 40}
	inbox <- req
	first := recvReply(t, replies)
	done, ok := first.msg.(TileComplete)
	require.True(t, ok, "expected TileComplete, got %T", first.msg)
	require.Len(t, done.Pixels, 8*8*4)
	assert.Equal(t, tile, done.Tile)

	// A second render of a different region must not mutate the first
	// reply's pixels: the payload is a value transfer, not a shared view.
	snapshot := make([]byte, len(done.Pixels))
	copy(snapshot, done.Pixels)

	inbox <- RenderTile{Tile: Tile{ID: 4, X: 0, Y: 0, Width: 8, Height: 8}, FullWidth: 40, FullHeight: 40}
	second := recvReply(t, replies)
	require.IsType(t, TileComplete{}, second.msg)

	assert.Equal(t, snapshot, done.Pixels, "earlier payload must stay intact after later renders")
}

func TestWorker_RenderBeforeInit(t *testing.T) {
	inbox, replies, _ := startWorker(t, 40, 40)

	inbox <- RenderTile{Tile: Tile{ID: 2, X: 0, Y: 0, Width: 4, Height: 4}, FullWidth: 40, FullHeight: 40}
	r := recvReply(t, replies)

	e, ok := r.msg.(Error)
	require.True(t, ok, "expected Error, got %T", r.msg)
	assert.Equal(t, 2, e.TileID)
}

func TestWorker_OutOfBoundsTile(t *testing.T) {
	inbox, replies, _ := startWorker(t, 40, 40)
	inbox <- Init{}
	recvReply(t, replies)

	inbox <- RenderTile{Tile: Tile{ID: 9, X: 38, Y: 0, Width: 8, Height: 8}, FullWidth: 40, FullHeight: 40}
	r := recvReply(t, replies)

	e, ok := r.msg.(Error)
	require.True(t, ok, "expected Error, got %T", r.msg)
	assert.Equal(t, 9, e.TileID, "render failures name the tile they drop")
	assert.Contains(t, e.Reason, "tile")
}

// TestWorker_UnknownMessage verifies protocol violations produce an explicit
// error response, never a silent drop.
func TestWorker_UnknownMessage(t *testing.T) {
	inbox, replies, _ := startWorker(t, 40, 40)
	inbox <- Init{}
	recvReply(t, replies)

	inbox <- bogusMessage{}
	r := recvReply(t, replies)

	e, ok := r.msg.(Error)
	require.True(t, ok, "expected Error, got %T", r.msg)
	assert.Equal(t, -1, e.TileID, "protocol errors are not tied to a tile")
	assert.Contains(t, e.Reason, "unknown message")
}

func TestWorker_InitFailure(t *testing.T) {
	// Dimensions are validated by the engine inside the worker.
	inbox, replies, _ := startWorker(t, 0, 40)

	inbox <- Init{}
	r := recvReply(t, replies)

	e, ok := r.msg.(Error)
	require.True(t, ok, "expected Error, got %T", r.msg)
	assert.Equal(t, -1, e.TileID)
	assert.Contains(t, e.Reason, "init")
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "init", KindInit.String())
	assert.Equal(t, "ready", KindReady.String())
	assert.Equal(t, "error", KindError.String())
	assert.Equal(t, "render-tile", KindRenderTile.String())
	assert.Equal(t, "tile-complete", KindTileComplete.String())
	assert.Equal(t, "unknown", Kind(99).String())
}

package pool

import "github.com/gorast/rt"

// Kind discriminates protocol messages exchanged with worker runtimes.
type Kind uint8

const (
	KindInit Kind = iota
	KindReady
	KindError
	KindRenderTile
	KindTileComplete
)

func (k Kind) String() string {
	switch k {
	case KindInit:
		return "init"
	case KindReady:
		return "ready"
	case KindError:
		return "error"
	case KindRenderTile:
		return "render-tile"
	case KindTileComplete:
		return "tile-complete"
	default:
		return "unknown"
	}
}

// Message is the tagged union carried on worker channels. Each worker
// channel delivers messages strictly in send order.
type Message interface {
	MessageKind() Kind
}

// Init instructs a worker to construct its rendering engine.
// The worker answers with Ready on success or Error on failure.
type Init struct{}

// Ready signals that a worker finished initializing and can accept tiles.
type Ready struct{}

// Error reports a failure for one message or one tile. TileID is -1 when
// the error is not tied to a tile (initialization failures, protocol
// violations).
type Error struct {
	TileID int
	Reason string
}

// RenderTile instructs a worker to render one tile. Scene parameters travel
// with the message; the worker applies them to its own engine before
// rendering, so no scene state is shared across the isolation boundary.
type RenderTile struct {
	Tile       Tile
	FullWidth  int
	FullHeight int
	Light      rt.Vec3
	Sphere     rt.Vec3
}

// TileComplete carries a finished tile back to the scheduler. Pixels is a
// copy owned by the message: the worker's scratch buffer never crosses the
// boundary, and the receiver may retain Pixels freely.
type TileComplete struct {
	Tile   Tile
	Pixels []byte
}

func (Init) MessageKind() Kind         { return KindInit }
func (Ready) MessageKind() Kind        { return KindReady }
func (Error) MessageKind() Kind        { return KindError }
func (RenderTile) MessageKind() Kind   { return KindRenderTile }
func (TileComplete) MessageKind() Kind { return KindTileComplete }

// reply is the envelope workers use to answer the scheduler. The slot and
// generation identify the sender; replies from torn-down generations are
// discarded without touching frame state.
type reply struct {
	slot int
	gen  uint64
	msg  Message
}

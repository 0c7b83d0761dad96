package pool

// SlotState is the lifecycle state of one worker slot.
//
// Slots move Uninitialized → Initializing → Ready when the pool (re)starts
// them, then cycle Ready ⇄ Busy as tiles are dispatched and completed. A
// slot whose engine fails to construct never reaches Ready.
type SlotState uint8

const (
	SlotUninitialized SlotState = iota
	SlotInitializing
	SlotReady
	SlotBusy
)

func (s SlotState) String() string {
	switch s {
	case SlotUninitialized:
		return "uninitialized"
	case SlotInitializing:
		return "initializing"
	case SlotReady:
		return "ready"
	case SlotBusy:
		return "busy"
	default:
		return "unknown"
	}
}

// FrameState is the lifecycle state of the frame currently owned by the
// scheduler. At most one frame is in flight; requests arriving while a
// frame is in progress coalesce into a single pending request.
type FrameState uint8

const (
	FrameNotStarted FrameState = iota
	FrameInProgress
	FrameComplete
)

func (s FrameState) String() string {
	switch s {
	case FrameNotStarted:
		return "not-started"
	case FrameInProgress:
		return "in-progress"
	case FrameComplete:
		return "complete"
	default:
		return "unknown"
	}
}

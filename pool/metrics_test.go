package pool

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFPSWindow_Rate(t *testing.T) {
	w := newFPSWindow(time.Second)
	base := time.Unix(1000, 0)

	assert.Zero(t, w.rate(base), "empty window has zero rate")

	// Four completions inside the last second.
	for i := 0; i < 4; i++ {
		w.add(base.Add(time.Duration(i) * 200 * time.Millisecond))
	}
	assert.InDelta(t, 4.0, w.rate(base.Add(700*time.Millisecond)), 1e-9)
}

func TestFPSWindow_PrunesOldSamples(t *testing.T) {
	w := newFPSWindow(time.Second)
	base := time.Unix(1000, 0)

	w.add(base)
	w.add(base.Add(100 * time.Millisecond))
	w.add(base.Add(900 * time.Millisecond))

	// 1.15s later only the last sample is within the window.
	assert.InDelta(t, 1.0, w.rate(base.Add(1150*time.Millisecond)), 1e-9)

	// Far in the future the window is empty again.
	assert.Zero(t, w.rate(base.Add(time.Hour)))
}

func TestStateStrings(t *testing.T) {
	assert.Equal(t, "uninitialized", SlotUninitialized.String())
	assert.Equal(t, "initializing", SlotInitializing.String())
	assert.Equal(t, "ready", SlotReady.String())
	assert.Equal(t, "busy", SlotBusy.String())
	assert.Equal(t, "unknown", SlotState(99).String())

	assert.Equal(t, "not-started", FrameNotStarted.String())
	assert.Equal(t, "in-progress", FrameInProgress.String())
	assert.Equal(t, "complete", FrameComplete.String())
	assert.Equal(t, "unknown", FrameState(99).String())
}

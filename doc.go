// Package rt provides a deterministic CPU ray-tracing kernel for a single
// sphere scene, designed for tile-based parallel rendering.
//
// # Overview
//
// rt renders a fixed-camera scene (one point light, one unit sphere) into
// RGBA8 pixel buffers. The kernel is pure and deterministic: rendering any
// tile of the image produces bytes that are bit-identical to the same
// rectangle of a full-frame render under the same scene state. This makes it
// safe to partition a frame into tiles, render them on independent workers,
// and recombine the results without seams.
//
// # Quick Start
//
//	import "github.com/gorast/rt"
//
//	rc, err := rt.NewRenderContext(400, 400)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Move the scene, then render one frame.
//	rc.UpdateLightPosition(15, 5, -10)
//	pix := rc.RenderFull(0)
//
//	// Or render just a tile, in full-image coordinates.
//	tile, err := rc.RenderTile(50, 50, 50, 50, 400, 400)
//
// # Parallel Rendering
//
// The pool subpackage schedules tiles across a pool of worker goroutines,
// each owning its own RenderContext, and composites the results into a
// frame. See [github.com/gorast/rt/pool].
//
// # Buffer Ownership
//
// RenderFull and RenderTile return views into buffers owned by the
// RenderContext. A view is valid only until the next render call on the same
// context; callers that need the pixels afterwards must copy them first.
//
// # Coordinate System
//
// Image coordinates follow the usual raster convention: origin (0,0) at the
// top-left, x increasing right, y increasing down. In world space the
// camera sits at (0, 0, -10) and casts rays at a wall plane at z = 10.
package rt

// Version information
const (
	// Version is the current version of the library
	Version = "0.2.0"
)

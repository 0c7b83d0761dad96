// Package pool schedules tile renders across a pool of worker goroutines.
//
// The scheduler partitions each frame into rectangular tiles, dispatches
// tiles greedily to idle workers, composites completed tiles into a frame
// pixmap, and drives a continuous animation loop. Each worker owns exactly
// one rt.RenderContext and is reachable only through messages: scene
// parameters go in with each tile, pixel bytes come back as copies. No
// memory is shared between workers or with the scheduler.
//
// Thread safety: all mutable scheduler state lives on the single goroutine
// running [Pool.Run]. Public methods hand commands to that goroutine and
// are safe to call from anywhere.
package pool

// DefaultTileSize is the default tile edge length in pixels.
const DefaultTileSize = 50

// Tile is an axis-aligned rectangle of the output image, clipped at the
// image edge. IDs are assigned in row-major scan order starting at 0.
type Tile struct {
	ID     int
	X      int
	Y      int
	Width  int
	Height int
}

// Grid is the deterministic tile partition of a frame. For fixed
// (width, height, tileSize) the tile list is always identical; the
// scheduler recomputes it only when one of the three changes.
type Grid struct {
	tiles    []Tile
	width    int
	height   int
	tileSize int
}

// NewGrid partitions a width x height image into tileSize-edged tiles in
// row-major scan order from (0,0). Edge tiles are clipped to the image.
func NewGrid(width, height, tileSize int) *Grid {
	g := &Grid{width: width, height: height, tileSize: tileSize}
	if width <= 0 || height <= 0 || tileSize <= 0 {
		return g
	}

	tilesX := (width + tileSize - 1) / tileSize
	tilesY := (height + tileSize - 1) / tileSize
	g.tiles = make([]Tile, 0, tilesX*tilesY)

	id := 0
	for y := 0; y < height; y += tileSize {
		for x := 0; x < width; x += tileSize {
			g.tiles = append(g.tiles, Tile{
				ID:     id,
				X:      x,
				Y:      y,
				Width:  min(tileSize, width-x),
				Height: min(tileSize, height-y),
			})
			id++
		}
	}
	return g
}

// Tiles returns the ordered tile list. The slice is owned by the grid and
// must not be modified.
func (g *Grid) Tiles() []Tile { return g.tiles }

// Len returns the number of tiles in the partition.
func (g *Grid) Len() int { return len(g.tiles) }

// Width returns the frame width the grid was built for.
func (g *Grid) Width() int { return g.width }

// Height returns the frame height the grid was built for.
func (g *Grid) Height() int { return g.height }

// TileSize returns the tile edge length the grid was built for.
func (g *Grid) TileSize() int { return g.tileSize }

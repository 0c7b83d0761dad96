package rt

// RenderContext owns the scene state and pixel buffers for one rendering
// engine instance. It is bound to fixed dimensions for its whole lifetime.
//
// RenderContext is not safe for concurrent use. The intended deployment is
// one context per worker, with all calls made from that worker's goroutine.
type RenderContext struct {
	width  int
	height int
	scene  Scene
	time   float64

	// buffer is the full-frame RGBA8 image, row-major, width*height*4 bytes.
	buffer []byte

	// tile is the reusable scratch buffer for RenderTile. It is resized in
	// place per call and never fragmented into per-tile allocations.
	tile []byte
}

// NewRenderContext creates a rendering engine instance for a fullW x fullH
// image with the default scene. It returns ErrInvalidDimensions if either
// dimension is not positive.
func NewRenderContext(width, height int) (*RenderContext, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	return &RenderContext{
		width:  width,
		height: height,
		scene:  DefaultScene(),
		buffer: make([]byte, width*height*4),
	}, nil
}

// Width returns the full-frame width in pixels.
func (rc *RenderContext) Width() int { return rc.width }

// Height returns the full-frame height in pixels.
func (rc *RenderContext) Height() int { return rc.height }

// Scene returns a copy of the current scene state.
func (rc *RenderContext) Scene() Scene { return rc.scene }

// Time returns the scene time accumulated by RenderFull calls.
func (rc *RenderContext) Time() float64 { return rc.time }

// UpdateLightPosition moves the point light. The change takes effect on the
// next render call; nothing is recomputed eagerly.
func (rc *RenderContext) UpdateLightPosition(x, y, z float64) {
	rc.scene.Light.Position = V3(x, y, z)
}

// UpdateSpherePosition moves the sphere center. The change takes effect on
// the next render call; nothing is recomputed eagerly.
func (rc *RenderContext) UpdateSpherePosition(x, y, z float64) {
	rc.scene.Sphere.Center = V3(x, y, z)
}

// UpdateScene moves both the light and the sphere in one call.
func (rc *RenderContext) UpdateScene(light, sphere Vec3) {
	rc.scene.Light.Position = light
	rc.scene.Sphere.Center = sphere
}

// RenderFull renders the entire image into the full-frame buffer and
// returns a view of it. dt advances the context's accumulated scene time.
//
// The returned slice is owned by the context and is valid only until the
// next render call; copy it synchronously to retain the pixels.
func (rc *RenderContext) RenderFull(dt float64) []byte {
	rc.time += dt
	for py := 0; py < rc.height; py++ {
		row := py * rc.width * 4
		for px := 0; px < rc.width; px++ {
			c := rc.scene.shade(pixelRay(px, py, rc.height))
			writePixel(rc.buffer[row+px*4:], c)
		}
	}
	return rc.buffer
}

// RenderTile renders the rectangle (x, y, w, h) of a fullW x fullH image
// into the tile scratch buffer and returns a view of exactly w*h*4 bytes,
// addressed from the tile's local origin.
//
// Camera rays are computed in full-image coordinate space, so the output is
// bit-identical to the same rectangle of RenderFull under the same scene
// state. The rectangle must lie entirely within the image; out-of-bounds
// rectangles are a caller error and return ErrTileOutOfBounds.
//
// The returned slice is owned by the context and is valid only until the
// next render call; copy it synchronously to retain the pixels.
func (rc *RenderContext) RenderTile(x, y, w, h, fullW, fullH int) ([]byte, error) {
	if w <= 0 || h <= 0 || x < 0 || y < 0 || x+w > fullW || y+h > fullH {
		return nil, ErrTileOutOfBounds
	}

	need := w * h * 4
	if cap(rc.tile) < need {
		rc.tile = make([]byte, need)
	}
	rc.tile = rc.tile[:need]

	for ly := 0; ly < h; ly++ {
		row := ly * w * 4
		for lx := 0; lx < w; lx++ {
			c := rc.scene.shade(pixelRay(x+lx, y+ly, fullH))
			writePixel(rc.tile[row+lx*4:], c)
		}
	}
	return rc.tile, nil
}

// Buffer returns a read-only view of the full-frame buffer. The view is
// valid only until the next render call on this context.
func (rc *RenderContext) Buffer() []byte { return rc.buffer }

// writePixel stores a color as 4 RGBA8 bytes at the start of dst.
// Rendered pixels are always opaque.
func writePixel(dst []byte, c RGBA) {
	dst[0] = uint8(clamp255(c.R * 255))
	dst[1] = uint8(clamp255(c.G * 255))
	dst[2] = uint8(clamp255(c.B * 255))
	dst[3] = 255
}

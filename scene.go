package rt

// Material describes the surface response of the sphere using the classic
// Phong terms.
type Material struct {
	Color     RGBA
	Ambient   float64
	Diffuse   float64
	Specular  float64
	Shininess float64
}

// DefaultMaterial returns the material of the default sphere.
func DefaultMaterial() Material {
	return Material{
		Color:     RGB(1.0, 0.2, 1.0),
		Ambient:   0.1,
		Diffuse:   0.9,
		Specular:  0.9,
		Shininess: 200.0,
	}
}

// Sphere is the single renderable object of the scene.
// The radius is fixed at construction; only the center moves.
type Sphere struct {
	Center   Vec3
	Radius   float64
	Material Material
}

// PointLight is an infinitely small light source.
type PointLight struct {
	Position  Vec3
	Intensity RGBA
}

// Scene holds the mutable world state read by the kernel: one light and one
// sphere. It has no internal synchronization; each RenderContext owns its
// own Scene and mutations happen between render calls, never during one.
type Scene struct {
	Sphere Sphere
	Light  PointLight
}

// DefaultScene returns the starting scene: a unit sphere at the origin lit
// by a white point light at (10, 10, -10).
func DefaultScene() Scene {
	return Scene{
		Sphere: Sphere{
			Center:   V3(0, 0, 0),
			Radius:   1,
			Material: DefaultMaterial(),
		},
		Light: PointLight{
			Position:  V3(10, 10, -10),
			Intensity: White,
		},
	}
}

package rt

import "math"

// World-space constants of the fixed camera. Rays originate at the camera
// and pass through a wall plane behind the sphere; the wall is sized so the
// sphere's shadow projection fills the frame.
const (
	cameraZ  = -10.0
	wallZ    = 10.0
	wallSize = 7.0

	// ShadowBias offsets the shadow-ray origin along the surface normal to
	// keep the ray from re-intersecting the surface it started on
	// (shadow acne).
	ShadowBias = 1e-4
)

// intersect returns the nearest non-negative ray parameter at which the ray
// hits the scene's sphere. ok is false when the ray misses or the sphere is
// entirely behind the ray origin.
func (s *Scene) intersect(r Ray) (t float64, ok bool) {
	oc := r.Origin.Sub(s.Sphere.Center)
	a := r.Direction.Dot(r.Direction)
	b := 2 * r.Direction.Dot(oc)
	c := oc.Dot(oc) - s.Sphere.Radius*s.Sphere.Radius

	disc := b*b - 4*a*c
	if disc < 0 {
		return 0, false
	}

	sq := math.Sqrt(disc)
	t1 := (-b - sq) / (2 * a)
	t2 := (-b + sq) / (2 * a)
	if t1 >= 0 {
		return t1, true
	}
	if t2 >= 0 {
		return t2, true
	}
	return 0, false
}

// shadowed reports whether the point is occluded from the light.
// The point is expected to be biased off the surface already.
func (s *Scene) shadowed(p Vec3) bool {
	v := s.Light.Position.Sub(p)
	dist := v.Length()
	r := Ray{Origin: p, Direction: v.Mul(1 / dist)}
	t, ok := s.intersect(r)
	return ok && t < dist
}

// lighting evaluates the Phong model at a surface point: ambient plus
// diffuse plus specular, with diffuse and specular dropped when the light
// faces away from the surface or the point is in shadow.
func (s *Scene) lighting(point, eye, normal Vec3, inShadow bool) RGBA {
	m := s.Sphere.Material
	effective := m.Color.mul(s.Light.Intensity)
	ambient := effective.scale(m.Ambient)

	lightv := s.Light.Position.Sub(point).Normalize()
	lightDotNormal := lightv.Dot(normal)
	if lightDotNormal < 0 || inShadow {
		return ambient
	}

	col := ambient.add(effective.scale(m.Diffuse * lightDotNormal))

	reflectv := lightv.Neg().Reflect(normal)
	reflectDotEye := reflectv.Dot(eye)
	if reflectDotEye > 0 {
		factor := math.Pow(reflectDotEye, m.Shininess)
		col = col.add(s.Light.Intensity.scale(m.Specular * factor))
	}
	return col
}

// shade traces one ray into the scene and returns the resulting color.
func (s *Scene) shade(r Ray) RGBA {
	t, ok := s.intersect(r)
	if !ok {
		return Background
	}

	point := r.At(t)
	normal := point.Sub(s.Sphere.Center).Normalize()
	eye := r.Direction.Neg()
	over := point.Add(normal.Mul(ShadowBias))
	return s.lighting(point, eye, normal, s.shadowed(over))
}

// pixelRay builds the camera ray through pixel (px, py) of a fullW x fullH
// image. Ray geometry depends only on full-image coordinates, never on tile
// boundaries, so tiles recombine without seams.
func pixelRay(px, py, fullH int) Ray {
	origin := V3(0, 0, cameraZ)
	pixelSize := wallSize / float64(fullH)
	half := wallSize / 2

	worldX := half - pixelSize*float64(px)
	worldY := half - pixelSize*float64(py)
	target := V3(worldX, worldY, wallZ)
	return Ray{Origin: origin, Direction: target.Sub(origin).Normalize()}
}

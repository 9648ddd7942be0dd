package material

import (
	"github.com/df07/go-raytracer/pkg/core"
)

// Material decides how light leaves a surface. The set of materials is
// closed: Lambertian, Metal, Dielectric, Light and Isotropic.
type Material interface {
	// Scatter returns the attenuation and outgoing ray, or false when the
	// ray is absorbed
	Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool)

	// Emitted returns the radiance emitted at the hit; black for non-emitters
	Emitted(u, v float64, point core.Vec3) core.Vec3

	isMaterial()
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   core.Ray  // The scattered ray
	Attenuation core.Vec3 // Color attenuation
}

// HitRecord contains information about a ray-object intersection.
// Geometry fills it in place and leaves it untouched on a miss.
type HitRecord struct {
	Point     core.Vec3 // Point of intersection
	Normal    core.Vec3 // Surface normal, always facing against the ray
	T         float64   // Parameter t along the ray
	FrontFace bool      // Whether ray hit the front face
	Material  Material  // Material of the hit object
	U, V      float64   // Surface texture coordinates
}

// SetFaceNormal sets the normal vector and determines front/back face
func (h *HitRecord) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}

// noEmission is embedded by every material that does not emit light
type noEmission struct{}

func (noEmission) Emitted(u, v float64, point core.Vec3) core.Vec3 {
	return core.Vec3{}
}

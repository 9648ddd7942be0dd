package material

import (
	"github.com/df07/go-raytracer/pkg/core"
)

// Metal represents a metallic material with specular reflection
type Metal struct {
	noEmission
	Texture   Texture
	Roughness float64 // 0.0 = perfect mirror, 1.0 = very rough
}

// NewMetal creates a new metal material
func NewMetal(albedo core.Vec3, roughness float64) *Metal {
	return NewTexturedMetal(NewSolidColor(albedo), roughness)
}

// NewTexturedMetal creates a metal whose tint comes from a texture
func NewTexturedMetal(texture Texture, roughness float64) *Metal {
	// Clamp roughness to valid range
	if roughness > 1.0 {
		roughness = 1.0
	}
	if roughness < 0.0 {
		roughness = 0.0
	}
	return &Metal{Texture: texture, Roughness: roughness}
}

// Scatter implements the Material interface for metal scattering
func (m *Metal) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	reflected := Reflect(rayIn.Direction, hit.Normal).Normalize()
	reflected = reflected.Add(core.RandomUnitVector(sampler).Multiply(m.Roughness))

	scattered := core.NewRayAtTime(hit.Point, reflected, rayIn.Time)

	// Perturbed rays that end up below the surface are absorbed
	scatters := scattered.Direction.Dot(hit.Normal) > 0

	return ScatterResult{
		Scattered:   scattered,
		Attenuation: m.Texture.Value(hit.U, hit.V, hit.Point),
	}, scatters
}

func (*Metal) isMaterial() {}

// Reflect calculates the reflection of a vector v off a surface with normal n
func Reflect(v, n core.Vec3) core.Vec3 {
	// r = v - 2*dot(v,n)*n
	return v.Subtract(n.Multiply(2 * v.Dot(n)))
}

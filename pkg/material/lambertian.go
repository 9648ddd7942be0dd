package material

import (
	"github.com/df07/go-raytracer/pkg/core"
)

// Lambertian represents a diffuse material
type Lambertian struct {
	noEmission
	Texture Texture
}

// NewLambertian creates a diffuse material with a uniform albedo
func NewLambertian(albedo core.Vec3) *Lambertian {
	return &Lambertian{Texture: NewSolidColor(albedo)}
}

// NewTexturedLambertian creates a diffuse material whose albedo comes from a texture
func NewTexturedLambertian(texture Texture) *Lambertian {
	return &Lambertian{Texture: texture}
}

// Scatter implements the Material interface for diffuse scattering
func (l *Lambertian) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	direction := hit.Normal.Add(core.RandomUnitVector(sampler))

	// The random vector can cancel the normal almost exactly
	if direction.NearZero() {
		direction = hit.Normal
	}

	return ScatterResult{
		Scattered:   core.NewRayAtTime(hit.Point, direction, rayIn.Time),
		Attenuation: l.Texture.Value(hit.U, hit.V, hit.Point),
	}, true
}

func (*Lambertian) isMaterial() {}

package material

import (
	"github.com/df07/go-raytracer/pkg/core"
)

// Isotropic is the phase function of a participating medium: it scatters
// uniformly in every direction
type Isotropic struct {
	noEmission
	Texture Texture
}

// NewIsotropic creates an isotropic phase material
func NewIsotropic(texture Texture) *Isotropic {
	return &Isotropic{Texture: texture}
}

// Scatter picks a uniformly random direction
func (i *Isotropic) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	return ScatterResult{
		Scattered:   core.NewRayAtTime(hit.Point, core.RandomUnitVector(sampler), rayIn.Time),
		Attenuation: i.Texture.Value(hit.U, hit.V, hit.Point),
	}, true
}

func (*Isotropic) isMaterial() {}

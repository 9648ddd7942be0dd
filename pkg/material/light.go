package material

import (
	"github.com/df07/go-raytracer/pkg/core"
)

// Light is an emissive material. It never scatters.
type Light struct {
	Texture Texture
}

// NewLight creates a light with uniform emission
func NewLight(emit core.Vec3) *Light {
	return &Light{Texture: NewSolidColor(emit)}
}

// NewTexturedLight creates a light whose emission comes from a texture
func NewTexturedLight(texture Texture) *Light {
	return &Light{Texture: texture}
}

// Scatter always absorbs
func (l *Light) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	return ScatterResult{}, false
}

// Emitted returns the emission texture sample
func (l *Light) Emitted(u, v float64, point core.Vec3) core.Vec3 {
	return l.Texture.Value(u, v, point)
}

func (*Light) isMaterial() {}

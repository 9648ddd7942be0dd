package material

import (
	"github.com/df07/go-raytracer/pkg/core"
)

// NoiseTexture is a grayscale turbulence pattern
type NoiseTexture struct {
	Perlin *Perlin
	Scale  float64
	Depth  int // number of turbulence octaves
}

// NewNoiseTexture creates a turbulence texture
func NewNoiseTexture(perlin *Perlin, scale float64, depth int) *NoiseTexture {
	return &NoiseTexture{Perlin: perlin, Scale: scale, Depth: depth}
}

// Value returns white scaled by the turbulence at the scaled point
func (n *NoiseTexture) Value(u, v float64, point core.Vec3) core.Vec3 {
	t := n.Perlin.Turbulence(point.Multiply(n.Scale), n.Depth)
	return core.NewVec3(t, t, t)
}

func (*NoiseTexture) isTexture() {}

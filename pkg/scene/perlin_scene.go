package scene

import (
	"math/rand/v2"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/geometry"
	"github.com/df07/go-raytracer/pkg/material"
)

// NewPerlinScene creates two spheres textured with turbulent Perlin noise
func NewPerlinScene(width int) *Scene {
	config := cameraConfig(width, 400, Widescreen,
		core.NewVec3(13, 2, 3),
		core.NewVec3(0, 0, 0),
		20.0,
	)
	config.Background = core.NewVec3(0.7, 0.8, 1.0)

	s := NewScene("perlin", config)
	s.AspectRatio = Widescreen

	perlin := material.NewPerlin(rand.New(rand.NewPCG(42, 0)))
	marble := material.NewTexturedLambertian(material.NewNoiseTexture(perlin, 4, 7))
	clouds := material.NewTexturedLambertian(material.NewNoiseTexture(perlin, 1, 3))

	s.Add(
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, clouds),
		geometry.NewSphere(core.NewVec3(0, 2, 0), 2, marble),
		geometry.NewQuad(core.NewVec3(3, 1, -2), core.NewVec3(2, 0, 0), core.NewVec3(0, 2, 0),
			material.NewLight(core.NewVec3(4, 4, 4))),
	)
	return s
}

package scene

import (
	"math"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/geometry"
	"github.com/df07/go-raytracer/pkg/material"
)

const sphereGridSize = 10

// NewSphereGridScene creates a grid of metallic spheres whose hue varies along
// x and whose chroma varies along z
func NewSphereGridScene(width int) *Scene {
	config := cameraConfig(width, 400, Widescreen,
		core.NewVec3(4.5, 6, 18),    // Position camera farther back and slightly lower
		core.NewVec3(4.5, 0.8, 4.5), // Look at center of grid, slightly lower
		40.0,
	)
	config.DefocusAngle = 0.2
	config.Background = core.NewVec3(0.5, 0.7, 1.0)

	s := NewScene("sphere-grid", config)
	s.AspectRatio = Widescreen

	s.Add(
		geometry.NewSphere(core.NewVec3(20, 25, 20), 8, material.NewLight(core.NewVec3(12.0, 11.5, 10.0))),
		NewGroundQuad(core.NewVec3(4.5, 0, 4.5), 1000, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))),
	)

	// Fit the grid into a roughly 9x9 area centered on the look-at point
	targetArea := 9.0
	spacing := targetArea / float64(sphereGridSize-1)
	radius := math.Max(0.02, math.Min(0.35, spacing*0.35))

	const (
		baseLightness = 0.65
		minChroma     = 0.05
		maxChroma     = 0.25
	)

	for i := 0; i < sphereGridSize; i++ {
		for j := 0; j < sphereGridSize; j++ {
			x := float64(i)*spacing - targetArea/2.0 + 4.5
			z := float64(j)*spacing - targetArea/2.0 + 4.5

			hue := float64(i) / float64(sphereGridSize-1) * 360.0
			chroma := minChroma + float64(j)/float64(sphereGridSize-1)*(maxChroma-minChroma)
			lightness := baseLightness + 0.1*math.Sin(float64(i+j)*0.5)

			roughness := 0.05 + 0.1*float64((i+j)%3)/2.0
			metal := material.NewMetal(oklchToRGB(lightness, chroma, hue), roughness)
			s.Add(geometry.NewSphere(core.NewVec3(x, radius, z), radius, metal))
		}
	}

	return s
}

package scene

import (
	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/geometry"
	"github.com/df07/go-raytracer/pkg/material"
)

// NewDefaultScene creates a default scene with spheres, ground, and camera
func NewDefaultScene(width int) *Scene {
	config := cameraConfig(width, 400, Widescreen,
		core.NewVec3(0, 0.75, 2), // Position camera higher and farther back
		core.NewVec3(0, 0.5, -1), // Look at the sphere center
		40.0,
	)
	config.DefocusAngle = 0.6
	config.Background = core.NewVec3(0.7, 0.8, 1.0)

	s := NewScene("default", config)
	s.AspectRatio = Widescreen

	// Create materials
	ground := material.NewCheckeredColors(0.5, core.NewVec3(0.2, 0.3, 0.1), core.NewVec3(0.9, 0.9, 0.9))
	lambertianBlue := material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))
	lambertianRed := material.NewLambertian(core.NewVec3(0.65, 0.25, 0.2))
	metalSilver := material.NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0.0)
	metalGold := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.3)
	glass := material.NewGlass()

	s.Add(
		NewGroundQuad(core.NewVec3(0, 0, 0), 10000.0, material.NewTexturedLambertian(ground)),
		geometry.NewSphere(core.NewVec3(0, 0.5, -1), 0.5, lambertianRed),
		geometry.NewSphere(core.NewVec3(-1, 0.5, -1), 0.5, metalSilver),
		geometry.NewSphere(core.NewVec3(1, 0.5, -1), 0.5, metalGold),
		geometry.NewSphere(core.NewVec3(0.5, 0.25, -0.5), 0.25, glass),
		geometry.NewSphere(core.NewVec3(-0.5, 0.25, -0.5), 0.2, lambertianBlue),
	)

	// Small spheres bouncing upward during the shutter interval
	for i, x := range []float64{-1.5, -0.75, 0.75, 1.5} {
		albedo := core.NewVec3(0.2+0.2*float64(i), 0.5, 0.8-0.2*float64(i))
		s.Add(geometry.NewMovingSphere(
			core.NewVec3(x, 0.1, -0.2),
			core.NewVec3(0, 0.15, 0),
			0.1,
			material.NewLambertian(albedo),
		))
	}

	// Warm sun: pos [30, 30.5, 15], r: 10
	s.Add(geometry.NewSphere(core.NewVec3(30, 30.5, 15), 10, material.NewLight(core.NewVec3(15.0, 14.0, 13.0))))

	return s
}

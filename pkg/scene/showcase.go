package scene

import (
	"math"
	"math/rand/v2"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/geometry"
	"github.com/df07/go-raytracer/pkg/material"
)

// gradientImage builds a small hue-wheel image texture in memory
func gradientImage(width, height int) *material.ImageTexture {
	pixels := make([]core.Vec3, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			hue := float64(x) / float64(width) * 360
			lightness := 0.45 + 0.4*float64(y)/float64(height)
			pixels[y*width+x] = oklchToRGB(lightness, 0.15, hue)
		}
	}
	return material.NewImageTexture(width, height, pixels, false)
}

// NewShowcaseScene places every kind of primitive, transform, material and
// texture in one scene
func NewShowcaseScene(width int) *Scene {
	config := cameraConfig(width, 600, Cinema,
		core.NewVec3(0, 4, 12),
		core.NewVec3(0, 1, 0),
		35.0,
	)
	config.DefocusAngle = 0.3
	config.Background = core.NewVec3(0.05, 0.05, 0.08)

	s := NewScene("showcase", config)
	s.AspectRatio = Cinema

	perlin := material.NewPerlin(rand.New(rand.NewPCG(7, 7)))
	checker := material.NewCheckered(0.75,
		material.NewSolidColor(core.NewVec3(0.15, 0.15, 0.2)),
		material.NewNoiseTexture(perlin, 3, 4),
	)

	// Ground and lighting
	s.Add(
		NewGroundQuad(core.NewVec3(0, 0, 0), 200, material.NewTexturedLambertian(checker)),
		geometry.NewQuad(core.NewVec3(-3, 7, -1), core.NewVec3(6, 0, 0), core.NewVec3(0, 0, 3),
			material.NewLight(core.NewVec3(6, 6, 5.5))),
		geometry.NewSphere(core.NewVec3(-9, 5, -6), 1.5,
			material.NewTexturedLight(material.NewCheckeredColors(0.4, core.NewVec3(4, 1, 1), core.NewVec3(1, 1, 4)))),
	)

	// Back row: textured, noise, metal and water spheres
	s.Add(
		geometry.NewSphere(core.NewVec3(-4.5, 1, -2), 1, material.NewTexturedLambertian(gradientImage(64, 32))),
		geometry.NewSphere(core.NewVec3(-1.5, 1, -2), 1, material.NewTexturedMetal(material.NewNoiseTexture(perlin, 2, 5), 0.2)),
		geometry.NewSphere(core.NewVec3(1.5, 1, -2), 1, material.NewMetal(core.NewVec3(0.9, 0.9, 0.9), 0)),
		geometry.NewSphere(core.NewVec3(4.5, 1, -2), 1, material.NewWater()),
	)

	// Front row: transforms, meshes and media
	ellipsoid := geometry.NewScale(
		geometry.NewSphere(core.Vec3{}, 1, material.NewLambertian(core.NewVec3(0.8, 0.3, 0.1))),
		core.NewVec3(0.6, 1.2, 0.6),
	)
	tiltedCube := geometry.NewRotate(
		geometry.NewCube(core.NewVec3(-0.6, -0.6, -0.6), core.NewVec3(0.6, 0.6, 0.6), material.NewDielectric(1.7)),
		core.AxisZ, 30,
	)
	fog := geometry.NewVolume(
		geometry.NewSphere(core.NewVec3(4.5, 1, 1.5), 1, material.NewGlass()),
		1.5,
		material.NewSolidColor(core.NewVec3(0.8, 0.85, 0.9)),
	)
	triangle := geometry.NewTriangle(
		geometry.NewVertex(core.NewVec3(-6, 0, 0)),
		geometry.NewVertex(core.NewVec3(-4.5, 0, 2)),
		geometry.NewVertexWithNormal(core.NewVec3(-5.5, 2.5, 1), core.NewVec3(0, math.Sqrt2/2, math.Sqrt2/2)),
		material.NewLambertian(core.NewVec3(0.2, 0.6, 0.3)),
	)

	s.Add(
		geometry.NewTranslate(ellipsoid, core.NewVec3(-3, 1.2, 1.5)),
		geometry.NewTranslate(tiltedCube, core.NewVec3(-0.8, 0.85, 1.5)),
		place(mustMesh(createIcosahedronMesh(0.8), material.NewMetal(core.NewVec3(0.7, 0.5, 0.9), 0.05)), 20, core.NewVec3(1.4, 0.8, 1.5)),
		fog,
		triangle,
		geometry.NewMovingSphere(core.NewVec3(0.3, 0.3, 3.2), core.NewVec3(0.6, 0, 0), 0.3,
			material.NewLambertian(core.NewVec3(0.9, 0.8, 0.1))),
	)

	return s
}

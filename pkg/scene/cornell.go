package scene

import (
	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/geometry"
	"github.com/df07/go-raytracer/pkg/material"
)

// Cornell box dimensions (standard 555x555x555 units)
const boxSize = 555.0

func newCornellBase(name string, width int) *Scene {
	config := cameraConfig(width, 400, Square,
		core.NewVec3(278, 278, -800), // Position camera outside the box looking in
		core.NewVec3(278, 278, 0),    // Look at the center of the box
		40.0,
	)
	config.SamplesPerPixel = 200

	s := NewScene(name, config)
	s.AspectRatio = Square

	red := material.NewLambertian(core.NewVec3(0.65, 0.05, 0.05))
	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	green := material.NewLambertian(core.NewVec3(0.12, 0.45, 0.15))

	s.Add(
		// Right wall (green) - YZ plane at x=boxSize
		geometry.NewQuad(core.NewVec3(boxSize, 0, 0), core.NewVec3(0, boxSize, 0), core.NewVec3(0, 0, boxSize), green),
		// Left wall (red) - YZ plane at x=0
		geometry.NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(0, boxSize, 0), core.NewVec3(0, 0, boxSize), red),
		// Floor
		geometry.NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(boxSize, 0, 0), core.NewVec3(0, 0, boxSize), white),
		// Ceiling
		geometry.NewQuad(core.NewVec3(boxSize, boxSize, boxSize), core.NewVec3(-boxSize, 0, 0), core.NewVec3(0, 0, -boxSize), white),
		// Back wall
		geometry.NewQuad(core.NewVec3(0, 0, boxSize), core.NewVec3(boxSize, 0, 0), core.NewVec3(0, boxSize, 0), white),
	)
	return s
}

// rotatedBlock creates a box with one corner at the origin, turned about y and moved into place
func rotatedBlock(size core.Vec3, degrees float64, offset core.Vec3, mat material.Material) geometry.Geometry {
	box := geometry.NewCube(core.Vec3{}, size, mat)
	return geometry.NewTranslate(geometry.NewRotate(box, core.AxisY, degrees), offset)
}

// NewCornellScene creates a classic Cornell box scene with quad walls and area lighting
func NewCornellScene(width int) *Scene {
	s := newCornellBase("cornell", width)
	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))

	s.Add(
		// Ceiling light, slightly below the ceiling
		geometry.NewQuad(core.NewVec3(343, 554, 332), core.NewVec3(-130, 0, 0), core.NewVec3(0, 0, -105),
			material.NewLight(core.NewVec3(15, 15, 15))),
		rotatedBlock(core.NewVec3(165, 330, 165), 15, core.NewVec3(265, 0, 295), white),
		rotatedBlock(core.NewVec3(165, 165, 165), -18, core.NewVec3(130, 0, 65), white),
	)
	return s
}

// NewCornellSmokeScene replaces the Cornell blocks with constant-density media
func NewCornellSmokeScene(width int) *Scene {
	s := newCornellBase("cornell-smoke", width)
	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))

	tall := rotatedBlock(core.NewVec3(165, 330, 165), 15, core.NewVec3(265, 0, 295), white)
	short := rotatedBlock(core.NewVec3(165, 165, 165), -18, core.NewVec3(130, 0, 65), white)

	s.Add(
		// Larger, dimmer light
		geometry.NewQuad(core.NewVec3(113, 554, 127), core.NewVec3(330, 0, 0), core.NewVec3(0, 0, 305),
			material.NewLight(core.NewVec3(7, 7, 7))),
		geometry.NewVolume(tall, 0.01, material.NewSolidColor(core.NewVec3(0, 0, 0))),
		geometry.NewVolume(short, 0.01, material.NewSolidColor(core.NewVec3(1, 1, 1))),
	)
	return s
}

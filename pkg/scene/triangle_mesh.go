package scene

import (
	"fmt"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/geometry"
	"github.com/df07/go-raytracer/pkg/material"
)

// mustMesh builds a mesh from generated data, which is always valid
func mustMesh(data geometry.MeshData, mat material.Material) *geometry.Mesh {
	mesh, err := geometry.NewMesh(data, mat)
	if err != nil {
		panic(fmt.Sprintf("built-in mesh: %v", err))
	}
	return mesh
}

// place rotates an origin-centered object about y and moves it to center
func place(object geometry.Geometry, degrees float64, center core.Vec3) geometry.Geometry {
	if degrees != 0 {
		object = geometry.NewRotate(object, core.AxisY, degrees)
	}
	return geometry.NewTranslate(object, center)
}

// NewTriangleMeshScene creates a scene showcasing triangle mesh geometry
func NewTriangleMeshScene(width int) *Scene {
	config := cameraConfig(width, 400, Widescreen,
		core.NewVec3(0, 3, 8),
		core.NewVec3(0, 1, 0),
		40.0,
	)
	config.Background = core.NewVec3(0.6, 0.7, 0.9)

	s := NewScene("triangle-mesh", config)
	s.AspectRatio = Widescreen

	red := material.NewLambertian(core.NewVec3(0.7, 0.2, 0.2))
	gold := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.1)

	checker := material.NewCheckeredColors(1, core.NewVec3(0.3, 0.3, 0.3), core.NewVec3(0.8, 0.8, 0.8))

	s.Add(
		NewGroundQuad(core.NewVec3(0, 0, 0), 100, material.NewTexturedLambertian(checker)),
		place(mustMesh(createBoxMesh(core.NewVec3(1.5, 1.5, 1.5)), red), 30, core.NewVec3(-2.5, 0.75, 0)),
		place(mustMesh(createPyramidMesh(2, 2), gold), 45, core.NewVec3(0, 1, -1)),
		place(mustMesh(createIcosahedronMesh(1), material.NewGlass()), 0, core.NewVec3(2.5, 1, 0)),
		geometry.NewQuad(core.NewVec3(-2, 6, -2), core.NewVec3(4, 0, 0), core.NewVec3(0, 0, 4),
			material.NewLight(core.NewVec3(4, 4, 4))),
	)
	return s
}

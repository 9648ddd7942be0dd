package scene

import (
	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/geometry"
	"github.com/df07/go-raytracer/pkg/material"
	"github.com/df07/go-raytracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name        string
	AspectRatio AspectRatio // Preset the camera height was derived from
	Camera      renderer.CameraConfig
	Objects     []geometry.Geometry // Top-level objects in the scene
	World       geometry.Geometry   // BVH over Objects, built by Preprocess
}

// NewScene creates an empty scene with the given camera
func NewScene(name string, camera renderer.CameraConfig) *Scene {
	return &Scene{
		Name:    name,
		Camera:  camera,
		Objects: make([]geometry.Geometry, 0),
	}
}

// Add appends objects to the scene
func (s *Scene) Add(objects ...geometry.Geometry) {
	s.Objects = append(s.Objects, objects...)
}

// SetWidth changes the image width and derives the height from the scene's
// aspect ratio, or from the current proportions when it has none
func (s *Scene) SetWidth(width int) {
	if width <= 0 {
		return
	}
	if _, _, ok := s.AspectRatio.Ratio(); ok {
		s.Camera.Height = s.AspectRatio.Height(width)
	} else if s.Camera.Width > 0 {
		s.Camera.Height = max(1, width*s.Camera.Height/s.Camera.Width)
	}
	s.Camera.Width = width
}

// Preprocess builds the acceleration structure over all objects
func (s *Scene) Preprocess() {
	s.World = geometry.NewBVH(s.Objects)
}

// NewRenderer preprocesses the scene if needed and creates a renderer for it
func (s *Scene) NewRenderer(logger core.Logger) *renderer.Renderer {
	if s.World == nil {
		s.Preprocess()
	}
	return renderer.NewRenderer(s.World, s.Camera, logger)
}

// BVHStats describes the acceleration structure, building it if needed
func (s *Scene) BVHStats() geometry.BVHStats {
	if s.World == nil {
		s.Preprocess()
	}
	return geometry.StatsOf(s.World)
}

// NewGroundQuad creates a horizontal quad centered at center with its normal pointing up
func NewGroundQuad(center core.Vec3, size float64, mat material.Material) *geometry.Quad {
	corner := core.NewVec3(center.X-size/2, center.Y, center.Z-size/2)
	// u × v = (0,0,size) × (size,0,0) = (0,size²,0)
	u := core.NewVec3(0, 0, size)
	v := core.NewVec3(size, 0, 0)
	return geometry.NewQuad(corner, u, v, mat)
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	count := 0
	for _, object := range s.Objects {
		count += countPrimitives(object)
	}
	return count
}

// countPrimitives counts primitives in a single object, looking through wrappers
func countPrimitives(object geometry.Geometry) int {
	switch obj := object.(type) {
	case *geometry.Mesh:
		return obj.TriangleCount()
	case *geometry.Cube:
		return 6
	case *geometry.Translate:
		return countPrimitives(obj.Child)
	case *geometry.Rotate:
		return countPrimitives(obj.Child)
	case *geometry.Scale:
		return countPrimitives(obj.Child)
	case *geometry.Volume:
		return countPrimitives(obj.Boundary)
	case *geometry.Empty:
		return 0
	default:
		return 1
	}
}

package integrator

import (
	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/geometry"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor estimates the radiance arriving along ray, following at most
	// depth bounces through world
	RayColor(ray core.Ray, depth int, world geometry.Geometry, sampler core.Sampler) core.Vec3
}

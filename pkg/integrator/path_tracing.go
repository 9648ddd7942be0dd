package integrator

import (
	"math"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/geometry"
	"github.com/df07/go-raytracer/pkg/material"
)

// shadowAcneEpsilon is the smallest t accepted for any hit
const shadowAcneEpsilon = 0.001

// PathTracingIntegrator implements recursive unidirectional path tracing
// with a hard depth cutoff and a constant background
type PathTracingIntegrator struct {
	Background core.Vec3
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(background core.Vec3) *PathTracingIntegrator {
	return &PathTracingIntegrator{Background: background}
}

// RayColor returns emission plus attenuated scattered radiance
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, depth int, world geometry.Geometry, sampler core.Sampler) core.Vec3 {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth <= 0 {
		return core.Vec3{}
	}

	var hit material.HitRecord
	if !world.Hit(ray, core.NewInterval(shadowAcneEpsilon, math.Inf(1)), &hit, sampler) {
		return pt.Background
	}

	emitted := hit.Material.Emitted(hit.U, hit.V, hit.Point)

	scatter, didScatter := hit.Material.Scatter(ray, hit, sampler)
	if !didScatter {
		return emitted
	}

	incoming := pt.RayColor(scatter.Scattered, depth-1, world, sampler)
	return emitted.Add(scatter.Attenuation.MultiplyVec(incoming))
}

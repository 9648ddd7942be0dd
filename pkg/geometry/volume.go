package geometry

import (
	"math"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/material"
)

// exitSearchOffset keeps the exit query from re-finding the entry surface
const exitSearchOffset = 0.0001

// Volume is a constant-density participating medium inside a closed boundary
type Volume struct {
	Boundary      Geometry
	Density       float64
	negInvDensity float64
	phase         material.Material
}

// NewVolume fills boundary with a medium of the given density. Density must
// be positive; scene loaders validate it before construction.
func NewVolume(boundary Geometry, density float64, texture material.Texture) *Volume {
	return &Volume{
		Boundary:      boundary,
		Density:       density,
		negInvDensity: -1.0 / density,
		phase:         material.NewIsotropic(texture),
	}
}

// Hit samples a free-flight distance inside the boundary
func (v *Volume) Hit(ray core.Ray, rayT core.Interval, rec *material.HitRecord, sampler core.Sampler) bool {
	var entry, exit material.HitRecord

	if !v.Boundary.Hit(ray, core.UniverseInterval, &entry, sampler) {
		return false
	}
	if !v.Boundary.Hit(ray, core.NewInterval(entry.T+exitSearchOffset, math.Inf(1)), &exit, sampler) {
		return false
	}

	tEntry := math.Max(entry.T, rayT.Min)
	tExit := math.Min(exit.T, rayT.Max)
	if tEntry >= tExit {
		return false
	}
	if tEntry < 0 {
		tEntry = 0
	}

	rayLength := ray.Direction.Length()
	distanceInside := (tExit - tEntry) * rayLength

	// 1 - [0,1) keeps the log argument in (0,1]
	hitDistance := v.negInvDensity * math.Log(1-sampler.Get1D())
	if hitDistance > distanceInside {
		return false
	}

	rec.T = tEntry + hitDistance/rayLength
	rec.Point = ray.At(rec.T)
	rec.Normal = core.NewVec3(1, 0, 0) // arbitrary
	rec.FrontFace = true
	rec.Material = v.phase
	rec.U, rec.V = 0, 0

	return true
}

// BoundingBox returns the boundary's box
func (v *Volume) BoundingBox() core.AABB {
	return v.Boundary.BoundingBox()
}

func (*Volume) isGeometry() {}

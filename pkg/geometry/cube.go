package geometry

import (
	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/material"
)

// Cube is an axis-aligned box assembled from six quads in their own hierarchy
type Cube struct {
	sides Geometry
}

// NewCube creates the box spanned by opposite corners a and b
func NewCube(a, b core.Vec3, mat material.Material) *Cube {
	minP := core.NewVec3(min(a.X, b.X), min(a.Y, b.Y), min(a.Z, b.Z))
	maxP := core.NewVec3(max(a.X, b.X), max(a.Y, b.Y), max(a.Z, b.Z))

	dx := core.NewVec3(maxP.X-minP.X, 0, 0)
	dy := core.NewVec3(0, maxP.Y-minP.Y, 0)
	dz := core.NewVec3(0, 0, maxP.Z-minP.Z)

	sides := []Geometry{
		NewQuad(core.NewVec3(minP.X, minP.Y, maxP.Z), dx, dy, mat),          // front
		NewQuad(core.NewVec3(maxP.X, minP.Y, maxP.Z), dz.Negate(), dy, mat), // right
		NewQuad(core.NewVec3(maxP.X, minP.Y, minP.Z), dx.Negate(), dy, mat), // back
		NewQuad(core.NewVec3(minP.X, minP.Y, minP.Z), dz, dy, mat),          // left
		NewQuad(core.NewVec3(minP.X, maxP.Y, maxP.Z), dx, dz.Negate(), mat), // top
		NewQuad(core.NewVec3(minP.X, minP.Y, minP.Z), dx, dz, mat),          // bottom
	}

	return &Cube{sides: NewBVH(sides)}
}

// Hit delegates to the side hierarchy
func (c *Cube) Hit(ray core.Ray, rayT core.Interval, rec *material.HitRecord, sampler core.Sampler) bool {
	return c.sides.Hit(ray, rayT, rec, sampler)
}

// BoundingBox returns the box of the six sides
func (c *Cube) BoundingBox() core.AABB {
	return c.sides.BoundingBox()
}

func (*Cube) isGeometry() {}

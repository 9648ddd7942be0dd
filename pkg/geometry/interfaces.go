package geometry

import (
	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/material"
)

// Geometry is a node of the immutable scene graph. The set is closed:
// primitives (Sphere, Quad, Triangle, Cube, Mesh), transform wrappers
// (Translate, Rotate, Scale), Volume, BVHNode and Empty.
//
// Hit fills rec only when it returns true; on a miss rec is left untouched.
// The sampler is consumed by stochastic nodes such as Volume.
type Geometry interface {
	Hit(ray core.Ray, rayT core.Interval, rec *material.HitRecord, sampler core.Sampler) bool
	BoundingBox() core.AABB

	isGeometry()
}

// Empty never hits anything
type Empty struct{}

// NewEmpty returns the empty geometry
func NewEmpty() *Empty {
	return &Empty{}
}

// Hit always misses
func (*Empty) Hit(ray core.Ray, rayT core.Interval, rec *material.HitRecord, sampler core.Sampler) bool {
	return false
}

// BoundingBox returns the empty box
func (*Empty) BoundingBox() core.AABB {
	return core.EmptyAABB
}

func (*Empty) isGeometry() {}

package geometry

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/material"
)

// Translate moves its child by a fixed offset
type Translate struct {
	Child  Geometry
	Offset core.Vec3
	bbox   core.AABB
}

// NewTranslate wraps child so that it appears shifted by offset
func NewTranslate(child Geometry, offset core.Vec3) *Translate {
	return &Translate{
		Child:  child,
		Offset: offset,
		bbox:   child.BoundingBox().Translate(offset),
	}
}

// Hit moves the ray into object space, tests the child, and moves the hit back
func (t *Translate) Hit(ray core.Ray, rayT core.Interval, rec *material.HitRecord, sampler core.Sampler) bool {
	offsetRay := core.NewRayAtTime(ray.Origin.Subtract(t.Offset), ray.Direction, ray.Time)

	if !t.Child.Hit(offsetRay, rayT, rec, sampler) {
		return false
	}

	rec.Point = rec.Point.Add(t.Offset)
	return true
}

// BoundingBox returns the child's box shifted by the offset
func (t *Translate) BoundingBox() core.AABB {
	return t.bbox
}

func (*Translate) isGeometry() {}

// Rotate turns its child about one coordinate axis through the origin
type Rotate struct {
	Child    Geometry
	Axis     core.Axis
	Degrees  float64
	toWorld  mgl64.Mat3
	toObject mgl64.Mat3
	bbox     core.AABB
}

// NewRotate wraps child rotated by degrees about axis
func NewRotate(child Geometry, axis core.Axis, degrees float64) *Rotate {
	radians := mgl64.DegToRad(degrees)

	var toWorld mgl64.Mat3
	switch axis {
	case core.AxisX:
		toWorld = mgl64.Rotate3DX(radians)
	case core.AxisY:
		toWorld = mgl64.Rotate3DY(radians)
	default:
		toWorld = mgl64.Rotate3DZ(radians)
	}

	r := &Rotate{
		Child:    child,
		Axis:     axis,
		Degrees:  degrees,
		toWorld:  toWorld,
		toObject: toWorld.Transpose(),
	}
	r.bbox = transformedBounds(child.BoundingBox(), r.rotate)
	return r
}

func (r *Rotate) rotate(v core.Vec3) core.Vec3 {
	return mulVec(r.toWorld, v)
}

// Hit rotates the ray into object space and the hit back into world space
func (r *Rotate) Hit(ray core.Ray, rayT core.Interval, rec *material.HitRecord, sampler core.Sampler) bool {
	objectRay := core.NewRayAtTime(
		mulVec(r.toObject, ray.Origin),
		mulVec(r.toObject, ray.Direction),
		ray.Time,
	)

	if !r.Child.Hit(objectRay, rayT, rec, sampler) {
		return false
	}

	rec.Point = mulVec(r.toWorld, rec.Point)
	rec.Normal = mulVec(r.toWorld, rec.Normal)
	return true
}

// BoundingBox returns the axis-aligned extent of the rotated child box
func (r *Rotate) BoundingBox() core.AABB {
	return r.bbox
}

func (*Rotate) isGeometry() {}

// Scale stretches its child component-wise about the origin
type Scale struct {
	Child   Geometry
	Factors core.Vec3
	bbox    core.AABB
}

// NewScale wraps child scaled by factors; every factor must be non-zero
func NewScale(child Geometry, factors core.Vec3) *Scale {
	return &Scale{
		Child:   child,
		Factors: factors,
		bbox:    transformedBounds(child.BoundingBox(), func(v core.Vec3) core.Vec3 { return v.MultiplyVec(factors) }),
	}
}

// Hit scales the ray into object space. Points scale forward; normals use
// the inverse transpose (divide, then renormalize).
func (s *Scale) Hit(ray core.Ray, rayT core.Interval, rec *material.HitRecord, sampler core.Sampler) bool {
	objectRay := core.NewRayAtTime(
		ray.Origin.DivideVec(s.Factors),
		ray.Direction.DivideVec(s.Factors),
		ray.Time,
	)

	if !s.Child.Hit(objectRay, rayT, rec, sampler) {
		return false
	}

	rec.Point = rec.Point.MultiplyVec(s.Factors)
	rec.Normal = rec.Normal.DivideVec(s.Factors).Normalize()
	return true
}

// BoundingBox returns the extent of the scaled child box
func (s *Scale) BoundingBox() core.AABB {
	return s.bbox
}

func (*Scale) isGeometry() {}

// transformedBounds maps the eight corners of box and returns their extent
func transformedBounds(box core.AABB, transform func(core.Vec3) core.Vec3) core.AABB {
	if box.IsEmpty() {
		return core.EmptyAABB
	}
	vertices := box.Vertices()
	for i, v := range vertices {
		vertices[i] = transform(v)
	}
	return core.NewAABBBounding(vertices[:]...)
}

func mulVec(m mgl64.Mat3, v core.Vec3) core.Vec3 {
	r := m.Mul3x1(mgl64.Vec3{v.X, v.Y, v.Z})
	return core.NewVec3(r[0], r[1], r[2])
}

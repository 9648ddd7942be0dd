package geometry

import (
	"math"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/material"
)

// Quad represents a parallelogram defined by a corner and two edge vectors
type Quad struct {
	Corner   core.Vec3 // One corner of the quad
	U        core.Vec3 // First edge vector
	V        core.Vec3 // Second edge vector
	Normal   core.Vec3 // Unit normal (U × V normalized)
	Material material.Material
	D        float64   // Plane equation constant: normal · x = D
	W        core.Vec3 // n / (n · n) for planar coordinates
	bbox     core.AABB
}

// NewQuad creates a new quad from a corner point and two edge vectors
func NewQuad(corner, u, v core.Vec3, mat material.Material) *Quad {
	n := u.Cross(v)
	normal := n.Normalize()

	diagonal1 := core.NewAABBFromPoints(corner, corner.Add(u).Add(v))
	diagonal2 := core.NewAABBFromPoints(corner.Add(u), corner.Add(v))

	return &Quad{
		Corner:   corner,
		U:        u,
		V:        v,
		Normal:   normal,
		Material: mat,
		D:        normal.Dot(corner),
		W:        n.Multiply(1.0 / n.Dot(n)),
		bbox:     core.NewAABBFromBoxes(diagonal1, diagonal2),
	}
}

// Hit tests if a ray intersects with the quad
func (q *Quad) Hit(ray core.Ray, rayT core.Interval, rec *material.HitRecord, sampler core.Sampler) bool {
	denominator := q.Normal.Dot(ray.Direction)

	// Parallel to the plane
	if math.Abs(denominator) < 1e-8 {
		return false
	}

	t := (q.D - q.Normal.Dot(ray.Origin)) / denominator
	if !rayT.Contains(t) {
		return false
	}

	hitPoint := ray.At(t)
	planar := hitPoint.Subtract(q.Corner)
	alpha := q.W.Dot(planar.Cross(q.V))
	beta := q.W.Dot(q.U.Cross(planar))

	if !isInterior(alpha, beta) {
		return false
	}

	rec.T = t
	rec.Point = hitPoint
	rec.Material = q.Material
	rec.SetFaceNormal(ray, q.Normal)
	rec.U = alpha
	rec.V = beta

	return true
}

// BoundingBox returns the box spanning both diagonals
func (q *Quad) BoundingBox() core.AABB {
	return q.bbox
}

func (*Quad) isGeometry() {}

func isInterior(alpha, beta float64) bool {
	unit := core.NewInterval(0, 1)
	return unit.Contains(alpha) && unit.Contains(beta)
}

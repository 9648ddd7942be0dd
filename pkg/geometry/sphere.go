package geometry

import (
	"math"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/material"
)

// Sphere represents a sphere whose center may move linearly over the shutter interval
type Sphere struct {
	Center   core.Ray // Center at time t is Center.At(t)
	Radius   float64
	Material material.Material
	bbox     core.AABB
}

// NewSphere creates a new stationary sphere
func NewSphere(center core.Vec3, radius float64, mat material.Material) *Sphere {
	return NewMovingSphere(center, core.Vec3{}, radius, mat)
}

// NewMovingSphere creates a sphere centered at center at time 0 and at
// center+velocity at time 1
func NewMovingSphere(center, velocity core.Vec3, radius float64, mat material.Material) *Sphere {
	radius = math.Max(0, radius)
	rvec := core.NewVec3(radius, radius, radius)

	start := core.NewAABBFromPoints(center.Subtract(rvec), center.Add(rvec))
	end := center.Add(velocity)
	finish := core.NewAABBFromPoints(end.Subtract(rvec), end.Add(rvec))

	return &Sphere{
		Center:   core.NewRay(center, velocity),
		Radius:   radius,
		Material: mat,
		bbox:     core.NewAABBFromBoxes(start, finish),
	}
}

// Hit tests if a ray intersects with the sphere
func (s *Sphere) Hit(ray core.Ray, rayT core.Interval, rec *material.HitRecord, sampler core.Sampler) bool {
	center := s.Center.At(ray.Time)
	oc := center.Subtract(ray.Origin)

	// Quadratic in t with b = -2h
	a := ray.Direction.LengthSquared()
	h := ray.Direction.Dot(oc)
	c := oc.LengthSquared() - s.Radius*s.Radius

	discriminant := h*h - a*c
	if discriminant < 0 {
		return false
	}
	sqrtD := math.Sqrt(discriminant)

	// Prefer the nearer root
	root := (h - sqrtD) / a
	if !rayT.Surrounds(root) {
		root = (h + sqrtD) / a
		if !rayT.Surrounds(root) {
			return false
		}
	}

	rec.T = root
	rec.Point = ray.At(root)
	outwardNormal := rec.Point.Subtract(center).Multiply(1.0 / s.Radius)
	rec.SetFaceNormal(ray, outwardNormal)
	rec.U, rec.V = sphereUV(outwardNormal)
	rec.Material = s.Material

	return true
}

// BoundingBox returns the box swept by the sphere over the shutter interval
func (s *Sphere) BoundingBox() core.AABB {
	return s.bbox
}

func (*Sphere) isGeometry() {}

// sphereUV maps a point on the unit sphere to texture coordinates.
// u runs around the y axis starting at -x, v runs from +y (0) to -y (1).
func sphereUV(p core.Vec3) (u, v float64) {
	theta := math.Acos(math.Max(-1, math.Min(1, p.Y)))
	phi := math.Atan2(-p.Z, p.X) + math.Pi
	return phi / (2 * math.Pi), theta / math.Pi
}

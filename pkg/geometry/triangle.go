package geometry

import (
	"math"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/material"
)

const triangleEpsilon = 1e-8

// Vertex is a triangle corner with an optional shading normal
type Vertex struct {
	Position core.Vec3
	Normal   *core.Vec3
}

// NewVertex creates a vertex without a shading normal
func NewVertex(position core.Vec3) Vertex {
	return Vertex{Position: position}
}

// NewVertexWithNormal creates a vertex with a shading normal
func NewVertexWithNormal(position, normal core.Vec3) Vertex {
	return Vertex{Position: position, Normal: &normal}
}

// Triangle represents a single triangle. When all three vertices carry
// normals they are interpolated for smooth shading.
type Triangle struct {
	A, B, C  core.Vec3
	normals  *[3]core.Vec3
	Material material.Material
	bbox     core.AABB
}

// NewTriangle creates a new triangle from three vertices
func NewTriangle(a, b, c Vertex, mat material.Material) *Triangle {
	t := &Triangle{
		A:        a.Position,
		B:        b.Position,
		C:        c.Position,
		Material: mat,
		bbox:     core.NewAABBBounding(a.Position, b.Position, c.Position),
	}
	if a.Normal != nil && b.Normal != nil && c.Normal != nil {
		t.normals = &[3]core.Vec3{*a.Normal, *b.Normal, *c.Normal}
	}
	return t
}

// Hit tests the ray with the Möller–Trumbore algorithm
func (t *Triangle) Hit(ray core.Ray, rayT core.Interval, rec *material.HitRecord, sampler core.Sampler) bool {
	e1 := t.B.Subtract(t.A)
	e2 := t.C.Subtract(t.A)

	rayCrossE2 := ray.Direction.Cross(e2)
	det := e1.Dot(rayCrossE2)
	if math.Abs(det) < triangleEpsilon {
		return false
	}

	invDet := 1.0 / det
	s := ray.Origin.Subtract(t.A)

	u := invDet * s.Dot(rayCrossE2)
	if u < 0 || u > 1 {
		return false
	}

	sCrossE1 := s.Cross(e1)
	v := invDet * ray.Direction.Dot(sCrossE1)
	if v < 0 || u+v > 1 {
		return false
	}

	dist := invDet * e2.Dot(sCrossE1)
	if dist <= triangleEpsilon || !rayT.Contains(dist) {
		return false
	}

	outwardNormal := e1.Cross(e2).Normalize()
	if t.normals != nil {
		w := 1 - u - v
		outwardNormal = t.normals[0].Multiply(w).
			Add(t.normals[1].Multiply(u)).
			Add(t.normals[2].Multiply(v)).
			Normalize()
	}

	rec.T = dist
	rec.Point = ray.At(dist)
	rec.SetFaceNormal(ray, outwardNormal)
	rec.Material = t.Material
	rec.U = u
	rec.V = v

	return true
}

// BoundingBox returns the box around the three corners
func (t *Triangle) BoundingBox() core.AABB {
	return t.bbox
}

func (*Triangle) isGeometry() {}

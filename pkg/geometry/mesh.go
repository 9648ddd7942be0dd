package geometry

import (
	"fmt"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/material"
)

// NoNormal marks a polygon corner without a shading normal
const NoNormal = -1

// PolygonVertex indexes into MeshData's position and normal lists
type PolygonVertex struct {
	Position int
	Normal   int // NoNormal when absent
}

// Polygon is a planar, convex face with at least three corners
type Polygon []PolygonVertex

// MeshData is already-parsed mesh input
type MeshData struct {
	Positions []core.Vec3
	Normals   []core.Vec3
	Polygons  []Polygon
}

// TriangleCount returns the number of triangles fan triangulation produces
func (d MeshData) TriangleCount() int {
	count := 0
	for _, poly := range d.Polygons {
		if len(poly) >= 3 {
			count += len(poly) - 2
		}
	}
	return count
}

// Mesh is a fan-triangulated polygon mesh with its own hierarchy
type Mesh struct {
	triangles int
	root      Geometry
}

// NewMesh triangulates every polygon as a fan around its first corner and
// builds the triangles into a BVH
func NewMesh(data MeshData, mat material.Material) (*Mesh, error) {
	triangles := make([]Geometry, 0, data.TriangleCount())

	for i, poly := range data.Polygons {
		if len(poly) < 3 {
			return nil, fmt.Errorf("polygon %d has %d vertices, need at least 3", i, len(poly))
		}

		vertices := make([]Vertex, len(poly))
		for j, pv := range poly {
			v, err := data.vertex(pv)
			if err != nil {
				return nil, fmt.Errorf("polygon %d vertex %d: %w", i, j, err)
			}
			vertices[j] = v
		}

		for j := 1; j+1 < len(vertices); j++ {
			triangles = append(triangles, NewTriangle(vertices[0], vertices[j], vertices[j+1], mat))
		}
	}

	return &Mesh{triangles: len(triangles), root: NewBVH(triangles)}, nil
}

func (d MeshData) vertex(pv PolygonVertex) (Vertex, error) {
	if pv.Position < 0 || pv.Position >= len(d.Positions) {
		return Vertex{}, fmt.Errorf("position index %d out of range [0, %d)", pv.Position, len(d.Positions))
	}
	position := d.Positions[pv.Position]

	if pv.Normal == NoNormal {
		return NewVertex(position), nil
	}
	if pv.Normal < 0 || pv.Normal >= len(d.Normals) {
		return Vertex{}, fmt.Errorf("normal index %d out of range [0, %d)", pv.Normal, len(d.Normals))
	}
	return NewVertexWithNormal(position, d.Normals[pv.Normal]), nil
}

// TriangleCount returns the number of triangles in the mesh
func (m *Mesh) TriangleCount() int {
	return m.triangles
}

// Hit delegates to the triangle hierarchy
func (m *Mesh) Hit(ray core.Ray, rayT core.Interval, rec *material.HitRecord, sampler core.Sampler) bool {
	return m.root.Hit(ray, rayT, rec, sampler)
}

// BoundingBox returns the box of all triangles
func (m *Mesh) BoundingBox() core.AABB {
	return m.root.BoundingBox()
}

func (*Mesh) isGeometry() {}

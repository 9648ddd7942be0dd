package geometry

import (
	"strings"
	"testing"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/material"
)

func squarePolygon() Polygon {
	return Polygon{
		{Position: 0, Normal: NoNormal},
		{Position: 1, Normal: NoNormal},
		{Position: 2, Normal: NoNormal},
		{Position: 3, Normal: NoNormal},
	}
}

func TestMesh_FanTriangulation(t *testing.T) {
	data := MeshData{
		Positions: []core.Vec3{
			core.NewVec3(0, 0, 0),
			core.NewVec3(1, 0, 0),
			core.NewVec3(1, 1, 0),
			core.NewVec3(0, 1, 0),
			core.NewVec3(0.5, 1.5, 0),
		},
		Polygons: []Polygon{
			{{0, NoNormal}, {1, NoNormal}, {2, NoNormal}},                                // triangle: 1
			squarePolygon(),                                                              // quad: 2
			{{0, NoNormal}, {1, NoNormal}, {2, NoNormal}, {4, NoNormal}, {3, NoNormal}}, // pentagon: 3
		},
	}

	if got := data.TriangleCount(); got != 6 {
		t.Errorf("TriangleCount() = %d, want 6", got)
	}

	mesh, err := NewMesh(data, testMaterial)
	if err != nil {
		t.Fatalf("NewMesh failed: %v", err)
	}
	if mesh.TriangleCount() != 6 {
		t.Errorf("Mesh has %d triangles, want 6", mesh.TriangleCount())
	}

	box := mesh.BoundingBox()
	if box.Y.Max != 1.5 || box.X.Min != 0 || box.X.Max != 1 {
		t.Errorf("Unexpected mesh bounds %+v", box)
	}
}

func TestMesh_HitCoversWholePolygon(t *testing.T) {
	data := MeshData{
		Positions: []core.Vec3{
			core.NewVec3(0, 0, 0),
			core.NewVec3(1, 0, 0),
			core.NewVec3(1, 1, 0),
			core.NewVec3(0, 1, 0),
		},
		Polygons: []Polygon{squarePolygon()},
	}
	mesh, err := NewMesh(data, testMaterial)
	if err != nil {
		t.Fatalf("NewMesh failed: %v", err)
	}

	sampler := core.NewSeededSampler(3, 3)
	for i := 0; i < 100; i++ {
		p := sampler.Get2D()
		ray := core.NewRay(core.NewVec3(p.X, p.Y, 1), core.NewVec3(0, 0, -1))
		var rec material.HitRecord
		if !mesh.Hit(ray, forward(), &rec, sampler) {
			t.Fatalf("Ray at (%v, %v) should hit the square", p.X, p.Y)
		}
	}
}

func TestMesh_WithNormals(t *testing.T) {
	up := core.NewVec3(0, 0, 1)
	data := MeshData{
		Positions: []core.Vec3{core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0)},
		Normals:   []core.Vec3{up},
		Polygons:  []Polygon{{{0, 0}, {1, 0}, {2, 0}}},
	}
	mesh, err := NewMesh(data, testMaterial)
	if err != nil {
		t.Fatalf("NewMesh failed: %v", err)
	}

	var rec material.HitRecord
	if !mesh.Hit(core.NewRay(core.NewVec3(0.2, 0.2, 1), core.NewVec3(0, 0, -1)), forward(), &rec, testSampler()) {
		t.Fatal("Expected hit")
	}
	if rec.Normal != up {
		t.Errorf("Expected shading normal %v, got %v", up, rec.Normal)
	}
}

func TestMesh_InvalidInput(t *testing.T) {
	positions := []core.Vec3{core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0)}

	tests := []struct {
		name    string
		data    MeshData
		wantErr string
	}{
		{
			name:    "too few vertices",
			data:    MeshData{Positions: positions, Polygons: []Polygon{{{0, NoNormal}, {1, NoNormal}}}},
			wantErr: "at least 3",
		},
		{
			name:    "position out of range",
			data:    MeshData{Positions: positions, Polygons: []Polygon{{{0, NoNormal}, {1, NoNormal}, {7, NoNormal}}}},
			wantErr: "position index 7",
		},
		{
			name:    "normal out of range",
			data:    MeshData{Positions: positions, Polygons: []Polygon{{{0, 2}, {1, NoNormal}, {2, NoNormal}}}},
			wantErr: "normal index 2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMesh(tt.data, testMaterial)
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestMesh_Empty(t *testing.T) {
	mesh, err := NewMesh(MeshData{}, testMaterial)
	if err != nil {
		t.Fatalf("Empty mesh should be valid: %v", err)
	}
	var rec material.HitRecord
	if mesh.Hit(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, 1)), forward(), &rec, testSampler()) {
		t.Error("Empty mesh should never hit")
	}
}

package loaders

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/fogleman/fauxgl"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/geometry"
	"github.com/df07/go-raytracer/pkg/material"
)

func TestMeshData_SharesPositions(t *testing.T) {
	a := fauxgl.Vector{X: 0, Y: 0, Z: 0}
	b := fauxgl.Vector{X: 1, Y: 0, Z: 0}
	c := fauxgl.Vector{X: 1, Y: 1, Z: 0}
	d := fauxgl.Vector{X: 0, Y: 1, Z: 0}
	up := fauxgl.Vector{X: 0, Y: 0, Z: 1}

	mesh := &fauxgl.Mesh{Triangles: []*fauxgl.Triangle{
		{
			V1: fauxgl.Vertex{Position: a, Normal: up},
			V2: fauxgl.Vertex{Position: b, Normal: up},
			V3: fauxgl.Vertex{Position: c, Normal: up},
		},
		{
			V1: fauxgl.Vertex{Position: a},
			V2: fauxgl.Vertex{Position: c},
			V3: fauxgl.Vertex{Position: d},
		},
	}}

	data := meshData(mesh)
	if len(data.Positions) != 4 {
		t.Errorf("Expected 4 shared positions, got %d", len(data.Positions))
	}
	if len(data.Normals) != 1 {
		t.Errorf("Expected 1 shared normal, got %d", len(data.Normals))
	}
	if data.TriangleCount() != 2 {
		t.Fatalf("Expected 2 triangles, got %d", data.TriangleCount())
	}

	for _, pv := range data.Polygons[0] {
		if pv.Normal != 0 {
			t.Errorf("First triangle should use the shared normal, got %d", pv.Normal)
		}
	}
	for _, pv := range data.Polygons[1] {
		if pv.Normal != geometry.NoNormal {
			t.Errorf("Second triangle has no normals, got index %d", pv.Normal)
		}
	}
	if data.Polygons[1][0].Position != data.Polygons[0][0].Position {
		t.Error("Corner a should be shared between triangles")
	}
}

func TestLoadMesh_OBJ(t *testing.T) {
	obj := `# unit square at z=-2
v -1 -1 -2
v 1 -1 -2
v 1 1 -2
v -1 1 -2
f 1 2 3 4
`
	path := filepath.Join(t.TempDir(), "square.obj")
	if err := os.WriteFile(path, []byte(obj), 0o644); err != nil {
		t.Fatal(err)
	}

	data, err := LoadMesh(path)
	if err != nil {
		t.Fatalf("LoadMesh failed: %v", err)
	}
	if data.TriangleCount() != 2 {
		t.Errorf("Expected quad split into 2 triangles, got %d", data.TriangleCount())
	}
	if len(data.Positions) != 4 {
		t.Errorf("Expected 4 positions, got %d", len(data.Positions))
	}

	mesh, err := geometry.NewMesh(data, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))
	if err != nil {
		t.Fatalf("NewMesh failed: %v", err)
	}

	var rec material.HitRecord
	ray := core.NewRay(core.NewVec3(0.5, 0.5, 0), core.NewVec3(0, 0, -1))
	if !mesh.Hit(ray, core.NewInterval(0.001, math.Inf(1)), &rec, core.NewSeededSampler(1, 1)) {
		t.Fatal("Expected ray to hit the loaded square")
	}
	if math.Abs(rec.T-2) > 1e-9 {
		t.Errorf("Expected t=2, got %v", rec.T)
	}
}

func TestLoadMesh_Errors(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadMesh(filepath.Join(dir, "model.fbx")); err == nil {
		t.Error("Expected error for unsupported format")
	}
	if _, err := LoadMesh(filepath.Join(dir, "missing.obj")); err == nil {
		t.Error("Expected error for missing file")
	}
}

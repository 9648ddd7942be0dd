package loaders

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/fogleman/fauxgl"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/geometry"
)

// LoadMesh reads an OBJ, STL or PLY model into mesh data
func LoadMesh(filename string) (geometry.MeshData, error) {
	var (
		mesh *fauxgl.Mesh
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".obj":
		mesh, err = fauxgl.LoadOBJ(filename)
	case ".stl":
		mesh, err = fauxgl.LoadSTL(filename)
	case ".ply":
		mesh, err = fauxgl.LoadPLY(filename)
	default:
		return geometry.MeshData{}, fmt.Errorf("%s: unsupported mesh format %q", filename, ext)
	}
	if err != nil {
		return geometry.MeshData{}, fmt.Errorf("failed to load mesh %s: %w", filename, err)
	}
	if len(mesh.Triangles) == 0 {
		return geometry.MeshData{}, fmt.Errorf("%s: mesh has no triangles", filename)
	}
	return meshData(mesh), nil
}

// meshData converts triangles into indexed mesh data, sharing identical
// positions and normals. A triangle keeps its normals only when all three
// corners have a usable one.
func meshData(mesh *fauxgl.Mesh) geometry.MeshData {
	var data geometry.MeshData
	positions := make(map[fauxgl.Vector]int)
	normals := make(map[fauxgl.Vector]int)

	index := func(v fauxgl.Vector, seen map[fauxgl.Vector]int, list *[]core.Vec3) int {
		if i, ok := seen[v]; ok {
			return i
		}
		i := len(*list)
		seen[v] = i
		*list = append(*list, toVec3(v))
		return i
	}

	for _, t := range mesh.Triangles {
		corners := [3]fauxgl.Vertex{t.V1, t.V2, t.V3}
		smooth := usableNormal(t.V1.Normal) && usableNormal(t.V2.Normal) && usableNormal(t.V3.Normal)

		poly := make(geometry.Polygon, 3)
		for i, c := range corners {
			poly[i] = geometry.PolygonVertex{
				Position: index(c.Position, positions, &data.Positions),
				Normal:   geometry.NoNormal,
			}
			if smooth {
				poly[i].Normal = index(c.Normal, normals, &data.Normals)
			}
		}
		data.Polygons = append(data.Polygons, poly)
	}
	return data
}

func usableNormal(n fauxgl.Vector) bool {
	length := n.Length()
	return length > 1e-8 && !math.IsNaN(length) && !math.IsInf(length, 0)
}

func toVec3(v fauxgl.Vector) core.Vec3 {
	return core.NewVec3(v.X, v.Y, v.Z)
}

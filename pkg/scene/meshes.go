package scene

import (
	"math"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/geometry"
)

// triangleMeshData builds mesh data from positions and a flat list of
// triangle indices
func triangleMeshData(positions []core.Vec3, faces []int) geometry.MeshData {
	data := geometry.MeshData{Positions: positions}
	for i := 0; i+2 < len(faces); i += 3 {
		data.Polygons = append(data.Polygons, geometry.Polygon{
			{Position: faces[i], Normal: geometry.NoNormal},
			{Position: faces[i+1], Normal: geometry.NoNormal},
			{Position: faces[i+2], Normal: geometry.NoNormal},
		})
	}
	return data
}

// createBoxMesh creates mesh data for an axis-aligned box centered on the origin
func createBoxMesh(size core.Vec3) geometry.MeshData {
	h := size.Multiply(0.5)
	vertices := []core.Vec3{
		core.NewVec3(-h.X, -h.Y, -h.Z), // 0: left-bottom-back
		core.NewVec3(+h.X, -h.Y, -h.Z), // 1: right-bottom-back
		core.NewVec3(+h.X, +h.Y, -h.Z), // 2: right-top-back
		core.NewVec3(-h.X, +h.Y, -h.Z), // 3: left-top-back
		core.NewVec3(-h.X, -h.Y, +h.Z), // 4: left-bottom-front
		core.NewVec3(+h.X, -h.Y, +h.Z), // 5: right-bottom-front
		core.NewVec3(+h.X, +h.Y, +h.Z), // 6: right-top-front
		core.NewVec3(-h.X, +h.Y, +h.Z), // 7: left-top-front
	}

	// Two triangles per face
	faces := []int{
		0, 1, 2, 0, 2, 3, // back (z-)
		4, 6, 5, 4, 7, 6, // front (z+)
		0, 3, 7, 0, 7, 4, // left (x-)
		1, 5, 6, 1, 6, 2, // right (x+)
		0, 4, 5, 0, 5, 1, // bottom (y-)
		3, 2, 6, 3, 6, 7, // top (y+)
	}
	return triangleMeshData(vertices, faces)
}

// createPyramidMesh creates mesh data for a square pyramid centered on the origin.
// The base is a single quad polygon so it is fan-triangulated by the mesh.
func createPyramidMesh(baseSize, height float64) geometry.MeshData {
	halfBase := baseSize * 0.5
	halfHeight := height * 0.5

	data := geometry.MeshData{
		Positions: []core.Vec3{
			core.NewVec3(-halfBase, -halfHeight, -halfBase), // 0: left-back
			core.NewVec3(+halfBase, -halfHeight, -halfBase), // 1: right-back
			core.NewVec3(+halfBase, -halfHeight, +halfBase), // 2: right-front
			core.NewVec3(-halfBase, -halfHeight, +halfBase), // 3: left-front
			core.NewVec3(0, +halfHeight, 0),                 // 4: apex
		},
	}

	polygon := func(indices ...int) geometry.Polygon {
		p := make(geometry.Polygon, len(indices))
		for i, index := range indices {
			p[i] = geometry.PolygonVertex{Position: index, Normal: geometry.NoNormal}
		}
		return p
	}
	data.Polygons = []geometry.Polygon{
		polygon(0, 1, 2, 3),
		polygon(0, 1, 4),
		polygon(1, 2, 4),
		polygon(2, 3, 4),
		polygon(3, 0, 4),
	}
	return data
}

// createIcosahedronMesh creates mesh data for an icosahedron whose vertices lie
// on a sphere of the given radius. Vertex normals point radially outward so the
// surface shades smoothly.
func createIcosahedronMesh(radius float64) geometry.MeshData {
	phi := (1 + math.Sqrt(5)) / 2

	raw := []core.Vec3{
		core.NewVec3(-1, phi, 0), core.NewVec3(1, phi, 0),
		core.NewVec3(-1, -phi, 0), core.NewVec3(1, -phi, 0),
		core.NewVec3(0, -1, phi), core.NewVec3(0, 1, phi),
		core.NewVec3(0, -1, -phi), core.NewVec3(0, 1, -phi),
		core.NewVec3(phi, 0, -1), core.NewVec3(phi, 0, 1),
		core.NewVec3(-phi, 0, -1), core.NewVec3(-phi, 0, 1),
	}

	faces := []int{
		0, 11, 5, 0, 5, 1, 0, 1, 7, 0, 7, 10, 0, 10, 11,
		1, 5, 9, 5, 11, 4, 11, 10, 2, 10, 7, 6, 7, 1, 8,
		3, 9, 4, 3, 4, 2, 3, 2, 6, 3, 6, 8, 3, 8, 9,
		4, 9, 5, 2, 4, 11, 6, 2, 10, 8, 6, 7, 9, 8, 1,
	}

	data := geometry.MeshData{}
	for _, v := range raw {
		n := v.Normalize()
		data.Positions = append(data.Positions, n.Multiply(radius))
		data.Normals = append(data.Normals, n)
	}
	for i := 0; i < len(faces); i += 3 {
		data.Polygons = append(data.Polygons, geometry.Polygon{
			{Position: faces[i], Normal: faces[i]},
			{Position: faces[i+1], Normal: faces[i+1]},
			{Position: faces[i+2], Normal: faces[i+2]},
		})
	}
	return data
}

// oklchToRGB converts an OKLCH color to linear RGB, clamped to [0,1]
func oklchToRGB(l, c, h float64) core.Vec3 {
	hRad := h * math.Pi / 180.0

	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// OKLab to LMS
	l_ := l + 0.3963377774*a + 0.2158037573*b
	m_ := l - 0.1055613458*a - 0.0638541728*b
	s_ := l - 0.0894841775*a - 1.2914855480*b

	l_ = l_ * l_ * l_
	m_ = m_ * m_ * m_
	s_ = s_ * s_ * s_

	r := +4.0767416621*l_ - 3.3077115913*m_ + 0.2309699292*s_
	g := -1.2684380046*l_ + 2.6097574011*m_ - 0.3413193965*s_
	blue := -0.0041960863*l_ - 0.7034186147*m_ + 1.7076147010*s_

	return core.NewVec3(r, g, blue).Clamp(0, 1)
}

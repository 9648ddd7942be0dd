package core

// Axis selects one of the three coordinate axes
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// String returns the lowercase axis name
func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	}
	return "unknown"
}

// minBoxThickness is the smallest extent any AABB axis is allowed to have
const minBoxThickness = 0.0001

// AABB represents an axis-aligned bounding box as one interval per axis
type AABB struct {
	X, Y, Z Interval
}

// EmptyAABB bounds nothing
var EmptyAABB = AABB{X: EmptyInterval, Y: EmptyInterval, Z: EmptyInterval}

// NewAABB creates an AABB from per-axis intervals, padding thin axes
func NewAABB(x, y, z Interval) AABB {
	box := AABB{X: x, Y: y, Z: z}
	box.padToMinimums()
	return box
}

// NewAABBFromPoints creates the box spanned by two opposite corners, in any order
func NewAABBFromPoints(a, b Vec3) AABB {
	return NewAABB(
		NewInterval(min(a.X, b.X), max(a.X, b.X)),
		NewInterval(min(a.Y, b.Y), max(a.Y, b.Y)),
		NewInterval(min(a.Z, b.Z), max(a.Z, b.Z)),
	)
}

// NewAABBBounding creates the tightest padded box containing every point
func NewAABBBounding(points ...Vec3) AABB {
	box := EmptyAABB
	for _, p := range points {
		box.X = CombineIntervals(box.X, NewInterval(p.X, p.X))
		box.Y = CombineIntervals(box.Y, NewInterval(p.Y, p.Y))
		box.Z = CombineIntervals(box.Z, NewInterval(p.Z, p.Z))
	}
	if len(points) > 0 {
		box.padToMinimums()
	}
	return box
}

// NewAABBFromBoxes returns the tightest box enclosing both a and b
func NewAABBFromBoxes(a, b AABB) AABB {
	return AABB{
		X: CombineIntervals(a.X, b.X),
		Y: CombineIntervals(a.Y, b.Y),
		Z: CombineIntervals(a.Z, b.Z),
	}
}

// Union returns an AABB that bounds both this AABB and another
func (b AABB) Union(other AABB) AABB {
	return NewAABBFromBoxes(b, other)
}

func (b *AABB) padToMinimums() {
	if b.X.Size() < minBoxThickness {
		b.X = b.X.Expand(minBoxThickness)
	}
	if b.Y.Size() < minBoxThickness {
		b.Y = b.Y.Expand(minBoxThickness)
	}
	if b.Z.Size() < minBoxThickness {
		b.Z = b.Z.Expand(minBoxThickness)
	}
}

// AxisInterval returns the interval spanned along one axis
func (b AABB) AxisInterval(axis Axis) Interval {
	switch axis {
	case AxisX:
		return b.X
	case AxisY:
		return b.Y
	default:
		return b.Z
	}
}

// Hit tests the ray against the box using the slab method. Division by a zero
// direction component yields infinities (or NaN when the origin sits on the
// slab), and the comparisons below are ordered so both fall out naturally.
func (b AABB) Hit(ray Ray, rayT Interval) bool {
	tMin, tMax := rayT.Min, rayT.Max

	for axis := AxisX; axis <= AxisZ; axis++ {
		slab := b.AxisInterval(axis)
		origin := ray.Origin.Axis(axis)
		invD := 1.0 / ray.Direction.Axis(axis)

		t0 := (slab.Min - origin) * invD
		t1 := (slab.Max - origin) * invD
		if t0 > t1 {
			t0, t1 = t1, t0
		}

		if t0 > tMin {
			tMin = t0
		}
		if t1 < tMax {
			tMax = t1
		}
		if tMax < tMin {
			return false
		}
	}
	return true
}

// LongestAxis returns the axis with the largest extent; ties go to x, then y
func (b AABB) LongestAxis() Axis {
	x, y, z := b.X.Size(), b.Y.Size(), b.Z.Size()
	if x >= y && x >= z {
		return AxisX
	}
	if y >= z {
		return AxisY
	}
	return AxisZ
}

// Translate returns the box shifted by offset
func (b AABB) Translate(offset Vec3) AABB {
	return AABB{
		X: b.X.Offset(offset.X),
		Y: b.Y.Offset(offset.Y),
		Z: b.Z.Offset(offset.Z),
	}
}

// Vertices returns the eight corners of the box
func (b AABB) Vertices() [8]Vec3 {
	var corners [8]Vec3
	i := 0
	for _, x := range [2]float64{b.X.Min, b.X.Max} {
		for _, y := range [2]float64{b.Y.Min, b.Y.Max} {
			for _, z := range [2]float64{b.Z.Min, b.Z.Max} {
				corners[i] = NewVec3(x, y, z)
				i++
			}
		}
	}
	return corners
}

// Contains reports whether the point lies inside the closed box
func (b AABB) Contains(p Vec3) bool {
	return b.X.Contains(p.X) && b.Y.Contains(p.Y) && b.Z.Contains(p.Z)
}

// ContainsBox reports whether other lies entirely inside b
func (b AABB) ContainsBox(other AABB) bool {
	return b.X.Min <= other.X.Min && other.X.Max <= b.X.Max &&
		b.Y.Min <= other.Y.Min && other.Y.Max <= b.Y.Max &&
		b.Z.Min <= other.Z.Min && other.Z.Max <= b.Z.Max
}

// Center returns the center point of the box
func (b AABB) Center() Vec3 {
	return NewVec3(
		(b.X.Min+b.X.Max)*0.5,
		(b.Y.Min+b.Y.Max)*0.5,
		(b.Z.Min+b.Z.Max)*0.5,
	)
}

// IsEmpty reports whether any axis is inverted
func (b AABB) IsEmpty() bool {
	return b.X.Min > b.X.Max || b.Y.Min > b.Y.Max || b.Z.Min > b.Z.Max
}

package geometry

import (
	"cmp"
	"slices"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/material"
)

// BVHNode is an interior node of a Bounding Volume Hierarchy. Leaves are the
// geometry nodes themselves, so there is no separate leaf type.
type BVHNode struct {
	Left  Geometry
	Right Geometry
	bbox  core.AABB
}

// NewBVH builds a median-split hierarchy over nodes. An empty list gives
// Empty and a single node is returned as is. The input slice is not modified.
func NewBVH(nodes []Geometry) Geometry {
	switch len(nodes) {
	case 0:
		return NewEmpty()
	case 1:
		return nodes[0]
	}

	// Make a copy so concurrent builders over the same list don't race
	working := make([]Geometry, len(nodes))
	copy(working, nodes)

	return buildBVH(working)
}

func buildBVH(nodes []Geometry) Geometry {
	if len(nodes) == 1 {
		return nodes[0]
	}

	bbox := core.EmptyAABB
	for _, node := range nodes {
		bbox = bbox.Union(node.BoundingBox())
	}

	axis := bbox.LongestAxis()
	sortByAxis(nodes, axis)

	mid := len(nodes) / 2
	return &BVHNode{
		Left:  buildBVH(nodes[:mid]),
		Right: buildBVH(nodes[mid:]),
		bbox:  bbox,
	}
}

// sortByAxis orders nodes by their box interval on axis, min first then max.
// The sort is stable so equal boxes keep their input order.
func sortByAxis(nodes []Geometry, axis core.Axis) {
	slices.SortStableFunc(nodes, func(a, b Geometry) int {
		ia := a.BoundingBox().AxisInterval(axis)
		ib := b.BoundingBox().AxisInterval(axis)
		if c := cmp.Compare(ia.Min, ib.Min); c != 0 {
			return c
		}
		return cmp.Compare(ia.Max, ib.Max)
	})
}

// Hit finds the nearest hit among both children. The right child is only
// searched up to the left child's hit distance.
func (n *BVHNode) Hit(ray core.Ray, rayT core.Interval, rec *material.HitRecord, sampler core.Sampler) bool {
	if !n.bbox.Hit(ray, rayT) {
		return false
	}

	hitLeft := n.Left.Hit(ray, rayT, rec, sampler)

	rightT := rayT
	if hitLeft {
		rightT.Max = rec.T
	}
	hitRight := n.Right.Hit(ray, rightT, rec, sampler)

	return hitLeft || hitRight
}

// BoundingBox returns the union of both children's boxes
func (n *BVHNode) BoundingBox() core.AABB {
	return n.bbox
}

func (*BVHNode) isGeometry() {}

// BVHStats describes the shape of a hierarchy
type BVHStats struct {
	InteriorNodes int
	Leaves        int
	MaxDepth      int
	AvgLeafDepth  float64
}

// Stats walks the hierarchy rooted at n. Leaves that are themselves
// hierarchies (a cube or mesh inside a scene) count as single leaves.
func (n *BVHNode) Stats() BVHStats {
	return StatsOf(n)
}

// StatsOf describes any world root; a lone object is a single leaf
func StatsOf(root Geometry) BVHStats {
	var stats BVHStats
	var depthSum int
	collectStats(root, 0, &stats, &depthSum)
	if stats.Leaves > 0 {
		stats.AvgLeafDepth = float64(depthSum) / float64(stats.Leaves)
	}
	return stats
}

func collectStats(node Geometry, depth int, stats *BVHStats, depthSum *int) {
	if depth > stats.MaxDepth {
		stats.MaxDepth = depth
	}

	if _, ok := node.(*Empty); ok {
		return
	}
	interior, ok := node.(*BVHNode)
	if !ok {
		stats.Leaves++
		*depthSum += depth
		return
	}

	stats.InteriorNodes++
	collectStats(interior.Left, depth+1, stats, depthSum)
	collectStats(interior.Right, depth+1, stats, depthSum)
}

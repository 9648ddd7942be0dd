package material

import (
	"math"

	"github.com/df07/go-raytracer/pkg/core"
)

// Texture provides spatially-varying colors for materials. The set is
// closed: SolidColor, Checkered, ImageTexture and NoiseTexture.
type Texture interface {
	// Value returns the color at surface coordinates (u, v) and point p
	Value(u, v float64, point core.Vec3) core.Vec3

	isTexture()
}

// SolidColor provides uniform color
type SolidColor struct {
	Color core.Vec3
}

// NewSolidColor creates a new solid color source
func NewSolidColor(color core.Vec3) *SolidColor {
	return &SolidColor{Color: color}
}

// Value returns the solid color regardless of UV or position
func (s *SolidColor) Value(u, v float64, point core.Vec3) core.Vec3 {
	return s.Color
}

func (*SolidColor) isTexture() {}

// Checkered is a 3D checker pattern alternating between two textures
type Checkered struct {
	invScale float64
	Even     Texture
	Odd      Texture
}

// NewCheckered creates a checker pattern with cells of the given size
func NewCheckered(scale float64, even, odd Texture) *Checkered {
	return &Checkered{invScale: 1.0 / scale, Even: even, Odd: odd}
}

// NewCheckeredColors creates a checker pattern between two solid colors
func NewCheckeredColors(scale float64, even, odd core.Vec3) *Checkered {
	return NewCheckered(scale, NewSolidColor(even), NewSolidColor(odd))
}

// Value picks the even or odd texture by lattice cell parity
func (c *Checkered) Value(u, v float64, point core.Vec3) core.Vec3 {
	x := int(math.Floor(c.invScale * point.X))
	y := int(math.Floor(c.invScale * point.Y))
	z := int(math.Floor(c.invScale * point.Z))

	// Negative odd sums give -1, which still selects odd
	if (x+y+z)%2 == 0 {
		return c.Even.Value(u, v, point)
	}
	return c.Odd.Value(u, v, point)
}

func (*Checkered) isTexture() {}

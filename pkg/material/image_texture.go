package material

import (
	"github.com/df07/go-raytracer/pkg/core"
)

// debugCyan is returned when a texture has no pixel data
var debugCyan = core.NewVec3(0, 1, 1)

// ImageTexture provides color from a 2D image
type ImageTexture struct {
	Width  int
	Height int
	Pixels []core.Vec3 // Row-major: Pixels[y*Width + x], channels in [0,1]

	// GammaEncoded pixels are squared on lookup to approximate linear color
	GammaEncoded bool
}

// NewImageTexture creates a new image texture
func NewImageTexture(width, height int, pixels []core.Vec3, gammaEncoded bool) *ImageTexture {
	return &ImageTexture{
		Width:        width,
		Height:       height,
		Pixels:       pixels,
		GammaEncoded: gammaEncoded,
	}
}

// Value samples the texture at given UV coordinates using nearest-neighbor filtering.
// Row 0 of the image corresponds to v = 0.
func (t *ImageTexture) Value(u, v float64, point core.Vec3) core.Vec3 {
	if t.Width <= 0 || t.Height <= 0 || len(t.Pixels) < t.Width*t.Height {
		return debugCyan
	}

	unit := core.NewInterval(0, 1)
	u = unit.Clamp(u)
	v = unit.Clamp(v)

	x := min(int(u*float64(t.Width)), t.Width-1)
	y := min(int(v*float64(t.Height)), t.Height-1)

	pixel := t.Pixels[y*t.Width+x]
	if t.GammaEncoded {
		return pixel.Square()
	}
	return pixel
}

func (*ImageTexture) isTexture() {}

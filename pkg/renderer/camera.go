package renderer

import (
	"image/color"
	"math"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/geometry"
	"github.com/df07/go-raytracer/pkg/integrator"
)

// CameraConfig contains all parameters needed to render a scene
type CameraConfig struct {
	Width           int       // Image width in pixels
	Height          int       // Image height in pixels
	SamplesPerPixel int       // Rays per pixel, rounded down to a perfect square
	MaxBounces      int       // Maximum ray bounce depth
	Workers         int       // Parallel workers, 0 = physical cores
	VFov            float64   // Vertical field of view in degrees
	LookFrom        core.Vec3 // Camera position
	LookAt          core.Vec3 // Point the camera is aimed at
	Up              core.Vec3 // Up direction
	DefocusAngle    float64   // Aperture cone angle in degrees, 0 = pinhole
	FocusDist       float64   // Distance to the plane of perfect focus
	Background      core.Vec3 // Radiance returned by rays that escape
	Seed            uint64    // Base seed for per-pixel generators
}

// Camera is the derived, immutable view of a CameraConfig
type Camera struct {
	config CameraConfig

	center       core.Vec3
	pixel00      core.Vec3 // Center of the top-left pixel
	pixelDeltaU  core.Vec3 // Offset to the pixel to the right
	pixelDeltaV  core.Vec3 // Offset to the pixel below
	defocusDiskU core.Vec3
	defocusDiskV core.Vec3

	sqrtSpp        int
	recipSqrtSpp   float64
	pixelScale     float64
	pathIntegrator integrator.Integrator
}

// NewCamera derives the camera basis, viewport and defocus disk from config
func NewCamera(config CameraConfig) *Camera {
	if config.Height < 1 {
		config.Height = 1
	}
	if config.Width < 1 {
		config.Width = 1
	}

	theta := config.VFov * math.Pi / 180
	h := math.Tan(theta / 2)
	viewportHeight := 2 * h * config.FocusDist
	viewportWidth := viewportHeight * float64(config.Width) / float64(config.Height)

	// Orthonormal basis: w points backwards, u right, v up
	w := config.LookFrom.Subtract(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	viewportU := u.Multiply(viewportWidth)
	viewportV := v.Negate().Multiply(viewportHeight)

	pixelDeltaU := viewportU.Multiply(1 / float64(config.Width))
	pixelDeltaV := viewportV.Multiply(1 / float64(config.Height))

	upperLeft := config.LookFrom.
		Subtract(w.Multiply(config.FocusDist)).
		Subtract(viewportU.Multiply(0.5)).
		Subtract(viewportV.Multiply(0.5))
	pixel00 := upperLeft.Add(pixelDeltaU.Add(pixelDeltaV).Multiply(0.5))

	defocusRadius := config.FocusDist * math.Tan(config.DefocusAngle/2*math.Pi/180)

	sqrtSpp := int(math.Sqrt(float64(config.SamplesPerPixel)))
	if sqrtSpp < 1 {
		sqrtSpp = 1
	}

	return &Camera{
		config:         config,
		center:         config.LookFrom,
		pixel00:        pixel00,
		pixelDeltaU:    pixelDeltaU,
		pixelDeltaV:    pixelDeltaV,
		defocusDiskU:   u.Multiply(defocusRadius),
		defocusDiskV:   v.Multiply(defocusRadius),
		sqrtSpp:        sqrtSpp,
		recipSqrtSpp:   1 / float64(sqrtSpp),
		pixelScale:     1 / float64(sqrtSpp*sqrtSpp),
		pathIntegrator: integrator.NewPathTracingIntegrator(config.Background),
	}
}

// Config returns the configuration the camera was built from
func (c *Camera) Config() CameraConfig {
	return c.config
}

// SamplesPerPixel returns the effective sample count after stratification
func (c *Camera) SamplesPerPixel() int {
	return c.sqrtSpp * c.sqrtSpp
}

// GetRay returns a ray through pixel (x, y) jittered within stratum (si, sj)
func (c *Camera) GetRay(x, y, si, sj int, sampler core.Sampler) core.Ray {
	offsetX := (float64(si)+sampler.Get1D())*c.recipSqrtSpp - 0.5
	offsetY := (float64(sj)+sampler.Get1D())*c.recipSqrtSpp - 0.5

	pixelSample := c.pixel00.
		Add(c.pixelDeltaU.Multiply(float64(x) + offsetX)).
		Add(c.pixelDeltaV.Multiply(float64(y) + offsetY))

	origin := c.center
	if c.config.DefocusAngle > 0 {
		p := core.SamplePointInUnitDisk(sampler.Get2D())
		origin = c.center.Add(c.defocusDiskU.Multiply(p.X)).Add(c.defocusDiskV.Multiply(p.Y))
	}

	return core.NewRayAtTime(origin, pixelSample.Subtract(origin), sampler.Get1D())
}

// PixelRadiance returns the averaged linear radiance of pixel (x, y)
func (c *Camera) PixelRadiance(world geometry.Geometry, x, y int, sampler core.Sampler) core.Vec3 {
	var sum core.Vec3
	for sj := 0; sj < c.sqrtSpp; sj++ {
		for si := 0; si < c.sqrtSpp; si++ {
			ray := c.GetRay(x, y, si, sj, sampler)
			sum = sum.Add(c.pathIntegrator.RayColor(ray, c.config.MaxBounces, world, sampler))
		}
	}
	return sum.Multiply(c.pixelScale)
}

// PixelColor renders pixel (x, y) and converts it to 8-bit sRGB-ish output
func (c *Camera) PixelColor(world geometry.Geometry, x, y int, sampler core.Sampler) color.RGBA {
	return ToRGBA(c.PixelRadiance(world, x, y, sampler))
}

// ToRGBA applies square-root gamma and quantizes to 8 bits with alpha 255
func ToRGBA(radiance core.Vec3) color.RGBA {
	return color.RGBA{
		R: toByte(radiance.X),
		G: toByte(radiance.Y),
		B: toByte(radiance.Z),
		A: 255,
	}
}

var intensity = core.NewInterval(0, 0.999)

func toByte(linear float64) uint8 {
	gamma := 0.0
	if linear > 0 {
		gamma = math.Sqrt(linear)
	}
	return uint8(256 * intensity.Clamp(gamma))
}

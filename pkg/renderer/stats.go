package renderer

import (
	"image"
	"time"

	"github.com/df07/go-raytracer/pkg/core"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	Width           int           // Image width in pixels
	Height          int           // Image height in pixels
	TotalPixels     int           // Pixels in the image
	CompletedPixels int           // Pixels actually written, less than TotalPixels when cancelled
	SamplesPerPixel int           // Effective samples per pixel after stratification
	TotalSamples    int           // Camera rays traced
	Workers         int           // Goroutines used
	Duration        time.Duration // Wall-clock render time

	AverageLuminance float64 // Mean luminance of the written image in [0, 1]
}

// SamplesPerSecond returns the camera ray throughput
func (s RenderStats) SamplesPerSecond() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.TotalSamples) / s.Duration.Seconds()
}

// Complete reports whether every pixel was written
func (s RenderStats) Complete() bool {
	return s.CompletedPixels == s.TotalPixels
}

// CalculateAverageLuminance returns the mean luminance of an 8-bit image in [0, 1]
func CalculateAverageLuminance(img *image.RGBA) float64 {
	bounds := img.Bounds()
	pixels := bounds.Dx() * bounds.Dy()
	if pixels == 0 {
		return 0
	}

	total := 0.0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := img.RGBAAt(x, y)
			rgb := core.NewVec3(float64(c.R), float64(c.G), float64(c.B)).Multiply(1.0 / 255)
			total += rgb.Luminance()
		}
	}
	return total / float64(pixels)
}

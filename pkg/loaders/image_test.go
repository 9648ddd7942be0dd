package loaders

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"

	"github.com/df07/go-raytracer/pkg/core"
)

func writeImage(t *testing.T, path string, img image.Image, encode func(io.Writer, image.Image) error) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	defer f.Close()
	if err := encode(f, img); err != nil {
		t.Fatalf("Failed to encode image: %v", err)
	}
}

func quadrants() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	img.Set(1, 0, color.RGBA{R: 255, A: 255})
	img.Set(0, 1, color.RGBA{G: 255, A: 255})
	img.Set(1, 1, color.RGBA{B: 255, A: 255})
	return img
}

func checkColor(t *testing.T, name string, got, expected core.Vec3) {
	t.Helper()
	const tolerance = 0.01
	if math.Abs(got.X-expected.X) > tolerance ||
		math.Abs(got.Y-expected.Y) > tolerance ||
		math.Abs(got.Z-expected.Z) > tolerance {
		t.Errorf("%s: expected %v, got %v", name, expected, got)
	}
}

func TestLoadImage(t *testing.T) {
	dir := t.TempDir()
	formats := []struct {
		name   string
		encode func(io.Writer, image.Image) error
	}{
		{"test.png", png.Encode},
		{"test.bmp", bmp.Encode},
	}

	for _, format := range formats {
		t.Run(format.name, func(t *testing.T) {
			path := filepath.Join(dir, format.name)
			writeImage(t, path, quadrants(), format.encode)

			imageData, err := loadImage(path, 0)
			if err != nil {
				t.Fatalf("loadImage failed: %v", err)
			}
			if imageData.Width != 2 || imageData.Height != 2 || len(imageData.Pixels) != 4 {
				t.Fatalf("Expected 2x2 image, got %dx%d with %d pixels",
					imageData.Width, imageData.Height, len(imageData.Pixels))
			}

			// Row-major, top row first
			checkColor(t, "top-left", imageData.Pixels[0], core.NewVec3(1, 1, 1))
			checkColor(t, "top-right", imageData.Pixels[1], core.NewVec3(1, 0, 0))
			checkColor(t, "bottom-left", imageData.Pixels[2], core.NewVec3(0, 1, 0))
			checkColor(t, "bottom-right", imageData.Pixels[3], core.NewVec3(0, 0, 1))
		})
	}
}

func TestLoadImageNotFound(t *testing.T) {
	if _, err := loadImage("nonexistent.png", 0); err == nil {
		t.Error("Expected error for non-existent file, got nil")
	}
}

func TestLoadImage_NotAnImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.png")
	if err := os.WriteFile(path, []byte("plain text"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadImage(path, 0); err == nil {
		t.Error("Expected decode error")
	}
}

func TestLoadImageTexture_MaxSize(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.RGBA{R: 255, G: 255, A: 255})
		}
	}
	path := filepath.Join(t.TempDir(), "wide.png")
	writeImage(t, path, img, png.Encode)

	texture, err := LoadImageTexture(path, LoadImageOptions{MaxSize: 4})
	if err != nil {
		t.Fatalf("LoadImageTexture failed: %v", err)
	}
	if texture.Width != 4 || texture.Height != 2 {
		t.Errorf("Expected 4x2 after downscaling, got %dx%d", texture.Width, texture.Height)
	}
	checkColor(t, "center", texture.Value(0.5, 0.5, core.Vec3{}), core.NewVec3(1, 1, 0))

	texture, err = LoadImageTexture(path, LoadImageOptions{MaxSize: 16})
	if err != nil {
		t.Fatalf("LoadImageTexture failed: %v", err)
	}
	if texture.Width != 8 || texture.Height != 4 {
		t.Errorf("Small images keep their size, got %dx%d", texture.Width, texture.Height)
	}
}

func TestLoadImageTexture_Gamma(t *testing.T) {
	dir := t.TempDir()

	gray8 := image.NewGray(image.Rect(0, 0, 1, 1))
	gray8.SetGray(0, 0, color.Gray{Y: 128})
	path8 := filepath.Join(dir, "gray8.png")
	writeImage(t, path8, gray8, png.Encode)

	gray16 := image.NewGray16(image.Rect(0, 0, 1, 1))
	gray16.SetGray16(0, 0, color.Gray16{Y: 0x8000})
	path16 := filepath.Join(dir, "gray16.png")
	writeImage(t, path16, gray16, png.Encode)

	on, off := true, false
	v8 := 128.0 / 255
	v16 := float64(0x8000) / 65535

	tests := []struct {
		name     string
		path     string
		srgb     *bool
		expected float64
	}{
		{"8-bit decodes by default", path8, nil, v8 * v8},
		{"8-bit opt out", path8, &off, v8},
		{"16-bit stays linear", path16, nil, v16},
		{"16-bit forced", path16, &on, v16 * v16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			texture, err := LoadImageTexture(tt.path, LoadImageOptions{SRGB: tt.srgb})
			if err != nil {
				t.Fatalf("LoadImageTexture failed: %v", err)
			}
			got := texture.Value(0.5, 0.5, core.Vec3{})
			if math.Abs(got.X-tt.expected) > 1e-6 {
				t.Errorf("Expected %v, got %v", tt.expected, got.X)
			}
		})
	}
}

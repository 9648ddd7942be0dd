package loaders

import (
	"fmt"
	"image"
	_ "image/gif"  // GIF decoder
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"io"
	"os"

	"github.com/nfnt/resize"
	_ "golang.org/x/image/bmp"  // BMP decoder
	_ "golang.org/x/image/tiff" // TIFF decoder
	_ "golang.org/x/image/webp" // WebP decoder

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/material"
)

// ImageData contains loaded image data as Vec3 color array
type ImageData struct {
	Width        int
	Height       int
	Pixels       []core.Vec3 // Row-major, top row first
	GammaEncoded bool        // 8-bit source, values are sRGB encoded
}

// LoadImageOptions controls how an image file becomes a texture
type LoadImageOptions struct {
	MaxSize int   // Larger images are downscaled to fit; 0 keeps the original size
	SRGB    *bool // Forces gamma decoding on or off; nil follows the source bit depth
}

// LoadImageTexture loads a PNG, JPEG, GIF, BMP, TIFF or WebP file as a texture.
// 8-bit sources are gamma decoded unless opts.SRGB says otherwise.
func LoadImageTexture(filename string, opts LoadImageOptions) (*material.ImageTexture, error) {
	data, err := loadImage(filename, opts.MaxSize)
	if err != nil {
		return nil, err
	}
	gammaEncoded := data.GammaEncoded
	if opts.SRGB != nil {
		gammaEncoded = *opts.SRGB
	}
	return material.NewImageTexture(data.Width, data.Height, data.Pixels, gammaEncoded), nil
}

func loadImage(filename string, maxSize int) (*ImageData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	data, err := DecodeImage(file, maxSize)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return data, nil
}

// DecodeImage decodes any registered image format, downscaling it to fit
// within maxSize pixels on its longer side when maxSize is positive
func DecodeImage(r io.Reader, maxSize int) (*ImageData, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	gammaEncoded := !sixteenBit(img)
	bounds := img.Bounds()
	if maxSize > 0 && (bounds.Dx() > maxSize || bounds.Dy() > maxSize) {
		img = resize.Thumbnail(uint(maxSize), uint(maxSize), img, resize.Bilinear)
		bounds = img.Bounds()
	}

	width := bounds.Dx()
	height := bounds.Dy()
	pixels := make([]core.Vec3, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			// RGBA returns uint32 in [0, 65535], convert to [0, 1]
			pixels[y*width+x] = core.NewVec3(
				float64(r)/65535.0,
				float64(g)/65535.0,
				float64(b)/65535.0,
			)
		}
	}

	return &ImageData{
		Width:        width,
		Height:       height,
		Pixels:       pixels,
		GammaEncoded: gammaEncoded,
	}, nil
}

// sixteenBit reports whether img was decoded with 16 bits per channel,
// which PNG and TIFF use for linear data
func sixteenBit(img image.Image) bool {
	switch img.(type) {
	case *image.RGBA64, *image.NRGBA64, *image.Gray16:
		return true
	default:
		return false
	}
}

package renderer

import (
	"context"
	"image"
	"time"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/geometry"
)

// Renderer turns a world and camera configuration into an image
type Renderer struct {
	camera      *Camera
	world       geometry.Geometry
	logger      core.Logger
	interactive bool
}

// NewRenderer creates a renderer. The world is shared read-only by all workers.
func NewRenderer(world geometry.Geometry, config CameraConfig, logger core.Logger) *Renderer {
	if logger == nil {
		logger = NewNopLogger()
	}
	return &Renderer{
		camera:      NewCamera(config),
		world:       world,
		logger:      logger,
		interactive: IsTerminal(),
	}
}

// Camera returns the renderer's camera
func (r *Renderer) Camera() *Camera {
	return r.camera
}

// Render evaluates every pixel in parallel. A cancelled render returns the
// context error together with the partially written image.
func (r *Renderer) Render(ctx context.Context) (*image.RGBA, RenderStats, error) {
	config := r.camera.Config()
	width, height := config.Width, config.Height
	img := image.NewRGBA(image.Rect(0, 0, width, height))

	pool := NewWorkerPool(r.camera, r.world, config.Seed, config.Workers)
	stats := RenderStats{
		Width:           width,
		Height:          height,
		TotalPixels:     width * height,
		SamplesPerPixel: r.camera.SamplesPerPixel(),
		Workers:         pool.NumWorkers(),
	}

	r.logger.Printf("Rendering %dx%d at %d samples/pixel (using %d workers)...\n",
		width, height, stats.SamplesPerPixel, stats.Workers)

	start := time.Now()
	pool.Start(ctx)

	go func() {
		defer pool.Stop()
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				task := PixelTask{X: x, Y: y, Index: y*width + x}
				if err := pool.SubmitTask(ctx, task); err != nil {
					return
				}
			}
		}
	}()

	progress := NewProgressReporter(r.logger, stats.TotalPixels, r.interactive)
	for result := range pool.Results() {
		img.SetRGBA(result.X, result.Y, result.Color)
		stats.CompletedPixels++
		progress.Update(stats.CompletedPixels)
	}

	err := pool.Wait()
	stats.Duration = time.Since(start)
	stats.TotalSamples = stats.CompletedPixels * stats.SamplesPerPixel
	stats.AverageLuminance = CalculateAverageLuminance(img)

	if err == nil && !stats.Complete() {
		err = ctx.Err()
	}
	if err != nil {
		r.logger.Printf("Rendering cancelled after %d/%d pixels\n", stats.CompletedPixels, stats.TotalPixels)
		return img, stats, err
	}

	r.logger.Printf("Render completed in %v (%.0f samples/sec, average luminance %.3f)\n",
		stats.Duration.Round(time.Millisecond), stats.SamplesPerSecond(), stats.AverageLuminance)
	return img, stats, nil
}

// Render is a convenience wrapper that renders world with config and no logging
func Render(ctx context.Context, world geometry.Geometry, config CameraConfig) (*image.RGBA, error) {
	img, _, err := NewRenderer(world, config, nil).Render(ctx)
	return img, err
}

package renderer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/color"
	"math"
	"strings"
	"sync"
	"testing"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/geometry"
	"github.com/df07/go-raytracer/pkg/material"
)

// recordingLogger captures formatted log lines
type recordingLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *recordingLogger) Printf(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}

// emissiveBackdrop returns a light quad that fills the whole view of pinholeConfig
func emissiveBackdrop(emit float64) geometry.Geometry {
	light := material.NewLight(core.NewVec3(emit, emit, emit))
	return geometry.NewQuad(core.NewVec3(-10, -10, -1), core.NewVec3(20, 0, 0), core.NewVec3(0, 20, 0), light)
}

func createTestScene() geometry.Geometry {
	ground := material.NewCheckeredColors(0.5, core.NewVec3(0.2, 0.3, 0.1), core.NewVec3(0.9, 0.9, 0.9))
	return geometry.NewBVH([]geometry.Geometry{
		geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, material.NewTexturedLambertian(ground)),
		geometry.NewSphere(core.NewVec3(0, 0, -1.2), 0.5, material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))),
		geometry.NewSphere(core.NewVec3(-1, 0, -1), 0.5, material.NewGlass()),
		geometry.NewSphere(core.NewVec3(1, 0, -1), 0.5, material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.3)),
	})
}

func TestRender_UniformEmitter(t *testing.T) {
	config := pinholeConfig(8, 5)
	config.MaxBounces = 1
	config.Workers = 3

	img, stats, err := NewRenderer(emissiveBackdrop(0.25), config, nil).Render(context.Background())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if img.Bounds().Dx() != 8 || img.Bounds().Dy() != 5 {
		t.Fatalf("Unexpected image size %v", img.Bounds())
	}
	want := color.RGBA{R: 128, G: 128, B: 128, A: 255}
	for y := 0; y < 5; y++ {
		for x := 0; x < 8; x++ {
			if got := img.RGBAAt(x, y); got != want {
				t.Fatalf("Pixel (%d,%d): expected %v, got %v", x, y, want, got)
			}
		}
	}

	if !stats.Complete() || stats.TotalPixels != 40 || stats.TotalSamples != 40 || stats.Workers != 3 {
		t.Errorf("Unexpected stats %+v", stats)
	}
	// 128/255 in every channel; the weights sum to one
	if math.Abs(stats.AverageLuminance-128.0/255) > 1e-9 {
		t.Errorf("Expected average luminance %v, got %v", 128.0/255, stats.AverageLuminance)
	}
}

func TestRender_BackgroundOnly(t *testing.T) {
	config := pinholeConfig(4, 4)
	config.Background = core.NewVec3(1, 0, 0.25)

	img, err := Render(context.Background(), geometry.NewEmpty(), config)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	want := color.RGBA{R: 255, G: 0, B: 128, A: 255}
	if got := img.RGBAAt(2, 3); got != want {
		t.Errorf("Expected background %v, got %v", want, got)
	}
}

func TestRender_DeterministicAcrossWorkerCounts(t *testing.T) {
	world := createTestScene()
	config := pinholeConfig(12, 8)
	config.SamplesPerPixel = 4
	config.Seed = 99
	config.Background = core.NewVec3(0.7, 0.8, 1.0)

	var reference []byte
	for _, workers := range []int{1, 2, 7} {
		config.Workers = workers
		img, err := Render(context.Background(), world, config)
		if err != nil {
			t.Fatalf("%d workers: render failed: %v", workers, err)
		}
		if reference == nil {
			reference = img.Pix
			continue
		}
		if !bytes.Equal(reference, img.Pix) {
			t.Errorf("%d workers produced a different image", workers)
		}
	}
}

func TestRender_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	config := pinholeConfig(64, 64)
	config.Workers = 4
	logger := &recordingLogger{}

	img, stats, err := NewRenderer(createTestScene(), config, logger).Render(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled, got %v", err)
	}
	if img == nil || img.Bounds().Dx() != 64 {
		t.Fatal("Cancelled render should still return the image")
	}
	if stats.Complete() {
		t.Error("Cancelled render should not report completion")
	}
}

func TestRender_LogsProgress(t *testing.T) {
	logger := &recordingLogger{}
	r := NewRenderer(emissiveBackdrop(1), pinholeConfig(10, 10), logger)
	r.interactive = false

	if _, _, err := r.Render(context.Background()); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	progressLines := 0
	for _, line := range logger.lines {
		if strings.HasPrefix(line, "Progress:") {
			progressLines++
		}
	}
	if progressLines != 20 {
		t.Errorf("Expected 20 progress lines at 5%% steps, got %d: %q", progressLines, logger.lines)
	}
}

func TestWorkerPool_DeliversEveryTask(t *testing.T) {
	camera := NewCamera(pinholeConfig(3, 3))
	pool := NewWorkerPool(camera, emissiveBackdrop(1), 1, 2)
	ctx := context.Background()
	pool.Start(ctx)

	go func() {
		defer pool.Stop()
		for i := 0; i < 9; i++ {
			if err := pool.SubmitTask(ctx, PixelTask{X: i % 3, Y: i / 3, Index: i}); err != nil {
				return
			}
		}
	}()

	seen := map[[2]int]bool{}
	for result := range pool.Results() {
		seen[[2]int{result.X, result.Y}] = true
		if result.Color != (color.RGBA{R: 255, G: 255, B: 255, A: 255}) {
			t.Errorf("Unexpected color %v", result.Color)
		}
	}
	if err := pool.Wait(); err != nil {
		t.Fatalf("Unexpected pool error: %v", err)
	}
	if len(seen) != 9 {
		t.Errorf("Expected 9 distinct pixels, got %d", len(seen))
	}
}

func TestDefaultWorkerCount(t *testing.T) {
	if DefaultWorkerCount() < 1 {
		t.Error("Expected at least one worker")
	}
}

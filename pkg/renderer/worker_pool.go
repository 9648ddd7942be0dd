package renderer

import (
	"context"
	"image/color"
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
	"golang.org/x/sync/errgroup"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/geometry"
)

// PixelTask represents a single pixel rendering task for the worker pool
type PixelTask struct {
	X, Y  int
	Index int // Row-major pixel index, also the generator stream
}

// PixelResult contains the result from rendering a pixel
type PixelResult struct {
	X, Y  int
	Color color.RGBA
}

// WorkerPool manages parallel pixel rendering
type WorkerPool struct {
	camera     *Camera
	world      geometry.Geometry
	seed       uint64
	numWorkers int

	taskQueue   chan PixelTask
	resultQueue chan PixelResult
	done        chan struct{}
	err         error
}

// DefaultWorkerCount returns the number of physical cores, or logical CPUs
// when the physical count is unavailable
func DefaultWorkerCount() int {
	if n, err := cpu.Counts(false); err == nil && n > 0 {
		return n
	}
	return runtime.NumCPU()
}

// NewWorkerPool creates a worker pool with the specified number of workers
func NewWorkerPool(camera *Camera, world geometry.Geometry, seed uint64, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = DefaultWorkerCount()
	}

	return &WorkerPool{
		camera:      camera,
		world:       world,
		seed:        seed,
		numWorkers:  numWorkers,
		taskQueue:   make(chan PixelTask, numWorkers*4),
		resultQueue: make(chan PixelResult, numWorkers*4),
		done:        make(chan struct{}),
	}
}

// Start launches the workers. The result channel is closed once every
// worker has returned, either because Stop was called or ctx was cancelled.
func (wp *WorkerPool) Start(ctx context.Context) {
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < wp.numWorkers; i++ {
		g.Go(func() error {
			return wp.run(gctx)
		})
	}

	go func() {
		wp.err = g.Wait()
		close(wp.resultQueue)
		close(wp.done)
	}()
}

// SubmitTask queues a pixel, giving up if ctx is cancelled first
func (wp *WorkerPool) SubmitTask(ctx context.Context, task PixelTask) error {
	select {
	case wp.taskQueue <- task:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop signals that no more tasks will be submitted
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue)
}

// Results returns the channel completed pixels are delivered on
func (wp *WorkerPool) Results() <-chan PixelResult {
	return wp.resultQueue
}

// Wait blocks until all workers have exited and returns the first worker error
func (wp *WorkerPool) Wait() error {
	<-wp.done
	return wp.err
}

// NumWorkers returns the number of workers in the pool
func (wp *WorkerPool) NumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (wp *WorkerPool) run(ctx context.Context) error {
	for task := range wp.taskQueue {
		if err := ctx.Err(); err != nil {
			return err
		}

		// Each pixel owns a generator so output is independent of scheduling
		sampler := core.NewSeededSampler(wp.seed, uint64(task.Index))
		result := PixelResult{
			X:     task.X,
			Y:     task.Y,
			Color: wp.camera.PixelColor(wp.world, task.X, task.Y, sampler),
		}

		select {
		case wp.resultQueue <- result:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/fatih/color"
	"github.com/joho/godotenv"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/output"
	"github.com/df07/go-raytracer/pkg/renderer"
	"github.com/df07/go-raytracer/pkg/scene"
)

// options holds the parsed command line
type options struct {
	config  string
	scene   string
	width   int
	samples int
	workers int
	seed    uint64
	output  string
	upload  string
	quiet   bool
	list    bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], color.Output))
}

func parseFlags(args []string, stdout io.Writer) (*options, error) {
	opts := &options{}
	fs := flag.NewFlagSet("raytracer", flag.ContinueOnError)
	fs.SetOutput(stdout)

	fs.StringVar(&opts.config, "config", "", "TOML scene file to render")
	fs.StringVar(&opts.scene, "scene", "default", "Built-in scene to render when -config is not given")
	fs.IntVar(&opts.width, "width", 0, "Override image width (height follows the aspect ratio)")
	fs.IntVar(&opts.samples, "samples", 0, "Override samples per pixel")
	fs.IntVar(&opts.workers, "workers", 0, "Override worker goroutine count")
	fs.Uint64Var(&opts.seed, "seed", 0, "Override the render seed")
	fs.StringVar(&opts.output, "output", "", "Output PNG path (default output/<scene>/render_<timestamp>.png)")
	fs.StringVar(&opts.upload, "upload", "", "Also upload the PNG to S3 under this key (settings from env or .env)")
	fs.BoolVar(&opts.quiet, "quiet", false, "Suppress progress output")
	fs.BoolVar(&opts.list, "list", false, "List built-in scenes and exit")

	fs.Usage = func() {
		fmt.Fprintln(stdout, "Raytracer")
		fmt.Fprintln(stdout, "Usage: raytracer [options]")
		fmt.Fprintln(stdout)
		fmt.Fprintln(stdout, "Options:")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if opts.width < 0 || opts.samples < 0 || opts.workers < 0 {
		return nil, errors.New("-width, -samples and -workers must not be negative")
	}
	return opts, nil
}

// run executes the CLI and returns the process exit code
func run(ctx context.Context, args []string, stdout io.Writer) int {
	opts, err := parseFlags(args, stdout)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		printError(stdout, err)
		return 2
	}

	if opts.list {
		printSceneList(stdout)
		return 0
	}

	sc, err := loadScene(opts)
	if err != nil {
		printError(stdout, err)
		return 1
	}

	var logger core.Logger = renderer.NewWriterLogger(stdout)
	if opts.quiet {
		logger = renderer.NewNopLogger()
	} else {
		printSettings(stdout, sc)
	}

	img, stats, renderErr := sc.NewRenderer(logger).Render(ctx)
	if renderErr != nil && !errors.Is(renderErr, context.Canceled) {
		printError(stdout, renderErr)
		return 1
	}

	path := opts.output
	if path == "" {
		path = output.DefaultPath(sc.Name, time.Now())
	}
	if err := output.SavePNG(path, img); err != nil {
		printError(stdout, err)
		return 1
	}
	if !opts.quiet {
		fmt.Fprintf(stdout, "%s %s (%.0f samples/s, average luminance %.3f)\n",
			color.GreenString("Render saved as"), path, stats.SamplesPerSecond(), stats.AverageLuminance)
	}

	if opts.upload != "" {
		if err := upload(ctx, opts.upload, path); err != nil {
			printError(stdout, err)
			return 1
		}
		if !opts.quiet {
			fmt.Fprintf(stdout, "%s %s\n", color.GreenString("Uploaded to"), opts.upload)
		}
	}

	if renderErr != nil {
		// Partial image saved; report the interruption
		printError(stdout, renderErr)
		return 130
	}
	return 0
}

// loadScene builds the scene from -config or -scene and applies overrides
func loadScene(opts *options) (*scene.Scene, error) {
	var (
		sc  *scene.Scene
		err error
	)
	if opts.config != "" {
		sc, err = scene.LoadConfig(opts.config)
		if err == nil {
			sc.SetWidth(opts.width)
		}
	} else {
		sc, err = scene.Build(opts.scene, opts.width)
	}
	if err != nil {
		return nil, err
	}

	if opts.samples > 0 {
		sc.Camera.SamplesPerPixel = opts.samples
	}
	if opts.workers > 0 {
		sc.Camera.Workers = opts.workers
	}
	if opts.seed != 0 {
		sc.Camera.Seed = opts.seed
	}
	return sc, nil
}

// upload sends the saved PNG to S3. A .env file next to the binary's
// working directory may supply the S3_* settings.
func upload(ctx context.Context, key, path string) error {
	_ = godotenv.Load()

	uploader, err := output.NewS3Uploader(output.S3ConfigFromEnv())
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if filepath.Ext(key) == "" {
		key += ".png"
	}
	_, err = uploader.UploadPNG(ctx, key, data)
	return err
}

// printSettings prints the render settings table
func printSettings(w io.Writer, sc *scene.Scene) {
	label := color.New(color.FgCyan, color.Bold)
	c := sc.Camera
	bvh := sc.BVHStats()

	workers := c.Workers
	if workers <= 0 {
		workers = renderer.DefaultWorkerCount()
	}

	rows := []struct {
		name  string
		value string
	}{
		{"Scene", sc.Name},
		{"Resolution", fmt.Sprintf("%dx%d", c.Width, c.Height)},
		{"Samples", fmt.Sprintf("%d per pixel", c.SamplesPerPixel)},
		{"Max bounces", fmt.Sprintf("%d", c.MaxBounces)},
		{"Workers", fmt.Sprintf("%d", workers)},
		{"Primitives", fmt.Sprintf("%d", sc.GetPrimitiveCount())},
		{"BVH", fmt.Sprintf("%d nodes, depth %d", bvh.InteriorNodes+bvh.Leaves, bvh.MaxDepth)},
		{"Field of view", fmt.Sprintf("%g°", c.VFov)},
		{"Seed", fmt.Sprintf("%d", c.Seed)},
	}
	if _, _, ok := sc.AspectRatio.Ratio(); ok {
		rows = append(rows, struct {
			name  string
			value string
		}{"Aspect ratio", sc.AspectRatio.String()})
	}

	for _, row := range rows {
		label.Fprintf(w, "%-14s", row.name)
		fmt.Fprintln(w, row.value)
	}
	fmt.Fprintln(w)
}

// printSceneList prints built-in scene names with their descriptions
func printSceneList(w io.Writer) {
	fmt.Fprintln(w, "Available scenes:")
	for _, name := range scene.Names() {
		fmt.Fprintf(w, "  %-14s %s\n", color.CyanString(name), scene.Description(name))
	}
}

// printError prints an error header; TOML syntax errors also show the
// offending source lines
func printError(w io.Writer, err error) {
	header := color.New(color.FgRed, color.Bold).Sprint("error")
	fmt.Fprintf(w, "%s: %v\n", header, err)

	var perr toml.ParseError
	if errors.As(err, &perr) {
		fmt.Fprintf(w, "  %s line %d\n", color.BlueString("-->"), perr.Position.Line)
		fmt.Fprintln(w, perr.ErrorWithPosition())
		return
	}

	var cerr *scene.ConfigError
	if errors.As(err, &cerr) {
		fmt.Fprintf(w, "  %s %s\n", color.BlueString("-->"), cerr.Path)
	}
}

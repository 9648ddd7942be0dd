package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/output"
	"github.com/df07/go-raytracer/pkg/renderer"
	"github.com/df07/go-raytracer/pkg/scene"
)

// Request limits
const (
	maxWidth      = 2000
	maxSamples    = 10000
	maxBounceSize = 1000
)

// Config configures the web server
type Config struct {
	Port     int
	SceneDir string      // Directory of TOML scene files
	Logger   core.Logger // Server-side log sink; nil writes to stdout

	// Uploader stores synchronous renders that ask for it; nil disables uploads
	Uploader *output.S3Uploader
}

// Server handles web requests for the raytracer
type Server struct {
	port     int
	sceneDir string
	logger   core.Logger
	uploader *output.S3Uploader
	echo     *echo.Echo
}

// NewServer creates a new web server with all routes registered
func NewServer(config Config) *Server {
	if config.Logger == nil {
		config.Logger = renderer.NewDefaultLogger()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		port:     config.Port,
		sceneDir: config.SceneDir,
		logger:   config.Logger,
		uploader: config.Uploader,
		echo:     e,
	}

	e.Use(corsMiddleware)
	e.GET("/api/health", s.handleHealth)
	e.GET("/api/scenes", s.handleScenes)
	e.GET("/api/scene-config", s.handleSceneConfig)
	e.GET("/api/render", s.handleRender)
	e.POST("/api/render", s.handleRenderImage)
	e.GET("/api/inspect", s.handleInspect)

	return s
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start serves until the server is shut down
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Printf("Starting web server on http://localhost%s\n", addr)
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for active ones
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func corsMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Set("Access-Control-Allow-Origin", "*")
		c.Response().Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Response().Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept")

		if c.Request().Method == http.MethodOptions {
			return c.NoContent(http.StatusOK)
		}

		return next(c)
	}
}

// errorJSON writes {"error": message} with the given status
func errorJSON(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]string{"error": message})
}

// HealthResponse reports server status and the host's capacity
type HealthResponse struct {
	Status      string `json:"status"`
	CPUs        int    `json:"cpus,omitempty"`
	MemoryTotal uint64 `json:"memoryTotal,omitempty"`
	Workers     int    `json:"workers"`
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(c echo.Context) error {
	response := HealthResponse{
		Status:  "ok",
		Workers: renderer.DefaultWorkerCount(),
	}
	if cpus, err := cpu.Counts(true); err == nil {
		response.CPUs = cpus
	}
	if memInfo, err := mem.VirtualMemory(); err == nil {
		response.MemoryTotal = memInfo.Total
	}
	return c.JSON(http.StatusOK, response)
}

// handleScenes lists built-in scenes and scene files
func (s *Server) handleScenes(c echo.Context) error {
	response, err := scene.ListAllScenes(s.sceneDir)
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, response)
}

// RenderRequest selects a scene and overrides its render settings.
// Zero values keep the scene's own settings.
type RenderRequest struct {
	Scene      string `json:"scene"`
	Width      int    `json:"width"`
	Samples    int    `json:"samples"`
	MaxBounces int    `json:"maxBounces"`
	Seed       uint64 `json:"seed"`
	Upload     string `json:"upload,omitempty"` // Object key for POST renders
}

// validate checks request values against the server limits
func (req *RenderRequest) validate() error {
	if req.Scene == "" {
		req.Scene = "default"
	}
	if err := checkRange("width", req.Width, 0, maxWidth); err != nil {
		return err
	}
	if err := checkRange("samples", req.Samples, 0, maxSamples); err != nil {
		return err
	}
	return checkRange("maxBounces", req.MaxBounces, 0, maxBounceSize)
}

func checkRange(key string, value, min, max int) error {
	if value < min || value > max {
		return fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, value)
	}
	return nil
}

// parseRenderRequest reads render settings from URL query parameters
func parseRenderRequest(values url.Values) (*RenderRequest, error) {
	req := &RenderRequest{Scene: values.Get("scene")}

	var err error
	if req.Width, err = parseIntParam(values, "width"); err != nil {
		return nil, err
	}
	if req.Samples, err = parseIntParam(values, "samples"); err != nil {
		return nil, err
	}
	if req.MaxBounces, err = parseIntParam(values, "maxBounces"); err != nil {
		return nil, err
	}
	if value := values.Get("seed"); value != "" {
		if req.Seed, err = strconv.ParseUint(value, 10, 64); err != nil {
			return nil, fmt.Errorf("invalid seed: %s", value)
		}
	}

	if err := req.validate(); err != nil {
		return nil, err
	}
	return req, nil
}

// parseIntParam parses an optional integer parameter, 0 when absent
func parseIntParam(values url.Values, key string) (int, error) {
	value := values.Get(key)
	if value == "" {
		return 0, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %s", key, value)
	}
	return parsed, nil
}

// loadScene builds the requested scene and applies the overrides
func (s *Server) loadScene(req *RenderRequest) (*scene.Scene, error) {
	sc, err := scene.Load(req.Scene, s.sceneDir, req.Width)
	if err != nil {
		return nil, err
	}
	if req.Samples > 0 {
		sc.Camera.SamplesPerPixel = req.Samples
	}
	if req.MaxBounces > 0 {
		sc.Camera.MaxBounces = req.MaxBounces
	}
	if req.Seed != 0 {
		sc.Camera.Seed = req.Seed
	}
	return sc, nil
}

// SceneConfigResponse describes a scene's defaults and the request limits
type SceneConfigResponse struct {
	Scene    string         `json:"scene"`
	Defaults SceneDefaults  `json:"defaults"`
	Limits   map[string]int `json:"limits"`
}

// SceneDefaults are the settings a scene renders with when not overridden
type SceneDefaults struct {
	Width           int    `json:"width"`
	Height          int    `json:"height"`
	AspectRatio     string `json:"aspectRatio,omitempty"`
	SamplesPerPixel int    `json:"samplesPerPixel"`
	MaxBounces      int    `json:"maxBounces"`
	Primitives      int    `json:"primitives"`
	BVHNodes        int    `json:"bvhNodes"`
	BVHDepth        int    `json:"bvhDepth"`
}

// handleSceneConfig returns the default configuration for a scene
func (s *Server) handleSceneConfig(c echo.Context) error {
	id := c.QueryParam("scene")
	if id == "" {
		id = "default"
	}

	sc, err := scene.Load(id, s.sceneDir, 0)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, err.Error())
	}

	bvh := sc.BVHStats()
	defaults := SceneDefaults{
		Width:           sc.Camera.Width,
		Height:          sc.Camera.Height,
		SamplesPerPixel: sc.Camera.SamplesPerPixel,
		MaxBounces:      sc.Camera.MaxBounces,
		Primitives:      sc.GetPrimitiveCount(),
		BVHNodes:        bvh.InteriorNodes + bvh.Leaves,
		BVHDepth:        bvh.MaxDepth,
	}
	if _, _, ok := sc.AspectRatio.Ratio(); ok {
		defaults.AspectRatio = sc.AspectRatio.String()
	}

	return c.JSON(http.StatusOK, SceneConfigResponse{
		Scene:    id,
		Defaults: defaults,
		Limits: map[string]int{
			"width":      maxWidth,
			"samples":    maxSamples,
			"maxBounces": maxBounceSize,
		},
	})
}

// handleRenderImage renders synchronously and responds with the PNG
func (s *Server) handleRenderImage(c echo.Context) error {
	req := &RenderRequest{}
	if err := c.Bind(req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := req.validate(); err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid request: "+err.Error())
	}
	key, err := s.uploadKey(req.Upload)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, err.Error())
	}

	sc, err := s.loadScene(req)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, err.Error())
	}

	start := time.Now()
	img, stats, err := sc.NewRenderer(s.logger).Render(c.Request().Context())
	if err != nil {
		return errorJSON(c, http.StatusServiceUnavailable, "Render error: "+err.Error())
	}

	data, err := encodePNG(img)
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, err.Error())
	}

	header := c.Response().Header()
	if key != "" {
		stored, err := s.uploader.UploadPNG(c.Request().Context(), key, data)
		if err != nil {
			return errorJSON(c, http.StatusBadGateway, err.Error())
		}
		header.Set("X-Upload-Key", stored)
	}
	header.Set("X-Render-Time", time.Since(start).String())
	header.Set("X-Render-Samples", strconv.Itoa(stats.TotalSamples))
	return c.Blob(http.StatusOK, "image/png", data)
}

// uploadKey checks a requested object key, adding .png when it has no extension
func (s *Server) uploadKey(name string) (string, error) {
	if name == "" {
		return "", nil
	}
	if s.uploader == nil {
		return "", errors.New("uploads are not configured")
	}
	if path.IsAbs(name) || strings.Contains(name, "..") {
		return "", fmt.Errorf("invalid upload key: %s", name)
	}
	if path.Ext(name) == "" {
		name += ".png"
	}
	return name, nil
}

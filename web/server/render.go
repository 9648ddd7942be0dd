package server

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/df07/go-raytracer/pkg/output"
	"github.com/df07/go-raytracer/pkg/renderer"
)

// RenderUpdate is the final SSE event of a render
type RenderUpdate struct {
	ImageData string      `json:"imageData"` // Base64 encoded PNG
	Stats     RenderStats `json:"stats"`
	ElapsedMs int64       `json:"elapsedMs"`
}

// RenderStats represents render statistics
type RenderStats struct {
	Width            int     `json:"width"`
	Height           int     `json:"height"`
	TotalPixels      int     `json:"totalPixels"`
	SamplesPerPixel  int     `json:"samplesPerPixel"`
	TotalSamples     int     `json:"totalSamples"`
	Workers          int     `json:"workers"`
	SamplesPerSecond float64 `json:"samplesPerSecond"`
	AverageLuminance float64 `json:"averageLuminance"`
}

type renderOutcome struct {
	img   *image.RGBA
	stats renderer.RenderStats
	err   error
}

// handleRender renders a scene and streams console output, then the image,
// as Server-Sent Events. The render stops when the client disconnects.
func (s *Server) handleRender(c echo.Context) error {
	req, err := parseRenderRequest(c.QueryParams())
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid request: "+err.Error())
	}
	sc, err := s.loadScene(req)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, err.Error())
	}

	w := c.Response()
	setSSEHeaders(w)
	w.WriteHeader(http.StatusOK)

	ctx := c.Request().Context()
	consoleChan := make(chan ConsoleMessage, 100)
	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	logger := NewWebLogger(renderID, consoleChan, s.logger)

	start := time.Now()
	done := make(chan renderOutcome, 1)
	go func() {
		img, stats, err := sc.NewRenderer(logger).Render(ctx)
		done <- renderOutcome{img: img, stats: stats, err: err}
	}()

	for {
		select {
		case msg := <-consoleChan:
			if err := writeConsoleEvent(w, msg); err != nil {
				return nil
			}

		case outcome := <-done:
			// Flush what the renderer logged before finishing
			for len(consoleChan) > 0 {
				if err := writeConsoleEvent(w, <-consoleChan); err != nil {
					return nil
				}
			}
			if outcome.err != nil {
				writeSSEEvent(w, "error", "Render error: "+outcome.err.Error())
				return nil
			}
			if err := writeImageEvent(w, outcome, start); err != nil {
				writeSSEEvent(w, "error", err.Error())
				return nil
			}
			writeSSEEvent(w, "complete", "Rendering completed")
			return nil

		case <-ctx.Done():
			// The render goroutine sees the same context and exits
			return nil
		}
	}
}

// setSSEHeaders sets the required headers for Server-Sent Events
func setSSEHeaders(w *echo.Response) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
}

// writeSSEEvent writes one event and flushes it to the client
func writeSSEEvent(w *echo.Response, event, data string) error {
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data); err != nil {
		return err
	}
	w.Flush()
	return nil
}

func writeConsoleEvent(w *echo.Response, msg ConsoleMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return writeSSEEvent(w, "console", string(data))
}

func writeImageEvent(w *echo.Response, outcome renderOutcome, start time.Time) error {
	imageData, err := imageToBase64PNG(outcome.img)
	if err != nil {
		return fmt.Errorf("failed to encode image: %w", err)
	}

	st := outcome.stats
	data, err := json.Marshal(RenderUpdate{
		ImageData: imageData,
		Stats: RenderStats{
			Width:            st.Width,
			Height:           st.Height,
			TotalPixels:      st.TotalPixels,
			SamplesPerPixel:  st.SamplesPerPixel,
			TotalSamples:     st.TotalSamples,
			Workers:          st.Workers,
			SamplesPerSecond: st.SamplesPerSecond(),
			AverageLuminance: st.AverageLuminance,
		},
		ElapsedMs: time.Since(start).Milliseconds(),
	})
	if err != nil {
		return err
	}
	return writeSSEEvent(w, "image", string(data))
}

// encodePNG is shared by the streaming and synchronous endpoints
func encodePNG(img image.Image) ([]byte, error) {
	return output.EncodePNG(img)
}

// imageToBase64PNG converts an image to base64-encoded PNG
func imageToBase64PNG(img image.Image) (string, error) {
	data, err := encodePNG(img)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// Package server exposes the pipeline to a presentation layer over HTTP.
//
// The server is stateless: every request carries a document, every response
// carries the complete RunResult, and nothing is retained between calls.
// The UI owns the result; run persistence is deliberately absent.
package server

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/veridoc/veridoc/internal/model"
)

// Runner runs one document verification
type Runner interface {
	Run(ctx context.Context, document string, data []byte) (*model.RunResult, error)
}

// Server is the HTTP API for the presentation layer
type Server struct {
	echo    *echo.Echo
	runner  Runner
	metrics *Metrics

	maxUploadBytes int64
}

// New creates a new server around a pipeline runner
func New(runner Runner, maxUploadBytes int64) *Server {
	if maxUploadBytes <= 0 {
		maxUploadBytes = 32 << 20 // 32 MiB
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())

	s := &Server{
		echo:           e,
		runner:         runner,
		metrics:        NewMetrics(),
		maxUploadBytes: maxUploadBytes,
	}

	e.GET("/healthz", s.handleHealth)
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{})))
	e.POST("/api/verify", s.handleVerify)

	return s
}

// Start serves until the listener fails or Shutdown is called
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

// Shutdown stops the server gracefully
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Handler exposes the underlying handler for tests
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// handleVerify accepts a multipart PDF upload and returns the RunResult.
// Fatal pipeline errors become a single explanatory HTTP error; per-claim
// failures are rows with Verdict=Error inside a 200 response.
func (s *Server) handleVerify(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "multipart field 'file' is required")
	}
	if fileHeader.Size > s.maxUploadBytes {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "document exceeds upload limit")
	}

	f, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "cannot read upload")
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(io.LimitReader(f, s.maxUploadBytes))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "cannot read upload")
	}

	run, err := s.runner.Run(c.Request().Context(), fileHeader.Filename, data)
	if err != nil {
		s.metrics.ObserveFailure()

		var extractionErr *model.ExtractionError
		if errors.As(err, &extractionErr) {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, extractionErr.Error())
		}
		var llmErr *model.LLMError
		if errors.As(err, &llmErr) {
			return echo.NewHTTPError(http.StatusBadGateway, llmErr.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	s.metrics.ObserveRun(run)
	return c.JSON(http.StatusOK, run)
}

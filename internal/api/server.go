// © 2025 Eric Lim
//
// SPDX-License-Identifier: MIT

package api

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sourcegraph/conc"

	"github.com/eric-lim-idexx/sorted-json-diff/internal/api/model"
	"github.com/eric-lim-idexx/sorted-json-diff/internal/logging"
	"github.com/eric-lim-idexx/sorted-json-diff/internal/rulestore"
	"github.com/eric-lim-idexx/sorted-json-diff/pkg/canonical"
	"github.com/eric-lim-idexx/sorted-json-diff/pkg/diff"
	pkgmodel "github.com/eric-lim-idexx/sorted-json-diff/pkg/model"
)

const (
	BasePath         = "/api/v1"
	CompareRoute     = BasePath + "/compare"
	RulesRoute       = BasePath + "/rules"
	RuleRoute        = RulesRoute + "/:id"
	RuleEnabledRoute = RuleRoute + "/enabled"

	HealthRoute  = BasePath + "/health"
	MetricsRoute = "/metrics"
)

type Server struct {
	echo    *echo.Echo
	store   *rulestore.Store
	port    int
	metrics *Metrics
}

func NewServer(store *rulestore.Store, port int) *Server {
	server := &Server{
		store:   store,
		port:    port,
		metrics: NewMetrics(),
	}

	server.echo = server.configureEcho()

	return server
}

func (s *Server) configureEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Logger = logging.NewEchoLogger()
	e.StdLogger = log.Default()

	// Comparison endpoint
	e.POST(CompareRoute, s.Compare)

	// Rule store endpoints
	e.GET(RulesRoute, s.ListRules)
	e.POST(RulesRoute, s.CreateRule)
	e.DELETE(RuleRoute, s.DeleteRule)
	e.PATCH(RuleEnabledRoute, s.SetRuleEnabled)

	// Health endpoint
	e.GET(HealthRoute, s.Health)

	// Prometheus metrics endpoint
	e.GET(MetricsRoute, echo.WrapHandler(s.metrics.Handler()))

	return e
}

// Start blocks serving requests until Stop is called or the listener fails.
func (s *Server) Start() error {
	slog.Info("Starting API server", "port", s.port)
	err := s.echo.Start(fmt.Sprintf(":%d", s.port))
	if err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return s.echo.Shutdown(shutdownCtx)
}

func (s *Server) Compare(c echo.Context) error {
	var req model.CompareRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if len(req.Left) == 0 {
		return c.JSON(http.StatusBadRequest, model.ErrorResponse{Message: "left document is required", Side: "left"})
	}
	if len(req.Right) == 0 {
		return c.JSON(http.StatusBadRequest, model.ErrorResponse{Message: "right document is required", Side: "right"})
	}

	left, err := canonical.Decode(req.Left)
	if err != nil {
		s.metrics.Compares.WithLabelValues("error").Inc()
		return c.JSON(http.StatusBadRequest, model.ErrorResponse{Message: err.Error(), Side: "left"})
	}
	right, err := canonical.Decode(req.Right)
	if err != nil {
		s.metrics.Compares.WithLabelValues("error").Inc()
		return c.JSON(http.StatusBadRequest, model.ErrorResponse{Message: err.Error(), Side: "right"})
	}

	rules := req.Rules
	if rules == nil {
		rules, err = s.store.Load()
		if err != nil {
			s.metrics.Compares.WithLabelValues("error").Inc()
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	start := time.Now()

	// The two sides are independent inputs to a pure function; running them
	// concurrently does not break the core's single-threaded model.
	var wg conc.WaitGroup
	wg.Go(func() { left = canonical.Canonicalize(left, rules) })
	wg.Go(func() { right = canonical.Canonicalize(right, rules) })
	wg.Wait()

	ops := diff.Values(left, right)
	chunks := diff.Chunks(diff.Project(ops), req.Context)
	stats := diff.Summarize(ops)

	s.metrics.CompareDuration.Observe(time.Since(start).Seconds())
	s.metrics.DiffLines.WithLabelValues("added").Add(float64(stats.Added))
	s.metrics.DiffLines.WithLabelValues("removed").Add(float64(stats.Removed))
	s.metrics.DiffLines.WithLabelValues("equal").Add(float64(stats.Unchanged))

	identical := diff.Identical(ops)
	if identical {
		s.metrics.Compares.WithLabelValues("identical").Inc()
	} else {
		s.metrics.Compares.WithLabelValues("different").Inc()
	}

	return c.JSON(http.StatusOK, model.CompareResponse{
		Identical: identical,
		Stats:     stats,
		Chunks:    chunks,
	})
}

func (s *Server) ListRules(c echo.Context) error {
	rules, err := s.store.Load()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if rules == nil {
		rules = []pkgmodel.SortRule{}
	}
	return c.JSON(http.StatusOK, rules)
}

func (s *Server) CreateRule(c echo.Context) error {
	var rule pkgmodel.SortRule
	if err := c.Bind(&rule); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid rule body")
	}

	created, err := s.store.Add(rule)
	if err != nil {
		return c.JSON(http.StatusBadRequest, model.ErrorResponse{Message: err.Error()})
	}
	return c.JSON(http.StatusCreated, created)
}

func (s *Server) DeleteRule(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "id is required")
	}

	if err := s.store.Remove(id); err != nil {
		return c.JSON(http.StatusNotFound, model.ErrorResponse{Message: err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) SetRuleEnabled(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "id is required")
	}

	var body struct {
		Enabled bool `json:"enabled"`
	}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if err := s.store.SetEnabled(id, body.Enabled); err != nil {
		return c.JSON(http.StatusNotFound, model.ErrorResponse{Message: err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

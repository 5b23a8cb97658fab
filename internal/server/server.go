// Package server serves the trading history dashboard and the language
// preference over HTTP.
package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rustyeddy/stockreport/history"
	"github.com/rustyeddy/stockreport/i18n"
	"github.com/rustyeddy/stockreport/internal/logger"
	"github.com/rustyeddy/stockreport/report"
)

// Source is the read side of a trade journal.
type Source interface {
	ListTrades(ctx context.Context) ([]history.Trade, error)
	Summary(ctx context.Context) (history.Summary, error)
}

// Server wires the dashboard routes onto a gin engine.
type Server struct {
	source   Source
	provider *i18n.Provider
	renderer *report.Renderer
	engine   *gin.Engine
}

// New builds the router. The provider is the process-wide language choice;
// ?lang= on a page request overrides it for that response only.
func New(source Source, provider *i18n.Provider) *Server {
	s := &Server{
		source:   source,
		provider: provider,
		renderer: report.NewRenderer(),
		engine:   gin.New(),
	}

	s.engine.Use(gin.Recovery())
	s.engine.Use(requestID())
	s.engine.Use(tracing())
	s.engine.Use(requestLogger())
	s.engine.Use(withProvider(provider))

	s.engine.GET("/", s.page)
	s.engine.GET("/healthz", s.health)

	api := s.engine.Group("/api")
	{
		api.GET("/history", s.apiHistory)
		api.GET("/language", s.getLanguage)
		api.PUT("/language", s.putLanguage)
	}
	return s
}

// Handler exposes the router for tests and custom listeners.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is cancelled, then drains in-flight requests
// for up to shutdownTimeout.
func (s *Server) Run(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info(ctx, "dashboard listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen %s: %w", addr, err)
	case <-ctx.Done():
	}

	logger.Info(ctx, "dashboard shutting down", "timeout", shutdownTimeout.String())
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// translator resolves the language for one request: a valid ?lang= wins,
// ?lang=auto follows Accept-Language, otherwise the provider from the
// request context.
func translator(c *gin.Context) (i18n.Translator, error) {
	q := c.Query("lang")
	if q == "auto" {
		return i18n.Static(i18n.MatchAcceptLanguage(c.GetHeader("Accept-Language"))), nil
	}
	if q != "" {
		lang, err := i18n.ParseLanguage(q)
		if err != nil {
			return nil, err
		}
		return i18n.Static(lang), nil
	}
	return i18n.FromContext(c.Request.Context()), nil
}

func (s *Server) load(ctx context.Context) ([]history.Trade, history.Summary, error) {
	trades, err := s.source.ListTrades(ctx)
	if err != nil {
		return nil, history.Summary{}, fmt.Errorf("list trades: %w", err)
	}
	summary, err := s.source.Summary(ctx)
	if err != nil {
		return nil, history.Summary{}, fmt.Errorf("load summary: %w", err)
	}
	return trades, summary, nil
}

// page renders the HTML dashboard.
// GET /
func (s *Server) page(c *gin.Context) {
	ctx := c.Request.Context()
	tr, err := translator(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	trades, summary, err := s.load(ctx)
	if err != nil {
		logger.ErrorWithErr(ctx, "dashboard load failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load trading history"})
		return
	}

	var buf bytes.Buffer
	if err := s.renderer.Render(ctx, &buf, report.FormatHTML, tr, trades, summary); err != nil {
		logger.ErrorWithErr(ctx, "dashboard render failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render trading history"})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// apiHistory returns the formatted view as JSON.
// GET /api/history
func (s *Server) apiHistory(c *gin.Context) {
	ctx := c.Request.Context()
	tr, err := translator(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	trades, summary, err := s.load(ctx)
	if err != nil {
		logger.ErrorWithErr(ctx, "history load failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load trading history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": s.renderer.Page(ctx, tr, trades, summary)})
}

type languageRequest struct {
	Language string `json:"language" binding:"required"`
}

// getLanguage reports the persisted language.
// GET /api/language
func (s *Server) getLanguage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"language":  s.provider.Language(),
		"supported": i18n.Languages(),
	}})
}

// putLanguage switches and persists the language.
// PUT /api/language
func (s *Server) putLanguage(c *gin.Context) {
	ctx := c.Request.Context()

	var req languageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	lang, err := i18n.ParseLanguage(req.Language)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.provider.SetLanguage(lang); err != nil {
		logger.ErrorWithErr(ctx, "language change not persisted", err, "language", lang)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save language"})
		return
	}

	logger.Info(ctx, "language changed", "language", lang)
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"language": lang}})
}

// health is the liveness probe.
// GET /healthz
func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

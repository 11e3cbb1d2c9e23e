// Package server exposes the fact-checking services over HTTP for the
// dashboard: claim extraction, claim verification, document upload, and
// source search.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Gbollysearch7/exa-hallucination-detector/internal/cache"
	"github.com/Gbollysearch7/exa-hallucination-detector/internal/extract"
	"github.com/Gbollysearch7/exa-hallucination-detector/internal/ingest"
	"github.com/Gbollysearch7/exa-hallucination-detector/internal/llm"
	"github.com/Gbollysearch7/exa-hallucination-detector/internal/model"
	"github.com/Gbollysearch7/exa-hallucination-detector/internal/search"
	"github.com/Gbollysearch7/exa-hallucination-detector/internal/verify"
)

// Server is the HTTP API server
type Server struct {
	engine   *gin.Engine
	handlers *Handlers
	config   *model.Config
	http     *http.Server
}

// New builds the server and its service graph from configuration.
// The LLM provider is constructed once at startup so a misconfiguration
// is visible immediately; a missing API key is not fatal here and
// surfaces as a 500 on the extraction and verification routes instead.
func New(cfg *model.Config) *Server {
	var provider llm.Provider
	p, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM, cfg.HTTP))
	if err != nil {
		slog.Warn("LLM provider not available", "error", err)
	} else {
		provider = p
	}

	var resultCache cache.Cache
	if cfg.Cache.Enabled {
		resultCache = cache.NewMemoryCache(cfg.Cache.MemoryTTL, 10*time.Minute)
	}

	handlers := &Handlers{
		searcher: search.NewClient(cfg.Search.APIKey, cfg.Search.BaseURL, cfg.Search.MaxResults,
			cfg.HTTP.Timeout, resultCache, cfg.Cache.MemoryTTL),
		ingestor: ingest.NewIngestor(
			extract.NewClient(cfg.Server.BaseURL, cfg.Server.RequestTimeout), cfg.Ingest),
		requestTimeout: cfg.Server.RequestTimeout,
	}
	if provider != nil {
		handlers.extractor = extract.NewExtractor(provider)
		handlers.verifier = verify.NewVerifier(provider)
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger())

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api")
	api.POST("/extractclaims", handlers.ExtractClaims)
	api.POST("/verifyclaims", handlers.VerifyClaims)
	api.POST("/upload", handlers.Upload)
	api.POST("/exasearch", handlers.SearchSources)

	return &Server{
		engine:   engine,
		handlers: handlers,
		config:   cfg,
		http: &http.Server{
			Addr:    cfg.Server.Addr,
			Handler: engine,
		},
	}
}

// Engine exposes the router for tests
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Run serves until the context is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		slog.Info("listening", "addr", s.http.Addr)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	slog.Info("shutting down")
	return s.http.Shutdown(shutdownCtx)
}

// requestLogger logs one line per request with method, path, status and latency
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		slog.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

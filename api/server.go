// Package api exposes a canvas.Service over HTTP.
package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"xdao.co/paint/canvas"
	"xdao.co/paint/observability"
)

const version = "0.1.0"

type Options struct {
	CORSOrigins []string
	Logger      zerolog.Logger
	// DefaultPNGSize applies when a png request has no size query.
	DefaultPNGSize int
}

type Server struct {
	svc      *canvas.Service
	router   *gin.Engine
	log      zerolog.Logger
	pngSize  int
	appeared time.Time
}

func New(svc *canvas.Service, opts Options) *Server {
	observability.RegisterMetrics()
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(observability.RequestLogger(opts.Logger))
	r.Use(observability.RequestMetricsMiddleware())
	r.Use(cors.New(cors.Config{
		AllowOrigins: normalizeOrigins(opts.CORSOrigins),
		AllowMethods: []string{"GET", "POST", "PUT"},
		AllowHeaders: []string{"Origin", "Content-Type"},
		MaxAge:       12 * time.Hour,
	}))
	_ = r.SetTrustedProxies([]string{"127.0.0.1", "::1"})

	size := opts.DefaultPNGSize
	if size <= 0 {
		size = 512
	}
	s := &Server{
		svc:      svc,
		router:   r,
		log:      opts.Logger.With().Str("component", "api").Logger(),
		pngSize:  size,
		appeared: time.Now(),
	}
	s.registerRoutes()
	return s
}

func (s *Server) Handler() http.Handler { return s.router }

// Serve listens on addr until ctx is done, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.router, ReadHeaderTimeout: 10 * time.Second}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.log.Info().Str("addr", addr).Msg("listening")

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) registerRoutes() {
	r := s.router
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"uptime":  time.Since(s.appeared).String(),
			"service": "paint-api",
			"version": version,
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	tokens := r.Group("/tokens/:id")
	tokens.POST("/mint", s.mint)
	tokens.GET("/trait", s.trait)
	tokens.PUT("/art", s.setArt)
	tokens.POST("/art", s.appendArt)
	tokens.GET("/art", s.art)
	tokens.POST("/lint", s.lint)
	tokens.GET("/svg", s.svg)
	tokens.GET("/metadata", s.metadata)
	tokens.GET("/uri", s.uri)
	tokens.GET("/png", s.png)
}

func normalizeOrigins(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, o := range origins {
		if o = strings.TrimRight(strings.TrimSpace(o), "/"); o != "" {
			out = append(out, o)
		}
	}
	if len(out) == 0 {
		return []string{"http://localhost:3000"}
	}
	return out
}

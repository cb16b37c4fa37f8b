// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// Package httpapi exposes qmddsvc.Service over HTTP with gin, the way
// kegliz-qplay's internal/server package wraps a router and a logger behind
// one small listen/shutdown facade.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/dalzilio-labs/qmddsift/internal/qmddsvc"
)

// Options configures the HTTP surface.
type Options struct {
	Debug bool
}

// Server serves the job API over HTTP.
type Server struct {
	svc    *qmddsvc.Service
	log    zerolog.Logger
	engine *gin.Engine
	srv    *http.Server
}

// New builds a Server backed by svc.
func New(svc *qmddsvc.Service, log zerolog.Logger, opts Options) *Server {
	if !opts.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(log))

	s := &Server{svc: svc, log: log, engine: r}
	s.routes()
	return s
}

func requestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("httpapi: request")
	}
}

func (s *Server) routes() {
	v1 := s.engine.Group("/v1")
	v1.POST("/jobs", s.createJob)
	v1.GET("/jobs/:id", s.getJob)
	v1.GET("/jobs/:id/dot", s.getJobDot)
}

// Listen starts the HTTP server on addr and blocks until it stops or fails.
func (s *Server) Listen(addr string) error {
	s.srv = &http.Server{Addr: addr, Handler: s.engine}
	s.log.Info().Str("addr", addr).Msg("httpapi: listening")
	err := s.srv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}

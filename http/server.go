package http

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/IvanM-GM/replygen"
	"github.com/gin-gonic/gin"
)

// APIPrefix is the route prefix of the JSON API.
const APIPrefix = "/api/v1"

// Server timeouts.
const (
	ReadTimeout     = 30 * time.Second
	WriteTimeout    = 120 * time.Second
	IdleTimeout     = 120 * time.Second
	ShutdownTimeout = 30 * time.Second
)

// Server exposes a PostAnalyzer over a JSON API.
// Configure the exported fields, then call Open.
type Server struct {
	ln     net.Listener
	server *http.Server

	// Addr is the bind address, e.g. ":8000".
	Addr string

	Analyzer replygen.PostAnalyzer

	// Stats backs the JSON metrics endpoint. Optional.
	Stats replygen.StatsReporter

	// MetricsHandler serves the Prometheus exposition at /metrics. Optional.
	MetricsHandler http.Handler

	// Middleware runs after the built-in middleware for every request.
	Middleware []gin.HandlerFunc

	Logger      *slog.Logger
	CORSOrigins []string
	Version     string
	Environment string

	started time.Time
}

// NewServer returns a Server with defaults applied.
func NewServer() *Server {
	return &Server{
		Addr:        ":8000",
		Logger:      slog.Default(),
		CORSOrigins: []string{"*"},
		Version:     "1.0.0",
		Environment: "development",
		started:     time.Now(),
	}
}

// Open starts listening and serves requests in the background.
func (s *Server) Open() (err error) {
	if s.ln, err = net.Listen("tcp", s.Addr); err != nil {
		return err
	}

	s.server = &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  ReadTimeout,
		WriteTimeout: WriteTimeout,
		IdleTimeout:  IdleTimeout,
	}

	go func() {
		if err := s.server.Serve(s.ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.Logger.Error("http server stopped", "err", err)
		}
	}()

	s.Logger.Info("http server listening", "addr", s.ln.Addr().String())
	return nil
}

// URL returns the address the server listens on, once opened.
func (s *Server) URL() string {
	if s.ln == nil {
		return ""
	}
	return "http://" + s.ln.Addr().String()
}

// Close gracefully shuts down the server.
func (s *Server) Close() error {
	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Handler builds the router with all routes and middleware.
func (s *Server) Handler() http.Handler {
	router := gin.New()
	router.Use(loggingMiddleware(s.Logger))
	router.Use(recoveryMiddleware(s.Logger))
	router.Use(corsMiddleware(s.CORSOrigins))
	router.Use(s.Middleware...)

	router.GET("/", s.handleRoot)
	if s.MetricsHandler != nil {
		router.GET("/metrics", gin.WrapH(s.MetricsHandler))
	}

	api := router.Group(APIPrefix)
	api.POST("/analyze", s.handleAnalyze)
	api.GET("/post/:id", s.handlePost)
	api.POST("/validate-url", s.handleValidateURL)
	api.POST("/sentiment", s.handleSentiment)
	api.GET("/health", s.handleHealth)
	api.GET("/status", s.handleStatus)
	api.GET("/metrics", s.handleMetrics)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "error": "Not found"})
	})

	return router
}

func (s *Server) uptime() float64 {
	return time.Since(s.started).Seconds()
}

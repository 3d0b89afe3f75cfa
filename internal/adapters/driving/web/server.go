package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/custodia-labs/tubeqa/internal/logger"
)

// cookieName is the cookie holding the browser's session key.
const cookieName = "tubeqa_session"

//go:embed static/index.html
var static embed.FS

// Server is the web host. Every browser gets its own session.
type Server struct {
	ports    *Ports
	sessions *sessionRegistry
	engine   *gin.Engine
}

// NewServer creates the web host with the given ports.
func NewServer(ports *Ports) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	s := &Server{
		ports:    ports,
		sessions: newSessionRegistry(ports.Assistant),
	}
	s.engine = s.newRouter()
	return s, nil
}

func (s *Server) newRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:3000",
			"http://localhost:5173",
			"http://127.0.0.1:3000",
			"http://127.0.0.1:5173",
		},
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/", s.handleIndex)
	router.GET("/healthcheck", handleHealthCheck)

	api := router.Group("/api")
	{
		api.POST("/video", s.handleVideo)
		api.POST("/ask", s.handleAsk)
		api.GET("/session", s.handleSession)
		api.DELETE("/history", s.handleClearHistory)
	}

	return router
}

// requestLogger logs each request through the verbose logger.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("web: %s %s %d (%s)",
			c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start).Round(time.Millisecond))
	}
}

// Handler returns the HTTP handler serving the page and the API.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves HTTP on addr until the context is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx) //nolint:errcheck
	}()

	err := httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

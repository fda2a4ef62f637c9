package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Server wraps the HTTP server with graceful shutdown.
type Server struct {
	httpServer *http.Server
}

// New creates a server listening on the given port.
func New(port string, handler *gin.Engine) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%s", port),
			Handler:      handler,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// Start begins serving. It blocks until the listener fails or the server is
// shut down.
func (s *Server) Start() error {
	log.Printf("[Server] Listening on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests within the given timeout.
func (s *Server) Shutdown(ctx context.Context) error {
	log.Println("[Server] Shutting down")
	return s.httpServer.Shutdown(ctx)
}

package web

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

// Server exposes the liveness endpoints. It is read-only and shares no
// state with the poll loop.
type Server struct {
	srv    *http.Server
	logger *zap.Logger
}

func NewServer(port string, logger *zap.Logger) *Server {
	mux := http.NewServeMux()
	s := &Server{
		srv: &http.Server{
			Addr:    ":" + port,
			Handler: mux,
		},
		logger: logger,
	}

	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/health", s.handleHealth)
	return s
}

func (s *Server) Start() {
	s.logger.Info("🌐 web server starting", zap.String("addr", s.srv.Addr))
	go func() {
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("web server error", zap.Error(err))
		}
	}()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	fmt.Fprint(w, "🤖 Trading Journal Bot is running!")
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	fmt.Fprint(w, "OK")
}

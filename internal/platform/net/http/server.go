package http

import (
	"context"
	stdhttp "net/http"
	"time"

	"posbridge/internal/platform/config"
	"posbridge/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

// Server wraps chi and the stdlib http.Server behind one Run/Shutdown
// pair.
type Server struct {
	addr string
	mux  *chi.Mux
	srv  *stdhttp.Server
}

// NewServer reads PORT from the scoped config, so a Conf prefixed with
// CORE_API_ listens where CORE_API_PORT says.
func NewServer(cfg config.Conf, opts ...func(*chi.Mux)) *Server {
	addr := cfg.MayString("PORT", ":4000")
	mux := chi.NewRouter()
	for _, o := range opts {
		o(mux)
	}
	return &Server{
		addr: addr,
		mux:  mux,
		srv: &stdhttp.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Router exposes the mux through the platform Router seam.
func (s *Server) Router() Router { return AdaptChi(s.mux) }

// Addr reports the configured listen address.
func (s *Server) Addr() string { return s.addr }

// Run serves until Shutdown. A clean close returns nil.
func (s *Server) Run(ctx context.Context) error {
	logger.Named("http").Info().Str("addr", s.addr).Msg("http listening")
	if err := s.srv.ListenAndServe(); err != stdhttp.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests within ctx.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

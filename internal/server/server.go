package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/orgball2608/social-post-fetcher/internal/dispatcher"
	"github.com/orgball2608/social-post-fetcher/pkg/config"
	"github.com/orgball2608/social-post-fetcher/pkg/logger"
	"go.uber.org/fx"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 15 * time.Second
)

type Opts struct {
	fx.In

	LC         fx.Lifecycle
	Config     *config.Config
	Logger     logger.Logger
	Dispatcher dispatcher.Client
}

type Server struct {
	http   *http.Server
	logger logger.Logger
}

func New(opts Opts) *Server {
	log := opts.Logger.WithComponent("HTTP")
	s := &Server{
		http: &http.Server{
			Addr:              fmt.Sprintf(":%d", opts.Config.App.Port),
			Handler:           NewRouter(opts.Dispatcher, log),
			ReadHeaderTimeout: readHeaderTimeout,
		},
		logger: log,
	}

	opts.LC.Append(fx.Hook{
		OnStart: s.Start,
		OnStop:  s.Stop,
	})
	return s
}

// Start binds the listener synchronously so a busy port fails startup.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.http.Addr, err)
	}

	s.logger.Info("Starting server", "addr", s.http.Addr)
	go func() {
		if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Server stopped unexpectedly", "error", err)
		}
	}()
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	s.logger.Info("Shutting down server")
	if err := s.http.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	return nil
}

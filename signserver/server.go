package signserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/cors"
	"github.com/vitalvas/textsign/config"
	"github.com/vitalvas/textsign/log"
	"github.com/vitalvas/textsign/textsign"
	"golang.org/x/net/netutil"
)

const shutdownTimeout = 10 * time.Second

// Server is the HTTP signing service.
type Server struct {
	cfg       config.Config
	generator textsign.Generator
	metrics   *metrics
	handler   http.Handler
}

// New builds a Server from cfg. The configuration is validated first.
func New(cfg config.Config) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Server{
		cfg:     cfg,
		metrics: newMetrics(),
	}

	bodyLimit, err := BodyLimit(cfg.Server.MaxBodyBytes)
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(RequestID(false), AccessLog(), Recovery())

	if len(cfg.Server.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: cfg.Server.AllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost},
			AllowedHeaders: []string{"Content-Type", RequestIDHeader},
			ExposedHeaders: []string{RequestIDHeader},
			MaxAge:         300,
		}))
	}

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", s.metrics.handler())

	r.Route("/v1", func(r chi.Router) {
		r.Use(bodyLimit)
		r.Post("/sign/{alg}", s.handleSign)
		r.Post("/verify/{alg}", s.handleVerify)
		r.Post("/keys/{alg}", s.handleKeys)
	})

	s.handler = r

	return s, nil
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully. The number of concurrent connections is capped by
// Server.MaxConns.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.handler,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(netutil.LimitListener(ln, s.cfg.Server.MaxConns))
	}()

	log.Infof("signing service listening on %s", ln.Addr())

	select {
	case err := <-errCh:
		return err

	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("signserver: shutdown: %w", err)
		}

		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	}
}

// ListenAndServe listens on the configured address and calls Serve.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Server.Addr)
	if err != nil {
		return err
	}

	return s.Serve(ctx, ln)
}

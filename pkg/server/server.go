// Package server wires the stores, dispatcher, admin API and metrics into
// one HTTP listener and manages its lifecycle.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/mockhub/mockhub/pkg/admin"
	"github.com/mockhub/mockhub/pkg/config"
	"github.com/mockhub/mockhub/pkg/dispatch"
	"github.com/mockhub/mockhub/pkg/logging"
	"github.com/mockhub/mockhub/pkg/metrics"
	"github.com/mockhub/mockhub/pkg/requestlog"
	"github.com/mockhub/mockhub/pkg/store"
	"github.com/mockhub/mockhub/pkg/store/bolt"
)

// shutdownTimeout bounds graceful shutdown of in-flight requests.
const shutdownTimeout = 5 * time.Second

// Server is the mockhub host process: one listener serving mock traffic,
// the admin API under /api, and Prometheus metrics under /metrics.
type Server struct {
	cfg     *config.Config
	log     *slog.Logger
	version string

	mu         sync.Mutex
	running    bool
	httpServer *http.Server
	boltStore  *bolt.Store

	configStore store.ConfigStore
	logStore    requestlog.Store
	notifier    *requestlog.Notifier
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the operational logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Server) {
		if log != nil {
			s.log = log
		}
	}
}

// WithVersion sets the reported build version.
func WithVersion(v string) Option {
	return func(s *Server) { s.version = v }
}

// New creates an unstarted server from cfg. The backing store is bbolt
// when cfg.StorePath is set, in-memory otherwise; a seed file, when
// configured, is applied to either.
func New(cfg *config.Config, opts ...Option) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Server{
		cfg:      cfg,
		log:      logging.Nop(),
		version:  "dev",
		notifier: requestlog.NewNotifier(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.openStores(); err != nil {
		return nil, err
	}
	if cfg.SeedFile != "" {
		if err := s.applySeed(cfg.SeedFile); err != nil {
			return nil, err
		}
	}

	s.notifier.OnDrop(func() { metrics.NotificationsDropped.Inc() })
	metrics.SetAppInfo(s.version)
	return s, nil
}

func (s *Server) openStores() error {
	if s.cfg.StorePath == "" {
		mem := store.NewMemory()
		s.configStore = mem
		s.logStore = mem
		return nil
	}

	bs, err := bolt.Open(s.cfg.StorePath)
	if err != nil {
		return fmt.Errorf("open store %s: %w", s.cfg.StorePath, err)
	}
	s.boltStore = bs
	s.configStore = bs
	s.logStore = bs
	return nil
}

func (s *Server) applySeed(path string) error {
	seed, err := config.LoadSeedFile(path)
	if err != nil {
		return err
	}

	var dst config.Seeder
	switch st := s.configStore.(type) {
	case *store.Memory:
		dst = st
	case *bolt.Store:
		dst = st
	default:
		return fmt.Errorf("store %T does not accept seeds", s.configStore)
	}
	if err := seed.Apply(dst); err != nil {
		return err
	}

	s.log.Info("seed file applied",
		"path", path, "teams", len(seed.Teams), "projects", len(seed.Projects))
	return nil
}

// Handler builds the full routing surface. Exposed for tests.
func (s *Server) Handler() http.Handler {
	recorder := requestlog.NewRecorder(s.logStore, s.notifier, s.log)

	api := admin.New(s.configStore, s.logStore, s.notifier,
		admin.WithLogger(s.log),
		admin.WithVersion(s.version),
	)

	mux := http.NewServeMux()
	mux.Handle("/api/", http.StripPrefix("/api", api.Handler()))
	mux.Handle("/metrics", metrics.Handler())
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	dispatchOpts := []dispatch.Option{dispatch.WithLogger(s.log)}
	if len(s.cfg.ReservedPrefixes) > 0 {
		dispatchOpts = append(dispatchOpts, dispatch.WithReservedPrefixes(s.cfg.ReservedPrefixes))
	}
	return dispatch.New(s.configStore, recorder, mux, dispatchOpts...)
}

// Start begins listening. It returns once the listener goroutine is
// running; serve errors are logged.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("server is already running")
	}

	s.httpServer = &http.Server{
		Addr:              s.cfg.Listen,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.log.Info("starting server", "listen", s.cfg.Listen, "version", s.version)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.log.Error("HTTP server error", "error", err)
		}
	}()

	s.running = true
	return nil
}

// Run starts the server and blocks until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	if err := s.Start(); err != nil {
		return err
	}
	<-ctx.Done()
	return s.Stop()
}

// Stop gracefully shuts down the listener and closes the backing store.
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var errs []error
	if err := s.httpServer.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("HTTP shutdown: %w", err))
	}
	if s.boltStore != nil {
		if err := s.boltStore.Close(); err != nil {
			errs = append(errs, fmt.Errorf("store close: %w", err))
		}
	}

	s.running = false
	s.log.Info("server stopped")
	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}

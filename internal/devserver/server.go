package devserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/rshade/schoolconsole/internal/logging"
	"github.com/rshade/schoolconsole/internal/record"
)

const (
	maxBodyBytes    = 1 << 20
	shutdownTimeout = 5 * time.Second
	readTimeout     = 10 * time.Second
)

// Server is the development backend.
type Server struct {
	store   *Store
	metrics *metrics
	logger  zerolog.Logger
	latency time.Duration
	prefix  string
	router  chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// WithLatency delays every API response, to make loading states visible.
func WithLatency(d time.Duration) Option {
	return func(s *Server) { s.latency = d }
}

// WithPrefix serves the resources under prefix, e.g. "/api".
func WithPrefix(prefix string) Option {
	return func(s *Server) { s.prefix = "/" + strings.Trim(prefix, "/") }
}

// New creates a server over store.
func New(store *Store, opts ...Option) *Server {
	s := &Server{
		store:   store,
		metrics: newMetrics(),
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = logging.ComponentLogger(s.logger, "devserver")
	s.router = s.routes()
	return s
}

// Store returns the backing store.
func (s *Server) Store() *Store {
	return s.store
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	r.Handle("/metrics", promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{}))

	r.Route(strings.TrimSuffix(s.prefix, "/")+"/{resource}", func(r chi.Router) {
		r.Use(s.metrics.instrument)
		r.Use(s.knownResource)
		r.Use(s.delay)

		r.Get("/", s.handleList(record.StatusActive))
		r.Post("/", s.handleCreate)
		r.Get("/inactive", s.handleList(record.StatusInactive))
		r.Get("/{id}", s.handleGet)
		r.Put("/{id}", s.handleUpdate)
		r.Delete("/{id}", s.handleTransition(record.StatusActive, record.StatusInactive, false))
		r.Patch("/{id}/restore", s.handleTransition(record.StatusInactive, record.StatusActive, true))
	})
	return r
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("trace_id", r.Header.Get(logging.TraceIDHeader)).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

func (s *Server) knownResource(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.store.Has(chi.URLParam(r, "resource")) {
			writeError(w, http.StatusNotFound, "unknown resource")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) delay(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.latency > 0 {
			select {
			case <-time.After(s.latency):
			case <-r.Context().Done():
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleList(status record.Status) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		docs, err := s.store.List(chi.URLParam(r, "resource"), status)
		if err != nil {
			s.writeStoreError(w, err)
			return
		}
		writeData(w, http.StatusOK, docs)
	}
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	doc, err := s.store.Get(chi.URLParam(r, "resource"), chi.URLParam(r, "id"))
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	writeData(w, http.StatusOK, doc)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	fields, err := readDocument(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	delete(fields, fieldID)
	delete(fields, fieldStatus)

	doc, err := s.store.Create(chi.URLParam(r, "resource"), fields)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	writeData(w, http.StatusCreated, doc)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	fields, err := readDocument(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	doc, err := s.store.Update(chi.URLParam(r, "resource"), chi.URLParam(r, "id"), fields)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	writeData(w, http.StatusOK, doc)
}

func (s *Server) handleTransition(from, to record.Status, withBody bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, err := s.store.SetStatus(chi.URLParam(r, "resource"), chi.URLParam(r, "id"), from, to)
		if err != nil {
			s.writeStoreError(w, err)
			return
		}
		if !withBody {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		writeData(w, http.StatusOK, doc)
	}
}

func (s *Server) writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrUnknownResource):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrConflict):
		writeError(w, http.StatusConflict, err.Error())
	default:
		s.logger.Error().Err(err).Msg("store failure")
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func readDocument(r *http.Request) (Document, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("reading body: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("body must be a JSON object: %w", err)
	}
	if doc == nil {
		return nil, errors.New("body must be a JSON object")
	}
	return doc, nil
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, map[string]any{"data": data})
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// ListenAndServe serves on addr until ctx is cancelled. ready, if non-nil,
// receives the bound address once the listener is open.
func (s *Server) ListenAndServe(ctx context.Context, addr string, ready func(net.Addr)) error {
	ln, err := (&net.ListenConfig{}).Listen(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}

	srv := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: readTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()
	if ready != nil {
		ready(ln.Addr())
	}
	s.logger.Info().Str("addr", ln.Addr().String()).Msg("development backend listening")

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down: %w", err)
		}
		return nil
	}
}

// Package devserver runs a local stand-in for the internship backend: the
// directory routes plus a submission sink that enforces the payload contract.
package devserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	dircomponent "github.com/goliatone/go-fiche/components/directory"
	"github.com/goliatone/go-fiche/pkg/api"
	"github.com/goliatone/go-fiche/pkg/directory"
	"github.com/goliatone/go-fiche/pkg/submission"
)

const maxBody = 1 << 20

// MessageDuplicateTheme is returned when a theme was already submitted.
const MessageDuplicateTheme = "Un sujet avec ce thème a déjà été soumis"

// Record is one accepted submission.
type Record struct {
	ID         string             `json:"id"`
	ReceivedAt time.Time          `json:"received_at"`
	Payload    submission.Payload `json:"payload"`
}

// Option configures a Server.
type Option func(*Server)

// WithAddr sets the listen address.
func WithAddr(addr string) Option {
	return func(s *Server) {
		if addr != "" {
			s.Addr = addr
		}
	}
}

// WithBasePath mounts every route under base.
func WithBasePath(base string) Option {
	return func(s *Server) {
		s.base = base
	}
}

// WithDirectory replaces the embedded static directory.
func WithDirectory(dir directory.Directory) Option {
	return func(s *Server) {
		if dir != nil {
			s.dir = dir
		}
	}
}

// WithToken requires "Authorization: Bearer <token>" on every route.
func WithToken(token string) Option {
	return func(s *Server) {
		s.token = token
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Server wraps an http.Server around a mux.Router.
type Server struct {
	*http.Server
	Router *mux.Router

	base     string
	dir      directory.Directory
	token    string
	contract *submission.Contract
	logger   *slog.Logger

	mu      sync.Mutex
	records []Record
	themes  map[string]struct{}
}

// New builds a server with every route registered.
func New(opts ...Option) (*Server, error) {
	contract, err := submission.DefaultContract()
	if err != nil {
		return nil, err
	}
	s := &Server{
		Router:   mux.NewRouter(),
		contract: contract,
		logger:   slog.Default(),
		themes:   make(map[string]struct{}),
	}
	s.Server = &http.Server{
		Addr:              "127.0.0.1:8080",
		Handler:           s.Router,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.dir == nil {
		static, err := directory.DefaultStatic()
		if err != nil {
			return nil, err
		}
		s.dir = static
	}

	if _, err := dircomponent.RegisterRoutes(s.Router, s.base,
		dircomponent.WithSource(s.dir),
		dircomponent.WithGuard(s.guard),
		dircomponent.WithLogger(s.logger),
	); err != nil {
		return nil, err
	}
	route := dircomponent.MountPath(s.base, submission.RouteFormationPratiques)
	s.Router.HandleFunc(route, s.withGuard(s.submit)).Methods(http.MethodPost)
	s.Router.HandleFunc(route, s.withGuard(s.list)).Methods(http.MethodGet)
	s.Router.Use(s.logRequests)
	return s, nil
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.ListenAndServe()
	}()
	s.logger.Info("devserver: listening", "addr", s.Addr, "base", s.base)
	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := s.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("devserver: shutdown: %w", err)
	}
	return nil
}

// Records returns the accepted submissions in arrival order.
func (s *Server) Records() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Record(nil), s.records...)
}

func (s *Server) guard(r *http.Request) error {
	if s.token == "" {
		return nil
	}
	if r.Header.Get("Authorization") != "Bearer "+s.token {
		return dircomponent.StatusError{Code: http.StatusUnauthorized}
	}
	return nil
}

func (s *Server) withGuard(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.guard(r); err != nil {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"message": http.StatusText(http.StatusUnauthorized)})
			return
		}
		next(w, r)
	}
}

func (s *Server) submit(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBody))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "corps illisible"})
		return
	}
	if err := s.contract.CheckJSON(body); err != nil {
		var cerr *submission.ContractError
		if !errors.As(err, &cerr) {
			writeJSON(w, http.StatusInternalServerError, map[string]any{"message": err.Error()})
			return
		}
		fields, rest := cerr.Fields()
		message := "Données invalides"
		if len(rest) > 0 {
			message = strings.Join(rest, "; ")
		}
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"message": message, "errors": fields})
		return
	}

	var payload submission.Payload
	if err := json.Unmarshal(body, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": err.Error()})
		return
	}

	key := directory.Fold(payload.Theme)
	s.mu.Lock()
	if _, dup := s.themes[key]; dup {
		s.mu.Unlock()
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"message": "Données invalides",
			"errors":  map[string][]string{"theme": {MessageDuplicateTheme}},
		})
		return
	}
	rec := Record{ID: uuid.NewString(), ReceivedAt: time.Now().UTC(), Payload: payload}
	s.themes[key] = struct{}{}
	s.records = append(s.records, rec)
	s.mu.Unlock()

	s.logger.Info("devserver: fiche accepted", "id", rec.ID, "stagiaires", payload.NombreStagiaire)
	writeJSON(w, http.StatusCreated, map[string]any{"data": rec})
}

func (s *Server) list(w http.ResponseWriter, _ *http.Request) {
	records := s.Records()
	if records == nil {
		records = []Record{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"data": records,
		"meta": directory.Meta{Total: len(records), Page: 1, Limit: len(records)},
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("devserver: request",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", r.Header.Get(api.RequestIDHeader),
			"elapsed", time.Since(start),
		)
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

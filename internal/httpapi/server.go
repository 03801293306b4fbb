// Package httpapi exposes a read-only status API next to the bot: current
// domain states and the ignore list. Mutations stay on the conversational
// control plane.
package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/hamed0406/domainwatch/internal/domain"
	"github.com/hamed0406/domainwatch/internal/httpapi/middleware"
	"github.com/hamed0406/domainwatch/internal/store"
)

// Snapshotter is the read side of the failure tracker.
type Snapshotter interface {
	Snapshot() []domain.Record
}

type Server struct {
	Logger  *zap.Logger
	Tracker Snapshotter
	Ignores store.IgnoreStore
	APIKeys []string
}

func NewServer(l *zap.Logger, tr Snapshotter, ig store.IgnoreStore, apiKeys []string) *Server {
	return &Server{Logger: l, Tracker: tr, Ignores: ig, APIKeys: apiKeys}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.AllowAll().Handler)
	r.Use(middleware.RateLimit(120, 60))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireKey(s.APIKeys))
		r.Get("/api/domains", s.handleListDomains)
		r.Get("/api/ignored", s.handleListIgnored)
	})

	return r
}

func (s *Server) handleListDomains(w http.ResponseWriter, r *http.Request) {
	recs := s.Tracker.Snapshot()
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(recs)
}

func (s *Server) handleListIgnored(w http.ResponseWriter, r *http.Request) {
	hosts, err := s.Ignores.List(r.Context())
	if err != nil {
		s.Logger.Error("api_ignored_list_error", zap.Error(err))
		http.Error(w, "list error", http.StatusInternalServerError)
		return
	}
	if hosts == nil {
		hosts = []string{}
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(hosts)
}

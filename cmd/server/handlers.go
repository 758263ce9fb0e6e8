package main

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/Simplici0/preventivatore3d/internal/logging"
	"github.com/Simplici0/preventivatore3d/internal/pricing"
	"github.com/Simplici0/preventivatore3d/internal/quote"
	"github.com/Simplici0/preventivatore3d/internal/store"
)

type server struct {
	store *store.Store
	log   *zap.Logger
	now   func() time.Time
}

func newServer(st *store.Store, log *zap.Logger) *server {
	return &server{store: st, log: log, now: time.Now}
}

type errorReply struct {
	Error string `json:"error"`
}

type hoursRequest struct {
	Input    pricing.Raw `json:"input"`
	Fallback float64     `json:"fallback"`
}

type hoursReply struct {
	Hours float64 `json:"hours"`
}

type quoteReply struct {
	pricing.OrderQuote
	Warnings map[string][]string `json:"warnings,omitempty"`
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(logging.HTTP(s.log))
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/hours", s.handleHours)
		r.Post("/quote", s.handleQuote)
		r.Get("/config", s.handleConfigGet)
		r.Put("/config", s.handleConfigPut)
		r.Get("/quotes", s.handleQuotesList)
		r.Post("/quotes", s.handleQuoteCreate)
		r.Get("/quotes/{id}", s.handleQuoteDetail)
		r.Delete("/quotes/{id}", s.handleQuoteDelete)
		r.Get("/quotes/{id}/text", s.handleQuoteText)
		r.Get("/library", s.handleLibraryList)
		r.Post("/library", s.handleLibraryCreate)
	})
	return r
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	render.PlainText(w, r, "ok")
}

func (s *server) handleHours(w http.ResponseWriter, r *http.Request) {
	var req hoursRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		s.fail(w, r, http.StatusBadRequest, "invalid json body", err)
		return
	}
	render.JSON(w, r, hoursReply{Hours: req.Input.Hours(req.Fallback)})
}

func (s *server) handleQuote(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.store.GetConfiguration(r.Context())
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, "failed to load configuration", err)
		return
	}

	order := pricing.Order{SetupMode: pricing.Defaults.SetupMode}
	if err := render.DecodeJSON(r.Body, &order); err != nil {
		s.fail(w, r, http.StatusBadRequest, "invalid json body", err)
		return
	}
	order.Config = cfg.Merge(order.Config)

	oq := pricing.QuoteOrder(order)
	reply := quoteReply{OrderQuote: oq}
	for _, l := range oq.Lines {
		if warnings := l.Quote.Warnings(); len(warnings) > 0 {
			if reply.Warnings == nil {
				reply.Warnings = make(map[string][]string)
			}
			reply.Warnings[l.ID] = warnings
		}
	}
	render.JSON(w, r, reply)
}

func (s *server) handleConfigGet(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.store.GetConfiguration(r.Context())
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, "failed to load configuration", err)
		return
	}
	render.JSON(w, r, cfg)
}

func (s *server) handleConfigPut(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.store.GetConfiguration(r.Context())
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, "failed to load configuration", err)
		return
	}
	var patch pricing.Configuration
	if err := render.DecodeJSON(r.Body, &patch); err != nil {
		s.fail(w, r, http.StatusBadRequest, "invalid json body", err)
		return
	}
	cfg = cfg.Merge(patch)
	if err := s.store.SaveConfiguration(r.Context(), cfg); err != nil {
		s.fail(w, r, http.StatusInternalServerError, "failed to save configuration", err)
		return
	}
	render.JSON(w, r, cfg)
}

func (s *server) handleQuotesList(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	quotes, err := s.store.ListQuotes(r.Context(), query)
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, "failed to load quotes", err)
		return
	}
	render.JSON(w, r, quotes)
}

func (s *server) handleQuoteCreate(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.store.GetConfiguration(r.Context())
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, "failed to load configuration", err)
		return
	}

	state := quote.NewState()
	state.Config = pricing.Configuration{}
	if err := render.DecodeJSON(r.Body, &state); err != nil {
		s.fail(w, r, http.StatusBadRequest, "invalid json body", err)
		return
	}
	state.Config = cfg.Merge(state.Config)

	snap, err := quote.MakeSnapshot(state, s.now())
	if err != nil {
		s.fail(w, r, http.StatusBadRequest, err.Error(), nil)
		return
	}
	if err := s.store.SaveQuote(r.Context(), snap); err != nil {
		s.fail(w, r, http.StatusInternalServerError, "failed to save quote", err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, snap)
}

func (s *server) handleQuoteDetail(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.loadQuote(w, r)
	if !ok {
		return
	}
	render.JSON(w, r, snap)
}

func (s *server) handleQuoteText(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.loadQuote(w, r)
	if !ok {
		return
	}
	render.PlainText(w, r, snap.Text())
}

func (s *server) handleQuoteDelete(w http.ResponseWriter, r *http.Request) {
	err := s.store.DeleteQuote(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		s.fail(w, r, http.StatusNotFound, "quote not found", nil)
		return
	}
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, "failed to delete quote", err)
		return
	}
	render.NoContent(w, r)
}

func (s *server) handleLibraryList(w http.ResponseWriter, r *http.Request) {
	items, err := s.store.ListLibraryItems(r.Context())
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, "failed to load library", err)
		return
	}
	render.JSON(w, r, items)
}

func (s *server) handleLibraryCreate(w http.ResponseWriter, r *http.Request) {
	var item pricing.Item
	if err := render.DecodeJSON(r.Body, &item); err != nil {
		s.fail(w, r, http.StatusBadRequest, "invalid json body", err)
		return
	}

	libItem := quote.NormalizeForLibrary(item, s.now())
	if err := s.store.SaveLibraryItem(r.Context(), libItem); err != nil {
		s.fail(w, r, http.StatusInternalServerError, "failed to save library item", err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, libItem)
}

func (s *server) loadQuote(w http.ResponseWriter, r *http.Request) (quote.Snapshot, bool) {
	snap, err := s.store.GetQuote(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		s.fail(w, r, http.StatusNotFound, "quote not found", nil)
		return quote.Snapshot{}, false
	}
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, "failed to load quote", err)
		return quote.Snapshot{}, false
	}
	return snap, true
}

func (s *server) fail(w http.ResponseWriter, r *http.Request, status int, msg string, err error) {
	if err != nil && status >= http.StatusInternalServerError {
		s.log.Error(msg, zap.Error(err), zap.String("request_id", middleware.GetReqID(r.Context())))
	}
	render.Status(r, status)
	render.JSON(w, r, errorReply{Error: msg})
}

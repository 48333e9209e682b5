// Package server exposes the contractor search and quote-request operations
// over HTTP, along with a small embedded web page.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/santo-labs/santoscore/internal/mail"
	"github.com/santo-labs/santoscore/internal/model"
	"github.com/santo-labs/santoscore/internal/search"
)

// Searcher runs a contractor search. Satisfied by *search.Searcher.
type Searcher interface {
	Search(ctx context.Context, req search.Request, progress model.ProgressFunc) []model.Contractor
}

// QuoteSender delivers a quote request. Satisfied by *mail.Mailer.
type QuoteSender interface {
	SendQuoteRequest(ctx context.Context, qr mail.QuoteRequest) (bool, string)
}

// Server holds the HTTP router and its dependencies.
type Server struct {
	router   *chi.Mux
	searcher Searcher
	mailer   QuoteSender
}

// New builds the router. mailer may be nil when SMTP is not configured;
// quote requests then return 503.
func New(searcher Searcher, mailer QuoteSender) *Server {
	s := &Server{
		router:   chi.NewRouter(),
		searcher: searcher,
		mailer:   mailer,
	}

	s.router.Use(chimw.RealIP)
	s.router.Use(chimw.Recoverer)
	s.router.Use(requestID)
	s.router.Use(requestLogger)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	s.router.Get("/healthz", s.handleHealth)
	s.router.Get("/", s.handleIndex)
	s.router.Post("/api/search", s.handleSearch)
	s.router.Post("/api/quote", s.handleQuote)

	return s
}

// Handler returns the root http.Handler.
func (s *Server) Handler() http.Handler { return s.router }

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, port int) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		zap.L().Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	zap.L().Info("starting server", zap.Int("port", port))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return eris.Wrap(err, "server: listen")
	}

	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type searchResponse struct {
	Contractors []model.Contractor `json:"contractors"`
	Count       int                `json:"count"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req search.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.ServiceType == "" {
		writeError(w, http.StatusBadRequest, "service_type is required")
		return
	}

	if req.MaxResults <= 0 {
		req.MaxResults = 5
	} else if req.MaxResults > 20 {
		req.MaxResults = 20
	}

	contractors := s.searcher.Search(r.Context(), req, nil)

	writeJSON(w, http.StatusOK, searchResponse{
		Contractors: contractors,
		Count:       len(contractors),
	})
}

type quoteResponse struct {
	Sent   bool   `json:"sent"`
	Detail string `json:"detail"`
}

func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	if s.mailer == nil {
		writeError(w, http.StatusServiceUnavailable, "quote requests are not configured")
		return
	}

	var qr mail.QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&qr); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if ok, reason := qr.Validate(); !ok {
		writeError(w, http.StatusBadRequest, reason)
		return
	}

	sent, detail := s.mailer.SendQuoteRequest(r.Context(), qr)
	status := http.StatusOK
	if !sent {
		status = http.StatusBadGateway
	}
	writeJSON(w, status, quoteResponse{Sent: sent, Detail: detail})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

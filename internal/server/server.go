// Package server exposes the expense tracker over HTTP. Routes mirror the
// voice-entry workflow: transcribe audio, parse the utterance, categorize the
// item, then CRUD on the stored transactions.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"spendscribe/internal/ai"
	"spendscribe/internal/categorizer"
	"spendscribe/internal/logging"
	"spendscribe/internal/models"
	"spendscribe/internal/store"
)

// Store is the persistence surface the handlers need.
type Store interface {
	List(ctx context.Context, filter store.Filter) ([]models.Transaction, error)
	Create(ctx context.Context, tx *models.Transaction) error
	Update(ctx context.Context, id string, fields store.UpdateFields) error
	Delete(ctx context.Context, id string) error
}

// Server holds the handler dependencies and the route table.
type Server struct {
	store       Store
	ai          ai.Client
	categorizer *categorizer.Categorizer
	logger      logging.Logger
	mux         *http.ServeMux
	now         func() time.Time
}

// New wires the route table. ai may be nil, in which case transcription
// answers 503 and parsing and categorization run offline only.
func New(st Store, aiClient ai.Client, cat *categorizer.Categorizer, logger logging.Logger) *Server {
	s := &Server{
		store:       st,
		ai:          aiClient,
		categorizer: cat,
		logger:      logger,
		mux:         http.NewServeMux(),
		now:         time.Now,
	}

	s.mux.HandleFunc("POST /api/transcribe", s.handleTranscribe)
	s.mux.HandleFunc("POST /api/parse-expense", s.handleParseExpense)
	s.mux.HandleFunc("POST /api/categorize", s.handleCategorize)
	s.mux.HandleFunc("GET /api/transactions", s.handleListTransactions)
	s.mux.HandleFunc("POST /api/transactions", s.handleCreateTransaction)
	s.mux.HandleFunc("PUT /api/transactions/{id}", s.handleUpdateTransaction)
	s.mux.HandleFunc("DELETE /api/transactions/{id}", s.handleDeleteTransaction)
	s.mux.HandleFunc("GET /healthz", s.handleHealth)

	return s
}

// ServeHTTP implements http.Handler with per-request logging.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.logger.WithFields(
		logging.Field{Key: logging.FieldRoute, Value: r.URL.Path},
		logging.Field{Key: "method", Value: r.Method},
	).Debug("Handling request")
	s.mux.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.WithError(err).Error("Failed to encode response")
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}

package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"spendscribe/internal/ai"
	"spendscribe/internal/dateparse"
	"spendscribe/internal/expenseparse"
	"spendscribe/internal/logging"
	"spendscribe/internal/models"
	"spendscribe/internal/store"
)

// maxAudioBytes caps one uploaded recording at 25 MB, the Whisper limit.
const maxAudioBytes = 25 << 20

type parseExpenseRequest struct {
	Text string `json:"text"`
}

type parseExpenseResponse struct {
	Amount float64 `json:"amount"`
	Item   string  `json:"item"`
	Date   string  `json:"date"`
}

type categorizeRequest struct {
	Item string `json:"item"`
}

func (s *Server) handleTranscribe(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxAudioBytes); err != nil {
		s.respondError(w, http.StatusBadRequest, "No audio file provided")
		return
	}
	file, header, err := r.FormFile("audio")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "No audio file provided")
		return
	}
	defer file.Close()

	if s.ai == nil {
		s.respondError(w, http.StatusServiceUnavailable, "Transcription is not configured")
		return
	}

	text, err := s.ai.Transcribe(r.Context(), file, header.Filename)
	if err != nil {
		if errors.Is(err, ai.ErrUnsupported) {
			s.respondError(w, http.StatusServiceUnavailable, "Transcription is not supported by the configured provider")
			return
		}
		s.logger.WithError(err).Error("Transcription failed")
		s.respondError(w, http.StatusInternalServerError, "Failed to transcribe audio")
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"text": text})
}

// handleParseExpense extracts {amount, item, date} from one utterance. The
// hosted model supplies amount and item when it answers cleanly; the date is
// always resolved locally from the submitted text so phrases like "yesterday"
// land on the right day regardless of which parser won.
func (s *Server) handleParseExpense(w http.ResponseWriter, r *http.Request) {
	var req parseExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Text) == "" {
		s.respondError(w, http.StatusBadRequest, "No text provided")
		return
	}

	now := s.now()
	date := dateparse.Resolve(req.Text, now)

	if s.ai != nil {
		result, err := s.ai.ParseExpense(r.Context(), req.Text)
		if err == nil {
			amount, _ := result.Amount.Round(2).Float64()
			s.respondJSON(w, http.StatusOK, parseExpenseResponse{
				Amount: amount,
				Item:   result.Item,
				Date:   date.Format(time.RFC3339),
			})
			return
		}
		s.logger.WithError(err).Warn("Hosted parse failed, falling back to offline parser")
	}

	parsed, err := expenseparse.ParseAt(req.Text, now)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "Could not find an amount in the text")
		return
	}
	s.respondJSON(w, http.StatusOK, parseExpenseResponse{
		Amount: parsed.CostValue(),
		Item:   parsed.Item,
		Date:   date.Format(time.RFC3339),
	})
}

func (s *Server) handleCategorize(w http.ResponseWriter, r *http.Request) {
	var req categorizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Item) == "" {
		s.respondError(w, http.StatusBadRequest, "No item provided")
		return
	}
	flags := s.categorizer.Categorize(r.Context(), req.Item)
	s.respondJSON(w, http.StatusOK, flags)
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	filter := store.Filter{Category: r.URL.Query().Get("category")}

	if v := r.URL.Query().Get("date_start"); v != "" {
		t, err := parseQueryDate(v)
		if err != nil {
			s.respondError(w, http.StatusBadRequest, "Invalid date_start")
			return
		}
		filter.DateStart = &t
	}
	if v := r.URL.Query().Get("date_end"); v != "" {
		t, err := parseQueryDate(v)
		if err != nil {
			s.respondError(w, http.StatusBadRequest, "Invalid date_end")
			return
		}
		filter.DateEnd = &t
	}

	txs, err := s.store.List(r.Context(), filter)
	if err != nil {
		s.logger.WithError(err).Error("Failed to list transactions")
		s.respondError(w, http.StatusInternalServerError, "Failed to fetch transactions")
		return
	}
	s.respondJSON(w, http.StatusOK, txs)
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var tx models.Transaction
	if err := json.NewDecoder(r.Body).Decode(&tx); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	// The server owns IDs and the default date; clients may not set either.
	tx.ID = primitive.NilObjectID
	if tx.Date.IsZero() {
		tx.Date = s.now()
	}

	if err := tx.Validate(); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.store.Create(r.Context(), &tx); err != nil {
		s.logger.WithError(err).Error("Failed to create transaction")
		s.respondError(w, http.StatusInternalServerError, "Failed to save transaction")
		return
	}
	s.respondJSON(w, http.StatusCreated, tx)
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var fields struct {
		Item *string    `json:"item"`
		Cost *float64   `json:"cost"`
		Date *time.Time `json:"date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if fields.Item != nil && strings.TrimSpace(*fields.Item) == "" {
		s.respondError(w, http.StatusBadRequest, "Item cannot be empty")
		return
	}
	if fields.Cost != nil && *fields.Cost < 0 {
		s.respondError(w, http.StatusBadRequest, "Cost cannot be negative")
		return
	}
	if fields.Item == nil && fields.Cost == nil && fields.Date == nil {
		s.respondError(w, http.StatusBadRequest, "No fields to update")
		return
	}

	err := s.store.Update(r.Context(), id, store.UpdateFields{
		Item: fields.Item,
		Cost: fields.Cost,
		Date: fields.Date,
	})
	if err != nil {
		s.respondStoreError(w, id, err, "update")
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"message": "Transaction updated successfully"})
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := s.store.Delete(r.Context(), id); err != nil {
		s.respondStoreError(w, id, err, "delete")
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"message": "Transaction deleted successfully"})
}

func (s *Server) respondStoreError(w http.ResponseWriter, id string, err error, op string) {
	switch {
	case errors.Is(err, store.ErrInvalidID):
		s.respondError(w, http.StatusBadRequest, "Invalid transaction ID")
	case errors.Is(err, store.ErrNotFound):
		s.respondError(w, http.StatusNotFound, "Transaction not found")
	default:
		s.logger.WithError(err).WithField(logging.FieldTransactionID, id).Error("Failed to " + op + " transaction")
		s.respondError(w, http.StatusInternalServerError, "Failed to "+op+" transaction")
	}
}

// parseQueryDate accepts RFC 3339 timestamps and bare yyyy-mm-dd dates.
func parseQueryDate(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", v)
}

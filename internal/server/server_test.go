package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"spendscribe/internal/ai"
	"spendscribe/internal/categorizer"
	"spendscribe/internal/logging"
	"spendscribe/internal/models"
	"spendscribe/internal/store"
)

var testNow = time.Date(2024, time.March, 13, 15, 30, 0, 0, time.UTC)

// fakeStore keeps transactions in memory and records the filters it saw.
type fakeStore struct {
	txs        []models.Transaction
	nextID     byte
	lastFilter store.Filter
	listErr    error
}

func (f *fakeStore) List(ctx context.Context, filter store.Filter) ([]models.Transaction, error) {
	f.lastFilter = filter
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.txs, nil
}

func (f *fakeStore) Create(ctx context.Context, tx *models.Transaction) error {
	f.nextID++
	tx.ID = [12]byte{f.nextID}
	f.txs = append(f.txs, *tx)
	return nil
}

func (f *fakeStore) Update(ctx context.Context, id string, fields store.UpdateFields) error {
	return f.lookupErr(id)
}

func (f *fakeStore) Delete(ctx context.Context, id string) error {
	return f.lookupErr(id)
}

func (f *fakeStore) lookupErr(id string) error {
	if len(id) != 24 {
		return store.ErrInvalidID
	}
	for _, tx := range f.txs {
		if tx.ID.Hex() == id {
			return nil
		}
	}
	return store.ErrNotFound
}

// fakeAI scripts the hosted-model responses.
type fakeAI struct {
	transcript    string
	transcribeErr error
	parsed        *ai.ParsedResult
	parseErr      error
	label         string
	labelErr      error
}

func (f *fakeAI) Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error) {
	return f.transcript, f.transcribeErr
}

func (f *fakeAI) ParseExpense(ctx context.Context, text string) (*ai.ParsedResult, error) {
	return f.parsed, f.parseErr
}

func (f *fakeAI) CategorizeItem(ctx context.Context, item string) (string, error) {
	return f.label, f.labelErr
}

func (f *fakeAI) Close() error { return nil }

func newTestServer(st Store, aiClient ai.Client) *Server {
	logger := &logging.MockLogger{}
	var catAI categorizer.AIClient
	if aiClient != nil {
		catAI = aiClient
	}
	s := New(st, aiClient, categorizer.New(catAI, nil, logger), logger)
	s.now = func() time.Time { return testNow }
	return s
}

func doJSON(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		assert.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	w := httptest.NewRecorder()
	s.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	assert.NoError(t, json.NewDecoder(w.Body).Decode(&v))
	return v
}

func TestHealthz(t *testing.T) {
	s := newTestServer(&fakeStore{}, nil)
	w := doJSON(t, s, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreateAndListTransactions(t *testing.T) {
	st := &fakeStore{}
	s := newTestServer(st, nil)

	w := doJSON(t, s, http.MethodPost, "/api/transactions", map[string]any{
		"item":          "coffee",
		"cost":          4.5,
		"is_food_drink": true,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	created := decodeBody[models.Transaction](t, w)
	assert.Equal(t, "coffee", created.Item)
	assert.Equal(t, 4.5, created.Cost)
	assert.True(t, created.IsFoodDrink)
	assert.False(t, created.ID.IsZero(), "response carries the assigned ID")
	assert.Equal(t, testNow, created.Date.UTC(), "missing date defaults to now")

	w = doJSON(t, s, http.MethodGet, "/api/transactions", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	listed := decodeBody[[]models.Transaction](t, w)
	assert.Len(t, listed, 1)
	assert.Equal(t, created.ID, listed[0].ID)
	assert.Equal(t, "coffee", listed[0].Item)
}

func TestCreateTransactionRejectsInvalid(t *testing.T) {
	s := newTestServer(&fakeStore{}, nil)

	w := doJSON(t, s, http.MethodPost, "/api/transactions", map[string]any{"cost": 5})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, s, http.MethodPost, "/api/transactions", map[string]any{"item": "x", "cost": -1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListTransactionsPassesFilter(t *testing.T) {
	st := &fakeStore{}
	s := newTestServer(st, nil)

	w := doJSON(t, s, http.MethodGet, "/api/transactions?date_start=2024-03-01&date_end=2024-03-31&category=food_drink", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "food_drink", st.lastFilter.Category)
	assert.NotNil(t, st.lastFilter.DateStart)
	assert.NotNil(t, st.lastFilter.DateEnd)
	assert.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), st.lastFilter.DateStart.UTC())
}

func TestListTransactionsRejectsBadDates(t *testing.T) {
	s := newTestServer(&fakeStore{}, nil)
	w := doJSON(t, s, http.MethodGet, "/api/transactions?date_start=notadate", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListTransactionsStoreFailure(t *testing.T) {
	s := newTestServer(&fakeStore{listErr: errors.New("down")}, nil)
	w := doJSON(t, s, http.MethodGet, "/api/transactions", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestUpdateTransactionErrors(t *testing.T) {
	s := newTestServer(&fakeStore{}, nil)

	w := doJSON(t, s, http.MethodPut, "/api/transactions/notahexid", map[string]any{"cost": 9.0})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody[map[string]string](t, w)
	assert.Equal(t, "Invalid transaction ID", body["error"])

	w = doJSON(t, s, http.MethodPut, "/api/transactions/65f1b2c3d4e5f6a7b8c9d0e1", map[string]any{"cost": 9.0})
	assert.Equal(t, http.StatusNotFound, w.Code)
	body = decodeBody[map[string]string](t, w)
	assert.Equal(t, "Transaction not found", body["error"])

	w = doJSON(t, s, http.MethodPut, "/api/transactions/65f1b2c3d4e5f6a7b8c9d0e1", map[string]any{"item": " "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateTransactionRejectsEmptyBody(t *testing.T) {
	s := newTestServer(&fakeStore{}, nil)

	// An update naming no fields must not report success for an unknown ID.
	w := doJSON(t, s, http.MethodPut, "/api/transactions/65f1b2c3d4e5f6a7b8c9d0e1", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody[map[string]string](t, w)
	assert.Equal(t, "No fields to update", body["error"])
}

func TestUpdateTransactionSuccess(t *testing.T) {
	st := &fakeStore{}
	s := newTestServer(st, nil)

	w := doJSON(t, s, http.MethodPost, "/api/transactions", map[string]any{"item": "coffee", "cost": 4.5})
	created := decodeBody[models.Transaction](t, w)

	w = doJSON(t, s, http.MethodPut, "/api/transactions/"+created.ID.Hex(), map[string]any{"cost": 5.0})
	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody[map[string]string](t, w)
	assert.Equal(t, "Transaction updated successfully", body["message"])
}

func TestDeleteTransaction(t *testing.T) {
	st := &fakeStore{}
	s := newTestServer(st, nil)

	w := doJSON(t, s, http.MethodPost, "/api/transactions", map[string]any{"item": "coffee", "cost": 4.5})
	created := decodeBody[models.Transaction](t, w)

	w = doJSON(t, s, http.MethodDelete, "/api/transactions/"+created.ID.Hex(), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, s, http.MethodDelete, "/api/transactions/65f1b2c3d4e5f6a7b8c9d0e1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestParseExpenseUsesHostedModel(t *testing.T) {
	aiClient := &fakeAI{parsed: &ai.ParsedResult{
		Amount: decimal.RequireFromString("15"),
		Item:   "lunch at cafe",
	}}
	s := newTestServer(&fakeStore{}, aiClient)

	w := doJSON(t, s, http.MethodPost, "/api/parse-expense", map[string]string{
		"text": "I spent $15 on lunch at a cafe yesterday",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	body := decodeBody[parseExpenseResponse](t, w)
	assert.Equal(t, 15.0, body.Amount)
	assert.Equal(t, "lunch at cafe", body.Item)

	date, err := time.Parse(time.RFC3339, body.Date)
	assert.NoError(t, err)
	assert.Equal(t, 12, date.Day(), "date comes from the local resolver, not the model")
}

func TestParseExpenseFallsBackOffline(t *testing.T) {
	aiClient := &fakeAI{parseErr: errors.New("model unavailable")}
	s := newTestServer(&fakeStore{}, aiClient)

	w := doJSON(t, s, http.MethodPost, "/api/parse-expense", map[string]string{
		"text": "paid 25.50 for groceries",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	body := decodeBody[parseExpenseResponse](t, w)
	assert.Equal(t, 25.5, body.Amount)
	assert.Equal(t, "Groceries", body.Item)
}

func TestParseExpenseOfflineWithoutModel(t *testing.T) {
	s := newTestServer(&fakeStore{}, nil)

	w := doJSON(t, s, http.MethodPost, "/api/parse-expense", map[string]string{
		"text": "12 bucks parking",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	body := decodeBody[parseExpenseResponse](t, w)
	assert.Equal(t, 12.0, body.Amount)
	assert.Equal(t, "Parking", body.Item)
}

func TestParseExpenseRejectsBadInput(t *testing.T) {
	s := newTestServer(&fakeStore{}, nil)

	w := doJSON(t, s, http.MethodPost, "/api/parse-expense", map[string]string{"text": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, s, http.MethodPost, "/api/parse-expense", map[string]string{"text": "bought some stuff"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCategorizeEndpoint(t *testing.T) {
	s := newTestServer(&fakeStore{}, nil)

	w := doJSON(t, s, http.MethodPost, "/api/categorize", map[string]string{"item": "coffee at starbucks"})
	assert.Equal(t, http.StatusOK, w.Code)

	flags := decodeBody[models.CategoryFlags](t, w)
	assert.True(t, flags.IsFoodDrink)
	assert.Equal(t, 1, flags.SetCount())

	w = doJSON(t, s, http.MethodPost, "/api/categorize", map[string]string{"item": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTranscribe(t *testing.T) {
	aiClient := &fakeAI{transcript: "I spent fifteen dollars on lunch"}
	s := newTestServer(&fakeStore{}, aiClient)

	w := httptest.NewRecorder()
	s.ServeHTTP(w, multipartAudioRequest(t, "clip.webm", "fake audio bytes"))
	assert.Equal(t, http.StatusOK, w.Code)

	body := decodeBody[map[string]string](t, w)
	assert.Equal(t, "I spent fifteen dollars on lunch", body["text"])
}

func TestTranscribeUnsupportedProvider(t *testing.T) {
	aiClient := &fakeAI{transcribeErr: ai.ErrUnsupported}
	s := newTestServer(&fakeStore{}, aiClient)

	w := httptest.NewRecorder()
	s.ServeHTTP(w, multipartAudioRequest(t, "clip.webm", "fake audio bytes"))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestTranscribeUpstreamFailure(t *testing.T) {
	aiClient := &fakeAI{transcribeErr: errors.New("whisper down")}
	s := newTestServer(&fakeStore{}, aiClient)

	w := httptest.NewRecorder()
	s.ServeHTTP(w, multipartAudioRequest(t, "clip.webm", "fake audio bytes"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestTranscribeWithoutModel(t *testing.T) {
	s := newTestServer(&fakeStore{}, nil)

	w := httptest.NewRecorder()
	s.ServeHTTP(w, multipartAudioRequest(t, "clip.webm", "fake audio bytes"))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestTranscribeWithoutFile(t *testing.T) {
	s := newTestServer(&fakeStore{}, &fakeAI{})

	req := httptest.NewRequest(http.MethodPost, "/api/transcribe", strings.NewReader("not multipart"))
	w := httptest.NewRecorder()
	s.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func multipartAudioRequest(t *testing.T, filename, content string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("audio", filename)
	assert.NoError(t, err)
	_, err = part.Write([]byte(content))
	assert.NoError(t, err)
	assert.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/transcribe", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

// Package ai wraps the hosted transcription and chat-completion models behind
// a single Client interface with two implementations: OpenAI (Whisper plus a
// chat model, as the original deployment) and Gemini (text-only). Every call
// is one blocking round trip; there are no retries and no streaming. Callers
// treat any error as a signal to fall back to the deterministic offline path.
package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrUnsupported is returned by providers that cannot serve an operation,
// e.g. audio transcription on a text-only provider.
var ErrUnsupported = errors.New("operation not supported by this provider")

// ParsedResult is the JSON object the parse prompt instructs the model to
// emit: a positive amount and a short item description.
type ParsedResult struct {
	Amount decimal.Decimal `json:"amount"`
	Item   string          `json:"item"`
}

// Client is the hosted-AI accessor. Implementations are unreliable by
// contract: malformed output and network failures surface as errors so the
// caller can substitute the offline path.
type Client interface {
	// Transcribe converts one audio payload to plain text.
	Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error)

	// ParseExpense extracts {amount, item} from a free-text utterance.
	ParseExpense(ctx context.Context, text string) (*ParsedResult, error)

	// CategorizeItem maps an item description to one category label. The
	// label is returned as the model produced it (lowercased and trimmed);
	// validation is the caller's concern.
	CategorizeItem(ctx context.Context, item string) (string, error)

	// Close releases provider resources.
	Close() error
}

const parseExpensePrompt = `You are an expense parser. Given a text about an expense, extract and return ONLY a JSON object with "amount" (number) and "item" (string, 2-4 words describing what was purchased). The item should be a clean, concise description.

Examples:
- "I spent $15 on lunch at a cafe" -> {"amount": 15, "item": "lunch at cafe"}
- "Paid $25.50 for groceries" -> {"amount": 25.50, "item": "groceries"}
- "$8 coffee this morning" -> {"amount": 8, "item": "coffee"}
- "Bus fare was $3.25" -> {"amount": 3.25, "item": "bus fare"}

Return ONLY the JSON object, no explanation.`

const categorizePrompt = `You are an expense categorizer. Given an item, return ONLY the category name from this list: grocery, entertainment, transportation, food_drink, shopping, utilities, healthcare, education, other. Return only one word, no explanation.`

// decodeParsedResult extracts the single JSON object the parse prompt asks
// for from a model response. Models occasionally wrap the object in code
// fences or prose, so everything outside the outermost braces is discarded.
func decodeParsedResult(response string) (*ParsedResult, error) {
	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON object in model response %q", response)
	}

	var result ParsedResult
	if err := json.Unmarshal([]byte(response[start:end+1]), &result); err != nil {
		return nil, fmt.Errorf("decoding model response: %w", err)
	}
	if !result.Amount.IsPositive() {
		return nil, fmt.Errorf("model response has no positive amount")
	}
	if strings.TrimSpace(result.Item) == "" {
		return nil, fmt.Errorf("model response has no item")
	}
	result.Item = strings.TrimSpace(result.Item)
	return &result, nil
}

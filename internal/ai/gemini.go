package ai

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"spendscribe/internal/logging"
)

// GeminiClient talks to the Google Gemini API. It serves the text operations
// only; transcription degrades to ErrUnsupported so the HTTP layer can answer
// 503 instead of pretending.
type GeminiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
	logger logging.Logger
}

// NewGeminiClient creates a Gemini-backed accessor.
func NewGeminiClient(ctx context.Context, apiKey, model string, logger logging.Logger) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating Gemini client: %w", err)
	}
	return &GeminiClient{
		client: client,
		model:  client.GenerativeModel(model),
		logger: logger,
	}, nil
}

// Transcribe is not available on this provider.
func (c *GeminiClient) Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error) {
	return "", ErrUnsupported
}

// ParseExpense asks the model to emit one {amount, item} JSON object.
func (c *GeminiClient) ParseExpense(ctx context.Context, text string) (*ParsedResult, error) {
	content, err := c.generate(ctx, parseExpensePrompt+"\n\nText: "+text)
	if err != nil {
		return nil, err
	}
	return decodeParsedResult(content)
}

// CategorizeItem asks the model for a single category label.
func (c *GeminiClient) CategorizeItem(ctx context.Context, item string) (string, error) {
	content, err := c.generate(ctx, categorizePrompt+"\n\nCategorize this expense item: "+item)
	if err != nil {
		return "", err
	}
	return strings.ToLower(strings.TrimSpace(content)), nil
}

// Close releases the underlying gRPC connection.
func (c *GeminiClient) Close() error {
	return c.client.Close()
}

func (c *GeminiClient) generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("generation request: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("generation response is empty")
	}
	return strings.TrimSpace(fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])), nil
}

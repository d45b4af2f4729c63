package ai

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"spendscribe/internal/logging"
)

// OpenAIClient talks to the OpenAI API: Whisper for transcription and a chat
// model for parsing and categorization.
type OpenAIClient struct {
	client          *openai.Client
	model           string
	transcribeModel string
	logger          logging.Logger
}

// NewOpenAIClient creates an OpenAI-backed accessor.
func NewOpenAIClient(apiKey, model, transcribeModel string, logger logging.Logger) *OpenAIClient {
	return &OpenAIClient{
		client:          openai.NewClient(apiKey),
		model:           model,
		transcribeModel: transcribeModel,
		logger:          logger,
	}
}

// Transcribe sends one audio payload to Whisper and returns the transcript.
func (c *OpenAIClient) Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error) {
	// Whisper infers the container format from the file extension; browser
	// recordings often arrive named "blob".
	if filepath.Ext(filename) == "" {
		filename += ".webm"
	}

	resp, err := c.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    c.transcribeModel,
		Reader:   audio,
		FilePath: filename,
	})
	if err != nil {
		return "", fmt.Errorf("transcription request: %w", err)
	}
	return resp.Text, nil
}

// ParseExpense asks the chat model to emit one {amount, item} JSON object.
func (c *OpenAIClient) ParseExpense(ctx context.Context, text string) (*ParsedResult, error) {
	content, err := c.complete(ctx, parseExpensePrompt, text, 50)
	if err != nil {
		return nil, err
	}
	return decodeParsedResult(content)
}

// CategorizeItem asks the chat model for a single category label.
func (c *OpenAIClient) CategorizeItem(ctx context.Context, item string) (string, error) {
	content, err := c.complete(ctx, categorizePrompt, "Categorize this expense item: "+item, 10)
	if err != nil {
		return "", err
	}
	return strings.ToLower(strings.TrimSpace(content)), nil
}

// Close implements Client. The OpenAI client holds no resources to release.
func (c *OpenAIClient) Close() error { return nil }

func (c *OpenAIClient) complete(ctx context.Context, system, user string, maxTokens int) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		MaxTokens: maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("completion request: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("completion response has no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

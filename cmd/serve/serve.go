// Package serve implements the serve command, the long-running HTTP service.
package serve

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"spendscribe/cmd/root"
	"spendscribe/internal/ai"
	"spendscribe/internal/categorizer"
	"spendscribe/internal/logging"
	"spendscribe/internal/server"
	"spendscribe/internal/store"
)

var addr string

// Cmd runs the HTTP service until interrupted.
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the expense tracker HTTP service",
	RunE:  run,
}

func init() {
	Cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides SPEND_SERVER_ADDR)")
}

func run(cmd *cobra.Command, args []string) error {
	cfg := root.Cfg
	logger := root.Logger

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := store.Connect(ctx, cfg.Mongo.URI)
	if err != nil {
		return err
	}
	defer client.Disconnect(context.Background())

	coll := client.Database(cfg.Mongo.Database).Collection(cfg.Mongo.Collection)
	txStore := store.NewTransactionStore(coll, logger)

	aiClient, err := newAIClient(ctx, logger)
	if err != nil {
		return err
	}
	if aiClient != nil {
		defer aiClient.Close()
	}

	keywords := categorizer.NewKeywordCategorizerFromFile(cfg.Categories.File, logger)
	var catAI categorizer.AIClient
	if aiClient != nil {
		catAI = aiClient
	}
	cat := categorizer.New(catAI, keywords, logger)

	srv := &http.Server{
		Addr:    listenAddr(),
		Handler: server.New(txStore, aiClient, cat, logger),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.WithField("addr", srv.Addr).Info("HTTP service listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP service: %w", err)
		}
	case <-ctx.Done():
		logger.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
	}
	return nil
}

func listenAddr() string {
	if addr != "" {
		return addr
	}
	return root.Cfg.Server.Addr
}

// newAIClient builds the configured hosted-AI accessor, or nil when AI is
// disabled so the service runs fully offline.
func newAIClient(ctx context.Context, logger logging.Logger) (ai.Client, error) {
	cfg := root.Cfg.AI
	if !cfg.Enabled {
		logger.Info("Hosted AI disabled, running offline only")
		return nil, nil
	}

	logger.WithField(logging.FieldProvider, cfg.Provider).Info("Hosted AI enabled")
	switch cfg.Provider {
	case "openai":
		return ai.NewOpenAIClient(cfg.APIKey, cfg.Model, cfg.TranscribeModel, logger), nil
	case "gemini":
		return ai.NewGeminiClient(ctx, cfg.APIKey, cfg.Model, logger)
	default:
		return nil, fmt.Errorf("unknown AI provider %q", cfg.Provider)
	}
}

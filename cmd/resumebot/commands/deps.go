// ABOUTME: Shared dependency wiring for CLI commands
// ABOUTME: Clients are constructed once per process and injected downstream
package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/ne246/nevienudugamaresume/internal/chat"
	"github.com/ne246/nevienudugamaresume/internal/config"
	"github.com/ne246/nevienudugamaresume/internal/llm"
	"github.com/ne246/nevienudugamaresume/internal/vectordb"
)

// loadConfig loads .env (if present) and the validated configuration.
// A missing required value is fatal: the command must not proceed.
func loadConfig() (*config.Config, error) {
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("configuration: %w", err)
	}
	return cfg, nil
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}

// buildClients constructs the process-wide upstream clients.
func buildClients(cfg *config.Config) (*llm.Client, *vectordb.Client, error) {
	llmClient, err := llm.NewClient(llm.ClientConfig{
		APIKey:         cfg.OpenAIKey,
		ChatModel:      cfg.ChatModel,
		EmbeddingModel: cfg.EmbeddingModel,
		Dimension:      cfg.EmbeddingDimension,
		Timeout:        cfg.Timeout,
		MaxRetries:     cfg.MaxRetries,
		RetryDelay:     cfg.RetryDelay,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("openai client: %w", err)
	}

	index, err := vectordb.New(vectordb.Config{
		Endpoint:   cfg.VectorDBEndpoint,
		APIKey:     cfg.VectorDBAPIKey,
		Namespace:  cfg.Namespace,
		Collection: cfg.Collection,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("vector db client: %w", err)
	}

	return llmClient, index, nil
}

// buildChatService wires the query-time pipeline on top of the clients.
func buildChatService(cfg *config.Config, llmClient *llm.Client, index *vectordb.Client,
	logger *slog.Logger) (*chat.Service, *chat.Retriever) {

	retriever := chat.NewRetriever(llmClient, index, cfg.TopK, logger)
	generator := chat.GeneratorFunc(func(ctx context.Context, systemPrompt, userMessage string) (chat.TokenStream, error) {
		return llmClient.StreamChat(ctx, systemPrompt, userMessage)
	})
	return chat.NewService(retriever, generator, logger), retriever
}

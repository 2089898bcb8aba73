// ABOUTME: Chat service composing retrieval, prompt assembly and generation
// ABOUTME: One stateless flow per request; clients are injected once at start
package chat

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ne246/nevienudugamaresume/internal/models"
)

// TokenStream is a lazy, finite, non-restartable sequence of generated text
// fragments. Recv returns io.EOF after the final fragment.
type TokenStream interface {
	Recv() (string, error)
	Close() error
}

// Generator starts a streaming chat completion.
type Generator interface {
	StreamChat(ctx context.Context, systemPrompt, userMessage string) (TokenStream, error)
}

// GeneratorFunc adapts a plain function to the Generator interface.
type GeneratorFunc func(ctx context.Context, systemPrompt, userMessage string) (TokenStream, error)

// StreamChat calls f.
func (f GeneratorFunc) StreamChat(ctx context.Context, systemPrompt, userMessage string) (TokenStream, error) {
	return f(ctx, systemPrompt, userMessage)
}

// ContextRetriever produces the grounding context for a user message.
type ContextRetriever interface {
	Retrieve(ctx context.Context, latestUserMessage string) (string, error)
}

// Service drives one chat turn end to end.
type Service struct {
	retriever ContextRetriever
	generator Generator
	logger    *slog.Logger
}

// NewService wires the per-turn pipeline.
func NewService(retriever ContextRetriever, generator Generator, logger *slog.Logger) *Service {
	return &Service{
		retriever: retriever,
		generator: generator,
		logger:    logger,
	}
}

// Stream runs retrieval and prompt assembly for the newest user turn and
// starts the generation stream. Only the latest message is embedded and
// sent to the model; prior turns are not replayed. The stream is bound to
// ctx, so a disconnecting client cancels the upstream call.
func (s *Service) Stream(ctx context.Context, messages []models.Message) (TokenStream, error) {
	if len(messages) == 0 {
		return nil, errors.New("no messages in request")
	}
	latest := messages[len(messages)-1].Content

	docContext, err := s.retriever.Retrieve(ctx, latest)
	if err != nil {
		return nil, err
	}
	if docContext == "" {
		s.logger.Debug("answering without retrieval context")
	}

	systemPrompt := BuildSystemPrompt(docContext)
	return s.generator.StreamChat(ctx, systemPrompt, latest)
}

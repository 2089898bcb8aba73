// ABOUTME: OpenAI client for embeddings and streaming chat completions
// ABOUTME: text-embedding-3-small for embeddings, gpt-4.1-mini for generation (configurable)
package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/ne246/nevienudugamaresume/internal/util"
)

// ErrDimensionMismatch means the embedding provider returned a vector whose
// dimension does not match the configured index dimension. This is a fatal
// configuration error, not a transient upstream failure.
var ErrDimensionMismatch = errors.New("embedding dimension mismatch")

// ClientConfig holds configuration for the OpenAI client
type ClientConfig struct {
	APIKey         string
	ChatModel      string
	EmbeddingModel string
	Dimension      int
	Timeout        time.Duration
	MaxRetries     int
	RetryDelay     time.Duration
}

// Client wraps the OpenAI API client with retry logic for embeddings.
type Client struct {
	client         *openai.Client
	chatModel      string
	embeddingModel openai.EmbeddingModel
	dimension      int
	timeout        time.Duration
	maxRetries     int
	retryDelay     time.Duration
}

// NewClient creates a new OpenAI client with the given configuration.
func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}
	if cfg.Dimension <= 0 {
		return nil, fmt.Errorf("embedding dimension must be positive, got %d", cfg.Dimension)
	}

	return &Client{
		client:         openai.NewClient(cfg.APIKey),
		chatModel:      cfg.ChatModel,
		embeddingModel: openai.EmbeddingModel(cfg.EmbeddingModel),
		dimension:      cfg.Dimension,
		timeout:        cfg.Timeout,
		maxRetries:     cfg.MaxRetries,
		retryDelay:     cfg.RetryDelay,
	}, nil
}

// Embed returns the embedding vector for text. Transient upstream failures
// are retried with backoff; a dimension mismatch fails immediately with
// ErrDimensionMismatch since no retry can fix it.
func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	var vector []float32

	err := util.Do(ctx, c.maxRetries, c.retryDelay, func() error {
		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		defer cancel()

		resp, err := c.client.CreateEmbeddings(callCtx, openai.EmbeddingRequestStrings{
			Input: []string{text},
			Model: c.embeddingModel,
		})
		if err != nil {
			return err
		}
		if len(resp.Data) == 0 {
			return errors.New("no embeddings returned")
		}

		got := resp.Data[0].Embedding
		if len(got) != c.dimension {
			return &util.Permanent{Err: fmt.Errorf("%w: model %q returned %d dimensions, index expects %d",
				ErrDimensionMismatch, c.embeddingModel, len(got), c.dimension)}
		}

		vector = got
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("create embedding: %w", err)
	}
	return vector, nil
}

// StreamChat starts a streaming chat completion carrying exactly two
// messages: the assembled system prompt and the latest user turn. The
// returned stream is bound to ctx, so cancelling the request context
// also cancels the upstream generation call.
func (c *Client) StreamChat(ctx context.Context, systemPrompt, userMessage string) (*ChatStream, error) {
	stream, err := c.client.CreateChatCompletionStream(ctx, openai.ChatCompletionRequest{
		Model: c.chatModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userMessage},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create chat completion stream: %w", err)
	}
	return &ChatStream{stream: stream}, nil
}

// ChatStream is a lazy, finite, non-restartable sequence of text fragments.
// Recv returns io.EOF when generation completes.
type ChatStream struct {
	stream *openai.ChatCompletionStream
}

// Recv returns the next text fragment from the stream.
func (s *ChatStream) Recv() (string, error) {
	resp, err := s.stream.Recv()
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Delta.Content, nil
}

// Close releases the underlying connection.
func (s *ChatStream) Close() error {
	return s.stream.Close()
}

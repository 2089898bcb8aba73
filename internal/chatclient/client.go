// ABOUTME: Client-side stream consumer for the chat endpoint
// ABOUTME: Accumulates fragments, keeps partials on cancel, rolls back on error
package chatclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/ne246/nevienudugamaresume/internal/models"
)

// ErrBusy is returned when a send is attempted while another request is in
// flight. Only one request per session is supported.
var ErrBusy = errors.New("a request is already in flight")

// Client posts chat turns to the server and returns the response stream.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a chat client for the given server base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		// No client timeout: the stream lives as long as generation runs;
		// cancellation happens through the request context.
		httpClient: &http.Client{},
	}
}

func (c *Client) stream(ctx context.Context, messages []models.Message) (io.ReadCloser, error) {
	body, err := json.Marshal(models.ChatRequest{Messages: messages})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("chat request failed with status %d", resp.StatusCode)
	}
	return resp.Body, nil
}

// Session holds the visible conversation for one client. Messages are
// append-only and live only as long as the session.
type Session struct {
	client   *Client
	messages []models.Message
	busy     bool
}

// NewSession creates an empty session bound to a client.
func NewSession(client *Client) *Session {
	return &Session{client: client}
}

// Messages returns a copy of the visible conversation.
func (s *Session) Messages() []models.Message {
	out := make([]models.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Clear resets the visible conversation. No network call is made.
func (s *Session) Clear() {
	s.messages = nil
}

// Send posts the full history plus text as the newest user turn and consumes
// the streamed answer. onUpdate, if non-nil, is called with the accumulated
// assistant text every time new fragments arrive; this is the only point
// where partial output becomes visible.
//
// Cancelling ctx aborts the network read: the partial text accumulated so
// far is kept as the final assistant message and no error is returned. Any
// other failure rolls the placeholder assistant message back.
func (s *Session) Send(ctx context.Context, text string, onUpdate func(partial string)) (string, error) {
	if s.busy {
		return "", ErrBusy
	}
	s.busy = true
	defer func() { s.busy = false }()

	s.messages = append(s.messages, models.Message{Role: models.RoleUser, Content: text})

	body, err := s.client.stream(ctx, s.messages)
	if err != nil {
		if ctx.Err() != nil {
			// User-initiated cancellation before any output arrived.
			return "", nil
		}
		return "", err
	}
	defer body.Close()

	// Placeholder assistant message, updated as fragments arrive.
	s.messages = append(s.messages, models.Message{Role: models.RoleAssistant})
	last := len(s.messages) - 1

	var accum strings.Builder
	buf := make([]byte, 4096)
	for {
		n, err := body.Read(buf)
		if n > 0 {
			accum.Write(buf[:n])
			s.messages[last].Content = accum.String()
			if onUpdate != nil {
				onUpdate(accum.String())
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return accum.String(), nil
			}
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				// Cancelled mid-stream: keep what was received.
				return accum.String(), nil
			}
			// Discard the half-written assistant message.
			s.messages = s.messages[:last]
			return "", err
		}
	}
}

// ABOUTME: Chat endpoint handler streaming generated text to the caller
// ABOUTME: Fragments are flushed as they arrive; no buffering of the answer
package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/ne246/nevienudugamaresume/internal/chat"
	"github.com/ne246/nevienudugamaresume/internal/models"
)

// internalErrorBody is the fixed plain-text body for uncaught failures.
const internalErrorBody = "Internal Server Error"

// ChatService starts the per-turn generation stream.
type ChatService interface {
	Stream(ctx context.Context, messages []models.Message) (chat.TokenStream, error)
}

// ChatHandler handles POST /chat.
type ChatHandler struct {
	service ChatService
	logger  *slog.Logger
}

// NewChatHandler creates the handler with its injected chat service.
func NewChatHandler(service ChatService, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{service: service, logger: logger}
}

// ServeChat decodes the message history, starts the generation stream and
// forwards fragments as a chunked plain-text body. The request context is
// passed to the upstream call, so a client disconnect cancels generation.
// Failures before the first byte produce a 500 with a fixed body; failures
// mid-stream truncate the response, which the client treats as an error.
func (h *ChatHandler) ServeChat(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("bad chat request", "error", err)
		http.Error(w, internalErrorBody, http.StatusInternalServerError)
		return
	}

	ctx := r.Context()
	stream, err := h.service.Stream(ctx, req.Messages)
	if err != nil {
		h.logger.Error("chat stream failed to start", "error", err)
		http.Error(w, internalErrorBody, http.StatusInternalServerError)
		return
	}
	defer stream.Close()

	flusher, ok := w.(http.Flusher)
	if !ok {
		h.logger.Error("response writer does not support streaming")
		http.Error(w, internalErrorBody, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	for {
		fragment, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return
		}
		if err != nil {
			if ctx.Err() != nil {
				h.logger.Info("client disconnected mid-stream")
				return
			}
			// Already committed to 200; the truncated body is the
			// only failure signal available to the client.
			h.logger.Error("generation failed mid-stream", "error", err)
			return
		}
		if fragment == "" {
			continue
		}
		if _, err := w.Write([]byte(fragment)); err != nil {
			h.logger.Info("client write failed", "error", err)
			return
		}
		flusher.Flush()
	}
}

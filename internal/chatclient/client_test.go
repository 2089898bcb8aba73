// ABOUTME: Tests for the client stream consumer
// ABOUTME: Covers accumulation, cancellation keeping partials, and rollback
package chatclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/ne246/nevienudugamaresume/internal/models"
)

// streamingServer writes each fragment with a flush, pausing between them,
// and records the request bodies it received.
type streamingServer struct {
	fragments []string
	pause     time.Duration
	release   chan struct{} // if non-nil, blocks before each fragment past the first two

	mu       sync.Mutex
	requests []models.ChatRequest
}

func (s *streamingServer) handler(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	json.NewDecoder(r.Body).Decode(&req)
	s.mu.Lock()
	s.requests = append(s.requests, req)
	s.mu.Unlock()

	flusher := w.(http.Flusher)
	w.WriteHeader(http.StatusOK)
	for i, frag := range s.fragments {
		if s.release != nil && i >= 2 {
			select {
			case <-s.release:
			case <-r.Context().Done():
				return
			}
		}
		w.Write([]byte(frag))
		flusher.Flush()
		if s.pause > 0 {
			time.Sleep(s.pause)
		}
	}
}

func TestSend_AccumulatesFullAnswer(t *testing.T) {
	backend := &streamingServer{fragments: []string{"Nev ", "built ", "this project."}}
	srv := httptest.NewServer(http.HandlerFunc(backend.handler))
	defer srv.Close()

	session := NewSession(NewClient(srv.URL))

	var updates []string
	got, err := session.Send(context.Background(), "What projects has Nev built?", func(partial string) {
		updates = append(updates, partial)
	})
	if err != nil {
		t.Fatalf("Send() failed: %v", err)
	}
	if got != "Nev built this project." {
		t.Errorf("answer = %q, want full concatenation", got)
	}
	if len(updates) == 0 {
		t.Fatal("onUpdate was never called")
	}
	if updates[len(updates)-1] != "Nev built this project." {
		t.Errorf("last update = %q, want full answer", updates[len(updates)-1])
	}

	msgs := session.Messages()
	if len(msgs) != 2 {
		t.Fatalf("len(messages) = %d, want user + assistant", len(msgs))
	}
	if msgs[1].Role != models.RoleAssistant || msgs[1].Content != "Nev built this project." {
		t.Errorf("assistant message = %+v", msgs[1])
	}
}

func TestSend_PostsFullHistory(t *testing.T) {
	backend := &streamingServer{fragments: []string{"ok"}}
	srv := httptest.NewServer(http.HandlerFunc(backend.handler))
	defer srv.Close()

	session := NewSession(NewClient(srv.URL))
	if _, err := session.Send(context.Background(), "first", nil); err != nil {
		t.Fatalf("first Send() failed: %v", err)
	}
	if _, err := session.Send(context.Background(), "second", nil); err != nil {
		t.Fatalf("second Send() failed: %v", err)
	}

	backend.mu.Lock()
	defer backend.mu.Unlock()
	second := backend.requests[1]
	// user "first", assistant "ok", user "second"
	if len(second.Messages) != 3 {
		t.Fatalf("second request carried %d messages, want 3", len(second.Messages))
	}
	if second.Messages[2].Content != "second" || second.Messages[2].Role != models.RoleUser {
		t.Errorf("last message = %+v, want the newest user turn", second.Messages[2])
	}
}

func TestSend_CancelKeepsPartialWithoutError(t *testing.T) {
	backend := &streamingServer{
		fragments: []string{"Nev ", "built ", "never-delivered"},
		release:   make(chan struct{}),
	}
	srv := httptest.NewServer(http.HandlerFunc(backend.handler))
	defer srv.Close()

	session := NewSession(NewClient(srv.URL))
	ctx, cancel := context.WithCancel(context.Background())

	received := make(chan struct{})
	var once sync.Once
	go func() {
		// Cancel once the first two fragments are visible.
		<-received
		cancel()
	}()

	got, err := session.Send(ctx, "What projects has Nev built?", func(partial string) {
		if partial == "Nev built " {
			once.Do(func() { close(received) })
		}
	})
	if err != nil {
		t.Fatalf("cancellation must not surface an error, got: %v", err)
	}
	if got != "Nev built " {
		t.Errorf("partial = %q, want %q", got, "Nev built ")
	}

	msgs := session.Messages()
	if len(msgs) != 2 {
		t.Fatalf("len(messages) = %d, want user + partial assistant", len(msgs))
	}
	if msgs[1].Content != "Nev built " {
		t.Errorf("final assistant message = %q, want retained partial", msgs[1].Content)
	}
}

func TestSend_ServerErrorRollsBackPlaceholder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}))
	defer srv.Close()

	session := NewSession(NewClient(srv.URL))
	if _, err := session.Send(context.Background(), "question", nil); err == nil {
		t.Fatal("Send() succeeded against a failing server, want error")
	}

	for _, m := range session.Messages() {
		if m.Role == models.RoleAssistant {
			t.Error("no assistant message should remain after a failed request")
		}
	}
}

func TestSend_BusyRejectsConcurrentSend(t *testing.T) {
	session := NewSession(NewClient("http://127.0.0.1:0"))
	session.busy = true

	if _, err := session.Send(context.Background(), "q", nil); err != ErrBusy {
		t.Errorf("err = %v, want ErrBusy", err)
	}
}

func TestClear_ResetsConversationWithoutNetwork(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte("hello"))
	}))
	defer srv.Close()

	session := NewSession(NewClient(srv.URL))
	if _, err := session.Send(context.Background(), "hi", nil); err != nil {
		t.Fatalf("Send() failed: %v", err)
	}

	before := calls
	session.Clear()

	if len(session.Messages()) != 0 {
		t.Error("Clear() must empty the visible conversation")
	}
	if calls != before {
		t.Error("Clear() must not perform a network call")
	}
}

// ABOUTME: Conversation message types shared by the chat service and client
// ABOUTME: Messages are an ordered, append-only sequence for one session
package models

// Message roles, matching the wire format of the chat endpoint.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single conversation turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the body of POST /chat. The last element of Messages is
// the newest user turn; only that turn is embedded for retrieval.
type ChatRequest struct {
	Messages []Message `json:"messages"`
}

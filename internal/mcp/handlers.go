// ABOUTME: MCP tool handler implementations for the resume chatbot
// ABOUTME: search_resume returns ranked excerpts, ask_resume runs the full pipeline
package mcp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ne246/nevienudugamaresume/internal/chat"
	"github.com/ne246/nevienudugamaresume/internal/models"
)

// Searcher returns ranked chunks for a query.
type Searcher interface {
	Search(ctx context.Context, query string, k int) ([]models.SearchResult, error)
}

// ChatService runs the grounded generation pipeline.
type ChatService interface {
	Stream(ctx context.Context, messages []models.Message) (chat.TokenStream, error)
}

// Handlers contains the handler functions for the resume tools.
type Handlers struct {
	searcher Searcher
	chat     ChatService
}

// SearchResume handles the search_resume tool.
func (h *Handlers) SearchResume(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query argument is required and must be a string"), nil
	}
	maxResults := request.GetInt("max_results", 5)

	results, err := h.searcher.Search(ctx, query, maxResults)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}
	if len(results) == 0 {
		return mcp.NewToolResultText("No matching excerpts found."), nil
	}

	var sb strings.Builder
	for i, res := range results {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		fmt.Fprintf(&sb, "[%d] (score %.3f, %s)\n%s", i+1, res.Score, res.SourceURL, res.Text)
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// AskResume handles the ask_resume tool. The streamed answer is collected
// into one result; MCP tool calls have no incremental delivery.
func (h *Handlers) AskResume(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	question, err := request.RequireString("question")
	if err != nil {
		return mcp.NewToolResultError("question argument is required and must be a string"), nil
	}

	stream, err := h.chat.Stream(ctx, []models.Message{{Role: models.RoleUser, Content: question}})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("generation failed: %v", err)), nil
	}
	defer stream.Close()

	var sb strings.Builder
	for {
		fragment, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("generation failed mid-answer: %v", err)), nil
		}
		sb.WriteString(fragment)
	}
	return mcp.NewToolResultText(sb.String()), nil
}

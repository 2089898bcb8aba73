// ABOUTME: MCP tool definitions and registration for the resume chatbot
// ABOUTME: Exposes search_resume and ask_resume over stdio for LLM agents
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// RegisterTools registers the resume tools with the server.
func RegisterTools(server *mcpserver.MCPServer, searcher Searcher, chatService ChatService) *Handlers {
	handlers := &Handlers{
		searcher: searcher,
		chat:     chatService,
	}

	server.AddTool(mcp.Tool{
		Name:        "search_resume",
		Description: "Search Nev's resume and notes by semantic similarity and return the most relevant excerpts.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Search query",
				},
				"max_results": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of excerpts to return (default: 5)",
					"default":     5,
				},
			},
			Required: []string{"query"},
		},
	}, handlers.SearchResume)

	server.AddTool(mcp.Tool{
		Name:        "ask_resume",
		Description: "Ask a question about Nev's resume and experience and get a grounded answer.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"question": map[string]interface{}{
					"type":        "string",
					"description": "Question to answer from the resume corpus",
				},
			},
			Required: []string{"question"},
		},
	}, handlers.AskResume)

	return handlers
}

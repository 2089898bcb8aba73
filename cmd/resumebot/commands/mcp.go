// ABOUTME: MCP command exposing the resume corpus to LLM agents
// ABOUTME: Serves search_resume and ask_resume tools over stdio
package commands

import (
	"github.com/spf13/cobra"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/ne246/nevienudugamaresume/internal/mcp"
)

// NewMCPCmd creates the MCP command.
func NewMCPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents.

Runs the resume chatbot as an MCP (Model Context Protocol) server over
stdio, so agents can search the resume corpus or ask grounded questions.`,
		RunE: runMCP,
		Example: `  # Configure in an MCP client:
  # {
  #   "mcpServers": {
  #     "resume": { "command": "resumebot", "args": ["mcp"] }
  #   }
  # }`,
	}
}

func runMCP(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger := newLogger()
	llmClient, index, err := buildClients(cfg)
	if err != nil {
		return err
	}
	defer index.Close()

	svc, retriever := buildChatService(cfg, llmClient, index, logger)

	server := mcpserver.NewMCPServer("Nev Resume Chatbot", versionInfo.Version)
	mcp.RegisterTools(server, retriever, svc)

	logger.Info("MCP server starting on stdio")
	return mcpserver.ServeStdio(server)
}

// ABOUTME: Serve command running the HTTP chat server
// ABOUTME: Clients are initialized once at startup and shared across requests
package commands

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ne246/nevienudugamaresume/internal/server"
)

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the chat HTTP server",
		Long: `Start the chat HTTP server.

POST /chat accepts {"messages": [{"role", "content"}, ...]} and streams
the assistant's answer as plain text while it is generated.`,
		RunE: runServe,
	}
}

func runServe(cmd *cobra.Command, args []string) error {
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

	svc, _ := buildChatService(cfg, llmClient, index, logger)
	handler := server.NewChatHandler(svc, logger)
	srv := server.New(cfg.ListenAddr, handler, logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return srv.Run(ctx)
}

// ABOUTME: Root CLI command wiring all subcommands
// ABOUTME: serve/chat run the chatbot, rebuild/clean maintain the index
package commands

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command with all subcommands registered.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resumebot",
		Short: "Retrieval-augmented chatbot for Nev's resume",
		Long: `resumebot answers questions about Nevien Udugama's resume and notes.

An offline ingestion run (rebuild) fetches the source documents, splits
them into chunks, embeds each chunk and stores the vectors in a hosted
index. At chat time the newest user message is embedded, the most similar
chunks are retrieved, and a grounded answer is streamed back.`,
		SilenceUsage: true,
	}

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewChatCmd())
	cmd.AddCommand(NewRebuildCmd())
	cmd.AddCommand(NewCleanCmd())
	cmd.AddCommand(NewMCPCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the CLI.
func Execute() error {
	return NewRootCmd().Execute()
}

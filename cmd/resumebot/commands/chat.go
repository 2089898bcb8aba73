// ABOUTME: Interactive chat command consuming the streamed answer
// ABOUTME: Ctrl+C cancels the current turn and keeps the partial answer
package commands

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ne246/nevienudugamaresume/internal/chatclient"
)

var chatAddr string

// NewChatCmd creates the interactive chat command.
func NewChatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Chat with the resume bot from the terminal",
		Long: `Chat with the resume bot from the terminal.

Each turn sends the full visible conversation to the server and renders
the answer as it streams in. Ctrl+C during a turn cancels it and keeps
the partial answer. Type "clear" to reset the conversation (no network
call), "exit" or "quit" to leave.`,
		RunE: runChat,
	}

	cmd.Flags().StringVar(&chatAddr, "addr", "http://127.0.0.1:8080", "Chat server base URL")
	return cmd
}

func runChat(cmd *cobra.Command, args []string) error {
	session := chatclient.NewSession(chatclient.NewClient(chatAddr))
	scanner := bufio.NewScanner(os.Stdin)
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "Ask about Nev's resume. \"clear\" resets, \"exit\" quits.")

	for {
		fmt.Fprint(out, "you> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		text := strings.TrimSpace(scanner.Text())
		switch {
		case text == "":
			continue
		case text == "exit" || text == "quit":
			return nil
		case strings.EqualFold(text, "clear"):
			session.Clear()
			fmt.Fprintln(out, "(conversation cleared)")
			continue
		}

		// Scope the interrupt handler to this turn so Ctrl+C cancels the
		// in-flight request instead of killing the CLI.
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)

		fmt.Fprint(out, "nev> ")
		printed := 0
		_, err := session.Send(ctx, text, func(partial string) {
			fmt.Fprint(out, partial[printed:])
			printed = len(partial)
		})
		stop()
		fmt.Fprintln(out)

		if err != nil {
			if errors.Is(err, chatclient.ErrBusy) {
				continue
			}
			fmt.Fprintf(out, "(request failed: %v)\n", err)
		}
	}
}

// ABOUTME: Clean command for destructive index maintenance
// ABOUTME: Drops the collection or deletes all documents while keeping it
package commands

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var cleanMode string

// NewCleanCmd creates the clean command.
func NewCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove ingested data from the vector index",
		Long: `Remove ingested data from the vector index.

Modes:
  drop    delete the entire collection (default)
  delete  keep the collection but remove all documents`,
		RunE: runClean,
	}

	cmd.Flags().StringVar(&cleanMode, "mode", "drop", "Cleanup mode: drop or delete")
	return cmd
}

func runClean(cmd *cobra.Command, args []string) error {
	if cleanMode != "drop" && cleanMode != "delete" {
		return fmt.Errorf("unknown mode %q (want drop or delete)", cleanMode)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	_, index, err := buildClients(cfg)
	if err != nil {
		return err
	}
	defer index.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	if cleanMode == "drop" {
		if err := index.Drop(ctx); err != nil {
			return err
		}
		fmt.Fprintln(out, "Dropped collection", cfg.Collection)
		return nil
	}

	if err := index.DeleteAll(ctx); err != nil {
		return err
	}
	fmt.Fprintln(out, "Deleted all documents in collection", cfg.Collection)
	return nil
}

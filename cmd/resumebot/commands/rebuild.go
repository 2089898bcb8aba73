// ABOUTME: Rebuild command creating the collection and running ingestion
// ABOUTME: Upserts are content-addressed, so reruns converge instead of duplicating
package commands

import (
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ne246/nevienudugamaresume/internal/ingest"
	"github.com/ne246/nevienudugamaresume/internal/vectordb"
)

// NewRebuildCmd creates the rebuild command.
func NewRebuildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rebuild",
		Short: "Create the collection and ingest all configured sources",
		Long: `Create the collection and ingest all configured sources.

For every URL in SOURCE_URLS: fetch the text, split it into overlapping
chunks, embed each chunk and upsert it into the vector index. Sources are
processed sequentially; a failing source is skipped and reported.`,
		RunE: runRebuild,
	}
}

func runRebuild(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if len(cfg.SourceURLs) == 0 {
		return errors.New("SOURCE_URLS is empty, nothing to ingest")
	}

	metric, err := vectordb.ParseMetric(cfg.Metric)
	if err != nil {
		return err
	}

	logger := newLogger()
	llmClient, index, err := buildClients(cfg)
	if err != nil {
		return err
	}
	defer index.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := index.EnsureCollection(ctx, cfg.EmbeddingDimension, metric); err != nil {
		return err
	}

	orchestrator := ingest.NewOrchestrator(
		ingest.NewFetcher(cfg.Timeout), llmClient, index,
		cfg.SourceURLs, cfg.ChunkSize, cfg.ChunkOverlap, logger)

	stats, err := orchestrator.Run(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Ingested %d chunks from %d sources", stats.Chunks, stats.Sources-stats.FailedSources)
	if stats.FailedSources > 0 {
		fmt.Fprintf(out, " (%d sources failed)", stats.FailedSources)
	}
	fmt.Fprintln(out)
	return nil
}

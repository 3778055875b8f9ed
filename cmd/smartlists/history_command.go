package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"smartlists/internal/journal"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent refresh batches from the journal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cfg.Journal.Enabled {
				fmt.Fprintln(cmd.OutOrStdout(), "Journal is disabled in configuration; no history recorded.")
				return nil
			}

			store, err := journal.Open(cfg)
			if err != nil {
				return fmt.Errorf("open journal: %w", err)
			}
			defer store.Close()

			batches, err := store.RecentBatches(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("read journal: %w", err)
			}

			if jsonOut {
				return writeJSON(cmd, historyPayload(batches))
			}

			out := cmd.OutOrStdout()
			if len(batches) == 0 {
				fmt.Fprintln(out, "No refresh batches recorded yet.")
				return nil
			}

			headers := []string{"Started", "Batch", "URLs", "Items", "Warnings", "Duration"}
			aligns := []columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight}
			rows := make([][]string, 0, len(batches))
			for _, batch := range batches {
				rows = append(rows, []string{
					batch.StartedAt.Local().Format("2006-01-02 15:04:05"),
					shortBatchID(batch.BatchID),
					strconv.Itoa(batch.URLCount),
					strconv.Itoa(batchItemTotal(batch)),
					strconv.Itoa(len(batch.Warnings)),
					batch.FinishedAt.Sub(batch.StartedAt).Round(time.Millisecond).String(),
				})
			}
			fmt.Fprintln(out, renderTable(headers, rows, aligns))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "Maximum number of batches to show")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit batches as JSON")
	return cmd
}

type historyEntryJSON struct {
	ListURL    string `json:"list_url"`
	Source     string `json:"source"`
	TotalItems int    `json:"total_items"`
	IMDbIDs    int    `json:"imdb_ids"`
	TMDbIDs    int    `json:"tmdb_ids"`
	TVDbIDs    int    `json:"tvdb_ids"`
	Warned     bool   `json:"warned,omitempty"`
}

type historyBatchJSON struct {
	BatchID    string             `json:"batch_id"`
	StartedAt  string             `json:"started_at"`
	FinishedAt string             `json:"finished_at"`
	URLCount   int                `json:"url_count"`
	Warnings   []string           `json:"warnings,omitempty"`
	Entries    []historyEntryJSON `json:"entries"`
}

func historyPayload(batches []journal.Batch) []historyBatchJSON {
	payload := make([]historyBatchJSON, 0, len(batches))
	for _, batch := range batches {
		item := historyBatchJSON{
			BatchID:    batch.BatchID,
			StartedAt:  batch.StartedAt.UTC().Format(time.RFC3339),
			FinishedAt: batch.FinishedAt.UTC().Format(time.RFC3339),
			URLCount:   batch.URLCount,
			Warnings:   batch.Warnings,
			Entries:    make([]historyEntryJSON, 0, len(batch.Entries)),
		}
		for _, entry := range batch.Entries {
			item.Entries = append(item.Entries, historyEntryJSON{
				ListURL:    entry.ListURL,
				Source:     entry.Source,
				TotalItems: entry.TotalItems,
				IMDbIDs:    entry.IMDbIDs,
				TMDbIDs:    entry.TMDbIDs,
				TVDbIDs:    entry.TVDbIDs,
				Warned:     entry.Warned,
			})
		}
		payload = append(payload, item)
	}
	return payload
}

func batchItemTotal(batch journal.Batch) int {
	total := 0
	for _, entry := range batch.Entries {
		total += entry.TotalItems
	}
	return total
}

func shortBatchID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

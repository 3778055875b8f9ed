package main

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"smartlists/internal/config"
	"smartlists/internal/journal"
	"smartlists/internal/logging"
	"smartlists/internal/notifications"
	"smartlists/internal/refresh"
)

func newRefreshCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "refresh [url...]",
		Short: "Fetch external lists and record a refresh batch",
		Long: `Fetch every external list referenced by the configured smart lists,
or only the URLs given as arguments, and print the batch summary.
Aggregated identifier indexes stay internal; only counts and warnings
are reported.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			logger, err := refreshLogger(cfg)
			if err != nil {
				return fmt.Errorf("configure logging: %w", err)
			}

			notifier := notifications.NewService(cfg)

			var store *journal.Store
			if cfg.Journal.Enabled {
				store, err = journal.Open(cfg)
				if err != nil {
					return fmt.Errorf("open journal: %w", err)
				}
				defer store.Close()
			}

			runner, err := refresh.NewRunner(cfg, logger, refresh.Providers(cfg), notifier, store, nil)
			if err != nil {
				return err
			}

			summary, err := runner.Run(cmd.Context(), args)
			if err != nil {
				return err
			}

			if jsonOut {
				return writeJSON(cmd, refreshSummaryPayload(summary))
			}
			renderRefreshSummary(cmd.OutOrStdout(), summary)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the batch summary as JSON")
	return cmd
}

// refreshLogger writes to the log file only so command output stays
// reserved for the summary.
func refreshLogger(cfg *config.Config) (*slog.Logger, error) {
	logPath := filepath.Join(cfg.Paths.LogDir, "smartlists.log")
	return logging.New(logging.Options{
		Level:            cfg.Logging.Level,
		Format:           cfg.Logging.Format,
		OutputPaths:      []string{logPath},
		ErrorOutputPaths: []string{logPath},
	})
}

type refreshEntryJSON struct {
	ListURL     string `json:"list_url"`
	Source      string `json:"source"`
	DisplayName string `json:"display_name"`
	TotalItems  int    `json:"total_items"`
	IMDbIDs     int    `json:"imdb_ids"`
	TMDbIDs     int    `json:"tmdb_ids"`
	TVDbIDs     int    `json:"tvdb_ids"`
	Warned      bool   `json:"warned,omitempty"`
}

type refreshSummaryJSON struct {
	BatchID    string             `json:"batch_id"`
	StartedAt  string             `json:"started_at"`
	FinishedAt string             `json:"finished_at"`
	DurationMS int64              `json:"duration_ms"`
	ListCount  int                `json:"list_count"`
	Entries    []refreshEntryJSON `json:"entries"`
	Warnings   []string           `json:"warnings,omitempty"`
}

func refreshSummaryPayload(summary *refresh.Summary) refreshSummaryJSON {
	payload := refreshSummaryJSON{
		BatchID:    summary.BatchID,
		StartedAt:  summary.StartedAt.UTC().Format(time.RFC3339),
		FinishedAt: summary.FinishedAt.UTC().Format(time.RFC3339),
		DurationMS: summary.Duration.Milliseconds(),
		ListCount:  summary.ListCount,
		Entries:    make([]refreshEntryJSON, 0, len(summary.Entries)),
		Warnings:   summary.Warnings,
	}
	for _, entry := range summary.Entries {
		payload.Entries = append(payload.Entries, refreshEntryJSON{
			ListURL:     entry.ListURL,
			Source:      entry.Source,
			DisplayName: entry.DisplayName,
			TotalItems:  entry.TotalItems,
			IMDbIDs:     entry.IMDbIDs,
			TMDbIDs:     entry.TMDbIDs,
			TVDbIDs:     entry.TVDbIDs,
			Warned:      entry.Warned,
		})
	}
	return payload
}

func renderRefreshSummary(out io.Writer, summary *refresh.Summary) {
	headers := []string{"Source", "List", "Items", "IMDb", "TMDb", "TVDb", "Warned"}
	aligns := []columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight, alignLeft}

	rows := make([][]string, 0, len(summary.Entries))
	for _, entry := range summary.Entries {
		rows = append(rows, []string{
			entry.Source,
			entry.DisplayName,
			strconv.Itoa(entry.TotalItems),
			strconv.Itoa(entry.IMDbIDs),
			strconv.Itoa(entry.TMDbIDs),
			strconv.Itoa(entry.TVDbIDs),
			yesNo(entry.Warned),
		})
	}

	fmt.Fprintln(out, renderTable(headers, rows, aligns))
	fmt.Fprintf(out, "Batch %s: %d URLs in %s\n", summary.BatchID, len(summary.Entries), summary.Duration.Round(time.Millisecond))

	if len(summary.Warnings) > 0 {
		fmt.Fprintf(out, "\n%d warning(s):\n", len(summary.Warnings))
		for _, warning := range summary.Warnings {
			fmt.Fprintf(out, "  - %s\n", warning)
		}
	}
}

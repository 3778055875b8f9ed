package refresh

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"smartlists/internal/config"
	"smartlists/internal/journal"
	"smartlists/internal/lists"
	"smartlists/internal/logging"
	"smartlists/internal/notifications"
	"smartlists/internal/rules"
)

// Runner executes refresh batches: it fetches every referenced external
// list once, hands rule evaluation a read view of the results, and
// records the outcome.
type Runner struct {
	cfg      *config.Config
	logger   *slog.Logger
	agg      *lists.Aggregator
	notifier notifications.Service
	store    *journal.Store
	engine   rules.Engine
}

// NewRunner constructs a runner. store may be nil when journaling is
// disabled; engine may be nil when no rule evaluation is wired in.
func NewRunner(cfg *config.Config, logger *slog.Logger, providers []lists.Provider, notifier notifications.Service, store *journal.Store, engine rules.Engine) (*Runner, error) {
	if cfg == nil {
		return nil, errors.New("refresh requires config")
	}
	if len(providers) == 0 {
		return nil, errors.New("refresh requires at least one source adapter")
	}
	if notifier == nil {
		return nil, errors.New("refresh requires a notification service")
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Runner{
		cfg:      cfg,
		logger:   logging.NewComponentLogger(logger, "refresh"),
		agg:      lists.NewAggregator(logger, providers...),
		notifier: notifier,
		store:    store,
		engine:   engine,
	}, nil
}

// Run executes one refresh batch. With no explicit URLs it refreshes
// every URL the configured smart lists reference and runs rule
// evaluation; with explicit URLs it refreshes just those and skips
// evaluation and completion notifications, since rules may reference
// lists outside the subset.
func (r *Runner) Run(ctx context.Context, requested []string) (*Summary, error) {
	if err := r.cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	lock := flock.New(r.cfg.Refresh.LockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire refresh lock: %w", err)
	}
	if !ok {
		return nil, errors.New("another refresh is already running")
	}
	defer func() { _ = lock.Unlock() }()

	if timeout := time.Duration(r.cfg.Refresh.TimeoutSeconds) * time.Second; timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	scoped := len(requested) > 0
	urls := rules.CollectURLs(r.cfg.SmartLists)
	if scoped {
		urls = rules.CollectURLs([]config.SmartList{{ListURLs: requested}})
	}
	if len(urls) == 0 {
		return nil, errors.New("no external list urls configured")
	}

	batchID := uuid.NewString()
	startedAt := time.Now().UTC()
	r.logger.Info("refresh started",
		logging.String(logging.FieldBatchID, batchID),
		logging.Int("urls", len(urls)),
	)

	cache := lists.NewFetchCache()
	if err := r.agg.PreFetch(ctx, urls, cache); err != nil {
		r.logger.Warn("refresh aborted",
			logging.String(logging.FieldBatchID, batchID),
			logging.Error(err),
		)
		if errors.Is(err, context.DeadlineExceeded) {
			_ = r.notifier.NotifyError(context.Background(), err, "refresh")
		}
		return nil, err
	}

	warnings := append([]string(nil), cache.Warnings()...)
	if r.engine != nil && !scoped {
		source := rules.NewCacheSource(cache)
		for _, list := range r.cfg.SmartLists {
			if err := r.engine.Evaluate(ctx, list, source); err != nil {
				warnings = append(warnings, fmt.Sprintf("evaluate %s: %v", list.Name, err))
			}
		}
	}

	finishedAt := time.Now().UTC()
	summary := r.buildSummary(batchID, startedAt, finishedAt, urls, cache, warnings, scoped)

	r.recordJournal(summary)
	r.notify(summary, scoped)

	r.logger.Info("refresh completed",
		logging.String(logging.FieldBatchID, batchID),
		logging.Duration("duration", summary.Duration),
		logging.Int("warnings", len(summary.Warnings)),
	)
	return summary, nil
}

func (r *Runner) buildSummary(batchID string, startedAt, finishedAt time.Time, urls []string, cache *lists.FetchCache, warnings []string, scoped bool) *Summary {
	entries := make([]Entry, 0, len(urls))
	for _, listURL := range urls {
		entry := Entry{
			ListURL:     listURL,
			Source:      "unrecognized",
			DisplayName: displayName(listURL),
		}
		if provider := r.agg.Resolve(listURL); provider != nil {
			entry.Source = provider.Name()
		}
		if result, ok := cache.Result(listURL); ok {
			entry.TotalItems = result.TotalItems
			entry.IMDbIDs = len(result.IMDb)
			entry.TMDbIDs = len(result.TMDb)
			entry.TVDbIDs = len(result.TVDb)
		}
		lower := strings.ToLower(listURL)
		for _, warning := range warnings {
			if strings.Contains(strings.ToLower(warning), lower) {
				entry.Warned = true
				break
			}
		}
		entries = append(entries, entry)
	}

	listCount := len(r.cfg.SmartLists)
	if scoped {
		listCount = 0
	}
	return &Summary{
		BatchID:    batchID,
		StartedAt:  startedAt,
		FinishedAt: finishedAt,
		Duration:   finishedAt.Sub(startedAt),
		ListCount:  listCount,
		Entries:    entries,
		Warnings:   warnings,
	}
}

// recordJournal and notify run after the fetch deadline on a fresh
// context: bookkeeping should not be cut short by a batch that ran up
// to its timeout.
func (r *Runner) recordJournal(summary *Summary) {
	if r.store == nil {
		return
	}
	entries := make([]journal.Entry, 0, len(summary.Entries))
	for _, entry := range summary.Entries {
		entries = append(entries, journal.Entry{
			ListURL:    entry.ListURL,
			Source:     entry.Source,
			TotalItems: entry.TotalItems,
			IMDbIDs:    entry.IMDbIDs,
			TMDbIDs:    entry.TMDbIDs,
			TVDbIDs:    entry.TVDbIDs,
			Warned:     entry.Warned,
		})
	}
	batch := journal.Batch{
		BatchID:    summary.BatchID,
		StartedAt:  summary.StartedAt,
		FinishedAt: summary.FinishedAt,
		URLCount:   len(summary.Entries),
		Warnings:   summary.Warnings,
		Entries:    entries,
	}
	if err := r.store.RecordBatch(context.Background(), batch); err != nil {
		r.logger.Warn("journal write failed",
			logging.String(logging.FieldBatchID, summary.BatchID),
			logging.Error(err),
		)
	}
}

func (r *Runner) notify(summary *Summary, scoped bool) {
	if scoped {
		return
	}
	ctx := context.Background()
	if err := r.notifier.NotifyRefreshCompleted(ctx, summary.ListCount, len(summary.Entries), summary.Duration); err != nil {
		r.logger.Warn("completion notification failed", logging.Error(err))
	}
	if len(summary.Warnings) > 0 {
		if err := r.notifier.NotifyRefreshIssues(ctx, summary.Warnings); err != nil {
			r.logger.Warn("issues notification failed", logging.Error(err))
		}
	}
}

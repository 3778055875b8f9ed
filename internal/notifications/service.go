package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"smartlists/internal/config"
)

const userAgent = "Smartlists/1.0"

// maxIssueLines bounds how many warnings one notification message lists.
const maxIssueLines = 5

// Service defines the notification surface exposed to the refresh pipeline.
type Service interface {
	NotifyRefreshCompleted(ctx context.Context, listCount, urlCount int, duration time.Duration) error
	NotifyRefreshIssues(ctx context.Context, warnings []string) error
	NotifyError(ctx context.Context, err error, contextLabel string) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
// Per-event config toggles suppress individual notifications without
// disabling the rest.
func NewService(cfg *config.Config) Service {
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &ntfyService{
		endpoint:         topic,
		client:           &http.Client{Timeout: timeout},
		refreshCompleted: cfg.Notifications.RefreshCompleted,
		refreshIssues:    cfg.Notifications.RefreshIssues,
		errors:           cfg.Notifications.Errors,
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint         string
	client           *http.Client
	refreshCompleted bool
	refreshIssues    bool
	errors           bool
}

func (n *ntfyService) NotifyRefreshCompleted(ctx context.Context, listCount, urlCount int, duration time.Duration) error {
	if !n.refreshCompleted {
		return nil
	}
	duration = duration.Round(time.Second)
	if duration < 0 {
		duration = 0
	}
	durationText := duration.String()
	if duration == 0 {
		durationText = "0s"
	}

	data := payload{
		title:   "Smartlists - Refresh Complete",
		message: fmt.Sprintf("✅ Refreshed %d lists from %d sources in %s", listCount, urlCount, durationText),
		tags:    []string{"smartlists", "refresh", "completed"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyRefreshIssues(ctx context.Context, warnings []string) error {
	if !n.refreshIssues || len(warnings) == 0 {
		return nil
	}

	var builder strings.Builder
	fmt.Fprintf(&builder, "⚠️ %d sources reported problems:", len(warnings))
	for i, warning := range warnings {
		if i == maxIssueLines {
			fmt.Fprintf(&builder, "\n… and %d more", len(warnings)-maxIssueLines)
			break
		}
		builder.WriteString("\n- ")
		builder.WriteString(strings.TrimSpace(warning))
	}

	data := payload{
		title:    "Smartlists - Refresh Issues",
		message:  builder.String(),
		tags:     []string{"smartlists", "refresh", "warning"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyError(ctx context.Context, err error, contextLabel string) error {
	if !n.errors {
		return nil
	}

	var builder strings.Builder
	builder.WriteString("❌ Error")
	if contextLabel = strings.TrimSpace(contextLabel); contextLabel != "" {
		builder.WriteString(" with ")
		builder.WriteString(contextLabel)
	}
	builder.WriteString(": ")
	if err != nil {
		builder.WriteString(strings.TrimSpace(err.Error()))
	} else {
		builder.WriteString("unknown")
	}

	data := payload{
		title:    "Smartlists - Error",
		message:  builder.String(),
		tags:     []string{"smartlists", "error", "alert"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	data := payload{
		title:    "Smartlists - Test",
		message:  "🧪 Notification system test",
		tags:     []string{"smartlists", "test"},
		priority: "low",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) NotifyRefreshCompleted(context.Context, int, int, time.Duration) error { return nil }
func (noopService) NotifyRefreshIssues(context.Context, []string) error                   { return nil }
func (noopService) NotifyError(context.Context, error, string) error                      { return nil }
func (noopService) TestNotification(context.Context) error                                { return nil }

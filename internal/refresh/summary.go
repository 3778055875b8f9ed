package refresh

import (
	"net/url"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Entry reports the fetch outcome for one list URL.
type Entry struct {
	ListURL     string
	Source      string
	DisplayName string
	TotalItems  int
	IMDbIDs     int
	TMDbIDs     int
	TVDbIDs     int
	Warned      bool
}

// Summary reports one refresh run. The fetched indexes themselves stay
// inside the batch; only counts and warnings leave the pipeline.
type Summary struct {
	BatchID    string
	StartedAt  time.Time
	FinishedAt time.Time
	Duration   time.Duration
	ListCount  int
	Entries    []Entry
	Warnings   []string
}

var titleCaser = cases.Title(language.English)

// displayName derives a human-readable label from the last path segment
// of a list URL, falling back to the host for bare URLs.
func displayName(listURL string) string {
	parsed, err := url.Parse(listURL)
	if err != nil {
		return listURL
	}
	segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	last := segments[len(segments)-1]
	if unescaped, err := url.PathUnescape(last); err == nil {
		last = unescaped
	}
	last = strings.NewReplacer("-", " ", "_", " ").Replace(last)
	last = strings.Join(strings.Fields(last), " ")
	if last == "" {
		if parsed.Hostname() != "" {
			return parsed.Hostname()
		}
		return listURL
	}
	return titleCaser.String(last)
}

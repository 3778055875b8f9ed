package preflight

import (
	"context"
	"strings"

	"smartlists/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes all applicable preflight checks for the given config.
// API probes run only when the matching credential is configured; the
// credential result already covers the unconfigured case.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	results = append(results, CheckDirectoryAccess("Data directory", cfg.Paths.DataDir))
	results = append(results, CheckDirectoryAccess("Log directory", cfg.Paths.LogDir))

	if key := strings.TrimSpace(cfg.MDBList.APIKey); key == "" {
		results = append(results, missingCredential("MDBList", "api key"))
	} else {
		results = append(results, CheckMDBList(ctx, cfg.MDBList.BaseURL, key))
	}

	if key := strings.TrimSpace(cfg.TMDB.APIKey); key == "" {
		results = append(results, missingCredential("TMDb", "api key"))
	} else {
		results = append(results, CheckTMDb(ctx, cfg.TMDB.BaseURL, key))
	}

	if clientID := strings.TrimSpace(cfg.Trakt.ClientID); clientID == "" {
		results = append(results, missingCredential("Trakt", "client id"))
	} else {
		results = append(results, CheckTrakt(ctx, cfg.Trakt.BaseURL, clientID))
	}

	return results
}

func missingCredential(name, kind string) Result {
	return Result{
		Name:   name,
		Detail: kind + " not configured (lists on this source fail with a warning)",
	}
}

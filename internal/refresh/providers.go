package refresh

import (
	"time"

	"smartlists/internal/config"
	"smartlists/internal/lists"
	"smartlists/internal/lists/imdb"
	"smartlists/internal/lists/mdblist"
	"smartlists/internal/lists/tmdb"
	"smartlists/internal/lists/trakt"
)

// Providers returns the source adapters in resolution order, sharing one
// rate-limited HTTP client. The aggregator picks the first adapter that
// recognizes a URL, so the order here is part of the routing contract.
func Providers(cfg *config.Config) []lists.Provider {
	client := lists.NewHTTPClient(
		time.Duration(cfg.Fetch.TimeoutSeconds)*time.Second,
		cfg.Fetch.RequestsPerSecond,
		cfg.Fetch.Burst,
	)
	return []lists.Provider{
		mdblist.New(mdblist.Config{
			APIKey:     cfg.MDBList.APIKey,
			BaseURL:    cfg.MDBList.BaseURL,
			HTTPClient: client,
		}),
		imdb.New(imdb.Config{
			UserAgent:      cfg.IMDb.UserAgent,
			AcceptLanguage: cfg.IMDb.AcceptLanguage,
			HTTPClient:     client,
		}),
		tmdb.New(tmdb.Config{
			APIKey:     cfg.TMDB.APIKey,
			BaseURL:    cfg.TMDB.BaseURL,
			Language:   cfg.TMDB.Language,
			HTTPClient: client,
		}),
		trakt.New(trakt.Config{
			ClientID:   cfg.Trakt.ClientID,
			BaseURL:    cfg.Trakt.BaseURL,
			HTTPClient: client,
		}),
	}
}

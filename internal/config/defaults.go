package config

const (
	defaultDataDir                = "~/.local/share/smartlists"
	defaultLogDir                 = "~/.local/share/smartlists/logs"
	defaultMDBListBaseURL         = "https://api.mdblist.com"
	defaultTMDBBaseURL            = "https://api.themoviedb.org/3"
	defaultTMDBLanguage           = "en-US"
	defaultTraktBaseURL           = "https://api.trakt.tv"
	defaultIMDbUserAgent          = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"
	defaultIMDbAcceptLanguage     = "en-US,en;q=0.9"
	defaultFetchTimeoutSeconds    = 45
	defaultFetchRequestsPerSecond = 3.0
	defaultFetchBurst             = 1
	defaultJournalKeepBatches     = 100
	defaultNotificationTimeout    = 30
	defaultLogFormat              = "console"
	defaultLogLevel               = "info"
)

// Default returns the repository default configuration.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		MDBList: MDBList{
			BaseURL: defaultMDBListBaseURL,
		},
		TMDB: TMDB{
			BaseURL:  defaultTMDBBaseURL,
			Language: defaultTMDBLanguage,
		},
		Trakt: Trakt{
			BaseURL: defaultTraktBaseURL,
		},
		IMDb: IMDb{
			UserAgent:      defaultIMDbUserAgent,
			AcceptLanguage: defaultIMDbAcceptLanguage,
		},
		Fetch: Fetch{
			TimeoutSeconds:    defaultFetchTimeoutSeconds,
			RequestsPerSecond: defaultFetchRequestsPerSecond,
			Burst:             defaultFetchBurst,
		},
		Journal: Journal{
			Enabled:     true,
			KeepBatches: defaultJournalKeepBatches,
		},
		Notifications: Notifications{
			RequestTimeout:   defaultNotificationTimeout,
			RefreshCompleted: true,
			RefreshIssues:    true,
			Errors:           true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

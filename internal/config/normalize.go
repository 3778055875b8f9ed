package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeMDBList(); err != nil {
		return err
	}
	if err := c.normalizeTMDB(); err != nil {
		return err
	}
	if err := c.normalizeTrakt(); err != nil {
		return err
	}
	c.normalizeIMDb()
	c.normalizeFetch()
	if err := c.normalizeRefresh(); err != nil {
		return err
	}
	if err := c.normalizeJournal(); err != nil {
		return err
	}
	c.normalizeNotifications()
	c.normalizeLogging()
	c.normalizeSmartLists()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeMDBList() error {
	c.MDBList.APIKey = strings.TrimSpace(c.MDBList.APIKey)
	if c.MDBList.APIKey == "" {
		if value, ok := os.LookupEnv("MDBLIST_API_KEY"); ok {
			c.MDBList.APIKey = strings.TrimSpace(value)
		}
	}
	c.MDBList.BaseURL = strings.TrimSpace(c.MDBList.BaseURL)
	if c.MDBList.BaseURL == "" {
		c.MDBList.BaseURL = defaultMDBListBaseURL
	}
	c.MDBList.BaseURL = strings.TrimSuffix(c.MDBList.BaseURL, "/")
	return nil
}

func (c *Config) normalizeTMDB() error {
	c.TMDB.APIKey = strings.TrimSpace(c.TMDB.APIKey)
	if c.TMDB.APIKey == "" {
		if value, ok := os.LookupEnv("TMDB_API_KEY"); ok {
			c.TMDB.APIKey = strings.TrimSpace(value)
		}
	}
	c.TMDB.BaseURL = strings.TrimSpace(c.TMDB.BaseURL)
	if c.TMDB.BaseURL == "" {
		c.TMDB.BaseURL = defaultTMDBBaseURL
	}
	c.TMDB.BaseURL = strings.TrimSuffix(c.TMDB.BaseURL, "/")
	c.TMDB.Language = strings.TrimSpace(c.TMDB.Language)
	if c.TMDB.Language == "" {
		c.TMDB.Language = defaultTMDBLanguage
	}
	return nil
}

func (c *Config) normalizeTrakt() error {
	c.Trakt.ClientID = strings.TrimSpace(c.Trakt.ClientID)
	if c.Trakt.ClientID == "" {
		if value, ok := os.LookupEnv("TRAKT_CLIENT_ID"); ok {
			c.Trakt.ClientID = strings.TrimSpace(value)
		}
	}
	c.Trakt.BaseURL = strings.TrimSpace(c.Trakt.BaseURL)
	if c.Trakt.BaseURL == "" {
		c.Trakt.BaseURL = defaultTraktBaseURL
	}
	c.Trakt.BaseURL = strings.TrimSuffix(c.Trakt.BaseURL, "/")
	return nil
}

func (c *Config) normalizeIMDb() {
	c.IMDb.UserAgent = strings.TrimSpace(c.IMDb.UserAgent)
	if c.IMDb.UserAgent == "" {
		c.IMDb.UserAgent = defaultIMDbUserAgent
	}
	c.IMDb.AcceptLanguage = strings.TrimSpace(c.IMDb.AcceptLanguage)
	if c.IMDb.AcceptLanguage == "" {
		c.IMDb.AcceptLanguage = defaultIMDbAcceptLanguage
	}
}

func (c *Config) normalizeFetch() {
	if c.Fetch.TimeoutSeconds <= 0 {
		c.Fetch.TimeoutSeconds = defaultFetchTimeoutSeconds
	}
	if c.Fetch.RequestsPerSecond < 0 {
		c.Fetch.RequestsPerSecond = 0
	}
	if c.Fetch.Burst <= 0 {
		c.Fetch.Burst = defaultFetchBurst
	}
}

func (c *Config) normalizeRefresh() error {
	var err error
	if strings.TrimSpace(c.Refresh.LockPath) == "" {
		c.Refresh.LockPath = filepath.Join(c.Paths.DataDir, "refresh.lock")
	}
	if c.Refresh.LockPath, err = expandPath(c.Refresh.LockPath); err != nil {
		return fmt.Errorf("refresh.lock_path: %w", err)
	}
	if c.Refresh.TimeoutSeconds < 0 {
		c.Refresh.TimeoutSeconds = 0
	}
	return nil
}

func (c *Config) normalizeJournal() error {
	var err error
	if strings.TrimSpace(c.Journal.Path) == "" {
		c.Journal.Path = filepath.Join(c.Paths.DataDir, "journal.db")
	}
	if c.Journal.Path, err = expandPath(c.Journal.Path); err != nil {
		return fmt.Errorf("journal.path: %w", err)
	}
	if c.Journal.KeepBatches < 0 {
		c.Journal.KeepBatches = 0
	}
	return nil
}

func (c *Config) normalizeNotifications() {
	c.Notifications.NtfyTopic = strings.TrimSpace(c.Notifications.NtfyTopic)
	if c.Notifications.RequestTimeout <= 0 {
		c.Notifications.RequestTimeout = defaultNotificationTimeout
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func (c *Config) normalizeSmartLists() {
	lists := make([]SmartList, 0, len(c.SmartLists))
	for _, list := range c.SmartLists {
		list.Name = strings.TrimSpace(list.Name)
		urls := make([]string, 0, len(list.ListURLs))
		for _, raw := range list.ListURLs {
			trimmed := strings.TrimSpace(raw)
			if trimmed == "" {
				continue
			}
			urls = append(urls, trimmed)
		}
		list.ListURLs = urls
		lists = append(lists, list)
	}
	c.SmartLists = lists
}

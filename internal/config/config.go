package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	DataDir string `toml:"data_dir"`
	LogDir  string `toml:"log_dir"`
}

// MDBList contains configuration for the MDBList API.
type MDBList struct {
	APIKey  string `toml:"api_key"`
	BaseURL string `toml:"base_url"`
}

// TMDB contains configuration for The Movie Database API.
type TMDB struct {
	APIKey   string `toml:"api_key"`
	BaseURL  string `toml:"base_url"`
	Language string `toml:"language"`
}

// Trakt contains configuration for the Trakt API.
type Trakt struct {
	ClientID string `toml:"client_id"`
	BaseURL  string `toml:"base_url"`
}

// IMDb contains request header configuration for IMDb page fetches.
// IMDb serves a truncated page to non-browser clients, so both values
// must resemble a desktop browser.
type IMDb struct {
	UserAgent      string `toml:"user_agent"`
	AcceptLanguage string `toml:"accept_language"`
}

// Fetch contains HTTP behavior shared by every list source.
type Fetch struct {
	TimeoutSeconds    int     `toml:"timeout_seconds"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Burst             int     `toml:"burst"`
}

// Refresh contains configuration for refresh batch execution.
type Refresh struct {
	LockPath       string `toml:"lock_path"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Journal contains configuration for the refresh history store.
type Journal struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	KeepBatches int    `toml:"keep_batches"`
}

// Notifications contains configuration for ntfy push notifications.
type Notifications struct {
	NtfyTopic        string `toml:"ntfy_topic"`
	RequestTimeout   int    `toml:"request_timeout"`
	RefreshCompleted bool   `toml:"refresh_completed"`
	RefreshIssues    bool   `toml:"refresh_issues"`
	Errors           bool   `toml:"errors"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// SmartList names a smart list and the external list URLs that feed it.
type SmartList struct {
	Name     string   `toml:"name"`
	ListURLs []string `toml:"list_urls"`
}

// Config encapsulates all configuration values for smartlists.
//
// Configuration sections by subsystem:
//   - Paths: data and log directories
//   - MDBList: aggregator list API credentials and endpoint
//   - TMDB: The Movie Database API credentials and endpoint
//   - Trakt: Trakt API credentials and endpoint
//   - IMDb: browser-shaped request headers for page scraping
//   - Fetch: shared HTTP timeout and per-host rate limiting
//   - Refresh: batch lock file and overall deadline
//   - Journal: refresh history store location and retention
//   - Notifications: ntfy push notification settings
//   - Logging: log format and level
//   - SmartLists: named lists and the external URLs feeding them
//
// Source credentials are deliberately not validated at load time. A
// missing key surfaces when the matching source is actually fetched,
// so lists backed by other sources keep refreshing.
type Config struct {
	Paths         Paths         `toml:"paths"`
	MDBList       MDBList       `toml:"mdblist"`
	TMDB          TMDB          `toml:"tmdb"`
	Trakt         Trakt         `toml:"trakt"`
	IMDb          IMDb          `toml:"imdb"`
	Fetch         Fetch         `toml:"fetch"`
	Refresh       Refresh       `toml:"refresh"`
	Journal       Journal       `toml:"journal"`
	Notifications Notifications `toml:"notifications"`
	Logging       Logging       `toml:"logging"`
	SmartLists    []SmartList   `toml:"smartlist"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/smartlists/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("smartlists.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories refresh runs need.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.LogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	if c.Journal.Enabled && strings.TrimSpace(c.Journal.Path) != "" {
		if err := os.MkdirAll(filepath.Dir(c.Journal.Path), 0o755); err != nil {
			return fmt.Errorf("create journal directory %q: %w", filepath.Dir(c.Journal.Path), err)
		}
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	sample := sampleConfig

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

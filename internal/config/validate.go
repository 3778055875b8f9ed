package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable. Source credentials are
// intentionally exempt so a missing key only fails the lists that need it.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateFetch(); err != nil {
		return err
	}
	if err := c.validateJournal(); err != nil {
		return err
	}
	if err := c.validateNotifications(); err != nil {
		return err
	}
	if err := c.validateSmartLists(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		return errors.New("paths.data_dir must be set")
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		return errors.New("paths.log_dir must be set")
	}
	return nil
}

func (c *Config) validateFetch() error {
	if c.Fetch.TimeoutSeconds <= 0 {
		return errors.New("fetch.timeout_seconds must be positive")
	}
	if c.Fetch.Burst <= 0 {
		return errors.New("fetch.burst must be positive")
	}
	return nil
}

func (c *Config) validateJournal() error {
	if c.Journal.Enabled && strings.TrimSpace(c.Journal.Path) == "" {
		return errors.New("journal.path must be set when journal.enabled is true")
	}
	return nil
}

func (c *Config) validateNotifications() error {
	if c.Notifications.RequestTimeout <= 0 {
		return errors.New("notifications.request_timeout must be positive")
	}
	return nil
}

func (c *Config) validateSmartLists() error {
	seen := make(map[string]struct{}, len(c.SmartLists))
	for i, list := range c.SmartLists {
		if len(list.ListURLs) == 0 {
			label := list.Name
			if label == "" {
				label = fmt.Sprintf("#%d", i+1)
			}
			return fmt.Errorf("smartlist %s must include at least one list url", label)
		}
		if list.Name == "" {
			continue
		}
		key := strings.ToLower(list.Name)
		if _, exists := seen[key]; exists {
			return fmt.Errorf("smartlist name %q is duplicated", list.Name)
		}
		seen[key] = struct{}{}
	}
	return nil
}

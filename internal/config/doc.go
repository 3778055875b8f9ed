// Package config loads, normalizes, and validates smartlists configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// MDBLIST_API_KEY when a file value is empty. The Config type centralizes
// every knob the CLI needs, from list source credentials to journal and
// notification settings.
//
// Source credentials are deliberately not required at load time: a refresh
// involving several sources should still run when only one of them is
// missing a key, so that failure is reported per list during the fetch.
package config

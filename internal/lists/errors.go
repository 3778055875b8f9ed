package lists

import "errors"

// Sentinel errors providers wrap so callers can classify fetch failures
// without parsing message text.
var (
	// ErrNoCredential marks a fetch refused because the provider's API
	// key or client id is not configured.
	ErrNoCredential = errors.New("missing credential")

	// ErrUnsupportedURL marks a URL a provider claimed via CanHandle but
	// could not resolve into a concrete request target.
	ErrUnsupportedURL = errors.New("unsupported list url")
)

package preflight

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"golang.org/x/sys/unix"
)

const probeTimeout = 5 * time.Second

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckMDBList verifies MDBList connectivity and API key validity.
func CheckMDBList(ctx context.Context, baseURL, apiKey string) Result {
	const name = "MDBList"

	endpoint := strings.TrimRight(strings.TrimSpace(baseURL), "/") + "/user"
	params := url.Values{}
	params.Set("apikey", apiKey)
	return probe(ctx, name, endpoint+"?"+params.Encode(), nil)
}

// CheckTMDb verifies TMDb connectivity and API key validity.
func CheckTMDb(ctx context.Context, baseURL, apiKey string) Result {
	const name = "TMDb"

	endpoint := strings.TrimRight(strings.TrimSpace(baseURL), "/") + "/configuration"
	params := url.Values{}
	params.Set("api_key", apiKey)
	return probe(ctx, name, endpoint+"?"+params.Encode(), nil)
}

// CheckTrakt verifies Trakt connectivity and client id validity.
func CheckTrakt(ctx context.Context, baseURL, clientID string) Result {
	const name = "Trakt"

	endpoint := strings.TrimRight(strings.TrimSpace(baseURL), "/") + "/movies/trending?limit=1"
	headers := map[string]string{
		"trakt-api-version": "2",
		"trakt-api-key":     clientID,
	}
	return probe(ctx, name, endpoint, headers)
}

func probe(ctx context.Context, name, endpoint string, headers map[string]string) Result {
	checkCtx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(checkCtx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("probe failed (%v)", err)}
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	client := &http.Client{Timeout: probeTimeout}
	resp, err := client.Do(req)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("probe failed (%v)", err)}
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return Result{Name: name, Passed: true, Detail: "Reachable"}
	case http.StatusUnauthorized, http.StatusForbidden:
		return Result{Name: name, Detail: "auth failed (invalid credential)"}
	default:
		return Result{Name: name, Detail: fmt.Sprintf("probe failed (%d)", resp.StatusCode)}
	}
}

package cli

import (
	"fmt"
	"net/url"
	"strings"
)

// parseURL splits a full URL into base URL, path, and query parameters for
// the client. Keeping the query out of the path lets the request layer encode
// it properly instead of escaping the whole string. Fragments never reach the
// server, so they are dropped.
func parseURL(fullURL string) (string, string, url.Values) {
	if !strings.HasPrefix(fullURL, "http://") && !strings.HasPrefix(fullURL, "https://") {
		fullURL = "http://" + fullURL
	}

	parsed, err := url.Parse(fullURL)
	if err != nil {
		return fullURL, "/", nil
	}

	baseURL := fmt.Sprintf("%s://%s", parsed.Scheme, parsed.Host)
	if parsed.User != nil {
		baseURL = fmt.Sprintf("%s://%s@%s", parsed.Scheme, parsed.User.String(), parsed.Host)
	}

	path := parsed.Path
	if path == "" {
		path = "/"
	}

	return baseURL, path, parsed.Query()
}

package crawling

import (
	"fmt"
	"net/url"
	"strings"
)

// resolveURL resolves href against base using RFC 3986 reference resolution.
// A base without a trailing slash resolves relative hrefs against its parent.
func resolveURL(base, href string) (string, error) {
	baseURL, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("failed to parse base URL %q: %w", base, err)
	}
	if baseURL.Scheme == "" || baseURL.Host == "" {
		return "", fmt.Errorf("invalid base URL: %s (must have scheme and host)", base)
	}

	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return "", fmt.Errorf("failed to parse link %q: %w", href, err)
	}

	return baseURL.ResolveReference(ref).String(), nil
}

// cleanText collapses runs of whitespace into single spaces and trims the ends.
func cleanText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// Package fetch - robots.go checks page URLs against the host's robots.txt.
package fetch

import (
	"context"
	"fmt"
	"log"
	"net/url"

	"github.com/temoto/robotstxt"
)

// RobotsChecker answers whether a URL may be fetched under the host's robots.txt.
// Rules are fetched once per scheme and host.
type RobotsChecker struct {
	client *Client
	agent  string
	cache  map[string]*robotstxt.RobotsData
}

// NewRobotsChecker creates a checker that fetches robots.txt with client and tests
// paths for the client's user agent.
func NewRobotsChecker(client *Client) *RobotsChecker {
	return &RobotsChecker{
		client: client,
		agent:  client.UserAgent(),
		cache:  make(map[string]*robotstxt.RobotsData),
	}
}

// Allowed reports whether urlStr may be fetched. A robots.txt that cannot be
// retrieved allows everything; a 4xx allows everything and a 5xx disallows, as
// robotstxt.FromStatusAndBytes defines.
func (r *RobotsChecker) Allowed(ctx context.Context, urlStr string) (bool, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil || parsed.Host == "" {
		return false, &Error{URL: urlStr, Message: "invalid URL", Cause: err}
	}

	origin := fmt.Sprintf("%s://%s", parsed.Scheme, parsed.Host)
	data, ok := r.cache[origin]
	if !ok {
		data = r.load(ctx, origin)
		r.cache[origin] = data
	}
	if data == nil {
		return true, nil
	}

	path := parsed.EscapedPath()
	if path == "" {
		path = "/"
	}
	return data.TestAgent(path, r.agent), nil
}

func (r *RobotsChecker) load(ctx context.Context, origin string) *robotstxt.RobotsData {
	robotsURL := origin + "/robots.txt"
	result, err := r.client.Get(ctx, robotsURL)
	if result == nil {
		if r.client.verbose {
			log.Printf("[FETCH] robots.txt unavailable at %s: %v", robotsURL, err)
		}
		return nil
	}

	data, err := robotstxt.FromStatusAndBytes(result.StatusCode, result.Body)
	if err != nil {
		if r.client.verbose {
			log.Printf("[FETCH] robots.txt at %s could not be parsed: %v", robotsURL, err)
		}
		return nil
	}
	return data
}

// Package robots answers whether a site permits crawling at all.
package robots

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/temoto/robotstxt"
	"go.uber.org/zap"
)

// maxRobotsBody caps how much of a robots.txt response is read.
const maxRobotsBody = 1 << 20

// Gate fetches and evaluates robots.txt for a site. Unreachable or
// malformed robots files fail open: the site stays crawlable.
type Gate struct {
	client    *http.Client
	userAgent string
	logger    *zap.Logger
}

// NewGate builds a Gate that identifies itself with userAgent.
func NewGate(userAgent string, timeout time.Duration, logger *zap.Logger) *Gate {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gate{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
		logger:    logger,
	}
}

// Allowed reports whether crawling may start from baseURL. Only a
// well-formed robots.txt that denies the gate's user agent returns false.
func (g *Gate) Allowed(ctx context.Context, baseURL string) bool {
	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Host == "" {
		return false
	}

	data, err := g.load(ctx, parsed)
	if err != nil {
		g.logger.Warn("robots fetch failed; allowing access",
			zap.String("url", baseURL),
			zap.Error(err))
		return true
	}

	pagePath := parsed.Path
	if pagePath == "" {
		pagePath = "/"
	}
	// TestAgent, unlike FindGroup, honors the library's full-allow and
	// full-disallow results for 4xx and 5xx robots responses.
	return data.TestAgent(pagePath, g.userAgent)
}

func (g *Gate) load(ctx context.Context, site *url.URL) (*robotstxt.RobotsData, error) {
	robotsURL := *site
	robotsURL.Path = path.Join("/", "robots.txt")
	robotsURL.RawQuery = ""
	robotsURL.Fragment = ""

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build robots request: %w", err)
	}
	if g.userAgent != "" {
		req.Header.Set("User-Agent", g.userAgent)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch robots: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			g.logger.Debug("close robots body", zap.Error(cerr))
		}
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxRobotsBody))
	if err != nil {
		return nil, fmt.Errorf("read robots body: %w", err)
	}

	data, err := robotstxt.FromStatusAndBytes(resp.StatusCode, body)
	if err != nil {
		return nil, fmt.Errorf("parse robots: %w", err)
	}
	return data, nil
}

package crawler

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"sitekb/internal/frontier"
)

// Config wires the crawl loop's collaborators and knobs.
type Config struct {
	Fetcher          Fetcher
	Gate             Gate
	Extractor        Extractor
	Logger           *zap.Logger
	RequestTimeout   time.Duration
	Delay            time.Duration
	PriorityKeywords []string
	PriorityPaths    []string
}

// Crawler walks a single site, priority links first, and returns the
// extracted page records. One Run is one session: its own frontier, its own
// robots decision, its own visited set.
type Crawler struct {
	cfg    Config
	logger *zap.Logger
}

// New builds a Crawler.
func New(cfg Config) (*Crawler, error) {
	if cfg.Fetcher == nil {
		return nil, fmt.Errorf("crawler: fetcher is required")
	}
	if cfg.Gate == nil {
		return nil, fmt.Errorf("crawler: gate is required")
	}
	if cfg.Extractor == nil {
		return nil, fmt.Errorf("crawler: extractor is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Crawler{cfg: cfg, logger: logger}, nil
}

// Run crawls from baseURL until the frontier drains or maxPages pages have
// been extracted. Per-page failures are logged and skipped; a robots denial
// returns an empty result before any page fetch. The inter-request delay is
// enforced between consecutive fetches.
func (c *Crawler) Run(ctx context.Context, baseURL string, maxPages int) ([]PageRecord, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if maxPages <= 0 {
		return nil, fmt.Errorf("max pages must be > 0, got %d", maxPages)
	}

	logger := c.logger.With(
		zap.String("crawl_id", uuid.NewString()),
		zap.String("base_url", baseURL),
	)

	if !c.cfg.Gate.Allowed(ctx, baseURL) {
		RobotsDenials.Inc()
		logger.Warn("crawling disallowed by robots.txt")
		return nil, nil
	}

	fr, err := frontier.New(base, frontier.Config{
		MaxPages:         maxPages,
		PriorityKeywords: c.cfg.PriorityKeywords,
		PriorityPaths:    c.cfg.PriorityPaths,
	})
	if err != nil {
		return nil, fmt.Errorf("seed frontier: %w", err)
	}

	limiter := rate.NewLimiter(rate.Every(c.cfg.Delay), 1)

	var records []PageRecord
	for len(records) < maxPages {
		next, ok := fr.Next()
		if !ok {
			break
		}
		if err := limiter.Wait(ctx); err != nil {
			return records, fmt.Errorf("crawl interrupted: %w", err)
		}

		logger.Debug("fetching page", zap.String("url", next))
		res, err := c.cfg.Fetcher.Fetch(ctx, FetchRequest{URL: next, Timeout: c.cfg.RequestTimeout})
		if err != nil {
			FetchFailures.Inc()
			logger.Warn("fetch failed", zap.String("url", next), zap.Error(err))
			continue
		}

		rec, err := c.cfg.Extractor.Extract(res.Body, next)
		if err != nil {
			logger.Warn("extract failed", zap.String("url", next), zap.Error(err))
			continue
		}

		records = append(records, rec)
		PagesCrawled.Inc()

		for _, link := range rec.Links {
			fr.Offer(link)
		}
	}

	logger.Info("crawl finished", zap.Int("pages", len(records)), zap.Int("pending", fr.Len()))
	return records, nil
}

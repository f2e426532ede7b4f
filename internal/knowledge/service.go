// Package knowledge exposes the crawl-and-search service consumed by the
// sitekb binaries.
package knowledge

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"sitekb/internal/config"
	"sitekb/internal/crawler"
	"sitekb/internal/extract"
	"sitekb/internal/fetch"
	"sitekb/internal/robots"
	"sitekb/internal/search"
	"sitekb/internal/store"
)

// ErrNotInitialized is returned by operations that require Initialize first.
var ErrNotInitialized = errors.New("knowledge service not initialized")

// Service owns the document store, the crawlers, and the search engine.
type Service struct {
	cfg     config.Config
	logger  *zap.Logger
	store   *store.Store
	engine  *search.Engine
	crawler *crawler.Crawler

	mu          sync.Mutex
	initialized bool
}

// siteCrawl pins a crawler to the configured site so the search engine can
// use it as its fallback page source.
type siteCrawl struct {
	crawler *crawler.Crawler
	baseURL string
}

func (sc *siteCrawl) Run(ctx context.Context, maxPages int) ([]crawler.PageRecord, error) {
	return sc.crawler.Run(ctx, sc.baseURL, maxPages)
}

// New wires the service from configuration. The fallback crawler shares the
// fetcher and robots gate with the main one but runs on the tighter timeout.
func New(cfg config.Config, logger *zap.Logger) (*Service, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	st := store.New(cfg.Store.DataPath, logger.Named("store"))

	fetcher := fetch.New(fetch.Config{
		UserAgent: cfg.Crawler.UserAgent,
		Timeout:   cfg.RequestTimeout(),
	})
	gate := robots.NewGate(cfg.Crawler.UserAgent, cfg.FallbackTimeout(), logger.Named("robots"))
	extractor := extract.New()

	mainCrawler, err := crawler.New(crawler.Config{
		Fetcher:          fetcher,
		Gate:             gate,
		Extractor:        extractor,
		Logger:           logger.Named("crawler"),
		RequestTimeout:   cfg.RequestTimeout(),
		Delay:            cfg.CrawlDelay(),
		PriorityKeywords: cfg.Crawler.PriorityKeywords,
		PriorityPaths:    cfg.Crawler.PriorityPaths,
	})
	if err != nil {
		return nil, fmt.Errorf("build crawler: %w", err)
	}

	fallbackCrawler, err := crawler.New(crawler.Config{
		Fetcher:          fetcher,
		Gate:             gate,
		Extractor:        extractor,
		Logger:           logger.Named("fallback_crawler"),
		RequestTimeout:   cfg.FallbackTimeout(),
		Delay:            cfg.CrawlDelay(),
		PriorityKeywords: cfg.Crawler.PriorityKeywords,
		PriorityPaths:    cfg.Crawler.PriorityPaths,
	})
	if err != nil {
		return nil, fmt.Errorf("build crawler: %w", err)
	}

	engine := search.New(
		st,
		&siteCrawl{crawler: fallbackCrawler, baseURL: cfg.Crawler.WebsiteURL},
		cfg.Search.FallbackMaxPages,
		logger.Named("search"),
	)

	return &Service{
		cfg:     cfg,
		logger:  logger,
		store:   st,
		engine:  engine,
		crawler: mainCrawler,
	}, nil
}

// Initialize loads persisted documents, ingests the profile into an empty
// store, and optionally preloads the site. Concurrent callers serialize on
// the first run; once it succeeds, later calls are no-ops.
func (s *Service) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.initialized {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.InitTimeout())
	defer cancel()

	if err := s.store.Load(); err != nil {
		s.logger.Error("store load failed", zap.Error(err))
		return fmt.Errorf("load store: %w", err)
	}

	if s.cfg.Store.ProfilePath != "" && s.store.Count() == 0 {
		if err := s.store.LoadProfile(s.cfg.Store.ProfilePath); err != nil {
			return fmt.Errorf("load profile: %w", err)
		}
	}

	if s.cfg.Knowledge.PreloadOnInit && s.store.Count() == 0 {
		s.logger.Info("preloading website content",
			zap.String("url", s.cfg.Crawler.WebsiteURL),
			zap.Int("max_pages", s.cfg.Crawler.MaxPages))
		records, err := s.crawler.Run(ctx, s.cfg.Crawler.WebsiteURL, s.cfg.Crawler.MaxPages)
		if err != nil {
			return fmt.Errorf("preload crawl: %w", err)
		}
		for _, rec := range records {
			if err := s.store.AddPageText(rec.URL, rec.Text()); err != nil {
				return fmt.Errorf("ingest page %s: %w", rec.URL, err)
			}
		}
		if err := s.store.Save(); err != nil {
			s.logger.Warn("persist preloaded store", zap.Error(err))
		}
	}

	s.initialized = true
	s.logger.Info("knowledge service ready", zap.Int("documents", s.store.Count()))
	return nil
}

func (s *Service) ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.initialized
}

// Search returns ranked matches from the stored corpus. Before Initialize
// succeeds it returns no results.
func (s *Service) Search(query string, topK int) []search.Result {
	if !s.ready() {
		s.logger.Warn("search requested before initialization")
		return nil
	}
	return s.engine.Search(query, topK)
}

// SearchWithFallback is Search plus a live crawl on a miss. It never fails;
// crawl errors are logged and yield no results.
func (s *Service) SearchWithFallback(ctx context.Context, query string, topK int) []search.Result {
	if !s.ready() {
		s.logger.Warn("search requested before initialization")
		return nil
	}
	results, err := s.engine.SearchWithFallback(ctx, query, topK)
	if err != nil {
		s.logger.Error("fallback search failed", zap.String("query", query), zap.Error(err))
		return nil
	}
	return results
}

// Refresh recrawls the site and rebuilds the store from the crawled pages'
// structured fields. The old contents survive a failed crawl untouched.
func (s *Service) Refresh(ctx context.Context, maxPages int) error {
	if !s.ready() {
		return ErrNotInitialized
	}
	if maxPages <= 0 {
		maxPages = s.cfg.Crawler.RefreshMaxPages
	}

	s.logger.Info("refreshing website content",
		zap.String("url", s.cfg.Crawler.WebsiteURL),
		zap.Int("max_pages", maxPages))

	records, err := s.crawler.Run(ctx, s.cfg.Crawler.WebsiteURL, maxPages)
	if err != nil {
		return fmt.Errorf("refresh crawl: %w", err)
	}

	s.store.Clear()
	for _, rec := range records {
		if err := s.store.AddPage(rec); err != nil {
			return fmt.Errorf("ingest page %s: %w", rec.URL, err)
		}
	}
	if err := s.store.Save(); err != nil {
		s.logger.Warn("persist refreshed store", zap.Error(err))
	}

	s.logger.Info("website content refreshed", zap.Int("documents", s.store.Count()))
	return nil
}

// Store exposes the underlying document store.
func (s *Service) Store() *store.Store {
	return s.store
}

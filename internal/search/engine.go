// Package search ranks stored documents by keyword overlap with a query.
package search

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"sitekb/internal/crawler"
	"sitekb/internal/store"
)

// Result is one ranked search hit.
type Result struct {
	Text   string `json:"text"`
	Type   string `json:"type"`
	Source string `json:"source,omitempty"`
	URL    string `json:"url,omitempty"`
}

// PageSource produces fresh page records when the stored corpus has no
// answer for a query.
type PageSource interface {
	Run(ctx context.Context, maxPages int) ([]crawler.PageRecord, error)
}

// Engine matches queries against the document store.
type Engine struct {
	store         *store.Store
	pages         PageSource
	fallbackPages int
	logger        *zap.Logger
}

// New builds an Engine. A nil pages source disables fallback crawling.
func New(st *store.Store, pages PageSource, fallbackPages int, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{store: st, pages: pages, fallbackPages: fallbackPages, logger: logger}
}

// Search returns up to topK documents sharing words with query, best match
// first. Documents with no overlap are never returned.
func (e *Engine) Search(query string, topK int) []Result {
	Searches.Inc()
	docs := e.store.All()
	if len(docs) == 0 {
		e.logger.Warn("knowledge base is empty")
		return nil
	}
	return rank(docs, query, topK, false)
}

// SearchWithFallback behaves like Search, but a miss triggers one crawl for
// fresh pages, which are ingested and re-scored before giving up.
func (e *Engine) SearchWithFallback(ctx context.Context, query string, topK int) ([]Result, error) {
	if results := e.Search(query, topK); len(results) > 0 {
		return results, nil
	}
	if e.pages == nil {
		return []Result{}, nil
	}

	e.logger.Info("no stored content matched; crawling for fresh pages",
		zap.String("query", query))
	FallbackCrawls.Inc()

	records, err := e.pages.Run(ctx, e.fallbackPages)
	if err != nil {
		return nil, fmt.Errorf("fallback crawl: %w", err)
	}
	for _, rec := range records {
		if err := e.store.AddPageText(rec.URL, rec.Text()); err != nil {
			return nil, fmt.Errorf("ingest page %s: %w", rec.URL, err)
		}
	}

	if fresh := rank(e.store.All(), query, topK, true); len(fresh) > 0 {
		return fresh, nil
	}
	return []Result{}, nil
}

// rank scores docs by word overlap with query. With websiteOnly set, only
// crawl-sourced documents are considered. Ties keep store order.
func rank(docs []store.Document, query string, topK int, websiteOnly bool) []Result {
	if topK <= 0 {
		return nil
	}
	queryWords := tokenize(query)
	if len(queryWords) == 0 {
		return nil
	}

	type scored struct {
		score  int
		result Result
	}
	var hits []scored
	for _, doc := range docs {
		if websiteOnly && doc.Metadata.Source != store.SourceWebsite {
			continue
		}
		score := overlap(queryWords, tokenize(doc.Text))
		if score == 0 {
			continue
		}
		hits = append(hits, scored{
			score: score,
			result: Result{
				Text:   doc.Text,
				Type:   string(doc.Metadata.Type),
				Source: doc.Metadata.Source,
				URL:    doc.Metadata.URL,
			},
		})
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].score > hits[j].score })
	if len(hits) > topK {
		hits = hits[:topK]
	}
	results := make([]Result, 0, len(hits))
	for _, hit := range hits {
		results = append(results, hit.result)
	}
	return results
}

// tokenize lowercases text and returns its distinct whitespace-separated words.
func tokenize(text string) map[string]struct{} {
	words := strings.Fields(strings.ToLower(text))
	if len(words) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(words))
	for _, word := range words {
		set[word] = struct{}{}
	}
	return set
}

func overlap(a, b map[string]struct{}) int {
	if len(b) < len(a) {
		a, b = b, a
	}
	shared := 0
	for word := range a {
		if _, ok := b[word]; ok {
			shared++
		}
	}
	return shared
}

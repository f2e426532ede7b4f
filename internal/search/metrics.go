package search

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Searches counts queries answered from the stored corpus.
	Searches = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sitekb_searches_total",
		Help: "Number of knowledge base searches executed.",
	})

	// FallbackCrawls counts searches that triggered a live crawl.
	FallbackCrawls = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sitekb_fallback_crawls_total",
		Help: "Number of searches that fell back to a live crawl.",
	})
)

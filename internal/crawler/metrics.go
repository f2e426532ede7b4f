package crawler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PagesCrawled tracks the number of pages successfully fetched and extracted.
	PagesCrawled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sitekb_pages_crawled_total",
		Help: "The total number of pages successfully fetched and extracted.",
	})
	// FetchFailures tracks page fetches that ended in an error or bad status.
	FetchFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sitekb_fetch_failures_total",
		Help: "The total number of failed page fetches.",
	})
	// RobotsDenials tracks crawl attempts refused by robots directives.
	RobotsDenials = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sitekb_robots_denials_total",
		Help: "The total number of crawls denied by robots.txt.",
	})
)

// Package main wires the sitekb knowledge service binary.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"sitekb/internal/config"
	"sitekb/internal/knowledge"
	"sitekb/internal/logging"
	"sitekb/internal/search"
)

func main() {
	cfgPath := flag.String("config", "", "Path to config file")
	query := flag.String("query", "", "Search the knowledge base and print ranked results")
	topK := flag.Int("topk", 0, "Number of results to return (0 = configured default)")
	refresh := flag.Bool("refresh", false, "Recrawl the site and rebuild the document store")
	maxPages := flag.Int("max-pages", 0, "Page budget for -refresh (0 = configured default)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config failed: %v\n", err)
		os.Exit(1)
	}
	logger, err := logging.New(cfg.Logging.Development)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init failed: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if syncErr := logger.Sync(); syncErr != nil {
			fmt.Fprintf(os.Stderr, "logger sync failed: %v\n", syncErr)
		}
	}()
	zap.ReplaceGlobals(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	svc, err := knowledge.New(cfg, logger.Named("knowledge"))
	if err != nil {
		logger.Error("service wiring failed", zap.Error(err))
		os.Exit(1)
	}
	if err := svc.Initialize(ctx); err != nil {
		logger.Error("service initialization failed", zap.Error(err))
		os.Exit(1)
	}

	if *refresh {
		if err := svc.Refresh(ctx, *maxPages); err != nil {
			logger.Error("refresh failed", zap.Error(err))
			os.Exit(1)
		}
	}

	if *query != "" {
		k := *topK
		if k <= 0 {
			k = cfg.Search.DefaultTopK
		}
		results := svc.SearchWithFallback(ctx, *query, k)
		if results == nil {
			results = []search.Result{}
		}
		out, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			logger.Error("encode results failed", zap.Error(err))
			os.Exit(1)
		}
		fmt.Println(string(out))
	}
}

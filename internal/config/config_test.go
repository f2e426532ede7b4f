package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SITEKB_CRAWLER_WEBSITE_URL", "https://example.com")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Crawler.MaxPages != 50 {
		t.Fatalf("expected default max_pages 50, got %d", cfg.Crawler.MaxPages)
	}
	if cfg.Crawler.RefreshMaxPages != 20 {
		t.Fatalf("expected default refresh_max_pages 20, got %d", cfg.Crawler.RefreshMaxPages)
	}
	if cfg.Search.FallbackMaxPages != 10 {
		t.Fatalf("expected default fallback_max_pages 10, got %d", cfg.Search.FallbackMaxPages)
	}
	if got := cfg.CrawlDelay(); got != 500*time.Millisecond {
		t.Fatalf("expected crawl delay 500ms, got %v", got)
	}
	if got := cfg.RequestTimeout(); got != 30*time.Second {
		t.Fatalf("expected request timeout 30s, got %v", got)
	}
	if got := cfg.FallbackTimeout(); got != 10*time.Second {
		t.Fatalf("expected fallback timeout 10s, got %v", got)
	}
	if got := cfg.InitTimeout(); got != 60*time.Second {
		t.Fatalf("expected init timeout 60s, got %v", got)
	}
	if len(cfg.Crawler.PriorityKeywords) == 0 || cfg.Crawler.PriorityKeywords[0] != "about" {
		t.Fatalf("expected default priority keywords, got %v", cfg.Crawler.PriorityKeywords)
	}
	if cfg.Store.DataPath != "data/knowledge_base.json" {
		t.Fatalf("expected default data path, got %q", cfg.Store.DataPath)
	}
}

func TestLoadWithFileOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	configYAML := `
crawler:
  website_url: https://court.example.org
  user_agent: sitekb-agent
  delay_ms: 100
  max_pages: 25
  refresh_max_pages: 5
  priority_keywords: ["notice"]
  priority_paths: ["notice.html"]
http:
  timeout_seconds: 45
  fallback_timeout_seconds: 5
store:
  data_path: /tmp/kb.json
  profile_path: /tmp/profile.json
search:
  default_top_k: 7
  fallback_max_pages: 4
knowledge:
  preload_on_init: true
  init_timeout_seconds: 15
logging:
  development: false
`
	if err := os.WriteFile(path, []byte(configYAML), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Crawler.WebsiteURL != "https://court.example.org" {
		t.Fatalf("expected website_url override, got %q", cfg.Crawler.WebsiteURL)
	}
	if cfg.Crawler.MaxPages != 25 || cfg.Crawler.RefreshMaxPages != 5 {
		t.Fatalf("expected crawler overrides to apply: %+v", cfg.Crawler)
	}
	if len(cfg.Crawler.PriorityKeywords) != 1 || cfg.Crawler.PriorityKeywords[0] != "notice" {
		t.Fatalf("expected keyword override, got %v", cfg.Crawler.PriorityKeywords)
	}
	if got := cfg.RequestTimeout(); got != 45*time.Second {
		t.Fatalf("expected request timeout 45s, got %v", got)
	}
	if got := cfg.FallbackTimeout(); got != 5*time.Second {
		t.Fatalf("expected fallback timeout 5s, got %v", got)
	}
	if !cfg.Knowledge.PreloadOnInit {
		t.Fatalf("expected preload_on_init override to apply")
	}
	if cfg.Search.DefaultTopK != 7 {
		t.Fatalf("expected default_top_k 7, got %d", cfg.Search.DefaultTopK)
	}
	if cfg.Logging.Development {
		t.Fatalf("expected logging.development false")
	}
}

func TestConfigValidateErrors(t *testing.T) {
	t.Parallel()

	base := Config{
		Crawler: CrawlerConfig{
			WebsiteURL:      "https://example.com",
			MaxPages:        50,
			RefreshMaxPages: 20,
		},
		HTTP:      HTTPConfig{TimeoutSeconds: 30, FallbackTimeoutSeconds: 10},
		Store:     StoreConfig{DataPath: "data/kb.json"},
		Search:    SearchConfig{DefaultTopK: 3, FallbackMaxPages: 10},
		Knowledge: KnowledgeConfig{InitTimeoutSeconds: 60},
	}

	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{
			name: "missing website url",
			cfg: func() Config {
				c := base
				c.Crawler.WebsiteURL = ""
				return c
			}(),
			want: "crawler.website_url",
		},
		{
			name: "relative website url",
			cfg: func() Config {
				c := base
				c.Crawler.WebsiteURL = "example.com/path"
				return c
			}(),
			want: "crawler.website_url",
		},
		{
			name: "invalid max pages",
			cfg: func() Config {
				c := base
				c.Crawler.MaxPages = 0
				return c
			}(),
			want: "crawler.max_pages",
		},
		{
			name: "negative delay",
			cfg: func() Config {
				c := base
				c.Crawler.DelayMs = -1
				return c
			}(),
			want: "crawler.delay_ms",
		},
		{
			name: "invalid timeout",
			cfg: func() Config {
				c := base
				c.HTTP.TimeoutSeconds = 0
				return c
			}(),
			want: "http.timeout_seconds",
		},
		{
			name: "invalid fallback timeout",
			cfg: func() Config {
				c := base
				c.HTTP.FallbackTimeoutSeconds = 0
				return c
			}(),
			want: "http.fallback_timeout_seconds",
		},
		{
			name: "missing data path",
			cfg: func() Config {
				c := base
				c.Store.DataPath = ""
				return c
			}(),
			want: "store.data_path",
		},
		{
			name: "invalid top k",
			cfg: func() Config {
				c := base
				c.Search.DefaultTopK = 0
				return c
			}(),
			want: "search.default_top_k",
		},
		{
			name: "invalid fallback budget",
			cfg: func() Config {
				c := base
				c.Search.FallbackMaxPages = 0
				return c
			}(),
			want: "search.fallback_max_pages",
		},
		{
			name: "invalid init timeout",
			cfg: func() Config {
				c := base
				c.Knowledge.InitTimeoutSeconds = 0
				return c
			}(),
			want: "knowledge.init_timeout_seconds",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

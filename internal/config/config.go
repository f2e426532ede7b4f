// Package config loads and validates sitekb configuration via Viper.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config captures all service configuration knobs loaded via Viper.
type Config struct {
	Crawler   CrawlerConfig   `mapstructure:"crawler"`
	HTTP      HTTPConfig      `mapstructure:"http"`
	Store     StoreConfig     `mapstructure:"store"`
	Search    SearchConfig    `mapstructure:"search"`
	Knowledge KnowledgeConfig `mapstructure:"knowledge"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// CrawlerConfig governs frontier scheduling and crawl pipeline behavior.
type CrawlerConfig struct {
	WebsiteURL       string   `mapstructure:"website_url"`
	UserAgent        string   `mapstructure:"user_agent"`
	DelayMs          int      `mapstructure:"delay_ms"`
	MaxPages         int      `mapstructure:"max_pages"`
	RefreshMaxPages  int      `mapstructure:"refresh_max_pages"`
	PriorityKeywords []string `mapstructure:"priority_keywords"`
	PriorityPaths    []string `mapstructure:"priority_paths"`
}

// HTTPConfig configures fetch timeouts for full crawls and fallback crawls.
type HTTPConfig struct {
	TimeoutSeconds         int `mapstructure:"timeout_seconds"`
	FallbackTimeoutSeconds int `mapstructure:"fallback_timeout_seconds"`
}

// StoreConfig sets the paths backing the document store.
type StoreConfig struct {
	DataPath    string `mapstructure:"data_path"`
	ProfilePath string `mapstructure:"profile_path"`
}

// SearchConfig tunes result counts and the fallback crawl budget.
type SearchConfig struct {
	DefaultTopK      int `mapstructure:"default_top_k"`
	FallbackMaxPages int `mapstructure:"fallback_max_pages"`
}

// KnowledgeConfig controls service initialization behavior.
type KnowledgeConfig struct {
	PreloadOnInit      bool `mapstructure:"preload_on_init"`
	InitTimeoutSeconds int  `mapstructure:"init_timeout_seconds"`
}

// LoggingConfig toggles zap development features.
type LoggingConfig struct {
	Development bool `mapstructure:"development"`
}

// Load builds a Config from disk/environment.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("SITEKB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("crawler.user_agent",
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36")
	v.SetDefault("crawler.delay_ms", 500)
	v.SetDefault("crawler.max_pages", 50)
	v.SetDefault("crawler.refresh_max_pages", 20)
	v.SetDefault("crawler.priority_keywords", []string{
		"about", "contact", "rules", "procedure", "notification",
		"circular", "judgment", "order", "case", "recruitment",
	})
	v.SetDefault("crawler.priority_paths", []string{
		"index.html", "about.html", "contact.html", "latest/index.html",
		"notification.html", "circulars.html", "bench.html", "causelist.html",
		"display.html", "recruitment.html", "holiday.html", "rules.html",
		"contactus.html",
	})
	v.SetDefault("http.timeout_seconds", 30)
	v.SetDefault("http.fallback_timeout_seconds", 10)
	v.SetDefault("store.data_path", "data/knowledge_base.json")
	v.SetDefault("store.profile_path", "")
	v.SetDefault("search.default_top_k", 3)
	v.SetDefault("search.fallback_max_pages", 10)
	v.SetDefault("knowledge.preload_on_init", false)
	v.SetDefault("knowledge.init_timeout_seconds", 60)
	v.SetDefault("logging.development", true)
}

// Validate enforces required values and reasonable limits.
func (c Config) Validate() error {
	if c.Crawler.WebsiteURL == "" {
		return fmt.Errorf("crawler.website_url must be set")
	}
	u, err := url.Parse(c.Crawler.WebsiteURL)
	if err != nil {
		return fmt.Errorf("crawler.website_url invalid: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("crawler.website_url must be an absolute http(s) URL")
	}
	if c.Crawler.MaxPages <= 0 {
		return fmt.Errorf("crawler.max_pages must be > 0")
	}
	if c.Crawler.RefreshMaxPages <= 0 {
		return fmt.Errorf("crawler.refresh_max_pages must be > 0")
	}
	if c.Crawler.DelayMs < 0 {
		return fmt.Errorf("crawler.delay_ms must be >= 0")
	}
	if c.HTTP.TimeoutSeconds <= 0 {
		return fmt.Errorf("http.timeout_seconds must be > 0")
	}
	if c.HTTP.FallbackTimeoutSeconds <= 0 {
		return fmt.Errorf("http.fallback_timeout_seconds must be > 0")
	}
	if c.Store.DataPath == "" {
		return fmt.Errorf("store.data_path must be set")
	}
	if c.Search.DefaultTopK <= 0 {
		return fmt.Errorf("search.default_top_k must be > 0")
	}
	if c.Search.FallbackMaxPages <= 0 {
		return fmt.Errorf("search.fallback_max_pages must be > 0")
	}
	if c.Knowledge.InitTimeoutSeconds <= 0 {
		return fmt.Errorf("knowledge.init_timeout_seconds must be > 0")
	}
	return nil
}

// RequestTimeout converts the fetch timeout config into a duration.
func (c Config) RequestTimeout() time.Duration {
	return time.Duration(c.HTTP.TimeoutSeconds) * time.Second
}

// FallbackTimeout is the shorter per-request budget used by fallback crawls.
func (c Config) FallbackTimeout() time.Duration {
	return time.Duration(c.HTTP.FallbackTimeoutSeconds) * time.Second
}

// CrawlDelay is the pause between consecutive page fetches.
func (c Config) CrawlDelay() time.Duration {
	return time.Duration(c.Crawler.DelayMs) * time.Millisecond
}

// InitTimeout bounds how long callers wait for first-time initialization.
func (c Config) InitTimeout() time.Duration {
	return time.Duration(c.Knowledge.InitTimeoutSeconds) * time.Second
}

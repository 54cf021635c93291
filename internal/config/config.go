// Package config provides Viper-based configuration management for underdog
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/alanpramil7/underdog/internal/yt"
)

// ErrMissingAPIKey is returned when no YouTube API key is configured
var ErrMissingAPIKey = errors.New("missing YouTube API key: set YOUTUBE_API_KEY or youtube.api_key")

// Config represents the complete underdog configuration
type Config struct {
	YouTube YouTubeConfig `mapstructure:"youtube"`
	Search  SearchConfig  `mapstructure:"search"`
	Stats   StatsConfig   `mapstructure:"stats"`
	Server  ServerConfig  `mapstructure:"server"`
	Links   LinksConfig   `mapstructure:"links"`
	Logging LoggingConfig `mapstructure:"logging"`
	Output  OutputConfig  `mapstructure:"output"`
}

// YouTubeConfig holds the Data API credential and transport settings
type YouTubeConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// SearchConfig holds the default form values offered by every shell
type SearchConfig struct {
	Query      string `mapstructure:"query"`
	MaxResults int    `mapstructure:"max_results"`
	MaxViews   int    `mapstructure:"max_views"`
	MaxSubs    int    `mapstructure:"max_subs"`
	DaysAgo    int    `mapstructure:"days_ago"`
}

// StatsConfig tunes statistics lookups
type StatsConfig struct {
	Concurrency int `mapstructure:"concurrency"`
}

// ServerConfig contains web UI settings
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// LinksConfig sets the hosts used for watch and thumbnail links
type LinksConfig struct {
	WatchHost     string `mapstructure:"watch_host"`
	ThumbnailHost string `mapstructure:"thumbnail_host"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// OutputConfig contains CLI output settings
type OutputConfig struct {
	Colors bool `mapstructure:"colors"`
}

// Defaults returns the search form defaults as query parameters
func (c SearchConfig) Defaults() yt.QueryParameters {
	return yt.QueryParameters{
		Query:      c.Query,
		MaxResults: c.MaxResults,
		MaxViews:   c.MaxViews,
		MaxSubs:    c.MaxSubs,
		DaysAgo:    c.DaysAgo,
	}
}

// LinkBuilder returns the configured link hosts
func (c LinksConfig) LinkBuilder() yt.LinkBuilder {
	return yt.LinkBuilder{WatchHost: c.WatchHost, ThumbnailHost: c.ThumbnailHost}
}

// RequireAPIKey returns ErrMissingAPIKey when no key is configured
func (c *Config) RequireAPIKey() error {
	if strings.TrimSpace(c.YouTube.APIKey) == "" {
		return ErrMissingAPIKey
	}
	return nil
}

// Load reads configuration from file and environment variables
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(".underdog")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/underdog")
	}

	// UNDERDOG_SEARCH_MAX_VIEWS -> search.max_views
	v.SetEnvPrefix("UNDERDOG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	// The key also answers to the variable names used by the YouTube tooling
	_ = v.BindEnv("youtube.api_key", "UNDERDOG_YOUTUBE_API_KEY", "YOUTUBE_API_KEY", "GOOGLE_API_KEY")
	v.SetDefault("youtube.timeout", 30*time.Second)

	v.SetDefault("search.query", "day trading")
	v.SetDefault("search.max_results", 150)
	v.SetDefault("search.max_views", 100)
	v.SetDefault("search.max_subs", 1000)
	v.SetDefault("search.days_ago", 7)

	v.SetDefault("stats.concurrency", 4)

	v.SetDefault("server.addr", "127.0.0.1:8501")

	v.SetDefault("links.watch_host", yt.DefaultWatchHost)
	v.SetDefault("links.thumbnail_host", yt.DefaultThumbnailHost)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	v.SetDefault("output.colors", true)
}

func validate(cfg *Config) error {
	if cfg.YouTube.Timeout < 0 {
		return fmt.Errorf("youtube.timeout must not be negative")
	}
	if cfg.Stats.Concurrency < 1 {
		return fmt.Errorf("stats.concurrency must be at least 1")
	}
	if cfg.Links.WatchHost == "" || cfg.Links.ThumbnailHost == "" {
		return fmt.Errorf("links.watch_host and links.thumbnail_host are required")
	}
	switch cfg.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format must be text or json, got %q", cfg.Logging.Format)
	}
	if err := cfg.Search.Defaults().Validate(); err != nil {
		return fmt.Errorf("search defaults: %w", err)
	}
	return nil
}

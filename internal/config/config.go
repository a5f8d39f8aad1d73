package config

import (
	"fmt"
	"strings"
	"time"

	"folio/internal/common"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Site      SiteConfig      `mapstructure:"site"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Log       LogConfig       `mapstructure:"log"`
	Timing    TimingConfig    `mapstructure:"timing"`
	Submit    SubmitConfig    `mapstructure:"submit"`
	Browser   BrowserConfig   `mapstructure:"browser"`
}

// ServerConfig holds preview server settings.
type ServerConfig struct {
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

// SiteConfig locates the static portfolio.
type SiteConfig struct {
	Dir   string `mapstructure:"dir"`
	Index string `mapstructure:"index"`
}

// CORSConfig holds CORS policy settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	AllowedMethods []string `mapstructure:"allowed_methods"`
	AllowedHeaders []string `mapstructure:"allowed_headers"`
}

// RateLimitConfig holds rate limiting settings.
type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// TimingConfig holds page behavior timings (milliseconds and pixels for
// YAML/env compat).
type TimingConfig struct {
	ScrollThrottleMs      int     `mapstructure:"scroll_throttle_ms"`
	InputDebounceMs       int     `mapstructure:"input_debounce_ms"`
	NotificationDisplayMs int     `mapstructure:"notification_display_ms"`
	NotificationFadeMs    int     `mapstructure:"notification_fade_ms"`
	HeaderScrollThreshold float64 `mapstructure:"header_scroll_threshold"`
	BackToTopThreshold    float64 `mapstructure:"back_to_top_threshold"`
	LazyMarginPx          float64 `mapstructure:"lazy_margin_px"`
}

// SubmitConfig tunes the simulated contact form submission.
type SubmitConfig struct {
	LatencyMs   int     `mapstructure:"latency_ms"`
	FailureRate float64 `mapstructure:"failure_rate"`
}

// BrowserConfig holds settings for driving a real browser page.
type BrowserConfig struct {
	Headless       bool   `mapstructure:"headless"`
	ControlURL     string `mapstructure:"control_url"`
	PollIntervalMs int    `mapstructure:"poll_interval_ms"`
	TimeoutSec     int    `mapstructure:"timeout_sec"`
}

// Load reads configuration from config.yaml and environment variables.
// Environment variables use the FOLIO_ prefix and underscore separators.
// Example: FOLIO_SERVER_PORT overrides server.port in config.yaml.
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile is Load with an explicit config file. An empty path searches
// the default locations.
func LoadFile(path string) (*Config, error) {
	v := viper.New()

	// Config file settings
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Load .env file if it exists
	_ = godotenv.Load()

	// Environment variable settings
	v.SetEnvPrefix("FOLIO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Read config file (optional - env vars can provide everything)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || path != "" {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	// Handle comma-separated origins from env var
	if origins := v.GetString("cors.allowed_origins"); origins != "" && strings.Contains(origins, ",") {
		cfg.CORS.AllowedOrigins = splitList(origins)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("site.dir", "./web")
	v.SetDefault("site.index", "index.html")
	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("cors.allowed_methods", []string{"GET", "HEAD", "OPTIONS"})
	v.SetDefault("cors.allowed_headers", []string{"Origin", "Content-Type"})
	v.SetDefault("rate_limit.requests_per_second", 20)
	v.SetDefault("rate_limit.burst", 40)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("timing.scroll_throttle_ms", 100)
	v.SetDefault("timing.input_debounce_ms", 300)
	v.SetDefault("timing.notification_display_ms", 5000)
	v.SetDefault("timing.notification_fade_ms", 300)
	v.SetDefault("timing.header_scroll_threshold", 50)
	v.SetDefault("timing.back_to_top_threshold", 300)
	v.SetDefault("timing.lazy_margin_px", 50)
	v.SetDefault("submit.latency_ms", 1500)
	v.SetDefault("submit.failure_rate", 0.1)
	v.SetDefault("browser.headless", true)
	v.SetDefault("browser.control_url", "")
	v.SetDefault("browser.poll_interval_ms", 50)
	v.SetDefault("browser.timeout_sec", 30)
}

// Validate rejects settings the page behaviors cannot run with.
func (c *Config) Validate() error {
	positive := map[string]int{
		"timing.scroll_throttle_ms":      c.Timing.ScrollThrottleMs,
		"timing.input_debounce_ms":       c.Timing.InputDebounceMs,
		"timing.notification_display_ms": c.Timing.NotificationDisplayMs,
		"timing.notification_fade_ms":    c.Timing.NotificationFadeMs,
		"browser.poll_interval_ms":       c.Browser.PollIntervalMs,
	}
	for key, val := range positive {
		if val <= 0 {
			return common.NewValidationError(fmt.Sprintf("%s must be positive, got %d", key, val))
		}
	}
	if c.Submit.LatencyMs < 0 {
		return common.NewValidationError(fmt.Sprintf("submit.latency_ms must not be negative, got %d", c.Submit.LatencyMs))
	}
	if c.Submit.FailureRate < 0 || c.Submit.FailureRate > 1 {
		return common.NewValidationError(fmt.Sprintf("submit.failure_rate must be within [0,1], got %g", c.Submit.FailureRate))
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return common.NewValidationError(fmt.Sprintf("server.port out of range: %d", c.Server.Port))
	}
	return nil
}

// ScrollThrottle returns the scroll handler throttle interval.
func (t TimingConfig) ScrollThrottle() time.Duration {
	return time.Duration(t.ScrollThrottleMs) * time.Millisecond
}

// InputDebounce returns the form input debounce wait.
func (t TimingConfig) InputDebounce() time.Duration {
	return time.Duration(t.InputDebounceMs) * time.Millisecond
}

// NotificationDisplay returns how long notifications stay before fading.
func (t TimingConfig) NotificationDisplay() time.Duration {
	return time.Duration(t.NotificationDisplayMs) * time.Millisecond
}

// NotificationFade returns the fade duration before removal.
func (t TimingConfig) NotificationFade() time.Duration {
	return time.Duration(t.NotificationFadeMs) * time.Millisecond
}

// Latency returns the simulated submission latency.
func (s SubmitConfig) Latency() time.Duration {
	return time.Duration(s.LatencyMs) * time.Millisecond
}

// PollInterval returns how often browser events are drained.
func (b BrowserConfig) PollInterval() time.Duration {
	return time.Duration(b.PollIntervalMs) * time.Millisecond
}

// Timeout returns the browser navigation timeout.
func (b BrowserConfig) Timeout() time.Duration {
	return time.Duration(b.TimeoutSec) * time.Second
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

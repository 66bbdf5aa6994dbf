package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
)

// Known LLM providers.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// Config holds all application configuration.
type Config struct {
	Version  int            `toml:"version"`
	Feeds    FeedsConfig    `toml:"feeds"`
	LLM      LLMConfig      `toml:"llm"`
	Site     SiteConfig     `toml:"site"`
	Cost     CostConfig     `toml:"cost"`
	Store    StoreConfig    `toml:"store"`
	Email    EmailConfig    `toml:"email"`
	Schedule ScheduleConfig `toml:"schedule"`
}

type FeedsConfig struct {
	Sources      []string `toml:"sources"`
	LookbackDays int      `toml:"lookback_days"`
}

type LLMConfig struct {
	Provider       string `toml:"provider"`
	Model          string `toml:"model"`
	APIKey         string `toml:"api_key"`
	Endpoint       string `toml:"endpoint"`
	MaxAttempts    int    `toml:"max_attempts"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	MaxConcurrent  int    `toml:"max_concurrent"`
}

type SiteConfig struct {
	OutputDir   string `toml:"output_dir"`
	Title       string `toml:"title"`
	AdvisoryURL string `toml:"advisory_url"`
}

// CostConfig carries the per-call token averages and per-token prices used
// for the pre-run estimate and the post-run reconciliation.
type CostConfig struct {
	InputPricePerToken  float64 `toml:"input_price_per_token"`
	OutputPricePerToken float64 `toml:"output_price_per_token"`
	AssumedSelected     float64 `toml:"assumed_selected_fraction"`
	ClassifyInTokens    int     `toml:"classify_input_tokens"`
	ClassifyOutTokens   int     `toml:"classify_output_tokens"`
	BlogInTokens        int     `toml:"blog_input_tokens"`
	BlogOutTokens       int     `toml:"blog_output_tokens"`
	SocialInTokens      int     `toml:"social_input_tokens"`
	SocialOutTokens     int     `toml:"social_output_tokens"`
}

// StoreConfig points at the run-history database. An empty path disables
// persistence and every run regenerates the full site.
type StoreConfig struct {
	Path string `toml:"path"`
}

type EmailConfig struct {
	Provider string `toml:"provider"`
	SMTPHost string `toml:"smtp_host"`
	SMTPPort int    `toml:"smtp_port"`
	SMTPUser string `toml:"smtp_user"`
	SMTPPass string `toml:"smtp_pass"`
	FromAddr string `toml:"from_address"`
	ToAddr   string `toml:"to_address"`
}

// Enabled reports whether a run report should be mailed.
func (e EmailConfig) Enabled() bool {
	return e.SMTPHost != "" && e.ToAddr != ""
}

type ScheduleConfig struct {
	Cron     string `toml:"cron"`
	Timezone string `toml:"timezone"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Version: 1,
		Feeds: FeedsConfig{
			Sources: []string{
				"https://www.epravo.cz/rss.php",
				"https://advokatnidenik.cz/feed/",
				"https://www.pravniprostor.cz/rss/aktuality",
			},
			LookbackDays: 30,
		},
		LLM: LLMConfig{
			Provider:       ProviderOpenAI,
			Model:          "gpt-4o-mini",
			MaxAttempts:    3,
			TimeoutSeconds: 120,
			MaxConcurrent:  4,
		},
		Site: SiteConfig{
			OutputDir:   "site",
			Title:       "Právní novinky – AI generátor",
			AdvisoryURL: "https://www.springwalk.cz/pravni-poradenstvi/",
		},
		Cost: CostConfig{
			InputPricePerToken:  0.15 / 1_000_000,
			OutputPricePerToken: 0.60 / 1_000_000,
			AssumedSelected:     0.4,
			ClassifyInTokens:    300,
			ClassifyOutTokens:   1,
			BlogInTokens:        350,
			BlogOutTokens:       700,
			SocialInTokens:      300,
			SocialOutTokens:     220,
		},
		Schedule: ScheduleConfig{
			Cron:     "0 6 * * *",
			Timezone: "Europe/Prague",
		},
		Email: EmailConfig{
			Provider: "smtp",
			SMTPPort: 587,
		},
	}
}

// ConfigDir returns the platform-appropriate config directory.
func ConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "lexwatch"), nil
}

// ConfigPath returns the full path to the config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads config from path, or from the default location when path is
// empty. A missing default file is not an error; defaults are used instead.
// Environment overrides are applied either way.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		defaultPath, err := ConfigPath()
		if err != nil {
			return nil, err
		}
		if _, err := os.Stat(defaultPath); err == nil {
			path = defaultPath
		}
	}

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv pulls secrets and the legacy MODEL_NAME/DAYS_BACK overrides from
// the environment. LEXWATCH_API_KEY wins over the provider-specific names.
func (c *Config) applyEnv() {
	if v := os.Getenv("LEXWATCH_API_KEY"); v != "" {
		c.LLM.APIKey = v
	} else if c.LLM.APIKey == "" {
		switch c.LLM.Provider {
		case ProviderOpenAI:
			c.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		case ProviderAnthropic:
			c.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		}
	}

	if v := os.Getenv("MODEL_NAME"); v != "" {
		c.LLM.Model = v
	}
	if v := os.Getenv("DAYS_BACK"); v != "" {
		if days, err := strconv.Atoi(v); err == nil && days > 0 {
			c.Feeds.LookbackDays = days
		}
	}
}

// Validate checks invariants that would otherwise surface deep in a run.
func (c *Config) Validate() error {
	if len(c.Feeds.Sources) == 0 {
		return fmt.Errorf("config: no feed sources configured")
	}
	for _, u := range c.Feeds.Sources {
		if _, err := url.ParseRequestURI(u); err != nil {
			return fmt.Errorf("config: invalid feed URL: %s", u)
		}
	}
	if c.Feeds.LookbackDays < 1 {
		return fmt.Errorf("config: lookback_days must be >= 1, got %d", c.Feeds.LookbackDays)
	}
	switch c.LLM.Provider {
	case ProviderOpenAI, ProviderAnthropic:
	default:
		return fmt.Errorf("config: unknown LLM provider: %s", c.LLM.Provider)
	}
	if c.Cost.InputPricePerToken < 0 || c.Cost.OutputPricePerToken < 0 {
		return fmt.Errorf("config: token prices must be non-negative")
	}
	if c.Cost.AssumedSelected < 0 || c.Cost.AssumedSelected > 1 {
		return fmt.Errorf("config: assumed_selected_fraction must be in [0,1], got %v", c.Cost.AssumedSelected)
	}
	return nil
}

// Save writes config to the default location.
func (c *Config) Save() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	path, err := ConfigPath()
	if err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(c)
}

package config

import (
	"fmt"
	"os"
	"strconv"

	"FilingSentinel/internal/model"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	SecAPI struct {
		APIKey string `yaml:"api_key"`
	} `yaml:"secapi"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Report struct {
		LookbackDays       int `yaml:"lookback_days"`
		MaxFilingsPerFiler int `yaml:"max_filings_per_filer"`
		MaxMessageLength   int `yaml:"max_message_length"`
	} `yaml:"report"`
	Schedule struct {
		DailyCron string `yaml:"daily_cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Filers []model.Filer `yaml:"filers"`
	Proxy  string        `yaml:"proxy"`
}

// defaultFilers is the built-in 13D/13G watchlist, used when the config
// file does not provide one.
var defaultFilers = []model.Filer{
	{Name: "Point72 Asset Management", CIK: "1603466"},
	{Name: "Elliott", CIK: "1791786"},
	{Name: "Starboard Value", CIK: "1517137"},
	{Name: "Jane Street", CIK: "1595888"},
	{Name: "Renaissance", CIK: "1037389"},
	{Name: "Citadel", CIK: "1423053"},
	{Name: "Millennium", CIK: "1273087"},
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("SEC_API_KEY"); v != "" {
		cfg.SecAPI.APIKey = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("LOOKBACK_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Report.LookbackDays = n
		}
	}
	if v := os.Getenv("CRON_DAILY"); v != "" {
		cfg.Schedule.DailyCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}

	// Defaults. Credentials deliberately have none: a missing key or
	// token must fail validation, never fall back to an embedded value.
	if cfg.Report.LookbackDays == 0 {
		cfg.Report.LookbackDays = 365
	}
	if cfg.Report.MaxFilingsPerFiler == 0 {
		cfg.Report.MaxFilingsPerFiler = 5
	}
	if cfg.Report.MaxMessageLength == 0 {
		// A bit lower than Telegram's 4096 hard limit for safety.
		cfg.Report.MaxMessageLength = 4000
	}
	if cfg.Schedule.DailyCron == "" {
		cfg.Schedule.DailyCron = "0 0 13 * * *"
	}
	if len(cfg.Filers) == 0 {
		cfg.Filers = defaultFilers
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.SecAPI.APIKey == "" {
		return fmt.Errorf("secapi.api_key is required (env SEC_API_KEY)")
	}
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required (env TELEGRAM_BOT_TOKEN)")
	}
	if c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required (env TELEGRAM_CHAT_ID)")
	}
	if c.Report.LookbackDays < 0 {
		return fmt.Errorf("report.lookback_days must not be negative")
	}
	if c.Report.MaxFilingsPerFiler < 0 {
		return fmt.Errorf("report.max_filings_per_filer must not be negative")
	}
	if c.Report.MaxMessageLength <= 0 {
		return fmt.Errorf("report.max_message_length must be positive")
	}
	for i, f := range c.Filers {
		if f.Name == "" || f.CIK == "" {
			return fmt.Errorf("filers[%d]: name and cik are both required", i)
		}
	}
	return nil
}

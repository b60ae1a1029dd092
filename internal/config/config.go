package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"ChipSentinel/internal/chips"
)

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	DataSource struct {
		BaseURL     string  `yaml:"base_url"`
		APIKey      string  `yaml:"api_key"`
		Symbol      string  `yaml:"symbol"`
		CSVPath     string  `yaml:"csv_path"`
		CSVEncoding string  `yaml:"csv_encoding"`
		FloatShares float64 `yaml:"float_shares"`
		HistoryDays int     `yaml:"history_days"`
	} `yaml:"data_source"`
	Chip     chips.Params `yaml:"chip"`
	Schedule struct {
		DailyCron string `yaml:"daily_cron"`
		SyncCron  string `yaml:"sync_cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`
}

// LoadDotEnv loads variables from .env files into the environment without
// overriding variables that are already set. Missing files are ignored.
func LoadDotEnv(files ...string) error {
	for _, f := range files {
		if _, err := os.Stat(f); os.IsNotExist(err) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
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
	envString("TELEGRAM_BOT_TOKEN", &cfg.Telegram.BotToken)
	envString("TELEGRAM_CHAT_ID", &cfg.Telegram.ChatID)
	envString("BARS_BASE_URL", &cfg.DataSource.BaseURL)
	envString("BARS_API_KEY", &cfg.DataSource.APIKey)
	envString("SYMBOL", &cfg.DataSource.Symbol)
	envString("CSV_PATH", &cfg.DataSource.CSVPath)
	envString("HTTPS_PROXY", &cfg.Proxy)
	envString("CRON_DAILY", &cfg.Schedule.DailyCron)
	envString("CRON_SYNC", &cfg.Schedule.SyncCron)
	envString("SQLITE_PATH", &cfg.Database.SQLitePath)
	envInt("CHIP_ACCURACY_FACTOR", &cfg.Chip.AccuracyFactor)
	envInt("CHIP_RANGE", &cfg.Chip.Range)
	envInt("CHIP_TRADING_DAYS", &cfg.Chip.TradingDays)
	if v := os.Getenv("FLOAT_SHARES"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.DataSource.FloatShares = f
		}
	}

	// Defaults
	defaults := chips.DefaultParams()
	if cfg.Chip.AccuracyFactor == 0 {
		cfg.Chip.AccuracyFactor = defaults.AccuracyFactor
	}
	if cfg.Chip.TradingDays == 0 {
		cfg.Chip.TradingDays = defaults.TradingDays
	}
	// range 0 is meaningful (anchor at the latest bar), so only a missing
	// chip section takes the default
	if !hasChipRange(data) && os.Getenv("CHIP_RANGE") == "" {
		cfg.Chip.Range = defaults.Range
	}
	if cfg.DataSource.Symbol == "" {
		cfg.DataSource.Symbol = "600000"
	}
	if cfg.DataSource.CSVEncoding == "" {
		cfg.DataSource.CSVEncoding = "utf-8"
	}
	if cfg.DataSource.HistoryDays == 0 {
		cfg.DataSource.HistoryDays = cfg.Chip.Range + cfg.Chip.TradingDays
	}
	if cfg.Schedule.DailyCron == "" {
		cfg.Schedule.DailyCron = "0 30 15 * * 1-5"
	}
	if cfg.Schedule.SyncCron == "" {
		cfg.Schedule.SyncCron = "0 0 9 * * 1-5"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/chip_sentinel.db"
	}

	return cfg, nil
}

func envString(key string, dst *string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func envInt(key string, dst *int) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func hasChipRange(data []byte) bool {
	var raw struct {
		Chip struct {
			Range *int `yaml:"range"`
		} `yaml:"chip"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return false
	}
	return raw.Chip.Range != nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required")
	}
	if c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required")
	}
	if c.DataSource.BaseURL == "" && c.DataSource.CSVPath == "" && c.DataSource.FloatShares <= 0 {
		return fmt.Errorf("data_source needs base_url, csv_path or float_shares for yahoo")
	}
	if err := c.Chip.Validate(); err != nil {
		return fmt.Errorf("chip: %w", err)
	}
	if c.Chip.Range < 0 {
		return fmt.Errorf("chip.range must not be negative")
	}
	if c.DataSource.HistoryDays < c.Chip.Range+c.Chip.TradingDays {
		return fmt.Errorf("data_source.history_days %d is shorter than chip.range+chip.trading_days", c.DataSource.HistoryDays)
	}
	return nil
}

package config

import (
	"fmt"
	"net/url"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	DataSource struct {
		BaseURL string `yaml:"base_url"` // empty means Yahoo Finance
		APIKey  string `yaml:"api_key"`
	} `yaml:"data_source"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"` // empty disables history
	} `yaml:"database"`
	Output struct {
		CSVDir   string `yaml:"csv_dir"`
		ChartDir string `yaml:"chart_dir"`
	} `yaml:"output"`
	History struct {
		ListLimit int `yaml:"list_limit"`
	} `yaml:"history"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
// A missing file is not an error; defaults apply.
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
	if v := os.Getenv("DATA_SOURCE_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("DATA_SOURCE_API_KEY"); v != "" {
		cfg.DataSource.APIKey = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("CSV_DIR"); v != "" {
		cfg.Output.CSVDir = v
	}
	if v := os.Getenv("CHART_DIR"); v != "" {
		cfg.Output.ChartDir = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.Output.CSVDir == "" {
		cfg.Output.CSVDir = "."
	}
	if cfg.Output.ChartDir == "" {
		cfg.Output.ChartDir = "charts"
	}
	if cfg.History.ListLimit == 0 {
		cfg.History.ListLimit = 20
	}

	return cfg, nil
}

// Validate checks that all set fields are usable.
func (c *Config) Validate() error {
	if c.Proxy != "" {
		if _, err := url.Parse(c.Proxy); err != nil {
			return fmt.Errorf("proxy is not a valid URL: %w", err)
		}
	}
	if c.DataSource.APIKey != "" && c.DataSource.BaseURL == "" {
		return fmt.Errorf("data_source.api_key is set but data_source.base_url is empty")
	}
	if c.History.ListLimit < 0 {
		return fmt.Errorf("history.list_limit must not be negative")
	}
	return nil
}

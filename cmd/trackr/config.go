package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Logging struct {
		Level    string `yaml:"level"`
		Encoding string `yaml:"encoding"`
		File     string `yaml:"file"`
	} `yaml:"logging"`
	Storage struct {
		Path string `yaml:"path"`
	} `yaml:"storage"`
	DexScreener struct {
		BaseURL   string `yaml:"base_url"`
		TimeoutMs int    `yaml:"timeout_ms"`
	} `yaml:"dexscreener"`
}

func defaultConfig() *Config {
	var cfg Config
	cfg.Server.Port = 8080
	cfg.Logging.Level = "info"
	cfg.Logging.Encoding = "json"
	cfg.Storage.Path = "trackr.db"
	cfg.DexScreener.TimeoutMs = 10000
	return &cfg
}

// loadConfig reads path over the defaults. A missing file is not an error.
func loadConfig(path string) (*Config, error) {
	cfg := defaultConfig()

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(cfg); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return cfg, nil
}

// applyEnv lets the environment (or .env) override the file.
func (c *Config) applyEnv(getenv func(string) string) error {
	if v := getenv("TRACKR_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("TRACKR_PORT: %w", err)
		}
		c.Server.Port = port
	}
	if v := getenv("TRACKR_DB_PATH"); v != "" {
		c.Storage.Path = v
	}
	if v := getenv("TRACKR_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := getenv("DEXSCREENER_BASE_URL"); v != "" {
		c.DexScreener.BaseURL = v
	}
	return nil
}

package search

import "time"

type Config struct {
	Workers     int           `yaml:"workers"`
	PageTimeout time.Duration `yaml:"page_timeout"`
}

// DefaultConfig returns a default aggregation configuration
func DefaultConfig() *Config {
	return &Config{
		Workers:     5,
		PageTimeout: 15 * time.Second,
	}
}

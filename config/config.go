package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"serpscope/analyzer"
	"serpscope/crawler"
	"serpscope/search"
	"serpscope/serp"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	AppPort       int
	PprofPort     int
	ProxyURL      string
	ChromePath    string
	LogLevel      string
	DebugDumpPath string
	TunablesPath  string
	Tunables      *Tunables
}

// Tunables are the knobs of every component, read from an optional YAML file.
// Sections that are absent keep their defaults.
type Tunables struct {
	Server    ServerConfig         `yaml:"server"`
	Render    crawler.RenderConfig `yaml:"render"`
	Fetch     crawler.FetchConfig  `yaml:"fetch"`
	Extract   serp.Config          `yaml:"extract"`
	Analyze   analyzer.Config      `yaml:"analyze"`
	Aggregate search.Config        `yaml:"aggregate"`
}

type ServerConfig struct {
	RequestTimeout  time.Duration `yaml:"request_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// DefaultTunables returns the defaults of every component
func DefaultTunables() *Tunables {
	return &Tunables{
		Server: ServerConfig{
			RequestTimeout:  120 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Render:    *crawler.DefaultRenderConfig(),
		Fetch:     *crawler.DefaultFetchConfig(),
		Extract:   *serp.DefaultConfig(),
		Analyze:   *analyzer.DefaultConfig(),
		Aggregate: *search.DefaultConfig(),
	}
}

// Load reads the configuration from the environment, after loading a .env file
// from the working directory when there is one.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	appPort, err := getEnvInt("APP_PORT", 0)
	if err != nil {
		return nil, err
	}
	if appPort == 0 {
		return nil, fmt.Errorf("environment variable APP_PORT is required but not set")
	}
	pprofPort, err := getEnvInt("PPROF_PORT", 0)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		AppPort:       appPort,
		PprofPort:     pprofPort,
		ProxyURL:      os.Getenv("PROXY_URL"),
		ChromePath:    os.Getenv("CHROME_PATH"),
		LogLevel:      getEnvDefault("LOG_LEVEL", "info"),
		DebugDumpPath: os.Getenv("DEBUG_DUMP_PATH"),
		TunablesPath:  os.Getenv("TUNABLES_PATH"),
	}

	tunables, err := LoadTunables(cfg.TunablesPath)
	if err != nil {
		return nil, err
	}
	cfg.Tunables = tunables
	cfg.applyOverrides()

	return cfg, nil
}

// LoadTunables reads the YAML file at path over the defaults. An empty path returns
// the defaults.
func LoadTunables(path string) (*Tunables, error) {
	tunables := DefaultTunables()
	if path == "" {
		return tunables, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tunables: %w", err)
	}
	if err := yaml.Unmarshal(raw, tunables); err != nil {
		return nil, fmt.Errorf("parse tunables %s: %w", path, err)
	}
	return tunables, nil
}

// applyOverrides lets environment variables win over the tunables file.
func (c *Config) applyOverrides() {
	if c.ProxyURL != "" {
		c.Tunables.Fetch.ProxyURL = c.ProxyURL
		c.Tunables.Render.ProxyServer = c.ProxyURL
	}
	if c.ChromePath != "" {
		c.Tunables.Render.ExecPath = c.ChromePath
	}
	if c.DebugDumpPath != "" {
		c.Tunables.Render.DebugDumpPath = c.DebugDumpPath
	}
}

func getEnvDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("environment variable %s: %w", key, err)
	}
	return n, nil
}

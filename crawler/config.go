package crawler

import (
	"time"
)

// RenderConfig drives the headless browser that renders results pages.
type RenderConfig struct {
	URLTemplate      string        `yaml:"url_template"`
	UserAgent        string        `yaml:"user_agent"`
	AcceptLanguage   string        `yaml:"accept_language"`
	ProxyServer      string        `yaml:"proxy_server"`
	ExecPath         string        `yaml:"exec_path"`
	WindowWidth      int           `yaml:"window_width"`
	WindowHeight     int           `yaml:"window_height"`
	Timeout          time.Duration `yaml:"timeout"`
	SettleDelay      time.Duration `yaml:"settle_delay"`
	ScrollDelay      time.Duration `yaml:"scroll_delay"`
	ConsentSelectors []string      `yaml:"consent_selectors"`
	ResultsSelector  string        `yaml:"results_selector"`
	DebugDumpPath    string        `yaml:"debug_dump_path"`
}

// FetchConfig drives the HTTP client that downloads result pages.
type FetchConfig struct {
	UserAgent         string        `yaml:"user_agent"`
	RandomUserAgent   bool          `yaml:"random_user_agent"`
	AcceptLanguage    string        `yaml:"accept_language"`
	ProxyURL          string        `yaml:"proxy_url"`
	RequestTimeout    time.Duration `yaml:"request_timeout"`
	MaxBodySize       int           `yaml:"max_body_size"`
	RequestsPerSecond float64       `yaml:"requests_per_second"`
	Burst             int           `yaml:"burst"`
	AllowedSchemes    []string      `yaml:"allowed_schemes"`
}

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// DefaultRenderConfig returns a default browser configuration
func DefaultRenderConfig() *RenderConfig {
	return &RenderConfig{
		URLTemplate:    "https://www.google.com/search?q=%s&gl=fr&hl=fr",
		UserAgent:      defaultUserAgent,
		AcceptLanguage: "fr-FR,fr;q=0.9,en;q=0.6",
		WindowWidth:    1366,
		WindowHeight:   900,
		Timeout:        45 * time.Second,
		SettleDelay:    3 * time.Second,
		ScrollDelay:    1 * time.Second,
		ConsentSelectors: []string{
			`button#L2AGLb`,
			`button#W0wltc`,
			`form[action*="consent"] button`,
		},
		ResultsSelector: `div#search, div#rso, div#main`,
	}
}

// DefaultFetchConfig returns a default page fetcher configuration
func DefaultFetchConfig() *FetchConfig {
	return &FetchConfig{
		UserAgent:         defaultUserAgent,
		AcceptLanguage:    "fr-FR,fr;q=0.9,en;q=0.6",
		RequestTimeout:    15 * time.Second,
		MaxBodySize:       10 * 1024 * 1024,
		RequestsPerSecond: 10,
		Burst:             5,
		AllowedSchemes:    []string{"http", "https"},
	}
}

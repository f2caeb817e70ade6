package analyzer

// Sentinels reported in place of missing page elements.
const (
	NoTitle           = "Aucun titre"
	NoMetaDescription = "Aucune meta description"
	NoH1              = "Aucun H1"
	UnknownSchemaType = "Unknown"
)

type Config struct {
	// VideoHosts are matched as substrings of iframe src attributes.
	VideoHosts []string `yaml:"video_hosts"`
	// ContentExtraction enables the main-content word count (trafilatura, then readability).
	ContentExtraction bool `yaml:"content_extraction"`
}

// DefaultConfig returns the analyzer configuration used when no tunables file overrides it
func DefaultConfig() *Config {
	return &Config{
		VideoHosts: []string{
			"youtube.com",
			"youtube-nocookie.com",
			"youtu.be",
			"vimeo.com",
			"dailymotion.com",
			"dai.ly",
			"player.twitch.tv",
			"wistia.net",
		},
		ContentExtraction: true,
	}
}

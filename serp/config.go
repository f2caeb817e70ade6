package serp

// Config holds the selectors and plausibility thresholds of the extraction cascades.
// All of them can be overridden from the tunables file.
type Config struct {
	ProviderBaseURL string   `yaml:"provider_base_url"`
	ProviderDomains []string `yaml:"provider_domains"`
	Language        string   `yaml:"language"`
	MaxResults      int      `yaml:"max_results"`

	OrganicSelectors     []string `yaml:"organic_selectors"`
	HeadingSelector      string   `yaml:"heading_selector"`
	MinOrganicCandidates int      `yaml:"min_organic_candidates"`

	PAASelectors       []string `yaml:"paa_selectors"`
	PAAAttribute       string   `yaml:"paa_attribute"`
	ExpandableSelector string   `yaml:"expandable_selector"`
	QuestionMinLength  int      `yaml:"question_min_length"`
	QuestionMaxLength  int      `yaml:"question_max_length"`

	RelatedSelectors []string `yaml:"related_selectors"`
	RelatedLabels    []string `yaml:"related_labels"`
	RelatedMinLength int      `yaml:"related_min_length"`
	RelatedMaxLength int      `yaml:"related_max_length"`
	TailAnchors      int      `yaml:"tail_anchors"`
}

// DefaultConfig returns selectors for google.com rendered with hl=fr.
func DefaultConfig() *Config {
	return &Config{
		ProviderBaseURL: "https://www.google.com/",
		ProviderDomains: []string{
			"google.com",
			"google.fr",
			"googleusercontent.com",
			"googleadservices.com",
			"gstatic.com",
		},
		Language:   "fr",
		MaxResults: 10,

		OrganicSelectors:     []string{"div.tF2Cxc", "div.g"},
		HeadingSelector:      `h3, [role="heading"]`,
		MinOrganicCandidates: 5,

		PAASelectors:       []string{"span.CSkcDe"},
		PAAAttribute:       "data-q",
		ExpandableSelector: `[aria-expanded], [role="button"]`,
		QuestionMinLength:  10,
		QuestionMaxLength:  200,

		RelatedSelectors: []string{"div.B2VR9.CJHX3e"},
		RelatedLabels: []string{
			"Recherches associées",
			"Autres recherches",
			"Related searches",
			"People also search for",
		},
		RelatedMinLength: 3,
		RelatedMaxLength: 100,
		TailAnchors:      60,
	}
}

package analyzer

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
	"golang.org/x/net/html"
)

var ErrInvalidPageURL = errors.New("page url is not absolute")

// PageAnalysis holds the content metrics computed for one fetched page.
type PageAnalysis struct {
	Title            string      `json:"page_title"`
	MetaDescription  string      `json:"meta_description"`
	Headings         Headings    `json:"headers"`
	WordCount        int         `json:"word_count"`
	ContentWordCount int         `json:"content_word_count"`
	InternalLinks    int         `json:"internal_links"`
	ExternalLinks    int         `json:"external_links"`
	Media            MediaCounts `json:"media"`
	StructuredData   []string    `json:"structured_data"`
	OpenGraph        OpenGraph   `json:"open_graph"`
}

type Headings struct {
	H1 string   `json:"H1"`
	H2 []string `json:"H2"`
}

type MediaCounts struct {
	Images         int `json:"images"`
	Videos         int `json:"videos"`
	Audios         int `json:"audios"`
	EmbeddedVideos int `json:"embedded_videos"`
}

type OpenGraph struct {
	Title    string `json:"title"`
	Type     string `json:"type"`
	SiteName string `json:"site_name"`
}

type Analyzer struct {
	config *Config
	logger *zap.Logger
}

func NewAnalyzer(config *Config, logger *zap.Logger) *Analyzer {
	if config == nil {
		config = DefaultConfig()
	}
	return &Analyzer{
		config: config,
		logger: logger,
	}
}

// Analyze computes the metrics of html fetched from pageURL. Missing elements are
// reported with sentinels; an error is returned only when pageURL is not absolute or
// the markup cannot be parsed at all.
func (a *Analyzer) Analyze(pageURL, htmlContent string) (*PageAnalysis, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("parse page url %q: %w", pageURL, err)
	}
	if !base.IsAbs() || base.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPageURL, pageURL)
	}

	root, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return nil, fmt.Errorf("parse html of %s: %w", pageURL, err)
	}
	doc := goquery.NewDocumentFromNode(root)

	analysis := &PageAnalysis{
		Title:           textOr(doc.Find("title").First(), NoTitle),
		MetaDescription: metaDescription(doc),
		Headings: Headings{
			H1: textOr(doc.Find("h1").First(), NoH1),
			H2: headingTexts(doc.Find("h2")),
		},
		WordCount:      countWords(doc.Find("body").Nodes),
		Media:          a.mediaCounts(doc),
		StructuredData: a.structuredDataTypes(doc, pageURL),
		OpenGraph:      a.openGraph(pageURL, htmlContent),
	}
	analysis.InternalLinks, analysis.ExternalLinks = classifyLinks(doc, base)
	analysis.ContentWordCount = a.contentWordCount(htmlContent, base)

	a.logger.Debug("page analyzed",
		zap.String("url", pageURL),
		zap.Int("word_count", analysis.WordCount),
		zap.Int("internal_links", analysis.InternalLinks),
		zap.Int("external_links", analysis.ExternalLinks),
		zap.Strings("structured_data", analysis.StructuredData))

	return analysis, nil
}

func metaDescription(doc *goquery.Document) string {
	description := NoMetaDescription
	doc.Find("meta[name]").EachWithBreak(func(i int, s *goquery.Selection) bool {
		name, _ := s.Attr("name")
		if !strings.EqualFold(strings.TrimSpace(name), "description") {
			return true
		}
		if content := strings.TrimSpace(s.AttrOr("content", "")); content != "" {
			description = content
		}
		return false
	})
	return description
}

func headingTexts(s *goquery.Selection) []string {
	texts := make([]string, 0, s.Length())
	s.Each(func(i int, h *goquery.Selection) {
		if text := collapseSpaces(h.Text()); text != "" {
			texts = append(texts, text)
		}
	})
	return texts
}

func textOr(s *goquery.Selection, fallback string) string {
	if s.Length() == 0 {
		return fallback
	}
	if text := collapseSpaces(s.Text()); text != "" {
		return text
	}
	return fallback
}

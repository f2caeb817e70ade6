package serp

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

// ErrUnparseable is returned when the rendered document is empty or cannot be parsed.
var ErrUnparseable = errors.New("results page could not be parsed")

// Extraction is everything pulled out of one rendered results page.
type Extraction struct {
	Organic         []OrganicResult
	PAAQuestions    []string
	RelatedSearches []string
}

type Extractor struct {
	config  *Config
	base    *url.URL
	logger  *zap.Logger
	organic *Cascade[OrganicResult]
	paa     *Cascade[string]
	related *Cascade[string]
}

func NewExtractor(config *Config, logger *zap.Logger) (*Extractor, error) {
	if config == nil {
		config = DefaultConfig()
	}
	base, err := url.Parse(config.ProviderBaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse provider base url: %w", err)
	}

	e := &Extractor{
		config: config,
		base:   base,
		logger: logger,
	}
	e.organic = e.organicCascade()
	e.paa = e.paaCascade()
	e.related = e.relatedCascade()
	return e, nil
}

// Extract pulls the organic results, "people also ask" questions and related searches
// out of a rendered results page. Strategies that find nothing are not errors.
func (e *Extractor) Extract(htmlContent string) (*Extraction, error) {
	if strings.TrimSpace(htmlContent) == "" {
		return nil, fmt.Errorf("%w: empty document", ErrUnparseable)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnparseable, err)
	}

	organic := e.organic.Run(doc)
	if len(organic) > e.config.MaxResults {
		organic = organic[:e.config.MaxResults]
	}
	for i := range organic {
		organic[i].Rank = i + 1
	}

	related := e.related.Run(doc)
	paa := without(e.paa.Run(doc), related)

	extraction := &Extraction{
		Organic:         nonNil(organic),
		PAAQuestions:    nonNil(paa),
		RelatedSearches: nonNil(related),
	}

	e.logger.Info("results page extracted",
		zap.Int("organic", len(extraction.Organic)),
		zap.Int("paa_questions", len(extraction.PAAQuestions)),
		zap.Int("related_searches", len(extraction.RelatedSearches)))

	return extraction, nil
}

// dedupe keeps the first occurrence of each string.
func dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	return out
}

// without drops from items every string present in exclude.
func without(items, exclude []string) []string {
	drop := make(map[string]bool, len(exclude))
	for _, s := range exclude {
		drop[s] = true
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if !drop[item] {
			out = append(out, item)
		}
	}
	return out
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func runeLenWithin(s string, lo, hi int) bool {
	n := len([]rune(s))
	return n >= lo && n <= hi
}

package search

import (
	"context"
	"fmt"
	"strings"

	"serpscope/analyzer"
	"serpscope/serp"

	"go.uber.org/zap"
)

type Service struct {
	config    *Config
	renderer  Renderer
	fetcher   PageFetcher
	extractor *serp.Extractor
	analyzer  *analyzer.Analyzer
	logger    *zap.Logger
}

func NewService(
	config *Config,
	renderer Renderer,
	fetcher PageFetcher,
	extractor *serp.Extractor,
	pageAnalyzer *analyzer.Analyzer,
	logger *zap.Logger,
) *Service {
	if config == nil {
		config = DefaultConfig()
	}
	return &Service{
		config:    config,
		renderer:  renderer,
		fetcher:   fetcher,
		extractor: extractor,
		analyzer:  pageAnalyzer,
		logger:    logger,
	}
}

// RunSearch renders the results page for query, extracts it and analyzes every
// organic result. Failures of individual result pages are reported inside the
// response; only an invalid query, a render failure or an unusable results page
// fail the whole search.
func (s *Service) RunSearch(ctx context.Context, query string) (*SearchResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	s.logger.Info("starting search", zap.String("query", query))

	page, err := s.renderer.Render(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRender, err)
	}

	extraction, err := s.extractor.Extract(page)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExtraction, err)
	}

	response := s.Aggregate(ctx, query, extraction)

	s.logger.Info("search completed",
		zap.String("query", query),
		zap.Int("results", len(response.Results)),
		zap.Int("paa_questions", len(response.PAAQuestions)),
		zap.Int("related_searches", len(response.RelatedSearches)))

	return response, nil
}

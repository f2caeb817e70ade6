package search

import (
	"context"
	"fmt"

	"serpscope/serp"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Aggregate fetches and analyzes the page of every organic result in parallel. The
// results keep the rank order of the extraction whatever the completion order.
func (s *Service) Aggregate(ctx context.Context, query string, extraction *serp.Extraction) *SearchResponse {
	results := make([]Result, len(extraction.Organic))

	var g errgroup.Group
	if s.config.Workers > 0 {
		g.SetLimit(s.config.Workers)
	}
	for i, organic := range extraction.Organic {
		g.Go(func() error {
			results[i] = s.analyzeResult(ctx, organic)
			return nil
		})
	}
	// workers never return an error; failures are carried by each result
	_ = g.Wait()

	return &SearchResponse{
		Query:           query,
		PAAQuestions:    nonNil(extraction.PAAQuestions),
		RelatedSearches: nonNil(extraction.RelatedSearches),
		Results:         results,
	}
}

// analyzeResult never fails: fetch errors, analysis errors and panics all end up in
// the Error field of the result.
func (s *Service) analyzeResult(ctx context.Context, organic serp.OrganicResult) (result Result) {
	result = Result{OrganicResult: organic}
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("result page analysis panicked",
				zap.Int("rank", organic.Rank),
				zap.String("url", organic.URL),
				zap.Any("panic", r),
				zap.Stack("stack"))
			result = Result{
				OrganicResult: organic,
				Error:         fmt.Sprintf("analysis failed: panic: %v", r),
			}
		}
	}()

	pageCtx := ctx
	if s.config.PageTimeout > 0 {
		var cancel context.CancelFunc
		pageCtx, cancel = context.WithTimeout(ctx, s.config.PageTimeout)
		defer cancel()
	}

	page, err := s.fetcher.FetchPage(pageCtx, organic.URL)
	if err != nil {
		s.logger.Warn("failed to fetch result page",
			zap.Int("rank", organic.Rank),
			zap.String("url", organic.URL),
			zap.Error(err))
		result.Error = fmt.Sprintf("fetch failed: %v", err)
		return result
	}

	analysis, err := s.analyzer.Analyze(organic.URL, page)
	if err != nil {
		s.logger.Warn("failed to analyze result page",
			zap.Int("rank", organic.Rank),
			zap.String("url", organic.URL),
			zap.Error(err))
		result.Error = fmt.Sprintf("analysis failed: %v", err)
		return result
	}

	result.PageAnalysis = analysis
	return result
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}

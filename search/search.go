package search

import (
	"context"

	"serpscope/analyzer"
	"serpscope/serp"
)

// SearchResponse is the document returned for one query.
type SearchResponse struct {
	Query           string   `json:"query"`
	PAAQuestions    []string `json:"paa_questions"`
	RelatedSearches []string `json:"associated_searches"`
	Results         []Result `json:"results"`
}

// Result is an organic result merged with the analysis of its page. When the page
// could not be fetched or analyzed, PageAnalysis is nil and Error says why.
type Result struct {
	serp.OrganicResult
	*analyzer.PageAnalysis
	Error string `json:"error,omitempty"`
}

// Renderer returns the fully rendered results page for a query.
type Renderer interface {
	Render(ctx context.Context, query string) (string, error)
}

// PageFetcher returns the raw HTML of a result page.
type PageFetcher interface {
	FetchPage(ctx context.Context, url string) (string, error)
}

package search

import "errors"

var (
	ErrEmptyQuery = errors.New("query is required")
	ErrRender     = errors.New("results page could not be rendered")
	ErrExtraction = errors.New("results page could not be extracted")
)

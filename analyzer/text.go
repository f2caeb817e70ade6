package analyzer

import (
	"net/url"
	"strings"

	"github.com/go-shiori/go-readability"
	"github.com/markusmobius/go-trafilatura"
	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// invisible elements whose text never reaches the reader
var invisible = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"template": true,
}

// countWords counts whitespace-delimited tokens in the text nodes below roots.
// Navigation and other boilerplate is included.
func countWords(roots []*html.Node) int {
	count := 0
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			count += len(strings.Fields(n.Data))
			return
		case html.ElementNode:
			if invisible[n.Data] {
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, root := range roots {
		walk(root)
	}
	return count
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// contentWordCount counts the words of the main content only, using trafilatura
// and falling back to readability. Zero means neither could find an article.
func (a *Analyzer) contentWordCount(htmlContent string, pageURL *url.URL) (count int) {
	if !a.config.ContentExtraction {
		return 0
	}
	defer func() {
		if r := recover(); r != nil {
			a.logger.Warn("content extraction panicked",
				zap.String("url", pageURL.String()),
				zap.Any("panic", r))
			count = 0
		}
	}()

	result, err := trafilatura.Extract(strings.NewReader(htmlContent), trafilatura.Options{
		OriginalURL: pageURL,
	})
	if err == nil && result != nil {
		return len(strings.Fields(result.ContentText))
	}
	a.logger.Debug("trafilatura: extraction failed, trying readability",
		zap.String("url", pageURL.String()),
		zap.Error(err))

	article, err := readability.FromReader(strings.NewReader(htmlContent), pageURL)
	if err != nil {
		a.logger.Debug("readability: extraction failed",
			zap.String("url", pageURL.String()),
			zap.Error(err))
		return 0
	}
	return len(strings.Fields(article.TextContent))
}

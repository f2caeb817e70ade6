package analyzer

import (
	"strings"

	"github.com/dyatlov/go-opengraph/opengraph"
	"go.uber.org/zap"
)

func (a *Analyzer) openGraph(pageURL, htmlContent string) OpenGraph {
	og := opengraph.NewOpenGraph()
	if err := og.ProcessHTML(strings.NewReader(htmlContent)); err != nil {
		a.logger.Debug("failed to parse OpenGraph",
			zap.String("url", pageURL),
			zap.Error(err))
		return OpenGraph{}
	}
	return OpenGraph{
		Title:    strings.TrimSpace(og.Title),
		Type:     strings.TrimSpace(og.Type),
		SiteName: strings.TrimSpace(og.SiteName),
	}
}

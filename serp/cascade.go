package serp

import (
	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

// Strategy is one way of locating an extraction target in a results page.
type Strategy[T any] struct {
	Name    string
	Extract func(doc *goquery.Document) []T
}

// Cascade runs strategies in priority order. The first plausible result wins; when
// none is plausible the largest non-empty result is kept, earlier strategies winning
// ties. A nil Plausible accepts any non-empty result.
type Cascade[T any] struct {
	Target     string
	Strategies []Strategy[T]
	Plausible  func([]T) bool
	logger     *zap.Logger
}

func (c *Cascade[T]) Run(doc *goquery.Document) []T {
	var best []T
	bestName := ""

	for _, s := range c.Strategies {
		found := s.Extract(doc)
		if len(found) > 0 && (c.Plausible == nil || c.Plausible(found)) {
			c.logger.Debug("extraction strategy accepted",
				zap.String("target", c.Target),
				zap.String("strategy", s.Name),
				zap.Int("count", len(found)))
			return found
		}

		c.logger.Debug("extraction strategy fell through",
			zap.String("target", c.Target),
			zap.String("strategy", s.Name),
			zap.Int("count", len(found)))
		if len(found) > len(best) {
			best, bestName = found, s.Name
		}
	}

	if len(best) > 0 {
		c.logger.Info("no plausible extraction, keeping largest result",
			zap.String("target", c.Target),
			zap.String("strategy", bestName),
			zap.Int("count", len(best)))
	}
	return best
}

package analyzer

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

// structuredDataTypes lists the @type of every JSON-LD object on the page, one entry
// per object. Arrays contribute one entry per object element. Blocks that fail to
// parse are logged and skipped.
func (a *Analyzer) structuredDataTypes(doc *goquery.Document, pageURL string) []string {
	types := make([]string, 0)
	doc.Find(`script[type="application/ld+json"]`).Each(func(i int, s *goquery.Selection) {
		var value any
		if err := json.Unmarshal([]byte(strings.TrimSpace(s.Text())), &value); err != nil {
			a.logger.Warn("skipping malformed JSON-LD block",
				zap.String("url", pageURL),
				zap.Int("block", i),
				zap.Error(err))
			return
		}

		switch v := value.(type) {
		case map[string]any:
			types = append(types, schemaType(v))
		case []any:
			for _, item := range v {
				if obj, ok := item.(map[string]any); ok {
					types = append(types, schemaType(obj))
				}
			}
		}
	})
	return types
}

// schemaType reads @type; multi-typed objects are joined with ", ".
func schemaType(obj map[string]any) string {
	switch t := obj["@type"].(type) {
	case string:
		if t = strings.TrimSpace(t); t != "" {
			return t
		}
	case []any:
		names := make([]string, 0, len(t))
		for _, item := range t {
			if name, ok := item.(string); ok && strings.TrimSpace(name) != "" {
				names = append(names, strings.TrimSpace(name))
			}
		}
		if len(names) > 0 {
			return strings.Join(names, ", ")
		}
	}
	return UnknownSchemaType
}

package serp

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/language"
	"golang.org/x/text/search"
)

// maxSectionDepth bounds the climb from a label to the section holding its links.
const maxSectionDepth = 6

const labelCandidates = `h2, h3, h4, [role="heading"], span, div`

func (e *Extractor) relatedCascade() *Cascade[string] {
	var strategies []Strategy[string]
	for _, selector := range e.config.RelatedSelectors {
		strategies = append(strategies, Strategy[string]{
			Name:    "selector:" + selector,
			Extract: e.filterRelated(e.textsOf(selector)),
		})
	}
	strategies = append(strategies,
		Strategy[string]{Name: "labelled section", Extract: e.filterRelated(e.relatedFromLabel)},
		Strategy[string]{Name: "document tail", Extract: e.filterRelated(e.relatedFromTail)},
	)

	return &Cascade[string]{
		Target:     "related_searches",
		Strategies: strategies,
		logger:     e.logger,
	}
}

func (e *Extractor) filterRelated(extract func(*goquery.Document) []string) func(*goquery.Document) []string {
	return func(doc *goquery.Document) []string {
		var kept []string
		for _, s := range extract(doc) {
			if runeLenWithin(s, e.config.RelatedMinLength, e.config.RelatedMaxLength) {
				kept = append(kept, s)
			}
		}
		return dedupe(kept)
	}
}

// relatedFromLabel finds the element whose text is a related-searches label in the
// configured language and collects the anchor texts of its enclosing section.
func (e *Extractor) relatedFromLabel(doc *goquery.Document) []string {
	tag, err := language.Parse(e.config.Language)
	if err != nil {
		tag = language.French
	}
	matcher := search.New(tag, search.IgnoreCase, search.IgnoreDiacritics)

	var texts []string
	doc.Find(labelCandidates).EachWithBreak(func(i int, s *goquery.Selection) bool {
		if !e.isRelatedLabel(matcher, collapseSpaces(s.Text())) {
			return true
		}

		section := s.Parent()
		for depth := 0; depth < maxSectionDepth && section.Length() > 0; depth++ {
			if section.Find("a[href]").Length() >= 2 {
				break
			}
			section = section.Parent()
		}
		section.Find("a[href]").Each(func(i int, a *goquery.Selection) {
			if text := collapseSpaces(a.Text()); text != "" {
				texts = append(texts, text)
			}
		})
		return len(texts) == 0
	})
	return texts
}

func (e *Extractor) isRelatedLabel(matcher *search.Matcher, text string) bool {
	if text == "" {
		return false
	}
	for _, label := range e.config.RelatedLabels {
		if matcher.EqualString(text, label) {
			return true
		}
	}
	return false
}

// relatedFromTail collects short provider search links near the end of the document,
// where the provider renders its suggestions.
func (e *Extractor) relatedFromTail(doc *goquery.Document) []string {
	anchors := doc.Find("a[href]")
	start := anchors.Length() - e.config.TailAnchors
	if start < 0 {
		start = 0
	}

	var texts []string
	anchors.Slice(start, anchors.Length()).Each(func(i int, a *goquery.Selection) {
		if !e.isProviderSearchLink(a.AttrOr("href", "")) {
			return
		}
		if text := collapseSpaces(a.Text()); text != "" && !strings.HasSuffix(text, "?") {
			texts = append(texts, text)
		}
	})
	return texts
}

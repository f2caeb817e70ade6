package serp

import (
	"net/url"

	"github.com/PuerkitoBio/goquery"
)

// NoSnippet replaces the result title when the block has no heading.
const NoSnippet = "Sans titre"

// maxBlockDepth bounds the climb from a heading to the block holding its link.
const maxBlockDepth = 5

// OrganicResult is one ranked entry of the results page.
type OrganicResult struct {
	Rank    int    `json:"-"`
	Snippet string `json:"google_snippet"`
	URL     string `json:"url"`
	Domain  string `json:"domain"`
}

func (e *Extractor) organicCascade() *Cascade[OrganicResult] {
	var strategies []Strategy[OrganicResult]
	for _, selector := range e.config.OrganicSelectors {
		strategies = append(strategies, Strategy[OrganicResult]{
			Name:    "container:" + selector,
			Extract: e.organicFromContainers(selector),
		})
	}
	strategies = append(strategies, Strategy[OrganicResult]{
		Name:    "heading-link heuristic",
		Extract: e.organicFromHeadings,
	})

	return &Cascade[OrganicResult]{
		Target:     "organic",
		Strategies: strategies,
		Plausible: func(results []OrganicResult) bool {
			return len(results) >= e.config.MinOrganicCandidates
		},
		logger: e.logger,
	}
}

func (e *Extractor) organicFromContainers(selector string) func(*goquery.Document) []OrganicResult {
	return func(doc *goquery.Document) []OrganicResult {
		var results resultSet
		doc.Find(selector).Each(func(i int, block *goquery.Selection) {
			target, ok := e.firstResultAnchor(block)
			if !ok {
				return
			}
			snippet := collapseSpaces(block.Find(e.config.HeadingSelector).First().Text())
			results.add(newResult(target, snippet))
		})
		return results.items
	}
}

// organicFromHeadings treats every heading with a link nearby as a result: the anchor
// wrapping the heading when there is one, otherwise the first usable anchor of the
// closest ancestor below body that has one. Headings wrapped in provider links are skipped.
func (e *Extractor) organicFromHeadings(doc *goquery.Document) []OrganicResult {
	var results resultSet
	doc.Find(e.config.HeadingSelector).Each(func(i int, heading *goquery.Selection) {
		snippet := collapseSpaces(heading.Text())

		if wrapping := heading.Closest("a[href]"); wrapping.Length() > 0 {
			if target, ok := e.resultHref(wrapping); ok {
				results.add(newResult(target, snippet))
			}
			return
		}

		block := heading.Parent()
		for depth := 0; depth < maxBlockDepth && block.Length() > 0; depth++ {
			if goquery.NodeName(block) == "body" {
				return
			}
			if target, ok := e.firstResultAnchor(block); ok {
				results.add(newResult(target, snippet))
				return
			}
			block = block.Parent()
		}
	})
	return results.items
}

// firstResultAnchor returns the target of the first anchor of block that leaves the provider.
func (e *Extractor) firstResultAnchor(block *goquery.Selection) (*url.URL, bool) {
	var found *url.URL
	block.Find("a[href]").EachWithBreak(func(i int, a *goquery.Selection) bool {
		if target, ok := e.resultHref(a); ok {
			found = target
			return false
		}
		return true
	})
	return found, found != nil
}

func (e *Extractor) resultHref(anchor *goquery.Selection) (*url.URL, bool) {
	href, _ := anchor.Attr("href")
	return e.resolveResultURL(href)
}

func newResult(target *url.URL, snippet string) OrganicResult {
	if snippet == "" {
		snippet = NoSnippet
	}
	return OrganicResult{
		Snippet: snippet,
		URL:     target.String(),
		Domain:  target.Host,
	}
}

// resultSet keeps results unique by URL in insertion order.
type resultSet struct {
	items []OrganicResult
	seen  map[string]bool
}

func (s *resultSet) add(r OrganicResult) {
	if s.seen == nil {
		s.seen = make(map[string]bool)
	}
	if s.seen[r.URL] {
		return
	}
	s.seen[r.URL] = true
	s.items = append(s.items, r)
}

package analyzer

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// classifyLinks splits anchors by authority. A link is internal when its host equals
// the page host exactly as written (no www or scheme normalization), external when it
// has a different non-empty host; links without a host are counted in neither.
func classifyLinks(doc *goquery.Document, base *url.URL) (internal, external int) {
	doc.Find("a[href]").Each(func(i int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		ref, err := base.Parse(strings.TrimSpace(href))
		if err != nil || ref.Host == "" {
			return
		}
		if ref.Host == base.Host {
			internal++
		} else {
			external++
		}
	})
	return internal, external
}

package analyzer

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

func (a *Analyzer) mediaCounts(doc *goquery.Document) MediaCounts {
	counts := MediaCounts{
		Images: doc.Find("img").Length(),
		Videos: doc.Find("video").Length(),
		Audios: doc.Find("audio").Length(),
	}
	doc.Find("iframe[src]").Each(func(i int, s *goquery.Selection) {
		if a.isVideoEmbed(s.AttrOr("src", "")) {
			counts.EmbeddedVideos++
		}
	})
	return counts
}

func (a *Analyzer) isVideoEmbed(src string) bool {
	src = strings.ToLower(src)
	for _, host := range a.config.VideoHosts {
		if host != "" && strings.Contains(src, strings.ToLower(host)) {
			return true
		}
	}
	return false
}

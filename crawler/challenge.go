package crawler

import (
	"errors"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ErrBlocked is returned when the provider answered with a bot challenge instead of results.
var ErrBlocked = errors.New("results page blocked by a bot challenge")

const captchaSelector = `form#captcha-form, div#recaptcha, div.g-recaptcha, iframe[src*="recaptcha"]`

var challengePhrases = []string{
	"unusual traffic",
	"trafic exceptionnel",
	"not a robot",
	"pas un robot",
}

// detectChallenge reports whether a rendered page is a bot challenge, and which signal
// gave it away. Phrases are only trusted on pages without a results container.
func detectChallenge(pageURL, htmlContent string) (string, bool) {
	if u, err := url.Parse(pageURL); err == nil && strings.HasPrefix(u.Path, "/sorry/") {
		return "sorry redirect", true
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return "", false
	}
	if doc.Find(captchaSelector).Length() > 0 {
		return "captcha form", true
	}
	if doc.Find("div#rso, div#search").Length() > 0 {
		return "", false
	}

	text := strings.ToLower(doc.Find("body").Text())
	for _, phrase := range challengePhrases {
		if strings.Contains(text, phrase) {
			return "challenge text: " + phrase, true
		}
	}
	return "", false
}

package serp

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// questionPattern finds question-shaped runs of text: anything up to a question mark
// that does not cross a sentence boundary.
var questionPattern = regexp.MustCompile(`[^.!?\n]+\?`)

func (e *Extractor) paaCascade() *Cascade[string] {
	var strategies []Strategy[string]
	for _, selector := range e.config.PAASelectors {
		strategies = append(strategies, Strategy[string]{
			Name:    "selector:" + selector,
			Extract: e.textsOf(selector),
		})
	}
	if e.config.PAAAttribute != "" {
		strategies = append(strategies, Strategy[string]{
			Name:    "attribute:" + e.config.PAAAttribute,
			Extract: e.questionsFromAttribute,
		})
	}
	strategies = append(strategies,
		Strategy[string]{Name: "expandable elements", Extract: e.questionsFromExpandables},
		Strategy[string]{Name: "question text scan", Extract: e.questionsFromText},
	)

	return &Cascade[string]{
		Target:     "paa",
		Strategies: strategies,
		logger:     e.logger,
	}
}

// textsOf collects the non-empty texts of every element matching selector.
func (e *Extractor) textsOf(selector string) func(*goquery.Document) []string {
	return func(doc *goquery.Document) []string {
		var texts []string
		doc.Find(selector).Each(func(i int, s *goquery.Selection) {
			if text := collapseSpaces(s.Text()); text != "" {
				texts = append(texts, text)
			}
		})
		return dedupe(texts)
	}
}

func (e *Extractor) questionsFromAttribute(doc *goquery.Document) []string {
	var questions []string
	doc.Find("[" + e.config.PAAAttribute + "]").Each(func(i int, s *goquery.Selection) {
		if q := collapseSpaces(s.AttrOr(e.config.PAAAttribute, "")); e.plausibleQuestion(q) {
			questions = append(questions, q)
		}
	})
	return dedupe(questions)
}

func (e *Extractor) questionsFromExpandables(doc *goquery.Document) []string {
	var questions []string
	doc.Find(e.config.ExpandableSelector).Each(func(i int, s *goquery.Selection) {
		if q := collapseSpaces(s.Text()); e.plausibleQuestion(q) {
			questions = append(questions, q)
		}
	})
	return dedupe(questions)
}

func (e *Extractor) questionsFromText(doc *goquery.Document) []string {
	var questions []string
	for _, text := range visibleTexts(doc.Find("body").Nodes) {
		for _, match := range questionPattern.FindAllString(text, -1) {
			if q := collapseSpaces(match); e.plausibleQuestion(q) {
				questions = append(questions, q)
			}
		}
	}
	return dedupe(questions)
}

func (e *Extractor) plausibleQuestion(q string) bool {
	return strings.HasSuffix(q, "?") &&
		runeLenWithin(q, e.config.QuestionMinLength, e.config.QuestionMaxLength)
}

// visibleTexts returns the text nodes below roots, skipping script and style content.
func visibleTexts(roots []*html.Node) []string {
	var texts []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "template":
				return
			}
		}
		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				texts = append(texts, text)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, root := range roots {
		walk(root)
	}
	return texts
}

package analyzer

import (
	"encoding/json"
	"errors"
	"os"
	"reflect"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"
)

func newTestAnalyzer(t *testing.T) *Analyzer {
	t.Helper()
	cfg := DefaultConfig()
	cfg.ContentExtraction = false
	return NewAnalyzer(cfg, zaptest.NewLogger(t))
}

func TestAnalyze_TitleAndH1(t *testing.T) {
	a := newTestAnalyzer(t)

	analysis, err := a.Analyze("https://example.com/a", "<title>Hi</title><h1>Hello</h1>")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if analysis.Title != "Hi" {
		t.Errorf("expected title %q, got %q", "Hi", analysis.Title)
	}
	if analysis.Headings.H1 != "Hello" {
		t.Errorf("expected H1 %q, got %q", "Hello", analysis.Headings.H1)
	}
	if analysis.MetaDescription != NoMetaDescription {
		t.Errorf("expected meta description sentinel, got %q", analysis.MetaDescription)
	}
}

func TestAnalyze_Sentinels(t *testing.T) {
	testCases := []struct {
		name     string
		html     string
		wantMeta string
	}{
		{"NoMetaAtAll", "<html><body><p>text</p></body></html>", NoMetaDescription},
		{"EmptyContent", `<meta name="description" content="   ">`, NoMetaDescription},
		{"OtherMetaOnly", `<meta name="keywords" content="a,b">`, NoMetaDescription},
		{"UpperCaseName", `<meta name="Description" content="Found it">`, "Found it"},
	}

	a := newTestAnalyzer(t)
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			analysis, err := a.Analyze("https://example.com/", tc.html)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if analysis.MetaDescription != tc.wantMeta {
				t.Errorf("expected meta %q, got %q", tc.wantMeta, analysis.MetaDescription)
			}
			if tc.wantMeta == NoMetaDescription {
				if analysis.Title != NoTitle {
					t.Errorf("expected title sentinel, got %q", analysis.Title)
				}
				if analysis.Headings.H1 != NoH1 {
					t.Errorf("expected H1 sentinel, got %q", analysis.Headings.H1)
				}
			}
		})
	}
}

func TestAnalyze_SentinelsAreSerialized(t *testing.T) {
	a := newTestAnalyzer(t)
	analysis, err := a.Analyze("https://example.com/", "<p>nothing here</p>")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	body, err := json.Marshal(analysis)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	out := string(body)
	for _, want := range []string{
		`"meta_description":"Aucune meta description"`,
		`"H2":[]`,
		`"structured_data":[]`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %s in %s", want, out)
		}
	}
}

func TestAnalyze_Fixture(t *testing.T) {
	raw, err := os.ReadFile("testdata/article.html")
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}

	a := newTestAnalyzer(t)
	analysis, err := a.Analyze("https://jardin.example/guide", string(raw))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := &PageAnalysis{
		Title:           "Guide du jardinage",
		MetaDescription: "Tout savoir sur le jardinage urbain.",
		Headings: Headings{
			H1: "Le jardinage urbain",
			H2: []string{"Choisir ses plantes", "Arroser correctement"},
		},
		WordCount:     27,
		InternalLinks: 2,
		ExternalLinks: 1,
		Media: MediaCounts{
			Images:         2,
			Videos:         1,
			Audios:         1,
			EmbeddedVideos: 1,
		},
		StructuredData: []string{"Article", "FAQPage", "Unknown"},
		OpenGraph: OpenGraph{
			Title:    "Guide du jardinage",
			Type:     "article",
			SiteName: "Jardin Facile",
		},
	}

	if !reflect.DeepEqual(analysis, want) {
		t.Errorf("analysis mismatch\n got: %+v\nwant: %+v", analysis, want)
	}
}

func TestAnalyze_StructuredData(t *testing.T) {
	testCases := []struct {
		name   string
		blocks []string
		want   []string
	}{
		{
			name:   "ObjectAndList",
			blocks: []string{`{"@type":"Article"}`, `[{"@type":"FAQPage"},{"@id":"#x"}]`},
			want:   []string{"Article", "FAQPage", "Unknown"},
		},
		{
			name:   "MalformedBlockSkipped",
			blocks: []string{`{"@type":`, `{"@type":"Recipe"}`},
			want:   []string{"Recipe"},
		},
		{
			name:   "ScalarIgnored",
			blocks: []string{`"just a string"`, `42`},
			want:   []string{},
		},
		{
			name:   "MultiType",
			blocks: []string{`{"@type":["Article","NewsArticle"]}`},
			want:   []string{"Article, NewsArticle"},
		},
		{
			name:   "NonObjectItemsSkipped",
			blocks: []string{`[1, "two", {"@type":"Person"}]`},
			want:   []string{"Person"},
		},
	}

	a := newTestAnalyzer(t)
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var sb strings.Builder
			for _, block := range tc.blocks {
				sb.WriteString(`<script type="application/ld+json">` + block + `</script>`)
			}
			analysis, err := a.Analyze("https://example.com/", sb.String())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(analysis.StructuredData, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, analysis.StructuredData)
			}
		})
	}
}

func TestAnalyze_LinkClassification(t *testing.T) {
	page := `
		<a href="/a">relative</a>
		<a href="https://example.com/b">absolute same host</a>
		<a href="http://example.com/d">other scheme same host</a>
		<a href="#top">fragment</a>
		<a href="https://www.example.com/c">www is another host</a>
		<a href="https://EXAMPLE.com/e">host compared as written</a>
		<a href="https://other.org/">other</a>
		<a href="//cdn.example.net/x">protocol relative</a>
		<a href="mailto:someone@example.com">mail</a>
		<a href="javascript:void(0)">script</a>
		<a>no href</a>`

	a := newTestAnalyzer(t)
	analysis, err := a.Analyze("https://example.com/page", page)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if analysis.InternalLinks != 4 {
		t.Errorf("expected 4 internal links, got %d", analysis.InternalLinks)
	}
	if analysis.ExternalLinks != 4 {
		t.Errorf("expected 4 external links, got %d", analysis.ExternalLinks)
	}
}

func TestAnalyze_WordCountSkipsInvisibleText(t *testing.T) {
	page := `<html><head><title>Not counted</title></head><body>
		<p>one two   three</p>
		<script>var hidden = "not counted either";</script>
		<style>.x { color: red }</style>
		<noscript>enable javascript</noscript>
		<div>four<span> five</span></div>
	</body></html>`

	a := newTestAnalyzer(t)
	analysis, err := a.Analyze("https://example.com/", page)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if analysis.WordCount != 5 {
		t.Errorf("expected 5 words, got %d", analysis.WordCount)
	}
}

func TestAnalyze_Idempotent(t *testing.T) {
	raw, err := os.ReadFile("testdata/article.html")
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}

	cfg := DefaultConfig()
	a := NewAnalyzer(cfg, zaptest.NewLogger(t))

	first, err := a.Analyze("https://jardin.example/guide", string(raw))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := a.Analyze("https://jardin.example/guide", string(raw))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	b1, _ := json.Marshal(first)
	b2, _ := json.Marshal(second)
	if string(b1) != string(b2) {
		t.Errorf("analysis is not deterministic:\n%s\n%s", b1, b2)
	}
}

func TestAnalyze_InvalidURL(t *testing.T) {
	a := newTestAnalyzer(t)
	for _, pageURL := range []string{"/relative/path", "example.com/no-scheme", "://bad"} {
		t.Run(pageURL, func(t *testing.T) {
			_, err := a.Analyze(pageURL, "<title>x</title>")
			if err == nil {
				t.Fatalf("expected an error for %q", pageURL)
			}
		})
	}

	_, err := a.Analyze("/relative", "")
	if !errors.Is(err, ErrInvalidPageURL) {
		t.Errorf("expected ErrInvalidPageURL, got %v", err)
	}
}

func TestAnalyze_NeverPanicsOnOddMarkup(t *testing.T) {
	inputs := []string{
		"",
		"plain text without tags",
		"<<<>>>",
		"<html><body><h1></h1><h2>  </h2></body>",
		`<script type="application/ld+json"></script>`,
		"<iframe></iframe><a href=\"http://[::1]:namedport\">bad</a>",
		strings.Repeat("<div>", 500),
	}

	a := NewAnalyzer(DefaultConfig(), zaptest.NewLogger(t))
	for i, input := range inputs {
		analysis, err := a.Analyze("https://example.com/", input)
		if err != nil {
			t.Errorf("input %d: unexpected error: %v", i, err)
			continue
		}
		if analysis.Headings.H2 == nil || analysis.StructuredData == nil {
			t.Errorf("input %d: list fields must never be nil", i)
		}
	}
}

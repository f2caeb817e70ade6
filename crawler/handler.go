package crawler

import (
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"
)

// fetchedPage receives the single response of a fetch.
type fetchedPage struct {
	status      int
	contentType string
	body        []byte
}

// OnRequest handles request events
func (f *Fetcher) OnRequest(logger *zap.Logger) colly.RequestCallback {
	return func(r *colly.Request) {
		if f.config.AcceptLanguage != "" {
			r.Headers.Set("Accept-Language", f.config.AcceptLanguage)
		}
		r.Headers.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
		logger.Debug("Fetching page")
	}
}

// OnResponse records every response, error statuses included
func (f *Fetcher) OnResponse(page *fetchedPage, logger *zap.Logger) colly.ResponseCallback {
	return func(r *colly.Response) {
		page.status = r.StatusCode
		page.contentType = r.Headers.Get("Content-Type")
		page.body = r.Body

		if r.StatusCode/100 != 2 {
			logger.Warn("HTTP error", zap.Int("status_code", r.StatusCode))
			return
		}
		logger.Debug("Page fetched",
			zap.Int("status_code", r.StatusCode),
			zap.Int("bytes", len(r.Body)))
	}
}

// OnError handles transport errors
func (f *Fetcher) OnError(logger *zap.Logger) colly.ErrorCallback {
	return func(r *colly.Response, err error) {
		if r == nil {
			logger.Warn("Request failed", zap.Error(err))
			return
		}
		logger.Warn("Request failed",
			zap.Int("status_code", r.StatusCode),
			zap.Error(err))
	}
}

// decodeBody returns body as UTF-8. Bodies that are already valid UTF-8 are kept
// as they are, which covers pages colly converted from a Content-Type charset.
// Others are decoded from their <meta> charset, windows-1252 when none is declared.
func decodeBody(body []byte, contentType string) (string, error) {
	if utf8.Valid(body) {
		return string(body), nil
	}
	reader, err := charset.NewReader(bytes.NewReader(body), contentType)
	if err != nil {
		return "", fmt.Errorf("decode body: %w", err)
	}
	decoded, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("decode body: %w", err)
	}
	return string(decoded), nil
}

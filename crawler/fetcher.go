package crawler

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/gocolly/colly/v2"
	"github.com/gocolly/colly/v2/extensions"
	"go.uber.org/zap"
	"golang.org/x/net/proxy"
	"golang.org/x/time/rate"
)

// ErrHTTPStatus is returned when a page answers with a non-2xx status.
var ErrHTTPStatus = errors.New("unexpected status")

// Fetcher downloads result pages. Each fetch runs on its own clone of a base
// collector, so concurrent fetches share only the transport and the rate limiter.
type Fetcher struct {
	collector *colly.Collector
	validator *URLValidator
	limiter   *rate.Limiter
	config    *FetchConfig
	logger    *zap.Logger
}

// NewFetcher creates a page fetcher with all dependencies
func NewFetcher(config *FetchConfig, logger *zap.Logger) (*Fetcher, error) {
	if config == nil {
		config = DefaultFetchConfig()
	}

	transport, err := newTransport(config.ProxyURL)
	if err != nil {
		return nil, err
	}

	options := []colly.CollectorOption{
		colly.AllowURLRevisit(),
		colly.MaxBodySize(config.MaxBodySize),
		colly.ParseHTTPErrorResponse(),
	}
	if config.UserAgent != "" {
		options = append(options, colly.UserAgent(config.UserAgent))
	}
	c := colly.NewCollector(options...)
	c.WithTransport(transport)
	c.SetRequestTimeout(config.RequestTimeout)

	limit := rate.Inf
	if config.RequestsPerSecond > 0 {
		limit = rate.Limit(config.RequestsPerSecond)
	}
	burst := config.Burst
	if burst < 1 {
		burst = 1
	}

	return &Fetcher{
		collector: c,
		validator: NewURLValidator(config),
		limiter:   rate.NewLimiter(limit, burst),
		config:    config,
		logger:    logger,
	}, nil
}

// newTransport builds the shared transport. SOCKS5 proxies are dialed through
// golang.org/x/net/proxy, HTTP proxies through the transport itself.
func newTransport(proxyURL string) (*http.Transport, error) {
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConnsPerHost: 4,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}
	if proxyURL == "" {
		return transport, nil
	}

	u, err := url.Parse(proxyURL)
	if err != nil {
		return nil, fmt.Errorf("parse proxy url: %w", err)
	}

	switch u.Scheme {
	case "http", "https":
		transport.Proxy = http.ProxyURL(u)
	case "socks5", "socks5h":
		dialer, err := proxy.FromURL(u, proxy.Direct)
		if err != nil {
			return nil, fmt.Errorf("create proxy dialer: %w", err)
		}
		transport.Proxy = nil
		if contextDialer, ok := dialer.(proxy.ContextDialer); ok {
			transport.DialContext = contextDialer.DialContext
		} else {
			transport.DialContext = func(ctx context.Context, network, addr string) (net.Conn, error) {
				return dialer.Dial(network, addr)
			}
		}
	default:
		return nil, fmt.Errorf("unsupported proxy scheme %q", u.Scheme)
	}
	return transport, nil
}

// FetchPage performs a single GET of rawURL and returns the body as UTF-8. Non-2xx
// answers are errors.
func (f *Fetcher) FetchPage(ctx context.Context, rawURL string) (string, error) {
	logger := GetContextLogger(ctx, f.logger).With(zap.String("url", rawURL))

	u, err := f.validator.Validate(rawURL)
	if err != nil {
		return "", err
	}

	if err := f.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("waiting for rate limiter: %w", err)
	}

	c := f.collector.Clone()
	c.Context = ctx
	if f.config.RandomUserAgent {
		extensions.RandomUserAgent(c)
	}

	page := &fetchedPage{}
	c.OnRequest(f.OnRequest(logger))
	c.OnResponse(f.OnResponse(page, logger))
	c.OnError(f.OnError(logger))

	if err := c.Visit(u.String()); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", fmt.Errorf("fetch %s: %w", rawURL, ctxErr)
		}
		return "", fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	if page.status == 0 {
		return "", fmt.Errorf("fetch %s: no response", rawURL)
	}
	if page.status/100 != 2 {
		return "", fmt.Errorf("fetch %s: %w %d", rawURL, ErrHTTPStatus, page.status)
	}

	body, err := decodeBody(page.body, page.contentType)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	return body, nil
}

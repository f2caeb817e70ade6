package crawler

import (
	"context"
	"fmt"
	"net/url"
	"os"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"github.com/yosssi/gohtml"
	"go.uber.org/zap"
)

// Browser renders results pages in headless Chrome. Every render runs in its own
// browser process, torn down when the render returns.
type Browser struct {
	config          *RenderConfig
	logger          *zap.Logger
	ChromedpOptions []chromedp.ExecAllocatorOption
}

func NewBrowser(config *RenderConfig, logger *zap.Logger) *Browser {
	if config == nil {
		config = DefaultRenderConfig()
	}

	options := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.DisableGPU,
		chromedp.NoSandbox,
		chromedp.Headless,
		chromedp.UserAgent(config.UserAgent),
		chromedp.WindowSize(config.WindowWidth, config.WindowHeight),

		// Stealth options
		chromedp.Flag("lang", "fr-FR"),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("exclude-switches", "enable-automation"),
		chromedp.Flag("disable-extensions", true),
	)
	if config.ExecPath != "" {
		options = append(options, chromedp.ExecPath(config.ExecPath))
	}
	if config.ProxyServer != "" {
		options = append(options, chromedp.ProxyServer(config.ProxyServer))
	}

	return &Browser{
		config:          config,
		logger:          logger,
		ChromedpOptions: options,
	}
}

func (b *Browser) searchURL(query string) string {
	return fmt.Sprintf(b.config.URLTemplate, url.QueryEscape(query))
}

// Render navigates to the results page for query and returns its rendered markup.
func (b *Browser) Render(ctx context.Context, query string) (string, error) {
	logger := GetContextLogger(ctx, b.logger)

	// ================
	// Browser Context
	// ================
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, b.ChromedpOptions...)
	defer allocCancel()
	taskCtx, taskCancel := chromedp.NewContext(allocCtx)
	defer taskCancel()
	taskCtx, timeoutCancel := context.WithTimeout(taskCtx, b.config.Timeout)
	defer timeoutCancel()

	// ================
	// Navigation
	// ================
	searchURL := b.searchURL(query)
	logger.Info("Navigating to search", zap.String("url", searchURL))

	err := chromedp.Run(taskCtx,
		network.Enable(),
		network.SetExtraHTTPHeaders(network.Headers{"Accept-Language": b.config.AcceptLanguage}),
		chromedp.Navigate(searchURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Evaluate(`
			Object.defineProperty(navigator, 'webdriver', {
				get: () => undefined,
			});
		`, nil),
	)
	if err != nil {
		logger.Error("Failed to navigate", zap.Error(err))
		return "", fmt.Errorf("navigation failed: %w", err)
	}

	b.acceptConsent(taskCtx, logger)

	// ================
	// Waiting for results
	// ================
	var hasText bool
	if err := chromedp.Run(taskCtx,
		chromedp.Poll(`document.body !== null && document.body.innerText.trim() !== ""`, &hasText),
	); err != nil {
		return "", fmt.Errorf("waiting for page content: %w", err)
	}

	waitCtx, waitCancel := context.WithTimeout(taskCtx, b.config.SettleDelay*3)
	if err := chromedp.Run(waitCtx, chromedp.WaitVisible(b.config.ResultsSelector, chromedp.ByQuery)); err != nil {
		logger.Warn("Results container not visible", zap.String("selector", b.config.ResultsSelector), zap.Error(err))
	}
	waitCancel()

	var currentURL, domHTML string
	err = chromedp.Run(taskCtx,
		chromedp.Sleep(b.config.SettleDelay),
		chromedp.Evaluate(`window.scrollTo(0, document.body.scrollHeight);`, nil),
		chromedp.Sleep(b.config.ScrollDelay),
		chromedp.Location(&currentURL),
		chromedp.OuterHTML("html", &domHTML, chromedp.ByQuery),
	)
	if err != nil {
		logger.Error("Failed to read rendered page", zap.Error(err))
		return "", fmt.Errorf("reading rendered page: %w", err)
	}

	logger.Info("Page rendered",
		zap.String("current_url", currentURL),
		zap.Int("dom_length", len(domHTML)))

	b.dump(domHTML, logger)

	if reason, blocked := detectChallenge(currentURL, domHTML); blocked {
		logger.Warn("Bot challenge detected", zap.String("reason", reason), zap.String("current_url", currentURL))
		return "", fmt.Errorf("%w: %s", ErrBlocked, reason)
	}

	return domHTML, nil
}

// acceptConsent clicks the first consent button found, if any.
func (b *Browser) acceptConsent(ctx context.Context, logger *zap.Logger) {
	for _, selector := range b.config.ConsentSelectors {
		var nodes []*cdp.Node
		if err := chromedp.Run(ctx, chromedp.Nodes(selector, &nodes, chromedp.ByQuery, chromedp.AtLeast(0))); err != nil {
			logger.Debug("Consent lookup failed", zap.String("selector", selector), zap.Error(err))
			continue
		}
		if len(nodes) == 0 {
			continue
		}

		if err := chromedp.Run(ctx,
			chromedp.MouseClickNode(nodes[0]),
			chromedp.WaitReady("body", chromedp.ByQuery),
		); err != nil {
			logger.Warn("Consent click failed", zap.String("selector", selector), zap.Error(err))
			continue
		}
		logger.Info("Consent prompt accepted", zap.String("selector", selector))
		return
	}
}

func (b *Browser) dump(domHTML string, logger *zap.Logger) {
	if b.config.DebugDumpPath == "" {
		return
	}
	if err := os.WriteFile(b.config.DebugDumpPath, []byte(gohtml.Format(domHTML)), 0o644); err != nil {
		logger.Warn("Failed to write debug dump", zap.String("path", b.config.DebugDumpPath), zap.Error(err))
		return
	}
	logger.Debug("Rendered page dumped", zap.String("path", b.config.DebugDumpPath))
}

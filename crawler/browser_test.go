package crawler

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"
)

func TestBrowser_SearchURL(t *testing.T) {
	b := NewBrowser(DefaultRenderConfig(), zaptest.NewLogger(t))

	got := b.searchURL("planter des tomates & co")
	want := "https://www.google.com/search?q=planter+des+tomates+%26+co&gl=fr&hl=fr"
	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestNewBrowser_Options(t *testing.T) {
	config := DefaultRenderConfig()
	base := len(NewBrowser(config, zaptest.NewLogger(t)).ChromedpOptions)

	config.ExecPath = "/usr/bin/chromium"
	config.ProxyServer = "socks5://127.0.0.1:9050"
	if got := len(NewBrowser(config, zaptest.NewLogger(t)).ChromedpOptions); got != base+2 {
		t.Errorf("expected exec path and proxy options to be added, got %d options for %d", got, base)
	}
}

func TestBrowser_Dump(t *testing.T) {
	config := DefaultRenderConfig()
	config.DebugDumpPath = filepath.Join(t.TempDir(), "page_source.html")
	b := NewBrowser(config, zaptest.NewLogger(t))

	b.dump(`<html><body><div id="rso"><h3>Tomates</h3></div></body></html>`, b.logger)

	raw, err := os.ReadFile(config.DebugDumpPath)
	if err != nil {
		t.Fatalf("expected a dump file: %v", err)
	}
	if !strings.Contains(string(raw), "Tomates") {
		t.Errorf("dump does not contain the page: %s", raw)
	}
}

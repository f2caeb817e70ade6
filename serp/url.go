package serp

import (
	"net/url"
	"strings"
)

// resolveResultURL turns an anchor href into the absolute target of a result.
// Provider redirect links (/url?q=...) are unwrapped. Targets that are not http(s)
// or that stay on a provider domain are rejected.
func (e *Extractor) resolveResultURL(href string) (*url.URL, bool) {
	ref, err := e.base.Parse(strings.TrimSpace(href))
	if err != nil {
		return nil, false
	}

	if e.isProviderHost(ref.Hostname()) && ref.Path == "/url" {
		query := ref.Query()
		target := query.Get("q")
		if target == "" {
			target = query.Get("url")
		}
		if target == "" {
			return nil, false
		}
		if ref, err = url.Parse(target); err != nil {
			return nil, false
		}
	}

	if ref.Scheme != "http" && ref.Scheme != "https" {
		return nil, false
	}
	if ref.Host == "" || e.isProviderHost(ref.Hostname()) {
		return nil, false
	}

	// scroll-to-text fragments are added by the provider, not part of the page address
	if strings.HasPrefix(ref.Fragment, ":~:") {
		ref.Fragment = ""
		ref.RawFragment = ""
	}
	return ref, true
}

func (e *Extractor) isProviderHost(host string) bool {
	host = strings.ToLower(host)
	for _, domain := range e.config.ProviderDomains {
		domain = strings.ToLower(domain)
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return true
		}
	}
	return false
}

// isProviderSearchLink reports whether href points to a provider search page for a
// new query, excluding pagination of the current one.
func (e *Extractor) isProviderSearchLink(href string) bool {
	ref, err := e.base.Parse(strings.TrimSpace(href))
	if err != nil || !e.isProviderHost(ref.Hostname()) || ref.Path != "/search" {
		return false
	}
	query := ref.Query()
	return query.Get("q") != "" && query.Get("start") == ""
}

package domain

import (
	"net/url"
	"strings"
)

// IsValidURL reports whether s is an absolute http(s) URL with a host.
func IsValidURL(s string) bool {
	if s == "" || strings.TrimSpace(s) != s {
		return false
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return u.Host != ""
}

// WithinPrefix reports whether link lives under prefix: same scheme, same
// host (case-insensitive), no userinfo, and a path that equals prefix's path
// or continues it after a "/". Query strings on either side are ignored.
func WithinPrefix(link, prefix string) bool {
	if !IsValidURL(link) {
		return false
	}
	l, err := url.Parse(link)
	if err != nil || l.User != nil {
		return false
	}
	p, err := url.Parse(prefix)
	if err != nil || p.Host == "" {
		return false
	}
	if l.Scheme != p.Scheme || !strings.EqualFold(l.Host, p.Host) {
		return false
	}

	base := strings.ToLower(strings.TrimRight(p.Path, "/"))
	path := strings.ToLower(l.Path)
	return base == "" || path == base || strings.HasPrefix(path, base+"/")
}

// encodeQueryComponent escapes s for use as a query value, spaces as %20.
func encodeQueryComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

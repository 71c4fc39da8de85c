package types

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
)

// Target represents the network locator being scanned. URL is always an
// absolute URL; Host is set only when the URL has an authority component.
type Target struct {
	URL  string `json:"url"`
	Host string `json:"host,omitempty"`
}

// NewTarget builds a Target from an already parsed URL.
func NewTarget(u *url.URL) (Target, error) {
	if u == nil {
		return Target{}, fmt.Errorf("target URL is nil")
	}
	if !u.IsAbs() {
		return Target{}, fmt.Errorf("URL %q is not absolute", u.String())
	}
	return Target{
		URL:  u.String(),
		Host: u.Hostname(),
	}, nil
}

// ParseTarget accepts a full URL, host:port, or a bare host and normalizes it
// into a Target. Hosts without a scheme are assumed to be served over https.
func ParseTarget(raw string) (Target, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Target{}, fmt.Errorf("target cannot be empty")
	}

	if strings.Contains(raw, "://") {
		return parseURL(raw)
	}

	// host:port with a numeric port, optionally followed by a path.
	authority, rest := splitAuthority(raw)
	if host, portStr, err := net.SplitHostPort(authority); err == nil && isDigits(portStr) {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Target{}, fmt.Errorf("invalid port %q: %w", portStr, err)
		}
		if port < 1 || port > 65535 {
			return Target{}, fmt.Errorf("port %d out of range (1-65535)", port)
		}
		return parseURL("https://" + net.JoinHostPort(host, portStr) + rest)
	}

	// scheme:opaque, e.g. mailto:someone@example.com
	if i := strings.Index(raw, ":"); i >= 0 {
		scheme := strings.ToLower(raw[:i])
		if !opaqueSchemes[scheme] {
			return Target{}, fmt.Errorf("invalid target %q: unsupported scheme or port", raw)
		}
		u, err := url.Parse(raw)
		if err != nil {
			return Target{}, fmt.Errorf("invalid URL %q: %w", raw, err)
		}
		if u.Opaque == "" {
			return Target{}, fmt.Errorf("invalid target %q", raw)
		}
		return NewTarget(u)
	}

	// Plain hostname or IP.
	return parseURL("https://" + raw)
}

// opaqueSchemes carry no authority, so their targets have no host.
var opaqueSchemes = map[string]bool{
	"mailto": true,
	"urn":    true,
	"tel":    true,
	"news":   true,
}

// splitAuthority splits raw before the first path, query or fragment
// delimiter.
func splitAuthority(raw string) (string, string) {
	if i := strings.IndexAny(raw, "/?#"); i >= 0 {
		return raw[:i], raw[i:]
	}
	return raw, ""
}

func parseURL(raw string) (Target, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Target{}, fmt.Errorf("invalid URL %q: %w", raw, err)
	}

	if u.Hostname() == "" {
		return Target{}, fmt.Errorf("URL %q has no hostname", raw)
	}

	return NewTarget(u)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Hostname returns the host view of the target and whether it is present.
func (t Target) Hostname() (string, bool) {
	return t.Host, t.Host != ""
}

func (t Target) String() string {
	return t.URL
}

// Package validate holds the pure input checks the intake pipeline runs
// before doing any I/O. Everything here is deterministic and total: no
// network, no panics, defined output for every input.
package validate

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"vibeshelf/internal/domain"
)

// Ellipsis is appended by ClampText when it truncates.
const Ellipsis = "..."

// ValidateURL checks that raw is an absolute http(s) URL within the length
// ceiling and returns its normalized form: scheme and host lowercased,
// default ports stripped, redundant trailing slash removed.
func ValidateURL(raw string) (string, error) {
	// The ceiling is a character budget, counted like ClampText counts.
	if utf8.RuneCountInString(raw) > domain.MaxURLLength {
		return "", fmt.Errorf("%w: exceeds %d characters", domain.ErrInvalidURL, domain.MaxURLLength)
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrInvalidURL, err)
	}

	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return "", fmt.Errorf("%w: scheme %q is not http or https", domain.ErrInvalidURL, u.Scheme)
	}
	if u.Host == "" {
		return "", fmt.Errorf("%w: missing host", domain.ErrInvalidURL)
	}

	u.Scheme = scheme
	u.Host = strings.ToLower(u.Host)

	// Strip the scheme's default port.
	switch {
	case scheme == "http" && strings.HasSuffix(u.Host, ":80"):
		u.Host = strings.TrimSuffix(u.Host, ":80")
	case scheme == "https" && strings.HasSuffix(u.Host, ":443"):
		u.Host = strings.TrimSuffix(u.Host, ":443")
	}

	// "https://example.com/" and "https://example.com" are the same resource.
	if u.Path == "/" && u.RawQuery == "" && u.Fragment == "" {
		u.Path = ""
	}

	return u.String(), nil
}

// ClampText truncates text to at most max characters. Truncated output is
// trimmed of surrounding whitespace and marked with an ellipsis; text within
// the budget is returned unchanged.
func ClampText(text string, max int) string {
	if max < 0 {
		max = 0
	}
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return strings.TrimSpace(string(runes[:max])) + Ellipsis
}

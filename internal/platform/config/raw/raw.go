// Package raw is the env reader the logger bootstraps from. It must
// not import the logger package, so unlike platform config it never
// logs and never panics.
package raw

import (
	"os"
	"strings"
)

// Conf reads env vars under a composed prefix such as "LOG_".
type Conf struct{ prefix string }

// New returns the root view with no prefix.
func New() Conf { return Conf{} }

// Prefix narrows the view by appending p to the current prefix.
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

func (c Conf) getenv(key string) string {
	return strings.TrimSpace(os.Getenv(c.prefix + key))
}

// Get returns the trimmed value or def when unset or blank.
func (c Conf) Get(key, def string) string {
	if v := c.getenv(key); v != "" {
		return v
	}
	return def
}

// GetBool accepts 1, true and yes in any case. Anything else that is
// non-empty reads as false.
func (c Conf) GetBool(key string, def bool) bool {
	v := strings.ToLower(c.getenv(key))
	if v == "" {
		return def
	}
	return v == "1" || v == "true" || v == "yes"
}

// GetInt parses a non-negative decimal. Any other shape, negatives
// included, returns def.
func (c Conf) GetInt(key string, def int) int {
	s := c.getenv(key)
	if s == "" {
		return def
	}
	n := 0
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if ch < '0' || ch > '9' {
			return def
		}
		n = n*10 + int(ch-'0')
	}
	return n
}

// internal/app/system/normalize/normalize.go
//
// Package normalize cleans values taken from URLs and query strings
// before they reach a store.
package normalize

import (
	"strconv"
	"strings"
	"time"
)

// QueryParam trims surrounding whitespace. Case is preserved.
func QueryParam(s string) string {
	return strings.TrimSpace(s)
}

// Status lowercases and trims a status filter value.
func Status(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Slug lowercases and trims a slug taken from a URL.
func Slug(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Year parses a four-digit calendar year.
func Year(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if len(s) != 4 {
		return 0, false
	}
	y, err := strconv.Atoi(s)
	if err != nil || y < 1000 {
		return 0, false
	}
	return y, true
}

// Month parses a month number, 1 through 12.
func Month(s string) (time.Month, bool) {
	m, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || m < 1 || m > 12 {
		return 0, false
	}
	return time.Month(m), true
}

// OptionalInt parses an optional integer filter. Blank yields nil.
func OptionalInt(s string) (*int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, true
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, false
	}
	return &n, true
}

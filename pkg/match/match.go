// Package match decides whether a navigation target matches the location
// currently being viewed.
//
// Locations and targets are treated as opaque slash-separated paths. No URL
// parsing happens here beyond trailing slash normalization, prefix and
// equality comparison.
package match

import (
	"fmt"
	"strings"
)

// Mode selects how a target is compared against a location.
type Mode string

const (
	// Exact matches only when the normalized location equals the normalized target.
	Exact Mode = "exact"

	// Prefix matches the target itself and every location nested under it.
	Prefix Mode = "prefix"
)

// ParseMode converts a configured mode string into a Mode.
// An empty string yields Exact.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", Exact:
		return Exact, nil
	case Prefix:
		return Prefix, nil
	default:
		return "", fmt.Errorf("unknown match mode %q (want %q or %q)", s, Exact, Prefix)
	}
}

// Valid reports whether m is one of the canonical modes. The zero value is
// valid and means Exact. Values ParseMode would accept only after folding case
// or trimming, such as "Prefix", are not valid.
func (m Mode) Valid() bool {
	switch m {
	case "", Exact, Prefix:
		return true
	default:
		return false
	}
}

// Normalize trims trailing slashes from p. The root path stays "/".
func Normalize(p string) string {
	if p == "" {
		return ""
	}

	trimmed := strings.TrimRight(p, "/")
	if trimmed == "" {
		return "/"
	}

	return trimmed
}

// Match compares target against location using mode.
// It returns the specificity of the match (the normalized target length,
// so deeper targets win ties) and whether the location matched at all.
func Match(mode Mode, target, location string) (int, bool) {
	t := Normalize(target)
	loc := Normalize(location)

	if t == "" || loc == "" {
		return 0, false
	}

	if t == loc {
		return len(t), true
	}

	if mode != Prefix {
		return 0, false
	}

	// every absolute location lives under the root
	if t == "/" {
		return len(t), strings.HasPrefix(loc, "/")
	}

	if strings.HasPrefix(loc, t+"/") {
		return len(t), true
	}

	return 0, false
}

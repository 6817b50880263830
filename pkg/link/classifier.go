// Package link classifies navigation targets as internal to the hosting site
// or external to it.
package link

import (
	"net/url"
	"strings"
)

// Classification is the result of classifying a single target.
type Classification struct {
	// Internal is true when the target stays on the hosting site.
	Internal bool `json:"internal"`

	// Path is the site-relative route of an internal target. Empty for external targets.
	Path string `json:"path,omitempty"`
}

// Classifier decides whether targets belong to the site it was built for.
type Classifier struct {
	host string // lower-cased hostname
	port string // only compared when the site declares one
}

// New creates a classifier for the site at siteURL.
// siteURL may be a full URL ("https://example.com/docs") or a bare host
// ("example.com"). An empty or unparsable site makes every absolute URL external.
func New(siteURL string) *Classifier {
	c := &Classifier{}

	siteURL = strings.TrimSpace(siteURL)
	if siteURL == "" {
		return c
	}

	if !strings.Contains(siteURL, "://") {
		siteURL = "//" + siteURL
	}

	u, err := url.Parse(siteURL)
	if err != nil || u.Host == "" {
		return c
	}

	c.host = strings.ToLower(u.Hostname())
	c.port = u.Port()

	return c
}

// Host returns the site host the classifier compares against.
func (c *Classifier) Host() string {
	return c.host
}

// Classify reports whether target is internal.
// The returned Path is decoded and has no query or fragment, so it compares
// directly with a router's decoded location. Relative targets are always internal. Absolute http(s) and protocol-relative
// URLs are internal only when their host matches the site. Any other scheme
// (mailto:, tel:, ftp:) is external. Classify never fails; a target it cannot
// parse is external.
func (c *Classifier) Classify(target string) Classification {
	target = strings.TrimSpace(target)
	if target == "" {
		return Classification{}
	}

	u, err := url.Parse(target)
	if err != nil {
		return Classification{}
	}

	switch {
	case u.Scheme == "" && u.Host == "" && u.Opaque == "":
		return Classification{Internal: true, Path: u.Path}
	case u.Scheme != "" && u.Scheme != "http" && u.Scheme != "https":
		return Classification{}
	}

	if !c.sameHost(u) {
		return Classification{}
	}

	p := u.Path
	if p == "" {
		p = "/"
	}

	return Classification{Internal: true, Path: p}
}

func (c *Classifier) sameHost(u *url.URL) bool {
	if c == nil || c.host == "" {
		return false
	}

	if !strings.EqualFold(u.Hostname(), c.host) {
		return false
	}

	return c.port == "" || u.Port() == c.port
}

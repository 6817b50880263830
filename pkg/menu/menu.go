package menu

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"maps"
	"net/http"
	"net/url"
	"slices"
	"strings"

	"github.com/mchmarny/sidenav/pkg/match"
)

// Menu represents the root of the navigation tree.
type Menu struct {
	// Title is the sidebar heading.
	Title string `json:"title" yaml:"title"`

	// Description of the menu
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Version of the menu
	Version string `json:"version,omitempty" yaml:"version,omitempty"`

	// Site is the base URL of the site hosting the navigation.
	// Absolute targets on its host are internal.
	Site string `json:"site,omitempty" yaml:"site,omitempty"`

	// Icons adds to or overrides entries of the built-in icon registry.
	Icons map[string]string `json:"icons,omitempty" yaml:"icons,omitempty"`

	// Items is the top level of the tree, in display order.
	Items []Item `json:"items" yaml:"items"`
}

// Clone returns a deep copy of the menu.
func (m *Menu) Clone() *Menu {
	out := *m

	out.Icons = maps.Clone(m.Icons)

	if m.Items != nil {
		out.Items = make([]Item, len(m.Items))
		for i := range m.Items {
			out.Items[i] = m.Items[i].clone()
		}
	}

	return &out
}

// Walk visits every item depth-first in configuration order.
// path is the item's location in the tree, e.g. "items[1].items[0]".
// Walking stops at the first error fn returns.
func (m *Menu) Walk(fn func(path string, item Item) error) error {
	return walk(m.Items, "items", fn)
}

func walk(items []Item, prefix string, fn func(path string, item Item) error) error {
	for i, item := range items {
		p := fmt.Sprintf("%s[%d]", prefix, i)
		if err := fn(p, item); err != nil {
			return err
		}
		if err := walk(item.Items, p+".items", fn); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks the whole tree and returns a *ConfigError for the first
// malformed node.
func (m *Menu) Validate() error {
	if m == nil {
		return configErrorf("", "menu is nil")
	}

	if m.Site != "" {
		u, err := url.Parse(m.Site)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return &ConfigError{Path: "site", Reason: fmt.Sprintf("must be an absolute http(s) URL, got %q", m.Site), Err: err}
		}
	}

	for _, id := range slices.Sorted(maps.Keys(m.Icons)) {
		if text := m.Icons[id]; strings.TrimSpace(id) == "" || strings.TrimSpace(text) == "" {
			return configErrorf("icons", "entries need both an identifier and a glyph, got %q: %q", id, text)
		}
	}

	return m.Walk(validateItem)
}

func validateItem(path string, item Item) error {
	if strings.TrimSpace(item.Label) == "" {
		return configErrorf(path, "label must be set")
	}

	if !item.Match.Valid() {
		return configErrorf(path, "unknown match mode %q (want %q or %q)", item.Match, match.Exact, match.Prefix)
	}

	switch item.Kind {
	case KindLink:
		if strings.TrimSpace(item.Target) == "" {
			return configErrorf(path, "link %q must have a target", item.Label)
		}
		if len(item.Items) > 0 {
			return configErrorf(path, "link %q cannot have children", item.Label)
		}
	case KindCategory:
		if item.Items == nil {
			return configErrorf(path, "category %q must have an items list, use [] for none", item.Label)
		}
		if item.Target != "" {
			return configErrorf(path, "category %q cannot have a target", item.Label)
		}
		if item.Match != "" {
			return configErrorf(path, "category %q cannot set match", item.Label)
		}
	default:
		return configErrorf(path, "unknown kind %q (want %q or %q)", item.Kind, KindLink, KindCategory)
	}

	return nil
}

// Handler returns an HTTP handler that responds with the menu configuration as JSON.
func (m *Menu) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		slog.Debug("handling menu request",
			"method", r.Method,
			"url", r.URL.Path,
		)

		writeJSON(w, http.StatusOK, m)
	})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	b, err := json.Marshal(data)
	if err != nil {
		slog.Error("failed to encode response", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(b); err != nil {
		slog.Error("failed to write response", "error", err)
	}
}

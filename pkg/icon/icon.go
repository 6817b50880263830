package icon

import (
	"maps"
	"strings"
)

// Glyph is a renderable icon reference.
type Glyph struct {
	// Name is the registry key the glyph was found under.
	Name string `json:"name"`

	// Text is the glyph itself, an emoji or short symbol.
	Text string `json:"text"`
}

// Registry maps lower-case icon identifiers to glyphs.
type Registry map[string]Glyph

var builtin = map[string]string{
	"home":     "🏠",
	"book":     "📖",
	"rocket":   "🚀",
	"settings": "⚙️",
	"gear":     "⚙️",
	"code":     "💻",
	"search":   "🔍",
	"github":   "🐙",
	"link":     "🔗",
	"folder":   "📁",
	"file":     "📄",
	"info":     "ℹ️",
	"warning":  "⚠️",
	"star":     "⭐",
	"puzzle":   "🧩",
	"terminal": "⌨️",
}

// Default returns a fresh copy of the built-in icon set.
func Default() Registry {
	return FromMap(builtin)
}

// FromMap builds a registry from identifier/glyph-text pairs.
// Entries with an empty identifier or glyph are skipped.
func FromMap(entries map[string]string) Registry {
	reg := make(Registry, len(entries))
	for id, text := range entries {
		reg.add(id, text)
	}
	return reg
}

// Merge returns a new registry with extra layered over r.
// r itself is not modified.
func (r Registry) Merge(extra map[string]string) Registry {
	out := make(Registry, len(r)+len(extra))
	maps.Copy(out, r)
	for id, text := range extra {
		out.add(id, text)
	}
	return out
}

func (r Registry) add(id, text string) {
	key := normalize(id)
	text = strings.TrimSpace(text)
	if key == "" || text == "" {
		return
	}
	r[key] = Glyph{Name: key, Text: text}
}

func normalize(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

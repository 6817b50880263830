package icon

import "strings"

// Resolver looks icon identifiers up in a fixed registry.
// It is safe for concurrent use; the registry is never written after construction.
type Resolver struct {
	reg Registry
}

// NewResolver creates a resolver over reg. A nil registry is valid and
// resolves every identifier to nil.
func NewResolver(reg Registry) *Resolver {
	return &Resolver{reg: reg}
}

// Resolve returns the glyph for id, or nil when id is empty or unknown.
//
// An identifier carrying an icon-set prefix such as "lucide:rocket" is looked
// up as given first and then by its bare name.
func (r *Resolver) Resolve(id string) *Glyph {
	if r == nil || len(r.reg) == 0 {
		return nil
	}

	key := normalize(id)
	if key == "" {
		return nil
	}

	if g, ok := r.reg[key]; ok {
		return &g
	}

	if _, bare, found := strings.Cut(key, ":"); found && bare != "" {
		if g, ok := r.reg[bare]; ok {
			return &g
		}
	}

	return nil
}

// Len returns the number of registered glyphs.
func (r *Resolver) Len() int {
	if r == nil {
		return 0
	}
	return len(r.reg)
}

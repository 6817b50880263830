package menu

import (
	"log/slog"

	"github.com/mchmarny/sidenav/pkg/icon"
	"github.com/mchmarny/sidenav/pkg/link"
	"github.com/mchmarny/sidenav/pkg/match"
	"github.com/mchmarny/sidenav/pkg/metric"
)

// ActiveResolutionContext carries the per-render browsing state.
type ActiveResolutionContext struct {
	// CurrentLocation is the path of the page being viewed.
	CurrentLocation string `json:"location"`
}

// RenderNode is an Item annotated for one location.
type RenderNode struct {
	Kind        Kind         `json:"kind"`
	Label       string       `json:"label"`
	Target      string       `json:"target,omitempty"`
	Icon        *icon.Glyph  `json:"icon,omitempty"`
	Internal    bool         `json:"internal"`
	Active      bool         `json:"isActive"`
	Collapsed   bool         `json:"collapsed"`
	Expandable  bool         `json:"expandable"`
	Description string       `json:"description,omitempty"`
	Badge       string       `json:"badge,omitempty"`
	Children    []RenderNode `json:"children,omitempty"`
}

// Renderer turns a validated menu into render-ready nodes for a location.
// The menu is copied at construction; a Renderer is safe for concurrent use.
type Renderer struct {
	menu    *Menu
	icons   *icon.Resolver
	links   *link.Classifier
	metrics *metric.Metrics
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithIconRegistry replaces the default icon registry.
func WithIconRegistry(reg icon.Registry) RendererOption {
	return func(r *Renderer) { r.icons = icon.NewResolver(reg) }
}

// WithClassifier replaces the classifier built from Menu.Site.
func WithClassifier(c *link.Classifier) RendererOption {
	return func(r *Renderer) { r.links = c }
}

// WithMetrics records render outcomes on m.
func WithMetrics(m *metric.Metrics) RendererOption {
	return func(r *Renderer) { r.metrics = m }
}

// NewRenderer validates m and returns a renderer over a private copy of it.
// By default icons resolve against icon.Default merged with Menu.Icons and
// links are classified against Menu.Site.
func NewRenderer(m *Menu, opts ...RendererOption) (*Renderer, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	cp := m.Clone()

	r := &Renderer{
		menu:  cp,
		icons: icon.NewResolver(icon.Default().Merge(cp.Icons)),
		links: link.New(cp.Site),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r, nil
}

// Menu returns a copy of the configuration the renderer was built from.
func (r *Renderer) Menu() *Menu {
	return r.menu.Clone()
}

// Title returns the menu title.
func (r *Renderer) Title() string {
	return r.menu.Title
}

// Render annotates the tree for location.
func (r *Renderer) Render(location string) []RenderNode {
	return r.RenderContext(ActiveResolutionContext{CurrentLocation: location})
}

// RenderContext walks the tree depth-first and returns an output tree of the
// same shape and order. When several links match the location the one with the
// longest target wins, wherever it sits in the tree. A category is active when
// any descendant is, and is always expanded in that case.
func (r *Renderer) RenderContext(ctx ActiveResolutionContext) []RenderNode {
	winner, found := r.resolve(r.menu.Items, ctx.CurrentLocation, "", false)

	out := r.render(r.menu.Items, ctx.CurrentLocation, winner, found)

	r.record(ctx.CurrentLocation, found)

	return out
}

// resolve finds the normalized route of the most specific matching link.
func (r *Renderer) resolve(items []Item, location, best string, found bool) (string, bool) {
	for _, item := range items {
		switch item.Kind {
		case KindLink:
			route, ok := r.matches(item, location)
			if ok && (!found || len(route) > len(best)) {
				best, found = route, true
			}
		case KindCategory:
			best, found = r.resolve(item.Items, location, best, found)
		}
	}
	return best, found
}

// matches reports whether a single link matches location on its own,
// returning its normalized route.
func (r *Renderer) matches(item Item, location string) (string, bool) {
	c := r.links.Classify(item.Target)
	if !c.Internal {
		return "", false
	}

	if _, ok := match.Match(item.Match, c.Path, location); !ok {
		return "", false
	}

	return match.Normalize(c.Path), true
}

func (r *Renderer) render(items []Item, location, winner string, found bool) []RenderNode {
	out := make([]RenderNode, 0, len(items))

	for _, item := range items {
		n := RenderNode{
			Kind:        item.Kind,
			Label:       item.Label,
			Target:      item.Target,
			Icon:        r.resolveIcon(item.Icon),
			Description: item.Description,
			Badge:       item.Badge,
		}

		switch item.Kind {
		case KindLink:
			c := r.links.Classify(item.Target)
			n.Internal = c.Internal
			if found && c.Internal {
				_, ok := match.Match(item.Match, c.Path, location)
				n.Active = ok && match.Normalize(c.Path) == winner
			}
		case KindCategory:
			n.Children = r.render(item.Items, location, winner, found)
			n.Expandable = len(n.Children) > 0
			for _, c := range n.Children {
				if c.Active {
					n.Active = true
					break
				}
			}
			n.Collapsed = item.Collapsed && !n.Active
		}

		out = append(out, n)
	}

	return out
}

func (r *Renderer) resolveIcon(id string) *icon.Glyph {
	if id == "" {
		return nil
	}

	g := r.icons.Resolve(id)
	if g == nil {
		slog.Debug("icon not found, rendering without it", "icon", id)
		if r.metrics != nil {
			r.metrics.IconMisses.Increment(id)
		}
	}

	return g
}

func (r *Renderer) record(location string, found bool) {
	if found {
		if r.metrics != nil {
			r.metrics.Renders.Increment("active")
		}
		return
	}

	reason := metric.ReasonNoMatch
	if location == "" {
		reason = metric.ReasonEmptyLocation
	}

	slog.Debug("no active navigation item", "location", location, "reason", reason)

	if r.metrics != nil {
		r.metrics.Renders.Increment("none")
		r.metrics.ActiveMisses.Increment(reason)
	}
}

// IsActive reports whether item is active for location on its own, without
// comparing it to the rest of the tree. A link is active when it is internal
// and matches; a category when any descendant link is.
func (r *Renderer) IsActive(item Item, location string) bool {
	switch item.Kind {
	case KindLink:
		_, ok := r.matches(item, location)
		return ok
	case KindCategory:
		for _, c := range item.Items {
			if r.IsActive(c, location) {
				return true
			}
		}
	}
	return false
}

// ActiveTrail returns the labels from the top level down to the first active
// link, following configuration order. It is empty when nothing is active.
func ActiveTrail(nodes []RenderNode) []string {
	for _, n := range nodes {
		if !n.Active {
			continue
		}
		if n.Kind == KindLink {
			return []string{n.Label}
		}
		if rest := ActiveTrail(n.Children); len(rest) > 0 {
			return append([]string{n.Label}, rest...)
		}
	}
	return nil
}

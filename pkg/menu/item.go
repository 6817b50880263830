package menu

import (
	"github.com/mchmarny/sidenav/pkg/match"
)

// Kind tags an Item as a leaf link or a category of child items.
type Kind string

const (
	// KindLink is a leaf entry pointing at a target.
	KindLink Kind = "link"

	// KindCategory groups child items under a header.
	KindCategory Kind = "category"
)

// Item represents an individual entry in the navigation tree.
// Items are configuration: they are never modified by rendering.
type Item struct {
	// Kind is the variant tag, link or category.
	Kind Kind `json:"kind" yaml:"kind"`

	// Label is the display text.
	Label string `json:"label" yaml:"label"`

	// Target is the path or absolute URL of a link. Categories have none.
	Target string `json:"target,omitempty" yaml:"target,omitempty"`

	// Icon is an optional symbolic icon identifier.
	Icon string `json:"icon,omitempty" yaml:"icon,omitempty"`

	// Match selects exact (default) or prefix matching for a link.
	Match match.Mode `json:"match,omitempty" yaml:"match,omitempty"`

	// Collapsed is the initial state of a category at first render.
	Collapsed bool `json:"collapsed,omitempty" yaml:"collapsed,omitempty"`

	// Description is optional hover text.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Badge is an optional short annotation shown next to the label.
	Badge string `json:"badge,omitempty" yaml:"badge,omitempty"`

	// Items are the children of a category, in display order.
	// Categories must carry a non-nil slice, even when it is empty.
	Items []Item `json:"items,omitempty" yaml:"items"`
}

// Link returns a link item with exact matching.
func Link(label, target string) Item {
	return Item{Kind: KindLink, Label: label, Target: target}
}

// Section returns a link item that is active for its target and every
// location nested under it.
func Section(label, target string) Item {
	return Item{Kind: KindLink, Label: label, Target: target, Match: match.Prefix}
}

// Category returns a category item holding children in the given order.
func Category(label string, children ...Item) Item {
	if children == nil {
		children = []Item{}
	}
	return Item{Kind: KindCategory, Label: label, Items: children}
}

// IsLink reports whether the item is a leaf link.
func (i Item) IsLink() bool { return i.Kind == KindLink }

// IsCategory reports whether the item groups children.
func (i Item) IsCategory() bool { return i.Kind == KindCategory }

// clone returns a deep copy of the item and its children.
func (i Item) clone() Item {
	out := i
	if i.Items != nil {
		out.Items = make([]Item, len(i.Items))
		for n := range i.Items {
			out.Items[n] = i.Items[n].clone()
		}
	}
	return out
}

package menu

import (
	"log/slog"
	"net/http"
)

// LocationParam is the query parameter carrying the current location.
const LocationParam = "location"

// Navigation is the render result for one location, as served over HTTP.
type Navigation struct {
	Title    string       `json:"title"`
	Version  string       `json:"version,omitempty"`
	Location string       `json:"location"`
	Trail    []string     `json:"trail"`
	Items    []RenderNode `json:"items"`
}

// Navigation renders the tree for location and wraps it with the menu metadata.
func (r *Renderer) Navigation(location string) Navigation {
	items := r.Render(location)

	trail := ActiveTrail(items)
	if trail == nil {
		trail = []string{}
	}

	return Navigation{
		Title:    r.menu.Title,
		Version:  r.menu.Version,
		Location: location,
		Trail:    trail,
		Items:    items,
	}
}

// Handler returns an HTTP handler that responds with the navigation rendered
// for the location query parameter, e.g. /api/nav?location=/docs/intro.
func (r *Renderer) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		location := req.URL.Query().Get(LocationParam)

		nav := r.Navigation(location)

		slog.Debug("navigation rendered",
			"location", location,
			"trail", nav.Trail,
		)

		writeJSON(w, http.StatusOK, nav)
	})
}

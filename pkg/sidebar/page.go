// Package sidebar renders navigation nodes as an HTML sidebar.
//
// Components are templ components so they can be embedded in any templ layout
// or served directly with templ.Handler.
package sidebar

//go:generate templ generate

import (
	"log/slog"
	"net/http"

	"github.com/a-h/templ"

	"github.com/mchmarny/sidenav/pkg/menu"
)

// Source renders navigation for a location. *menu.Renderer satisfies it.
type Source interface {
	Title() string
	Render(location string) []menu.RenderNode
}

// Handler serves a page whose sidebar is rendered for the request path.
// Paths outside the navigation are answered with 404, still with the sidebar.
func Handler(src Source) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		location := r.URL.Path
		nodes := src.Render(location)

		status := http.StatusOK
		if len(menu.ActiveTrail(nodes)) == 0 {
			status = http.StatusNotFound
		}

		slog.Debug("serving sidebar page", "location", location, "status", status)

		templ.Handler(Page(src.Title(), location, nodes), templ.WithStatus(status)).ServeHTTP(w, r)
	})
}

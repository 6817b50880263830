package menu

import (
	"context"
	"errors"

	"github.com/mchmarny/sidenav/pkg/server"
)

// Run serves the navigation API and blocks until the context is canceled or an error occurs.
// The routes below are registered before opt, so callers can add their own or a catch-all:
//
//	/api/menu  validated configuration as JSON
//	/api/nav   navigation rendered for ?location=
//	/healthz   liveness
//	/readyz    readiness
//	/metrics   Prometheus, when the renderer has metrics
func (r *Renderer) Run(ctx context.Context, opt ...server.Option) error {
	opts := []server.Option{
		server.WithHandler("/api/menu", r.menu.Handler()),
		server.WithHandler("/api/nav", r.Handler()),
		server.WithSimpleHealth(),
		server.WithReadiness(r),
	}

	if r.metrics != nil {
		opts = append(opts, server.WithMetricsHandler(r.metrics.Handler()))
	}

	return server.New(append(opts, opt...)...).Serve(ctx)
}

// Ready reports whether the renderer holds a menu.
func (r *Renderer) Ready(ctx context.Context) error {
	if r == nil || r.menu == nil {
		return errors.New("navigation is not loaded")
	}
	return ctx.Err()
}

package menu

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mchmarny/sidenav/pkg/icon"
	"github.com/mchmarny/sidenav/pkg/link"
	"github.com/mchmarny/sidenav/pkg/metric"
)

func newRenderer(t *testing.T, m *Menu, opts ...RendererOption) *Renderer {
	t.Helper()

	r, err := NewRenderer(m, opts...)
	require.NoError(t, err)

	return r
}

func TestRenderHomeIsActive(t *testing.T) {
	r := newRenderer(t, &Menu{Items: []Item{Link("Home", "/")}})

	got := r.Render("/")

	require.Len(t, got, 1)
	assert.Equal(t, "Home", got[0].Label)
	assert.True(t, got[0].Active)
	assert.True(t, got[0].Internal)
}

func TestRenderActiveDescendantExpandsCategory(t *testing.T) {
	docs := Category("Docs", Link("Intro", "/docs/intro"))
	docs.Collapsed = true

	r := newRenderer(t, &Menu{Items: []Item{docs}})

	got := r.Render("/docs/intro")

	require.Len(t, got, 1)
	assert.True(t, got[0].Active)
	assert.False(t, got[0].Collapsed, "category holding the active page renders expanded")
	assert.True(t, got[0].Expandable)
	require.Len(t, got[0].Children, 1)
	assert.True(t, got[0].Children[0].Active)

	got = r.Render("/elsewhere")
	assert.False(t, got[0].Active)
	assert.True(t, got[0].Collapsed, "configured default applies when nothing inside is active")
}

func TestRenderExternalLinkNeverActive(t *testing.T) {
	r := newRenderer(t, &Menu{
		Site:  "https://example.com",
		Items: []Item{Section("GitHub", "https://github.com/example")},
	})

	for _, loc := range []string{"/", "https://github.com/example", "/example", "github.com/example"} {
		got := r.Render(loc)
		require.Len(t, got, 1)
		assert.False(t, got[0].Internal)
		assert.False(t, got[0].Active, "location %q", loc)
	}
}

func TestRenderLongestPrefixWins(t *testing.T) {
	r := newRenderer(t, &Menu{Items: []Item{
		Section("Settings", "/settings"),
		Section("Profile", "/settings/profile"),
	}})

	got := r.Render("/settings/profile")
	assert.False(t, got[0].Active)
	assert.True(t, got[1].Active)

	got = r.Render("/settings/profile/avatar")
	assert.False(t, got[0].Active)
	assert.True(t, got[1].Active)

	got = r.Render("/settings/billing")
	assert.True(t, got[0].Active)
	assert.False(t, got[1].Active)
}

func TestRenderLongestPrefixWinsRegardlessOfOrder(t *testing.T) {
	r := newRenderer(t, &Menu{Items: []Item{
		Section("Profile", "/settings/profile"),
		Section("Settings", "/settings"),
	}})

	got := r.Render("/settings/profile")
	assert.True(t, got[0].Active)
	assert.False(t, got[1].Active)
}

func TestRenderLongestPrefixWinsAcrossCategories(t *testing.T) {
	r := newRenderer(t, &Menu{Items: []Item{
		Section("Docs", "/docs"),
		Category("Reference", Section("API", "/docs/api")),
	}})

	got := r.Render("/docs/api/users")
	assert.False(t, got[0].Active)
	assert.True(t, got[1].Active)
	assert.True(t, got[1].Children[0].Active)
}

func TestRenderExactBeatsShorterPrefix(t *testing.T) {
	r := newRenderer(t, &Menu{Items: []Item{
		Section("Docs", "/docs"),
		Link("Intro", "/docs/intro/"),
	}})

	got := r.Render("/docs/intro")
	assert.False(t, got[0].Active)
	assert.True(t, got[1].Active)

	got = r.Render("/docs/intro/more")
	assert.True(t, got[0].Active, "exact link does not match nested pages")
	assert.False(t, got[1].Active)
}

func TestRenderDuplicateTargetsAreBothActive(t *testing.T) {
	r := newRenderer(t, &Menu{Items: []Item{
		Link("Intro", "/docs/intro"),
		Category("Docs", Link("Intro again", "/docs/intro")),
	}})

	got := r.Render("/docs/intro")
	assert.True(t, got[0].Active)
	assert.True(t, got[1].Children[0].Active)
	assert.Equal(t, []string{"Intro"}, ActiveTrail(got))
}

func TestRenderUnknownIconDegrades(t *testing.T) {
	stub := icon.FromMap(map[string]string{"home": "H"})
	metrics := metric.NewMetrics("test")

	r := newRenderer(t, &Menu{Items: []Item{
		{Kind: KindLink, Label: "Launch", Target: "/launch", Icon: "lucide:rocket"},
		{Kind: KindLink, Label: "Home", Target: "/", Icon: "home"},
		Link("Plain", "/plain"),
	}}, WithIconRegistry(stub), WithMetrics(metrics))

	var got []RenderNode
	require.NotPanics(t, func() { got = r.Render("/launch") })

	assert.Nil(t, got[0].Icon)
	assert.True(t, got[0].Active)
	require.NotNil(t, got[1].Icon)
	assert.Equal(t, "H", got[1].Icon.Text)
	assert.Nil(t, got[2].Icon)

	assert.InDelta(t, 1.0, testutil.ToFloat64(metrics.IconMisses.Vec().WithLabelValues("lucide:rocket")), 0)
}

func TestRenderMenuIconsExtendDefaults(t *testing.T) {
	r := newRenderer(t, &Menu{
		Icons: map[string]string{"plugin": "🔌"},
		Items: []Item{
			{Kind: KindLink, Label: "Plugins", Target: "/plugins", Icon: "plugin"},
			{Kind: KindLink, Label: "Home", Target: "/", Icon: "home"},
		},
	})

	got := r.Render("")
	require.NotNil(t, got[0].Icon)
	assert.Equal(t, "🔌", got[0].Icon.Text)
	require.NotNil(t, got[1].Icon)
	assert.Equal(t, "🏠", got[1].Icon.Text)
}

func TestRenderNoMatchIsNotAnError(t *testing.T) {
	metrics := metric.NewMetrics("test")
	r := newRenderer(t, &Menu{Items: []Item{
		Link("Home", "/"),
		Category("Docs", Link("Intro", "/docs/intro")),
	}}, WithMetrics(metrics))

	for _, loc := range []string{"/404", ""} {
		got := r.Render(loc)
		assert.False(t, got[0].Active)
		assert.False(t, got[1].Active)
		assert.Empty(t, ActiveTrail(got))
	}

	assert.InDelta(t, 2.0, testutil.ToFloat64(metrics.Renders.Vec().WithLabelValues("none")), 0)
	assert.InDelta(t, 1.0, testutil.ToFloat64(metrics.ActiveMisses.Vec().WithLabelValues(metric.ReasonNoMatch)), 0)
	assert.InDelta(t, 1.0, testutil.ToFloat64(metrics.ActiveMisses.Vec().WithLabelValues(metric.ReasonEmptyLocation)), 0)
}

func TestRenderEmptyCategory(t *testing.T) {
	empty := Category("Coming soon")
	empty.Collapsed = true

	r := newRenderer(t, &Menu{Items: []Item{empty}})

	got := r.Render("/")
	require.Len(t, got, 1)
	assert.False(t, got[0].Expandable)
	assert.False(t, got[0].Active)
	assert.True(t, got[0].Collapsed)
	assert.NotNil(t, got[0].Children)
	assert.Empty(t, got[0].Children)
}

func TestRenderInternalAbsoluteURL(t *testing.T) {
	r := newRenderer(t, &Menu{
		Site:  "https://example.com",
		Items: []Item{Link("Writing", "https://example.com/guides/plugins/writing")},
	})

	got := r.Render("/guides/plugins/writing")
	assert.True(t, got[0].Internal)
	assert.True(t, got[0].Active)
	assert.Equal(t, "https://example.com/guides/plugins/writing", got[0].Target)
}

func TestRenderAbsoluteAndRelativeTargetsAgree(t *testing.T) {
	tests := []struct {
		name     string
		relative string
		absolute string
		location string
	}{
		{name: "fragment", relative: "/docs/intro#setup", absolute: "https://example.com/docs/intro#setup", location: "/docs/intro"},
		{name: "query", relative: "/docs/intro?tab=api", absolute: "https://example.com/docs/intro?tab=api", location: "/docs/intro"},
		{name: "space", relative: "/docs/my guide", absolute: "https://example.com/docs/my guide", location: "/docs/my guide"},
		{name: "escaped space", relative: "/docs/my%20guide", absolute: "https://example.com/docs/my%20guide", location: "/docs/my guide"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRenderer(t, &Menu{
				Site: "https://example.com",
				Items: []Item{
					Link("Relative", tt.relative),
					Link("Absolute", tt.absolute),
				},
			})

			got := r.Render(tt.location)
			require.Len(t, got, 2)
			assert.True(t, got[0].Internal)
			assert.True(t, got[1].Internal)
			assert.True(t, got[0].Active, "relative %q", tt.relative)
			assert.True(t, got[1].Active, "absolute %q", tt.absolute)
			assert.Equal(t, tt.relative, got[0].Target)
		})
	}
}

func TestRenderAnchorOnlyTargetNeverActive(t *testing.T) {
	r := newRenderer(t, &Menu{Items: []Item{Link("Setup", "#setup")}})

	got := r.Render("/")
	assert.True(t, got[0].Internal)
	assert.False(t, got[0].Active)
}

func TestRenderWithClassifier(t *testing.T) {
	r := newRenderer(t, &Menu{Items: []Item{Link("Docs", "https://docs.example.com/intro")}},
		WithClassifier(link.New("docs.example.com")))

	got := r.Render("/intro")
	assert.True(t, got[0].Internal)
	assert.True(t, got[0].Active)
}

func TestRenderLoadedFixture(t *testing.T) {
	m, err := Load("testdata/nav.yaml")
	require.NoError(t, err)

	r := newRenderer(t, m)
	got := r.Render("/guides/plugins/writing/")

	labels := make([]string, 0, len(got))
	for _, n := range got {
		labels = append(labels, n.Label)
	}
	assert.Equal(t, []string{"Home", "Getting Started", "Guides", "Coming soon", "GitHub"}, labels)

	plugins := got[2].Children[2]
	assert.True(t, plugins.Active)
	assert.False(t, plugins.Collapsed)
	require.NotNil(t, plugins.Icon)
	assert.Equal(t, "🔌", plugins.Icon.Text)

	assert.True(t, got[1].Collapsed)
	assert.Equal(t, []string{"Guides", "Plugins", "Writing a plugin"}, ActiveTrail(got))

	github := got[4]
	assert.False(t, github.Internal)
	require.NotNil(t, github.Icon)
	assert.Equal(t, "github", github.Icon.Name)
}

func TestRenderIsDeterministic(t *testing.T) {
	m, err := Load("testdata/nav.yaml")
	require.NoError(t, err)

	r := newRenderer(t, m)

	for _, loc := range []string{"/", "/docs/install", "/settings/profile/x", "/nope", ""} {
		first := r.Render(loc)
		second := r.Render(loc)
		if diff := cmp.Diff(first, second); diff != "" {
			t.Errorf("Render(%q) differs between calls (-first +second):\n%s", loc, diff)
		}
	}
}

func TestRenderDoesNotShareState(t *testing.T) {
	m := &Menu{Items: []Item{Category("Docs", Link("Intro", "/docs/intro"))}}
	r := newRenderer(t, m)

	// mutating the source after construction does not leak into the renderer
	m.Items[0].Items[0].Target = "/changed"

	first := r.Render("/docs/intro")
	require.True(t, first[0].Children[0].Active)

	first[0].Children[0].Label = "mutated"
	second := r.Render("/docs/intro")
	assert.Equal(t, "Intro", second[0].Children[0].Label)
	assert.Equal(t, "Intro", r.Menu().Items[0].Items[0].Label)
}

func TestNewRendererRejectsInvalidMenu(t *testing.T) {
	_, err := NewRenderer(&Menu{Items: []Item{Link("Broken", "")}})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConfig)

	_, err = NewRenderer(nil)
	assert.ErrorIs(t, err, ErrConfig)
}

func TestIsActive(t *testing.T) {
	r := newRenderer(t, &Menu{Site: "https://example.com", Items: []Item{}})

	settings := Section("Settings", "/settings")
	profile := Section("Profile", "/settings/profile")
	external := Section("GitHub", "https://github.com/example")
	docs := Category("Docs", Category("Nested", Link("Intro", "/docs/intro")))

	// without the tree-level tie-break both prefix links match
	assert.True(t, r.IsActive(settings, "/settings/profile"))
	assert.True(t, r.IsActive(profile, "/settings/profile"))
	assert.False(t, r.IsActive(external, "/"))
	assert.True(t, r.IsActive(docs, "/docs/intro/"))
	assert.False(t, r.IsActive(docs, "/docs"))
	assert.False(t, r.IsActive(Category("Empty"), "/"))
}

func TestActiveTrail(t *testing.T) {
	assert.Nil(t, ActiveTrail(nil))

	nodes := []RenderNode{
		{Kind: KindLink, Label: "Home"},
		{Kind: KindCategory, Label: "Docs", Active: true, Children: []RenderNode{
			{Kind: KindLink, Label: "Intro"},
			{Kind: KindLink, Label: "Install", Active: true},
		}},
	}
	assert.Equal(t, []string{"Docs", "Install"}, ActiveTrail(nodes))
}

func TestNavigationHandler(t *testing.T) {
	r := newRenderer(t, &Menu{
		Title:   "Docs",
		Version: "v1",
		Items:   []Item{Link("Home", "/"), Category("Guides", Link("Intro", "/docs/intro"))},
	})

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/nav?location=/docs/intro", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var nav Navigation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &nav))

	assert.Equal(t, "Docs", nav.Title)
	assert.Equal(t, "v1", nav.Version)
	assert.Equal(t, "/docs/intro", nav.Location)
	assert.Equal(t, []string{"Guides", "Intro"}, nav.Trail)
	require.Len(t, nav.Items, 2)
	assert.True(t, nav.Items[1].Children[0].Active)
}

func TestNavigationHandlerWithoutLocation(t *testing.T) {
	r := newRenderer(t, &Menu{Items: []Item{Link("Home", "/")}})

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/nav", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"trail":[]`)
	assert.Contains(t, rec.Body.String(), `"isActive":false`)
}

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mchmarny/sidenav/pkg/menu"
)

func runCmd(t *testing.T, args ...string) (int, string, string) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)

	return code, stdout.String(), stderr.String()
}

func TestRunWithoutCommand(t *testing.T) {
	code, _, stderr := runCmd(t)
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "usage: sidenav")
}

func TestRunUnknownCommand(t *testing.T) {
	code, _, stderr := runCmd(t, "publish")
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, `unknown command "publish"`)
}

func TestVersion(t *testing.T) {
	code, stdout, _ := runCmd(t, "version")
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "sidenav v0.0.0")
}

func TestValidate(t *testing.T) {
	code, stdout, stderr := runCmd(t, "validate", "-config", "testdata/nav.yaml")
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, "testdata/nav.yaml: ok (3 links, 2 categories)\n", stdout)
}

func TestValidateBrokenConfig(t *testing.T) {
	code, _, stderr := runCmd(t, "validate", "-config", "testdata/broken.yaml")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "invalid navigation config: items[0]")
	assert.Contains(t, stderr, "must have an items list")
}

func TestValidateMissingConfig(t *testing.T) {
	code, _, stderr := runCmd(t, "validate", "-config", "testdata/missing.yaml")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "failed to read navigation config")
}

func TestValidateUsageErrors(t *testing.T) {
	code, _, _ := runCmd(t, "validate", "-nope")
	assert.Equal(t, 2, code)

	code, _, stderr := runCmd(t, "validate", "-config", "testdata/nav.yaml", "extra")
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "unexpected arguments: extra")
}

func TestRenderTree(t *testing.T) {
	code, stdout, stderr := runCmd(t, "render", "-config", "testdata/nav.yaml", "-location", "/docs/intro/")
	require.Equal(t, 0, code, stderr)

	assert.Equal(t, `- 🏠 Home (/)
v Docs [active]
  - Intro (/docs/intro) [active]
= Later
- GitHub (https://github.com/example) [external]
`, stdout)
}

func TestRenderTreeCollapsed(t *testing.T) {
	code, stdout, _ := runCmd(t, "render", "-config", "testdata/nav.yaml", "-location", "/")
	require.Equal(t, 0, code)

	assert.Contains(t, stdout, "- 🏠 Home (/) [active]\n+ Docs\n")
}

func TestRenderJSON(t *testing.T) {
	code, stdout, stderr := runCmd(t, "render", "-config", "testdata/nav.yaml", "-location", "/docs/intro", "-format", "json")
	require.Equal(t, 0, code, stderr)

	var nav menu.Navigation
	require.NoError(t, json.Unmarshal([]byte(stdout), &nav))
	assert.Equal(t, "CLI Docs", nav.Title)
	assert.Equal(t, []string{"Docs", "Intro"}, nav.Trail)
}

func TestRenderUnknownFormat(t *testing.T) {
	code, _, stderr := runCmd(t, "render", "-config", "testdata/nav.yaml", "-format", "xml")
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, `unknown format "xml"`)
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv(envConfig, "testdata/nav.yaml")

	code, stdout, _ := runCmd(t, "validate")
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "testdata/nav.yaml: ok")
}

func TestEnvIntOr(t *testing.T) {
	t.Setenv(envPort, "8080")
	assert.Equal(t, 8080, envIntOr(envPort, 1))

	t.Setenv(envPort, "eighty")
	assert.Equal(t, 1, envIntOr(envPort, 1))

	t.Setenv(envPort, "")
	assert.Equal(t, 1, envIntOr(envPort, 1))
}

func TestServeRejectsBrokenConfig(t *testing.T) {
	code, _, stderr := runCmd(t, "serve", "-config", "testdata/broken.yaml", "-port", "0")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "invalid navigation config")
}

package menu

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load reads, parses and validates a navigation configuration file.
func Load(path string) (*Menu, error) {
	cleanPath := filepath.Clean(path)
	data, err := os.ReadFile(cleanPath) // #nosec G304 - navigation config is authored, not user input
	if err != nil {
		return nil, fmt.Errorf("failed to read navigation config: %w", err)
	}

	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", cleanPath, err)
	}

	slog.Debug("navigation config loaded",
		"path", cleanPath,
		"title", m.Title,
		"items", len(m.Items),
	)

	return m, nil
}

// Parse decodes a YAML navigation configuration and validates it.
// Unknown keys are rejected so that typos surface at load time.
func Parse(data []byte) (*Menu, error) {
	var m Menu

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, configErrorf("", "document is empty")
		}
		return nil, &ConfigError{Reason: "failed to parse YAML", Err: err}
	}

	if m.Items == nil {
		return nil, configErrorf("items", "must be set, use [] for an empty menu")
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}

	return &m, nil
}

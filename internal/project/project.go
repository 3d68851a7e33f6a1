// SPDX-License-Identifier: MPL-2.0

// Package project locates and reads the phiproj.toml manifest that pins a
// directory's Phi sources and validation defaults.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// ManifestFileName is the manifest file looked up in a project directory.
const ManifestFileName = "phiproj.toml"

// ErrNoManifest is returned when no manifest exists in the directory or any
// of its parents.
var ErrNoManifest = errors.New("no project manifest found")

// Manifest pins a project's sources and validation defaults.
type Manifest struct {
	// Sources lists the .phi files making up the program, relative to the
	// manifest's directory.
	Sources []string `toml:"sources"`

	// DefaultModule is used when a command does not name a module.
	DefaultModule string `toml:"default_module"`

	// MaxProbeDepth overrides the configured probe budget; zero means
	// inherit.
	MaxProbeDepth int `toml:"max_probe_depth"`

	// dir is where the manifest was found; source paths resolve against it.
	dir string
}

// Dir returns the directory the manifest was loaded from.
func (m *Manifest) Dir() string { return m.dir }

// SourcePaths returns the manifest's sources resolved against its directory.
func (m *Manifest) SourcePaths() []string {
	paths := make([]string, len(m.Sources))
	for i, src := range m.Sources {
		if filepath.IsAbs(src) {
			paths[i] = src
			continue
		}
		paths[i] = filepath.Join(m.dir, src)
	}
	return paths
}

// Load reads the manifest in dir, walking up parent directories until one is
// found. Returns ErrNoManifest when the walk reaches the filesystem root
// without a hit.
func Load(dir string) (*Manifest, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", dir, err)
	}

	for {
		path := filepath.Join(abs, ManifestFileName)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return loadFile(path)
		}

		parent := filepath.Dir(abs)
		if parent == abs {
			return nil, fmt.Errorf("%w in %s or any parent directory", ErrNoManifest, dir)
		}
		abs = parent
	}
}

func loadFile(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	m.dir = filepath.Dir(path)

	if len(m.Sources) == 0 {
		return nil, fmt.Errorf("%s lists no sources", path)
	}
	if m.MaxProbeDepth < 0 {
		return nil, fmt.Errorf("%s: max_probe_depth must not be negative", path)
	}
	return &m, nil
}

// SPDX-License-Identifier: MPL-2.0

package config

import "context"

// LoadOptions names the explicit inputs of one load: commands pass the
// --config flag through ConfigFilePath, tests point ConfigDirPath at a
// temporary directory.
type LoadOptions struct {
	// ConfigFilePath forces loading from a specific config.cue when set;
	// the platform config directory is not consulted.
	ConfigFilePath string
	// ConfigDirPath overrides the config directory lookup when set.
	ConfigDirPath string
}

// Provider loads the phi configuration. The CLI holds one Provider so the
// lookup chain (explicit file, config dir, working directory, defaults)
// stays in one place.
type Provider interface {
	Load(ctx context.Context, opts LoadOptions) (*Config, error)
}

type fileProvider struct{}

// NewProvider creates the file-backed configuration provider.
func NewProvider() Provider {
	return &fileProvider{}
}

// Load reads the configuration from the requested source and validates it
// against the embedded CUE schema.
func (p *fileProvider) Load(ctx context.Context, opts LoadOptions) (*Config, error) {
	cfg, _, err := loadWithOptions(ctx, opts)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

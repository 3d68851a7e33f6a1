// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidProbeDepth is returned when the probe depth bound is out of range.
	ErrInvalidProbeDepth = errors.New("invalid probe depth")
)

type (
	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// UIConfig holds terminal presentation preferences.
	UIConfig struct {
		// ColorScheme picks the rendering palette: auto, dark, or light.
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`

		// Verbose enables debug-level logging.
		Verbose bool `json:"verbose" mapstructure:"verbose"`
	}

	// ValidationConfig tunes the validation loop.
	ValidationConfig struct {
		// MaxProbeDepth bounds nested probe invocations per predicate
		// evaluation.
		MaxProbeDepth int `json:"max_probe_depth" mapstructure:"max_probe_depth"`

		// Trail prints the full decision trail on every verdict.
		Trail bool `json:"trail" mapstructure:"trail"`
	}

	// Config is the application configuration.
	Config struct {
		// Sources are Phi files loaded when no explicit paths are given.
		Sources []string `json:"sources" mapstructure:"sources"`

		Validation ValidationConfig `json:"validation" mapstructure:"validation"`

		UI UIConfig `json:"ui" mapstructure:"ui"`
	}
)

func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

func (e *InvalidColorSchemeError) Unwrap() error { return ErrInvalidColorScheme }

// IsValid reports whether the color scheme is one of the known values.
func (c ColorScheme) IsValid() bool {
	switch c {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true
	}
	return false
}

// Validate checks constraints the CUE schema already enforces for file-based
// configs; programmatic construction goes through the same gate.
func (c *Config) Validate() error {
	if !c.UI.ColorScheme.IsValid() {
		return &InvalidColorSchemeError{Value: c.UI.ColorScheme}
	}
	if c.Validation.MaxProbeDepth < 1 || c.Validation.MaxProbeDepth > 64 {
		return fmt.Errorf("%w: %d (valid: 1..64)", ErrInvalidProbeDepth, c.Validation.MaxProbeDepth)
	}
	return nil
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Sources: []string{},
		Validation: ValidationConfig{
			MaxProbeDepth: 4,
			Trail:         false,
		},
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
			Verbose:     false,
		},
	}
}

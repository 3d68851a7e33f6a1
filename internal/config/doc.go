// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/phi/config.cue (or XDG equivalent on Linux,
// ~/Library/Application Support/phi/config.cue on macOS, %APPDATA%\phi\config.cue
// on Windows). The package provides type-safe configuration access and covers source
// search paths, validation settings, and UI preferences.
//
// Configuration validation is performed against a CUE schema (config_schema.cue) to ensure
// type safety and provide clear error messages for invalid configurations.
package config

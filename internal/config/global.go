// SPDX-License-Identifier: MPL-2.0

package config

// configDirOverride redirects ConfigDir for tests, which cannot rely on
// os.UserHomeDir honoring a test-scoped HOME on every platform.
var configDirOverride string

// Reset clears the config directory override. Call from test cleanup so the
// next Load resolves the real platform directory again.
func Reset() {
	configDirOverride = ""
}

// SetConfigDirOverride points ConfigDir at a fixed directory. Intended for
// tests that need phi's config files under a t.TempDir.
func SetConfigDirOverride(dir string) {
	configDirOverride = dir
}

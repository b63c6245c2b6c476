// Package config handles configuration loading and defaults.
//
// Configuration is loaded from multiple sources in priority order:
// 1. Built-in defaults
// 2. User config file (~/.tudu/tudu.toml or OS-specific config directory)
// 3. Project config file (tudu.toml or .tudu.toml in the project root)
// 4. Environment variables (TUDU_*)
// 5. CLI flags
//
// Each level overrides the previous one, so CLI flags take precedence.
//
// User-level config locations:
// - ~/.tudu/tudu.toml (preferred)
// - Windows: %APPDATA%\tudu\tudu.toml
// - macOS: ~/Library/Application Support/tudu/tudu.toml
// - Linux/BSD: $XDG_CONFIG_HOME/tudu/tudu.toml or ~/.config/tudu/tudu.toml
//
// Project-level config locations (overrides user config):
// - ./tudu.toml (preferred)
// - ./.tudu.toml
package config

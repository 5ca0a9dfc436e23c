// Package config provides user configuration management for opsdeck.
//
// This package manages a YAML-based configuration file that stores known
// platform nodes, application preferences (discovery behavior, strategy
// presets), and the persisted seeds for free-text completion history. The
// configuration follows OS-specific conventions for storage location:
//
//   - Linux: $XDG_CONFIG_HOME/opsdeck/config.yaml
//   - macOS: $HOME/.config/opsdeck/config.yaml
//   - Windows: %LOCALAPPDATA%\opsdeck\config.yaml
//
// Saves are atomic (write to temp file, rename) so a crash never leaves a
// truncated config behind. The registry is loaded lazily and shared
// process-wide; completion history is read once at startup to seed the
// history engines and written back on clean exit.
package config

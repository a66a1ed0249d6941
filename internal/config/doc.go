// Package config loads, normalizes, and validates the TOML configuration
// shared by all scrub commands.
package config

// Package config loads, normalizes, and validates scriptsync configuration.
//
// Configuration lives in a TOML file, searched at ~/.config/scriptsync/config.toml
// and then ./scriptsync.toml. Loading always starts from Default so a missing
// file or missing keys fall back to working values. Paths are expanded and
// absolutized during normalization, and Validate rejects values the pipeline
// cannot run with.
package config

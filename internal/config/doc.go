// Package config loads converter settings from a TOML file and applies
// defaults for everything the file leaves out.
package config

// Package config handles configuration management for photosnap.
// It layers embedded defaults, the user configuration file, PHOTOSNAP_*
// environment variables and command-line flags.
package config

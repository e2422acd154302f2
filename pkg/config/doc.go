// Package config handles configuration management for treesmith.
// It supports loading configuration from multiple sources including
// TOML files and environment variables.
package config

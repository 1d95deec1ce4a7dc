// Package config handles configuration loading and management for hitassert.
//
// It provides functionality for:
//   - Loading configuration from .hitassert.yaml or .hitassert.json files
//   - Default configuration values
//   - Merging file configuration with command line overrides
package config

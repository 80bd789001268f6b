// Package config defines the application configuration structure and
// loading logic. Configuration is sourced from environment variables
// (DOODLE_ prefix) with an optional YAML file as a secondary source,
// and validated before use.
package config

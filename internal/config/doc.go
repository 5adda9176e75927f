// Package config loads the server configuration from defaults, an optional
// config.yaml in the working directory, and TASKS_ prefixed environment
// variables, then validates the result.
package config

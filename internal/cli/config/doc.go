// Package config loads diorite-cli settings from ~/.diorite/cli.yaml and
// DIORITE_CLI_* environment variables.
package config

// Package config defines the diorite-server configuration.
//
//   - spec.go: the ServerConfig structure and its koanf keys
//   - default.go: default values
//   - verify.go: validation run after loading
//   - summary.go: flattened key/value view for the startup log
//
// Values are loaded by internal/infra/confloader onto Default().
package config

// Package confloader loads layered configuration with koanf.
//
// Sources, lowest priority first:
//
//  1. Values already set on the target struct (usually Default())
//  2. A YAML file
//  3. Environment variables with the DIORITE_ prefix
//  4. Explicit overrides, typically parsed command-line flags
//
// Environment names map to keys by lower-casing, turning "_" into "." and
// "__" into a literal underscore: DIORITE_REGISTRY_SNAPSHOT__DIR sets
// registry.snapshot_dir.
//
// Watcher reports writes to the configuration file so long-running
// processes can reload the parts that are safe to change live.
package confloader

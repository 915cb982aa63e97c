package config

// CLIConfig is the configuration for diorite-cli. Command-line flags
// override every field.
type CLIConfig struct {
	// Server is a diorite-server address. Empty means lookups run against
	// the compiled-in registry.
	Server string `koanf:"server"`
	// CAFile is a PEM file or directory trusted in addition to the system
	// roots for https servers.
	CAFile string `koanf:"ca_file"`
	// Output is table, json or yaml.
	Output string `koanf:"output"`
	Wide   bool   `koanf:"wide"`
	// DataDir is the Badger directory used by the snapshot commands.
	DataDir string `koanf:"data_dir"`
	// LogLevel applies to diagnostics written to stderr.
	LogLevel string `koanf:"log_level"`
}

// Default returns the default CLI configuration.
func Default() *CLIConfig {
	return &CLIConfig{
		Output:   "table",
		DataDir:  DefaultDataDir(),
		LogLevel: "warn",
	}
}

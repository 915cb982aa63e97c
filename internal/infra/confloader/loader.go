package confloader

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// DefaultEnvPrefix is the environment variable prefix.
const DefaultEnvPrefix = "DIORITE_"

const delim = "."

// Loader loads configuration from its sources. Every Load starts from a
// clean state, so calling it again is a full reload.
type Loader struct {
	envPrefix string
	path      string
	overrides map[string]any

	mu sync.RWMutex
	k  *koanf.Koanf
}

// Option configures a Loader.
type Option func(*Loader)

// WithEnvPrefix replaces DefaultEnvPrefix. An empty prefix disables the
// environment source.
func WithEnvPrefix(prefix string) Option {
	return func(l *Loader) { l.envPrefix = prefix }
}

// WithFile sets the YAML file. The file must exist when set.
func WithFile(path string) Option {
	return func(l *Loader) { l.path = path }
}

// WithOverrides sets dotted keys that win over every other source.
func WithOverrides(values map[string]any) Option {
	return func(l *Loader) { l.overrides = values }
}

// NewLoader creates a Loader.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{envPrefix: DefaultEnvPrefix, k: koanf.New(delim)}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// File returns the configured file path.
func (l *Loader) File() string { return l.path }

// Load reads all sources and unmarshals them onto target using koanf
// struct tags. Fields with no key in any source keep their value.
func (l *Loader) Load(target any) error {
	k := koanf.New(delim)

	if l.path != "" {
		if _, err := os.Stat(l.path); err != nil {
			return fmt.Errorf("config file: %w", err)
		}
		if err := k.Load(file.Provider(l.path), yaml.Parser()); err != nil {
			return fmt.Errorf("load %s: %w", l.path, err)
		}
	}
	if l.envPrefix != "" {
		if err := k.Load(env.Provider(l.envPrefix, delim, l.envKey), nil); err != nil {
			return fmt.Errorf("load env: %w", err)
		}
	}
	if len(l.overrides) > 0 {
		if err := k.Load(mapProvider(l.overrides), nil); err != nil {
			return fmt.Errorf("load overrides: %w", err)
		}
	}
	if err := k.Unmarshal("", target); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}

	l.mu.Lock()
	l.k = k
	l.mu.Unlock()
	return nil
}

// envKey maps DIORITE_SERVER_HTTP_ADDR to server.http.addr.
func (l *Loader) envKey(name string) string {
	name = strings.ToLower(strings.TrimPrefix(name, l.envPrefix))
	parts := strings.Split(name, "__")
	for i, p := range parts {
		parts[i] = strings.ReplaceAll(p, "_", delim)
	}
	return strings.Join(parts, "_")
}

// String returns the value of key from the last Load.
func (l *Loader) String(key string) string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.k.String(key)
}

// Exists reports whether any source set key in the last Load.
func (l *Loader) Exists(key string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.k.Exists(key)
}

// Keys returns every key set by the last Load.
func (l *Loader) Keys() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.k.Keys()
}

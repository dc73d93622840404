// Package config loads the optional project settings file. A project may
// carry .javatools.yaml, .javatools.yml or .javatools.toml next to its
// build file; command-line flags override whatever it sets.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"javatools/internal/resolve"
	"javatools/internal/sortutil"
)

// FileNames are probed in order inside the project directory.
var FileNames = []string{".javatools.yaml", ".javatools.yml", ".javatools.toml"}

// Config holds the tool settings.
type Config struct {
	Classpath     []string `yaml:"classpath" toml:"classpath"`
	JavaHome      string   `yaml:"java_home" toml:"java_home"`
	Namespaces    []string `yaml:"namespaces" toml:"namespaces"`
	BaseNamespace string   `yaml:"base_namespace" toml:"base_namespace"`

	// Path is the file the settings came from, empty for defaults.
	Path string `yaml:"-" toml:"-"`
}

// Overrides are the flag values applied on top of a loaded file. Empty
// values leave the file setting alone.
type Overrides struct {
	Classpath []string
	JavaHome  string
}

// Default returns the settings used when no file exists.
func Default() *Config {
	return &Config{
		Namespaces:    append([]string(nil), resolve.DefaultNamespaces...),
		BaseNamespace: resolve.BaseNamespace,
	}
}

// Load reads the settings file at path. The format follows the extension.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config %v", path)
	}
	cfg := &Config{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrapf(err, "failed to parse config %v", path)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrapf(err, "failed to parse config %v", path)
		}
	default:
		return nil, errors.Errorf("unsupported config format: %v", path)
	}
	cfg.Path = path
	cfg.fill()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Find loads the first settings file present in dir. Defaults are returned
// when there is none.
func Find(dir string) (*Config, error) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}
	return Default(), nil
}

// Resolve picks the explicit file when given, otherwise searches dir.
func Resolve(explicit, dir string) (*Config, error) {
	if explicit != "" {
		return Load(explicit)
	}
	return Find(dir)
}

// fill applies defaults for unset keys and drops repeated entries.
func (c *Config) fill() {
	if len(c.Namespaces) == 0 {
		c.Namespaces = append([]string(nil), resolve.DefaultNamespaces...)
	}
	if c.BaseNamespace == "" {
		c.BaseNamespace = resolve.BaseNamespace
	}
	c.Namespaces = sortutil.Dedup(trimAll(c.Namespaces))
	c.Classpath = sortutil.Dedup(trimAll(c.Classpath))
}

// Validate rejects namespace entries that are not package names.
func (c *Config) Validate() error {
	for _, ns := range append([]string{c.BaseNamespace}, c.Namespaces...) {
		if strings.HasPrefix(ns, ".") || strings.HasSuffix(ns, ".") || strings.ContainsAny(ns, "/ $") {
			return errors.Errorf("invalid namespace %q in %v", ns, c.Path)
		}
	}
	return nil
}

// Apply merges flag values over the file settings. Flag classpath entries
// come first so they win lookups.
func (c *Config) Apply(o Overrides) {
	if len(o.Classpath) > 0 {
		c.Classpath = sortutil.Dedup(append(trimAll(o.Classpath), c.Classpath...))
	}
	if o.JavaHome != "" {
		c.JavaHome = o.JavaHome
	}
}

// ResolverNamespaces returns the namespace table for the resolver.
func (c *Config) ResolverNamespaces() resolve.Namespaces {
	return resolve.Namespaces(c.Namespaces)
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

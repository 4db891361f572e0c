package briar

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds interpreter-wide limits and toggles. Use DefaultConfig, not
// the zero value, to get the intended defaults (a bare Config{} has both
// builtin toggles false). Loading a config file never changes the
// interpreter's observable behavior for its core testable properties — it
// only bounds pathological programs (runaway recursion) and can disable
// the two optional builtins.
type Config struct {
	MaxCallDepth int `yaml:"max_call_depth"`
	EnableError bool `yaml:"enable_error"`
	EnablePrintf bool `yaml:"enable_printf"`
}

// DefaultConfig returns the spec-faithful defaults.
func DefaultConfig() Config {
	return Config{
		MaxCallDepth: 0, // 0 means unlimited
		EnableError: true,
		EnablePrintf: true,
	}
}

// LoadConfig reads a YAML config file, grounded in
// davidkellis-able's pkg/driver manifest/lockfile loaders which open a file
// and hand it to yaml.NewDecoder rather than reading the bytes up front.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		return cfg, err
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

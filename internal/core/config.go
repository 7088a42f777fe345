package core

import (
	"os"

	"gopkg.in/yaml.v3"
)

// NamespaceConfig holds the per-namespace defaults applied to commands that
// don't override them explicitly (spec.md §6 "Config surface",
// GLOSSARY "Namespace"). It is the unit (de)serialized to/from YAML via
// gopkg.in/yaml.v3 for the CLI-facing namespace config files.
type NamespaceConfig struct {
	Name string `yaml:"name"`

	Separators     []string `yaml:"separators,omitempty"`
	FuzzyMatch     bool     `yaml:"fuzzy_match"`
	FuzzyThreshold int      `yaml:"fuzzy_threshold"`
	RaiseException bool     `yaml:"raise_exception"`
	KeepCRLF       bool     `yaml:"keep_crlf"`

	// CacheSize bounds the per-command parse cache the CommandManager keeps
	// for commands registered under this namespace; 0 disables caching.
	CacheSize int `yaml:"cache_size"`

	// CompletionRingSize bounds the per-command ring of recent partial
	// completion inputs the CommandManager retains; 0 disables it.
	CompletionRingSize int `yaml:"completion_ring_size"`
}

// DefaultNamespaceConfig returns the config applied to the "" (global)
// namespace when no explicit config was registered for it.
func DefaultNamespaceConfig() NamespaceConfig {
	return NamespaceConfig{
		Name:               "",
		Separators:         []string{" "},
		FuzzyMatch:         true,
		FuzzyThreshold:     2,
		RaiseException:     false,
		CacheSize:          128,
		CompletionRingSize: 20,
	}
}

// ApplyTo fills any unset Meta fields on c from this namespace's defaults.
// It never overwrites a field the command author explicitly set to a
// non-zero value.
func (n NamespaceConfig) ApplyTo(c *Command) {
	if c.Meta.FuzzyThreshold == 0 {
		c.Meta.FuzzyThreshold = n.FuzzyThreshold
	}
	if !c.Meta.FuzzyMatch {
		c.Meta.FuzzyMatch = n.FuzzyMatch
	}
	if !c.Meta.KeepCRLF {
		c.Meta.KeepCRLF = n.KeepCRLF
	}
}

// LoadNamespaceConfigs reads a YAML document holding a list of namespace
// configs from path (spec.md §6 "Config surface": namespace defaults are
// authored once and shared by every command registered under them).
func LoadNamespaceConfigs(path string) ([]NamespaceConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var configs []NamespaceConfig
	if err := yaml.Unmarshal(data, &configs); err != nil {
		return nil, err
	}
	return configs, nil
}

// SaveNamespaceConfigs writes configs to path as a YAML document.
func SaveNamespaceConfigs(path string, configs []NamespaceConfig) error {
	data, err := yaml.Marshal(configs)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

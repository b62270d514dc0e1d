// Package config loads the run configuration: hit weights, default
// colocalization distance, model/index/topology paths, the registry
// remote endpoint, and logging verbosity.
package config

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/mr-c/macsyfinder/score"
)

// Config is the top-level run configuration, YAML-backed.
type Config struct {
	DefaultInterGeneMaxSpace int            `yaml:"default_inter_gene_max_space"`
	Weights                  WeightConfig   `yaml:"hit_weights"`
	Paths                    PathConfig     `yaml:"paths"`
	Registry                 RegistryConfig `yaml:"registry"`
	LogLevel                 string         `yaml:"log_level"`
}

// WeightConfig mirrors score.Weights for YAML decoding.
type WeightConfig struct {
	Mandatory        float64 `yaml:"mandatory"`
	Accessory        float64 `yaml:"accessory"`
	Neutral          float64 `yaml:"neutral"`
	Exchangeable     float64 `yaml:"exchangeable"`
	Itself           float64 `yaml:"itself"`
	LonerMultiSystem float64 `yaml:"loner_multi_system"`
}

// ToScoreWeights converts the YAML-decoded weights to score.Weights.
func (w WeightConfig) ToScoreWeights() score.Weights {
	return score.Weights{
		Mandatory:        w.Mandatory,
		Accessory:        w.Accessory,
		Neutral:          w.Neutral,
		Exchangeable:     w.Exchangeable,
		Itself:           w.Itself,
		LonerMultiSystem: w.LonerMultiSystem,
	}
}

// PathConfig is the set of filesystem locations a run needs.
type PathConfig struct {
	ModelsDir    string `yaml:"models_dir"`
	IndexFile    string `yaml:"index_file"`
	TopologyFile string `yaml:"topology_file"`
	OutDir       string `yaml:"out_dir"`
}

// RegistryConfig configures the remote model-package registry.
type RegistryConfig struct {
	RemoteEndpoint string `yaml:"remote_endpoint"`
	Bucket         string `yaml:"bucket"`
	CatalogPath    string `yaml:"catalog_path"`
	TrustedKeyPath string `yaml:"trusted_key_path"`
}

// Default returns the built-in configuration used when no config file is
// present, matching the weight values macromolecular-system detection has
// historically shipped with.
func Default() *Config {
	home, _ := os.UserHomeDir()
	base := filepath.Join(home, ".msfind")
	return &Config{
		DefaultInterGeneMaxSpace: 5,
		Weights: WeightConfig{
			Mandatory:        1.0,
			Accessory:        0.5,
			Neutral:          0.0,
			Exchangeable:     0.8,
			Itself:           1.0,
			LonerMultiSystem: 1.3,
		},
		Paths: PathConfig{
			ModelsDir: filepath.Join(base, "models"),
			OutDir:    ".",
		},
		Registry: RegistryConfig{
			CatalogPath: filepath.Join(base, "catalog.sqlite"),
		},
		LogLevel: "info",
	}
}

// Load reads a YAML config file, overlaying it onto Default. A missing
// file is not an error: Default is returned unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "read config file")
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "parse config file")
	}
	return cfg, nil
}

// DefaultPath returns ~/.msfind/config.yaml, the conventional config
// location, honoring MSFIND_CONFIG when set.
func DefaultPath() string {
	if p := os.Getenv("MSFIND_CONFIG"); p != "" {
		return p
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".msfind", "config.yaml")
}

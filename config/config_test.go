package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
)

func TestDefaultHasSaneWeights(t *testing.T) {
	cfg := Default()
	expect.EQ(t, cfg.DefaultInterGeneMaxSpace, 5)
	expect.EQ(t, cfg.Weights.Mandatory, 1.0)
	expect.EQ(t, cfg.Weights.Neutral, 0.0)
	expect.EQ(t, cfg.LogLevel, "info")
}

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.NoError(t, err)
	expect.EQ(t, cfg.Weights.Mandatory, Default().Weights.Mandatory)
}

func TestLoadOverlaysFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
default_inter_gene_max_space: 10
hit_weights:
  mandatory: 2.0
  exchangeable: 0.6
paths:
  models_dir: /data/models
log_level: debug
`
	assert.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := Load(path)
	assert.NoError(t, err)
	expect.EQ(t, cfg.DefaultInterGeneMaxSpace, 10)
	expect.EQ(t, cfg.Weights.Mandatory, 2.0)
	expect.EQ(t, cfg.Weights.Exchangeable, 0.6)
	expect.EQ(t, cfg.Paths.ModelsDir, "/data/models")
	expect.EQ(t, cfg.LogLevel, "debug")
	// Fields absent from the file keep their Default() values.
	expect.EQ(t, cfg.Weights.LonerMultiSystem, Default().Weights.LonerMultiSystem)
}

func TestToScoreWeights(t *testing.T) {
	cfg := Default()
	w := cfg.Weights.ToScoreWeights()
	expect.EQ(t, w.Mandatory, cfg.Weights.Mandatory)
	expect.EQ(t, w.LonerMultiSystem, cfg.Weights.LonerMultiSystem)
}

func TestDefaultPathHonorsEnvOverride(t *testing.T) {
	t.Setenv("MSFIND_CONFIG", "/custom/path.yaml")
	expect.EQ(t, DefaultPath(), "/custom/path.yaml")
}

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
)

const t2ssModelXML = `<model name="T2SS" inter_gene_max_space="10" min_mandatory_genes_required="1" min_genes_required="2">
  <gene name="gspD" presence="mandatory"/>
  <gene name="sctJ" presence="accessory"/>
</model>
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadModels(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "t2ss.xml", t2ssModelXML)
	writeFile(t, dir, "notes.txt", "ignored, not an xml file")

	models, err := loadModels(dir)
	assert.NoError(t, err)
	assert.EQ(t, len(models), 1)
	expect.EQ(t, models[0].FQN, "T2SS")
	expect.EQ(t, models[0].MinGenesRequired(), 2)
}

func TestLoadReplicons(t *testing.T) {
	dir := t.TempDir()
	indexPath := writeFile(t, dir, "replicon.fasta.idx", "/data/replicon.fasta\nR;1000;1\n")
	topoPath := writeFile(t, dir, "topology.txt", "R : linear\n")

	replicons, err := loadReplicons(indexPath, topoPath)
	assert.NoError(t, err)
	assert.EQ(t, len(replicons), 1)
	expect.EQ(t, replicons[0].Name, "R")
	expect.EQ(t, replicons[0].Min, 1)
	expect.EQ(t, replicons[0].Max, 1)
}

func TestLoadHits(t *testing.T) {
	dir := t.TempDir()
	hitsPath := writeFile(t, dir, "hits.tsv", "h1\tgspD\tR\t10\t300\t10.0\t1e-5\t0.9\t0.8\t1\t300\n")

	hits, err := loadHits(hitsPath)
	assert.NoError(t, err)
	assert.EQ(t, len(hits), 1)
	expect.EQ(t, hits[0].GeneName, "gspD")
	expect.EQ(t, hits[0].RepliconName, "R")
}

package cluster

import (
	"testing"

	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
	"github.com/mr-c/macsyfinder/hit"
	"github.com/mr-c/macsyfinder/model"
)

func TestPromoteMultiSystem(t *testing.T) {
	m := testModel(2)
	multi := model.NewGene("sharedGene")
	multi.MultiSystem = true
	m.AddAccessory(multi)

	h1 := geneHit("rep1", 0, 5, multi, hit.StatusAccessory)
	h2 := geneHit("rep2", 0, 9, multi, hit.StatusAccessory)
	c1, err := New(1, m, []*hit.ModelHit{h1})
	assert.NoError(t, err)
	c2, err := New(2, m, []*hit.ModelHit{h2})
	assert.NoError(t, err)

	id := 2
	promoted, err := Promote([]*Cluster{c1, c2}, &id)
	assert.NoError(t, err)
	assert.EQ(t, len(promoted.Clusters), 2)
	expect.True(t, promoted.Clusters[0].Hits[0].IsMultiSystem())
	expect.EQ(t, len(promoted.Clusters[0].Hits[0].Counterparts), 1)

	rep, ok := promoted.MultiSystemReps["sharedGene"]
	assert.True(t, ok)
	expect.EQ(t, rep.Hits[0].Core.Score, 9.0)
}

func TestPromoteTrueLoner(t *testing.T) {
	m := testModel(1)
	loner := model.NewGene("lonerGene")
	loner.Loner = true
	m.AddAccessory(loner)

	h1 := geneHit("rep1", 0, 5, loner, hit.StatusAccessory)
	h2 := geneHit("rep2", 0, 12, loner, hit.StatusAccessory)
	pair := geneHit("rep1", 5, 10, m.MandatoryGenes()[0], hit.StatusMandatory)
	pair2 := geneHit("rep1", 6, 10, m.MandatoryGenes()[1], hit.StatusMandatory)

	c1, err := New(1, m, []*hit.ModelHit{h1})
	assert.NoError(t, err)
	c2, err := New(2, m, []*hit.ModelHit{h2})
	assert.NoError(t, err)
	c3, err := New(3, m, []*hit.ModelHit{pair, pair2})
	assert.NoError(t, err)

	id := 3
	promoted, err := Promote([]*Cluster{c1, c2, c3}, &id)
	assert.NoError(t, err)
	// Both true-loner singletons are removed; the non-loner pair survives.
	assert.EQ(t, len(promoted.Clusters), 1)
	expect.EQ(t, len(promoted.Clusters[0].Hits), 2)

	rep, ok := promoted.LonerReps["lonerGene"]
	assert.True(t, ok)
	expect.EQ(t, rep.Hits[0].Core.Score, 12.0)
	expect.True(t, rep.Hits[0].IsLoner())
	expect.EQ(t, len(rep.Hits[0].Counterparts), 1)
}

func TestPromotePreservesQuorumSingleton(t *testing.T) {
	m := model.New("test/SingleGeneModel", 1)
	m.AddMandatory(model.NewGene("onlyGene"))
	m.SetMinGenesRequired(1)

	h1 := geneHit("rep1", 0, 5, m.MandatoryGenes()[0], hit.StatusMandatory)
	c1, err := New(1, m, []*hit.ModelHit{h1})
	assert.NoError(t, err)

	id := 1
	promoted, err := Promote([]*Cluster{c1}, &id)
	assert.NoError(t, err)
	assert.EQ(t, len(promoted.Clusters), 1)
	expect.EQ(t, len(promoted.Clusters[0].Hits), 1)
}

package cluster

import (
	"testing"

	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
	"github.com/mr-c/macsyfinder/hit"
	"github.com/mr-c/macsyfinder/model"
	"github.com/mr-c/macsyfinder/replicon"
)

func geneHit(repliconName string, pos int, score float64, g *model.Gene, status hit.Status) *hit.ModelHit {
	return hit.New(&hit.CoreHit{RepliconName: repliconName, Position: pos, Score: score}, g, status)
}

func testModel(interGeneMaxSpace int) *model.Model {
	m := model.New("test/Model", interGeneMaxSpace)
	m.AddMandatory(model.NewGene("geneA"))
	m.AddMandatory(model.NewGene("geneB"))
	m.AddMandatory(model.NewGene("geneC"))
	return m
}

func TestClusterizeSimpleRun(t *testing.T) {
	m := testModel(2)
	hits := []*hit.ModelHit{
		geneHit("rep1", 0, 10, m.MandatoryGenes()[0], hit.StatusMandatory),
		geneHit("rep1", 1, 10, m.MandatoryGenes()[1], hit.StatusMandatory),
		geneHit("rep1", 2, 10, m.MandatoryGenes()[2], hit.StatusMandatory),
	}
	rep := &replicon.Replicon{Name: "rep1", Topology: replicon.Linear, Min: 0, Max: 2}

	clusters, err := Clusterize(hits, m, rep)
	assert.NoError(t, err)
	assert.EQ(t, len(clusters), 1)
	expect.EQ(t, len(clusters[0].Hits), 3)
}

func TestClusterizeBreaksOnGap(t *testing.T) {
	m := testModel(1)
	hits := []*hit.ModelHit{
		geneHit("rep1", 0, 10, m.MandatoryGenes()[0], hit.StatusMandatory),
		geneHit("rep1", 1, 10, m.MandatoryGenes()[1], hit.StatusMandatory),
		geneHit("rep1", 10, 10, m.MandatoryGenes()[2], hit.StatusMandatory),
	}
	rep := &replicon.Replicon{Name: "rep1", Topology: replicon.Linear, Min: 0, Max: 10}

	clusters, err := Clusterize(hits, m, rep)
	assert.NoError(t, err)
	assert.EQ(t, len(clusters), 1)
	expect.EQ(t, len(clusters[0].Hits), 2)
}

func TestClusterizeDropsNonQualifyingSingleton(t *testing.T) {
	m := testModel(1)
	hits := []*hit.ModelHit{
		geneHit("rep1", 0, 10, m.MandatoryGenes()[0], hit.StatusMandatory),
		geneHit("rep1", 1, 10, m.MandatoryGenes()[1], hit.StatusMandatory),
		geneHit("rep1", 10, 10, m.MandatoryGenes()[2], hit.StatusMandatory),
		geneHit("rep1", 20, 10, m.MandatoryGenes()[0], hit.StatusMandatory),
	}
	rep := &replicon.Replicon{Name: "rep1", Topology: replicon.Linear, Min: 0, Max: 20}

	clusters, err := Clusterize(hits, m, rep)
	assert.NoError(t, err)
	// The hits at positions 10 and 20 each end up alone (gaps 8 and 9 > max
	// space 1) and neither qualifies (min-genes-required is 3, gene not a
	// loner): both are discarded, leaving only the opening pair.
	assert.EQ(t, len(clusters), 1)
	expect.EQ(t, len(clusters[0].Hits), 2)
}

func TestClusterizeKeepsLonerSingleton(t *testing.T) {
	m := testModel(1)
	loner := model.NewGene("lonerGene")
	loner.Loner = true
	m.AddAccessory(loner)
	hits := []*hit.ModelHit{
		geneHit("rep1", 0, 10, m.MandatoryGenes()[0], hit.StatusMandatory),
		geneHit("rep1", 1, 10, m.MandatoryGenes()[1], hit.StatusMandatory),
		geneHit("rep1", 50, 10, loner, hit.StatusAccessory),
	}
	rep := &replicon.Replicon{Name: "rep1", Topology: replicon.Linear, Min: 0, Max: 50}

	clusters, err := Clusterize(hits, m, rep)
	assert.NoError(t, err)
	assert.EQ(t, len(clusters), 2)
	expect.EQ(t, len(clusters[1].Hits), 1)
	expect.True(t, clusters[1].Hits[0].GeneRef.Loner)
}

func TestClusterizeCircularStitch(t *testing.T) {
	m := testModel(1)
	hits := []*hit.ModelHit{
		geneHit("rep1", 0, 10, m.MandatoryGenes()[0], hit.StatusMandatory),
		geneHit("rep1", 1, 10, m.MandatoryGenes()[1], hit.StatusMandatory),
		geneHit("rep1", 8, 10, m.MandatoryGenes()[2], hit.StatusMandatory),
		geneHit("rep1", 9, 10, m.MandatoryGenes()[0], hit.StatusMandatory),
	}
	rep := &replicon.Replicon{Name: "rep1", Topology: replicon.Circular, Min: 0, Max: 9}

	clusters, err := Clusterize(hits, m, rep)
	assert.NoError(t, err)
	assert.EQ(t, len(clusters), 1)
	expect.EQ(t, len(clusters[0].Hits), 4)
}

func TestClusterizeDedupesSamePosition(t *testing.T) {
	m := testModel(1)
	hits := []*hit.ModelHit{
		geneHit("rep1", 0, 5, m.MandatoryGenes()[0], hit.StatusMandatory),
		geneHit("rep1", 0, 20, m.MandatoryGenes()[0], hit.StatusMandatory),
		geneHit("rep1", 1, 10, m.MandatoryGenes()[1], hit.StatusMandatory),
	}
	rep := &replicon.Replicon{Name: "rep1", Topology: replicon.Linear, Min: 0, Max: 1}

	clusters, err := Clusterize(hits, m, rep)
	assert.NoError(t, err)
	assert.EQ(t, len(clusters), 1)
	expect.EQ(t, len(clusters[0].Hits), 2)
	expect.EQ(t, clusters[0].Hits[0].Core.Score, 20.0)
}

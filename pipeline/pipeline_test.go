package pipeline

import (
	"testing"

	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"

	"github.com/mr-c/macsyfinder/hit"
	"github.com/mr-c/macsyfinder/model"
	"github.com/mr-c/macsyfinder/replicon"
	"github.com/mr-c/macsyfinder/score"
)

func t2ssModel() *model.Model {
	m := model.New("T2SS/sub/T2SS", 10)
	m.SetMinMandatoryGenesRequired(1)
	m.SetMinGenesRequired(2)
	m.AddMandatory(model.NewGene("gspD"))
	m.AddAccessory(model.NewGene("sctJ"))
	return m
}

func linearReplicon(name string) *replicon.Replicon {
	return &replicon.Replicon{Name: name, Topology: replicon.Linear, Min: 1, Max: 1000}
}

func coreHit(id, gene, rep string, pos int, score float64) *hit.CoreHit {
	return &hit.CoreHit{ID: id, GeneName: gene, RepliconName: rep, Position: pos, Score: score}
}

func testWeights() score.Weights {
	return score.Weights{Mandatory: 1.0, Accessory: 0.5, Neutral: 0.0, Exchangeable: 0.8, Itself: 1.0, LonerMultiSystem: 1.3}
}

func TestRunMinimalT2SSSingleLocus(t *testing.T) {
	m := t2ssModel()
	rep := linearReplicon("R")
	hits := []*hit.CoreHit{
		coreHit("h1", "gspD", "R", 10, 10.0),
		coreHit("h2", "sctJ", "R", 15, 20.0),
	}

	result, err := Run([]*model.Model{m}, []*replicon.Replicon{rep}, hits, testWeights())
	assert.NoError(t, err)
	assert.EQ(t, len(result.Systems), 1)
	assert.EQ(t, len(result.Rejected), 0)

	sys := result.Systems[0]
	expect.EQ(t, sys.Loci(), 1)
	wholeness := sys.Wholeness()
	expect.EQ(t, wholeness, 1.0)
	sc, _ := sys.CachedScore()
	expect.EQ(t, sc, 1.5) // weight.mandatory(1.0) + weight.accessory(0.5), itself multiplier 1
	expect.EQ(t, sys.ID, "R_T2SS_1")
}

func TestRunGapTooLargeProducesNoSystem(t *testing.T) {
	m := t2ssModel()
	rep := linearReplicon("R")
	hits := []*hit.CoreHit{
		coreHit("h1", "gspD", "R", 10, 10.0),
		coreHit("h2", "sctJ", "R", 100, 20.0),
	}

	result, err := Run([]*model.Model{m}, []*replicon.Replicon{rep}, hits, testWeights())
	assert.NoError(t, err)
	expect.EQ(t, len(result.Systems), 0)
	expect.EQ(t, len(result.Rejected), 0)
}

func TestRunDuplicatePositionKeepsBestScore(t *testing.T) {
	m := t2ssModel()
	rep := linearReplicon("R")
	hits := []*hit.CoreHit{
		coreHit("h1", "gspD", "R", 10, 5.0),
		coreHit("h2", "gspD", "R", 10, 9.0),
		coreHit("h3", "sctJ", "R", 12, 4.0),
	}

	result, err := Run([]*model.Model{m}, []*replicon.Replicon{rep}, hits, testWeights())
	assert.NoError(t, err)
	assert.EQ(t, len(result.Systems), 1)
	clusters := result.Systems[0].Clusters
	assert.EQ(t, len(clusters), 1)
	assert.EQ(t, len(clusters[0].Hits), 2)
	for _, h := range clusters[0].Hits {
		if h.FunctionalKey() == "gspD" {
			expect.EQ(t, h.Core.ID, "h2")
		}
	}
}

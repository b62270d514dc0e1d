package serialize

import (
	"strings"
	"testing"

	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
	"github.com/mr-c/macsyfinder/cluster"
	"github.com/mr-c/macsyfinder/hit"
	"github.com/mr-c/macsyfinder/model"
	"github.com/mr-c/macsyfinder/system"
)

func buildTestSystem(t *testing.T) *system.System {
	m := model.New("TestFam/sub/TestModel", 5)
	geneA := model.NewGene("geneA")
	geneB := model.NewGene("geneB")
	m.AddMandatory(geneA)
	m.AddMandatory(geneB)

	h1 := hit.New(&hit.CoreHit{GeneName: "geneA_hmm", RepliconName: "chr1", Position: 10}, geneA, hit.StatusMandatory)
	h2 := hit.New(&hit.CoreHit{GeneName: "geneB_hmm", RepliconName: "chr1", Position: 11}, geneB, hit.StatusMandatory)
	c, err := cluster.New(1, m, []*hit.ModelHit{h1, h2})
	assert.NoError(t, err)

	sys := &system.System{ID: "chr1_TestModel_1", Model: m, Clusters: []*cluster.Cluster{c}}
	sys.SetScore(2.0, 1.0, 1)
	return sys
}

func TestBuildJSONView(t *testing.T) {
	sys := buildTestSystem(t)
	view := BuildJSONView(sys)

	expect.EQ(t, view.ID, "chr1_TestModel_1")
	expect.EQ(t, view.Model, "TestFam/sub/TestModel")
	expect.EQ(t, view.LociNb, 1)
	expect.EQ(t, view.RepliconName, "chr1")
	assert.EQ(t, len(view.Clusters), 1)
	expect.EQ(t, view.Clusters[0][0], "geneA_hmm")
	expect.EQ(t, view.Clusters[0][1], "geneB_hmm")

	mandatory := view.GeneComposition["mandatory"]
	assert.EQ(t, len(mandatory["geneA"]), 1)
	expect.EQ(t, mandatory["geneA"][0], "geneA_hmm")
}

func TestBuildTextView(t *testing.T) {
	sys := buildTestSystem(t)
	text := BuildTextView(sys, system.NewHitSystemTracker([]*system.System{sys}))

	expect.True(t, strings.Contains(text, "system id = chr1_TestModel_1"))
	expect.True(t, strings.Contains(text, "model = TestFam/sub/TestModel"))
	expect.True(t, strings.Contains(text, "score = 2.000"))
	expect.True(t, strings.Contains(text, "loci nb = 1"))
	expect.True(t, strings.Contains(text, "geneA_hmm"))
}

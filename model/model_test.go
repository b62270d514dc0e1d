package model_test

import (
	"strings"
	"testing"

	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"

	"github.com/mr-c/macsyfinder/model"
)

func TestNewSplitsNameFromFQN(t *testing.T) {
	m := model.New("CRISPR-Cas/sub-typing/CAS-TypeIE", 5)
	expect.EQ(t, m.FQN, "CRISPR-Cas/sub-typing/CAS-TypeIE")
	expect.EQ(t, m.Name, "CAS-TypeIE")
}

func TestQuorumDefaultsToMandatoryCount(t *testing.T) {
	m := model.New("T2SS", 5)
	m.AddMandatory(model.NewGene("gspD"))
	m.AddMandatory(model.NewGene("gspE"))
	expect.EQ(t, m.MinMandatoryGenesRequired(), 2)
	expect.EQ(t, m.MinGenesRequired(), 2)

	m.SetMinGenesRequired(3)
	expect.EQ(t, m.MinGenesRequired(), 3)
}

func TestValidateRejectsGenesRequiredBelowMandatoryRequired(t *testing.T) {
	m := model.New("T2SS", 5)
	m.AddMandatory(model.NewGene("gspD"))
	m.SetMinMandatoryGenesRequired(2)
	m.SetMinGenesRequired(1)
	assert.Error(t, m.Validate())
}

func TestValidateAcceptsWellFormedModel(t *testing.T) {
	m := model.New("T2SS", 5)
	m.AddMandatory(model.NewGene("gspD"))
	assert.NoError(t, m.Validate())
}

func TestGeneByNameResolvesAlternates(t *testing.T) {
	m := model.New("T2SS", 5)
	canonical := model.NewGene("gspD")
	canonical.WithAlternate(model.NewGene("gspD2"))
	m.AddMandatory(canonical)

	g, err := m.GeneByName("gspD2")
	assert.NoError(t, err)
	expect.EQ(t, g.Name, "gspD2")
	expect.True(t, g.IsExchangeable())
	expect.EQ(t, model.AlternateOf(g).Name, "gspD")
}

func TestGeneByNameUnknownSuggestsClosestName(t *testing.T) {
	m := model.New("T2SS", 5)
	m.AddMandatory(model.NewGene("gspD"))

	_, err := m.GeneByName("gspDD")
	assert.Error(t, err)
	expect.True(t, strings.Contains(err.Error(), "gspD"))
}

func TestPresenceOfReflectsGeneSet(t *testing.T) {
	m := model.New("T2SS", 5)
	mandatory := model.NewGene("gspD")
	accessory := model.NewGene("sctJ")
	m.AddMandatory(mandatory)
	m.AddAccessory(accessory)

	presence, ok := m.PresenceOf(mandatory)
	assert.True(t, ok)
	expect.EQ(t, presence, model.Mandatory)

	presence, ok = m.PresenceOf(accessory)
	assert.True(t, ok)
	expect.EQ(t, presence, model.Accessory)

	_, ok = m.PresenceOf(model.NewGene("unknown"))
	expect.False(t, ok)
}

func TestLessOrdersByFQN(t *testing.T) {
	a := model.New("A/sub", 5)
	b := model.New("B/sub", 5)
	expect.True(t, model.Less(a, b))
	expect.False(t, model.Less(b, a))
}

const t2ssXML = `<model name="T2SS" inter_gene_max_space="10" min_mandatory_genes_required="1" min_genes_required="2">
  <gene name="gspD" presence="mandatory">
    <exchangeables>
      <gene name="gspD2" presence="mandatory"/>
    </exchangeables>
  </gene>
  <gene name="sctJ" presence="accessory" loner="true"/>
</model>
`

func TestParseXMLBuildsModelFromDefinition(t *testing.T) {
	m, err := model.ParseXML(strings.NewReader(t2ssXML))
	assert.NoError(t, err)
	expect.EQ(t, m.FQN, "T2SS")
	expect.EQ(t, m.InterGeneMaxSpace, 10)
	expect.EQ(t, m.MinMandatoryGenesRequired(), 1)
	expect.EQ(t, m.MinGenesRequired(), 2)
	assert.EQ(t, len(m.MandatoryGenes()), 1)
	assert.EQ(t, len(m.AccessoryGenes()), 1)

	sctJ := m.AccessoryGenes()[0]
	expect.True(t, sctJ.Loner)

	alt, err := m.GeneByName("gspD2")
	assert.NoError(t, err)
	expect.EQ(t, model.AlternateOf(alt).Name, "gspD")
}

func TestParseXMLRejectsUnknownPresence(t *testing.T) {
	const badXML = `<model name="Bad" inter_gene_max_space="5">
  <gene name="x" presence="weird"/>
</model>
`
	_, err := model.ParseXML(strings.NewReader(badXML))
	assert.Error(t, err)
}

package hit_test

import (
	"testing"

	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"

	"github.com/mr-c/macsyfinder/hit"
	"github.com/mr-c/macsyfinder/model"
)

func TestFunctionalKeyResolvesThroughAlternate(t *testing.T) {
	canonical := model.NewGene("gspD")
	alt := model.NewGene("gspD2")
	canonical.WithAlternate(alt)

	h := hit.New(&hit.CoreHit{ID: "h1", GeneName: "gspD2"}, alt, hit.StatusMandatory)
	expect.EQ(t, h.FunctionalKey(), "gspD")
}

func TestPromoteCombinesKinds(t *testing.T) {
	g := model.NewGene("gspD")
	base := hit.New(&hit.CoreHit{ID: "h1"}, g, hit.StatusMandatory)
	expect.False(t, base.IsLoner())
	expect.False(t, base.IsMultiSystem())

	asLoner := base.Promote(hit.KindLoner, nil)
	expect.True(t, asLoner.IsLoner())
	expect.False(t, asLoner.IsMultiSystem())

	asBoth := asLoner.Promote(hit.KindMultiSystem, []*hit.ModelHit{base})
	expect.True(t, asBoth.IsLoner())
	expect.True(t, asBoth.IsMultiSystem())
	assert.EQ(t, len(asBoth.Counterparts), 1)

	// Promote returns a copy; the original is untouched.
	expect.False(t, base.IsLoner())
}

func TestPromoteMultiSystemTwiceStaysMultiSystem(t *testing.T) {
	g := model.NewGene("gspD")
	base := hit.New(&hit.CoreHit{ID: "h1"}, g, hit.StatusMandatory)
	once := base.Promote(hit.KindMultiSystem, nil)
	twice := once.Promote(hit.KindMultiSystem, nil)
	expect.True(t, twice.IsMultiSystem())
	expect.False(t, twice.IsLoner())
}

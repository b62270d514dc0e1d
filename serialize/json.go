// Package serialize renders a matched System as the JSON and text views
// of §6.
package serialize

import (
	"github.com/mr-c/macsyfinder/hit"
	"github.com/mr-c/macsyfinder/system"
)

// JSONView mirrors the System JSON view's exact field order and names.
type JSONView struct {
	ID              string                       `json:"id"`
	Model           string                       `json:"model"`
	LociNb          int                           `json:"loci_nb"`
	RepliconName    string                       `json:"replicon_name"`
	Clusters        [][]string                   `json:"clusters"`
	GeneComposition map[string]map[string][]string `json:"gene_composition"`
}

// BuildJSONView builds the JSON view of sys. loci_nb is the raw cluster
// count (distinct from System.Loci, which the text view uses instead).
func BuildJSONView(sys *system.System) *JSONView {
	clusters := make([][]string, len(sys.Clusters))
	for i, c := range sys.Clusters {
		names := make([]string, len(c.Hits))
		for j, h := range c.Hits {
			names[j] = h.Core.GeneName
		}
		clusters[i] = names
	}

	return &JSONView{
		ID:              sys.ID,
		Model:           sys.Model.FQN,
		LociNb:          len(sys.Clusters),
		RepliconName:    sys.RepliconName(),
		Clusters:        clusters,
		GeneComposition: geneComposition(sys),
	}
}

// geneComposition groups each role's canonical genes to the raw matched
// gene names of the hits that fulfill them.
func geneComposition(sys *system.System) map[string]map[string][]string {
	mandatory := map[string][]string{}
	accessory := map[string][]string{}
	neutral := map[string][]string{}
	for _, g := range sys.Model.MandatoryGenes() {
		mandatory[g.Name] = nil
	}
	for _, g := range sys.Model.AccessoryGenes() {
		accessory[g.Name] = nil
	}
	for _, g := range sys.Model.NeutralGenes() {
		neutral[g.Name] = nil
	}

	for _, h := range sys.Hits() {
		key := h.FunctionalKey()
		switch h.Status {
		case hit.StatusMandatory:
			mandatory[key] = append(mandatory[key], h.Core.GeneName)
		case hit.StatusAccessory:
			accessory[key] = append(accessory[key], h.Core.GeneName)
		case hit.StatusNeutral:
			neutral[key] = append(neutral[key], h.Core.GeneName)
		}
	}

	return map[string]map[string][]string{
		"mandatory": mandatory,
		"accessory": accessory,
		"neutral":   neutral,
	}
}

package serialize

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mr-c/macsyfinder/hit"
	"github.com/mr-c/macsyfinder/model"
	"github.com/mr-c/macsyfinder/system"
)

// BuildTextView renders sys as the multi-line text view of §6: system id,
// model, replicon, clusters as [(gene,pos), ...], occ, wholeness (3
// decimals), loci nb (excluding true-loner singletons, unlike the JSON
// view's raw loci_nb), score (3 decimals), then per role the genes with
// their occurrence counts and, per hit, the ids of any other-model
// systems that also claim it.
func BuildTextView(sys *system.System, tracker *system.HitSystemTracker) string {
	score, wholeness, occurrence := readScore(sys)

	var b strings.Builder
	fmt.Fprintf(&b, "system id = %s\n", sys.ID)
	fmt.Fprintf(&b, "model = %s\n", sys.Model.FQN)
	fmt.Fprintf(&b, "replicon = %s\n", sys.RepliconName())
	fmt.Fprintf(&b, "clusters = %s\n", clustersText(sys))
	fmt.Fprintf(&b, "occ = %d\n", occurrence)
	fmt.Fprintf(&b, "wholeness = %.3f\n", wholeness)
	fmt.Fprintf(&b, "loci nb = %d\n", sys.Loci())
	fmt.Fprintf(&b, "score = %.3f\n", score)

	for _, role := range []struct {
		title  string
		status hit.Status
	}{
		{"mandatory", hit.StatusMandatory},
		{"accessory", hit.StatusAccessory},
		{"neutral", hit.StatusNeutral},
	} {
		fmt.Fprintf(&b, "\n%s genes:\n", role.title)
		writeRole(&b, sys, tracker, role.status)
	}

	return b.String()
}

func readScore(sys *system.System) (float64, float64, int) {
	score, _ := sys.CachedScore()
	return score, sys.Wholeness(), sys.Occurrence()
}

func clustersText(sys *system.System) string {
	parts := make([]string, len(sys.Clusters))
	for i, c := range sys.Clusters {
		pairs := make([]string, len(c.Hits))
		for j, h := range c.Hits {
			pairs[j] = "(" + h.Core.GeneName + ", " + strconv.Itoa(h.Core.Position) + ")"
		}
		parts[i] = "[" + strings.Join(pairs, ", ") + "]"
	}
	return strings.Join(parts, ", ")
}

func writeRole(b *strings.Builder, sys *system.System, tracker *system.HitSystemTracker, status hit.Status) {
	byGene := map[string][]*hit.ModelHit{}
	var order []string
	for _, g := range roleGenes(sys, status) {
		byGene[g] = nil
		order = append(order, g)
	}
	for _, h := range sys.Hits() {
		if h.Status != status {
			continue
		}
		key := h.FunctionalKey()
		byGene[key] = append(byGene[key], h)
	}

	for _, name := range order {
		hits := byGene[name]
		fmt.Fprintf(b, "\t- %s: %d ", name, len(hits))
		parts := make([]string, len(hits))
		for i, h := range hits {
			parts[i] = hitText(h, sys, tracker)
		}
		fmt.Fprintf(b, "(%s)\n", strings.Join(parts, ", "))
	}
}

func hitText(h *hit.ModelHit, sys *system.System, tracker *system.HitSystemTracker) string {
	if tracker == nil {
		return h.Core.GeneName
	}
	others := tracker.OtherModelSystems(h.Core, sys.Model)
	if len(others) == 0 {
		return h.Core.GeneName
	}
	ids := make([]string, len(others))
	for i, o := range others {
		ids[i] = o.ID
	}
	return fmt.Sprintf("%s [%s]", h.Core.GeneName, strings.Join(ids, ", "))
}

func roleGenes(sys *system.System, status hit.Status) []string {
	switch status {
	case hit.StatusMandatory:
		return geneNames(sys.Model.MandatoryGenes())
	case hit.StatusAccessory:
		return geneNames(sys.Model.AccessoryGenes())
	default:
		return geneNames(sys.Model.NeutralGenes())
	}
}

func geneNames(genes []*model.Gene) []string {
	names := make([]string, len(genes))
	for i, g := range genes {
		names[i] = g.Name
	}
	return names
}

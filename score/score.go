// Package score implements §4.4: per-hit, per-cluster, and per-system
// scoring, plus the reported (non-decision) wholeness and occurrence
// statistics. It reads Clusters and Systems and writes back only their
// memoized score fields; it never mutates hits or clusters otherwise.
package score

import (
	"math"
	"sort"

	"github.com/mr-c/macsyfinder/cluster"
	"github.com/mr-c/macsyfinder/hit"
	"github.com/mr-c/macsyfinder/model"
	"github.com/mr-c/macsyfinder/msferr"
	"github.com/mr-c/macsyfinder/system"
)

// Weights is the fixed per-run hit-weight configuration of §4.4.
type Weights struct {
	Mandatory        float64
	Accessory        float64
	Neutral          float64
	Exchangeable     float64
	Itself           float64
	LonerMultiSystem float64
}

// HitScore computes one hit's contribution to its cluster's score.
func HitScore(h *hit.ModelHit, w Weights) (float64, error) {
	var base float64
	switch h.Status {
	case hit.StatusMandatory:
		base = w.Mandatory
	case hit.StatusAccessory:
		base = w.Accessory
	case hit.StatusNeutral:
		base = w.Neutral
	default:
		return 0, msferr.E(msferr.ScoringError, msferr.Op("HitScore"), "unknown hit status")
	}

	mult := w.Itself
	if h.GeneRef.IsExchangeable() {
		mult = w.Exchangeable
	}

	bonus := 1.0
	if h.IsLoner() && h.IsMultiSystem() {
		bonus = w.LonerMultiSystem
	}

	return base * mult * bonus, nil
}

// ClusterScore sums, per functional key, the maximum hit_score among hits
// sharing that key, and memoizes the result on c.
func ClusterScore(c *cluster.Cluster, w Weights) (float64, error) {
	maxByKey := map[string]float64{}
	seen := map[string]bool{}
	for _, h := range c.Hits {
		s, err := HitScore(h, w)
		if err != nil {
			return 0, err
		}
		key := h.FunctionalKey()
		if !seen[key] || s > maxByKey[key] {
			maxByKey[key] = s
			seen[key] = true
		}
	}
	var sum float64
	for _, v := range maxByKey {
		sum += v
	}
	c.SetCachedScore(sum)
	return sum, nil
}

// SystemScore computes the system's score (sum of cluster scores minus the
// redundant-occurrence penalty), its wholeness, and its occurrence, and
// memoizes all three on sys.
func SystemScore(sys *system.System, w Weights) (score, wholeness float64, occurrence int, err error) {
	var clusterSum float64
	for _, c := range sys.Clusters {
		cs, cErr := ClusterScore(c, w)
		if cErr != nil {
			return 0, 0, 0, cErr
		}
		clusterSum += cs
	}

	m := sys.Model
	quorumGenes := append(append([]*model.Gene{}, m.MandatoryGenes()...), m.AccessoryGenes()...)
	occ := occurrencesByGene(sys, quorumGenes)

	var penalty float64
	var present int
	for _, g := range quorumGenes {
		if occ[g] > 0 {
			present++
		}
		if occ[g] > 1 {
			penalty += 1.5 * float64(occ[g]-1)
		}
	}
	score = clusterSum - penalty

	if len(quorumGenes) > 0 {
		wholeness = float64(present) / float64(len(quorumGenes))
	}

	mandatoryOccs := make([]int, 0, len(m.MandatoryGenes()))
	for _, g := range m.MandatoryGenes() {
		mandatoryOccs = append(mandatoryOccs, occ[g])
	}
	occurrence = int(math.Round(median(mandatoryOccs)))
	if occurrence < 1 {
		occurrence = 1
	}

	sys.SetScore(score, wholeness, occurrence)
	return score, wholeness, occurrence, nil
}

// occurrencesByGene counts, for each gene, how many of the system's
// clusters fulfill it.
func occurrencesByGene(sys *system.System, genes []*model.Gene) map[*model.Gene]int {
	occ := make(map[*model.Gene]int, len(genes))
	for _, g := range genes {
		count := 0
		for _, c := range sys.Clusters {
			if c.FulfilledFunction(g) {
				count++
			}
		}
		occ[g] = count
	}
	return occ
}

func median(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]int{}, values...)
	sort.Ints(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return float64(sorted[mid])
	}
	return float64(sorted[mid-1]+sorted[mid]) / 2
}

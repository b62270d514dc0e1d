// Package match runs the combination matcher (§4.3): given the surviving
// clusters and promoted representatives for one replicon and model, it
// enumerates combinations and decides each one as a System or a
// RejectedClusters.
package match

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mr-c/macsyfinder/cluster"
	"github.com/mr-c/macsyfinder/hit"
	"github.com/mr-c/macsyfinder/model"
	"github.com/mr-c/macsyfinder/system"
)

// Candidates builds the full candidate-cluster set a combination is drawn
// from: the clusters promotion left standing, plus one single-hit cluster
// per multi-system and per loner representative.
func Candidates(promoted *cluster.Promoted) []*cluster.Cluster {
	out := append([]*cluster.Cluster{}, promoted.Clusters...)
	for _, key := range sortedKeys(promoted.MultiSystemReps) {
		out = append(out, promoted.MultiSystemReps[key])
	}
	for _, key := range sortedKeys(promoted.LonerReps) {
		out = append(out, promoted.LonerReps[key])
	}
	return out
}

func sortedKeys(m map[string]*cluster.Cluster) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Outcome is the decided result of one combination: exactly one of System
// or Rejected is non-nil.
type Outcome struct {
	System   *system.System
	Rejected *system.RejectedClusters
}

// Run enumerates every combination of candidates sized 1..K (K = 1 when m
// is single-locus, else len(candidates)) and decides each one.
func Run(m *model.Model, candidates []*cluster.Cluster) []Outcome {
	maxSize := len(candidates)
	if !m.MultiLoci {
		maxSize = 1
	}
	presence := buildPresenceIndex(m)

	var outcomes []Outcome
	for size := 1; size <= maxSize; size++ {
		for _, idxs := range combinations(len(candidates), size) {
			combo := make([]*cluster.Cluster, len(idxs))
			for i, idx := range idxs {
				combo[i] = candidates[idx]
			}
			outcomes = append(outcomes, decide(m, presence, combo))
		}
	}
	return outcomes
}

type presenceIndex map[string]model.Presence

func buildPresenceIndex(m *model.Model) presenceIndex {
	idx := presenceIndex{}
	for _, g := range m.MandatoryGenes() {
		idx[g.Name] = model.Mandatory
	}
	for _, g := range m.AccessoryGenes() {
		idx[g.Name] = model.Accessory
	}
	for _, g := range m.NeutralGenes() {
		idx[g.Name] = model.Neutral
	}
	for _, g := range m.ForbiddenGenes() {
		idx[g.Name] = model.Forbidden
	}
	return idx
}

// decide runs the match procedure (steps 1-4) over one combination.
func decide(m *model.Model, presence presenceIndex, combo []*cluster.Cluster) Outcome {
	mandatoryCount := map[string]int{}
	accessoryCount := map[string]int{}
	neutralCount := map[string]int{}
	forbiddenCount := map[string]int{}
	var forbiddenGenes []string

	var validClusters []*cluster.Cluster
	for _, c := range combo {
		var validHits []*hit.ModelHit
		for _, h := range c.Hits {
			canon := model.AlternateOf(h.GeneRef)
			p, known := presence[canon.Name]
			if !known {
				continue // unknown to the model: silently dropped
			}
			if p == model.Forbidden {
				if forbiddenCount[canon.Name] == 0 {
					forbiddenGenes = append(forbiddenGenes, canon.Name)
				}
				forbiddenCount[canon.Name]++
				continue // diverted, never joins a valid-hits cluster
			}
			status := statusOf(p)
			switch p {
			case model.Mandatory:
				mandatoryCount[canon.Name]++
			case model.Accessory:
				accessoryCount[canon.Name]++
			case model.Neutral:
				neutralCount[canon.Name]++
			}
			validHits = append(validHits, canonicalize(h, canon, status))
		}
		if len(validHits) == 0 {
			continue
		}
		valid, err := cluster.New(c.ID(), c.Model, validHits)
		if err != nil {
			// Hits in a combination are always drawn from a single
			// replicon by construction; a purity violation here is a
			// programmer error the caller should see immediately.
			panic(err)
		}
		validClusters = append(validClusters, valid)
	}

	mandatoryPresent := len(mandatoryCount)
	accessoryPresent := len(accessoryCount)
	forbiddenPresent := len(forbiddenCount)

	var failures []string
	if forbiddenPresent > 0 {
		sort.Strings(forbiddenGenes)
		failures = append(failures, fmt.Sprintf("forbidden genes present: %s", strings.Join(forbiddenGenes, ", ")))
	}
	if mandatoryPresent < m.MinMandatoryGenesRequired() {
		failures = append(failures, fmt.Sprintf("mandatory genes present %d < required %d", mandatoryPresent, m.MinMandatoryGenesRequired()))
	}
	if mandatoryPresent+accessoryPresent < m.MinGenesRequired() {
		failures = append(failures, fmt.Sprintf("total genes present %d < required %d", mandatoryPresent+accessoryPresent, m.MinGenesRequired()))
	}

	if len(failures) == 0 {
		return Outcome{System: &system.System{Model: m, Clusters: validClusters}}
	}
	return Outcome{Rejected: &system.RejectedClusters{Model: m, Clusters: combo, Reason: strings.Join(failures, "\n")}}
}

func statusOf(p model.Presence) hit.Status {
	switch p {
	case model.Mandatory:
		return hit.StatusMandatory
	case model.Accessory:
		return hit.StatusAccessory
	default:
		return hit.StatusNeutral
	}
}

// canonicalize returns h unchanged if it already targets canon with the
// right status, else a copy retagged to the canonical gene and status —
// the exchangeable-alternate resolution of step 2.
func canonicalize(h *hit.ModelHit, canon *model.Gene, status hit.Status) *hit.ModelHit {
	if h.GeneRef == canon && h.Status == status {
		return h
	}
	retagged := *h
	retagged.GeneRef = canon
	retagged.Status = status
	return &retagged
}

// combinations returns every size-k subset of {0,...,n-1}, as index
// slices, in lexicographic order.
func combinations(n, k int) [][]int {
	if k <= 0 || k > n {
		return nil
	}
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}
	var result [][]int
	for {
		result = append(result, append([]int{}, idx...))
		i := k - 1
		for i >= 0 && idx[i] == n-k+i {
			i--
		}
		if i < 0 {
			break
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
	return result
}

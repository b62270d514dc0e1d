// Package pipeline wires the detection core's components together for one
// full run: resolving the external hit stream against each model, running
// the clusterizer, promotion pass, and combination matcher per (replicon,
// model), scoring every candidate, and applying the best-system selector
// across the whole run. Orchestration itself (this package) is the one
// seam where the otherwise purely sequential core touches the ambient run
// loop a CLI drives.
package pipeline

import (
	"sort"
	"strconv"

	"github.com/mr-c/macsyfinder/cluster"
	"github.com/mr-c/macsyfinder/hit"
	"github.com/mr-c/macsyfinder/match"
	"github.com/mr-c/macsyfinder/model"
	"github.com/mr-c/macsyfinder/replicon"
	"github.com/mr-c/macsyfinder/score"
	"github.com/mr-c/macsyfinder/system"
)

// Result is the outcome of a full detection run.
type Result struct {
	Systems  []*system.System
	Rejected []*system.RejectedClusters
}

// Run detects every model's systems across every replicon. System ids are
// assigned by a monotonic counter keyed by (replicon, model), iterating
// replicons then models in lexicographic order, so output is stable across
// runs on identical inputs (§5's ordering guarantee).
func Run(models []*model.Model, replicons []*replicon.Replicon, hits []*hit.CoreHit, weights score.Weights) (*Result, error) {
	repliconByName := map[string]*replicon.Replicon{}
	for _, r := range replicons {
		repliconByName[r.Name] = r
	}
	hitsByReplicon := map[string][]*hit.CoreHit{}
	for _, h := range hits {
		hitsByReplicon[h.RepliconName] = append(hitsByReplicon[h.RepliconName], h)
	}

	sortedReplicons := append([]*replicon.Replicon{}, replicons...)
	sort.Slice(sortedReplicons, func(i, j int) bool { return sortedReplicons[i].Name < sortedReplicons[j].Name })

	sortedModels := append([]*model.Model{}, models...)
	sort.Slice(sortedModels, func(i, j int) bool { return model.Less(sortedModels[i], sortedModels[j]) })

	var allSystems []*system.System
	var allRejected []*system.RejectedClusters

	for _, rep := range sortedReplicons {
		coreHits := hitsByReplicon[rep.Name]
		if len(coreHits) == 0 {
			continue
		}
		for _, m := range sortedModels {
			outcomes, err := runOne(m, rep, coreHits)
			if err != nil {
				return nil, err
			}
			idCounter := 0
			for _, oc := range outcomes {
				if oc.System != nil {
					idCounter++
					oc.System.ID = systemID(rep.Name, m.Name, idCounter)
					if err := oc.System.Validate(); err != nil {
						return nil, err
					}
					allSystems = append(allSystems, oc.System)
				} else if oc.Rejected != nil {
					allRejected = append(allRejected, oc.Rejected)
				}
			}
		}
	}

	for _, s := range allSystems {
		sc, wholeness, occurrence, err := score.SystemScore(s, weights)
		if err != nil {
			return nil, err
		}
		s.SetScore(sc, wholeness, occurrence)
	}

	tracker := system.NewHitSystemTracker(allSystems)
	winners, err := selectWinners(allSystems, tracker)
	if err != nil {
		return nil, err
	}
	return &Result{Systems: winners, Rejected: allRejected}, nil
}

// runOne resolves coreHits against m, clusterizes, promotes, and matches,
// producing every candidate outcome for this (replicon, model) pair.
func runOne(m *model.Model, rep *replicon.Replicon, coreHits []*hit.CoreHit) ([]match.Outcome, error) {
	modelHits := resolveHits(m, coreHits)
	if len(modelHits) == 0 {
		return nil, nil
	}

	clusters, err := cluster.Clusterize(modelHits, m, rep)
	if err != nil {
		return nil, err
	}
	if len(clusters) == 0 {
		return nil, nil
	}

	maxID := 0
	for _, c := range clusters {
		if c.ID() > maxID {
			maxID = c.ID()
		}
	}
	promoted, err := cluster.Promote(clusters, &maxID)
	if err != nil {
		return nil, err
	}

	candidates := match.Candidates(promoted)
	return match.Run(m, candidates), nil
}

// resolveHits filters coreHits to those whose gene name (or one of its
// exchangeable alternates) m declares, building a ModelHit per match with
// its initial status. Hits unknown to the model are silently dropped, the
// same convention the combination matcher itself uses.
func resolveHits(m *model.Model, coreHits []*hit.CoreHit) []*hit.ModelHit {
	var out []*hit.ModelHit
	for _, core := range coreHits {
		g, err := m.GeneByName(core.GeneName)
		if err != nil {
			continue
		}
		canon := model.AlternateOf(g)
		presence, ok := m.PresenceOf(canon)
		if !ok {
			continue
		}
		out = append(out, hit.New(core, g, statusOf(presence)))
	}
	return out
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

// selectWinners groups systems by model and runs the best-system selector
// over each group independently, against a tracker built over every
// system of every model.
func selectWinners(systems []*system.System, tracker *system.HitSystemTracker) ([]*system.System, error) {
	byModel := map[*model.Model][]*system.System{}
	var order []*model.Model
	for _, s := range systems {
		if _, seen := byModel[s.Model]; !seen {
			order = append(order, s.Model)
		}
		byModel[s.Model] = append(byModel[s.Model], s)
	}
	sort.Slice(order, func(i, j int) bool { return model.Less(order[i], order[j]) })

	var winners []*system.System
	for _, m := range order {
		group, err := system.Select(byModel[m], tracker)
		if err != nil {
			return nil, err
		}
		winners = append(winners, group...)
	}
	return winners, nil
}

func systemID(repliconName, modelName string, n int) string {
	return repliconName + "_" + modelName + "_" + strconv.Itoa(n)
}

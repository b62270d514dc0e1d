// Package system holds the outcome types the combination matcher produces
// (System, RejectedClusters), the cross-model hit tracker used to
// tie-break tied systems, and the best-system selector itself (§4.5).
package system

import (
	"fmt"

	"github.com/mr-c/macsyfinder/cluster"
	"github.com/mr-c/macsyfinder/hit"
	"github.com/mr-c/macsyfinder/model"
	"github.com/mr-c/macsyfinder/msferr"
)

// System is a valid interpretation produced by the combination matcher: a
// set of clusters, all on one replicon, that together satisfy one model's
// quorum. Its score/wholeness/occurrence are computed once by package
// score and cached here, mirroring Cluster's own lazy-score convention.
type System struct {
	ID       string
	Model    *model.Model
	Clusters []*cluster.Cluster

	scoreComputed bool
	scoreValue    float64
	wholeness     float64
	occurrence    int
}

// RejectedClusters is the matcher's alternative outcome: a combination of
// clusters that failed quorum or contained a forbidden gene, with a
// human-readable reason.
type RejectedClusters struct {
	Model    *model.Model
	Clusters []*cluster.Cluster
	Reason   string
}

// RepliconName returns the replicon all of the system's clusters share.
func (s *System) RepliconName() string {
	if len(s.Clusters) == 0 {
		return ""
	}
	return s.Clusters[0].RepliconName()
}

// Hits returns every ModelHit across every cluster in the system, in
// cluster then within-cluster order.
func (s *System) Hits() []*hit.ModelHit {
	var all []*hit.ModelHit
	for _, c := range s.Clusters {
		all = append(all, c.Hits...)
	}
	return all
}

// Loci is the count of clusters in the system excluding true-loner
// singleton clusters (length 1, loner gene) — distinct from the raw
// cluster count the JSON view's loci_nb reports.
func (s *System) Loci() int {
	n := 0
	for _, c := range s.Clusters {
		if len(c.Hits) == 1 && c.Hits[0].IsLoner() {
			continue
		}
		n++
	}
	return n
}

func (s *System) CachedScore() (float64, bool) { return s.scoreValue, s.scoreComputed }

func (s *System) SetScore(score, wholeness float64, occurrence int) {
	s.scoreValue = score
	s.wholeness = wholeness
	s.occurrence = occurrence
	s.scoreComputed = true
}

func (s *System) Wholeness() float64 { return s.wholeness }
func (s *System) Occurrence() int    { return s.occurrence }

// Validate checks the System invariants: all clusters share a replicon,
// and no ModelHit appears in more than one cluster.
func (s *System) Validate() error {
	if len(s.Clusters) == 0 {
		return msferr.E(msferr.InvariantViolation, msferr.Op("System.Validate"), "system has no clusters")
	}
	repliconName := s.Clusters[0].RepliconName()
	seen := map[*hit.ModelHit]bool{}
	for _, c := range s.Clusters {
		if c.RepliconName() != repliconName {
			return msferr.E(msferr.InvariantViolation, msferr.Op("System.Validate"),
				fmt.Sprintf("system %s spans replicons %s and %s", s.ID, repliconName, c.RepliconName()))
		}
		for _, h := range c.Hits {
			if seen[h] {
				return msferr.E(msferr.InvariantViolation, msferr.Op("System.Validate"),
					fmt.Sprintf("system %s counts hit %s in more than one cluster", s.ID, h.Core.ID))
			}
			seen[h] = true
		}
	}
	return nil
}

// HitSystemTracker maps every CoreHit to the Systems (across every model)
// that include it, built once all matching finishes. Used by the
// best-system selector's tie-break and by the text serializer's
// "claimed by" annotations.
type HitSystemTracker struct {
	bySystemOf map[*hit.CoreHit][]*System
}

// NewHitSystemTracker builds a tracker over every given system.
func NewHitSystemTracker(systems []*System) *HitSystemTracker {
	t := &HitSystemTracker{bySystemOf: map[*hit.CoreHit][]*System{}}
	for _, sys := range systems {
		for _, h := range sys.Hits() {
			t.bySystemOf[h.Core] = append(t.bySystemOf[h.Core], sys)
		}
	}
	return t
}

// SystemsFor returns every System (across all models) that claims core.
func (t *HitSystemTracker) SystemsFor(core *hit.CoreHit) []*System {
	return t.bySystemOf[core]
}

// OtherModelSystems returns the Systems claiming core whose Model differs
// from excluding.
func (t *HitSystemTracker) OtherModelSystems(core *hit.CoreHit, excluding *model.Model) []*System {
	var out []*System
	for _, sys := range t.bySystemOf[core] {
		if sys.Model != excluding {
			out = append(out, sys)
		}
	}
	return out
}

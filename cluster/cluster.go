// Package cluster groups spatially coherent hits into Clusters (the
// clusterizer, §4.1) and reclassifies multi-system/loner hits into their
// promoted forms (the promotion pass, §4.2).
package cluster

import (
	"github.com/mr-c/macsyfinder/hit"
	"github.com/mr-c/macsyfinder/model"
	"github.com/mr-c/macsyfinder/msferr"
)

// Cluster is an ordered, non-decreasing-position sequence of ModelHits
// drawn from a single replicon, owned by one Model. Built by the
// clusterizer; mutated only by the promotion pass (in-place hit
// substitution) and by Merge; otherwise read-only.
type Cluster struct {
	id    int
	Model *model.Model
	Hits  []*hit.ModelHit

	scoreComputed bool
	scoreValue    float64
}

// New builds a Cluster from hits, all of which must share a replicon name;
// violating that is a fatal programmer error (InvariantViolation).
func New(id int, m *model.Model, hits []*hit.ModelHit) (*Cluster, error) {
	if len(hits) == 0 {
		return nil, msferr.E(msferr.InvariantViolation, msferr.Op("cluster.New"), "cannot build a cluster from zero hits")
	}
	repliconName := hits[0].Core.RepliconName
	for _, h := range hits[1:] {
		if h.Core.RepliconName != repliconName {
			return nil, msferr.E(msferr.InvariantViolation, msferr.Op("cluster.New"),
				"cannot build a cluster from hits on different replicons: "+repliconName+" vs "+h.Core.RepliconName)
		}
	}
	return &Cluster{id: id, Model: m, Hits: hits}, nil
}

func (c *Cluster) ID() int { return c.id }

func (c *Cluster) RepliconName() string {
	if len(c.Hits) == 0 {
		return ""
	}
	return c.Hits[0].Core.RepliconName
}

// Merge merges other into c in place. before=true inserts other's hits
// ahead of c's; otherwise they are appended. Merging clusters from
// different models is a fatal programmer error.
func (c *Cluster) Merge(other *Cluster, before bool) error {
	if other.Model != c.Model {
		return msferr.E(msferr.InvariantViolation, msferr.Op("Cluster.Merge"), "cannot merge clusters from different models")
	}
	if before {
		c.Hits = append(append([]*hit.ModelHit{}, other.Hits...), c.Hits...)
	} else {
		c.Hits = append(c.Hits, other.Hits...)
	}
	c.scoreComputed = false
	return nil
}

// CachedScore returns the cluster's memoized score, if one has been
// computed by package score.
func (c *Cluster) CachedScore() (float64, bool) { return c.scoreValue, c.scoreComputed }

// SetCachedScore memoizes the cluster's score. Called by package score
// after computing it; the cluster itself never computes a score so that
// scoring stays a read-only consumer of the cluster/model data, per §2.
func (c *Cluster) SetCachedScore(v float64) {
	c.scoreValue = v
	c.scoreComputed = true
}

// FulfilledFunction reports whether some hit in c counts toward g's
// functional key.
func (c *Cluster) FulfilledFunction(g *model.Gene) bool {
	key := model.AlternateOf(g).Name
	for _, h := range c.Hits {
		if h.FunctionalKey() == key {
			return true
		}
	}
	return false
}

package cluster

import (
	"sort"

	"github.com/mr-c/macsyfinder/hit"
	"github.com/mr-c/macsyfinder/model"
	"github.com/mr-c/macsyfinder/replicon"
)

// Clusterize groups hits belonging to one replicon and one model into
// spatially coherent Clusters, per §4.1. hits need not be pre-sorted.
func Clusterize(hits []*hit.ModelHit, m *model.Model, rep *replicon.Replicon) ([]*Cluster, error) {
	ordered := canonicalize(hits)
	if len(ordered) == 0 {
		return nil, nil
	}

	var clusters []*Cluster
	nextID := 0
	scaffold := []*hit.ModelHit{ordered[0]}

	for _, h := range ordered[1:] {
		if colocate(scaffold[len(scaffold)-1], h, m, rep) {
			scaffold = append(scaffold, h)
			continue
		}
		c, err := closeScaffold(scaffold, m, &nextID)
		if err != nil {
			return nil, err
		}
		if c != nil {
			clusters = append(clusters, c)
		}
		scaffold = []*hit.ModelHit{h}
	}

	// Close the final scaffold; a singleton that wraps into the first
	// cluster's leading hit is merged rather than appended as its own
	// cluster.
	if len(scaffold) == 1 && len(clusters) > 0 && colocate(scaffold[0], clusters[0].Hits[0], m, rep) {
		clusters[0].Hits = append([]*hit.ModelHit{scaffold[0]}, clusters[0].Hits...)
	} else {
		c, err := closeScaffold(scaffold, m, &nextID)
		if err != nil {
			return nil, err
		}
		if c != nil {
			clusters = append(clusters, c)
		}
	}

	// Circular stitch: merge the last cluster into the front of the first
	// when they colocalize across the origin.
	if rep.Topology == replicon.Circular && len(clusters) >= 2 {
		last := clusters[len(clusters)-1]
		first := clusters[0]
		if colocate(last.Hits[len(last.Hits)-1], first.Hits[0], m, rep) {
			if err := first.Merge(last, true); err != nil {
				return nil, err
			}
			clusters = clusters[:len(clusters)-1]
		}
	}

	return clusters, nil
}

// canonicalize sorts hits by (position ascending, score descending) and
// collapses duplicate positions, keeping the best-scoring hit at each one.
func canonicalize(hits []*hit.ModelHit) []*hit.ModelHit {
	if len(hits) == 0 {
		return nil
	}
	sorted := append([]*hit.ModelHit{}, hits...)
	sort.Slice(sorted, func(i, j int) bool {
		pi, pj := sorted[i].Core.Position, sorted[j].Core.Position
		if pi != pj {
			return pi < pj
		}
		return sorted[i].Core.Score > sorted[j].Core.Score
	})
	result := sorted[:1]
	for _, h := range sorted[1:] {
		if h.Core.Position == result[len(result)-1].Core.Position {
			continue
		}
		result = append(result, h)
	}
	return result
}

// colocate reports whether h1 and h2 colocalize: the number of genes
// strictly between them is within the smaller of the inter-gene-max-space
// overrides the two hits' genes carry; the model's own value applies only
// when neither gene carries one. On a circular replicon, a negative
// separation is retried against the wraparound distance.
func colocate(h1, h2 *hit.ModelHit, m *model.Model, rep *replicon.Replicon) bool {
	d := h2.Core.Position - h1.Core.Position - 1
	maxSpace := m.InterGeneMaxSpace
	if o := h1.GeneRef.InterGeneMaxSpace; o != nil {
		maxSpace = minInt(*o, h2.GeneRef.EffectiveInterGeneMaxSpace(*o))
	} else if o := h2.GeneRef.InterGeneMaxSpace; o != nil {
		maxSpace = *o
	}
	if d >= 0 {
		return d <= maxSpace
	}
	if rep.Topology != replicon.Circular {
		return false
	}
	wrap := rep.WrapDistance(h1.Core.Position, h2.Core.Position)
	return wrap >= 0 && wrap <= maxSpace
}

// closeScaffold turns scaffold into a Cluster iff it qualifies: it has at
// least 2 hits, the model requires only 1 gene total, or its single hit's
// gene is a loner. Otherwise the scaffold is discarded (nil, nil).
func closeScaffold(scaffold []*hit.ModelHit, m *model.Model, nextID *int) (*Cluster, error) {
	qualifies := len(scaffold) >= 2 ||
		m.MinGenesRequired() == 1 ||
		(len(scaffold) == 1 && scaffold[0].GeneRef.Loner)
	if !qualifies {
		return nil, nil
	}
	*nextID++
	return New(*nextID, m, scaffold)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

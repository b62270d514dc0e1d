package cluster

import (
	"github.com/minio/highwayhash"
	"github.com/mr-c/macsyfinder/hit"
)

// functionHash is the grouping key for a functional gene name, computed the
// same way the teacher groups fusion candidates by a hash of their gene-ID
// pair: a fixed zero seed and highwayhash.Sum over the key's bytes, rather
// than using the string itself as a map key, to keep the grouping path
// identical to the teacher's.
type functionHash = [highwayhash.Size]uint8

var zeroSeed functionHash

func hashFunctionKey(key string) functionHash {
	return highwayhash.Sum([]byte(key), zeroSeed[:])
}

// Promoted is the result of the promotion pass (§4.2): the surviving
// cluster list (multi-system hits replaced in place, true-loner singletons
// removed) plus the function-name-keyed representative clusters the
// matcher draws on for multi-system and loner genes.
type Promoted struct {
	Clusters        []*Cluster
	MultiSystemReps map[string]*Cluster
	LonerReps       map[string]*Cluster
}

// Promote runs the promotion pass over clusters produced for one replicon
// and model. nextID continues the id sequence used by Clusterize so
// representative clusters get ids unique within the same run.
func Promote(clusters []*Cluster, nextID *int) (*Promoted, error) {
	clusters = promoteMultiSystem(clusters)
	multiReps, err := buildReps(clusters, nextID, func(h *hit.ModelHit) bool { return h.IsMultiSystem() })
	if err != nil {
		return nil, err
	}

	remaining, lonerPools := extractTrueLoners(clusters)
	lonerReps, err := promoteLonerPools(lonerPools, nextID)
	if err != nil {
		return nil, err
	}

	return &Promoted{Clusters: remaining, MultiSystemReps: multiReps, LonerReps: lonerReps}, nil
}

// promoteMultiSystem groups every hit across all clusters whose gene is
// declared multi-system by functional key, and replaces each in place with
// its promoted form carrying the rest of the group as counterparts.
func promoteMultiSystem(clusters []*Cluster) []*Cluster {
	groups := map[functionHash][]*hit.ModelHit{}
	for _, c := range clusters {
		for _, h := range c.Hits {
			if !h.GeneRef.MultiSystem {
				continue
			}
			key := hashFunctionKey(h.FunctionalKey())
			groups[key] = append(groups[key], h)
		}
	}
	if len(groups) == 0 {
		return clusters
	}

	promotedByOriginal := map[*hit.ModelHit]*hit.ModelHit{}
	for _, group := range groups {
		for _, h := range group {
			counterparts := otherThan(group, h)
			promotedByOriginal[h] = h.Promote(hit.KindMultiSystem, counterparts)
		}
	}

	for _, c := range clusters {
		for i, h := range c.Hits {
			if p, ok := promotedByOriginal[h]; ok {
				c.Hits[i] = p
			}
		}
	}
	return clusters
}

// extractTrueLoners removes singleton clusters whose lone hit's gene is a
// loner, pooling those hits by functional key; singleton clusters kept
// only because the model requires a single gene are left untouched.
func extractTrueLoners(clusters []*Cluster) ([]*Cluster, map[functionHash][]*hit.ModelHit) {
	pools := map[functionHash][]*hit.ModelHit{}
	var remaining []*Cluster
	for _, c := range clusters {
		if len(c.Hits) == 1 && c.Hits[0].GeneRef.Loner {
			h := c.Hits[0]
			key := hashFunctionKey(h.FunctionalKey())
			pools[key] = append(pools[key], h)
			continue
		}
		remaining = append(remaining, c)
	}
	return remaining, pools
}

// promoteLonerPools converts every hit in every pool to its Loner (or
// LonerMultiSystem, via Kind combination) variant, carrying the rest of its
// pool as counterparts, and returns the function-name-keyed representative
// (highest raw score) single-hit cluster per pool.
func promoteLonerPools(pools map[functionHash][]*hit.ModelHit, nextID *int) (map[string]*Cluster, error) {
	reps := map[string]*Cluster{}
	for _, pool := range pools {
		promoted := make([]*hit.ModelHit, len(pool))
		for i, h := range pool {
			promoted[i] = h.Promote(hit.KindLoner, otherThan(pool, h))
		}
		rep := highestScore(promoted)
		*nextID++
		c, err := New(*nextID, rep.GeneRef.Model, []*hit.ModelHit{rep})
		if err != nil {
			return nil, err
		}
		reps[rep.FunctionalKey()] = c
	}
	return reps, nil
}

// buildReps selects, per functional key, the representative (highest raw
// score) among hits satisfying keep, wrapping each as its own single-hit
// cluster.
func buildReps(clusters []*Cluster, nextID *int, keep func(*hit.ModelHit) bool) (map[string]*Cluster, error) {
	byKey := map[string][]*hit.ModelHit{}
	for _, c := range clusters {
		for _, h := range c.Hits {
			if keep(h) {
				byKey[h.FunctionalKey()] = append(byKey[h.FunctionalKey()], h)
			}
		}
	}
	reps := map[string]*Cluster{}
	for key, hits := range byKey {
		rep := highestScore(hits)
		*nextID++
		c, err := New(*nextID, rep.GeneRef.Model, []*hit.ModelHit{rep})
		if err != nil {
			return nil, err
		}
		reps[key] = c
	}
	return reps, nil
}

func highestScore(hits []*hit.ModelHit) *hit.ModelHit {
	best := hits[0]
	for _, h := range hits[1:] {
		if h.Core.Score > best.Core.Score {
			best = h
		}
	}
	return best
}

func otherThan(all []*hit.ModelHit, self *hit.ModelHit) []*hit.ModelHit {
	out := make([]*hit.ModelHit, 0, len(all)-1)
	for _, h := range all {
		if h != self {
			out = append(out, h)
		}
	}
	return out
}

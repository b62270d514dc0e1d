package system

import (
	"sort"

	"github.com/mr-c/macsyfinder/msferr"
)

// Select runs the best-system selector (§4.5) over one model's systems:
// sort by score descending, return the strict top scorer if there is one,
// else tie-break by overlap_genes then overlap_length against tracker
// (built over every system of every model). Ties that survive both
// tie-breaks are all returned.
//
// Every system in systems must belong to the same Model; mixing models is
// a fatal caller error (DomainError).
func Select(systems []*System, tracker *HitSystemTracker) ([]*System, error) {
	if len(systems) == 0 {
		return nil, nil
	}
	m := systems[0].Model
	for _, s := range systems[1:] {
		if s.Model != m {
			return nil, msferr.E(msferr.DomainError, msferr.Op("Select"), "systems span more than one model")
		}
	}

	ordered := append([]*System{}, systems...)
	sort.Slice(ordered, func(i, j int) bool {
		si, _ := ordered[i].CachedScore()
		sj, _ := ordered[j].CachedScore()
		return si > sj
	})

	topScore, _ := ordered[0].CachedScore()
	var tied []*System
	for _, s := range ordered {
		score, _ := s.CachedScore()
		if score == topScore {
			tied = append(tied, s)
		}
	}
	if len(tied) == 1 {
		return tied, nil
	}

	type overlapStats struct {
		sys           *System
		overlapGenes  int
		overlapLength int
	}
	stats := make([]overlapStats, len(tied))
	for i, s := range tied {
		genes, length := overlap(s, tracker)
		stats[i] = overlapStats{sys: s, overlapGenes: genes, overlapLength: length}
	}

	minGenes := stats[0].overlapGenes
	for _, st := range stats[1:] {
		if st.overlapGenes < minGenes {
			minGenes = st.overlapGenes
		}
	}
	var byGenes []overlapStats
	for _, st := range stats {
		if st.overlapGenes == minGenes {
			byGenes = append(byGenes, st)
		}
	}
	if len(byGenes) == 1 {
		return []*System{byGenes[0].sys}, nil
	}

	minLength := byGenes[0].overlapLength
	for _, st := range byGenes[1:] {
		if st.overlapLength < minLength {
			minLength = st.overlapLength
		}
	}
	var result []*System
	for _, st := range byGenes {
		if st.overlapLength == minLength {
			result = append(result, st.sys)
		}
	}
	return result, nil
}

// overlap computes overlap_genes (count of s's hits also claimed by some
// other model's system) and overlap_length (sum, over those hits, of how
// many other-model systems claim each one).
func overlap(s *System, tracker *HitSystemTracker) (genes, length int) {
	for _, h := range s.Hits() {
		others := tracker.OtherModelSystems(h.Core, s.Model)
		if len(others) > 0 {
			genes++
			length += len(others)
		}
	}
	return genes, length
}

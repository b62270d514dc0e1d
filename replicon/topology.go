package replicon

import (
	"bufio"
	"io"
	"sort"
	"strings"

	"github.com/mr-c/macsyfinder/msferr"
	"github.com/pkg/errors"
)

// ParseTopology parses the topology file format of §6: lines of form
// "<replicon-name> : <topology>" (topology case-insensitive, linear or
// circular); lines starting with '#' are comments.
func ParseTopology(r io.Reader) (map[string]Topology, error) {
	in, err := OpenMaybeGzip(r)
	if err != nil {
		return nil, err
	}
	result := map[string]Topology{}
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		idx := strings.Index(line, ":")
		if idx < 0 {
			return nil, msferr.E(msferr.InputError, msferr.Op("ParseTopology"), "malformed topology line: "+line)
		}
		name := strings.TrimSpace(line[:idx])
		topo := strings.ToLower(strings.TrimSpace(line[idx+1:]))
		switch topo {
		case "linear":
			result[name] = Linear
		case "circular":
			result[name] = Circular
		default:
			return nil, msferr.E(msferr.InputError, msferr.Op("ParseTopology"), "unknown topology %q for replicon "+name+": "+topo)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "read topology file")
	}
	return result, nil
}

// BuildReplicons groups a flat sequence-entry list by replicon name
// (entries for the same replicon are assumed contiguous, as produced by an
// ordered-replicon FASTA index) and assigns min/max ordinal positions,
// applying the given topology map (falling back to defaultTopology when a
// replicon has no explicit entry).
func BuildReplicons(entries []SequenceEntry, byName func(seqID string) string, topologies map[string]Topology, defaultTopology Topology) []*Replicon {
	grouped := map[string][]SequenceEntry{}
	var order []string
	for _, e := range entries {
		name := byName(e.SeqID)
		if _, ok := grouped[name]; !ok {
			order = append(order, name)
		}
		grouped[name] = append(grouped[name], e)
	}
	sort.Strings(order)

	replicons := make([]*Replicon, 0, len(order))
	for _, name := range order {
		seqs := grouped[name]
		sort.Slice(seqs, func(i, j int) bool { return seqs[i].Rank < seqs[j].Rank })
		topo, ok := topologies[name]
		if !ok {
			topo = defaultTopology
		}
		replicons = append(replicons, &Replicon{
			Name:      name,
			Topology:  topo,
			Min:       seqs[0].Rank,
			Max:       seqs[len(seqs)-1].Rank,
			Sequences: seqs,
		})
	}
	return replicons
}

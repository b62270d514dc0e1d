// Package model holds the catalog of macromolecular system models: the
// genes each model declares (mandatory, accessory, neutral, forbidden),
// their spatial constraints, and quorum rules.
package model

import (
	"fmt"
	"sort"

	"github.com/antzucaro/matchr"
	"github.com/mr-c/macsyfinder/msferr"
)

// Presence classifies a Gene's role within a Model.
type Presence uint8

const (
	Mandatory Presence = iota
	Accessory
	Neutral
	Forbidden
)

func (p Presence) String() string {
	switch p {
	case Mandatory:
		return "mandatory"
	case Accessory:
		return "accessory"
	case Neutral:
		return "neutral"
	case Forbidden:
		return "forbidden"
	default:
		return "unknown"
	}
}

// Model is a macromolecular system model: the fully qualified name, its
// colocalization parameter, quorum thresholds, and its four disjoint gene
// sets.
type Model struct {
	// FQN is the fully qualified name, e.g. "CRISPR-Cas/sub-typing/CAS-TypeIE".
	FQN string
	// Name is the last path component of FQN.
	Name string

	InterGeneMaxSpace int
	MultiLoci         bool
	MaxNbGenes        *int

	// minMandatoryGenesRequired and minGenesRequired default to
	// len(mandatoryGenes) when unset (nil), matching the convention of the
	// system this model catalog is modeled on.
	minMandatoryGenesRequired *int
	minGenesRequired          *int

	mandatory []*Gene
	accessory []*Gene
	neutral   []*Gene
	forbidden []*Gene
}

// New creates a Model. Call the Add* methods to populate its gene sets,
// then Validate before use.
func New(fqn string, interGeneMaxSpace int) *Model {
	name := fqn
	for i := len(fqn) - 1; i >= 0; i-- {
		if fqn[i] == '/' {
			name = fqn[i+1:]
			break
		}
	}
	return &Model{FQN: fqn, Name: name, InterGeneMaxSpace: interGeneMaxSpace}
}

// SetMinMandatoryGenesRequired sets the explicit quorum override.
func (m *Model) SetMinMandatoryGenesRequired(n int) { m.minMandatoryGenesRequired = &n }

// SetMinGenesRequired sets the explicit quorum override.
func (m *Model) SetMinGenesRequired(n int) { m.minGenesRequired = &n }

// MinMandatoryGenesRequired returns the quorum of mandatory genes required,
// defaulting to the number of declared mandatory genes.
func (m *Model) MinMandatoryGenesRequired() int {
	if m.minMandatoryGenesRequired != nil {
		return *m.minMandatoryGenesRequired
	}
	return len(m.mandatory)
}

// MinGenesRequired returns the minimum total (mandatory+accessory) gene
// count required, defaulting to the number of declared mandatory genes.
func (m *Model) MinGenesRequired() int {
	if m.minGenesRequired != nil {
		return *m.minGenesRequired
	}
	return len(m.mandatory)
}

func (m *Model) AddMandatory(g *Gene) { m.add(&m.mandatory, g) }
func (m *Model) AddAccessory(g *Gene) { m.add(&m.accessory, g) }
func (m *Model) AddNeutral(g *Gene)   { m.add(&m.neutral, g) }
func (m *Model) AddForbidden(g *Gene) { m.add(&m.forbidden, g) }

func (m *Model) add(set *[]*Gene, g *Gene) {
	g.Model = m
	*set = append(*set, g)
}

func (m *Model) MandatoryGenes() []*Gene { return m.mandatory }
func (m *Model) AccessoryGenes() []*Gene { return m.accessory }
func (m *Model) NeutralGenes() []*Gene   { return m.neutral }
func (m *Model) ForbiddenGenes() []*Gene { return m.forbidden }

// Validate checks the model's declared invariants and returns a
// ModelInconsistencyError on violation.
func (m *Model) Validate() error {
	if m.minMandatoryGenesRequired != nil && m.minGenesRequired != nil {
		if *m.minGenesRequired < *m.minMandatoryGenesRequired {
			return msferr.E(msferr.ModelInconsistencyError, msferr.Op("Model.Validate"),
				fmt.Sprintf("%s: min_genes_required %d must be >= min_mandatory_genes_required %d",
					m.FQN, *m.minGenesRequired, *m.minMandatoryGenesRequired))
		}
	}
	for _, set := range [][]*Gene{m.mandatory, m.accessory, m.neutral, m.forbidden} {
		for _, g := range set {
			for _, alt := range g.Alternates() {
				if alt.canonical != g {
					return msferr.E(msferr.ModelInconsistencyError, msferr.Op("Model.Validate"),
						fmt.Sprintf("%s: alternate %q is not wired to canonical gene %q", m.FQN, alt.Name, g.Name))
				}
			}
		}
	}
	return nil
}

// GeneByName looks up a gene (canonical or alternate) by name anywhere in
// the model's four gene sets. Returns a NotFound error, enriched with a
// "did you mean" suggestion when a close name match exists, when the gene
// is absent.
func (m *Model) GeneByName(name string) (*Gene, error) {
	for _, set := range [][]*Gene{m.mandatory, m.accessory, m.neutral, m.forbidden} {
		for _, g := range set {
			if g.Name == name {
				return g, nil
			}
			for _, alt := range g.alternates {
				if alt.Name == name {
					return alt, nil
				}
			}
		}
	}
	if suggestion := m.suggestName(name); suggestion != "" {
		return nil, msferr.E(msferr.NotFound, msferr.Op("Model.GeneByName"),
			fmt.Sprintf("model %s has no gene %q; did you mean %q?", m.FQN, name, suggestion))
	}
	return nil, msferr.E(msferr.NotFound, msferr.Op("Model.GeneByName"),
		fmt.Sprintf("model %s has no gene %q", m.FQN, name))
}

// suggestName returns the closest known gene name to name (by Levenshtein
// distance) when it is within a small edit distance, else "".
func (m *Model) suggestName(name string) string {
	type cand struct {
		name string
		dist int
	}
	var all []cand
	for _, set := range [][]*Gene{m.mandatory, m.accessory, m.neutral, m.forbidden} {
		for _, g := range set {
			all = append(all, cand{g.Name, matchr.Levenshtein(name, g.Name)})
			for _, alt := range g.alternates {
				all = append(all, cand{alt.Name, matchr.Levenshtein(name, alt.Name)})
			}
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].dist < all[j].dist })
	const maxSuggestDistance = 3
	if len(all) > 0 && all[0].dist <= maxSuggestDistance {
		return all[0].name
	}
	return ""
}

// Less orders Models by FQN, used wherever deterministic iteration order
// over a set of models is required (e.g. system-id assignment).
func Less(a, b *Model) bool { return a.FQN < b.FQN }

// PresenceOf reports the role a canonical gene plays in m (mandatory,
// accessory, neutral, or forbidden), and whether it is declared in m at
// all. Callers resolve a hit's gene-ref with AlternateOf before calling
// this, since presence is only meaningful for canonical genes.
func (m *Model) PresenceOf(canonical *Gene) (Presence, bool) {
	for presence, set := range map[Presence][]*Gene{
		Mandatory: m.mandatory,
		Accessory: m.accessory,
		Neutral:   m.neutral,
		Forbidden: m.forbidden,
	} {
		for _, g := range set {
			if g == canonical {
				return presence, true
			}
		}
	}
	return Mandatory, false
}

package model

// Gene is a definition-level gene entry owned by a Model: one of its
// mandatory, accessory, neutral, or forbidden genes, or an exchangeable
// alternate of one of those.
//
// Cyclic references (Gene -> Model -> []Gene) are the natural back-pointer
// from a gene to its owning model; Model owns the Gene values directly
// (no separate arena) since a Model's gene set is small and fixed at
// registration time.
type Gene struct {
	Name  string
	Model *Model

	// InterGeneMaxSpace overrides Model.InterGeneMaxSpace for colocation
	// checks involving this gene. Nil means "no override".
	InterGeneMaxSpace *int

	Loner       bool
	MultiSystem bool

	// Exchangeable is true when this gene declares alternates: hits on any
	// of Alternates() may satisfy this gene's role, at a score penalty.
	Exchangeable bool

	alternates []*Gene
	canonical  *Gene // non-nil iff this Gene is itself an alternate
}

// NewGene creates a canonical (non-alternate) Gene entry.
func NewGene(name string) *Gene {
	return &Gene{Name: name}
}

// WithAlternate registers alt as an exchangeable alternate of g and returns
// g for chaining. Marks g as Exchangeable.
func (g *Gene) WithAlternate(alt *Gene) *Gene {
	g.Exchangeable = true
	alt.canonical = g
	g.alternates = append(g.alternates, alt)
	return g
}

// Alternates returns the exchangeable alternates declared for g, if any.
func (g *Gene) Alternates() []*Gene { return g.alternates }

// IsExchangeable reports whether g itself stands in for another gene (i.e.
// g is an alternate, not the canonical declaration).
func (g *Gene) IsExchangeable() bool { return g.canonical != nil }

// AlternateOf returns the canonical gene when called on an alternate, else
// the gene itself. This is the single functional key used throughout
// clustering, promotion, matching, and scoring.
func AlternateOf(g *Gene) *Gene {
	if g.canonical != nil {
		return g.canonical
	}
	return g
}

// effectiveInterGeneMaxSpace returns g's inter-gene-max-space override, or
// fallback when none is set.
func (g *Gene) effectiveInterGeneMaxSpace(fallback int) int {
	if g.InterGeneMaxSpace != nil {
		return *g.InterGeneMaxSpace
	}
	return fallback
}

// EffectiveInterGeneMaxSpace exports effectiveInterGeneMaxSpace for callers
// outside the package (the clusterizer's colocation predicate, §4.1).
func (g *Gene) EffectiveInterGeneMaxSpace(fallback int) int {
	return g.effectiveInterGeneMaxSpace(fallback)
}

// Package hit defines the profile-match types the detection core consumes
// and produces: CoreHit (the raw search result) and ModelHit (a CoreHit
// resolved against one model's gene roster, possibly promoted by the
// multi-system/loner pass).
package hit

import "github.com/mr-c/macsyfinder/model"

// CoreHit is one profile match produced by the external similarity search.
// Immutable once created.
type CoreHit struct {
	ID               string
	GeneName         string
	RepliconName     string
	Position         int // ordinal rank on the replicon
	SequenceLength   int
	Score            float64
	IEvalue          float64
	ProfileCoverage  float64
	SequenceCoverage float64
	MatchBegin       int
	MatchEnd         int
}

// Status is the role a ModelHit fulfills within its model.
type Status uint8

const (
	StatusMandatory Status = iota
	StatusAccessory
	StatusNeutral
)

// Kind tags which promoted variant a ModelHit represents. Rather than a
// class hierarchy of ModelHit/MultiSystemHit/LonerHit/LonerMultiSystemHit,
// this is a single tagged struct: scoring and counterpart queries branch on
// Kind instead of traversing a type hierarchy.
type Kind uint8

const (
	KindPlain Kind = iota
	KindMultiSystem
	KindLoner
	KindLonerMultiSystem
)

// ModelHit wraps a CoreHit with the Gene it satisfies (possibly via
// exchangeability) and the role it was counted for. Promoted hits
// (produced by the promotion pass, package cluster) additionally carry a
// Kind and the set of other equivalent hits in their promotion group.
type ModelHit struct {
	Core    *CoreHit
	GeneRef *model.Gene
	Status  Status
	Kind    Kind

	// Counterparts holds every other hit sharing this hit's functional key
	// in its promotion group (the representative included, when this hit
	// is not it), for MultiSystem/Loner variants. Empty for KindPlain.
	Counterparts []*ModelHit
}

// FunctionalKey is the single functional identity of a hit, per
// model.AlternateOf: the canonical gene name it counts toward.
func (h *ModelHit) FunctionalKey() string {
	return model.AlternateOf(h.GeneRef).Name
}

func (h *ModelHit) IsLoner() bool {
	return h.Kind == KindLoner || h.Kind == KindLonerMultiSystem
}

func (h *ModelHit) IsMultiSystem() bool {
	return h.Kind == KindMultiSystem || h.Kind == KindLonerMultiSystem
}

// Promote returns a copy of h tagged with kind and the given counterparts.
// The caller is responsible for constructing each hit's promoted form
// exactly once (§9: the source's double-construction is a known bug this
// repository does not reproduce).
func (h *ModelHit) Promote(kind Kind, counterparts []*ModelHit) *ModelHit {
	promoted := *h
	promoted.Kind = combineKind(h.Kind, kind)
	promoted.Counterparts = counterparts
	return &promoted
}

func combineKind(existing, add Kind) Kind {
	isLoner := existing == KindLoner || existing == KindLonerMultiSystem || add == KindLoner || add == KindLonerMultiSystem
	isMulti := existing == KindMultiSystem || existing == KindLonerMultiSystem || add == KindMultiSystem || add == KindLonerMultiSystem
	switch {
	case isLoner && isMulti:
		return KindLonerMultiSystem
	case isLoner:
		return KindLoner
	case isMulti:
		return KindMultiSystem
	default:
		return KindPlain
	}
}

// New constructs a plain (unpromoted) ModelHit.
func New(core *CoreHit, geneRef *model.Gene, status Status) *ModelHit {
	return &ModelHit{Core: core, GeneRef: geneRef, Status: status}
}

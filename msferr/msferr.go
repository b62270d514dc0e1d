// Package msferr defines the typed error kinds produced by the detection
// core and its loaders, so callers can errors.As to *msferr.Error and
// switch on Kind instead of matching strings.
package msferr

import "strings"

// Kind categorizes an Error.
type Kind uint8

const (
	KindUnknown Kind = iota
	// InputError signals a malformed index line, an unknown replicon
	// topology, or an index that points at the wrong FASTA.
	InputError
	// ModelInconsistencyError signals min_genes_required <
	// min_mandatory_genes_required, or an unknown gene name referenced as
	// an exchangeable alternate.
	ModelInconsistencyError
	// InvariantViolation signals a programmer error: a cluster spanning
	// multiple replicons or a merge across different models. Never
	// recovered from.
	InvariantViolation
	// DomainError signals the best-system selector was invoked across
	// systems from more than one model.
	DomainError
	// NotFound signals a gene lookup by name failed inside a model.
	NotFound
	// ScoringError signals a hit carries a status unknown to the scorer.
	ScoringError
)

func (k Kind) String() string {
	switch k {
	case InputError:
		return "InputError"
	case ModelInconsistencyError:
		return "ModelInconsistencyError"
	case InvariantViolation:
		return "InvariantViolation"
	case DomainError:
		return "DomainError"
	case NotFound:
		return "NotFound"
	case ScoringError:
		return "ScoringError"
	default:
		return "Unknown"
	}
}

// Op names the operation that failed, e.g. "cluster.Build".
type Op string

// Error is the structured error value produced throughout this module.
type Error struct {
	Op   Op
	Kind Kind
	Err  error
	Msg  string
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	if e.Op != "" {
		b.WriteString(" ")
		b.WriteString(string(e.Op))
	}
	if e.Msg != "" {
		b.WriteString(": ")
		b.WriteString(e.Msg)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// E builds an Error from its arguments, in any order: Op, Kind, error,
// string (message). Mirrors the teacher's terse error-construction helper.
func E(args ...interface{}) *Error {
	e := &Error{}
	for _, a := range args {
		switch v := a.(type) {
		case Op:
			e.Op = v
		case Kind:
			e.Kind = v
		case error:
			e.Err = v
		case string:
			e.Msg = v
		}
	}
	return e
}

// Is reports whether err is an *Error of the given kind.
func Is(err error, kind Kind) bool {
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e.Kind == kind
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

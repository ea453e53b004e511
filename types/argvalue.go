package types

// ArgKind tags the three possible realizations of one call argument.
type ArgKind uint8

const (
	// ArgScalar is a plain value, including array literals.
	ArgScalar ArgKind = iota
	// ArgReference is a single rectangular range.
	ArgReference
	// ArgReferenceUnion is an ordered list of possibly overlapping ranges.
	ArgReferenceUnion
)

// ArgValue is the result of evaluating one call argument. It is produced
// fresh per call by the host evaluator and never retained by functions.
type ArgValue struct {
	kind   ArgKind
	scalar Value
	ref    Reference
	refs   []Reference
}

// ScalarArg wraps a scalar value.
func ScalarArg(v Value) ArgValue {
	return ArgValue{kind: ArgScalar, scalar: v}
}

// ReferenceArg wraps a single reference, normalizing it.
func ReferenceArg(r Reference) ArgValue {
	return ArgValue{kind: ArgReference, ref: r.Normalize()}
}

// ReferenceUnionArg wraps a reference union, normalizing each rectangle and
// preserving order.
func ReferenceUnionArg(refs []Reference) ArgValue {
	norm := make([]Reference, len(refs))
	for i, r := range refs {
		norm[i] = r.Normalize()
	}
	return ArgValue{kind: ArgReferenceUnion, refs: norm}
}

// Kind returns the realization tag.
func (a ArgValue) Kind() ArgKind {
	return a.kind
}

// Scalar returns the scalar payload. Valid only for ArgScalar.
func (a ArgValue) Scalar() Value {
	return a.scalar
}

// Reference returns the reference payload. Valid only for ArgReference.
func (a ArgValue) Reference() Reference {
	return a.ref
}

// References returns the union payload. Valid only for ArgReferenceUnion.
// The returned slice must not be mutated.
func (a ArgValue) References() []Reference {
	return a.refs
}

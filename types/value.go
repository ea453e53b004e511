package types

// Kind is the type tag of a Value.
type Kind uint8

const (
	// KindBlank is an empty cell or an omitted argument.
	KindBlank Kind = iota
	// KindNumber is an IEEE 754 double.
	KindNumber
	// KindBool is a logical value.
	KindBool
	// KindText is a text string.
	KindText
	// KindError is a spreadsheet error value.
	KindError
	// KindArray is a dense row-major 2D array of values.
	KindArray
	// KindEntity is an opaque rich value (e.g. a linked data type).
	KindEntity
	// KindRecord is an opaque structured rich value.
	KindRecord
	// KindLambda is a lambda value.
	KindLambda
	// KindSpill is a spilled-range marker.
	KindSpill
	// KindReference is a single rectangular range.
	KindReference
	// KindReferenceUnion is an ordered list of possibly overlapping ranges.
	KindReferenceUnion
)

// Value is the closed tagged union for everything a cell or argument can
// hold. Aggregate functions only ever construct Number, Bool, Text, Blank,
// Error and Array values; the rich kinds (Entity, Record, Lambda, Spill,
// Reference, ReferenceUnion) are consumed and classified but never
// fabricated by this module.
type Value struct {
	kind   Kind
	num    float64
	b      bool
	text   string
	err    ErrorKind
	arr    *Array
	ref    Reference
	refs   []Reference
	opaque interface{} // Entity/Record/Lambda/Spill payload, never inspected
}

// NewBlank returns the blank value.
func NewBlank() Value {
	return Value{kind: KindBlank}
}

// NewNumber returns a numeric value.
func NewNumber(n float64) Value {
	return Value{kind: KindNumber, num: n}
}

// NewBool returns a logical value.
func NewBool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// NewText returns a text value.
func NewText(s string) Value {
	return Value{kind: KindText, text: s}
}

// NewError returns a spreadsheet error value.
func NewError(k ErrorKind) Value {
	return Value{kind: KindError, err: k}
}

// NewArray returns an array value. The array is owned by the caller and
// must not be mutated after being wrapped.
func NewArray(a *Array) Value {
	return Value{kind: KindArray, arr: a}
}

// NewEntity wraps an opaque entity payload.
func NewEntity(payload interface{}) Value {
	return Value{kind: KindEntity, opaque: payload}
}

// NewRecord wraps an opaque record payload.
func NewRecord(payload interface{}) Value {
	return Value{kind: KindRecord, opaque: payload}
}

// NewLambda wraps an opaque lambda payload.
func NewLambda(payload interface{}) Value {
	return Value{kind: KindLambda, opaque: payload}
}

// NewSpill wraps an opaque spill marker payload.
func NewSpill(payload interface{}) Value {
	return Value{kind: KindSpill, opaque: payload}
}

// NewReference returns a reference value.
func NewReference(r Reference) Value {
	return Value{kind: KindReference, ref: r.Normalize()}
}

// NewReferenceUnion returns a reference-union value. Order is preserved.
func NewReferenceUnion(refs []Reference) Value {
	norm := make([]Reference, len(refs))
	for i, r := range refs {
		norm[i] = r.Normalize()
	}
	return Value{kind: KindReferenceUnion, refs: norm}
}

// Kind returns the type tag.
func (v Value) Kind() Kind {
	return v.kind
}

// IsBlank reports whether the value is blank.
func (v Value) IsBlank() bool {
	return v.kind == KindBlank
}

// IsError reports whether the value is a spreadsheet error.
func (v Value) IsError() bool {
	return v.kind == KindError
}

// Number returns the numeric payload. Valid only for KindNumber.
func (v Value) Number() float64 {
	return v.num
}

// Bool returns the logical payload. Valid only for KindBool.
func (v Value) Bool() bool {
	return v.b
}

// Text returns the text payload. Valid only for KindText.
func (v Value) Text() string {
	return v.text
}

// ErrKind returns the error payload. Valid only for KindError.
func (v Value) ErrKind() ErrorKind {
	return v.err
}

// Array returns the array payload. Valid only for KindArray.
func (v Value) Array() *Array {
	return v.arr
}

// Reference returns the reference payload. Valid only for KindReference.
func (v Value) Reference() Reference {
	return v.ref
}

// ReferenceUnion returns the union payload. Valid only for
// KindReferenceUnion. The returned slice must not be mutated.
func (v Value) ReferenceUnion() []Reference {
	return v.refs
}

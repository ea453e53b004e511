package kernel

// BlockSize is the fixed capacity of the batch accumulators. Reductions are
// flushed in blocks of this size so the compiler can vectorize the inner
// loops over a predictable trip count.
const BlockSize = 1024

// Sum reduces a clean slice. Input must be pre-filtered: no NaN.
func Sum(xs []float64) float64 {
	var s float64
	for _, x := range xs {
		s += x
	}
	return s
}

// Min returns the smallest element of a clean, non-empty slice.
func Min(xs []float64) float64 {
	m := xs[0]
	for _, x := range xs[1:] {
		if x < m {
			m = x
		}
	}
	return m
}

// Max returns the largest element of a clean, non-empty slice.
func Max(xs []float64) float64 {
	m := xs[0]
	for _, x := range xs[1:] {
		if x > m {
			m = x
		}
	}
	return m
}

// CountNonNaN counts the entries that are not NaN. NaN here is a private
// in-buffer sentinel meaning "not countable", placed by the caller; it is
// never a spreadsheet value.
func CountNonNaN(xs []float64) int {
	n := 0
	for _, x := range xs {
		if x == x { // not NaN
			n++
		}
	}
	return n
}

// CmpOp is a comparison operator of a numeric predicate.
type CmpOp uint8

const (
	OpEq CmpOp = iota
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
)

// NumericPredicate is the fast-path descriptor of a criteria predicate that
// compares against a single number. It is produced by the criteria package
// and consumed by the *If kernels.
type NumericPredicate struct {
	Op      CmpOp
	Operand float64
}

// Match evaluates the predicate for one value.
func (p NumericPredicate) Match(x float64) bool {
	switch p.Op {
	case OpEq:
		return x == p.Operand
	case OpNe:
		return x != p.Operand
	case OpLt:
		return x < p.Operand
	case OpLe:
		return x <= p.Operand
	case OpGt:
		return x > p.Operand
	case OpGe:
		return x >= p.Operand
	default:
		return false
	}
}

// CountIf counts the elements satisfying the predicate.
func CountIf(xs []float64, p NumericPredicate) int {
	n := 0
	for _, x := range xs {
		if p.Match(x) {
			n++
		}
	}
	return n
}

// SumIf sums values[i] over the positions where crit[i] satisfies the
// predicate. The two slices are parallel and equal-length.
func SumIf(values, crit []float64, p NumericPredicate) float64 {
	var s float64
	for i, c := range crit {
		if p.Match(c) {
			s += values[i]
		}
	}
	return s
}

// SumCountIf is SumIf that also reports how many positions matched.
func SumCountIf(values, crit []float64, p NumericPredicate) (float64, int) {
	var s float64
	n := 0
	for i, c := range crit {
		if p.Match(c) {
			s += values[i]
			n++
		}
	}
	return s, n
}

// SumProduct multiplies parallel clean slices elementwise and sums the
// products.
func SumProduct(a, b []float64) float64 {
	var s float64
	for i, x := range a {
		s += x * b[i]
	}
	return s
}

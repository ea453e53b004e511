package types

// Array is a dense row-major 2D container of values. It is owned by the
// caller; functions in this module never mutate an Array they receive.
type Array struct {
	Rows   int
	Cols   int
	Values []Value // row-major, len == Rows*Cols
}

// NewArrayOf builds a Rows x Cols array over the given row-major values.
// The slice is retained, not copied.
func NewArrayOf(rows, cols int, values []Value) *Array {
	return &Array{Rows: rows, Cols: cols, Values: values}
}

// Len returns the flat element count.
func (a *Array) Len() int {
	return a.Rows * a.Cols
}

// At returns the element at (row, col).
func (a *Array) At(row, col int) Value {
	return a.Values[row*a.Cols+col]
}

// Flat returns the element at the given row-major flat index.
func (a *Array) Flat(i int) Value {
	return a.Values[i]
}

// TopLeft returns the (0,0) element, the implicit-intersection value used
// when an array stands in for a single candidate.
func (a *Array) TopLeft() Value {
	if len(a.Values) == 0 {
		return NewBlank()
	}
	return a.Values[0]
}

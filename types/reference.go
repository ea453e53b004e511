package types

// CellAddr is a 0-based (row, column) coordinate on a sheet.
type CellAddr struct {
	Row int
	Col int
}

// Reference is a rectangular cell range on a single sheet. Functions in this
// module always consume references in normalized form (Start <= End
// component-wise); Normalize produces that form.
type Reference struct {
	Sheet int
	Start CellAddr
	End   CellAddr
}

// Normalize returns the reference with Start <= End component-wise.
func (r Reference) Normalize() Reference {
	if r.Start.Row > r.End.Row {
		r.Start.Row, r.End.Row = r.End.Row, r.Start.Row
	}
	if r.Start.Col > r.End.Col {
		r.Start.Col, r.End.Col = r.End.Col, r.Start.Col
	}
	return r
}

// RowCount returns the number of rows spanned.
func (r Reference) RowCount() int {
	return r.End.Row - r.Start.Row + 1
}

// ColCount returns the number of columns spanned.
func (r Reference) ColCount() int {
	return r.End.Col - r.Start.Col + 1
}

// Size returns the rectangle area in cells.
func (r Reference) Size() int64 {
	return int64(r.RowCount()) * int64(r.ColCount())
}

// Contains reports whether the address lies inside the rectangle.
func (r Reference) Contains(a CellAddr) bool {
	return a.Row >= r.Start.Row && a.Row <= r.End.Row &&
		a.Col >= r.Start.Col && a.Col <= r.End.Col
}

// AddrAt returns the absolute address of the cell at the given 0-based
// (row, col) offset inside the rectangle.
func (r Reference) AddrAt(row, col int) CellAddr {
	return CellAddr{Row: r.Start.Row + row, Col: r.Start.Col + col}
}

// FlatIndex returns the row-major positional index of an absolute address
// inside the rectangle. The address must satisfy Contains.
func (r Reference) FlatIndex(a CellAddr) int {
	return (a.Row-r.Start.Row)*r.ColCount() + (a.Col - r.Start.Col)
}

// CellKey identifies one cell across sheets. It is the identity used to
// deduplicate cells that appear in more than one rectangle of a union.
type CellKey struct {
	Sheet int
	Addr  CellAddr
}

// Key returns the identity of an absolute address on this reference's sheet.
func (r Reference) Key(a CellAddr) CellKey {
	return CellKey{Sheet: r.Sheet, Addr: a}
}

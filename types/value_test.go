package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValueZeroIsBlank(t *testing.T) {
	var v Value
	assert.Equal(t, KindBlank, v.Kind())
	assert.True(t, v.IsBlank())
	assert.False(t, v.IsError())
}

func TestValueConstructors(t *testing.T) {
	assert.Equal(t, 2.5, NewNumber(2.5).Number())
	assert.True(t, NewBool(true).Bool())
	assert.Equal(t, "hi", NewText("hi").Text())
	assert.Equal(t, ErrRef, NewError(ErrRef).ErrKind())
	assert.True(t, NewError(ErrRef).IsError())
}

func TestErrorKindDisplay(t *testing.T) {
	tests := []struct {
		kind     ErrorKind
		expected string
	}{
		{ErrNull, "#NULL!"},
		{ErrDiv0, "#DIV/0!"},
		{ErrValue, "#VALUE!"},
		{ErrRef, "#REF!"},
		{ErrName, "#NAME?"},
		{ErrNum, "#NUM!"},
		{ErrNA, "#N/A"},
		{ErrSpill, "#SPILL!"},
		{ErrCalc, "#CALC!"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.kind.String())
	}
}

func TestReferenceGeometry(t *testing.T) {
	r := Reference{Sheet: 1, Start: CellAddr{Row: 2, Col: 3}, End: CellAddr{Row: 5, Col: 4}}
	assert.Equal(t, 4, r.RowCount())
	assert.Equal(t, 2, r.ColCount())
	assert.Equal(t, int64(8), r.Size())
	assert.True(t, r.Contains(CellAddr{Row: 3, Col: 4}))
	assert.False(t, r.Contains(CellAddr{Row: 3, Col: 5}))
	assert.Equal(t, CellAddr{Row: 4, Col: 4}, r.AddrAt(2, 1))
	assert.Equal(t, 5, r.FlatIndex(CellAddr{Row: 4, Col: 4}))
}

func TestReferenceNormalize(t *testing.T) {
	r := Reference{Start: CellAddr{Row: 5, Col: 4}, End: CellAddr{Row: 2, Col: 3}}.Normalize()
	assert.Equal(t, CellAddr{Row: 2, Col: 3}, r.Start)
	assert.Equal(t, CellAddr{Row: 5, Col: 4}, r.End)

	// ReferenceArg normalizes on construction too.
	arg := ReferenceArg(Reference{Start: CellAddr{Row: 9}, End: CellAddr{Row: 1}})
	assert.Equal(t, 1, arg.Reference().Start.Row)
}

func TestArrayAccess(t *testing.T) {
	a := NewArrayOf(2, 3, []Value{
		NewNumber(1), NewNumber(2), NewNumber(3),
		NewNumber(4), NewNumber(5), NewNumber(6),
	})
	assert.Equal(t, 6, a.Len())
	assert.Equal(t, 5.0, a.At(1, 1).Number())
	assert.Equal(t, 3.0, a.Flat(2).Number())
	assert.Equal(t, 1.0, a.TopLeft().Number())

	empty := NewArrayOf(0, 0, nil)
	assert.True(t, empty.TopLeft().IsBlank())
}

package functions

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridkit/cellcalc/types"
)

func TestSumScalarCoercion(t *testing.T) {
	ctx := newMockContext()

	tests := []struct {
		name     string
		args     []types.ArgValue
		expected float64
	}{
		{
			name: "numbers",
			args: []types.ArgValue{
				types.ScalarArg(types.NewNumber(1)),
				types.ScalarArg(types.NewNumber(2.5)),
			},
			expected: 3.5,
		},
		{
			name: "numeric text coerces",
			args: []types.ArgValue{
				types.ScalarArg(types.NewText("3")),
				types.ScalarArg(types.NewNumber(2)),
			},
			expected: 5,
		},
		{
			name: "logicals coerce",
			args: []types.ArgValue{
				types.ScalarArg(types.NewBool(true)),
				types.ScalarArg(types.NewBool(false)),
				types.ScalarArg(types.NewNumber(4)),
			},
			expected: 5,
		},
		{
			name: "blank scalar contributes nothing",
			args: []types.ArgValue{
				types.ScalarArg(types.NewBlank()),
				types.ScalarArg(types.NewNumber(7)),
			},
			expected: 7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := mustCall(t, ctx, "sum", tt.args...)
			require.Equal(t, types.KindNumber, result.Kind())
			assert.Equal(t, tt.expected, result.Number())
		})
	}
}

func TestSumScalarTextError(t *testing.T) {
	ctx := newMockContext()
	result := mustCall(t, ctx, "sum",
		types.ScalarArg(types.NewText("abc")),
		types.ScalarArg(types.NewNumber(1)))
	require.True(t, result.IsError())
	assert.Equal(t, types.ErrValue, result.ErrKind())
}

func TestSumRangeSkipRules(t *testing.T) {
	ctx := newMockContext()
	// Same cells that would error as scalars are skipped inside a range.
	ctx.setColumn(0, 0, 0,
		types.NewNumber(1),
		types.NewText("abc"),
		types.NewBool(true),
		types.NewBlank())

	result := mustCall(t, ctx, "sum", types.ReferenceArg(colRef(0, 0, 0, 10)))
	require.Equal(t, types.KindNumber, result.Kind())
	assert.Equal(t, 1.0, result.Number())
	assert.NotEmpty(t, ctx.recorded)
}

func TestSumArrayMatchesRange(t *testing.T) {
	ctx := newMockContext()
	nums := []float64{3, 1, 4, 1, 5, 9, 2, 6}
	for i, n := range nums {
		ctx.set(0, i, 0, types.NewNumber(n))
	}

	viaRange := mustCall(t, ctx, "sum", types.ReferenceArg(colRef(0, 0, 0, len(nums))))
	viaArray := mustCall(t, ctx, "sum", types.ScalarArg(numArray(nums...)))
	assert.Equal(t, viaRange.Number(), viaArray.Number())
}

func TestAverageCountIdentity(t *testing.T) {
	ctx := newMockContext()
	ctx.setColumn(0, 0, 0,
		types.NewNumber(2),
		types.NewNumber(4),
		types.NewText("skip"),
		types.NewNumber(9))
	ref := types.ReferenceArg(colRef(0, 0, 0, 6))

	sum := mustCall(t, ctx, "sum", ref)
	avg := mustCall(t, ctx, "average", ref)
	count := mustCall(t, ctx, "count", ref)

	assert.Equal(t, 3.0, count.Number())
	assert.InDelta(t, sum.Number(), avg.Number()*count.Number(), 1e-12)
}

func TestAverageEmptyIsDiv0(t *testing.T) {
	ctx := newMockContext()
	result := mustCall(t, ctx, "average", types.ReferenceArg(colRef(0, 0, 0, 5)))
	require.True(t, result.IsError())
	assert.Equal(t, types.ErrDiv0, result.ErrKind())
}

func TestSumErrorInRangePropagates(t *testing.T) {
	ctx := newMockContext()
	ctx.setColumn(0, 0, 0,
		types.NewNumber(1),
		types.NewError(types.ErrRef),
		types.NewNumber(2))

	result := mustCall(t, ctx, "sum", types.ReferenceArg(colRef(0, 0, 0, 3)))
	require.True(t, result.IsError())
	assert.Equal(t, types.ErrRef, result.ErrKind())
}

func TestSumNaNPoison(t *testing.T) {
	ctx := newMockContext()
	ctx.setColumn(0, 0, 0,
		types.NewNumber(1),
		types.NewNumber(math.NaN()),
		types.NewNumber(2))

	for _, name := range []string{"sum", "average", "min", "max"} {
		t.Run(name, func(t *testing.T) {
			result := mustCall(t, ctx, name, types.ReferenceArg(colRef(0, 0, 0, 3)))
			require.Equal(t, types.KindNumber, result.Kind())
			assert.True(t, math.IsNaN(result.Number()))
		})
	}
}

func TestMinMax(t *testing.T) {
	ctx := newMockContext()
	ctx.setColumn(0, 0, 0,
		types.NewNumber(-3),
		types.NewNumber(7),
		types.NewText("ignored"),
		types.NewNumber(0))
	ref := types.ReferenceArg(colRef(0, 0, 0, 5))

	assert.Equal(t, -3.0, mustCall(t, ctx, "min", ref).Number())
	assert.Equal(t, 7.0, mustCall(t, ctx, "max", ref).Number())
}

func TestMinMaxNoNumbersIsZero(t *testing.T) {
	ctx := newMockContext()
	ctx.set(0, 0, 0, types.NewText("only text"))
	ref := types.ReferenceArg(colRef(0, 0, 0, 3))

	assert.Equal(t, 0.0, mustCall(t, ctx, "min", ref).Number())
	assert.Equal(t, 0.0, mustCall(t, ctx, "max", ref).Number())
}

func TestCountFamilies(t *testing.T) {
	ctx := newMockContext()
	ctx.setColumn(0, 0, 0,
		types.NewNumber(1),
		types.NewText("x"),
		types.NewBool(true),
		types.NewError(types.ErrDiv0),
		types.NewBlank(),
		types.NewText(""))
	ref := types.ReferenceArg(colRef(0, 0, 0, 10))

	// COUNT classifies by type tag and never propagates range errors.
	assert.Equal(t, 1.0, mustCall(t, ctx, "count", ref).Number())
	// COUNTA counts everything stored non-blank, errors and empty text too.
	assert.Equal(t, 5.0, mustCall(t, ctx, "counta", ref).Number())
	// COUNTBLANK: 10 cells minus the 4 stored non-blank-like values. The
	// stored blank and the empty text both count as blank.
	assert.Equal(t, 6.0, mustCall(t, ctx, "countblank", ref).Number())
}

func TestCountNaNIsCountable(t *testing.T) {
	ctx := newMockContext()
	ctx.setColumn(0, 0, 0,
		types.NewNumber(math.NaN()),
		types.NewNumber(1))

	result := mustCall(t, ctx, "count", types.ReferenceArg(colRef(0, 0, 0, 2)))
	assert.Equal(t, 2.0, result.Number())
}

func TestUnionDeduplicatesOverlap(t *testing.T) {
	ctx := newMockContext()
	for i := 0; i < 6; i++ {
		ctx.set(0, i, 0, types.NewNumber(1))
	}
	// Rows 0-3 and 2-5 overlap on rows 2-3.
	refs := []types.Reference{colRef(0, 0, 0, 4), colRef(0, 2, 0, 4)}
	arg := types.ReferenceUnionArg(refs)

	assert.Equal(t, 6.0, mustCall(t, ctx, "sum", arg).Number())
	assert.Equal(t, 6.0, mustCall(t, ctx, "count", arg).Number())
	assert.Equal(t, 0.0, mustCall(t, ctx, "countblank", arg).Number())
}

func TestCountBlankUnionUsesGeometry(t *testing.T) {
	ctx := newMockContext()
	ctx.set(0, 0, 0, types.NewNumber(1))
	// Two overlapping empty-ish 4x1 rectangles cover 6 distinct cells, one
	// of which holds a number.
	refs := []types.Reference{colRef(0, 0, 0, 4), colRef(0, 2, 0, 4)}

	result := mustCall(t, ctx, "countblank", types.ReferenceUnionArg(refs))
	assert.Equal(t, 5.0, result.Number())
}

func TestSumArrayUsesRangeRules(t *testing.T) {
	ctx := newMockContext()
	arr := types.NewArrayOf(4, 1, []types.Value{
		types.NewNumber(1),
		types.NewText("abc"),
		types.NewBool(true),
		types.NewNumber(2),
	})

	// Inside an array the text and logical are skipped, not coerced.
	result := mustCall(t, ctx, "sum", types.ScalarArg(types.NewArray(arr)))
	assert.Equal(t, 3.0, result.Number())
}

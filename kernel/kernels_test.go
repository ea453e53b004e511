package kernel

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSumMinMax(t *testing.T) {
	xs := []float64{3, -1, 4, 1.5, -9}
	assert.Equal(t, -1.5, Sum(xs))
	assert.Equal(t, -9.0, Min(xs))
	assert.Equal(t, 4.0, Max(xs))
}

func TestCountNonNaN(t *testing.T) {
	nan := math.NaN()
	assert.Equal(t, 3, CountNonNaN([]float64{1, nan, 2, nan, 3}))
	assert.Equal(t, 0, CountNonNaN([]float64{nan, nan}))
	assert.Equal(t, 0, CountNonNaN(nil))
}

func TestNumericPredicate(t *testing.T) {
	tests := []struct {
		op       CmpOp
		operand  float64
		x        float64
		expected bool
	}{
		{OpEq, 2, 2, true},
		{OpEq, 2, 3, false},
		{OpNe, 2, 3, true},
		{OpLt, 2, 1, true},
		{OpLt, 2, 2, false},
		{OpLe, 2, 2, true},
		{OpGt, 2, 3, true},
		{OpGe, 2, 2, true},
		{OpGe, 2, 1.9, false},
	}
	for _, tt := range tests {
		p := NumericPredicate{Op: tt.op, Operand: tt.operand}
		assert.Equal(t, tt.expected, p.Match(tt.x), "op=%d operand=%v x=%v", tt.op, tt.operand, tt.x)
	}
}

func TestConditionalKernels(t *testing.T) {
	crit := []float64{1, 5, 3, 8, 2}
	values := []float64{10, 20, 30, 40, 50}
	p := NumericPredicate{Op: OpGt, Operand: 2}

	assert.Equal(t, 3, CountIf(crit, p))
	assert.Equal(t, 90.0, SumIf(values, crit, p))

	s, n := SumCountIf(values, crit, p)
	assert.Equal(t, 90.0, s)
	assert.Equal(t, 3, n)
}

func TestSumProduct(t *testing.T) {
	a := []float64{1, 2, 3}
	b := []float64{4, 5, 6}
	assert.Equal(t, 32.0, SumProduct(a, b))
	assert.Equal(t, 0.0, SumProduct(nil, nil))
}

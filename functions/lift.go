package functions

import (
	"github.com/gridkit/cellcalc/types"
)

// realizeOperand turns an argument into a scalar or array value for
// elementwise lifting. Single-cell references dereference; larger
// references materialize into an array (implicit blanks included), which
// is capped because elementwise ops cannot stream.
func realizeOperand(ctx FunctionContext, arg types.ArgValue) (types.Value, types.ErrorKind) {
	switch arg.Kind() {
	case types.ArgScalar:
		return arg.Scalar(), types.ErrNone
	case types.ArgReference:
		ref := arg.Reference()
		ctx.RecordReference(ref)
		if ref.Size() == 1 {
			return ctx.CellValue(ref.Sheet, ref.Start), types.ErrNone
		}
		if ref.Size() > maxLiftCells {
			return types.Value{}, types.ErrNum
		}
		rows, cols := ref.RowCount(), ref.ColCount()
		vals := make([]types.Value, rows*cols) // zero Value is blank
		ctx.EachStoredCell(ref, func(addr types.CellAddr, v types.Value) bool {
			vals[ref.FlatIndex(addr)] = v
			return true
		})
		return types.NewArray(types.NewArrayOf(rows, cols, vals)), types.ErrNone
	default:
		return types.Value{}, types.ErrValue
	}
}

// scalarValue realizes an argument that must be a single value.
func scalarValue(ctx FunctionContext, arg types.ArgValue) (types.Value, types.ErrorKind) {
	v, ek := realizeOperand(ctx, arg)
	if ek != types.ErrNone {
		return types.Value{}, ek
	}
	if v.Kind() == types.KindArray {
		return types.Value{}, types.ErrValue
	}
	return v, types.ErrNone
}

// applyNumeric coerces one element and applies f. Element-level errors
// (bad coercion or errors produced by f) surface as error values.
func applyNumeric(ctx FunctionContext, v types.Value, f func(float64) types.Value) types.Value {
	x, ek := CoerceToNumber(ctx, v)
	if ek != types.ErrNone {
		return types.NewError(ek)
	}
	return f(x)
}

// lift1 applies a unary numeric function elementwise, broadcasting over an
// array operand. The first element-level error aborts the whole lift.
func lift1(ctx FunctionContext, arg types.ArgValue, f func(float64) types.Value) types.Value {
	v, ek := realizeOperand(ctx, arg)
	if ek != types.ErrNone {
		return types.NewError(ek)
	}
	if v.Kind() != types.KindArray {
		return applyNumeric(ctx, v, f)
	}
	arr := v.Array()
	out := make([]types.Value, arr.Len())
	for i := range out {
		r := applyNumeric(ctx, arr.Flat(i), f)
		if r.IsError() {
			return r
		}
		out[i] = r
	}
	return types.NewArray(types.NewArrayOf(arr.Rows, arr.Cols, out))
}

// lift2 applies a binary numeric function elementwise. Operands pair by
// position; a length-1 operand broadcasts against the other's shape, and
// mismatched shapes are #VALUE!.
func lift2(ctx FunctionContext, a, b types.ArgValue, f func(x, y float64) types.Value) types.Value {
	av, ek := realizeOperand(ctx, a)
	if ek != types.ErrNone {
		return types.NewError(ek)
	}
	bv, ek := realizeOperand(ctx, b)
	if ek != types.ErrNone {
		return types.NewError(ek)
	}

	rowsA, colsA := operandShape(av)
	rowsB, colsB := operandShape(bv)
	rows, ok1 := broadcastDim(rowsA, rowsB)
	cols, ok2 := broadcastDim(colsA, colsB)
	if !ok1 || !ok2 {
		return types.NewError(types.ErrValue)
	}

	if rows == 1 && cols == 1 {
		x, ek := CoerceToNumber(ctx, operandAt(av, 0, 0))
		if ek != types.ErrNone {
			return types.NewError(ek)
		}
		y, ek := CoerceToNumber(ctx, operandAt(bv, 0, 0))
		if ek != types.ErrNone {
			return types.NewError(ek)
		}
		return f(x, y)
	}

	out := make([]types.Value, rows*cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			x, ek := CoerceToNumber(ctx, operandAt(av, r, c))
			if ek != types.ErrNone {
				return types.NewError(ek)
			}
			y, ek := CoerceToNumber(ctx, operandAt(bv, r, c))
			if ek != types.ErrNone {
				return types.NewError(ek)
			}
			res := f(x, y)
			if res.IsError() {
				return res
			}
			out[r*cols+c] = res
		}
	}
	return types.NewArray(types.NewArrayOf(rows, cols, out))
}

func operandShape(v types.Value) (int, int) {
	if v.Kind() == types.KindArray {
		return v.Array().Rows, v.Array().Cols
	}
	return 1, 1
}

// broadcastDim pairs two dimension lengths: equal lengths pair directly
// and a length of 1 stretches to the other.
func broadcastDim(a, b int) (int, bool) {
	switch {
	case a == b:
		return a, true
	case a == 1:
		return b, true
	case b == 1:
		return a, true
	default:
		return 0, false
	}
}

// operandAt indexes with broadcasting: scalar operands answer every
// position, length-1 dimensions clamp to 0.
func operandAt(v types.Value, r, c int) types.Value {
	if v.Kind() != types.KindArray {
		return v
	}
	arr := v.Array()
	if arr.Rows == 1 {
		r = 0
	}
	if arr.Cols == 1 {
		c = 0
	}
	return arr.At(r, c)
}

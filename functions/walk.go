package functions

import (
	"github.com/gridkit/cellcalc/types"
)

// Resource caps for structures whose size is controlled by the input. Go
// has no fallible allocation, so exceeding a cap surfaces as #NUM! instead
// of exhausting the process.
const (
	// maxTrackedCells bounds the dedup and mismatch sets.
	maxTrackedCells = 1 << 22
	// maxCriteriaPairs bounds the criteria-pair count of the *IFS family.
	maxCriteriaPairs = 127
	// maxLiftCells bounds reference materialization for elementwise ops.
	maxLiftCells = 1 << 20
	// maxUnionRects bounds the rectangle count of a reference union.
	maxUnionRects = 1 << 20
)

// numberVisitor receives one clean numeric value. Returning false stops the
// walk (the NaN-poison path).
type numberVisitor func(x float64) bool

// walkRefNumbers streams the stored numeric cells of one reference with the
// range skip rules: logicals and text are ignored, an error value aborts
// the walk with its kind. seen, when non-nil, deduplicates cells across the
// rectangles of a union.
func walkRefNumbers(ctx FunctionContext, ref types.Reference, seen map[types.CellKey]struct{}, visit numberVisitor) types.ErrorKind {
	ctx.RecordReference(ref)
	ek := types.ErrNone
	ctx.EachStoredCell(ref, func(addr types.CellAddr, v types.Value) bool {
		if seen != nil {
			k := ref.Key(addr)
			if _, dup := seen[k]; dup {
				return true
			}
			if len(seen) >= maxTrackedCells {
				ek = types.ErrNum
				return false
			}
			seen[k] = struct{}{}
		}
		switch v.Kind() {
		case types.KindNumber:
			return visit(v.Number())
		case types.KindError:
			ek = v.ErrKind()
			return false
		}
		return true
	})
	return ek
}

// walkArrayNumbers walks an array literal with the range skip rules. Arrays
// behave like ranges for type skipping, even when they arrive inside a
// scalar argument.
func walkArrayNumbers(arr *types.Array, visit numberVisitor) types.ErrorKind {
	for i, n := 0, arr.Len(); i < n; i++ {
		v := arr.Flat(i)
		switch v.Kind() {
		case types.KindNumber:
			if !visit(v.Number()) {
				return types.ErrNone
			}
		case types.KindError:
			return v.ErrKind()
		}
	}
	return types.ErrNone
}

// feedNumbers streams the numeric content of one argument into visit,
// applying the scalar/range asymmetry: scalars coerce (blank contributes
// nothing), references and arrays skip logicals and text.
func feedNumbers(ctx FunctionContext, arg types.ArgValue, visit numberVisitor) types.ErrorKind {
	switch arg.Kind() {
	case types.ArgScalar:
		v := arg.Scalar()
		if v.Kind() == types.KindArray {
			return walkArrayNumbers(v.Array(), visit)
		}
		if v.IsBlank() {
			return types.ErrNone
		}
		x, ek := CoerceToNumber(ctx, v)
		if ek != types.ErrNone {
			return ek
		}
		visit(x)
		return types.ErrNone
	case types.ArgReference:
		return walkRefNumbers(ctx, arg.Reference(), nil, visit)
	case types.ArgReferenceUnion:
		refs := arg.References()
		if len(refs) > maxUnionRects {
			return types.ErrNum
		}
		seen := make(map[types.CellKey]struct{})
		for _, ref := range refs {
			if ek := walkRefNumbers(ctx, ref, seen, visit); ek != types.ErrNone {
				return ek
			}
		}
		return types.ErrNone
	default:
		return types.ErrValue
	}
}

// walkStoredValues visits every stored cell of an argument's ranges (or
// every element of its arrays) without numeric filtering. Used by the
// counting family, which classifies by type tag instead of coercing.
// Union rectangles are deduplicated. Scalar non-array values are visited
// as a single element.
func walkStoredValues(ctx FunctionContext, arg types.ArgValue, visit func(v types.Value) bool) types.ErrorKind {
	switch arg.Kind() {
	case types.ArgScalar:
		v := arg.Scalar()
		if v.Kind() == types.KindArray {
			arr := v.Array()
			for i, n := 0, arr.Len(); i < n; i++ {
				if !visit(arr.Flat(i)) {
					return types.ErrNone
				}
			}
			return types.ErrNone
		}
		visit(v)
		return types.ErrNone
	case types.ArgReference:
		ref := arg.Reference()
		ctx.RecordReference(ref)
		ctx.EachStoredCell(ref, func(addr types.CellAddr, v types.Value) bool {
			return visit(v)
		})
		return types.ErrNone
	case types.ArgReferenceUnion:
		refs := arg.References()
		if len(refs) > maxUnionRects {
			return types.ErrNum
		}
		seen := make(map[types.CellKey]struct{})
		ek := types.ErrNone
		for _, ref := range refs {
			ctx.RecordReference(ref)
			stopped := false
			ctx.EachStoredCell(ref, func(addr types.CellAddr, v types.Value) bool {
				k := ref.Key(addr)
				if _, dup := seen[k]; dup {
					return true
				}
				if len(seen) >= maxTrackedCells {
					ek = types.ErrNum
					stopped = true
					return false
				}
				seen[k] = struct{}{}
				if !visit(v) {
					stopped = true
					return false
				}
				return true
			})
			if ek != types.ErrNone || stopped {
				return ek
			}
		}
		return types.ErrNone
	default:
		return types.ErrValue
	}
}

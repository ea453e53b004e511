package functions

import (
	"math"

	"github.com/gridkit/cellcalc/kernel"
	"github.com/gridkit/cellcalc/types"
)

func aggregationSpecs() []FunctionSpec {
	return []FunctionSpec{
		{
			Name: "sum", Category: CategoryAggregation,
			Description: "Sum of the numeric values in the arguments",
			MinArgs:     1, MaxArgs: -1, ThreadSafe: true, AcceptsArrays: true,
			ArgTypes: []ArgType{ArgTypeRange},
			Fn:       sumEntry,
		},
		{
			Name: "average", Category: CategoryAggregation,
			Description: "Arithmetic mean of the numeric values in the arguments",
			MinArgs:     1, MaxArgs: -1, ThreadSafe: true, AcceptsArrays: true,
			ArgTypes: []ArgType{ArgTypeRange},
			Fn:       averageEntry,
		},
		{
			Name: "min", Category: CategoryAggregation,
			Description: "Smallest numeric value in the arguments",
			MinArgs:     1, MaxArgs: -1, ThreadSafe: true, AcceptsArrays: true,
			ArgTypes: []ArgType{ArgTypeRange},
			Fn:       minEntry,
		},
		{
			Name: "max", Category: CategoryAggregation,
			Description: "Largest numeric value in the arguments",
			MinArgs:     1, MaxArgs: -1, ThreadSafe: true, AcceptsArrays: true,
			ArgTypes: []ArgType{ArgTypeRange},
			Fn:       maxEntry,
		},
		{
			Name: "count", Category: CategoryAggregation,
			Description: "Number of numeric values in the arguments",
			MinArgs:     1, MaxArgs: -1, ThreadSafe: true, AcceptsArrays: true,
			ArgTypes: []ArgType{ArgTypeRange},
			Fn:       countEntry,
		},
		{
			Name: "counta", Category: CategoryAggregation,
			Description: "Number of non-blank values in the arguments",
			MinArgs:     1, MaxArgs: -1, ThreadSafe: true, AcceptsArrays: true,
			ArgTypes: []ArgType{ArgTypeRange},
			Fn:       countaEntry,
		},
		{
			Name: "countblank", Category: CategoryAggregation,
			Description: "Number of blank cells in the arguments",
			MinArgs:     1, MaxArgs: -1, ThreadSafe: true, AcceptsArrays: true,
			ArgTypes: []ArgType{ArgTypeRange},
			Fn:       countblankEntry,
		},
	}
}

func sumEntry(ctx FunctionContext, args []types.ArgValue) types.Value {
	var batch kernel.SumBatch
	poisoned := false
	visit := func(x float64) bool {
		if math.IsNaN(x) {
			poisoned = true
			return false
		}
		batch.Add(x)
		return true
	}
	for _, arg := range args {
		if ek := feedNumbers(ctx, arg, visit); ek != types.ErrNone {
			return types.NewError(ek)
		}
		if poisoned {
			return types.NewNumber(math.NaN())
		}
	}
	return types.NewNumber(batch.Total())
}

func averageEntry(ctx FunctionContext, args []types.ArgValue) types.Value {
	var batch kernel.SumCountBatch
	poisoned := false
	visit := func(x float64) bool {
		if math.IsNaN(x) {
			poisoned = true
			return false
		}
		batch.Add(x)
		return true
	}
	for _, arg := range args {
		if ek := feedNumbers(ctx, arg, visit); ek != types.ErrNone {
			return types.NewError(ek)
		}
		if poisoned {
			return types.NewNumber(math.NaN())
		}
	}
	sum, count := batch.Result()
	if count == 0 {
		return types.NewError(types.ErrDiv0)
	}
	return types.NewNumber(sum / float64(count))
}

func minEntry(ctx FunctionContext, args []types.ArgValue) types.Value {
	var batch kernel.MinBatch
	poisoned := false
	visit := func(x float64) bool {
		if math.IsNaN(x) {
			poisoned = true
			return false
		}
		batch.Add(x)
		return true
	}
	for _, arg := range args {
		if ek := feedNumbers(ctx, arg, visit); ek != types.ErrNone {
			return types.NewError(ek)
		}
		if poisoned {
			return types.NewNumber(math.NaN())
		}
	}
	if best, ok := batch.Best(); ok {
		return types.NewNumber(best)
	}
	return types.NewNumber(0)
}

func maxEntry(ctx FunctionContext, args []types.ArgValue) types.Value {
	var batch kernel.MaxBatch
	poisoned := false
	visit := func(x float64) bool {
		if math.IsNaN(x) {
			poisoned = true
			return false
		}
		batch.Add(x)
		return true
	}
	for _, arg := range args {
		if ek := feedNumbers(ctx, arg, visit); ek != types.ErrNone {
			return types.NewError(ek)
		}
		if poisoned {
			return types.NewNumber(math.NaN())
		}
	}
	if best, ok := batch.Best(); ok {
		return types.NewNumber(best)
	}
	return types.NewNumber(0)
}

// countEntry counts by type tag alone: only Number cells count, nothing
// coerces, and error values inside ranges are skipped rather than
// propagated.
func countEntry(ctx FunctionContext, args []types.ArgValue) types.Value {
	var batch kernel.CountBatch
	for _, arg := range args {
		ek := walkStoredValues(ctx, arg, func(v types.Value) bool {
			if v.Kind() == types.KindNumber {
				x := v.Number()
				if math.IsNaN(x) {
					// A NaN Number is still a countable number; keep the
					// NaN sentinel private to the buffer.
					x = 0
				}
				batch.Add(x)
			} else {
				batch.Add(math.NaN())
			}
			return true
		})
		if ek != types.ErrNone {
			return types.NewError(ek)
		}
	}
	return types.NewNumber(float64(batch.Count()))
}

// countaEntry counts every non-blank value, including errors and rich
// values; an explicitly stored blank still counts as blank.
func countaEntry(ctx FunctionContext, args []types.ArgValue) types.Value {
	count := 0
	for _, arg := range args {
		ek := walkStoredValues(ctx, arg, func(v types.Value) bool {
			if !v.IsBlank() {
				count++
			}
			return true
		})
		if ek != types.ErrNone {
			return types.NewError(ek)
		}
	}
	return types.NewNumber(float64(count))
}

// countblankEntry counts blanks arithmetically: a reference's blank count
// is its area minus its stored non-blank cells, so implicit blanks are
// never enumerated. Stored blanks and empty text count as blank.
func countblankEntry(ctx FunctionContext, args []types.ArgValue) types.Value {
	var blanks int64
	for _, arg := range args {
		switch arg.Kind() {
		case types.ArgScalar:
			v := arg.Scalar()
			if v.Kind() == types.KindArray {
				arr := v.Array()
				for i, n := 0, arr.Len(); i < n; i++ {
					if isBlankLike(arr.Flat(i)) {
						blanks++
					}
				}
			} else if isBlankLike(v) {
				blanks++
			}
		case types.ArgReference:
			ref := arg.Reference()
			ctx.RecordReference(ref)
			var nonBlank int64
			ctx.EachStoredCell(ref, func(addr types.CellAddr, v types.Value) bool {
				if !isBlankLike(v) {
					nonBlank++
				}
				return true
			})
			blanks += ref.Size() - nonBlank
		case types.ArgReferenceUnion:
			refs := arg.References()
			if len(refs) > maxUnionRects {
				return types.NewError(types.ErrNum)
			}
			seen := make(map[types.CellKey]struct{})
			var nonBlank int64
			overflow := false
			for _, ref := range refs {
				ctx.RecordReference(ref)
				ctx.EachStoredCell(ref, func(addr types.CellAddr, v types.Value) bool {
					k := ref.Key(addr)
					if _, dup := seen[k]; dup {
						return true
					}
					if len(seen) >= maxTrackedCells {
						overflow = true
						return false
					}
					seen[k] = struct{}{}
					if !isBlankLike(v) {
						nonBlank++
					}
					return true
				})
				if overflow {
					return types.NewError(types.ErrNum)
				}
			}
			blanks += types.UnionSize(refs) - nonBlank
		}
	}
	return types.NewNumber(float64(blanks))
}

func isBlankLike(v types.Value) bool {
	return v.IsBlank() || (v.Kind() == types.KindText && v.Text() == "")
}

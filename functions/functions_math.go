package functions

import (
	"math"

	"github.com/gridkit/cellcalc/types"
)

func mathSpecs() []FunctionSpec {
	return []FunctionSpec{
		{
			Name: "round", Category: CategoryMath,
			Description: "Round half away from zero to a digit count",
			MinArgs:     1, MaxArgs: 2, ThreadSafe: true, AcceptsArrays: true,
			ArgTypes: []ArgType{ArgTypeNumber, ArgTypeNumber},
			Fn:       roundEntry,
		},
		{
			Name: "roundup", Category: CategoryMath,
			Description: "Round away from zero to a digit count",
			MinArgs:     2, MaxArgs: 2, ThreadSafe: true, AcceptsArrays: true,
			ArgTypes: []ArgType{ArgTypeNumber, ArgTypeNumber},
			Fn:       roundupEntry,
		},
		{
			Name: "rounddown", Category: CategoryMath,
			Description: "Round toward zero to a digit count",
			MinArgs:     2, MaxArgs: 2, ThreadSafe: true, AcceptsArrays: true,
			ArgTypes: []ArgType{ArgTypeNumber, ArgTypeNumber},
			Fn:       rounddownEntry,
		},
		{
			Name: "trunc", Category: CategoryMath,
			Description: "Truncate toward zero to a digit count",
			MinArgs:     1, MaxArgs: 2, ThreadSafe: true, AcceptsArrays: true,
			ArgTypes: []ArgType{ArgTypeNumber, ArgTypeNumber},
			Fn:       truncEntry,
		},
		{
			Name: "int", Category: CategoryMath,
			Description: "Round down to the nearest integer",
			MinArgs:     1, MaxArgs: 1, ThreadSafe: true, AcceptsArrays: true,
			ArgTypes: []ArgType{ArgTypeNumber},
			Fn:       intEntry,
		},
		{
			Name: "abs", Category: CategoryMath,
			Description: "Absolute value",
			MinArgs:     1, MaxArgs: 1, ThreadSafe: true, AcceptsArrays: true,
			ArgTypes: []ArgType{ArgTypeNumber},
			Fn:       absEntry,
		},
		{
			Name: "mod", Category: CategoryMath,
			Description: "Remainder after floored division",
			MinArgs:     2, MaxArgs: 2, ThreadSafe: true, AcceptsArrays: true,
			ArgTypes: []ArgType{ArgTypeNumber, ArgTypeNumber},
			Fn:       modEntry,
		},
		{
			Name: "sign", Category: CategoryMath,
			Description: "Sign of a number as -1, 0 or 1",
			MinArgs:     1, MaxArgs: 1, ThreadSafe: true, AcceptsArrays: true,
			ArgTypes: []ArgType{ArgTypeNumber},
			Fn:       signEntry,
		},
		{
			Name: "rand", Category: CategoryVolatile,
			Description: "Uniform random number in [0, 1)",
			MinArgs:     0, MaxArgs: 0, Volatile: true, ThreadSafe: true,
			Fn: randEntry,
		},
		{
			Name: "randbetween", Category: CategoryVolatile,
			Description: "Uniform random integer between two bounds",
			MinArgs:     2, MaxArgs: 2, Volatile: true, ThreadSafe: true,
			ArgTypes: []ArgType{ArgTypeNumber, ArgTypeNumber},
			Fn:       randbetweenEntry,
		},
	}
}

// roundMode selects how a scaled value collapses to an integer.
type roundMode uint8

const (
	// roundModeDown truncates toward zero.
	roundModeDown roundMode = iota
	// roundModeUp moves away from zero unless already integral.
	roundModeUp
	// roundModeNearest rounds half away from zero.
	roundModeNearest
)

// roundWithMode scales n by 10^|digits| (multiplying for non-negative
// digits, dividing otherwise), collapses with the mode, and rescales.
func roundWithMode(n float64, digits int, mode roundMode) float64 {
	scale := math.Pow(10, math.Abs(float64(digits)))
	x := n * scale
	if digits < 0 {
		x = n / scale
	}
	// Scaling overflowed: n has no representable fraction at that digit
	// count, so it is already rounded.
	if math.IsInf(x, 0) && !math.IsInf(n, 0) {
		return n
	}

	var t float64
	switch mode {
	case roundModeDown:
		t = math.Trunc(x)
	case roundModeUp:
		t = math.Trunc(x)
		if t != x {
			if x > 0 {
				t++
			} else {
				t--
			}
		}
	case roundModeNearest:
		if x >= 0 {
			t = math.Floor(x + 0.5)
		} else {
			t = math.Ceil(x - 0.5)
		}
	}

	if digits < 0 {
		return t * scale
	}
	return t / scale
}

// clampDigits truncates a digit-count operand and clamps it to the decimal
// exponent range of float64, keeping the float to int conversion in range.
func clampDigits(d float64) int {
	t := math.Trunc(d)
	switch {
	case t > 308:
		return 308
	case t < -308:
		return -308
	default:
		return int(t)
	}
}

func roundEntryWith(mode roundMode) EntryFunc {
	return func(ctx FunctionContext, args []types.ArgValue) types.Value {
		digits := types.ScalarArg(types.NewNumber(0))
		if len(args) == 2 {
			digits = args[1]
		}
		return lift2(ctx, args[0], digits, func(n, d float64) types.Value {
			if math.IsNaN(d) {
				return types.NewNumber(math.NaN())
			}
			return types.NewNumber(roundWithMode(n, clampDigits(d), mode))
		})
	}
}

func roundEntry(ctx FunctionContext, args []types.ArgValue) types.Value {
	return roundEntryWith(roundModeNearest)(ctx, args)
}

func roundupEntry(ctx FunctionContext, args []types.ArgValue) types.Value {
	return roundEntryWith(roundModeUp)(ctx, args)
}

func rounddownEntry(ctx FunctionContext, args []types.ArgValue) types.Value {
	return roundEntryWith(roundModeDown)(ctx, args)
}

func truncEntry(ctx FunctionContext, args []types.ArgValue) types.Value {
	return roundEntryWith(roundModeDown)(ctx, args)
}

func intEntry(ctx FunctionContext, args []types.ArgValue) types.Value {
	return lift1(ctx, args[0], func(n float64) types.Value {
		return types.NewNumber(math.Floor(n))
	})
}

func absEntry(ctx FunctionContext, args []types.ArgValue) types.Value {
	return lift1(ctx, args[0], func(n float64) types.Value {
		return types.NewNumber(math.Abs(n))
	})
}

func modEntry(ctx FunctionContext, args []types.ArgValue) types.Value {
	return lift2(ctx, args[0], args[1], func(n, d float64) types.Value {
		if d == 0 {
			return types.NewError(types.ErrDiv0)
		}
		// Floored division: the result carries the divisor's sign.
		return types.NewNumber(n - d*math.Floor(n/d))
	})
}

func signEntry(ctx FunctionContext, args []types.ArgValue) types.Value {
	return lift1(ctx, args[0], func(n float64) types.Value {
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return types.NewError(types.ErrNum)
		}
		switch {
		case n > 0:
			return types.NewNumber(1)
		case n < 0:
			return types.NewNumber(-1)
		default:
			return types.NewNumber(0)
		}
	})
}

func randEntry(ctx FunctionContext, args []types.ArgValue) types.Value {
	return types.NewNumber(ctx.VolatileRand())
}

func randbetweenEntry(ctx FunctionContext, args []types.ArgValue) types.Value {
	lowV, ek := scalarValue(ctx, args[0])
	if ek != types.ErrNone {
		return types.NewError(ek)
	}
	highV, ek := scalarValue(ctx, args[1])
	if ek != types.ErrNone {
		return types.NewError(ek)
	}
	low, ek := CoerceToInt(ctx, lowV)
	if ek != types.ErrNone {
		return types.NewError(ek)
	}
	high, ek := CoerceToInt(ctx, highV)
	if ek != types.ErrNone {
		return types.NewError(ek)
	}
	if low > high {
		return types.NewError(types.ErrNum)
	}
	span := uint64(high) - uint64(low) // exact unsigned difference
	if span == math.MaxUint64 {
		return types.NewError(types.ErrNum)
	}
	return types.NewNumber(float64(low + int64(ctx.VolatileRandBelow(span+1))))
}

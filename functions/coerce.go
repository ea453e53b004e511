package functions

import (
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cast"

	"github.com/gridkit/cellcalc/types"
)

// CoerceToNumber applies the scalar coercion rules: numbers pass through,
// blanks are 0, logicals are 0/1, text must parse as a number in the
// context's locale, error values propagate their own kind, and everything
// else (entities, records, lambdas, spills, references) is #VALUE!.
func CoerceToNumber(ctx FunctionContext, v types.Value) (float64, types.ErrorKind) {
	switch v.Kind() {
	case types.KindNumber:
		return v.Number(), types.ErrNone
	case types.KindBlank:
		return 0, types.ErrNone
	case types.KindBool:
		if v.Bool() {
			return 1, types.ErrNone
		}
		return 0, types.ErrNone
	case types.KindText:
		n, ok := parseNumberText(v.Text(), ctx.LocaleConfig())
		if !ok {
			return 0, types.ErrValue
		}
		return n, types.ErrNone
	case types.KindError:
		return 0, v.ErrKind()
	default:
		return 0, types.ErrValue
	}
}

// CoerceToInt coerces to a number and truncates toward zero. Non-finite
// values and values outside the int64 range are #NUM!.
func CoerceToInt(ctx FunctionContext, v types.Value) (int64, types.ErrorKind) {
	n, ek := CoerceToNumber(ctx, v)
	if ek != types.ErrNone {
		return 0, ek
	}
	t := math.Trunc(n)
	if math.IsNaN(t) || t < math.MinInt64 || t >= math.MaxInt64 {
		return 0, types.ErrNum
	}
	return int64(t), types.ErrNone
}

func parseNumberText(s string, loc types.LocaleConfig) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if loc.DecimalSeparator != 0 && loc.DecimalSeparator != '.' {
		s = strings.ReplaceAll(s, string(loc.DecimalSeparator), ".")
	}
	n, err := strconv.ParseFloat(s, 64)
	return n, err == nil
}

// ValueFromAny converts a host literal into a Value. Used by the expr
// bridge and by test harnesses; types.Value passes through unchanged.
func ValueFromAny(x interface{}) types.Value {
	switch v := x.(type) {
	case nil:
		return types.NewBlank()
	case types.Value:
		return v
	case *types.Array:
		return types.NewArray(v)
	case bool:
		return types.NewBool(v)
	case string:
		return types.NewText(v)
	case float64:
		return types.NewNumber(v)
	default:
		if n, err := cast.ToFloat64E(x); err == nil {
			return types.NewNumber(n)
		}
		return types.NewError(types.ErrValue)
	}
}

// valueToAny converts a scalar Value into the plain Go representation the
// expr runtime works with. Arrays flatten to []interface{} rows; rich
// values surface as their error display string.
func valueToAny(v types.Value) interface{} {
	switch v.Kind() {
	case types.KindBlank:
		return nil
	case types.KindNumber:
		return v.Number()
	case types.KindBool:
		return v.Bool()
	case types.KindText:
		return v.Text()
	case types.KindError:
		return v.ErrKind().String()
	case types.KindArray:
		arr := v.Array()
		out := make([]interface{}, arr.Len())
		for i := range out {
			out[i] = valueToAny(arr.Flat(i))
		}
		return out
	default:
		return types.ErrValue.String()
	}
}

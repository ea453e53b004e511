package functions

import (
	"math"

	"github.com/gridkit/cellcalc/criteria"
	"github.com/gridkit/cellcalc/kernel"
	"github.com/gridkit/cellcalc/types"
)

// simdThreshold is the minimum literal-array length before the batched
// numeric fast path is worth the trial coercion.
const simdThreshold = 32

func conditionalSpecs() []FunctionSpec {
	return []FunctionSpec{
		{
			Name: "countif", Category: CategoryConditional,
			Description: "Number of cells in a range satisfying a criteria",
			MinArgs:     2, MaxArgs: 2, ThreadSafe: true, AcceptsArrays: true,
			ArgTypes: []ArgType{ArgTypeRange, ArgTypeCriteria},
			Fn:       countifEntry,
		},
		{
			Name: "countifs", Category: CategoryConditional,
			Description: "Number of positions satisfying every criteria pair",
			MinArgs:     2, MaxArgs: -1, ThreadSafe: true, AcceptsArrays: true,
			ArgTypes: []ArgType{ArgTypeRange, ArgTypeCriteria},
			Fn:       countifsEntry,
		},
		{
			Name: "sumif", Category: CategoryConditional,
			Description: "Sum of the values whose criteria cell matches",
			MinArgs:     2, MaxArgs: 3, ThreadSafe: true, AcceptsArrays: true,
			ArgTypes: []ArgType{ArgTypeRange, ArgTypeCriteria, ArgTypeRange},
			Fn:       sumifEntry,
		},
		{
			Name: "sumifs", Category: CategoryConditional,
			Description: "Sum of the values whose criteria cells all match",
			MinArgs:     3, MaxArgs: -1, ThreadSafe: true, AcceptsArrays: true,
			ArgTypes: []ArgType{ArgTypeRange, ArgTypeRange, ArgTypeCriteria},
			Fn:       sumifsEntry,
		},
		{
			Name: "averageif", Category: CategoryConditional,
			Description: "Mean of the values whose criteria cell matches",
			MinArgs:     2, MaxArgs: 3, ThreadSafe: true, AcceptsArrays: true,
			ArgTypes: []ArgType{ArgTypeRange, ArgTypeCriteria, ArgTypeRange},
			Fn:       averageifEntry,
		},
		{
			Name: "averageifs", Category: CategoryConditional,
			Description: "Mean of the values whose criteria cells all match",
			MinArgs:     3, MaxArgs: -1, ThreadSafe: true, AcceptsArrays: true,
			ArgTypes: []ArgType{ArgTypeRange, ArgTypeRange, ArgTypeCriteria},
			Fn:       averageifsEntry,
		},
		{
			Name: "maxifs", Category: CategoryConditional,
			Description: "Largest value whose criteria cells all match",
			MinArgs:     3, MaxArgs: -1, ThreadSafe: true, AcceptsArrays: true,
			ArgTypes: []ArgType{ArgTypeRange, ArgTypeRange, ArgTypeCriteria},
			Fn:       maxifsEntry,
		},
		{
			Name: "minifs", Category: CategoryConditional,
			Description: "Smallest value whose criteria cells all match",
			MinArgs:     3, MaxArgs: -1, ThreadSafe: true, AcceptsArrays: true,
			ArgTypes: []ArgType{ArgTypeRange, ArgTypeRange, ArgTypeCriteria},
			Fn:       minifsEntry,
		},
		{
			Name: "sumproduct", Category: CategoryConditional,
			Description: "Sum of the elementwise products of two operands",
			MinArgs:     2, MaxArgs: 2, ThreadSafe: true, AcceptsArrays: true,
			ArgTypes: []ArgType{ArgTypeRange, ArgTypeRange},
			Fn:       sumproductEntry,
		},
	}
}

// rangeView is positional access over one criteria or value range. Arrays
// (and scalars lifted to 1x1 arrays) are dense; references answer random
// access through the context and reconstruct implicit blanks.
type rangeView struct {
	arr   *types.Array
	ref   types.Reference
	isRef bool
	rows  int
	cols  int
}

func newRangeView(ctx FunctionContext, arg types.ArgValue) (rangeView, types.ErrorKind) {
	switch arg.Kind() {
	case types.ArgReference:
		ref := arg.Reference()
		ctx.RecordReference(ref)
		return rangeView{ref: ref, isRef: true, rows: ref.RowCount(), cols: ref.ColCount()}, types.ErrNone
	case types.ArgReferenceUnion:
		// Criteria and value ranges must be a single rectangle.
		return rangeView{}, types.ErrValue
	default:
		v := arg.Scalar()
		if v.Kind() == types.KindArray {
			a := v.Array()
			return rangeView{arr: a, rows: a.Rows, cols: a.Cols}, types.ErrNone
		}
		if v.IsError() {
			return rangeView{}, v.ErrKind()
		}
		a := types.NewArrayOf(1, 1, []types.Value{v})
		return rangeView{arr: a, rows: 1, cols: 1}, types.ErrNone
	}
}

func (rv rangeView) len() int {
	return rv.rows * rv.cols
}

func (rv rangeView) sameShape(o rangeView) bool {
	return rv.rows == o.rows && rv.cols == o.cols
}

// at returns the value at a row-major positional index; unstored reference
// cells come back blank.
func (rv rangeView) at(ctx FunctionContext, idx int) types.Value {
	r, c := idx/rv.cols, idx%rv.cols
	if rv.isRef {
		return ctx.CellValue(rv.ref.Sheet, rv.ref.AddrAt(r, c))
	}
	return rv.arr.At(r, c)
}

// eachStored visits the stored positions of the view. Every array element
// counts as stored; reference iteration order is unspecified.
func (rv rangeView) eachStored(ctx FunctionContext, fn func(idx int, v types.Value) bool) {
	if rv.isRef {
		ctx.EachStoredCell(rv.ref, func(addr types.CellAddr, v types.Value) bool {
			return fn(rv.ref.FlatIndex(addr), v)
		})
		return
	}
	for i, n := 0, rv.arr.Len(); i < n; i++ {
		if !fn(i, rv.arr.Flat(i)) {
			return
		}
	}
}

type critPair struct {
	view rangeView
	crit *criteria.Criteria
}

// criteriaValue realizes a criteria argument to its scalar value. A
// single-cell reference dereferences; larger ranges cannot form a
// predicate.
func criteriaValue(ctx FunctionContext, arg types.ArgValue) (types.Value, types.ErrorKind) {
	switch arg.Kind() {
	case types.ArgScalar:
		return arg.Scalar(), types.ErrNone
	case types.ArgReference:
		ref := arg.Reference()
		ctx.RecordReference(ref)
		if ref.Size() != 1 {
			return types.Value{}, types.ErrValue
		}
		return ctx.CellValue(ref.Sheet, ref.Start), types.ErrNone
	default:
		return types.Value{}, types.ErrValue
	}
}

// buildPairs parses (range, criteria) argument pairs, enforcing shape
// equality against the given reference shape (or the first pair when shape
// is nil).
func buildPairs(ctx FunctionContext, args []types.ArgValue, shape *rangeView) ([]critPair, types.ErrorKind) {
	if len(args) == 0 || len(args)%2 != 0 {
		return nil, types.ErrValue
	}
	if len(args)/2 > maxCriteriaPairs {
		return nil, types.ErrNum
	}
	pairs := make([]critPair, 0, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		view, ek := newRangeView(ctx, args[i])
		if ek != types.ErrNone {
			return nil, ek
		}
		if shape != nil && !view.sameShape(*shape) {
			return nil, types.ErrValue
		}
		if shape == nil {
			s := view
			shape = &s
		}
		cv, ek := criteriaValue(ctx, args[i+1])
		if ek != types.ErrNone {
			return nil, ek
		}
		crit, ek := criteria.Parse(cv, critOptions(ctx))
		if ek != types.ErrNone {
			return nil, ek
		}
		pairs = append(pairs, critPair{view: view, crit: crit})
	}
	return pairs, types.ErrNone
}

// countMatching counts the positions where every criteria pair matches.
// Three strategies avoid a full O(rows x cols x N) scan when the data shape
// allows; they are observably equivalent.
func countMatching(ctx FunctionContext, pairs []critPair) types.Value {
	rows, cols := pairs[0].view.rows, pairs[0].view.cols
	total := int64(rows) * int64(cols)

	// Strategy 1: every criterion matches blank and every range is a
	// reference. Any position not explicitly stored is blank and matches;
	// any stored, passing cell matches too. Counting the stored mismatches
	// is therefore enough.
	allBlankRefs := true
	for _, p := range pairs {
		if !p.view.isRef || !p.crit.MatchesBlank() {
			allBlankRefs = false
			break
		}
	}
	if allBlankRefs {
		mismatch := make(map[int]struct{})
		overflow := false
		for _, p := range pairs {
			p.view.eachStored(ctx, func(idx int, v types.Value) bool {
				if !p.crit.Matches(v) {
					if len(mismatch) >= maxTrackedCells {
						overflow = true
						return false
					}
					mismatch[idx] = struct{}{}
				}
				return true
			})
			if overflow {
				return types.NewError(types.ErrNum)
			}
		}
		return types.NewNumber(float64(total - int64(len(mismatch))))
	}

	// Strategy 2: a reference-backed criterion that cannot be satisfied by
	// a blank drives the scan. Matching positions must be stored there, so
	// only its stored cells are candidates; the remaining criteria answer
	// by random access at the same positional index.
	driver := -1
	for i, p := range pairs {
		if p.view.isRef && !p.crit.MatchesBlank() {
			driver = i
			break
		}
	}
	if driver >= 0 {
		count := 0
		d := pairs[driver]
		d.view.eachStored(ctx, func(idx int, v types.Value) bool {
			if !d.crit.Matches(v) {
				return true
			}
			for j, p := range pairs {
				if j == driver {
					continue
				}
				if !p.crit.Matches(p.view.at(ctx, idx)) {
					return true
				}
			}
			count++
			return true
		})
		return types.NewNumber(float64(count))
	}

	// Strategy 3: full positional scan.
	count := 0
	for idx := 0; idx < rows*cols; idx++ {
		ok := true
		for _, p := range pairs {
			if !p.crit.Matches(p.view.at(ctx, idx)) {
				ok = false
				break
			}
		}
		if ok {
			count++
		}
	}
	return types.NewNumber(float64(count))
}

// trialCoerceArray coerces every criteria-array element with the shared
// trial coercion. Blanks are rejected even though they coerce: a numeric
// predicate never matches a blank on the per-cell path, and the kernel
// cannot tell a coerced 0 from a blank. ok is false as soon as one element
// does not qualify, which sends the caller to the per-cell path.
func trialCoerceArray(arr *types.Array) ([]float64, bool) {
	out := make([]float64, arr.Len())
	for i := range out {
		v := arr.Flat(i)
		if v.IsBlank() {
			return nil, false
		}
		x, ok := criteria.CoerceNumeric(v)
		if !ok {
			return nil, false
		}
		out[i] = x
	}
	return out, true
}

// numericValueArray extracts a value array for the batched path. Only
// Number elements qualify: the per-cell fold skips blanks, logicals and
// text in value cells, so anything else falls back.
func numericValueArray(arr *types.Array) ([]float64, bool) {
	out := make([]float64, arr.Len())
	for i := range out {
		v := arr.Flat(i)
		if v.Kind() != types.KindNumber {
			return nil, false
		}
		out[i] = v.Number()
	}
	return out, true
}

func countifEntry(ctx FunctionContext, args []types.ArgValue) types.Value {
	view, ek := newRangeView(ctx, args[0])
	if ek != types.ErrNone {
		return types.NewError(ek)
	}
	cv, ek := criteriaValue(ctx, args[1])
	if ek != types.ErrNone {
		return types.NewError(ek)
	}
	crit, ek := criteria.Parse(cv, critOptions(ctx))
	if ek != types.ErrNone {
		return types.NewError(ek)
	}

	// Batched fast path: literal arrays only. Sparse references make trial
	// coercion unsafe and expensive, so they always take the per-cell path.
	if pred, ok := crit.AsNumeric(); ok && view.arr != nil && view.arr.Len() >= simdThreshold {
		if vals, clean := trialCoerceArray(view.arr); clean {
			return types.NewNumber(float64(kernel.CountIf(vals, pred)))
		}
	}

	return countMatching(ctx, []critPair{{view: view, crit: crit}})
}

func countifsEntry(ctx FunctionContext, args []types.ArgValue) types.Value {
	pairs, ek := buildPairs(ctx, args, nil)
	if ek != types.ErrNone {
		return types.NewError(ek)
	}
	return countMatching(ctx, pairs)
}

// foldOp selects the reduction applied to included value cells.
type foldOp uint8

const (
	foldSum foldOp = iota
	foldAvg
	foldMax
	foldMin
)

// foldMatching reduces the value-range cells whose criteria all match.
//
// When the value range is a reference its stored cells drive the scan:
// unstored value cells are blank and can never contribute to a numeric
// fold, so only stored positions are candidates no matter what the
// criteria match. For the max/min folds errors are not propagated on
// sight: sparse iteration order is unspecified, so the earliest
// (row-major) error among included cells is tracked and only returned
// after the scan.
func foldMatching(ctx FunctionContext, op foldOp, value rangeView, pairs []critPair) types.Value {
	var (
		sumBatch kernel.SumCountBatch
		minBatch kernel.MinBatch
		maxBatch kernel.MaxBatch

		poisoned   bool
		scanErr    types.ErrorKind
		deferred   = op == foldMax || op == foldMin
		bestErrIdx = -1
		bestErr    types.ErrorKind
		immediate  bool
	)

	include := func(idx int, v types.Value) bool {
		for _, p := range pairs {
			if !p.crit.Matches(p.view.at(ctx, idx)) {
				return true
			}
		}
		switch v.Kind() {
		case types.KindNumber:
			x := v.Number()
			if math.IsNaN(x) {
				poisoned = true
				return false
			}
			switch op {
			case foldSum, foldAvg:
				sumBatch.Add(x)
			case foldMax:
				maxBatch.Add(x)
			case foldMin:
				minBatch.Add(x)
			}
		case types.KindError, types.KindLambda:
			ek := types.ErrValue
			if v.Kind() == types.KindError {
				ek = v.ErrKind()
			}
			if !deferred {
				scanErr = ek
				return false
			}
			if idx == 0 {
				// Row-major first position: nothing can precede it.
				scanErr = ek
				immediate = true
				return false
			}
			if bestErrIdx == -1 || idx < bestErrIdx {
				bestErrIdx = idx
				bestErr = ek
			}
		}
		return true
	}

	if value.isRef {
		value.eachStored(ctx, include)
	} else {
		for idx, n := 0, value.len(); idx < n; idx++ {
			if !include(idx, value.arr.Flat(idx)) {
				break
			}
		}
	}

	if scanErr != types.ErrNone || immediate {
		return types.NewError(scanErr)
	}
	if poisoned {
		return types.NewNumber(math.NaN())
	}
	if deferred && bestErrIdx >= 0 {
		return types.NewError(bestErr)
	}

	switch op {
	case foldSum:
		sum, _ := sumBatch.Result()
		return types.NewNumber(sum)
	case foldAvg:
		sum, count := sumBatch.Result()
		if count == 0 {
			return types.NewError(types.ErrDiv0)
		}
		return types.NewNumber(sum / float64(count))
	case foldMax:
		if best, ok := maxBatch.Best(); ok {
			return types.NewNumber(best)
		}
		return types.NewNumber(0)
	default:
		if best, ok := minBatch.Best(); ok {
			return types.NewNumber(best)
		}
		return types.NewNumber(0)
	}
}

// singleCriterion builds the (criteria range, criteria, optional value
// range) layout shared by SUMIF and AVERAGEIF.
func singleCriterion(ctx FunctionContext, args []types.ArgValue) (rangeView, []critPair, *criteria.Criteria, types.ErrorKind) {
	critView, ek := newRangeView(ctx, args[0])
	if ek != types.ErrNone {
		return rangeView{}, nil, nil, ek
	}
	cv, ek := criteriaValue(ctx, args[1])
	if ek != types.ErrNone {
		return rangeView{}, nil, nil, ek
	}
	crit, ek := criteria.Parse(cv, critOptions(ctx))
	if ek != types.ErrNone {
		return rangeView{}, nil, nil, ek
	}
	value := critView
	if len(args) == 3 {
		value, ek = newRangeView(ctx, args[2])
		if ek != types.ErrNone {
			return rangeView{}, nil, nil, ek
		}
		if !value.sameShape(critView) {
			return rangeView{}, nil, nil, types.ErrValue
		}
	}
	return value, []critPair{{view: critView, crit: crit}}, crit, types.ErrNone
}

func sumifEntry(ctx FunctionContext, args []types.ArgValue) types.Value {
	value, pairs, crit, ek := singleCriterion(ctx, args)
	if ek != types.ErrNone {
		return types.NewError(ek)
	}
	if pred, ok := crit.AsNumeric(); ok && value.arr != nil && pairs[0].view.arr != nil && pairs[0].view.arr.Len() >= simdThreshold {
		if cvals, clean := trialCoerceArray(pairs[0].view.arr); clean {
			if vvals, clean := numericValueArray(value.arr); clean {
				return types.NewNumber(kernel.SumIf(vvals, cvals, pred))
			}
		}
	}
	return foldMatching(ctx, foldSum, value, pairs)
}

func averageifEntry(ctx FunctionContext, args []types.ArgValue) types.Value {
	value, pairs, crit, ek := singleCriterion(ctx, args)
	if ek != types.ErrNone {
		return types.NewError(ek)
	}
	if pred, ok := crit.AsNumeric(); ok && value.arr != nil && pairs[0].view.arr != nil && pairs[0].view.arr.Len() >= simdThreshold {
		if cvals, clean := trialCoerceArray(pairs[0].view.arr); clean {
			if vvals, clean := numericValueArray(value.arr); clean {
				sum, count := kernel.SumCountIf(vvals, cvals, pred)
				if count == 0 {
					return types.NewError(types.ErrDiv0)
				}
				return types.NewNumber(sum / float64(count))
			}
		}
	}
	return foldMatching(ctx, foldAvg, value, pairs)
}

// multiCriteria builds the (value range, range1, criteria1, ...) layout
// shared by SUMIFS, AVERAGEIFS, MAXIFS and MINIFS.
func multiCriteria(ctx FunctionContext, args []types.ArgValue) (rangeView, []critPair, types.ErrorKind) {
	value, ek := newRangeView(ctx, args[0])
	if ek != types.ErrNone {
		return rangeView{}, nil, ek
	}
	pairs, ek := buildPairs(ctx, args[1:], &value)
	if ek != types.ErrNone {
		return rangeView{}, nil, ek
	}
	return value, pairs, types.ErrNone
}

func sumifsEntry(ctx FunctionContext, args []types.ArgValue) types.Value {
	value, pairs, ek := multiCriteria(ctx, args)
	if ek != types.ErrNone {
		return types.NewError(ek)
	}
	return foldMatching(ctx, foldSum, value, pairs)
}

func averageifsEntry(ctx FunctionContext, args []types.ArgValue) types.Value {
	value, pairs, ek := multiCriteria(ctx, args)
	if ek != types.ErrNone {
		return types.NewError(ek)
	}
	return foldMatching(ctx, foldAvg, value, pairs)
}

func maxifsEntry(ctx FunctionContext, args []types.ArgValue) types.Value {
	value, pairs, ek := multiCriteria(ctx, args)
	if ek != types.ErrNone {
		return types.NewError(ek)
	}
	return foldMatching(ctx, foldMax, value, pairs)
}

func minifsEntry(ctx FunctionContext, args []types.ArgValue) types.Value {
	value, pairs, ek := multiCriteria(ctx, args)
	if ek != types.ErrNone {
		return types.NewError(ek)
	}
	return foldMatching(ctx, foldMin, value, pairs)
}

// sumproductEntry multiplies two broadcastable operands elementwise and
// sums the products. Reference operands stream through a fixed pair buffer
// in row-major order so whole-column references never materialize;
// coercion runs left-to-right within each index so error precedence
// matches scalar evaluation.
func sumproductEntry(ctx FunctionContext, args []types.ArgValue) types.Value {
	va, ek := newRangeView(ctx, args[0])
	if ek != types.ErrNone {
		return types.NewError(ek)
	}
	vb, ek := newRangeView(ctx, args[1])
	if ek != types.ErrNone {
		return types.NewError(ek)
	}

	la, lb := va.len(), vb.len()
	n := la
	if lb > n {
		n = lb
	}
	if (la != n && la != 1) || (lb != n && lb != 1) {
		return types.NewError(types.ErrValue)
	}

	var batch kernel.PairBatch
	for idx := 0; idx < n; idx++ {
		ia, ib := idx, idx
		if la == 1 {
			ia = 0
		}
		if lb == 1 {
			ib = 0
		}
		x, ek := sumproductCoerce(va.at(ctx, ia))
		if ek != types.ErrNone {
			return types.NewError(ek)
		}
		y, ek := sumproductCoerce(vb.at(ctx, ib))
		if ek != types.ErrNone {
			return types.NewError(ek)
		}
		if math.IsNaN(x) || math.IsNaN(y) {
			return types.NewNumber(math.NaN())
		}
		batch.Add(x, y)
	}
	return types.NewNumber(batch.Total())
}

// sumproductCoerce treats non-numeric entries as zero, the legacy
// SUMPRODUCT rule; errors propagate and rich values are #VALUE!.
func sumproductCoerce(v types.Value) (float64, types.ErrorKind) {
	switch v.Kind() {
	case types.KindNumber:
		return v.Number(), types.ErrNone
	case types.KindBlank, types.KindBool, types.KindText:
		return 0, types.ErrNone
	case types.KindError:
		return 0, v.ErrKind()
	default:
		return 0, types.ErrValue
	}
}

package criteria

import (
	"strconv"
	"strings"
	"time"

	"github.com/gridkit/cellcalc/kernel"
	"github.com/gridkit/cellcalc/types"
)

// Options carries the workbook context a predicate is parsed under. Dates
// and locale-dependent number forms resolve against these settings at parse
// time, so matching itself stays context-free.
type Options struct {
	DateSystem types.DateSystem
	Locale     types.LocaleConfig
	Now        time.Time
}

type critKind uint8

const (
	kindNumeric  critKind = iota // numeric comparison
	kindText                     // text comparison, optional relational op
	kindWildcard                 // text pattern with * / ?
	kindBool                     // logical equality
	kindError                    // error-kind equality
	kindBlank                    // matches blank (and empty text)
	kindNonBlank                 // matches anything not blank
	kindNever                    // matches nothing
)

// Criteria is an immutable parsed predicate. It is safe for concurrent use.
type Criteria struct {
	kind    critKind
	op      kernel.CmpOp
	num     float64
	text    string // lower-cased operand for text comparison
	pattern string // raw wildcard pattern, lower-cased
	boolVal bool
	errKind types.ErrorKind
}

// Parse builds a predicate from a criteria value. An Array criteria value
// collapses to its top-left element (implicit intersection). The returned
// error kind is ErrNone on success.
func Parse(v types.Value, opts Options) (*Criteria, types.ErrorKind) {
	if v.Kind() == types.KindArray {
		v = v.Array().TopLeft()
	}
	switch v.Kind() {
	case types.KindNumber:
		return &Criteria{kind: kindNumeric, op: kernel.OpEq, num: v.Number()}, types.ErrNone
	case types.KindBool:
		return &Criteria{kind: kindBool, boolVal: v.Bool()}, types.ErrNone
	case types.KindError:
		return &Criteria{kind: kindError, errKind: v.ErrKind()}, types.ErrNone
	case types.KindBlank:
		// A blank criteria cell behaves like "=0".
		return &Criteria{kind: kindNumeric, op: kernel.OpEq, num: 0}, types.ErrNone
	case types.KindText:
		return parseText(v.Text(), opts), types.ErrNone
	default:
		// Rich values cannot form a predicate.
		return nil, types.ErrValue
	}
}

func parseText(s string, opts Options) *Criteria {
	op, rest := splitOp(s)

	if rest == "" {
		switch op {
		case kernel.OpEq:
			// "" and "=" match blank cells.
			return &Criteria{kind: kindBlank}
		case kernel.OpNe:
			// "<>" matches non-blank cells.
			return &Criteria{kind: kindNonBlank}
		default:
			// Relational comparison against nothing matches nothing.
			return &Criteria{kind: kindNever}
		}
	}

	if n, ok := parseNumber(rest, opts.Locale); ok {
		return &Criteria{kind: kindNumeric, op: op, num: n}
	}
	if b, ok := parseBool(rest); ok && op == kernel.OpEq {
		return &Criteria{kind: kindBool, boolVal: b}
	}
	if k, ok := parseErrorLiteral(rest); ok {
		return &Criteria{kind: kindError, errKind: k}
	}

	lowered := strings.ToLower(rest)
	if (op == kernel.OpEq || op == kernel.OpNe) && hasWildcard(rest) {
		return &Criteria{kind: kindWildcard, op: op, pattern: lowered}
	}
	return &Criteria{kind: kindText, op: op, text: lowered}
}

// splitOp strips a leading comparison operator, longest match first.
func splitOp(s string) (kernel.CmpOp, string) {
	switch {
	case strings.HasPrefix(s, ">="):
		return kernel.OpGe, s[2:]
	case strings.HasPrefix(s, "<="):
		return kernel.OpLe, s[2:]
	case strings.HasPrefix(s, "<>"):
		return kernel.OpNe, s[2:]
	case strings.HasPrefix(s, ">"):
		return kernel.OpGt, s[1:]
	case strings.HasPrefix(s, "<"):
		return kernel.OpLt, s[1:]
	case strings.HasPrefix(s, "="):
		return kernel.OpEq, s[1:]
	default:
		return kernel.OpEq, s
	}
}

func parseNumber(s string, loc types.LocaleConfig) (float64, bool) {
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

func parseBool(s string) (bool, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TRUE":
		return true, true
	case "FALSE":
		return false, true
	default:
		return false, false
	}
}

func parseErrorLiteral(s string) (types.ErrorKind, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "#NULL!":
		return types.ErrNull, true
	case "#DIV/0!":
		return types.ErrDiv0, true
	case "#VALUE!":
		return types.ErrValue, true
	case "#REF!":
		return types.ErrRef, true
	case "#NAME?":
		return types.ErrName, true
	case "#NUM!":
		return types.ErrNum, true
	case "#N/A":
		return types.ErrNA, true
	case "#SPILL!":
		return types.ErrSpill, true
	case "#CALC!":
		return types.ErrCalc, true
	default:
		return types.ErrNone, false
	}
}

func hasWildcard(s string) bool {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '~':
			i++ // escaped character
		case '*', '?':
			return true
		}
	}
	return false
}

// Matches tests one candidate value against the predicate. An Array
// candidate collapses to its top-left element.
func (c *Criteria) Matches(v types.Value) bool {
	if v.Kind() == types.KindArray {
		v = v.Array().TopLeft()
	}
	switch c.kind {
	case kindNumeric:
		// Mirror the trial coercion of the batched fast path so the scalar
		// and kernel paths agree on the same data, with one exception:
		// blanks never satisfy a numeric predicate.
		if v.IsBlank() {
			return false
		}
		n, ok := CoerceNumeric(v)
		if !ok {
			return false
		}
		return kernel.NumericPredicate{Op: c.op, Operand: c.num}.Match(n)
	case kindText:
		if v.Kind() != types.KindText {
			return false
		}
		return compareText(strings.ToLower(v.Text()), c.text, c.op)
	case kindWildcard:
		if v.Kind() != types.KindText {
			return false
		}
		matched := wildcardMatch(c.pattern, strings.ToLower(v.Text()))
		if c.op == kernel.OpNe {
			return !matched
		}
		return matched
	case kindBool:
		return v.Kind() == types.KindBool && v.Bool() == c.boolVal
	case kindError:
		return v.IsError() && v.ErrKind() == c.errKind
	case kindBlank:
		return v.IsBlank() || (v.Kind() == types.KindText && v.Text() == "")
	case kindNonBlank:
		return !v.IsBlank() && !(v.Kind() == types.KindText && v.Text() == "")
	default:
		return false
	}
}

// MatchesBlank reports whether an implicit blank cell would satisfy the
// predicate. The conditional strategy selector relies on this to decide
// whether unstored cells can contribute at all.
func (c *Criteria) MatchesBlank() bool {
	return c.Matches(types.NewBlank())
}

// AsNumeric returns the fast-path descriptor when the predicate is a single
// numeric comparison.
func (c *Criteria) AsNumeric() (kernel.NumericPredicate, bool) {
	if c.kind != kindNumeric {
		return kernel.NumericPredicate{}, false
	}
	return kernel.NumericPredicate{Op: c.op, Operand: c.num}, true
}

// CoerceNumeric is the trial coercion shared by the numeric predicate path
// and the batched fast path: blank is 0, logicals are 0/1, text must parse
// as a number, rich values never coerce.
func CoerceNumeric(v types.Value) (float64, bool) {
	switch v.Kind() {
	case types.KindNumber:
		return v.Number(), true
	case types.KindBlank:
		return 0, true
	case types.KindBool:
		if v.Bool() {
			return 1, true
		}
		return 0, true
	case types.KindText:
		n, err := strconv.ParseFloat(strings.TrimSpace(v.Text()), 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

func compareText(candidate, operand string, op kernel.CmpOp) bool {
	cmp := strings.Compare(candidate, operand)
	switch op {
	case kernel.OpEq:
		return cmp == 0
	case kernel.OpNe:
		return cmp != 0
	case kernel.OpLt:
		return cmp < 0
	case kernel.OpLe:
		return cmp <= 0
	case kernel.OpGt:
		return cmp > 0
	case kernel.OpGe:
		return cmp >= 0
	default:
		return false
	}
}

// wildcardMatch implements * / ? matching with ~ escaping, iteratively with
// the usual single-star backtracking.
func wildcardMatch(pattern, s string) bool {
	var (
		pi, si         int
		starPi, starSi = -1, 0
	)
	for si < len(s) {
		if pi < len(pattern) {
			pc := pattern[pi]
			if pc == '~' && pi+1 < len(pattern) {
				if pattern[pi+1] == s[si] {
					pi += 2
					si++
					continue
				}
			} else if pc == '?' {
				pi++
				si++
				continue
			} else if pc == '*' {
				starPi = pi
				starSi = si
				pi++
				continue
			} else if pc == s[si] {
				pi++
				si++
				continue
			}
		}
		if starPi >= 0 {
			starSi++
			pi = starPi + 1
			si = starSi
			continue
		}
		return false
	}
	for pi < len(pattern) && pattern[pi] == '*' {
		pi++
	}
	return pi == len(pattern)
}

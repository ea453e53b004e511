package functions

import (
	"time"

	"github.com/gridkit/cellcalc/criteria"
	"github.com/gridkit/cellcalc/types"
)

// FunctionContext is the host surface a function executes against. The
// surrounding engine (cell storage, dependency graph, locale configuration,
// recalculation-stable randomness) implements it; a single-threaded test
// harness is just as valid an implementation as a parallel evaluator.
//
// Implementations must be safe for concurrent use: functions may run on any
// worker thread, and the only permitted side effect is the append-only
// dependency registration of RecordReference.
type FunctionContext interface {
	// CellValue returns the value stored at the address, or blank when the
	// cell has no stored value.
	CellValue(sheet int, addr types.CellAddr) types.Value

	// EachStoredCell visits the physically stored cells inside the
	// reference in unspecified order. Absent cells (implicit blanks) are
	// never visited. Returning false from fn stops the iteration.
	EachStoredCell(ref types.Reference, fn func(addr types.CellAddr, v types.Value) bool)

	// RecordReference registers a dependency on the reference. It must be
	// idempotent: recording the same reference twice is harmless.
	RecordReference(ref types.Reference)

	// DateSystem returns the workbook's serial-date epoch.
	DateSystem() types.DateSystem

	// LocaleConfig returns the locale settings used for number and
	// criteria parsing.
	LocaleConfig() types.LocaleConfig

	// NowUTC returns the current time as seen by this recalculation pass.
	NowUTC() time.Time

	// VolatileRand returns a uniform value in [0, 1). Volatile functions
	// must use this instead of any process-global generator so the host
	// controls determinism per recalculation pass.
	VolatileRand() float64

	// VolatileRandBelow returns a uniform value in [0, bound).
	VolatileRandBelow(bound uint64) uint64
}

// critOptions assembles the criteria parsing options from the context.
func critOptions(ctx FunctionContext) criteria.Options {
	return criteria.Options{
		DateSystem: ctx.DateSystem(),
		Locale:     ctx.LocaleConfig(),
		Now:        ctx.NowUTC(),
	}
}

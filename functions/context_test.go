package functions

import (
	"sync"
	"time"

	"github.com/gridkit/cellcalc/types"
)

// mockContext is the test harness implementation of FunctionContext. Cells
// live in a sparse map, so absent addresses behave as implicit blanks, and
// EachStoredCell iterates in map order to keep order-dependence bugs
// visible. Randomness is a deterministic counter.
type mockContext struct {
	mu       sync.Mutex
	cells    map[types.CellKey]types.Value
	recorded []types.Reference
	locale   types.LocaleConfig
	dates    types.DateSystem
	now      time.Time
	randSeq  []float64
	randIdx  int
}

func newMockContext() *mockContext {
	return &mockContext{
		cells:  make(map[types.CellKey]types.Value),
		locale: types.DefaultLocale,
		now:    time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC),
	}
}

func (m *mockContext) set(sheet, row, col int, v types.Value) {
	m.cells[types.CellKey{Sheet: sheet, Addr: types.CellAddr{Row: row, Col: col}}] = v
}

// setColumn stores a vertical run of values starting at (row, col).
func (m *mockContext) setColumn(sheet, row, col int, vals ...types.Value) {
	for i, v := range vals {
		m.set(sheet, row+i, col, v)
	}
}

func (m *mockContext) CellValue(sheet int, addr types.CellAddr) types.Value {
	v, ok := m.cells[types.CellKey{Sheet: sheet, Addr: addr}]
	if !ok {
		return types.NewBlank()
	}
	return v
}

func (m *mockContext) EachStoredCell(ref types.Reference, fn func(addr types.CellAddr, v types.Value) bool) {
	for k, v := range m.cells {
		if k.Sheet != ref.Sheet || !ref.Contains(k.Addr) {
			continue
		}
		if !fn(k.Addr, v) {
			return
		}
	}
}

func (m *mockContext) RecordReference(ref types.Reference) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recorded = append(m.recorded, ref)
}

func (m *mockContext) DateSystem() types.DateSystem {
	return m.dates
}

func (m *mockContext) LocaleConfig() types.LocaleConfig {
	return m.locale
}

func (m *mockContext) NowUTC() time.Time {
	return m.now
}

func (m *mockContext) VolatileRand() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.randSeq) == 0 {
		return 0.5
	}
	v := m.randSeq[m.randIdx%len(m.randSeq)]
	m.randIdx++
	return v
}

func (m *mockContext) VolatileRandBelow(bound uint64) uint64 {
	return uint64(m.VolatileRand() * float64(bound))
}

// colRef builds a normalized single-column reference.
func colRef(sheet, row, col, rows int) types.Reference {
	return types.Reference{
		Sheet: sheet,
		Start: types.CellAddr{Row: row, Col: col},
		End:   types.CellAddr{Row: row + rows - 1, Col: col},
	}
}

// numArray builds a 1-column array value from numbers.
func numArray(nums ...float64) types.Value {
	vals := make([]types.Value, len(nums))
	for i, n := range nums {
		vals[i] = types.NewNumber(n)
	}
	return types.NewArray(types.NewArrayOf(len(nums), 1, vals))
}

// mustCall dispatches through the global registry and fails the test on a
// host-boundary error.
func mustCall(t interface {
	Helper()
	Fatalf(format string, args ...interface{})
}, ctx FunctionContext, name string, args ...types.ArgValue) types.Value {
	t.Helper()
	v, err := Call(name, ctx, args)
	if err != nil {
		t.Fatalf("call %s: %v", name, err)
	}
	return v
}

/*
 * Copyright 2026 The CellCalc Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package cellcalc

import (
	"math/rand"
	"sync"
	"time"

	"github.com/gridkit/cellcalc/functions"
	"github.com/gridkit/cellcalc/types"
)

// Calc is a self-contained calculation host: a sparse in-memory cell store
// together with the workbook settings a function call runs under. It is the
// simplest complete implementation of functions.FunctionContext and the
// main entry point for embedding CellCalc without a surrounding engine.
//
// Usage example:
//
//	calc := cellcalc.New()
//	calc.SetCell(0, cellcalc.Addr(0, 0), types.NewNumber(1))
//	calc.SetCell(0, cellcalc.Addr(1, 0), types.NewNumber(2))
//	result, err := calc.Calculate("sum", types.ReferenceArg(cellcalc.Range(0, 0, 0, 9, 0)))
type Calc struct {
	mu       sync.RWMutex
	cells    map[types.CellKey]types.Value
	registry *functions.Registry

	locale     types.LocaleConfig
	dateSystem types.DateSystem
	now        func() time.Time

	randMu sync.Mutex
	rand   *rand.Rand
}

// New creates a calculation host. Behavior is customized through Option
// values.
//
// Example:
//
//	// Default host
//	calc := cellcalc.New()
//
//	// Deterministic volatile functions for a reproducible pass
//	calc := cellcalc.New(cellcalc.WithRandSeed(1))
func New(options ...Option) *Calc {
	c := &Calc{
		cells:      make(map[types.CellKey]types.Value),
		locale:     types.DefaultLocale,
		dateSystem: types.Date1900,
		now:        func() time.Time { return time.Now().UTC() },
		rand:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// Addr builds a 0-based cell address.
func Addr(row, col int) types.CellAddr {
	return types.CellAddr{Row: row, Col: col}
}

// Range builds a normalized rectangular reference on a sheet.
func Range(sheet, r1, c1, r2, c2 int) types.Reference {
	return types.Reference{
		Sheet: sheet,
		Start: types.CellAddr{Row: r1, Col: c1},
		End:   types.CellAddr{Row: r2, Col: c2},
	}.Normalize()
}

// SetCell stores a value. Storing a blank keeps the cell physically present,
// which COUNTBLANK and the conditional families treat the same as an
// implicit blank.
func (c *Calc) SetCell(sheet int, addr types.CellAddr, v types.Value) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cells[types.CellKey{Sheet: sheet, Addr: addr}] = v
}

// ClearCell removes a stored value, turning the cell back into an implicit
// blank.
func (c *Calc) ClearCell(sheet int, addr types.CellAddr) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.cells, types.CellKey{Sheet: sheet, Addr: addr})
}

// Calculate dispatches one function call against this host's cells and
// settings. Unknown names and arity violations come back as Go errors;
// everything the function decides, including spreadsheet errors, comes back
// in the Value.
func (c *Calc) Calculate(name string, args ...types.ArgValue) (types.Value, error) {
	if c.registry != nil {
		return c.registry.Call(name, c, args)
	}
	return functions.Call(name, c, args)
}

// CellValue implements functions.FunctionContext.
func (c *Calc) CellValue(sheet int, addr types.CellAddr) types.Value {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.cells[types.CellKey{Sheet: sheet, Addr: addr}]
	if !ok {
		return types.NewBlank()
	}
	return v
}

// EachStoredCell implements functions.FunctionContext. Iteration order is
// map order, deliberately unspecified.
func (c *Calc) EachStoredCell(ref types.Reference, fn func(addr types.CellAddr, v types.Value) bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for k, v := range c.cells {
		if k.Sheet != ref.Sheet || !ref.Contains(k.Addr) {
			continue
		}
		if !fn(k.Addr, v) {
			return
		}
	}
}

// RecordReference implements functions.FunctionContext. A standalone host
// has no dependency graph, so recording is a no-op.
func (c *Calc) RecordReference(ref types.Reference) {}

// DateSystem implements functions.FunctionContext.
func (c *Calc) DateSystem() types.DateSystem {
	return c.dateSystem
}

// LocaleConfig implements functions.FunctionContext.
func (c *Calc) LocaleConfig() types.LocaleConfig {
	return c.locale
}

// NowUTC implements functions.FunctionContext.
func (c *Calc) NowUTC() time.Time {
	return c.now()
}

// VolatileRand implements functions.FunctionContext.
func (c *Calc) VolatileRand() float64 {
	c.randMu.Lock()
	defer c.randMu.Unlock()
	return c.rand.Float64()
}

// VolatileRandBelow implements functions.FunctionContext.
func (c *Calc) VolatileRandBelow(bound uint64) uint64 {
	if bound == 0 {
		return 0
	}
	c.randMu.Lock()
	defer c.randMu.Unlock()
	if bound <= 1<<62 {
		return uint64(c.rand.Int63n(int64(bound)))
	}
	// rand.Int63n cannot reach the top quarter of the uint64 range; stitch
	// two draws instead.
	return (uint64(c.rand.Int63())<<1 | uint64(c.rand.Int63()&1)) % bound
}

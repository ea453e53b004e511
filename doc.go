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

/*
Package cellcalc is the numeric aggregation core of a spreadsheet formula
engine.

CellCalc implements the classic spreadsheet aggregate families (SUM, AVERAGE,
MIN, MAX, COUNT, COUNTA, COUNTBLANK), the conditional families (COUNTIF(S),
SUMIF(S), AVERAGEIF(S), MAXIFS, MINIFS, SUMPRODUCT) and a small set of
elementwise numeric functions (ROUND, ROUNDUP, ROUNDDOWN, TRUNC, INT, ABS,
MOD, SIGN), together with the volatile RAND and RANDBETWEEN.

# Core Features

• Polymorphic arguments - every function argument may resolve to a scalar, a
2D array literal, a rectangular cell range, or a union of overlapping ranges,
with identical results across all forms

• Legacy-exact semantics - logicals and text are skipped in range form but
coerced in scalar form; implicit blanks inside sparse storage are accounted
for arithmetically; errors propagate as spreadsheet values, never as Go errors

• Spreadsheet scale - aggregation streams cells through fixed 1024-element
batch accumulators and allocation-free reduction kernels, so whole-column
ranges never materialize intermediate slices

• Pluggable host - cell storage, dependency recording, locale/date settings
and recalculation-stable randomness are supplied through a single
FunctionContext interface

• Extensible registry - functions are declarative FunctionSpec records in a
concurrency-safe registry; custom scalar functions can be registered at
runtime, including functions whose bodies are expr-lang expressions

The top-level packages:

	types     - the Value tagged union, arrays, references, reference unions
	kernel    - batched numeric reduction kernels and batch accumulators
	criteria  - the parsed predicate type used by the *IF(S) families
	functions - the function registry, coercion layer and function bodies
	logger    - leveled logging used by the registry and expr bridge

The root package provides Calc, a minimal in-memory host implementing
FunctionContext for embedding and testing. A full surrounding engine
(parser, dependency graph, recalculation scheduler, persistent cell
storage) is deliberately out of scope: it talks to this module through the
functions.FunctionContext interface and the registry.
*/
package cellcalc

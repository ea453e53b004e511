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
Package functions implements the CellCalc function registry and the
aggregate, conditional and elementwise numeric function bodies.

# Registry

Every function is a declarative FunctionSpec record: name, arity bounds,
volatility, thread-safety, array support, declared argument types and the
entry point. Builtins register once at package init into a concurrency-safe
registry; hosts dispatch by (case-insensitive) name through Call, register
their own functions with Register, or register expr-lang-backed scalar
functions with RegisterExprFunction.

# Argument model

Entry points receive fully realized arguments (types.ArgValue): a scalar, a
reference, or a reference union. Data behaves identically across the three
forms, but the skip/coerce rules differ deliberately: scalar logicals and
text coerce to numbers (#VALUE! on failure), while logicals and text inside
ranges and arrays are silently skipped. Rich values (entities, records,
lambdas, spills, references) in scalar position are always #VALUE!.

# Errors

Spreadsheet errors are values (types.KindError), not Go errors. An error
value scanned out of a range short-circuits the call, except MAXIFS/MINIFS
which report the earliest error in row-major order among included cells.
Go errors appear only at the host boundary (unknown function, arity
mismatch, registration conflicts).

# Concurrency

All state is call-local; the registry is RWMutex-guarded and written only
during setup. Every entry point is safe for concurrent invocation, and
volatile functions draw randomness exclusively from the FunctionContext.
*/
package functions

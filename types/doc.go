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
Package types defines the value and argument model shared by every CellCalc
function.

Value is a closed tagged union covering everything a cell or an argument can
hold: numbers, booleans, text, blanks, spreadsheet errors, dense 2D arrays,
opaque rich values (entities, records), lambdas, spills, references and
reference unions. Spreadsheet errors are ordinary values of kind KindError,
never Go errors.

Reference is a normalized rectangular cell range on a single sheet.
ReferenceUnion helpers cover the two recurring union problems: deduplicating
cells that appear in more than one rectangle (CellKey) and computing the
exact union area analytically (UnionSize) so implicit blanks can be counted
without enumerating them.

ArgValue is the three-way realization of one evaluated call argument: a
scalar Value, a single Reference, or a union of References.
*/
package types

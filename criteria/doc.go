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
Package criteria parses and evaluates the predicate argument of the
conditional aggregate families (COUNTIF, SUMIFS, MAXIFS, ...).

A criteria value is parsed once into an immutable Criteria and then tested
against many candidates. Text criteria support the legacy spreadsheet
syntax: an optional comparison prefix (">", ">=", "<", "<=", "<>", "="),
a numeric or text operand, case-insensitive text comparison, and the
wildcards "*" and "?" with "~" as the escape. The empty string and a bare
"=" match blank cells; a bare "<>" matches non-blank cells. Number, logical
and error criteria compare by typed equality.

When the predicate reduces to a single numeric comparison, AsNumeric exposes
a kernel.NumericPredicate so the batched *If kernels can run instead of the
per-cell path.
*/
package criteria

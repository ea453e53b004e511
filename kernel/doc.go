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
Package kernel contains the batched numeric reduction kernels and the
fixed-capacity batch accumulators that feed them.

Kernels are pure, allocation-free functions over pre-filtered float64
slices: the caller has already excluded every value that must not
participate (skipped logicals and text, error values, NaN poison). Once a
caller observes a value that poisons the accumulation it stops feeding the
kernel for that pass; kernels never see mixed clean/dirty data.

The batch accumulators (SumBatch, SumCountBatch, MinBatch, MaxBatch,
PairBatch) buffer up to BlockSize values on the stack and flush through a
kernel call when full, amortizing dispatch overhead over a predictable block
size and keeping per-cell loops allocation-free even over ranges with
millions of cells.
*/
package kernel

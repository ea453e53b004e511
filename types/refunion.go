package types

import "sort"

// UnionSize returns the exact number of distinct cells covered by the given
// rectangles, counting every cell once no matter how many rectangles overlap
// it.
//
// Enumerating the cells is not an option: unions can span whole columns, and
// the caller needs the area precisely to reconstruct how many implicit
// blanks a sparse scan never visited. Instead this runs a plane sweep per
// sheet: every rectangle's [startRow, endRow+1) boundary partitions the rows
// into slabs; within a slab the covered width is the merged length of the
// column intervals of the rectangles that span that slab.
func UnionSize(refs []Reference) int64 {
	bySheet := make(map[int][]Reference)
	for _, r := range refs {
		r = r.Normalize()
		bySheet[r.Sheet] = append(bySheet[r.Sheet], r)
	}

	var total int64
	for _, rects := range bySheet {
		total += sheetUnionSize(rects)
	}
	return total
}

func sheetUnionSize(rects []Reference) int64 {
	// Row slab boundaries, sorted and deduplicated.
	bounds := make([]int, 0, len(rects)*2)
	for _, r := range rects {
		bounds = append(bounds, r.Start.Row, r.End.Row+1)
	}
	sort.Ints(bounds)
	bounds = dedupSortedInts(bounds)

	type interval struct{ lo, hi int } // [lo, hi) column span

	var total int64
	ivs := make([]interval, 0, len(rects))
	for i := 0; i+1 < len(bounds); i++ {
		slabLo, slabHi := bounds[i], bounds[i+1]

		// Column intervals of the rectangles fully covering this slab.
		ivs = ivs[:0]
		for _, r := range rects {
			if r.Start.Row <= slabLo && r.End.Row+1 >= slabHi {
				ivs = append(ivs, interval{lo: r.Start.Col, hi: r.End.Col + 1})
			}
		}
		if len(ivs) == 0 {
			continue
		}
		sort.Slice(ivs, func(a, b int) bool {
			if ivs[a].lo != ivs[b].lo {
				return ivs[a].lo < ivs[b].lo
			}
			return ivs[a].hi < ivs[b].hi
		})

		// Sort-and-merge union length of the column intervals.
		covered := 0
		curLo, curHi := ivs[0].lo, ivs[0].hi
		for _, iv := range ivs[1:] {
			if iv.lo > curHi {
				covered += curHi - curLo
				curLo, curHi = iv.lo, iv.hi
			} else if iv.hi > curHi {
				curHi = iv.hi
			}
		}
		covered += curHi - curLo

		total += int64(covered) * int64(slabHi-slabLo)
	}
	return total
}

func dedupSortedInts(xs []int) []int {
	out := xs[:0]
	for i, x := range xs {
		if i == 0 || x != xs[i-1] {
			out = append(out, x)
		}
	}
	return out
}

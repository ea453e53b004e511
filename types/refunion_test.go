package types

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func rect(sheet, r1, c1, r2, c2 int) Reference {
	return Reference{Sheet: sheet, Start: CellAddr{Row: r1, Col: c1}, End: CellAddr{Row: r2, Col: c2}}
}

// bruteUnionSize enumerates every cell. Only usable on small rectangles.
func bruteUnionSize(refs []Reference) int64 {
	seen := make(map[CellKey]struct{})
	for _, r := range refs {
		r = r.Normalize()
		for row := r.Start.Row; row <= r.End.Row; row++ {
			for col := r.Start.Col; col <= r.End.Col; col++ {
				seen[CellKey{Sheet: r.Sheet, Addr: CellAddr{Row: row, Col: col}}] = struct{}{}
			}
		}
	}
	return int64(len(seen))
}

func TestUnionSizeBasics(t *testing.T) {
	tests := []struct {
		name     string
		refs     []Reference
		expected int64
	}{
		{"empty", nil, 0},
		{"single cell", []Reference{rect(0, 3, 3, 3, 3)}, 1},
		{"single rect", []Reference{rect(0, 0, 0, 2, 4)}, 15},
		{"disjoint", []Reference{rect(0, 0, 0, 1, 1), rect(0, 10, 10, 11, 11)}, 8},
		{"identical twice", []Reference{rect(0, 0, 0, 2, 2), rect(0, 0, 0, 2, 2)}, 9},
		{"partial overlap", []Reference{rect(0, 0, 0, 3, 3), rect(0, 2, 2, 5, 5)}, 16 + 16 - 4},
		{"contained", []Reference{rect(0, 0, 0, 9, 9), rect(0, 3, 3, 5, 5)}, 100},
		{"same rows different sheets", []Reference{rect(0, 0, 0, 2, 2), rect(1, 0, 0, 2, 2)}, 18},
		{"cross shape", []Reference{rect(0, 3, 0, 5, 9), rect(0, 0, 3, 9, 5)}, 30 + 30 - 9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, UnionSize(tt.refs))
		})
	}
}

func TestUnionSizeAcceptsDenormalized(t *testing.T) {
	// Start and End swapped; Normalize inside UnionSize fixes it.
	assert.Equal(t, int64(6), UnionSize([]Reference{rect(0, 2, 1, 1, 0)}))
}

func TestUnionSizeMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for trial := 0; trial < 200; trial++ {
		n := 1 + rng.Intn(6)
		refs := make([]Reference, n)
		for i := range refs {
			r1, c1 := rng.Intn(20), rng.Intn(20)
			refs[i] = rect(rng.Intn(2), r1, c1, r1+rng.Intn(8), c1+rng.Intn(8))
		}
		assert.Equal(t, bruteUnionSize(refs), UnionSize(refs), "refs=%v", refs)
	}
}

func TestUnionSizeWholeColumnScale(t *testing.T) {
	// Million-row rectangles must not enumerate.
	tall := []Reference{rect(0, 0, 0, 1_048_575, 0), rect(0, 100, 0, 200, 2)}
	assert.Equal(t, int64(1_048_576+101*2), UnionSize(tall))
}

package kernel

// SumBatch accumulates a running sum through fixed-size blocks. The zero
// value is ready to use.
type SumBatch struct {
	buf   [BlockSize]float64
	n     int
	total float64
}

// Add pushes one value, flushing automatically when the block fills.
func (b *SumBatch) Add(x float64) {
	b.buf[b.n] = x
	b.n++
	if b.n == BlockSize {
		b.flush()
	}
}

func (b *SumBatch) flush() {
	b.total += Sum(b.buf[:b.n])
	b.n = 0
}

// Total flushes the remainder and returns the accumulated sum.
func (b *SumBatch) Total() float64 {
	b.flush()
	return b.total
}

// SumCountBatch accumulates a sum together with the element count, the
// shape AVERAGE and COUNT need.
type SumCountBatch struct {
	buf   [BlockSize]float64
	n     int
	total float64
	count int
}

// Add pushes one value, flushing automatically when the block fills.
func (b *SumCountBatch) Add(x float64) {
	b.buf[b.n] = x
	b.n++
	if b.n == BlockSize {
		b.flush()
	}
}

func (b *SumCountBatch) flush() {
	b.total += Sum(b.buf[:b.n])
	b.count += b.n
	b.n = 0
}

// Result flushes the remainder and returns the sum and the count.
func (b *SumCountBatch) Result() (float64, int) {
	b.flush()
	return b.total, b.count
}

// CountBatch counts countable entries through sentinel-coded blocks: the
// caller pushes NaN for "not countable" and any other value for countable.
// The sentinel is private to the buffer and never a spreadsheet value.
type CountBatch struct {
	buf   [BlockSize]float64
	n     int
	count int
}

// Add pushes one sentinel-coded entry, flushing when the block fills.
func (b *CountBatch) Add(x float64) {
	b.buf[b.n] = x
	b.n++
	if b.n == BlockSize {
		b.flush()
	}
}

func (b *CountBatch) flush() {
	b.count += CountNonNaN(b.buf[:b.n])
	b.n = 0
}

// Count flushes the remainder and returns the countable total.
func (b *CountBatch) Count() int {
	b.flush()
	return b.count
}

// MinBatch tracks the minimum across flushed blocks.
type MinBatch struct {
	buf  [BlockSize]float64
	n    int
	best float64
	seen bool
}

// Add pushes one value, flushing automatically when the block fills.
func (b *MinBatch) Add(x float64) {
	b.buf[b.n] = x
	b.n++
	if b.n == BlockSize {
		b.flush()
	}
}

func (b *MinBatch) flush() {
	if b.n == 0 {
		return
	}
	m := Min(b.buf[:b.n])
	if !b.seen || m < b.best {
		b.best = m
		b.seen = true
	}
	b.n = 0
}

// Best flushes the remainder and returns the minimum; ok is false when no
// value was ever added.
func (b *MinBatch) Best() (float64, bool) {
	b.flush()
	return b.best, b.seen
}

// MaxBatch tracks the maximum across flushed blocks.
type MaxBatch struct {
	buf  [BlockSize]float64
	n    int
	best float64
	seen bool
}

// Add pushes one value, flushing automatically when the block fills.
func (b *MaxBatch) Add(x float64) {
	b.buf[b.n] = x
	b.n++
	if b.n == BlockSize {
		b.flush()
	}
}

func (b *MaxBatch) flush() {
	if b.n == 0 {
		return
	}
	m := Max(b.buf[:b.n])
	if !b.seen || m > b.best {
		b.best = m
		b.seen = true
	}
	b.n = 0
}

// Best flushes the remainder and returns the maximum; ok is false when no
// value was ever added.
func (b *MaxBatch) Best() (float64, bool) {
	b.flush()
	return b.best, b.seen
}

// PairBatch accumulates a sum of elementwise products over two parallel
// streams, the shape SUMPRODUCT needs when streaming references.
type PairBatch struct {
	a     [BlockSize]float64
	b     [BlockSize]float64
	n     int
	total float64
}

// Add pushes one pair, flushing automatically when the block fills.
func (p *PairBatch) Add(x, y float64) {
	p.a[p.n] = x
	p.b[p.n] = y
	p.n++
	if p.n == BlockSize {
		p.flush()
	}
}

func (p *PairBatch) flush() {
	p.total += SumProduct(p.a[:p.n], p.b[:p.n])
	p.n = 0
}

// Total flushes the remainder and returns the accumulated product sum.
func (p *PairBatch) Total() float64 {
	p.flush()
	return p.total
}

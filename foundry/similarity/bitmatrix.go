package similarity

// bitMatrix is the Shifted Bit-Matrix (C2): a rectangular array of W
// 64-bit words across H rows, where each row carries its own column
// offset. Logical bit (i, col) lives at bit (col-off[i]) mod 64 of word
// (col-off[i])/64 in row i. It persists the per-step VP/VN vectors of the
// single-word Hyyrö engine (C6) for downstream alignment-reconstruction
// consumers; this core never reconstructs scripts itself (spec.md
// Non-goals), so recording is opt-in and off by default (zero memory
// overhead per spec.md Design Notes "Matrix recording").
type bitMatrix struct {
	words  int
	rows   [][]uint64
	offset []int64
}

func newBitMatrix(rows, words int) *bitMatrix {
	m := &bitMatrix{
		words:  words,
		rows:   make([][]uint64, rows),
		offset: make([]int64, rows),
	}
	for i := range m.rows {
		m.rows[i] = make([]uint64, words)
	}
	return m
}

func (m *bitMatrix) setRow(i int, offset int64, words []uint64) {
	m.offset[i] = offset
	copy(m.rows[i], words)
}

// at reports the logical bit at (row, col).
func (m *bitMatrix) at(row int, col int64) bool {
	rel := col - m.offset[row]
	if rel < 0 {
		return false
	}
	word := int(rel / 64)
	if word >= m.words {
		return false
	}
	bit := uint(rel % 64)
	return (m.rows[row][word]>>bit)&1 == 1
}

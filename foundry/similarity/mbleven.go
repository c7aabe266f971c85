package similarity

// mblevenTable reproduces spec.md §4.3 literally. Each byte is a
// little-endian stream of 2-bit operations: 01 = delete from s1,
// 10 = delete from s2 (insert), 11 = substitute. Row index is
// (cutoff*(cutoff+1))/2 + delta - 1, where delta = len1-len2 (>=0,
// s1 the longer of the two sequences — see mblevenDistance).
var mblevenTable = [][]uint8{
	// d=1, delta=0
	{0x03},
	// d=1, delta=1
	{0x01},
	// d=2, delta=0
	{0x0F, 0x09, 0x06},
	// d=2, delta=1
	{0x0D, 0x07},
	// d=2, delta=2
	{0x05},
	// d=3, delta=0
	{0x3F, 0x27, 0x2D, 0x39, 0x36, 0x1E, 0x1B},
	// d=3, delta=1
	{0x3D, 0x37, 0x1F, 0x25, 0x19, 0x16},
	// d=3, delta=2
	{0x35, 0x1D, 0x17},
	// d=3, delta=3
	{0x15},
}

func mblevenRowIndex(cutoff, delta int) int {
	return (cutoff*(cutoff+1))/2 + delta - 1
}

// mblevenDistance enumerates the small set of candidate edit programs
// valid for score_cutoff in {1,2,3} (C4). Precondition: cutoff in
// {1,2,3}; returns sentinelMaxInt if no program achieves distance <=
// cutoff.
func mblevenDistance(s1, s2 Seq, cutoff int) int {
	len1, len2 := s1.Len(), s2.Len()
	if len1 < len2 {
		// The table's bit encoding (01 = delete from s1, 10 = delete
		// from s2/insert) is only valid with s1 as the longer operand,
		// mirroring rapidfuzz-rs's mbleven2018 orientation.
		s1, s2 = s2, s1
		len1, len2 = len2, len1
	}
	delta := len1 - len2
	if delta > cutoff {
		return sentinelMaxInt
	}

	row := mblevenTable[mblevenRowIndex(cutoff, delta)]
	best := cutoff + 1

	for _, program := range row {
		i, j := 0, 0
		edits := 0
		ops := program
		for i < len1 && j < len2 {
			if s1.ID(i) != s2.ID(j) {
				edits++
				if ops == 0 {
					break
				}
				switch ops & 0x3 {
				case 0x1: // delete from s1
					i++
				case 0x2: // delete from s2 (insert)
					j++
				default: // 0x3: substitute
					i++
					j++
				}
				ops >>= 2
			} else {
				i++
				j++
			}
		}
		edits += (len1 - i) + (len2 - j)
		if edits < best {
			best = edits
		}
	}

	if best > cutoff {
		return sentinelMaxInt
	}
	return best
}

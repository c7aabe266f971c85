package similarity

// bandWindowMask extracts, from the multi-word PMV pm, the 64-bit window
// of element id's occurrence bits covering needle positions
// [winLo, winLo+64), with register bit k holding needle position
// winLo+k. Positions outside [0, len1) (window runs off either end)
// contribute a zero bit, which is always safe: such a position can never
// really be on the diagonal the caller is asking about.
func bandWindowMask(pm *blockPatternMatchVector, id int64, winLo, len1 int) uint64 {
	lo := winLo
	if lo < 0 {
		lo = 0
	}
	hi := winLo + 64
	if hi > len1 {
		hi = len1
	}
	var mask uint64
	for pos := lo; pos < hi; pos++ {
		if pm.get(id, pos/64)&(uint64(1)<<uint(pos%64)) != 0 {
			mask |= uint64(1) << uint(pos-winLo)
		}
	}
	return mask
}

// hyyroSmallBand computes uniform Levenshtein distance bounded by cutoff
// using Hyyrö's diagonal-band bit-parallel algorithm (C7), valid when
// 2*cutoff+1 <= 64 (spec.md §4.6). The needle may exceed 64 elements; per
// spec.md §4.6's "without-PM" variant, each row's pattern-match word is
// built fresh from a sliding 64-wide window ending at needle position
// min(len1-1, i+cutoff), so register bit 63 always holds the newest
// needle position the band has grown to cover.
func hyyroSmallBand(pm *blockPatternMatchVector, len1 int, s2 Seq, cutoff int) int {
	vp := ^uint64(0) << uint(64-cutoff-1)
	vn := uint64(0)
	dist := cutoff

	conditionalRow := len1 - cutoff
	const diagonalMask = uint64(1) << 63
	horizontalMask := uint64(1) << 62

	breakScore := cutoff + s2.Len() - (len1 - cutoff)

	for i := 0; i < s2.Len(); i++ {
		winHi := i + cutoff
		winLo := winHi - 63
		x := bandWindowMask(pm, s2.ID(i), winLo, len1)

		d0 := (((x & vp) + vp) ^ vp) | x | vn
		hp := vn | ^(d0 | vp)
		hn := d0 & vp

		if i < conditionalRow {
			if d0&diagonalMask == 0 {
				dist++
			}
		} else {
			if hp&horizontalMask != 0 {
				dist++
			} else if hn&horizontalMask != 0 {
				dist--
			}
			if horizontalMask > 1 {
				horizontalMask >>= 1
			}
		}

		vp = hn | ^((d0 >> 1) | hp)
		vn = (d0 >> 1) & hp

		if dist > breakScore {
			return sentinelMaxInt
		}
	}

	if dist > cutoff {
		return sentinelMaxInt
	}
	return dist
}

package similarity

import "math/bits"

// hyyroBlock computes uniform Levenshtein distance bounded by cutoff
// using the multi-word Ukkonen-banded Hyyrö algorithm (C8), for needles
// that neither fit in one word (C6) nor admit a band under 64 bits wide
// (C7). This is the hardest part of the engine family (spec.md §4.7):
// the needle is chunked into 64-element blocks, carries for both the
// Myers addition and the HP/HN shift propagate block to block, and the
// active block interval [firstBlock,lastBlock] is maintained per the
// Ukkonen in-band predicates, which must be evaluated with signed
// arithmetic since intermediate values go negative before being used as
// (non-negative) indices or comparisons.
func hyyroBlock(pm *blockPatternMatchVector, len1 int, s2 Seq, cutoff int) int {
	w := pm.blocks
	len2 := s2.Len()

	rowNum := func(b int) int {
		if b+1 == w {
			return len1 - 1
		}
		return (b+1)*64 - 1
	}

	vp := make([]uint64, w)
	vn := make([]uint64, w)
	score := make([]int, w)
	for b := 0; b < w; b++ {
		vp[b] = ^uint64(0)
		score[b] = rowNum(b) + 1
	}

	bound := cutoff
	if alt := (cutoff + len1 - len2) / 2; alt < bound {
		bound = alt
	}
	bound++
	if bound < 1 {
		bound = 1
	}
	lastBlock := ceilDiv(bound, 64)
	if lastBlock > w {
		lastBlock = w
	}
	lastBlock--
	if lastBlock < 0 {
		lastBlock = 0
	}
	firstBlock := 0

	cond1 := func(b int) bool { return score[b] < cutoff+64 }
	cond2 := func(b, i int) bool {
		return rowNum(b) >= score[b]+len1+i-cutoff-len2
	}
	cond2p := func(b, i int) bool {
		return rowNum(b) <= cutoff+2*64+i+len1+1-score[b]-2-len2
	}

	for i := 0; i < len2; i++ {
		c := s2.ID(i)

		addCarry := uint64(0)
		hpCarry := uint64(1)
		hnCarry := uint64(0)

		for b := firstBlock; b <= lastBlock; b++ {
			x := pm.get(c, b)
			p, v := vp[b], vn[b]

			sum, carryOut := bits.Add64(x&p, p, addCarry)
			d0 := (sum ^ p) | x | v
			hp := v | ^(d0 | p)
			hn := d0 & p

			liveBit := uint(63)
			if b == w-1 {
				liveBit = uint((len1 - 1) % 64)
			}
			if (hp>>liveBit)&1 != 0 {
				score[b]++
			} else if (hn>>liveBit)&1 != 0 {
				score[b]--
			}

			hpTop := (hp >> 63) & 1
			hnTop := (hn >> 63) & 1

			hp = (hp << 1) | hpCarry
			hn = (hn << 1) | hnCarry

			vp[b] = hn | ^(d0 | hp)
			vn[b] = hp & d0

			addCarry = carryOut
			hpCarry = hpTop
			hnCarry = hnTop
		}

		// Shrink the band from the left: drop blocks whose leading cell has
		// fallen outside the Ukkonen band.
		for firstBlock <= lastBlock && !cond1(firstBlock) {
			firstBlock++
		}

		// Tighten the cutoff using the rightmost tracked block (spec.md
		// §4.7 "cutoff may be tightened after each row").
		if firstBlock <= lastBlock {
			tailRow := len2 - i - 1
			tailNeedle := len1 - rowNum(lastBlock) - 1
			tail := tailRow
			if tailNeedle > tail {
				tail = tailNeedle
			}
			if candidate := score[lastBlock] + tail; candidate < cutoff {
				cutoff = candidate
			}
		}

		// Grow the band to the right when the next block is still provably
		// within band.
		if lastBlock+1 < w {
			nb := lastBlock + 1
			newScore := rowNum(nb) + 1 - (i + 1)
			score[nb] = newScore
			vp[nb] = ^uint64(0)
			vn[nb] = 0
			if cond1(nb) && cond2(nb, i) && cond2p(nb, i) {
				lastBlock = nb
			}
		}

		if lastBlock < firstBlock {
			return sentinelMaxInt
		}
	}

	if lastBlock < firstBlock || lastBlock != w-1 {
		return sentinelMaxInt
	}
	return score[lastBlock]
}

package similarity

// uniformLevenshteinRaw implements the dispatch policy of spec.md §4.8,
// routing a bounded uniform-weight Levenshtein query to whichever engine
// (C4-C8) is cheapest for the given cutoff and needle length. k and hint
// are raw distance bounds; a return of sentinelMaxInt means the true
// distance exceeds k.
func uniformLevenshteinRaw(s1, s2 Seq, k, hint int) int {
	len1, len2 := s1.Len(), s2.Len()

	maxLen := len1
	if len2 > maxLen {
		maxLen = len2
	}
	if k > maxLen {
		k = maxLen
	}
	if hint < 31 {
		hint = 31
	}
	if hint > k {
		hint = k
	}

	if k == 0 {
		if equalSeq(s1, s2) {
			return 0
		}
		return sentinelMaxInt
	}

	delta := len1 - len2
	if delta < 0 {
		delta = -delta
	}
	if k < delta {
		return sentinelMaxInt
	}

	if len1 == 0 || len2 == 0 {
		return len1 + len2
	}

	if k < 4 {
		affix := stripCommonAffix(s1, s2)
		t1, t2 := affix.s1, affix.s2
		if t1.Len() == 0 || t2.Len() == 0 {
			return t1.Len() + t2.Len()
		}
		emitEngineCounter("mbleven")
		return mblevenDistance(t1, t2, k)
	}

	// From here on, make sure the needle (s1) is the shorter sequence so
	// that "len1 <= 64" and the small-band/block PMV sizing refer to the
	// needle, matching C5-C8's documented preconditions.
	if len1 > len2 {
		s1, s2 = s2, s1
		len1, len2 = len2, len1
	}

	if len1 <= 64 {
		emitEngineCounter("hyyro_single")
		pm := newPatternMatchVector(s1)
		return hyyroSingleWord(pm, len1, s2, nil)
	}

	pm := newBlockPatternMatchVector(s1)

	if 2*k+1 <= 64 {
		emitEngineCounter("hyyro_small_band")
		return hyyroSmallBand(pm, len1, s2, k)
	}

	emitEngineCounter("hyyro_block")
	rounds := 0
	for hint < k {
		if r := hyyroSmallBandOrBlock(pm, len1, s2, hint); r <= hint {
			if rounds > 0 {
				logHintEscalation(k, hint, rounds)
			}
			return r
		}
		rounds++
		next := hint * 2
		if next <= hint {
			break
		}
		hint = next
	}
	if rounds > 0 {
		logHintEscalation(k, hint, rounds)
	}
	return hyyroBlock(pm, len1, s2, k)
}

// hyyroSmallBandOrBlock runs the block engine at a tentative bound; the
// hint-escalation loop in spec.md §4.8 step 8 only ever needs the block
// engine once 2k+1 has already been shown to exceed 64 bits, so this is
// just hyyroBlock under another name at the call site.
func hyyroSmallBandOrBlock(pm *blockPatternMatchVector, len1 int, s2 Seq, bound int) int {
	return hyyroBlock(pm, len1, s2, bound)
}

// UniformLevenshteinDistance is the public raw-distance entry point for
// the uniform-weight dispatch policy (C4-C8 combined), used directly and
// as the reduction target of weighted Levenshtein (§4.9) when
// ins == del == sub.
func UniformLevenshteinDistance(s1, s2 Seq, c Cutoff) (int, bool) {
	maximum := levenshteinMaximum(s1.Len(), s2.Len(), 1, 1)
	cutoff, hint, has := c.intCutoff(maximum)
	raw := uniformLevenshteinRaw(s1, s2, cutoff, hint)
	return clampDistanceResult(raw, cutoff, has)
}

func ceilDivInt(n, d int) int {
	if n <= 0 {
		return 0
	}
	return (n + d - 1) / d
}

// weightedLevenshteinRaw implements spec.md §4.9: the reduction from
// general-weight Levenshtein down to the cheaper uniform or Indel
// engines whenever the weights make it sound, falling back to full
// Wagner-Fischer otherwise.
func weightedLevenshteinRaw(s1, s2 Seq, w WeightTable, k, hint int) int {
	if w.InsertionCost == 0 && w.DeletionCost == 0 {
		return 0
	}
	if w.InsertionCost == w.DeletionCost && w.InsertionCost == w.SubstitutionCost {
		scaled := uniformLevenshteinRaw(s1, s2, ceilDivInt(k, w.InsertionCost), ceilDivInt(hint, w.InsertionCost))
		if scaled >= sentinelMaxInt {
			return sentinelMaxInt
		}
		return w.InsertionCost * scaled
	}
	if w.InsertionCost == w.DeletionCost && w.SubstitutionCost >= w.InsertionCost+w.DeletionCost {
		emitEngineCounter("indel")
		return w.InsertionCost * indelDistanceRaw(s1, s2)
	}
	emitEngineCounter("wagner_fischer")
	return wagnerFischer(s1, s2, w)
}

// WeightedLevenshteinDistance is the public entry point for general-
// weight Levenshtein distance, dispatching per spec.md §4.9.
func WeightedLevenshteinDistance(s1, s2 Seq, w WeightTable, c Cutoff) (int, bool) {
	w.validate()
	maximum := levenshteinMaximum(s1.Len(), s2.Len(), w.InsertionCost, w.DeletionCost)
	cutoff, hint, has := c.intCutoff(maximum)
	raw := weightedLevenshteinRaw(s1, s2, w, cutoff, hint)
	return clampDistanceResult(raw, cutoff, has)
}

package similarity

import "math/bits"

// jaroMatch holds the intermediate counts from the Jaro windowed-match
// phase (spec.md §4.11 steps 2-4): the number of matches M and
// transpositions T, plus the (possibly swapped) lengths m <= n.
type jaroMatch struct {
	matches int
	trans   int
	m, n    int
}

// jaroCompute runs the Jaro match-and-transpose phase. When the longer
// sequence fits in a single 64-bit word, it uses the PMV-accelerated
// variant described in spec.md §4.11 (AND the needle's pattern-match word
// with a sliding window mask and the running unmatched-s2 mask, take the
// lowest set bit); otherwise it falls back to a direct windowed scan,
// which is asymptotically worse but produces identical results.
func jaroCompute(s1, s2 Seq) jaroMatch {
	if s2.Len() < s1.Len() {
		s1, s2 = s2, s1
	}
	m, n := s1.Len(), s2.Len()
	if m == 0 {
		return jaroMatch{m: m, n: n}
	}

	window := n/2 - 1
	if window < 0 {
		window = 0
	}

	if n <= 64 {
		return jaroComputeAccelerated(s1, s2, m, n, window)
	}
	return jaroComputeScan(s1, s2, m, n, window)
}

func jaroComputeScan(s1, s2 Seq, m, n, window int) jaroMatch {
	matched1 := make([]bool, m)
	matched2 := make([]bool, n)
	matches := 0

	for j := 0; j < m; j++ {
		lo := j - window
		if lo < 0 {
			lo = 0
		}
		hi := j + window + 1
		if hi > n {
			hi = n
		}
		for k := lo; k < hi; k++ {
			if !matched2[k] && s1.ID(j) == s2.ID(k) {
				matched1[j] = true
				matched2[k] = true
				matches++
				break
			}
		}
	}

	return jaroMatch{matches: matches, trans: countTranspositions(s1, s2, matched1, matched2, m, n), m: m, n: n}
}

func countTranspositions(s1, s2 Seq, matched1, matched2 []bool, m, n int) int {
	trans := 0
	k := 0
	for j := 0; j < m; j++ {
		if !matched1[j] {
			continue
		}
		for k < n && !matched2[k] {
			k++
		}
		if k < n {
			if s1.ID(j) != s2.ID(k) {
				trans++
			}
			k++
		}
	}
	return trans / 2
}

// jaroComputeAccelerated implements the PMV-accelerated window match:
// build the pattern-match vector over s2 (the longer sequence, which
// fits in one word here), then for each s1 position AND its element's
// pattern-match word with the window mask and the running
// unmatched-s2 mask; the lowest set bit is the match.
func jaroComputeAccelerated(s1, s2 Seq, m, n, window int) jaroMatch {
	pm := newPatternMatchVector(s2)
	unmatched := (uint64(1) << uint(n)) - 1
	if n == 64 {
		unmatched = ^uint64(0)
	}

	matched1 := make([]bool, m)
	matches := 0

	for j := 0; j < m; j++ {
		lo := j - window
		if lo < 0 {
			lo = 0
		}
		hi := j + window + 1
		if hi > n {
			hi = n
		}
		width := hi - lo
		var windowMask uint64
		if width >= 64 {
			windowMask = ^uint64(0)
		} else {
			windowMask = ((uint64(1) << uint(width)) - 1) << uint(lo)
		}

		candidates := pm.get(s1.ID(j)) & windowMask & unmatched
		if candidates == 0 {
			continue
		}
		pos := bits.TrailingZeros64(candidates)
		unmatched &^= uint64(1) << uint(pos)
		matched1[j] = true
		matches++
	}

	// Recover transpositions by re-walking in order: matched s1 elements
	// in original order vs. matched s2 elements in original order.
	matched2 := make([]bool, n)
	keep := (uint64(1)<<uint(n) - 1)
	if n == 64 {
		keep = ^uint64(0)
	}
	finalUnmatched := unmatched & keep
	for k := 0; k < n; k++ {
		if finalUnmatched&(uint64(1)<<uint(k)) == 0 {
			matched2[k] = true
		}
	}

	return jaroMatch{matches: matches, trans: countTranspositions(s1, s2, matched1, matched2, m, n), m: m, n: n}
}

// jaroSimilarityRaw computes the raw Jaro similarity (spec.md §4.11 step
// 5). Both empty sequences are similarity 1.0; one empty (not both) is
// 0.0, matching Testable Property 3 (empty boundary).
func jaroSimilarityRaw(a, b Seq) float64 {
	if a.Len() == 0 && b.Len() == 0 {
		return 1.0
	}
	r := jaroCompute(a, b)
	if r.matches == 0 {
		return 0.0
	}
	m := float64(r.matches)
	return (m/float64(r.m) + m/float64(r.n) + (m-float64(r.trans))/m) / 3.0
}

// JaroSimilarity returns the Jaro similarity in [0,1] between a and b,
// clamped by c (whose Cutoff field is interpreted as a similarity
// cutoff, per spec.md §4.1's floating-point raw metric convention).
func JaroSimilarity(a, b Seq, c Cutoff) (float64, bool) {
	sim := jaroSimilarityRaw(a, b)
	if !c.HasCutoff {
		return sim, true
	}
	if sim < c.Cutoff {
		return 1.0, false
	}
	return sim, true
}

// JaroDistance returns 1-JaroSimilarity(a,b).
func JaroDistance(a, b Seq, c Cutoff) (float64, bool) {
	sim, ok := JaroSimilarity(a, b, invertSimCutoffToSim(c))
	return 1.0 - sim, ok
}

func invertSimCutoffToSim(c Cutoff) Cutoff {
	if !c.HasCutoff {
		return c
	}
	return WithCutoff(1.0 - c.Cutoff)
}

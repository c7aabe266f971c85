package similarity

// jaroWinklerPrefixLength returns L = min(4, common prefix length of a
// and b), per spec.md §4.12.
func jaroWinklerPrefixLength(a, b Seq) int {
	max := a.Len()
	if b.Len() < max {
		max = b.Len()
	}
	if max > 4 {
		max = 4
	}
	l := 0
	for l < max && a.ID(l) == b.ID(l) {
		l++
	}
	return l
}

// jaroWinklerBoost applies the prefix boost to a Jaro similarity j, per
// spec.md §4.12: the boost is only applied once J exceeds 0.7; below
// that, Jaro-Winkler is identical to plain Jaro.
func jaroWinklerBoost(j float64, l int, p float64) float64 {
	if j <= 0.7 {
		return j
	}
	return j + float64(l)*p*(1.0-j)
}

// jaroWinklerFoldCutoff implements spec.md §4.12's cutoff-folding rule:
// max(0.7, (cutoff - L*p) / (1 - L*p)). Since the boost only ever fires
// above J=0.7, a requested cutoff at or below 0.7 needs no folding at
// all (plain Jaro must simply clear it); only a cutoff above 0.7 can
// ever be pushed up by translating it through the boost formula.
func jaroWinklerFoldCutoff(cutoff float64, l int, p float64) float64 {
	if cutoff <= 0.7 {
		return cutoff
	}
	lp := float64(l) * p
	if lp >= 1.0 {
		return 0.7
	}
	folded := (cutoff - lp) / (1.0 - lp)
	if folded < 0.7 {
		return 0.7
	}
	return folded
}

// JaroWinklerSimilarity returns the Jaro-Winkler similarity in [0,1]
// between a and b using prefix weight p (pass 0.1 for the conventional
// default), clamped by c. It panics if p is outside [0, 0.25].
func JaroWinklerSimilarity(a, b Seq, p float64, c Cutoff) (float64, bool) {
	if p < 0 || p > 0.25 {
		panic("similarity: Jaro-Winkler prefix weight must be in [0, 0.25]")
	}
	l := jaroWinklerPrefixLength(a, b)
	if c.HasCutoff {
		jaroFloor := jaroWinklerFoldCutoff(c.Cutoff, l, p)
		j := jaroSimilarityRaw(a, b)
		if j < jaroFloor {
			return 1.0, false
		}
		jw := jaroWinklerBoost(j, l, p)
		if jw < c.Cutoff {
			return 1.0, false
		}
		return jw, true
	}
	j := jaroSimilarityRaw(a, b)
	return jaroWinklerBoost(j, l, p), true
}

// JaroWinklerDistance returns 1-JaroWinklerSimilarity(a,b,p).
func JaroWinklerDistance(a, b Seq, p float64, c Cutoff) (float64, bool) {
	sim, ok := JaroWinklerSimilarity(a, b, p, invertSimCutoffToSim(c))
	return 1.0 - sim, ok
}

// DefaultJaroWinklerPrefixWeight is the conventional prefix weight used
// when a caller has no reason to deviate (spec.md §4.12).
const DefaultJaroWinklerPrefixWeight = 0.1

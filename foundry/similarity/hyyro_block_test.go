package similarity

import (
	"strings"
	"testing"
)

// TestHyyroBlockAgainstWagnerFischer exercises C8 directly (bypassing
// the dispatch policy) for needles that force more than one PMV block,
// with a cutoff wide enough that 2*cutoff+1 > 64 so the small-band
// engine (C7) would not apply.
func TestHyyroBlockAgainstWagnerFischer(t *testing.T) {
	cases := []struct {
		a, b   string
		cutoff int
	}{
		{strings.Repeat("abcdefgh", 10), strings.Repeat("abcdefgh", 9) + "ZZZZZZZZ", 40},
		{strings.Repeat("qwerty", 20), strings.Repeat("qwerty", 20), 40},
	}
	for _, c := range cases {
		s1, s2 := Runes(c.a), Runes(c.b)
		if s1.Len() > s2.Len() {
			s1, s2 = s2, s1
		}
		pm := newBlockPatternMatchVector(s1)
		got := hyyroBlock(pm, s1.Len(), s2, c.cutoff)
		want := wagnerFischer(s1, s2, DefaultWeights())
		if want > c.cutoff {
			if got != sentinelMaxInt {
				t.Errorf("hyyroBlock(cutoff=%d)=%d, want sentinel (true dist %d)", c.cutoff, got, want)
			}
			continue
		}
		if got != want {
			t.Errorf("hyyroBlock(cutoff=%d)=%d, want %d", c.cutoff, got, want)
		}
	}
}

// TestHyyroBlockViaDispatch exercises C8 through the public dispatch
// policy, which is the only entry point real callers use.
func TestHyyroBlockViaDispatch(t *testing.T) {
	s1 := strings.Repeat("the quick brown fox ", 5) // 100 chars
	mutated := []rune(s1)
	mutated[10] = 'X'
	mutated[50] = 'Y'
	mutated[90] = 'Z'
	s2 := string(mutated)

	want := wagnerFischer(Runes(s1), Runes(s2), DefaultWeights())
	got, ok := UniformLevenshteinDistance(Runes(s1), Runes(s2), NoCutoff)
	if !ok || got != want {
		t.Errorf("UniformLevenshteinDistance(100-char, 3 edits) = %d,%v, want %d,true", got, ok, want)
	}
}

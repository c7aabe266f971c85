package similarity

import (
	"strings"
	"testing"
)

// TestHyyroSmallBandShortNeedle exercises C7 directly for a needle that
// fits in one block, cross-checked against Wagner-Fischer.
func TestHyyroSmallBandShortNeedle(t *testing.T) {
	pairs := []struct {
		a, b   string
		cutoff int
	}{
		{"kitten", "sitting", 4},
		{"flaw", "lawn", 3},
		{"abcdefgh", "abcdeXgh", 5},
	}
	for _, p := range pairs {
		s1, s2 := Runes(p.a), Runes(p.b)
		if s1.Len() > s2.Len() {
			s1, s2 = s2, s1
		}
		pm := newBlockPatternMatchVector(s1)
		got := hyyroSmallBand(pm, s1.Len(), s2, p.cutoff)
		want := wagnerFischer(s1, s2, DefaultWeights())
		if want > p.cutoff {
			if got != sentinelMaxInt {
				t.Errorf("hyyroSmallBand(%q,%q,k=%d)=%d, want sentinel (true dist %d)", p.a, p.b, p.cutoff, got, want)
			}
			continue
		}
		if got != want {
			t.Errorf("hyyroSmallBand(%q,%q,k=%d)=%d, want %d", p.a, p.b, p.cutoff, got, want)
		}
	}
}

// TestHyyroSmallBandLongNeedle exercises C7 for a needle exceeding 64
// elements, which is the regime the sliding-window fix addressed: the
// flat single-word PMV would have silently dropped any needle position
// past index 63, so this specifically targets edits beyond that point.
func TestHyyroSmallBandLongNeedle(t *testing.T) {
	base := strings.Repeat("abcdefgh", 10) // 80 chars
	// Mutate a character well past position 63 so a truncated PMV would
	// miss it entirely.
	mutated := []rune(base)
	mutated[70] = 'Z'
	s2 := string(mutated)

	s1 := Runes(base)
	s2Seq := Runes(s2)
	cutoff := 5 // 2*5+1 = 11 <= 64, forces the small-band branch

	want := wagnerFischer(s1, s2Seq, DefaultWeights())
	if want > cutoff {
		t.Fatalf("test setup: true distance %d exceeds chosen cutoff %d", want, cutoff)
	}

	got, ok := UniformLevenshteinDistance(s1, s2Seq, WithCutoff(float64(cutoff)))
	if !ok || got != want {
		t.Errorf("UniformLevenshteinDistance(long needle, k=%d) = %d,%v, want %d,true", cutoff, got, ok, want)
	}
}

func TestHyyroSmallBandLongNeedleMultipleEdits(t *testing.T) {
	base := strings.Repeat("qwertzuiop", 8) // 80 chars
	mutated := []rune(base)
	mutated[65] = 'X'
	mutated[72] = 'Y'
	mutated[79] = 'Z'
	s2 := string(mutated)

	s1 := Runes(base)
	s2Seq := Runes(s2)
	cutoff := 10 // 2*10+1 = 21 <= 64

	want := wagnerFischer(s1, s2Seq, DefaultWeights())
	if want > cutoff {
		t.Fatalf("test setup: true distance %d exceeds chosen cutoff %d", want, cutoff)
	}

	got, ok := UniformLevenshteinDistance(s1, s2Seq, WithCutoff(float64(cutoff)))
	if !ok || got != want {
		t.Errorf("UniformLevenshteinDistance(long needle, 3 edits, k=%d) = %d,%v, want %d,true", cutoff, got, ok, want)
	}
}

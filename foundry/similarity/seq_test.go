package similarity

import "testing"

func TestSeqConstructors(t *testing.T) {
	r := Runes("héllo")
	if r.Len() != 5 {
		t.Errorf("Runes(héllo).Len() = %d, want 5", r.Len())
	}
	if r.ID(1) != int64('é') {
		t.Errorf("Runes(héllo).ID(1) = %d, want %d", r.ID(1), int64('é'))
	}

	b := Bytes([]byte("héllo"))
	if b.Len() != 6 { // 'é' is 2 bytes in UTF-8
		t.Errorf("Bytes(héllo).Len() = %d, want 6", b.Len())
	}

	xs := Int64s([]int64{10, 20, 30})
	if xs.Len() != 3 || xs.ID(2) != 30 {
		t.Errorf("Int64s: Len=%d ID(2)=%d, want 3,30", xs.Len(), xs.ID(2))
	}

	type token struct{ v int }
	tokens := []token{{1}, {2}, {3}}
	ts := FromSlice(tokens, func(t token) int64 { return int64(t.v) })
	if ts.Len() != 3 || ts.ID(0) != 1 {
		t.Errorf("FromSlice: Len=%d ID(0)=%d, want 3,1", ts.Len(), ts.ID(0))
	}
}

func TestSliceOfAndEqualSeq(t *testing.T) {
	s := Runes("abcdef")
	window := sliceOf(s, 2, 3) // "cde"
	if window.Len() != 3 || window.ID(0) != int64('c') || window.ID(2) != int64('e') {
		t.Errorf("sliceOf(2,3) = len %d, first %c, last %c", window.Len(), rune(window.ID(0)), rune(window.ID(2)))
	}

	full := sliceOf(s, 0, s.Len())
	if full.Len() != s.Len() {
		t.Errorf("sliceOf identity window should preserve length")
	}

	if !equalSeq(Runes("abc"), Runes("abc")) {
		t.Error("equalSeq(abc,abc) = false, want true")
	}
	if equalSeq(Runes("abc"), Runes("abd")) {
		t.Error("equalSeq(abc,abd) = true, want false")
	}
	if equalSeq(Runes("ab"), Runes("abc")) {
		t.Error("equalSeq(ab,abc) = true, want false")
	}
}

package similarity

import "testing"

func TestPatternMatchVectorSingleWord(t *testing.T) {
	pm := newPatternMatchVector(Runes("abca"))
	if pm.get(int64('a')) != 0b1001 {
		t.Errorf("pm.get('a') = %b, want 1001", pm.get(int64('a')))
	}
	if pm.get(int64('b')) != 0b0010 {
		t.Errorf("pm.get('b') = %b, want 0010", pm.get(int64('b')))
	}
	if pm.get(int64('z')) != 0 {
		t.Errorf("pm.get('z') = %b, want 0 (absent)", pm.get(int64('z')))
	}
}

func TestBlockPatternMatchVectorSpansMultipleBlocks(t *testing.T) {
	needle := make([]rune, 130)
	for i := range needle {
		needle[i] = 'x'
	}
	needle[0] = 'a'
	needle[64] = 'b'
	needle[129] = 'c'
	pm := newBlockPatternMatchVector(Runes(string(needle)))

	if pm.blocks != 3 {
		t.Fatalf("blocks = %d, want 3 (ceil(130/64))", pm.blocks)
	}
	if pm.get(int64('a'), 0)&1 == 0 {
		t.Error("'a' should be set at block 0 bit 0")
	}
	if pm.get(int64('b'), 1)&1 == 0 {
		t.Error("'b' should be set at block 1 bit 0 (position 64)")
	}
	if pm.get(int64('c'), 2)&(1<<1) == 0 {
		t.Error("'c' should be set at block 2 bit 1 (position 129)")
	}
	if pm.get(int64('q'), 0) != 0 {
		t.Error("absent element should read as zero")
	}
	if pm.get(int64('a'), 99) != 0 {
		t.Error("out-of-range block should read as zero, not panic")
	}
}

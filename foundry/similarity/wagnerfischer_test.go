package similarity

import "testing"

func TestWagnerFischerKnownDistances(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"kitten", "sitting", 3},
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"flaw", "lawn", 2},
		{"intention", "execution", 5},
	}
	for _, c := range cases {
		got := wagnerFischer(Runes(c.a), Runes(c.b), DefaultWeights())
		if got != c.want {
			t.Errorf("wagnerFischer(%q,%q)=%d, want %d", c.a, c.b, got, c.want)
		}
	}
}

func TestWagnerFischerSymmetricUnderUniformWeights(t *testing.T) {
	pairs := []struct{ a, b string }{
		{"kitten", "sitting"},
		{"abcdef", "badcfe"},
		{"gumbo", "gambol"},
	}
	for _, p := range pairs {
		ab := wagnerFischer(Runes(p.a), Runes(p.b), DefaultWeights())
		ba := wagnerFischer(Runes(p.b), Runes(p.a), DefaultWeights())
		if ab != ba {
			t.Errorf("wagnerFischer(%q,%q)=%d != wagnerFischer(%q,%q)=%d", p.a, p.b, ab, p.b, p.a, ba)
		}
	}
}

func TestWagnerFischerRespectsAsymmetricWeights(t *testing.T) {
	w := WeightTable{InsertionCost: 1, DeletionCost: 5, SubstitutionCost: 2}
	// "a" -> "" needs one deletion (cost 5); "" -> "a" needs one insertion (cost 1).
	del := wagnerFischer(Runes("a"), Runes(""), w)
	ins := wagnerFischer(Runes(""), Runes("a"), w)
	if del != 5 {
		t.Errorf("delete cost = %d, want 5", del)
	}
	if ins != 1 {
		t.Errorf("insert cost = %d, want 1", ins)
	}
}

func TestWeightTableValidatePanicsOnNegative(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("validate() on negative cost did not panic")
		}
	}()
	WeightTable{InsertionCost: -1, DeletionCost: 1, SubstitutionCost: 1}.validate()
}

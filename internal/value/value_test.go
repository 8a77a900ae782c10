package value

import "testing"

func TestFeqFloat(t *testing.T) {
	if !FeqFloat(1.0, 1.0+FloatEpsilon/2) {
		t.Error("values within epsilon should be equal")
	}
	if FeqFloat(1.0, 1.0+FloatEpsilon*10) {
		t.Error("values far outside epsilon should not be equal")
	}
}

func TestEqualStringCrossVariableIsAnError(t *testing.T) {
	a := InternedStr(1, 0, "us")
	b := InternedStr(2, 0, "us")

	_, err := EqualString(a, b)
	if err == nil {
		t.Fatal("expected an error comparing strings of different variables")
	}
}

func TestEqualStringSameVariable(t *testing.T) {
	a := InternedStr(1, 0, "us")
	b := InternedStr(1, 0, "us")
	c := InternedStr(1, 1, "ca")

	eq, err := EqualString(a, b)
	if err != nil || !eq {
		t.Fatalf("expected equal, got eq=%v err=%v", eq, err)
	}

	eq, err = EqualString(a, c)
	if err != nil || eq {
		t.Fatalf("expected not equal, got eq=%v err=%v", eq, err)
	}
}

func TestEqualLists(t *testing.T) {
	if !Equal(Ints(1, 2, 3), Ints(1, 2, 3)) {
		t.Error("identical int lists should be equal")
	}
	if Equal(Ints(1, 2, 3), Ints(1, 2)) {
		t.Error("different-length int lists should not be equal")
	}
}

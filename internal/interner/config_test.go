package interner

import (
	"testing"

	"github.com/ritamzico/bexpr/internal/value"
)

func TestGetIDForAttrIsIdempotent(t *testing.T) {
	c := New()
	id1 := c.GetIDForAttr("age", AttrDomain{ValueType: value.Int64})
	id2 := c.GetIDForAttr("age", AttrDomain{ValueType: value.Int64})
	if id1 != id2 {
		t.Fatalf("expected stable id, got %d then %d", id1, id2)
	}

	id3 := c.GetIDForAttr("country", AttrDomain{ValueType: value.String})
	if id3 == id1 {
		t.Fatalf("expected distinct attributes to get distinct ids")
	}
}

func TestAddAttrDomainRejectsDuplicate(t *testing.T) {
	c := New()
	if _, err := c.AddAttrDomain("age", value.Int64, Bound{}, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := c.AddAttrDomain("age", value.Int64, Bound{}, false); err == nil {
		t.Fatal("expected an error re-registering an existing attribute")
	}
}

func TestGetIDForStringIsDensePerAttribute(t *testing.T) {
	c := New()
	age := c.GetIDForAttr("age", AttrDomain{ValueType: value.Int64})
	country := c.GetIDForAttr("country", AttrDomain{ValueType: value.String})

	usID, err := c.GetIDForString(country, "US")
	if err != nil {
		t.Fatal(err)
	}
	caID, err := c.GetIDForString(country, "CA")
	if err != nil {
		t.Fatal(err)
	}
	usAgain, err := c.GetIDForString(country, "US")
	if err != nil {
		t.Fatal(err)
	}

	if usID != 0 || caID != 1 || usAgain != usID {
		t.Fatalf("expected dense ids starting at 0, got us=%d ca=%d usAgain=%d", usID, caID, usAgain)
	}

	if _, err := c.GetIDForString(age, "oops"); err != nil {
		t.Fatalf("interning under a separate attribute should succeed, got %v", err)
	}
}

func TestIsVariableAllowUndefined(t *testing.T) {
	c := New()
	id, _ := c.AddAttrDomain("maybe", value.Bool, Bound{}, true)
	allow, err := c.IsVariableAllowUndefined(id)
	if err != nil || !allow {
		t.Fatalf("expected allow-undefined true, got %v err=%v", allow, err)
	}

	if _, err := c.IsVariableAllowUndefined(999); err == nil {
		t.Fatal("expected an error for an unknown variable")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	c := New()
	country := c.GetIDForAttr("country", AttrDomain{ValueType: value.String})
	c.GetIDForString(country, "US")

	clone := c.Clone()
	clone.GetIDForString(country, "CA")

	if c.StringCount(country) != 1 {
		t.Fatalf("original config should be unaffected by clone mutation, got count %d", c.StringCount(country))
	}
	if clone.StringCount(country) != 2 {
		t.Fatalf("clone should have both strings, got count %d", clone.StringCount(country))
	}
}

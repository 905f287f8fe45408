package validate

import "testing"

func TestHexColor(t *testing.T) {
	for in, want := range map[string]bool{"#FF0000": true, "#f00": true, "FF0000": false, "#GG0000": false, "": false} {
		if _, ok := HexColor(in); ok != want {
			t.Errorf("HexColor(%q) = %v, want %v", in, ok, want)
		}
	}
	if v, _ := HexColor(" #ff0000 "); v != "#FF0000" {
		t.Errorf("want normalized #FF0000, got %q", v)
	}
}

func TestID(t *testing.T) {
	if n, ok := ID(" 42 "); !ok || n != 42 {
		t.Fatalf("want 42, got %d %v", n, ok)
	}
	for _, bad := range []string{"0", "-1", "x", ""} {
		if _, ok := ID(bad); ok {
			t.Errorf("ID(%q) accepted", bad)
		}
	}
	if v, ok := OptionalID(""); !ok || v != nil {
		t.Fatalf("blank optional id: %v %v", v, ok)
	}
	if _, ok := OptionalID("abc"); ok {
		t.Fatal("bad optional id accepted")
	}
	ids, ok := IDs([]string{"1", "", "3"})
	if !ok || len(ids) != 2 || ids[1] != 3 {
		t.Fatalf("IDs: %v %v", ids, ok)
	}
}

func TestPriceAndEnums(t *testing.T) {
	if _, ok := Price("-1"); ok {
		t.Error("negative price accepted")
	}
	if f, ok := Price("19.90"); !ok || f != 19.90 {
		t.Errorf("Price: %v %v", f, ok)
	}
	if _, ok := Gender("UNISEX"); ok {
		t.Error("unknown gender accepted")
	}
	if _, ok := OrderStatus("SHIPPED"); !ok {
		t.Error("SHIPPED rejected")
	}
	if _, ok := NewsStatus("LIVE"); ok {
		t.Error("unknown news status accepted")
	}
}

func TestPassword(t *testing.T) {
	if !Password("Passw0rd!") {
		t.Error("strong password rejected")
	}
	if Password("password") {
		t.Error("weak password accepted")
	}
}

package validation

import "testing"

func TestEmailCheck(t *testing.T) {
	check := Email("invalid")
	cases := map[string]bool{
		"contact@acme-mg.com":        true,
		"jp.rakotomalala@acme-mg.mg": true,
		"o'neil+tag@example.org":     true,
		"":                           false,
		"plain":                      false,
		"a@b":                        false,
		".lead@example.com":          false,
		"two..dots@example.com":      false,
		"x@example.c":                false,
	}
	for value, want := range cases {
		if got := check.Test(value); got != want {
			t.Errorf("Email(%q) = %v, want %v", value, got, want)
		}
	}
}

func TestMinLenCountsRunes(t *testing.T) {
	check := MinLen(5, "short")
	if !check.Test("Élève") {
		t.Fatalf("five runes with accents should pass")
	}
	if check.Test("Élèv") {
		t.Fatalf("four runes should fail")
	}
}

func TestOneOfEmptyAcceptsAll(t *testing.T) {
	if !OneOf(nil, "x").Test("anything") {
		t.Fatalf("empty enumeration should accept")
	}
	if OneOf([]string{"GB"}, "x").Test("ASR") {
		t.Fatalf("value outside enumeration should fail")
	}
}

func TestResultHelpers(t *testing.T) {
	res := Merge(
		Fail(Issue{Field: "a.b", Message: "m1"}, Issue{Field: "a.b", Message: "m1"}),
		Ok(),
		Fail(Issue{Field: "c", Message: "m2"}),
	)
	if res.Valid {
		t.Fatalf("merged result should be invalid")
	}
	if got := res.For("a.b"); len(got) != 1 {
		t.Fatalf("duplicates should collapse, got %v", got)
	}
	if within := res.Within("a"); len(within.Issues) != 2 || within.Valid {
		t.Fatalf("Within(a) = %+v", within)
	}
	if within := res.Within("x"); !within.Valid {
		t.Fatalf("Within(x) should be valid")
	}
}

package value

import "testing"

func TestIsTruthy(t *testing.T) {
	cases := []struct {
		v    Value
		want bool
	}{
		{NilValue, false},
		{Bool_(false), false},
		{Bool_(true), true},
		{Int(0), true},
		{Str(""), true},
	}
	for _, c := range cases {
		if got := c.v.IsTruthy(); got != c.want {
			t.Errorf("IsTruthy(%v) = %v, want %v", c.v, got, c.want)
		}
	}
}

func TestEqual(t *testing.T) {
	if !Int(5).Equal(Int(5)) {
		t.Error("Int(5) should equal Int(5)")
	}
	if Int(5).Equal(Real_(5)) {
		t.Error("Int(5) should not equal Real(5): different variants never compare equal")
	}
	a := List_([]Value{Int(1), Str("x")})
	b := List_([]Value{Int(1), Str("x")})
	if !a.Equal(b) {
		t.Error("equal-length, equal-element lists should be equal")
	}
	c := List_([]Value{Int(1)})
	if a.Equal(c) {
		t.Error("lists of different length should not be equal")
	}
}

func TestAsFloat64(t *testing.T) {
	if f, ok := Int(3).AsFloat64(); !ok || f != 3.0 {
		t.Errorf("Int(3).AsFloat64() = %v, %v", f, ok)
	}
	if _, ok := Str("x").AsFloat64(); ok {
		t.Error("AsFloat64 on a string should report ok=false")
	}
}

func TestFormatHex(t *testing.T) {
	if got := Int(255).FormatHex("0x"); got != "0xff" {
		t.Errorf("FormatHex(255) = %q, want 0xff", got)
	}
	if got := Int(-1).FormatHex("0x"); got != "-0x1" {
		t.Errorf("FormatHex(-1) = %q, want -0x1", got)
	}
	if got := Str("hi").FormatHex("0x"); got != "hi" {
		t.Errorf("FormatHex(string) = %q, want unquoted hi", got)
	}
}

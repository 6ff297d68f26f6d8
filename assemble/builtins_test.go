package assemble

import (
	"bytes"
	"testing"
)

func TestAssembleHiLoBuiltins(t *testing.T) {
	src := `
let word = 0x1234;
db hi(word), lo(word);
`
	result, sink, err := Assemble("main.asm", src, nil, Options{CPU: "6502"})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if sink.HasErrors() {
		t.Fatalf("unexpected errors: %v", sink.Errors())
	}
	want := []byte{0x12, 0x34}
	if !bytes.Equal(result.Binary, want) {
		t.Errorf("Binary = % x, want % x", result.Binary, want)
	}
}

func TestAssembleUserFunctionClosure(t *testing.T) {
	src := `
let base = 0x10;
fn addBase(n) {
	return base + n;
}
db addBase(5);
`
	result, sink, err := Assemble("main.asm", src, nil, Options{CPU: "6502"})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if sink.HasErrors() {
		t.Fatalf("unexpected errors: %v", sink.Errors())
	}
	want := []byte{0x15}
	if !bytes.Equal(result.Binary, want) {
		t.Errorf("Binary = % x, want % x", result.Binary, want)
	}
}

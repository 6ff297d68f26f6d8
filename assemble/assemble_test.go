package assemble

import (
	"bytes"
	"strings"
	"testing"
)

func TestAssembleSimpleProgram(t *testing.T) {
	src := `
start:
LDA #1;
STA 0x2000;
JMP start;
`
	result, sink, err := Assemble("main.asm", src, nil, Options{CPU: "6502"})
	if err != nil {
		t.Fatalf("Assemble returned an error: %v", err)
	}
	if sink.HasErrors() {
		t.Fatalf("sink collected unexpected errors: %v", sink.Errors())
	}

	want := []byte{0xa9, 0x01, 0x8d, 0x00, 0x20, 0x4c, 0x00, 0x00}
	if !bytes.Equal(result.Binary, want) {
		t.Errorf("Binary = % x, want % x", result.Binary, want)
	}
	if !strings.Contains(result.Symbols, "start = 0x0\n") {
		t.Errorf("Symbols = %q, want a line for start", result.Symbols)
	}
}

func TestAssembleUndefinedReferenceIsFatal(t *testing.T) {
	src := `LDA #missing;`
	_, sink, err := Assemble("main.asm", src, nil, Options{CPU: "6502"})
	if err == nil {
		t.Fatal("expected an error for a reference that never resolves")
	}
	if !sink.HasErrors() {
		t.Fatal("expected the sink to have collected the fatal error")
	}
}

func TestAssembleBadCPUTarget(t *testing.T) {
	_, _, err := Assemble("main.asm", "NOP;", nil, Options{CPU: "bf"})
	if err == nil {
		t.Fatal("expected BAD_CPU_TARGET for an unrecognized cpu target")
	}
}

func TestAssemble65816WideImmediateFollowsM16Directive(t *testing.T) {
	src := `
m16;
LDA #0x1234;
`
	result, sink, err := Assemble("main.asm", src, nil, Options{CPU: "65816"})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if sink.HasErrors() {
		t.Fatalf("unexpected errors: %v", sink.Errors())
	}
	want := []byte{0xa9, 0x34, 0x12}
	if !bytes.Equal(result.Binary, want) {
		t.Errorf("Binary = % x, want % x (16-bit wide immediate after m16)", result.Binary, want)
	}
}

func TestAssembleOrgAndDefineByte(t *testing.T) {
	src := `
org 0x8000;
db 0x01, 0x02;
dw 0xabcd;
`
	result, sink, err := Assemble("main.asm", src, nil, Options{CPU: "6502"})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if sink.HasErrors() {
		t.Fatalf("unexpected errors: %v", sink.Errors())
	}
	want := []byte{0x01, 0x02, 0xcd, 0xab}
	if !bytes.Equal(result.Binary, want) {
		t.Errorf("Binary = % x, want % x", result.Binary, want)
	}
}

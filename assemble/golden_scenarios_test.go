package assemble

import (
	"bytes"
	"strings"
	"testing"
)

// fakeReader is an in-memory interpreter.SourceReader for tests that need
// include/incbin without touching the filesystem.
type fakeReader struct {
	text   map[string]string
	binary map[string][]byte
}

func (r *fakeReader) ReadText(path string) (string, error) {
	t, ok := r.text[path]
	if !ok {
		return "", errNotFound(path)
	}
	return t, nil
}

func (r *fakeReader) ReadBinary(path string) ([]byte, error) {
	b, ok := r.binary[path]
	if !ok {
		return nil, errNotFound(path)
	}
	return b, nil
}

func (r *fakeReader) ChangeDir(path string, isFile bool) (func(), error) { return func() {}, nil }
func (r *fakeReader) GetDir() string                                    { return "." }

type notFoundError string

func (e notFoundError) Error() string { return "not found: " + string(e) }
func errNotFound(path string) error   { return notFoundError(path) }

func TestAssembleZeropageDefaultForResolvedBackwardReference(t *testing.T) {
	src := `adc #0xFF; test: let j = 20; let i = 100; cmp i;`
	result, sink, err := Assemble("main.asm", src, nil, Options{CPU: "6502"})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if sink.HasErrors() {
		t.Fatalf("unexpected errors: %v", sink.Errors())
	}
	want := []byte{0x69, 0xFF, 0xC5, 0x64}
	if !bytes.Equal(result.Binary, want) {
		t.Errorf("Binary = % x, want % x (cmp i should assemble zeropage, not absolute)", result.Binary, want)
	}
	for _, want := range []string{"test = 0x2\n", "i = 0x64\n", "j = 0x14\n"} {
		if !strings.Contains(result.Symbols, want) {
			t.Errorf("Symbols = %q, missing line %q", result.Symbols, want)
		}
	}
}

func TestAssembleIncludeAndIncbinInterleaving(t *testing.T) {
	reader := &fakeReader{
		text:   map[string]string{"inc.asm": `lda #0xFF; included_label: nop;`},
		binary: map[string][]byte{"inc.bin": []byte("Hello")},
	}
	src := `org 0x8000; nop; include "inc.asm"; nop; incbin "inc.bin"; nop; db ord('a'), len("Hello"), len([1,2,3]);`
	result, sink, err := Assemble("main.asm", src, reader, Options{CPU: "6502"})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if sink.HasErrors() {
		t.Fatalf("unexpected errors: %v", sink.Errors())
	}
	want := []byte{0xEA, 0xA9, 0xFF, 0xEA, 0xEA, 'H', 'e', 'l', 'l', 'o', 0xEA, 0x61, 0x05, 0x03}
	if !bytes.Equal(result.Binary, want) {
		t.Errorf("Binary = % x, want % x", result.Binary, want)
	}
	if !strings.Contains(result.Symbols, "included_label = 0x8003\n") {
		t.Errorf("Symbols = %q, missing included_label line", result.Symbols)
	}
}

func TestAssembleScopeNameQualification(t *testing.T) {
	src := `org 0x8000; scope1: { setScopeName("scopeName"); sublabel: { nop; } }`
	result, sink, err := Assemble("main.asm", src, nil, Options{CPU: "6502"})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if sink.HasErrors() {
		t.Fatalf("unexpected errors: %v", sink.Errors())
	}
	want := []byte{0xEA}
	if !bytes.Equal(result.Binary, want) {
		t.Errorf("Binary = % x, want % x", result.Binary, want)
	}
	for _, want := range []string{"scope1 = 0x8000\n", "scopeName.sublabel = 0x8000\n"} {
		if !strings.Contains(result.Symbols, want) {
			t.Errorf("Symbols = %q, missing line %q", result.Symbols, want)
		}
	}
}

func TestAssembleBlockMoveMissingCommaFails(t *testing.T) {
	_, sink, err := Assemble("main.asm", `mvp 0x01;`, nil, Options{CPU: "65816"})
	if err == nil {
		t.Fatal("expected a parse error for mvp's missing comma")
	}
	if len(sink.Errors()) == 0 {
		t.Fatal("expected the sink to have collected the MISSING_COMMA error")
	}
}

func TestAssembleBlockMoveStringOperandIsTypeError(t *testing.T) {
	_, sink, err := Assemble("main.asm", `mvp 'hi', 0x01;`, nil, Options{CPU: "65816"})
	if err == nil {
		t.Fatal("expected an error for a non-numeric block-move operand")
	}
	if !sink.HasErrors() {
		t.Fatal("expected the sink to have collected a TYPE_ERROR")
	}
}

func TestAssembleRelativeLongOutOfRangeFails(t *testing.T) {
	_, sink, err := Assemble("main.asm", `brl 32772;`, nil, Options{CPU: "65816"})
	if err == nil {
		t.Fatal("expected VALUE_OUT_OF_RANGE for a relative-long displacement this far out of range")
	}
	if !sink.HasErrors() {
		t.Fatal("expected the sink to have collected the fatal error")
	}
}

func TestAssemble65816WideImmediateUnderM8(t *testing.T) {
	src := `m8; LDA #0xFF;`
	result, sink, err := Assemble("main.asm", src, nil, Options{CPU: "65816"})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if sink.HasErrors() {
		t.Fatalf("unexpected errors: %v", sink.Errors())
	}
	want := []byte{0xA9, 0xFF}
	if !bytes.Equal(result.Binary, want) {
		t.Errorf("Binary = % x, want % x (8-bit wide immediate under m8)", result.Binary, want)
	}
}

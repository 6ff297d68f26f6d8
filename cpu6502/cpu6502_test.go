package cpu6502

import (
	"testing"

	"lasm/ast"
	"lasm/isa"
	"lasm/value"
)

// fakeGenContext is a canned isa.GenContext for exercising a Generator in
// isolation, without a real interpreter/pass loop behind it.
type fakeGenContext struct {
	resolved int64
	ok       bool
	err      error
	pass     int
}

func (f *fakeGenContext) Address() int64 { return 0 }
func (f *fakeGenContext) ResolveArg(e ast.Expression) (int64, bool, error) {
	return f.resolved, f.ok, f.err
}
func (f *fakeGenContext) Pass() int { return f.pass }
func (f *fakeGenContext) Bits() int { return 8 }

var dummyArg = []ast.Expression{ast.Literal{Value: value.Int(0)}}

func TestBaseTableKnownOpcodes(t *testing.T) {
	table := BaseTable()
	cases := []struct {
		mnemonic string
		mode     isa.Mode
		opcode   byte
		size     int
	}{
		{"LDA", Immediate, 0xa9, 2},
		{"STA", Absolute, 0x8d, 3},
		{"JMP", Absolute, 0x4c, 3},
		{"NOP", Implied, 0xea, 1},
		{"BEQ", Relative, 0xf0, 2},
	}
	for _, c := range cases {
		e, ok := table[c.mnemonic][c.mode]
		if !ok {
			t.Fatalf("%s has no entry for mode %v", c.mnemonic, c.mode)
		}
		if e.Opcode != c.opcode || e.Size != c.size {
			t.Errorf("%s[%v] = %+v, want opcode %#x size %d", c.mnemonic, c.mode, e, c.opcode, c.size)
		}
	}
}

func TestIsInstructionIsCaseInsensitive(t *testing.T) {
	s := New()
	for _, name := range []string{"lda", "LDA", "Lda"} {
		if !s.IsInstruction(name) {
			t.Errorf("IsInstruction(%q) = false, want true", name)
		}
	}
	if s.IsInstruction("frobnicate") {
		t.Error("IsInstruction(frobnicate) should be false")
	}
}

func TestBaseSetHasNoDirectives(t *testing.T) {
	s := New()
	if s.IsDirective("m16") {
		t.Error("the base 6502 set should have no directives")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	base := BaseTable()
	clone := base.Clone()
	clone.add("LDA", Immediate, 0x00, 99)
	if base["LDA"][Immediate].Opcode == 0x00 {
		t.Error("mutating a clone should not affect the original table")
	}
}

func TestZeropageOrAbsoluteGeneratorPicksZeropageForAByteValue(t *testing.T) {
	table := BaseTable()
	zp, abs := table["CMP"][Zeropage], table["CMP"][Absolute]
	gen := makeZeropageOrAbsoluteGenerator(zp, abs, Zeropage, Absolute)
	info := &isa.InstructionInfo{Mnemonic: "CMP", Mode: Absolute, Opcode: abs.Opcode}

	result, err := gen(&fakeGenContext{resolved: 100, ok: true}, info, dummyArg)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	want := []byte{0xc5, 0x64}
	if string(result.Bytes) != string(want) {
		t.Errorf("Bytes = % x, want % x (zeropage CMP)", result.Bytes, want)
	}
	if info.Mode != Zeropage || !info.ModeDecided {
		t.Errorf("info after generate = %+v, want Mode=Zeropage, ModeDecided=true", info)
	}
}

func TestZeropageOrAbsoluteGeneratorPicksAbsoluteForAnUnresolvedOperand(t *testing.T) {
	table := BaseTable()
	zp, abs := table["CMP"][Zeropage], table["CMP"][Absolute]
	gen := makeZeropageOrAbsoluteGenerator(zp, abs, Zeropage, Absolute)
	info := &isa.InstructionInfo{Mnemonic: "CMP", Mode: Absolute, Opcode: abs.Opcode}

	result, err := gen(&fakeGenContext{ok: false}, info, dummyArg)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(result.Bytes) != 3 {
		t.Errorf("len(Bytes) = %d, want 3 (absolute placeholder for an unresolved operand)", len(result.Bytes))
	}
	if info.Mode != Absolute || !info.ModeDecided {
		t.Errorf("info after generate = %+v, want Mode=Absolute, ModeDecided=true", info)
	}

	// A later call (pass 1, say) must not change the already-decided mode
	// even if the operand is now resolved and would fit in zeropage.
	result2, err := gen(&fakeGenContext{resolved: 5, ok: true}, info, dummyArg)
	if err != nil {
		t.Fatalf("generate (second call): %v", err)
	}
	if len(result2.Bytes) != 3 {
		t.Errorf("len(Bytes) on the cached call = %d, want 3 (must match the first call's size)", len(result2.Bytes))
	}
}

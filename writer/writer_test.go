package writer

import (
	"bytes"
	"strings"
	"testing"

	"lasm/interpreter"
	"lasm/isa"
	"lasm/value"
)

func TestWriteBinaryConcatenatesInOrder(t *testing.T) {
	emissions := []interpreter.Emission{
		{Result: isa.InstructionResult{Bytes: []byte{0xa9, 0x01}}},
		{Result: isa.InstructionResult{Bytes: []byte{0x8d, 0x00, 0x20}}},
	}
	var buf bytes.Buffer
	if err := WriteBinary(&buf, emissions); err != nil {
		t.Fatalf("WriteBinary: %v", err)
	}
	want := []byte{0xa9, 0x01, 0x8d, 0x00, 0x20}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Errorf("WriteBinary = % x, want % x", buf.Bytes(), want)
	}
}

func TestWriteSymbolsSortsAndQualifies(t *testing.T) {
	globals := interpreter.MakeEnvironment(nil)
	globals.Define("i", value.Int(0x64))
	globals.Define("aFunction", value.Callable_(nil)) // not printable

	root := interpreter.MakeEnvironment(nil)
	root.Define("test", value.Int(2))

	scope := interpreter.MakeEnvironment(root)
	scope.SetName("scopeName")
	scope.Define("sublabel", value.Int(0x8000))

	labelTable := []*interpreter.Environment{root, scope}

	var buf bytes.Buffer
	if err := WriteSymbols(&buf, labelTable, globals, "0x", "."); err != nil {
		t.Fatalf("WriteSymbols: %v", err)
	}

	got := buf.String()
	for _, want := range []string{"i = 0x64\n", "test = 0x2\n", "scopeName.sublabel = 0x8000\n"} {
		if !strings.Contains(got, want) {
			t.Errorf("WriteSymbols output %q missing line %q", got, want)
		}
	}
	if strings.Contains(got, "aFunction") {
		t.Errorf("WriteSymbols output %q should not include a callable binding", got)
	}

	// Lines must come out sorted: "i" < "scopeName.sublabel" < "test".
	iIdx := strings.Index(got, "i = ")
	scopeIdx := strings.Index(got, "scopeName")
	testIdx := strings.Index(got, "test = ")
	if !(iIdx < scopeIdx && scopeIdx < testIdx) {
		t.Errorf("WriteSymbols output not sorted: %q", got)
	}
}

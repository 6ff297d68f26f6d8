package lexer

import (
	"testing"

	"lasm/cpu6502"
	"lasm/errsink"
	"lasm/source"
	"lasm/token"
)

func scan(t *testing.T, text string) ([]token.Token, *errsink.Sink) {
	t.Helper()
	sink := errsink.New(false)
	src := source.New("<test>", text)
	toks := New(src, cpu6502.New(), sink).Scan()
	return toks, sink
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, tk := range toks {
		out[i] = tk.Kind
	}
	return out
}

func TestScanInstructionAndLabel(t *testing.T) {
	toks, sink := scan(t, "start:\nLDA #0x10;\n")
	if sink.HasErrors() {
		t.Fatalf("unexpected lex errors: %v", sink.Errors())
	}
	want := []token.Kind{token.LABEL, token.INSTRUCTION, token.HASH, token.INTEGER, token.SEMICOLON, token.EOF}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("got %d tokens %v, want %d %v", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d = %v, want %v", i, got[i], want[i])
		}
	}
	if toks[0].Lexeme != "start" {
		t.Errorf("label lexeme = %q, want %q (trailing ':' stripped)", toks[0].Lexeme, "start")
	}
}

func TestScanIdentifierVsKeywordVsMnemonic(t *testing.T) {
	toks, sink := scan(t, "let foo = bar; nop;")
	if sink.HasErrors() {
		t.Fatalf("unexpected lex errors: %v", sink.Errors())
	}
	want := []token.Kind{token.LET, token.IDENTIFIER, token.ASSIGN, token.IDENTIFIER, token.SEMICOLON, token.INSTRUCTION, token.SEMICOLON, token.EOF}
	got := kinds(toks)
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestScanHexAndBinLiterals(t *testing.T) {
	toks, sink := scan(t, "0xFF 0b101 3.5")
	if sink.HasErrors() {
		t.Fatalf("unexpected lex errors: %v", sink.Errors())
	}
	if len(toks) != 4 { // 3 literals + EOF
		t.Fatalf("got %d tokens, want 4", len(toks))
	}
	if toks[0].Literal.(int64) != 0xFF {
		t.Errorf("0xFF literal = %v, want 255", toks[0].Literal)
	}
	if toks[1].Literal.(int64) != 5 {
		t.Errorf("0b101 literal = %v, want 5", toks[1].Literal)
	}
	if toks[2].Kind != token.REAL || toks[2].Literal.(float64) != 3.5 {
		t.Errorf("3.5 literal = %v (%v), want REAL 3.5", toks[2].Literal, toks[2].Kind)
	}
}

func TestScanUnterminatedStringReportsError(t *testing.T) {
	_, sink := scan(t, `"unterminated`)
	if !sink.HasErrors() {
		t.Fatal("expected an UNTERMINATED_STRING error")
	}
	if sink.Errors()[0].Kind != errsink.UnterminatedString {
		t.Errorf("error kind = %v, want UNTERMINATED_STRING", sink.Errors()[0].Kind)
	}
}

func TestScanUnexpectedCharacterCollectsAndContinues(t *testing.T) {
	toks, sink := scan(t, "let x = 1 @ 2;")
	if len(sink.Errors()) != 1 || sink.Errors()[0].Kind != errsink.UnexpectedChar {
		t.Fatalf("expected exactly one UNEXPECTED_CHAR error, got %v", sink.Errors())
	}
	// Scanning continues past the bad character instead of aborting the pass.
	if toks[len(toks)-1].Kind != token.EOF {
		t.Errorf("scan should still reach EOF after the bad character")
	}
}

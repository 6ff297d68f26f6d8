package cpu6502

import (
	"strings"

	"lasm/ast"
	"lasm/errsink"
	"lasm/isa"
	"lasm/token"
)

// expectRegister consumes an IDENTIFIER token and requires it to spell the
// given register letter (case-insensitively), e.g. the "x" in "(addr,x)".
func expectRegister(p isa.ParserContext, name token.Token, want string) error {
	got, err := p.Consume(token.IDENTIFIER, "expected index register '"+want+"'")
	if err != nil {
		return err
	}
	if !strings.EqualFold(got.Lexeme, want) {
		return p.Fail(errsink.UnexpectedToken, got, "expected index register '%s', found %q", want, got.Lexeme)
	}
	return nil
}

// parseIndexRegister consumes an IDENTIFIER token after a ',' and returns
// "x" or "y" (lowercased), rejecting anything else.
func parseIndexRegister(p isa.ParserContext, name token.Token) (string, error) {
	reg, err := p.Consume(token.IDENTIFIER, "expected index register after ','")
	if err != nil {
		return "", err
	}
	lower := strings.ToLower(reg.Lexeme)
	if lower != "x" && lower != "y" {
		return "", p.Fail(errsink.UnexpectedToken, reg, "expected 'x' or 'y' index register, found %q", reg.Lexeme)
	}
	return lower, nil
}

// makeZeropageOrAbsoluteGenerator builds the isa.Generator for a no-suffix
// bare operand that has both a zeropage-class and an absolute-class entry
// registered (e.g. "cmp i"). The mnemonic's two encodings differ only in
// size, so the choice can't be made at parse time the way an explicit width
// suffix picks one outright -- it has to wait for the operand's resolved
// value. The first run (always pass 0, since every statement generates
// once per pass) resolves the operand: if it's known and fits in a byte,
// zp is committed; otherwise abs is, as the conservative placeholder size
// for an operand pass 0 can't yet resolve (spec §4.3's size-discipline
// invariant). info.ModeDecided then locks that choice in for every later
// run of this same statement, so pass 1 never disagrees with pass 0 about
// how many bytes this instruction occupies.
func makeZeropageOrAbsoluteGenerator(zp, abs Entry, zpMode, absMode isa.Mode) isa.Generator {
	return func(ctx isa.GenContext, info *isa.InstructionInfo, args []ast.Expression) (isa.InstructionResult, error) {
		n, ok, err := ctx.ResolveArg(args[0])
		if err != nil {
			return isa.InstructionResult{}, err
		}
		if !info.ModeDecided {
			if ok && n >= 0 && n <= 0xFF {
				info.Mode, info.Opcode = zpMode, zp.Opcode
			} else {
				info.Mode, info.Opcode = absMode, abs.Opcode
			}
			info.ModeDecided = true
		}
		if info.Mode == zpMode {
			out := []byte{info.Opcode, 0}
			if ok {
				if n < 0 || n > 0xFF {
					return isa.InstructionResult{}, &errsink.Error{Kind: errsink.ValueOutOfRange, Message: "zeropage operand does not fit in one byte"}
				}
				out[1] = byte(n)
			}
			return isa.InstructionResult{Bytes: out}, nil
		}
		out := []byte{info.Opcode, 0, 0}
		if ok {
			if n < -32768 || n > 65535 {
				return isa.InstructionResult{}, &errsink.Error{Kind: errsink.ValueOutOfRange, Message: "operand does not fit in two bytes"}
			}
			out[1] = byte(n)
			out[2] = byte(n >> 8)
		}
		return isa.InstructionResult{Bytes: out}, nil
	}
}

// makeGenerator builds the isa.Generator for a single (opcode, size) table
// row. It resolves each operand expression through ctx.ResolveArg, filling
// zero placeholders for unresolved pass-0 operands per the size-discipline
// invariant (spec §4.3), and packs the operand little-endian except for
// Relative mode's signed branch-displacement math.
func makeGenerator(e Entry) isa.Generator {
	return func(ctx isa.GenContext, info *isa.InstructionInfo, args []ast.Expression) (isa.InstructionResult, error) {
		out := make([]byte, e.Size)
		out[0] = info.Opcode
		if e.Size == 1 {
			return isa.InstructionResult{Bytes: out}, nil
		}

		if info.Mode == Relative {
			target, ok, err := ctx.ResolveArg(args[0])
			if err != nil {
				return isa.InstructionResult{}, err
			}
			if !ok {
				return isa.InstructionResult{Bytes: out}, nil
			}
			disp := target - (ctx.Address() + int64(e.Size))
			if disp < -128 || disp > 127 {
				return isa.InstructionResult{}, &errsink.Error{Kind: errsink.ValueOutOfRange, Message: "branch target out of range"}
			}
			out[1] = byte(int8(disp))
			return isa.InstructionResult{Bytes: out}, nil
		}

		n, ok, err := ctx.ResolveArg(args[0])
		if err != nil {
			return isa.InstructionResult{}, err
		}
		if !ok {
			return isa.InstructionResult{Bytes: out}, nil
		}
		switch e.Size {
		case 2:
			if n < -128 || n > 255 {
				return isa.InstructionResult{}, &errsink.Error{Kind: errsink.ValueOutOfRange, Message: "operand does not fit in one byte"}
			}
			out[1] = byte(n)
		case 3:
			if n < -32768 || n > 65535 {
				return isa.InstructionResult{}, &errsink.Error{Kind: errsink.ValueOutOfRange, Message: "operand does not fit in two bytes"}
			}
			out[1] = byte(n)
			out[2] = byte(n >> 8)
		}
		return isa.InstructionResult{Bytes: out}, nil
	}
}

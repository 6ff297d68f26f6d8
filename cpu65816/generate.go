package cpu65816

import (
	"lasm/ast"
	"lasm/cpu6502"
	"lasm/errsink"
	"lasm/isa"
)

// longGenerator packs a 3-byte (bank + 16-bit offset) absolute-long
// operand, little-endian, after the opcode byte.
func longGenerator(e cpu6502.Entry) isa.Generator {
	return func(ctx isa.GenContext, info *isa.InstructionInfo, args []ast.Expression) (isa.InstructionResult, error) {
		out := make([]byte, e.Size)
		out[0] = info.Opcode
		n, ok, err := ctx.ResolveArg(args[0])
		if err != nil {
			return isa.InstructionResult{}, err
		}
		if !ok {
			return isa.InstructionResult{Bytes: out}, nil
		}
		if n < 0 || n > 0xFFFFFF {
			return isa.InstructionResult{}, &errsink.Error{Kind: errsink.ValueOutOfRange, Message: "operand does not fit in a 24-bit long address"}
		}
		out[1] = byte(n)
		out[2] = byte(n >> 8)
		out[3] = byte(n >> 16)
		return isa.InstructionResult{Bytes: out}, nil
	}
}

// relativeLongGenerator computes BRL's 16-bit signed displacement from the
// current address to the target, matching the 6502 relative-branch
// generator but with a wider range.
func relativeLongGenerator(e cpu6502.Entry) isa.Generator {
	return func(ctx isa.GenContext, info *isa.InstructionInfo, args []ast.Expression) (isa.InstructionResult, error) {
		out := make([]byte, e.Size)
		out[0] = info.Opcode
		target, ok, err := ctx.ResolveArg(args[0])
		if err != nil {
			return isa.InstructionResult{}, err
		}
		if !ok {
			return isa.InstructionResult{Bytes: out}, nil
		}
		disp := target - (ctx.Address() + int64(e.Size))
		if disp < -32768 || disp > 32767 {
			return isa.InstructionResult{}, &errsink.Error{Kind: errsink.ValueOutOfRange, Message: "relative-long target out of range"}
		}
		out[1] = byte(disp)
		out[2] = byte(disp >> 8)
		return isa.InstructionResult{Bytes: out}, nil
	}
}

// blockMoveGenerator packs MVN/MVP's two bank-byte operands. Both must
// resolve to integers in 0..255; a non-integer operand surfaces whatever
// TYPE_ERROR the interpreter's ResolveArg already raised for it.
func blockMoveGenerator(e cpu6502.Entry) isa.Generator {
	return func(ctx isa.GenContext, info *isa.InstructionInfo, args []ast.Expression) (isa.InstructionResult, error) {
		out := make([]byte, e.Size)
		out[0] = info.Opcode
		dest, ok1, err := ctx.ResolveArg(args[0])
		if err != nil {
			return isa.InstructionResult{}, err
		}
		src, ok2, err := ctx.ResolveArg(args[1])
		if err != nil {
			return isa.InstructionResult{}, err
		}
		if !ok1 || !ok2 {
			return isa.InstructionResult{Bytes: out}, nil
		}
		if dest < 0 || dest > 0xFF || src < 0 || src > 0xFF {
			return isa.InstructionResult{}, &errsink.Error{Kind: errsink.ValueOutOfRange, Message: "block-move bank operand does not fit in one byte"}
		}
		out[1] = byte(dest)
		out[2] = byte(src)
		return isa.InstructionResult{Bytes: out}, nil
	}
}

// wideImmediateGenerator packs an immediate operand in 1 or 2 bytes
// depending on the instruction set's *current* register-width flag at the
// moment generation runs (spec §9, §8 scenario 7), not at parse time.
func wideImmediateGenerator(s *InstructionSet, which string, opcode byte) isa.Generator {
	return func(ctx isa.GenContext, info *isa.InstructionInfo, args []ast.Expression) (isa.InstructionResult, error) {
		bits := s.Bits(which)
		size := 2
		if bits == 16 {
			size = 3
		}
		out := make([]byte, size)
		out[0] = opcode
		n, ok, err := ctx.ResolveArg(args[0])
		if err != nil {
			return isa.InstructionResult{}, err
		}
		if !ok {
			return isa.InstructionResult{Bytes: out}, nil
		}
		out[1] = byte(n)
		if size == 3 {
			out[2] = byte(n >> 8)
		}
		return isa.InstructionResult{Bytes: out}, nil
	}
}

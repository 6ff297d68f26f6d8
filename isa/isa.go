// Package isa is the instruction-set plug-in framework: the seam between
// the CPU-agnostic lexer/parser/interpreter and a concrete CPU's mnemonics,
// addressing modes and code generation (cpu6502, cpu65816). ast does not
// import isa — InstructionStmt.Info and DirectiveStmt.Impl carry plug-in
// data as `any` so the dependency only runs one way, from isa and the
// plug-ins back down to ast.
package isa

import (
	"lasm/ast"
	"lasm/errsink"
	"lasm/token"
)

// Mode is an addressing mode identifier. Each InstructionSet defines its
// own small set of mode constants (cpu6502.Immediate, etc.); isa only
// needs to move them around opaquely.
type Mode int

// InstructionInfo is what the parser attaches to an ast.InstructionStmt
// once it has matched a mnemonic and addressing mode: the mnemonic's
// canonical name, the matched mode, and the Generator that turns resolved
// operands into bytes.
//
// Mode and Opcode are normally fixed for the statement's lifetime, but a
// Generator whose mode depends on an operand's resolved value (e.g. 6502
// zeropage-vs-absolute on a bare operand) may update them on its first run
// and set ModeDecided so every later run -- this statement is generated
// once per pass -- reuses that same mode instead of re-deciding, keeping
// the byte count identical across passes.
type InstructionInfo struct {
	Mnemonic    string
	Mode        Mode
	Opcode      byte
	Gen         Generator
	ModeDecided bool
}

// InstructionResult is what a Generator produces: the encoded bytes. When
// operands are not yet resolvable in pass 0, the bytes are zero placeholders
// of the final length, for the size-discipline invariant.
type InstructionResult struct {
	Bytes []byte
}

// Size returns the number of bytes a result occupies.
func (r InstructionResult) Size() int { return len(r.Bytes) }

// GenContext is the narrow slice of interpreter state a Generator needs:
// the current address (for relative-branch math) and a resolver for the
// instruction's argument expressions that tolerates unresolved symbols
// during pass 0 (returning ok=false rather than an error).
type GenContext interface {
	Address() int64
	ResolveArg(e ast.Expression) (n int64, ok bool, err error)
	Pass() int // 0 or 1
	Bits() int // current accumulator/memory register width in bits; 65816 generators read their own m/x flags instead
}

// Generator encodes one instruction occurrence into bytes. During pass 0 it
// must still return the correct byte count even when ResolveArg reports
// ok=false for an operand (data model invariant c); it should fill
// placeholder zero bytes in that case.
type Generator func(ctx GenContext, info *InstructionInfo, args []ast.Expression) (InstructionResult, error)

// ParserContext is the narrow slice of parser state an InstructionSet needs
// to parse its own mnemonic operands and directive arguments without
// importing the parser package (which imports isa to dispatch into plug-ins,
// so the reverse import would cycle).
type ParserContext interface {
	Peek() token.Token
	Previous() token.Token
	Check(k token.Kind) bool
	Match(kinds ...token.Kind) bool
	Advance() token.Token
	Consume(k token.Kind, msg string) (token.Token, error)
	ParseExpression() (ast.Expression, error)
	Fail(kind errsink.Kind, tok token.Token, format string, args ...any) error
}

// InstructionSet is implemented by each CPU plug-in (cpu6502, cpu65816). The
// lexer consults IsInstruction/IsDirective while classifying identifiers,
// and the parser calls ParseInstruction/ParseDirective to consume the
// operand grammar once a mnemonic or directive has matched.
type InstructionSet interface {
	Name() string
	IsInstruction(mnemonic string) bool
	IsDirective(name string) bool

	// ParseInstruction consumes the mnemonic's operand tokens (already past
	// the mnemonic and any width suffix) and returns the populated
	// statement. suffix is "" or one of "z"/"w"/"l"/"i" (spec §4.2).
	ParseInstruction(p ParserContext, name token.Token, suffix string) (*ast.InstructionStmt, error)

	// ParseDirective consumes a directive's argument tokens (already past
	// the directive name) and returns the populated statement.
	ParseDirective(p ParserContext, name token.Token) (*ast.DirectiveStmt, error)

	// Generate re-dispatches to the Generator recorded on stmt.Info; plug-ins
	// implement this as a one-line type assertion, kept on the interface so
	// the interpreter never needs to know the concrete Info type.
	Generate(ctx GenContext, stmt *ast.InstructionStmt) (InstructionResult, error)

	// ApplyDirective applies a parsed DirectiveStmt's effect (e.g. switching
	// the 65816 accumulator/index width) to the instruction set's own
	// mutable state.
	ApplyDirective(stmt *ast.DirectiveStmt) error

	// SetBits/Bits track the current accumulator or index register width in
	// bits (8 or 16). The 6502 set starts at 8 and has no directive that
	// changes it. 65816's m/x directives call SetBits, and its wide-immediate
	// generator reads Bits to choose a 1- or 2-byte operand, per the
	// original's setBits machinery.
	SetBits(which string, bits int)
	Bits(which string) int
}

// Package cpu6502 is the baseline 6502/65C02 instruction-set plug-in (spec
// §4.3, §8), grounded in the opcode table shape of beevik-go6502's
// instructions.go: one row per (mnemonic, addressing mode) pair carrying an
// opcode byte and an encoded length. cpu65816 embeds this set and layers
// its own wider modes on top, so the table and addressing-mode resolution
// logic here are written to be reused rather than duplicated.
package cpu6502

import (
	"strings"

	"lasm/ast"
	"lasm/errsink"
	"lasm/isa"
	"lasm/token"
)

// Addressing modes, matching beevik-go6502's Mode enumeration in spirit.
const (
	Implied isa.Mode = iota
	Accumulator
	Immediate
	Zeropage
	ZeropageX
	ZeropageY
	Absolute
	AbsoluteX
	AbsoluteY
	Indirect
	IndirectX
	IndirectY
	Relative
)

// Entry records one (opcode, length) pair for a given mode.
type Entry struct {
	Opcode byte
	Size   int
}

// Table maps MNEMONIC -> mode -> Entry. Exported so cpu65816 can start from
// a copy of it and add its own rows.
type Table map[string]map[isa.Mode]Entry

func (t Table) add(mnemonic string, mode isa.Mode, opcode byte, size int) {
	m, ok := t[mnemonic]
	if !ok {
		m = map[isa.Mode]Entry{}
		t[mnemonic] = m
	}
	m[mode] = Entry{Opcode: opcode, Size: size}
}

// Clone returns a deep-enough copy so a derived instruction set (cpu65816)
// can add or override rows without mutating the shared base table.
func (t Table) Clone() Table {
	out := make(Table, len(t))
	for mnemonic, modes := range t {
		cp := make(map[isa.Mode]Entry, len(modes))
		for mode, e := range modes {
			cp[mode] = e
		}
		out[mnemonic] = cp
	}
	return out
}

// BaseTable is the canonical NMOS/CMOS 6502 opcode table, grounded on
// beevik-go6502's data/impl tables (LDA/STA/ADC/SBC/CMP families, branches,
// flag and register transfer instructions, stack ops, shifts, and the
// 65C02 additions STZ/BRA/PHX/PHY/PLX/PLY/TRB/TSB).
func BaseTable() Table {
	t := Table{}

	group := func(mnemonic string, imm, zpg, zpx, abs, abx, aby, idx, idy byte) {
		if imm != 0 {
			t.add(mnemonic, Immediate, imm, 2)
		}
		if zpg != 0 {
			t.add(mnemonic, Zeropage, zpg, 2)
		}
		if zpx != 0 {
			t.add(mnemonic, ZeropageX, zpx, 2)
		}
		if abs != 0 {
			t.add(mnemonic, Absolute, abs, 3)
		}
		if abx != 0 {
			t.add(mnemonic, AbsoluteX, abx, 3)
		}
		if aby != 0 {
			t.add(mnemonic, AbsoluteY, aby, 3)
		}
		if idx != 0 {
			t.add(mnemonic, IndirectX, idx, 2)
		}
		if idy != 0 {
			t.add(mnemonic, IndirectY, idy, 2)
		}
	}

	group("LDA", 0xa9, 0xa5, 0xb5, 0xad, 0xbd, 0xb9, 0xa1, 0xb1)
	group("ADC", 0x69, 0x65, 0x75, 0x6d, 0x7d, 0x79, 0x61, 0x71)
	group("SBC", 0xe9, 0xe5, 0xf5, 0xed, 0xfd, 0xf9, 0xe1, 0xf1)
	group("CMP", 0xc9, 0xc5, 0xd5, 0xcd, 0xdd, 0xd9, 0xc1, 0xd1)
	group("AND", 0x29, 0x25, 0x35, 0x2d, 0x3d, 0x39, 0x21, 0x31)
	group("ORA", 0x09, 0x05, 0x15, 0x0d, 0x1d, 0x19, 0x01, 0x11)
	group("EOR", 0x49, 0x45, 0x55, 0x4d, 0x5d, 0x59, 0x41, 0x51)

	t.add("LDX", Immediate, 0xa2, 2)
	t.add("LDX", Zeropage, 0xa6, 2)
	t.add("LDX", ZeropageY, 0xb6, 2)
	t.add("LDX", Absolute, 0xae, 3)
	t.add("LDX", AbsoluteY, 0xbe, 3)

	t.add("LDY", Immediate, 0xa0, 2)
	t.add("LDY", Zeropage, 0xa4, 2)
	t.add("LDY", ZeropageX, 0xb4, 2)
	t.add("LDY", Absolute, 0xac, 3)
	t.add("LDY", AbsoluteX, 0xbc, 3)

	t.add("STA", Zeropage, 0x85, 2)
	t.add("STA", ZeropageX, 0x95, 2)
	t.add("STA", Absolute, 0x8d, 3)
	t.add("STA", AbsoluteX, 0x9d, 3)
	t.add("STA", AbsoluteY, 0x99, 3)
	t.add("STA", IndirectX, 0x81, 2)
	t.add("STA", IndirectY, 0x91, 2)

	t.add("STX", Zeropage, 0x86, 2)
	t.add("STX", ZeropageY, 0x96, 2)
	t.add("STX", Absolute, 0x8e, 3)

	t.add("STY", Zeropage, 0x84, 2)
	t.add("STY", ZeropageX, 0x94, 2)
	t.add("STY", Absolute, 0x8c, 3)

	t.add("STZ", Zeropage, 0x64, 2)
	t.add("STZ", ZeropageX, 0x74, 2)
	t.add("STZ", Absolute, 0x9c, 3)
	t.add("STZ", AbsoluteX, 0x9e, 3)

	t.add("CPX", Immediate, 0xe0, 2)
	t.add("CPX", Zeropage, 0xe4, 2)
	t.add("CPX", Absolute, 0xec, 3)
	t.add("CPY", Immediate, 0xc0, 2)
	t.add("CPY", Zeropage, 0xc4, 2)
	t.add("CPY", Absolute, 0xcc, 3)

	t.add("BIT", Zeropage, 0x24, 2)
	t.add("BIT", Absolute, 0x2c, 3)

	shiftGroup := func(mnemonic string, acc, zpg, zpx, abs, abx byte) {
		t.add(mnemonic, Accumulator, acc, 1)
		t.add(mnemonic, Zeropage, zpg, 2)
		t.add(mnemonic, ZeropageX, zpx, 2)
		t.add(mnemonic, Absolute, abs, 3)
		t.add(mnemonic, AbsoluteX, abx, 3)
	}
	shiftGroup("ASL", 0x0a, 0x06, 0x16, 0x0e, 0x1e)
	shiftGroup("LSR", 0x4a, 0x46, 0x56, 0x4e, 0x5e)
	shiftGroup("ROL", 0x2a, 0x26, 0x36, 0x2e, 0x3e)
	shiftGroup("ROR", 0x6a, 0x66, 0x76, 0x6e, 0x7e)

	t.add("INC", Zeropage, 0xe6, 2)
	t.add("INC", ZeropageX, 0xf6, 2)
	t.add("INC", Absolute, 0xee, 3)
	t.add("INC", AbsoluteX, 0xfe, 3)
	t.add("DEC", Zeropage, 0xc6, 2)
	t.add("DEC", ZeropageX, 0xd6, 2)
	t.add("DEC", Absolute, 0xce, 3)
	t.add("DEC", AbsoluteX, 0xde, 3)

	implied := func(mnemonic string, opcode byte) { t.add(mnemonic, Implied, opcode, 1) }
	implied("INX", 0xe8)
	implied("INY", 0xc8)
	implied("DEX", 0xca)
	implied("DEY", 0x88)
	implied("TAX", 0xaa)
	implied("TAY", 0xa8)
	implied("TXA", 0x8a)
	implied("TYA", 0x98)
	implied("TSX", 0xba)
	implied("TXS", 0x9a)
	implied("PHA", 0x48)
	implied("PLA", 0x68)
	implied("PHP", 0x08)
	implied("PLP", 0x28)
	implied("PHX", 0xda)
	implied("PLX", 0xfa)
	implied("PHY", 0x5a)
	implied("PLY", 0x7a)
	implied("CLC", 0x18)
	implied("SEC", 0x38)
	implied("CLD", 0xd8)
	implied("SED", 0xf8)
	implied("CLI", 0x58)
	implied("SEI", 0x78)
	implied("CLV", 0xb8)
	implied("NOP", 0xea)
	implied("RTS", 0x60)
	implied("RTI", 0x40)
	implied("BRK", 0x00)
	t.add("BRA", Relative, 0x80, 2)

	t.add("JMP", Absolute, 0x4c, 3)
	t.add("JMP", Indirect, 0x6c, 3)
	t.add("JSR", Absolute, 0x20, 3)

	branch := func(mnemonic string, opcode byte) { t.add(mnemonic, Relative, opcode, 2) }
	branch("BEQ", 0xf0)
	branch("BNE", 0xd0)
	branch("BCC", 0x90)
	branch("BCS", 0xb0)
	branch("BMI", 0x30)
	branch("BPL", 0x10)
	branch("BVC", 0x50)
	branch("BVS", 0x70)

	t.add("TRB", Zeropage, 0x14, 2)
	t.add("TRB", Absolute, 0x1c, 3)
	t.add("TSB", Zeropage, 0x04, 2)
	t.add("TSB", Absolute, 0x0c, 3)

	return t
}

// InstructionSet implements isa.InstructionSet for the 6502/65C02 family.
// Embedding by cpu65816 reuses Table, ParseInstruction's mode-resolution
// logic and Generate; the 65816 plug-in only needs to extend Table and
// override the handful of modes it widens.
type InstructionSet struct {
	Table      Table
	directives map[string]bool
	accBits    int
	idxBits    int
}

// New returns the 6502/65C02 instruction set with no directives registered,
// so its register widths stay at 8 bits unless an embedding set (cpu65816)
// changes them through SetBits.
func New() *InstructionSet {
	return &InstructionSet{Table: BaseTable(), directives: map[string]bool{}, accBits: 8, idxBits: 8}
}

func (s *InstructionSet) Name() string { return "6502" }

func (s *InstructionSet) IsInstruction(mnemonic string) bool {
	_, ok := s.Table[strings.ToUpper(mnemonic)]
	return ok
}

func (s *InstructionSet) IsDirective(name string) bool { return s.directives[strings.ToLower(name)] }

func (s *InstructionSet) SetBits(which string, bits int) {
	if which == "x" {
		s.idxBits = bits
	} else {
		s.accBits = bits
	}
}

func (s *InstructionSet) Bits(which string) int {
	if which == "x" {
		return s.idxBits
	}
	return s.accBits
}

// resolveMode picks the addressing mode for a bare (non-immediate,
// non-indirect) operand given the instruction's registered modes, the
// explicit width suffix, and an optional index register letter ("x"/"y"/"").
// An explicit suffix ("z" or "w") always forces that mode class. Absent a
// suffix, this only runs for mnemonics that register just one of the
// zeropage/absolute pair for the given index -- callers check for that pair
// first and build a value-narrowing generator instead when both are present
// (see zeropageAbsolutePair and makeZeropageOrAbsoluteGenerator) -- so here
// the single registered mode, whichever class it is, is the only candidate.
func resolveMode(entries map[isa.Mode]Entry, suffix, index string) (isa.Mode, bool) {
	var base, baseX, baseY isa.Mode
	switch suffix {
	case "z":
		base, baseX, baseY = Zeropage, ZeropageX, ZeropageY
	case "w", "":
		base, baseX, baseY = Absolute, AbsoluteX, AbsoluteY
	default:
		return 0, false
	}
	pick := base
	if index == "x" {
		pick = baseX
	} else if index == "y" {
		pick = baseY
	}
	if _, ok := entries[pick]; ok {
		return pick, true
	}
	if suffix == "" {
		// Fall back to zeropage-class modes for mnemonics with no absolute
		// form at all.
		pick = Zeropage
		if index == "x" {
			pick = ZeropageX
		} else if index == "y" {
			pick = ZeropageY
		}
		if _, ok := entries[pick]; ok {
			return pick, true
		}
	}
	return 0, false
}

// ParseInstruction implements the one-pass "try the mnemonic's parsers in
// order" dispatch from spec §4.2, collapsed here into a single lookahead
// decision per addressing-mode family since a 6502 mnemonic's operand
// syntax is unambiguous given one token of lookahead.
func (s *InstructionSet) ParseInstruction(p isa.ParserContext, name token.Token, suffix string) (*ast.InstructionStmt, error) {
	mnemonic := strings.ToUpper(name.Lexeme)
	entries, ok := s.Table[mnemonic]
	if !ok {
		return nil, p.Fail(errsink.InvalidInstruction, name, "unknown instruction %q", name.Lexeme)
	}
	if suffix == "i" {
		return nil, p.Fail(errsink.InvalidInstruction, name, "width suffix '.i' is reserved")
	}

	// Implied / accumulator: no operand at all, i.e. the statement ends here.
	if p.Check(token.SEMICOLON) {
		if e, ok := entries[Implied]; ok {
			return s.stmt(name, suffix, Implied, e, nil), nil
		}
		if e, ok := entries[Accumulator]; ok {
			return s.stmt(name, suffix, Accumulator, e, nil), nil
		}
	}

	// Immediate: '#' expr
	if p.Match(token.HASH) {
		e, ok := entries[Immediate]
		if !ok {
			return nil, p.Fail(errsink.InvalidInstruction, name, "%s does not support immediate addressing", mnemonic)
		}
		arg, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		return s.stmt(name, suffix, Immediate, e, []ast.Expression{arg}), nil
	}

	// Indirect family: '(' expr (',' x)? ')' (',' y)?
	if p.Match(token.LPAREN) {
		inner, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		if p.Match(token.COMMA) {
			if err := expectRegister(p, name, "x"); err != nil {
				return nil, err
			}
			if _, err := p.Consume(token.RPAREN, "expected ')' after indexed-indirect operand"); err != nil {
				return nil, err
			}
			e, ok := entries[IndirectX]
			if !ok {
				return nil, p.Fail(errsink.InvalidInstruction, name, "%s does not support (zp,x) addressing", mnemonic)
			}
			return s.stmt(name, suffix, IndirectX, e, []ast.Expression{inner}), nil
		}
		if _, err := p.Consume(token.RPAREN, "expected ')' after indirect operand"); err != nil {
			return nil, err
		}
		if p.Match(token.COMMA) {
			if err := expectRegister(p, name, "y"); err != nil {
				return nil, err
			}
			e, ok := entries[IndirectY]
			if !ok {
				return nil, p.Fail(errsink.InvalidInstruction, name, "%s does not support (zp),y addressing", mnemonic)
			}
			return s.stmt(name, suffix, IndirectY, e, []ast.Expression{inner}), nil
		}
		e, ok := entries[Indirect]
		if !ok {
			return nil, p.Fail(errsink.InvalidInstruction, name, "%s does not support (abs) addressing", mnemonic)
		}
		return s.stmt(name, suffix, Indirect, e, []ast.Expression{inner}), nil
	}

	// Relative: branch mnemonics take a bare target expression.
	if e, ok := entries[Relative]; ok && len(entries) == 1 {
		arg, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		return s.stmt(name, suffix, Relative, e, []ast.Expression{arg}), nil
	}

	// Bare / indexed absolute-or-zeropage operand.
	arg, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	index := ""
	if p.Match(token.COMMA) {
		index, err = parseIndexRegister(p, name)
		if err != nil {
			return nil, err
		}
	}
	if suffix == "" {
		zpMode, absMode := zeropageAbsolutePair(index)
		zp, hasZp := entries[zpMode]
		abs, hasAbs := entries[absMode]
		if hasZp && hasAbs {
			info := &isa.InstructionInfo{
				Mnemonic: mnemonic,
				Mode:     absMode, // provisional: the generator commits to zp or abs on its first run
				Opcode:   abs.Opcode,
				Gen:      makeZeropageOrAbsoluteGenerator(zp, abs, zpMode, absMode),
			}
			return &ast.InstructionStmt{Name: name, Info: info, Suffix: suffix, Args: []ast.Expression{arg}, FullyResolved: true}, nil
		}
	}
	mode, ok := resolveMode(entries, suffix, index)
	if !ok {
		return nil, p.Fail(errsink.InvalidInstruction, name, "%s does not support this addressing mode", mnemonic)
	}
	return s.stmt(name, suffix, mode, entries[mode], []ast.Expression{arg}), nil
}

// zeropageAbsolutePair returns the (zeropage, absolute) mode pair that a
// no-suffix bare operand with the given index register ("x"/"y"/"") would
// resolve between.
func zeropageAbsolutePair(index string) (zp, abs isa.Mode) {
	switch index {
	case "x":
		return ZeropageX, AbsoluteX
	case "y":
		return ZeropageY, AbsoluteY
	default:
		return Zeropage, Absolute
	}
}

func (s *InstructionSet) stmt(name token.Token, suffix string, mode isa.Mode, e Entry, args []ast.Expression) *ast.InstructionStmt {
	info := &isa.InstructionInfo{Mnemonic: strings.ToUpper(name.Lexeme), Mode: mode, Opcode: e.Opcode, Gen: makeGenerator(e)}
	return &ast.InstructionStmt{Name: name, Info: info, Suffix: suffix, Args: args, FullyResolved: true}
}

// ApplyDirective is a no-op for the base 6502 set: it registers none.
func (s *InstructionSet) ApplyDirective(stmt *ast.DirectiveStmt) error { return nil }

// ParseDirective always fails for the base 6502 set since IsDirective never
// reports true for it.
func (s *InstructionSet) ParseDirective(p isa.ParserContext, name token.Token) (*ast.DirectiveStmt, error) {
	return nil, p.Fail(errsink.InvalidInstruction, name, "6502 has no directive %q", name.Lexeme)
}

// Generate re-dispatches to the Generator recorded on the statement's Info
// by ParseInstruction.
func (s *InstructionSet) Generate(ctx isa.GenContext, stmt *ast.InstructionStmt) (isa.InstructionResult, error) {
	info := stmt.Info.(*isa.InstructionInfo)
	return info.Gen(ctx, info, stmt.Args)
}

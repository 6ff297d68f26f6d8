// Package assemble orchestrates one end-to-end run of the engine: scan,
// parse, interpret twice, write binary and symbols (spec §5's ordering
// guarantees). It is the thin "collaborator contract" layer spec §6
// describes, wiring lexer/parser/interpreter/writer behind a single
// Options/Result pair so cmd/lasm's assemble subcommand (and tests) never
// touch those packages directly; the repl subcommand drives them itself.
package assemble

import (
	"lasm/cpu6502"
	"lasm/cpu65816"
	"lasm/errsink"
	"lasm/isa"
	"lasm/token"
)

// Options configures one Assemble call (spec §6's CLI maps almost 1:1 onto
// this struct).
type Options struct {
	CPU          string // "6502" | "65816" | "bf"
	HexPrefix    string // default "0x"
	Delimiter    string // default "."
	AbortOnError bool
}

// withDefaults fills the zero-value fields of o the way the CLI's flag
// defaults do, so callers (tests, the config package) can supply a partial
// Options.
func (o Options) withDefaults() Options {
	if o.CPU == "" {
		o.CPU = "6502"
	}
	if o.HexPrefix == "" {
		o.HexPrefix = "0x"
	}
	if o.Delimiter == "" {
		o.Delimiter = "."
	}
	return o
}

// resolveCPU picks the instruction-set plug-in named by opts.CPU.
// "bf" is a recognized CLI target name (spec §6) with no plug-in shipped
// in this engine (§1 scopes concrete CPU byte tables out of core, and no
// Brainfuck plug-in was retrieved for this module) — it fails BAD_CPU_TARGET
// rather than silently falling back to a different CPU.
func resolveCPU(name string) (isa.InstructionSet, error) {
	switch name {
	case "6502":
		return cpu6502.New(), nil
	case "65816":
		return cpu65816.New(), nil
	default:
		return nil, &errsink.Error{Kind: errsink.BadCPUTarget, Tok: token.Token{},
			Message: "unsupported cpu target " + name}
	}
}

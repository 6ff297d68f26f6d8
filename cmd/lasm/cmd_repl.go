package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/chzyer/readline"
	"github.com/google/subcommands"

	"lasm/assemble"
	"lasm/cpu6502"
	"lasm/cpu65816"
	"lasm/errsink"
	"lasm/interpreter"
	"lasm/isa"
	"lasm/lexer"
	"lasm/parser"
	"lasm/source"
)

type replCmd struct {
	cpu string
}

func (*replCmd) Name() string     { return "repl" }
func (*replCmd) Synopsis() string { return "Start an interactive assembler session" }
func (*replCmd) Usage() string {
	return `repl [-cpu 6502|65816]:
  Start an interactive session. Each line is re-assembled against every
  line entered so far; ".exit" quits.
`
}

func (r *replCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&r.cpu, "cpu", "6502", "target CPU (6502, 65816)")
}

func (r *replCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var iset isa.InstructionSet
	switch r.cpu {
	case "65816":
		iset = cpu65816.New()
	default:
		iset = cpu6502.New()
	}

	rl, err := readline.New(">>> ")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitStatus(1)
	}
	defer rl.Close()

	fmt.Println("lasm interactive session — .exit to quit")

	var lines []string
	for {
		line, err := rl.Readline()
		if err != nil {
			return subcommands.ExitSuccess
		}
		if line == ".exit" {
			return subcommands.ExitSuccess
		}
		lines = append(lines, line)
		runSession(lines, iset)
	}
}

// runSession re-lexes, re-parses, and re-interprets every line entered so
// far, the way the teacher's REPL re-evaluated its whole accumulated buffer
// each turn, but through the real pipeline instead of a toy interpreter.
func runSession(lines []string, iset isa.InstructionSet) {
	text := ""
	for _, l := range lines {
		text += l + "\n"
	}

	sink := errsink.New(false)
	src := source.New("<repl>", text)
	toks := lexer.New(src, iset, sink).Scan()
	if sink.HasErrors() {
		printErrors(sink)
		return
	}

	stmts := parser.New(toks, iset, sink).Parse()
	if sink.HasErrors() {
		printErrors(sink)
		return
	}

	in := interpreter.New(iset, sink, assemble.NewFileReader("."))
	if err := in.Run(stmts); err != nil {
		printErrors(sink)
		return
	}

	fmt.Printf("ok: %d statements, %d bytes emitted\n", len(stmts), emittedBytes(in))
}

func emittedBytes(in *interpreter.Interpreter) int {
	n := 0
	for _, e := range in.Emissions() {
		n += len(e.Result.Bytes)
	}
	return n
}

func printErrors(sink *errsink.Sink) {
	for _, e := range sink.Errors() {
		fmt.Fprintln(os.Stderr, e)
	}
}

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/subcommands"

	"lasm/assemble"
	"lasm/config"
	"lasm/errsink"
)

type assembleCmd struct {
	cpu          string
	out          string
	symbols      string
	hexPrefix    string
	delimiter    string
	abortOnError bool
}

func (*assembleCmd) Name() string     { return "assemble" }
func (*assembleCmd) Synopsis() string { return "Assemble one source file to a binary" }
func (*assembleCmd) Usage() string {
	return `assemble [-cpu 6502|65816] [-o out.bin] [-symbols out.sym] <file.asm>:
  Assemble a source file and write its binary (and optional symbols listing).
`
}

func (c *assembleCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.cpu, "cpu", "", "target CPU (6502, 65816)")
	f.StringVar(&c.out, "o", "", "binary output path (default: input path with .bin)")
	f.StringVar(&c.symbols, "symbols", "", "symbols listing output path (default: none)")
	f.StringVar(&c.hexPrefix, "hex-prefix", "", "hex literal prefix for the symbols listing")
	f.StringVar(&c.delimiter, "delim", "", "scope qualification delimiter for the symbols listing")
	f.BoolVar(&c.abortOnError, "abort-on-error", false, "stop at the first diagnostic instead of collecting")
}

func (c *assembleCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "assemble: no input file given")
		return subcommands.ExitUsageError
	}
	path := args[0]

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitStatus(1)
	}

	opts := assemble.Options{
		CPU:          firstNonEmpty(c.cpu, cfg.Assemble.CPU),
		HexPrefix:    firstNonEmpty(c.hexPrefix, cfg.Assemble.HexPrefix),
		Delimiter:    firstNonEmpty(c.delimiter, cfg.Assemble.Delimiter),
		AbortOnError: c.abortOnError || cfg.Assemble.AbortOnError,
	}

	text, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitStatus(1)
	}

	reader := assemble.NewFileReader(filepath.Dir(path), cfg.Include.SearchPaths...)
	result, sink, err := assemble.Assemble(path, string(text), reader, opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitForSink(sink, err)
	}

	outPath := c.out
	if outPath == "" {
		outPath = trimExt(path) + ".bin"
	}
	if err := os.WriteFile(outPath, result.Binary, 0o644); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitStatus(1)
	}

	if c.symbols != "" {
		if err := os.WriteFile(c.symbols, []byte(result.Symbols), 0o644); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitStatus(1)
		}
	}

	return subcommands.ExitSuccess
}

// exitForSink reports every collected diagnostic and returns the numeric
// Kind of the first one as the process exit code (spec §6). When err was
// raised before any sink diagnostic could accumulate (e.g. BAD_CPU_TARGET,
// an unreadable config file), that's a fatal configuration failure: exit 1.
func exitForSink(sink *errsink.Sink, err error) subcommands.ExitStatus {
	if sink == nil || !sink.HasErrors() {
		return subcommands.ExitStatus(1)
	}
	for _, e := range sink.Errors() {
		fmt.Fprintln(os.Stderr, e)
	}
	return subcommands.ExitStatus(int(sink.Errors()[0].Kind))
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func trimExt(path string) string {
	ext := filepath.Ext(path)
	return path[:len(path)-len(ext)]
}

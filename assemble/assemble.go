package assemble

import (
	"bytes"

	"lasm/errsink"
	"lasm/interpreter"
	"lasm/lexer"
	"lasm/parser"
	"lasm/source"
	"lasm/writer"
)

// Result is the output of one Assemble call: the raw binary and the
// rendered symbols listing (spec §4.5, §6).
type Result struct {
	Binary  []byte
	Symbols string
}

// Assemble runs the full pipeline (spec §5's ordering guarantees: scan
// precedes parse, each pass completes before the next begins, writers run
// strictly after the last pass) over one top-level source file. reader
// resolves any include/incbin paths the source references; it may be nil
// for sources that use neither.
func Assemble(path, text string, reader interpreter.SourceReader, opts Options) (*Result, *errsink.Sink, error) {
	opts = opts.withDefaults()
	sink := errsink.New(opts.AbortOnError)

	iset, err := resolveCPU(opts.CPU)
	if err != nil {
		return nil, sink, err
	}

	src := source.New(path, text)
	toks := lexer.New(src, iset, sink).Scan()
	if sink.Fatal() && sink.HasErrors() {
		return nil, sink, sink.Errors()[0]
	}

	stmts := parser.New(toks, iset, sink).Parse()
	if sink.HasErrors() {
		return nil, sink, sink.Errors()[0]
	}

	interp := interpreter.New(iset, sink, reader)
	if err := interp.Run(stmts); err != nil {
		return nil, sink, err
	}

	var binBuf, symBuf bytes.Buffer
	if err := writer.WriteBinary(&binBuf, interp.Emissions()); err != nil {
		return nil, sink, err
	}
	if err := writer.WriteSymbols(&symBuf, interp.LabelTable(), interp.Globals(), opts.HexPrefix, opts.Delimiter); err != nil {
		return nil, sink, err
	}

	return &Result{Binary: binBuf.Bytes(), Symbols: symBuf.String()}, sink, nil
}

// Package writer implements the two output stages named in spec §4.5: a
// binary writer that concatenates every pass-1 emission in order, and a
// symbols writer that walks the label table and the global variable
// environment to produce a dotted-name listing. Grounded on the plain
// os.File-based file handling informatter-nilan's cmd package uses for its
// own output flags, adapted here to the assembler's byte/emission shapes
// instead of bytecode.
package writer

import (
	"bufio"
	"fmt"
	"io"
	"sort"

	"lasm/interpreter"
	"lasm/value"
)

// WriteBinary concatenates every Emission's bytes, in program order, to w
// (spec §4.5's binary writer; spec §6's binary writer contract says "raw
// bytes, no header").
func WriteBinary(w io.Writer, emissions []interpreter.Emission) error {
	bw := bufio.NewWriter(w)
	for _, e := range emissions {
		if _, err := bw.Write(e.Result.Bytes); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteSymbols walks the label table plus the globals environment and
// emits one "fully.qualified.name = value" line per binding whose value is
// integer, real, or string (spec §4.5 excludes bool/list/callable/nil).
// hexPrefix and delim are the configured formatting knobs from spec §6.
func WriteSymbols(w io.Writer, labelTable []*interpreter.Environment, globals *interpreter.Environment, hexPrefix, delim string) error {
	bw := bufio.NewWriter(w)

	type line struct {
		name string
		val  value.Value
	}
	var lines []line

	for _, env := range labelTable {
		qualified := env.QualifiedName(delim)
		for name, v := range env.Bindings() {
			if !printable(v) {
				continue
			}
			full := name
			if qualified != "" {
				full = qualified + delim + name
			}
			lines = append(lines, line{full, v})
		}
	}
	for name, v := range globals.Bindings() {
		if !printable(v) {
			continue
		}
		lines = append(lines, line{name, v})
	}

	// Deterministic order: the map iteration above is not, and a listing
	// that reshuffles between runs is a poor diff target.
	sort.Slice(lines, func(a, b int) bool { return lines[a].name < lines[b].name })

	for _, l := range lines {
		if _, err := fmt.Fprintf(bw, "%s = %s\n", l.name, l.val.FormatHex(hexPrefix)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func printable(v value.Value) bool {
	switch v.Kind {
	case value.Integer, value.Real, value.String:
		return true
	default:
		return false
	}
}

package interpreter

import (
	"lasm/token"
	"lasm/value"
)

// registerBuiltins installs the global built-in functions named in spec
// §4.4: hi/lo for byte extraction, len/ord for strings and lists, and
// setScopeName for naming the current label environment (used by the
// symbols writer's dotted qualification, spec §4.5).
func (i *Interpreter) registerBuiltins() {
	def := func(name string, arity int, fn func(*Interpreter, []value.Value, token.Token) (value.Value, error)) {
		i.globalVars.Define(name, value.Callable_(&NativeFunction{name: name, arity: arity, fn: fn}))
	}

	def("hi", 1, func(in *Interpreter, args []value.Value, tok token.Token) (value.Value, error) {
		n, ok := asInt(args[0])
		if !ok {
			return value.NilValue, typeErr(tok, "hi() requires a numeric argument")
		}
		return value.Int((n >> 8) & 0xFF), nil
	})

	def("lo", 1, func(in *Interpreter, args []value.Value, tok token.Token) (value.Value, error) {
		n, ok := asInt(args[0])
		if !ok {
			return value.NilValue, typeErr(tok, "lo() requires a numeric argument")
		}
		return value.Int(n & 0xFF), nil
	})

	def("len", 1, func(in *Interpreter, args []value.Value, tok token.Token) (value.Value, error) {
		switch args[0].Kind {
		case value.String:
			return value.Int(int64(len(args[0].S))), nil
		case value.List:
			return value.Int(int64(len(args[0].L))), nil
		default:
			return value.NilValue, typeErr(tok, "len() requires a string or list argument")
		}
	})

	def("ord", 1, func(in *Interpreter, args []value.Value, tok token.Token) (value.Value, error) {
		if args[0].Kind != value.String {
			return value.NilValue, typeErr(tok, "ord() requires a single-character string argument")
		}
		runes := []rune(args[0].S)
		if len(runes) != 1 {
			return value.NilValue, typeErr(tok, "ord() requires a single-character string argument")
		}
		return value.Int(int64(runes[0])), nil
	})

	def("setScopeName", 1, func(in *Interpreter, args []value.Value, tok token.Token) (value.Value, error) {
		if args[0].Kind != value.String {
			return value.NilValue, typeErr(tok, "setScopeName() requires a string argument")
		}
		in.labels.SetName(args[0].S)
		return value.NilValue, nil
	})
}

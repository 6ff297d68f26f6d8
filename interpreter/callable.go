package interpreter

import (
	"lasm/ast"
	"lasm/token"
	"lasm/value"
)

// callable is implemented by both user fn declarations and native
// built-ins; value.Fn only exposes Arity/FnName so call sites in other
// packages never need this package's concrete types, but VisitCall needs
// the extra call method to actually invoke one.
type callable interface {
	value.Fn
	call(in *Interpreter, args []value.Value, paren token.Token) (value.Value, error)
}

// NativeFunction wraps a built-in (hi, lo, len, ord, setScopeName) as a
// value.Fn so it can be stored in an Environment and invoked through the
// same Call expression path as a user fn.
type NativeFunction struct {
	name  string
	arity int
	fn    func(in *Interpreter, args []value.Value, paren token.Token) (value.Value, error)
}

func (n *NativeFunction) Arity() int    { return n.arity }
func (n *NativeFunction) FnName() string { return n.name }

func (n *NativeFunction) call(in *Interpreter, args []value.Value, paren token.Token) (value.Value, error) {
	return n.fn(in, args, paren)
}

// Function is a user-defined "fn" closure. It captures the variable and
// label environments active at definition time (spec §4.4), not at call
// time, so a function sees the scope it was declared in.
type Function struct {
	decl          *ast.FunctionStmt
	closureVars   *Environment
	closureLabels *Environment
}

func (f *Function) Arity() int     { return len(f.decl.Params) }
func (f *Function) FnName() string { return f.decl.Name.Lexeme }

func (f *Function) call(in *Interpreter, args []value.Value, paren token.Token) (value.Value, error) {
	callVars := MakeEnvironment(f.closureVars)
	callLabels := MakeEnvironment(f.closureLabels)
	for idx, p := range f.decl.Params {
		callVars.Define(p.Lexeme, args[idx])
	}

	prevVars, prevLabels := in.vars, in.labels
	in.vars, in.labels = callVars, callLabels
	defer func() { in.vars, in.labels = prevVars, prevLabels }()

	err := in.executeBlock(f.decl.Body)
	if rs, ok := err.(*returnSignal); ok {
		return rs.value, nil
	}
	if err != nil {
		return value.NilValue, err
	}
	return value.NilValue, nil
}

// returnSignal is what a ReturnStmt raises to unwind to its call site
// (spec §9's suggested sentinel-over-unwinding model) without disturbing
// the pass-level error-collection path: Function.call intercepts it, and
// anything that reaches the top-level Run loop unintercepted becomes
// RETURN_OUTSIDE_FUNCTION.
type returnSignal struct {
	value value.Value
}

func (r *returnSignal) Error() string { return "return outside function" }

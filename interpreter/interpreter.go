// Package interpreter is the two-pass tree-walking evaluator (spec §4.4):
// pass 0 walks the program once to discover labels and tolerate forward
// references, pass 1 re-walks it authoritatively and is the only pass whose
// emitted bytes reach the writers. It implements both of ast's visitor
// interfaces, grounded in informatter-nilan's TreeWalkInterpreter/
// Environment pair but upgraded from that reference's panic/recover "any"
// dispatch to typed (value.Value, error) returns throughout, matching the
// rest of this module's error-handling style.
package interpreter

import (
	"fmt"

	"lasm/ast"
	"lasm/errsink"
	"lasm/isa"
	"lasm/lexer"
	"lasm/parser"
	"lasm/source"
	"lasm/token"
	"lasm/value"
)

// Emission is one instruction's or pseudo-op's encoded output, recorded
// only during pass 1, in program order, for the binary and listing
// writers.
type Emission struct {
	Tok     token.Token
	Result  isa.InstructionResult
	Address int64
}

// Interpreter owns the mutable address cursor, pass counter, and the
// parallel variable/label environment chains (spec §3, §5: all state here
// is touched only by the pass currently in progress).
type Interpreter struct {
	sink   *errsink.Sink
	iset   isa.InstructionSet
	reader SourceReader

	globalVars *Environment
	vars       *Environment
	labels     *Environment

	labelTable []*Environment
	emissions  []Emission

	address int64
	pass    int
}

// New builds an Interpreter bound to the given instruction set (for
// Generate/ApplyDirective dispatch and directive-sensitive generators),
// error sink, and source reader (for include/incbin; may be nil if the
// program uses neither).
func New(iset isa.InstructionSet, sink *errsink.Sink, reader SourceReader) *Interpreter {
	globals := MakeEnvironment(nil)
	in := &Interpreter{
		sink:       sink,
		iset:       iset,
		reader:     reader,
		globalVars: globals,
		vars:       globals,
	}
	in.registerBuiltins()
	return in
}

// Emissions returns pass 1's recorded output, in program order, for the
// binary writer.
func (i *Interpreter) Emissions() []Emission { return i.emissions }

// LabelTable returns every label environment produced during the final
// pass, for the symbols writer (spec §4.5).
func (i *Interpreter) LabelTable() []*Environment { return i.labelTable }

// Globals returns the root variable environment, also walked by the
// symbols writer.
func (i *Interpreter) Globals() *Environment { return i.globalVars }

// Run walks stmts twice (spec §4.4's pass discipline): pass 0 resets the
// address and label chain and discovers every label's address, tolerating
// unresolved forward references; pass 1 repeats the walk authoritatively,
// and only its Emissions/LabelTable are meaningful afterward.
func (i *Interpreter) Run(stmts []ast.Stmt) error {
	for pass := 0; pass < 2; pass++ {
		i.pass = pass
		i.address = 0
		i.vars = i.globalVars
		i.labels = MakeEnvironment(nil)
		i.labelTable = []*Environment{i.labels}
		i.emissions = i.emissions[:0]

		for _, s := range stmts {
			if err := i.execute(s); err != nil {
				if _, ok := err.(*returnSignal); ok {
					e := &errsink.Error{Kind: errsink.ReturnOutsideFunction, Message: "return outside function"}
					i.sink.Add(e)
					return e
				}
				se := toSinkErr(err)
				i.sink.Add(se)
				return se
			}
		}
	}
	return nil
}

func (i *Interpreter) execute(s ast.Stmt) error { return s.Accept(i) }

func (i *Interpreter) executeBlock(stmts []ast.Stmt) error {
	for _, s := range stmts {
		if err := i.execute(s); err != nil {
			return err
		}
	}
	return nil
}

func (i *Interpreter) evaluate(e ast.Expression) (value.Value, error) { return e.Accept(i) }

// emit records r's bytes (pass 1 only) and advances the address cursor by
// its size regardless of pass, so labels recorded in later statements land
// on the same address in both passes (the size-discipline invariant, spec
// §4.3).
func (i *Interpreter) emit(tok token.Token, r isa.InstructionResult) {
	if i.pass == 1 {
		i.emissions = append(i.emissions, Emission{Tok: tok, Result: r, Address: i.address})
	}
	i.address += int64(len(r.Bytes))
}

func typeErr(tok token.Token, msg string) error {
	return &errsink.Error{Kind: errsink.TypeError, Tok: tok, Message: msg}
}

func toSinkErr(err error) *errsink.Error {
	if e, ok := err.(*errsink.Error); ok {
		return e
	}
	return &errsink.Error{Kind: errsink.TypeError, Message: err.Error()}
}

// asInt coerces a scalar value to an address/count-sized integer. A nil
// value (pass 0's unresolved-reference placeholder) is accepted as 0 so
// statements like org/align/bss that need a concrete number during pass 0
// still make forward progress; anything non-scalar is rejected.
func asInt(v value.Value) (int64, bool) {
	switch v.Kind {
	case value.Integer:
		return v.I, true
	case value.Real:
		return int64(v.R), true
	case value.Nil:
		return 0, true
	default:
		return 0, false
	}
}

// ---- isa.GenContext ----

func (i *Interpreter) Address() int64 { return i.address }
func (i *Interpreter) Pass() int      { return i.pass }

// Bits reports the accumulator/memory register width; 65816 generators
// that also need the index-register width bypass this and close over the
// concrete *cpu65816.InstructionSet directly (see DESIGN.md).
func (i *Interpreter) Bits() int { return i.iset.Bits("") }

func (i *Interpreter) ResolveArg(e ast.Expression) (int64, bool, error) {
	v, err := i.evaluate(e)
	if err != nil {
		return 0, false, err
	}
	if v.Kind == value.Nil {
		if i.pass == 0 {
			return 0, false, nil
		}
		return 0, false, &errsink.Error{Kind: errsink.UndefinedRef, Message: "operand did not resolve to a value"}
	}
	switch v.Kind {
	case value.Integer:
		return v.I, true, nil
	case value.Real:
		return int64(v.R), true, nil
	default:
		return 0, false, &errsink.Error{Kind: errsink.TypeError, Message: fmt.Sprintf("operand must be numeric, got %s", v.Kind)}
	}
}

// ---- ast.StmtVisitor ----

func (i *Interpreter) VisitExpressionStmt(s ast.ExpressionStmt) error {
	_, err := i.evaluate(s.Expression)
	return err
}

func (i *Interpreter) VisitLetStmt(s ast.LetStmt) error {
	v := value.NilValue
	if s.Init != nil {
		var err error
		v, err = i.evaluate(s.Init)
		if err != nil {
			return err
		}
	}
	if _, ok := i.labels.DefinedLocally(s.Name.Lexeme); ok {
		return &errsink.Error{Kind: errsink.DuplicateLabel, Tok: s.Name,
			Message: fmt.Sprintf("%q is already bound as a label in this scope", s.Name.Lexeme)}
	}
	i.vars.Define(s.Name.Lexeme, v)
	return nil
}

func (i *Interpreter) VisitBlockStmt(s ast.BlockStmt) error {
	prevVars, prevLabels := i.vars, i.labels
	blockVars := MakeEnvironment(prevVars)
	blockLabels := MakeEnvironment(prevLabels)
	i.labelTable = append(i.labelTable, blockLabels)
	i.vars, i.labels = blockVars, blockLabels
	defer func() { i.vars, i.labels = prevVars, prevLabels }()
	return i.executeBlock(s.Stmts)
}

func (i *Interpreter) VisitIfStmt(s ast.IfStmt) error {
	cond, err := i.evaluate(s.Cond)
	if err != nil {
		return err
	}
	if cond.IsTruthy() {
		return i.execute(s.Then)
	}
	if s.Else != nil {
		return i.execute(s.Else)
	}
	return nil
}

func (i *Interpreter) VisitWhileStmt(s ast.WhileStmt) error {
	for {
		cond, err := i.evaluate(s.Cond)
		if err != nil {
			return err
		}
		if !cond.IsTruthy() {
			return nil
		}
		if err := i.execute(s.Body); err != nil {
			return err
		}
	}
}

func (i *Interpreter) VisitFunctionStmt(s *ast.FunctionStmt) error {
	fn := &Function{decl: s, closureVars: i.vars, closureLabels: i.labels}
	i.vars.Define(s.Name.Lexeme, value.Callable_(fn))
	return nil
}

func (i *Interpreter) VisitReturnStmt(s ast.ReturnStmt) error {
	v := value.NilValue
	if s.Value != nil {
		var err error
		v, err = i.evaluate(s.Value)
		if err != nil {
			return err
		}
	}
	return &returnSignal{value: v}
}

// VisitLabelStmt binds Name to the current address in the current label
// environment. Pass 0 records it; pass 1 re-derives the same address and
// is expected to agree (scenario invariant 2) — it simply rebinds, since
// any divergence will already have surfaced as a generator size mismatch
// upstream.
func (i *Interpreter) VisitLabelStmt(s ast.LabelStmt) error {
	if _, ok := i.vars.DefinedLocally(s.Name.Lexeme); ok {
		return &errsink.Error{Kind: errsink.DuplicateLabel, Tok: s.Name,
			Message: fmt.Sprintf("%q is already bound as a variable in this scope", s.Name.Lexeme)}
	}
	i.labels.Define(s.Name.Lexeme, value.Int(i.address))
	return nil
}

func (i *Interpreter) VisitInstructionStmt(s *ast.InstructionStmt) error {
	result, err := i.iset.Generate(i, s)
	if err != nil {
		return toSinkErr(err)
	}
	i.emit(s.Name, result)
	return nil
}

func (i *Interpreter) VisitDirectiveStmt(s *ast.DirectiveStmt) error {
	return i.iset.ApplyDirective(s)
}

func (i *Interpreter) VisitOrgStmt(s ast.OrgStmt) error {
	v, err := i.evaluate(s.Addr)
	if err != nil {
		return err
	}
	n, ok := asInt(v)
	if !ok {
		return typeErr(s.Keyword, "org address must be numeric")
	}
	i.address = n
	return nil
}

func (i *Interpreter) VisitAlignStmt(s ast.AlignStmt) error {
	toV, err := i.evaluate(s.To)
	if err != nil {
		return err
	}
	to, ok := asInt(toV)
	if !ok || to <= 0 {
		return typeErr(s.Keyword, "align boundary must be a positive integer")
	}
	fill := int64(0)
	if s.Fill != nil {
		fv, err := i.evaluate(s.Fill)
		if err != nil {
			return err
		}
		fill, ok = asInt(fv)
		if !ok {
			return typeErr(s.Keyword, "align fill value must be numeric")
		}
	}
	pad := (to - i.address%to) % to
	for k := int64(0); k < pad; k++ {
		i.emit(s.Keyword, isa.InstructionResult{Bytes: []byte{byte(fill)}})
	}
	return nil
}

func (i *Interpreter) VisitFillStmt(s ast.FillStmt) error {
	toV, err := i.evaluate(s.ToAddr)
	if err != nil {
		return err
	}
	to, ok := asInt(toV)
	if !ok {
		return typeErr(s.Keyword, "fill target address must be numeric")
	}
	vv, err := i.evaluate(s.Value)
	if err != nil {
		return err
	}
	fill, ok := asInt(vv)
	if !ok {
		return typeErr(s.Keyword, "fill value must be numeric")
	}
	n := to - i.address
	if n < 0 {
		return &errsink.Error{Kind: errsink.ValueOutOfRange, Tok: s.Keyword,
			Message: "fill target address is already behind the current address"}
	}
	for k := int64(0); k < n; k++ {
		i.emit(s.Keyword, isa.InstructionResult{Bytes: []byte{byte(fill)}})
	}
	return nil
}

func (i *Interpreter) VisitDefineByteStmt(s ast.DefineByteStmt) error {
	for _, expr := range s.Values {
		v, err := i.evaluate(expr)
		if err != nil {
			return err
		}
		n, ok := asInt(v)
		if !ok {
			return typeErr(s.Keyword, "define-byte value must be numeric")
		}
		out := make([]byte, s.UnitSize)
		u := uint64(n)
		for k := 0; k < s.UnitSize; k++ {
			shift := k
			if s.Endianness == "big" {
				shift = s.UnitSize - 1 - k
			}
			out[k] = byte(u >> (8 * uint(shift)))
		}
		i.emit(s.Keyword, isa.InstructionResult{Bytes: out})
	}
	return nil
}

func (i *Interpreter) VisitBssStmt(s ast.BssStmt) error {
	v, err := i.evaluate(s.Start)
	if err != nil {
		return err
	}
	start, ok := asInt(v)
	if !ok {
		return typeErr(s.Keyword, "bss start address must be numeric")
	}
	i.address = start
	for _, decl := range s.Declarations {
		sv, err := i.evaluate(decl.Size)
		if err != nil {
			return err
		}
		size, ok := asInt(sv)
		if !ok {
			return typeErr(decl.Name, "bss declaration size must be numeric")
		}
		i.labels.Define(decl.Name.Lexeme, value.Int(i.address))
		i.address += size
	}
	return nil
}

// VisitIncludeStmt parses the named file once, caching its statements on
// the AST node across passes (spec §9's multi-pass statement caching).
// Entering the included file's own directory is scoped around executing
// its (cached) statements every pass, not just the first parse, so that
// an include nested inside it resolves relative paths correctly on pass 1
// too (spec §5's scoped acquire/release, composing across nested includes).
func (i *Interpreter) VisitIncludeStmt(s *ast.IncludeStmt) error {
	if i.reader == nil {
		return &errsink.Error{Kind: errsink.FileNotFound, Tok: s.Keyword, Message: "no source reader configured"}
	}
	if !s.Parsed {
		text, err := i.reader.ReadText(s.Path)
		if err != nil {
			return &errsink.Error{Kind: errsink.FileNotFound, Tok: s.Keyword, Message: fmt.Sprintf("cannot read %q: %v", s.Path, err)}
		}
		src := source.New(s.Path, text)
		toks := lexer.New(src, i.iset, i.sink).Scan()
		s.CachedStmts = parser.New(toks, i.iset, i.sink).Parse()
		s.Parsed = true
	}
	restore, err := i.reader.ChangeDir(s.Path, true)
	if err != nil {
		return &errsink.Error{Kind: errsink.FileNotFound, Tok: s.Keyword, Message: fmt.Sprintf("cannot enter directory of %q: %v", s.Path, err)}
	}
	defer restore()
	return i.executeBlock(s.CachedStmts)
}

func (i *Interpreter) VisitIncbinStmt(s *ast.IncbinStmt) error {
	if !s.Loaded {
		if i.reader == nil {
			return &errsink.Error{Kind: errsink.FileNotFound, Tok: s.Keyword, Message: "no source reader configured"}
		}
		data, err := i.reader.ReadBinary(s.Path)
		if err != nil {
			return &errsink.Error{Kind: errsink.FileNotFound, Tok: s.Keyword, Message: fmt.Sprintf("cannot read %q: %v", s.Path, err)}
		}
		s.CachedBytes = data
		s.Loaded = true
	}
	i.emit(s.Keyword, isa.InstructionResult{Bytes: append([]byte(nil), s.CachedBytes...)})
	return nil
}

// ---- ast.ExpressionVisitor ----

func (i *Interpreter) VisitLiteral(e ast.Literal) (value.Value, error) { return e.Value, nil }

func (i *Interpreter) VisitGrouping(e ast.Grouping) (value.Value, error) { return i.evaluate(e.Inner) }

func (i *Interpreter) VisitUnary(e ast.Unary) (value.Value, error) {
	right, err := i.evaluate(e.Right)
	if err != nil {
		return value.NilValue, err
	}
	if i.pass == 0 && right.Kind == value.Nil && e.Operator.Kind != token.BANG {
		return value.NilValue, nil
	}
	switch e.Operator.Kind {
	case token.MINUS:
		switch right.Kind {
		case value.Integer:
			return value.Int(-right.I), nil
		case value.Real:
			return value.Real_(-right.R), nil
		default:
			return value.NilValue, typeErr(e.Operator, "unary '-' requires a numeric operand")
		}
	case token.BANG:
		return value.Bool_(!right.IsTruthy()), nil
	case token.TILDE:
		if right.Kind != value.Integer {
			return value.NilValue, typeErr(e.Operator, "unary '~' requires an integer operand")
		}
		return value.Int(^right.I), nil
	default:
		return value.NilValue, typeErr(e.Operator, fmt.Sprintf("unsupported unary operator %q", e.Operator.Lexeme))
	}
}

func (i *Interpreter) VisitBinary(e ast.Binary) (value.Value, error) {
	left, err := i.evaluate(e.Left)
	if err != nil {
		return value.NilValue, err
	}
	right, err := i.evaluate(e.Right)
	if err != nil {
		return value.NilValue, err
	}
	op := e.Operator.Kind

	switch op {
	case token.EQ:
		return value.Bool_(left.Equal(right)), nil
	case token.NEQ:
		return value.Bool_(!left.Equal(right)), nil
	}

	// A pass-0 nil placeholder (an unresolved forward reference) propagates
	// through the operator instead of failing the pass.
	if i.pass == 0 && (left.Kind == value.Nil || right.Kind == value.Nil) {
		return value.NilValue, nil
	}

	switch op {
	case token.PLUS:
		// '+' is addition on numbers, concatenation on two strings; every
		// other pairing is a type error (spec §9's resolved open question —
		// the reference evaluator's commented-out '+' case actually
		// performed subtraction, which this rewrite does not reproduce).
		if left.Kind == value.String && right.Kind == value.String {
			return value.Str(left.S + right.S), nil
		}
		if left.Kind == value.Integer && right.Kind == value.Integer {
			return value.Int(left.I + right.I), nil
		}
		if lf, lok := left.AsFloat64(); lok {
			if rf, rok := right.AsFloat64(); rok {
				return value.Real_(lf + rf), nil
			}
		}
		return value.NilValue, typeErr(e.Operator, "'+' requires two numbers or two strings")

	case token.MINUS:
		if left.Kind == value.Integer && right.Kind == value.Integer {
			return value.Int(left.I - right.I), nil
		}
		lf, lok := left.AsFloat64()
		rf, rok := right.AsFloat64()
		if !lok || !rok {
			return value.NilValue, typeErr(e.Operator, "'-' requires numeric operands")
		}
		return value.Real_(lf - rf), nil

	case token.STAR:
		if left.Kind == value.Integer && right.Kind == value.Integer {
			return value.Int(left.I * right.I), nil
		}
		lf, lok := left.AsFloat64()
		rf, rok := right.AsFloat64()
		if !lok || !rok {
			return value.NilValue, typeErr(e.Operator, "'*' requires numeric operands")
		}
		return value.Real_(lf * rf), nil

	case token.SLASH:
		if left.Kind == value.Integer && right.Kind == value.Integer {
			if right.I == 0 {
				return value.NilValue, &errsink.Error{Kind: errsink.DivisionByZero, Tok: e.Operator, Message: "division by zero"}
			}
			return value.Int(left.I / right.I), nil
		}
		lf, lok := left.AsFloat64()
		rf, rok := right.AsFloat64()
		if !lok || !rok {
			return value.NilValue, typeErr(e.Operator, "'/' requires numeric operands")
		}
		return value.Real_(lf / rf), nil

	case token.PERCENT:
		if left.Kind != value.Integer || right.Kind != value.Integer {
			return value.NilValue, typeErr(e.Operator, "'%' requires integer operands")
		}
		if right.I == 0 {
			return value.NilValue, &errsink.Error{Kind: errsink.DivisionByZero, Tok: e.Operator, Message: "division by zero"}
		}
		return value.Int(left.I % right.I), nil

	case token.AMP, token.PIPE, token.CARET, token.SHL, token.SHR:
		if left.Kind != value.Integer || right.Kind != value.Integer {
			return value.NilValue, typeErr(e.Operator, "bitwise operators require integer operands")
		}
		switch op {
		case token.AMP:
			return value.Int(left.I & right.I), nil
		case token.PIPE:
			return value.Int(left.I | right.I), nil
		case token.CARET:
			return value.Int(left.I ^ right.I), nil
		case token.SHL:
			return value.Int(left.I << uint(right.I)), nil
		default: // token.SHR
			return value.Int(left.I >> uint(right.I)), nil
		}

	case token.LT, token.LE, token.GT, token.GE:
		lf, lok := left.AsFloat64()
		rf, rok := right.AsFloat64()
		if !lok || !rok {
			return value.NilValue, typeErr(e.Operator, "comparisons require numeric operands")
		}
		switch op {
		case token.LT:
			return value.Bool_(lf < rf), nil
		case token.LE:
			return value.Bool_(lf <= rf), nil
		case token.GT:
			return value.Bool_(lf > rf), nil
		default: // token.GE
			return value.Bool_(lf >= rf), nil
		}
	}
	return value.NilValue, typeErr(e.Operator, fmt.Sprintf("unsupported operator %q", e.Operator.Lexeme))
}

func (i *Interpreter) VisitLogical(e ast.Logical) (value.Value, error) {
	left, err := i.evaluate(e.Left)
	if err != nil {
		return value.NilValue, err
	}
	if e.Operator.Kind == token.OROR {
		if left.IsTruthy() {
			return left, nil
		}
	} else {
		if !left.IsTruthy() {
			return left, nil
		}
	}
	return i.evaluate(e.Right)
}

// VisitVariable looks up the innermost variable binding, then the innermost
// label binding (spec §3: "variables shadow labels during lookup"). A miss
// during pass 0 yields a nil placeholder rather than failing the pass
// (invariant c); the same miss during pass 1 is a fatal UNDEFINED_REF.
func (i *Interpreter) VisitVariable(e ast.Variable) (value.Value, error) {
	if v, ok := i.vars.Get(e.Name.Lexeme); ok {
		return v, nil
	}
	if v, ok := i.labels.Get(e.Name.Lexeme); ok {
		return v, nil
	}
	if i.pass == 0 {
		return value.NilValue, nil
	}
	return value.NilValue, &errsink.Error{Kind: errsink.UndefinedRef, Tok: e.Name,
		Message: fmt.Sprintf("undefined reference %q", e.Name.Lexeme)}
}

func (i *Interpreter) VisitAssign(e ast.Assign) (value.Value, error) {
	v, err := i.evaluate(e.Value)
	if err != nil {
		return value.NilValue, err
	}
	if !i.vars.Assign(e.Name.Lexeme, v) {
		return value.NilValue, &errsink.Error{Kind: errsink.UndefinedRef, Tok: e.Name,
			Message: fmt.Sprintf("assignment to undefined variable %q", e.Name.Lexeme)}
	}
	return v, nil
}

func (i *Interpreter) VisitCall(e ast.Call) (value.Value, error) {
	calleeVal, err := i.evaluate(e.Callee)
	if err != nil {
		return value.NilValue, err
	}
	fn, ok := calleeVal.C.(callable)
	if calleeVal.Kind != value.Callable || !ok {
		return value.NilValue, typeErr(e.Paren, "value is not callable")
	}
	args := make([]value.Value, len(e.Args))
	for idx, a := range e.Args {
		v, err := i.evaluate(a)
		if err != nil {
			return value.NilValue, err
		}
		args[idx] = v
	}
	if len(args) != fn.Arity() {
		return value.NilValue, &errsink.Error{Kind: errsink.ArityError, Tok: e.Paren,
			Message: fmt.Sprintf("%s expects %d argument(s), got %d", fn.FnName(), fn.Arity(), len(args))}
	}
	return fn.call(i, args, e.Paren)
}

func (i *Interpreter) VisitList(e ast.List) (value.Value, error) {
	items := make([]value.Value, len(e.Elements))
	for idx, el := range e.Elements {
		v, err := i.evaluate(el)
		if err != nil {
			return value.NilValue, err
		}
		items[idx] = v
	}
	return value.List_(items), nil
}

func (i *Interpreter) VisitIndex(e ast.Index) (value.Value, error) {
	obj, err := i.evaluate(e.Object)
	if err != nil {
		return value.NilValue, err
	}
	at, err := i.evaluate(e.At)
	if err != nil {
		return value.NilValue, err
	}
	if obj.Kind != value.List {
		return value.NilValue, typeErr(e.Bracket, "index target must be a list")
	}
	if at.Kind != value.Integer {
		return value.NilValue, typeErr(e.Bracket, "index must be an integer")
	}
	if at.I < 0 || at.I >= int64(len(obj.L)) {
		return value.NilValue, &errsink.Error{Kind: errsink.ValueOutOfRange, Tok: e.Bracket, Message: "index out of range"}
	}
	return obj.L[at.I], nil
}

func (i *Interpreter) VisitIndexAssign(e ast.IndexAssign) (value.Value, error) {
	obj, err := i.evaluate(e.Object)
	if err != nil {
		return value.NilValue, err
	}
	at, err := i.evaluate(e.At)
	if err != nil {
		return value.NilValue, err
	}
	v, err := i.evaluate(e.Value)
	if err != nil {
		return value.NilValue, err
	}
	if obj.Kind != value.List {
		return value.NilValue, typeErr(e.Bracket, "index target must be a list")
	}
	if at.Kind != value.Integer {
		return value.NilValue, typeErr(e.Bracket, "index must be an integer")
	}
	if at.I < 0 || at.I >= int64(len(obj.L)) {
		return value.NilValue, &errsink.Error{Kind: errsink.ValueOutOfRange, Tok: e.Bracket, Message: "index out of range"}
	}
	obj.L[at.I] = v
	return v, nil
}

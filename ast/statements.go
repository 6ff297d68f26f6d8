package ast

import "lasm/token"

// StmtVisitor is implemented by anything that walks statement nodes.
// Statements have no result value; they return only an error.
type StmtVisitor interface {
	VisitExpressionStmt(ExpressionStmt) error
	VisitLetStmt(LetStmt) error
	VisitBlockStmt(BlockStmt) error
	VisitIfStmt(IfStmt) error
	VisitWhileStmt(WhileStmt) error
	VisitFunctionStmt(*FunctionStmt) error
	VisitReturnStmt(ReturnStmt) error
	VisitLabelStmt(LabelStmt) error
	VisitInstructionStmt(*InstructionStmt) error
	VisitDirectiveStmt(*DirectiveStmt) error
	VisitOrgStmt(OrgStmt) error
	VisitAlignStmt(AlignStmt) error
	VisitFillStmt(FillStmt) error
	VisitDefineByteStmt(DefineByteStmt) error
	VisitBssStmt(BssStmt) error
	VisitIncludeStmt(*IncludeStmt) error
	VisitIncbinStmt(*IncbinStmt) error
}

// Stmt is the base interface for every statement AST node.
type Stmt interface {
	Accept(v StmtVisitor) error
}

// ExpressionStmt evaluates an expression and discards the result.
type ExpressionStmt struct {
	Expression Expression
}

func (s ExpressionStmt) Accept(v StmtVisitor) error { return v.VisitExpressionStmt(s) }

// LetStmt declares (or, per spec §4.4, reassigns) a variable in the
// innermost variable environment.
type LetStmt struct {
	Name Token
	Init Expression
}

func (s LetStmt) Accept(v StmtVisitor) error { return v.VisitLetStmt(s) }

// Token is a thin alias so LetStmt reads naturally; it is exactly
// token.Token.
type Token = token.Token

// BlockStmt introduces a fresh variable/label environment pair.
type BlockStmt struct {
	Stmts []Stmt
}

func (s BlockStmt) Accept(v StmtVisitor) error { return v.VisitBlockStmt(s) }

// IfStmt is a conditional; Else is nil when there is no else-branch.
type IfStmt struct {
	Cond Expression
	Then Stmt
	Else Stmt
}

func (s IfStmt) Accept(v StmtVisitor) error { return v.VisitIfStmt(s) }

// WhileStmt is a pre-tested loop.
type WhileStmt struct {
	Cond Expression
	Body Stmt
}

func (s WhileStmt) Accept(v StmtVisitor) error { return v.VisitWhileStmt(s) }

// FunctionStmt declares a user function; the interpreter captures the
// environments active at definition time into a closure.
type FunctionStmt struct {
	Name   token.Token
	Params []token.Token
	Body   []Stmt
}

func (s *FunctionStmt) Accept(v StmtVisitor) error { return v.VisitFunctionStmt(s) }

// ReturnStmt unwinds to the nearest enclosing function call. Value is nil
// for a bare "return;".
type ReturnStmt struct {
	Keyword token.Token
	Value   Expression
}

func (s ReturnStmt) Accept(v StmtVisitor) error { return v.VisitReturnStmt(s) }

// LabelStmt binds Name to the current address in the current label
// environment (pass 0); pass 1 verifies the address is unchanged.
type LabelStmt struct {
	Name token.Token
}

func (s LabelStmt) Accept(v StmtVisitor) error { return v.VisitLabelStmt(s) }

// InstructionStmt is a single CPU instruction. Info holds a
// *isa.InstructionInfo assigned by the active instruction set during
// parsing (stored as `any` here so the leaf ast package need not import the
// instruction-set framework). FullyResolved is set to true by the
// instruction set at parse time; the interpreter does not clear it when a
// pass-0 operand lookup is unresolved. Generators instead emit zero
// placeholder bytes of the final size for such operands.
type InstructionStmt struct {
	Name          token.Token
	Info          any
	Suffix        string // width suffix: "", "z", "w", "l", "i"
	Args          []Expression
	FullyResolved bool
}

func (s *InstructionStmt) Accept(v StmtVisitor) error { return v.VisitInstructionStmt(s) }

// DirectiveStmt is a CPU-specific pseudo-op (e.g. "m16", "x8") dispatched to
// the instruction set's own directive parser. Impl carries whatever the
// plug-in's directive parser produced (e.g. a closure or small data
// record) for the interpreter to apply.
type DirectiveStmt struct {
	Name token.Token
	Args []Expression
	Impl any
}

func (s *DirectiveStmt) Accept(v StmtVisitor) error { return v.VisitDirectiveStmt(s) }

// OrgStmt sets the emission address.
type OrgStmt struct {
	Keyword token.Token
	Addr    Expression
}

func (s OrgStmt) Accept(v StmtVisitor) error { return v.VisitOrgStmt(s) }

// AlignStmt pads the address up to the next multiple of To, emitting Fill
// bytes (default 0).
type AlignStmt struct {
	Keyword token.Token
	To      Expression
	Fill    Expression
}

func (s AlignStmt) Accept(v StmtVisitor) error { return v.VisitAlignStmt(s) }

// FillStmt emits Value bytes until the address reaches ToAddr.
type FillStmt struct {
	Keyword token.Token
	ToAddr  Expression
	Value   Expression
}

func (s FillStmt) Accept(v StmtVisitor) error { return v.VisitFillStmt(s) }

// DefineByteStmt emits each evaluated value packed to UnitSize bytes
// (1/2/4) in the declared Endianness ("little" or "big").
type DefineByteStmt struct {
	Keyword    token.Token
	Values     []Expression
	UnitSize   int
	Endianness string
}

func (s DefineByteStmt) Accept(v StmtVisitor) error { return v.VisitDefineByteStmt(s) }

// BssDecl is a single reserved-space declaration inside a bss block: a name
// bound to the running address, advanced by Size bytes.
type BssDecl struct {
	Name token.Token
	Size Expression
}

// BssStmt sets the address to Start, then walks Declarations, binding each
// name to the then-current address and advancing by its size, emitting no
// bytes (data model invariant e).
type BssStmt struct {
	Keyword      token.Token
	Start        Expression
	Declarations []BssDecl
}

func (s BssStmt) Accept(v StmtVisitor) error { return v.VisitBssStmt(s) }

// IncludeStmt parses the named file once (CachedStmts/Parsed survive across
// passes) and executes its statements in the current scope.
type IncludeStmt struct {
	Keyword     token.Token
	Path        string
	CachedStmts []Stmt
	Parsed      bool
}

func (s *IncludeStmt) Accept(v StmtVisitor) error { return v.VisitIncludeStmt(s) }

// IncbinStmt reads the named file once (CachedBytes/Loaded survive across
// passes) and emits its bytes verbatim.
type IncbinStmt struct {
	Keyword     token.Token
	Path        string
	CachedBytes []byte
	Loaded      bool
}

func (s *IncbinStmt) Accept(v StmtVisitor) error { return v.VisitIncbinStmt(s) }

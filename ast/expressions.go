// Package ast defines the expression and statement node types produced by
// the parser and walked by the interpreter. Expression and Stmt both follow
// the visitor dispatch pattern: a node's Accept method calls back into the
// matching method of whichever ExpressionVisitor/StmtVisitor is walking it,
// so new behaviors (interpretation, pretty-printing) can be added without
// touching the node types themselves.
package ast

import (
	"lasm/token"
	"lasm/value"
)

// ExpressionVisitor is implemented by anything that walks expression nodes.
// Each Visit method returns the Value the expression evaluates to, or an
// error (spec §4.4's expression semantics).
type ExpressionVisitor interface {
	VisitLiteral(Literal) (value.Value, error)
	VisitGrouping(Grouping) (value.Value, error)
	VisitUnary(Unary) (value.Value, error)
	VisitBinary(Binary) (value.Value, error)
	VisitLogical(Logical) (value.Value, error)
	VisitVariable(Variable) (value.Value, error)
	VisitAssign(Assign) (value.Value, error)
	VisitCall(Call) (value.Value, error)
	VisitList(List) (value.Value, error)
	VisitIndex(Index) (value.Value, error)
	VisitIndexAssign(IndexAssign) (value.Value, error)
}

// Expression is the base interface for every expression AST node.
type Expression interface {
	Accept(v ExpressionVisitor) (value.Value, error)
}

// Literal is a constant value baked into the source: a number, string,
// bool or nil.
type Literal struct {
	Value value.Value
}

func (e Literal) Accept(v ExpressionVisitor) (value.Value, error) { return v.VisitLiteral(e) }

// Grouping is a parenthesized expression, kept only to preserve the
// author's intent through pretty-printing; it has no evaluation effect
// beyond its inner expression.
type Grouping struct {
	Inner Expression
}

func (e Grouping) Accept(v ExpressionVisitor) (value.Value, error) { return v.VisitGrouping(e) }

// Unary is a prefix operator: '-', '!' or '~'.
type Unary struct {
	Operator token.Token
	Right    Expression
}

func (e Unary) Accept(v ExpressionVisitor) (value.Value, error) { return v.VisitUnary(e) }

// Binary is an infix arithmetic, comparison, or bitwise operator.
type Binary struct {
	Left     Expression
	Operator token.Token
	Right    Expression
}

func (e Binary) Accept(v ExpressionVisitor) (value.Value, error) { return v.VisitBinary(e) }

// Logical is '&&' or '||', which short-circuit and therefore cannot share
// Binary's eager-evaluate-both-sides dispatch.
type Logical struct {
	Left     Expression
	Operator token.Token
	Right    Expression
}

func (e Logical) Accept(v ExpressionVisitor) (value.Value, error) { return v.VisitLogical(e) }

// Variable reads a binding by name; the interpreter looks it up through the
// variable environment chain first, then the label environment chain
// (spec §3: "Variables shadow labels during lookup").
type Variable struct {
	Name token.Token
}

func (e Variable) Accept(v ExpressionVisitor) (value.Value, error) { return v.VisitVariable(e) }

// Assign rebinds an existing variable name to a new value.
type Assign struct {
	Name  token.Token
	Value Expression
}

func (e Assign) Accept(v ExpressionVisitor) (value.Value, error) { return v.VisitAssign(e) }

// Call invokes a callable value (native built-in or user fn) with evaluated
// arguments.
type Call struct {
	Callee Expression
	Paren  token.Token
	Args   []Expression
}

func (e Call) Accept(v ExpressionVisitor) (value.Value, error) { return v.VisitCall(e) }

// List is a literal list expression: "[1, 2, 3]".
type List struct {
	Bracket  token.Token
	Elements []Expression
}

func (e List) Accept(v ExpressionVisitor) (value.Value, error) { return v.VisitList(e) }

// Index reads a single element out of a list value.
type Index struct {
	Object  Expression
	Bracket token.Token
	At      Expression
}

func (e Index) Accept(v ExpressionVisitor) (value.Value, error) { return v.VisitIndex(e) }

// IndexAssign writes a single element of a list value.
type IndexAssign struct {
	Object  Expression
	Bracket token.Token
	At      Expression
	Value   Expression
}

func (e IndexAssign) Accept(v ExpressionVisitor) (value.Value, error) {
	return v.VisitIndexAssign(e)
}

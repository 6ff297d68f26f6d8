// Package parser is a recursive-descent parser with one token of lookahead
// (spec §4.2). Mnemonic and directive grammar is delegated to the active
// isa.InstructionSet through the Parser itself, which implements
// isa.ParserContext so CPU plug-ins never need to import this package.
package parser

import (
	"lasm/ast"
	"lasm/errsink"
	"lasm/isa"
	"lasm/token"
)

// Parser walks a flat token slice, mirroring the teacher's
// peek/previous/advance/isMatch idiom but extended with the isa.ParserContext
// surface CPU plug-ins consume.
type Parser struct {
	tokens []token.Token
	pos    int
	sink   *errsink.Sink
	iset   isa.InstructionSet
}

func New(tokens []token.Token, iset isa.InstructionSet, sink *errsink.Sink) *Parser {
	return &Parser{tokens: tokens, iset: iset, sink: sink}
}

func (p *Parser) isAtEnd() bool { return p.tokens[p.pos].Kind == token.EOF }

func (p *Parser) Peek() token.Token { return p.tokens[p.pos] }

func (p *Parser) Previous() token.Token { return p.tokens[p.pos-1] }

func (p *Parser) Check(k token.Kind) bool {
	if p.isAtEnd() {
		return k == token.EOF
	}
	return p.Peek().Kind == k
}

func (p *Parser) Advance() token.Token {
	if !p.isAtEnd() {
		p.pos++
	}
	return p.Previous()
}

func (p *Parser) Match(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if p.Check(k) {
			p.Advance()
			return true
		}
	}
	return false
}

func (p *Parser) Consume(k token.Kind, msg string) (token.Token, error) {
	if p.Check(k) {
		return p.Advance(), nil
	}
	kind := errsink.UnexpectedToken
	switch k {
	case token.SEMICOLON:
		kind = errsink.MissingSemicolon
	case token.COMMA:
		kind = errsink.MissingComma
	case token.RPAREN, token.LPAREN:
		kind = errsink.MissingParen
	case token.RBRACE, token.LBRACE:
		kind = errsink.MissingBrace
	case token.RBRACKET, token.LBRACKET:
		kind = errsink.MissingBracket
	}
	return token.Token{}, p.Fail(kind, p.Peek(), "%s", msg)
}

func (p *Parser) Fail(kind errsink.Kind, tok token.Token, format string, args ...any) error {
	return p.sink.Report(kind, tok, format, args...)
}

// synchronize discards tokens until a likely statement boundary, so one bad
// statement does not cascade into spurious downstream errors (spec §4.2).
func (p *Parser) synchronize() {
	p.Advance()
	for !p.isAtEnd() {
		if p.Previous().Kind == token.SEMICOLON {
			return
		}
		switch p.Peek().Kind {
		case token.LET, token.IF, token.WHILE, token.FN, token.RETURN,
			token.ORG, token.FILL, token.ALIGN, token.DB, token.DH, token.DW,
			token.DD, token.BSS, token.INCLUDE, token.INCBIN,
			token.INSTRUCTION, token.DIRECTIVE, token.LABEL:
			return
		}
		p.Advance()
	}
}

// Parse consumes the entire token stream, collecting statements and
// reporting parse errors to the sink while attempting to recover after each
// one (spec §4.2's synchronisation policy).
func (p *Parser) Parse() []ast.Stmt {
	var stmts []ast.Stmt
	for !p.isAtEnd() {
		stmt, err := p.statement()
		if err != nil {
			p.synchronize()
			continue
		}
		stmts = append(stmts, stmt)
	}
	return stmts
}

func (p *Parser) statement() (ast.Stmt, error) {
	switch {
	case p.Match(token.LET):
		return p.letStmt()
	case p.Match(token.LBRACE):
		return p.blockStmt()
	case p.Match(token.IF):
		return p.ifStmt()
	case p.Match(token.WHILE):
		return p.whileStmt()
	case p.Match(token.FN):
		return p.fnStmt()
	case p.Match(token.RETURN):
		return p.returnStmt()
	case p.Match(token.LABEL):
		return ast.LabelStmt{Name: p.Previous()}, nil
	case p.Match(token.DIRECTIVE):
		return p.directiveStmt()
	case p.Match(token.INSTRUCTION):
		return p.instrStmt()
	case p.Match(token.ORG):
		return p.orgStmt()
	case p.Match(token.ALIGN):
		return p.alignStmt()
	case p.Match(token.FILL):
		return p.fillStmt()
	case p.Match(token.DB):
		return p.defineByteStmt(1, "little")
	case p.Match(token.DH, token.DW):
		return p.defineByteStmt(2, "little")
	case p.Match(token.DD):
		return p.defineByteStmt(4, "little")
	case p.Match(token.BSS):
		return p.bssStmt()
	case p.Match(token.INCLUDE):
		return p.includeStmt()
	case p.Match(token.INCBIN):
		return p.incbinStmt()
	default:
		return p.exprStmt()
	}
}

func (p *Parser) expectSemicolon() error {
	_, err := p.Consume(token.SEMICOLON, "expected ';' after statement")
	return err
}

func (p *Parser) letStmt() (ast.Stmt, error) {
	name, err := p.Consume(token.IDENTIFIER, "expected variable name after 'let'")
	if err != nil {
		return nil, err
	}
	var init ast.Expression
	if p.Match(token.ASSIGN) {
		init, err = p.ParseExpression()
		if err != nil {
			return nil, err
		}
	}
	if err := p.expectSemicolon(); err != nil {
		return nil, err
	}
	return ast.LetStmt{Name: name, Init: init}, nil
}

func (p *Parser) blockStmt() (ast.Stmt, error) {
	var stmts []ast.Stmt
	for !p.Check(token.RBRACE) && !p.isAtEnd() {
		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	if _, err := p.Consume(token.RBRACE, "expected '}' after block"); err != nil {
		return nil, err
	}
	return ast.BlockStmt{Stmts: stmts}, nil
}

func (p *Parser) ifStmt() (ast.Stmt, error) {
	cond, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	then, err := p.statement()
	if err != nil {
		return nil, err
	}
	var elseBranch ast.Stmt
	if p.Match(token.ELSE) {
		elseBranch, err = p.statement()
		if err != nil {
			return nil, err
		}
	}
	return ast.IfStmt{Cond: cond, Then: then, Else: elseBranch}, nil
}

func (p *Parser) whileStmt() (ast.Stmt, error) {
	cond, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	body, err := p.statement()
	if err != nil {
		return nil, err
	}
	return ast.WhileStmt{Cond: cond, Body: body}, nil
}

func (p *Parser) fnStmt() (ast.Stmt, error) {
	name, err := p.Consume(token.IDENTIFIER, "expected function name after 'fn'")
	if err != nil {
		return nil, err
	}
	if _, err := p.Consume(token.LPAREN, "expected '(' after function name"); err != nil {
		return nil, err
	}
	var params []token.Token
	if !p.Check(token.RPAREN) {
		for {
			param, err := p.Consume(token.IDENTIFIER, "expected parameter name")
			if err != nil {
				return nil, err
			}
			params = append(params, param)
			if !p.Match(token.COMMA) {
				break
			}
		}
	}
	if _, err := p.Consume(token.RPAREN, "expected ')' after parameters"); err != nil {
		return nil, err
	}
	if _, err := p.Consume(token.LBRACE, "expected '{' before function body"); err != nil {
		return nil, err
	}
	body, err := p.blockStmt()
	if err != nil {
		return nil, err
	}
	return &ast.FunctionStmt{Name: name, Params: params, Body: body.(ast.BlockStmt).Stmts}, nil
}

func (p *Parser) returnStmt() (ast.Stmt, error) {
	kw := p.Previous()
	var value ast.Expression
	if !p.Check(token.SEMICOLON) {
		var err error
		value, err = p.ParseExpression()
		if err != nil {
			return nil, err
		}
	}
	if err := p.expectSemicolon(); err != nil {
		return nil, err
	}
	return ast.ReturnStmt{Keyword: kw, Value: value}, nil
}

func (p *Parser) exprStmt() (ast.Stmt, error) {
	expr, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expectSemicolon(); err != nil {
		return nil, err
	}
	return ast.ExpressionStmt{Expression: expr}, nil
}

// instrStmt handles the optional width suffix (".z"/".w"/".l"/".i") before
// handing the mnemonic off to the active instruction set (spec §4.2).
func (p *Parser) instrStmt() (ast.Stmt, error) {
	name := p.Previous()
	suffix := ""
	if p.Match(token.DOT) {
		suf, err := p.Consume(token.IDENTIFIER, "expected width suffix after '.'")
		if err != nil {
			return nil, err
		}
		suffix = suf.Lexeme
	}
	if p.iset == nil {
		return nil, p.Fail(errsink.InvalidInstruction, name, "no instruction set active")
	}
	stmt, err := p.iset.ParseInstruction(p, name, suffix)
	if err != nil {
		return nil, err
	}
	if err := p.expectSemicolon(); err != nil {
		return nil, err
	}
	return stmt, nil
}

func (p *Parser) directiveStmt() (ast.Stmt, error) {
	name := p.Previous()
	if p.iset == nil {
		return nil, p.Fail(errsink.InvalidInstruction, name, "no instruction set active")
	}
	stmt, err := p.iset.ParseDirective(p, name)
	if err != nil {
		return nil, err
	}
	if err := p.expectSemicolon(); err != nil {
		return nil, err
	}
	return stmt, nil
}

func (p *Parser) orgStmt() (ast.Stmt, error) {
	kw := p.Previous()
	addr, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expectSemicolon(); err != nil {
		return nil, err
	}
	return ast.OrgStmt{Keyword: kw, Addr: addr}, nil
}

func (p *Parser) alignStmt() (ast.Stmt, error) {
	kw := p.Previous()
	to, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	var fill ast.Expression
	if p.Match(token.COMMA) {
		fill, err = p.ParseExpression()
		if err != nil {
			return nil, err
		}
	}
	if err := p.expectSemicolon(); err != nil {
		return nil, err
	}
	return ast.AlignStmt{Keyword: kw, To: to, Fill: fill}, nil
}

func (p *Parser) fillStmt() (ast.Stmt, error) {
	kw := p.Previous()
	toAddr, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.Consume(token.COMMA, "expected ',' between fill's end address and value"); err != nil {
		return nil, err
	}
	value, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expectSemicolon(); err != nil {
		return nil, err
	}
	return ast.FillStmt{Keyword: kw, ToAddr: toAddr, Value: value}, nil
}

func (p *Parser) defineByteStmt(unitSize int, endianness string) (ast.Stmt, error) {
	kw := p.Previous()
	var values []ast.Expression
	for {
		v, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		values = append(values, v)
		if !p.Match(token.COMMA) {
			break
		}
	}
	if err := p.expectSemicolon(); err != nil {
		return nil, err
	}
	return ast.DefineByteStmt{Keyword: kw, Values: values, UnitSize: unitSize, Endianness: endianness}, nil
}

func (p *Parser) bssStmt() (ast.Stmt, error) {
	kw := p.Previous()
	start, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.Consume(token.LBRACE, "expected '{' after bss start address"); err != nil {
		return nil, err
	}
	var decls []ast.BssDecl
	for !p.Check(token.RBRACE) && !p.isAtEnd() {
		if _, err := p.Consume(token.LET, "expected 'let' inside bss block"); err != nil {
			return nil, err
		}
		name, err := p.Consume(token.IDENTIFIER, "expected reservation name")
		if err != nil {
			return nil, err
		}
		if _, err := p.Consume(token.ASSIGN, "expected '=' after bss reservation name"); err != nil {
			return nil, err
		}
		size, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		if err := p.expectSemicolon(); err != nil {
			return nil, err
		}
		decls = append(decls, ast.BssDecl{Name: name, Size: size})
	}
	if _, err := p.Consume(token.RBRACE, "expected '}' after bss block"); err != nil {
		return nil, err
	}
	return ast.BssStmt{Keyword: kw, Start: start, Declarations: decls}, nil
}

func (p *Parser) includeStmt() (ast.Stmt, error) {
	kw := p.Previous()
	path, err := p.Consume(token.STRING, "expected a string path after 'include'")
	if err != nil {
		return nil, err
	}
	if err := p.expectSemicolon(); err != nil {
		return nil, err
	}
	return &ast.IncludeStmt{Keyword: kw, Path: path.Literal.(string)}, nil
}

func (p *Parser) incbinStmt() (ast.Stmt, error) {
	kw := p.Previous()
	path, err := p.Consume(token.STRING, "expected a string path after 'incbin'")
	if err != nil {
		return nil, err
	}
	if err := p.expectSemicolon(); err != nil {
		return nil, err
	}
	return &ast.IncbinStmt{Keyword: kw, Path: path.Literal.(string)}, nil
}

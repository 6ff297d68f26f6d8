package parser

import (
	"lasm/ast"
	"lasm/errsink"
	"lasm/token"
	"lasm/value"
)

// ParseExpression is the entry point for the expression grammar (spec
// §4.2); it is also what isa.ParserContext exposes to CPU plug-ins parsing
// instruction operands.
func (p *Parser) ParseExpression() (ast.Expression, error) {
	return p.assignment()
}

func (p *Parser) assignment() (ast.Expression, error) {
	expr, err := p.logicOr()
	if err != nil {
		return nil, err
	}
	if p.Match(token.ASSIGN) {
		eq := p.Previous()
		value, err := p.assignment()
		if err != nil {
			return nil, err
		}
		switch target := expr.(type) {
		case ast.Variable:
			return ast.Assign{Name: target.Name, Value: value}, nil
		case ast.Index:
			return ast.IndexAssign{Object: target.Object, Bracket: target.Bracket, At: target.At, Value: value}, nil
		default:
			return nil, p.Fail(errsink.UnexpectedToken, eq, "invalid assignment target")
		}
	}
	return expr, nil
}

func (p *Parser) logicOr() (ast.Expression, error) {
	expr, err := p.logicAnd()
	if err != nil {
		return nil, err
	}
	for p.Match(token.OROR) {
		op := p.Previous()
		right, err := p.logicAnd()
		if err != nil {
			return nil, err
		}
		expr = ast.Logical{Left: expr, Operator: op, Right: right}
	}
	return expr, nil
}

func (p *Parser) logicAnd() (ast.Expression, error) {
	expr, err := p.equality()
	if err != nil {
		return nil, err
	}
	for p.Match(token.ANDAND) {
		op := p.Previous()
		right, err := p.equality()
		if err != nil {
			return nil, err
		}
		expr = ast.Logical{Left: expr, Operator: op, Right: right}
	}
	return expr, nil
}

func (p *Parser) equality() (ast.Expression, error) {
	expr, err := p.compare()
	if err != nil {
		return nil, err
	}
	for p.Match(token.EQ, token.NEQ) {
		op := p.Previous()
		right, err := p.compare()
		if err != nil {
			return nil, err
		}
		expr = ast.Binary{Left: expr, Operator: op, Right: right}
	}
	return expr, nil
}

func (p *Parser) compare() (ast.Expression, error) {
	expr, err := p.bitor()
	if err != nil {
		return nil, err
	}
	for p.Match(token.LT, token.LE, token.GT, token.GE) {
		op := p.Previous()
		right, err := p.bitor()
		if err != nil {
			return nil, err
		}
		expr = ast.Binary{Left: expr, Operator: op, Right: right}
	}
	return expr, nil
}

func (p *Parser) bitor() (ast.Expression, error) {
	expr, err := p.bitxor()
	if err != nil {
		return nil, err
	}
	for p.Match(token.PIPE) {
		op := p.Previous()
		right, err := p.bitxor()
		if err != nil {
			return nil, err
		}
		expr = ast.Binary{Left: expr, Operator: op, Right: right}
	}
	return expr, nil
}

func (p *Parser) bitxor() (ast.Expression, error) {
	expr, err := p.bitand()
	if err != nil {
		return nil, err
	}
	for p.Match(token.CARET) {
		op := p.Previous()
		right, err := p.bitand()
		if err != nil {
			return nil, err
		}
		expr = ast.Binary{Left: expr, Operator: op, Right: right}
	}
	return expr, nil
}

func (p *Parser) bitand() (ast.Expression, error) {
	expr, err := p.shift()
	if err != nil {
		return nil, err
	}
	for p.Match(token.AMP) {
		op := p.Previous()
		right, err := p.shift()
		if err != nil {
			return nil, err
		}
		expr = ast.Binary{Left: expr, Operator: op, Right: right}
	}
	return expr, nil
}

func (p *Parser) shift() (ast.Expression, error) {
	expr, err := p.term()
	if err != nil {
		return nil, err
	}
	for p.Match(token.SHL, token.SHR) {
		op := p.Previous()
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		expr = ast.Binary{Left: expr, Operator: op, Right: right}
	}
	return expr, nil
}

func (p *Parser) term() (ast.Expression, error) {
	expr, err := p.factor()
	if err != nil {
		return nil, err
	}
	for p.Match(token.PLUS, token.MINUS) {
		op := p.Previous()
		right, err := p.factor()
		if err != nil {
			return nil, err
		}
		expr = ast.Binary{Left: expr, Operator: op, Right: right}
	}
	return expr, nil
}

func (p *Parser) factor() (ast.Expression, error) {
	expr, err := p.unary()
	if err != nil {
		return nil, err
	}
	for p.Match(token.STAR, token.SLASH, token.PERCENT) {
		op := p.Previous()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		expr = ast.Binary{Left: expr, Operator: op, Right: right}
	}
	return expr, nil
}

func (p *Parser) unary() (ast.Expression, error) {
	if p.Match(token.BANG, token.MINUS, token.TILDE) {
		op := p.Previous()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		return ast.Unary{Operator: op, Right: right}, nil
	}
	return p.call()
}

func (p *Parser) call() (ast.Expression, error) {
	expr, err := p.primary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.Match(token.LPAREN):
			expr, err = p.finishCall(expr)
			if err != nil {
				return nil, err
			}
		case p.Match(token.LBRACKET):
			bracket := p.Previous()
			at, err := p.ParseExpression()
			if err != nil {
				return nil, err
			}
			if _, err := p.Consume(token.RBRACKET, "expected ']' after index"); err != nil {
				return nil, err
			}
			expr = ast.Index{Object: expr, Bracket: bracket, At: at}
		default:
			return expr, nil
		}
	}
}

func (p *Parser) finishCall(callee ast.Expression) (ast.Expression, error) {
	var args []ast.Expression
	if !p.Check(token.RPAREN) {
		for {
			arg, err := p.ParseExpression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if !p.Match(token.COMMA) {
				break
			}
		}
	}
	paren, err := p.Consume(token.RPAREN, "expected ')' after arguments")
	if err != nil {
		return nil, err
	}
	return ast.Call{Callee: callee, Paren: paren, Args: args}, nil
}

func (p *Parser) primary() (ast.Expression, error) {
	switch {
	case p.Match(token.INTEGER):
		return ast.Literal{Value: value.Int(p.Previous().Literal.(int64))}, nil
	case p.Match(token.REAL):
		return ast.Literal{Value: value.Real_(p.Previous().Literal.(float64))}, nil
	case p.Match(token.STRING):
		return ast.Literal{Value: value.Str(p.Previous().Literal.(string))}, nil
	case p.Match(token.TRUE):
		return ast.Literal{Value: value.Bool_(true)}, nil
	case p.Match(token.FALSE):
		return ast.Literal{Value: value.Bool_(false)}, nil
	case p.Match(token.NIL):
		return ast.Literal{Value: value.NilValue}, nil
	case p.Match(token.LPAREN):
		inner, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.Consume(token.RPAREN, "expected ')' after expression"); err != nil {
			return nil, err
		}
		return ast.Grouping{Inner: inner}, nil
	case p.Match(token.LBRACKET):
		bracket := p.Previous()
		var elems []ast.Expression
		if !p.Check(token.RBRACKET) {
			for {
				e, err := p.ParseExpression()
				if err != nil {
					return nil, err
				}
				elems = append(elems, e)
				if !p.Match(token.COMMA) {
					break
				}
			}
		}
		if _, err := p.Consume(token.RBRACKET, "expected ']' after list elements"); err != nil {
			return nil, err
		}
		return ast.List{Bracket: bracket, Elements: elems}, nil
	case p.Match(token.IDENTIFIER):
		return ast.Variable{Name: p.Previous()}, nil
	default:
		return nil, p.Fail(errsink.UnexpectedToken, p.Peek(), "expected an expression, found %s", p.Peek().Kind)
	}
}

package progcalc

import "io"

// input      = expression EOF
// expression = term { binop term }
// term       = number | "pi" | unop term | '(' expression ')' | function '(' args ')'
// args       = expression { ',' expression }
// binop      = '|' | '^' | '&' | "<<" | ">>" | '+' | '-' | '*' | '/' | '%' | "**"
// unop       = '-' | '~'

// Expr is a parsed expression.
type Expr struct {
	// n is the root node of the expression.
	n *node
	// cfg is the configuration the expression was parsed with. Evaluation
	// uses it too.
	cfg config
}

type parser struct {
	scan  *lexer
	cfg   config
	depth int
}

// Parse parses an expression. The given options are applied in order, and the
// resulting configuration is also used when evaluating the expression.
func Parse(src io.RuneScanner, opts ...Option) (*Expr, error) {
	p := parser{
		scan: lex(src),
		cfg:  newConfig(opts),
	}
	n, err := p.parseExpr(exprprec)
	if err != nil {
		return nil, err
	}
	tok, err := p.scan.peek()
	if err != nil {
		return nil, err
	}
	if tok.kind != tokenEOF {
		return nil, unexpected(tok, "operator or end of input")
	}
	return &Expr{n: n, cfg: p.cfg}, nil
}

// enter records one more level of nesting, failing if that exceeds the depth
// limit. tok is the token responsible for the nesting.
func (p *parser) enter(tok lexToken) error {
	p.depth++
	if p.cfg.depth > 0 && p.depth > p.cfg.depth {
		return unexpected(tok, "shallower nesting")
	}
	return nil
}

func (p *parser) leave() {
	p.depth--
}

// parseExpr parses terms joined by binary operators more binding than until.
// It stops without consuming the first token that isn't such an operator.
func (p *parser) parseExpr(until operator) (*node, error) {
	n, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		tok, err := p.scan.peek()
		if err != nil {
			return nil, err
		}
		prec, ok := binops[tok.kind]
		if !ok || !prec.moreBinding(until) {
			return n, nil
		}
		p.scan.pop()
		if err := p.enter(tok); err != nil {
			return nil, err
		}
		rhs, err := p.parseExpr(prec)
		p.leave()
		if err != nil {
			return nil, err
		}
		n = &node{kind: nodeBinary, tok: tok, left: n, right: rhs}
	}
}

// parseTerm parses a single term. Unary operators apply to the term that
// follows them, so they bind more tightly than any binary operator.
func (p *parser) parseTerm() (*node, error) {
	tok, err := p.scan.pop()
	if err != nil {
		return nil, err
	}
	switch tok.kind {
	case tokenNum, tokenPi:
		return &node{kind: nodeTerm, tok: tok}, nil
	case tokenMinus, tokenNot:
		if err := p.enter(tok); err != nil {
			return nil, err
		}
		defer p.leave()
		n, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		return &node{kind: nodeUnary, tok: tok, left: n}, nil
	case tokenLParen:
		if err := p.enter(tok); err != nil {
			return nil, err
		}
		defer p.leave()
		n, err := p.parseExpr(exprprec)
		if err != nil {
			return nil, err
		}
		if err := p.expect(tokenRParen, `")"`); err != nil {
			return nil, err
		}
		return n, nil
	case tokenFunc:
		if err := p.enter(tok); err != nil {
			return nil, err
		}
		defer p.leave()
		if err := p.expect(tokenLParen, `"("`); err != nil {
			return nil, err
		}
		args, err := p.parseArgs()
		if err != nil {
			return nil, err
		}
		return &node{kind: nodeCall, tok: tok, args: args}, nil
	default:
		return nil, unexpected(tok, "term")
	}
}

// parseArgs parses a comma-separated argument list through its closing
// parenthesis. The grammar accepts any positive number of arguments;
// evaluation checks arity.
func (p *parser) parseArgs() ([]*node, error) {
	var args []*node
	for {
		n, err := p.parseExpr(exprprec)
		if err != nil {
			return nil, err
		}
		args = append(args, n)
		tok, err := p.scan.pop()
		if err != nil {
			return nil, err
		}
		switch tok.kind {
		case tokenComma:
		case tokenRParen:
			return args, nil
		default:
			return nil, unexpected(tok, `"," or ")"`)
		}
	}
}

// expect consumes the next token, which must have the given kind. want
// describes the token for the error.
func (p *parser) expect(kind tokenKind, want string) error {
	tok, err := p.scan.pop()
	if err != nil {
		return err
	}
	if tok.kind != kind {
		return unexpected(tok, want)
	}
	return nil
}

func unexpected(tok lexToken, want string) error {
	return &ParseError{Col: tok.pos, Expected: want, Got: tok.describe()}
}

// String creates a string representation of the parsed expression, with
// parentheses grouping each term. The result parses to the same expression.
func (e *Expr) String() string {
	return e.n.String()
}

type operator struct {
	// prec is the precedence tier. Higher is more binding.
	prec int8
	// right indicates right-associativity.
	right bool
}

func (p operator) moreBinding(than operator) bool {
	if p.prec != than.prec {
		return p.prec > than.prec
	}
	return p.right
}

// binops is the binary operator table, from least to most binding.
var binops = map[tokenKind]operator{
	tokenOr:     {1, false},
	tokenXor:    {2, false},
	tokenAnd:    {3, false},
	tokenLShift: {4, false},
	tokenRShift: {4, false},
	tokenMinus:  {5, false},
	tokenPlus:   {5, false},
	tokenMult:   {6, false},
	tokenDiv:    {6, false},
	tokenRem:    {6, false},
	tokenPow:    {7, true},
}

// exprprec is the precedence required to parse an entire subexpression.
var exprprec = operator{-128, true}

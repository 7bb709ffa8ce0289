package progcalc

import (
	"io"
	"math"
	"strings"
)

// Eval evaluates the expression. The result is new on every call, so an Expr
// may be evaluated any number of times, including concurrently.
func (e *Expr) Eval() (Result, error) {
	return e.n.eval(&e.cfg)
}

func (n *node) eval(c *config) (Result, error) {
	switch n.kind {
	case nodeTerm:
		if n.tok.kind == tokenPi {
			return Result{has: ReprReal, real: math.Pi}, nil
		}
		return literal(n.tok), nil
	case nodeUnary:
		x, err := n.left.eval(c)
		if err != nil {
			return Result{}, err
		}
		switch n.tok.kind {
		case tokenMinus:
			x.neg()
		case tokenNot:
			x.not()
		default:
			return Result{}, &UnsupportedOperationError{Op: n.tok.text}
		}
		return x, nil
	case nodeBinary:
		x, err := n.left.eval(c)
		if err != nil {
			return Result{}, err
		}
		y, err := n.right.eval(c)
		if err != nil {
			return Result{}, err
		}
		if err := binary(c, n.tok, &x, y); err != nil {
			return Result{}, err
		}
		return x, nil
	case nodeCall:
		f := builtins[n.tok.text]
		if f == nil {
			return Result{}, &UnsupportedOperationError{Op: n.tok.text}
		}
		if !f.canCall(len(n.args)) {
			return Result{}, &ArityError{Col: n.tok.pos, Func: n.tok.text, Len: len(n.args)}
		}
		args := make([]Result, len(n.args))
		for i, arg := range n.args {
			v, err := arg.eval(c)
			if err != nil {
				return Result{}, err
			}
			args[i] = v
		}
		return f.call(c, args)
	default:
		panic("progcalc: invalid AST node " + n.kind.String())
	}
}

// binary applies the binary operator op to x and y, leaving the result in x.
func binary(c *config, op lexToken, x *Result, y Result) error {
	switch op.kind {
	case tokenPlus:
		x.add(y)
		x.limit(c.bigbits)
	case tokenMinus:
		x.sub(y)
		x.limit(c.bigbits)
	case tokenMult:
		x.mul(y)
		x.limit(c.bigbits)
	case tokenDiv, tokenRem:
		if y.zero() {
			return &DomainError{X: "0", Arg: 2, Func: op.text}
		}
		if op.kind == tokenDiv {
			x.quo(y)
		} else {
			x.rem(y)
		}
	case tokenPow:
		return pow(c, op.text, x, y)
	case tokenLShift:
		x.shl(y, c.bigbits)
	case tokenRShift:
		x.shr(y)
	case tokenAnd:
		x.and(y)
	case tokenOr:
		x.or(y)
	case tokenXor:
		x.xor(y)
	default:
		return &UnsupportedOperationError{Op: op.text}
	}
	return nil
}

// Eval is a shortcut to parse an expression and evaluate it.
func Eval(src io.RuneScanner, opts ...Option) (Result, error) {
	e, err := Parse(src, opts...)
	if err != nil {
		return Result{}, err
	}
	return e.Eval()
}

// Compute parses and evaluates an expression given as a string.
func Compute(input string, opts ...Option) (Result, error) {
	return Eval(strings.NewReader(input), opts...)
}

package progcalc

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"testing"
)

// diff finds the first in-order node of n that differs from m, or nil, nil if
// the two ASTs are equal. If any node is nodeNone, it is returned.
func (n *node) diff(m *node) (*node, *node) {
	if n == nil {
		if m != nil {
			return n, m
		}
		return nil, nil
	}
	if m == nil {
		return n, m
	}
	if n.kind == nodeNone || m.kind == nodeNone {
		return n, m
	}
	if n.kind != m.kind || n.tok.kind != m.tok.kind || n.tok.text != m.tok.text {
		return n, m
	}
	switch n.kind {
	case nodeTerm:
	case nodeUnary:
		if d, e := n.left.diff(m.left); d != nil || e != nil {
			return d, e
		}
	case nodeBinary:
		if d, e := n.left.diff(m.left); d != nil || e != nil {
			return d, e
		}
		if d, e := n.right.diff(m.right); d != nil || e != nil {
			return d, e
		}
	case nodeCall:
		if len(n.args) != len(m.args) {
			return n, m
		}
		for i := range n.args {
			if d, e := n.args[i].diff(m.args[i]); d != nil || e != nil {
				return d, e
			}
		}
	default:
		panic(fmt.Errorf("invalid node kind: n=%+v m=%+v", n, m))
	}
	return nil, nil
}

func TestOpPrecsOrdered(t *testing.T) {
	tiers := [][]tokenKind{
		{tokenOr},
		{tokenXor},
		{tokenAnd},
		{tokenLShift, tokenRShift},
		{tokenMinus, tokenPlus},
		{tokenMult, tokenDiv, tokenRem},
		{tokenPow},
	}
	for i, tier := range tiers {
		for _, k := range tier {
			p, ok := binops[k]
			if !ok {
				t.Errorf("no binary operator for %v", k)
				continue
			}
			if p.prec != binops[tier[0]].prec {
				t.Errorf("%v has prec %d, but %v has %d", k, p.prec, tier[0], binops[tier[0]].prec)
			}
			if i > 0 && p.prec <= binops[tiers[i-1][0]].prec {
				t.Errorf("%v is not more binding than %v", k, tiers[i-1][0])
			}
		}
	}
	if len(binops) != 11 {
		t.Errorf("want 11 binary operators, have %d", len(binops))
	}
}

func TestParseTrees(t *testing.T) {
	cases := []struct {
		name string
		a, b string
	}{
		{"paren", "(1)", "1"},
		{"multi", "(((1+2)))", "1+2"},
		{"pi", "(pi)", "pi"},

		{"neg", "-1", "(-(1))"},
		{"not", "~1", "(~(1))"},
		{"add", "1+2", "((1)+(2))"},
		{"sub", "1-2", "((1)-(2))"},
		{"mul", "1*2", "((1)*(2))"},
		{"div", "1/2", "((1)/(2))"},
		{"rem", "1%2", "((1)%(2))"},
		{"pow", "1**2", "((1)**(2))"},
		{"shl", "1<<2", "((1)<<(2))"},
		{"shr", "1>>2", "((1)>>(2))"},
		{"and", "1&2", "((1)&(2))"},
		{"or", "1|2", "((1)|(2))"},
		{"xor", "1^2", "((1)^(2))"},

		{"add4", "1+2+3+4", "((1+2)+3)+4"},
		{"sub4", "10-2-3-4", "((10-2)-3)-4"},
		{"mul4", "1*2*3*4", "((1*2)*3)*4"},
		{"div4", "1/2/3/4", "((1/2)/3)/4"},
		{"mixadd", "1-2+3-4", "((1-2)+3)-4"},
		{"mixmul", "1*2/3%4", "((1*2)/3)%4"},
		{"shift4", "1<<2>>3<<4", "((1<<2)>>3)<<4"},
		{"pow4", "1**2**3**4", "1**(2**(3**4))"},

		{"tiers", "1|2^3&4<<5+6*7**8", "1|(2^(3&(4<<(5+(6*(7**8))))))"},
		{"tiersdesc", "1**2*3+4<<5&6^7|8", "(((((1**2)*3)+4)<<5)&6)^7|8"},
		{"asc", "1+2*3", "1+(2*3)"},
		{"desc", "1*2+3", "(1*2)+3"},
		{"ascdesc", "1+2*3**4**5*6+7", "(1+((2*(3**(4**5)))*6))+7"},
		{"negneg", "--1", "-(-1)"},
		{"negsub", "-1-1", "(-1)-1"},
		{"negpow", "-2**2", "(-2)**2"},
		{"powneg", "2**-1", "2**(-1)"},
		{"notand", "~1&2", "(~1)&2"},
		{"mulneg", "2*-3", "2*(-3)"},
		{"parenreset", "2*(3+4)", "2*((3+4))"},

		{"call1", "sin(1+2)", "sin((1+2))"},
		{"call2", "pow(1, 2*3)", "pow(1, (2*3))"},
		{"call3", "pow(1, 2, 3)", "pow((1), (2), (3))"},
		{"callop", "abs(1)+2", "(abs(1))+2"},
		{"callneg", "-abs(-1)", "-(abs(-(1)))"},
		{"callnest", "pow(sqrt(4), log2(8))", "pow((sqrt(4)), (log2(8)))"},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			a, err := Parse(strings.NewReader(c.a))
			if err != nil {
				t.Fatalf("failed to parse %q: %v", c.a, err)
			}
			b, err := Parse(strings.NewReader(c.b))
			if err != nil {
				t.Fatalf("failed to parse %q: %v", c.b, err)
			}
			d, e := a.n.diff(b.n)
			if d != nil || e != nil {
				t.Errorf("mismatched AST:\n\t%q parses %v has %v\n\t%q parses %v has %v", c.a, a.n, d, c.b, b.n, e)
			}
		})
	}
}

func TestParseExact(t *testing.T) {
	num := func(text string, pos int) *node {
		return &node{kind: nodeTerm, tok: lexToken{text: text, kind: tokenNum, pos: pos}}
	}
	cases := []struct {
		name string
		src  string
		n    *node
	}{
		{
			name: "sub",
			src:  "10-2-3",
			n: &node{
				kind: nodeBinary,
				tok:  lexToken{text: "-", kind: tokenMinus},
				left: &node{
					kind:  nodeBinary,
					tok:   lexToken{text: "-", kind: tokenMinus},
					left:  num("10", 1),
					right: num("2", 4),
				},
				right: num("3", 6),
			},
		},
		{
			name: "neg",
			src:  "-1",
			n: &node{
				kind: nodeUnary,
				tok:  lexToken{text: "-", kind: tokenMinus},
				left: num("1", 2),
			},
		},
		{
			name: "pow",
			src:  "pow(2, 3)",
			n: &node{
				kind: nodeCall,
				tok:  lexToken{text: "pow", kind: tokenFunc},
				args: []*node{num("2", 5), num("3", 8)},
			},
		},
		{
			name: "pi",
			src:  "pi",
			n:    &node{kind: nodeTerm, tok: lexToken{text: "pi", kind: tokenPi}},
		},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			a, err := Parse(strings.NewReader(c.src))
			if err != nil {
				t.Fatalf("%q failed to parse: %v", c.src, err)
			}
			d, e := a.n.diff(c.n)
			if d != nil || e != nil {
				t.Errorf("mismatched AST:\n\twant %v which has %v\n\tgot  %v which has %v from %q", c.n, e, a.n, d, c.src)
			}
		})
	}
}

func TestExprString(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{"num", "1", "(1)"},
		{"pi", "pi", "(pi)"},
		{"neg", "-1", "(-(1))"},
		{"add", "1+2", "((1) + (2))"},
		{"sub3", "1-2-3", "(((1) - (2)) - (3))"},
		{"pow3", "1**2**3", "((1) ** ((2) ** (3)))"},
		{"call", "pow(2, 3)", "(pow((2), (3)))"},
		{"call1", "sin(pi)", "(sin((pi)))"},
		{"paren", "((0x10))", "(0x10)"},
		{"float", "1.5e-3*2", "((1.5e-3) * (2))"},
		{"not", "~0xff & 1", "((~(0xff)) & (1))"},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			a, err := Parse(strings.NewReader(c.src))
			if err != nil {
				t.Fatalf("%q failed to parse: %v", c.src, err)
			}
			s := a.String()
			if s != c.want {
				t.Errorf("%q formats as %q, want %q", c.src, s, c.want)
			}
			b, err := Parse(strings.NewReader(s))
			if err != nil {
				t.Fatalf("%q -> %q failed to parse: %v", c.src, s, err)
			}
			d, e := a.n.diff(b.n)
			if d != nil || e != nil {
				t.Errorf("mismatched AST:\n\t%q parses %v has %v\n\t%q parses %v has %v", c.src, a.n, d, s, b.n, e)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		err  InputError
		col  int
		res  []string
	}{
		{"empty", "", new(ParseError), 1, []string{`expected term`, `end of input`}},
		{"spaces", "   ", new(ParseError), 4, []string{`expected term`, `end of input`}},
		{"callparen", "12(", new(ParseError), 3, []string{`operator or end of input`, `"\("`}},
		{"dangling", "12+", new(ParseError), 4, []string{`expected term`, `end of input`}},
		{"plus", "+", new(ParseError), 1, []string{`expected term`, `"\+"`}},
		{"unclosed", "(12", new(ParseError), 4, []string{`expected "\)"`, `end of input`}},
		{"close", ")12", new(ParseError), 1, []string{`expected term`, `"\)"`}},
		{"extraclose", "(1))", new(ParseError), 4, []string{`operator or end of input`, `"\)"`}},
		{"twonums", "1 2", new(ParseError), 3, []string{`operator or end of input`, `Number "2"`}},
		{"emptyparen", "()", new(ParseError), 2, []string{`expected term`}},
		{"nocall", "sin 1", new(ParseError), 5, []string{`expected "\("`, `Number "1"`}},
		{"callend", "sin", new(ParseError), 4, []string{`expected "\("`, `end of input`}},
		{"emptyargs", "sin()", new(ParseError), 5, []string{`expected term`}},
		{"argsep", "pow(1 2)", new(ParseError), 7, []string{`"," or "\)"`}},
		{"trailingcomma", "pow(1,)", new(ParseError), 7, []string{`expected term`}},
		{"comma", "1,2", new(ParseError), 2, []string{`operator or end of input`, `","`}},
		{"pi call", "pi(1)", new(ParseError), 3, []string{`operator or end of input`}},
		{"binop unary", "*1", new(ParseError), 1, []string{`expected term`, `"\*"`}},
		{"func operand", "1+sin", new(ParseError), 6, []string{`"\("`}},
		{"scan", "1+$", new(ScanError), 3, []string{`\$`}},
		{"dot", ".", new(ScanError), 1, []string{`number`}},
		{"hex", "0x", new(ScanError), 2, []string{`number`}},
		{"hexdot", "0x.", new(ScanError), 2, []string{`number`}},
		{"dota", ".a", new(ScanError), 2, []string{`number`}},
		{"exp", "1e", new(ScanError), 2, []string{`number`}},
		{"ident", "e1", new(ScanError), 2, []string{`identifier`}},
		{"highbit", "1+é", new(ScanError), 3, nil},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			a, err := Parse(strings.NewReader(c.src))
			if a != nil {
				t.Errorf("%q parsed non-nil to %v", c.src, a.n)
			}
			if reflect.TypeOf(err) != reflect.TypeOf(c.err) {
				t.Errorf("wrong error type from %q: want %T, got %T (%v)", c.src, c.err, err, err)
			}
			if err == nil {
				return
			}
			var ie InputError
			if !errors.As(err, &ie) {
				t.Fatalf("%v is not an InputError", err)
			}
			if ie.Pos() != c.col {
				t.Errorf("error %q at column %d, want %d", err, ie.Pos(), c.col)
			}
			msg := err.Error()
			for _, re := range c.res {
				if !regexp.MustCompile(re).MatchString(msg) {
					t.Errorf("error message %q does not match %s", msg, re)
				}
			}
		})
	}
}

func TestMaxDepth(t *testing.T) {
	deep := strings.Repeat("(", 50) + "1" + strings.Repeat(")", 50)
	cases := []struct {
		name  string
		src   string
		depth int
		ok    bool
	}{
		{"unlimited", deep, 0, true},
		{"enough", deep, 50, true},
		{"short", deep, 49, false},
		{"flat", "1+1+1+1+1+1+1+1+1+1+1+1", 1, true},
		{"negs", strings.Repeat("-", 10) + "1", 9, false},
		{"negsok", strings.Repeat("-", 10) + "1", 10, true},
		{"pows", "2**2**2**2", 2, false},
		{"calls", "abs(abs(abs(1)))", 3, true},
		{"callsdeep", "abs(abs(abs(1)))", 2, false},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(c.src), MaxDepth(c.depth))
			if c.ok {
				if err != nil {
					t.Errorf("%q with depth %d failed: %v", c.src, c.depth, err)
				}
				return
			}
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("%q with depth %d: want parse error, got %v", c.src, c.depth, err)
			}
			if pe.Expected != "shallower nesting" {
				t.Errorf("%q with depth %d: wrong error %v", c.src, c.depth, err)
			}
		})
	}
}

func TestMaxDepthNegative(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MaxDepth(-1) did not panic")
		}
	}()
	MaxDepth(-1)
}

func BenchmarkParse(b *testing.B) {
	cases := []struct {
		name string
		src  string
	}{
		{"descasc", "1**2*3+4<<5&6^7|8"},
		{"descasc-parens", "(((((1**2)*3)+4)<<5)&6)^7|8"},
		{"ascdesc", "1|2^3&4<<5+6*7**8"},
		{"nums", "0xdeadbeef*1.5e-3+.5-123456789012345678901234567890"},
		{"calls", "pow(sqrt(2), log2(abs(-8)))+sin(pi)"},
	}
	for _, c := range cases {
		c := c
		b.Run(c.name, func(b *testing.B) {
			b.ReportAllocs()
			var src strings.Reader
			for i := 0; i < b.N; i++ {
				src.Reset(c.src)
				Parse(&src)
			}
		})
	}
}

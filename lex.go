package progcalc

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"
)

type lexToken struct {
	text string
	kind tokenKind
	pos  int
	// base is 16 for hex literals and 10 for everything else.
	base int
	// isInt and isFloat tell which literal forms a number token satisfies.
	// A plain decimal integer is both.
	isInt, isFloat bool
}

func (t lexToken) String() string {
	if t.kind == tokenEOF {
		return "EOF"
	}
	return t.kind.String() + ":" + t.text + "@" + strconv.Itoa(t.pos)
}

// describe renders the token the way it appears in error messages.
func (t lexToken) describe() string {
	switch t.kind {
	case tokenEOF:
		return "end of input"
	case tokenNum, tokenFunc:
		return t.kind.String() + " " + strconv.Quote(t.text)
	default:
		return strconv.Quote(t.text)
	}
}

type tokenKind int8

const (
	tokenNone tokenKind = iota
	// tokenEOF indicates the end of the input.
	tokenEOF
	// tokenNum is a decimal, hex, or floating-point literal.
	tokenNum
	tokenLParen
	tokenRParen
	tokenMinus
	tokenPlus
	tokenMult
	tokenDiv
	tokenRem
	tokenNot
	tokenOr
	tokenAnd
	tokenXor
	tokenLShift
	tokenRShift
	tokenPow
	// tokenFunc is a built-in function name.
	tokenFunc
	// tokenPi is the constant pi.
	tokenPi
	tokenComma
)

var tokenKindNames = [...]string{
	tokenNone:   "None",
	tokenEOF:    "EOF",
	tokenNum:    "Number",
	tokenLParen: "LParen",
	tokenRParen: "RParen",
	tokenMinus:  "Minus",
	tokenPlus:   "Plus",
	tokenMult:   "Mult",
	tokenDiv:    "Div",
	tokenRem:    "Rem",
	tokenNot:    "Not",
	tokenOr:     "Or",
	tokenAnd:    "And",
	tokenXor:    "Xor",
	tokenLShift: "LShift",
	tokenRShift: "RShift",
	tokenPow:    "Pow",
	tokenFunc:   "Function",
	tokenPi:     "Pi",
	tokenComma:  "Comma",
}

func (k tokenKind) String() string {
	if k < 0 || int(k) >= len(tokenKindNames) {
		return "tokenKind(" + strconv.Itoa(int(k)) + ")"
	}
	return tokenKindNames[k]
}

// singles maps the runes which are complete tokens by themselves.
var singles = map[rune]tokenKind{
	'+': tokenPlus,
	'-': tokenMinus,
	'/': tokenDiv,
	'%': tokenRem,
	'(': tokenLParen,
	')': tokenRParen,
	'~': tokenNot,
	'|': tokenOr,
	'&': tokenAnd,
	'^': tokenXor,
	',': tokenComma,
}

// maxIdent is the length at which an unmatched identifier is rejected. It is
// the length of the longest function name.
const maxIdent = 4

// lexState is the scanner's progress through a token.
type lexState int8

const (
	// stateNone has no partial token.
	stateNone lexState = iota
	// stateTwoChar has read the first rune of <<, >>, or **.
	stateTwoChar
	// stateVarSized is accumulating a literal or an identifier.
	stateVarSized
)

type lexer struct {
	src   io.RuneScanner
	buf   strings.Builder
	rune  int
	p     lexToken
	state lexState
	eof   bool
}

func lex(src io.RuneScanner) *lexer {
	return &lexer{src: src}
}

// peek returns the next token without consuming it. Repeated calls return the
// same token until pop.
func (l *lexer) peek() (lexToken, error) {
	if l.p.kind != tokenNone {
		return l.p, nil
	}
	tok, err := l.next()
	if err != nil {
		return tok, err
	}
	l.p = tok
	return tok, nil
}

// pop consumes and returns the next token. The EOF token is never consumed;
// popping it returns it again on the next call.
func (l *lexer) pop() (lexToken, error) {
	tok, err := l.peek()
	if err != nil {
		return tok, err
	}
	if tok.kind != tokenEOF {
		l.p = lexToken{}
	}
	return tok, nil
}

// readRune reads a rune from the src and updates the lexer's position info.
func (l *lexer) readRune() (r rune, err error) {
	r, sz, err := l.src.ReadRune()
	if sz > 0 {
		l.rune++
	}
	return r, err
}

// unreadRune unreads a rune from the src and updates the lexer's position
// info. Panics if unreading returns an error.
func (l *lexer) unreadRune() {
	if err := l.src.UnreadRune(); err != nil {
		panic(err)
	}
	l.rune--
}

// next scans the next token from the input. Once the input is exhausted, every
// call returns an EOF token.
func (l *lexer) next() (lexToken, error) {
	if l.eof {
		return lexToken{kind: tokenEOF, pos: l.rune + 1}, nil
	}
	defer l.buf.Reset()
	l.state = stateNone
	var tok lexToken
	for {
		r, err := l.readRune()
		end := errors.Is(err, io.EOF)
		if err != nil && !end {
			return tok, err
		}
		switch l.state {
		case stateNone:
			if end {
				l.eof = true
				return lexToken{kind: tokenEOF, pos: l.rune + 1}, nil
			}
			tok.pos = l.rune
			switch {
			case r == ' ', r == '\t', r == '\r', r == '\n':
				continue
			case r >= utf8.RuneSelf:
				l.buf.WriteRune(r)
				return tok, l.error("")
			case r == '<', r == '>', r == '*':
				l.buf.WriteRune(r)
				l.state = stateTwoChar
			case isLetter(r):
				l.unreadRune()
				l.state = stateVarSized
				return tok, l.scanIdent(&tok)
			case isDigit(r), r == '.':
				l.unreadRune()
				l.state = stateVarSized
				return tok, l.scanNum(&tok)
			default:
				k, ok := singles[r]
				if !ok {
					// Write the rune so that it shows up in the error message.
					l.buf.WriteRune(r)
					return tok, l.error("")
				}
				tok.kind = k
				tok.text = string(r)
				return tok, nil
			}
		case stateTwoChar:
			first := l.buf.String()
			if end {
				if first == "*" {
					l.eof = true
					tok.kind, tok.text = tokenMult, "*"
					return tok, nil
				}
				return tok, l.error("operator")
			}
			switch {
			case first == "<" && r == '<':
				tok.kind = tokenLShift
			case first == ">" && r == '>':
				tok.kind = tokenRShift
			case first == "*" && r == '*':
				tok.kind = tokenPow
			case first == "*":
				l.unreadRune()
				tok.kind, tok.text = tokenMult, "*"
				return tok, nil
			default:
				l.buf.WriteRune(r)
				return tok, l.error("operator")
			}
			tok.text = first + string(r)
			return tok, nil
		default:
			panic("progcalc: lexer in state " + strconv.Itoa(int(l.state)))
		}
	}
}

// scanIdent scans a function or constant name. Names are resolved as soon as
// the buffer spells one, so "sinx" is sin followed by an invalid "x".
func (l *lexer) scanIdent(tok *lexToken) error {
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				l.eof = true
				return l.error("identifier")
			}
			return err
		}
		if !isLetter(r) && !isDigit(r) {
			l.unreadRune()
			return l.error("identifier")
		}
		l.buf.WriteRune(r)
		s := l.buf.String()
		if s == "pi" {
			tok.kind, tok.text = tokenPi, s
			return nil
		}
		if _, ok := builtins[s]; ok {
			tok.kind, tok.text = tokenFunc, s
			return nil
		}
		if len(s) >= maxIdent {
			return l.error("identifier")
		}
	}
}

// scanNum scans a number literal. The literal ends at the first rune that
// cannot extend it.
func (l *lexer) scanNum(tok *lexToken) error {
	var hex, dig, dot, e, le, ed bool
loop:
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				l.eof = true
				break
			}
			return err
		}
		sign := le
		le = false
		switch {
		case hex:
			if !isHexDigit(r) {
				l.unreadRune()
				break loop
			}
			dig = true
		case r == 'x' && l.buf.String() == "0":
			hex = true
			dig = false
		case isDigit(r):
			if e {
				ed = true
			} else {
				dig = true
			}
		case r == '.' && !dot && !e:
			dot = true
		case (r == 'e' || r == 'E') && !e:
			e = true
			le = true
		case r == '-' && sign:
		case isHexDigit(r):
			// Hex digits can't start a new token here, so this is a
			// malformed decimal rather than two tokens.
			l.buf.WriteRune(r)
			return l.error("number")
		default:
			l.unreadRune()
			break loop
		}
		l.buf.WriteRune(r)
	}
	if !dig || (e && !ed) {
		return l.error("number")
	}
	tok.kind = tokenNum
	tok.text = l.buf.String()
	tok.base = 10
	switch {
	case hex:
		tok.base = 16
		tok.isInt = true
	case dot, e:
		tok.isFloat = true
	default:
		tok.isInt = true
		tok.isFloat = true
	}
	return nil
}

func (l *lexer) error(kind string) error {
	return &ScanError{
		Text: l.buf.String(),
		Kind: kind,
		Col:  l.rune,
	}
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func isHexDigit(r rune) bool {
	return isDigit(r) || 'a' <= r && r <= 'f' || 'A' <= r && r <= 'F'
}

func isLetter(r rune) bool {
	return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z'
}

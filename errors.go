package progcalc

import "strconv"

// ScanError indicates an invalid token. It implements InputError.
type ScanError struct {
	// Text is the token the scanner was reading when the invalid rune was
	// encountered, plus the invalid rune if there was one.
	Text string
	// Kind is the type of token the scanner was reading. This may be
	// "number", "identifier", "operator", or the empty string (if a token kind
	// hadn't been decided).
	Kind string
	// Col is the total number of runes scanned up to and including this error.
	Col int
}

func (err *ScanError) Error() string {
	pos := "column " + strconv.Itoa(err.Col)
	if err.Kind == "" {
		return "invalid token at " + pos + ": " + strconv.Quote(err.Text)
	}
	return "invalid " + err.Kind + " token at " + pos + ": " + strconv.Quote(err.Text)
}

func (err *ScanError) Pos() int {
	return err.Col
}

// ParseError indicates a token where the grammar does not allow it. It
// implements InputError.
type ParseError struct {
	// Col is the position of the unexpected token.
	Col int
	// Expected describes what the parser was looking for.
	Expected string
	// Got describes the token the parser found instead.
	Got string
}

func (err *ParseError) Error() string {
	return errpos(err.Col, "expected "+err.Expected+", got "+err.Got)
}

func (err *ParseError) Pos() int {
	return err.Col
}

// ArityError is an error indicating a function call with the wrong number of
// arguments. It implements InputError.
type ArityError struct {
	// Col is the position of the function name.
	Col int
	// Func is the function name that was called.
	Func string
	// Len is the number of arguments in the call.
	Len int
}

func (err *ArityError) Error() string {
	return errpos(err.Col, "cannot call "+err.Func+" with "+strconv.Itoa(err.Len)+" arguments")
}

func (err *ArityError) Pos() int {
	return err.Col
}

// DomainError is returned when an operator or function is applied to an
// argument outside its domain, namely division by zero and zero raised to a
// negative power.
type DomainError struct {
	// X is the out-of-domain argument.
	X string
	// Arg is the 1-based index of the argument.
	Arg int
	// Func is the operator or function name.
	Func string
}

func (err *DomainError) Error() string {
	r := err.X + " outside domain"
	if err.Func != "" {
		r += " of " + err.Func
	}
	if err.Arg > 0 {
		r += " (argument " + strconv.Itoa(err.Arg) + ")"
	}
	return r
}

// UnsupportedOperationError is returned for an operator or function that the
// evaluator does not implement. The parser never produces one, so seeing this
// error means the AST was built some other way.
type UnsupportedOperationError struct {
	Op string
}

func (err *UnsupportedOperationError) Error() string {
	return "unsupported operation " + strconv.Quote(err.Op)
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// malformed input implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the token that caused the error.
	Pos() int
}

var (
	_ InputError = (*ScanError)(nil)
	_ InputError = (*ParseError)(nil)
	_ InputError = (*ArityError)(nil)
)

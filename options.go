package progcalc

import "strconv"

// Option is an option for parsing and evaluation.
type Option interface {
	option(config) config
}

type (
	depthopt   int
	bigbitsopt uint
)

// config holds the settings for one parse and evaluation.
type config struct {
	// depth is the maximum nesting depth of the parse tree, or 0 for no limit.
	depth int
	// bigbits is the largest bit length allowed for an arbitrary-precision
	// result. Operations that would exceed it drop the big representation.
	bigbits uint
}

// DefaultBigBits is the default limit on the bit length of arbitrary-precision
// results. It bounds the memory and time that inputs like "1 << 1000000000"
// or "9 ** 99999999" can consume.
const DefaultBigBits = 1 << 22

func newConfig(opts []Option) config {
	c := config{bigbits: DefaultBigBits}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		c = opt.option(c)
	}
	return c
}

// MaxDepth limits the nesting depth of parsed expressions. Each parenthesis,
// unary operator, function call, and operand of a binary operator adds one
// level. Inputs that nest deeper fail with a *ParseError. Panics if n is
// negative. The default, 0, is no limit.
func MaxDepth(n int) Option {
	if n < 0 {
		panic("progcalc: negative depth limit " + strconv.Itoa(n))
	}
	return depthopt(n)
}

func (o depthopt) option(c config) config {
	c.depth = int(o)
	return c
}

// MaxBigBits sets the largest bit length of the arbitrary-precision
// representation. Shifts and powers whose results would be longer drop that
// representation instead of computing it. Zero restores DefaultBigBits.
func MaxBigBits(n uint) Option {
	return bigbitsopt(n)
}

func (o bigbitsopt) option(c config) config {
	c.bigbits = uint(o)
	if c.bigbits == 0 {
		c.bigbits = DefaultBigBits
	}
	return c
}

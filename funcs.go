package progcalc

import (
	"math"
	"math/big"

	"github.com/zephyrtronium/bigfloat"
)

// function is a built-in function.
type function interface {
	// call evaluates the function. args has a length for which canCall
	// returned true. call may modify the elements of args.
	call(c *config, args []Result) (Result, error)

	// canCall returns whether the function can be called with n arguments.
	canCall(n int) bool
}

// builtins is the set of functions. The scanner recognizes exactly these names.
var builtins = map[string]function{
	"abs":  monadic(abs),
	"sin":  realFunc(math.Sin),
	"cos":  realFunc(math.Cos),
	"tan":  realFunc(math.Tan),
	"rad":  realFunc(func(x float64) float64 { return x / 180 * math.Pi }),
	"deg":  realFunc(func(x float64) float64 { return x / math.Pi * 180 }),
	"sqrt": monadic(sqrt),
	"log2": monadic(log2),
	"pow":  dyadic{"pow"},
}

type monadic func(x *Result)

func (f monadic) call(c *config, args []Result) (Result, error) {
	x := args[0]
	f(&x)
	return x, nil
}

func (f monadic) canCall(n int) bool {
	return n == 1
}

// realFunc wraps a float64 function whose results are generally not integers, so
// it produces only the real representation.
func realFunc(f func(float64) float64) function {
	return monadic(func(x *Result) {
		v, ok := x.float()
		x.drop(reprAll)
		if ok {
			x.real = f(v)
			x.has = ReprReal
		}
	})
}

type dyadic struct {
	name string
}

func (f dyadic) call(c *config, args []Result) (Result, error) {
	x := args[0]
	if err := pow(c, f.name, &x, args[1]); err != nil {
		return Result{}, err
	}
	return x, nil
}

func (f dyadic) canCall(n int) bool {
	return n == 2
}

func abs(x *Result) {
	if x.negative() {
		x.neg()
	}
}

// sqrt computes the square root. The big representation becomes the floor
// of the root, the same truncation division applies.
func sqrt(x *Result) {
	v, ok := x.float()
	b := x.big
	hasBig := x.has&ReprBig != 0
	x.drop(reprAll)
	if !ok {
		return
	}
	x.real = math.Sqrt(v)
	x.has = ReprReal
	if !hasBig || b.Sign() < 0 {
		return
	}
	// Compute the float from the integer so that values beyond the range of
	// float64 still have finite roots.
	f := new(big.Float).SetInt(b)
	x.real, _ = f.Sqrt(f).Float64()
	x.big = new(big.Int).Sqrt(b)
	x.has |= ReprBig
}

// log2 computes the base 2 logarithm. The big representation survives only for
// exact powers of two.
func log2(x *Result) {
	v, ok := x.float()
	b := x.big
	hasBig := x.has&ReprBig != 0
	x.drop(reprAll)
	if !ok {
		return
	}
	x.real = math.Log2(v)
	x.has = ReprReal
	if !hasBig || b.Sign() <= 0 {
		return
	}
	n := b.BitLen() - 1
	if uint(n) == b.TrailingZeroBits() {
		x.real = float64(n)
		x.big = big.NewInt(int64(n))
		x.has |= ReprBig
		return
	}
	x.real = bigLog2(b)
}

// ln2 is the natural logarithm of 2 to the precision bigLog2 uses.
var ln2 = bigfloat.Log(new(big.Float).SetPrec(64), new(big.Float).SetPrec(64).SetInt64(2))

// bigLog2 computes log2(b) for b > 0 without rounding b to a float64 first.
func bigLog2(b *big.Int) float64 {
	in := new(big.Float).SetInt(b)
	out := new(big.Float).SetPrec(64)
	bigfloat.Log(out, in)
	r, _ := out.Quo(out, ln2).Float64()
	return r
}

// pow raises x to the power y. name identifies the operation in errors.
//
// Integer representations survive only for non-negative exponents. The
// fixed-width representations all take their exponent from the widest
// representation of y, so they agree with each other modulo their widths.
func pow(c *config, name string, x *Result, y Result) error {
	if x.zero() && y.negative() {
		return &DomainError{X: "0", Arg: 1, Func: name}
	}
	x.intersect(y)
	if x.has&ReprReal != 0 {
		x.real = math.Pow(x.real, y.real)
	}
	if y.negative() {
		x.drop(reprInts)
		return nil
	}
	e, wide := y.exponent()
	if x.has&ReprU32 != 0 {
		if !wide {
			e = uint64(y.u32)
		}
		x.u32 = uint32(ipow(uint64(x.u32), e))
	}
	if x.has&ReprI32 != 0 {
		switch {
		case wide:
			x.i32 = int32(ipow(uint64(int64(x.i32)), e))
		case y.i32 < 0:
			x.drop(ReprI32)
		default:
			x.i32 = int32(ipow(uint64(int64(x.i32)), uint64(y.i32)))
		}
	}
	if x.has&ReprU64 != 0 {
		x.u64 = ipow(x.u64, e)
	}
	if x.has&ReprBig != 0 {
		if !bigPowFits(x.big, y.big, c.bigbits) {
			x.drop(ReprBig)
		} else {
			x.big.Exp(x.big, y.big, nil)
			x.limit(c.bigbits)
		}
	}
	return nil
}

// expCycle is the period, past the first 64, of b**e modulo 2**64 as e
// increases: odd b has multiplicative order dividing 2**62, and even b is
// zero from e = 64 on.
const expCycle = 1 << 62

// exponent returns a non-negative x as an exponent for ipow, taken from the
// big representation if present and otherwise from u64. Exponents of 2**64
// or more are reduced to one in [2**62, 2**63) with the same power modulo
// 2**64. wide is false if x has neither representation.
func (x Result) exponent() (e uint64, wide bool) {
	switch {
	case x.has&ReprBig != 0:
		if x.big.IsUint64() {
			return x.big.Uint64(), true
		}
		r := new(big.Int).Rem(x.big, big.NewInt(0).SetUint64(expCycle))
		return r.Uint64() + expCycle, true
	case x.has&ReprU64 != 0:
		return x.u64, true
	default:
		return 0, false
	}
}

// ipow computes b**e modulo 2**64 by squaring. Truncating the result gives
// the same answer modulo any smaller power of two, for signed or unsigned b.
func ipow(b, e uint64) uint64 {
	r := uint64(1)
	for e != 0 {
		if e&1 != 0 {
			r *= b
		}
		b *= b
		e >>= 1
	}
	return r
}

var one = big.NewInt(1)

// bigPowFits reports whether b**e can have at most bits bits. It is exact
// enough to reject exponentiations that would exhaust memory.
func bigPowFits(b, e *big.Int, bits uint) bool {
	if b.CmpAbs(one) <= 0 {
		// 0, 1, and -1 stay small for any exponent.
		return true
	}
	if !e.IsUint64() || e.Uint64() > uint64(bits) {
		return false
	}
	// |b| >= 2**(n-1), so b**e has at least (n-1)*e+1 bits.
	return uint64(b.BitLen()-1)*e.Uint64() < uint64(bits)
}

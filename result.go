package progcalc

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Repr is a set of numeric representations.
type Repr uint8

const (
	// ReprU32 is the unsigned 32-bit representation.
	ReprU32 Repr = 1 << iota
	// ReprI32 is the signed 32-bit representation.
	ReprI32
	// ReprU64 is the unsigned 64-bit representation.
	ReprU64
	// ReprReal is the float64 representation.
	ReprReal
	// ReprBig is the arbitrary-precision integer representation.
	ReprBig

	// reprInts is every integer representation.
	reprInts = ReprU32 | ReprI32 | ReprU64 | ReprBig
	// reprFixed is every fixed-width integer representation.
	reprFixed = ReprU32 | ReprI32 | ReprU64
	reprAll   = reprInts | ReprReal
)

var reprNames = [...]struct {
	r    Repr
	name string
}{
	{ReprU32, "u32"},
	{ReprI32, "i32"},
	{ReprU64, "u64"},
	{ReprReal, "real"},
	{ReprBig, "big"},
}

func (r Repr) String() string {
	if r == 0 {
		return "none"
	}
	var b strings.Builder
	for _, n := range reprNames {
		if r&n.r == 0 {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('|')
		}
		b.WriteString(n.name)
	}
	return b.String()
}

// Result is the value of an expression in up to five representations. Every
// representation that is present denotes the same number, up to the
// wrap-around of the fixed-width integers and the rounding of float64.
//
// The zero Result has no representations and is not Valid.
type Result struct {
	has  Repr
	u32  uint32
	i32  int32
	u64  uint64
	real float64
	big  *big.Int
}

// Has reports whether all representations in r are present.
func (x Result) Has(r Repr) bool {
	return x.has&r == r
}

// Reprs returns the set of present representations.
func (x Result) Reprs() Repr {
	return x.has
}

// Valid reports whether x has at least one representation.
func (x Result) Valid() bool {
	return x.has != 0
}

// U32 returns the unsigned 32-bit representation and whether it is present.
func (x Result) U32() (uint32, bool) {
	return x.u32, x.has&ReprU32 != 0
}

// I32 returns the signed 32-bit representation and whether it is present.
func (x Result) I32() (int32, bool) {
	return x.i32, x.has&ReprI32 != 0
}

// U64 returns the unsigned 64-bit representation and whether it is present.
func (x Result) U64() (uint64, bool) {
	return x.u64, x.has&ReprU64 != 0
}

// Real returns the float64 representation and whether it is present.
func (x Result) Real() (float64, bool) {
	return x.real, x.has&ReprReal != 0
}

// Big returns a copy of the arbitrary-precision representation and whether
// it is present. The result is nil if it is not.
func (x Result) Big() (*big.Int, bool) {
	if x.has&ReprBig == 0 {
		return nil, false
	}
	return new(big.Int).Set(x.big), true
}

// Equal reports whether x and y have the same representations with the same
// values. NaN equals NaN, and two invalid Results are equal.
func (x Result) Equal(y Result) bool {
	if x.has != y.has {
		return false
	}
	switch {
	case x.has&ReprU32 != 0 && x.u32 != y.u32,
		x.has&ReprI32 != 0 && x.i32 != y.i32,
		x.has&ReprU64 != 0 && x.u64 != y.u64,
		x.has&ReprBig != 0 && x.big.Cmp(y.big) != 0:
		return false
	case x.has&ReprReal != 0 && x.real != y.real:
		return math.IsNaN(x.real) && math.IsNaN(y.real)
	}
	return true
}

// String formats the present representations as name=value pairs, e.g.
// "u32=3 i32=3 u64=3 real=3 big=3". An invalid Result formats as "invalid".
func (x Result) String() string {
	if !x.Valid() {
		return "invalid"
	}
	var b strings.Builder
	sep := func(name string) {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(name)
		b.WriteByte('=')
	}
	if x.has&ReprU32 != 0 {
		sep("u32")
		b.WriteString(strconv.FormatUint(uint64(x.u32), 10))
	}
	if x.has&ReprI32 != 0 {
		sep("i32")
		b.WriteString(strconv.FormatInt(int64(x.i32), 10))
	}
	if x.has&ReprU64 != 0 {
		sep("u64")
		b.WriteString(strconv.FormatUint(x.u64, 10))
	}
	if x.has&ReprReal != 0 {
		sep("real")
		b.WriteString(strconv.FormatFloat(x.real, 'g', -1, 64))
	}
	if x.has&ReprBig != 0 {
		sep("big")
		b.WriteString(x.big.String())
	}
	return b.String()
}

// literal creates the Result for a number token.
func literal(tok lexToken) Result {
	var x Result
	if tok.isInt {
		digits := tok.text
		if tok.base == 16 {
			digits = digits[2:]
		}
		v, ok := new(big.Int).SetString(digits, tok.base)
		if !ok {
			panic("progcalc: invalid number: " + tok.text)
		}
		x.setBig(v)
		if tok.base == 16 {
			// Hex literals are bit patterns, not signed quantities.
			x.drop(ReprI32)
		}
	}
	if tok.isFloat {
		f, err := strconv.ParseFloat(tok.text, 64)
		if err == nil || errorIsRange(err) {
			// Out of range literals become infinities.
			x.real = f
			x.has |= ReprReal
		}
	}
	return x
}

func errorIsRange(err error) bool {
	e, ok := err.(*strconv.NumError)
	return ok && e.Err == strconv.ErrRange
}

// setBig sets x to exactly v, with the fixed-width representations that can
// hold it. x takes ownership of v. The real representation is unchanged.
func (x *Result) setBig(v *big.Int) {
	x.drop(reprInts)
	x.big = v
	x.has |= ReprBig
	if v.IsUint64() {
		x.u64 = v.Uint64()
		x.has |= ReprU64
		if x.u64 <= math.MaxUint32 {
			x.u32 = uint32(x.u64)
			x.has |= ReprU32
		}
	}
	if v.IsInt64() {
		if i := v.Int64(); math.MinInt32 <= i && i <= math.MaxInt32 {
			x.i32 = int32(i)
			x.has |= ReprI32
		}
	}
}

// drop removes the representations in r from x.
func (x *Result) drop(r Repr) {
	x.has &^= r
	if r&ReprU32 != 0 {
		x.u32 = 0
	}
	if r&ReprI32 != 0 {
		x.i32 = 0
	}
	if r&ReprU64 != 0 {
		x.u64 = 0
	}
	if r&ReprReal != 0 {
		x.real = 0
	}
	if r&ReprBig != 0 {
		x.big = nil
	}
}

// intersect drops the representations of x that y lacks.
func (x *Result) intersect(y Result) {
	x.drop(x.has &^ y.has)
}

// limit drops the big representation if it is longer than bits.
func (x *Result) limit(bits uint) {
	if x.has&ReprBig != 0 && uint(x.big.BitLen()) > bits {
		x.drop(ReprBig)
	}
}

// negative reports whether x is less than zero, judged by the most
// trustworthy representation present.
func (x Result) negative() bool {
	switch {
	case x.has&ReprBig != 0:
		return x.big.Sign() < 0
	case x.has&ReprReal != 0:
		return x.real < 0
	case x.has&ReprI32 != 0:
		return x.i32 < 0
	default:
		// Unsigned representations are never negative.
		return false
	}
}

// zero reports whether x is zero. The most precise representation present
// decides: big, then real, then the fixed-width ones from widest.
func (x Result) zero() bool {
	switch {
	case x.has&ReprBig != 0:
		return x.big.Sign() == 0
	case x.has&ReprReal != 0:
		return x.real == 0
	case x.has&ReprU64 != 0:
		return x.u64 == 0
	case x.has&ReprU32 != 0:
		return x.u32 == 0
	case x.has&ReprI32 != 0:
		return x.i32 == 0
	default:
		return false
	}
}

// float returns the float64 value of x, from the real representation if it
// is present and otherwise rounded from the big one.
func (x Result) float() (float64, bool) {
	switch {
	case x.has&ReprReal != 0:
		return x.real, true
	case x.has&ReprBig != 0:
		f, _ := new(big.Float).SetInt(x.big).Float64()
		return f, true
	default:
		return 0, false
	}
}

// negOne is -1 in every representation, wrapped where unsigned. Multiplying by
// it negates every representation. It must not be modified.
var negOne = Result{
	has:  reprAll,
	u32:  math.MaxUint32,
	i32:  -1,
	u64:  math.MaxUint64,
	real: -1,
	big:  big.NewInt(-1),
}

func (x *Result) add(y Result) {
	x.intersect(y)
	if x.has&ReprU32 != 0 {
		x.u32 += y.u32
	}
	if x.has&ReprI32 != 0 {
		x.i32 += y.i32
	}
	if x.has&ReprU64 != 0 {
		x.u64 += y.u64
	}
	if x.has&ReprReal != 0 {
		x.real += y.real
	}
	if x.has&ReprBig != 0 {
		x.big.Add(x.big, y.big)
	}
}

func (x *Result) sub(y Result) {
	x.intersect(y)
	if x.has&ReprU32 != 0 {
		x.u32 -= y.u32
	}
	if x.has&ReprI32 != 0 {
		x.i32 -= y.i32
	}
	if x.has&ReprU64 != 0 {
		x.u64 -= y.u64
	}
	if x.has&ReprReal != 0 {
		x.real -= y.real
	}
	if x.has&ReprBig != 0 {
		x.big.Sub(x.big, y.big)
	}
}

func (x *Result) mul(y Result) {
	x.intersect(y)
	if x.has&ReprU32 != 0 {
		x.u32 *= y.u32
	}
	if x.has&ReprI32 != 0 {
		x.i32 *= y.i32
	}
	if x.has&ReprU64 != 0 {
		x.u64 *= y.u64
	}
	if x.has&ReprReal != 0 {
		x.real *= y.real
	}
	if x.has&ReprBig != 0 {
		x.big.Mul(x.big, y.big)
	}
}

// neg negates x.
func (x *Result) neg() {
	x.mul(negOne)
}

// quo divides x by y, truncating integers toward zero. The caller checks that
// y is not zero. A fixed-width representation of y can still be zero when the
// value has wrapped around; that representation is dropped.
func (x *Result) quo(y Result) {
	x.intersect(y)
	x.dropZeroDivisors(y)
	if x.has&ReprU32 != 0 {
		x.u32 /= y.u32
	}
	if x.has&ReprI32 != 0 {
		x.i32 /= y.i32
	}
	if x.has&ReprU64 != 0 {
		x.u64 /= y.u64
	}
	if x.has&ReprReal != 0 {
		x.real /= y.real
	}
	if x.has&ReprBig != 0 {
		x.big.Quo(x.big, y.big)
	}
}

// rem sets x to the remainder of x/y, with the sign of x.
func (x *Result) rem(y Result) {
	x.intersect(y)
	x.dropZeroDivisors(y)
	if x.has&ReprU32 != 0 {
		x.u32 %= y.u32
	}
	if x.has&ReprI32 != 0 {
		x.i32 %= y.i32
	}
	if x.has&ReprU64 != 0 {
		x.u64 %= y.u64
	}
	if x.has&ReprReal != 0 {
		x.real = math.Mod(x.real, y.real)
	}
	if x.has&ReprBig != 0 {
		x.big.Rem(x.big, y.big)
	}
}

func (x *Result) dropZeroDivisors(y Result) {
	if x.has&ReprU32 != 0 && y.u32 == 0 {
		x.drop(ReprU32)
	}
	if x.has&ReprI32 != 0 && y.i32 == 0 {
		x.drop(ReprI32)
	}
	if x.has&ReprU64 != 0 && y.u64 == 0 {
		x.drop(ReprU64)
	}
}

// shl shifts x left by y. Each fixed-width representation needs a shift
// amount of y in its own range, i.e. below its width. The big representation
// is dropped for negative amounts and for results longer than bits.
func (x *Result) shl(y Result, bits uint) {
	x.intersect(y)
	x.drop(ReprReal)
	x.dropBadShifts(y)
	if x.has&ReprU32 != 0 {
		x.u32 <<= y.u32
	}
	if x.has&ReprI32 != 0 {
		x.i32 <<= uint32(y.i32)
	}
	if x.has&ReprU64 != 0 {
		x.u64 <<= y.u64
	}
	if x.has&ReprBig != 0 {
		if !y.big.IsUint64() || y.big.Uint64() > uint64(bits) || uint64(x.big.BitLen())+y.big.Uint64() > uint64(bits) {
			x.drop(ReprBig)
		} else {
			x.big.Lsh(x.big, uint(y.big.Uint64()))
		}
	}
}

// shr shifts x right by y. Signed representations shift arithmetically.
func (x *Result) shr(y Result) {
	x.intersect(y)
	x.drop(ReprReal)
	x.dropBadShifts(y)
	if x.has&ReprU32 != 0 {
		x.u32 >>= y.u32
	}
	if x.has&ReprI32 != 0 {
		x.i32 >>= uint32(y.i32)
	}
	if x.has&ReprU64 != 0 {
		x.u64 >>= y.u64
	}
	if x.has&ReprBig != 0 {
		switch {
		case y.big.Sign() < 0:
			x.drop(ReprBig)
		case !y.big.IsUint64() || y.big.Uint64() >= uint64(x.big.BitLen()):
			// Everything shifts out, leaving only the sign.
			if x.big.Sign() < 0 {
				x.big.SetInt64(-1)
			} else {
				x.big.SetInt64(0)
			}
		default:
			x.big.Rsh(x.big, uint(y.big.Uint64()))
		}
	}
}

func (x *Result) dropBadShifts(y Result) {
	if x.has&ReprU32 != 0 && y.u32 >= 32 {
		x.drop(ReprU32)
	}
	if x.has&ReprI32 != 0 && (y.i32 < 0 || y.i32 >= 32) {
		x.drop(ReprI32)
	}
	if x.has&ReprU64 != 0 && y.u64 >= 64 {
		x.drop(ReprU64)
	}
}

func (x *Result) and(y Result) {
	x.intersect(y)
	x.drop(ReprReal)
	if x.has&ReprU32 != 0 {
		x.u32 &= y.u32
	}
	if x.has&ReprI32 != 0 {
		x.i32 &= y.i32
	}
	if x.has&ReprU64 != 0 {
		x.u64 &= y.u64
	}
	if x.has&ReprBig != 0 {
		x.big.And(x.big, y.big)
	}
}

func (x *Result) or(y Result) {
	x.intersect(y)
	x.drop(ReprReal)
	if x.has&ReprU32 != 0 {
		x.u32 |= y.u32
	}
	if x.has&ReprI32 != 0 {
		x.i32 |= y.i32
	}
	if x.has&ReprU64 != 0 {
		x.u64 |= y.u64
	}
	if x.has&ReprBig != 0 {
		x.big.Or(x.big, y.big)
	}
}

func (x *Result) xor(y Result) {
	x.intersect(y)
	x.drop(ReprReal)
	if x.has&ReprU32 != 0 {
		x.u32 ^= y.u32
	}
	if x.has&ReprI32 != 0 {
		x.i32 ^= y.i32
	}
	if x.has&ReprU64 != 0 {
		x.u64 ^= y.u64
	}
	if x.has&ReprBig != 0 {
		x.big.Xor(x.big, y.big)
	}
}

// not complements x. The signed 32-bit representation is dropped, because the
// complement of a signed value depends on a width the expression doesn't fix.
func (x *Result) not() {
	x.drop(ReprReal | ReprI32)
	if x.has&ReprU32 != 0 {
		x.u32 = ^x.u32
	}
	if x.has&ReprU64 != 0 {
		x.u64 = ^x.u64
	}
	if x.has&ReprBig != 0 {
		x.big.Not(x.big)
	}
}

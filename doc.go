// Package progcalc implements a programmer's calculator for C-style integer
// and floating-point expressions.
//
// Every result is computed in five representations at once: unsigned 32-bit,
// signed 32-bit, unsigned 64-bit, float64, and an arbitrary-precision
// integer. Each representation is present only while it remains meaningful
// for the expression. "0x10 << 2" has no float64 value, since shifts are
// integer operations; "1 << 40" has no 32-bit values; "sin(1)" has only the
// float64 value. A caller displays whichever representations are present.
// An expression can evaluate without error yet leave none, as "1 << -1" and
// "1.5 & 1" do, so check Result.Valid before using a result.
//
// The operators, from least to most binding, are | ^ & (<< >>) (+ -)
// (* / %) ** and the unary - ~. Binary operators are left-associative except
// for **, so "2**3**2" is 512. The functions are abs, sin, cos, tan, rad,
// deg, sqrt, log2, and pow(x, y), and the one constant is pi.
//
// Parsing and evaluation are recursive, so the goroutine stack grows with the
// nesting depth of the input, e.g. "((((1))))" or "----1". Use MaxDepth to
// bound it when the input is untrusted.
package progcalc

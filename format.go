package progcalc

import (
	"strconv"
	"strings"
)

// View is a way to render one representation of a Result.
type View int8

const (
	// ViewDec32 renders the unsigned 32-bit representation in decimal.
	ViewDec32 View = iota
	// ViewHex32 renders the unsigned 32-bit representation as eight uppercase
	// hex digits.
	ViewHex32
	// ViewI32 renders the signed 32-bit representation in decimal.
	ViewI32
	// ViewU64 renders the unsigned 64-bit representation in decimal.
	ViewU64
	// ViewHex64 renders the unsigned 64-bit representation as sixteen
	// uppercase hex digits.
	ViewHex64
	// ViewReal renders the float64 representation with six decimal places.
	ViewReal
	// ViewRealExp renders the float64 representation in scientific notation
	// with six decimal places.
	ViewRealExp
	// ViewBig renders the arbitrary-precision representation in decimal.
	ViewBig
)

var views = [...]struct {
	name string
	repr Repr
}{
	ViewDec32:   {"dec32", ReprU32},
	ViewHex32:   {"hex32", ReprU32},
	ViewI32:     {"i32", ReprI32},
	ViewU64:     {"u64", ReprU64},
	ViewHex64:   {"hex64", ReprU64},
	ViewReal:    {"real", ReprReal},
	ViewRealExp: {"realexp", ReprReal},
	ViewBig:     {"big", ReprBig},
}

// DefaultViews is the set of views a calculator shows by default.
var DefaultViews = []View{ViewDec32, ViewHex32, ViewReal, ViewRealExp, ViewBig}

func (v View) String() string {
	if v < 0 || int(v) >= len(views) {
		return "View(" + strconv.Itoa(int(v)) + ")"
	}
	return views[v].name
}

// Repr returns the representation the view renders.
func (v View) Repr() Repr {
	if v < 0 || int(v) >= len(views) {
		return 0
	}
	return views[v].repr
}

// Format renders x. The result is false if x lacks the representation the
// view needs.
func (v View) Format(x Result) (string, bool) {
	if !x.Has(v.Repr()) || v.Repr() == 0 {
		return "", false
	}
	switch v {
	case ViewDec32:
		return strconv.FormatUint(uint64(x.u32), 10), true
	case ViewHex32:
		return hexPad(uint64(x.u32), 8), true
	case ViewI32:
		return strconv.FormatInt(int64(x.i32), 10), true
	case ViewU64:
		return strconv.FormatUint(x.u64, 10), true
	case ViewHex64:
		return hexPad(x.u64, 16), true
	case ViewReal:
		return strconv.FormatFloat(x.real, 'f', 6, 64), true
	case ViewRealExp:
		return strconv.FormatFloat(x.real, 'e', 6, 64), true
	case ViewBig:
		return x.big.String(), true
	default:
		panic("progcalc: unhandled view " + v.String())
	}
}

// hexPad formats v in uppercase hexadecimal, zero-padded to width digits.
func hexPad(v uint64, width int) string {
	s := strings.ToUpper(strconv.FormatUint(v, 16))
	if len(s) < width {
		s = strings.Repeat("0", width-len(s)) + s
	}
	return s
}

// ParseViews parses a comma-separated list of view names. Surrounding spaces
// are ignored. The special name "all" selects every view in order.
func ParseViews(s string) ([]View, error) {
	var r []View
	for _, name := range strings.Split(s, ",") {
		name = strings.TrimSpace(name)
		if name == "all" {
			for v := range views {
				r = append(r, View(v))
			}
			continue
		}
		v, ok := viewNamed(name)
		if !ok {
			return nil, &ViewError{Name: name}
		}
		r = append(r, v)
	}
	return r, nil
}

func viewNamed(name string) (View, bool) {
	for v, d := range views {
		if d.name == name {
			return View(v), true
		}
	}
	return 0, false
}

// ViewError is an error from naming a view that does not exist.
type ViewError struct {
	// Name is the unrecognized name.
	Name string
}

func (err *ViewError) Error() string {
	return "unknown view " + strconv.Quote(err.Name)
}

// Package object defines the runtime value representation of the
// interpreter: Value, a fixed-precision decimal scalar, and Object, a
// tagged union of the heap-allocated reference types (strings, records,
// lists, maps, and their optional variants). Both are modeled as tagged
// unions rather than interface hierarchies with per-kind implementations,
// following the same "prefer a closed tag over virtual dispatch" guidance
// that shapes the bytecode Opcode and the interpreter's dispatch switch.
package object

import (
	"fmt"
	"math/big"
)

// decimalDigits bounds the coefficient of a Value to the same precision a
// 128-bit IEEE-754-2008 decimal would carry (34 significant digits). No
// decimal128 library is used anywhere in this module, so Value is
// implemented here on math/big, trimmed to this precision after every
// arithmetic operation; see DESIGN.md.
const decimalDigits = 34

var decimalLimit = func() *big.Int {
	limit := big.NewInt(10)
	return limit.Exp(limit, big.NewInt(decimalDigits), nil)
}()

// Value is a 128-bit-equivalent fixed-precision decimal number: the
// language's only scalar numeric type. The zero Value is the decimal 0.
type Value struct {
	coeff big.Int // unsigned coefficient, < 10^34
	exp   int32   // value = (neg ? -1 : 1) * coeff * 10^exp
	neg   bool
}

// Zero is the Value representing 0.
var Zero = Value{}

// NewFromInt64 creates a Value representing an exact integer.
func NewFromInt64(v int64) Value {
	var val Value
	if v < 0 {
		val.neg = true
		val.coeff.SetUint64(uint64(-v))
	} else {
		val.coeff.SetUint64(uint64(v))
	}
	return val.normalize()
}

// NewFromString parses a decimal literal (as produced by the scanner,
// e.g. "123", "1.5", "1.5e-3") into a Value.
func NewFromString(s string) (Value, error) {
	r := big.NewRat(0, 1)
	if _, ok := r.SetString(s); !ok {
		return Value{}, fmt.Errorf("object: invalid number literal %q", s)
	}
	return fromRat(r), nil
}

func fromRat(r *big.Rat) Value {
	// Scale the rational up until its denominator divides its numerator
	// exactly within our coefficient budget, i.e. convert to coeff * 10^exp.
	num := new(big.Int).Set(r.Num())
	den := new(big.Int).Set(r.Denom())
	neg := num.Sign() < 0
	if neg {
		num.Neg(num)
	}
	var exp int32
	ten := big.NewInt(10)
	for den.Cmp(big.NewInt(1)) != 0 && exp > -40 {
		num.Mul(num, ten)
		exp--
		q, rem := new(big.Int).QuoRem(num, den, new(big.Int))
		if rem.Sign() == 0 {
			num = q
			den.SetInt64(1)
		}
	}
	v := Value{coeff: *num, exp: exp, neg: neg}
	return v.normalize()
}

// normalize trims the coefficient to decimalLimit significant digits by
// truncating, adjusting exp accordingly, and collapses -0 to 0.
func (v Value) normalize() Value {
	for v.coeff.CmpAbs(decimalLimit) >= 0 {
		v.coeff.Quo(&v.coeff, big.NewInt(10))
		v.exp++
	}
	if v.coeff.Sign() == 0 {
		v.neg = false
		v.exp = 0
	}
	return v
}

// align returns a, b rescaled to a common exponent (the smaller of the
// two), without mutating the receivers.
func align(a, b Value) (*big.Int, *big.Int, int32) {
	ea, eb := a.exp, b.exp
	ca := new(big.Int).Set(&a.coeff)
	cb := new(big.Int).Set(&b.coeff)
	if a.neg {
		ca.Neg(ca)
	}
	if b.neg {
		cb.Neg(cb)
	}
	exp := ea
	if eb < exp {
		exp = eb
	}
	if ea > exp {
		scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(ea-exp)), nil)
		ca.Mul(ca, scale)
	}
	if eb > exp {
		scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(eb-exp)), nil)
		cb.Mul(cb, scale)
	}
	return ca, cb, exp
}

func fromSigned(c *big.Int, exp int32) Value {
	v := Value{exp: exp}
	if c.Sign() < 0 {
		v.neg = true
		v.coeff.Neg(c)
	} else {
		v.coeff.Set(c)
	}
	return v.normalize()
}

// Add returns a + b.
func Add(a, b Value) Value {
	ca, cb, exp := align(a, b)
	return fromSigned(ca.Add(ca, cb), exp)
}

// Sub returns a - b.
func Sub(a, b Value) Value {
	ca, cb, exp := align(a, b)
	return fromSigned(ca.Sub(ca, cb), exp)
}

// Mul returns a * b.
func Mul(a, b Value) Value {
	c := new(big.Int).Mul(&a.coeff, &b.coeff)
	v := Value{exp: a.exp + b.exp, neg: a.neg != b.neg}
	v.coeff.Set(c)
	return v.normalize()
}

// ErrDivideByZero is returned by Div when b is zero.
var ErrDivideByZero = fmt.Errorf("object: division by zero")

// divisionScale is how many extra decimal places Div computes before
// truncating to decimalDigits precision, so the quotient of two exactly
// representable values isn't needlessly truncated early.
const divisionScale = 40

// Div returns a / b, computed to decimalDigits of precision.
func Div(a, b Value) (Value, error) {
	if b.coeff.Sign() == 0 {
		return Value{}, ErrDivideByZero
	}
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(divisionScale), nil)
	num := new(big.Int).Mul(&a.coeff, scale)
	q := new(big.Int).Quo(num, &b.coeff)
	v := Value{exp: a.exp - b.exp - divisionScale, neg: a.neg != b.neg}
	v.coeff.Set(q)
	return v.normalize(), nil
}

// Mod returns the remainder of a divided by b, truncating both operands
// toward zero first. Go's own integer % operator already truncates toward
// zero and produces a result with the dividend's sign; Mod follows the
// same rule and carries a's sign.
func Mod(a, b Value) (Value, error) {
	ai := a.Trunc()
	bi := b.Trunc()
	if bi.Sign() == 0 {
		return Value{}, ErrDivideByZero
	}
	r := new(big.Int).Rem(ai, bi)
	v := Value{neg: r.Sign() < 0}
	v.coeff.Abs(r)
	return v.normalize(), nil
}

// Trunc returns the integer part of v (truncated toward zero) as a
// signed big.Int.
func (v Value) Trunc() *big.Int {
	i := new(big.Int).Set(&v.coeff)
	if v.exp < 0 {
		scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(-v.exp)), nil)
		i.Quo(i, scale)
	} else if v.exp > 0 {
		scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(v.exp)), nil)
		i.Mul(i, scale)
	}
	if v.neg {
		i.Neg(i)
	}
	return i
}

// Cmp compares a and b, returning -1, 0 or 1.
func Cmp(a, b Value) int {
	ca, cb, _ := align(a, b)
	return ca.Cmp(cb)
}

// Equal reports whether a and b represent the same numeric value.
func Equal(a, b Value) bool { return Cmp(a, b) == 0 }

// Neg returns -v.
func (v Value) Neg() Value {
	if v.coeff.Sign() == 0 {
		return v
	}
	v.neg = !v.neg
	return v
}

// IsZero reports whether v is exactly zero.
func (v Value) IsZero() bool { return v.coeff.Sign() == 0 }

// String renders v in plain decimal notation (no exponent form), matching
// the NumberToString system call.
func (v Value) String() string {
	s := v.coeff.String()
	if v.exp == 0 {
		if v.neg {
			return "-" + s
		}
		return s
	}
	if v.exp > 0 {
		s += zeros(int(v.exp))
		if v.neg {
			return "-" + s
		}
		return s
	}
	// exp < 0: insert a decimal point -exp digits from the right
	point := -int(v.exp)
	for len(s) <= point {
		s = "0" + s
	}
	whole, frac := s[:len(s)-point], s[len(s)-point:]
	if whole == "" {
		whole = "0"
	}
	out := whole + "." + frac
	if v.neg {
		return "-" + out
	}
	return out
}

func zeros(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = '0'
	}
	return string(b)
}

// Int64 returns v truncated to an int64, for use by opcodes (e.g. jump
// counters, array indices) that need a machine integer.
func (v Value) Int64() int64 { return v.Trunc().Int64() }

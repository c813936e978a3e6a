// Copyright 2020 Aleksandr Demakin. All rights reserved.

// Package floatmath implements binary256, a 256-bit binary floating-point
// format, on top of integer arithmetic only.
//
// The value is stored exactly as its big-endian wire encoding:
//
//	255 254             236 235                       0
//	 s  eeeeeeeeeeeeeeeeeee  ffff...ffff (236 fraction bits)
//
// The exponent is biased by 262143. Normal values have an implicit leading 1,
// giving 237 bits of precision; the all-zero exponent encodes zeros and
// subnormals, the all-ones exponent encodes infinities and NaN.
// Every operation is a pure function of its arguments and the rounding mode.
package floatmath

import (
	"github.com/holiman/uint256"

	"github.com/cag/solidity-float-point-calculation/internal/uintmath"
)

const (
	totalBits = uintmath.Width
	expBits   = 19
	fracBits  = totalBits - expBits - 1
	precision = fracBits + 1

	expMask = 1<<expBits - 1
	bias    = 1<<(expBits-1) - 1

	// maxExp and minExp are the unbiased exponents of the largest and the smallest normal values.
	maxExp = expMask - 1 - bias
	minExp = 1 - bias
	// minLSBExp is the weight of the lowest fraction bit of subnormals, -262378.
	minLSBExp = minExp - fracBits
)

// Float is a binary256 floating-point number in its big-endian encoding.
// Floats are values and can be compared with ==, but note that
// the two zeros differ in their bit patterns.
type Float [32]byte

var (
	// Zero is +0.
	Zero = Float{}
	// NegZero is -0.
	NegZero = Float{0x80}
	// One is 1.0.
	One = Float{0x3f, 0xff, 0xf0}
	// Inf is the positive infinity.
	Inf = Float{0x7f, 0xff, 0xf0}
	// NegInf is the negative infinity.
	NegInf = Float{0xff, 0xff, 0xf0}
	// NaN is the only NaN pattern produced by this package.
	NaN = Float{0x7f, 0xff, 0xf0, 31: 0x01}
	// SmallestNonzero is the smallest positive subnormal value, 2^-262378.
	SmallestNonzero = Float{31: 0x01}
	// SmallestNormal is 2^-262142.
	SmallestNormal = Float{2: 0x10}
	// MaxFinite is the largest finite value, (2 - 2^-236) * 2^262143.
	MaxFinite = pack(false, expMask-1, uintmath.Mask(fracBits))
)

// Class describes the kind of value a Float encodes.
type Class int

const (
	// ClassZero is +0 or -0.
	ClassZero Class = iota
	// ClassSubnormal is a nonzero value without the implicit leading bit.
	ClassSubnormal
	// ClassNormal is a finite value with the implicit leading bit.
	ClassNormal
	// ClassInf is an infinity.
	ClassInf
	// ClassNaN is not a number.
	ClassNaN
)

var classNames = [...]string{"zero", "subnormal", "normal", "inf", "nan"}

func (c Class) String() string {
	if c < 0 || int(c) >= len(classNames) {
		return "unknown"
	}
	return classNames[c]
}

// decoded is an unpacked finite or special value.
// For finite values the number equals (-1)^neg * mant * 2^exp,
// where exp is the weight of the lowest bit of mant.
type decoded struct {
	class Class
	neg   bool
	exp   int
	mant  uint256.Int
}

func (f Float) word() *uint256.Int {
	return new(uint256.Int).SetBytes32(f[:])
}

func (f Float) signbit() bool {
	return f[0]&0x80 != 0
}

func (f Float) expField() int {
	return int(f[0]&0x7f)<<12 | int(f[1])<<4 | int(f[2]>>4)
}

func (f Float) fraction() *uint256.Int {
	w := f.word()
	return w.And(w, uintmath.Mask(fracBits))
}

// pack assembles a value from its fields. frac must fit into fracBits.
func pack(neg bool, field int, frac *uint256.Int) Float {
	w := new(uint256.Int).Lsh(uint256.NewInt(uint64(field)), fracBits)
	w.Or(w, frac)
	f := Float(w.Bytes32())
	if neg {
		f[0] |= 0x80
	}
	return f
}

func signedZero(neg bool) Float {
	if neg {
		return NegZero
	}
	return Zero
}

func signedInf(neg bool) Float {
	if neg {
		return NegInf
	}
	return Inf
}

func decode(f Float) decoded {
	d := decoded{neg: f.signbit()}
	field, frac := f.expField(), f.fraction()
	switch {
	case field == expMask:
		if frac.IsZero() {
			d.class = ClassInf
		} else {
			d.class = ClassNaN
		}
	case field == 0:
		if frac.IsZero() {
			d.class = ClassZero
			return d
		}
		d.class = ClassSubnormal
		d.mant = *frac
		d.exp = minLSBExp
	default:
		d.class = ClassNormal
		d.mant = *frac.Or(frac, uintmath.Pow2(fracBits))
		d.exp = field - bias - fracBits
	}
	return d
}

func (d *decoded) isFinite() bool {
	return d.class <= ClassNormal
}

// normalize shifts a nonzero finite significand so that it occupies exactly precision bits.
// Subnormals get an exponent below minLSBExp.
func (d *decoded) normalize() {
	n := uintmath.BitLength(&d.mant)
	if n == 0 {
		panic("floatmath: normalizing a zero significand")
	}
	if shift := precision - n; shift > 0 {
		d.mant.Lsh(&d.mant, uint(shift))
		d.exp -= shift
	}
}

// Class returns the kind of f.
func (f Float) Class() Class {
	return decode(f).class
}

// IsNaN returns true, if f is not a number.
func (f Float) IsNaN() bool {
	return f.Class() == ClassNaN
}

// IsInf reports whether f is an infinity, according to sign.
// If sign > 0, IsInf reports whether f is positive infinity.
// If sign < 0, IsInf reports whether f is negative infinity.
// If sign == 0, IsInf reports whether f is either infinity.
func (f Float) IsInf(sign int) bool {
	if f.Class() != ClassInf {
		return false
	}
	return sign == 0 || sign > 0 && !f.signbit() || sign < 0 && f.signbit()
}

// IsZero returns true for both +0 and -0.
func (f Float) IsZero() bool {
	return f.Class() == ClassZero
}

// IsFinite returns true for zeros, subnormal and normal values.
func (f Float) IsFinite() bool {
	return f.Class() <= ClassNormal
}

// Signbit returns true, if the sign bit of f is set. NaN has no sign.
func (f Float) Signbit() bool {
	if f.IsNaN() {
		return false
	}
	return f.signbit()
}

// Sign returns -1 if f < 0, 0 if f is a zero or NaN, 1 if f > 0.
func (f Float) Sign() int {
	switch c := f.Class(); {
	case c == ClassZero || c == ClassNaN:
		return 0
	case f.signbit():
		return -1
	default:
		return 1
	}
}

// Parts returns the sign, the unbiased exponent, and the significand
// with the implicit bit made explicit, so that a finite f equals
// (-1)^neg * mant * 2^(exp-236).
// Subnormals and zeros report the minimum exponent, -262142.
// For infinities and NaN mant is zero and exp is 262144.
func (f Float) Parts() (neg bool, exp int, mant *uint256.Int) {
	d := decode(f)
	switch d.class {
	case ClassZero, ClassSubnormal:
		return d.neg, minExp, &d.mant
	case ClassNormal:
		return d.neg, d.exp + fracBits, &d.mant
	case ClassNaN:
		return false, maxExp + 1, &d.mant
	default:
		return d.neg, maxExp + 1, &d.mant
	}
}

// Copyright 2020 Aleksandr Demakin. All rights reserved.

package floatmath

import (
	"errors"
	"math/big"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/constraints"
)

const (
	// quotientBits is the width of the scaled quotient used for rational conversions.
	quotientBits = 250
)

var (
	errNotFinite = errors.New("value is not finite")
)

// FromInt returns the value of x, interpreted as a two's complement signed 256-bit integer.
func FromInt(x *uint256.Int, mode RoundingMode) Float {
	neg := x.Sign() < 0
	m := new(uint256.Int).Set(x)
	if neg {
		m.Neg(x)
	}
	return fromMagnitude(neg, m, mode)
}

// FromInteger returns the value of any built-in integer.
func FromInteger[T constraints.Integer](x T, mode RoundingMode) Float {
	if x < 0 {
		return fromMagnitude(true, uint256.NewInt(uint64(-int64(x))), mode)
	}
	return fromMagnitude(false, uint256.NewInt(uint64(x)), mode)
}

// FromInt64 returns the value of x.
func FromInt64(x int64, mode RoundingMode) Float {
	return FromInteger(x, mode)
}

// FromUint64 returns the value of x.
func FromUint64(x uint64, mode RoundingMode) Float {
	return FromInteger(x, mode)
}

func fromMagnitude(neg bool, m *uint256.Int, mode RoundingMode) Float {
	if !mode.Valid() {
		panic("floatmath: invalid rounding mode " + mode.String())
	}
	if m.IsZero() {
		return Zero
	}
	f, _ := roundPack(neg, m, 0, false, mode)
	return f
}

// FromBig returns the value of an integer of any size.
func FromBig(x *big.Int, mode RoundingMode) Float {
	if x.Sign() == 0 {
		return Zero
	}
	return fromScaledBig(x.Sign() < 0, new(big.Int).Abs(x), 0, mode)
}

// fromScaledBig rounds (-1)^neg * m * 2^exp, m > 0.
func fromScaledBig(neg bool, m *big.Int, exp int, mode RoundingMode) Float {
	if !mode.Valid() {
		panic("floatmath: invalid rounding mode " + mode.String())
	}
	var sticky bool
	if n := m.BitLen(); n > totalBits {
		shift := n - quotientBits
		sticky = m.TrailingZeroBits() < uint(shift)
		m = new(big.Int).Rsh(m, uint(shift))
		exp += shift
	}
	w, _ := uint256.FromBig(m)
	f, _ := roundPack(neg, w, exp, sticky, mode)
	return f
}

// fromRat rounds (-1)^neg * p/q, p, q > 0.
func fromRat(neg bool, p, q *big.Int, mode RoundingMode) Float {
	if !mode.Valid() {
		panic("floatmath: invalid rounding mode " + mode.String())
	}
	// p/q is in [2^(d-1), 2^(d+1)), so the scaled quotient has quotientBits or quotientBits+1 bits.
	shift := quotientBits - (p.BitLen() - q.BitLen())
	num, den := new(big.Int).Set(p), new(big.Int).Set(q)
	if shift > 0 {
		num.Lsh(num, uint(shift))
	} else {
		den.Lsh(den, uint(-shift))
	}
	quo, rem := new(big.Int).QuoRem(num, den, new(big.Int))
	w, _ := uint256.FromBig(quo)
	f, _ := roundPack(neg, w, -shift, rem.Sign() != 0, mode)
	return f
}

// FromDecimal returns the value of d.
func FromDecimal(d decimal.Decimal, mode RoundingMode) Float {
	coef, exp := new(big.Int).Set(d.Coefficient()), int(d.Exponent())
	if coef.Sign() == 0 {
		return Zero
	}
	neg := coef.Sign() < 0
	coef.Abs(coef)
	// approxExp2 is less than 3 away from log2(|d|); log2(10) = 3.321928...
	switch approxExp2 := int64(coef.BitLen()) + int64(exp)*3321928/1000000; {
	case approxExp2 > maxExp+3:
		return fromScaledBig(neg, big.NewInt(1), maxExp+1, mode)
	case approxExp2 < minLSBExp-3:
		// below half of SmallestNonzero: any tiny inexact value rounds the same way.
		return fromScaledBig(neg, big.NewInt(3), minLSBExp-4, mode)
	}
	if exp >= 0 {
		return fromScaledBig(neg, coef.Mul(coef, pow10(exp)), 0, mode)
	}
	return fromRat(neg, coef, pow10(-exp), mode)
}

func pow10(n int) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
}

// FromBigFloat returns the value of x, rounded according to mode.
func FromBigFloat(x *big.Float, mode RoundingMode) Float {
	switch {
	case x.IsInf():
		return signedInf(x.Signbit())
	case x.Sign() == 0:
		return signedZero(x.Signbit())
	}
	mant := new(big.Float)
	exp := x.MantExp(mant)
	prec := int(x.MinPrec())
	m, _ := mant.SetMantExp(mant, prec).Int(nil)
	return fromScaledBig(x.Signbit(), m.Abs(m), exp-prec, mode)
}

// Big returns f as a *big.Float with 237 bits of precision. NaN returns an error.
func (f Float) Big() (*big.Float, error) {
	d := decode(f)
	res := new(big.Float).SetPrec(precision)
	switch d.class {
	case ClassNaN:
		return nil, errNotFinite
	case ClassInf:
		return res.SetInf(d.neg), nil
	case ClassZero:
		if d.neg {
			res.Neg(res)
		}
		return res, nil
	}
	res.SetInt(d.mant.ToBig())
	res.SetMantExp(res, d.exp)
	if d.neg {
		res.Neg(res)
	}
	return res, nil
}

// Decimal returns the exact decimal value of a finite f.
// -0 becomes 0. Infinities and NaN return an error.
func (f Float) Decimal() (decimal.Decimal, error) {
	d := decode(f)
	if !d.isFinite() {
		return decimal.Zero, errNotFinite
	}
	if d.class == ClassZero {
		return decimal.Zero, nil
	}
	m := d.mant.ToBig()
	if d.neg {
		m.Neg(m)
	}
	if d.exp >= 0 {
		return decimal.NewFromBigInt(m.Lsh(m, uint(d.exp)), 0), nil
	}
	// m * 2^-k = m * 5^k * 10^-k
	k := -d.exp
	m.Mul(m, new(big.Int).Exp(big.NewInt(5), big.NewInt(int64(k)), nil))
	return decimal.NewFromBigInt(m, int32(-k)), nil
}

// Copyright 2020 Aleksandr Demakin. All rights reserved.

package floatmath

import (
	"fmt"
	"strings"

	"github.com/holiman/uint256"

	"github.com/cag/solidity-float-point-calculation/internal/uintmath"
)

const (
	// addGuardBits is how far both addends are moved left before alignment.
	addGuardBits = 16
	// mulDropBits is the number of low product bits folded into sticky,
	// so that the 474-bit product of two significands fits a word.
	mulDropBits = 2*precision - totalBits
	// divScaleBits is the dividend pre-shift, which yields a 250 or 251 bit quotient.
	divScaleBits = 250
)

// Op is a binary arithmetic operation.
type Op int

const (
	// OpAdd is a + b.
	OpAdd Op = iota
	// OpSub is a - b.
	OpSub
	// OpMul is a * b.
	OpMul
	// OpDiv is a / b.
	OpDiv
)

var opNames = [...]string{"add", "sub", "mul", "div"}

func (op Op) String() string {
	if op < 0 || int(op) >= len(opNames) {
		return fmt.Sprintf("Op(%d)", int(op))
	}
	return opNames[op]
}

// ParseOp returns an operation by its name: add, sub, mul or div.
func ParseOp(s string) (Op, error) {
	for i, name := range opNames {
		if strings.EqualFold(s, name) {
			return Op(i), nil
		}
	}
	return 0, fmt.Errorf("unknown operation %q", s)
}

// Apply performs op on a and b. Along with the result it returns the guard, round and sticky bits
// of the final rounding step. They are informational only; exact results have all of them unset.
// Apply panics for an invalid op or rounding mode.
func Apply(op Op, a, b Float, mode RoundingMode) (Float, GRS) {
	if !mode.Valid() {
		panic(fmt.Sprintf("floatmath: invalid rounding mode %d", mode))
	}
	switch op {
	case OpAdd:
		return add(a, b, mode)
	case OpSub:
		return add(a, b.Neg(), mode)
	case OpMul:
		return mul(a, b, mode)
	case OpDiv:
		return div(a, b, mode)
	default:
		panic(fmt.Sprintf("floatmath: invalid operation %d", op))
	}
}

// Add returns f + other, rounded according to mode.
func (f Float) Add(other Float, mode RoundingMode) Float {
	res, _ := Apply(OpAdd, f, other, mode)
	return res
}

// Sub returns f - other, rounded according to mode.
func (f Float) Sub(other Float, mode RoundingMode) Float {
	res, _ := Apply(OpSub, f, other, mode)
	return res
}

// Mul returns f * other, rounded according to mode.
func (f Float) Mul(other Float, mode RoundingMode) Float {
	res, _ := Apply(OpMul, f, other, mode)
	return res
}

// Div returns f / other, rounded according to mode.
// Division of a nonzero value by zero gives a signed infinity, 0/0 is NaN.
func (f Float) Div(other Float, mode RoundingMode) Float {
	res, _ := Apply(OpDiv, f, other, mode)
	return res
}

// Add returns a + b, rounded according to mode.
func Add(a, b Float, mode RoundingMode) Float {
	return a.Add(b, mode)
}

// Sub returns a - b, rounded according to mode.
func Sub(a, b Float, mode RoundingMode) Float {
	return a.Sub(b, mode)
}

// Mul returns a * b, rounded according to mode.
func Mul(a, b Float, mode RoundingMode) Float {
	return a.Mul(b, mode)
}

// Div returns a / b, rounded according to mode.
func Div(a, b Float, mode RoundingMode) Float {
	return a.Div(b, mode)
}

func add(a, b Float, mode RoundingMode) (Float, GRS) {
	x, y := decode(a), decode(b)
	// first, check for the obvious cases, when one of the arguments is not a regular number
	switch {
	case x.class == ClassNaN || y.class == ClassNaN:
		return NaN, GRS{}
	case x.class == ClassInf && y.class == ClassInf:
		if x.neg != y.neg {
			return NaN, GRS{}
		}
		return a, GRS{}
	case x.class == ClassInf:
		return a, GRS{}
	case y.class == ClassInf:
		return b, GRS{}
	case x.class == ClassZero && y.class == ClassZero:
		if x.neg == y.neg {
			return a, GRS{}
		}
		return signedZero(mode == ToNegativeInf), GRS{}
	case x.class == ClassZero:
		return b, GRS{}
	case y.class == ClassZero:
		return a, GRS{}
	}
	x.normalize()
	y.normalize()
	// make x the operand of the larger magnitude, it defines the sign.
	if x.exp < y.exp || x.exp == y.exp && x.mant.Lt(&y.mant) {
		x, y = y, x
	}
	mx := new(uint256.Int).Lsh(&x.mant, addGuardBits)
	my, sticky := align(&y.mant, x.exp-y.exp)
	sum := new(uint256.Int)
	if x.neg == y.neg {
		sum.Add(mx, my)
	} else {
		// the truncated tail of y belongs to the subtrahend:
		// mx - (my + t) = (mx - my - 1) + (1 - t) for 0 < t < 1.
		sum.Sub(mx, my)
		if sticky {
			sum.SubUint64(sum, 1)
		}
	}
	if sum.IsZero() {
		return signedZero(mode == ToNegativeInf), GRS{}
	}
	return roundPack(x.neg, sum, x.exp-addGuardBits, sticky, mode)
}

// align returns m * 2^(addGuardBits-d) truncated to an integer,
// and whether the truncation dropped any set bits.
func align(m *uint256.Int, d int) (*uint256.Int, bool) {
	if d <= addGuardBits {
		return new(uint256.Int).Lsh(m, uint(addGuardBits-d)), false
	}
	res, grs := uintmath.ShiftRightGRS(m, uint(d-addGuardBits))
	return res, grs.Inexact()
}

func mul(a, b Float, mode RoundingMode) (Float, GRS) {
	x, y := decode(a), decode(b)
	neg := x.neg != y.neg
	switch {
	case x.class == ClassNaN || y.class == ClassNaN:
		return NaN, GRS{}
	case x.class == ClassInf || y.class == ClassInf:
		if x.class == ClassZero || y.class == ClassZero {
			return NaN, GRS{}
		}
		return signedInf(neg), GRS{}
	case x.class == ClassZero || y.class == ClassZero:
		return signedZero(neg), GRS{}
	}
	x.normalize()
	y.normalize()
	// both significands are in [2^236, 2^237), so the product is in [2^472, 2^474).
	prod, _ := new(uint256.Int).MulDivOverflow(&x.mant, &y.mant, uintmath.Pow2(mulDropBits))
	low := new(uint256.Int).Mul(&x.mant, &y.mant)
	sticky := uintmath.LowBitsNonZero(low, mulDropBits)
	return roundPack(neg, prod, x.exp+y.exp+mulDropBits, sticky, mode)
}

func div(a, b Float, mode RoundingMode) (Float, GRS) {
	x, y := decode(a), decode(b)
	neg := x.neg != y.neg
	switch {
	case x.class == ClassNaN || y.class == ClassNaN:
		return NaN, GRS{}
	case x.class == ClassInf:
		if y.class == ClassInf {
			return NaN, GRS{}
		}
		return signedInf(neg), GRS{}
	case y.class == ClassInf:
		return signedZero(neg), GRS{}
	case y.class == ClassZero:
		if x.class == ClassZero {
			return NaN, GRS{}
		}
		return signedInf(neg), GRS{}
	case x.class == ClassZero:
		return signedZero(neg), GRS{}
	}
	x.normalize()
	y.normalize()
	quo, _ := new(uint256.Int).MulDivOverflow(&x.mant, uintmath.Pow2(divScaleBits), &y.mant)
	// the remainder is below the divisor, so it is exact modulo 2^256.
	rem := new(uint256.Int).Lsh(&x.mant, divScaleBits)
	rem.Sub(rem, new(uint256.Int).Mul(quo, &y.mant))
	return roundPack(neg, quo, x.exp-y.exp-divScaleBits, !rem.IsZero(), mode)
}

// Copyright 2020 Aleksandr Demakin. All rights reserved.

package floatmath

import (
	"fmt"
	"strings"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"

	"github.com/cag/solidity-float-point-calculation/internal/uintmath"
)

func TestRoundingModeString(t *testing.T) {
	a := assert.New(t)
	a.Equal("roundTiesToEven", ToNearestEven.String())
	a.Equal("roundTowardZero", ToZero.String())
	a.Equal("roundTowardPositive", ToPositiveInf.String())
	a.Equal("roundTowardNegative", ToNegativeInf.String())
	a.Equal("RoundingMode(7)", RoundingMode(7).String())
	a.False(RoundingMode(4).Valid())
	for i, m := range RoundingModes {
		a.Equal(RoundingMode(i), m)
		a.True(m.Valid())
	}
}

func TestParseRoundingMode(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		s    string
		mode RoundingMode
		err  string
	}{
		{"0", ToNearestEven, ""},
		{"1", ToZero, ""},
		{" 2 ", ToPositiveInf, ""},
		{"3", ToNegativeInf, ""},
		{"roundTiesToEven", ToNearestEven, ""},
		{"ROUNDTOWARDZERO", ToZero, ""},
		{"rtp", ToPositiveInf, ""},
		{"RTN", ToNegativeInf, ""},
		{"4", 0, `unknown rounding mode "4"`},
		{"up", 0, `unknown rounding mode "up"`},
		{"", 0, `unknown rounding mode ""`},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			mode, err := ParseRoundingMode(test.s)
			if len(test.err) == 0 {
				if a.NoError(err) {
					a.Equal(test.mode, mode)
				}
			} else {
				a.EqualError(err, test.err)
			}
		})
	}
}

func TestRoundUp(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		grs GRS
		lsb bool
		// results for ToNearestEven, ToZero, ToPositiveInf, ToNegativeInf; positive then negative.
		pos, neg [4]bool
	}{
		{GRS{}, false, [4]bool{}, [4]bool{}},
		{GRS{}, true, [4]bool{}, [4]bool{}},
		{GRS{Sticky: true}, false, [4]bool{false, false, true, false}, [4]bool{false, false, false, true}},
		{GRS{Round: true}, true, [4]bool{false, false, true, false}, [4]bool{false, false, false, true}},
		{GRS{Guard: true}, false, [4]bool{false, false, true, false}, [4]bool{false, false, false, true}},
		{GRS{Guard: true}, true, [4]bool{true, false, true, false}, [4]bool{true, false, false, true}},
		{GRS{Guard: true, Sticky: true}, false, [4]bool{true, false, true, false}, [4]bool{true, false, false, true}},
		{GRS{Guard: true, Round: true}, false, [4]bool{true, false, true, false}, [4]bool{true, false, false, true}},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			for _, mode := range RoundingModes {
				a.Equal(test.pos[mode], roundUp(mode, false, test.lsb, test.grs), mode.String())
				a.Equal(test.neg[mode], roundUp(mode, true, test.lsb, test.grs), mode.String())
			}
		})
	}
	a.Panics(func() {
		roundUp(RoundingMode(9), false, false, GRS{})
	})
}

func TestRoundPack(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		neg    bool
		mant   *uint256.Int
		exp    int
		sticky bool
		mode   RoundingMode
		res    Float
		grs    GRS
	}{
		{false, uint256.NewInt(0), 0, false, ToNearestEven, Zero, GRS{}},
		{true, uint256.NewInt(0), 0, false, ToNearestEven, NegZero, GRS{}},
		{false, uint256.NewInt(1), 0, false, ToNearestEven, One, GRS{}},
		{true, uint256.NewInt(4), -2, false, ToZero, One.Neg(), GRS{}},
		// 238 ones: rounding carries into a new binade.
		{false, uintmath.Mask(precision + 1), 0, false, ToNearestEven, fromHex("0x1p+238"), GRS{Guard: true}},
		{false, uintmath.Mask(precision + 1), 0, false, ToZero, fromHex("0x1." + strings.Repeat("f", 59) + "p+237"), GRS{Guard: true}},
		// sticky below a wide significand.
		{false, uintmath.Pow2(250), 0, true, ToPositiveInf, fromHex(fmt.Sprintf("0x1.%059xp+250", 1)), GRS{Sticky: true}},
		{false, uintmath.Pow2(250), 0, true, ToNearestEven, fromHex("0x1p+250"), GRS{Sticky: true}},
		{true, uintmath.Pow2(250), 0, true, ToNegativeInf, fromHex(fmt.Sprintf("-0x1.%059xp+250", 1)), GRS{Sticky: true}},
		// subnormal results.
		{false, uint256.NewInt(1), minLSBExp, false, ToNearestEven, SmallestNonzero, GRS{}},
		{false, uint256.NewInt(1), minLSBExp - 1, false, ToNearestEven, Zero, GRS{Guard: true}},
		{false, uint256.NewInt(1), minLSBExp - 1, false, ToPositiveInf, SmallestNonzero, GRS{Guard: true}},
		{false, uint256.NewInt(3), minLSBExp - 1, false, ToNearestEven, fromHex(enc("")[:65] + "2"), GRS{Guard: true}},
		{true, uint256.NewInt(1), minLSBExp - 1000, false, ToNegativeInf, SmallestNonzero.Neg(), GRS{Sticky: true}},
		{false, uintmath.Mask(precision), minLSBExp - 1, false, ToNearestEven, SmallestNormal, GRS{Guard: true}},
		// overflow.
		{false, uint256.NewInt(1), maxExp + 1, false, ToNearestEven, Inf, GRS{}},
		{false, uint256.NewInt(1), maxExp + 1, false, ToZero, MaxFinite, GRS{}},
		{true, uint256.NewInt(1), maxExp + 1, false, ToPositiveInf, MaxFinite.Neg(), GRS{}},
		{true, uint256.NewInt(1), maxExp + 1, false, ToNegativeInf, NegInf, GRS{}},
		{false, uint256.NewInt(1), maxExp, false, ToNearestEven, fromHex("0x1p+262143"), GRS{}},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			res, grs := roundPack(test.neg, test.mant, test.exp, test.sticky, test.mode)
			a.Equal(test.res.Hex(), res.Hex())
			a.Equal(test.grs, grs)
		})
	}
	a.Panics(func() {
		roundPack(false, uint256.NewInt(1), 0, true, ToNearestEven)
	})
}

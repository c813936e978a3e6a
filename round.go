// Copyright 2020 Aleksandr Demakin. All rights reserved.

package floatmath

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/holiman/uint256"

	"github.com/cag/solidity-float-point-calculation/internal/uintmath"
)

// RoundingMode determines how a result that is not exactly representable is rounded.
type RoundingMode byte

const (
	// ToNearestEven rounds to the nearest value, ties go to the one with an even last bit.
	ToNearestEven RoundingMode = iota
	// ToZero truncates.
	ToZero
	// ToPositiveInf rounds toward +Inf.
	ToPositiveInf
	// ToNegativeInf rounds toward -Inf.
	ToNegativeInf
)

// RoundingModes lists all rounding modes in the order of their numeric encoding.
var RoundingModes = [...]RoundingMode{ToNearestEven, ToZero, ToPositiveInf, ToNegativeInf}

var (
	modeNames = [...]string{"roundTiesToEven", "roundTowardZero", "roundTowardPositive", "roundTowardNegative"}
	modeAbbrs = [...]string{"rne", "rtz", "rtp", "rtn"}
)

// GRS holds the guard, round and sticky bits of the last truncation of an operation.
type GRS = uintmath.GRS

func (m RoundingMode) String() string {
	if int(m) >= len(modeNames) {
		return "RoundingMode(" + strconv.Itoa(int(m)) + ")"
	}
	return modeNames[m]
}

// Valid returns true for the four defined modes.
func (m RoundingMode) Valid() bool {
	return int(m) < len(modeNames)
}

// ParseRoundingMode parses a mode from its number ("0".."3"), its name ("roundTiesToEven"),
// or its abbreviation ("rne", "rtz", "rtp", "rtn"). Names are case-insensitive.
func ParseRoundingMode(s string) (RoundingMode, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseUint(s, 10, 8); err == nil {
		if m := RoundingMode(n); m.Valid() {
			return m, nil
		}
		return 0, fmt.Errorf("unknown rounding mode %q", s)
	}
	for i := range modeNames {
		if strings.EqualFold(s, modeNames[i]) || strings.EqualFold(s, modeAbbrs[i]) {
			return RoundingMode(i), nil
		}
	}
	return 0, fmt.Errorf("unknown rounding mode %q", s)
}

// roundUp decides whether a truncated magnitude must be incremented by one unit in the last place.
// lsb is the lowest retained bit, neg is the sign of the exact result.
func roundUp(mode RoundingMode, neg, lsb bool, grs GRS) bool {
	switch mode {
	case ToNearestEven:
		return grs.Guard && (grs.Round || grs.Sticky || lsb)
	case ToZero:
		return false
	case ToPositiveInf:
		return !neg && grs.Inexact()
	case ToNegativeInf:
		return neg && grs.Inexact()
	default:
		panic(fmt.Sprintf("floatmath: invalid rounding mode %d", mode))
	}
}

// overflow returns the result for a magnitude beyond MaxFinite.
func overflow(neg bool, mode RoundingMode) Float {
	switch {
	case mode == ToZero, mode == ToPositiveInf && neg, mode == ToNegativeInf && !neg:
		return MaxFinite.withSign(neg)
	default:
		return signedInf(neg)
	}
}

// roundPack rounds (-1)^neg * (mant + e) * 2^exp to binary256 and encodes it,
// where 0 <= e < 1 and e > 0 iff sticky is true.
// When sticky is true, mant must reach at least one bit below the last retained position,
// which holds for any mant of more than precision bits.
func roundPack(neg bool, mant *uint256.Int, exp int, sticky bool, mode RoundingMode) (Float, GRS) {
	n := uintmath.BitLength(mant)
	if n == 0 {
		if sticky {
			panic("floatmath: sticky bits without a significand")
		}
		return signedZero(neg), GRS{}
	}
	lsbExp := exp + n - 1 - fracBits
	if lsbExp < minLSBExp {
		lsbExp = minLSBExp
	}
	var (
		m   *uint256.Int
		grs GRS
	)
	if shift := lsbExp - exp; shift > 0 {
		m, grs = uintmath.ShiftRightGRS(mant, uint(shift))
		grs.Sticky = grs.Sticky || sticky
	} else {
		if sticky {
			panic("floatmath: inexact significand has no guard bit")
		}
		m = uintmath.ShiftLeft(mant, uint(-shift))
	}
	if roundUp(mode, neg, m.Uint64()&1 == 1, grs) {
		m.AddUint64(m, 1)
		if uintmath.BitLength(m) > precision {
			m.Rsh(m, 1)
			lsbExp++
		}
	}
	if m.IsZero() {
		return signedZero(neg), grs
	}
	field := 0
	if uintmath.BitLength(m) == precision {
		field = lsbExp + fracBits + bias
	}
	if field >= expMask {
		return overflow(neg, mode), grs
	}
	return pack(neg, field, m.And(m, uintmath.Mask(fracBits))), grs
}

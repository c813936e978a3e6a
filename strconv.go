// Copyright 2020 Aleksandr Demakin. All rights reserved.

package floatmath

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
)

const (
	// encodingLen is the length of "0x" followed by the 64 hex digits of an encoding.
	encodingLen = 2 + 2*len(Float{})
	// maxHexDigits is how many significant hex digits of a hex float are kept exactly.
	maxHexDigits = 62
	// hexExpLimit clamps parsed binary exponents; anything beyond overflows or underflows anyway.
	hexExpLimit = 1 << 24
)

type posError struct {
	pos int
	err string
}

func newPosError(err string, pos int) *posError {
	return &posError{err: err, pos: pos}
}

func (pe posError) Error() string {
	return pe.err + fmt.Sprintf(" at pos %d", pe.pos)
}

// Hex returns the encoding as "0x" followed by 64 hex digits.
func (f Float) Hex() string {
	return "0x" + hex.EncodeToString(f[:])
}

// String returns f as a hexadecimal floating-point literal, like "0x1.8p+1" for 3,
// "-0x0p+0" for -0, or "0x0.8p-262142" for a subnormal. Infinities are "+Inf" and "-Inf".
func (f Float) String() string {
	d := decode(f)
	var b strings.Builder
	if d.neg && d.class != ClassNaN {
		b.WriteByte('-')
	}
	switch d.class {
	case ClassNaN:
		return "NaN"
	case ClassInf:
		if !d.neg {
			return "+Inf"
		}
		b.WriteString("Inf")
		return b.String()
	case ClassZero:
		b.WriteString("0x0p+0")
		return b.String()
	case ClassSubnormal:
		b.WriteString("0x0")
	default:
		b.WriteString("0x1")
	}
	// the fraction is exactly the last 59 hex digits of the encoding.
	if frac := strings.TrimRight(f.Hex()[encodingLen-fracBits/4:], "0"); frac != "" {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	exp := minExp
	if d.class == ClassNormal {
		exp = d.exp + fracBits
	}
	b.WriteByte('p')
	if exp >= 0 {
		b.WriteByte('+')
	}
	b.WriteString(strconv.Itoa(exp))
	return b.String()
}

// GoString returns debug string representation.
func (f Float) GoString() string {
	return f.Hex() + " {" + f.String() + "}"
}

// Parse parses a string into a value, rounding according to mode if needed. Accepted forms are:
//   - "0x" followed by exactly 64 hex digits: the raw encoding;
//   - hex floats like "0x1.abcp-10", "-0X1F", "0x.8p1";
//   - "Inf", "+Inf", "-Inf", "Infinity", "NaN" (case-insensitive);
//   - decimal numbers like "12", "-0.5", "1.25e-3".
func Parse(s string, mode RoundingMode) (Float, error) {
	if !mode.Valid() {
		return Zero, fmt.Errorf("unknown rounding mode %d", mode)
	}
	s = strings.TrimFunc(s, unicode.IsSpace)
	if len(s) == 0 {
		return Zero, fmt.Errorf("empty input")
	}
	if len(s) == encodingLen && isHexPrefix(s) {
		if raw, err := hex.DecodeString(s[2:]); err == nil {
			var f Float
			copy(f[:], raw)
			return f, nil
		}
	}
	body, neg, offset := s, false, 0
	switch s[0] {
	case '-':
		neg = true
		fallthrough
	case '+':
		body, offset = s[1:], 1
	}
	switch strings.ToLower(body) {
	case "inf", "infinity":
		return signedInf(neg), nil
	case "nan":
		return NaN, nil
	}
	if isHexPrefix(body) {
		f, err := parseHexFloat(neg, body[2:], mode)
		if err != nil {
			if pe, ok := err.(*posError); ok {
				pe.pos += offset + 2 + 1 // +1 to start indices from 1.
			}
			return Zero, fmt.Errorf("parsing failed: %w", err)
		}
		return f, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Zero, fmt.Errorf("parsing failed: %w", err)
	}
	f := FromDecimal(d, mode)
	if f.IsZero() {
		// decimal.Decimal has no negative zero.
		f = signedZero(neg)
	}
	return f, nil
}

// MustParse is like Parse, but panics on error.
func MustParse(s string, mode RoundingMode) Float {
	f, err := Parse(s, mode)
	if err != nil {
		panic(err)
	}
	return f
}

func isHexPrefix(s string) bool {
	return len(s) > 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}

// parseHexFloat parses the part after "0x" of a hex float.
func parseHexFloat(neg bool, s string, mode RoundingMode) (Float, error) {
	mantPart, exp := s, 0
	if i := strings.IndexAny(s, "pP"); i >= 0 {
		e, err := strconv.Atoi(s[i+1:])
		if err != nil {
			if errors.Is(err, strconv.ErrRange) {
				e = hexExpLimit
				if strings.HasPrefix(s[i+1:], "-") {
					e = -hexExpLimit
				}
			} else {
				return Zero, newPosError("bad exponent", i+1)
			}
		}
		mantPart, exp = s[:i], clamp(e, -hexExpLimit, hexExpLimit)
	}
	var (
		m                    uint256.Int
		digits               int
		sticky               bool
		seenPoint, seenDigit bool
	)
	for i, r := range mantPart {
		if r == '.' {
			if seenPoint {
				return Zero, newPosError("unexpected delimiter", i)
			}
			seenPoint = true
			continue
		}
		v, ok := hexDigit(r)
		if !ok {
			return Zero, newPosError(fmt.Sprintf("unexpected symbol %q", r), i)
		}
		seenDigit = true
		switch {
		case digits == 0 && v == 0: // omit leading zeros
			if seenPoint {
				exp -= 4
			}
		case digits < maxHexDigits:
			m.Lsh(&m, 4)
			m.Or(&m, uint256.NewInt(uint64(v)))
			digits++
			if seenPoint {
				exp -= 4
			}
		default:
			sticky = sticky || v != 0
			if !seenPoint {
				exp += 4
			}
		}
	}
	if !seenDigit {
		return Zero, newPosError("no digits", 0)
	}
	if m.IsZero() {
		return signedZero(neg), nil
	}
	f, _ := roundPack(neg, &m, exp, sticky, mode)
	return f, nil
}

func hexDigit(r rune) (uint, bool) {
	switch {
	case '0' <= r && r <= '9':
		return uint(r - '0'), true
	case 'a' <= r && r <= 'f':
		return uint(r-'a') + 10, true
	case 'A' <= r && r <= 'F':
		return uint(r-'A') + 10, true
	default:
		return 0, false
	}
}

func clamp(v, lo, hi int) int {
	switch {
	case v < lo:
		return lo
	case v > hi:
		return hi
	default:
		return v
	}
}

// Copyright 2020 Aleksandr Demakin. All rights reserved.

package floatmath

func (f Float) withSign(neg bool) Float {
	if neg {
		f[0] |= 0x80
	} else {
		f[0] &^= 0x80
	}
	return f
}

// Neg returns -f. The sign of NaN is not changed.
func (f Float) Neg() Float {
	if f.IsNaN() {
		return NaN
	}
	return f.withSign(!f.signbit())
}

// Abs returns |f|.
func (f Float) Abs() Float {
	if f.IsNaN() {
		return NaN
	}
	return f.withSign(false)
}

// Cmp compares two values.
// Returns -1 if a < b, 0 if a == b, 1 if a > b.
// ordered is false, if either value is NaN; the result is 0 then.
// +0 and -0 are equal.
func (f Float) Cmp(other Float) (res int, ordered bool) {
	c1, c2 := f.Class(), other.Class()
	if c1 == ClassNaN || c2 == ClassNaN {
		return 0, false
	}
	if c1 == ClassZero && c2 == ClassZero {
		return 0, true
	}
	s1, s2 := f.signbit(), other.signbit()
	if s1 != s2 {
		if s1 {
			return -1, true
		}
		return 1, true
	}
	// for the same sign the encoding is monotonic in magnitude.
	res = f.withSign(false).word().Cmp(other.withSign(false).word())
	if s1 {
		res = -res
	}
	return res, true
}

// Eq returns true, if both values represent the same number. NaN is not equal to anything.
func (f Float) Eq(other Float) bool {
	res, ordered := f.Cmp(other)
	return ordered && res == 0
}

// Less returns f < other.
func (f Float) Less(other Float) bool {
	res, ordered := f.Cmp(other)
	return ordered && res < 0
}

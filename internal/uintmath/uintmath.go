// Package uintmath contains bit-level helpers for unsigned 256-bit words.
package uintmath

import (
	"github.com/holiman/uint256"
)

// Width is the number of bits in a word.
const Width = 256

// halvings are the probe widths used by BitLength, from the widest down.
var halvings = [...]uint{128, 64, 32, 16, 8, 4, 2, 1}

// GRS holds the guard, round and sticky bits of a truncation.
type GRS struct {
	Guard  bool
	Round  bool
	Sticky bool
}

// Inexact returns true, if any discarded bit was set.
func (g GRS) Inexact() bool {
	return g.Guard || g.Round || g.Sticky
}

// String returns a compact form like "g=1 r=0 s=1".
func (g GRS) String() string {
	b := []byte("g=0 r=0 s=0")
	if g.Guard {
		b[2] = '1'
	}
	if g.Round {
		b[6] = '1'
	}
	if g.Sticky {
		b[10] = '1'
	}
	return string(b)
}

// BitLength returns the number of bits needed to represent x,
// that is 0 for x == 0, and 1+floor(log2(x)) otherwise.
func BitLength(x *uint256.Int) int {
	if x.IsZero() {
		return 0
	}
	v, hi := *x, new(uint256.Int)
	n := 1
	for _, w := range halvings {
		if hi.Rsh(&v, w).IsZero() {
			continue
		}
		v = *hi
		n += int(w)
	}
	return n
}

// Bit returns the value of the i-th bit of x. Bits past the word are zero.
func Bit(x *uint256.Int, i uint) uint {
	if i >= Width {
		return 0
	}
	return uint(new(uint256.Int).Rsh(x, i).Uint64() & 1)
}

// LowBitsNonZero returns true, if any of the n least significant bits of x is set.
func LowBitsNonZero(x *uint256.Int, n uint) bool {
	switch {
	case n == 0:
		return false
	case n >= Width:
		return !x.IsZero()
	default:
		return !new(uint256.Int).Lsh(x, Width-n).IsZero()
	}
}

// ShiftRightGRS returns x >> n, together with the guard, round and sticky bits
// of the discarded part. Shifts by Width or more are allowed.
func ShiftRightGRS(x *uint256.Int, n uint) (*uint256.Int, GRS) {
	var grs GRS
	if n == 0 {
		return new(uint256.Int).Set(x), grs
	}
	grs.Guard = Bit(x, n-1) == 1
	if n >= 2 {
		grs.Round = Bit(x, n-2) == 1
		grs.Sticky = LowBitsNonZero(x, n-2)
	}
	if n >= Width {
		return new(uint256.Int), grs
	}
	return new(uint256.Int).Rsh(x, n), grs
}

// ShiftLeft returns x << n. It panics, if any set bit would be lost.
func ShiftLeft(x *uint256.Int, n uint) *uint256.Int {
	if n == 0 {
		return new(uint256.Int).Set(x)
	}
	if BitLength(x)+int(n) > Width {
		panic("uintmath: left shift overflows the word")
	}
	return new(uint256.Int).Lsh(x, n)
}

// Pow2 returns 2^n for n < Width.
func Pow2(n uint) *uint256.Int {
	if n >= Width {
		panic("uintmath: power of two out of range")
	}
	return new(uint256.Int).Lsh(uint256.NewInt(1), n)
}

// Mask returns a word with the n least significant bits set.
func Mask(n uint) *uint256.Int {
	if n >= Width {
		return new(uint256.Int).Not(new(uint256.Int))
	}
	return new(uint256.Int).Sub(Pow2(n), uint256.NewInt(1))
}

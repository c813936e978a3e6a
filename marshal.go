// Copyright 2020 Aleksandr Demakin. All rights reserved.

package floatmath

import (
	"fmt"
	"strconv"
)

// MarshalText returns the 64-digit hex encoding.
func (f Float) MarshalText() ([]byte, error) {
	return []byte(f.Hex()), nil
}

// UnmarshalText parses any form accepted by Parse, rounding to nearest even.
func (f *Float) UnmarshalText(data []byte) error {
	v, err := Parse(string(data), ToNearestEven)
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// MarshalJSON marshals the value as a quoted 64-digit hex encoding, like `"0x3ffff0...0"`.
func (f Float) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(f.Hex())), nil
}

// UnmarshalJSON unmarshals a string or a number into a value.
// Strings accept any form Parse does, numbers are read as decimals. null leaves f unchanged.
func (f *Float) UnmarshalJSON(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("empty json")
	}
	s := string(data)
	if s == "null" {
		return nil
	}
	if data[0] == '"' {
		var err error
		if s, err = strconv.Unquote(s); err != nil {
			return err
		}
	}
	return f.UnmarshalText([]byte(s))
}

// MarshalBinary returns the 32 bytes of the encoding.
func (f Float) MarshalBinary() ([]byte, error) {
	return append([]byte(nil), f[:]...), nil
}

// UnmarshalBinary reads exactly 32 bytes of an encoding.
func (f *Float) UnmarshalBinary(data []byte) error {
	if len(data) != len(f) {
		return fmt.Errorf("bad encoding length %d, want %d", len(data), len(f))
	}
	copy(f[:], data)
	return nil
}

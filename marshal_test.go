// Copyright 2020 Aleksandr Demakin. All rights reserved.

package floatmath

import (
	"encoding"
	"encoding/json"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ encoding.TextMarshaler     = Float{}
	_ encoding.TextUnmarshaler   = (*Float)(nil)
	_ encoding.BinaryMarshaler   = Float{}
	_ encoding.BinaryUnmarshaler = (*Float)(nil)
	_ json.Marshaler             = Float{}
	_ json.Unmarshaler           = (*Float)(nil)
)

func TestMarshalJSON(t *testing.T) {
	a := assert.New(t)
	type holder struct {
		V Float  `json:"v"`
		P *Float `json:"p,omitempty"`
	}
	ten := FromInt64(10, ToNearestEven)
	data, err := json.Marshal(holder{V: One, P: &ten})
	require.NoError(t, err)
	a.Equal(`{"v":"`+enc("3ffff")+`","p":"`+enc("400024")+`"}`, string(data))

	var h holder
	require.NoError(t, json.Unmarshal(data, &h))
	a.Equal(One, h.V)
	if a.NotNil(h.P) {
		a.Equal(ten, *h.P)
	}
}

func TestUnmarshalJSON(t *testing.T) {
	tests := []struct {
		json     string
		expected Float
		err      bool
	}{
		{`"0x1.8p+0"`, fromHex("0x1.8p+0"), false},
		{`"` + NegInf.Hex() + `"`, NegInf, false},
		{`"-inf"`, NegInf, false},
		{`"nan"`, NaN, false},
		{`1.5`, fromHex("0x1.8p+0"), false},
		{`-2e2`, FromInt64(-200, ToNearestEven), false},
		{`"-0"`, NegZero, false},
		{`null`, One, false},
		{`""`, Zero, true},
		{`"0x1q"`, Zero, true},
		{`true`, Zero, true},
		{`"abc`, Zero, true},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			a := assert.New(t)
			v := One
			err := json.Unmarshal([]byte(test.json), &v)
			if test.err {
				a.Error(err)
				return
			}
			if a.NoError(err) {
				a.Equal(test.expected, v)
			}
		})
	}
	var v Float
	assert.EqualError(t, v.UnmarshalJSON(nil), "empty json")
}

func TestMarshalRoundTrip(t *testing.T) {
	a := assert.New(t)
	r := rand.New(rand.NewSource(5))
	for i := 0; i < 200; i++ {
		f := randomFloat(r)

		text, err := f.MarshalText()
		a.NoError(err)
		var ft Float
		if a.NoError(ft.UnmarshalText(text)) {
			a.Equal(f, ft)
		}

		js, err := json.Marshal(f)
		a.NoError(err)
		var fj Float
		if a.NoError(json.Unmarshal(js, &fj)) {
			a.Equal(f, fj)
		}

		bin, err := f.MarshalBinary()
		a.NoError(err)
		a.Len(bin, 32)
		var fb Float
		if a.NoError(fb.UnmarshalBinary(bin)) {
			a.Equal(f, fb)
		}
	}
}

func TestUnmarshalBinary(t *testing.T) {
	a := assert.New(t)
	var f Float
	a.EqualError(f.UnmarshalBinary(make([]byte, 31)), "bad encoding length 31, want 32")
	a.EqualError(f.UnmarshalBinary(nil), "bad encoding length 0, want 32")
	data, _ := One.MarshalBinary()
	data[0] = 0xff
	a.Equal(byte(0x3f), One[0], "marshaled bytes must not alias the value")
}

// Copyright 2020 Aleksandr Demakin. All rights reserved.

package floatmath

import (
	"fmt"

	"github.com/shopspring/decimal"
)

func ExampleFloat() {
	a, err := Parse("1.5", ToNearestEven)
	if err != nil {
		panic(err)
	}
	b := FromDecimal(decimal.RequireFromString("2.25"), ToNearestEven)
	sum := a.Add(b, ToNearestEven)
	d, err := sum.Decimal()
	if err != nil {
		panic(err)
	}
	fmt.Printf("%v + %v = %v (%s)\n", a, b, sum, d)
	fmt.Println(sum.Hex())

	ten := FromInt64(10, ToNearestEven)
	fmt.Println(ten.Less(sum), sum.Less(ten), ten.Neg().Abs().Eq(ten))
	// Output:
	// 0x1.8p+0 + 0x1.2p+1 = 0x1.ep+1 (3.75)
	// 0x40000e0000000000000000000000000000000000000000000000000000000000
	// false true true
}

func ExampleApply() {
	one, three := FromInt64(1, ToNearestEven), FromInt64(3, ToNearestEven)
	for _, mode := range []RoundingMode{ToNearestEven, ToPositiveInf} {
		res, grs := Apply(OpDiv, one, three, mode)
		fmt.Printf("%s: %v, %v\n", mode, res, grs)
	}
	res, grs := Apply(OpMul, three, three, ToZero)
	fmt.Printf("%v, inexact: %v\n", res, grs.Inexact())
	// Output:
	// roundTiesToEven: 0x1.55555555555555555555555555555555555555555555555555555555555p-2, g=0 r=1 s=1
	// roundTowardPositive: 0x1.55555555555555555555555555555555555555555555555555555555556p-2, g=0 r=1 s=1
	// 0x1.2p+3, inexact: false
}

func ExampleFloat_Div() {
	fmt.Println(One.Div(Zero, ToNearestEven))
	fmt.Println(One.Neg().Div(Zero, ToNearestEven))
	fmt.Println(Zero.Div(Zero, ToNearestEven))
	fmt.Println(MaxFinite.Div(SmallestNormal, ToZero) == MaxFinite)
	// Output:
	// +Inf
	// -Inf
	// NaN
	// true
}

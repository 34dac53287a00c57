// File: example_test.go
// Title: Example Tests for mathx
// Description: Executable examples for the package documentation.
// Author: msto63
// Version: v0.3.0
// Created: 2025-01-24
// Modified: 2025-11-02

package mathx_test

import (
	"fmt"

	"github.com/msto63/relativity/foundation/utils/mathx"
)

func ExampleNewContext() {
	ctx, err := mathx.NewContext(5)
	if err != nil {
		fmt.Println(err)
		return
	}
	third, _ := ctx.One().Divide(ctx.FromInt(3))
	fmt.Println(third.Text('f'))
	// Output:
	// 0.33333
}

func ExampleDecimal_Add() {
	ctx := mathx.MustNewContext(20)
	sum := ctx.MustNew("0.1").Add(ctx.MustNew("0.2"))
	fmt.Println(sum.Text('f'))
	// Output:
	// 0.3
}

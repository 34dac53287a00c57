// File: doc.go
// Title: Package Documentation for mathx
// Description: Package mathx provides arbitrary-precision decimal arithmetic
//              with transcendental and hyperbolic functions.
// Author: msto63
// Version: v0.3.0
// Created: 2025-01-24
// Modified: 2025-11-02
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with decimal arithmetic and business functions
// - 2025-01-26 v0.2.0: Enhanced documentation
// - 2025-11-02 v0.3.0: Rebuilt on apd with explicit precision contexts and
//                       hyperbolic functions; business and currency helpers removed

// Package mathx provides arbitrary-precision decimal arithmetic.
//
// Every Decimal belongs to a Context which fixes the number of significant
// digits results are rounded to. There is no package-level precision: a
// caller that wants 50 digits creates a Context for 50 digits and derives
// all of its values from it.
//
//	ctx, err := mathx.NewContext(50)
//	if err != nil {
//		return err
//	}
//	beta := ctx.MustNew("0.999")
//	gamma, err := ctx.One().Subtract(beta.Multiply(beta)).Sqrt()
//
// Add, Subtract and Multiply never fail. Overflow produces an infinite
// value, which IsFinite reports. Operations with a restricted domain
// (Divide, Sqrt, Ln, Acosh, Atanh, ...) return an error carrying
// CodeDomainError from foundation/core/error.
//
// Hyperbolic functions are evaluated with guard digits so that results near
// zero (sinh of a tiny argument, acosh just above one) keep full relative
// precision instead of suffering cancellation.
//
// The arithmetic engine is github.com/cockroachdb/apd/v3.
package mathx

// Package relativity implements special-relativistic kinematics at an
// explicit, caller-chosen decimal precision.
//
// An Engine owns the working precision and an immutable snapshot of the
// physical constants derived at that precision. Every calculation reads the
// snapshot once, so a concurrent Configure never mixes precisions inside a
// single result. Engines are independent; several precisions may coexist in
// one process.
//
// Inputs are accepted as any of the numeric representations Ensure knows
// about (float64, integer types, numeric strings, mathx.Decimal, *big.Int,
// json.Number). Velocities pass through CheckVelocity, which rejects
// |v| >= c with ErrVelocityExceedsC. A result that only became invalid
// through finite precision, such as an extreme rapidity rounding to c,
// reports ErrPrecisionFailure instead.
//
// The package never logs.
package relativity

package relativity

import (
	rerr "github.com/msto63/relativity/foundation/core/error"
)

// Sentinels for errors.Is. Every error returned by this package carries one
// of these codes.
var (
	ErrInvalidInputType = rerr.Sentinel(rerr.CodeInvalidInputType)
	ErrVelocityExceedsC = rerr.Sentinel(rerr.CodeVelocityExceedsC)
	ErrPrecisionFailure = rerr.Sentinel(rerr.CodePrecisionFailure)
	ErrDomain           = rerr.Sentinel(rerr.CodeDomainError)
	ErrValueOutOfRange  = rerr.Sentinel(rerr.CodeValueOutOfRange)
)

const defaultVelocityMessage = "velocity must be less than the speed of light"

func outOfRange(field, reason string, value interface{}) *rerr.Error {
	return rerr.Newf("%s %s", field, reason).
		WithCode(rerr.CodeValueOutOfRange).
		WithDetail("field", field).
		WithDetail("value", value)
}

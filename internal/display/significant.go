// Package display turns decimals into strings for people. Values render in
// full positional notation at whatever precision they carry; nothing is
// narrowed through a float on the way.
package display

import (
	"math/big"
	"strings"

	"github.com/dustin/go-humanize"

	rerr "github.com/msto63/relativity/foundation/core/error"
	"github.com/msto63/relativity/foundation/utils/mathx"
)

// RoundingIndicator is appended when rounding discarded a nonzero digit
const RoundingIndicator = " (r)"

// MaxPlaces bounds Request.Places. Values never carry more digits than
// the largest working precision.
const MaxPlaces = mathx.MaxDigits

// ErrInvalidIgnoreChar is matched by errors.Is for a bad ignore character
var ErrInvalidIgnoreChar = rerr.Sentinel(rerr.CodeInvalidIgnoreChar)

// Request bundles the controls of FormatSignificant
type Request struct {
	Value mathx.Decimal
	// IgnoreChar is empty or a single digit whose leading run in the
	// fraction is copied verbatim without counting against Places
	IgnoreChar string
	// Places is the number of counted decimal places; negative keeps all
	Places                int
	PreserveTrailingZeros bool
	ShowRoundingIndicator bool
}

// DefaultRequest returns the default controls for value: two places, no
// ignore character, trailing zeros stripped, indicator shown
func DefaultRequest(value mathx.Decimal) Request {
	return Request{
		Value:                 value,
		Places:                2,
		ShowRoundingIndicator: true,
	}
}

// FormatSignificant formats value per Format
func FormatSignificant(value mathx.Decimal, ignoreChar string, places int, preserveTrailingZeros, showRoundingIndicator bool) (string, error) {
	return Format(Request{
		Value:                 value,
		IgnoreChar:            ignoreChar,
		Places:                places,
		PreserveTrailingZeros: preserveTrailingZeros,
		ShowRoundingIndicator: showRoundingIndicator,
	})
}

// Format renders r.Value with thousands separators and at most r.Places
// counted decimal places, rounding half away from zero at the cut. A
// leading run of r.IgnoreChar in the fraction is kept whole and counting
// starts at the first digit that differs. Zero, including negative zero,
// renders as "0".
func Format(r Request) (string, error) {
	ignore, err := parseIgnoreChar(r.IgnoreChar)
	if err != nil {
		return "", err
	}
	if err := ValidatePlaces(r.Places); err != nil {
		return "", err
	}
	intPart, frac, neg, err := decompose(r.Value)
	if err != nil {
		return "", err
	}

	run := 0
	if ignore != 0 {
		for run < len(frac) && frac[run] == ignore {
			run++
		}
	}
	cut := len(frac)
	if r.Places >= 0 && r.Places < cut-run {
		cut = run + r.Places
	}

	discarded := frac[cut:]
	digits := []byte(intPart + frac[:cut])
	if len(discarded) > 0 && discarded[0] >= '5' {
		digits = increment(digits)
	}
	intLen := len(digits) - cut
	intPart, frac = string(digits[:intLen]), string(digits[intLen:])

	if r.PreserveTrailingZeros {
		if r.Places >= 0 && len(frac) < run+r.Places {
			frac += strings.Repeat("0", run+r.Places-len(frac))
		}
	} else {
		frac = strings.TrimRight(frac, "0")
	}

	var b strings.Builder
	if neg && !allZero(intPart+frac) {
		b.WriteByte('-')
	}
	b.WriteString(group(intPart))
	if frac != "" {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	if r.ShowRoundingIndicator && strings.Trim(discarded, "0") != "" {
		b.WriteString(RoundingIndicator)
	}
	return b.String(), nil
}

// ValidateIgnoreChar reports whether s is usable as Request.IgnoreChar
func ValidateIgnoreChar(s string) error {
	_, err := parseIgnoreChar(s)
	return err
}

// ValidatePlaces reports whether places is usable as Request.Places
func ValidatePlaces(places int) error {
	if places > MaxPlaces {
		return rerr.Newf("places must not exceed %d", MaxPlaces).
			WithCode(rerr.CodeValueOutOfRange).
			WithDetail("places", places)
	}
	return nil
}

func parseIgnoreChar(s string) (byte, error) {
	switch {
	case s == "":
		return 0, nil
	case len(s) == 1 && s[0] >= '0' && s[0] <= '9':
		return s[0], nil
	default:
		return 0, rerr.Newf("ignore character must be a single digit, got %q", s).
			WithCode(rerr.CodeInvalidIgnoreChar).
			WithDetail("ignore_char", s)
	}
}

// decompose splits |d| into integer and fraction digit strings
func decompose(d mathx.Decimal) (intPart, frac string, neg bool, err error) {
	if !d.IsFinite() {
		return "", "", false, rerr.Newf("cannot format non-finite value %s", d).
			WithCode(rerr.CodeInvalidInputType)
	}
	text := d.Abs().Text('f')
	intPart, frac, _ = strings.Cut(text, ".")
	return intPart, frac, d.Sign() < 0, nil
}

// increment adds one unit in the last place of a digit string
func increment(digits []byte) []byte {
	for i := len(digits) - 1; i >= 0; i-- {
		if digits[i] < '9' {
			digits[i]++
			return digits
		}
		digits[i] = '0'
	}
	return append([]byte{'1'}, digits...)
}

func allZero(s string) bool {
	return strings.Trim(s, "0") == ""
}

// group inserts thousands separators into an unsigned integer digit string
func group(intPart string) string {
	n, ok := new(big.Int).SetString(intPart, 10)
	if !ok {
		return intPart
	}
	return humanize.BigComma(n)
}

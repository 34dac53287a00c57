package display

import (
	"strings"

	"github.com/msto63/relativity/foundation/utils/mathx"
)

// FormatFixed renders value with thousands separators and exactly places
// decimal places, truncating extra digits and padding short fractions with
// zeros. Zero places drops the fraction; a negative count keeps every
// significant decimal digit.
func FormatFixed(value mathx.Decimal, places int) (string, error) {
	if err := ValidatePlaces(places); err != nil {
		return "", err
	}
	intPart, frac, neg, err := decompose(value)
	if err != nil {
		return "", err
	}

	switch {
	case places < 0:
		frac = strings.TrimRight(frac, "0")
	case len(frac) > places:
		frac = frac[:places]
	default:
		frac += strings.Repeat("0", places-len(frac))
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
	return b.String(), nil
}

package display

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/msto63/relativity/foundation/utils/mathx"
)

// MassUnit is one rung of the mass ladder
type MassUnit struct {
	Name string
	Kg   string // reference mass in kilograms
}

// MassLadder lists the named mass scales in ascending order
var MassLadder = []MassUnit{
	{"kg", "1"},
	{"tonnes", "1e3"},
	{"Everest masses", "1.62e14"},
	{"Moon masses", "7.342e22"},
	{"Earth masses", "5.9722e24"},
	{"Solar masses", "1.98847e30"},
	{"Milky Way masses", "2.3e42"},
	{"Laniakea masses", "2e47"},
	{"observable universe masses", "1.5e53"},
}

// scientificDigits is the mantissa length of the kilogram cross-check
const scientificDigits = 4

// FormatMassWithUnit expresses mass in the largest ladder unit it reaches a
// tenth of, followed by the raw kilograms in scientific notation, e.g.
// "1.5 Earth masses (8.958e+24 kg)". A rounded unit value carries the
// rounding indicator. Masses below a tenth of a kilogram stay in kilograms.
func FormatMassWithUnit(mass mathx.Decimal) string {
	if !mass.IsFinite() {
		return mass.String() + " kg"
	}
	ctx := mass.Context()
	tenth := ctx.MustNew("0.1")

	unit := MassLadder[0]
	scaled := mass
	for i := len(MassLadder) - 1; i >= 0; i-- {
		ref := ctx.MustNew(MassLadder[i].Kg)
		if mass.Abs().GreaterThanOrEqual(ref.Multiply(tenth)) {
			unit = MassLadder[i]
			scaled, _ = mass.Divide(ref)
			break
		}
	}

	value, err := FormatSignificant(scaled, "", 2, false, true)
	if err != nil {
		value = scaled.String()
	}
	return value + " " + unit.Name + " (" + Scientific(mass) + " kg)"
}

// Scientific renders d rounded to four significant digits as
// "d.ddde±N"
func Scientific(d mathx.Decimal) string {
	r := d.In(mathx.MustNewContext(scientificDigits))
	mant, exp, _ := strings.Cut(r.Text('e'), "e")

	sign := ""
	if strings.HasPrefix(mant, "-") {
		sign, mant = "-", mant[1:]
	}
	whole, frac, _ := strings.Cut(mant, ".")
	if pad := scientificDigits - 1 - len(frac); pad > 0 {
		frac += strings.Repeat("0", pad)
	}
	n, _ := strconv.Atoi(exp)
	return sign + whole + "." + frac + fmt.Sprintf("e%+d", n)
}

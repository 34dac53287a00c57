package display

import (
	"errors"
	"math"
	"strings"
	"testing"

	rerr "github.com/msto63/relativity/foundation/core/error"
	"github.com/msto63/relativity/foundation/utils/mathx"
)

var ctx = mathx.MustNewContext(50)

func TestFormatSignificant(t *testing.T) {
	thirtyNines := "0." + strings.Repeat("9", 30)

	tests := []struct {
		name     string
		value    string
		ignore   string
		places   int
		preserve bool
		marker   bool
		want     string
	}{
		{"rounds with indicator", "123.456789", "", 2, false, true, "123.46 (r)"},
		{"exact needs no indicator", "123.12", "", 2, false, true, "123.12"},
		{"ignore run kept whole", thirtyNines, "9", 5, false, true, thirtyNines},
		{"zero padded", "0", "", 2, true, true, "0.00"},
		{"zero stripped", "0.000", "", 2, false, true, "0"},
		{"negative zero", "-0", "", 2, false, true, "0"},
		{"negative rounds to zero", "-0.001", "", 2, false, true, "0 (r)"},
		{"negative value", "-123.456", "", 2, false, true, "-123.46 (r)"},
		{"thousands", "1234567.891", "", 2, false, true, "1,234,567.89 (r)"},
		{"indicator off", "123.456789", "", 2, false, false, "123.46"},
		{"leading zeros ignored", "0.00001234", "0", 2, false, true, "0.000012 (r)"},
		{"carry into integer", "9.999", "", 2, false, true, "10 (r)"},
		{"carry kept padded", "9.999", "", 2, true, true, "10.00 (r)"},
		{"pad short fraction", "1.5", "", 4, true, true, "1.5000"},
		{"no pad without preserve", "1.5", "", 4, false, true, "1.5"},
		{"all places", "3.14159265", "", -1, false, true, "3.14159265"},
		{"no places half up", "2.5", "", 0, false, true, "3 (r)"},
		{"no places half away from zero", "-2.5", "", 0, false, true, "-3 (r)"},
		{"discarded zeros are exact", "7.25000", "", 2, false, true, "7.25"},
		{"ignore run then carry", "0.99999996", "9", 0, false, true, "1 (r)"},
		{"ignore run then count", "0.99999912345", "9", 2, false, true, "0.99999912 (r)"},
		{"ignore char absent", "0.123", "9", 2, false, true, "0.12 (r)"},
		{"just below c", "299792457.999", "", 2, false, true, "299,792,458 (r)"},
		{"exactly c", "299792458", "", 2, false, true, "299,792,458"},
		{"huge in full", "1e40", "", 2, false, true, "10,000,000,000,000,000,000,000,000,000,000,000,000,000"},
		{"tiny in full", "1.5e-12", "0", 1, false, true, "0.000000000002 (r)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatSignificant(ctx.MustNew(tt.value), tt.ignore, tt.places, tt.preserve, tt.marker)
			if err != nil {
				t.Fatalf("FormatSignificant() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("FormatSignificant(%s) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestFormatSignificant_InvalidIgnoreChar(t *testing.T) {
	for _, ignore := range []string{"99", "x", " ", "٩"} {
		t.Run(ignore, func(t *testing.T) {
			_, err := FormatSignificant(ctx.MustNew("1.5"), ignore, 2, false, true)
			if !errors.Is(err, ErrInvalidIgnoreChar) {
				t.Errorf("error = %v, want INVALID_IGNORE_CHAR", err)
			}
		})
	}
}

func TestFormatSignificant_PlacesBounds(t *testing.T) {
	t.Run("huge places is rejected", func(t *testing.T) {
		_, err := FormatSignificant(ctx.MustNew("0.95"), "9", math.MaxInt, false, true)
		if !rerr.HasCode(err, rerr.CodeValueOutOfRange) {
			t.Errorf("error = %v, want VALUE_OUT_OF_RANGE", err)
		}
	})

	t.Run("places at the cap pads without overflow", func(t *testing.T) {
		got, err := FormatSignificant(ctx.MustNew("0.95"), "9", MaxPlaces, true, false)
		if err != nil {
			t.Fatal(err)
		}
		if want := "0.95" + strings.Repeat("0", MaxPlaces-1); got != want {
			t.Errorf("len(got) = %d, want %d", len(got), len(want))
		}
	})

	t.Run("places beyond the digits keeps the value", func(t *testing.T) {
		got, err := FormatSignificant(ctx.MustNew("0.95"), "9", MaxPlaces, false, true)
		if err != nil {
			t.Fatal(err)
		}
		if got != "0.95" {
			t.Errorf("got %q, want 0.95", got)
		}
	})
}

func TestFormat_DefaultRequest(t *testing.T) {
	req := DefaultRequest(ctx.MustNew("0.6666666"))
	if req.Places != 2 || !req.ShowRoundingIndicator || req.PreserveTrailingZeros || req.IgnoreChar != "" {
		t.Fatalf("unexpected defaults: %+v", req)
	}

	got, err := Format(req)
	if err != nil {
		t.Fatal(err)
	}
	if got != "0.67 (r)" {
		t.Errorf("Format() = %q", got)
	}
}

func TestFormat_LowPrecisionValues(t *testing.T) {
	// a value carries its own precision; formatting never widens it
	third, err := mathx.MustNewContext(5).One().Divide(mathx.MustNewContext(5).FromInt(3))
	if err != nil {
		t.Fatal(err)
	}
	got, err := FormatSignificant(third, "3", 2, false, true)
	if err != nil {
		t.Fatal(err)
	}
	if got != "0.33333" {
		t.Errorf("got %q", got)
	}
}

func TestFormatFixed(t *testing.T) {
	tests := []struct {
		value  string
		places int
		want   string
	}{
		{"1234.5678", 2, "1,234.56"},
		{"1234", 2, "1,234.00"},
		{"1234.5678", 0, "1,234"},
		{"1234.5678", -1, "1,234.5678"},
		{"1234.5000", -1, "1,234.5"},
		{"-0.001", 2, "0.00"},
		{"-5.5", 1, "-5.5"},
		{"0", 0, "0"},
		{"999.999", 1, "999.9"},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, err := FormatFixed(ctx.MustNew(tt.value), tt.places)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("FormatFixed(%s, %d) = %q, want %q", tt.value, tt.places, got, tt.want)
			}
		})
	}
}

func TestFormatMassWithUnit(t *testing.T) {
	tests := []struct {
		mass string
		want string
	}{
		{"1", "1 kg (1.000e+0 kg)"},
		{"0.01", "0.01 kg (1.000e-2 kg)"},
		{"500", "0.5 tonnes (5.000e+2 kg)"},
		{"5.9722e24", "1 Earth masses (5.972e+24 kg)"},
		{"5.96541e30", "3 Solar masses (5.965e+30 kg)"},
		{"1e21", "6,172,839.51 (r) Everest masses (1.000e+21 kg)"},
		{"1e60", "6,666,666.67 (r) observable universe masses (1.000e+60 kg)"},
		{"0", "0 kg (0.000e+0 kg)"},
	}

	for _, tt := range tests {
		t.Run(tt.mass, func(t *testing.T) {
			if got := FormatMassWithUnit(ctx.MustNew(tt.mass)); got != tt.want {
				t.Errorf("FormatMassWithUnit(%s) = %q, want %q", tt.mass, got, tt.want)
			}
		})
	}
}

func TestMassLadderAscending(t *testing.T) {
	for i := 1; i < len(MassLadder); i++ {
		lo, hi := ctx.MustNew(MassLadder[i-1].Kg), ctx.MustNew(MassLadder[i].Kg)
		if !hi.GreaterThan(lo) {
			t.Errorf("%s not above %s", MassLadder[i].Name, MassLadder[i-1].Name)
		}
	}
}

func TestScientific(t *testing.T) {
	tests := map[string]string{
		"-12346":     "-1.235e+4",
		"0.000123":   "1.230e-4",
		"99999":      "1.000e+5",
		"6.02214e23": "6.022e+23",
	}
	for in, want := range tests {
		if got := Scientific(ctx.MustNew(in)); got != want {
			t.Errorf("Scientific(%s) = %q, want %q", in, got, want)
		}
	}
}

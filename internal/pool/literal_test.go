package pool

import (
	"math"
	"testing"
)

func TestFloatLiteral(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{math.NaN(), "NAN"},
		{math.Inf(1), "INFINITY"},
		{math.Inf(-1), "-INFINITY"},
		{0, "0."},
		{1, "1."},
		{-3, "-3."},
		{1e6, "1000000."},
		{0.5, "5.0000000000000000e-01"},
		{-2.25, "-2.2500000000000000e+00"},
	}
	for _, c := range cases {
		if got := FloatLiteral(c.in); got != c.want {
			t.Fatalf("FloatLiteral(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFloatLiteralHugeIntegralStaysScientific(t *testing.T) {
	// Beyond 2^53, integer formatting is no longer exact.
	got := FloatLiteral(1e300)
	if got == "" || got[len(got)-1] == '.' {
		t.Fatalf("FloatLiteral(1e300) = %q, want scientific form", got)
	}
}

func TestIntLiteral(t *testing.T) {
	if got := IntLiteral(-17); got != "-17" {
		t.Fatalf("IntLiteral(-17) = %q", got)
	}
}

package pool

import (
	"math"
	"strconv"
)

// FloatLiteral renders a floating-point value as a portable C literal.
// NaN and infinities use the <math.h> spellings. Values with zero
// fractional part keep a trailing decimal point so the literal stays a
// floating constant. Everything else is printed in scientific notation
// with 17 significant digits, enough to reproduce the original 64-bit
// pattern when parsed back.
func FloatLiteral(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NAN"
	case math.IsInf(v, 1):
		return "INFINITY"
	case math.IsInf(v, -1):
		return "-INFINITY"
	}
	// 1<<53 bounds the range where the int64 round trip is exact.
	if v == math.Trunc(v) && math.Abs(v) < 1<<53 {
		return strconv.FormatInt(int64(v), 10) + "."
	}
	return strconv.FormatFloat(v, 'e', 16, 64)
}

// IntLiteral renders an integer constant.
func IntLiteral(v int) string {
	return strconv.Itoa(v)
}

package loader

import (
	"math"
	"strconv"
	"strings"
)

// FormatNumber renders f the way a browser stringifies a number when it is
// written into an attribute: shortest round-trip decimal, exponent notation
// below 1e-6 and from 1e21 up.
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}

	abs := math.Abs(f)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(f, 'e', -1, 64)
		mant, exp, _ := strings.Cut(s, "e")
		sign := exp[0]
		exp = strings.TrimLeft(exp[1:], "0")
		return mant + "e" + string(sign) + exp
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// FormatMillis renders a millisecond time value such as "250ms".
func FormatMillis(ms float64) string {
	return FormatNumber(ms) + "ms"
}

// FormatValues renders animation keyframes separated by semicolons.
func FormatValues(values []float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = FormatNumber(v)
	}
	return strings.Join(parts, ";")
}

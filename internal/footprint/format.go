package footprint

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

// FormatFixed renders v with exactly digits fractional digits.
//
// Rounding works on the exact binary value of v, so 1.005 (stored as 1.00499...) becomes "1.00",
// while exact ties such as 0.125 round away from zero to "0.13". Negative values keep their sign
// even when they round to zero; negative zero prints without one. Magnitudes of 1e21 and above
// use exponent notation.
func FormatFixed(v float64, digits int) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case math.Abs(v) >= 1e21:
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	if digits < 0 {
		digits = 0
	}

	exact := new(big.Rat).SetFloat64(math.Abs(v))
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(digits)), nil)
	exact.Mul(exact, new(big.Rat).SetInt(scale))

	q, rem := new(big.Int).QuoRem(exact.Num(), exact.Denom(), new(big.Int))
	if rem.Lsh(rem, 1).Cmp(exact.Denom()) >= 0 {
		q.Add(q, big.NewInt(1))
	}

	s := q.String()
	if len(s) <= digits {
		s = strings.Repeat("0", digits-len(s)+1) + s
	}
	if digits > 0 {
		s = s[:len(s)-digits] + "." + s[len(s)-digits:]
	}
	if v < 0 {
		s = "-" + s
	}
	return s
}

package footprint_v1_dto

import (
	"math"
	"math/big"
	"regexp"
	"strconv"
	"strings"
)

var (
	decimalLiteral  = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)
	infinityLiteral = regexp.MustCompile(`^([+-]?)Infinity$`)
	radixLiteral    = regexp.MustCompile(`^0([xXoObB])([0-9a-fA-F]+)$`)
)

// Truthy reports whether a decoded JSON value counts as present.
// nil, false, 0 and "" are not; everything else is, including empty arrays and objects.
func Truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case float64:
		return val != 0 && !math.IsNaN(val)
	case string:
		return val != ""
	default:
		return true
	}
}

// ToNumber converts a decoded JSON value to a number.
// Strings follow numeric literal rules after trimming spaces, arrays and objects are read
// through their text form, so [] is 0, [5] is 5 and anything without a numeric reading is NaN.
func ToNumber(v any) float64 {
	switch val := v.(type) {
	case nil:
		return 0
	case bool:
		if val {
			return 1
		}
		return 0
	case float64:
		return val
	case string:
		return parseNumber(val)
	default:
		return parseNumber(Stringify(val))
	}
}

func parseNumber(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}

	if m := infinityLiteral.FindStringSubmatch(s); m != nil {
		if m[1] == "-" {
			return math.Inf(-1)
		}
		return math.Inf(1)
	}

	if m := radixLiteral.FindStringSubmatch(s); m != nil {
		base := map[byte]int{'x': 16, 'o': 8, 'b': 2}[strings.ToLower(m[1])[0]]
		n, ok := new(big.Int).SetString(m[2], base)
		if !ok {
			return math.NaN()
		}
		f, _ := new(big.Float).SetInt(n).Float64()
		return f
	}

	if !decimalLiteral.MatchString(s) {
		return math.NaN()
	}
	// out of range values come back as ±Inf or ±0 along with ErrRange
	n, _ := strconv.ParseFloat(s, 64)
	return n
}

// Stringify renders a decoded JSON value the way it reads in text:
// numbers in shortest form, strings verbatim, arrays comma-joined, objects as "[object Object]".
func Stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return formatNumber(val)
	case string:
		return val
	case []any:
		parts := make([]string, len(val))
		for i, item := range val {
			if item == nil {
				continue
			}
			parts[i] = Stringify(item)
		}
		return strings.Join(parts, ",")
	default:
		return "[object Object]"
	}
}

func formatNumber(v float64) string {
	if v == 0 {
		return "0"
	}
	abs := math.Abs(v)
	if abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	s := strconv.FormatFloat(v, 'e', -1, 64)
	mantissa, exp, _ := strings.Cut(s, "e")
	sign := exp[:1]
	exp = strings.TrimLeft(exp[1:], "0")
	return mantissa + "e" + sign + exp
}

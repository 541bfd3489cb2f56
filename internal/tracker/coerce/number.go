package coerce

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	decimalRegex = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)
	hexRegex     = regexp.MustCompile(`^0[xX][0-9a-fA-F]+$`)
	octalRegex   = regexp.MustCompile(`^0[oO][0-7]+$`)
	binaryRegex  = regexp.MustCompile(`^0[bB][01]+$`)
)

// Number is a coerced numeric value. Invalid numbers hold NaN and keep the
// input they were produced from.
type Number struct {
	value float64
	valid bool
	raw   string
}

func Valid(f float64) Number {
	if math.IsNaN(f) {
		return Number{value: f, raw: "NaN"}
	}
	return Number{value: f, valid: true}
}

func Invalid(raw string) Number {
	return Number{value: math.NaN(), raw: raw}
}

func (n Number) Valid() bool      { return n.valid }
func (n Number) Float64() float64 { return n.value }

// Raw is the input that failed to coerce; empty for valid numbers.
func (n Number) Raw() string { return n.raw }

func (n Number) String() string {
	if !n.valid {
		return "NaN"
	}
	return formatNumber(n.value)
}

// MarshalJSON writes NaN and infinities as null.
func (n Number) MarshalJSON() ([]byte, error) {
	if !n.valid || math.IsInf(n.value, 0) {
		return []byte("null"), nil
	}
	return []byte(formatNumber(n.value)), nil
}

func ToNumber(v any) Number {
	switch t := v.(type) {
	case undefined:
		return Invalid("undefined")
	case nil:
		return Valid(0)
	case bool:
		if t {
			return Valid(1)
		}
		return Valid(0)
	case float64:
		return Valid(t)
	case int:
		return Valid(float64(t))
	case string:
		return parseNumber(t)
	case []any:
		switch len(t) {
		case 0:
			return Valid(0)
		case 1:
			return parseNumber(ToString(t[0]))
		default:
			return Invalid(ToString(t))
		}
	default:
		return Invalid(ToString(v))
	}
}

func parseNumber(s string) Number {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Valid(0)
	}

	switch trimmed {
	case "Infinity", "+Infinity":
		return Valid(math.Inf(1))
	case "-Infinity":
		return Valid(math.Inf(-1))
	}

	if decimalRegex.MatchString(trimmed) {
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil && !isRangeErr(err) {
			return Invalid(s)
		}
		return Valid(f)
	}

	var base int
	switch {
	case hexRegex.MatchString(trimmed):
		base = 16
	case octalRegex.MatchString(trimmed):
		base = 8
	case binaryRegex.MatchString(trimmed):
		base = 2
	default:
		return Invalid(s)
	}

	u, err := strconv.ParseUint(trimmed[2:], base, 64)
	if err != nil {
		return Invalid(s)
	}
	return Valid(float64(u))
}

func isRangeErr(err error) bool {
	numErr, ok := err.(*strconv.NumError)
	return ok && numErr.Err == strconv.ErrRange
}

// HeadLimit returns the end index for taking the first limit entries of n
// items. NaN counts as zero, fractions truncate toward zero and negative
// limits count back from the end.
func HeadLimit(n int, limit Number) int {
	f := limit.Float64()
	if !limit.Valid() || math.IsNaN(f) {
		return 0
	}
	if math.IsInf(f, 1) {
		return n
	}
	if math.IsInf(f, -1) {
		return 0
	}

	end := math.Trunc(f)
	if end < 0 {
		end += float64(n)
		if end < 0 {
			return 0
		}
	}
	if end > float64(n) {
		return n
	}
	return int(end)
}

func formatNumber(f float64) string {
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
		return trimExponent(strconv.FormatFloat(f, 'e', -1, 64))
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// trimExponent turns "1e-07" into "1e-7".
func trimExponent(s string) string {
	i := strings.IndexByte(s, 'e')
	if i < 0 || i+2 >= len(s) {
		return s
	}
	mantissa, sign, digits := s[:i], s[i+1], strings.TrimLeft(s[i+2:], "0")
	if digits == "" {
		digits = "0"
	}
	return mantissa + "e" + string(sign) + digits
}

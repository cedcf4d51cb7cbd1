package usecase

import (
	"math"
	"math/big"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Leading numeric part, read the way a lenient float parser would.
var numericPrefix = regexp.MustCompile(`^[-+]?(?:\d+(?:\.\d+)?|\.\d+)`)

// currencyParts strips "$" and "," and a K/M/B suffix, returning the signed
// numeric prefix and the power of ten the suffix stands for.
func currencyParts(val string) (string, int32) {
	numStr := strings.TrimSpace(strings.NewReplacer("$", "", ",", "").Replace(val))

	var exp int32
	switch upper := strings.ToUpper(numStr); {
	case strings.HasSuffix(upper, "K"):
		exp = 3
	case strings.HasSuffix(upper, "M"):
		exp = 6
	case strings.HasSuffix(upper, "B"):
		exp = 9
	}
	if exp > 0 {
		numStr = numStr[:len(numStr)-1]
	}
	return numericPrefix.FindString(numStr), exp
}

// ParseCurrency converts a display amount such as "$1,200", "-$3.5K" or "2B"
// to its numeric value. Unparsable input yields zero.
func ParseCurrency(val string) decimal.Decimal {
	m, exp := currencyParts(val)
	if m == "" {
		return decimal.Zero
	}

	negative := m[0] == '-'
	if m[0] == '-' || m[0] == '+' {
		m = m[1:]
	}

	d, err := decimal.NewFromString(m)
	if err != nil {
		return decimal.Zero
	}
	if negative {
		d = d.Neg()
	}
	return d.Shift(exp)
}

// currencyFloat is ParseCurrency in float64 arithmetic: the prefix parsed as
// a float, then scaled.
func currencyFloat(val string) float64 {
	m, exp := currencyParts(val)
	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0
	}
	return f * math.Pow10(int(exp))
}

// toFixed renders x with places decimals, rounding the exact binary value of x
// half away from zero. 0.105 is stored just below the tie and gives "0.10".
func toFixed(x float64, places int32) string {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return strconv.FormatFloat(x, 'f', int(places), 64)
	}
	exact := new(big.Float).SetFloat64(x).Text('f', 40)
	return decimal.RequireFromString(exact).StringFixed(places)
}

// FormatMagnitude renders a raw dollar amount in human scale:
// $1.23B, $4.56M, $7.8K, $9.10 and $0 for zero.
func FormatMagnitude(num float64) string {
	if num == 0 || math.IsNaN(num) {
		return "$0"
	}

	switch {
	case num >= 1e9:
		return "$" + toFixed(num/1e9, 2) + "B"
	case num >= 1e6:
		return "$" + toFixed(num/1e6, 2) + "M"
	case num >= 1e3:
		return "$" + toFixed(num/1e3, 1) + "K"
	default:
		return "$" + toFixed(num, 2)
	}
}

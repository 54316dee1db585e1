package dashboard

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// numericPrefix matches the leading number of a user-typed value; anything
// after it is ignored, so "12abc" reads as 12.
var numericPrefix = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// parseNumber reads a user-typed number. It reports false when the input has
// no numeric prefix or the value does not fit a float64. The result carries
// the shortest decimal form of that float64, so exponents stay bounded.
func parseNumber(s string) (decimal.Decimal, bool) {
	m := numericPrefix.FindString(strings.TrimSpace(s))
	if m == "" {
		return decimal.Decimal{}, false
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil || math.IsInf(f, 0) {
		return decimal.Decimal{}, false
	}
	return decimal.NewFromFloat(f), true
}

func normalizeSymbol(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

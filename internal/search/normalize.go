package search

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// cleanPattern strips everything except digits, comma, period,
	// whitespace and the known currency symbols.
	cleanPattern = regexp.MustCompile(`[^0-9.,\s₹$€£¥₩₽]`)

	// numberPattern matches a thousands/decimal formatted number
	numberPattern = regexp.MustCompile(`\d+(?:,\d{3})*(?:\.\d+)?`)
)

// currencyMatchers pair each currency with its symbol/code/name pattern.
// The slice order is the detection priority: the first matching currency
// wins, which is what resolves ¥ to JPY rather than CNY.
var currencyMatchers = []struct {
	currency Currency
	pattern  *regexp.Regexp
}{
	{CurrencyINR, regexp.MustCompile(`(?i)₹|\bRs\.?|\bINR\b|rupee`)},
	{CurrencyUSD, regexp.MustCompile(`(?i)\$|\bUSD\b|dollar`)},
	{CurrencyEUR, regexp.MustCompile(`(?i)€|\bEUR\b|euro`)},
	{CurrencyGBP, regexp.MustCompile(`(?i)£|\bGBP\b|pound`)},
	{CurrencyJPY, regexp.MustCompile(`(?i)¥|\bJPY\b|yen`)},
	{CurrencyCNY, regexp.MustCompile(`(?i)¥|\bCNY\b|\bRMB\b|yuan`)},
	{CurrencyKRW, regexp.MustCompile(`(?i)₩|\bKRW\b|won`)},
	{CurrencyRUB, regexp.MustCompile(`(?i)₽|\bRUB\b|rouble|ruble`)},
}

// DetectCurrency identifies the currency of a raw price text, returning
// CurrencyUnknown when no symbol, code or name matches.
func DetectCurrency(raw string) Currency {
	for _, m := range currencyMatchers {
		if m.pattern.MatchString(raw) {
			return m.currency
		}
	}
	return CurrencyUnknown
}

// Normalize turns a raw matched price text into a candidate. The currency
// is detected from the raw text, the numeric value from the cleaned text.
// ok is false when no coercible number remains after cleaning; such
// candidates are dropped entirely.
func Normalize(raw string, source SourceTag) (PriceCandidate, bool) {
	currency := DetectCurrency(raw)

	cleaned := cleanPattern.ReplaceAllString(raw, "")
	num := numberPattern.FindString(cleaned)
	if num == "" {
		return PriceCandidate{}, false
	}

	value, err := strconv.ParseFloat(strings.ReplaceAll(num, ",", ""), 64)
	if err != nil || value < 0 {
		return PriceCandidate{}, false
	}

	return PriceCandidate{
		Raw:      strings.TrimSpace(raw),
		Value:    value,
		Currency: currency,
		Source:   source,
	}, true
}

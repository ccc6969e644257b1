package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestNormalizeKnownFormats verifies normalization is deterministic for
// the recognized price texts
func TestNormalizeKnownFormats(t *testing.T) {
	testCases := []struct {
		raw      string
		value    float64
		currency Currency
	}{
		{"₹1,234.50", 1234.50, CurrencyINR},
		{"$1,299.99", 1299.99, CurrencyUSD},
		{"Rs. 500", 500.00, CurrencyINR},
		{"Rs 2,000", 2000.00, CurrencyINR},
		{"€49.99", 49.99, CurrencyEUR},
		{"£10", 10.00, CurrencyGBP},
		{"¥1500", 1500.00, CurrencyJPY},
		{"₩12,000", 12000.00, CurrencyKRW},
		{"₽2,500", 2500.00, CurrencyRUB},
		{"1,299 USD", 1299.00, CurrencyUSD},
		{"99.00", 99.00, CurrencyUnknown},
		{"Price: 99.00", 99.00, CurrencyUnknown},
	}

	for _, tc := range testCases {
		c, ok := Normalize(tc.raw, SourceTextContent)
		assert.True(t, ok, "should normalize: "+tc.raw)
		assert.Equal(t, tc.value, c.Value, "value for "+tc.raw)
		assert.Equal(t, tc.currency, c.Currency, "currency for "+tc.raw)
		assert.Equal(t, SourceTextContent, c.Source)
	}
}

// TestNormalizeDropsUnparseable verifies candidates with no coercible
// number are dropped entirely
func TestNormalizeDropsUnparseable(t *testing.T) {
	for _, raw := range []string{"", "₹", "Price: none", "free shipping"} {
		_, ok := Normalize(raw, SourceTextContent)
		assert.False(t, ok, "should drop: "+raw)
	}
}

// TestDetectCurrencySharedSymbol verifies the shared ¥ symbol resolves to
// JPY because JPY is checked before CNY
func TestDetectCurrencySharedSymbol(t *testing.T) {
	assert.Equal(t, CurrencyJPY, DetectCurrency("¥ 100"))
	assert.Equal(t, CurrencyCNY, DetectCurrency("100 CNY"))
	assert.Equal(t, CurrencyCNY, DetectCurrency("100 yuan"))
	assert.Equal(t, CurrencyKRW, DetectCurrency("12,000 won"))
	assert.Equal(t, CurrencyUnknown, DetectCurrency("no money here"))
}

// TestParseCurrency verifies codes map onto the fixed set
func TestParseCurrency(t *testing.T) {
	assert.Equal(t, CurrencyEUR, ParseCurrency("EUR"))
	assert.Equal(t, CurrencyEUR, ParseCurrency("eur"))
	assert.Equal(t, CurrencyUnknown, ParseCurrency("AUD"))
	assert.Equal(t, CurrencyUnknown, ParseCurrency(""))
}

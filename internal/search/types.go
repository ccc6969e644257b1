package search

import "strings"

// Currency is a member of the fixed currency set, or CurrencyUnknown.
type Currency string

const (
	CurrencyINR     Currency = "INR"
	CurrencyUSD     Currency = "USD"
	CurrencyEUR     Currency = "EUR"
	CurrencyGBP     Currency = "GBP"
	CurrencyJPY     Currency = "JPY"
	CurrencyCNY     Currency = "CNY"
	CurrencyKRW     Currency = "KRW"
	CurrencyRUB     Currency = "RUB"
	CurrencyUnknown Currency = "UNKNOWN"
)

// knownCurrencies lists the fixed set in detection priority order.
// JPY sits before CNY so the shared ¥ symbol resolves to JPY.
var knownCurrencies = []Currency{
	CurrencyINR,
	CurrencyUSD,
	CurrencyEUR,
	CurrencyGBP,
	CurrencyJPY,
	CurrencyCNY,
	CurrencyKRW,
	CurrencyRUB,
}

// ParseCurrency maps a currency code string onto the fixed set
func ParseCurrency(code string) Currency {
	upper := Currency(strings.ToUpper(strings.TrimSpace(code)))
	for _, c := range knownCurrencies {
		if upper == c {
			return c
		}
	}
	return CurrencyUnknown
}

// SourceTag records which extraction mechanism produced a price candidate
type SourceTag string

const (
	SourceTextContent SourceTag = "text_content"
	SourceJSONLD      SourceTag = "json_ld"
)

// SourceAttribute tags a candidate found in an element attribute
func SourceAttribute(name string) SourceTag {
	return SourceTag("attribute_" + name)
}

// SourceElement tags a candidate found in the text of a selected element
func SourceElement(selector string) SourceTag {
	return SourceTag("element_" + selector)
}

// IsStructured reports whether the tag comes from structured page data.
// Structured sources outrank free-text matches in best-price selection.
func (s SourceTag) IsStructured() bool {
	switch s {
	case SourceJSONLD, SourceAttribute("data-price"), SourceAttribute("data-cost"):
		return true
	}
	return false
}

// SearchQuery is one search invocation. Immutable once issued.
type SearchQuery struct {
	Text       string
	Country    string
	NumResults int
	// Version requests an extraction engine generation; nil means latest
	Version *int
}

// PriceCandidate is one normalized price observation from a page
type PriceCandidate struct {
	Raw      string    `json:"raw"`
	Value    float64   `json:"value"`
	Currency Currency  `json:"currency"`
	Source   SourceTag `json:"source"`
}

// ProductRecord is the extracted view of a single page. The simple engine
// fills Prices with the raw matched strings; the enhanced engine fills
// Candidates with normalized observations.
type ProductRecord struct {
	Link        string           `json:"link"`
	Prices      []string         `json:"prices,omitempty"`
	Candidates  []PriceCandidate `json:"price_candidates,omitempty"`
	ProductName string           `json:"product_name,omitempty"`
	Currency    Currency         `json:"currency,omitempty"`
	Rank        int              `json:"rank,omitempty"`
}

// SearchOutcome is the terminal value of a search run
type SearchOutcome struct {
	Query        string          `json:"query"`
	TotalResults int             `json:"total_results"`
	Results      []ProductRecord `json:"results"`
	Error        string          `json:"error,omitempty"`
}

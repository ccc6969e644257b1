package search

import (
	"encoding/json"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"pricescout/config"
	"pricescout/logger"
)

// Realistic price range for best-price selection. Values outside it stay
// in the raw candidate list but never win.
const (
	minRealisticPrice = 1
	maxRealisticPrice = 10_000_000
)

// priceSelectors are tried in order on every document: generic price
// classes, common e-commerce classes and schema.org microdata.
var priceSelectors = []string{
	`[class*="price"]`,
	`[class*="cost"]`,
	`[class*="amount"]`,
	`[id*="price"]`,
	"[data-price]",
	"[data-cost]",
	".price",
	".cost",
	".amount",
	`span[class*="price"]`,
	`div[class*="price"]`,
	`p[class*="price"]`,
	".a-price .a-offscreen",
	".pdp-price strong",
	`[itemprop="price"]`,
}

// priceAttributes are element attributes checked before element text
var priceAttributes = []string{"data-price", "data-cost", "content"}

const jsonLDSelector = `script[type="application/ld+json"]`

// PriceExtractor is the enhanced (generation 2) extractor. It scans
// document text, price selectors and embedded JSON-LD, normalizes every
// raw match and returns a deduplicated, value-sorted candidate list.
type PriceExtractor struct {
	patterns []*regexp.Regexp
	log      *logger.Logger
}

// NewPriceExtractor compiles the configured pattern set
func NewPriceExtractor(patterns []config.PricePattern) *PriceExtractor {
	return &PriceExtractor{
		patterns: compilePatterns(patterns),
		log:      logger.ForComponent("extractor"),
	}
}

func compilePatterns(patterns []config.PricePattern) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p.Pattern)
		if err != nil {
			logger.Warn("skipping invalid price pattern %q: %v", p.Pattern, err)
			continue
		}
		compiled = append(compiled, re)
	}
	return compiled
}

// Extract returns the ordered candidate set for a document
func (e *PriceExtractor) Extract(doc *goquery.Document) []PriceCandidate {
	var candidates []PriceCandidate

	// Source 1: whole-document text
	text := doc.Text()
	for _, re := range e.patterns {
		for _, match := range re.FindAllString(text, -1) {
			if c, ok := Normalize(match, SourceTextContent); ok {
				candidates = append(candidates, c)
			}
		}
	}

	// Source 2: price selectors, data-* attributes before element text
	for _, selector := range priceSelectors {
		sel := selector
		doc.Find(sel).Each(func(_ int, s *goquery.Selection) {
			for _, attr := range priceAttributes {
				value, exists := s.Attr(attr)
				if !exists || strings.TrimSpace(value) == "" {
					continue
				}
				if c, ok := Normalize(value, SourceAttribute(attr)); ok {
					candidates = append(candidates, c)
				}
			}

			elementText := strings.TrimSpace(s.Text())
			if elementText == "" {
				return
			}
			for _, re := range e.patterns {
				for _, match := range re.FindAllString(elementText, -1) {
					if c, ok := Normalize(match, SourceElement(sel)); ok {
						candidates = append(candidates, c)
					}
				}
			}
		})
	}

	// Source 3: embedded JSON-LD blocks
	doc.Find(jsonLDSelector).Each(func(_ int, s *goquery.Selection) {
		var node interface{}
		if err := json.Unmarshal([]byte(s.Text()), &node); err != nil {
			// Malformed block: drop it, keep the other sources
			e.log.Debug().Err(err).Msg("Skipping malformed JSON-LD block")
			return
		}
		collectStructured(node, &candidates)
	})

	return dedupeAndSort(candidates)
}

// collectStructured walks a decoded JSON-LD value. Arrays recurse into
// every element; objects recurse into their offers value and yield a
// candidate for their price value.
func collectStructured(node interface{}, out *[]PriceCandidate) {
	switch v := node.(type) {
	case []interface{}:
		for _, item := range v {
			collectStructured(item, out)
		}
	case map[string]interface{}:
		if offers, ok := v["offers"]; ok {
			collectStructured(offers, out)
		}
		if price, ok := v["price"]; ok {
			if c, ok := structuredCandidate(price, v["priceCurrency"]); ok {
				*out = append(*out, c)
			}
		}
	}
}

// structuredCandidate coerces a JSON-LD price value (string or number)
// into a candidate. The currency comes from priceCurrency, not from the
// price text itself.
func structuredCandidate(price, currencyField interface{}) (PriceCandidate, bool) {
	currency := CurrencyUnknown
	if code, ok := currencyField.(string); ok {
		currency = ParseCurrency(code)
	}

	switch p := price.(type) {
	case string:
		c, ok := Normalize(p, SourceJSONLD)
		if !ok {
			return PriceCandidate{}, false
		}
		c.Currency = currency
		return c, true
	case float64:
		if p < 0 {
			return PriceCandidate{}, false
		}
		return PriceCandidate{
			Raw:      strconv.FormatFloat(p, 'f', -1, 64),
			Value:    p,
			Currency: currency,
			Source:   SourceJSONLD,
		}, true
	}
	return PriceCandidate{}, false
}

// dedupeAndSort removes duplicate (value, currency) pairs keeping the
// first occurrence and sorts the result ascending by value
func dedupeAndSort(candidates []PriceCandidate) []PriceCandidate {
	type key struct {
		value    float64
		currency Currency
	}
	seen := make(map[key]struct{}, len(candidates))
	var out []PriceCandidate
	for _, c := range candidates {
		k := key{c.Value, c.Currency}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, c)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Value < out[j].Value
	})
	return out
}

// SelectBest chooses the single price representing a page. Candidates
// must already be value-sorted. Structured sources win over free-text
// matches; within a class the cheapest realistic value wins.
func SelectBest(candidates []PriceCandidate) (PriceCandidate, bool) {
	var cheapest *PriceCandidate
	for i := range candidates {
		c := &candidates[i]
		if c.Value < minRealisticPrice || c.Value > maxRealisticPrice {
			continue
		}
		if c.Source.IsStructured() {
			return *c, true
		}
		if cheapest == nil {
			cheapest = c
		}
	}
	if cheapest != nil {
		return *cheapest, true
	}
	return PriceCandidate{}, false
}

package search

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"pricescout/config"
)

// simpleSelectors is the generation-1 selector list. Attribute-bearing
// elements are scanned for text only; the simple engine does not read
// data-* values or JSON-LD.
var simpleSelectors = []string{
	`[class*="price"]`,
	`[class*="cost"]`,
	`[class*="amount"]`,
	`[id*="price"]`,
	"[data-price]",
	".price",
	".cost",
	".amount",
	`span[class*="price"]`,
	`div[class*="price"]`,
	`p[class*="price"]`,
}

// SimpleExtractor is the generation-1 extractor: raw regex matches from
// document text and price elements, order-preserving dedup, no
// normalization and no ranking.
type SimpleExtractor struct {
	patterns []*regexp.Regexp
}

// NewSimpleExtractor compiles the configured pattern set
func NewSimpleExtractor(patterns []config.PricePattern) *SimpleExtractor {
	return &SimpleExtractor{patterns: compilePatterns(patterns)}
}

// Extract returns the raw matched price strings in discovery order
func (e *SimpleExtractor) Extract(doc *goquery.Document) []string {
	var prices []string

	text := doc.Text()
	for _, re := range e.patterns {
		prices = append(prices, re.FindAllString(text, -1)...)
	}

	for _, selector := range simpleSelectors {
		doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
			elementText := strings.TrimSpace(s.Text())
			if elementText == "" {
				return
			}
			for _, re := range e.patterns {
				prices = append(prices, re.FindAllString(elementText, -1)...)
			}
		})
	}

	// Remove duplicates while preserving order
	seen := make(map[string]struct{}, len(prices))
	var unique []string
	for _, price := range prices {
		if _, dup := seen[price]; dup {
			continue
		}
		seen[price] = struct{}{}
		unique = append(unique, price)
	}

	return unique
}

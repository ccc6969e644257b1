package search

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// titleSelectors in preference order
var titleSelectors = []string{
	"h1",
	"title",
	`[class*="title"]`,
	`[class*="name"]`,
}

// extractTitle returns the first non-empty trimmed title text
func extractTitle(doc *goquery.Document) string {
	for _, selector := range titleSelectors {
		if text := strings.TrimSpace(doc.Find(selector).First().Text()); text != "" {
			return text
		}
	}
	return ""
}

// recordBuilder assembles one ProductRecord from a fetched document.
// keep reports whether the page survives the engine's drop policy.
type recordBuilder interface {
	Build(doc *goquery.Document, link string) (record ProductRecord, keep bool)
}

// simpleBuilder keeps every fetched page, prices as raw strings
type simpleBuilder struct {
	extractor *SimpleExtractor
}

func (b *simpleBuilder) Build(doc *goquery.Document, link string) (ProductRecord, bool) {
	record := ProductRecord{
		Link:        link,
		ProductName: extractTitle(doc),
		Prices:      b.extractor.Extract(doc),
	}
	if len(record.Prices) > 0 {
		record.Currency = DetectCurrency(record.Prices[0])
	}
	return record, true
}

// enhancedBuilder drops pages with no price candidates and infers the
// page currency from the best-price selection
type enhancedBuilder struct {
	extractor *PriceExtractor
}

func (b *enhancedBuilder) Build(doc *goquery.Document, link string) (ProductRecord, bool) {
	candidates := b.extractor.Extract(doc)
	record := ProductRecord{
		Link:        link,
		ProductName: extractTitle(doc),
		Candidates:  candidates,
	}
	if best, ok := SelectBest(candidates); ok {
		record.Currency = best.Currency
	} else if len(candidates) > 0 {
		record.Currency = candidates[0].Currency
	}
	return record, len(candidates) > 0
}

package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pricescout/config"
)

func TestExtractTitlePreferenceOrder(t *testing.T) {
	doc := parseHTML(t, `<html><head><title>Tab Title</title></head><body><h1>  Widget Deluxe </h1></body></html>`)
	assert.Equal(t, "Widget Deluxe", extractTitle(doc))

	doc = parseHTML(t, `<html><head><title>Tab Title</title></head><body><h1>   </h1></body></html>`)
	assert.Equal(t, "Tab Title", extractTitle(doc))

	doc = parseHTML(t, `<html><body><div class="product-name">Fallback Name</div></body></html>`)
	assert.Equal(t, "Fallback Name", extractTitle(doc))

	doc = parseHTML(t, `<html><body><p>nothing here</p></body></html>`)
	assert.Equal(t, "", extractTitle(doc))
}

// TestSimpleBuilderKeepsPricelessPages verifies generation 1 keeps every
// fetched page, even without a single price match
func TestSimpleBuilderKeepsPricelessPages(t *testing.T) {
	builder := &simpleBuilder{extractor: NewSimpleExtractor(config.LoadConfig().PricePatterns)}

	doc := parseHTML(t, `<html><body><h1>Out of stock</h1></body></html>`)
	record, keep := builder.Build(doc, "https://shop.example/item")

	assert.True(t, keep)
	assert.Equal(t, "https://shop.example/item", record.Link)
	assert.Equal(t, "Out of stock", record.ProductName)
	assert.Empty(t, record.Prices)
	assert.Equal(t, Currency(""), record.Currency)
}

func TestSimpleBuilderDetectsCurrencyFromFirstPrice(t *testing.T) {
	builder := &simpleBuilder{extractor: NewSimpleExtractor(config.LoadConfig().PricePatterns)}

	doc := parseHTML(t, `<html><body><h1>Widget</h1><p>₹999 or $13</p></body></html>`)
	record, keep := builder.Build(doc, "https://shop.example/item")

	assert.True(t, keep)
	require.NotEmpty(t, record.Prices)
	assert.Equal(t, "₹999", record.Prices[0])
	assert.Equal(t, CurrencyINR, record.Currency)
}

// TestEnhancedBuilderDropsPricelessPages verifies generation 2 drops
// pages with an empty candidate list
func TestEnhancedBuilderDropsPricelessPages(t *testing.T) {
	builder := &enhancedBuilder{extractor: newTestExtractor()}

	doc := parseHTML(t, `<html><body><h1>Out of stock</h1></body></html>`)
	_, keep := builder.Build(doc, "https://shop.example/item")
	assert.False(t, keep)
}

func TestEnhancedBuilderCurrencyFromBestPrice(t *testing.T) {
	builder := &enhancedBuilder{extractor: newTestExtractor()}

	doc := parseHTML(t, `<html><body><h1>Widget</h1><p>₹0.50 sachet, full pack €49.99</p></body></html>`)
	record, keep := builder.Build(doc, "https://shop.example/item")

	assert.True(t, keep)
	require.Len(t, record.Candidates, 2)
	assert.Equal(t, CurrencyEUR, record.Currency)
}

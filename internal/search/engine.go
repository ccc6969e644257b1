package search

import (
	"context"

	"pricescout/config"
	"pricescout/logger"
	"pricescout/services/cache"
)

// Engine is one extraction-engine generation
type Engine interface {
	// Search runs a full query-to-outcome pipeline
	Search(ctx context.Context, query SearchQuery) SearchOutcome

	// Version returns the engine generation
	Version() int
}

// LatestVersion is the newest supported engine generation
const LatestVersion = 2

// Dependencies carries the collaborators an engine is built from
type Dependencies struct {
	Config   *config.Config
	Provider Provider
	Blocks   cache.CacheService
}

// SelectEngine returns the engine for the requested generation. A nil
// request means the latest; out-of-range requests clamp silently into
// [1, LatestVersion].
func SelectEngine(requested *int, deps Dependencies) Engine {
	version := LatestVersion
	if requested != nil {
		version = *requested
	}
	version = max(1, min(version, LatestVersion))

	switch version {
	case 1:
		return newSimpleEngine(deps)
	default:
		return newEnhancedEngine(deps)
	}
}

// newSimpleEngine builds generation 1: raw string prices, keep every
// fetched page, explicit ranks
func newSimpleEngine(deps Dependencies) Engine {
	return &Aggregator{
		executor:  NewExecutor(deps.Provider, deps.Config),
		fetcher:   NewFetcher(deps.Config, deps.Blocks),
		builder:   &simpleBuilder{extractor: NewSimpleExtractor(deps.Config.PricePatterns)},
		version:   1,
		stampRank: true,
		log:       logger.ForEngine(1),
	}
}

// newEnhancedEngine builds generation 2: normalized candidates,
// structured-data sources, best-price ranking, empty pages dropped
func newEnhancedEngine(deps Dependencies) Engine {
	return &Aggregator{
		executor: NewExecutor(deps.Provider, deps.Config),
		fetcher:  NewFetcher(deps.Config, deps.Blocks),
		builder:  &enhancedBuilder{extractor: NewPriceExtractor(deps.Config.PricePatterns)},
		version:  2,
		log:      logger.ForEngine(2),
	}
}

package search

import (
	"context"
	"fmt"

	"pricescout/helpers"
	"pricescout/logger"
	"pricescout/pkg/errors"
)

// Aggregator drives discovery, fetching and extraction over the candidate
// URL list, sequentially and in discovery order.
type Aggregator struct {
	executor  *Executor
	fetcher   *Fetcher
	builder   recordBuilder
	version   int
	stampRank bool
	log       *logger.Logger
}

// Version returns the engine generation
func (a *Aggregator) Version() int {
	return a.version
}

// Search runs the whole pipeline for one query. Any unexpected failure is
// converted into an outcome carrying an error string and whatever partial
// results were already collected; nothing escapes to the caller.
func (a *Aggregator) Search(ctx context.Context, query SearchQuery) (outcome SearchOutcome) {
	outcome.Query = query.Text

	defer func() {
		if r := recover(); r != nil {
			aggErr := errors.NewAggregate("aggregator", fmt.Sprintf("%v", r), nil)
			a.log.Error().Err(aggErr).Str("query", query.Text).Msg("Search run failed")
			outcome.Error = fmt.Sprintf("%v", r)
			outcome.TotalResults = len(outcome.Results)
		}
	}()

	text := query.Text
	if query.Country != "" {
		text = text + " " + helpers.CountryName(query.Country)
	}

	urls := a.executor.Discover(ctx, text, query.NumResults)
	for i, pageURL := range urls {
		a.log.Info().
			Int("position", i+1).
			Int("total", len(urls)).
			Str("url", pageURL).
			Msg("Processing URL")

		doc, err := a.fetcher.Fetch(ctx, pageURL)
		if err != nil {
			a.log.Warn().Err(err).Str("url", pageURL).Msg("Skipping URL after fetch failure")
			continue
		}

		record, keep := a.builder.Build(doc, pageURL)
		if !keep {
			a.log.Debug().Str("url", pageURL).Msg("Dropping page without price candidates")
			continue
		}

		if a.stampRank {
			record.Rank = i + 1
		}
		outcome.Results = append(outcome.Results, record)
	}

	outcome.TotalResults = len(outcome.Results)
	return outcome
}

package exchange

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"sentry/internal/model"
)

// Aggregator fetches comparable quotes from the configured buy and sell
// exchanges. Leg assignment is fixed by configuration, never inferred from
// which price happens to be lower.
type Aggregator struct {
	logger *slog.Logger
	buy    PriceSource
	sell   PriceSource
}

// NewAggregator creates an Aggregator over the two configured legs.
func NewAggregator(logger *slog.Logger, buy, sell PriceSource) *Aggregator {
	return &Aggregator{logger: logger, buy: buy, sell: sell}
}

// FetchQuotes retrieves both legs' prices concurrently and returns one Quote
// per exchange. If either leg fails the whole call fails; a partial result is
// never returned.
func (a *Aggregator) FetchQuotes(ctx context.Context, pair string, amountBase float64) (buy, sell model.Quote, err error) {
	pair = NormalizePair(pair)
	a.logger.Info("fetching quotes", "pair", pair, "amount_base", amountBase)

	var (
		wg              sync.WaitGroup
		buyPrice        float64
		sellPrice       float64
		buyErr, sellErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		buyPrice, buyErr = a.buy.FetchLastPrice(ctx, pair)
	}()
	go func() {
		defer wg.Done()
		sellPrice, sellErr = a.sell.FetchLastPrice(ctx, pair)
	}()
	wg.Wait()

	if buyErr != nil {
		return model.Quote{}, model.Quote{}, fmt.Errorf("buy leg %s: %w", a.buy.Name(), buyErr)
	}
	if sellErr != nil {
		return model.Quote{}, model.Quote{}, fmt.Errorf("sell leg %s: %w", a.sell.Name(), sellErr)
	}

	buy = model.Quote{
		Exchange:   a.buy.Name(),
		Pair:       pair,
		AmountBase: amountBase,
		PriceQuote: buyPrice,
		FeePercent: a.buy.FeePercent(),
	}
	sell = model.Quote{
		Exchange:   a.sell.Name(),
		Pair:       pair,
		AmountBase: amountBase,
		PriceQuote: sellPrice,
		FeePercent: a.sell.FeePercent(),
	}

	a.logger.Info("quotes ready",
		"pair", pair, a.buy.Name(), buyPrice, a.sell.Name(), sellPrice)
	return buy, sell, nil
}

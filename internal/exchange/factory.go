package exchange

import (
	"fmt"
	"log/slog"

	"sentry/internal/config"
)

// NewClient creates a new price source based on the given name and configuration.
func NewClient(name string, logger *slog.Logger, cfg config.ExchangeConfig) (PriceSource, error) {
	switch name {
	case "bitfinex":
		return NewBitfinexClient(logger, cfg.TakerFeePercent), nil
	case "kraken":
		return NewKrakenClient(logger, cfg.TakerFeePercent), nil
	default:
		return nil, fmt.Errorf("unknown exchange: %s", name)
	}
}

package monitor

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"sentry/internal/arbitrage"
	"sentry/internal/config"
	"sentry/internal/dashboard"
	"sentry/internal/exchange"
	"sentry/internal/notify"
)

// Monitor drives the evaluation cycles: fetch both quotes, compute the
// fee-adjusted result, decide, and alert. Cycles are independent; one
// failing never stops the loop.
type Monitor struct {
	logger     *slog.Logger
	cfg        *config.Config
	aggregator *exchange.Aggregator
	notifier   notify.Notifier
	hub        *dashboard.Hub
}

// New creates a Monitor. hub may be nil when the dashboard is disabled.
func New(logger *slog.Logger, cfg *config.Config, aggregator *exchange.Aggregator, notifier notify.Notifier, hub *dashboard.Hub) *Monitor {
	return &Monitor{
		logger:     logger,
		cfg:        cfg,
		aggregator: aggregator,
		notifier:   notifier,
		hub:        hub,
	}
}

// RunOnce executes a single evaluation cycle. The returned error reports why
// the cycle produced no alert decision (fetch or comparison failure) or why a
// decided alert could not be delivered; the computed result itself stays
// valid in the latter case.
func (m *Monitor) RunOnce(ctx context.Context) error {
	mc := m.cfg.Monitor

	buyQuote, sellQuote, err := m.aggregator.FetchQuotes(ctx, mc.Pair, mc.AmountBase)
	if err != nil {
		return err
	}

	result, err := arbitrage.Compute(buyQuote, sellQuote)
	if err != nil {
		var ic *arbitrage.InvalidComparisonError
		if errors.As(err, &ic) {
			m.logger.Error("quotes are not comparable, check leg configuration", "error", ic)
		}
		return err
	}

	m.logger.Info("cycle computed",
		"pair", result.Pair,
		"gross_spread_percent", result.GrossSpreadPercent,
		"profit_percent_net", result.ProfitPercentNet,
		"profit_eur", result.ProfitEUR)

	alert := arbitrage.Decide(result, mc.GrossThresholdPercent, mc.RequireNetProfit)
	if m.hub != nil {
		m.hub.BroadcastEvaluation(result, alert)
	}

	if !alert {
		m.logger.Info("no alert", "pair", result.Pair,
			"gross_spread_percent", result.GrossSpreadPercent,
			"threshold_percent", mc.GrossThresholdPercent)
		return nil
	}

	m.logger.Info("alert triggered", "pair", result.Pair,
		"gross_spread_percent", result.GrossSpreadPercent)
	if err := m.notifier.SendAlert(ctx, arbitrage.FormatMessage(result)); err != nil {
		return err
	}
	return nil
}

// Run evaluates on the configured interval until the context is cancelled.
// An immediate first cycle runs before the ticker takes over.
func (m *Monitor) Run(ctx context.Context) error {
	m.logger.Info("monitor started",
		"pair", m.cfg.Monitor.Pair,
		"amount_base", m.cfg.Monitor.AmountBase,
		"threshold_percent", m.cfg.Monitor.GrossThresholdPercent,
		"interval", m.cfg.Monitor.PollInterval)

	if err := m.RunOnce(ctx); err != nil {
		m.logCycleErr(err)
	}

	ticker := time.NewTicker(m.cfg.Monitor.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.logger.Info("monitor stopped")
			return ctx.Err()
		case <-ticker.C:
			if err := m.RunOnce(ctx); err != nil {
				m.logCycleErr(err)
			}
		}
	}
}

func (m *Monitor) logCycleErr(err error) {
	var ne *notify.NotificationError
	if errors.As(err, &ne) {
		m.logger.Error("alert delivery failed", "error", err)
		return
	}
	m.logger.Error("cycle failed", "error", err)
}

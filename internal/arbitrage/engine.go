package arbitrage

import (
	"fmt"
	"strings"

	"sentry/internal/model"
)

// InvalidComparisonError reports that two quotes cannot be compared because
// they describe different pairs or amounts. This is a programming or
// configuration error, not a market condition.
type InvalidComparisonError struct {
	Field string
	Buy   string
	Sell  string
}

func (e *InvalidComparisonError) Error() string {
	return fmt.Sprintf("quotes not comparable: %s mismatch (buy=%s, sell=%s)", e.Field, e.Buy, e.Sell)
}

// feeAmount converts a percent fee into quote-currency terms.
func feeAmount(grossEUR, feePercent float64) float64 {
	return grossEUR * (feePercent / 100.0)
}

// Compute evaluates a buy/sell quote pair into a fee-adjusted result. The
// quotes must agree on pair and amount. With valid quotes (price and amount
// strictly positive) buyTotalCost is strictly positive, so the net percent
// division is safe; a zero cost is still rejected explicitly rather than
// trusted to the precondition.
func Compute(buy, sell model.Quote) (model.ArbitrageResult, error) {
	if buy.Pair != sell.Pair {
		return model.ArbitrageResult{}, &InvalidComparisonError{Field: "pair", Buy: buy.Pair, Sell: sell.Pair}
	}
	if buy.AmountBase != sell.AmountBase {
		return model.ArbitrageResult{}, &InvalidComparisonError{
			Field: "amount",
			Buy:   fmt.Sprintf("%v", buy.AmountBase),
			Sell:  fmt.Sprintf("%v", sell.AmountBase),
		}
	}

	buyGross := buy.PriceQuote * buy.AmountBase
	sellGross := sell.PriceQuote * sell.AmountBase

	buyFee := feeAmount(buyGross, buy.FeePercent)
	sellFee := feeAmount(sellGross, sell.FeePercent)

	buyTotalCost := buyGross + buyFee
	sellTotalReceived := sellGross - sellFee

	if buyTotalCost <= 0 {
		return model.ArbitrageResult{}, fmt.Errorf("buy total cost %v is not positive, cannot derive net percent", buyTotalCost)
	}

	profitEUR := sellTotalReceived - buyTotalCost

	return model.ArbitrageResult{
		Pair:       buy.Pair,
		AmountBase: buy.AmountBase,

		BuyExchange:   buy.Exchange,
		BuyPrice:      buy.PriceQuote,
		BuyFeePercent: buy.FeePercent,
		BuyFeeEUR:     buyFee,
		BuyTotalCost:  buyTotalCost,

		SellExchange:      sell.Exchange,
		SellPrice:         sell.PriceQuote,
		SellFeePercent:    sell.FeePercent,
		SellFeeEUR:        sellFee,
		SellTotalReceived: sellTotalReceived,

		GrossSpreadEUR:     sell.PriceQuote - buy.PriceQuote,
		GrossSpreadPercent: ((sell.PriceQuote - buy.PriceQuote) / buy.PriceQuote) * 100.0,
		ProfitEUR:          profitEUR,
		ProfitPercentNet:   (profitEUR / buyTotalCost) * 100.0,
	}, nil
}

// Decide is the two-stage alert gate: a coarse gross-spread filter (inclusive
// threshold) followed by an optional net-profitability filter. Zero profit
// does not alert.
func Decide(r model.ArbitrageResult, grossThresholdPercent float64, requireNetProfit bool) bool {
	if r.GrossSpreadPercent < grossThresholdPercent {
		return false
	}
	if requireNetProfit && r.ProfitEUR <= 0 {
		return false
	}
	return true
}

// FormatMessage renders the deterministic alert text handed verbatim to the
// notifier, with both legs' breakdown and the profit sign labeled.
func FormatMessage(r model.ArbitrageResult) string {
	profitStatus := "POSITIVE PROFIT"
	if r.ProfitEUR < 0 {
		profitStatus = "NEGATIVE PROFIT"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**Sentry Alert**\n")
	fmt.Fprintf(&b, "**Status:** %s\n", profitStatus)
	fmt.Fprintf(&b, "**Pair:** %s | **Amount:** %v\n\n", r.Pair, r.AmountBase)

	fmt.Fprintf(&b, "**%s (paid / buy)**\n", r.BuyExchange)
	fmt.Fprintf(&b, "- Price: EUR %.2f\n", r.BuyPrice)
	fmt.Fprintf(&b, "- Fee: %.4f%% = EUR %.2f\n", r.BuyFeePercent, r.BuyFeeEUR)
	fmt.Fprintf(&b, "- Total cost: EUR %.2f\n\n", r.BuyTotalCost)

	fmt.Fprintf(&b, "**%s (received / sell)**\n", r.SellExchange)
	fmt.Fprintf(&b, "- Price: EUR %.2f\n", r.SellPrice)
	fmt.Fprintf(&b, "- Fee: %.4f%% = EUR %.2f\n", r.SellFeePercent, r.SellFeeEUR)
	fmt.Fprintf(&b, "- Total received: EUR %.2f\n\n", r.SellTotalReceived)

	fmt.Fprintf(&b, "**Gross spread:** EUR %.2f (%.3f%%)\n", r.GrossSpreadEUR, r.GrossSpreadPercent)
	fmt.Fprintf(&b, "**Net result:** EUR %.2f (%.3f%%)\n", r.ProfitEUR, r.ProfitPercentNet)
	return b.String()
}

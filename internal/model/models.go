package model

// Quote represents a single exchange's priced offer for a pair and amount,
// as observed at fetch time. A Quote is fully formed or not built at all.
type Quote struct {
	Exchange   string  `json:"exchange"`
	Pair       string  `json:"pair"`
	AmountBase float64 `json:"amount_base"`
	PriceQuote float64 `json:"price_quote"`
	FeePercent float64 `json:"fee_percent"`
}

// ArbitrageResult is the fee-adjusted evaluation of one buy/sell quote pair.
// It is derived once per cycle and never mutated.
type ArbitrageResult struct {
	Pair       string  `json:"pair"`
	AmountBase float64 `json:"amount_base"`

	BuyExchange   string  `json:"buy_exchange"`
	BuyPrice      float64 `json:"buy_price"`
	BuyFeePercent float64 `json:"buy_fee_percent"`
	BuyFeeEUR     float64 `json:"buy_fee_eur"`
	BuyTotalCost  float64 `json:"buy_total_cost"`

	SellExchange      string  `json:"sell_exchange"`
	SellPrice         float64 `json:"sell_price"`
	SellFeePercent    float64 `json:"sell_fee_percent"`
	SellFeeEUR        float64 `json:"sell_fee_eur"`
	SellTotalReceived float64 `json:"sell_total_received"`

	GrossSpreadEUR     float64 `json:"gross_spread_eur"`
	GrossSpreadPercent float64 `json:"gross_spread_percent"`
	ProfitEUR          float64 `json:"profit_eur"`
	ProfitPercentNet   float64 `json:"profit_percent_net"`
}

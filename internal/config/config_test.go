package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testYAML = `monitor:
  pair: "ETH/EUR"
  amount_base: 1.0
  gross_threshold_percent: 0.5
  require_net_profit: true
  poll_interval: 10s
  buy_exchange: "bitfinex"
  sell_exchange: "kraken"

dashboard:
  enabled: true
  listen_addr: ":8085"

exchanges:
  bitfinex:
    taker_fee_percent: 0.0001
  kraken:
    taker_fee_percent: 0.26
`

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(testYAML), 0o644))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "ETH/EUR", cfg.Monitor.Pair)
	assert.Equal(t, 1.0, cfg.Monitor.AmountBase)
	assert.Equal(t, 0.5, cfg.Monitor.GrossThresholdPercent)
	assert.True(t, cfg.Monitor.RequireNetProfit)
	assert.Equal(t, 10*time.Second, cfg.Monitor.PollInterval)
	assert.Equal(t, "bitfinex", cfg.Monitor.BuyExchange)
	assert.Equal(t, "kraken", cfg.Monitor.SellExchange)
	assert.True(t, cfg.Dashboard.Enabled)
	assert.Equal(t, 0.26, cfg.Exchanges["kraken"].TakerFeePercent)
}

func TestValidate(t *testing.T) {
	valid := Config{
		Monitor: MonitorConfig{
			Pair:         "ETH/EUR",
			AmountBase:   1.0,
			PollInterval: 10 * time.Second,
			BuyExchange:  "bitfinex",
			SellExchange: "kraken",
		},
		Exchanges: map[string]ExchangeConfig{
			"bitfinex": {TakerFeePercent: 0.0001},
			"kraken":   {TakerFeePercent: 0.26},
		},
	}
	require.NoError(t, valid.Validate())

	t.Run("amount must be positive", func(t *testing.T) {
		c := valid
		c.Monitor.AmountBase = 0
		assert.Error(t, c.Validate())
	})

	t.Run("legs must be configured exchanges", func(t *testing.T) {
		c := valid
		c.Monitor.BuyExchange = "binance"
		assert.Error(t, c.Validate())
	})

	t.Run("legs must differ", func(t *testing.T) {
		c := valid
		c.Monitor.SellExchange = "bitfinex"
		assert.Error(t, c.Validate())
	})

	t.Run("fees cannot be negative", func(t *testing.T) {
		c := valid
		c.Exchanges = map[string]ExchangeConfig{
			"bitfinex": {TakerFeePercent: -0.1},
			"kraken":   {TakerFeePercent: 0.26},
		}
		assert.Error(t, c.Validate())
	})
}

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config stores all configuration for the application.
// The values are read by viper from a config file or environment variables.
type Config struct {
	Monitor   MonitorConfig
	Dashboard DashboardConfig
	Exchanges map[string]ExchangeConfig
}

// MonitorConfig defines the settings for the evaluation loop.
type MonitorConfig struct {
	Pair                  string        `mapstructure:"pair"`
	AmountBase            float64       `mapstructure:"amount_base"`
	GrossThresholdPercent float64       `mapstructure:"gross_threshold_percent"`
	RequireNetProfit      bool          `mapstructure:"require_net_profit"`
	PollInterval          time.Duration `mapstructure:"poll_interval"`
	BuyExchange           string        `mapstructure:"buy_exchange"`
	SellExchange          string        `mapstructure:"sell_exchange"`
}

// DashboardConfig defines the optional live dashboard settings.
type DashboardConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	ListenAddr string `mapstructure:"listen_addr"`
}

// ExchangeConfig defines settings for a specific exchange.
type ExchangeConfig struct {
	TakerFeePercent float64 `mapstructure:"taker_fee_percent"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	err = viper.ReadInConfig()
	if err != nil {
		return
	}

	err = viper.Unmarshal(&config)
	if err != nil {
		return
	}

	err = config.Validate()
	return
}

// Validate rejects configurations the monitor cannot run with.
func (c Config) Validate() error {
	if c.Monitor.Pair == "" {
		return fmt.Errorf("monitor.pair must be set")
	}
	if c.Monitor.AmountBase <= 0 {
		return fmt.Errorf("monitor.amount_base must be positive, got %v", c.Monitor.AmountBase)
	}
	if c.Monitor.PollInterval <= 0 {
		return fmt.Errorf("monitor.poll_interval must be positive, got %v", c.Monitor.PollInterval)
	}
	for _, leg := range []string{c.Monitor.BuyExchange, c.Monitor.SellExchange} {
		if leg == "" {
			return fmt.Errorf("monitor.buy_exchange and monitor.sell_exchange must be set")
		}
		if _, ok := c.Exchanges[leg]; !ok {
			return fmt.Errorf("exchange %q is not configured under exchanges", leg)
		}
	}
	if c.Monitor.BuyExchange == c.Monitor.SellExchange {
		return fmt.Errorf("buy and sell exchange must differ, both are %q", c.Monitor.BuyExchange)
	}
	for name, ex := range c.Exchanges {
		if ex.TakerFeePercent < 0 {
			return fmt.Errorf("exchange %q has negative taker_fee_percent", name)
		}
	}
	return nil
}

package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// lastPriceIndex is the position of LAST_PRICE in the Bitfinex ticker array.
const lastPriceIndex = 6

// BitfinexClient implements the PriceSource interface for Bitfinex.
type BitfinexClient struct {
	logger     *slog.Logger
	client     *http.Client
	baseURL    string
	feePercent float64
	retryWait  time.Duration
}

// NewBitfinexClient creates a new BitfinexClient with the given taker fee.
func NewBitfinexClient(logger *slog.Logger, feePercent float64) *BitfinexClient {
	return &BitfinexClient{
		logger:     logger,
		client:     &http.Client{Timeout: requestTimeout},
		baseURL:    "https://api-pub.bitfinex.com/v2",
		feePercent: feePercent,
		retryWait:  defaultRetryWait,
	}
}

func (b *BitfinexClient) Name() string { return "Bitfinex" }

func (b *BitfinexClient) FeePercent() float64 { return b.feePercent }

// FetchLastPrice retrieves the last traded price for the pair, trying
// "tBASE:QUOTE" before the compact "tBASEQUOTE" form.
func (b *BitfinexClient) FetchLastPrice(ctx context.Context, pair string) (float64, error) {
	base, quote, err := splitPair(pair)
	if err != nil {
		return 0, &QuoteUnavailableError{Exchange: b.Name(), Pair: pair, LastErr: err}
	}

	symbols := []string{
		fmt.Sprintf("t%s:%s", base, quote),
		fmt.Sprintf("t%s%s", base, quote),
	}
	return fetchWithFallback(ctx, b.logger, b.Name(), NormalizePair(pair), symbols, b.retryWait, b.fetchTicker)
}

// fetchTicker performs a single ticker request for one candidate symbol.
// The ticker response is a flat numeric array with LAST_PRICE at a fixed
// offset; anything else is a failed attempt.
func (b *BitfinexClient) fetchTicker(ctx context.Context, symbol string) (float64, error) {
	url := fmt.Sprintf("%s/ticker/%s", b.baseURL, symbol)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, definitivef("build request: %w", err)
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return 0, transientf("ticker request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, transientf("read ticker body: %w", err)
	}

	switch {
	case resp.StatusCode >= http.StatusInternalServerError:
		return 0, transientf("server error HTTP %s", resp.Status)
	case resp.StatusCode == http.StatusTooManyRequests:
		return 0, transientf("rate limited: HTTP %s", resp.Status)
	case resp.StatusCode != http.StatusOK:
		return 0, definitivef("unknown symbol %s: HTTP %s: %s", symbol, resp.Status, body)
	}

	var ticker []float64
	if err := json.Unmarshal(body, &ticker); err != nil {
		return 0, transientf("parse ticker: %w", err)
	}
	if len(ticker) <= lastPriceIndex {
		return 0, transientf("ticker array too short: %d fields", len(ticker))
	}

	price := ticker[lastPriceIndex]
	if price <= 0 {
		return 0, transientf("non-positive last price %v", price)
	}
	return price, nil
}

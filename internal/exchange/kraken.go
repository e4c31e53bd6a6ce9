package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// KrakenClient implements the PriceSource interface for Kraken.
type KrakenClient struct {
	logger     *slog.Logger
	client     *http.Client
	baseURL    string
	feePercent float64
	retryWait  time.Duration
}

// NewKrakenClient creates a new KrakenClient with the given taker fee.
func NewKrakenClient(logger *slog.Logger, feePercent float64) *KrakenClient {
	return &KrakenClient{
		logger:     logger,
		client:     &http.Client{Timeout: requestTimeout},
		baseURL:    "https://api.kraken.com/0/public",
		feePercent: feePercent,
		retryWait:  defaultRetryWait,
	}
}

func (k *KrakenClient) Name() string { return "Kraken" }

func (k *KrakenClient) FeePercent() float64 { return k.feePercent }

// FetchLastPrice retrieves the last close price for the pair, trying the
// plain "BASEQUOTE" symbol before Kraken's classic "XBASEZQUOTE" form.
func (k *KrakenClient) FetchLastPrice(ctx context.Context, pair string) (float64, error) {
	base, quote, err := splitPair(pair)
	if err != nil {
		return 0, &QuoteUnavailableError{Exchange: k.Name(), Pair: pair, LastErr: err}
	}

	symbols := []string{
		base + quote,
		fmt.Sprintf("X%sZ%s", base, quote),
	}
	return fetchWithFallback(ctx, k.logger, k.Name(), NormalizePair(pair), symbols, k.retryWait, k.fetchTicker)
}

// krakenTickerResponse is the Ticker payload: a non-empty error list means
// the request failed, otherwise result is keyed by the resolved pair symbol
// and "c" holds [last close price, lot volume].
type krakenTickerResponse struct {
	Error  []string `json:"error"`
	Result map[string]struct {
		Close []string `json:"c"`
	} `json:"result"`
}

// fetchTicker performs a single Ticker request for one candidate symbol.
func (k *KrakenClient) fetchTicker(ctx context.Context, symbol string) (float64, error) {
	u := fmt.Sprintf("%s/Ticker?pair=%s", k.baseURL, url.QueryEscape(symbol))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, definitivef("build request: %w", err)
	}

	resp, err := k.client.Do(req)
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

	var payload krakenTickerResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return 0, transientf("parse ticker: %w", err)
	}
	if len(payload.Error) > 0 {
		return 0, definitivef("API error for %s: %v", symbol, payload.Error)
	}

	for resolved, entry := range payload.Result {
		if len(entry.Close) == 0 {
			return 0, transientf("no close price for %s", resolved)
		}
		price, err := strconv.ParseFloat(entry.Close[0], 64)
		if err != nil {
			return 0, transientf("parse close price %q: %w", entry.Close[0], err)
		}
		if price <= 0 {
			return 0, transientf("non-positive last price %v", price)
		}
		return price, nil
	}
	return 0, transientf("empty result for %s", symbol)
}

package exchange

import (
	"context"
	"fmt"
	"strings"
)

// PriceSource defines the standard interface for all exchange price clients.
type PriceSource interface {
	Name() string
	FeePercent() float64
	// FetchLastPrice returns the last traded price for the pair in quote
	// currency, trying the exchange's candidate symbol encodings in order.
	FetchLastPrice(ctx context.Context, pair string) (float64, error)
}

// NormalizePair uppercases a pair string and unifies the separator to "/",
// so "eth-eur" and "ETH/EUR" name the same pair.
func NormalizePair(pair string) string {
	return strings.ToUpper(strings.ReplaceAll(pair, "-", "/"))
}

// splitPair breaks a normalized pair into base and quote currencies.
func splitPair(pair string) (base, quote string, err error) {
	parts := strings.Split(NormalizePair(pair), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("malformed trading pair %q, want BASE/QUOTE", pair)
	}
	return parts[0], parts[1], nil
}

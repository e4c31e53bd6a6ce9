package exchange

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

const (
	attemptsPerSymbol = 3
	requestTimeout    = 10 * time.Second
	defaultRetryWait  = 250 * time.Millisecond
	maxRetryWait      = 2 * time.Second
)

// QuoteUnavailableError reports that every candidate symbol for an exchange
// was exhausted without producing a price. LastErr keeps the final observed
// failure for diagnostics.
type QuoteUnavailableError struct {
	Exchange string
	Pair     string
	LastErr  error
}

func (e *QuoteUnavailableError) Error() string {
	return fmt.Sprintf("%s: no quote for %s, last error: %v", e.Exchange, e.Pair, e.LastErr)
}

func (e *QuoteUnavailableError) Unwrap() error { return e.LastErr }

// fetchError classifies one failed ticker attempt. Transient failures
// (timeouts, 5xx, malformed payloads) are retried against the same symbol;
// definitive ones mean the symbol itself is wrong and the next candidate
// should be tried immediately.
type fetchError struct {
	err       error
	transient bool
}

func (e *fetchError) Error() string { return e.err.Error() }

func (e *fetchError) Unwrap() error { return e.err }

func transientf(format string, args ...any) error {
	return &fetchError{err: fmt.Errorf(format, args...), transient: true}
}

func definitivef(format string, args ...any) error {
	return &fetchError{err: fmt.Errorf(format, args...)}
}

// fetchWithFallback runs the candidate-symbol loop shared by all price
// sources: symbols in declared order, up to attemptsPerSymbol tries per
// symbol on transient failures with a doubling backoff, immediate advance to
// the next candidate on a definitive failure. The first parseable positive
// price wins.
func fetchWithFallback(ctx context.Context, logger *slog.Logger, exchange, pair string,
	symbols []string, retryWait time.Duration, attempt func(ctx context.Context, symbol string) (float64, error)) (float64, error) {

	var lastErr error
	for _, symbol := range symbols {
		wait := retryWait
		for try := 1; try <= attemptsPerSymbol; try++ {
			price, err := attempt(ctx, symbol)
			if err == nil {
				logger.Info("fetched last price",
					"exchange", exchange, "pair", pair, "symbol", symbol, "price", price)
				return price, nil
			}
			lastErr = err

			if ctx.Err() != nil {
				return 0, &QuoteUnavailableError{Exchange: exchange, Pair: pair, LastErr: ctx.Err()}
			}

			fe, ok := err.(*fetchError)
			if !ok || !fe.transient {
				logger.Warn("symbol rejected, trying next candidate",
					"exchange", exchange, "pair", pair, "symbol", symbol, "error", err)
				break
			}

			logger.Warn("fetch attempt failed",
				"exchange", exchange, "pair", pair, "symbol", symbol,
				"attempt", try, "max_attempts", attemptsPerSymbol, "error", err)

			if try < attemptsPerSymbol {
				select {
				case <-ctx.Done():
					return 0, &QuoteUnavailableError{Exchange: exchange, Pair: pair, LastErr: ctx.Err()}
				case <-time.After(wait):
				}
				wait *= 2
				if wait > maxRetryWait {
					wait = maxRetryWait
				}
			}
		}
	}
	return 0, &QuoteUnavailableError{Exchange: exchange, Pair: pair, LastErr: lastErr}
}

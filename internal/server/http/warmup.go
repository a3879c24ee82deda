package httpserver

import (
	"context"
	"log"

	"golang.org/x/sync/errgroup"

	"marketd/internal/exchange"
)

// WarmupTickers pre-populates the ticker cache for the given symbols so the
// first client requests after startup are served warm. Failures are logged
// and skipped; warmup never blocks startup on a bad symbol.
func WarmupTickers(ctx context.Context, client exchange.Client, symbols []string) {
	if len(symbols) == 0 || CacheInstance == nil || DefaultCacheTTL <= 0 {
		return
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, s := range symbols {
		symbol := exchange.NormalizeSymbol(s)
		if symbol == "" {
			continue
		}
		g.Go(func() error {
			if _, err := fetchTickerCached(gctx, client, symbol, log.Printf); err != nil {
				log.Printf("[marketd] warmup %s failed: %v", symbol, err)
			}
			return nil
		})
	}
	_ = g.Wait()
}

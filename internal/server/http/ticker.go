package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/errgroup"

	"marketd/internal/exchange"
)

// TickerResponse is the wire shape for /ticker and /tickers.
type TickerResponse struct {
	Symbol    string         `json:"symbol"`
	Last      float64        `json:"last"`
	Bid       float64        `json:"bid"`
	Ask       float64        `json:"ask"`
	Timestamp int64          `json:"timestamp"` // epoch milliseconds
	Info      map[string]any `json:"info"`
}

func tickerCacheKey(symbol string) string {
	return "ticker:" + symbol
}

// makeTickerHandler serves GET /ticker/{symbol}. Results are cached for
// DefaultCacheTTL; a hit skips the upstream call entirely.
func makeTickerHandler(client exchange.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		logf := reqLogger(c)

		symbol := exchange.NormalizeSymbol(c.Params("*"))
		if symbol == "" {
			return errDetail(c, http.StatusBadRequest, "Symbol is required.")
		}

		resp, err := fetchTickerCached(c.UserContext(), client, symbol, logf)
		if err != nil {
			status, detail := fetchErrorDetail("ticker", symbol, client.Name(), err)
			logf(" ticker %s error: %v", symbol, err)
			return errDetail(c, status, detail)
		}
		return c.JSON(resp)
	}
}

// fetchTickerCached is the cache-aside path shared by the single and batch
// ticker handlers. Only successfully mapped records are stored, so a failed
// fetch never corrupts the cache.
func fetchTickerCached(ctx context.Context, client exchange.Client, symbol string, logf func(format string, args ...any)) (*TickerResponse, error) {
	key := tickerCacheKey(symbol)

	if CacheInstance != nil && DefaultCacheTTL > 0 {
		if data, ok, err := CacheInstance.Get(ctx, key); err == nil && ok {
			var cached TickerResponse
			if err := json.Unmarshal(data, &cached); err == nil {
				logf(" cache hit for key: %s", key)
				return &cached, nil
			}
		}
	}
	logf(" cache miss for key: %s", key)

	t, err := client.FetchTicker(ctx, symbol)
	if err != nil {
		return nil, err
	}

	resp := &TickerResponse{
		Symbol:    t.Symbol,
		Last:      t.Last,
		Bid:       t.Bid,
		Ask:       t.Ask,
		Timestamp: t.Timestamp,
		Info:      t.Info,
	}

	if CacheInstance != nil && DefaultCacheTTL > 0 {
		if data, err := json.Marshal(resp); err == nil {
			_ = CacheInstance.Set(ctx, key, data, DefaultCacheTTL)
		}
	}
	return resp, nil
}

// makeTickersHandler serves GET /tickers?symbols=BTC/USDT,ETH/USDT with one
// concurrent upstream fetch per symbol. Per-symbol failures are tolerated
// and reported under "_error" instead of failing the whole request.
func makeTickersHandler(client exchange.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		logf := reqLogger(c)

		symbols := splitSymbols(c.Query("symbols"))
		if len(symbols) == 0 {
			return errDetail(c, http.StatusBadRequest, "Query parameter symbols is required, e.g. symbols=BTC/USDT,ETH/USDT")
		}

		perSymbol := make(map[string]any, len(symbols))

		var mu sync.Mutex
		g, gctx := errgroup.WithContext(c.UserContext())

		for _, symbol := range symbols {
			symbol := symbol
			g.Go(func() error {
				resp, err := fetchTickerCached(gctx, client, symbol, logf)

				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					logf(" tickers %s error: %v", symbol, err)
					_, detail := fetchErrorDetail("ticker", symbol, client.Name(), err)
					perSymbol[symbol] = fiber.Map{"_error": detail}
					return nil
				}
				perSymbol[symbol] = resp
				return nil
			})
		}

		// per-symbol errors are swallowed above, Wait only propagates ctx errors
		if err := g.Wait(); err != nil {
			return errDetail(c, http.StatusInternalServerError, "An unexpected error occurred: "+err.Error())
		}

		return c.JSON(fiber.Map{"tickers": perSymbol})
	}
}

func splitSymbols(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, p := range parts {
		s := exchange.NormalizeSymbol(p)
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

package exchange

import (
	"context"
	"strings"
)

// Ticker is a snapshot of a trading pair's most recent quotes.
type Ticker struct {
	Symbol    string         `json:"symbol"`
	Last      float64        `json:"last"`
	Bid       float64        `json:"bid"`
	Ask       float64        `json:"ask"`
	Timestamp int64          `json:"timestamp"` // epoch milliseconds
	Info      map[string]any `json:"info"`      // raw exchange payload, kept for debugging
}

// Candle is a single OHLCV bar. Timestamp is the bar open time in epoch ms.
type Candle struct {
	Timestamp int64   `json:"timestamp"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    float64 `json:"volume"`
}

// Client is the connectivity interface handlers depend on.
// There is one shared long-lived instance per process; implementations must
// be safe for concurrent use.
type Client interface {
	// Name returns the exchange id, e.g. "binance".
	Name() string
	// FetchTicker returns the current quotes for a symbol like "BTC/USDT".
	FetchTicker(ctx context.Context, symbol string) (*Ticker, error)
	// FetchOHLCV returns up to limit bars for symbol/timeframe, oldest first,
	// in whatever order the exchange reports them. No dedup or gap filling.
	FetchOHLCV(ctx context.Context, symbol, timeframe string, limit int) ([]Candle, error)
	// Close tears down the underlying connection pool.
	Close() error
}

// NormalizeSymbol brings a free-form symbol to the canonical upper-case
// slash form, e.g. "btc/usdt" -> "BTC/USDT".
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

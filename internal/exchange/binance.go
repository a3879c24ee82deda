package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultBaseURL is Binance's public REST endpoint.
const DefaultBaseURL = "https://api.binance.com"

// Binance error codes we dispatch on.
const (
	binanceCodeInvalidSymbol = -1121
	binanceCodeIllegalChars  = -1100
)

// Binance is a Client backed by the Binance public REST API.
type Binance struct {
	baseURL    string
	httpClient *http.Client
}

// NewBinance builds a Binance client. baseURL may be empty (defaults to the
// public API); timeout <= 0 falls back to 10s.
func NewBinance(baseURL string, timeout time.Duration) *Binance {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Binance{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (b *Binance) Name() string { return "binance" }

// Close releases idle upstream connections.
func (b *Binance) Close() error {
	b.httpClient.CloseIdleConnections()
	return nil
}

// wireSymbol converts the canonical "BTC/USDT" form to Binance's "BTCUSDT".
func wireSymbol(symbol string) string {
	return strings.ReplaceAll(NormalizeSymbol(symbol), "/", "")
}

func (b *Binance) FetchTicker(ctx context.Context, symbol string) (*Ticker, error) {
	symbol = NormalizeSymbol(symbol)

	q := url.Values{}
	q.Set("symbol", wireSymbol(symbol))

	body, err := b.get(ctx, "/api/v3/ticker/24hr", q, symbol)
	if err != nil {
		return nil, err
	}

	var info map[string]any
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, fmt.Errorf("decode ticker payload: %w", err)
	}

	last, err := requireFloat(info, "lastPrice")
	if err != nil {
		return nil, err
	}
	bid, err := requireFloat(info, "bidPrice")
	if err != nil {
		return nil, err
	}
	ask, err := requireFloat(info, "askPrice")
	if err != nil {
		return nil, err
	}
	ts, err := requireInt64(info, "closeTime")
	if err != nil {
		return nil, err
	}

	return &Ticker{
		Symbol:    symbol,
		Last:      last,
		Bid:       bid,
		Ask:       ask,
		Timestamp: ts,
		Info:      info,
	}, nil
}

func (b *Binance) FetchOHLCV(ctx context.Context, symbol, timeframe string, limit int) ([]Candle, error) {
	symbol = NormalizeSymbol(symbol)

	q := url.Values{}
	q.Set("symbol", wireSymbol(symbol))
	q.Set("interval", timeframe) // binance intervals match 1m/5m/15m/1h/4h/1d
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	body, err := b.get(ctx, "/api/v3/klines", q, symbol)
	if err != nil {
		return nil, err
	}

	// kline row: [openTime, "open", "high", "low", "close", "volume", ...]
	var rows [][]any
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode klines payload: %w", err)
	}

	candles := make([]Candle, 0, len(rows))
	for i, row := range rows {
		if len(row) < 6 {
			return nil, fmt.Errorf("kline row %d has %d fields, want at least 6", i, len(row))
		}
		ts, ok := row[0].(float64)
		if !ok {
			return nil, fmt.Errorf("kline row %d: open time is %T, want number", i, row[0])
		}
		var prices [5]float64
		for j := 1; j <= 5; j++ {
			s, ok := row[j].(string)
			if !ok {
				return nil, fmt.Errorf("kline row %d field %d: %T, want string", i, j, row[j])
			}
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fmt.Errorf("kline row %d field %d: %w", i, j, err)
			}
			prices[j-1] = v
		}
		candles = append(candles, Candle{
			Timestamp: int64(ts),
			Open:      prices[0],
			High:      prices[1],
			Low:       prices[2],
			Close:     prices[3],
			Volume:    prices[4],
		})
	}
	return candles, nil
}

// get performs a GET against the Binance REST API and returns the raw body
// on 200, or a classified error otherwise.
func (b *Binance) get(ctx context.Context, path string, q url.Values, symbol string) ([]byte, error) {
	u := b.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return nil, &Error{Exchange: b.Name(), Msg: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Exchange: b.Name(), Msg: fmt.Sprintf("read body: %v", err)}
	}

	if resp.StatusCode == http.StatusOK {
		return body, nil
	}

	var apiErr struct {
		Code int    `json:"code"`
		Msg  string `json:"msg"`
	}
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Msg != "" {
		if apiErr.Code == binanceCodeInvalidSymbol || apiErr.Code == binanceCodeIllegalChars ||
			strings.Contains(strings.ToLower(apiErr.Msg), "invalid symbol") {
			return nil, &BadSymbolError{Exchange: b.Name(), Symbol: symbol}
		}
		return nil, &Error{Exchange: b.Name(), Code: apiErr.Code, Msg: apiErr.Msg}
	}

	return nil, &Error{Exchange: b.Name(), Code: resp.StatusCode, Msg: fmt.Sprintf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))}
}

func requireFloat(info map[string]any, key string) (float64, error) {
	v, ok := info[key]
	if !ok {
		return 0, fmt.Errorf("ticker payload is missing %q", key)
	}
	switch t := v.(type) {
	case string:
		f, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return 0, fmt.Errorf("ticker field %q: %w", key, err)
		}
		return f, nil
	case float64:
		return t, nil
	default:
		return 0, fmt.Errorf("ticker field %q: unexpected type %T", key, v)
	}
}

func requireInt64(info map[string]any, key string) (int64, error) {
	f, err := requireFloat(info, key)
	if err != nil {
		return 0, err
	}
	return int64(f), nil
}

package exchange

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStub(t *testing.T, handler http.HandlerFunc) *Binance {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewBinance(srv.URL, 5*time.Second)
}

func TestBinance_FetchTicker(t *testing.T) {
	b := newStub(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v3/ticker/24hr", r.URL.Path)
		assert.Equal(t, "BTCUSDT", r.URL.Query().Get("symbol"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"symbol": "BTCUSDT",
			"lastPrice": "65000.50",
			"bidPrice": "65000.00",
			"askPrice": "65001.00",
			"closeTime": 1678886400000,
			"priceChangePercent": "1.25"
		}`))
	})

	ticker, err := b.FetchTicker(context.Background(), "btc/usdt")
	require.NoError(t, err)

	assert.Equal(t, "BTC/USDT", ticker.Symbol)
	assert.Equal(t, 65000.50, ticker.Last)
	assert.Equal(t, 65000.00, ticker.Bid)
	assert.Equal(t, 65001.00, ticker.Ask)
	assert.Equal(t, int64(1678886400000), ticker.Timestamp)
	// raw payload survives for debugging
	assert.Equal(t, "1.25", ticker.Info["priceChangePercent"])
}

func TestBinance_FetchTicker_MissingField(t *testing.T) {
	b := newStub(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"symbol": "BTCUSDT", "bidPrice": "1", "askPrice": "2", "closeTime": 1}`))
	})

	_, err := b.FetchTicker(context.Background(), "BTC/USDT")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lastPrice")
	// malformed payloads are unexpected errors, not exchange errors
	assert.False(t, IsExchangeError(err))
	assert.False(t, IsBadSymbol(err))
}

func TestBinance_FetchTicker_BadSymbol(t *testing.T) {
	b := newStub(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"code": -1121, "msg": "Invalid symbol."}`))
	})

	_, err := b.FetchTicker(context.Background(), "XYZ/ABC")
	require.Error(t, err)
	assert.True(t, IsBadSymbol(err))

	var bs *BadSymbolError
	require.ErrorAs(t, err, &bs)
	assert.Equal(t, "XYZ/ABC", bs.Symbol)
}

func TestBinance_FetchTicker_ExchangeError(t *testing.T) {
	b := newStub(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"code": -1003, "msg": "Too many requests."}`))
	})

	_, err := b.FetchTicker(context.Background(), "BTC/USDT")
	require.Error(t, err)
	assert.True(t, IsExchangeError(err))
	assert.False(t, IsBadSymbol(err))
	assert.Contains(t, err.Error(), "Too many requests")
}

func TestBinance_FetchOHLCV(t *testing.T) {
	b := newStub(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v3/klines", r.URL.Path)
		assert.Equal(t, "BTCUSDT", r.URL.Query().Get("symbol"))
		assert.Equal(t, "1h", r.URL.Query().Get("interval"))
		assert.Equal(t, "2", r.URL.Query().Get("limit"))
		w.Write([]byte(`[
			[1678886400000, "60000.0", "60500.0", "59900.0", "60400.0", "10.5", 1678889999999, "0", 0, "0", "0", "0"],
			[1678890000000, "60400.0", "60700.0", "60300.0", "60650.0", "8.2", 1678893599999, "0", 0, "0", "0", "0"]
		]`))
	})

	candles, err := b.FetchOHLCV(context.Background(), "BTC/USDT", "1h", 2)
	require.NoError(t, err)
	require.Len(t, candles, 2)

	// upstream ordering preserved, oldest first
	assert.Equal(t, int64(1678886400000), candles[0].Timestamp)
	assert.Equal(t, 60000.0, candles[0].Open)
	assert.Equal(t, 60500.0, candles[0].High)
	assert.Equal(t, 59900.0, candles[0].Low)
	assert.Equal(t, 60400.0, candles[0].Close)
	assert.Equal(t, 10.5, candles[0].Volume)
	assert.Equal(t, 8.2, candles[1].Volume)
}

func TestBinance_FetchOHLCV_ShortRow(t *testing.T) {
	b := newStub(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[[1678886400000, "1", "2"]]`))
	})

	_, err := b.FetchOHLCV(context.Background(), "BTC/USDT", "1h", 1)
	require.Error(t, err)
	assert.False(t, IsExchangeError(err))
}

func TestBinance_Unreachable(t *testing.T) {
	b := NewBinance("http://127.0.0.1:1", 200*time.Millisecond)

	_, err := b.FetchTicker(context.Background(), "BTC/USDT")
	require.Error(t, err)
	assert.True(t, IsExchangeError(err))
}

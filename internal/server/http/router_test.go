package httpserver

import (
	"net/http"
	"sync/atomic"
	"testing"

	"marketd/internal/exchange"
)

func TestRegisterRoutes_Health(t *testing.T) {
	app := newTestApp(&fakeExchange{})

	resp, body := doGET(t, app, "/health")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status=%d", resp.StatusCode)
	}
	if string(body) != "ok" {
		t.Fatalf("body=%q want ok", body)
	}
}

func TestTicker_MissingSymbol(t *testing.T) {
	fake := &fakeExchange{tickerFn: func(symbol string) (*exchange.Ticker, error) {
		return nil, &exchange.Error{Exchange: "binance", Msg: "must not be reached"}
	}}
	app := newTestApp(fake)

	resp, _ := doGET(t, app, "/ticker/")
	if resp.StatusCode != http.StatusBadRequest && resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status=%d want 400 or 404", resp.StatusCode)
	}
	if atomic.LoadInt32(&fake.tickerCalls) != 0 {
		t.Fatalf("upstream must not be called for an empty symbol")
	}
}

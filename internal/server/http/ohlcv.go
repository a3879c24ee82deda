package httpserver

import (
	"net/http"
	"slices"

	"github.com/gofiber/fiber/v2"

	"marketd/internal/exchange"
)

const (
	defaultOHLCVLimit = 100
	maxOHLCVLimit     = 1000
)

var supportedTimeframes = []string{"1m", "5m", "15m", "1h", "4h", "1d"}

// OHLCVBar is one candlestick interval on the wire.
type OHLCVBar struct {
	Timestamp int64   `json:"timestamp"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    float64 `json:"volume"`
}

// OHLCVResponse is the wire shape for /ohlcv.
type OHLCVResponse struct {
	Symbol    string     `json:"symbol"`
	Timeframe string     `json:"timeframe"`
	Data      []OHLCVBar `json:"data"`
}

// makeOHLCVHandler serves GET /ohlcv/{symbol}?timeframe=1h&limit=100.
// Historical bars are not cached: every valid request reaches the upstream.
// Validation runs before any I/O.
func makeOHLCVHandler(client exchange.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		logf := reqLogger(c)

		symbol := exchange.NormalizeSymbol(c.Params("*"))
		if symbol == "" {
			return errDetail(c, http.StatusBadRequest, "Symbol is required.")
		}

		timeframe := c.Query("timeframe", "1h")
		limit := c.QueryInt("limit", defaultOHLCVLimit)

		if limit > maxOHLCVLimit {
			return errDetail(c, http.StatusBadRequest, "Limit must not exceed 1000 for performance.")
		}
		if limit <= 0 {
			limit = defaultOHLCVLimit
		}
		if !slices.Contains(supportedTimeframes, timeframe) {
			return errDetail(c, http.StatusBadRequest, "Invalid timeframe. Supported: 1m, 5m, 15m, 1h, 4h, 1d.")
		}

		candles, err := client.FetchOHLCV(c.UserContext(), symbol, timeframe, limit)
		if err != nil {
			status, detail := fetchErrorDetail("OHLCV", symbol, client.Name(), err)
			logf(" ohlcv %s %s error: %v", symbol, timeframe, err)
			return errDetail(c, status, detail)
		}

		data := make([]OHLCVBar, 0, len(candles))
		for _, k := range candles {
			data = append(data, OHLCVBar{
				Timestamp: k.Timestamp,
				Open:      k.Open,
				High:      k.High,
				Low:       k.Low,
				Close:     k.Close,
				Volume:    k.Volume,
			})
		}

		return c.JSON(OHLCVResponse{
			Symbol:    symbol,
			Timeframe: timeframe,
			Data:      data,
		})
	}
}

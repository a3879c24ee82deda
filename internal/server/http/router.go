package httpserver

import (
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"

	"marketd/internal/config"
	"marketd/internal/exchange"
)

// RegisterRoutes wires the market-data endpoints.
// Ticker/OHLCV paths use a wildcard because symbols contain a slash
// ("BTC/USDT"), so /ticker/BTC/USDT must match as one parameter.
func RegisterRoutes(app *fiber.App, cfg *config.Config, client exchange.Client) {
	app.Get("/health", func(c *fiber.Ctx) error { return c.SendString("ok") })
	if strings.ToLower(strings.TrimSpace(os.Getenv("APP_ENV"))) == "dev" {
		app.Get("/debug/config", func(c *fiber.Ctx) error { return c.JSON(cfg) })
	}

	app.Get("/tickers", makeTickersHandler(client))
	app.Get("/ticker/*", makeTickerHandler(client))
	app.Get("/ohlcv/*", makeOHLCVHandler(client))
}

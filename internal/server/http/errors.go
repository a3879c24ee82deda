package httpserver

import (
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"marketd/internal/exchange"
)

// errDetail sends an error body in the {"detail": "..."} shape all
// endpoints share.
func errDetail(c *fiber.Ctx, status int, detail string) error {
	return c.Status(status).JSON(fiber.Map{"detail": detail})
}

// fetchErrorDetail classifies an upstream fetch failure into status +
// human-readable detail. op is "ticker" or "OHLCV", symbol is the canonical
// symbol form. Bad-symbol detection is delegated to exchange.IsBadSymbol so
// the message heuristic lives in exactly one place.
func fetchErrorDetail(op, symbol, exchangeName string, err error) (int, string) {
	switch {
	case exchange.IsBadSymbol(err):
		return http.StatusNotFound, fmt.Sprintf("Symbol %s not found on %s", symbol, exchangeName)
	case exchange.IsExchangeError(err):
		return http.StatusInternalServerError, fmt.Sprintf("Exchange error while fetching %s for %s: %v", op, symbol, err)
	default:
		return http.StatusInternalServerError, fmt.Sprintf("An unexpected error occurred: %v", err)
	}
}

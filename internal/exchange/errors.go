package exchange

import (
	"errors"
	"fmt"
	"strings"
)

// Error is an exchange-level failure: the upstream was reachable but
// answered with an error of its own (rate limit, malformed request, ...).
type Error struct {
	Exchange string
	Code     int
	Msg      string
}

func (e *Error) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("%s: %s (code %d)", e.Exchange, e.Msg, e.Code)
	}
	return fmt.Sprintf("%s: %s", e.Exchange, e.Msg)
}

// BadSymbolError means the exchange does not know the requested symbol.
type BadSymbolError struct {
	Exchange string
	Symbol   string
}

func (e *BadSymbolError) Error() string {
	return fmt.Sprintf("symbol %s is not supported by %s", e.Symbol, e.Exchange)
}

// IsBadSymbol reports whether err means the symbol is unknown upstream.
// Typed errors are preferred; the message heuristic below is the single
// fallback for untyped upstream errors, so wording drift has one place to
// break and one place to fix.
func IsBadSymbol(err error) bool {
	var bs *BadSymbolError
	if errors.As(err, &bs) {
		return true
	}
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "not supported") || strings.Contains(msg, "does not exist")
}

// IsExchangeError reports whether err is an exchange-level error (as
// opposed to transport failures or malformed payloads).
func IsExchangeError(err error) bool {
	var ee *Error
	return errors.As(err, &ee)
}

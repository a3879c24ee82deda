package exchange

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsBadSymbol(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"typed bad symbol", &BadSymbolError{Exchange: "binance", Symbol: "XYZ/ABC"}, true},
		{"wrapped typed", fmt.Errorf("fetch: %w", &BadSymbolError{Exchange: "binance", Symbol: "A/B"}), true},
		{"message: not supported", errors.New("The symbol XYZ is Not Supported here"), true},
		{"message: does not exist", errors.New("market does not exist"), true},
		{"exchange error", &Error{Exchange: "binance", Code: -1003, Msg: "Too many requests"}, false},
		{"unrelated", errors.New("connection reset"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsBadSymbol(tt.err))
		})
	}
}

func TestNormalizeSymbol(t *testing.T) {
	assert.Equal(t, "BTC/USDT", NormalizeSymbol(" btc/usdt "))
	assert.Equal(t, "ETH/USDT", NormalizeSymbol("ETH/USDT"))
	assert.Equal(t, "", NormalizeSymbol("   "))
}

func TestErrorStrings(t *testing.T) {
	e := &Error{Exchange: "binance", Code: -1003, Msg: "Too many requests"}
	assert.Equal(t, "binance: Too many requests (code -1003)", e.Error())

	bs := &BadSymbolError{Exchange: "binance", Symbol: "XYZ/ABC"}
	assert.Equal(t, "symbol XYZ/ABC is not supported by binance", bs.Error())
}

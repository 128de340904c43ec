package quotes

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/simaogato/walletflow-backend/internal/usecase/marketdata"
)

// CoinbaseBaseURL is the public Coinbase API root
const CoinbaseBaseURL = "https://api.coinbase.com/v2"

var errNoGoldRate = errors.New("coinbase: no XAU rate")

// CoinbaseGold prices gold from the Coinbase USD exchange rates
type CoinbaseGold struct {
	BaseURL string
	Client  *http.Client
	Now     func() time.Time
}

// NewCoinbaseGold creates a gold provider against baseURL, or CoinbaseBaseURL when empty
func NewCoinbaseGold(baseURL string, client *http.Client) *CoinbaseGold {
	if baseURL == "" {
		baseURL = CoinbaseBaseURL
	}
	return &CoinbaseGold{BaseURL: baseURL, Client: clientOrDefault(client), Now: time.Now}
}

// GoldQuote implements marketdata.GoldProvider.
// Coinbase quotes XAU per USD, so the price per troy ounce is its inverse.
// It carries no 24h change.
func (c *CoinbaseGold) GoldQuote(ctx context.Context) (*marketdata.Quote, error) {
	var body struct {
		Data struct {
			Rates map[string]decimal.Decimal `json:"rates"`
		} `json:"data"`
	}
	endpoint := strings.TrimRight(c.BaseURL, "/") + "/exchange-rates?currency=USD"
	if err := getJSON(ctx, c.Client, endpoint, &body); err != nil {
		return nil, err
	}

	xauPerUSD, ok := body.Data.Rates["XAU"]
	if !ok || !xauPerUSD.IsPositive() {
		return nil, errNoGoldRate
	}
	return &marketdata.Quote{
		Symbol:    "GOLD",
		Price:     decimal.NewFromInt(1).DivRound(xauPerUSD, 8),
		Change24h: decimal.Zero,
		Timestamp: c.Now().UTC(),
	}, nil
}

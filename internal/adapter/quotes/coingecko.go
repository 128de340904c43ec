package quotes

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/simaogato/walletflow-backend/internal/usecase/marketdata"
)

// CoinGeckoBaseURL is the public CoinGecko API root
const CoinGeckoBaseURL = "https://api.coingecko.com/api/v3"

var errNoCoin = errors.New("coingecko: coin not in response")

// coinIDs maps tickers to CoinGecko coin ids; unknown tickers are looked up lowercased
var coinIDs = map[string]string{
	"BTC":  "bitcoin",
	"ETH":  "ethereum",
	"BNB":  "binancecoin",
	"SOL":  "solana",
	"ADA":  "cardano",
	"XRP":  "ripple",
	"DOGE": "dogecoin",
}

// CoinGecko prices cryptocurrencies in USD
type CoinGecko struct {
	BaseURL string
	Client  *http.Client
	Now     func() time.Time
}

// NewCoinGecko creates a CoinGecko provider against baseURL, or CoinGeckoBaseURL when empty
func NewCoinGecko(baseURL string, client *http.Client) *CoinGecko {
	if baseURL == "" {
		baseURL = CoinGeckoBaseURL
	}
	return &CoinGecko{BaseURL: baseURL, Client: clientOrDefault(client), Now: time.Now}
}

// CryptoQuote implements marketdata.CryptoProvider
func (c *CoinGecko) CryptoQuote(ctx context.Context, symbol string) (*marketdata.Quote, error) {
	symbol = strings.ToUpper(symbol)
	coinID, ok := coinIDs[symbol]
	if !ok {
		coinID = strings.ToLower(symbol)
	}

	endpoint := fmt.Sprintf("%s/simple/price?ids=%s&vs_currencies=usd&include_24hr_change=true",
		strings.TrimRight(c.BaseURL, "/"), url.QueryEscape(coinID))

	var prices map[string]struct {
		USD       decimal.Decimal `json:"usd"`
		Change24h decimal.Decimal `json:"usd_24h_change"`
	}
	if err := getJSON(ctx, c.Client, endpoint, &prices); err != nil {
		return nil, err
	}

	price, ok := prices[coinID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", errNoCoin, coinID)
	}
	return &marketdata.Quote{
		Symbol:    symbol,
		Price:     price.USD,
		Change24h: price.Change24h,
		Timestamp: c.Now().UTC(),
	}, nil
}

package quotes

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/simaogato/walletflow-backend/internal/usecase/marketdata"
)

// YahooBaseURL is the Yahoo Finance query host
const YahooBaseURL = "https://query1.finance.yahoo.com"

var errYahooNoResult = errors.New("yahoo: no result")

// yahooSymbols maps index shorthands to Yahoo tickers
var yahooSymbols = map[string]string{
	"GSPC":     "^GSPC",
	"DJI":      "^DJI",
	"IXIC":     "^IXIC",
	"DX-Y.NYB": "DX-Y.NYB",
}

var hundred = decimal.NewFromInt(100)

// Yahoo prices stocks, indices and futures from the v8 chart API
type Yahoo struct {
	BaseURL string
	Client  *http.Client
	Now     func() time.Time
}

// NewYahoo creates a Yahoo provider against baseURL, or YahooBaseURL when empty
func NewYahoo(baseURL string, client *http.Client) *Yahoo {
	if baseURL == "" {
		baseURL = YahooBaseURL
	}
	return &Yahoo{BaseURL: baseURL, Client: clientOrDefault(client), Now: time.Now}
}

// StockQuote implements marketdata.StockProvider.
// Change24h is the percent change from the previous close.
func (y *Yahoo) StockQuote(ctx context.Context, symbol string) (*marketdata.Quote, error) {
	ticker, ok := yahooSymbols[strings.ToUpper(symbol)]
	if !ok {
		ticker = symbol
	}

	endpoint := strings.TrimRight(y.BaseURL, "/") + "/v8/finance/chart/" + url.PathEscape(ticker)

	var raw struct {
		Chart struct {
			Result []struct {
				Meta struct {
					RegularMarketPrice decimal.NullDecimal `json:"regularMarketPrice"`
					PreviousClose      decimal.NullDecimal `json:"previousClose"`
				} `json:"meta"`
			} `json:"result"`
		} `json:"chart"`
	}
	if err := getJSON(ctx, y.Client, endpoint, &raw); err != nil {
		return nil, err
	}
	if len(raw.Chart.Result) == 0 {
		return nil, errYahooNoResult
	}

	meta := raw.Chart.Result[0].Meta
	price := meta.RegularMarketPrice
	if !price.Valid || price.Decimal.IsZero() {
		price = meta.PreviousClose
	}
	if !price.Valid || !price.Decimal.IsPositive() {
		return nil, errYahooNoResult
	}
	previous := price.Decimal
	if meta.PreviousClose.Valid {
		previous = meta.PreviousClose.Decimal
	}

	change := decimal.Zero
	if previous.IsPositive() {
		change = price.Decimal.Sub(previous).Div(previous).Mul(hundred).Round(4)
	}

	return &marketdata.Quote{
		Symbol:    strings.ReplaceAll(strings.ToUpper(symbol), "^", ""),
		Price:     price.Decimal,
		Change24h: change,
		Timestamp: y.Now().UTC(),
	}, nil
}

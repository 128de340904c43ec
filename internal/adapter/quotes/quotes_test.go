package quotes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = func() time.Time { return time.Date(2025, 8, 1, 10, 0, 0, 0, time.UTC) }

func serve(t *testing.T, wantPath, body string, status int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, wantPath, r.URL.RequestURI())
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestCoinGecko_CryptoQuote(t *testing.T) {
	srv := serve(t,
		"/simple/price?ids=binancecoin&vs_currencies=usd&include_24hr_change=true",
		`{"binancecoin":{"usd":581.37,"usd_24h_change":-1.254}}`,
		http.StatusOK)

	provider := NewCoinGecko(srv.URL, srv.Client())
	provider.Now = fixedNow

	quote, err := provider.CryptoQuote(context.Background(), "bnb")

	require.NoError(t, err)
	assert.Equal(t, "BNB", quote.Symbol)
	assert.True(t, decimal.RequireFromString("581.37").Equal(quote.Price))
	assert.True(t, decimal.RequireFromString("-1.254").Equal(quote.Change24h))
	assert.Equal(t, fixedNow(), quote.Timestamp)
}

func TestCoinGecko_UnknownTickerUsesLowercaseID(t *testing.T) {
	srv := serve(t,
		"/simple/price?ids=pepe&vs_currencies=usd&include_24hr_change=true",
		`{}`,
		http.StatusOK)

	_, err := NewCoinGecko(srv.URL, srv.Client()).CryptoQuote(context.Background(), "PEPE")

	assert.ErrorIs(t, err, errNoCoin)
}

func TestCoinbaseGold_InvertsRate(t *testing.T) {
	srv := serve(t,
		"/exchange-rates?currency=USD",
		`{"data":{"currency":"USD","rates":{"EUR":"0.92","XAU":"0.0004"}}}`,
		http.StatusOK)

	quote, err := NewCoinbaseGold(srv.URL, srv.Client()).GoldQuote(context.Background())

	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(2500).Equal(quote.Price))
	assert.True(t, quote.Change24h.IsZero())
}

func TestCoinbaseGold_MissingRate(t *testing.T) {
	srv := serve(t, "/exchange-rates?currency=USD", `{"data":{"rates":{"EUR":"0.92"}}}`, http.StatusOK)

	_, err := NewCoinbaseGold(srv.URL, srv.Client()).GoldQuote(context.Background())

	assert.ErrorIs(t, err, errNoGoldRate)
}

func TestYahoo_StockQuote(t *testing.T) {
	tests := []struct {
		name       string
		symbol     string
		wantPath   string
		body       string
		wantSymbol string
		wantPrice  string
		wantChange string
	}{
		{
			name:       "index shorthand is mapped",
			symbol:     "GSPC",
			wantPath:   "/v8/finance/chart/%5EGSPC",
			body:       `{"chart":{"result":[{"meta":{"regularMarketPrice":5500,"previousClose":5000}}]}}`,
			wantSymbol: "GSPC",
			wantPrice:  "5500",
			wantChange: "10",
		},
		{
			name:       "missing previous close means no change",
			symbol:     "AAPL",
			wantPath:   "/v8/finance/chart/AAPL",
			body:       `{"chart":{"result":[{"meta":{"regularMarketPrice":210.5}}]}}`,
			wantSymbol: "AAPL",
			wantPrice:  "210.5",
			wantChange: "0",
		},
		{
			name:       "falls back to previous close",
			symbol:     "GC=F",
			wantPath:   "/v8/finance/chart/GC=F",
			body:       `{"chart":{"result":[{"meta":{"regularMarketPrice":null,"previousClose":2400.1}}]}}`,
			wantSymbol: "GC=F",
			wantPrice:  "2400.1",
			wantChange: "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := serve(t, tt.wantPath, tt.body, http.StatusOK)

			quote, err := NewYahoo(srv.URL, srv.Client()).StockQuote(context.Background(), tt.symbol)

			require.NoError(t, err)
			assert.Equal(t, tt.wantSymbol, quote.Symbol)
			assert.True(t, decimal.RequireFromString(tt.wantPrice).Equal(quote.Price), "price = %s", quote.Price)
			assert.True(t, decimal.RequireFromString(tt.wantChange).Equal(quote.Change24h), "change = %s", quote.Change24h)
		})
	}
}

func TestYahoo_EmptyResult(t *testing.T) {
	srv := serve(t, "/v8/finance/chart/ZZZZ", `{"chart":{"result":[]}}`, http.StatusOK)

	_, err := NewYahoo(srv.URL, srv.Client()).StockQuote(context.Background(), "ZZZZ")

	assert.ErrorIs(t, err, errYahooNoResult)
}

func TestYahoo_HTTPError(t *testing.T) {
	srv := serve(t, "/v8/finance/chart/AAPL", `rate limited`, http.StatusTooManyRequests)

	_, err := NewYahoo(srv.URL, srv.Client()).StockQuote(context.Background(), "AAPL")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "http 429")
}

func TestProviders_EmptyBaseURLSelectsPublicEndpoint(t *testing.T) {
	assert.Equal(t, CoinGeckoBaseURL, NewCoinGecko("", nil).BaseURL)
	assert.Equal(t, CoinbaseBaseURL, NewCoinbaseGold("", nil).BaseURL)
	assert.Equal(t, YahooBaseURL, NewYahoo("", nil).BaseURL)
	assert.Equal(t, "http://127.0.0.1:9000", NewYahoo("http://127.0.0.1:9000", nil).BaseURL)
}

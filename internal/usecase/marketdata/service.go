package marketdata

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

var (
	// ErrQuoteNotFound is returned when no provider could price the requested symbol
	ErrQuoteNotFound = errors.New("quote not found")

	// ErrSourceUnavailable is returned when every source for a quote failed
	ErrSourceUnavailable = errors.New("market data source unavailable")
)

// Quote is the latest price of a symbol. Quotes are informational and never feed the ledger.
type Quote struct {
	Symbol    string
	Price     decimal.Decimal
	Change24h decimal.Decimal // percent
	Timestamp time.Time
}

// CryptoProvider prices cryptocurrencies by ticker (BTC, ETH...)
type CryptoProvider interface {
	CryptoQuote(ctx context.Context, symbol string) (*Quote, error)
}

// StockProvider prices stocks, indices and futures by ticker
type StockProvider interface {
	StockQuote(ctx context.Context, symbol string) (*Quote, error)
}

// GoldProvider prices one troy ounce of gold in USD
type GoldProvider interface {
	GoldQuote(ctx context.Context) (*Quote, error)
}

// Kind selects the provider used for a quote
type Kind string

const (
	KindCrypto Kind = "crypto"
	KindStock  Kind = "stock"
	KindGold   Kind = "gold"
)

// goldFuturesSymbol is the stock-provider fallback for the gold price
const goldFuturesSymbol = "GC=F"

// plausible gold price range per troy ounce; anything outside is treated as a bad feed
var (
	minGoldPrice = decimal.NewFromInt(1000)
	maxGoldPrice = decimal.NewFromInt(10000)
)

// summaryEntries lists what GetSummary fetches, by summary key
var summaryEntries = []struct {
	key    string
	kind   Kind
	symbol string
}{
	{"bitcoin", KindCrypto, "BTC"},
	{"ethereum", KindCrypto, "ETH"},
	{"bnb", KindCrypto, "BNB"},
	{"gold", KindGold, ""},
	{"sp500", KindStock, "GSPC"},
	{"dollar_index", KindStock, "DX-Y.NYB"},
	{"dow_jones", KindStock, "DJI"},
	{"nasdaq", KindStock, "IXIC"},
}

// Summary holds the key market indicators. A nil quote means its source failed.
type Summary struct {
	Quotes    map[string]*Quote
	Timestamp time.Time
}

// Config tunes the market data service
type Config struct {
	Timeout   time.Duration // per outbound call
	CacheTTL  time.Duration
	RateLimit rate.Limit // outbound calls per second
	RateBurst int
}

// MarketDataService fetches quotes with caching, outbound rate limiting and per-call timeouts
type MarketDataService struct {
	Crypto CryptoProvider
	Stock  StockProvider
	Gold   GoldProvider
	Logger logrus.FieldLogger
	Now    func() time.Time

	timeout time.Duration
	cache   *cache.Cache
	limiter *rate.Limiter
}

// NewMarketDataService creates a new MarketDataService instance
func NewMarketDataService(
	crypto CryptoProvider,
	stock StockProvider,
	gold GoldProvider,
	cfg Config,
	logger logrus.FieldLogger,
) *MarketDataService {
	return &MarketDataService{
		Crypto:  crypto,
		Stock:   stock,
		Gold:    gold,
		Logger:  logger,
		Now:     time.Now,
		timeout: cfg.Timeout,
		cache:   cache.New(cfg.CacheTTL, 2*cfg.CacheTTL),
		limiter: rate.NewLimiter(cfg.RateLimit, cfg.RateBurst),
	}
}

// GetQuote returns the latest quote for symbol from the provider selected by kind.
// The symbol is ignored for gold.
func (s *MarketDataService) GetQuote(ctx context.Context, kind Kind, symbol string) (*Quote, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	key := string(kind) + ":" + symbol
	if cached, ok := s.cache.Get(key); ok {
		return cached.(*Quote), nil
	}

	var (
		quote *Quote
		err   error
	)
	switch kind {
	case KindCrypto:
		quote, err = s.fetch(ctx, func(ctx context.Context) (*Quote, error) { return s.Crypto.CryptoQuote(ctx, symbol) })
		if err != nil {
			err = fmt.Errorf("%w: crypto %s: %v", ErrQuoteNotFound, symbol, err)
		}
	case KindStock:
		quote, err = s.fetch(ctx, func(ctx context.Context) (*Quote, error) { return s.Stock.StockQuote(ctx, symbol) })
		if err != nil {
			err = fmt.Errorf("%w: stock %s: %v", ErrQuoteNotFound, symbol, err)
		}
	case KindGold:
		quote, err = s.goldQuote(ctx)
	default:
		return nil, fmt.Errorf("%w: unknown quote kind %q", ErrQuoteNotFound, kind)
	}
	if err != nil {
		s.Logger.WithError(err).WithField("kind", kind).Warn("quote unavailable")
		return nil, err
	}

	s.cache.SetDefault(key, quote)
	return quote, nil
}

// GetSummary fetches every key indicator in parallel. A failing source leaves its entry nil
// without affecting the others; an error is returned only when ctx is done.
func (s *MarketDataService) GetSummary(ctx context.Context) (*Summary, error) {
	quotes := make([]*Quote, len(summaryEntries))

	g, gctx := errgroup.WithContext(ctx)
	for i, entry := range summaryEntries {
		g.Go(func() error {
			quote, err := s.GetQuote(gctx, entry.kind, entry.symbol)
			if err == nil {
				quotes[i] = quote
			}
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	summary := &Summary{
		Quotes:    make(map[string]*Quote, len(summaryEntries)),
		Timestamp: s.Now().UTC(),
	}
	for i, entry := range summaryEntries {
		summary.Quotes[entry.key] = quotes[i]
	}
	return summary, nil
}

// goldQuote prices gold from the gold provider, falling back to gold futures on the stock
// provider. Prices outside the plausible range are discarded.
func (s *MarketDataService) goldQuote(ctx context.Context) (*Quote, error) {
	quote, err := s.fetch(ctx, s.Gold.GoldQuote)
	if err == nil && plausibleGold(quote.Price) {
		return goldResult(quote), nil
	}
	s.Logger.WithError(err).Debug("primary gold source failed, trying futures")

	quote, err = s.fetch(ctx, func(ctx context.Context) (*Quote, error) {
		return s.Stock.StockQuote(ctx, goldFuturesSymbol)
	})
	if err == nil && plausibleGold(quote.Price) {
		return goldResult(quote), nil
	}
	if err == nil {
		err = fmt.Errorf("implausible gold price %s", quote.Price)
	}
	return nil, fmt.Errorf("%w: gold: %v", ErrSourceUnavailable, err)
}

func plausibleGold(price decimal.Decimal) bool {
	return price.GreaterThan(minGoldPrice) && price.LessThan(maxGoldPrice)
}

func goldResult(q *Quote) *Quote {
	return &Quote{
		Symbol:    "GOLD",
		Price:     q.Price.Round(2),
		Change24h: q.Change24h,
		Timestamp: q.Timestamp,
	}
}

// fetch waits for the outbound limiter and calls fn under the per-call timeout
func (s *MarketDataService) fetch(ctx context.Context, fn func(ctx context.Context) (*Quote, error)) (*Quote, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	return fn(ctx)
}

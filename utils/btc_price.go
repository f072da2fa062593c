package utils

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sovtrack/sovtrack/config"
)

// ErrPriceUnavailable is returned when every price source and the last-known
// cached value have been exhausted.
var ErrPriceUnavailable = errors.New("btc price unavailable from all sources")

const priceCacheKey = "btcprice:usd"

// PriceOracle fetches the current BTC/USD price with a fallback chain:
// primary source -> secondary source -> last-known cached value -> error.
// Successful fetches are cached in Redis and in memory for the configured TTL.
//
// Constructed once at startup and passed to call sites; there is no lazily
// initialized package-level instance.
type PriceOracle struct {
	primaryURL   string
	secondaryURL string
	ttl          time.Duration
	client       *http.Client

	mu        sync.RWMutex
	lastPrice decimal.Decimal
	lastAt    time.Time
}

// NewPriceOracle builds a PriceOracle from application configuration.
func NewPriceOracle(cfg config.AppConfig) *PriceOracle {
	return &PriceOracle{
		primaryURL:   cfg.PricePrimaryURL,
		secondaryURL: cfg.PriceSecondaryURL,
		ttl:          time.Duration(cfg.PriceCacheTTLSec) * time.Second,
		client:       &http.Client{Timeout: 5 * time.Second},
	}
}

// CurrentPrice returns the BTC/USD price, serving from cache when fresh.
func (o *PriceOracle) CurrentPrice(ctx context.Context) (decimal.Decimal, error) {
	// Fresh in-memory value first.
	o.mu.RLock()
	if !o.lastAt.IsZero() && time.Since(o.lastAt) < o.ttl {
		p := o.lastPrice
		o.mu.RUnlock()
		return p, nil
	}
	o.mu.RUnlock()

	// Redis tier (shared across instances).
	if b, ok := CacheGetBytes(priceCacheKey); ok {
		if p, err := decimal.NewFromString(string(b)); err == nil {
			o.remember(p)
			return p, nil
		}
	}

	if p, err := o.fetchPrimary(ctx); err == nil {
		o.store(p)
		return p, nil
	} else if Sugar != nil {
		Sugar.Warnf("primary btc price source failed: %v", err)
	}

	if p, err := o.fetchSecondary(ctx); err == nil {
		o.store(p)
		return p, nil
	} else if Sugar != nil {
		Sugar.Warnf("secondary btc price source failed: %v", err)
	}

	// Stale last-known value beats a hard failure.
	o.mu.RLock()
	defer o.mu.RUnlock()
	if !o.lastAt.IsZero() {
		return o.lastPrice, nil
	}
	return decimal.Zero, ErrPriceUnavailable
}

func (o *PriceOracle) store(p decimal.Decimal) {
	o.remember(p)
	CacheSetBytes(priceCacheKey, []byte(p.String()), o.ttl)
}

func (o *PriceOracle) remember(p decimal.Decimal) {
	o.mu.Lock()
	o.lastPrice = p
	o.lastAt = time.Now()
	o.mu.Unlock()
}

func (o *PriceOracle) fetchPrimary(ctx context.Context) (decimal.Decimal, error) {
	body, err := o.get(ctx, o.primaryURL)
	if err != nil {
		return decimal.Zero, err
	}
	return ParseCoingeckoPrice(body)
}

func (o *PriceOracle) fetchSecondary(ctx context.Context) (decimal.Decimal, error) {
	body, err := o.get(ctx, o.secondaryURL)
	if err != nil {
		return decimal.Zero, err
	}
	return ParseCoinbasePrice(body)
}

func (o *PriceOracle) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "SovTrack/1.0 (+https://github.com/sovtrack/sovtrack)")
	resp, err := o.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("price api status %d", resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, 1<<20))
}

// ParseCoingeckoPrice extracts USD from a CoinGecko simple-price payload:
// {"bitcoin":{"usd":64250.12}}
func ParseCoingeckoPrice(body []byte) (decimal.Decimal, error) {
	var payload map[string]map[string]json.Number
	if err := json.Unmarshal(body, &payload); err != nil {
		return decimal.Zero, err
	}
	usd, ok := payload["bitcoin"]["usd"]
	if !ok {
		return decimal.Zero, errors.New("bitcoin.usd missing in payload")
	}
	p, err := decimal.NewFromString(usd.String())
	if err != nil {
		return decimal.Zero, err
	}
	if !p.IsPositive() {
		return decimal.Zero, errors.New("non-positive price")
	}
	return p, nil
}

// ParseCoinbasePrice extracts USD from a Coinbase spot-price payload:
// {"data":{"base":"BTC","currency":"USD","amount":"64250.12"}}
func ParseCoinbasePrice(body []byte) (decimal.Decimal, error) {
	var payload struct {
		Data struct {
			Amount string `json:"amount"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return decimal.Zero, err
	}
	if payload.Data.Amount == "" {
		return decimal.Zero, errors.New("data.amount missing in payload")
	}
	p, err := decimal.NewFromString(payload.Data.Amount)
	if err != nil {
		return decimal.Zero, err
	}
	if !p.IsPositive() {
		return decimal.Zero, errors.New("non-positive price")
	}
	return p, nil
}

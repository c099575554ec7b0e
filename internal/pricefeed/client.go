package pricefeed

import (
	"context"
	"fmt"
	"time"

	"btc-tracker-go/internal/config"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Quote is one price observation from the feed.
type Quote struct {
	Price     float64 // asset price in the quote currency
	Change24h float64 // percent change over the preceding 24h
}

// ClientInterface defines the interface for the price feed client.
type ClientInterface interface {
	CurrentPrice(ctx context.Context) (*Quote, error)
}

// Client fetches spot prices from the CoinGecko simple/price endpoint.
// It implements the ClientInterface.
type Client struct {
	client     *resty.Client
	assetID    string
	vsCurrency string
	logger     *zap.Logger
	limiter    *rate.Limiter
}

// ensure Client implements the interface
var _ ClientInterface = (*Client)(nil)

// NewClient creates a new price feed client.
func NewClient(cfg *config.PriceFeed, logger *zap.Logger) *Client {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(time.Duration(cfg.TimeoutSeconds) * time.Second)

	if cfg.ApiKey != "" {
		client.SetHeader("x-cg-demo-api-key", cfg.ApiKey)
	}

	limiter := rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateLimitBurst)

	return &Client{
		client:     client,
		assetID:    cfg.AssetID,
		vsCurrency: cfg.VsCurrency,
		logger:     logger,
		limiter:    limiter,
	}
}

// CurrentPrice fetches the current price and 24h change for the configured
// asset. Non-2xx responses and malformed payloads surface as errors.
func (c *Client) CurrentPrice(ctx context.Context) (*Quote, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait failed: %w", err)
	}

	// Response shape: {"bitcoin": {"usd": 60000.1, "usd_24h_change": -1.23}}
	var result map[string]map[string]float64

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"ids":                 c.assetID,
			"vs_currencies":       c.vsCurrency,
			"include_24hr_change": "true",
		}).
		SetResult(&result).
		Get("/simple/price")

	if err != nil {
		c.logger.Error("Price feed request failed", zap.Error(err))
		return nil, fmt.Errorf("price feed request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("price feed returned status %s: %s", resp.Status(), resp.String())
	}

	asset, ok := result[c.assetID]
	if !ok {
		return nil, fmt.Errorf("price feed response missing asset %q", c.assetID)
	}
	price, ok := asset[c.vsCurrency]
	if !ok || price <= 0 {
		return nil, fmt.Errorf("price feed response missing a valid %q price for %q", c.vsCurrency, c.assetID)
	}
	change, ok := asset[c.vsCurrency+"_24h_change"]
	if !ok {
		// A payload without the change field is malformed, not a flat market.
		return nil, fmt.Errorf("price feed response missing %q 24h change for %q", c.vsCurrency, c.assetID)
	}

	c.logger.Debug("Fetched price quote",
		zap.String("asset", c.assetID),
		zap.Float64("price", price),
		zap.Float64("change_24h", change),
	)

	return &Quote{Price: price, Change24h: change}, nil
}

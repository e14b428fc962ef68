// Package quotes fetches asset prices from an XML quote feed.
package quotes

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
)

// Client reads the daily quote feed and exposes prices by symbol.
type Client struct {
	url    string
	client *http.Client
}

func NewClient(url string) *Client {
	return &Client{
		url: url,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// FetchPrices downloads the feed and returns the latest price per symbol.
// Symbols are uppercased; entries with missing or malformed prices are
// skipped.
func (c *Client) FetchPrices(ctx context.Context) (map[string]decimal.Decimal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/xml")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request quote feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	prices, err := parseQuoteFeed(body)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "Fetched quote feed", "url", c.url, "symbols", len(prices))
	return prices, nil
}

func parseQuoteFeed(rawBody []byte) (map[string]decimal.Decimal, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(rawBody); err != nil {
		return nil, fmt.Errorf("parse XML: %w", err)
	}

	quoteElements := doc.FindElements("//quotes/quote")
	if len(quoteElements) == 0 {
		return nil, fmt.Errorf("no quote data found in XML")
	}

	prices := make(map[string]decimal.Decimal, len(quoteElements))
	for _, el := range quoteElements {
		symbol := strings.ToUpper(strings.TrimSpace(el.SelectAttrValue("symbol", "")))
		if symbol == "" {
			continue
		}
		priceElement := el.FindElement("./price")
		if priceElement == nil {
			continue
		}
		price, err := decimal.NewFromString(strings.TrimSpace(priceElement.Text()))
		if err != nil || price.IsNegative() {
			continue
		}
		// Feed may repeat a symbol; last entry wins.
		prices[symbol] = price
	}
	if len(prices) == 0 {
		return nil, fmt.Errorf("no usable quotes in feed")
	}
	return prices, nil
}

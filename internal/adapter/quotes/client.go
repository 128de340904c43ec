// Package quotes implements market data providers over the public CoinGecko, Coinbase and
// Yahoo Finance HTTP APIs.
package quotes

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const userAgent = "Mozilla/5.0 (compatible; walletflow/1.0)"

// DefaultHTTPClient is shared by providers created without a client.
// Per-call deadlines come from the request context.
var DefaultHTTPClient = &http.Client{Timeout: 15 * time.Second}

// getJSON issues a GET to url and decodes a 200 response body into out
func getJSON(ctx context.Context, client *http.Client, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: http %d", url, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", url, err)
	}
	return nil
}

func clientOrDefault(client *http.Client) *http.Client {
	if client == nil {
		return DefaultHTTPClient
	}
	return client
}

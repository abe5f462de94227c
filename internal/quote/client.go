package quote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
)

const DefaultBaseURL = "https://query1.finance.yahoo.com"

// Client fetches spot prices from the Yahoo Finance chart endpoint.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

func NewClient(httpClient *http.Client, baseURL string) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				RegularMarketPrice decimal.Decimal `json:"regularMarketPrice"`
			} `json:"meta"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func (c *Client) GetPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	if c == nil {
		return decimal.Zero, fmt.Errorf("quote client is nil")
	}
	sym := strings.TrimSpace(symbol)
	if sym == "" {
		return decimal.Zero, ErrNoQuote
	}

	path := fmt.Sprintf("%s/v8/finance/chart/%s?range=1d&interval=1d", c.baseURL, url.PathEscape(sym))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, path, nil)
	if err != nil {
		return decimal.Zero, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return decimal.Zero, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return decimal.Zero, err
	}
	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("quote request for %s: status %d", sym, resp.StatusCode)
	}

	var parsed chartResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return decimal.Zero, err
	}
	if parsed.Chart.Error != nil {
		return decimal.Zero, fmt.Errorf("quote request for %s: %s", sym, parsed.Chart.Error.Code)
	}
	if len(parsed.Chart.Result) == 0 {
		return decimal.Zero, ErrNoQuote
	}

	price := parsed.Chart.Result[0].Meta.RegularMarketPrice
	if price.IsZero() {
		return decimal.Zero, ErrNoQuote
	}
	return price, nil
}

package quotes

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FallbackSuffix is the alternate-exchange suffix tried when a plain
// symbol (no dot) resolves to nothing on the primary lookup.
const FallbackSuffix = ".DE"

// YahooGateway fetches daily price history from the Yahoo Finance chart API
type YahooGateway struct {
	baseURL    string
	httpClient *http.Client
}

// NewYahooGateway creates a gateway against the given base URL
// (e.g. https://query1.finance.yahoo.com)
func NewYahooGateway(baseURL string) *YahooGateway {
	return &YahooGateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// chartResponse represents the Yahoo chart API response structure
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// History returns up to days of daily closes for symbol, oldest first.
// Any provider or transport failure is logged and reported as an empty
// series so upstream logic has one failure shape to handle.
func (g *YahooGateway) History(ctx context.Context, symbol string, days int) Series {
	if days < 1 {
		days = 1
	}
	endpoint := fmt.Sprintf("%s/v8/finance/chart/%s?range=%dd&interval=1d",
		g.baseURL, url.PathEscape(symbol), days)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		log.Printf("quotes: failed to build request for %s: %v", symbol, err)
		return Series{}
	}
	req.Header.Set("User-Agent", "financepal/1.0")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		log.Printf("quotes: request failed for %s: %v", symbol, err)
		return Series{}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("quotes: unexpected status %d for %s", resp.StatusCode, symbol)
		return Series{}
	}

	var payload chartResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		log.Printf("quotes: failed to decode response for %s: %v", symbol, err)
		return Series{}
	}

	if payload.Chart.Error != nil || len(payload.Chart.Result) == 0 {
		return Series{}
	}

	result := payload.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return Series{}
	}

	closes := result.Indicators.Quote[0].Close
	series := Series{Symbol: symbol}
	for i, ts := range result.Timestamp {
		if i >= len(closes) || closes[i] == nil {
			continue
		}
		series.Points = append(series.Points, Point{
			Date:  ts,
			Close: decimal.NewFromFloat(*closes[i]),
		})
	}
	return series
}

// Resolve validates a symbol, retrying once with the fallback suffix when
// the primary lookup is empty and the symbol has no exchange suffix yet
func (g *YahooGateway) Resolve(ctx context.Context, symbol string) (string, Series) {
	series := g.History(ctx, symbol, 1)
	if !series.Empty() {
		return symbol, series
	}
	if !strings.Contains(symbol, ".") {
		alt := symbol + FallbackSuffix
		altSeries := g.History(ctx, alt, 1)
		if !altSeries.Empty() {
			return alt, altSeries
		}
	}
	return "", Series{}
}

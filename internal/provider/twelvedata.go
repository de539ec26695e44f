// Package provider fetches bar series, quotes and fundamentals from the
// Twelve Data API.
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	platformhttp "github.com/Alias1177/Advisor/internal/platform/http"
	"github.com/Alias1177/Advisor/models"
)

// Client is the Twelve Data API client.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *platformhttp.Client
	logger     zerolog.Logger
}

// ClientOptions holds options for creating a new Twelve Data client.
type ClientOptions struct {
	APIKey          string
	RequestTimeout  time.Duration
	RequestsPerSec  int
	MaxRetryTimeout time.Duration
}

// NewClient creates a new Twelve Data API client.
func NewClient(options ClientOptions) *Client {
	return &Client{
		apiKey: options.APIKey,
		baseURL: "https://api.twelvedata.com",
		httpClient: platformhttp.NewClient(platformhttp.ClientOptions{
			Timeout:         options.RequestTimeout,
			RequestsPerSec:  options.RequestsPerSec,
			MaxRetryTimeout: options.MaxRetryTimeout,
		}),
		logger: log.With().Str("component", "twelvedata_client").Logger(),
	}
}

// timeSeriesResponse is the wire shape of /time_series.
type timeSeriesResponse struct {
	Meta struct {
		Symbol   string `json:"symbol"`
		Interval string `json:"interval"`
	} `json:"meta"`
	Values []struct {
		Datetime string  `json:"datetime"`
		Open     float64 `json:"open,string"`
		High     float64 `json:"high,string"`
		Low      float64 `json:"low,string"`
		Close    float64 `json:"close,string"`
		Volume   float64 `json:"volume,string,omitempty"`
	} `json:"values"`
	Status string `json:"status"`
}

// quoteResponse is the wire shape of /quote.
type quoteResponse struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Close         float64 `json:"close,string"`
	PreviousClose float64 `json:"previous_close,string"`
	PercentChange float64 `json:"percent_change,string"`
	Volume        float64 `json:"volume,string,omitempty"`
	AverageVolume float64 `json:"average_volume,string,omitempty"`
}

// Quote is one symbol's current state.
type Quote struct {
	Symbol        string
	Name          string
	Price         float64
	PreviousClose float64
	PercentChange float64
	Volume        float64
	AverageVolume float64
}

// statisticsResponse is the subset of /statistics the advisor consumes.
type statisticsResponse struct {
	Statistics struct {
		ValuationsMetrics struct {
			MarketCapitalization float64 `json:"market_capitalization"`
		} `json:"valuations_metrics"`
		Financials struct {
			BalanceSheet struct {
				TotalDebtToEquity float64 `json:"total_debt_to_equity"`
			} `json:"balance_sheet"`
			CashFlow struct {
				FreeCashFlowTTM float64 `json:"free_cash_flow_ttm"`
			} `json:"cash_flow"`
		} `json:"financials"`
	} `json:"statistics"`
}

// GetCandles fetches a bar series, sorted oldest first.
func (c *Client) GetCandles(ctx context.Context, symbol, interval string, count int) ([]models.Candle, error) {
	endpoint := fmt.Sprintf("%s/time_series?symbol=%s&interval=%s&outputsize=%d&apikey=%s",
		c.baseURL, url.QueryEscape(symbol), interval, count, c.apiKey)

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var data timeSeriesResponse
	if err := json.Unmarshal(body, &data); err != nil {
		c.logger.Error().Err(err).Str("symbol", symbol).Msg("Error parsing time series JSON")
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	if len(data.Values) == 0 {
		c.logger.Warn().Str("symbol", symbol).Msg("No candles in response")
		return nil, fmt.Errorf("empty data returned for %s", symbol)
	}

	// Oldest first for the rolling-window calculations.
	sort.Slice(data.Values, func(i, j int) bool {
		return data.Values[i].Datetime < data.Values[j].Datetime
	})

	candles := make([]models.Candle, 0, len(data.Values))
	for _, v := range data.Values {
		candles = append(candles, models.Candle{
			Datetime: v.Datetime,
			Open:     v.Open,
			High:     v.High,
			Low:      v.Low,
			Close:    v.Close,
			Volume:   v.Volume,
		})
	}

	c.logger.Debug().Str("symbol", symbol).Int("count", len(candles)).Msg("Fetched candles")
	return candles, nil
}

// GetQuote fetches the current quote for a symbol.
func (c *Client) GetQuote(ctx context.Context, symbol string) (*Quote, error) {
	endpoint := fmt.Sprintf("%s/quote?symbol=%s&apikey=%s", c.baseURL, url.QueryEscape(symbol), c.apiKey)

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var data quoteResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("parsing quote JSON: %w", err)
	}
	if data.Symbol == "" {
		return nil, fmt.Errorf("empty quote returned for %s", symbol)
	}

	return &Quote{
		Symbol:        data.Symbol,
		Name:          data.Name,
		Price:         data.Close,
		PreviousClose: data.PreviousClose,
		PercentChange: data.PercentChange,
		Volume:        data.Volume,
		AverageVolume: data.AverageVolume,
	}, nil
}

// GetFundamentals fetches the fundamentals record for a symbol. Fields the
// API does not report stay nil.
func (c *Client) GetFundamentals(ctx context.Context, symbol string) (*models.Fundamentals, error) {
	endpoint := fmt.Sprintf("%s/statistics?symbol=%s&apikey=%s", c.baseURL, url.QueryEscape(symbol), c.apiKey)

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var data statisticsResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("parsing statistics JSON: %w", err)
	}

	f := &models.Fundamentals{Symbol: symbol}
	if v := data.Statistics.Financials.CashFlow.FreeCashFlowTTM; v != 0 {
		f.FreeCashFlow = &v
	}
	if v := data.Statistics.Financials.BalanceSheet.TotalDebtToEquity; v != 0 {
		f.DebtToEquity = &v
	}
	if v := data.Statistics.ValuationsMetrics.MarketCapitalization; v != 0 {
		f.MarketCap = &v
	}

	return f, nil
}

// get performs one API call and surfaces Twelve Data's in-band errors.
func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	c.logger.Debug().Str("url", endpoint).Msg("Fetching")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.DoRequest(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if strings.Contains(string(body), `"status":"error"`) {
		c.logger.Error().Str("response", string(body)).Msg("Twelve Data API error")
		return nil, fmt.Errorf("Twelve Data API error: %s", string(body))
	}

	return body, nil
}

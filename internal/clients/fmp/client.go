// Package fmp provides a client for the Financial Modeling Prep API
package fmp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/pshvarts/stockfolio/internal/common"
	"github.com/pshvarts/stockfolio/internal/interfaces"
	"github.com/pshvarts/stockfolio/internal/models"
)

// flexFloat64 handles JSON values that may be either a number or a string.
type flexFloat64 float64

func (f *flexFloat64) UnmarshalJSON(data []byte) error {
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*f = flexFloat64(num)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s == "" || s == "N/A" {
			*f = 0
			return nil
		}
		num, err := strconv.ParseFloat(s, 64)
		if err != nil {
			*f = 0
			return nil
		}
		*f = flexFloat64(num)
		return nil
	}
	return fmt.Errorf("cannot unmarshal %s into float64", string(data))
}

const (
	DefaultBaseURL   = "https://financialmodelingprep.com/api/v3"
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 5 // requests per second

	searchLimit    = 10
	searchExchange = "NASDAQ"
)

// Client implements the MarketDataClient interface.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *common.Logger
	limiter    *rate.Limiter
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the rate limit
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new FMP client
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError represents an API error
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("FMP API error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

// get performs a rate-limited GET request
func (c *Client) get(ctx context.Context, path string, params url.Values, result interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	if params == nil {
		params = url.Values{}
	}
	params.Set("apikey", c.apiKey)

	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	c.logger.Debug().Str("url", c.baseURL+path).Msg("FMP API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
			Endpoint:   path,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// searchRow mirrors the upstream search response. The API is inconsistent
// about field names across plan tiers, hence the alternates.
type searchRow struct {
	Symbol            string `json:"symbol"`
	Ticker            string `json:"ticker"`
	Name              string `json:"name"`
	CompanyName       string `json:"companyName"`
	LongName          string `json:"longName"`
	Exchange          string `json:"exchange"`
	StockExchange     string `json:"stockExchange"`
	ExchangeShortName string `json:"exchangeShortName"`
	Currency          string `json:"currency"`
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// Search queries the symbol search endpoint, limited to NASDAQ listings.
// Rows without a resolvable symbol are dropped.
func (c *Client) Search(ctx context.Context, query string) ([]models.StockSearchResult, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("limit", strconv.Itoa(searchLimit))
	params.Set("exchange", searchExchange)

	var rows []searchRow
	if err := c.get(ctx, "/search", params, &rows); err != nil {
		return nil, err
	}

	results := make([]models.StockSearchResult, 0, len(rows))
	for _, row := range rows {
		symbol := firstNonEmpty(row.Symbol, row.Ticker)
		if symbol == "" {
			continue
		}
		results = append(results, models.StockSearchResult{
			Symbol:            symbol,
			Name:              firstNonEmpty(row.Name, row.CompanyName, row.LongName),
			Exchange:          firstNonEmpty(row.Exchange, row.StockExchange),
			ExchangeShortName: row.ExchangeShortName,
			Currency:          row.Currency,
			StockExchange:     row.StockExchange,
		})
	}

	return results, nil
}

// quoteRow mirrors one element of the upstream quote response array.
type quoteRow struct {
	Symbol    string      `json:"symbol"`
	Name      string      `json:"name"`
	Exchange  string      `json:"exchange"`
	Currency  string      `json:"currency"`
	Price     flexFloat64 `json:"price"`
	Change    flexFloat64 `json:"change"`
	Volume    flexFloat64 `json:"volume"`
	MarketCap flexFloat64 `json:"marketCap"`
	PE        flexFloat64 `json:"pe"`
}

// Quote fetches a live quote for a symbol. The upstream returns an array;
// an empty array means the symbol is unknown.
func (c *Client) Quote(ctx context.Context, symbol string) (*models.StockDetail, error) {
	var rows []quoteRow
	if err := c.get(ctx, "/quote/"+url.PathEscape(symbol), nil, &rows); err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, &APIError{
			StatusCode: http.StatusNotFound,
			Message:    fmt.Sprintf("no quote for symbol %s", symbol),
			Endpoint:   "/quote/" + symbol,
		}
	}

	row := rows[0]
	return &models.StockDetail{
		Symbol:    row.Symbol,
		Name:      row.Name,
		Exchange:  row.Exchange,
		Currency:  row.Currency,
		Price:     float64(row.Price),
		Change:    float64(row.Change),
		Volume:    int64(row.Volume),
		MarketCap: float64(row.MarketCap),
		PE:        float64(row.PE),
	}, nil
}

// Compile-time check
var _ interfaces.MarketDataClient = (*Client)(nil)

package fmp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFakeServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	c := NewClient("test-key", WithBaseURL(ts.URL), WithRateLimit(1000))
	return ts, c
}

func TestSearch(t *testing.T) {
	var gotQuery string
	_, c := newFakeServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		gotQuery = r.URL.Query().Get("query")
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		assert.Equal(t, "NASDAQ", r.URL.Query().Get("exchange"))
		assert.Equal(t, "test-key", r.URL.Query().Get("apikey"))

		json.NewEncoder(w).Encode([]map[string]interface{}{
			{"symbol": "AAPL", "name": "Apple Inc.", "exchange": "NASDAQ Global Select", "exchangeShortName": "NASDAQ", "currency": "USD"},
			{"ticker": "TSLA", "companyName": "Tesla Inc.", "stockExchange": "NASDAQ Global Select"},
			{"name": "no symbol at all"},
		})
	})

	results, err := c.Search(context.Background(), "app")
	require.NoError(t, err)
	assert.Equal(t, "app", gotQuery)
	require.Len(t, results, 2)

	assert.Equal(t, "AAPL", results[0].Symbol)
	assert.Equal(t, "Apple Inc.", results[0].Name)
	assert.Equal(t, "NASDAQ Global Select", results[0].Exchange)

	// Fallback fields resolve.
	assert.Equal(t, "TSLA", results[1].Symbol)
	assert.Equal(t, "Tesla Inc.", results[1].Name)
	assert.Equal(t, "NASDAQ Global Select", results[1].Exchange)
}

func TestSearchAPIError(t *testing.T) {
	_, c := newFakeServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "limit exceeded", http.StatusTooManyRequests)
	})

	_, err := c.Search(context.Background(), "app")
	require.Error(t, err)
	apiErr, ok := err.(*APIError)
	require.True(t, ok, "expected *APIError, got %T", err)
	assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
}

func TestQuote(t *testing.T) {
	_, c := newFakeServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/quote/AAPL", r.URL.Path)
		json.NewEncoder(w).Encode([]map[string]interface{}{
			{
				"symbol":    "AAPL",
				"name":      "Apple Inc.",
				"price":     191.5,
				"change":    -1.25,
				"volume":    12345678,
				"marketCap": 2.9e12,
				"pe":        "31.4", // string-typed number
			},
		})
	})

	detail, err := c.Quote(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, "AAPL", detail.Symbol)
	assert.Equal(t, 191.5, detail.Price)
	assert.Equal(t, int64(12345678), detail.Volume)
	assert.Equal(t, 31.4, detail.PE)
}

func TestQuoteUnknownSymbol(t *testing.T) {
	_, c := newFakeServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]interface{}{})
	})

	_, err := c.Quote(context.Background(), "NOPE")
	require.Error(t, err)
	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}

func TestFlexFloat64(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{`1.5`, 1.5},
		{`"2.75"`, 2.75},
		{`""`, 0},
		{`"N/A"`, 0},
		{`"garbage"`, 0},
	}
	for _, tc := range cases {
		var f flexFloat64
		require.NoError(t, json.Unmarshal([]byte(tc.in), &f), tc.in)
		assert.Equal(t, tc.want, float64(f), tc.in)
	}
}

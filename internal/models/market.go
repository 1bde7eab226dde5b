package models

// StockSearchResult is one normalized row from the external search endpoint.
// Transient, never persisted.
type StockSearchResult struct {
	Symbol            string `json:"symbol"`
	Name              string `json:"name"`
	Exchange          string `json:"exchange,omitempty"`
	ExchangeShortName string `json:"exchangeShortName,omitempty"`
	Currency          string `json:"currency,omitempty"`
	StockExchange     string `json:"stockExchange,omitempty"`
}

// DedupeKey identifies a result for de-duplication: symbol plus exchange.
func (r StockSearchResult) DedupeKey() string {
	return r.Symbol + "|" + r.Exchange
}

// StockDetail is the normalized shape of the external quote endpoint.
// Transient, never persisted.
type StockDetail struct {
	Symbol    string  `json:"symbol"`
	Name      string  `json:"name"`
	Exchange  string  `json:"exchange,omitempty"`
	Currency  string  `json:"currency,omitempty"`
	Price     float64 `json:"price"`
	Change    float64 `json:"change"`
	Volume    int64   `json:"volume"`
	MarketCap float64 `json:"marketCap"`
	PE        float64 `json:"pe"`
}

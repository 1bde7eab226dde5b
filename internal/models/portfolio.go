// Package models defines data structures for Stockfolio
package models

import (
	"errors"
	"fmt"
)

// Stock identifies a tradeable instrument. Symbol is optional; holdings
// created before symbol capture was added only carry a name.
type Stock struct {
	Name   string `json:"name"`
	Symbol string `json:"symbol,omitempty"`
}

// PortfolioStock is a single holding: a stock reference plus a quantity.
// Quantity is expected to be > 0 but is not enforced on read paths.
type PortfolioStock struct {
	Stock    Stock   `json:"stock"`
	Quantity float64 `json:"quantity"`
}

// Portfolio is one user's set of holdings. User is the natural key:
// every repository operation keys on it.
type Portfolio struct {
	ID     string           `json:"id,omitempty"`
	User   string           `json:"user"`
	Stocks []PortfolioStock `json:"stocks"`
}

// PortfolioPatch is a partial portfolio used by update operations.
// Pointer fields distinguish "absent" from "present but empty"; a present
// Stocks field replaces the stored array wholesale, never merged.
type PortfolioPatch struct {
	User   *string           `json:"user,omitempty"`
	Stocks *[]PortfolioStock `json:"stocks,omitempty"`
}

// Validate checks the schema-required fields on a full portfolio document.
func (p *Portfolio) Validate() error {
	if p.User == "" {
		return errors.New("portfolio validation failed: user is required")
	}
	if p.Stocks == nil {
		return errors.New("portfolio validation failed: stocks is required")
	}
	return ValidateStocks(p.Stocks)
}

// ValidateStocks checks the schema-required fields on a holdings array.
func ValidateStocks(stocks []PortfolioStock) error {
	for i, h := range stocks {
		if h.Stock.Name == "" {
			return fmt.Errorf("portfolio validation failed: stocks[%d].stock.name is required", i)
		}
	}
	return nil
}

// Apply produces the updated portfolio from a stored document and a patch.
// Field-level replace: fields present in the patch overwrite the stored value
// entirely; absent fields keep the prior value.
func (p *Portfolio) Apply(patch *PortfolioPatch) *Portfolio {
	updated := *p
	if patch.User != nil {
		updated.User = *patch.User
	}
	if patch.Stocks != nil {
		updated.Stocks = *patch.Stocks
	}
	return &updated
}

// Validate checks the patch against the schema rules that run at update time.
func (pp *PortfolioPatch) Validate() error {
	if pp.User != nil && *pp.User == "" {
		return errors.New("portfolio validation failed: user must not be empty")
	}
	if pp.Stocks != nil {
		return ValidateStocks(*pp.Stocks)
	}
	return nil
}

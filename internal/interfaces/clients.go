// Package interfaces defines service contracts for Stockfolio
package interfaces

import (
	"context"

	"github.com/pshvarts/stockfolio/internal/models"
)

// MarketDataClient is the external market-data API consumed by the client
// tier. Responses are normalized defensively because the upstream uses
// several field names for the same logical value.
type MarketDataClient interface {
	// Search queries the symbol search endpoint.
	Search(ctx context.Context, query string) ([]models.StockSearchResult, error)

	// Quote fetches a live quote for a symbol.
	Quote(ctx context.Context, symbol string) (*models.StockDetail, error)
}

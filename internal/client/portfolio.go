package client

import (
	"context"
	"fmt"
	"sync"

	"github.com/pshvarts/stockfolio/internal/common"
	"github.com/pshvarts/stockfolio/internal/models"
)

// PortfolioView is the client-side portfolio state for one user. It fetches
// the server document at most once until Invalidate is called, and persists
// mutations by replacing the whole holdings list (last-writer-wins, no merge
// with concurrent server-side changes).
type PortfolioView struct {
	api    *API
	user   string
	logger *common.Logger

	mu      sync.Mutex
	stocks  []models.PortfolioStock
	fetched bool
	exists  bool
}

// NewPortfolioView creates a view for the given user.
func NewPortfolioView(api *API, user string, logger *common.Logger) *PortfolioView {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	return &PortfolioView{
		api:    api,
		user:   user,
		logger: logger,
	}
}

// ensureLoaded fetches the portfolio once. Subsequent calls are no-ops until
// Invalidate. Caller holds v.mu.
func (v *PortfolioView) ensureLoaded(ctx context.Context) error {
	if v.fetched {
		return nil
	}

	p, err := v.api.GetPortfolio(ctx, v.user)
	if err != nil {
		return fmt.Errorf("failed to load portfolio: %w", err)
	}

	v.fetched = true
	if p == nil {
		v.exists = false
		v.stocks = nil
		v.logger.Debug().Str("user", v.user).Msg("No portfolio on server yet")
		return nil
	}

	v.exists = true
	v.stocks = p.Stocks
	return nil
}

// Holdings returns the current holdings list, loading it on first use.
func (v *PortfolioView) Holdings(ctx context.Context) ([]models.PortfolioStock, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if err := v.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	out := make([]models.PortfolioStock, len(v.stocks))
	copy(out, v.stocks)
	return out, nil
}

// Invalidate clears the local state so the next read re-fetches.
func (v *PortfolioView) Invalidate() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.fetched = false
	v.stocks = nil
}

// AddStock appends a holding and persists the whole updated list. When no
// portfolio exists on the server yet, one is created.
func (v *PortfolioView) AddStock(ctx context.Context, stock models.Stock, quantity float64) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if err := v.ensureLoaded(ctx); err != nil {
		return err
	}

	updated := append(append([]models.PortfolioStock{}, v.stocks...), models.PortfolioStock{
		Stock:    stock,
		Quantity: quantity,
	})

	if err := v.persist(ctx, updated); err != nil {
		return err
	}

	v.logger.Info().
		Str("user", v.user).
		Str("stock", stock.Name).
		Float64("quantity", quantity).
		Msg("Stock added to portfolio")
	return nil
}

// RemoveStock drops every holding matching the symbol (or, for symbol-less
// holdings, the name) and persists the whole updated list.
func (v *PortfolioView) RemoveStock(ctx context.Context, symbolOrName string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if err := v.ensureLoaded(ctx); err != nil {
		return err
	}

	updated := make([]models.PortfolioStock, 0, len(v.stocks))
	removed := 0
	for _, h := range v.stocks {
		if h.Stock.Symbol == symbolOrName || (h.Stock.Symbol == "" && h.Stock.Name == symbolOrName) {
			removed++
			continue
		}
		updated = append(updated, h)
	}
	if removed == 0 {
		return fmt.Errorf("no holding matches %q", symbolOrName)
	}

	if err := v.persist(ctx, updated); err != nil {
		return err
	}

	v.logger.Info().
		Str("user", v.user).
		Str("stock", symbolOrName).
		Int("removed", removed).
		Msg("Stock removed from portfolio")
	return nil
}

// persist writes the replacement list to the server and updates local state.
// Caller holds v.mu.
func (v *PortfolioView) persist(ctx context.Context, stocks []models.PortfolioStock) error {
	if !v.exists {
		created, err := v.api.CreatePortfolio(ctx, &models.Portfolio{
			User:   v.user,
			Stocks: stocks,
		})
		if err != nil {
			return fmt.Errorf("failed to create portfolio: %w", err)
		}
		v.exists = true
		v.stocks = created.Stocks
		return nil
	}

	updated, err := v.api.UpdatePortfolio(ctx, v.user, stocks)
	if err != nil {
		return fmt.Errorf("failed to update portfolio: %w", err)
	}
	if updated == nil {
		// Deleted server-side since our fetch. Local state is stale.
		v.fetched = false
		return fmt.Errorf("portfolio no longer exists for %s", v.user)
	}

	v.stocks = updated.Stocks
	return nil
}

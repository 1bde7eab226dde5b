// Package portfolio implements CRUD over the portfolios collection.
package portfolio

import (
	"context"
	"fmt"

	"github.com/pshvarts/stockfolio/internal/common"
	"github.com/pshvarts/stockfolio/internal/interfaces"
	"github.com/pshvarts/stockfolio/internal/models"
)

// Service implements interfaces.PortfolioService.
type Service struct {
	store  interfaces.PortfolioStore
	logger *common.Logger
}

// NewService creates a portfolio service backed by the given store.
func NewService(store interfaces.PortfolioStore, logger *common.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger,
	}
}

func (s *Service) Get(ctx context.Context, user string) (*models.Portfolio, error) {
	return s.store.Get(ctx, user)
}

func (s *Service) GetAll(ctx context.Context) ([]*models.Portfolio, error) {
	return s.store.List(ctx)
}

// Create validates and inserts the portfolio. No uniqueness check on user:
// creating twice yields two documents, and Get returns whichever the store
// surfaces first.
func (s *Service) Create(ctx context.Context, p *models.Portfolio) (*models.Portfolio, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", interfaces.ErrValidation, err.Error())
	}

	stored, err := s.store.Insert(ctx, p)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("user", stored.User).
		Int("stocks", len(stored.Stocks)).
		Msg("Portfolio created")
	return stored, nil
}

// Update applies a field-level replace: present patch fields overwrite the
// stored value wholesale, absent fields keep the prior value. Returns nil
// when no portfolio exists for the user.
func (s *Service) Update(ctx context.Context, user string, patch *models.PortfolioPatch) (*models.Portfolio, error) {
	if err := patch.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", interfaces.ErrValidation, err.Error())
	}

	existing, err := s.store.Get(ctx, user)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, nil
	}

	updated, err := s.store.Replace(ctx, existing.Apply(patch))
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("user", user).
		Int("stocks", len(updated.Stocks)).
		Msg("Portfolio updated")
	return updated, nil
}

// Delete removes the user's portfolio documents. True iff exactly one was
// removed.
func (s *Service) Delete(ctx context.Context, user string) (bool, error) {
	count, err := s.store.Delete(ctx, user)
	if err != nil {
		return false, err
	}

	s.logger.Info().
		Str("user", user).
		Int("deleted", count).
		Msg("Portfolio delete requested")
	return count == 1, nil
}

// Compile-time check
var _ interfaces.PortfolioService = (*Service)(nil)

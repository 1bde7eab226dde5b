// Package interfaces defines service contracts for Stockfolio
package interfaces

import (
	"context"

	"github.com/pshvarts/stockfolio/internal/models"
)

// PortfolioService is CRUD over portfolios, keyed by user identifier.
type PortfolioService interface {
	// Get returns the user's portfolio, or nil when none exists.
	Get(ctx context.Context, user string) (*models.Portfolio, error)

	// GetAll returns all portfolios, order unspecified.
	GetAll(ctx context.Context) ([]*models.Portfolio, error)

	// Create validates and inserts a portfolio, returning the stored document.
	Create(ctx context.Context, p *models.Portfolio) (*models.Portfolio, error)

	// Update applies a field-level replace to the user's portfolio and
	// returns the updated document, or nil when no portfolio matches.
	Update(ctx context.Context, user string, patch *models.PortfolioPatch) (*models.Portfolio, error)

	// Delete removes the user's portfolio. True iff exactly one document
	// was removed.
	Delete(ctx context.Context, user string) (bool, error)
}

// UserService is lookup/create over users. Every read path returns
// documents with the password field redacted.
type UserService interface {
	// Authenticate is an existence check by name: the redacted user when
	// found, nil otherwise. No password comparison occurs.
	Authenticate(ctx context.Context, name string) (*models.User, error)

	// Create inserts a user and returns the redacted stored document.
	Create(ctx context.Context, u *models.User) (*models.User, error)

	// GetByName returns the redacted user, or nil when absent.
	GetByName(ctx context.Context, name string) (*models.User, error)

	// GetAll returns every user, redacted.
	GetAll(ctx context.Context) ([]*models.User, error)
}

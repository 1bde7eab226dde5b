// Package interfaces defines service contracts for Stockfolio
package interfaces

import (
	"context"

	"github.com/pshvarts/stockfolio/internal/models"
)

// StorageState tracks the lifecycle of a storage backend. The SurrealDB
// engine connects in the background at startup, so requests can arrive
// before the backend is usable.
type StorageState string

const (
	StorageUninitialized StorageState = "uninitialized"
	StorageConnecting    StorageState = "connecting"
	StorageReady         StorageState = "ready"
	StorageFailed        StorageState = "failed"
)

// StorageManager coordinates the storage backend and exposes the
// per-collection stores.
type StorageManager interface {
	PortfolioStore() PortfolioStore
	UserStore() UserStore

	// State reports the current connection state.
	State() StorageState

	// Ready returns nil when the backend is usable, or the error explaining
	// why it is not (ErrStorageNotInitialized while connecting, the
	// connection error after a failed startup).
	Ready() error

	// Lifecycle
	Close() error
}

// PortfolioStore is CRUD over the portfolios collection, keyed by user.
// Absence is not an error: Get returns (nil, nil) when no document matches.
type PortfolioStore interface {
	// Get returns the first portfolio for the user, or nil when absent.
	Get(ctx context.Context, user string) (*models.Portfolio, error)

	// List returns all portfolios, order unspecified.
	List(ctx context.Context) ([]*models.Portfolio, error)

	// Insert stores a new portfolio document and returns it. No check is
	// made for an existing portfolio with the same user.
	Insert(ctx context.Context, p *models.Portfolio) (*models.Portfolio, error)

	// Replace overwrites the document with the given ID.
	Replace(ctx context.Context, p *models.Portfolio) (*models.Portfolio, error)

	// Delete removes every portfolio for the user and returns the number of
	// documents removed.
	Delete(ctx context.Context, user string) (int, error)
}

// UserStore is lookup/create over the users collection, keyed by name.
type UserStore interface {
	// GetByName returns the user with the given name, or nil when absent.
	GetByName(ctx context.Context, name string) (*models.User, error)

	// List returns every user document.
	List(ctx context.Context) ([]*models.User, error)

	// Insert stores a new user document and returns it.
	Insert(ctx context.Context, u *models.User) (*models.User, error)

	// Count returns the number of user documents. Used by startup seeding.
	Count(ctx context.Context) (int, error)
}

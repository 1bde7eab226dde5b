// Package badger implements interfaces.StorageManager over an embedded
// BadgerHold database. Unlike the SurrealDB engine it opens synchronously
// and is ready as soon as NewManager returns, which also makes it the
// storage backend for handler tests.
package badger

import (
	"context"
	"fmt"
	"os"

	"github.com/timshannon/badgerhold/v4"

	"github.com/pshvarts/stockfolio/internal/common"
	"github.com/pshvarts/stockfolio/internal/interfaces"
	"github.com/pshvarts/stockfolio/internal/storage/bootstrap"
)

// Manager implements interfaces.StorageManager using BadgerHold.
type Manager struct {
	db     *badgerhold.Store
	logger *common.Logger

	portfolioStore *PortfolioStore
	userStore      *UserStore
}

// NewManager opens the embedded database at path and seeds the test user
// when the users collection is empty.
func NewManager(logger *common.Logger, path string) (*Manager, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage path %s: %w", path, err)
	}

	opts := badgerhold.DefaultOptions
	opts.Dir = path
	opts.ValueDir = path
	opts.Logger = nil
	db, err := badgerhold.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage at %s: %w", path, err)
	}

	m := &Manager{
		db:     db,
		logger: logger,
	}
	m.portfolioStore = NewPortfolioStore(db, logger)
	m.userStore = NewUserStore(db, logger)

	if err := bootstrap.SeedTestUser(context.Background(), m.userStore, logger); err != nil {
		logger.Warn().Err(err).Msg("Failed to seed test user")
	}

	logger.Info().Str("path", path).Msg("Badger storage manager opened")
	return m, nil
}

func (m *Manager) PortfolioStore() interfaces.PortfolioStore {
	return m.portfolioStore
}

func (m *Manager) UserStore() interfaces.UserStore {
	return m.userStore
}

func (m *Manager) State() interfaces.StorageState {
	return interfaces.StorageReady
}

func (m *Manager) Ready() error {
	return nil
}

func (m *Manager) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}

// Compile-time check
var _ interfaces.StorageManager = (*Manager)(nil)

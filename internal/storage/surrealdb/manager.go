// Package surrealdb implements interfaces.StorageManager over SurrealDB.
//
// The connection is established in the background: NewManager returns
// immediately in the "connecting" state and store accessors fail with
// interfaces.ErrStorageNotInitialized until the handshake completes.
package surrealdb

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/surrealdb/surrealdb.go"

	"github.com/pshvarts/stockfolio/internal/common"
	"github.com/pshvarts/stockfolio/internal/interfaces"
	"github.com/pshvarts/stockfolio/internal/storage/bootstrap"
)

// Manager implements interfaces.StorageManager using SurrealDB.
type Manager struct {
	logger *common.Logger
	config *common.Config

	mu      sync.RWMutex
	state   interfaces.StorageState
	connErr error
	db      *surrealdb.DB

	portfolioStore *PortfolioStore
	userStore      *UserStore
}

// NewManager creates a StorageManager and starts the background connection.
func NewManager(logger *common.Logger, config *common.Config) *Manager {
	m := &Manager{
		logger: logger,
		config: config,
		state:  interfaces.StorageConnecting,
	}
	m.portfolioStore = NewPortfolioStore(m, logger)
	m.userStore = NewUserStore(m, logger)

	go m.connect(context.Background())

	return m
}

// connect performs the SurrealDB handshake, defines the collections, and
// seeds the fixed test user when the users collection is empty.
func (m *Manager) connect(ctx context.Context) {
	cfg := m.config.Storage

	db, err := surrealdb.New(cfg.Address)
	if err != nil {
		m.fail(fmt.Errorf("failed to connect to SurrealDB: %w", err))
		return
	}

	if _, err := db.SignIn(ctx, map[string]interface{}{
		"user": cfg.Username,
		"pass": cfg.Password,
	}); err != nil {
		m.fail(fmt.Errorf("failed to sign in to SurrealDB: %w", err))
		return
	}

	if err := db.Use(ctx, cfg.Namespace, cfg.Database); err != nil {
		m.fail(fmt.Errorf("failed to select namespace/database: %w", err))
		return
	}

	// Ensure the tables exist before the first query.
	for _, table := range []string{"portfolio", "user"} {
		sql := fmt.Sprintf("DEFINE TABLE IF NOT EXISTS %s SCHEMALESS", table)
		if _, err := surrealdb.Query[any](ctx, db, sql, nil); err != nil {
			m.fail(fmt.Errorf("failed to define table %s: %w", table, err))
			return
		}
	}

	m.mu.Lock()
	m.db = db
	m.state = interfaces.StorageReady
	m.mu.Unlock()

	if err := bootstrap.SeedTestUser(ctx, m.userStore, m.logger); err != nil {
		m.logger.Warn().Err(err).Msg("Failed to seed test user")
	}

	m.logger.Info().
		Str("address", cfg.Address).
		Str("namespace", cfg.Namespace).
		Str("database", cfg.Database).
		Msg("SurrealDB storage manager connected")
}

func (m *Manager) fail(err error) {
	m.mu.Lock()
	m.state = interfaces.StorageFailed
	m.connErr = err
	m.mu.Unlock()
	m.logger.Error().Err(err).Msg("SurrealDB connection failed")
}

// conn returns the live database handle, or the readiness error.
func (m *Manager) conn() (*surrealdb.DB, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	switch m.state {
	case interfaces.StorageReady:
		return m.db, nil
	case interfaces.StorageFailed:
		return nil, fmt.Errorf("storage connection failed: %w", m.connErr)
	default:
		return nil, interfaces.ErrStorageNotInitialized
	}
}

func (m *Manager) PortfolioStore() interfaces.PortfolioStore {
	return m.portfolioStore
}

func (m *Manager) UserStore() interfaces.UserStore {
	return m.userStore
}

func (m *Manager) State() interfaces.StorageState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

func (m *Manager) Ready() error {
	_, err := m.conn()
	return err
}

// WaitReady blocks until the connection completes, fails, or the context
// expires. Used by tests and by startup logging.
func (m *Manager) WaitReady(ctx context.Context) error {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	for {
		switch m.State() {
		case interfaces.StorageReady:
			return nil
		case interfaces.StorageFailed:
			return m.Ready()
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.db != nil {
		m.db.Close(context.Background())
		m.db = nil
	}
	m.state = interfaces.StorageUninitialized
	return nil
}

// Compile-time check
var _ interfaces.StorageManager = (*Manager)(nil)

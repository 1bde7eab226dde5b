// Package storage provides document persistence with pluggable engines.
package storage

import (
	"fmt"

	"github.com/pshvarts/stockfolio/internal/common"
	"github.com/pshvarts/stockfolio/internal/interfaces"
	"github.com/pshvarts/stockfolio/internal/storage/badger"
	"github.com/pshvarts/stockfolio/internal/storage/surrealdb"
)

// Engine type constants.
const (
	EngineSurrealDB = "surrealdb"
	EngineBadger    = "badger"
)

// NewManager creates a storage manager based on the configuration.
// Supported engines: "surrealdb" (default, connects asynchronously) and
// "badger" (embedded, ready on return).
func NewManager(logger *common.Logger, config *common.Config) (interfaces.StorageManager, error) {
	engine := config.Storage.Engine
	if engine == "" {
		engine = EngineSurrealDB
	}

	switch engine {
	case EngineSurrealDB:
		return surrealdb.NewManager(logger, config), nil

	case EngineBadger:
		return badger.NewManager(logger, config.Storage.Path)

	default:
		return nil, fmt.Errorf("unknown storage engine: %s (supported: surrealdb, badger)", engine)
	}
}

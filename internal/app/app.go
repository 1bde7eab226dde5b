// Package app wires configuration, storage, and services into a single
// application container shared by the server and tests.
package app

import (
	"time"

	"github.com/pshvarts/stockfolio/internal/common"
	"github.com/pshvarts/stockfolio/internal/interfaces"
	"github.com/pshvarts/stockfolio/internal/services/portfolio"
	"github.com/pshvarts/stockfolio/internal/services/user"
	"github.com/pshvarts/stockfolio/internal/storage"
)

// App holds all initialized application components.
type App struct {
	Config  *common.Config
	Logger  *common.Logger
	Storage interfaces.StorageManager

	PortfolioService interfaces.PortfolioService
	UserService      interfaces.UserService

	StartupTime time.Time
}

// New initializes the application: storage manager (which connects in the
// background for the SurrealDB engine) and the repository services.
func New(config *common.Config, logger *common.Logger) (*App, error) {
	manager, err := storage.NewManager(logger, config)
	if err != nil {
		return nil, err
	}

	return &App{
		Config:           config,
		Logger:           logger,
		Storage:          manager,
		PortfolioService: portfolio.NewService(manager.PortfolioStore(), logger),
		UserService:      user.NewService(manager.UserStore(), logger),
		StartupTime:      time.Now(),
	}, nil
}

// Close releases application resources.
func (a *App) Close() error {
	if a.Storage != nil {
		return a.Storage.Close()
	}
	return nil
}

// Package bootstrap holds startup seeding shared by the storage engines.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/pshvarts/stockfolio/internal/common"
	"github.com/pshvarts/stockfolio/internal/interfaces"
	"github.com/pshvarts/stockfolio/internal/models"
)

// SeedTestUser inserts the fixed test user when the users collection is
// empty, so a fresh database is immediately usable for login.
func SeedTestUser(ctx context.Context, users interfaces.UserStore, logger *common.Logger) error {
	count, err := users.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	now := time.Now()
	seed := &models.User{
		Name:      "test",
		Email:     "test@example.com",
		Password:  "test123",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := users.Insert(ctx, seed); err != nil {
		return fmt.Errorf("failed to insert test user: %w", err)
	}

	logger.Info().Str("name", seed.Name).Msg("Seeded test user into empty users collection")
	return nil
}

// Package user implements account lookup and registration.
//
// Authentication is an existence check by name only. The stored password is
// never compared and never leaves the service: every read path projects the
// document through models.User.Redacted.
package user

import (
	"context"
	"fmt"
	"time"

	"github.com/pshvarts/stockfolio/internal/common"
	"github.com/pshvarts/stockfolio/internal/interfaces"
	"github.com/pshvarts/stockfolio/internal/models"
)

// Service implements interfaces.UserService.
type Service struct {
	store  interfaces.UserStore
	logger *common.Logger
}

// NewService creates a user service backed by the given store.
func NewService(store interfaces.UserStore, logger *common.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger,
	}
}

// Authenticate returns the redacted user when a document with the given name
// exists, nil otherwise.
func (s *Service) Authenticate(ctx context.Context, name string) (*models.User, error) {
	found, err := s.store.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if found == nil {
		s.logger.Debug().Str("name", name).Msg("Login attempt for unknown user")
		return nil, nil
	}

	s.logger.Info().Str("name", name).Msg("User authenticated")
	return found.Redacted(), nil
}

// Create inserts the user with timestamps set and returns the redacted
// stored document.
func (s *Service) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if u.Name == "" {
		return nil, fmt.Errorf("%w: name is required", interfaces.ErrValidation)
	}

	now := time.Now()
	doc := *u
	doc.CreatedAt = now
	doc.UpdatedAt = now

	stored, err := s.store.Insert(ctx, &doc)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("name", stored.Name).Msg("User created")
	return stored.Redacted(), nil
}

func (s *Service) GetByName(ctx context.Context, name string) (*models.User, error) {
	found, err := s.store.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	return found.Redacted(), nil
}

func (s *Service) GetAll(ctx context.Context) ([]*models.User, error) {
	all, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	redacted := make([]*models.User, 0, len(all))
	for _, u := range all {
		redacted = append(redacted, u.Redacted())
	}
	return redacted, nil
}

// Compile-time check
var _ interfaces.UserService = (*Service)(nil)

package badger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/timshannon/badgerhold/v4"

	"github.com/pshvarts/stockfolio/internal/common"
	"github.com/pshvarts/stockfolio/internal/models"
)

// userDoc is the stored shape of a user document.
type userDoc struct {
	Key       string `badgerhold:"key"`
	Name      string
	Email     string
	Password  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (d *userDoc) toModel() *models.User {
	return &models.User{
		ID:        d.Key,
		Name:      d.Name,
		Email:     d.Email,
		Password:  d.Password,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type UserStore struct {
	db     *badgerhold.Store
	logger *common.Logger
}

func NewUserStore(db *badgerhold.Store, logger *common.Logger) *UserStore {
	return &UserStore{
		db:     db,
		logger: logger,
	}
}

func (s *UserStore) GetByName(ctx context.Context, name string) (*models.User, error) {
	var docs []userDoc
	if err := s.db.Find(&docs, nil); err != nil {
		return nil, fmt.Errorf("failed to read users: %w", err)
	}
	for i := range docs {
		if docs[i].Name == name {
			return docs[i].toModel(), nil
		}
	}
	return nil, nil
}

func (s *UserStore) List(ctx context.Context) ([]*models.User, error) {
	var docs []userDoc
	if err := s.db.Find(&docs, nil); err != nil {
		return nil, fmt.Errorf("failed to read users: %w", err)
	}

	var mapped []*models.User
	for i := range docs {
		mapped = append(mapped, docs[i].toModel())
	}
	return mapped, nil
}

func (s *UserStore) Insert(ctx context.Context, u *models.User) (*models.User, error) {
	key := u.ID
	if key == "" {
		key = uuid.New().String()
	}

	doc := userDoc{
		Key:       key,
		Name:      u.Name,
		Email:     u.Email,
		Password:  u.Password,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
	if err := s.db.Upsert(key, &doc); err != nil {
		return nil, fmt.Errorf("failed to store user: %w", err)
	}
	return doc.toModel(), nil
}

func (s *UserStore) Count(ctx context.Context) (int, error) {
	users, err := s.List(ctx)
	if err != nil {
		return 0, err
	}
	return len(users), nil
}

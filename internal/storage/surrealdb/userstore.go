package surrealdb

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/pshvarts/stockfolio/internal/common"
	"github.com/pshvarts/stockfolio/internal/models"
)

// userRecord is the stored shape of a user document.
type userRecord struct {
	ID        *surrealmodels.RecordID `json:"id,omitempty"`
	Name      string                  `json:"name"`
	Email     string                  `json:"email,omitempty"`
	Password  string                  `json:"password,omitempty"`
	CreatedAt time.Time               `json:"created_at,omitempty"`
	UpdatedAt time.Time               `json:"updated_at,omitempty"`
}

func (r *userRecord) toModel() *models.User {
	u := &models.User{
		Name:      r.Name,
		Email:     r.Email,
		Password:  r.Password,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if r.ID != nil {
		u.ID = fmt.Sprintf("%v", r.ID.ID)
	}
	return u
}

type UserStore struct {
	m      *Manager
	logger *common.Logger
}

func NewUserStore(m *Manager, logger *common.Logger) *UserStore {
	return &UserStore{
		m:      m,
		logger: logger,
	}
}

func (s *UserStore) GetByName(ctx context.Context, name string) (*models.User, error) {
	db, err := s.m.conn()
	if err != nil {
		return nil, err
	}

	sql := "SELECT * FROM user WHERE name = $name LIMIT 1"
	vars := map[string]any{"name": name}

	results, err := surrealdb.Query[[]userRecord](ctx, db, sql, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to select user: %w", err)
	}

	if results != nil && len(*results) > 0 && len((*results)[0].Result) > 0 {
		return (*results)[0].Result[0].toModel(), nil
	}
	return nil, nil
}

func (s *UserStore) List(ctx context.Context) ([]*models.User, error) {
	db, err := s.m.conn()
	if err != nil {
		return nil, err
	}

	results, err := surrealdb.Query[[]userRecord](ctx, db, "SELECT * FROM user", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	var mapped []*models.User
	if results != nil && len(*results) > 0 {
		for i := range (*results)[0].Result {
			mapped = append(mapped, (*results)[0].Result[i].toModel())
		}
	}
	return mapped, nil
}

func (s *UserStore) Insert(ctx context.Context, u *models.User) (*models.User, error) {
	db, err := s.m.conn()
	if err != nil {
		return nil, err
	}

	id := u.ID
	if id == "" {
		id = uuid.New().String()
	}

	rec := map[string]any{
		"name":       u.Name,
		"email":      u.Email,
		"password":   u.Password,
		"created_at": u.CreatedAt,
		"updated_at": u.UpdatedAt,
	}
	sql := "CREATE type::record('user', $id) CONTENT $user"
	vars := map[string]any{"id": id, "user": rec}

	results, err := surrealdb.Query[[]userRecord](ctx, db, sql, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	if results != nil && len(*results) > 0 && len((*results)[0].Result) > 0 {
		return (*results)[0].Result[0].toModel(), nil
	}
	stored := *u
	stored.ID = id
	return &stored, nil
}

func (s *UserStore) Count(ctx context.Context) (int, error) {
	users, err := s.List(ctx)
	if err != nil {
		return 0, err
	}
	return len(users), nil
}

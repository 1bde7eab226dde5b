package surrealdb

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/pshvarts/stockfolio/internal/common"
	"github.com/pshvarts/stockfolio/internal/models"
)

// portfolioRecord is the stored shape of a portfolio. The record ID is a
// generated UUID, not the user: creating twice for the same user yields two
// documents, matching the upstream collection's behavior.
type portfolioRecord struct {
	ID     *surrealmodels.RecordID `json:"id,omitempty"`
	User   string                  `json:"user"`
	Stocks []models.PortfolioStock `json:"stocks"`
}

func (r *portfolioRecord) toModel() *models.Portfolio {
	p := &models.Portfolio{
		User:   r.User,
		Stocks: r.Stocks,
	}
	if r.ID != nil {
		p.ID = fmt.Sprintf("%v", r.ID.ID)
	}
	return p
}

type PortfolioStore struct {
	m      *Manager
	logger *common.Logger
}

func NewPortfolioStore(m *Manager, logger *common.Logger) *PortfolioStore {
	return &PortfolioStore{
		m:      m,
		logger: logger,
	}
}

func (s *PortfolioStore) Get(ctx context.Context, user string) (*models.Portfolio, error) {
	db, err := s.m.conn()
	if err != nil {
		return nil, err
	}

	sql := "SELECT * FROM portfolio WHERE user = $user LIMIT 1"
	vars := map[string]any{"user": user}

	results, err := surrealdb.Query[[]portfolioRecord](ctx, db, sql, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to select portfolio: %w", err)
	}

	if results != nil && len(*results) > 0 && len((*results)[0].Result) > 0 {
		return (*results)[0].Result[0].toModel(), nil
	}
	return nil, nil
}

func (s *PortfolioStore) List(ctx context.Context) ([]*models.Portfolio, error) {
	db, err := s.m.conn()
	if err != nil {
		return nil, err
	}

	results, err := surrealdb.Query[[]portfolioRecord](ctx, db, "SELECT * FROM portfolio", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list portfolios: %w", err)
	}

	var mapped []*models.Portfolio
	if results != nil && len(*results) > 0 {
		for i := range (*results)[0].Result {
			mapped = append(mapped, (*results)[0].Result[i].toModel())
		}
	}
	return mapped, nil
}

func (s *PortfolioStore) Insert(ctx context.Context, p *models.Portfolio) (*models.Portfolio, error) {
	db, err := s.m.conn()
	if err != nil {
		return nil, err
	}

	id := p.ID
	if id == "" {
		id = uuid.New().String()
	}

	rec := map[string]any{"user": p.User, "stocks": p.Stocks}
	sql := "CREATE type::record('portfolio', $id) CONTENT $portfolio"
	vars := map[string]any{"id": id, "portfolio": rec}

	results, err := surrealdb.Query[[]portfolioRecord](ctx, db, sql, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to insert portfolio: %w", err)
	}

	if results != nil && len(*results) > 0 && len((*results)[0].Result) > 0 {
		return (*results)[0].Result[0].toModel(), nil
	}
	stored := *p
	stored.ID = id
	return &stored, nil
}

func (s *PortfolioStore) Replace(ctx context.Context, p *models.Portfolio) (*models.Portfolio, error) {
	db, err := s.m.conn()
	if err != nil {
		return nil, err
	}
	if p.ID == "" {
		return nil, fmt.Errorf("failed to replace portfolio: missing document id")
	}

	rec := map[string]any{"user": p.User, "stocks": p.Stocks}
	sql := "UPSERT type::record('portfolio', $id) CONTENT $portfolio"
	vars := map[string]any{"id": p.ID, "portfolio": rec}

	results, err := surrealdb.Query[[]portfolioRecord](ctx, db, sql, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to replace portfolio: %w", err)
	}

	if results != nil && len(*results) > 0 && len((*results)[0].Result) > 0 {
		return (*results)[0].Result[0].toModel(), nil
	}
	return p, nil
}

func (s *PortfolioStore) Delete(ctx context.Context, user string) (int, error) {
	db, err := s.m.conn()
	if err != nil {
		return 0, err
	}

	sql := "DELETE FROM portfolio WHERE user = $user RETURN BEFORE"
	vars := map[string]any{"user": user}

	results, err := surrealdb.Query[[]portfolioRecord](ctx, db, sql, vars)
	if err != nil {
		return 0, fmt.Errorf("failed to delete portfolio: %w", err)
	}

	count := 0
	if results != nil && len(*results) > 0 {
		count = len((*results)[0].Result)
	}
	return count, nil
}

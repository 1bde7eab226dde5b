package badger

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/timshannon/badgerhold/v4"

	"github.com/pshvarts/stockfolio/internal/common"
	"github.com/pshvarts/stockfolio/internal/models"
)

// portfolioDoc is the stored shape of a portfolio. The key is a generated
// UUID rather than the user name, so creating twice for the same user yields
// two documents, matching the document-store behavior.
type portfolioDoc struct {
	Key    string `badgerhold:"key"`
	User   string
	Stocks []models.PortfolioStock
}

func (d *portfolioDoc) toModel() *models.Portfolio {
	return &models.Portfolio{
		ID:     d.Key,
		User:   d.User,
		Stocks: d.Stocks,
	}
}

type PortfolioStore struct {
	db     *badgerhold.Store
	logger *common.Logger
}

func NewPortfolioStore(db *badgerhold.Store, logger *common.Logger) *PortfolioStore {
	return &PortfolioStore{
		db:     db,
		logger: logger,
	}
}

func (s *PortfolioStore) Get(ctx context.Context, user string) (*models.Portfolio, error) {
	var docs []portfolioDoc
	if err := s.db.Find(&docs, nil); err != nil {
		return nil, fmt.Errorf("failed to read portfolios: %w", err)
	}
	for i := range docs {
		if docs[i].User == user {
			return docs[i].toModel(), nil
		}
	}
	return nil, nil
}

func (s *PortfolioStore) List(ctx context.Context) ([]*models.Portfolio, error) {
	var docs []portfolioDoc
	if err := s.db.Find(&docs, nil); err != nil {
		return nil, fmt.Errorf("failed to read portfolios: %w", err)
	}

	var mapped []*models.Portfolio
	for i := range docs {
		mapped = append(mapped, docs[i].toModel())
	}
	return mapped, nil
}

func (s *PortfolioStore) Insert(ctx context.Context, p *models.Portfolio) (*models.Portfolio, error) {
	key := p.ID
	if key == "" {
		key = uuid.New().String()
	}

	doc := portfolioDoc{
		Key:    key,
		User:   p.User,
		Stocks: p.Stocks,
	}
	if err := s.db.Upsert(key, &doc); err != nil {
		return nil, fmt.Errorf("failed to store portfolio: %w", err)
	}
	return doc.toModel(), nil
}

func (s *PortfolioStore) Replace(ctx context.Context, p *models.Portfolio) (*models.Portfolio, error) {
	if p.ID == "" {
		return nil, fmt.Errorf("failed to replace portfolio: missing document id")
	}

	doc := portfolioDoc{
		Key:    p.ID,
		User:   p.User,
		Stocks: p.Stocks,
	}
	if err := s.db.Upsert(p.ID, &doc); err != nil {
		return nil, fmt.Errorf("failed to replace portfolio: %w", err)
	}
	return doc.toModel(), nil
}

func (s *PortfolioStore) Delete(ctx context.Context, user string) (int, error) {
	var docs []portfolioDoc
	if err := s.db.Find(&docs, nil); err != nil {
		return 0, fmt.Errorf("failed to read portfolios: %w", err)
	}

	count := 0
	for i := range docs {
		if docs[i].User != user {
			continue
		}
		if err := s.db.Delete(docs[i].Key, portfolioDoc{}); err != nil {
			return count, fmt.Errorf("failed to delete portfolio: %w", err)
		}
		count++
	}
	return count, nil
}

package usecase

import (
	"context"

	"github.com/menuscraper/backend/internal/domain"
)

// CatalogService answers read-only queries over the stored catalog.
// Each call re-reads the document, so results always reflect the file on disk.
type CatalogService struct {
	store domain.CatalogRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(store domain.CatalogRepository) *CatalogService {
	return &CatalogService{store: store}
}

// GetAllProducts returns the whole catalog
func (s *CatalogService) GetAllProducts(ctx context.Context) (domain.Catalog, error) {
	return s.store.Load(ctx)
}

// GetProduct returns the product stored under the exact slug name
func (s *CatalogService) GetProduct(ctx context.Context, name string) (*domain.Product, error) {
	catalog, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	product, ok := catalog[name]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return &product, nil
}

// GetProductField returns a single-entry map {field: value} for one product
func (s *CatalogService) GetProductField(ctx context.Context, name, field string) (map[string]string, error) {
	product, err := s.GetProduct(ctx, name)
	if err != nil {
		return nil, err
	}

	value, ok := product.Field(field)
	if !ok {
		return nil, domain.ErrFieldNotFound
	}
	return map[string]string{field: value}, nil
}

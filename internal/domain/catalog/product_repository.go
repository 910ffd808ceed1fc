package catalog

import (
	"context"

	"github.com/aurelia/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProductRepository defines the persistence interface for products
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindBySlug finds a product by its URL slug
	FindBySlug(ctx context.Context, slug string) (*Product, error)

	// FindAll finds products matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)

	// FindFeatured finds up to limit featured products, newest first
	FindFeatured(ctx context.Context, limit int) ([]Product, error)

	// Count counts products matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ExistsBySlug checks whether a product with the slug exists
	ExistsBySlug(ctx context.Context, slug string) (bool, error)

	// Save persists a product (create or update)
	Save(ctx context.Context, product *Product) error

	// Delete removes a product by ID
	Delete(ctx context.Context, id uuid.UUID) error
}

package catalog

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aurelia/backend/internal/domain/catalog"
	"github.com/aurelia/backend/internal/domain/shared"
)

// ProductService handles admin-side catalog operations. All writes go
// through here so domain events always reach the bus.
type ProductService struct {
	productRepo catalog.ProductRepository
	events      shared.EventPublisher
	logger      *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository, events shared.EventPublisher, logger *zap.Logger) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		events:      events,
		logger:      logger,
	}
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	category := catalog.ProductCategory(req.Category)
	if !category.IsValid() {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Unknown product category")
	}

	exists, err := s.productRepo.ExistsBySlug(ctx, strings.ToLower(strings.TrimSpace(req.Slug)))
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Product with this slug already exists")
	}

	product, err := catalog.NewProduct(req.Slug, req.Name, category, req.Price)
	if err != nil {
		return nil, err
	}

	if err := product.Update(req.Name, req.ShortDescription, req.Description, category,
		req.SubCategory, req.Material, req.Stone, req.Weight, req.Size); err != nil {
		return nil, err
	}

	if req.OriginalPrice != nil {
		if err := product.SetPricing(req.Price, *req.OriginalPrice); err != nil {
			return nil, err
		}
	}
	if req.Stock != nil {
		if err := product.SetStock(*req.Stock); err != nil {
			return nil, err
		}
	}
	if req.IsFeatured {
		product.Feature()
	}
	product.MarkBestseller(req.IsBestseller)
	if len(req.Images) > 0 || req.VideoURL != "" {
		if err := product.SetMedia(req.Images, req.VideoURL); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, product)
	return toProductResponse(product), nil
}

// Update updates a product's descriptive fields
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name := product.Name
	if req.Name != nil {
		name = *req.Name
	}
	shortDescription := product.ShortDescription
	if req.ShortDescription != nil {
		shortDescription = *req.ShortDescription
	}
	description := product.Description
	if req.Description != nil {
		description = *req.Description
	}
	category := product.Category
	if req.Category != nil {
		category = catalog.ProductCategory(*req.Category)
		if !category.IsValid() {
			return nil, shared.NewDomainError("INVALID_CATEGORY", "Unknown product category")
		}
	}
	subCategory := orCurrent(req.SubCategory, product.SubCategory)
	material := orCurrent(req.Material, product.Material)
	stone := orCurrent(req.Stone, product.Stone)
	weight := orCurrent(req.Weight, product.Weight)
	size := orCurrent(req.Size, product.Size)

	if err := product.Update(name, shortDescription, description, category,
		subCategory, material, stone, weight, size); err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, product)
	return toProductResponse(product), nil
}

// SetPricing updates the display and strike-through prices
func (s *ProductService) SetPricing(ctx context.Context, id uuid.UUID, req SetPricingRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := product.SetPricing(req.Price, req.OriginalPrice); err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, product)
	return toProductResponse(product), nil
}

// SetStock replaces the absolute stock level
func (s *ProductService) SetStock(ctx context.Context, id uuid.UUID, req SetStockRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := product.SetStock(req.Stock); err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, product)
	return toProductResponse(product), nil
}

// SetFlags toggles the featured and bestseller flags
func (s *ProductService) SetFlags(ctx context.Context, id uuid.UUID, req SetFlagsRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.IsFeatured != nil {
		if *req.IsFeatured {
			product.Feature()
		} else {
			product.Unfeature()
		}
	}
	if req.IsBestseller != nil {
		product.MarkBestseller(*req.IsBestseller)
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, product)
	return toProductResponse(product), nil
}

// SetMedia replaces the product's images and video
func (s *ProductService) SetMedia(ctx context.Context, id uuid.UUID, req SetMediaRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := product.SetMedia(req.Images, req.VideoURL); err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, product)
	return toProductResponse(product), nil
}

// Delete removes a product
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.events.Publish(ctx, catalog.NewProductDeletedEvent(product.ID, product.Slug)); err != nil {
		s.logger.Error("failed to publish product deleted event",
			zap.String("product_id", product.ID.String()),
			zap.Error(err),
		)
	}

	return nil
}

// GetByID returns a single product
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetBySlug returns a single product by URL slug
func (s *ProductService) GetBySlug(ctx context.Context, slug string) (*ProductResponse, error) {
	product, err := s.productRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List returns a page of products matching the request
func (s *ProductService) List(ctx context.Context, req ListProductsRequest) (*shared.Paginated[ProductResponse], error) {
	filter := shared.DefaultFilter()
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 {
		filter.PageSize = req.PageSize
	}
	if req.OrderBy != "" {
		filter.OrderBy = req.OrderBy
	}
	if req.OrderDir != "" {
		filter.OrderDir = req.OrderDir
	}
	filter.Search = req.Search

	if req.Category != "" {
		filter.Filters["category"] = req.Category
	}
	if req.SubCategory != "" {
		filter.Filters["sub_category"] = req.SubCategory
	}
	if req.Material != "" {
		filter.Filters["material"] = req.Material
	}
	if req.InStock != nil && *req.InStock {
		filter.Filters["in_stock"] = true
	}
	if req.Featured != nil {
		filter.Filters["featured"] = *req.Featured
	}

	products, err := s.productRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.productRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]ProductResponse, 0, len(products))
	for i := range products {
		items = append(items, *toProductResponse(&products[i]))
	}

	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// FeaturedProducts returns up to limit featured products, newest first
func (s *ProductService) FeaturedProducts(ctx context.Context, limit int) ([]ProductResponse, error) {
	products, err := s.productRepo.FindFeatured(ctx, limit)
	if err != nil {
		return nil, err
	}

	items := make([]ProductResponse, 0, len(products))
	for i := range products {
		items = append(items, *toProductResponse(&products[i]))
	}
	return items, nil
}

// publishEvents drains the aggregate's events onto the bus. Publish
// failures are logged, not returned: the write already committed.
func (s *ProductService) publishEvents(ctx context.Context, product *catalog.Product) {
	events := product.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.events.Publish(ctx, events...); err != nil {
		s.logger.Error("failed to publish product events",
			zap.String("product_id", product.ID.String()),
			zap.Error(err),
		)
	}
	product.ClearDomainEvents()
}

func orCurrent(requested *string, current string) string {
	if requested != nil {
		return *requested
	}
	return current
}

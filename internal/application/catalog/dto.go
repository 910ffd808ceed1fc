package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/aurelia/backend/internal/domain/catalog"
)

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	Slug             string           `json:"slug" binding:"required,slug,max=120"`
	Name             string           `json:"name" binding:"required,min=1,max=200"`
	ShortDescription string           `json:"short_description" binding:"max=500"`
	Description      string           `json:"description" binding:"max=5000"`
	Category         string           `json:"category" binding:"required"`
	SubCategory      string           `json:"sub_category" binding:"max=60"`
	Material         string           `json:"material" binding:"max=60"`
	Stone            string           `json:"stone" binding:"max=60"`
	Weight           string           `json:"weight" binding:"max=40"`
	Size             string           `json:"size" binding:"max=40"`
	Price            decimal.Decimal  `json:"price" binding:"required"`
	OriginalPrice    *decimal.Decimal `json:"original_price"`
	Stock            *int             `json:"stock"`
	IsFeatured       bool             `json:"is_featured"`
	IsBestseller     bool             `json:"is_bestseller"`
	Images           []string         `json:"images"`
	VideoURL         string           `json:"video_url" binding:"max=500"`
}

// UpdateProductRequest represents a request to update a product.
// Nil fields are left unchanged.
type UpdateProductRequest struct {
	Name             *string `json:"name" binding:"omitempty,min=1,max=200"`
	ShortDescription *string `json:"short_description" binding:"omitempty,max=500"`
	Description      *string `json:"description" binding:"omitempty,max=5000"`
	Category         *string `json:"category"`
	SubCategory      *string `json:"sub_category" binding:"omitempty,max=60"`
	Material         *string `json:"material" binding:"omitempty,max=60"`
	Stone            *string `json:"stone" binding:"omitempty,max=60"`
	Weight           *string `json:"weight" binding:"omitempty,max=40"`
	Size             *string `json:"size" binding:"omitempty,max=40"`
}

// SetPricingRequest updates the display and strike-through prices
type SetPricingRequest struct {
	Price         decimal.Decimal `json:"price" binding:"required"`
	OriginalPrice decimal.Decimal `json:"original_price"`
}

// SetStockRequest replaces the absolute stock level
type SetStockRequest struct {
	Stock int `json:"stock" binding:"min=0"`
}

// SetFlagsRequest toggles merchandising flags
type SetFlagsRequest struct {
	IsFeatured   *bool `json:"is_featured"`
	IsBestseller *bool `json:"is_bestseller"`
}

// SetMediaRequest replaces the product's media
type SetMediaRequest struct {
	Images   []string `json:"images"`
	VideoURL string   `json:"video_url" binding:"max=500"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID               uuid.UUID       `json:"id"`
	Slug             string          `json:"slug"`
	Name             string          `json:"name"`
	ShortDescription string          `json:"short_description"`
	Description      string          `json:"description"`
	Category         string          `json:"category"`
	SubCategory      string          `json:"sub_category,omitempty"`
	Material         string          `json:"material,omitempty"`
	Stone            string          `json:"stone,omitempty"`
	Weight           string          `json:"weight,omitempty"`
	Size             string          `json:"size,omitempty"`
	Price            decimal.Decimal `json:"price"`
	OriginalPrice    decimal.Decimal `json:"original_price"`
	HasDiscount      bool            `json:"has_discount"`
	Stock            int             `json:"stock"`
	Available        bool            `json:"available"`
	IsFeatured       bool            `json:"is_featured"`
	IsBestseller     bool            `json:"is_bestseller"`
	Images           []string        `json:"images"`
	VideoURL         string          `json:"video_url,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// ListProductsRequest carries admin list filters
type ListProductsRequest struct {
	Page        int    `form:"page"`
	PageSize    int    `form:"page_size"`
	Search      string `form:"search"`
	Category    string `form:"category"`
	SubCategory string `form:"sub_category"`
	Material    string `form:"material"`
	InStock     *bool  `form:"in_stock"`
	Featured    *bool  `form:"featured"`
	OrderBy     string `form:"order_by"`
	OrderDir    string `form:"order_dir"`
}

func toProductResponse(p *catalog.Product) *ProductResponse {
	return &ProductResponse{
		ID:               p.ID,
		Slug:             p.Slug,
		Name:             p.Name,
		ShortDescription: p.ShortDescription,
		Description:      p.Description,
		Category:         string(p.Category),
		SubCategory:      p.SubCategory,
		Material:         p.Material,
		Stone:            p.Stone,
		Weight:           p.Weight,
		Size:             p.Size,
		Price:            p.Price,
		OriginalPrice:    p.OriginalPrice,
		HasDiscount:      p.HasDiscount(),
		Stock:            p.Stock,
		Available:        p.IsAvailable(),
		IsFeatured:       p.IsFeatured,
		IsBestseller:     p.IsBestseller,
		Images:           p.Images,
		VideoURL:         p.VideoURL,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

package catalog

import (
	"strings"

	"github.com/aurelia/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ProductCategory represents the top-level jewellery category
type ProductCategory string

const (
	CategoryRings     ProductCategory = "Rings"
	CategoryNecklaces ProductCategory = "Necklaces"
	CategoryEarrings  ProductCategory = "Earrings"
	CategoryBracelets ProductCategory = "Bracelets"
)

// IsValid checks if the category is a known jewellery category
func (c ProductCategory) IsValid() bool {
	switch c {
	case CategoryRings, CategoryNecklaces, CategoryEarrings, CategoryBracelets:
		return true
	}
	return false
}

// String returns the string representation of the category
func (c ProductCategory) String() string {
	return string(c)
}

// AllCategories returns every known category in display order
func AllCategories() []ProductCategory {
	return []ProductCategory{CategoryRings, CategoryNecklaces, CategoryEarrings, CategoryBracelets}
}

// Product is the catalog aggregate root for a locally managed jewellery piece
type Product struct {
	shared.BaseAggregateRoot
	Slug             string          `gorm:"type:varchar(120);not null;uniqueIndex"`
	Name             string          `gorm:"type:varchar(200);not null"`
	ShortDescription string          `gorm:"type:varchar(500)"`
	Description      string          `gorm:"type:text"`
	Category         ProductCategory `gorm:"type:varchar(30);not null;index"`
	SubCategory      string          `gorm:"type:varchar(60);index"`
	Material         string          `gorm:"type:varchar(60);index"`
	Stone            string          `gorm:"type:varchar(60)"`
	Weight           string          `gorm:"type:varchar(40)"`
	Size             string          `gorm:"type:varchar(40)"`
	Price            decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	OriginalPrice    decimal.Decimal `gorm:"type:decimal(12,2)"`
	Stock            int             `gorm:"not null;default:0"`
	IsFeatured       bool            `gorm:"not null;default:false;index"`
	IsBestseller     bool            `gorm:"not null;default:false"`
	Images           []string        `gorm:"serializer:json"`
	VideoURL         string          `gorm:"type:varchar(500)"`
}

// TableName returns the database table name
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product with validation
func NewProduct(slug, name string, category ProductCategory, price decimal.Decimal) (*Product, error) {
	slug = strings.TrimSpace(strings.ToLower(slug))
	name = strings.TrimSpace(name)

	if slug == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_SLUG", "Product slug cannot be empty")
	}
	if strings.ContainsAny(slug, " /\\") {
		return nil, shared.NewDomainError("INVALID_PRODUCT_SLUG", "Product slug cannot contain spaces or slashes")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot exceed 200 characters")
	}
	if !category.IsValid() {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Unknown product category: "+category.String())
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Product price cannot be negative")
	}

	product := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Slug:              slug,
		Name:              name,
		Category:          category,
		Price:             price,
	}

	product.AddDomainEvent(NewProductCreatedEvent(product))
	return product, nil
}

// Update updates the descriptive fields of the product
func (p *Product) Update(name, shortDescription, description string, category ProductCategory, subCategory, material, stone, weight, size string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot exceed 200 characters")
	}
	if !category.IsValid() {
		return shared.NewDomainError("INVALID_CATEGORY", "Unknown product category: "+category.String())
	}

	p.Name = name
	p.ShortDescription = strings.TrimSpace(shortDescription)
	p.Description = strings.TrimSpace(description)
	p.Category = category
	p.SubCategory = strings.TrimSpace(subCategory)
	p.Material = strings.TrimSpace(material)
	p.Stone = strings.TrimSpace(stone)
	p.Weight = strings.TrimSpace(weight)
	p.Size = strings.TrimSpace(size)
	p.IncrementVersion()

	p.AddDomainEvent(NewProductUpdatedEvent(p))
	return nil
}

// SetPricing updates the selling price and the optional strike-through price
func (p *Product) SetPricing(price, originalPrice decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Product price cannot be negative")
	}
	if !originalPrice.IsZero() && originalPrice.LessThan(price) {
		return shared.NewDomainError("INVALID_PRICE", "Original price cannot be lower than the selling price")
	}

	oldPrice := p.Price
	p.Price = price
	p.OriginalPrice = originalPrice
	p.IncrementVersion()

	if !oldPrice.Equal(price) {
		p.AddDomainEvent(NewProductPriceChangedEvent(p, oldPrice, price))
	}
	return nil
}

// SetStock replaces the on-hand stock count
func (p *Product) SetStock(quantity int) error {
	if quantity < 0 {
		return shared.NewDomainError("INVALID_STOCK", "Stock cannot be negative")
	}
	p.Stock = quantity
	p.IncrementVersion()
	return nil
}

// DeductStock removes quantity units from stock, failing when not enough are on hand
func (p *Product) DeductStock(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if p.Stock < quantity {
		return shared.ErrInsufficientStock
	}
	p.Stock -= quantity
	p.IncrementVersion()
	return nil
}

// RestoreStock returns quantity units to stock, undoing a deduction
// for a cancelled order
func (p *Product) RestoreStock(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	p.Stock += quantity
	p.IncrementVersion()
	return nil
}

// IsAvailable reports whether the product can be added to a cart
func (p *Product) IsAvailable() bool {
	return p.Stock > 0
}

// Feature marks the product as featured on the home page
func (p *Product) Feature() {
	if p.IsFeatured {
		return
	}
	p.IsFeatured = true
	p.IncrementVersion()
	p.AddDomainEvent(NewProductUpdatedEvent(p))
}

// Unfeature removes the product from the featured set
func (p *Product) Unfeature() {
	if !p.IsFeatured {
		return
	}
	p.IsFeatured = false
	p.IncrementVersion()
	p.AddDomainEvent(NewProductUpdatedEvent(p))
}

// MarkBestseller flags the product as a bestseller
func (p *Product) MarkBestseller(bestseller bool) {
	if p.IsBestseller == bestseller {
		return
	}
	p.IsBestseller = bestseller
	p.IncrementVersion()
}

// SetMedia replaces the product imagery and optional video
func (p *Product) SetMedia(images []string, videoURL string) error {
	for _, img := range images {
		if strings.TrimSpace(img) == "" {
			return shared.NewDomainError("INVALID_IMAGE", "Image URL cannot be empty")
		}
	}
	p.Images = images
	p.VideoURL = strings.TrimSpace(videoURL)
	p.IncrementVersion()
	return nil
}

// PrimaryImage returns the first image, or empty when the product has none
func (p *Product) PrimaryImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// HasDiscount reports whether a strike-through price should be shown
func (p *Product) HasDiscount() bool {
	return !p.OriginalPrice.IsZero() && p.OriginalPrice.GreaterThan(p.Price)
}

// SearchText returns the lower-cased text searched by keyword filters
func (p *Product) SearchText() string {
	return strings.ToLower(strings.Join([]string{
		p.Name, p.Slug, p.ShortDescription, p.Description, p.Material, p.Stone, p.SubCategory,
	}, " "))
}

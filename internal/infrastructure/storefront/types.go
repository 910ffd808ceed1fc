package storefront

import (
	"strings"
	"time"
)

// MoneyV2 is a monetary amount as returned by the storefront API
type MoneyV2 struct {
	Amount       string `json:"amount"`
	CurrencyCode string `json:"currencyCode"`
}

// Image is a product image
type Image struct {
	URL     string `json:"url"`
	AltText string `json:"altText"`
}

// SelectedOption is a variant option such as size or material
type SelectedOption struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Variant is a purchasable variation of a product
type Variant struct {
	ID               string           `json:"id"`
	Title            string           `json:"title"`
	AvailableForSale bool             `json:"availableForSale"`
	Price            MoneyV2          `json:"price"`
	SelectedOptions  []SelectedOption `json:"selectedOptions"`
}

// Product is a product listed on the remote platform
type Product struct {
	ID               string    `json:"id"`
	Handle           string    `json:"handle"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	Tags             []string  `json:"tags"`
	AvailableForSale bool      `json:"availableForSale"`
	CreatedAt        time.Time `json:"createdAt"`
	MinPrice         MoneyV2   `json:"minPrice"`
	Images           []Image   `json:"images"`
	Variants         []Variant `json:"variants"`
}

// IsAvailable reports whether the product or any of its variants can be sold
func (p *Product) IsAvailable() bool {
	if p.AvailableForSale {
		return true
	}
	for _, v := range p.Variants {
		if v.AvailableForSale {
			return true
		}
	}
	return false
}

// PrimaryImage returns the first image URL, or empty when the listing has none
func (p *Product) PrimaryImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0].URL
}

// SearchText returns the lower-cased text searched by keyword filters
func (p *Product) SearchText() string {
	parts := []string{p.Title, p.Handle, p.Description}
	parts = append(parts, p.Tags...)
	return strings.ToLower(strings.Join(parts, " "))
}

// ProductPage is one page of remote products. Warning carries soft
// failures the platform reported inside an otherwise successful
// response; an empty page with a warning is distinct from an empty shop.
type ProductPage struct {
	Items   []Product
	Warning string
}

// ---------------------------------------------------------------------------
// Wire types for the GraphQL connection shapes
// ---------------------------------------------------------------------------

type gqlError struct {
	Message    string `json:"message"`
	Extensions struct {
		Code string `json:"code"`
	} `json:"extensions"`
}

type gqlResponse struct {
	Data   *gqlData   `json:"data"`
	Errors []gqlError `json:"errors"`
}

type gqlData struct {
	Products   *productConnection `json:"products"`
	Collection *struct {
		Products *productConnection `json:"products"`
	} `json:"collection"`
}

type productConnection struct {
	Edges []struct {
		Node productNode `json:"node"`
	} `json:"edges"`
}

type productNode struct {
	ID               string    `json:"id"`
	Handle           string    `json:"handle"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	Tags             []string  `json:"tags"`
	AvailableForSale bool      `json:"availableForSale"`
	CreatedAt        time.Time `json:"createdAt"`
	PriceRange       struct {
		MinVariantPrice MoneyV2 `json:"minVariantPrice"`
	} `json:"priceRange"`
	Images struct {
		Edges []struct {
			Node Image `json:"node"`
		} `json:"edges"`
	} `json:"images"`
	Variants struct {
		Edges []struct {
			Node Variant `json:"node"`
		} `json:"edges"`
	} `json:"variants"`
}

// flatten converts the connection shape into the exported Product
func (n *productNode) flatten() Product {
	p := Product{
		ID:               n.ID,
		Handle:           n.Handle,
		Title:            n.Title,
		Description:      n.Description,
		Tags:             n.Tags,
		AvailableForSale: n.AvailableForSale,
		CreatedAt:        n.CreatedAt,
		MinPrice:         n.PriceRange.MinVariantPrice,
	}
	for _, edge := range n.Images.Edges {
		p.Images = append(p.Images, edge.Node)
	}
	for _, edge := range n.Variants.Edges {
		p.Variants = append(p.Variants, edge.Node)
	}
	return p
}

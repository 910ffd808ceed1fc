package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	catalogapp "github.com/aurelia/backend/internal/application/catalog"
	"github.com/aurelia/backend/internal/application/shopfront"
)

// defaultFetchLimit bounds how many items each source contributes to a
// page before filtering
const defaultFetchLimit = 48

// maxPageLimit caps the page size a client may request
const maxPageLimit = 100

// ShopfrontHandler handles the public shop browsing endpoints
type ShopfrontHandler struct {
	BaseHandler
	shop     *shopfront.Service
	products *catalogapp.ProductService
}

// NewShopfrontHandler creates a new ShopfrontHandler
func NewShopfrontHandler(shop *shopfront.Service, products *catalogapp.ProductService) *ShopfrontHandler {
	return &ShopfrontHandler{
		shop:     shop,
		products: products,
	}
}

// Browse godoc
// @Summary      Browse the unified shop page
// @Description  Merges the house catalog with the partner collection and applies filters
// @Tags         shop
// @Produce      json
// @Param        keyword query string false "Free-text search"
// @Param        in_stock query bool false "Only show available items"
// @Param        bucket query string false "Price bucket ID"
// @Param        category query string false "Category filter"
// @Param        material query string false "Material filter"
// @Param        sort query string false "Sort option"
// @Param        source query string false "Restrict to one source (local or remote)"
// @Param        limit query int false "Maximum items on the page"
// @Success      200 {object} dto.Response
// @Router       /shop/products [get]
func (h *ShopfrontHandler) Browse(c *gin.Context) {
	result, err := h.shop.Browse(c.Request.Context(), defaultFetchLimit, parseQuery(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// BrowseCollection godoc
// @Summary      Browse a partner collection
// @Description  Like Browse, but the remote side is scoped to one collection
// @Tags         shop
// @Produce      json
// @Param        handle path string true "Collection handle"
// @Success      200 {object} dto.Response
// @Router       /shop/collections/{handle}/products [get]
func (h *ShopfrontHandler) BrowseCollection(c *gin.Context) {
	handle := c.Param("handle")

	result, err := h.shop.BrowseCollection(c.Request.Context(), handle, defaultFetchLimit, parseQuery(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// ProductBySlug godoc
// @Summary      Get a catalog product by slug
// @Tags         shop
// @Produce      json
// @Param        slug path string true "Product slug"
// @Success      200 {object} dto.Response{data=catalogapp.ProductResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /shop/products/{slug} [get]
func (h *ShopfrontHandler) ProductBySlug(c *gin.Context) {
	product, err := h.products.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Featured godoc
// @Summary      List featured catalog products
// @Tags         shop
// @Produce      json
// @Param        limit query int false "Maximum items" default(8)
// @Success      200 {object} dto.Response{data=[]catalogapp.ProductResponse}
// @Router       /shop/featured [get]
func (h *ShopfrontHandler) Featured(c *gin.Context) {
	limit := parseLimit(c.Query("limit"), 8)

	products, err := h.products.FeaturedProducts(c.Request.Context(), limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, products)
}

// PriceBucketResponse describes one rung of the price ladder
type PriceBucketResponse struct {
	ID    string  `json:"id" example:"1000-5000"`
	Label string  `json:"label" example:"₹1,000 – ₹5,000"`
	Min   string  `json:"min" example:"1000"`
	Max   *string `json:"max,omitempty" example:"5000"`
}

// PriceBuckets godoc
// @Summary      List the price filter ladder
// @Tags         shop
// @Produce      json
// @Success      200 {object} dto.Response{data=[]PriceBucketResponse}
// @Router       /shop/price-buckets [get]
func (h *ShopfrontHandler) PriceBuckets(c *gin.Context) {
	ladder := shopfront.DefaultLadder()
	out := make([]PriceBucketResponse, 0, len(ladder))
	for _, b := range ladder {
		resp := PriceBucketResponse{
			ID:    b.ID,
			Label: b.Label,
			Min:   b.Min.String(),
		}
		if b.Max != nil {
			max := b.Max.String()
			resp.Max = &max
		}
		out = append(out, resp)
	}
	h.Success(c, out)
}

// parseQuery builds a browse query from URL parameters. Malformed
// values behave like absent filters so a hand-edited URL never breaks
// the page.
func parseQuery(c *gin.Context) shopfront.Query {
	query := shopfront.Query{
		Keyword:  c.Query("keyword"),
		Category: c.Query("category"),
		Material: c.Query("material"),
		Sort:     shopfront.ParseSortOption(c.Query("sort")),
		Bucket:   shopfront.BucketByID(c.Query("bucket")),
		Limit:    parseLimit(c.Query("limit"), 0),
	}

	if inStock, err := strconv.ParseBool(c.Query("in_stock")); err == nil {
		query.InStockOnly = inStock
	}

	switch strings.ToLower(c.Query("source")) {
	case string(shopfront.SourceLocal):
		query.Source = shopfront.SourceLocal
	case string(shopfront.SourceRemote):
		query.Source = shopfront.SourceRemote
	}

	return query
}

func parseLimit(raw string, fallback int) int {
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return fallback
	}
	if limit > maxPageLimit {
		return maxPageLimit
	}
	return limit
}

package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// maxResponseSize is the maximum allowed response size from the storefront API (4MB)
const maxResponseSize = 4 * 1024 * 1024

// Errors returned by the storefront client
var (
	// ErrUnavailable indicates the platform could not be reached
	ErrUnavailable = errors.New("storefront: platform unavailable")
	// ErrRequestFailed indicates the platform rejected the request
	ErrRequestFailed = errors.New("storefront: request failed")
)

// SortHint asks the platform to order results server-side. Hints the
// platform cannot honor fall back to its default ordering.
type SortHint string

const (
	SortHintDefault     SortHint = ""
	SortHintBestSelling SortHint = "best-selling"
	SortHintNewest      SortHint = "newest"
	SortHintPriceAsc    SortHint = "price-ascending"
	SortHintPriceDesc   SortHint = "price-descending"
	SortHintTitleAsc    SortHint = "title-ascending"
	SortHintTitleDesc   SortHint = "title-descending"
)

// sortArgs maps the hint to the platform's sort key and direction.
// An empty sort key means the platform's default ordering.
func (h SortHint) sortArgs() (sortKey string, reverse bool) {
	switch h {
	case SortHintBestSelling:
		return "BEST_SELLING", false
	case SortHintNewest:
		return "CREATED_AT", true
	case SortHintPriceAsc:
		return "PRICE", false
	case SortHintPriceDesc:
		return "PRICE", true
	case SortHintTitleAsc:
		return "TITLE", false
	case SortHintTitleDesc:
		return "TITLE", true
	default:
		return "", false
	}
}

const productFields = `
	id
	handle
	title
	description
	tags
	availableForSale
	createdAt
	priceRange { minVariantPrice { amount currencyCode } }
	images(first: 10) { edges { node { url altText } } }
	variants(first: 50) {
		edges {
			node {
				id
				title
				availableForSale
				price { amount currencyCode }
				selectedOptions { name value }
			}
		}
	}`

var productsQuery = fmt.Sprintf(`
query Products($first: Int!, $sortKey: ProductSortKeys, $reverse: Boolean) {
	products(first: $first, sortKey: $sortKey, reverse: $reverse) {
		edges { node {%s} }
	}
}`, productFields)

var collectionQuery = fmt.Sprintf(`
query CollectionProducts($handle: String!, $first: Int!, $sortKey: ProductCollectionSortKeys, $reverse: Boolean) {
	collection(handle: $handle) {
		products(first: $first, sortKey: $sortKey, reverse: $reverse) {
			edges { node {%s} }
		}
	}
}`, productFields)

// Client is an HTTP client for the storefront GraphQL API
type Client struct {
	config     *Config
	httpClient *http.Client
	logger     *zap.Logger
}

// ClientOption configures a Client
type ClientOption func(*Client)

// WithLogger sets the logger for the client
func WithLogger(logger *zap.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a new storefront client
func NewClient(config *Config, opts ...ClientOption) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: time.Duration(config.TimeoutSeconds) * time.Second,
		},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ListProducts fetches up to limit products from the platform.
// Soft failures reported inside a successful response surface as a
// warning on the page, not as an error.
func (c *Client) ListProducts(ctx context.Context, limit int, hint SortHint) (*ProductPage, error) {
	variables := map[string]any{"first": limit}
	if sortKey, reverse := hint.sortArgs(); sortKey != "" {
		variables["sortKey"] = sortKey
		variables["reverse"] = reverse
	}

	resp, err := c.execute(ctx, productsQuery, variables)
	if err != nil {
		return nil, err
	}

	page := &ProductPage{Warning: joinErrors(resp.Errors)}
	if resp.Data != nil && resp.Data.Products != nil {
		for _, edge := range resp.Data.Products.Edges {
			page.Items = append(page.Items, edge.Node.flatten())
		}
	}
	return page, nil
}

// ListCollectionProducts fetches up to limit products from a named
// collection. A missing collection yields an empty page with a warning.
func (c *Client) ListCollectionProducts(ctx context.Context, handle string, limit int, hint SortHint) (*ProductPage, error) {
	variables := map[string]any{"handle": handle, "first": limit}
	if sortKey, reverse := hint.sortArgs(); sortKey != "" {
		variables["sortKey"] = sortKey
		variables["reverse"] = reverse
	}

	resp, err := c.execute(ctx, collectionQuery, variables)
	if err != nil {
		return nil, err
	}

	page := &ProductPage{Warning: joinErrors(resp.Errors)}
	switch {
	case resp.Data == nil || resp.Data.Collection == nil:
		if page.Warning == "" {
			page.Warning = fmt.Sprintf("collection %q not found", handle)
		}
	case resp.Data.Collection.Products != nil:
		for _, edge := range resp.Data.Collection.Products.Edges {
			page.Items = append(page.Items, edge.Node.flatten())
		}
	}
	return page, nil
}

// execute posts a GraphQL query and decodes the response envelope
func (c *Client) execute(ctx context.Context, query string, variables map[string]any) (*gqlResponse, error) {
	payload, err := json.Marshal(map[string]any{
		"query":     query,
		"variables": variables,
	})
	if err != nil {
		return nil, fmt.Errorf("storefront: failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.APIURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("storefront: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Storefront-Access-Token", c.config.AccessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("storefront: failed to read response: %w", err)
	}

	if resp.StatusCode >= 500 {
		return nil, fmt.Errorf("%w: HTTP %d", ErrUnavailable, resp.StatusCode)
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: HTTP %d", ErrRequestFailed, resp.StatusCode)
	}

	var envelope gqlResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("storefront: failed to decode response: %w", err)
	}

	if len(envelope.Errors) > 0 {
		c.logger.Warn("Storefront query returned errors",
			zap.String("url", c.config.APIURL),
			zap.String("errors", joinErrors(envelope.Errors)),
		)
	}

	return &envelope, nil
}

// joinErrors flattens GraphQL errors into a single warning string
func joinErrors(errs []gqlError) string {
	if len(errs) == 0 {
		return ""
	}
	messages := make([]string, 0, len(errs))
	for _, e := range errs {
		messages = append(messages, e.Message)
	}
	return strings.Join(messages, "; ")
}

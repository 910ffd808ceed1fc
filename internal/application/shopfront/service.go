package shopfront

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/aurelia/backend/internal/domain/catalog"
	"github.com/aurelia/backend/internal/domain/shared"
	"github.com/aurelia/backend/internal/infrastructure/cache"
	"github.com/aurelia/backend/internal/infrastructure/storefront"
)

// RemoteLister is the slice of the storefront client the service needs.
type RemoteLister interface {
	ListProducts(ctx context.Context, limit int, hint storefront.SortHint) (*storefront.ProductPage, error)
	ListCollectionProducts(ctx context.Context, handle string, limit int, hint storefront.SortHint) (*storefront.ProductPage, error)
}

// BrowseResult is one rendered shop page. LocalError and RemoteError
// are independent: either source can fail while the other's items are
// still shown. FilteredOut distinguishes "the shop is empty" from
// "nothing matches your filters".
type BrowseResult struct {
	Items       []UnifiedProduct `json:"items"`
	LocalError  string           `json:"local_error,omitempty"`
	RemoteError string           `json:"remote_error,omitempty"`
	FilteredOut bool             `json:"filtered_out"`
}

// Service aggregates the local catalog and the remote platform into
// unified, filterable shop pages.
type Service struct {
	products catalog.ProductRepository
	remote   RemoteLister
	pages    cache.PageCache
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewService creates a shopfront service. remote may be nil when the
// platform integration is disabled; pages may be nil to disable
// caching.
func NewService(
	products catalog.ProductRepository,
	remote RemoteLister,
	pages cache.PageCache,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *Service {
	return &Service{
		products: products,
		remote:   remote,
		pages:    pages,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// Browse fetches both sources concurrently, unifies them and applies
// the query. fetchLimit bounds how many items each source contributes
// before filtering; Query.Limit slices after filter and sort.
func (s *Service) Browse(ctx context.Context, fetchLimit int, query Query) (*BrowseResult, error) {
	return s.browse(ctx, fetchLimit, query, "")
}

// BrowseCollection is Browse scoped to a remote collection. The local
// catalog still contributes: collection pages mix both sources like
// the main shop page does.
func (s *Service) BrowseCollection(ctx context.Context, handle string, fetchLimit int, query Query) (*BrowseResult, error) {
	if handle == "" {
		return nil, shared.ErrInvalidInput
	}
	return s.browse(ctx, fetchLimit, query, handle)
}

func (s *Service) browse(ctx context.Context, fetchLimit int, query Query, collectionHandle string) (*BrowseResult, error) {
	var (
		wg sync.WaitGroup

		local    []catalog.Product
		localErr error

		remotePage *storefront.ProductPage
		remoteErr  error
	)

	// Both fetches always settle; one source failing must not block or
	// hide the other.
	wg.Add(2)

	go func() {
		defer wg.Done()
		local, localErr = s.fetchLocal(ctx, fetchLimit)
	}()

	go func() {
		defer wg.Done()
		remotePage, remoteErr = s.fetchRemote(ctx, fetchLimit, query.Sort, collectionHandle)
	}()

	wg.Wait()

	result := &BrowseResult{}

	if localErr != nil {
		s.logger.Warn("local catalog fetch failed", zap.Error(localErr))
		result.LocalError = "catalog is temporarily unavailable"
	}

	var remoteItems []storefront.Product
	switch {
	case remoteErr != nil:
		s.logger.Warn("remote storefront fetch failed", zap.Error(remoteErr))
		result.RemoteError = "partner collection is temporarily unavailable"
	case remotePage != nil:
		remoteItems = remotePage.Items
		if remotePage.Warning != "" {
			result.RemoteError = remotePage.Warning
		}
	}

	unified := Unify(local, remoteItems)
	result.Items = Apply(unified, query)
	result.FilteredOut = len(result.Items) == 0 && len(unified) > 0 && query.Active()

	return result, nil
}

func (s *Service) fetchLocal(ctx context.Context, limit int) ([]catalog.Product, error) {
	filter := shared.DefaultFilter()
	filter.Page = 1
	filter.PageSize = limit
	return s.products.FindAll(ctx, filter)
}

// fetchRemote consults the page cache first and falls back to a direct
// fetch on any cache failure. Only successful pages are cached.
func (s *Service) fetchRemote(ctx context.Context, limit int, sortOption SortOption, collectionHandle string) (*storefront.ProductPage, error) {
	if s.remote == nil {
		return &storefront.ProductPage{}, nil
	}

	hint := sortOption.RemoteHint()
	key := fmt.Sprintf("%s:%s:%d", collectionHandle, hint, limit)

	if s.pages != nil {
		if page, found, err := s.pages.Get(ctx, key); err != nil {
			s.logger.Warn("page cache read failed", zap.Error(err))
		} else if found {
			return page, nil
		}
	}

	var (
		page *storefront.ProductPage
		err  error
	)
	if collectionHandle != "" {
		page, err = s.remote.ListCollectionProducts(ctx, collectionHandle, limit, hint)
	} else {
		page, err = s.remote.ListProducts(ctx, limit, hint)
	}
	if err != nil {
		return nil, err
	}

	if s.pages != nil {
		if err := s.pages.Set(ctx, key, page, s.cacheTTL); err != nil {
			s.logger.Warn("page cache write failed", zap.Error(err))
		}
	}

	return page, nil
}

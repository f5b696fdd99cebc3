// internal/application/usecase/catalog_usecase.go
package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"

	common "storefront/internal/domain/common"
	productdom "storefront/internal/domain/product"
)

// CatalogCache is a read-through cache for the public listing
// endpoints. A nil cache disables caching; misses and cache errors
// fall through to the store.
type CatalogCache interface {
	GetPage(ctx context.Context, key string) (*productdom.PageResult, error)
	SetPage(ctx context.Context, key string, page productdom.PageResult) error

	// Invalidate drops every cached page. Called on any product write.
	Invalidate(ctx context.Context) error
}

var (
	ErrInvalidPaging = common.Kind(common.ErrInvalidInput, "usecase: invalid paging parameters")
)

// CatalogUsecase serves the public read side of the catalog: listing,
// flash deals, top rated, per-category and search.
type CatalogUsecase struct {
	products productdom.Repository
	cache    CatalogCache
}

func NewCatalogUsecase(products productdom.Repository, cache CatalogCache) *CatalogUsecase {
	return &CatalogUsecase{products: products, cache: cache}
}

// List returns products newest first. startFrom is the 1-based item
// index the public API exposes.
func (u *CatalogUsecase) List(ctx context.Context, startFrom, limit int) (productdom.PageResult, error) {
	return u.page(ctx, productdom.Filter{}, productdom.SortByCreatedAt, startFrom, limit)
}

// ListFlashDeals returns flash-deal products newest first.
func (u *CatalogUsecase) ListFlashDeals(ctx context.Context, startFrom, limit int) (productdom.PageResult, error) {
	return u.page(ctx, productdom.Filter{FlashDealOnly: true}, productdom.SortByCreatedAt, startFrom, limit)
}

// ListTopRated returns products ordered by derived rating.
func (u *CatalogUsecase) ListTopRated(ctx context.Context, startFrom, limit int) (productdom.PageResult, error) {
	return u.page(ctx, productdom.Filter{}, productdom.SortByRating, startFrom, limit)
}

// ListByCategory returns products of one category, newest first.
func (u *CatalogUsecase) ListByCategory(ctx context.Context, category string, startFrom, limit int) (productdom.PageResult, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return productdom.PageResult{}, ErrInvalidPaging
	}
	return u.page(ctx, productdom.Filter{Category: category}, productdom.SortByCreatedAt, startFrom, limit)
}

// Search matches a case-insensitive substring over name, description
// and brand, optionally narrowed by category, ordered by rating.
// Search results are not cached: the key space is unbounded.
func (u *CatalogUsecase) Search(ctx context.Context, query, category string, startFrom, limit int) (productdom.PageResult, error) {
	query = strings.TrimSpace(query)
	if query == "" || startFrom < 1 || limit < 1 {
		return productdom.PageResult{}, ErrInvalidPaging
	}
	filter := productdom.Filter{SearchQuery: query, Category: strings.TrimSpace(category)}
	sort := productdom.Sort{Column: productdom.SortByRating, Order: productdom.SortDesc}
	page := productdom.Page{Offset: startFrom - 1, Limit: limit}

	items, err := u.products.List(ctx, filter, sort, page)
	if err != nil {
		return productdom.PageResult{}, err
	}
	return items, nil
}

func (u *CatalogUsecase) page(ctx context.Context, filter productdom.Filter, column string, startFrom, limit int) (productdom.PageResult, error) {
	if startFrom < 1 || limit < 1 {
		return productdom.PageResult{}, ErrInvalidPaging
	}

	key := cacheKey(filter, column, startFrom, limit)
	if u.cache != nil {
		if cached, err := u.cache.GetPage(ctx, key); err == nil && cached != nil {
			return *cached, nil
		}
	}

	sort := productdom.Sort{Column: column, Order: productdom.SortDesc}
	page := productdom.Page{Offset: startFrom - 1, Limit: limit}
	result, err := u.products.List(ctx, filter, sort, page)
	if err != nil {
		return productdom.PageResult{}, err
	}

	if u.cache != nil {
		if err := u.cache.SetPage(ctx, key, result); err != nil {
			log.Printf("[catalog_uc] WARN: cache set failed key=%s err=%v", key, err)
		}
	}
	return result, nil
}

func cacheKey(filter productdom.Filter, column string, startFrom, limit int) string {
	return fmt.Sprintf("catalog:%s:%s:%t:%d:%d", column, filter.Category, filter.FlashDealOnly, startFrom, limit)
}

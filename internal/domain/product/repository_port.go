// internal/domain/product/repository_port.go
package product

import (
	"context"

	common "storefront/internal/domain/common"
)

// Filter narrows catalog reads.
type Filter struct {
	// Category matches the denormalized category string exactly.
	Category string

	// FlashDealOnly keeps products whose discount is a flash deal.
	FlashDealOnly bool

	// SearchQuery is a case-insensitive substring matched against
	// name, description and brand.
	SearchQuery string
}

type Sort = common.Sort
type SortOrder = common.SortOrder

const (
	SortAsc  SortOrder = common.SortAsc
	SortDesc SortOrder = common.SortDesc
)

// Allowed sort columns
const (
	SortByCreatedAt string = "createdAt"
	SortByRating    string = "rating"
)

type Page = common.Page
type PageResult = common.PageResult[Product]

// Repository is the persistence port for Product.
//
// Mutate is the atomic conditional update: the adapter loads the
// current document, applies fn, and persists the result as one
// indivisible step (transaction or equivalent). All rating, review,
// image and inventory mutations go through it; GetByID-then-Save is
// not safe under concurrent writers.
type Repository interface {
	GetByID(ctx context.Context, id string) (Product, error)
	List(ctx context.Context, filter Filter, sort Sort, page Page) (PageResult, error)
	Count(ctx context.Context, filter Filter) (int, error)

	Create(ctx context.Context, p Product) (Product, error)
	Mutate(ctx context.Context, id string, fn func(*Product) error) (Product, error)
	Delete(ctx context.Context, id string) error
}

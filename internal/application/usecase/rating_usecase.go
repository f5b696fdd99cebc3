// internal/application/usecase/rating_usecase.go
package usecase

import (
	"context"
	"strings"

	authdom "storefront/internal/domain/auth"
	common "storefront/internal/domain/common"
	productdom "storefront/internal/domain/product"
)

// RatingUsecase maintains the per-product rating aggregate. Every
// mutation runs through the repository's atomic Mutate so concurrent
// raters cannot lose updates; the aggregation itself lives on the
// Product entity.
type RatingUsecase struct {
	products productdom.Repository
}

func NewRatingUsecase(products productdom.Repository) *RatingUsecase {
	return &RatingUsecase{products: products}
}

var (
	ErrNotLoggedIn = common.Kind(common.ErrForbidden, "usecase: not logged in")
)

// Rate records or replaces the caller's rate value and returns the new
// derived average.
func (u *RatingUsecase) Rate(ctx context.Context, principal authdom.Principal, productID string, value int) (float64, error) {
	if principal.IsAnonymous() {
		return 0, ErrNotLoggedIn
	}
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return 0, productdom.ErrNotFound
	}

	updated, err := u.products.Mutate(ctx, productID, func(p *productdom.Product) error {
		return p.ApplyRate(principal.ID, value)
	})
	if err != nil {
		return 0, err
	}
	return updated.Rating, nil
}

// Unrate removes the caller's rate entry and returns the recomputed
// average (0 when the last rating goes away).
func (u *RatingUsecase) Unrate(ctx context.Context, principal authdom.Principal, productID string) (float64, error) {
	if principal.IsAnonymous() {
		return 0, ErrNotLoggedIn
	}
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return 0, productdom.ErrNotFound
	}

	updated, err := u.products.Mutate(ctx, productID, func(p *productdom.Product) error {
		return p.RemoveRate(principal.ID)
	})
	if err != nil {
		return 0, err
	}
	return updated.Rating, nil
}

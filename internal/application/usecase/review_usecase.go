// internal/application/usecase/review_usecase.go
package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	authdom "storefront/internal/domain/auth"
	productdom "storefront/internal/domain/product"
)

// ReviewUsecase appends, edits and removes per-user review entries on
// a product, enforcing authorship. Lookups and writes happen in one
// atomic product mutation.
type ReviewUsecase struct {
	products productdom.Repository
	now      func() time.Time
}

func NewReviewUsecase(products productdom.Repository) *ReviewUsecase {
	return &ReviewUsecase{products: products, now: time.Now}
}

// Create appends a review and returns the product's full review
// sequence.
func (u *ReviewUsecase) Create(ctx context.Context, principal authdom.Principal, productID, text string) ([]productdom.Review, error) {
	if principal.IsAnonymous() {
		return nil, ErrNotLoggedIn
	}

	id := uuid.NewString()
	updated, err := u.products.Mutate(ctx, strings.TrimSpace(productID), func(p *productdom.Product) error {
		return p.AddReview(id, principal.ID, text, u.now())
	})
	if err != nil {
		return nil, err
	}
	return updated.Reviews, nil
}

// Update replaces the text of the caller's own review and returns the
// refreshed sequence.
func (u *ReviewUsecase) Update(ctx context.Context, principal authdom.Principal, productID, reviewID, text string) ([]productdom.Review, error) {
	if principal.IsAnonymous() {
		return nil, ErrNotLoggedIn
	}

	updated, err := u.products.Mutate(ctx, strings.TrimSpace(productID), func(p *productdom.Product) error {
		return p.UpdateReviewText(strings.TrimSpace(reviewID), principal.ID, text)
	})
	if err != nil {
		return nil, err
	}
	return updated.Reviews, nil
}

// Delete removes the caller's own review and returns its text.
func (u *ReviewUsecase) Delete(ctx context.Context, principal authdom.Principal, productID, reviewID string) (string, error) {
	if principal.IsAnonymous() {
		return "", ErrNotLoggedIn
	}

	var removed productdom.Review
	_, err := u.products.Mutate(ctx, strings.TrimSpace(productID), func(p *productdom.Product) error {
		r, err := p.RemoveReview(strings.TrimSpace(reviewID), principal.ID)
		if err != nil {
			return err
		}
		removed = r
		return nil
	})
	if err != nil {
		return "", err
	}
	return removed.Text, nil
}

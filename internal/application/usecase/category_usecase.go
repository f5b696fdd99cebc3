// internal/application/usecase/category_usecase.go
package usecase

import (
	"context"
	"strings"

	authdom "storefront/internal/domain/auth"
	categorydom "storefront/internal/domain/category"
)

// CategoryUsecase is plain CRUD over category names. No cascade to
// products on delete; dangling category strings are tolerated.
type CategoryUsecase struct {
	categories categorydom.Repository
}

func NewCategoryUsecase(categories categorydom.Repository) *CategoryUsecase {
	return &CategoryUsecase{categories: categories}
}

func (u *CategoryUsecase) List(ctx context.Context) ([]categorydom.Category, error) {
	return u.categories.List(ctx)
}

// Create adds a category and returns the refreshed list so the
// endpoint answers with the full set in one round trip.
func (u *CategoryUsecase) Create(ctx context.Context, principal authdom.Principal, name string) ([]categorydom.Category, error) {
	if !principal.IsPrivileged() {
		return nil, ErrNotPrivileged
	}
	c, err := categorydom.New(name)
	if err != nil {
		return nil, err
	}
	if _, err := u.categories.Create(ctx, c); err != nil {
		return nil, err
	}
	return u.categories.List(ctx)
}

func (u *CategoryUsecase) Delete(ctx context.Context, principal authdom.Principal, name string) error {
	if !principal.IsPrivileged() {
		return ErrNotPrivileged
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return categorydom.ErrInvalidName
	}
	return u.categories.DeleteByName(ctx, name)
}

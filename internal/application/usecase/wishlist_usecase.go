// internal/application/usecase/wishlist_usecase.go
package usecase

import (
	"context"
	"errors"
	"strings"

	authdom "storefront/internal/domain/auth"
	productdom "storefront/internal/domain/product"
	userdom "storefront/internal/domain/user"
)

// WishlistUsecase mirrors the cart operations for the wishlist set.
type WishlistUsecase struct {
	users    userdom.Repository
	products productdom.Repository
}

func NewWishlistUsecase(users userdom.Repository, products productdom.Repository) *WishlistUsecase {
	return &WishlistUsecase{users: users, products: products}
}

// Add appends a product id once; returns false if already present.
func (u *WishlistUsecase) Add(ctx context.Context, principal authdom.Principal, productID string) (bool, error) {
	if principal.IsAnonymous() {
		return false, ErrNotLoggedIn
	}
	pid := strings.TrimSpace(productID)
	if pid == "" {
		return false, productdom.ErrNotFound
	}
	added := false
	_, err := u.users.Mutate(ctx, principal.ID, func(usr *userdom.User) error {
		added = usr.AddToWishlist(pid)
		return nil
	})
	return added, err
}

// Get joins wishlist ids against the catalog. Ids that no longer
// resolve are skipped; a wishlist entry pointing at a deleted product
// means "item unavailable", not an error.
func (u *WishlistUsecase) Get(ctx context.Context, principal authdom.Principal) ([]productdom.Product, error) {
	if principal.IsAnonymous() {
		return nil, ErrNotLoggedIn
	}
	usr, err := u.users.GetByID(ctx, principal.ID)
	if err != nil {
		return nil, err
	}

	out := make([]productdom.Product, 0, len(usr.Wishlist))
	for _, pid := range usr.Wishlist {
		p, err := u.products.GetByID(ctx, pid)
		if err != nil {
			if errors.Is(err, productdom.ErrNotFound) {
				continue
			}
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// Remove drops a product id; absent ids are a no-op.
func (u *WishlistUsecase) Remove(ctx context.Context, principal authdom.Principal, productID string) error {
	if principal.IsAnonymous() {
		return ErrNotLoggedIn
	}
	_, err := u.users.Mutate(ctx, principal.ID, func(usr *userdom.User) error {
		usr.RemoveFromWishlist(strings.TrimSpace(productID))
		return nil
	})
	return err
}

// internal/application/usecase/cart_usecase.go
package usecase

import (
	"context"
	"errors"
	"strings"

	authdom "storefront/internal/domain/auth"
	productdom "storefront/internal/domain/product"
	userdom "storefront/internal/domain/user"
)

// CartLine is a cart entry joined with its product summary. Product is
// nil when the referenced product no longer exists; readers tolerate
// the dangling reference instead of failing.
type CartLine struct {
	Item    userdom.CartItem
	Product *productdom.Product
}

// CartUsecase mutates the buyer's cart through atomic user mutations
// so that two concurrent adds cannot both pass the membership check.
type CartUsecase struct {
	users    userdom.Repository
	products productdom.Repository
}

func NewCartUsecase(users userdom.Repository, products productdom.Repository) *CartUsecase {
	return &CartUsecase{users: users, products: products}
}

// Add puts a product in the cart. Returns false when it was already
// there; quantities are never merged.
func (u *CartUsecase) Add(ctx context.Context, principal authdom.Principal, item userdom.CartItem) (bool, error) {
	if principal.IsAnonymous() {
		return false, ErrNotLoggedIn
	}
	added := false
	_, err := u.users.Mutate(ctx, principal.ID, func(usr *userdom.User) error {
		ok, err := usr.AddToCart(item)
		added = ok
		return err
	})
	return added, err
}

// Get returns the cart joined with product summaries. Dangling product
// references come back with a nil Product.
func (u *CartUsecase) Get(ctx context.Context, principal authdom.Principal) ([]CartLine, error) {
	if principal.IsAnonymous() {
		return nil, ErrNotLoggedIn
	}
	usr, err := u.users.GetByID(ctx, principal.ID)
	if err != nil {
		return nil, err
	}

	lines := make([]CartLine, 0, len(usr.Cart))
	for _, item := range usr.Cart {
		line := CartLine{Item: item}
		p, err := u.products.GetByID(ctx, item.ProductID)
		switch {
		case err == nil:
			line.Product = &p
		case errors.Is(err, productdom.ErrNotFound):
			// keep the line, product stays nil
		default:
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// Remove drops a product from the cart; absent entries are a no-op.
func (u *CartUsecase) Remove(ctx context.Context, principal authdom.Principal, productID string) error {
	if principal.IsAnonymous() {
		return ErrNotLoggedIn
	}
	_, err := u.users.Mutate(ctx, principal.ID, func(usr *userdom.User) error {
		usr.RemoveFromCart(strings.TrimSpace(productID))
		return nil
	})
	return err
}

// internal/application/usecase/cart_usecase_test.go
package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authdom "storefront/internal/domain/auth"
	userdom "storefront/internal/domain/user"
)

func TestCartAddOncePerProduct(t *testing.T) {
	users := newFakeUserRepo(testBuyerUser(t, "user-a"))
	products := newFakeProductRepo(testProduct(t, "p-1"))
	uc := NewCartUsecase(users, products)
	ctx := context.Background()
	principal := authdom.Principal{ID: "user-a"}

	added, err := uc.Add(ctx, principal, userdom.CartItem{ProductID: "p-1", Quantity: 2})
	require.NoError(t, err)
	assert.True(t, added)

	added, err = uc.Add(ctx, principal, userdom.CartItem{ProductID: "p-1", Quantity: 9})
	require.NoError(t, err)
	assert.False(t, added)

	_, err = uc.Add(ctx, principal, userdom.CartItem{ProductID: "p-2", Quantity: 0})
	assert.ErrorIs(t, err, userdom.ErrInvalidQuantity)
}

func TestCartGetToleratesDanglingProducts(t *testing.T) {
	users := newFakeUserRepo(testBuyerUser(t, "user-a",
		userdom.CartItem{ProductID: "p-1", Quantity: 2},
		userdom.CartItem{ProductID: "p-gone", Quantity: 1},
	))
	products := newFakeProductRepo(testProduct(t, "p-1"))
	uc := NewCartUsecase(users, products)

	lines, err := uc.Get(context.Background(), authdom.Principal{ID: "user-a"})
	require.NoError(t, err)
	require.Len(t, lines, 2)

	require.NotNil(t, lines[0].Product)
	assert.Equal(t, "p-1", lines[0].Product.ID)
	assert.Nil(t, lines[1].Product)
	assert.Equal(t, "p-gone", lines[1].Item.ProductID)
}

func TestCartRemove(t *testing.T) {
	users := newFakeUserRepo(testBuyerUser(t, "user-a",
		userdom.CartItem{ProductID: "p-1", Quantity: 2},
	))
	uc := NewCartUsecase(users, newFakeProductRepo())
	ctx := context.Background()
	principal := authdom.Principal{ID: "user-a"}

	require.NoError(t, uc.Remove(ctx, principal, "p-1"))
	require.NoError(t, uc.Remove(ctx, principal, "p-1")) // absent is a no-op

	lines, err := uc.Get(ctx, principal)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestCartRequiresLogin(t *testing.T) {
	uc := NewCartUsecase(newFakeUserRepo(), newFakeProductRepo())
	ctx := context.Background()

	_, err := uc.Add(ctx, authdom.Anonymous, userdom.CartItem{ProductID: "p-1", Quantity: 1})
	assert.ErrorIs(t, err, ErrNotLoggedIn)
	_, err = uc.Get(ctx, authdom.Anonymous)
	assert.ErrorIs(t, err, ErrNotLoggedIn)
	assert.ErrorIs(t, uc.Remove(ctx, authdom.Anonymous, "p-1"), ErrNotLoggedIn)
}

// internal/application/usecase/category_usecase_test.go
package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authdom "storefront/internal/domain/auth"
	categorydom "storefront/internal/domain/category"
)

func TestCategoryCreateReturnsRefreshedList(t *testing.T) {
	uc := NewCategoryUsecase(newFakeCategoryRepo("electronics"))

	list, err := uc.Create(context.Background(), staffPrincipal, "  sports  ")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "electronics", list[0].Name)
	assert.Equal(t, "sports", list[1].Name)
}

func TestCategoryCreateConflict(t *testing.T) {
	uc := NewCategoryUsecase(newFakeCategoryRepo("electronics"))

	_, err := uc.Create(context.Background(), staffPrincipal, "electronics")
	assert.ErrorIs(t, err, categorydom.ErrConflict)
}

func TestCategoryCreateValidation(t *testing.T) {
	uc := NewCategoryUsecase(newFakeCategoryRepo())

	_, err := uc.Create(context.Background(), staffPrincipal, "   ")
	assert.ErrorIs(t, err, categorydom.ErrInvalidName)

	_, err = uc.Create(context.Background(), authdom.Principal{ID: "user-a"}, "sports")
	assert.ErrorIs(t, err, ErrNotPrivileged)
}

func TestCategoryDelete(t *testing.T) {
	repo := newFakeCategoryRepo("electronics")
	uc := NewCategoryUsecase(repo)
	ctx := context.Background()

	require.NoError(t, uc.Delete(ctx, staffPrincipal, "electronics"))
	assert.ErrorIs(t, uc.Delete(ctx, staffPrincipal, "electronics"), categorydom.ErrNotFound)
	assert.ErrorIs(t, uc.Delete(ctx, authdom.Principal{ID: "user-a"}, "x"), ErrNotPrivileged)
}

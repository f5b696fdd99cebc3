// internal/application/usecase/review_usecase_test.go
package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authdom "storefront/internal/domain/auth"
	productdom "storefront/internal/domain/product"
)

func TestReviewLifecycle(t *testing.T) {
	repo := newFakeProductRepo(testProduct(t, "p-1"))
	uc := NewReviewUsecase(repo)
	ctx := context.Background()
	author := authdom.Principal{ID: "user-a"}

	reviews, err := uc.Create(ctx, author, "p-1", "solid build")
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	reviewID := reviews[0].ID
	assert.NotEmpty(t, reviewID)
	assert.Equal(t, "user-a", reviews[0].UserID)

	reviews, err = uc.Update(ctx, author, "p-1", reviewID, "solid build, battery could be better")
	require.NoError(t, err)
	assert.Equal(t, "solid build, battery could be better", reviews[0].Text)

	text, err := uc.Delete(ctx, author, "p-1", reviewID)
	require.NoError(t, err)
	assert.Equal(t, "solid build, battery could be better", text)

	stored, err := repo.GetByID(ctx, "p-1")
	require.NoError(t, err)
	assert.Empty(t, stored.Reviews)
}

func TestReviewAuthorshipEnforced(t *testing.T) {
	repo := newFakeProductRepo(testProduct(t, "p-1"))
	uc := NewReviewUsecase(repo)
	ctx := context.Background()

	reviews, err := uc.Create(ctx, authdom.Principal{ID: "user-a"}, "p-1", "mine")
	require.NoError(t, err)
	reviewID := reviews[0].ID

	_, err = uc.Update(ctx, authdom.Principal{ID: "user-b"}, "p-1", reviewID, "hijacked")
	assert.ErrorIs(t, err, productdom.ErrNotReviewAuthor)

	_, err = uc.Delete(ctx, authdom.Principal{ID: "user-b"}, "p-1", reviewID)
	assert.ErrorIs(t, err, productdom.ErrNotReviewAuthor)

	// untouched after the rejected attempts
	stored, err := repo.GetByID(ctx, "p-1")
	require.NoError(t, err)
	require.Len(t, stored.Reviews, 1)
	assert.Equal(t, "mine", stored.Reviews[0].Text)
}

func TestReviewUnknownIDs(t *testing.T) {
	uc := NewReviewUsecase(newFakeProductRepo(testProduct(t, "p-1")))
	ctx := context.Background()
	author := authdom.Principal{ID: "user-a"}

	_, err := uc.Update(ctx, author, "p-1", "r-404", "text")
	assert.ErrorIs(t, err, productdom.ErrReviewNotFound)

	_, err = uc.Create(ctx, author, "p-404", "text")
	assert.ErrorIs(t, err, productdom.ErrNotFound)

	_, err = uc.Create(ctx, authdom.Anonymous, "p-1", "text")
	assert.ErrorIs(t, err, ErrNotLoggedIn)
}

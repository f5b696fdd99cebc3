// internal/application/usecase/product_usecase_test.go
package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authdom "storefront/internal/domain/auth"
	mediadom "storefront/internal/domain/media"
	productdom "storefront/internal/domain/product"
	userdom "storefront/internal/domain/user"
)

func newProductUC(t *testing.T, products *fakeProductRepo, users *fakeUserRepo, store *fakeMediaStore, cache *fakeCache) *ProductUsecase {
	t.Helper()
	if users == nil {
		users = newFakeUserRepo()
	}
	var c CatalogCache
	if cache != nil {
		c = cache
	}
	return NewProductUsecase(products, users, NewMediaUploader(store), store, c)
}

func TestCreateProductWithImages(t *testing.T) {
	products := newFakeProductRepo()
	store := newFakeMediaStore()
	cache := newFakeCache()
	uc := newProductUC(t, products, nil, store, cache)

	in := CreateProductInput{
		Name:        "Desk Lamp",
		Description: "Adjustable arm, warm light",
		Price:       35,
		Stock:       4,
		Category:    "home",
		Images:      [][]byte{[]byte("a"), []byte("b")},
	}
	created, report, err := uc.Create(context.Background(), staffPrincipal, in)
	require.NoError(t, err)
	assert.Empty(t, report.Failed)
	assert.Len(t, created.ImagesURLs, 2)
	for _, u := range created.ImagesURLs {
		assert.True(t, strings.Contains(u, mediadom.ProductPrefix(created.ID)))
	}
	assert.GreaterOrEqual(t, cache.invalidated, 1)
}

func TestCreateProductRequiresPrivilege(t *testing.T) {
	uc := newProductUC(t, newFakeProductRepo(), nil, newFakeMediaStore(), nil)
	_, _, err := uc.Create(context.Background(), authdom.Principal{ID: "user-a"}, CreateProductInput{
		Name: "x", Description: "d", Price: 1, Stock: 1, Category: "c",
	})
	assert.ErrorIs(t, err, ErrNotPrivileged)
}

func TestCreateProductRejectsIncompleteListing(t *testing.T) {
	uc := newProductUC(t, newFakeProductRepo(), nil, newFakeMediaStore(), nil)

	_, _, err := uc.Create(context.Background(), staffPrincipal, CreateProductInput{
		Name: "Desk Lamp", Price: 35, Stock: 4, Category: "home",
	})
	assert.ErrorIs(t, err, productdom.ErrInvalidDescription)

	_, _, err = uc.Create(context.Background(), staffPrincipal, CreateProductInput{
		Name: "Desk Lamp", Description: "Adjustable arm", Stock: 4, Category: "home",
	})
	assert.ErrorIs(t, err, productdom.ErrInvalidPrice)
}

func TestUpdateProductPatch(t *testing.T) {
	products := newFakeProductRepo(testProduct(t, "p-1"))
	cache := newFakeCache()
	uc := newProductUC(t, products, nil, newFakeMediaStore(), cache)

	price := 75.0
	updated, err := uc.Update(context.Background(), staffPrincipal, "p-1", productdom.Patch{Price: &price})
	require.NoError(t, err)
	assert.Equal(t, 75.0, updated.Price)
	assert.Equal(t, 1, cache.invalidated)

	bad := -1.0
	_, err = uc.Update(context.Background(), staffPrincipal, "p-1", productdom.Patch{Price: &bad})
	assert.ErrorIs(t, err, productdom.ErrInvalidPrice)
}

func TestAddImagesChecksProductFirst(t *testing.T) {
	store := newFakeMediaStore()
	uc := newProductUC(t, newFakeProductRepo(), nil, store, nil)

	_, _, err := uc.AddImages(context.Background(), staffPrincipal, "p-404", [][]byte{[]byte("a")})
	assert.ErrorIs(t, err, productdom.ErrNotFound)
	assert.Empty(t, store.uploaded)
}

func TestDeleteImageDropsDanglingReference(t *testing.T) {
	p := testProduct(t, "p-1")
	url := "https://storage.test/" + mediadom.ProductPrefix("p-1") + "gone"
	p.ImagesURLs = []string{url}
	products := newFakeProductRepo(p)
	store := newFakeMediaStore() // object was never uploaded
	uc := newProductUC(t, products, nil, store, nil)

	err := uc.DeleteImage(context.Background(), staffPrincipal, "p-1", url)
	assert.ErrorIs(t, err, mediadom.ErrNotFound)

	stored, gerr := products.GetByID(context.Background(), "p-1")
	require.NoError(t, gerr)
	assert.Empty(t, stored.ImagesURLs)
}

func TestDeleteProductPurgesMedia(t *testing.T) {
	products := newFakeProductRepo(testProduct(t, "p-1"))
	store := newFakeMediaStore()
	uc := newProductUC(t, products, nil, store, nil)
	ctx := context.Background()

	_, err := store.Upload(ctx, []byte("a"), mediadom.ProductPrefix("p-1")+"img-a")
	require.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, staffPrincipal, "p-1"))

	_, err = products.GetByID(ctx, "p-1")
	assert.ErrorIs(t, err, productdom.ErrNotFound)
	require.Len(t, store.purgedPrefixes, 1)
	assert.Equal(t, mediadom.ProductPrefix("p-1"), store.purgedPrefixes[0])
	assert.Empty(t, store.uploaded)
}

func TestGetDetailMaterializesReviews(t *testing.T) {
	p := testProduct(t, "p-1")
	require.NoError(t, p.ApplyRate("user-a", 4))
	require.NoError(t, p.ApplyRate("user-b", 2))
	require.NoError(t, p.AddReview("r-1", "user-a", "nice", time.Now()))
	require.NoError(t, p.AddReview("r-2", "user-gone", "meh", time.Now()))
	products := newFakeProductRepo(p)

	bd := time.Date(1995, 6, 15, 0, 0, 0, 0, time.UTC)
	author, err := userdom.New("user-a", "Jordan Doe", "jordan@example.com", "", "hash", &bd, "", time.Now())
	require.NoError(t, err)
	author.ImageURL = "https://storage.test/users/profile/images/profilepic/user-a"
	users := newFakeUserRepo(author)

	store := newFakeMediaStore()
	uc := newProductUC(t, products, users, store, nil)

	detail, err := uc.GetDetail(context.Background(), "p-1")
	require.NoError(t, err)

	assert.Equal(t, 2, detail.RatedUsersCount)
	assert.Nil(t, detail.Product.Reviews)
	assert.Nil(t, detail.Product.RatedUsers)

	require.Len(t, detail.Reviews, 2)
	byID := map[string]DetailedReview{}
	for _, r := range detail.Reviews {
		byID[r.ID] = r
	}
	assert.Equal(t, "Jordan Doe", byID["r-1"].Author.Name)
	assert.Equal(t, 4, byID["r-1"].Author.RateValue)
	assert.NotEmpty(t, byID["r-1"].Author.ImageURL)

	// dangling author still yields a review with the id and rate value
	assert.Equal(t, "user-gone", byID["r-2"].Author.ID)
	assert.Empty(t, byID["r-2"].Author.Name)
	assert.Equal(t, 0, byID["r-2"].Author.RateValue)
}

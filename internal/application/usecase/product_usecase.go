// internal/application/usecase/product_usecase.go
package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	authdom "storefront/internal/domain/auth"
	mediadom "storefront/internal/domain/media"
	productdom "storefront/internal/domain/product"
	userdom "storefront/internal/domain/user"
)

// CreateProductInput carries the catalog fields plus raw image bytes.
type CreateProductInput struct {
	Name        string
	Description string
	Brand       string
	Price       float64
	Deducted    productdom.DeductedPrice
	Stock       int
	Category    string
	Images      [][]byte
}

// ReviewAuthor is the materialized author block on a detailed review:
// profile fields joined from User plus the author's own current rate
// value on this product (0 if they never rated).
type ReviewAuthor struct {
	ID        string
	Name      string
	ImageURL  string
	RateValue int
}

type DetailedReview struct {
	ID     string
	Author ReviewAuthor
	Text   string
}

// ProductDetail is the public detail view: the product with raw
// rated_users and reviews stripped, their derived forms alongside.
type ProductDetail struct {
	Product         productdom.Product
	RatedUsersCount int
	Reviews         []DetailedReview
}

// ProductUsecase owns the privileged write side of the catalog and the
// public detail read.
type ProductUsecase struct {
	products productdom.Repository
	users    userdom.Repository
	uploader *MediaUploader
	store    mediadom.Store
	cache    CatalogCache
	now      func() time.Time
}

func NewProductUsecase(
	products productdom.Repository,
	users userdom.Repository,
	uploader *MediaUploader,
	store mediadom.Store,
	cache CatalogCache,
) *ProductUsecase {
	return &ProductUsecase{
		products: products,
		users:    users,
		uploader: uploader,
		store:    store,
		cache:    cache,
		now:      time.Now,
	}
}

// Create makes the product first, then fans the images out to the
// store and persists all successful URLs in one follow-up write. The
// report tells the caller which images failed; a partial failure is
// never reported as a bare success.
func (u *ProductUsecase) Create(ctx context.Context, principal authdom.Principal, in CreateProductInput) (productdom.Product, UploadReport, error) {
	if !principal.IsPrivileged() {
		return productdom.Product{}, UploadReport{}, ErrNotPrivileged
	}

	p, err := productdom.New(
		uuid.NewString(),
		in.Name, in.Description, in.Brand,
		in.Price, in.Deducted, in.Stock, in.Category,
		u.now(),
	)
	if err != nil {
		return productdom.Product{}, UploadReport{}, err
	}

	created, err := u.products.Create(ctx, p)
	if err != nil {
		return productdom.Product{}, UploadReport{}, err
	}
	u.invalidateCache(ctx)

	if len(in.Images) == 0 {
		return created, UploadReport{}, nil
	}

	report := u.uploader.UploadAll(ctx, in.Images, func(i int) string {
		return mediadom.ProductPrefix(created.ID) + uuid.NewString()
	})
	if len(report.URLs) > 0 {
		created, err = u.products.Mutate(ctx, created.ID, func(p *productdom.Product) error {
			p.AppendImages(report.URLs)
			return nil
		})
		if err != nil {
			return productdom.Product{}, report, err
		}
	}
	return created, report, nil
}

// Update merges catalog fields.
func (u *ProductUsecase) Update(ctx context.Context, principal authdom.Principal, productID string, patch productdom.Patch) (productdom.Product, error) {
	if !principal.IsPrivileged() {
		return productdom.Product{}, ErrNotPrivileged
	}
	updated, err := u.products.Mutate(ctx, strings.TrimSpace(productID), func(p *productdom.Product) error {
		return p.ApplyPatch(patch)
	})
	if err != nil {
		return productdom.Product{}, err
	}
	u.invalidateCache(ctx)
	return updated, nil
}

// AddImages uploads additional images for an existing product, with
// the same join-then-single-write contract as Create.
func (u *ProductUsecase) AddImages(ctx context.Context, principal authdom.Principal, productID string, images [][]byte) (productdom.Product, UploadReport, error) {
	if !principal.IsPrivileged() {
		return productdom.Product{}, UploadReport{}, ErrNotPrivileged
	}
	productID = strings.TrimSpace(productID)

	// Fail fast on a bad id before paying for uploads.
	current, err := u.products.GetByID(ctx, productID)
	if err != nil {
		return productdom.Product{}, UploadReport{}, err
	}
	if len(images) == 0 {
		return current, UploadReport{}, nil
	}

	report := u.uploader.UploadAll(ctx, images, func(i int) string {
		return mediadom.ProductPrefix(productID) + uuid.NewString()
	})
	updated := current
	if len(report.URLs) > 0 {
		updated, err = u.products.Mutate(ctx, productID, func(p *productdom.Product) error {
			p.AppendImages(report.URLs)
			return nil
		})
		if err != nil {
			return productdom.Product{}, report, err
		}
	}
	u.invalidateCache(ctx)
	return updated, report, nil
}

// DeleteImage removes one image by URL: object first, then the URL
// reference. A missing object still drops the reference and reports
// media.ErrNotFound so the caller can answer 404.
func (u *ProductUsecase) DeleteImage(ctx context.Context, principal authdom.Principal, productID, imageURL string) error {
	if !principal.IsPrivileged() {
		return ErrNotPrivileged
	}
	imageURL = strings.TrimSpace(imageURL)
	if imageURL == "" {
		return productdom.ErrInvalidID
	}

	delErr := u.store.Delete(ctx, imageURL)
	if delErr != nil && !errors.Is(delErr, mediadom.ErrNotFound) {
		return delErr
	}

	if _, err := u.products.Mutate(ctx, strings.TrimSpace(productID), func(p *productdom.Product) error {
		p.RemoveImageURL(imageURL)
		return nil
	}); err != nil {
		return err
	}
	u.invalidateCache(ctx)
	return delErr
}

// Delete removes the product and purges its media prefix. The purge is
// best-effort and does not block the delete.
func (u *ProductUsecase) Delete(ctx context.Context, principal authdom.Principal, productID string) error {
	if !principal.IsPrivileged() {
		return ErrNotPrivileged
	}
	productID = strings.TrimSpace(productID)

	if err := u.products.Delete(ctx, productID); err != nil {
		return err
	}
	u.invalidateCache(ctx)

	if err := u.store.DeleteAllUnderPrefix(ctx, mediadom.ProductPrefix(productID)); err != nil {
		log.Printf("[product_uc] WARN: media purge failed productId=%s err=%v", productID, err)
	}
	return nil
}

// GetDetail returns the public product view with reviews materialized
// per author. Author lookups run independently per review.
func (u *ProductUsecase) GetDetail(ctx context.Context, productID string) (ProductDetail, error) {
	p, err := u.products.GetByID(ctx, strings.TrimSpace(productID))
	if err != nil {
		return ProductDetail{}, err
	}

	detailed := make([]DetailedReview, len(p.Reviews))
	g, gctx := errgroup.WithContext(ctx)
	for i := range p.Reviews {
		i := i
		g.Go(func() error {
			r := p.Reviews[i]
			author := ReviewAuthor{ID: r.UserID, RateValue: p.RateValueOf(r.UserID)}
			if usr, err := u.users.GetByID(gctx, r.UserID); err == nil {
				author.Name = usr.Name
				author.ImageURL = usr.ImageURL
			}
			detailed[i] = DetailedReview{ID: r.ID, Author: author, Text: r.Text}
			return nil
		})
	}
	_ = g.Wait()

	ratedCount := len(p.RatedUsers)
	p.Reviews = nil
	p.RatedUsers = nil

	return ProductDetail{Product: p, RatedUsersCount: ratedCount, Reviews: detailed}, nil
}

func (u *ProductUsecase) invalidateCache(ctx context.Context) {
	if u.cache == nil {
		return
	}
	if err := u.cache.Invalidate(ctx); err != nil {
		log.Printf("[product_uc] WARN: cache invalidation failed: %v", err)
	}
}

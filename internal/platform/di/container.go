// internal/platform/di/container.go
package di

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	"github.com/go-redis/redis/v8"

	httpin "storefront/internal/adapters/in/http"
	"storefront/internal/adapters/in/http/middleware"
	outcache "storefront/internal/adapters/out/cache"
	outfs "storefront/internal/adapters/out/firestore"
	outgcs "storefront/internal/adapters/out/gcs"
	outhash "storefront/internal/adapters/out/hash"
	outmail "storefront/internal/adapters/out/mail"
	outpay "storefront/internal/adapters/out/payment"
	outpg "storefront/internal/adapters/out/postgres"
	usecase "storefront/internal/application/usecase"
	categorydom "storefront/internal/domain/category"
	"storefront/internal/infra/config"
	"storefront/internal/infra/database"
	firestoreinfra "storefront/internal/infra/firestore"
)

// Container owns every wired dependency and the root HTTP handler.
type Container struct {
	Handler http.Handler

	ResetUC *usecase.PasswordResetUsecase

	fs    *firestoreinfra.ClientWrapper
	gcs   *storage.Client
	redis *redis.Client
	pg    *database.DB
}

// NewContainer builds the full object graph from config. Optional
// backends (Redis, Postgres) are wired only when configured.
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	c := &Container{}

	// Firestore
	fs, err := firestoreinfra.NewClient(ctx, cfg.ProjectID, cfg.GCPCreds)
	if err != nil {
		return nil, fmt.Errorf("di: firestore init: %w", err)
	}
	c.fs = fs

	// GCS
	gcsClient, err := storage.NewClient(ctx)
	if err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("di: gcs init: %w", err)
	}
	c.gcs = gcsClient

	// Firebase Auth (token verification)
	fbApp, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.FirebaseProjectID})
	if err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("di: firebase init: %w", err)
	}
	fbAuth, err := fbApp.Auth(ctx)
	if err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("di: firebase auth init: %w", err)
	}

	// Repositories
	productRepo := outfs.NewProductRepositoryFS(fs.Client)
	orderRepo := outfs.NewOrderRepositoryFS(fs.Client)
	userRepo := outfs.NewUserRepositoryFS(fs.Client)
	otpRepo := outfs.NewOTPRepositoryFS(fs.Client)

	// Categories live in Postgres when DATABASE_URL is set, otherwise
	// in the document store.
	var categoryRepo categorydom.Repository = outfs.NewCategoryRepositoryFS(fs.Client)
	if cfg.DatabaseURL != "" {
		pg, err := database.NewConnection(cfg.DatabaseURL)
		if err != nil {
			_ = c.Close()
			return nil, fmt.Errorf("di: postgres init: %w", err)
		}
		c.pg = pg
		categoryRepo = outpg.NewCategoryRepositoryPG(pg.Client)
		log.Println("[di] categories served from postgres")
	}

	// Catalog cache is optional.
	var catalogCache usecase.CatalogCache
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err := rdb.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			log.Printf("[di] WARN: redis unreachable, catalog cache disabled: %v", err)
			_ = rdb.Close()
		} else {
			c.redis = rdb
			catalogCache = outcache.NewCatalogCacheRedis(rdb)
			log.Println("[di] catalog cache enabled")
		}
	}

	// Outbound adapters
	mediaStore := outgcs.NewMediaStoreGCS(gcsClient, cfg.GCSBucket)
	hasher := outhash.NewBcryptHasher()
	gateway := outpay.NewGatewayStub()

	sendgridKey := cfg.SendGridAPIKey
	if sendgridKey == "" && cfg.SendGridSecretName != "" {
		key, err := loadSecret(ctx, cfg.ProjectID, cfg.SendGridSecretName)
		if err != nil {
			log.Printf("[di] WARN: sendgrid key from secret manager failed: %v", err)
		} else {
			sendgridKey = key
		}
	}
	mailer := outmail.NewSendGridClient(sendgridKey, cfg.MailFrom)

	// Usecases
	uploader := usecase.NewMediaUploader(mediaStore)
	catalogUC := usecase.NewCatalogUsecase(productRepo, catalogCache)
	productUC := usecase.NewProductUsecase(productRepo, userRepo, uploader, mediaStore, catalogCache)
	categoryUC := usecase.NewCategoryUsecase(categoryRepo)
	ratingUC := usecase.NewRatingUsecase(productRepo)
	reviewUC := usecase.NewReviewUsecase(productRepo)
	orderUC := usecase.NewOrderUsecase(orderRepo, productRepo, userRepo, gateway, cfg.ShippingCost)
	fulfillmentUC := usecase.NewFulfillmentUsecase(orderRepo, productRepo)
	userUC := usecase.NewUserUsecase(userRepo, hasher, uploader, mediaStore)
	cartUC := usecase.NewCartUsecase(userRepo, productRepo)
	wishlistUC := usecase.NewWishlistUsecase(userRepo, productRepo)
	resetUC := usecase.NewPasswordResetUsecase(userRepo, otpRepo, hasher, mailer)
	c.ResetUC = resetUC

	c.Handler = httpin.NewRouter(httpin.RouterDeps{
		CatalogUC:     catalogUC,
		ProductUC:     productUC,
		CategoryUC:    categoryUC,
		RatingUC:      ratingUC,
		ReviewUC:      reviewUC,
		OrderUC:       orderUC,
		FulfillmentUC: fulfillmentUC,
		UserUC:        userUC,
		CartUC:        cartUC,
		WishlistUC:    wishlistUC,
		ResetUC:       resetUC,

		Verifier: &middleware.FirebaseVerifier{Client: fbAuth},
		Users:    userRepo,

		AllowedOrigin: cfg.AllowedOrigin,
	})

	return c, nil
}

// Close releases every held client, best-effort.
func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			log.Printf("[di] redis close error: %v", err)
		}
	}
	if c.pg != nil {
		if err := c.pg.Close(); err != nil {
			log.Printf("[di] postgres close error: %v", err)
		}
	}
	if c.gcs != nil {
		if err := c.gcs.Close(); err != nil {
			log.Printf("[di] gcs close error: %v", err)
		}
	}
	if c.fs != nil {
		return c.fs.Close()
	}
	return nil
}

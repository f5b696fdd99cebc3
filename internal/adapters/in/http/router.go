// internal/adapters/in/http/router.go
package httpin

import (
	"net/http"

	"github.com/gorilla/mux"

	"storefront/internal/adapters/in/http/handlers"
	"storefront/internal/adapters/in/http/middleware"
	usecase "storefront/internal/application/usecase"
	userdom "storefront/internal/domain/user"
)

// RouterDeps collects the usecases and middleware dependencies
// injected from the container.
type RouterDeps struct {
	CatalogUC     *usecase.CatalogUsecase
	ProductUC     *usecase.ProductUsecase
	CategoryUC    *usecase.CategoryUsecase
	RatingUC      *usecase.RatingUsecase
	ReviewUC      *usecase.ReviewUsecase
	OrderUC       *usecase.OrderUsecase
	FulfillmentUC *usecase.FulfillmentUsecase
	UserUC        *usecase.UserUsecase
	CartUC        *usecase.CartUsecase
	WishlistUC    *usecase.WishlistUsecase
	ResetUC       *usecase.PasswordResetUsecase

	Verifier middleware.TokenVerifier
	Users    userdom.Repository

	AllowedOrigin string
}

// NewRouter wires the public API. Parameterized routes are registered
// after the literal ones so /products/create never matches {id}.
func NewRouter(deps RouterDeps) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)

	product := handlers.NewProductHandler(deps.CatalogUC, deps.ProductUC)
	category := handlers.NewCategoryHandler(deps.CategoryUC)
	rating := handlers.NewRatingHandler(deps.RatingUC)
	review := handlers.NewReviewHandler(deps.ReviewUC)
	order := handlers.NewOrderHandler(deps.OrderUC, deps.FulfillmentUC)
	user := handlers.NewUserHandler(deps.UserUC, deps.CartUC, deps.WishlistUC, deps.ResetUC)

	// /api/products
	p := r.PathPrefix("/api/products").Subrouter()
	p.HandleFunc("/getproducts", product.ListProducts).Methods(http.MethodPost)
	p.HandleFunc("/flashdeals", product.ListFlashDeals).Methods(http.MethodPost)
	p.HandleFunc("/toprated", product.ListTopRated).Methods(http.MethodPost)
	p.HandleFunc("/category/{category}", product.ListByCategory).Methods(http.MethodPost)
	p.HandleFunc("/search", product.Search).Methods(http.MethodPost)
	p.HandleFunc("/create", product.Create).Methods(http.MethodPost)
	p.HandleFunc("/product/{id}", product.GetDetail).Methods(http.MethodGet)
	p.HandleFunc("/product/{id}", product.Update).Methods(http.MethodPut)
	p.HandleFunc("/product/{id}", product.Delete).Methods(http.MethodDelete)
	p.HandleFunc("/images/delete", product.DeleteImage).Methods(http.MethodDelete)
	p.HandleFunc("/images/{id}", product.AddImages).Methods(http.MethodPut)

	p.HandleFunc("/categories", category.List).Methods(http.MethodGet)
	p.HandleFunc("/categories", category.Create).Methods(http.MethodPost)
	p.HandleFunc("/categories/{name}", category.Delete).Methods(http.MethodDelete)

	p.HandleFunc("/orders", order.ListAll).Methods(http.MethodGet)
	p.HandleFunc("/orders", order.Place).Methods(http.MethodPost)
	p.HandleFunc("/orders/{id}", order.UpdateStatus).Methods(http.MethodPut)

	p.HandleFunc("/rate", rating.Rate).Methods(http.MethodPost)
	p.HandleFunc("/rateremove", rating.Unrate).Methods(http.MethodPost)

	p.HandleFunc("/reviews", review.Create).Methods(http.MethodPost)
	p.HandleFunc("/reviews/{id}", review.Update).Methods(http.MethodPut)
	p.HandleFunc("/reviews/{id}", review.Delete).Methods(http.MethodDelete)

	// /api/users
	u := r.PathPrefix("/api/users").Subrouter()
	u.HandleFunc("/registration", user.Register).Methods(http.MethodPost)
	u.HandleFunc("/profile", user.GetProfile).Methods(http.MethodGet)
	u.HandleFunc("/profile", user.UpdateProfile).Methods(http.MethodPut)
	u.HandleFunc("/profile/images/profilepic", user.UpdateProfilePic).Methods(http.MethodPost)
	u.HandleFunc("/profile/images/profilepic", user.DeleteProfilePic).Methods(http.MethodDelete)
	u.HandleFunc("/wishlist", user.GetWishlist).Methods(http.MethodGet)
	u.HandleFunc("/wishlist", user.AddToWishlist).Methods(http.MethodPut)
	u.HandleFunc("/wishlist/{product_id}", user.RemoveFromWishlist).Methods(http.MethodDelete)
	u.HandleFunc("/cart", user.GetCart).Methods(http.MethodGet)
	u.HandleFunc("/cart", user.AddToCart).Methods(http.MethodPut)
	u.HandleFunc("/cart/{product_id}", user.RemoveFromCart).Methods(http.MethodDelete)
	u.HandleFunc("/orders", order.ListMine).Methods(http.MethodGet)
	u.HandleFunc("/passwordchange", user.ChangePassword).Methods(http.MethodPost)
	u.HandleFunc("/passwordresetrequest", user.RequestPasswordReset).Methods(http.MethodPost)
	u.HandleFunc("/passwordreset", user.ResetPassword).Methods(http.MethodPost)
	u.HandleFunc("/admincreation", user.CreateAdmin).Methods(http.MethodPost)
	u.HandleFunc("/staffcreation", user.CreateStaff).Methods(http.MethodPost)

	auth := &middleware.AuthMiddleware{Verifier: deps.Verifier, Users: deps.Users}

	// Chain order matters: CORS answers preflight before any auth work,
	// Recover catches panics from everything inside.
	var h http.Handler = r
	h = auth.Handler(h)
	h = middleware.Recover(h)
	h = middleware.CORS(deps.AllowedOrigin)(h)
	return h
}

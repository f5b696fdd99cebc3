// internal/adapters/in/http/handlers/product_handler.go
package handlers

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"storefront/internal/adapters/in/http/middleware"
	usecase "storefront/internal/application/usecase"
	productdom "storefront/internal/domain/product"
)

// ProductHandler serves the public catalog reads and the privileged
// catalog writes.
type ProductHandler struct {
	catalogUC *usecase.CatalogUsecase
	productUC *usecase.ProductUsecase
}

func NewProductHandler(catalogUC *usecase.CatalogUsecase, productUC *usecase.ProductUsecase) *ProductHandler {
	return &ProductHandler{catalogUC: catalogUC, productUC: productUC}
}

// ------------------------------------------------------------
// POST /api/products/getproducts
//   body: {"start_from": Number, "limit": Number}
// ------------------------------------------------------------
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	body, ok := readPaging(w, r)
	if !ok {
		return
	}
	page, err := h.catalogUC.List(r.Context(), body.StartFrom, body.Limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"total_products": page.TotalCount,
		"products":       toProductViews(page.Items),
	})
}

// ------------------------------------------------------------
// POST /api/products/flashdeals
// ------------------------------------------------------------
func (h *ProductHandler) ListFlashDeals(w http.ResponseWriter, r *http.Request) {
	body, ok := readPaging(w, r)
	if !ok {
		return
	}
	page, err := h.catalogUC.ListFlashDeals(r.Context(), body.StartFrom, body.Limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"total_fd_products": page.TotalCount,
		"products":          toProductViews(page.Items),
	})
}

// ------------------------------------------------------------
// POST /api/products/toprated
// ------------------------------------------------------------
func (h *ProductHandler) ListTopRated(w http.ResponseWriter, r *http.Request) {
	body, ok := readPaging(w, r)
	if !ok {
		return
	}
	page, err := h.catalogUC.ListTopRated(r.Context(), body.StartFrom, body.Limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"total_products": page.TotalCount,
		"products":       toProductViews(page.Items),
	})
}

// ------------------------------------------------------------
// POST /api/products/category/{category}
// ------------------------------------------------------------
func (h *ProductHandler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	category := mux.Vars(r)["category"]
	body, ok := readPaging(w, r)
	if !ok {
		return
	}
	page, err := h.catalogUC.ListByCategory(r.Context(), category, body.StartFrom, body.Limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"total_c_products": page.TotalCount,
		"products":         toProductViews(page.Items),
	})
}

// ------------------------------------------------------------
// POST /api/products/search
//   body: {"search_string": String, "category": String,
//          "start_from": Number, "limit": Number}
// ------------------------------------------------------------
func (h *ProductHandler) Search(w http.ResponseWriter, r *http.Request) {
	var body struct {
		SearchString string `json:"search_string"`
		Category     string `json:"category"`
		StartFrom    int    `json:"start_from"`
		Limit        int    `json:"limit"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeMessage(w, http.StatusUnprocessableEntity, "request body invalid")
		return
	}
	if strings.TrimSpace(body.SearchString) == "" {
		writeMessage(w, http.StatusUnprocessableEntity, "request body invalid")
		return
	}
	page, err := h.catalogUC.Search(r.Context(), body.SearchString, body.Category, body.StartFrom, body.Limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"found":          page.TotalCount,
		"query_products": toProductViews(page.Items),
	})
}

// ------------------------------------------------------------
// GET /api/products/product/{id}
// ------------------------------------------------------------
func (h *ProductHandler) GetDetail(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	detail, err := h.productUC.GetDetail(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"product":           toProductView(detail.Product),
		"rated_users_count": detail.RatedUsersCount,
		"detailed_reviews":  toDetailedReviewViews(detail.Reviews),
	})
}

// createProductData is the "data" field of the multipart create form.
type createProductData struct {
	Name          string            `json:"name"`
	Description   string            `json:"description"`
	Brand         string            `json:"brand"`
	Price         float64           `json:"price"`
	DeductedPrice deductedPriceView `json:"deducted_price"`
	Stock         int               `json:"stock"`
	Category      string            `json:"category"`
}

// ------------------------------------------------------------
// POST /api/products/create
//   multipart: data (JSON), images (files)
// ------------------------------------------------------------
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFrom(r.Context())

	var data createProductData
	images, err := readMultipartImages(r, &data)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "required fields missing")
		return
	}

	_, report, err := h.productUC.Create(r.Context(), principal, usecase.CreateProductInput{
		Name:        data.Name,
		Description: data.Description,
		Brand:       data.Brand,
		Price:       data.Price,
		Deducted: productdom.DeductedPrice{
			Price:     data.DeductedPrice.Price,
			FlashDeal: data.DeductedPrice.FlashDeal,
		},
		Stock:    data.Stock,
		Category: data.Category,
		Images:   images,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	if msgs := report.FailureMessages(); len(msgs) > 0 {
		writeJSON(w, http.StatusCreated, map[string]any{
			"message": "product created, but images didn't upload properly",
			"failed":  msgs,
		})
		return
	}
	writeMessage(w, http.StatusCreated, "product created")
}

// ------------------------------------------------------------
// PUT /api/products/product/{id}
// ------------------------------------------------------------
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFrom(r.Context())
	id := mux.Vars(r)["id"]

	var body struct {
		Name          *string            `json:"name"`
		Description   *string            `json:"description"`
		Brand         *string            `json:"brand"`
		Price         *float64           `json:"price"`
		DeductedPrice *deductedPriceView `json:"deducted_price"`
		Stock         *int               `json:"stock"`
		Category      *string            `json:"category"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeMessage(w, http.StatusBadRequest, "required fields missing")
		return
	}

	patch := productdom.Patch{
		Name:        body.Name,
		Description: body.Description,
		Brand:       body.Brand,
		Price:       body.Price,
		Stock:       body.Stock,
		Category:    body.Category,
	}
	if body.DeductedPrice != nil {
		patch.Deducted = &productdom.DeductedPrice{
			Price:     body.DeductedPrice.Price,
			FlashDeal: body.DeductedPrice.FlashDeal,
		}
	}

	if _, err := h.productUC.Update(r.Context(), principal, id, patch); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "product updated")
}

// ------------------------------------------------------------
// PUT /api/products/images/{id}
//   multipart: images (files)
// ------------------------------------------------------------
func (h *ProductHandler) AddImages(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFrom(r.Context())
	id := mux.Vars(r)["id"]

	images, err := readMultipartImages(r, nil)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "required fields missing")
		return
	}
	if len(images) == 0 {
		writeMessage(w, http.StatusBadRequest, "no image provided")
		return
	}

	updated, report, err := h.productUC.AddImages(r.Context(), principal, id, images)
	if err != nil {
		writeError(w, err)
		return
	}
	resp := map[string]any{"images_urls": updated.ImagesURLs}
	if msgs := report.FailureMessages(); len(msgs) > 0 {
		resp["failed"] = msgs
	}
	writeJSON(w, http.StatusOK, resp)
}

// ------------------------------------------------------------
// DELETE /api/products/images/delete
//   body: {"product_id": String, "image_url": String}
// ------------------------------------------------------------
func (h *ProductHandler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFrom(r.Context())

	var body struct {
		ProductID string `json:"product_id"`
		ImageURL  string `json:"image_url"`
	}
	if err := decodeJSON(r, &body); err != nil || strings.TrimSpace(body.ImageURL) == "" {
		writeMessage(w, http.StatusBadRequest, "no image-link provided")
		return
	}

	productID := strings.TrimSpace(body.ProductID)
	if productID == "" {
		productID = productIDFromImageURL(body.ImageURL)
	}

	if err := h.productUC.DeleteImage(r.Context(), principal, productID, body.ImageURL); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ------------------------------------------------------------
// DELETE /api/products/product/{id}
// ------------------------------------------------------------
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFrom(r.Context())
	id := mux.Vars(r)["id"]

	if err := h.productUC.Delete(r.Context(), principal, id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// productIDFromImageURL recovers the owning product id from an image
// URL laid out as .../products/images/{productId}/{object}.
func productIDFromImageURL(imageURL string) string {
	const marker = "products/images/"
	idx := strings.Index(imageURL, marker)
	if idx < 0 {
		return ""
	}
	rest := imageURL[idx+len(marker):]
	if cut := strings.IndexByte(rest, '/'); cut >= 0 {
		return rest[:cut]
	}
	return rest
}

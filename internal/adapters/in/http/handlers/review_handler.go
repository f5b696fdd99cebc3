// internal/adapters/in/http/handlers/review_handler.go
package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"storefront/internal/adapters/in/http/middleware"
	usecase "storefront/internal/application/usecase"
)

type ReviewHandler struct {
	uc *usecase.ReviewUsecase
}

func NewReviewHandler(uc *usecase.ReviewUsecase) *ReviewHandler {
	return &ReviewHandler{uc: uc}
}

// ------------------------------------------------------------
// POST /api/products/reviews
//   body: {"product": String, "text": String}
// ------------------------------------------------------------
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFrom(r.Context())

	var body struct {
		Product string `json:"product"`
		Text    string `json:"text"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeMessage(w, http.StatusBadRequest, "required fields missing")
		return
	}

	reviews, err := h.uc.Create(r.Context(), principal, body.Product, body.Text)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"reviews": toReviewViews(reviews)})
}

// ------------------------------------------------------------
// PUT /api/products/reviews/{id}
//   body: {"product": String, "text": String}
// ------------------------------------------------------------
func (h *ReviewHandler) Update(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFrom(r.Context())
	reviewID := mux.Vars(r)["id"]

	var body struct {
		Product string `json:"product"`
		Text    string `json:"text"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeMessage(w, http.StatusBadRequest, "required fields missing")
		return
	}

	reviews, err := h.uc.Update(r.Context(), principal, body.Product, reviewID, body.Text)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"reviews": toReviewViews(reviews)})
}

// ------------------------------------------------------------
// DELETE /api/products/reviews/{id}
//   body: {"product": String}
// ------------------------------------------------------------
func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFrom(r.Context())
	reviewID := mux.Vars(r)["id"]

	var body struct {
		Product string `json:"product"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeMessage(w, http.StatusBadRequest, "required fields missing")
		return
	}

	removed, err := h.uc.Delete(r.Context(), principal, body.Product, reviewID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"deleted_review": removed})
}

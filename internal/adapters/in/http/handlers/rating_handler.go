// internal/adapters/in/http/handlers/rating_handler.go
package handlers

import (
	"net/http"

	"storefront/internal/adapters/in/http/middleware"
	usecase "storefront/internal/application/usecase"
)

type RatingHandler struct {
	uc *usecase.RatingUsecase
}

func NewRatingHandler(uc *usecase.RatingUsecase) *RatingHandler {
	return &RatingHandler{uc: uc}
}

// ------------------------------------------------------------
// POST /api/products/rate
//   body: {"product": String, "rate_value": Number}
// ------------------------------------------------------------
func (h *RatingHandler) Rate(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFrom(r.Context())

	var body struct {
		Product   string `json:"product"`
		RateValue int    `json:"rate_value"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeMessage(w, http.StatusBadRequest, "required fields missing")
		return
	}

	rating, err := h.uc.Rate(r.Context(), principal, body.Product, body.RateValue)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]float64{"rating": rating})
}

// ------------------------------------------------------------
// POST /api/products/rateremove
//   body: {"product": String}
// ------------------------------------------------------------
func (h *RatingHandler) Unrate(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFrom(r.Context())

	var body struct {
		Product string `json:"product"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeMessage(w, http.StatusBadRequest, "required fields missing")
		return
	}

	rating, err := h.uc.Unrate(r.Context(), principal, body.Product)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]float64{"rating": rating})
}

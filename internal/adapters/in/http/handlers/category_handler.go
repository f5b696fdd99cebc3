// internal/adapters/in/http/handlers/category_handler.go
package handlers

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"storefront/internal/adapters/in/http/middleware"
	usecase "storefront/internal/application/usecase"
	categorydom "storefront/internal/domain/category"
)

type CategoryHandler struct {
	uc *usecase.CategoryUsecase
}

func NewCategoryHandler(uc *usecase.CategoryUsecase) *CategoryHandler {
	return &CategoryHandler{uc: uc}
}

type categoryView struct {
	Name string `json:"name"`
}

func toCategoryViews(categories []categorydom.Category) []categoryView {
	out := make([]categoryView, 0, len(categories))
	for _, c := range categories {
		out = append(out, categoryView{Name: c.Name})
	}
	return out
}

// ------------------------------------------------------------
// GET /api/products/categories
// ------------------------------------------------------------
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.uc.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCategoryViews(categories))
}

// ------------------------------------------------------------
// POST /api/products/categories
//   body: {"name": String}
// ------------------------------------------------------------
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFrom(r.Context())

	var body struct {
		Name string `json:"name"`
	}
	if err := decodeJSON(r, &body); err != nil || strings.TrimSpace(body.Name) == "" {
		writeMessage(w, http.StatusBadRequest, "required fields missing")
		return
	}

	categories, err := h.uc.Create(r.Context(), principal, body.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCategoryViews(categories))
}

// ------------------------------------------------------------
// DELETE /api/products/categories/{name}
// ------------------------------------------------------------
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFrom(r.Context())
	name := mux.Vars(r)["name"]

	if err := h.uc.Delete(r.Context(), principal, name); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, name+" deleted")
}

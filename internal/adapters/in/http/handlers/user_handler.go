// internal/adapters/in/http/handlers/user_handler.go
package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"storefront/internal/adapters/in/http/middleware"
	usecase "storefront/internal/application/usecase"
	userdom "storefront/internal/domain/user"
)

type UserHandler struct {
	userUC     *usecase.UserUsecase
	cartUC     *usecase.CartUsecase
	wishlistUC *usecase.WishlistUsecase
	resetUC    *usecase.PasswordResetUsecase
}

func NewUserHandler(
	userUC *usecase.UserUsecase,
	cartUC *usecase.CartUsecase,
	wishlistUC *usecase.WishlistUsecase,
	resetUC *usecase.PasswordResetUsecase,
) *UserHandler {
	return &UserHandler{
		userUC:     userUC,
		cartUC:     cartUC,
		wishlistUC: wishlistUC,
		resetUC:    resetUC,
	}
}

// registrationData is the "data" field of the multipart registration
// form. b_date accepts RFC3339 or plain yyyy-mm-dd.
type registrationData struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Password  string `json:"password"`
	BirthDate string `json:"b_date"`
	Address   string `json:"address"`
}

func parseBirthDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		tt := t.UTC()
		return &tt
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		tt := t.UTC()
		return &tt
	}
	return nil
}

// ------------------------------------------------------------
// POST /api/users/registration
//   multipart: data (JSON), images (single file, optional)
// ------------------------------------------------------------
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFrom(r.Context())

	var data registrationData
	images, err := readMultipartImages(r, &data)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "required fields missing")
		return
	}

	in := usecase.RegisterInput{
		Name:      data.Name,
		Email:     data.Email,
		Phone:     data.Phone,
		Password:  data.Password,
		BirthDate: parseBirthDate(data.BirthDate),
		Address:   data.Address,
	}
	if len(images) > 0 {
		in.Image = images[0]
	}

	_, report, err := h.userUC.Register(r.Context(), principal, in)
	if err != nil {
		if errors.Is(err, usecase.ErrEmailTaken) {
			writeMessage(w, http.StatusUnprocessableEntity, "user with the given email exists")
			return
		}
		if errors.Is(err, usecase.ErrAlreadyLoggedIn) {
			writeMessage(w, http.StatusBadRequest, "log out first")
			return
		}
		writeError(w, err)
		return
	}
	if len(report.Failed) > 0 {
		writeMessage(w, http.StatusCreated, "user created, but image didn't upload")
		return
	}
	writeMessage(w, http.StatusCreated, "user creation successful")
}

// ------------------------------------------------------------
// GET /api/users/profile
// ------------------------------------------------------------
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFrom(r.Context())

	usr, err := h.userUC.GetProfile(r.Context(), principal)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserView(usr))
}

// ------------------------------------------------------------
// PUT /api/users/profile
//   body: {"name","email","phone","b_date","address"} (all optional)
// ------------------------------------------------------------
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFrom(r.Context())

	var body struct {
		Name      *string `json:"name"`
		Email     *string `json:"email"`
		Phone     *string `json:"phone"`
		BirthDate *string `json:"b_date"`
		Address   *string `json:"address"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeMessage(w, http.StatusBadRequest, "required fields missing")
		return
	}

	patch := userdom.ProfilePatch{
		Name:    body.Name,
		Email:   body.Email,
		Phone:   body.Phone,
		Address: body.Address,
	}
	if body.BirthDate != nil {
		patch.BirthDate = parseBirthDate(*body.BirthDate)
	}

	updated, err := h.userUC.UpdateProfile(r.Context(), principal, patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserView(updated))
}

// ------------------------------------------------------------
// POST /api/users/profile/images/profilepic
//   multipart: images (single file)
// ------------------------------------------------------------
func (h *UserHandler) UpdateProfilePic(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFrom(r.Context())

	images, err := readMultipartImages(r, nil)
	if err != nil || len(images) == 0 {
		writeMessage(w, http.StatusBadRequest, "no image provided")
		return
	}

	updated, report, err := h.userUC.UpdateProfilePic(r.Context(), principal, images[0])
	if err != nil {
		writeError(w, err)
		return
	}
	if len(report.Failed) > 0 {
		writeMessage(w, http.StatusBadGateway, "image upload failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"image_url": updated.ImageURL})
}

// ------------------------------------------------------------
// DELETE /api/users/profile/images/profilepic
// ------------------------------------------------------------
func (h *UserHandler) DeleteProfilePic(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFrom(r.Context())

	if err := h.userUC.DeleteProfilePic(r.Context(), principal); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ------------------------------------------------------------
// GET /api/users/wishlist
// ------------------------------------------------------------
func (h *UserHandler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFrom(r.Context())

	products, err := h.wishlistUC.Get(r.Context(), principal)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"wishlist": toProductViews(products)})
}

// ------------------------------------------------------------
// PUT /api/users/wishlist
//   body: {"product": String}
// ------------------------------------------------------------
func (h *UserHandler) AddToWishlist(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFrom(r.Context())

	var body struct {
		Product string `json:"product"`
	}
	if err := decodeJSON(r, &body); err != nil || strings.TrimSpace(body.Product) == "" {
		writeMessage(w, http.StatusBadRequest, "required fields missing")
		return
	}

	added, err := h.wishlistUC.Add(r.Context(), principal, body.Product)
	if err != nil {
		writeError(w, err)
		return
	}
	if !added {
		writeMessage(w, http.StatusOK, "already added")
		return
	}
	writeMessage(w, http.StatusOK, "added to wishlist")
}

// ------------------------------------------------------------
// DELETE /api/users/wishlist/{product_id}
// ------------------------------------------------------------
func (h *UserHandler) RemoveFromWishlist(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFrom(r.Context())
	productID := mux.Vars(r)["product_id"]

	if err := h.wishlistUC.Remove(r.Context(), principal, productID); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "operation done")
}

// ------------------------------------------------------------
// GET /api/users/cart
// ------------------------------------------------------------
func (h *UserHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFrom(r.Context())

	lines, err := h.cartUC.Get(r.Context(), principal)
	if err != nil {
		writeError(w, err)
		return
	}

	type cartLineView struct {
		Product  string       `json:"product"`
		Quantity int          `json:"quantity"`
		Detail   *productView `json:"detail,omitempty"`
	}
	out := make([]cartLineView, 0, len(lines))
	for _, line := range lines {
		v := cartLineView{Product: line.Item.ProductID, Quantity: line.Item.Quantity}
		if line.Product != nil {
			pv := toProductView(*line.Product)
			v.Detail = &pv
		}
		out = append(out, v)
	}
	writeJSON(w, http.StatusOK, map[string]any{"cart": out})
}

// ------------------------------------------------------------
// PUT /api/users/cart
//   body: {"cart_item": {"product": String, "quantity": Number}}
// ------------------------------------------------------------
func (h *UserHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFrom(r.Context())

	var body struct {
		CartItem struct {
			Product  string `json:"product"`
			Quantity int    `json:"quantity"`
		} `json:"cart_item"`
	}
	if err := decodeJSON(r, &body); err != nil || strings.TrimSpace(body.CartItem.Product) == "" {
		writeMessage(w, http.StatusBadRequest, "required fields missing")
		return
	}

	added, err := h.cartUC.Add(r.Context(), principal, userdom.CartItem{
		ProductID: body.CartItem.Product,
		Quantity:  body.CartItem.Quantity,
	})
	if err != nil {
		if errors.Is(err, userdom.ErrInvalidQuantity) {
			writeMessage(w, http.StatusUnprocessableEntity, "invalid quantity")
			return
		}
		writeError(w, err)
		return
	}
	if !added {
		writeMessage(w, http.StatusOK, "already added")
		return
	}
	writeMessage(w, http.StatusOK, "added to cart")
}

// ------------------------------------------------------------
// DELETE /api/users/cart/{product_id}
// ------------------------------------------------------------
func (h *UserHandler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFrom(r.Context())
	productID := mux.Vars(r)["product_id"]

	if err := h.cartUC.Remove(r.Context(), principal, productID); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "operation done")
}

// ------------------------------------------------------------
// POST /api/users/passwordchange
//   body: {"old_password": String, "new_password": String}
// ------------------------------------------------------------
func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFrom(r.Context())

	var body struct {
		OldPassword string `json:"old_password"`
		NewPassword string `json:"new_password"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeMessage(w, http.StatusBadRequest, "required fields missing")
		return
	}

	if err := h.userUC.ChangePassword(r.Context(), principal, body.OldPassword, body.NewPassword); err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			writeMessage(w, http.StatusUnauthorized, "invalid password")
			return
		}
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "password changed successfully")
}

// ------------------------------------------------------------
// POST /api/users/passwordresetrequest
//   body: {"email": String}
// ------------------------------------------------------------
func (h *UserHandler) RequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email"`
	}
	if err := decodeJSON(r, &body); err != nil || strings.TrimSpace(body.Email) == "" {
		writeMessage(w, http.StatusBadRequest, "required fields missing")
		return
	}

	if err := h.resetUC.Request(r.Context(), body.Email); err != nil {
		if errors.Is(err, usecase.ErrUnknownEmail) {
			writeMessage(w, http.StatusOK, "user doesn't exist")
			return
		}
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "email sent")
}

// ------------------------------------------------------------
// POST /api/users/passwordreset
//   body: {"email": String, "otp": String, "new_password": String}
// ------------------------------------------------------------
func (h *UserHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email       string `json:"email"`
		OTP         string `json:"otp"`
		NewPassword string `json:"new_password"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeMessage(w, http.StatusBadRequest, "required fields missing")
		return
	}

	if err := h.resetUC.Reset(r.Context(), body.Email, body.OTP, body.NewPassword); err != nil {
		switch {
		case errors.Is(err, usecase.ErrUnknownEmail):
			writeMessage(w, http.StatusOK, "user doesn't exist")
		case errors.Is(err, usecase.ErrOTPInvalid):
			writeMessage(w, http.StatusOK, "otp invalid or expired")
		case errors.Is(err, usecase.ErrOTPMismatch):
			writeMessage(w, http.StatusOK, "incorrect otp, try again")
		default:
			writeError(w, err)
		}
		return
	}
	writeMessage(w, http.StatusOK, "password reset successfully")
}

// ------------------------------------------------------------
// POST /api/users/admincreation  (admin only)
// POST /api/users/staffcreation  (admin only)
//   body: {"email": String, "phone": String, "password": String}
// ------------------------------------------------------------
func (h *UserHandler) CreateAdmin(w http.ResponseWriter, r *http.Request) {
	h.createPrivileged(w, r, true)
}

func (h *UserHandler) CreateStaff(w http.ResponseWriter, r *http.Request) {
	h.createPrivileged(w, r, false)
}

func (h *UserHandler) createPrivileged(w http.ResponseWriter, r *http.Request, asAdmin bool) {
	principal := middleware.PrincipalFrom(r.Context())

	var body struct {
		Email    string `json:"email"`
		Phone    string `json:"phone"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &body); err != nil ||
		strings.TrimSpace(body.Email) == "" || strings.TrimSpace(body.Password) == "" {
		writeMessage(w, http.StatusBadRequest, "required fields missing")
		return
	}

	var (
		created userdom.User
		err     error
	)
	if asAdmin {
		created, err = h.userUC.CreateAdmin(r.Context(), principal, body.Email, body.Phone, body.Password)
	} else {
		created, err = h.userUC.CreateStaff(r.Context(), principal, body.Email, body.Phone, body.Password)
	}
	if err != nil {
		if errors.Is(err, usecase.ErrEmailTaken) {
			writeMessage(w, http.StatusUnprocessableEntity, "user with the given email exists")
			return
		}
		writeError(w, err)
		return
	}

	role := "staff"
	if asAdmin {
		role = "admin"
	}
	writeJSON(w, http.StatusCreated, map[string]string{
		"id":      created.ID,
		"email":   created.Email,
		"phone":   created.Phone,
		"message": role + " created",
	})
}

// internal/adapters/in/http/handlers/order_handler.go
package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"storefront/internal/adapters/in/http/middleware"
	usecase "storefront/internal/application/usecase"
	orderdom "storefront/internal/domain/order"
)

type OrderHandler struct {
	orderUC       *usecase.OrderUsecase
	fulfillmentUC *usecase.FulfillmentUsecase
}

func NewOrderHandler(orderUC *usecase.OrderUsecase, fulfillmentUC *usecase.FulfillmentUsecase) *OrderHandler {
	return &OrderHandler{orderUC: orderUC, fulfillmentUC: fulfillmentUC}
}

// ------------------------------------------------------------
// GET /api/products/orders  (privileged)
// ------------------------------------------------------------
func (h *OrderHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFrom(r.Context())

	orders, err := h.fulfillmentUC.ListAll(r.Context(), principal)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderViews(orders))
}

// ------------------------------------------------------------
// POST /api/products/orders
//   body: {"product_info": [{"product": String, "quantity": Number}],
//          "name", "phone", "delivery_address", "district", "country",
//          "paymentmethod": "cash"|"online"}
// ------------------------------------------------------------
func (h *OrderHandler) Place(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFrom(r.Context())

	var body struct {
		ProductInfo []struct {
			Product  string `json:"product"`
			Quantity int    `json:"quantity"`
		} `json:"product_info"`
		Name            string `json:"name"`
		Phone           string `json:"phone"`
		DeliveryAddress string `json:"delivery_address"`
		District        string `json:"district"`
		Country         string `json:"country"`
		PaymentMethod   string `json:"paymentmethod"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeMessage(w, http.StatusBadRequest, "required fields missing")
		return
	}
	if len(body.ProductInfo) == 0 ||
		strings.TrimSpace(body.Name) == "" || strings.TrimSpace(body.Phone) == "" ||
		strings.TrimSpace(body.DeliveryAddress) == "" || strings.TrimSpace(body.District) == "" ||
		strings.TrimSpace(body.Country) == "" || strings.TrimSpace(body.PaymentMethod) == "" {
		writeMessage(w, http.StatusBadRequest, "required fields missing")
		return
	}

	lines := make([]orderdom.Line, 0, len(body.ProductInfo))
	for _, item := range body.ProductInfo {
		lines = append(lines, orderdom.Line{ProductID: item.Product, Quantity: item.Quantity})
	}

	_, err := h.orderUC.Place(r.Context(), principal, usecase.PlaceOrderInput{
		Lines: lines,
		Buyer: orderdom.BuyerSnapshot{
			Name:            body.Name,
			Phone:           body.Phone,
			DeliveryAddress: body.DeliveryAddress,
			District:        body.District,
			Country:         body.Country,
		},
		PaymentMethod: orderdom.PaymentMethod(body.PaymentMethod),
	})
	if err != nil {
		var unavailable *usecase.StockUnavailableError
		if errors.As(err, &unavailable) {
			writeJSON(w, http.StatusOK, map[string]any{
				"out_of_stock": toOrderLineViews(unavailable.Lines),
			})
			return
		}
		if errors.Is(err, usecase.ErrPaymentNotReceived) {
			writeMessage(w, http.StatusOK, "payment not received")
			return
		}
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusCreated, "order creation successful")
}

// ------------------------------------------------------------
// PUT /api/products/orders/{id}  (privileged)
//   body: {"status": "completed"|"cancelled"}
// ------------------------------------------------------------
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFrom(r.Context())
	id := mux.Vars(r)["id"]

	var body struct {
		Status string `json:"status"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeMessage(w, http.StatusBadRequest, "required fields missing")
		return
	}

	var (
		updated orderdom.Order
		err     error
	)
	switch orderdom.Status(body.Status) {
	case orderdom.StatusCompleted:
		updated, err = h.fulfillmentUC.Complete(r.Context(), principal, id)
	case orderdom.StatusCancelled:
		updated, err = h.fulfillmentUC.Cancel(r.Context(), principal, id)
	default:
		writeMessage(w, http.StatusBadRequest, "status must be completed or cancelled")
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderView(updated))
}

// ------------------------------------------------------------
// GET /api/users/orders  (own orders)
// ------------------------------------------------------------
func (h *OrderHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFrom(r.Context())

	orders, err := h.orderUC.ListByUser(r.Context(), principal)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderViews(orders))
}

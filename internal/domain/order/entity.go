// internal/domain/order/entity.go
package order

import (
	"strings"
	"time"

	"storefront/internal/domain/common"
)

// ========================================
// Value objects
// ========================================

// Line is one ordered product. AvailableStock is populated only on the
// rejection path of order placement and is never persisted.
type Line struct {
	ProductID      string
	Quantity       int
	AvailableStock *int
}

// BuyerSnapshot is copied from the placement request at creation time,
// not a live reference to the user profile.
type BuyerSnapshot struct {
	Name            string
	Phone           string
	DeliveryAddress string
	District        string
	Country         string
}

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "cash"
	PaymentOnline PaymentMethod = "online"
)

type PaymentStatus string

const (
	PaymentNotPaid PaymentStatus = "not paid"
	PaymentPaid    PaymentStatus = "paid"
)

// ========================================
// Entity
// ========================================

type Order struct {
	ID        string
	OrderedBy string

	Lines []Line
	Buyer BuyerSnapshot

	// ProductsPrice is computed once at creation from effective unit
	// prices; ShippingCost is the configured flat fee at that moment.
	ProductsPrice float64
	ShippingCost  float64

	Status        Status
	PaymentMethod PaymentMethod
	PaymentStatus PaymentStatus

	CompletionDate *time.Time
	CreatedAt      time.Time
}

// ========================================
// Errors
// ========================================

var (
	ErrInvalidID      = common.Kind(common.ErrInvalidInput, "order: invalid id")
	ErrInvalidBuyer   = common.Kind(common.ErrInvalidInput, "order: invalid buyer snapshot")
	ErrInvalidLines   = common.Kind(common.ErrInvalidInput, "order: invalid lines")
	ErrInvalidLine    = common.Kind(common.ErrInvalidInput, "order: invalid line")
	ErrInvalidPayment = common.Kind(common.ErrInvalidInput, "order: invalid payment method")

	ErrNotFound     = common.Kind(common.ErrNotFound, "order: not found")
	ErrInvalidState = common.Kind(common.ErrInvalidState, "order: invalid state transition")
)

// ========================================
// Constructors
// ========================================

func New(
	id, orderedBy string,
	lines []Line,
	buyer BuyerSnapshot,
	productsPrice, shippingCost float64,
	method PaymentMethod,
	paymentStatus PaymentStatus,
	createdAt time.Time,
) (Order, error) {
	o := Order{
		ID:            strings.TrimSpace(id),
		OrderedBy:     strings.TrimSpace(orderedBy),
		Lines:         normalizeLines(lines),
		Buyer:         normalizeBuyer(buyer),
		ProductsPrice: productsPrice,
		ShippingCost:  shippingCost,
		Status:        StatusPending,
		PaymentMethod: method,
		PaymentStatus: paymentStatus,
		CreatedAt:     createdAt.UTC(),
	}
	if err := o.validate(); err != nil {
		return Order{}, err
	}
	return o, nil
}

// ========================================
// State machine
// ========================================

// Complete moves pending -> completed, marks the order paid and stamps
// the completion date. Completed and cancelled are terminal.
func (o *Order) Complete(now time.Time) error {
	if o.Status != StatusPending {
		return ErrInvalidState
	}
	t := now.UTC()
	o.Status = StatusCompleted
	o.PaymentStatus = PaymentPaid
	o.CompletionDate = &t
	return nil
}

// Cancel moves pending -> cancelled. No inventory effect: placement
// never reserved stock.
func (o *Order) Cancel() error {
	if o.Status != StatusPending {
		return ErrInvalidState
	}
	o.Status = StatusCancelled
	return nil
}

// ========================================
// Validation
// ========================================

func (o Order) validate() error {
	if o.ID == "" {
		return ErrInvalidID
	}
	if o.OrderedBy == "" {
		return ErrInvalidBuyer
	}
	if err := validateBuyer(o.Buyer); err != nil {
		return err
	}
	if err := ValidateLines(o.Lines); err != nil {
		return err
	}
	if o.PaymentMethod != PaymentCash && o.PaymentMethod != PaymentOnline {
		return ErrInvalidPayment
	}
	return nil
}

func validateBuyer(b BuyerSnapshot) error {
	if b.Name == "" || b.Phone == "" || b.DeliveryAddress == "" || b.District == "" || b.Country == "" {
		return ErrInvalidBuyer
	}
	return nil
}

// ValidateLines rejects empty baskets and non-positive quantities.
func ValidateLines(lines []Line) error {
	if len(lines) == 0 {
		return ErrInvalidLines
	}
	for _, l := range lines {
		if strings.TrimSpace(l.ProductID) == "" {
			return ErrInvalidLine
		}
		if l.Quantity <= 0 {
			return ErrInvalidLine
		}
	}
	return nil
}

// ========================================
// Helpers
// ========================================

func normalizeBuyer(b BuyerSnapshot) BuyerSnapshot {
	b.Name = strings.TrimSpace(b.Name)
	b.Phone = strings.TrimSpace(b.Phone)
	b.DeliveryAddress = strings.TrimSpace(b.DeliveryAddress)
	b.District = strings.TrimSpace(b.District)
	b.Country = strings.TrimSpace(b.Country)
	return b
}

func normalizeLines(lines []Line) []Line {
	out := make([]Line, 0, len(lines))
	for _, l := range lines {
		out = append(out, Line{
			ProductID: strings.TrimSpace(l.ProductID),
			Quantity:  l.Quantity,
		})
	}
	return out
}

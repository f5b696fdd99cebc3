// internal/application/usecase/fulfillment_usecase.go
package usecase

import (
	"context"
	"log"
	"strings"
	"time"

	authdom "storefront/internal/domain/auth"
	common "storefront/internal/domain/common"
	orderdom "storefront/internal/domain/order"
	productdom "storefront/internal/domain/product"
)

var (
	ErrNotPrivileged = common.Kind(common.ErrForbidden, "usecase: not authorized, not admin nor staff")
)

// FulfillmentUsecase runs the order state machine. The status
// transition is one atomic order mutation; the per-line inventory
// effects follow as independent product mutations, so a crash in
// between can leave a line unapplied. An outbox or idempotency key
// would close the gap in a hardened deployment.
type FulfillmentUsecase struct {
	orders   orderdom.Repository
	products productdom.Repository
	now      func() time.Time
}

func NewFulfillmentUsecase(orders orderdom.Repository, products productdom.Repository) *FulfillmentUsecase {
	return &FulfillmentUsecase{orders: orders, products: products, now: time.Now}
}

// Complete transitions pending -> completed, then applies each line's
// sold/stock effect.
func (u *FulfillmentUsecase) Complete(ctx context.Context, principal authdom.Principal, orderID string) (orderdom.Order, error) {
	if !principal.IsPrivileged() {
		return orderdom.Order{}, ErrNotPrivileged
	}

	completed, err := u.orders.Mutate(ctx, strings.TrimSpace(orderID), func(o *orderdom.Order) error {
		return o.Complete(u.now())
	})
	if err != nil {
		return orderdom.Order{}, err
	}

	for _, line := range completed.Lines {
		line := line
		if _, err := u.products.Mutate(ctx, line.ProductID, func(p *productdom.Product) error {
			p.ApplySale(line.Quantity)
			return nil
		}); err != nil {
			log.Printf("[fulfillment_uc] WARN: inventory apply failed orderId=%s productId=%s qty=%d err=%v",
				completed.ID, line.ProductID, line.Quantity, err)
		}
	}

	return completed, nil
}

// Cancel transitions pending -> cancelled. No inventory effect.
func (u *FulfillmentUsecase) Cancel(ctx context.Context, principal authdom.Principal, orderID string) (orderdom.Order, error) {
	if !principal.IsPrivileged() {
		return orderdom.Order{}, ErrNotPrivileged
	}
	return u.orders.Mutate(ctx, strings.TrimSpace(orderID), func(o *orderdom.Order) error {
		return o.Cancel()
	})
}

// ListAll returns every order, newest first. Admin/staff only.
func (u *FulfillmentUsecase) ListAll(ctx context.Context, principal authdom.Principal) ([]orderdom.Order, error) {
	if !principal.IsPrivileged() {
		return nil, ErrNotPrivileged
	}
	return u.orders.ListAll(ctx)
}

// internal/application/usecase/order_usecase.go
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	authdom "storefront/internal/domain/auth"
	common "storefront/internal/domain/common"
	orderdom "storefront/internal/domain/order"
	productdom "storefront/internal/domain/product"
	userdom "storefront/internal/domain/user"
)

// PaymentGateway is the outbound payment-confirmation port.
//
// The wired adapter is a placeholder that always confirms; a real
// gateway (synchronous confirmation or webhook) must replace it before
// online payment goes live.
type PaymentGateway interface {
	Confirm(ctx context.Context, method orderdom.PaymentMethod, amount float64) (bool, error)
}

// StockUnavailableError enumerates every rejected line with the stock
// actually available. Placement is all-or-nothing at validation: no
// order and no cart change when this is returned.
type StockUnavailableError struct {
	Lines []orderdom.Line
}

func (e *StockUnavailableError) Error() string {
	return fmt.Sprintf("order: %d line(s) exceed available stock", len(e.Lines))
}

var (
	ErrPaymentNotReceived = common.Kind(common.ErrInvalidInput, "order: payment not received")
)

// PlaceOrderInput is the app-level placement request.
type PlaceOrderInput struct {
	Lines         []orderdom.Line
	Buyer         orderdom.BuyerSnapshot
	PaymentMethod orderdom.PaymentMethod
}

// OrderUsecase is the placement engine. Stock is read, never
// decremented here; the decrement happens at fulfillment. The window
// between validation and completion can oversell; reservations are a
// pending product decision.
type OrderUsecase struct {
	orders       orderdom.Repository
	products     productdom.Repository
	users        userdom.Repository
	gateway      PaymentGateway
	shippingCost float64
	now          func() time.Time
}

func NewOrderUsecase(
	orders orderdom.Repository,
	products productdom.Repository,
	users userdom.Repository,
	gateway PaymentGateway,
	shippingCost float64,
) *OrderUsecase {
	return &OrderUsecase{
		orders:       orders,
		products:     products,
		users:        users,
		gateway:      gateway,
		shippingCost: shippingCost,
		now:          time.Now,
	}
}

// Place validates the basket, prices it, confirms payment when online,
// creates the pending order and reconciles the buyer's cart.
func (u *OrderUsecase) Place(ctx context.Context, principal authdom.Principal, in PlaceOrderInput) (orderdom.Order, error) {
	if principal.IsAnonymous() {
		return orderdom.Order{}, ErrNotLoggedIn
	}
	if err := orderdom.ValidateLines(in.Lines); err != nil {
		return orderdom.Order{}, err
	}
	if in.PaymentMethod == "" {
		in.PaymentMethod = orderdom.PaymentCash
	}

	// Per-line stock/pricing fetch, fanned out like the rest of the
	// request-scoped concurrency. Results are indexed so no shared
	// accumulator is mutated across goroutines.
	lineTotals := make([]float64, len(in.Lines))
	unavailable := make([]*orderdom.Line, len(in.Lines))

	g, gctx := errgroup.WithContext(ctx)
	for i := range in.Lines {
		i := i
		g.Go(func() error {
			line := in.Lines[i]
			p, err := u.products.GetByID(gctx, line.ProductID)
			if err != nil {
				if errors.Is(err, productdom.ErrNotFound) {
					// Dangling reference: treat as unavailable with
					// zero stock rather than failing the request.
					zero := 0
					unavailable[i] = &orderdom.Line{
						ProductID:      line.ProductID,
						Quantity:       line.Quantity,
						AvailableStock: &zero,
					}
					return nil
				}
				return err
			}
			if line.Quantity > p.Stock {
				avail := p.Stock
				unavailable[i] = &orderdom.Line{
					ProductID:      line.ProductID,
					Quantity:       line.Quantity,
					AvailableStock: &avail,
				}
				return nil
			}
			lineTotals[i] = p.EffectiveUnitPrice() * float64(line.Quantity)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return orderdom.Order{}, err
	}

	var rejected []orderdom.Line
	for _, l := range unavailable {
		if l != nil {
			rejected = append(rejected, *l)
		}
	}
	if len(rejected) > 0 {
		return orderdom.Order{}, &StockUnavailableError{Lines: rejected}
	}

	productsPrice := 0.0
	for _, t := range lineTotals {
		productsPrice += t
	}

	paymentStatus := orderdom.PaymentNotPaid
	if in.PaymentMethod == orderdom.PaymentOnline {
		paid, err := u.gateway.Confirm(ctx, in.PaymentMethod, productsPrice+u.shippingCost)
		if err != nil {
			return orderdom.Order{}, fmt.Errorf("order: payment confirmation: %w", err)
		}
		if !paid {
			return orderdom.Order{}, ErrPaymentNotReceived
		}
		paymentStatus = orderdom.PaymentPaid
	}

	o, err := orderdom.New(
		uuid.NewString(),
		principal.ID,
		in.Lines,
		in.Buyer,
		productsPrice,
		u.shippingCost,
		in.PaymentMethod,
		paymentStatus,
		u.now(),
	)
	if err != nil {
		return orderdom.Order{}, err
	}

	created, err := u.orders.Create(ctx, o)
	if err != nil {
		return orderdom.Order{}, err
	}

	// Cart reconciliation is best-effort: the order exists either way,
	// and entries not present are no-ops.
	if _, err := u.users.Mutate(ctx, principal.ID, func(usr *userdom.User) error {
		for _, line := range in.Lines {
			usr.RemoveFromCart(line.ProductID)
		}
		return nil
	}); err != nil {
		log.Printf("[order_uc] WARN: cart reconciliation failed userId=%s orderId=%s err=%v",
			principal.ID, created.ID, err)
	}

	return created, nil
}

// ListByUser returns the caller's own orders.
func (u *OrderUsecase) ListByUser(ctx context.Context, principal authdom.Principal) ([]orderdom.Order, error) {
	if principal.IsAnonymous() {
		return nil, ErrNotLoggedIn
	}
	return u.orders.ListByUser(ctx, principal.ID)
}

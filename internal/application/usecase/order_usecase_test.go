// internal/application/usecase/order_usecase_test.go
package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authdom "storefront/internal/domain/auth"
	orderdom "storefront/internal/domain/order"
	productdom "storefront/internal/domain/product"
	userdom "storefront/internal/domain/user"
)

func testBuyer() orderdom.BuyerSnapshot {
	return orderdom.BuyerSnapshot{
		Name:            "Jordan Doe",
		Phone:           "+8801000000000",
		DeliveryAddress: "12 Example Road",
		District:        "Dhaka",
		Country:         "Bangladesh",
	}
}

func testBuyerUser(t *testing.T, id string, cart ...userdom.CartItem) userdom.User {
	t.Helper()
	bd := time.Date(1995, 6, 15, 0, 0, 0, 0, time.UTC)
	u, err := userdom.New(id, "Jordan Doe", id+"@example.com", "", "hash", &bd, "", time.Now())
	require.NoError(t, err)
	u.Cart = cart
	return u
}

func TestPlaceOrder(t *testing.T) {
	p1 := testProduct(t, "p-1")
	p1.Price = 100
	p2 := testProduct(t, "p-2")
	p2.Price = 100
	p2.Deducted = productdom.DeductedPrice{Price: 60}

	products := newFakeProductRepo(p1, p2)
	orders := newFakeOrderRepo()
	users := newFakeUserRepo(testBuyerUser(t, "user-a",
		userdom.CartItem{ProductID: "p-1", Quantity: 2},
		userdom.CartItem{ProductID: "p-9", Quantity: 1},
	))
	uc := NewOrderUsecase(orders, products, users, &fakeGateway{confirm: true}, 100)

	in := PlaceOrderInput{
		Lines: []orderdom.Line{
			{ProductID: "p-1", Quantity: 2},
			{ProductID: "p-2", Quantity: 1},
		},
		Buyer: testBuyer(),
	}
	created, err := uc.Place(context.Background(), authdom.Principal{ID: "user-a"}, in)
	require.NoError(t, err)

	// effective unit prices: 2*100 + 1*60
	assert.Equal(t, 260.0, created.ProductsPrice)
	assert.Equal(t, 100.0, created.ShippingCost)
	assert.Equal(t, orderdom.StatusPending, created.Status)
	assert.Equal(t, orderdom.PaymentCash, created.PaymentMethod)
	assert.Equal(t, orderdom.PaymentNotPaid, created.PaymentStatus)

	// placement never touches stock
	stored, err := products.GetByID(context.Background(), "p-1")
	require.NoError(t, err)
	assert.Equal(t, 10, stored.Stock)
	assert.Equal(t, 0, stored.Sold)

	// ordered lines left the cart, the unrelated entry stayed
	buyer, err := users.GetByID(context.Background(), "user-a")
	require.NoError(t, err)
	require.Len(t, buyer.Cart, 1)
	assert.Equal(t, "p-9", buyer.Cart[0].ProductID)
}

func TestPlaceOrderStockUnavailable(t *testing.T) {
	p1 := testProduct(t, "p-1") // stock 10
	p2 := testProduct(t, "p-2")
	p2.Stock = 1

	products := newFakeProductRepo(p1, p2)
	orders := newFakeOrderRepo()
	users := newFakeUserRepo(testBuyerUser(t, "user-a",
		userdom.CartItem{ProductID: "p-2", Quantity: 3},
	))
	uc := NewOrderUsecase(orders, products, users, &fakeGateway{confirm: true}, 100)

	in := PlaceOrderInput{
		Lines: []orderdom.Line{
			{ProductID: "p-1", Quantity: 2},
			{ProductID: "p-2", Quantity: 3},
			{ProductID: "p-gone", Quantity: 1},
		},
		Buyer: testBuyer(),
	}
	_, err := uc.Place(context.Background(), authdom.Principal{ID: "user-a"}, in)

	var unavailable *StockUnavailableError
	require.ErrorAs(t, err, &unavailable)
	require.Len(t, unavailable.Lines, 2)

	byProduct := map[string]orderdom.Line{}
	for _, l := range unavailable.Lines {
		byProduct[l.ProductID] = l
	}
	require.NotNil(t, byProduct["p-2"].AvailableStock)
	assert.Equal(t, 1, *byProduct["p-2"].AvailableStock)
	require.NotNil(t, byProduct["p-gone"].AvailableStock)
	assert.Equal(t, 0, *byProduct["p-gone"].AvailableStock)

	// all-or-nothing: no order, cart untouched
	all, err := orders.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
	buyer, err := users.GetByID(context.Background(), "user-a")
	require.NoError(t, err)
	assert.Len(t, buyer.Cart, 1)
}

func TestPlaceOrderOnlinePayment(t *testing.T) {
	products := newFakeProductRepo(testProduct(t, "p-1"))
	users := newFakeUserRepo(testBuyerUser(t, "user-a"))
	gateway := &fakeGateway{confirm: true}
	uc := NewOrderUsecase(newFakeOrderRepo(), products, users, gateway, 100)

	in := PlaceOrderInput{
		Lines:         []orderdom.Line{{ProductID: "p-1", Quantity: 1}},
		Buyer:         testBuyer(),
		PaymentMethod: orderdom.PaymentOnline,
	}
	created, err := uc.Place(context.Background(), authdom.Principal{ID: "user-a"}, in)
	require.NoError(t, err)
	assert.Equal(t, orderdom.PaymentPaid, created.PaymentStatus)
	assert.Equal(t, 1, gateway.calls)
}

func TestPlaceOrderPaymentRejected(t *testing.T) {
	products := newFakeProductRepo(testProduct(t, "p-1"))
	users := newFakeUserRepo(testBuyerUser(t, "user-a"))
	orders := newFakeOrderRepo()
	uc := NewOrderUsecase(orders, products, users, &fakeGateway{confirm: false}, 100)

	in := PlaceOrderInput{
		Lines:         []orderdom.Line{{ProductID: "p-1", Quantity: 1}},
		Buyer:         testBuyer(),
		PaymentMethod: orderdom.PaymentOnline,
	}
	_, err := uc.Place(context.Background(), authdom.Principal{ID: "user-a"}, in)
	assert.ErrorIs(t, err, ErrPaymentNotReceived)

	all, err := orders.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestPlaceOrderValidation(t *testing.T) {
	uc := NewOrderUsecase(newFakeOrderRepo(), newFakeProductRepo(), newFakeUserRepo(), &fakeGateway{}, 100)
	ctx := context.Background()

	_, err := uc.Place(ctx, authdom.Anonymous, PlaceOrderInput{})
	assert.ErrorIs(t, err, ErrNotLoggedIn)

	_, err = uc.Place(ctx, authdom.Principal{ID: "user-a"}, PlaceOrderInput{Buyer: testBuyer()})
	assert.ErrorIs(t, err, orderdom.ErrInvalidLines)

	_, err = uc.Place(ctx, authdom.Principal{ID: "user-a"}, PlaceOrderInput{
		Lines: []orderdom.Line{{ProductID: "p-1", Quantity: -1}},
		Buyer: testBuyer(),
	})
	assert.ErrorIs(t, err, orderdom.ErrInvalidLine)
}

func TestListByUser(t *testing.T) {
	products := newFakeProductRepo(testProduct(t, "p-1"))
	users := newFakeUserRepo(testBuyerUser(t, "user-a"), testBuyerUser(t, "user-b"))
	orders := newFakeOrderRepo()
	uc := NewOrderUsecase(orders, products, users, &fakeGateway{}, 100)
	ctx := context.Background()

	in := PlaceOrderInput{
		Lines: []orderdom.Line{{ProductID: "p-1", Quantity: 1}},
		Buyer: testBuyer(),
	}
	_, err := uc.Place(ctx, authdom.Principal{ID: "user-a"}, in)
	require.NoError(t, err)
	_, err = uc.Place(ctx, authdom.Principal{ID: "user-b"}, in)
	require.NoError(t, err)

	mine, err := uc.ListByUser(ctx, authdom.Principal{ID: "user-a"})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "user-a", mine[0].OrderedBy)

	_, err = uc.ListByUser(ctx, authdom.Anonymous)
	assert.True(t, errors.Is(err, ErrNotLoggedIn))
}

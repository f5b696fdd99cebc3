// internal/domain/order/entity_test.go
package order

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrder(t *testing.T) Order {
	t.Helper()
	o, err := New(
		"o-1", "user-a",
		[]Line{{ProductID: "p-1", Quantity: 2}},
		BuyerSnapshot{
			Name:            "Jordan Doe",
			Phone:           "+8801000000000",
			DeliveryAddress: "12 Example Road",
			District:        "Dhaka",
			Country:         "Bangladesh",
		},
		400, 100,
		PaymentCash, PaymentNotPaid,
		time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	return o
}

func TestNewValidation(t *testing.T) {
	base := newTestOrder(t)

	_, err := New("", base.OrderedBy, base.Lines, base.Buyer, 400, 100, PaymentCash, PaymentNotPaid, base.CreatedAt)
	assert.ErrorIs(t, err, ErrInvalidID)

	_, err = New("o-2", base.OrderedBy, nil, base.Buyer, 0, 100, PaymentCash, PaymentNotPaid, base.CreatedAt)
	assert.ErrorIs(t, err, ErrInvalidLines)

	_, err = New("o-2", base.OrderedBy, []Line{{ProductID: "p-1", Quantity: 0}}, base.Buyer, 0, 100, PaymentCash, PaymentNotPaid, base.CreatedAt)
	assert.ErrorIs(t, err, ErrInvalidLine)

	incomplete := base.Buyer
	incomplete.Phone = ""
	_, err = New("o-2", base.OrderedBy, base.Lines, incomplete, 400, 100, PaymentCash, PaymentNotPaid, base.CreatedAt)
	assert.ErrorIs(t, err, ErrInvalidBuyer)

	_, err = New("o-2", base.OrderedBy, base.Lines, base.Buyer, 400, 100, PaymentMethod("bitcoin"), PaymentNotPaid, base.CreatedAt)
	assert.ErrorIs(t, err, ErrInvalidPayment)
}

func TestCompleteTransition(t *testing.T) {
	o := newTestOrder(t)
	now := time.Date(2024, 5, 11, 10, 0, 0, 0, time.UTC)

	require.NoError(t, o.Complete(now))
	assert.Equal(t, StatusCompleted, o.Status)
	assert.Equal(t, PaymentPaid, o.PaymentStatus)
	require.NotNil(t, o.CompletionDate)
	assert.Equal(t, now, *o.CompletionDate)

	// completed is terminal
	assert.ErrorIs(t, o.Complete(now), ErrInvalidState)
	assert.ErrorIs(t, o.Cancel(), ErrInvalidState)
}

func TestCancelTransition(t *testing.T) {
	o := newTestOrder(t)

	require.NoError(t, o.Cancel())
	assert.Equal(t, StatusCancelled, o.Status)
	assert.Equal(t, PaymentNotPaid, o.PaymentStatus)
	assert.Nil(t, o.CompletionDate)

	assert.ErrorIs(t, o.Cancel(), ErrInvalidState)
	assert.ErrorIs(t, o.Complete(time.Now()), ErrInvalidState)
}

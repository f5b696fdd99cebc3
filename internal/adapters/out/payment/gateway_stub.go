// internal/adapters/out/payment/gateway_stub.go
package payment

import (
	"context"
	"log"

	orderdom "storefront/internal/domain/order"
)

// GatewayStub confirms every online payment. It stands in for a real
// processor until one is integrated; swapping it out only touches the
// wiring, not the placement flow.
type GatewayStub struct{}

func NewGatewayStub() *GatewayStub {
	return &GatewayStub{}
}

func (g *GatewayStub) Confirm(ctx context.Context, method orderdom.PaymentMethod, amount float64) (bool, error) {
	log.Printf("[payment_stub] confirm method=%s amount=%.2f", method, amount)
	return true, nil
}

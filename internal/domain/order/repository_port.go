// internal/domain/order/repository_port.go
package order

import "context"

// Repository is the persistence port for Order. Mutate is the atomic
// conditional update used by the fulfillment state machine so that two
// concurrent transitions cannot both observe "pending".
type Repository interface {
	GetByID(ctx context.Context, id string) (Order, error)
	ListAll(ctx context.Context) ([]Order, error)
	ListByUser(ctx context.Context, userID string) ([]Order, error)

	Create(ctx context.Context, o Order) (Order, error)
	Mutate(ctx context.Context, id string, fn func(*Order) error) (Order, error)
}

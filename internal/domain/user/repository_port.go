// internal/domain/user/repository_port.go
package user

import "context"

// Repository is the persistence port for User. Cart and wishlist
// membership checks go through Mutate so two concurrent adds cannot
// both pass the duplicate check.
type Repository interface {
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)

	Create(ctx context.Context, u User) (User, error)
	Mutate(ctx context.Context, id string, fn func(*User) error) (User, error)
}

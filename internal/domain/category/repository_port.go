// internal/domain/category/repository_port.go
package category

import "context"

// Repository is the persistence port for Category. Name is the
// identity; Create fails with ErrConflict on duplicates.
type Repository interface {
	List(ctx context.Context) ([]Category, error)
	Create(ctx context.Context, c Category) (Category, error)
	DeleteByName(ctx context.Context, name string) error
}

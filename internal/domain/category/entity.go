// internal/domain/category/entity.go
package category

import (
	"strings"

	"storefront/internal/domain/common"
)

// Category is a catalog grouping. Products reference categories by
// name only; deleting a category leaves dangling strings behind, and
// that is tolerated.
type Category struct {
	Name string
}

var (
	ErrInvalidName = common.Kind(common.ErrInvalidInput, "category: invalid name")
	ErrNotFound    = common.Kind(common.ErrNotFound, "category: not found")
	ErrConflict    = common.Kind(common.ErrConflict, "category: conflict")
)

func New(name string) (Category, error) {
	c := Category{Name: strings.TrimSpace(name)}
	if c.Name == "" {
		return Category{}, ErrInvalidName
	}
	return c, nil
}

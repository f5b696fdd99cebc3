// internal/domain/common/repository_common.go
package common

// Sort is the shared sort specification. Each domain validates its own
// allowed columns.
type Sort struct {
	Column string
	Order  SortOrder
}

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Page is an offset paging specification. Offset is 0-based; Limit of
// 0 or less means the adapter default.
type Page struct {
	Offset int
	Limit  int
}

// PageResult carries one page of items plus the unpaged total.
type PageResult[T any] struct {
	Items      []T
	TotalCount int
}

// internal/domain/product/entity.go
package product

import (
	"strings"
	"time"

	"storefront/internal/domain/common"
)

// ========================================
// Value objects
// ========================================

// DeductedPrice is the discount block on a product. Price of 0 means
// "no discount"; FlashDeal marks the discount as promotional.
type DeductedPrice struct {
	Price     float64
	FlashDeal bool
}

// ========================================
// Entity
// ========================================

type Product struct {
	ID          string
	Name        string
	Description string
	Brand       string
	Price       float64
	Deducted    DeductedPrice
	Stock       int
	Category    string
	Sold        int

	// RatedUsers holds at most one entry per user. TotalRateValue must
	// always equal the sum of RateValue over RatedUsers; every mutation
	// of RatedUsers adjusts TotalRateValue in the same step.
	RatedUsers     []RatedUser
	TotalRateValue int
	Rating         float64

	Reviews []Review

	ImagesURLs []string

	CreatedAt time.Time
	UpdatedAt *time.Time
}

// Patch represents partial updates to catalog fields. A nil field
// means "no change". Rating, review and image mutations have their own
// operations and are not patchable.
type Patch struct {
	Name        *string
	Description *string
	Brand       *string
	Price       *float64
	Deducted    *DeductedPrice
	Stock       *int
	Category    *string
}

// ========================================
// Errors
// ========================================

var (
	ErrInvalidID          = common.Kind(common.ErrInvalidInput, "product: invalid id")
	ErrInvalidName        = common.Kind(common.ErrInvalidInput, "product: invalid name")
	ErrInvalidDescription = common.Kind(common.ErrInvalidInput, "product: invalid description")
	ErrInvalidPrice       = common.Kind(common.ErrInvalidInput, "product: invalid price")
	ErrInvalidStock       = common.Kind(common.ErrInvalidInput, "product: invalid stock")
	ErrInvalidCategory    = common.Kind(common.ErrInvalidInput, "product: invalid category")

	ErrNotFound = common.Kind(common.ErrNotFound, "product: not found")
	ErrConflict = common.Kind(common.ErrConflict, "product: conflict")
)

// ========================================
// Constructors
// ========================================

func New(
	id string,
	name, description, brand string,
	price float64,
	deducted DeductedPrice,
	stock int,
	category string,
	createdAt time.Time,
) (Product, error) {
	p := Product{
		ID:          strings.TrimSpace(id),
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
		Brand:       strings.TrimSpace(brand),
		Price:       price,
		Deducted:    deducted,
		Stock:       stock,
		Category:    strings.TrimSpace(category),
		ImagesURLs:  []string{},
		CreatedAt:   createdAt.UTC(),
	}
	if err := p.validate(); err != nil {
		return Product{}, err
	}
	return p, nil
}

// ========================================
// Behavior
// ========================================

// EffectiveUnitPrice is the price a buyer actually pays per unit:
// the deducted price when set and nonzero, the list price otherwise.
func (p Product) EffectiveUnitPrice() float64 {
	if p.Deducted.Price != 0 {
		return p.Deducted.Price
	}
	return p.Price
}

// ApplyPatch merges non-nil patch fields into the product.
func (p *Product) ApplyPatch(patch Patch) error {
	if patch.Name != nil {
		p.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Description != nil {
		p.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Brand != nil {
		p.Brand = strings.TrimSpace(*patch.Brand)
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Deducted != nil {
		p.Deducted = *patch.Deducted
	}
	if patch.Stock != nil {
		p.Stock = *patch.Stock
	}
	if patch.Category != nil {
		p.Category = strings.TrimSpace(*patch.Category)
	}
	return p.validate()
}

// ApplySale records a fulfilled line item: Sold grows, Stock shrinks.
// Sold is monotonically non-decreasing; Stock is clamped at 0 so a
// replayed completion cannot drive it negative.
func (p *Product) ApplySale(quantity int) {
	if quantity <= 0 {
		return
	}
	p.Sold += quantity
	p.Stock -= quantity
	if p.Stock < 0 {
		p.Stock = 0
	}
}

// AppendImages adds uploaded URLs. Append order follows upload
// completion order; ImagesURLs is an unordered set.
func (p *Product) AppendImages(urls []string) {
	for _, u := range urls {
		u = strings.TrimSpace(u)
		if u == "" {
			continue
		}
		p.ImagesURLs = append(p.ImagesURLs, u)
	}
}

// RemoveImageURL drops one URL by value and reports whether it was
// present.
func (p *Product) RemoveImageURL(url string) bool {
	url = strings.TrimSpace(url)
	for i, u := range p.ImagesURLs {
		if u == url {
			p.ImagesURLs = append(p.ImagesURLs[:i], p.ImagesURLs[i+1:]...)
			return true
		}
	}
	return false
}

// ========================================
// Validation
// ========================================

func (p Product) validate() error {
	if p.ID == "" {
		return ErrInvalidID
	}
	if p.Name == "" {
		return ErrInvalidName
	}
	if p.Description == "" {
		return ErrInvalidDescription
	}
	// A free product is a data-entry mistake, not a promotion; discounts
	// go through DeductedPrice.
	if p.Price <= 0 {
		return ErrInvalidPrice
	}
	if p.Stock < 0 {
		return ErrInvalidStock
	}
	if p.Category == "" {
		return ErrInvalidCategory
	}
	return nil
}

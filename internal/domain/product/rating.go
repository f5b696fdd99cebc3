// internal/domain/product/rating.go
package product

import (
	"math"
	"strings"

	"storefront/internal/domain/common"
)

// RatedUser is one user's current rate value on the product.
type RatedUser struct {
	UserID    string
	RateValue int
}

var (
	ErrInvalidRateValue = common.Kind(common.ErrInvalidInput, "product: invalid rate value")
	ErrRatingNotFound   = common.Kind(common.ErrNotFound, "product: rating not found")
)

// ApplyRate records or replaces the user's rate value and keeps
// TotalRateValue and Rating in sync in the same step. It must be run
// inside an atomic product mutation; a read-then-unconditional-write
// across two round trips loses concurrent updates.
func (p *Product) ApplyRate(userID string, value int) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return ErrRatingNotFound
	}
	if value < 1 || value > 5 {
		return ErrInvalidRateValue
	}

	for i := range p.RatedUsers {
		if p.RatedUsers[i].UserID == userID {
			p.TotalRateValue += value - p.RatedUsers[i].RateValue
			p.RatedUsers[i].RateValue = value
			p.recomputeRating()
			return nil
		}
	}

	p.RatedUsers = append(p.RatedUsers, RatedUser{UserID: userID, RateValue: value})
	p.TotalRateValue += value
	p.recomputeRating()
	return nil
}

// RemoveRate drops the user's rate entry. ErrRatingNotFound when the
// user never rated. Removing the last entry leaves Rating at 0.
func (p *Product) RemoveRate(userID string) error {
	userID = strings.TrimSpace(userID)
	for i := range p.RatedUsers {
		if p.RatedUsers[i].UserID == userID {
			p.TotalRateValue -= p.RatedUsers[i].RateValue
			p.RatedUsers = append(p.RatedUsers[:i], p.RatedUsers[i+1:]...)
			p.recomputeRating()
			return nil
		}
	}
	return ErrRatingNotFound
}

// RateValueOf returns the user's current rate value, 0 if absent.
func (p Product) RateValueOf(userID string) int {
	for _, ru := range p.RatedUsers {
		if ru.UserID == userID {
			return ru.RateValue
		}
	}
	return 0
}

func (p *Product) recomputeRating() {
	if len(p.RatedUsers) == 0 {
		p.Rating = 0
		return
	}
	p.Rating = round2(float64(p.TotalRateValue) / float64(len(p.RatedUsers)))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// internal/domain/product/review.go
package product

import (
	"strings"
	"time"

	"storefront/internal/domain/common"
)

// Review is a per-user text entry on a product. Reviews carry no
// rating of their own; an author's rate value lives in RatedUsers.
type Review struct {
	ID        string
	UserID    string
	Text      string
	CreatedAt time.Time
}

var (
	ErrEmptyReviewText = common.Kind(common.ErrInvalidInput, "product: empty review text")
	ErrReviewNotFound  = common.Kind(common.ErrNotFound, "product: review not found")
	ErrNotReviewAuthor = common.Kind(common.ErrForbidden, "product: not the review author")
)

// AddReview appends a review. The caller supplies the id so the same
// id is persisted and returned.
func (p *Product) AddReview(id, userID, text string, now time.Time) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyReviewText
	}
	p.Reviews = append(p.Reviews, Review{
		ID:        strings.TrimSpace(id),
		UserID:    strings.TrimSpace(userID),
		Text:      text,
		CreatedAt: now.UTC(),
	})
	return nil
}

// UpdateReviewText replaces the text of the review with the given id.
// ErrReviewNotFound when no such review, ErrNotReviewAuthor when the
// caller did not write it.
func (p *Product) UpdateReviewText(reviewID, userID, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyReviewText
	}
	for i := range p.Reviews {
		if p.Reviews[i].ID == reviewID {
			if p.Reviews[i].UserID != strings.TrimSpace(userID) {
				return ErrNotReviewAuthor
			}
			p.Reviews[i].Text = text
			return nil
		}
	}
	return ErrReviewNotFound
}

// RemoveReview deletes the review by id under the same ownership rule
// and returns the removed entry.
func (p *Product) RemoveReview(reviewID, userID string) (Review, error) {
	for i := range p.Reviews {
		if p.Reviews[i].ID == reviewID {
			if p.Reviews[i].UserID != strings.TrimSpace(userID) {
				return Review{}, ErrNotReviewAuthor
			}
			removed := p.Reviews[i]
			p.Reviews = append(p.Reviews[:i], p.Reviews[i+1:]...)
			return removed, nil
		}
	}
	return Review{}, ErrReviewNotFound
}

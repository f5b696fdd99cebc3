// internal/domain/otp/repository_port.go
package otp

import (
	"context"
	"time"
)

// Repository stores at most one reset code per user (docId = userId).
type Repository interface {
	GetByUserID(ctx context.Context, userID string) (OTP, error)
	Upsert(ctx context.Context, o OTP) error
	DeleteByUserID(ctx context.Context, userID string) error

	// DeleteExpired removes codes created before the cutoff; used by
	// the periodic sweep. Returns the number removed.
	DeleteExpired(ctx context.Context, cutoff time.Time) (int, error)
}

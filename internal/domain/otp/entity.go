// internal/domain/otp/entity.go
package otp

import (
	"strings"
	"time"

	"storefront/internal/domain/common"
)

// TTL is how long a password-reset code stays valid. Expired documents
// are swept by a periodic job.
const TTL = time.Hour

// OTP is a one-time password-reset code, at most one per user.
type OTP struct {
	UserID    string
	Code      string
	CreatedAt time.Time
}

var (
	ErrInvalidUserID = common.Kind(common.ErrInvalidInput, "otp: invalid userId")
	ErrInvalidCode   = common.Kind(common.ErrInvalidInput, "otp: invalid code")
	ErrNotFound      = common.Kind(common.ErrNotFound, "otp: not found")
)

func New(userID, code string, createdAt time.Time) (OTP, error) {
	o := OTP{
		UserID:    strings.TrimSpace(userID),
		Code:      strings.TrimSpace(code),
		CreatedAt: createdAt.UTC(),
	}
	if o.UserID == "" {
		return OTP{}, ErrInvalidUserID
	}
	if o.Code == "" {
		return OTP{}, ErrInvalidCode
	}
	return o, nil
}

// Expired reports whether the code is past its TTL at the given time.
func (o OTP) Expired(now time.Time) bool {
	return now.Sub(o.CreatedAt) > TTL
}

// internal/application/usecase/password_reset_usecase.go
package usecase

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	common "storefront/internal/domain/common"
	otpdom "storefront/internal/domain/otp"
	userdom "storefront/internal/domain/user"
)

// MailSender is the outbound mail port; only the reset flow uses it.
type MailSender interface {
	Send(ctx context.Context, to, subject, body string) error
}

var (
	ErrUnknownEmail = common.Kind(common.ErrNotFound, "usecase: user doesn't exist")
	ErrOTPInvalid   = common.Kind(common.ErrUnauthorized, "usecase: otp invalid or expired")
	ErrOTPMismatch  = common.Kind(common.ErrUnauthorized, "usecase: incorrect otp")
)

// PasswordResetUsecase issues and redeems one-hour reset codes, one
// live code per user.
type PasswordResetUsecase struct {
	users  userdom.Repository
	otps   otpdom.Repository
	hasher PasswordHasher
	mailer MailSender
	now    func() time.Time
}

func NewPasswordResetUsecase(users userdom.Repository, otps otpdom.Repository, hasher PasswordHasher, mailer MailSender) *PasswordResetUsecase {
	return &PasswordResetUsecase{users: users, otps: otps, hasher: hasher, mailer: mailer, now: time.Now}
}

// Request generates a fresh code for the account behind the email
// (replacing any previous one) and mails it.
func (u *PasswordResetUsecase) Request(ctx context.Context, email string) error {
	usr, err := u.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, userdom.ErrNotFound) {
			return ErrUnknownEmail
		}
		return err
	}

	code, err := generateCode()
	if err != nil {
		return err
	}
	o, err := otpdom.New(usr.ID, code, u.now())
	if err != nil {
		return err
	}
	if err := u.otps.Upsert(ctx, o); err != nil {
		return err
	}

	body := fmt.Sprintf("Your confirmation code is: %s. Please keep in mind that this code expires after 1 hour.", code)
	if err := u.mailer.Send(ctx, usr.Email, "Password reset", body); err != nil {
		return fmt.Errorf("reset mail: %w", err)
	}
	return nil
}

// Reset redeems a code and replaces the password. The code is consumed
// on success.
func (u *PasswordResetUsecase) Reset(ctx context.Context, email, code, newPassword string) error {
	usr, err := u.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, userdom.ErrNotFound) {
			return ErrUnknownEmail
		}
		return err
	}

	o, err := u.otps.GetByUserID(ctx, usr.ID)
	if err != nil {
		if errors.Is(err, otpdom.ErrNotFound) {
			return ErrOTPInvalid
		}
		return err
	}
	if o.Expired(u.now()) {
		return ErrOTPInvalid
	}
	if o.Code != strings.TrimSpace(code) {
		return ErrOTPMismatch
	}
	if strings.TrimSpace(newPassword) == "" {
		return userdom.ErrInvalidPassword
	}

	hash, err := u.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	if _, err := u.users.Mutate(ctx, usr.ID, func(usr *userdom.User) error {
		usr.PasswordHash = hash
		return nil
	}); err != nil {
		return err
	}
	return u.otps.DeleteByUserID(ctx, usr.ID)
}

// PurgeExpired sweeps codes past their TTL. Wired to the periodic job.
func (u *PasswordResetUsecase) PurgeExpired(ctx context.Context) {
	cutoff := u.now().Add(-otpdom.TTL)
	n, err := u.otps.DeleteExpired(ctx, cutoff)
	if err != nil {
		log.Printf("[password_reset_uc] WARN: otp sweep failed: %v", err)
		return
	}
	if n > 0 {
		log.Printf("[password_reset_uc] otp sweep removed %d expired code(s)", n)
	}
}

// generateCode returns a 6-digit numeric code from crypto/rand.
func generateCode() (string, error) {
	var b [4]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	n := uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
	return fmt.Sprintf("%06d", n%1000000), nil
}

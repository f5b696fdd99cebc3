// internal/application/usecase/password_reset_usecase_test.go
package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	otpdom "storefront/internal/domain/otp"
)

func newResetUC(t *testing.T, users *fakeUserRepo, otps *fakeOTPRepo, mailer *fakeMailer) *PasswordResetUsecase {
	t.Helper()
	return NewPasswordResetUsecase(users, otps, fakeHasher{}, mailer)
}

func TestRequestIssuesAndMailsCode(t *testing.T) {
	users := newFakeUserRepo(testBuyerUser(t, "user-a"))
	otps := newFakeOTPRepo()
	mailer := &fakeMailer{}
	uc := newResetUC(t, users, otps, mailer)
	ctx := context.Background()

	require.NoError(t, uc.Request(ctx, "USER-A@example.com"))

	issued, err := otps.GetByUserID(ctx, "user-a")
	require.NoError(t, err)
	assert.Len(t, issued.Code, 6)
	require.Len(t, mailer.sent, 1)
	assert.Contains(t, mailer.bodys[0], issued.Code)
}

func TestRequestReplacesPreviousCode(t *testing.T) {
	users := newFakeUserRepo(testBuyerUser(t, "user-a"))
	otps := newFakeOTPRepo()
	uc := newResetUC(t, users, otps, &fakeMailer{})
	ctx := context.Background()

	require.NoError(t, uc.Request(ctx, "user-a@example.com"))
	first, err := otps.GetByUserID(ctx, "user-a")
	require.NoError(t, err)

	require.NoError(t, uc.Request(ctx, "user-a@example.com"))
	second, err := otps.GetByUserID(ctx, "user-a")
	require.NoError(t, err)

	// at most one live code per user
	assert.True(t, !second.CreatedAt.Before(first.CreatedAt))
	assert.Len(t, otps.byUserID, 1)
}

func TestRequestUnknownEmail(t *testing.T) {
	uc := newResetUC(t, newFakeUserRepo(), newFakeOTPRepo(), &fakeMailer{})
	assert.ErrorIs(t, uc.Request(context.Background(), "nobody@example.com"), ErrUnknownEmail)
}

func TestResetConsumesCode(t *testing.T) {
	users := newFakeUserRepo(testBuyerUser(t, "user-a"))
	otps := newFakeOTPRepo()
	uc := newResetUC(t, users, otps, &fakeMailer{})
	ctx := context.Background()

	require.NoError(t, uc.Request(ctx, "user-a@example.com"))
	issued, err := otps.GetByUserID(ctx, "user-a")
	require.NoError(t, err)

	require.NoError(t, uc.Reset(ctx, "user-a@example.com", issued.Code, "brand-new"))

	stored, err := users.GetByID(ctx, "user-a")
	require.NoError(t, err)
	assert.Equal(t, "hashed:brand-new", stored.PasswordHash)

	// consumed: the same code cannot be redeemed twice
	assert.ErrorIs(t, uc.Reset(ctx, "user-a@example.com", issued.Code, "again"), ErrOTPInvalid)
}

func TestResetRejectsWrongOrExpiredCode(t *testing.T) {
	users := newFakeUserRepo(testBuyerUser(t, "user-a"))
	otps := newFakeOTPRepo()
	uc := newResetUC(t, users, otps, &fakeMailer{})
	ctx := context.Background()

	assert.ErrorIs(t, uc.Reset(ctx, "nobody@example.com", "123456", "pw"), ErrUnknownEmail)
	assert.ErrorIs(t, uc.Reset(ctx, "user-a@example.com", "123456", "pw"), ErrOTPInvalid)

	stale, err := otpdom.New("user-a", "654321", time.Now().Add(-2*otpdom.TTL))
	require.NoError(t, err)
	require.NoError(t, otps.Upsert(ctx, stale))
	assert.ErrorIs(t, uc.Reset(ctx, "user-a@example.com", "654321", "pw"), ErrOTPInvalid)

	fresh, err := otpdom.New("user-a", "111222", time.Now())
	require.NoError(t, err)
	require.NoError(t, otps.Upsert(ctx, fresh))
	assert.ErrorIs(t, uc.Reset(ctx, "user-a@example.com", "999999", "pw"), ErrOTPMismatch)
}

func TestPurgeExpired(t *testing.T) {
	otps := newFakeOTPRepo()
	uc := newResetUC(t, newFakeUserRepo(), otps, &fakeMailer{})
	ctx := context.Background()

	stale, err := otpdom.New("user-a", "111111", time.Now().Add(-2*otpdom.TTL))
	require.NoError(t, err)
	require.NoError(t, otps.Upsert(ctx, stale))
	fresh, err := otpdom.New("user-b", "222222", time.Now())
	require.NoError(t, err)
	require.NoError(t, otps.Upsert(ctx, fresh))

	uc.PurgeExpired(ctx)

	_, err = otps.GetByUserID(ctx, "user-a")
	assert.ErrorIs(t, err, otpdom.ErrNotFound)
	_, err = otps.GetByUserID(ctx, "user-b")
	assert.NoError(t, err)
}

// internal/adapters/out/firestore/otp_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	otpdom "storefront/internal/domain/otp"
)

// OTPRepositoryFS implements otp.Repository using Firestore.
//
// Collection design:
// - collection: password_reset_codes
// - docId: userId (at most one live code per user)
type OTPRepositoryFS struct {
	Client *firestore.Client
}

func NewOTPRepositoryFS(client *firestore.Client) *OTPRepositoryFS {
	return &OTPRepositoryFS{Client: client}
}

func (r *OTPRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection("password_reset_codes")
}

func (r *OTPRepositoryFS) GetByUserID(ctx context.Context, userID string) (otpdom.OTP, error) {
	var zero otpdom.OTP
	if r == nil || r.Client == nil {
		return zero, errors.New("otp_repository_fs: firestore client is nil")
	}
	uid := strings.TrimSpace(userID)
	if uid == "" {
		return zero, otpdom.ErrNotFound
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	snap, err := r.col().Doc(uid).Get(ctx)
	if err != nil {
		return zero, mapErr(err, otpdom.ErrNotFound)
	}
	return docToOTP(snap), nil
}

func (r *OTPRepositoryFS) Upsert(ctx context.Context, o otpdom.OTP) error {
	if r == nil || r.Client == nil {
		return errors.New("otp_repository_fs: firestore client is nil")
	}
	uid := strings.TrimSpace(o.UserID)
	if uid == "" {
		return errors.New("otp_repository_fs: userID is empty")
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	// Overwrite replaces any previous code for the user.
	_, err := r.col().Doc(uid).Set(ctx, map[string]interface{}{
		"code":      o.Code,
		"createdAt": o.CreatedAt,
	})
	return mapErr(err, otpdom.ErrNotFound)
}

func (r *OTPRepositoryFS) DeleteByUserID(ctx context.Context, userID string) error {
	if r == nil || r.Client == nil {
		return errors.New("otp_repository_fs: firestore client is nil")
	}
	uid := strings.TrimSpace(userID)
	if uid == "" {
		return nil
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	// Delete is a no-op on a missing doc.
	_, err := r.col().Doc(uid).Delete(ctx)
	return mapErr(err, otpdom.ErrNotFound)
}

func (r *OTPRepositoryFS) DeleteExpired(ctx context.Context, cutoff time.Time) (int, error) {
	if r == nil || r.Client == nil {
		return 0, errors.New("otp_repository_fs: firestore client is nil")
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	it := r.col().Where("createdAt", "<", cutoff.UTC()).Documents(ctx)
	defer it.Stop()

	bw := r.Client.BulkWriter(ctx)
	removed := 0
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return removed, mapErr(err, otpdom.ErrNotFound)
		}
		if _, err := bw.Delete(snap.Ref); err != nil {
			return removed, err
		}
		removed++
	}
	bw.End()
	return removed, nil
}

func docToOTP(snap *firestore.DocumentSnapshot) otpdom.OTP {
	data := snap.Data()

	o := otpdom.OTP{UserID: snap.Ref.ID}
	if v, ok := data["code"].(string); ok {
		o.Code = v
	}
	if t, ok := data["createdAt"].(time.Time); ok {
		o.CreatedAt = t.UTC()
	}
	return o
}

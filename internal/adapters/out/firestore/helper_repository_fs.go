// internal/adapters/out/firestore/helper_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	common "storefront/internal/domain/common"
)

// opTimeout bounds every round trip to the store so a stalled call
// surfaces as Timeout instead of hanging the request.
const opTimeout = 10 * time.Second

func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, opTimeout)
}

// mapErr translates store errors into domain errors: NotFound to the
// caller's sentinel, deadline expiry to the shared Timeout kind.
func mapErr(err error, notFound error) error {
	if err == nil {
		return nil
	}
	if status.Code(err) == codes.NotFound {
		return notFound
	}
	if errors.Is(err, context.DeadlineExceeded) || status.Code(err) == codes.DeadlineExceeded {
		return common.ErrTimeout
	}
	return err
}

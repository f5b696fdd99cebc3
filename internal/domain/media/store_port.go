// internal/domain/media/store_port.go
package media

import (
	"context"

	"storefront/internal/domain/common"
)

// Store is the object-storage port. Upload returns the public URL of
// the stored object; Delete distinguishes missing objects so callers
// can still drop dangling URL references.
type Store interface {
	Upload(ctx context.Context, data []byte, objectPath string) (string, error)
	Delete(ctx context.Context, url string) error

	// DeleteAllUnderPrefix purges every object under the prefix.
	// Best-effort: callers may fire-and-forget it on cascade deletes.
	DeleteAllUnderPrefix(ctx context.Context, prefix string) error
}

var (
	ErrNotFound = common.Kind(common.ErrNotFound, "media: object not found")
	ErrUpload   = common.Kind(common.ErrUpstream, "media: upload failed")
)

// Object path layout, shared by the uploader and the cascade deletes.
const (
	ProductImagePrefix = "products/images/"
	ProfileImagePrefix = "users/profile/images/profilepic/"
)

// ProductPrefix is the object prefix owning all of one product's
// images; deleting the product purges everything under it.
func ProductPrefix(productID string) string {
	return ProductImagePrefix + productID + "/"
}

// ProfileObjectPath is the single object per user profile picture.
// Re-uploads overwrite it in place.
func ProfileObjectPath(userID string) string {
	return ProfileImagePrefix + userID
}

// internal/adapters/out/gcs/media_store_gcs.go
package gcs

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"

	mediadom "storefront/internal/domain/media"
)

// MediaStoreGCS implements media.Store on a single bucket.
//
// Layout:
// - bucket: <configured>
// - objectPath: products/images/{productId}/<uuid> or
//   users/profile/images/profilepic/{userId}
//
// Public access:
//   - If the bucket has IAM "allUsers: Storage Object Viewer" (uniform
//     access), uploaded objects become publicly readable without
//     per-object ACL changes.
type MediaStoreGCS struct {
	Client *storage.Client
	Bucket string
	// Optional: if empty, uses https://storage.googleapis.com
	PublicBaseURL string
}

func NewMediaStoreGCS(client *storage.Client, bucket string) *MediaStoreGCS {
	return &MediaStoreGCS{
		Client:        client,
		Bucket:        strings.TrimSpace(bucket),
		PublicBaseURL: "https://storage.googleapis.com",
	}
}

func (s *MediaStoreGCS) bucket() (*storage.BucketHandle, error) {
	if s == nil || s.Client == nil {
		return nil, errors.New("media_store_gcs: storage client is nil")
	}
	b := strings.TrimSpace(s.Bucket)
	if b == "" {
		return nil, errors.New("media_store_gcs: bucket is empty")
	}
	return s.Client.Bucket(b), nil
}

// Upload writes data to objectPath and returns the public URL.
func (s *MediaStoreGCS) Upload(ctx context.Context, data []byte, objectPath string) (string, error) {
	bh, err := s.bucket()
	if err != nil {
		return "", err
	}
	obj := strings.TrimSpace(objectPath)
	if obj == "" {
		return "", fmt.Errorf("%w: object path is empty", mediadom.ErrUpload)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty payload", mediadom.ErrUpload)
	}

	w := bh.Object(obj).NewWriter(ctx)
	w.ContentType = http.DetectContentType(data)
	// Safety: avoid writer hanging forever.
	w.ChunkSize = 0
	w.Metadata = map[string]string{
		"uploadedAt": time.Now().UTC().Format(time.RFC3339),
	}
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("%w: %v", mediadom.ErrUpload, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("%w: %v", mediadom.ErrUpload, err)
	}
	return s.publicURL(obj), nil
}

// Delete removes the object named by its public URL. A missing object
// is reported as media.ErrNotFound so callers can still drop the
// dangling reference.
func (s *MediaStoreGCS) Delete(ctx context.Context, publicURL string) error {
	bh, err := s.bucket()
	if err != nil {
		return err
	}
	obj, err := s.objectPathFromURL(publicURL)
	if err != nil {
		return err
	}

	if err := bh.Object(obj).Delete(ctx); err != nil {
		if err == storage.ErrObjectNotExist {
			return mediadom.ErrNotFound
		}
		return err
	}
	return nil
}

// DeleteAllUnderPrefix purges every object under prefix. Stops on the
// first error other than a concurrent delete.
func (s *MediaStoreGCS) DeleteAllUnderPrefix(ctx context.Context, prefix string) error {
	bh, err := s.bucket()
	if err != nil {
		return err
	}
	p := strings.TrimSpace(prefix)
	if p == "" {
		return errors.New("media_store_gcs: prefix is empty")
	}

	it := bh.Objects(ctx, &storage.Query{Prefix: p})
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return err
		}
		if attrs == nil || strings.TrimSpace(attrs.Name) == "" {
			continue
		}
		if err := bh.Object(attrs.Name).Delete(ctx); err != nil && err != storage.ErrObjectNotExist {
			return err
		}
	}
	return nil
}

// publicURL returns a public URL for the object. Works when the bucket
// is publicly readable (uniform access via IAM).
func (s *MediaStoreGCS) publicURL(objectPath string) string {
	base := strings.TrimSpace(s.PublicBaseURL)
	if base == "" {
		base = "https://storage.googleapis.com"
	}
	// Encode path but keep "/" separators.
	parts := strings.Split(objectPath, "/")
	for i := range parts {
		parts[i] = url.PathEscape(parts[i])
	}
	encoded := strings.Join(parts, "/")
	return fmt.Sprintf("%s/%s/%s", strings.TrimRight(base, "/"), s.Bucket, encoded)
}

// objectPathFromURL reverses publicURL. It tolerates bare object paths
// so internal callers can pass either form.
func (s *MediaStoreGCS) objectPathFromURL(raw string) (string, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return "", errors.New("media_store_gcs: url is empty")
	}
	if !strings.Contains(v, "://") {
		return v, nil
	}

	u, err := url.Parse(v)
	if err != nil {
		return "", fmt.Errorf("media_store_gcs: bad url: %w", err)
	}
	path := strings.TrimPrefix(u.Path, "/")
	// Strip the leading "<bucket>/" segment.
	if rest, ok := strings.CutPrefix(path, s.Bucket+"/"); ok {
		path = rest
	}
	decoded, err := url.PathUnescape(path)
	if err != nil {
		return "", fmt.Errorf("media_store_gcs: bad url path: %w", err)
	}
	if decoded == "" {
		return "", errors.New("media_store_gcs: url has no object path")
	}
	return decoded, nil
}

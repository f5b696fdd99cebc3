// internal/adapters/out/gcs/media_store_gcs_test.go
package gcs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicURLRoundTrip(t *testing.T) {
	s := &MediaStoreGCS{Bucket: "storefront-media"}

	objectPath := "products/images/p-1/abc def.jpg"
	u := s.publicURL(objectPath)
	assert.Equal(t, "https://storage.googleapis.com/storefront-media/products/images/p-1/abc%20def.jpg", u)

	back, err := s.objectPathFromURL(u)
	require.NoError(t, err)
	assert.Equal(t, objectPath, back)
}

func TestObjectPathFromURLToleratesBarePaths(t *testing.T) {
	s := &MediaStoreGCS{Bucket: "storefront-media"}

	back, err := s.objectPathFromURL("users/profile/images/profilepic/u-1")
	require.NoError(t, err)
	assert.Equal(t, "users/profile/images/profilepic/u-1", back)
}

func TestObjectPathFromURLRejectsEmpty(t *testing.T) {
	s := &MediaStoreGCS{Bucket: "storefront-media"}

	_, err := s.objectPathFromURL("  ")
	assert.Error(t, err)

	_, err = s.objectPathFromURL("https://storage.googleapis.com/storefront-media/")
	assert.Error(t, err)
}

func TestPublicURLCustomBase(t *testing.T) {
	s := &MediaStoreGCS{Bucket: "storefront-media", PublicBaseURL: "https://cdn.example.com/"}
	u := s.publicURL("products/images/p-1/x.jpg")
	assert.Equal(t, "https://cdn.example.com/storefront-media/products/images/p-1/x.jpg", u)
}

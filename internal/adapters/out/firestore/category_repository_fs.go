// internal/adapters/out/firestore/category_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"sort"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	categorydom "storefront/internal/domain/category"
)

// CategoryRepositoryFS implements category.Repository using Firestore.
//
// Collection design:
// - collection: categories
// - docId: category name (docId doubles as the uniqueness constraint)
type CategoryRepositoryFS struct {
	Client *firestore.Client
}

func NewCategoryRepositoryFS(client *firestore.Client) *CategoryRepositoryFS {
	return &CategoryRepositoryFS{Client: client}
}

func (r *CategoryRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection("categories")
}

func (r *CategoryRepositoryFS) List(ctx context.Context) ([]categorydom.Category, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("category_repository_fs: firestore client is nil")
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	it := r.col().Documents(ctx)
	defer it.Stop()

	var out []categorydom.Category
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, mapErr(err, categorydom.ErrNotFound)
		}
		out = append(out, categorydom.Category{Name: snap.Ref.ID})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *CategoryRepositoryFS) Create(ctx context.Context, c categorydom.Category) (categorydom.Category, error) {
	var zero categorydom.Category
	if r == nil || r.Client == nil {
		return zero, errors.New("category_repository_fs: firestore client is nil")
	}
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return zero, categorydom.ErrInvalidName
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	_, err := r.col().Doc(name).Create(ctx, map[string]interface{}{
		"name": name,
	})
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return zero, categorydom.ErrConflict
		}
		return zero, mapErr(err, categorydom.ErrNotFound)
	}
	return categorydom.Category{Name: name}, nil
}

func (r *CategoryRepositoryFS) DeleteByName(ctx context.Context, name string) error {
	if r == nil || r.Client == nil {
		return errors.New("category_repository_fs: firestore client is nil")
	}
	n := strings.TrimSpace(name)
	if n == "" {
		return categorydom.ErrInvalidName
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	ref := r.col().Doc(n)
	if _, err := ref.Get(ctx); err != nil {
		return mapErr(err, categorydom.ErrNotFound)
	}
	_, err := ref.Delete(ctx)
	return mapErr(err, categorydom.ErrNotFound)
}

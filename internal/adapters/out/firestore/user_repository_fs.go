// internal/adapters/out/firestore/user_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	userdom "storefront/internal/domain/user"
)

// UserRepositoryFS implements user.Repository using Firestore.
//
// Collection design:
// - collection: users
// - docId: user id (auth uid when available)
// - email is stored lowercased; GetByEmail queries on it, so duplicate
//   checks must run before Create
type UserRepositoryFS struct {
	Client *firestore.Client
}

func NewUserRepositoryFS(client *firestore.Client) *UserRepositoryFS {
	return &UserRepositoryFS{Client: client}
}

func (r *UserRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection("users")
}

func (r *UserRepositoryFS) GetByID(ctx context.Context, id string) (userdom.User, error) {
	var zero userdom.User
	if r == nil || r.Client == nil {
		return zero, errors.New("user_repository_fs: firestore client is nil")
	}
	uid := strings.TrimSpace(id)
	if uid == "" {
		return zero, userdom.ErrInvalidID
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	snap, err := r.col().Doc(uid).Get(ctx)
	if err != nil {
		return zero, mapErr(err, userdom.ErrNotFound)
	}
	return docToUser(snap), nil
}

func (r *UserRepositoryFS) GetByEmail(ctx context.Context, email string) (userdom.User, error) {
	var zero userdom.User
	if r == nil || r.Client == nil {
		return zero, errors.New("user_repository_fs: firestore client is nil")
	}
	em := strings.ToLower(strings.TrimSpace(email))
	if em == "" {
		return zero, userdom.ErrInvalidEmail
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	it := r.col().Where("email", "==", em).Limit(1).Documents(ctx)
	defer it.Stop()

	snap, err := it.Next()
	if err == iterator.Done {
		return zero, userdom.ErrNotFound
	}
	if err != nil {
		return zero, mapErr(err, userdom.ErrNotFound)
	}
	return docToUser(snap), nil
}

func (r *UserRepositoryFS) Create(ctx context.Context, u userdom.User) (userdom.User, error) {
	var zero userdom.User
	if r == nil || r.Client == nil {
		return zero, errors.New("user_repository_fs: firestore client is nil")
	}
	uid := strings.TrimSpace(u.ID)
	if uid == "" {
		return zero, userdom.ErrInvalidID
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	_, err := r.col().Doc(uid).Create(ctx, userToDoc(u))
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return zero, userdom.ErrConflict
		}
		return zero, mapErr(err, userdom.ErrNotFound)
	}
	return u, nil
}

// Mutate applies fn inside a transaction; cart and wishlist membership
// checks stay correct under concurrent requests from the same user.
func (r *UserRepositoryFS) Mutate(ctx context.Context, id string, fn func(*userdom.User) error) (userdom.User, error) {
	var zero userdom.User
	if r == nil || r.Client == nil {
		return zero, errors.New("user_repository_fs: firestore client is nil")
	}
	uid := strings.TrimSpace(id)
	if uid == "" {
		return zero, userdom.ErrInvalidID
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	ref := r.col().Doc(uid)
	var updated userdom.User
	err := r.Client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			return mapErr(err, userdom.ErrNotFound)
		}
		u := docToUser(snap)
		if err := fn(&u); err != nil {
			return err
		}
		now := time.Now().UTC()
		u.UpdatedAt = &now
		updated = u
		return tx.Set(ref, userToDoc(u))
	})
	if err != nil {
		return zero, mapErr(err, userdom.ErrNotFound)
	}
	return updated, nil
}

// ---- doc mapping ----

func docToUser(snap *firestore.DocumentSnapshot) userdom.User {
	data := snap.Data()

	getStr := func(k string) string {
		if v, ok := data[k].(string); ok {
			return v
		}
		return ""
	}
	getBool := func(k string) bool {
		if v, ok := data[k].(bool); ok {
			return v
		}
		return false
	}
	getTimePtr := func(k string) *time.Time {
		if v, ok := data[k].(time.Time); ok {
			t := v.UTC()
			return &t
		}
		return nil
	}

	u := userdom.User{
		ID:           snap.Ref.ID,
		Name:         getStr("name"),
		Email:        getStr("email"),
		Phone:        getStr("phone"),
		PasswordHash: getStr("password_hash"),
		BirthDate:    getTimePtr("birth_date"),
		Address:      getStr("address"),
		IsAdmin:      getBool("is_admin"),
		IsStaff:      getBool("is_staff"),
		ImageURL:     getStr("image_url"),
		Cart:         []userdom.CartItem{},
		Wishlist:     []string{},
		UpdatedAt:    getTimePtr("updatedAt"),
	}
	if t, ok := data["createdAt"].(time.Time); ok {
		u.CreatedAt = t.UTC()
	}

	if arr, ok := data["cart"].([]interface{}); ok {
		for _, raw := range arr {
			m, ok := raw.(map[string]interface{})
			if !ok {
				continue
			}
			item := userdom.CartItem{}
			item.ProductID, _ = m["product_id"].(string)
			switch v := m["quantity"].(type) {
			case int64:
				item.Quantity = int(v)
			case float64:
				item.Quantity = int(v)
			}
			u.Cart = append(u.Cart, item)
		}
	}

	if arr, ok := data["wishlist"].([]interface{}); ok {
		for _, raw := range arr {
			if s, ok := raw.(string); ok {
				u.Wishlist = append(u.Wishlist, s)
			}
		}
	}

	return u
}

func userToDoc(u userdom.User) map[string]interface{} {
	cart := make([]map[string]interface{}, 0, len(u.Cart))
	for _, item := range u.Cart {
		cart = append(cart, map[string]interface{}{
			"product_id": item.ProductID,
			"quantity":   item.Quantity,
		})
	}

	wishlist := u.Wishlist
	if wishlist == nil {
		wishlist = []string{}
	}

	doc := map[string]interface{}{
		"name":          u.Name,
		"email":         strings.ToLower(strings.TrimSpace(u.Email)),
		"phone":         u.Phone,
		"password_hash": u.PasswordHash,
		"address":       u.Address,
		"is_admin":      u.IsAdmin,
		"is_staff":      u.IsStaff,
		"cart":          cart,
		"wishlist":      wishlist,
		"image_url":     u.ImageURL,
		"createdAt":     u.CreatedAt,
	}
	if u.BirthDate != nil {
		doc["birth_date"] = *u.BirthDate
	}
	if u.UpdatedAt != nil {
		doc["updatedAt"] = *u.UpdatedAt
	}
	return doc
}

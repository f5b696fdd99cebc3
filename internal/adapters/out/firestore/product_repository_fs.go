// internal/adapters/out/firestore/product_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	common "storefront/internal/domain/common"
	productdom "storefront/internal/domain/product"
)

// ProductRepositoryFS implements product.Repository using Firestore.
//
// Collection design:
// - collection: products
// - docId: product id (source of truth)
// - rated_users / reviews stored as arrays of maps
type ProductRepositoryFS struct {
	Client *firestore.Client
}

func NewProductRepositoryFS(client *firestore.Client) *ProductRepositoryFS {
	return &ProductRepositoryFS{Client: client}
}

func (r *ProductRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection("products")
}

func (r *ProductRepositoryFS) GetByID(ctx context.Context, id string) (productdom.Product, error) {
	var zero productdom.Product
	if r == nil || r.Client == nil {
		return zero, errors.New("product_repository_fs: firestore client is nil")
	}
	pid := strings.TrimSpace(id)
	if pid == "" {
		return zero, productdom.ErrInvalidID
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	snap, err := r.col().Doc(pid).Get(ctx)
	if err != nil {
		return zero, mapErr(err, productdom.ErrNotFound)
	}
	return docToProduct(snap), nil
}

// List returns one page of products matching the filter plus the unpaged
// total. Substring search cannot be expressed as a Firestore query, so when
// SearchQuery is set the filter and the sort are applied after the fetch.
func (r *ProductRepositoryFS) List(ctx context.Context, f productdom.Filter, sortSpec common.Sort, page common.Page) (productdom.PageResult, error) {
	var zero productdom.PageResult
	if r == nil || r.Client == nil {
		return zero, errors.New("product_repository_fs: firestore client is nil")
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	q := r.applyFilter(f)
	inMemory := strings.TrimSpace(f.SearchQuery) != ""
	if !inMemory {
		q = applySort(q, sortSpec)
	}

	items, err := collectProducts(ctx, q)
	if err != nil {
		return zero, err
	}
	if inMemory {
		items = filterBySearch(items, f.SearchQuery)
		sortProducts(items, sortSpec)
	}

	return productdom.PageResult{
		Items:      slicePage(items, page),
		TotalCount: len(items),
	}, nil
}

// Count returns the total number of products matching the filter,
// ignoring the page window.
func (r *ProductRepositoryFS) Count(ctx context.Context, f productdom.Filter) (int, error) {
	if r == nil || r.Client == nil {
		return 0, errors.New("product_repository_fs: firestore client is nil")
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	items, err := collectProducts(ctx, r.applyFilter(f))
	if err != nil {
		return 0, err
	}
	if strings.TrimSpace(f.SearchQuery) != "" {
		items = filterBySearch(items, f.SearchQuery)
	}
	return len(items), nil
}

func (r *ProductRepositoryFS) Create(ctx context.Context, p productdom.Product) (productdom.Product, error) {
	var zero productdom.Product
	if r == nil || r.Client == nil {
		return zero, errors.New("product_repository_fs: firestore client is nil")
	}
	pid := strings.TrimSpace(p.ID)
	if pid == "" {
		return zero, productdom.ErrInvalidID
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	_, err := r.col().Doc(pid).Create(ctx, productToDoc(p))
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return zero, productdom.ErrConflict
		}
		return zero, mapErr(err, productdom.ErrNotFound)
	}
	return p, nil
}

// Mutate loads the product, applies fn, and writes the result back inside
// a single transaction, so concurrent mutations never lose updates.
func (r *ProductRepositoryFS) Mutate(ctx context.Context, id string, fn func(*productdom.Product) error) (productdom.Product, error) {
	var zero productdom.Product
	if r == nil || r.Client == nil {
		return zero, errors.New("product_repository_fs: firestore client is nil")
	}
	pid := strings.TrimSpace(id)
	if pid == "" {
		return zero, productdom.ErrInvalidID
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	ref := r.col().Doc(pid)
	var updated productdom.Product
	err := r.Client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			return mapErr(err, productdom.ErrNotFound)
		}
		p := docToProduct(snap)
		if err := fn(&p); err != nil {
			return err
		}
		now := time.Now().UTC()
		p.UpdatedAt = &now
		updated = p
		return tx.Set(ref, productToDoc(p))
	})
	if err != nil {
		return zero, mapErr(err, productdom.ErrNotFound)
	}
	return updated, nil
}

func (r *ProductRepositoryFS) Delete(ctx context.Context, id string) error {
	if r == nil || r.Client == nil {
		return errors.New("product_repository_fs: firestore client is nil")
	}
	pid := strings.TrimSpace(id)
	if pid == "" {
		return productdom.ErrInvalidID
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	ref := r.col().Doc(pid)
	if _, err := ref.Get(ctx); err != nil {
		return mapErr(err, productdom.ErrNotFound)
	}
	_, err := ref.Delete(ctx)
	return mapErr(err, productdom.ErrNotFound)
}

// ---- query helpers ----

func (r *ProductRepositoryFS) applyFilter(f productdom.Filter) firestore.Query {
	q := r.col().Query
	if c := strings.TrimSpace(f.Category); c != "" {
		q = q.Where("category", "==", c)
	}
	if f.FlashDealOnly {
		q = q.Where("deducted_price.flash_deal", "==", true)
	}
	return q
}

func applySort(q firestore.Query, s common.Sort) firestore.Query {
	field := s.Column
	if field == "" {
		field = productdom.SortByCreatedAt
	}
	dir := firestore.Desc
	if s.Order == common.SortAsc {
		dir = firestore.Asc
	}
	return q.OrderBy(field, dir)
}

func collectProducts(ctx context.Context, q firestore.Query) ([]productdom.Product, error) {
	it := q.Documents(ctx)
	defer it.Stop()

	var out []productdom.Product
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, mapErr(err, productdom.ErrNotFound)
		}
		out = append(out, docToProduct(snap))
	}
	return out, nil
}

func filterBySearch(items []productdom.Product, query string) []productdom.Product {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return items
	}
	out := items[:0]
	for _, p := range items {
		if strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.Description), needle) ||
			strings.Contains(strings.ToLower(p.Brand), needle) {
			out = append(out, p)
		}
	}
	return out
}

func sortProducts(items []productdom.Product, s common.Sort) {
	field := s.Column
	if field == "" {
		field = productdom.SortByCreatedAt
	}
	asc := s.Order == common.SortAsc
	sort.SliceStable(items, func(i, j int) bool {
		var less bool
		switch field {
		case productdom.SortByRating:
			less = items[i].Rating < items[j].Rating
		default:
			less = items[i].CreatedAt.Before(items[j].CreatedAt)
		}
		if asc {
			return less
		}
		return !less && !productsEqualOn(items[i], items[j], field)
	})
}

func productsEqualOn(a, b productdom.Product, field string) bool {
	switch field {
	case productdom.SortByRating:
		return a.Rating == b.Rating
	default:
		return a.CreatedAt.Equal(b.CreatedAt)
	}
}

func slicePage(items []productdom.Product, page common.Page) []productdom.Product {
	if page.Offset >= len(items) {
		return nil
	}
	items = items[page.Offset:]
	if page.Limit > 0 && page.Limit < len(items) {
		items = items[:page.Limit]
	}
	return items
}

// ---- doc mapping ----

func docToProduct(snap *firestore.DocumentSnapshot) productdom.Product {
	data := snap.Data()

	getStr := func(k string) string {
		if v, ok := data[k].(string); ok {
			return v
		}
		return ""
	}
	getFloat := func(m map[string]interface{}, k string) float64 {
		switch v := m[k].(type) {
		case float64:
			return v
		case int64:
			return float64(v)
		}
		return 0
	}
	getInt := func(m map[string]interface{}, k string) int {
		switch v := m[k].(type) {
		case int64:
			return int(v)
		case float64:
			return int(v)
		}
		return 0
	}
	getTime := func(k string) time.Time {
		if v, ok := data[k].(time.Time); ok {
			return v.UTC()
		}
		return time.Time{}
	}
	getTimePtr := func(k string) *time.Time {
		if v, ok := data[k].(time.Time); ok {
			t := v.UTC()
			return &t
		}
		return nil
	}

	p := productdom.Product{
		ID:             snap.Ref.ID,
		Name:           getStr("name"),
		Description:    getStr("description"),
		Brand:          getStr("brand"),
		Price:          getFloat(data, "price"),
		Stock:          getInt(data, "stock"),
		Category:       getStr("category"),
		Sold:           getInt(data, "sold"),
		TotalRateValue: getInt(data, "total_rate_value"),
		Rating:         getFloat(data, "rating"),
		CreatedAt:      getTime("createdAt"),
		UpdatedAt:      getTimePtr("updatedAt"),
	}

	if m, ok := data["deducted_price"].(map[string]interface{}); ok {
		p.Deducted = productdom.DeductedPrice{
			Price: getFloat(m, "price"),
		}
		if fd, ok := m["flash_deal"].(bool); ok {
			p.Deducted.FlashDeal = fd
		}
	}

	if arr, ok := data["rated_users"].([]interface{}); ok {
		for _, raw := range arr {
			m, ok := raw.(map[string]interface{})
			if !ok {
				continue
			}
			uid, _ := m["user_id"].(string)
			p.RatedUsers = append(p.RatedUsers, productdom.RatedUser{
				UserID:    uid,
				RateValue: getInt(m, "rate_value"),
			})
		}
	}

	if arr, ok := data["reviews"].([]interface{}); ok {
		for _, raw := range arr {
			m, ok := raw.(map[string]interface{})
			if !ok {
				continue
			}
			rv := productdom.Review{}
			rv.ID, _ = m["id"].(string)
			rv.UserID, _ = m["user_id"].(string)
			rv.Text, _ = m["text"].(string)
			if t, ok := m["createdAt"].(time.Time); ok {
				rv.CreatedAt = t.UTC()
			}
			p.Reviews = append(p.Reviews, rv)
		}
	}

	if arr, ok := data["images_urls"].([]interface{}); ok {
		for _, raw := range arr {
			if s, ok := raw.(string); ok {
				p.ImagesURLs = append(p.ImagesURLs, s)
			}
		}
	}

	return p
}

func productToDoc(p productdom.Product) map[string]interface{} {
	ratedUsers := make([]map[string]interface{}, 0, len(p.RatedUsers))
	for _, ru := range p.RatedUsers {
		ratedUsers = append(ratedUsers, map[string]interface{}{
			"user_id":    ru.UserID,
			"rate_value": ru.RateValue,
		})
	}

	reviews := make([]map[string]interface{}, 0, len(p.Reviews))
	for _, rv := range p.Reviews {
		reviews = append(reviews, map[string]interface{}{
			"id":        rv.ID,
			"user_id":   rv.UserID,
			"text":      rv.Text,
			"createdAt": rv.CreatedAt,
		})
	}

	images := p.ImagesURLs
	if images == nil {
		images = []string{}
	}

	doc := map[string]interface{}{
		"name":        p.Name,
		"description": p.Description,
		"brand":       p.Brand,
		"price":       p.Price,
		"deducted_price": map[string]interface{}{
			"price":      p.Deducted.Price,
			"flash_deal": p.Deducted.FlashDeal,
		},
		"stock":            p.Stock,
		"category":         p.Category,
		"sold":             p.Sold,
		"rated_users":      ratedUsers,
		"total_rate_value": p.TotalRateValue,
		"rating":           p.Rating,
		"reviews":          reviews,
		"images_urls":      images,
	}
	if !p.CreatedAt.IsZero() {
		doc["createdAt"] = p.CreatedAt
	} else {
		doc["createdAt"] = time.Now().UTC()
	}
	if p.UpdatedAt != nil {
		doc["updatedAt"] = *p.UpdatedAt
	}
	return doc
}

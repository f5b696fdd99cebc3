// internal/application/usecase/fakes_test.go
package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	categorydom "storefront/internal/domain/category"
	mediadom "storefront/internal/domain/media"
	orderdom "storefront/internal/domain/order"
	otpdom "storefront/internal/domain/otp"
	productdom "storefront/internal/domain/product"
	userdom "storefront/internal/domain/user"
)

// ========================================
// Product repository fake
// ========================================

type fakeProductRepo struct {
	mu   sync.Mutex
	byID map[string]productdom.Product
}

func newFakeProductRepo(products ...productdom.Product) *fakeProductRepo {
	r := &fakeProductRepo{byID: map[string]productdom.Product{}}
	for _, p := range products {
		r.byID[p.ID] = p
	}
	return r
}

func (r *fakeProductRepo) GetByID(_ context.Context, id string) (productdom.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[id]
	if !ok {
		return productdom.Product{}, productdom.ErrNotFound
	}
	return p, nil
}

func (r *fakeProductRepo) List(_ context.Context, filter productdom.Filter, s productdom.Sort, page productdom.Page) (productdom.PageResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var items []productdom.Product
	for _, p := range r.byID {
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if filter.FlashDealOnly && !p.Deducted.FlashDeal {
			continue
		}
		if q := strings.ToLower(filter.SearchQuery); q != "" {
			hay := strings.ToLower(p.Name + " " + p.Description + " " + p.Brand)
			if !strings.Contains(hay, q) {
				continue
			}
		}
		items = append(items, p)
	}

	sort.Slice(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if s.Order == productdom.SortDesc {
			a, b = b, a
		}
		if s.Column == productdom.SortByRating {
			return a.Rating < b.Rating
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})

	total := len(items)
	if page.Offset >= total {
		return productdom.PageResult{Items: []productdom.Product{}, TotalCount: total}, nil
	}
	items = items[page.Offset:]
	if page.Limit > 0 && page.Limit < len(items) {
		items = items[:page.Limit]
	}
	return productdom.PageResult{Items: items, TotalCount: total}, nil
}

func (r *fakeProductRepo) Count(ctx context.Context, filter productdom.Filter) (int, error) {
	res, err := r.List(ctx, filter, productdom.Sort{}, productdom.Page{})
	return res.TotalCount, err
}

func (r *fakeProductRepo) Create(_ context.Context, p productdom.Product) (productdom.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[p.ID]; ok {
		return productdom.Product{}, productdom.ErrConflict
	}
	r.byID[p.ID] = p
	return p, nil
}

func (r *fakeProductRepo) Mutate(_ context.Context, id string, fn func(*productdom.Product) error) (productdom.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[id]
	if !ok {
		return productdom.Product{}, productdom.ErrNotFound
	}
	if err := fn(&p); err != nil {
		return productdom.Product{}, err
	}
	r.byID[id] = p
	return p, nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return productdom.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

// ========================================
// Order repository fake
// ========================================

type fakeOrderRepo struct {
	mu   sync.Mutex
	byID map[string]orderdom.Order
}

func newFakeOrderRepo(orders ...orderdom.Order) *fakeOrderRepo {
	r := &fakeOrderRepo{byID: map[string]orderdom.Order{}}
	for _, o := range orders {
		r.byID[o.ID] = o
	}
	return r
}

func (r *fakeOrderRepo) GetByID(_ context.Context, id string) (orderdom.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.byID[id]
	if !ok {
		return orderdom.Order{}, orderdom.ErrNotFound
	}
	return o, nil
}

func (r *fakeOrderRepo) ListAll(_ context.Context) ([]orderdom.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]orderdom.Order, 0, len(r.byID))
	for _, o := range r.byID {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeOrderRepo) ListByUser(_ context.Context, userID string) ([]orderdom.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []orderdom.Order
	for _, o := range r.byID {
		if o.OrderedBy == userID {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeOrderRepo) Create(_ context.Context, o orderdom.Order) (orderdom.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[o.ID]; ok {
		return orderdom.Order{}, fmt.Errorf("order %s already exists", o.ID)
	}
	r.byID[o.ID] = o
	return o, nil
}

func (r *fakeOrderRepo) Mutate(_ context.Context, id string, fn func(*orderdom.Order) error) (orderdom.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.byID[id]
	if !ok {
		return orderdom.Order{}, orderdom.ErrNotFound
	}
	if err := fn(&o); err != nil {
		return orderdom.Order{}, err
	}
	r.byID[id] = o
	return o, nil
}

// ========================================
// User repository fake
// ========================================

type fakeUserRepo struct {
	mu   sync.Mutex
	byID map[string]userdom.User
}

func newFakeUserRepo(users ...userdom.User) *fakeUserRepo {
	r := &fakeUserRepo{byID: map[string]userdom.User{}}
	for _, u := range users {
		r.byID[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (userdom.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return userdom.User{}, userdom.ErrNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (userdom.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if u.Email == strings.ToLower(email) {
			return u, nil
		}
	}
	return userdom.User{}, userdom.ErrNotFound
}

func (r *fakeUserRepo) Create(_ context.Context, u userdom.User) (userdom.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[u.ID]; ok {
		return userdom.User{}, userdom.ErrConflict
	}
	r.byID[u.ID] = u
	return u, nil
}

func (r *fakeUserRepo) Mutate(_ context.Context, id string, fn func(*userdom.User) error) (userdom.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return userdom.User{}, userdom.ErrNotFound
	}
	if err := fn(&u); err != nil {
		return userdom.User{}, err
	}
	r.byID[id] = u
	return u, nil
}

// ========================================
// Category repository fake
// ========================================

type fakeCategoryRepo struct {
	mu     sync.Mutex
	byName map[string]categorydom.Category
}

func newFakeCategoryRepo(names ...string) *fakeCategoryRepo {
	r := &fakeCategoryRepo{byName: map[string]categorydom.Category{}}
	for _, n := range names {
		r.byName[n] = categorydom.Category{Name: n}
	}
	return r
}

func (r *fakeCategoryRepo) List(_ context.Context) ([]categorydom.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]categorydom.Category, 0, len(r.byName))
	for _, c := range r.byName {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeCategoryRepo) Create(_ context.Context, c categorydom.Category) (categorydom.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byName[c.Name]; ok {
		return categorydom.Category{}, categorydom.ErrConflict
	}
	r.byName[c.Name] = c
	return c, nil
}

func (r *fakeCategoryRepo) DeleteByName(_ context.Context, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byName[name]; !ok {
		return categorydom.ErrNotFound
	}
	delete(r.byName, name)
	return nil
}

// ========================================
// OTP repository fake
// ========================================

type fakeOTPRepo struct {
	mu       sync.Mutex
	byUserID map[string]otpdom.OTP
}

func newFakeOTPRepo() *fakeOTPRepo {
	return &fakeOTPRepo{byUserID: map[string]otpdom.OTP{}}
}

func (r *fakeOTPRepo) GetByUserID(_ context.Context, userID string) (otpdom.OTP, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.byUserID[userID]
	if !ok {
		return otpdom.OTP{}, otpdom.ErrNotFound
	}
	return o, nil
}

func (r *fakeOTPRepo) Upsert(_ context.Context, o otpdom.OTP) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byUserID[o.UserID] = o
	return nil
}

func (r *fakeOTPRepo) DeleteByUserID(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byUserID, userID)
	return nil
}

func (r *fakeOTPRepo) DeleteExpired(_ context.Context, cutoff time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for id, o := range r.byUserID {
		if o.CreatedAt.Before(cutoff) {
			delete(r.byUserID, id)
			n++
		}
	}
	return n, nil
}

// ========================================
// Media store fake
// ========================================

type fakeMediaStore struct {
	mu             sync.Mutex
	failPaths      map[string]bool
	uploaded       map[string][]byte
	deleted        []string
	purgedPrefixes []string
}

func newFakeMediaStore() *fakeMediaStore {
	return &fakeMediaStore{failPaths: map[string]bool{}, uploaded: map[string][]byte{}}
}

func (s *fakeMediaStore) Upload(_ context.Context, data []byte, objectPath string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failPaths[objectPath] {
		return "", mediadom.ErrUpload
	}
	s.uploaded[objectPath] = data
	return "https://storage.test/" + objectPath, nil
}

func (s *fakeMediaStore) Delete(_ context.Context, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, url)
	path := strings.TrimPrefix(url, "https://storage.test/")
	if _, ok := s.uploaded[path]; !ok {
		return mediadom.ErrNotFound
	}
	delete(s.uploaded, path)
	return nil
}

func (s *fakeMediaStore) DeleteAllUnderPrefix(_ context.Context, prefix string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.purgedPrefixes = append(s.purgedPrefixes, prefix)
	for path := range s.uploaded {
		if strings.HasPrefix(path, prefix) {
			delete(s.uploaded, path)
		}
	}
	return nil
}

// ========================================
// Misc fakes
// ========================================

type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }
func (fakeHasher) Compare(hash, password string) bool   { return hash == "hashed:"+password }

type fakeGateway struct {
	confirm bool
	err     error
	calls   int
}

func (g *fakeGateway) Confirm(context.Context, orderdom.PaymentMethod, float64) (bool, error) {
	g.calls++
	return g.confirm, g.err
}

type fakeMailer struct {
	mu    sync.Mutex
	sent  []string // "to|subject"
	bodys []string
}

func (m *fakeMailer) Send(_ context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, to+"|"+subject)
	m.bodys = append(m.bodys, body)
	return nil
}

type fakeCache struct {
	mu          sync.Mutex
	pages       map[string]productdom.PageResult
	gets        int
	hits        int
	sets        int
	invalidated int
}

func newFakeCache() *fakeCache {
	return &fakeCache{pages: map[string]productdom.PageResult{}}
}

func (c *fakeCache) GetPage(_ context.Context, key string) (*productdom.PageResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	if page, ok := c.pages[key]; ok {
		c.hits++
		return &page, nil
	}
	return nil, nil
}

func (c *fakeCache) SetPage(_ context.Context, key string, page productdom.PageResult) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	c.pages[key] = page
	return nil
}

func (c *fakeCache) Invalidate(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated++
	c.pages = map[string]productdom.PageResult{}
	return nil
}

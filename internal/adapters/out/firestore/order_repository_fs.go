// internal/adapters/out/firestore/order_repository_fs.go
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

	orderdom "storefront/internal/domain/order"
)

// OrderRepositoryFS implements order.Repository using Firestore.
//
// Collection design:
// - collection: orders
// - docId: order id
// - lines stored as an array of {product_id, quantity} maps;
//   available_stock is a placement-time annotation and is never written
type OrderRepositoryFS struct {
	Client *firestore.Client
}

func NewOrderRepositoryFS(client *firestore.Client) *OrderRepositoryFS {
	return &OrderRepositoryFS{Client: client}
}

func (r *OrderRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection("orders")
}

func (r *OrderRepositoryFS) GetByID(ctx context.Context, id string) (orderdom.Order, error) {
	var zero orderdom.Order
	if r == nil || r.Client == nil {
		return zero, errors.New("order_repository_fs: firestore client is nil")
	}
	oid := strings.TrimSpace(id)
	if oid == "" {
		return zero, orderdom.ErrInvalidID
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	snap, err := r.col().Doc(oid).Get(ctx)
	if err != nil {
		return zero, mapErr(err, orderdom.ErrNotFound)
	}
	return docToOrder(snap), nil
}

func (r *OrderRepositoryFS) ListAll(ctx context.Context) ([]orderdom.Order, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("order_repository_fs: firestore client is nil")
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	orders, err := r.collect(ctx, r.col().Query)
	if err != nil {
		return nil, err
	}
	return sortNewestFirst(orders), nil
}

func (r *OrderRepositoryFS) ListByUser(ctx context.Context, userID string) ([]orderdom.Order, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("order_repository_fs: firestore client is nil")
	}
	uid := strings.TrimSpace(userID)
	if uid == "" {
		return nil, errors.New("order_repository_fs: userID is empty")
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	// Avoids a composite index requirement; ordering is restored below.
	orders, err := r.collect(ctx, r.col().Where("ordered_by", "==", uid))
	if err != nil {
		return nil, err
	}
	return sortNewestFirst(orders), nil
}

// sortNewestFirst restores createdAt-descending order for list reads
// that collect without a server-side OrderBy.
func sortNewestFirst(orders []orderdom.Order) []orderdom.Order {
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders
}

func (r *OrderRepositoryFS) Create(ctx context.Context, o orderdom.Order) (orderdom.Order, error) {
	var zero orderdom.Order
	if r == nil || r.Client == nil {
		return zero, errors.New("order_repository_fs: firestore client is nil")
	}
	oid := strings.TrimSpace(o.ID)
	if oid == "" {
		return zero, orderdom.ErrInvalidID
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	_, err := r.col().Doc(oid).Create(ctx, orderToDoc(o))
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return zero, errors.New("order_repository_fs: duplicate order id")
		}
		return zero, mapErr(err, orderdom.ErrNotFound)
	}
	return o, nil
}

// Mutate runs fn against the current document inside a transaction so
// the pending check and the terminal write are one indivisible step.
func (r *OrderRepositoryFS) Mutate(ctx context.Context, id string, fn func(*orderdom.Order) error) (orderdom.Order, error) {
	var zero orderdom.Order
	if r == nil || r.Client == nil {
		return zero, errors.New("order_repository_fs: firestore client is nil")
	}
	oid := strings.TrimSpace(id)
	if oid == "" {
		return zero, orderdom.ErrInvalidID
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	ref := r.col().Doc(oid)
	var updated orderdom.Order
	err := r.Client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			return mapErr(err, orderdom.ErrNotFound)
		}
		o := docToOrder(snap)
		if err := fn(&o); err != nil {
			return err
		}
		updated = o
		return tx.Set(ref, orderToDoc(o))
	})
	if err != nil {
		return zero, mapErr(err, orderdom.ErrNotFound)
	}
	return updated, nil
}

func (r *OrderRepositoryFS) collect(ctx context.Context, q firestore.Query) ([]orderdom.Order, error) {
	it := q.Documents(ctx)
	defer it.Stop()

	var out []orderdom.Order
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, mapErr(err, orderdom.ErrNotFound)
		}
		out = append(out, docToOrder(snap))
	}
	return out, nil
}

// ---- doc mapping ----

func docToOrder(snap *firestore.DocumentSnapshot) orderdom.Order {
	data := snap.Data()

	getStr := func(m map[string]interface{}, k string) string {
		if v, ok := m[k].(string); ok {
			return v
		}
		return ""
	}
	getFloat := func(k string) float64 {
		switch v := data[k].(type) {
		case float64:
			return v
		case int64:
			return float64(v)
		}
		return 0
	}

	o := orderdom.Order{
		ID:            snap.Ref.ID,
		OrderedBy:     getStr(data, "ordered_by"),
		ProductsPrice: getFloat("products_price"),
		ShippingCost:  getFloat("shipping_cost"),
		Status:        orderdom.Status(getStr(data, "status")),
		PaymentMethod: orderdom.PaymentMethod(getStr(data, "payment_method")),
		PaymentStatus: orderdom.PaymentStatus(getStr(data, "payment_status")),
	}

	if t, ok := data["createdAt"].(time.Time); ok {
		o.CreatedAt = t.UTC()
	}
	if t, ok := data["completion_date"].(time.Time); ok {
		ct := t.UTC()
		o.CompletionDate = &ct
	}

	if arr, ok := data["lines"].([]interface{}); ok {
		for _, raw := range arr {
			m, ok := raw.(map[string]interface{})
			if !ok {
				continue
			}
			line := orderdom.Line{ProductID: getStr(m, "product_id")}
			switch v := m["quantity"].(type) {
			case int64:
				line.Quantity = int(v)
			case float64:
				line.Quantity = int(v)
			}
			o.Lines = append(o.Lines, line)
		}
	}

	if m, ok := data["buyer"].(map[string]interface{}); ok {
		o.Buyer = orderdom.BuyerSnapshot{
			Name:            getStr(m, "name"),
			Phone:           getStr(m, "phone"),
			DeliveryAddress: getStr(m, "delivery_address"),
			District:        getStr(m, "district"),
			Country:         getStr(m, "country"),
		}
	}

	return o
}

func orderToDoc(o orderdom.Order) map[string]interface{} {
	lines := make([]map[string]interface{}, 0, len(o.Lines))
	for _, l := range o.Lines {
		lines = append(lines, map[string]interface{}{
			"product_id": l.ProductID,
			"quantity":   l.Quantity,
		})
	}

	doc := map[string]interface{}{
		"ordered_by": o.OrderedBy,
		"lines":      lines,
		"buyer": map[string]interface{}{
			"name":             o.Buyer.Name,
			"phone":            o.Buyer.Phone,
			"delivery_address": o.Buyer.DeliveryAddress,
			"district":         o.Buyer.District,
			"country":          o.Buyer.Country,
		},
		"products_price": o.ProductsPrice,
		"shipping_cost":  o.ShippingCost,
		"status":         string(o.Status),
		"payment_method": string(o.PaymentMethod),
		"payment_status": string(o.PaymentStatus),
		"createdAt":      o.CreatedAt,
	}
	if o.CompletionDate != nil {
		doc["completion_date"] = *o.CompletionDate
	}
	return doc
}

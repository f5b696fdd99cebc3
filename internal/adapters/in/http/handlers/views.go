// internal/adapters/in/http/handlers/views.go
package handlers

import (
	"time"

	usecase "storefront/internal/application/usecase"
	orderdom "storefront/internal/domain/order"
	productdom "storefront/internal/domain/product"
	userdom "storefront/internal/domain/user"
)

// Wire views keep the public snake_case field names stable regardless
// of how the domain structs evolve.

type deductedPriceView struct {
	Price     float64 `json:"price"`
	FlashDeal bool    `json:"flash_deal"`
}

type productView struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	Description   string            `json:"description"`
	Brand         string            `json:"brand"`
	Price         float64           `json:"price"`
	DeductedPrice deductedPriceView `json:"deducted_price"`
	Stock         int               `json:"stock"`
	Category      string            `json:"category"`
	Sold          int               `json:"sold"`
	Rating        float64           `json:"rating"`
	ImagesURLs    []string          `json:"images_urls"`
	CreatedAt     time.Time         `json:"createdAt"`
}

func toProductView(p productdom.Product) productView {
	images := p.ImagesURLs
	if images == nil {
		images = []string{}
	}
	return productView{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Brand:       p.Brand,
		Price:       p.Price,
		DeductedPrice: deductedPriceView{
			Price:     p.Deducted.Price,
			FlashDeal: p.Deducted.FlashDeal,
		},
		Stock:      p.Stock,
		Category:   p.Category,
		Sold:       p.Sold,
		Rating:     p.Rating,
		ImagesURLs: images,
		CreatedAt:  p.CreatedAt,
	}
}

func toProductViews(items []productdom.Product) []productView {
	out := make([]productView, 0, len(items))
	for _, p := range items {
		out = append(out, toProductView(p))
	}
	return out
}

type reviewAuthorView struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ImageURL  string `json:"image_url"`
	RateValue int    `json:"rate_value"`
}

type detailedReviewView struct {
	ID   string           `json:"id"`
	User reviewAuthorView `json:"user"`
	Text string           `json:"text"`
}

func toDetailedReviewViews(reviews []usecase.DetailedReview) []detailedReviewView {
	out := make([]detailedReviewView, 0, len(reviews))
	for _, rv := range reviews {
		out = append(out, detailedReviewView{
			ID: rv.ID,
			User: reviewAuthorView{
				ID:        rv.Author.ID,
				Name:      rv.Author.Name,
				ImageURL:  rv.Author.ImageURL,
				RateValue: rv.Author.RateValue,
			},
			Text: rv.Text,
		})
	}
	return out
}

type reviewView struct {
	ID        string    `json:"id"`
	User      string    `json:"user"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

func toReviewViews(reviews []productdom.Review) []reviewView {
	out := make([]reviewView, 0, len(reviews))
	for _, rv := range reviews {
		out = append(out, reviewView{
			ID:        rv.ID,
			User:      rv.UserID,
			Text:      rv.Text,
			CreatedAt: rv.CreatedAt,
		})
	}
	return out
}

type orderLineView struct {
	Product        string `json:"product"`
	Quantity       int    `json:"quantity"`
	AvailableStock *int   `json:"available_stock,omitempty"`
}

type orderView struct {
	ID              string          `json:"id"`
	OrderedBy       string          `json:"ordered_by"`
	ProductInfo     []orderLineView `json:"product_info"`
	Name            string          `json:"name"`
	Phone           string          `json:"phone"`
	DeliveryAddress string          `json:"delivery_address"`
	District        string          `json:"district"`
	Country         string          `json:"country"`
	ProductsPrice   float64         `json:"products_price"`
	ShippingCost    float64         `json:"shipping_cost"`
	Status          string          `json:"status"`
	PaymentMethod   string          `json:"payment_method"`
	PaymentStatus   string          `json:"payment_status"`
	CompletionDate  *time.Time      `json:"completion_date,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}

func toOrderLineViews(lines []orderdom.Line) []orderLineView {
	out := make([]orderLineView, 0, len(lines))
	for _, l := range lines {
		out = append(out, orderLineView{
			Product:        l.ProductID,
			Quantity:       l.Quantity,
			AvailableStock: l.AvailableStock,
		})
	}
	return out
}

func toOrderView(o orderdom.Order) orderView {
	return orderView{
		ID:              o.ID,
		OrderedBy:       o.OrderedBy,
		ProductInfo:     toOrderLineViews(o.Lines),
		Name:            o.Buyer.Name,
		Phone:           o.Buyer.Phone,
		DeliveryAddress: o.Buyer.DeliveryAddress,
		District:        o.Buyer.District,
		Country:         o.Buyer.Country,
		ProductsPrice:   o.ProductsPrice,
		ShippingCost:    o.ShippingCost,
		Status:          string(o.Status),
		PaymentMethod:   string(o.PaymentMethod),
		PaymentStatus:   string(o.PaymentStatus),
		CompletionDate:  o.CompletionDate,
		CreatedAt:       o.CreatedAt,
	}
}

func toOrderViews(orders []orderdom.Order) []orderView {
	out := make([]orderView, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderView(o))
	}
	return out
}

type cartItemView struct {
	Product  string `json:"product"`
	Quantity int    `json:"quantity"`
}

type userView struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Email     string         `json:"email"`
	Phone     string         `json:"phone"`
	BirthDate *time.Time     `json:"birth_date,omitempty"`
	Address   string         `json:"address"`
	IsAdmin   bool           `json:"is_admin"`
	IsStaff   bool           `json:"is_staff"`
	Cart      []cartItemView `json:"cart"`
	Wishlist  []string       `json:"wishlist"`
	ImageURL  string         `json:"image_url"`
	CreatedAt time.Time      `json:"createdAt"`
}

func toUserView(u userdom.User) userView {
	cart := make([]cartItemView, 0, len(u.Cart))
	for _, item := range u.Cart {
		cart = append(cart, cartItemView{Product: item.ProductID, Quantity: item.Quantity})
	}
	wishlist := u.Wishlist
	if wishlist == nil {
		wishlist = []string{}
	}
	return userView{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		BirthDate: u.BirthDate,
		Address:   u.Address,
		IsAdmin:   u.IsAdmin,
		IsStaff:   u.IsStaff,
		Cart:      cart,
		Wishlist:  wishlist,
		ImageURL:  u.ImageURL,
		CreatedAt: u.CreatedAt,
	}
}

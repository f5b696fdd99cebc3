// internal/domain/user/entity.go
package user

import (
	"strings"
	"time"

	"storefront/internal/domain/common"
)

// ========================================
// Value objects
// ========================================

// CartItem references a product by value. The reference is weak:
// readers must tolerate product ids that no longer resolve.
type CartItem struct {
	ProductID string
	Quantity  int
}

// ========================================
// Entity
// ========================================

type User struct {
	ID           string
	Name         string
	Email        string
	Phone        string
	PasswordHash string
	BirthDate    *time.Time
	Address      string

	IsAdmin bool
	IsStaff bool

	Cart     []CartItem
	Wishlist []string
	ImageURL string

	CreatedAt time.Time
	UpdatedAt *time.Time
}

// ProfilePatch represents partial profile updates. Nil means "no
// change". Credentials, roles, cart and wishlist move through their
// own operations.
type ProfilePatch struct {
	Name      *string
	Email     *string
	Phone     *string
	BirthDate *time.Time
	Address   *string
}

// ========================================
// Errors
// ========================================

var (
	ErrInvalidID        = common.Kind(common.ErrInvalidInput, "user: invalid id")
	ErrInvalidEmail     = common.Kind(common.ErrInvalidInput, "user: invalid email")
	ErrInvalidPassword  = common.Kind(common.ErrInvalidInput, "user: invalid password hash")
	ErrInvalidName      = common.Kind(common.ErrInvalidInput, "user: invalid name")
	ErrInvalidBirthDate = common.Kind(common.ErrInvalidInput, "user: invalid birth date")
	ErrInvalidQuantity  = common.Kind(common.ErrInvalidInput, "user: invalid cart quantity")

	ErrNotFound = common.Kind(common.ErrNotFound, "user: not found")
	ErrConflict = common.Kind(common.ErrConflict, "user: conflict")
)

// ========================================
// Constructors
// ========================================

func New(id, name, email, phone, passwordHash string, birthDate *time.Time, address string, createdAt time.Time) (User, error) {
	u := User{
		ID:           strings.TrimSpace(id),
		Name:         strings.TrimSpace(name),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		Phone:        strings.TrimSpace(phone),
		PasswordHash: passwordHash,
		BirthDate:    birthDate,
		Address:      strings.TrimSpace(address),
		Cart:         []CartItem{},
		Wishlist:     []string{},
		CreatedAt:    createdAt.UTC(),
	}
	if err := u.validate(); err != nil {
		return User{}, err
	}
	return u, nil
}

// NewPrivileged builds an admin or staff account. Admin accounts
// carry both flags; staff accounts carry only IsStaff.
func NewPrivileged(id, email, phone, passwordHash string, isAdmin bool, createdAt time.Time) (User, error) {
	u := User{
		ID:           strings.TrimSpace(id),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		Phone:        strings.TrimSpace(phone),
		PasswordHash: passwordHash,
		IsAdmin:      isAdmin,
		IsStaff:      true,
		Cart:         []CartItem{},
		Wishlist:     []string{},
		CreatedAt:    createdAt.UTC(),
	}
	if u.ID == "" {
		return User{}, ErrInvalidID
	}
	if u.Email == "" {
		return User{}, ErrInvalidEmail
	}
	if u.PasswordHash == "" {
		return User{}, ErrInvalidPassword
	}
	return u, nil
}

// ========================================
// Behavior
// ========================================

func (u *User) ApplyProfilePatch(p ProfilePatch) {
	if p.Name != nil && strings.TrimSpace(*p.Name) != "" {
		u.Name = strings.TrimSpace(*p.Name)
	}
	if p.Email != nil && strings.TrimSpace(*p.Email) != "" {
		u.Email = strings.ToLower(strings.TrimSpace(*p.Email))
	}
	if p.Phone != nil && strings.TrimSpace(*p.Phone) != "" {
		u.Phone = strings.TrimSpace(*p.Phone)
	}
	if p.BirthDate != nil {
		u.BirthDate = p.BirthDate
	}
	if p.Address != nil && strings.TrimSpace(*p.Address) != "" {
		u.Address = strings.TrimSpace(*p.Address)
	}
}

// AddToCart appends a cart item, keeping at most one entry per product.
// Returns false when the product is already in the cart.
func (u *User) AddToCart(item CartItem) (bool, error) {
	if item.Quantity <= 0 {
		return false, ErrInvalidQuantity
	}
	pid := strings.TrimSpace(item.ProductID)
	for _, it := range u.Cart {
		if it.ProductID == pid {
			return false, nil
		}
	}
	u.Cart = append(u.Cart, CartItem{ProductID: pid, Quantity: item.Quantity})
	return true, nil
}

// RemoveFromCart drops the entry for the product id. Missing entries
// are a no-op so placement reconciliation stays best-effort.
func (u *User) RemoveFromCart(productID string) {
	pid := strings.TrimSpace(productID)
	for i, it := range u.Cart {
		if it.ProductID == pid {
			u.Cart = append(u.Cart[:i], u.Cart[i+1:]...)
			return
		}
	}
}

// AddToWishlist appends a product id once. Returns false if present.
func (u *User) AddToWishlist(productID string) bool {
	pid := strings.TrimSpace(productID)
	for _, id := range u.Wishlist {
		if id == pid {
			return false
		}
	}
	u.Wishlist = append(u.Wishlist, pid)
	return true
}

// RemoveFromWishlist drops a product id; missing ids are a no-op.
func (u *User) RemoveFromWishlist(productID string) {
	pid := strings.TrimSpace(productID)
	for i, id := range u.Wishlist {
		if id == pid {
			u.Wishlist = append(u.Wishlist[:i], u.Wishlist[i+1:]...)
			return
		}
	}
}

// ========================================
// Validation
// ========================================

func (u User) validate() error {
	if u.ID == "" {
		return ErrInvalidID
	}
	if u.Name == "" {
		return ErrInvalidName
	}
	if u.Email == "" {
		return ErrInvalidEmail
	}
	if u.PasswordHash == "" {
		return ErrInvalidPassword
	}
	if u.BirthDate == nil {
		return ErrInvalidBirthDate
	}
	return nil
}

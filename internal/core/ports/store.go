package ports

import (
	"context"
	"time"

	"github.com/bowlapp/storefront/internal/core/domain"
)

// AuthResult reports the outcome of a signup or login attempt.
type AuthResult struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Session *domain.Session `json:"session,omitempty"`
	Err     error           `json:"-"`
}

// PointsResult reports the outcome of a loyalty award.
type PointsResult struct {
	Success  bool   `json:"success"`
	Error    string `json:"error,omitempty"`
	NewTotal int    `json:"newTotal"`
	Err      error  `json:"-"`
}

// PlaceOrderInput carries the checkout choices for an order.
type PlaceOrderInput struct {
	OrderType     domain.OrderType
	PaymentMethod domain.PaymentMethod
	SelectedTime  time.Time
}

// OrderResult reports the outcome of order placement.
type OrderResult struct {
	Success bool          `json:"success"`
	Error   string        `json:"error,omitempty"`
	Order   *domain.Order `json:"order,omitempty"`
	Err     error         `json:"-"`
}

// SessionStore is the single authoritative state container: authentication,
// favorites, cart, loyalty points, and order history. Mutations update memory
// first and write through to the persistence gateway; operations that can fail
// return a Result instead of an error, and none of them panic.
type SessionStore interface {
	// Initialize performs the cold-start read-through. Idempotent: only the
	// first call has any effect.
	Initialize(ctx context.Context)

	SetBowls(bowls []domain.Bowl)
	Bowls() []domain.Bowl

	Signup(ctx context.Context, name, email, password string) AuthResult
	Login(ctx context.Context, email, password string) AuthResult
	Logout(ctx context.Context)
	CurrentUser() *domain.Session
	IsAuthenticated() bool

	AddFavorite(ctx context.Context, bowl domain.Bowl)
	RemoveFavorite(ctx context.Context, id int)
	ClearAllFavorites(ctx context.Context)
	Favorites() []domain.Bowl

	AddToCart(ctx context.Context, bowl domain.Bowl, customizations domain.Customizations) domain.CartItem
	RemoveFromCart(ctx context.Context, itemID string)
	UpdateCartItemQuantity(ctx context.Context, itemID string, quantity int)
	ClearCart(ctx context.Context)
	Cart() []domain.CartItem

	AddPoints(ctx context.Context, amount int, reason string) PointsResult
	LoadPoints(ctx context.Context)
	Points() domain.PointsLedger

	PlaceOrder(ctx context.Context, in PlaceOrderInput) OrderResult
	LoadOrderHistory(ctx context.Context)
	OrderHistory() []domain.Order
}

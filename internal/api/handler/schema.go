package handler

import (
	"time"

	"github.com/bowlapp/storefront/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Auth ---

type signupRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token   string          `json:"token,omitempty"`
	Session *domain.Session `json:"session,omitempty"`
}

// --- Catalog / favorites ---

type bowlRequest struct {
	ID          int      `json:"id"   validate:"required"`
	Name        string   `json:"name" validate:"required"`
	Image       string   `json:"image"`
	Ingredients []string `json:"ingredients"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
}

func (r bowlRequest) toDomain() domain.Bowl {
	return domain.Bowl{
		ID:          r.ID,
		Name:        r.Name,
		Image:       r.Image,
		Ingredients: r.Ingredients,
		Description: r.Description,
		Price:       r.Price,
	}
}

// --- Cart ---

type customizationsRequest struct {
	SelectedIngredients []string       `json:"selectedIngredients"`
	Extras              map[string]any `json:"extras"`
}

type addToCartRequest struct {
	Bowl           bowlRequest           `json:"bowl" validate:"required"`
	Customizations customizationsRequest `json:"customizations"`
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type cartResponse struct {
	Items    []domain.CartItem `json:"items"`
	Subtotal float64           `json:"subtotal"`
}

// --- Points ---

type addPointsRequest struct {
	Amount int    `json:"amount" validate:"required,gt=0"`
	Reason string `json:"reason" validate:"required"`
}

type pointsResponse struct {
	Total   int                  `json:"total"`
	History []domain.PointsEntry `json:"history"`
}

// --- Orders ---

type placeOrderRequest struct {
	OrderType     string    `json:"orderType"     validate:"required,oneof=dine-in take-away"`
	PaymentMethod string    `json:"paymentMethod" validate:"required,oneof=cash card mobile"`
	SelectedTime  time.Time `json:"selectedTime"`
}

// placeOrderResponse presents the order receipt. GrandTotal applies the 10%
// tax at presentation time only; the stored order keeps the pre-tax subtotal.
type placeOrderResponse struct {
	Order        *domain.Order `json:"order"`
	GrandTotal   float64       `json:"grandTotal"`
	PointsEarned int           `json:"pointsEarned"`
}

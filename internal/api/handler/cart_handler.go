package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bowlapp/storefront/internal/core/domain"
	"github.com/bowlapp/storefront/internal/core/ports"
)

// CartHandler manages the pending order lines.
type CartHandler struct {
	store ports.SessionStore
}

func NewCartHandler(store ports.SessionStore) *CartHandler {
	return &CartHandler{store: store}
}

// GetCart returns the cart lines and the pre-tax subtotal.
//
// @Summary      Get the cart
// @Tags         cart
// @Produce      json
// @Success      200  {object}  cartResponse
// @Router       /v1/cart [get]
func (h *CartHandler) GetCart(c echo.Context) error {
	items := h.store.Cart()
	subtotal := 0.0
	for _, item := range items {
		subtotal += item.Price * float64(item.Quantity)
	}
	return c.JSON(http.StatusOK, cartResponse{Items: items, Subtotal: subtotal})
}

// AddToCart appends a new line for a bowl and returns it.
//
// @Summary      Add a bowl to the cart
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        body  body      addToCartRequest  true  "Bowl and customizations"
// @Success      201   {object}  domain.CartItem
// @Failure      400   {object}  errorResponse
// @Router       /v1/cart [post]
func (h *CartHandler) AddToCart(c echo.Context) error {
	var req addToCartRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	item := h.store.AddToCart(c.Request().Context(), req.Bowl.toDomain(), domain.Customizations{
		SelectedIngredients: req.Customizations.SelectedIngredients,
		Extras:              req.Customizations.Extras,
	})
	return c.JSON(http.StatusCreated, item)
}

// UpdateQuantity sets a line's quantity, clamped to a minimum of one.
//
// @Summary      Update a cart line's quantity
// @Tags         cart
// @Accept       json
// @Param        id    path  string                 true  "Cart item id"
// @Param        body  body  updateQuantityRequest  true  "New quantity"
// @Success      204
// @Failure      400  {object}  errorResponse
// @Router       /v1/cart/{id}/quantity [patch]
func (h *CartHandler) UpdateQuantity(c echo.Context) error {
	var req updateQuantityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	h.store.UpdateCartItemQuantity(c.Request().Context(), c.Param("id"), req.Quantity)
	return c.NoContent(http.StatusNoContent)
}

// RemoveItem drops one line from the cart.
//
// @Summary      Remove a cart line
// @Tags         cart
// @Param        id  path  string  true  "Cart item id"
// @Success      204
// @Router       /v1/cart/{id} [delete]
func (h *CartHandler) RemoveItem(c echo.Context) error {
	h.store.RemoveFromCart(c.Request().Context(), c.Param("id"))
	return c.NoContent(http.StatusNoContent)
}

// ClearCart empties the cart.
//
// @Summary      Clear the cart
// @Tags         cart
// @Success      204
// @Router       /v1/cart [delete]
func (h *CartHandler) ClearCart(c echo.Context) error {
	h.store.ClearCart(c.Request().Context())
	return c.NoContent(http.StatusNoContent)
}

package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/bowlapp/storefront/internal/api/metrics"
	"github.com/bowlapp/storefront/internal/core/domain"
	"github.com/bowlapp/storefront/internal/core/ports"
)

// taxRate is applied at presentation time only; stored orders keep the
// pre-tax subtotal.
const taxRate = 0.10

// defaultPickupLead is used when checkout does not name a time.
const defaultPickupLead = 30 * time.Minute

// OrderHandler handles checkout, order history, and the loyalty ledger.
type OrderHandler struct {
	store ports.SessionStore
}

func NewOrderHandler(store ports.SessionStore) *OrderHandler {
	return &OrderHandler{store: store}
}

// PlaceOrder turns the cart into an order.
//
// @Summary      Place an order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      placeOrderRequest  true  "Checkout choices"
// @Success      201   {object}  placeOrderResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/orders [post]
func (h *OrderHandler) PlaceOrder(c echo.Context) error {
	var req placeOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	selectedTime := req.SelectedTime
	if selectedTime.IsZero() {
		selectedTime = time.Now().Add(defaultPickupLead)
	}

	result := h.store.PlaceOrder(c.Request().Context(), ports.PlaceOrderInput{
		OrderType:     domain.OrderType(req.OrderType),
		PaymentMethod: domain.PaymentMethod(req.PaymentMethod),
		SelectedTime:  selectedTime,
	})
	if !result.Success {
		return result.Err
	}

	order := result.Order
	earned := int(order.Total)
	metrics.OrdersPlacedTotal.WithLabelValues(string(order.OrderType), string(order.PaymentMethod)).Inc()
	metrics.PointsAwardedTotal.WithLabelValues("order").Add(float64(earned))

	return c.JSON(http.StatusCreated, placeOrderResponse{
		Order:        order,
		GrandTotal:   order.Total * (1 + taxRate),
		PointsEarned: earned,
	})
}

// ListOrders refreshes and returns the user's order history, newest first.
//
// @Summary      Order history
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Order
// @Router       /v1/orders [get]
func (h *OrderHandler) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()
	h.store.LoadOrderHistory(ctx)
	return c.JSON(http.StatusOK, h.store.OrderHistory())
}

// GetPoints refreshes and returns the loyalty ledger.
//
// @Summary      Loyalty points
// @Tags         points
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  pointsResponse
// @Router       /v1/points [get]
func (h *OrderHandler) GetPoints(c echo.Context) error {
	ctx := c.Request().Context()
	h.store.LoadPoints(ctx)
	ledger := h.store.Points()
	return c.JSON(http.StatusOK, pointsResponse{Total: ledger.Total, History: ledger.History})
}

// AwardPoints adds a manual award (e.g. a scanned receipt) to the ledger.
//
// @Summary      Award points
// @Tags         points
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      addPointsRequest  true  "Award details"
// @Success      200   {object}  ports.PointsResult
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /v1/points [post]
func (h *OrderHandler) AwardPoints(c echo.Context) error {
	var req addPointsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result := h.store.AddPoints(c.Request().Context(), req.Amount, req.Reason)
	if !result.Success {
		return result.Err
	}
	metrics.PointsAwardedTotal.WithLabelValues("award").Add(float64(req.Amount))

	return c.JSON(http.StatusOK, result)
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/storefront/shop-api/internal/api/metrics"
	"github.com/storefront/shop-api/internal/api/response"
	"github.com/storefront/shop-api/internal/core/ports"
)

const headerIdempotencyKey = "Idempotency-Key"

// OrderHandler handles HTTP requests for order operations.
type OrderHandler struct {
	service ports.OrderService
}

func NewOrderHandler(service ports.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

// List handles GET /api/v1/orders.
//
// @Summary      List all orders, newest first
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Order
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/v1/orders [get]
func (h *OrderHandler) List(c echo.Context) error {
	orders, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orders)
}

// Get handles GET /api/v1/orders/:id.
//
// @Summary      Get an order
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Order ID"
// @Success      200  {object}  domain.Order
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/orders/{id} [get]
func (h *OrderHandler) Get(c echo.Context) error {
	caller, err := callerIdentity(c)
	if err != nil {
		return err
	}

	order, err := h.service.Get(c.Request().Context(), caller, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}

// Events handles GET /api/v1/orders/:id/events.
//
// @Summary      Get the audit trail of an order
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Order ID"
// @Success      200  {object}  orderEventsResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/orders/{id}/events [get]
func (h *OrderHandler) Events(c echo.Context) error {
	caller, err := callerIdentity(c)
	if err != nil {
		return err
	}

	id := c.Param("id")
	events, err := h.service.Events(c.Request().Context(), caller, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orderEventsResponse{OrderID: id, Events: events})
}

// ListByUser handles GET /api/v1/orders/get/userorders/:userid.
//
// @Summary      List the orders of a user
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        userid  path      string  true  "User ID"
// @Success      200     {array}   domain.Order
// @Failure      403     {object}  errorResponse
// @Router       /api/v1/orders/get/userorders/{userid} [get]
func (h *OrderHandler) ListByUser(c echo.Context) error {
	caller, err := callerIdentity(c)
	if err != nil {
		return err
	}

	orders, err := h.service.ListByUser(c.Request().Context(), caller, c.Param("userid"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orders)
}

// Create handles POST /api/v1/orders.
//
// Non-admin callers always own the order they place; the "user" and "status"
// fields are honoured for admins only. A repeated Idempotency-Key returns the
// order created the first time with 200.
//
// @Summary      Place an order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string              false  "Client generated key to make retries safe"
// @Param        body             body      createOrderRequest  true   "Order details"
// @Success      201              {object}  domain.Order
// @Success      200              {object}  domain.Order
// @Failure      400              {object}  errorResponse
// @Failure      401              {object}  errorResponse
// @Failure      404              {object}  errorResponse
// @Router       /api/v1/orders [post]
func (h *OrderHandler) Create(c echo.Context) error {
	caller, err := callerIdentity(c)
	if err != nil {
		return err
	}

	var req createOrderRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	key := c.Request().Header.Get(headerIdempotencyKey)
	result, err := h.service.Create(c.Request().Context(), caller, toCreateOrderInput(req, key))
	if err != nil {
		return err
	}

	if result.AlreadyExisted {
		return c.JSON(http.StatusOK, result.Order)
	}

	placedBy := "owner"
	if result.Order.UserID != caller.UserID {
		placedBy = "admin"
	}
	metrics.OrdersCreatedTotal.WithLabelValues(placedBy).Inc()
	return c.JSON(http.StatusCreated, result.Order)
}

// UpdateStatus handles PUT /api/v1/orders/:id.
//
// @Summary      Update order status
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                    true  "Order ID"
// @Param        body  body      updateOrderStatusRequest  true  "New status"
// @Success      200   {object}  domain.Order
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/v1/orders/{id} [put]
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	caller, err := callerIdentity(c)
	if err != nil {
		return err
	}

	var req updateOrderStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	order, err := h.service.UpdateStatus(c.Request().Context(), caller, c.Param("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}

// Delete handles DELETE /api/v1/orders/:id. Order items go with the order.
//
// @Summary      Delete an order
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Order ID"
// @Success      200  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/orders/{id} [delete]
func (h *OrderHandler) Delete(c echo.Context) error {
	caller, err := callerIdentity(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), caller, c.Param("id")); err != nil {
		return err
	}
	return response.Message(c, http.StatusOK, "the order is deleted")
}

// TotalSales handles GET /api/v1/orders/get/totalsales.
//
// @Summary      Sum of all order totals
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  totalSalesResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/v1/orders/get/totalsales [get]
func (h *OrderHandler) TotalSales(c echo.Context) error {
	total, err := h.service.TotalSales(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, totalSalesResponse{TotalSales: total})
}

// Count handles GET /api/v1/orders/get/count.
//
// @Summary      Count orders
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  countResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/v1/orders/get/count [get]
func (h *OrderHandler) Count(c echo.Context) error {
	n, err := h.service.Count(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, countResponse{Count: n})
}

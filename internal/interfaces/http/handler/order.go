package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	tradeapp "github.com/aurelia/backend/internal/application/trade"
	"github.com/aurelia/backend/internal/interfaces/http/middleware"
)

// OrderHandler handles checkout and order management endpoints
type OrderHandler struct {
	BaseHandler
	orderService *tradeapp.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *tradeapp.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

// Checkout godoc
// @Summary      Place an order
// @Description  Creates an order from local and remote line items in one shot
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        request body tradeapp.CheckoutRequest true "Checkout request"
// @Success      201 {object} dto.Response{data=tradeapp.OrderResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /checkout [post]
func (h *OrderHandler) Checkout(c *gin.Context) {
	var req tradeapp.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	// Signed-in customers order under their token email
	if email := middleware.GetJWTEmail(c); email != "" {
		req.CustomerEmail = email
	}

	order, err := h.orderService.Checkout(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, order)
}

// Track godoc
// @Summary      Track an order by its order number
// @Tags         orders
// @Produce      json
// @Param        number path string true "Order number"
// @Success      200 {object} dto.Response{data=tradeapp.OrderResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /orders/track/{number} [get]
func (h *OrderHandler) Track(c *gin.Context) {
	order, err := h.orderService.GetByOrderNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// MyOrders godoc
// @Summary      List the signed-in customer's orders
// @Tags         orders
// @Produce      json
// @Success      200 {object} dto.Response{data=[]tradeapp.OrderResponse}
// @Security     BearerAuth
// @Router       /me/orders [get]
func (h *OrderHandler) MyOrders(c *gin.Context) {
	email := middleware.GetJWTEmail(c)
	if email == "" {
		h.Unauthorized(c, "Authentication required")
		return
	}

	page := parseLimit(c.Query("page"), 1)
	pageSize := parseLimit(c.Query("page_size"), 20)

	orders, err := h.orderService.ListByCustomer(c.Request.Context(), email, page, pageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, orders)
}

// List godoc
// @Summary      List orders with admin filters
// @Tags         admin-orders
// @Produce      json
// @Security     BearerAuth
// @Router       /admin/orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	var req tradeapp.ListOrdersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.orderService.List(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// GetByID godoc
// @Summary      Get an order by ID
// @Tags         admin-orders
// @Security     BearerAuth
// @Router       /admin/orders/{id} [get]
func (h *OrderHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// ChangeStatus godoc
// @Summary      Move an order through its lifecycle
// @Tags         admin-orders
// @Security     BearerAuth
// @Router       /admin/orders/{id}/status [put]
func (h *OrderHandler) ChangeStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	var req tradeapp.ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	if strings.EqualFold(req.Status, "CANCELLED") {
		order, err := h.orderService.Cancel(c.Request.Context(), id)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, order)
		return
	}

	order, err := h.orderService.ChangeStatus(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// UpdatePayment godoc
// @Summary      Record a payment status change
// @Tags         admin-orders
// @Security     BearerAuth
// @Router       /admin/orders/{id}/payment [put]
func (h *OrderHandler) UpdatePayment(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	var req tradeapp.UpdatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	order, err := h.orderService.UpdatePayment(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

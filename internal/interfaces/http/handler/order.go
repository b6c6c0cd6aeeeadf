package handler

import (
	"github.com/erp/orderhub/internal/application/ingestion"
	"github.com/erp/orderhub/internal/application/ordering"
	"github.com/erp/orderhub/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
)

// OrderHandler serves /orders
type OrderHandler struct {
	BaseHandler
	orderService *ordering.OrderService
	dummy        *ordering.DummyGenerator
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *ordering.OrderService, dummy *ordering.DummyGenerator) *OrderHandler {
	return &OrderHandler{orderService: orderService, dummy: dummy}
}

// Routes returns the order route group. Static segments are registered
// before /:id so gin resolves them first.
func (h *OrderHandler) Routes() *router.DomainGroup {
	g := router.NewDomainGroup("orders", "/orders")
	g.GET("", h.List).
		POST("", h.Create).
		PUT("/bulk/status", h.BulkUpdateStatus).
		POST("/dummy/create", h.CreateDummy).
		GET("/production/items-required", h.ItemsRequired).
		GET("/analytics/summary", h.Analytics).
		GET("/customer/:customerId", h.ListByCustomer).
		GET("/status/:status", h.ListByStatus).
		GET("/factory/:factoryId", h.ListByFactory).
		GET("/:id", h.GetByID).
		PUT("/:id", h.Update).
		PUT("/:id/status", h.UpdateStatus).
		DELETE("/:id", h.Delete)
	return g
}

// List godoc
// @ID           listOrders
// @Summary      List orders
// @Description  Paginated orders, newest first, with customer, shipping, lines and ingredients
// @Tags         orders
// @Produce      json
// @Param        customer_id query string false "Customer ID" format(uuid)
// @Param        status query string false "Order status" Enums(pending, confirmed, in_progress, completed, cancelled, shipped)
// @Param        factory_id query string false "Factory ID" format(uuid)
// @Param        start_date query string false "Start date (YYYY-MM-DD), applied together with end_date"
// @Param        end_date query string false "End date (YYYY-MM-DD), applied together with start_date"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]ordering.OrderResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	var filter ordering.OrderListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}
	if filter.Page <= 0 {
		filter.Page = defaultPage
	}
	if filter.PageSize <= 0 {
		filter.PageSize = defaultPageSize
	}

	orders, total, err := h.orderService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, orders, total, filter.Page, filter.PageSize)
}

// GetByID godoc
// @ID           getOrderById
// @Summary      Get order by ID
// @Tags         orders
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Success      200 {object} APIResponse[ordering.OrderResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Router       /orders/{id} [get]
func (h *OrderHandler) GetByID(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id", "order")
	if !ok {
		return
	}
	order, err := h.orderService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Create godoc
// @ID           createOrder
// @Summary      Create an order
// @Description  Creates an order with its lines, ingredients and shipping. Customers and products are resolved or created on the fly.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        request body ingestion.APIOrderPayload true "Order"
// @Success      201 {object} APIResponse[ordering.OrderResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /orders [post]
func (h *OrderHandler) Create(c *gin.Context) {
	var payload ingestion.APIOrderPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.BindError(c, err)
		return
	}
	order, err := h.orderService.Create(c.Request.Context(), payload)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, order)
}

// Update godoc
// @ID           updateOrder
// @Summary      Update an order
// @Description  Updates header fields. A present order_details array replaces every line.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Param        request body ordering.UpdateOrderRequest true "Changes"
// @Success      200 {object} APIResponse[ordering.OrderResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Router       /orders/{id} [put]
func (h *OrderHandler) Update(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id", "order")
	if !ok {
		return
	}
	var req ordering.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	order, err := h.orderService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// UpdateStatus godoc
// @ID           updateOrderStatus
// @Summary      Set order status
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Param        request body ordering.UpdateStatusRequest true "Status"
// @Success      200 {object} APIResponse[ordering.OrderHeaderResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Router       /orders/{id}/status [put]
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id", "order")
	if !ok {
		return
	}
	var req ordering.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	order, err := h.orderService.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// BulkUpdateStatus godoc
// @ID           bulkUpdateOrderStatus
// @Summary      Set the status of several orders
// @Description  Failures are reported per order and do not stop the others
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        request body ordering.BulkStatusRequest true "Orders and status"
// @Success      200 {object} APIResponse[ordering.BulkStatusResult]
// @Failure      400 {object} dto.ErrorResponse
// @Router       /orders/bulk/status [put]
func (h *OrderHandler) BulkUpdateStatus(c *gin.Context) {
	var req ordering.BulkStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	result, err := h.orderService.BulkUpdateStatus(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Delete godoc
// @ID           deleteOrder
// @Summary      Delete an order
// @Description  Soft-deletes the order, its lines and their ingredients
// @Tags         orders
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Success      200 {object} SuccessResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Router       /orders/{id} [delete]
func (h *OrderHandler) Delete(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id", "order")
	if !ok {
		return
	}
	if err := h.orderService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessMessage(c, "Order deleted successfully")
}

// ListByCustomer godoc
// @ID           listOrdersByCustomer
// @Summary      List orders of a customer
// @Tags         orders
// @Produce      json
// @Param        customerId path string true "Customer ID" format(uuid)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]ordering.OrderResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Router       /orders/customer/{customerId} [get]
func (h *OrderHandler) ListByCustomer(c *gin.Context) {
	customerID, ok := h.parseUUIDParam(c, "customerId", "customer")
	if !ok {
		return
	}
	page, pageSize := pagination(c)
	orders, total, err := h.orderService.ListByCustomer(c.Request.Context(), customerID, page, pageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, orders, total, page, pageSize)
}

// ListByStatus godoc
// @ID           listOrdersByStatus
// @Summary      List orders in a status
// @Tags         orders
// @Produce      json
// @Param        status path string true "Order status" Enums(pending, confirmed, in_progress, completed, cancelled, shipped)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]ordering.OrderResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Router       /orders/status/{status} [get]
func (h *OrderHandler) ListByStatus(c *gin.Context) {
	page, pageSize := pagination(c)
	orders, total, err := h.orderService.ListByStatus(c.Request.Context(), c.Param("status"), page, pageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, orders, total, page, pageSize)
}

// ListByFactory godoc
// @ID           listOrdersByFactory
// @Summary      List orders of a factory
// @Tags         orders
// @Produce      json
// @Param        factoryId path string true "Factory ID" format(uuid)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]ordering.OrderResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Router       /orders/factory/{factoryId} [get]
func (h *OrderHandler) ListByFactory(c *gin.Context) {
	factoryID, ok := h.parseUUIDParam(c, "factoryId", "factory")
	if !ok {
		return
	}
	page, pageSize := pagination(c)
	orders, total, err := h.orderService.ListByFactory(c.Request.Context(), factoryID, page, pageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, orders, total, page, pageSize)
}

// ItemsRequired godoc
// @ID           listItemsRequired
// @Summary      Open production ingredients
// @Description  Ingredients still pending or in progress, with their order, line, product and item
// @Tags         orders
// @Produce      json
// @Param        factory_id query string false "Factory ID" format(uuid)
// @Success      200 {object} APIResponse[[]ordering.ItemRequirementResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Router       /orders/production/items-required [get]
func (h *OrderHandler) ItemsRequired(c *gin.Context) {
	factoryID, ok := h.optionalUUIDQuery(c, "factory_id")
	if !ok {
		return
	}
	items, err := h.orderService.ItemsRequired(c.Request.Context(), factoryID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// Analytics godoc
// @ID           getOrderAnalytics
// @Summary      Order analytics
// @Description  Totals by status and by day for orders dated in the range
// @Tags         orders
// @Produce      json
// @Param        start_date query string true "Start date (YYYY-MM-DD)"
// @Param        end_date query string true "End date (YYYY-MM-DD)"
// @Param        factory_id query string false "Factory ID" format(uuid)
// @Success      200 {object} APIResponse[trade.OrderAnalytics]
// @Failure      400 {object} dto.ErrorResponse
// @Router       /orders/analytics/summary [get]
func (h *OrderHandler) Analytics(c *gin.Context) {
	factoryID, ok := h.optionalUUIDQuery(c, "factory_id")
	if !ok {
		return
	}
	summary, err := h.orderService.Analytics(c.Request.Context(), c.Query("start_date"), c.Query("end_date"), factoryID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// CreateDummy godoc
// @ID           createDummyOrders
// @Summary      Generate test orders
// @Description  Creates 1-50 random orders (default 5) from existing customers, products, items, factories and companies
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        request body ordering.DummyOrdersRequest false "How many"
// @Success      201 {object} APIResponse[ordering.DummyOrdersResult]
// @Failure      400 {object} dto.ErrorResponse
// @Router       /orders/dummy/create [post]
func (h *OrderHandler) CreateDummy(c *gin.Context) {
	var req ordering.DummyOrdersRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BindError(c, err)
			return
		}
	}
	result, err := h.dummy.Generate(c.Request.Context(), req.NumOrders)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

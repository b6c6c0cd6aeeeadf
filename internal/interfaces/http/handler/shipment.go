package handler

import (
	"strconv"

	"github.com/erp/orderhub/internal/application/ordering"
	"github.com/erp/orderhub/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
)

// ShipmentHandler serves /shipment
type ShipmentHandler struct {
	BaseHandler
	shipments *ordering.ShipmentService
}

// NewShipmentHandler creates a new ShipmentHandler
func NewShipmentHandler(shipments *ordering.ShipmentService) *ShipmentHandler {
	return &ShipmentHandler{shipments: shipments}
}

// Routes returns the shipment route group
func (h *ShipmentHandler) Routes() *router.DomainGroup {
	return router.NewDomainGroup("shipment", "/shipment").
		GET("/:orderNumber", h.Dimensions)
}

// Dimensions godoc
// @ID           getShipmentDimensions
// @Summary      Shipping dimensions of an order
// @Description  Length, width, thickness and weight values found in each line's properties. Unknown orders yield an empty list.
// @Tags         shipment
// @Produce      json
// @Param        orderNumber path int true "Order number"
// @Success      200 {object} APIResponse[ordering.ShipmentResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Router       /shipment/{orderNumber} [get]
func (h *ShipmentHandler) Dimensions(c *gin.Context) {
	orderNumber, err := strconv.ParseInt(c.Param("orderNumber"), 10, 64)
	if err != nil {
		h.BadRequest(c, "Invalid order number")
		return
	}
	resp, err := h.shipments.Dimensions(c.Request.Context(), orderNumber)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

package handler

import (
	"mime"
	"net/http"
	"strconv"

	"github.com/erp/orderhub/internal/application/ordering"
	"github.com/erp/orderhub/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
)

// InvoiceHandler serves /fabric-invoice
type InvoiceHandler struct {
	BaseHandler
	invoices *ordering.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(invoices *ordering.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoices: invoices}
}

// Routes returns the invoice route group
func (h *InvoiceHandler) Routes() *router.DomainGroup {
	return router.NewDomainGroup("fabric-invoice", "/fabric-invoice").
		GET("/:invoiceNumber", h.Download)
}

// Download godoc
// @ID           downloadFabricInvoice
// @Summary      Download a fabric invoice
// @Description  Streams the stored invoice document as an attachment
// @Tags         fabric-invoice
// @Produce      application/pdf
// @Produce      application/octet-stream
// @Param        invoiceNumber path string true "Fabric invoice number"
// @Success      200 {file} file
// @Failure      404 {object} dto.ErrorResponse
// @Router       /fabric-invoice/{invoiceNumber} [get]
func (h *InvoiceHandler) Download(c *gin.Context) {
	doc, err := h.invoices.Download(c.Request.Context(), c.Param("invoiceNumber"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": doc.Filename}))
	c.Header("Content-Length", strconv.Itoa(len(doc.Data)))
	c.Data(http.StatusOK, doc.ContentType, doc.Data)
}

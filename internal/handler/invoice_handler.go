package handler

import (
	"net/http"

	"invoicing-backend/internal/apperr"
	"invoicing-backend/internal/middleware"
	"invoicing-backend/internal/service"
	"invoicing-backend/pkg/pagination"
	"invoicing-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type InvoiceHandler struct {
	invoiceService service.InvoiceService
}

func NewInvoiceHandler(invoiceService service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

func (h *InvoiceHandler) RegisterRoutes(router *gin.RouterGroup) {
	invoices := router.Group("/api/invoice", middleware.UserValidate())
	{
		invoices.GET("/:id", h.GetInvoice)
		invoices.GET("/order/:saleOrderId", h.GetInvoiceBySaleOrder)
		invoices.GET("", h.ListInvoices)
	}
}

// GetInvoice retrieves one invoice
// @Summary      Get invoice
// @Tags         invoice
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Invoice ID"
// @Success      200  {object}  response.Response{data=service.InvoiceResponse}
// @Failure      401  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/invoice/{id} [get]
func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error("Unauthorized"))
		return
	}

	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), principal, c.Param("id"))
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), response.Error(apperr.Message(err)))
		return
	}

	c.JSON(http.StatusOK, response.Success("", invoice))
}

// GetInvoiceBySaleOrder retrieves the invoice emitted for a sale order
// @Summary      Get invoice by sale order
// @Tags         invoice
// @Security     BearerAuth
// @Produce      json
// @Param        saleOrderId  path      string  true  "Sale Order ID"
// @Success      200          {object}  response.Response{data=service.InvoiceResponse}
// @Failure      401          {object}  response.Response
// @Failure      404          {object}  response.Response
// @Router       /api/invoice/order/{saleOrderId} [get]
func (h *InvoiceHandler) GetInvoiceBySaleOrder(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error("Unauthorized"))
		return
	}

	invoice, err := h.invoiceService.GetInvoiceBySaleOrder(c.Request.Context(), principal, c.Param("saleOrderId"))
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), response.Error(apperr.Message(err)))
		return
	}

	c.JSON(http.StatusOK, response.Success("", invoice))
}

// ListInvoices retrieves the company's invoices
// @Summary      List invoices
// @Tags         invoice
// @Security     BearerAuth
// @Produce      json
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Number of items per page (default 20)"
// @Success      200    {object}  response.Response{data=object}
// @Failure      401    {object}  response.Response
// @Router       /api/invoice [get]
func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error("Unauthorized"))
		return
	}

	params := pagination.Parse(c)
	invoices, total, err := h.invoiceService.ListInvoices(c.Request.Context(), principal, params.Page, params.Limit)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), response.Error(apperr.Message(err)))
		return
	}

	c.JSON(http.StatusOK, response.Success("", map[string]interface{}{
		"invoices": invoices,
		"total":    total,
		"page":     params.Page,
		"limit":    params.Limit,
	}))
}

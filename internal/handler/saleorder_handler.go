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

type SaleOrderHandler struct {
	saleOrderService service.SaleOrderService
}

func NewSaleOrderHandler(saleOrderService service.SaleOrderService) *SaleOrderHandler {
	return &SaleOrderHandler{saleOrderService: saleOrderService}
}

func (h *SaleOrderHandler) RegisterRoutes(router *gin.RouterGroup) {
	orders := router.Group("/api/saleorder", middleware.UserValidate())
	{
		orders.POST("/create", h.CreateOrder)
		orders.PUT("/place/:id", h.PlaceOrder)
		orders.PUT("/add/:id", h.AddProducts)
		orders.PUT("/update/:id", h.UpdateQuantities)
		orders.PUT("/cancel/:id", h.CancelOrder)
		orders.GET("/:id", h.GetOrder)
		orders.GET("", h.ListOrders)
	}
}

// CreateOrder creates a sale order and reserves stock for each line
// @Summary      Create sale order
// @Description  Creates a pending sale order, reserving stock per line item
// @Tags         saleorder
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateSaleOrderRequest  true  "Create Sale Order Payload"
// @Success      201      {object}  response.Response{data=service.SaleOrderResponse}
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/saleorder/create [post]
func (h *SaleOrderHandler) CreateOrder(c *gin.Context) {
	var req service.CreateSaleOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error("Invalid request payload: "+err.Error()))
		return
	}

	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error("Unauthorized"))
		return
	}

	order, err := h.saleOrderService.CreateOrder(c.Request.Context(), principal, req)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), response.Error(apperr.Message(err)))
		return
	}

	c.JSON(http.StatusCreated, response.Success("Order created successfully", order))
}

// PlaceOrder completes a pending order and emits its invoice
// @Summary      Place sale order
// @Description  Transitions a pending order to completed and creates its invoice
// @Tags         saleorder
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Sale Order ID"
// @Success      200  {object}  response.Response{data=service.SaleOrderResponse}
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/saleorder/place/{id} [put]
func (h *SaleOrderHandler) PlaceOrder(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error("Unauthorized"))
		return
	}

	order, err := h.saleOrderService.PlaceOrder(c.Request.Context(), principal, c.Param("id"))
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), response.Error(apperr.Message(err)))
		return
	}

	c.JSON(http.StatusOK, response.Success("Order placed successfully", order))
}

// AddProducts appends line items to a pending order
// @Summary      Add products to sale order
// @Description  Appends products to a pending order, reserving stock per line
// @Tags         saleorder
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                          true  "Sale Order ID"
// @Param        payload  body      service.UpdateSaleOrderRequest  true  "Add Products Payload"
// @Success      200      {object}  response.Response{data=service.SaleOrderResponse}
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/saleorder/add/{id} [put]
func (h *SaleOrderHandler) AddProducts(c *gin.Context) {
	var req service.UpdateSaleOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error("Invalid request payload: "+err.Error()))
		return
	}

	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error("Unauthorized"))
		return
	}

	order, err := h.saleOrderService.AddProducts(c.Request.Context(), principal, c.Param("id"), req)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), response.Error(apperr.Message(err)))
		return
	}

	c.JSON(http.StatusOK, response.Success("Order updated successfully", order))
}

// UpdateQuantities revises line item quantities on a pending order
// @Summary      Update sale order quantities
// @Description  Revises quantities of existing lines, adjusting stock transactionally
// @Tags         saleorder
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                          true  "Sale Order ID"
// @Param        payload  body      service.UpdateSaleOrderRequest  true  "Update Quantities Payload"
// @Success      200      {object}  response.Response{data=service.SaleOrderResponse}
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/saleorder/update/{id} [put]
func (h *SaleOrderHandler) UpdateQuantities(c *gin.Context) {
	var req service.UpdateSaleOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error("Invalid request payload: "+err.Error()))
		return
	}

	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error("Unauthorized"))
		return
	}

	order, err := h.saleOrderService.UpdateQuantities(c.Request.Context(), principal, c.Param("id"), req)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), response.Error(apperr.Message(err)))
		return
	}

	c.JSON(http.StatusOK, response.Success("Order updated successfully", order))
}

// CancelOrder cancels a pending order
// @Summary      Cancel sale order
// @Description  Transitions a pending order to cancelled
// @Tags         saleorder
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Sale Order ID"
// @Success      200  {object}  response.Response{data=service.SaleOrderResponse}
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/saleorder/cancel/{id} [put]
func (h *SaleOrderHandler) CancelOrder(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error("Unauthorized"))
		return
	}

	order, err := h.saleOrderService.CancelOrder(c.Request.Context(), principal, c.Param("id"))
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), response.Error(apperr.Message(err)))
		return
	}

	c.JSON(http.StatusOK, response.Success("Order cancelled successfully", order))
}

// GetOrder retrieves one sale order
// @Summary      Get sale order
// @Tags         saleorder
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Sale Order ID"
// @Success      200  {object}  response.Response{data=service.SaleOrderResponse}
// @Failure      401  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/saleorder/{id} [get]
func (h *SaleOrderHandler) GetOrder(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error("Unauthorized"))
		return
	}

	order, err := h.saleOrderService.GetOrder(c.Request.Context(), principal, c.Param("id"))
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), response.Error(apperr.Message(err)))
		return
	}

	c.JSON(http.StatusOK, response.Success("", order))
}

// ListOrders retrieves the company's sale orders
// @Summary      List sale orders
// @Tags         saleorder
// @Security     BearerAuth
// @Produce      json
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Number of items per page (default 20)"
// @Success      200    {object}  response.Response{data=object}
// @Failure      401    {object}  response.Response
// @Router       /api/saleorder [get]
func (h *SaleOrderHandler) ListOrders(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error("Unauthorized"))
		return
	}

	params := pagination.Parse(c)
	orders, total, err := h.saleOrderService.ListOrders(c.Request.Context(), principal, params.Page, params.Limit)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), response.Error(apperr.Message(err)))
		return
	}

	c.JSON(http.StatusOK, response.Success("", map[string]interface{}{
		"orders": orders,
		"total":  total,
		"page":   params.Page,
		"limit":  params.Limit,
	}))
}

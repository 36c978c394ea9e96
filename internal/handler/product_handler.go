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

type ProductHandler struct {
	productService service.ProductService
}

func NewProductHandler(productService service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

func (h *ProductHandler) RegisterRoutes(router *gin.RouterGroup) {
	products := router.Group("/api/product", middleware.UserValidate())
	{
		products.GET("", h.ListProducts)
		products.GET("/:id", h.GetProduct)
		products.POST("/add", middleware.RequireAdmin(), h.CreateProduct)
		products.PUT("/update/:id", middleware.RequireAdmin(), h.UpdateProduct)
		products.DELETE("/delete/:id", middleware.RequireAdmin(), h.DeleteProduct)
	}
}

// CreateProduct adds a product to the company catalog
// @Summary      Create product
// @Tags         product
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateProductRequest  true  "Create Product Payload"
// @Success      201      {object}  response.Response{data=service.ProductResponse}
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Router       /api/product/add [post]
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req service.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error("Invalid request payload: "+err.Error()))
		return
	}

	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error("Unauthorized"))
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), principal, req)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), response.Error(apperr.Message(err)))
		return
	}

	c.JSON(http.StatusCreated, response.Success("Product created successfully", product))
}

// UpdateProduct updates product fields
// @Summary      Update product
// @Tags         product
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                        true  "Product ID"
// @Param        payload  body      service.UpdateProductRequest  true  "Update Product Payload"
// @Success      200      {object}  response.Response{data=service.ProductResponse}
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/product/update/{id} [put]
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	var req service.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error("Invalid request payload: "+err.Error()))
		return
	}

	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error("Unauthorized"))
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), principal, c.Param("id"), req)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), response.Error(apperr.Message(err)))
		return
	}

	c.JSON(http.StatusOK, response.Success("Product updated successfully", product))
}

// DeleteProduct removes a product
// @Summary      Delete product
// @Tags         product
// @Security     BearerAuth
// @Produce      json
// @Param        id          path      string  true  "Product ID"
// @Param        company_id  query     string  true  "Company ID"
// @Success      200         {object}  response.Response
// @Failure      400         {object}  response.Response
// @Failure      401         {object}  response.Response
// @Failure      404         {object}  response.Response
// @Router       /api/product/delete/{id} [delete]
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error("Unauthorized"))
		return
	}

	if err := h.productService.DeleteProduct(c.Request.Context(), principal, c.Param("id"), c.Query("company_id")); err != nil {
		c.JSON(apperr.HTTPStatus(err), response.Error(apperr.Message(err)))
		return
	}

	c.JSON(http.StatusOK, response.Success("Product deleted successfully", nil))
}

// GetProduct retrieves one product
// @Summary      Get product
// @Tags         product
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Product ID"
// @Success      200  {object}  response.Response{data=service.ProductResponse}
// @Failure      401  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/product/{id} [get]
func (h *ProductHandler) GetProduct(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error("Unauthorized"))
		return
	}

	product, err := h.productService.GetProduct(c.Request.Context(), principal, c.Param("id"))
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), response.Error(apperr.Message(err)))
		return
	}

	c.JSON(http.StatusOK, response.Success("", product))
}

// ListProducts retrieves the company's products
// @Summary      List products
// @Tags         product
// @Security     BearerAuth
// @Produce      json
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Number of items per page (default 20)"
// @Success      200    {object}  response.Response{data=object}
// @Failure      401    {object}  response.Response
// @Router       /api/product [get]
func (h *ProductHandler) ListProducts(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error("Unauthorized"))
		return
	}

	params := pagination.Parse(c)
	products, total, err := h.productService.ListProducts(c.Request.Context(), principal, params.Page, params.Limit)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), response.Error(apperr.Message(err)))
		return
	}

	c.JSON(http.StatusOK, response.Success("", map[string]interface{}{
		"products": products,
		"total":    total,
		"page":     params.Page,
		"limit":    params.Limit,
	}))
}

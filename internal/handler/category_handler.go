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

type CategoryHandler struct {
	categoryService service.CategoryService
}

func NewCategoryHandler(categoryService service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

func (h *CategoryHandler) RegisterRoutes(router *gin.RouterGroup) {
	categories := router.Group("/api/category", middleware.UserValidate())
	{
		categories.GET("", h.ListCategories)
		categories.POST("/add", middleware.RequireAdmin(), h.CreateCategory)
		categories.PUT("/update/:id", middleware.RequireAdmin(), h.UpdateCategory)
		categories.DELETE("/delete/:id", middleware.RequireAdmin(), h.DeleteCategory)
	}
}

// CreateCategory adds a category for a company
// @Summary      Create category
// @Tags         category
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateCategoryRequest  true  "Create Category Payload"
// @Success      201      {object}  response.Response{data=service.CategoryResponse}
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Router       /api/category/add [post]
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req service.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error("Invalid request payload: "+err.Error()))
		return
	}

	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error("Unauthorized"))
		return
	}

	category, err := h.categoryService.CreateCategory(c.Request.Context(), principal, req)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), response.Error(apperr.Message(err)))
		return
	}

	c.JSON(http.StatusCreated, response.Success("Category created successfully", category))
}

// UpdateCategory renames a category
// @Summary      Update category
// @Tags         category
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                         true  "Category ID"
// @Param        payload  body      service.UpdateCategoryRequest  true  "Update Category Payload"
// @Success      200      {object}  response.Response{data=service.CategoryResponse}
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/category/update/{id} [put]
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	var req service.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error("Invalid request payload: "+err.Error()))
		return
	}

	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error("Unauthorized"))
		return
	}

	category, err := h.categoryService.UpdateCategory(c.Request.Context(), principal, c.Param("id"), req)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), response.Error(apperr.Message(err)))
		return
	}

	c.JSON(http.StatusOK, response.Success("Category updated successfully", category))
}

// DeleteCategory removes a category
// @Summary      Delete category
// @Tags         category
// @Security     BearerAuth
// @Produce      json
// @Param        id          path      string  true  "Category ID"
// @Param        company_id  query     string  true  "Company ID"
// @Success      200         {object}  response.Response
// @Failure      400         {object}  response.Response
// @Failure      401         {object}  response.Response
// @Failure      404         {object}  response.Response
// @Router       /api/category/delete/{id} [delete]
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error("Unauthorized"))
		return
	}

	if err := h.categoryService.DeleteCategory(c.Request.Context(), principal, c.Param("id"), c.Query("company_id")); err != nil {
		c.JSON(apperr.HTTPStatus(err), response.Error(apperr.Message(err)))
		return
	}

	c.JSON(http.StatusOK, response.Success("Category deleted successfully", nil))
}

// ListCategories retrieves the company's categories
// @Summary      List categories
// @Tags         category
// @Security     BearerAuth
// @Produce      json
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Number of items per page (default 20)"
// @Success      200    {object}  response.Response{data=object}
// @Failure      401    {object}  response.Response
// @Router       /api/category [get]
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error("Unauthorized"))
		return
	}

	params := pagination.Parse(c)
	categories, total, err := h.categoryService.ListCategories(c.Request.Context(), principal, params.Page, params.Limit)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), response.Error(apperr.Message(err)))
		return
	}

	c.JSON(http.StatusOK, response.Success("", map[string]interface{}{
		"categories": categories,
		"total":      total,
		"page":       params.Page,
		"limit":      params.Limit,
	}))
}

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

type CompanyHandler struct {
	companyService service.CompanyService
}

func NewCompanyHandler(companyService service.CompanyService) *CompanyHandler {
	return &CompanyHandler{companyService: companyService}
}

func (h *CompanyHandler) RegisterRoutes(router *gin.RouterGroup) {
	companies := router.Group("/api/company", middleware.UserValidate())
	{
		companies.GET("", middleware.RequireAdmin(), h.ListCompanies)
		companies.GET("/:id", h.GetCompany)
		companies.POST("/add", middleware.RequireAdmin(), h.CreateCompany)
		companies.PUT("/update/:id", middleware.RequireAdmin(), h.UpdateCompany)
	}
}

// CreateCompany registers a new company
// @Summary      Create company
// @Tags         company
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateCompanyRequest  true  "Create Company Payload"
// @Success      201      {object}  response.Response{data=service.CompanyResponse}
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Router       /api/company/add [post]
func (h *CompanyHandler) CreateCompany(c *gin.Context) {
	var req service.CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error("Invalid request payload: "+err.Error()))
		return
	}

	company, err := h.companyService.CreateCompany(c.Request.Context(), req)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), response.Error(apperr.Message(err)))
		return
	}

	c.JSON(http.StatusCreated, response.Success("Company created successfully", company))
}

// UpdateCompany updates company fields
// @Summary      Update company
// @Tags         company
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                        true  "Company ID"
// @Param        payload  body      service.UpdateCompanyRequest  true  "Update Company Payload"
// @Success      200      {object}  response.Response{data=service.CompanyResponse}
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/company/update/{id} [put]
func (h *CompanyHandler) UpdateCompany(c *gin.Context) {
	var req service.UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error("Invalid request payload: "+err.Error()))
		return
	}

	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error("Unauthorized"))
		return
	}

	company, err := h.companyService.UpdateCompany(c.Request.Context(), principal, c.Param("id"), req)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), response.Error(apperr.Message(err)))
		return
	}

	c.JSON(http.StatusOK, response.Success("Company updated successfully", company))
}

// GetCompany retrieves the caller's company
// @Summary      Get company
// @Tags         company
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Company ID"
// @Success      200  {object}  response.Response{data=service.CompanyResponse}
// @Failure      401  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/company/{id} [get]
func (h *CompanyHandler) GetCompany(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error("Unauthorized"))
		return
	}

	company, err := h.companyService.GetCompany(c.Request.Context(), principal, c.Param("id"))
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), response.Error(apperr.Message(err)))
		return
	}

	c.JSON(http.StatusOK, response.Success("", company))
}

// ListCompanies retrieves all companies
// @Summary      List companies
// @Tags         company
// @Security     BearerAuth
// @Produce      json
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Number of items per page (default 20)"
// @Success      200    {object}  response.Response{data=object}
// @Failure      401    {object}  response.Response
// @Router       /api/company [get]
func (h *CompanyHandler) ListCompanies(c *gin.Context) {
	params := pagination.Parse(c)
	companies, total, err := h.companyService.ListCompanies(c.Request.Context(), params.Page, params.Limit)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), response.Error(apperr.Message(err)))
		return
	}

	c.JSON(http.StatusOK, response.Success("", map[string]interface{}{
		"companies": companies,
		"total":     total,
		"page":      params.Page,
		"limit":     params.Limit,
	}))
}

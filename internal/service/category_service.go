package service

import (
	"context"
	"errors"

	"invoicing-backend/internal/apperr"
	"invoicing-backend/internal/model"
	"invoicing-backend/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateCategoryRequest struct {
	CategoryName string `json:"category_name" binding:"required"`
	CompanyID    string `json:"company_id" binding:"required"`
}

type UpdateCategoryRequest struct {
	CategoryName string `json:"category_name" binding:"required"`
	CompanyID    string `json:"company_id" binding:"required"`
}

type CategoryResponse struct {
	ID           string `json:"id"`
	CategoryName string `json:"category_name"`
	CompanyID    string `json:"company_id"`
}

type CategoryService interface {
	CreateCategory(ctx context.Context, principal model.Principal, req CreateCategoryRequest) (*CategoryResponse, error)
	UpdateCategory(ctx context.Context, principal model.Principal, id string, req UpdateCategoryRequest) (*CategoryResponse, error)
	DeleteCategory(ctx context.Context, principal model.Principal, id, companyID string) error
	ListCategories(ctx context.Context, principal model.Principal, page, limit int) ([]CategoryResponse, int64, error)
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
	companyRepo  repository.CompanyRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository, companyRepo repository.CompanyRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo, companyRepo: companyRepo}
}

func (s *categoryService) CreateCategory(ctx context.Context, principal model.Principal, req CreateCategoryRequest) (*CategoryResponse, error) {
	companyID, err := uuid.Parse(req.CompanyID)
	if err != nil {
		return nil, apperr.New(apperr.KindValidation, "Invalid company id")
	}

	if !principal.IsSameCompany(companyID) {
		return nil, apperr.New(apperr.KindUnauthorized, "You are not authorized to add category for this company")
	}

	if _, err := s.companyRepo.FindByID(ctx, companyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "Company not found")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load company", err)
	}

	category := &model.Category{
		CategoryName: req.CategoryName,
		CompanyID:    companyID,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to create category", err)
	}

	return mapCategoryToResponse(category), nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, principal model.Principal, id string, req UpdateCategoryRequest) (*CategoryResponse, error) {
	categoryID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.New(apperr.KindValidation, "Invalid category id")
	}
	companyID, err := uuid.Parse(req.CompanyID)
	if err != nil {
		return nil, apperr.New(apperr.KindValidation, "Invalid company id")
	}

	if !principal.IsSameCompany(companyID) {
		return nil, apperr.New(apperr.KindUnauthorized, "You are not authorized to update category for this company")
	}

	category, err := s.categoryRepo.FindByIDForCompany(ctx, categoryID, companyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "Category not found")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load category", err)
	}

	category.CategoryName = req.CategoryName
	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to update category", err)
	}

	return mapCategoryToResponse(category), nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, principal model.Principal, id, companyID string) error {
	categoryID, err := uuid.Parse(id)
	if err != nil {
		return apperr.New(apperr.KindValidation, "Invalid category id")
	}
	cid, err := uuid.Parse(companyID)
	if err != nil {
		return apperr.New(apperr.KindValidation, "Invalid company id")
	}

	if !principal.IsSameCompany(cid) {
		return apperr.New(apperr.KindUnauthorized, "You are not authorized to delete category for this company")
	}

	if _, err := s.categoryRepo.FindByIDForCompany(ctx, categoryID, cid); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.New(apperr.KindNotFound, "Category not found")
		}
		return apperr.Wrap(apperr.KindInternal, "failed to load category", err)
	}

	if err := s.categoryRepo.Delete(ctx, categoryID); err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to delete category", err)
	}
	return nil
}

func (s *categoryService) ListCategories(ctx context.Context, principal model.Principal, page, limit int) ([]CategoryResponse, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	categories, total, err := s.categoryRepo.List(ctx, principal.CompanyID, page, limit)
	if err != nil {
		return nil, 0, apperr.Wrap(apperr.KindInternal, "failed to list categories", err)
	}

	res := make([]CategoryResponse, 0, len(categories))
	for i := range categories {
		res = append(res, *mapCategoryToResponse(&categories[i]))
	}
	return res, total, nil
}

func mapCategoryToResponse(category *model.Category) *CategoryResponse {
	return &CategoryResponse{
		ID:           category.ID.String(),
		CategoryName: category.CategoryName,
		CompanyID:    category.CompanyID.String(),
	}
}

package service

import (
	"context"
	"errors"

	"invoicing-backend/internal/apperr"
	"invoicing-backend/internal/model"
	"invoicing-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CreateCompanyRequest struct {
	CompanyName string `json:"company_name" binding:"required"`
	Email       string `json:"email"`
	Address     string `json:"address"`
	PhoneNumber string `json:"phone_number"`
	Logo        string `json:"logo"`
	GSTNumber   string `json:"gst_number"`
	Website     string `json:"website"`
	FSSAINumber string `json:"fssai_number"`
}

type UpdateCompanyRequest struct {
	CompanyName *string `json:"company_name"`
	Email       *string `json:"email"`
	Address     *string `json:"address"`
	PhoneNumber *string `json:"phone_number"`
	Logo        *string `json:"logo"`
	GSTNumber   *string `json:"gst_number"`
	Website     *string `json:"website"`
	FSSAINumber *string `json:"fssai_number"`
}

type CompanyResponse struct {
	ID          string `json:"id"`
	CompanyName string `json:"company_name"`
	Email       string `json:"email"`
	Address     string `json:"address"`
	PhoneNumber string `json:"phone_number"`
	Balance     string `json:"balance"`
	Logo        string `json:"logo"`
	GSTNumber   string `json:"gst_number"`
	Website     string `json:"website"`
	FSSAINumber string `json:"fssai_number"`
}

type CompanyService interface {
	CreateCompany(ctx context.Context, req CreateCompanyRequest) (*CompanyResponse, error)
	UpdateCompany(ctx context.Context, principal model.Principal, id string, req UpdateCompanyRequest) (*CompanyResponse, error)
	GetCompany(ctx context.Context, principal model.Principal, id string) (*CompanyResponse, error)
	ListCompanies(ctx context.Context, page, limit int) ([]CompanyResponse, int64, error)
}

type companyService struct {
	companyRepo repository.CompanyRepository
}

func NewCompanyService(companyRepo repository.CompanyRepository) CompanyService {
	return &companyService{companyRepo: companyRepo}
}

func (s *companyService) CreateCompany(ctx context.Context, req CreateCompanyRequest) (*CompanyResponse, error) {
	company := &model.Company{
		CompanyName: req.CompanyName,
		Email:       req.Email,
		Address:     req.Address,
		PhoneNumber: req.PhoneNumber,
		Balance:     decimal.Zero,
		Logo:        req.Logo,
		GSTNumber:   req.GSTNumber,
		Website:     req.Website,
		FSSAINumber: req.FSSAINumber,
	}
	if err := s.companyRepo.Create(ctx, company); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to create company", err)
	}
	return mapCompanyToResponse(company), nil
}

func (s *companyService) UpdateCompany(ctx context.Context, principal model.Principal, id string, req UpdateCompanyRequest) (*CompanyResponse, error) {
	companyID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.New(apperr.KindValidation, "Invalid company id")
	}

	if !principal.IsSameCompany(companyID) {
		return nil, apperr.New(apperr.KindUnauthorized, "You are not authorized to update this company")
	}

	company, err := s.companyRepo.FindByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "Company not found")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load company", err)
	}

	if req.CompanyName != nil {
		company.CompanyName = *req.CompanyName
	}
	if req.Email != nil {
		company.Email = *req.Email
	}
	if req.Address != nil {
		company.Address = *req.Address
	}
	if req.PhoneNumber != nil {
		company.PhoneNumber = *req.PhoneNumber
	}
	if req.Logo != nil {
		company.Logo = *req.Logo
	}
	if req.GSTNumber != nil {
		company.GSTNumber = *req.GSTNumber
	}
	if req.Website != nil {
		company.Website = *req.Website
	}
	if req.FSSAINumber != nil {
		company.FSSAINumber = *req.FSSAINumber
	}

	if err := s.companyRepo.Update(ctx, company); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to update company", err)
	}
	return mapCompanyToResponse(company), nil
}

func (s *companyService) GetCompany(ctx context.Context, principal model.Principal, id string) (*CompanyResponse, error) {
	companyID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.New(apperr.KindValidation, "Invalid company id")
	}

	if !principal.IsSameCompany(companyID) {
		return nil, apperr.New(apperr.KindUnauthorized, "You are not authorized to view this company")
	}

	company, err := s.companyRepo.FindByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "Company not found")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load company", err)
	}
	return mapCompanyToResponse(company), nil
}

func (s *companyService) ListCompanies(ctx context.Context, page, limit int) ([]CompanyResponse, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	companies, total, err := s.companyRepo.List(ctx, page, limit)
	if err != nil {
		return nil, 0, apperr.Wrap(apperr.KindInternal, "failed to list companies", err)
	}

	res := make([]CompanyResponse, 0, len(companies))
	for i := range companies {
		res = append(res, *mapCompanyToResponse(&companies[i]))
	}
	return res, total, nil
}

func mapCompanyToResponse(company *model.Company) *CompanyResponse {
	return &CompanyResponse{
		ID:          company.ID.String(),
		CompanyName: company.CompanyName,
		Email:       company.Email,
		Address:     company.Address,
		PhoneNumber: company.PhoneNumber,
		Balance:     company.Balance.String(),
		Logo:        company.Logo,
		GSTNumber:   company.GSTNumber,
		Website:     company.Website,
		FSSAINumber: company.FSSAINumber,
	}
}

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"invoicing-backend/internal/apperr"
	"invoicing-backend/internal/cache"
	"invoicing-backend/internal/model"
	"invoicing-backend/internal/repository"
	ws "invoicing-backend/internal/websocket"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const productCacheTTL = 5 * time.Minute

// --- DTOs ---

type CreateProductRequest struct {
	ProductName  string `json:"product_name" binding:"required"`
	ProductCode  string `json:"product_code" binding:"required"`
	SellingPrice string `json:"selling_price" binding:"required"`
	BuyingPrice  string `json:"buying_price" binding:"required"`
	Description  string `json:"description" binding:"required"`
	Image        string `json:"image" binding:"required"`
	Quantity     int    `json:"quantity" binding:"required,gte=0"`
	Unit         string `json:"unit" binding:"required,oneof=kg ltr piece gm"`
	CategoryID   string `json:"category_id" binding:"required"`
	CompanyID    string `json:"company_id" binding:"required"`
}

type UpdateProductRequest struct {
	ProductName  *string `json:"product_name"`
	ProductCode  *string `json:"product_code"`
	SellingPrice *string `json:"selling_price"`
	BuyingPrice  *string `json:"buying_price"`
	Description  *string `json:"description"`
	Image        *string `json:"image"`
	Quantity     *int    `json:"quantity"`
	Unit         *string `json:"unit"`
	CategoryID   *string `json:"category_id"`
	CompanyID    string  `json:"company_id" binding:"required"`
}

type ProductResponse struct {
	ID           string `json:"id"`
	ProductName  string `json:"product_name"`
	ProductCode  string `json:"product_code"`
	SellingPrice string `json:"selling_price"`
	BuyingPrice  string `json:"buying_price"`
	Description  string `json:"description"`
	Image        string `json:"image"`
	Quantity     int    `json:"quantity"`
	Unit         string `json:"unit"`
	CategoryID   string `json:"category_id"`
	CompanyID    string `json:"company_id"`
}

type ProductService interface {
	CreateProduct(ctx context.Context, principal model.Principal, req CreateProductRequest) (*ProductResponse, error)
	UpdateProduct(ctx context.Context, principal model.Principal, id string, req UpdateProductRequest) (*ProductResponse, error)
	DeleteProduct(ctx context.Context, principal model.Principal, id, companyID string) error
	GetProduct(ctx context.Context, principal model.Principal, id string) (*ProductResponse, error)
	ListProducts(ctx context.Context, principal model.Principal, page, limit int) ([]ProductResponse, int64, error)
}

type productService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	cache        *cache.Cache
	hub          *ws.Hub
}

func NewProductService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	c *cache.Cache,
	hub *ws.Hub,
) ProductService {
	return &productService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		cache:        c,
		hub:          hub,
	}
}

func (s *productService) CreateProduct(ctx context.Context, principal model.Principal, req CreateProductRequest) (*ProductResponse, error) {
	companyID, err := uuid.Parse(req.CompanyID)
	if err != nil {
		return nil, apperr.New(apperr.KindValidation, "Invalid company id")
	}
	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return nil, apperr.New(apperr.KindValidation, "Invalid category id")
	}

	if !principal.IsSameCompany(companyID) {
		return nil, apperr.New(apperr.KindUnauthorized, "You are not authorized to add product for this company")
	}

	if _, err := s.categoryRepo.FindByIDForCompany(ctx, categoryID, companyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindValidation, "Category does not exist for this company")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load category", err)
	}

	sellingPrice, err := decimal.NewFromString(req.SellingPrice)
	if err != nil {
		return nil, apperr.New(apperr.KindValidation, "Invalid selling price")
	}
	buyingPrice, err := decimal.NewFromString(req.BuyingPrice)
	if err != nil {
		return nil, apperr.New(apperr.KindValidation, "Invalid buying price")
	}

	product := &model.Product{
		ProductName:  req.ProductName,
		ProductCode:  req.ProductCode,
		SellingPrice: sellingPrice,
		BuyingPrice:  buyingPrice,
		Description:  req.Description,
		Image:        req.Image,
		Quantity:     req.Quantity,
		Unit:         req.Unit,
		CategoryID:   categoryID,
		CompanyID:    companyID,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to create product", err)
	}

	s.invalidateListCache(ctx, companyID)
	s.hub.Publish(ws.EventStockChanged, map[string]interface{}{
		"product_id": product.ID.String(),
		"quantity":   product.Quantity,
	})

	return mapProductToResponse(product), nil
}

func (s *productService) UpdateProduct(ctx context.Context, principal model.Principal, id string, req UpdateProductRequest) (*ProductResponse, error) {
	productID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.New(apperr.KindValidation, "Invalid product id")
	}
	companyID, err := uuid.Parse(req.CompanyID)
	if err != nil {
		return nil, apperr.New(apperr.KindValidation, "Invalid company id")
	}

	if !principal.IsSameCompany(companyID) {
		return nil, apperr.New(apperr.KindUnauthorized, "You are not authorized to update product for this company")
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "Product not found")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load product", err)
	}

	if product.CompanyID != companyID {
		return nil, apperr.New(apperr.KindUnauthorized, "You are not authorized to update product for this company")
	}

	if req.ProductName != nil {
		product.ProductName = *req.ProductName
	}
	if req.ProductCode != nil {
		product.ProductCode = *req.ProductCode
	}
	if req.SellingPrice != nil {
		sellingPrice, err := decimal.NewFromString(*req.SellingPrice)
		if err != nil {
			return nil, apperr.New(apperr.KindValidation, "Invalid selling price")
		}
		product.SellingPrice = sellingPrice
	}
	if req.BuyingPrice != nil {
		buyingPrice, err := decimal.NewFromString(*req.BuyingPrice)
		if err != nil {
			return nil, apperr.New(apperr.KindValidation, "Invalid buying price")
		}
		product.BuyingPrice = buyingPrice
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Image != nil {
		product.Image = *req.Image
	}
	if req.Quantity != nil {
		if *req.Quantity < 0 {
			return nil, apperr.New(apperr.KindValidation, "Quantity must not be negative")
		}
		product.Quantity = *req.Quantity
	}
	if req.Unit != nil {
		product.Unit = *req.Unit
	}
	if req.CategoryID != nil {
		categoryID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return nil, apperr.New(apperr.KindValidation, "Invalid category id")
		}
		if _, err := s.categoryRepo.FindByIDForCompany(ctx, categoryID, companyID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperr.New(apperr.KindValidation, "Category does not exist for this company")
			}
			return nil, apperr.Wrap(apperr.KindInternal, "failed to load category", err)
		}
		product.CategoryID = categoryID
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to update product", err)
	}

	s.invalidateListCache(ctx, companyID)
	s.hub.Publish(ws.EventStockChanged, map[string]interface{}{
		"product_id": product.ID.String(),
		"quantity":   product.Quantity,
	})

	return mapProductToResponse(product), nil
}

func (s *productService) DeleteProduct(ctx context.Context, principal model.Principal, id, companyID string) error {
	productID, err := uuid.Parse(id)
	if err != nil {
		return apperr.New(apperr.KindValidation, "Invalid product id")
	}
	cid, err := uuid.Parse(companyID)
	if err != nil {
		return apperr.New(apperr.KindValidation, "Invalid company id")
	}

	if !principal.IsSameCompany(cid) {
		return apperr.New(apperr.KindUnauthorized, "You are not authorized to delete product for this company")
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.New(apperr.KindNotFound, "Product not found")
		}
		return apperr.Wrap(apperr.KindInternal, "failed to load product", err)
	}

	if product.CompanyID != cid {
		return apperr.New(apperr.KindUnauthorized, "You are not authorized to delete product for this company")
	}

	if err := s.productRepo.Delete(ctx, productID); err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to delete product", err)
	}

	s.invalidateListCache(ctx, cid)
	return nil
}

func (s *productService) GetProduct(ctx context.Context, principal model.Principal, id string) (*ProductResponse, error) {
	productID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.New(apperr.KindValidation, "Invalid product id")
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "Product not found")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load product", err)
	}

	if !principal.IsSameCompany(product.CompanyID) {
		return nil, apperr.New(apperr.KindUnauthorized, "You are not authorized to view this product")
	}

	return mapProductToResponse(product), nil
}

func (s *productService) ListProducts(ctx context.Context, principal model.Principal, page, limit int) ([]ProductResponse, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	type listing struct {
		Products []ProductResponse `json:"products"`
		Total    int64             `json:"total"`
	}

	key := fmt.Sprintf("product-list_%s_%d_%d", principal.CompanyID, page, limit)
	cached, err := cache.GetOrSet(ctx, s.cache, key, productCacheTTL, func() (listing, error) {
		products, total, err := s.productRepo.List(ctx, principal.CompanyID, page, limit)
		if err != nil {
			return listing{}, err
		}
		res := make([]ProductResponse, 0, len(products))
		for i := range products {
			res = append(res, *mapProductToResponse(&products[i]))
		}
		return listing{Products: res, Total: total}, nil
	})
	if err != nil {
		return nil, 0, apperr.Wrap(apperr.KindInternal, "failed to list products", err)
	}

	return cached.Products, cached.Total, nil
}

func (s *productService) invalidateListCache(ctx context.Context, companyID uuid.UUID) {
	_ = s.cache.DeletePattern(ctx, fmt.Sprintf("product-list_%s_*", companyID))
}

func mapProductToResponse(product *model.Product) *ProductResponse {
	return &ProductResponse{
		ID:           product.ID.String(),
		ProductName:  product.ProductName,
		ProductCode:  product.ProductCode,
		SellingPrice: product.SellingPrice.String(),
		BuyingPrice:  product.BuyingPrice.String(),
		Description:  product.Description,
		Image:        product.Image,
		Quantity:     product.Quantity,
		Unit:         product.Unit,
		CategoryID:   product.CategoryID.String(),
		CompanyID:    product.CompanyID.String(),
	}
}

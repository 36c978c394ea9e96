package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"invoicing-backend/internal/apperr"
	"invoicing-backend/internal/model"
	"invoicing-backend/internal/repository"
	ws "invoicing-backend/internal/websocket"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// --- DTOs ---

type OrderLineRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

type CreateSaleOrderRequest struct {
	CompanyID string             `json:"company_id" binding:"required"`
	Products  []OrderLineRequest `json:"products" binding:"required,min=1,dive"`
}

type UpdateSaleOrderRequest struct {
	Products []OrderLineRequest `json:"products" binding:"required,min=1,dive"`
}

type OrderLineResponse struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type SaleOrderResponse struct {
	ID              string              `json:"id"`
	SaleOrderNumber string              `json:"sale_order_number"`
	TokenNo         string              `json:"token_no"`
	UserID          string              `json:"user_id"`
	CompanyID       string              `json:"company_id"`
	Status          string              `json:"status"`
	Products        []OrderLineResponse `json:"products"`
	Total           string              `json:"total"`
	CreatedAt       string              `json:"created_at"`
	UpdatedAt       string              `json:"updated_at"`
}

// SaleOrderService is the order lifecycle manager. It owns every mutation of
// a sale order and of product stock: creation, line addition, quantity
// revision, completion and cancellation. Only pending orders are mutable.
type SaleOrderService interface {
	CreateOrder(ctx context.Context, principal model.Principal, req CreateSaleOrderRequest) (*SaleOrderResponse, error)
	AddProducts(ctx context.Context, principal model.Principal, orderID string, req UpdateSaleOrderRequest) (*SaleOrderResponse, error)
	UpdateQuantities(ctx context.Context, principal model.Principal, orderID string, req UpdateSaleOrderRequest) (*SaleOrderResponse, error)
	PlaceOrder(ctx context.Context, principal model.Principal, orderID string) (*SaleOrderResponse, error)
	CancelOrder(ctx context.Context, principal model.Principal, orderID string) (*SaleOrderResponse, error)
	GetOrder(ctx context.Context, principal model.Principal, orderID string) (*SaleOrderResponse, error)
	ListOrders(ctx context.Context, principal model.Principal, page, limit int) ([]SaleOrderResponse, int64, error)
}

type saleOrderService struct {
	orderRepo   repository.SaleOrderRepository
	productRepo repository.ProductRepository
	companyRepo repository.CompanyRepository
	seqRepo     repository.SequenceRepository
	invoiceSvc  InvoiceService
	txManager   repository.TransactionManager
	hub         *ws.Hub
	log         *zap.Logger
	now         func() time.Time
}

func NewSaleOrderService(
	orderRepo repository.SaleOrderRepository,
	productRepo repository.ProductRepository,
	companyRepo repository.CompanyRepository,
	seqRepo repository.SequenceRepository,
	invoiceSvc InvoiceService,
	txManager repository.TransactionManager,
	hub *ws.Hub,
	log *zap.Logger,
) SaleOrderService {
	return &saleOrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		companyRepo: companyRepo,
		seqRepo:     seqRepo,
		invoiceSvc:  invoiceSvc,
		txManager:   txManager,
		hub:         hub,
		log:         log,
		now:         time.Now,
	}
}

// CreateOrder reserves stock line by line, then persists a new pending order
// with the accumulated total. Lines are processed strictly in request order
// so each reservation observes the effect of the previous ones. Stock
// already reserved is NOT returned when a later line fails; the conditional
// decrement is the authoritative check, the preceding read only produces the
// product-name error message.
func (s *saleOrderService) CreateOrder(ctx context.Context, principal model.Principal, req CreateSaleOrderRequest) (*SaleOrderResponse, error) {
	companyID, err := uuid.Parse(req.CompanyID)
	if err != nil {
		return nil, apperr.New(apperr.KindValidation, "Invalid company id")
	}

	if !principal.IsSameCompany(companyID) {
		return nil, apperr.New(apperr.KindUnauthorized, "You are not allowed to create an order for this company")
	}

	if _, err := s.companyRepo.FindByID(ctx, companyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "Company not found")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load company", err)
	}

	var items []model.SaleOrderItem
	total := decimal.Zero

	for _, line := range req.Products {
		product, err := s.reserveLine(ctx, companyID, line)
		if err != nil {
			return nil, err
		}

		items = append(items, model.SaleOrderItem{
			ProductID: product.ID,
			Quantity:  line.Quantity,
		})
		total = total.Add(product.SellingPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	order := &model.SaleOrder{
		UserID:    principal.UserID,
		CompanyID: companyID,
		Status:    model.OrderStatusPending,
		Items:     items,
		Total:     total,
	}

	if err := s.persistNew(ctx, order); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to create order", err)
	}

	s.hub.Publish(ws.EventOrderCreated, map[string]interface{}{
		"sale_order_id":     order.ID.String(),
		"sale_order_number": order.SaleOrderNumber,
		"company_id":        order.CompanyID.String(),
	})

	return mapOrderToResponse(order), nil
}

// AddProducts appends lines to a pending order. A product already on the
// order is appended again as a duplicate entry; only UpdateQuantities merges
// in place. Each line's reservation is applied immediately, so earlier lines
// stay reserved if a later one is rejected. The order itself only changes
// once every line has reserved: items and the new total commit together, so
// a rejected request never leaves lines on the order without their total.
func (s *saleOrderService) AddProducts(ctx context.Context, principal model.Principal, orderID string, req UpdateSaleOrderRequest) (*SaleOrderResponse, error) {
	order, err := s.loadMutableOrder(ctx, principal, orderID)
	if err != nil {
		return nil, err
	}

	total := order.Total
	var items []model.SaleOrderItem

	for _, line := range req.Products {
		product, err := s.reserveLine(ctx, order.CompanyID, line)
		if err != nil {
			return nil, err
		}

		items = append(items, model.SaleOrderItem{
			SaleOrderID: order.ID,
			ProductID:   product.ID,
			Quantity:    line.Quantity,
		})
		total = total.Add(product.SellingPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		for i := range items {
			if err := s.orderRepo.CreateItem(txCtx, &items[i]); err != nil {
				return err
			}
		}
		return s.orderRepo.UpdateTotal(txCtx, order.ID, total)
	})
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to add order items", err)
	}

	return s.reload(ctx, order.ID)
}

// UpdateQuantities revises the quantity of existing lines in place. The
// whole revision runs inside one transaction: every stock adjustment and the
// order update commit together or not at all. delta = old - new; a positive
// delta returns stock, a negative one consumes more and is rejected when it
// would exceed what is available.
func (s *saleOrderService) UpdateQuantities(ctx context.Context, principal model.Principal, orderID string, req UpdateSaleOrderRequest) (*SaleOrderResponse, error) {
	order, err := s.loadMutableOrder(ctx, principal, orderID)
	if err != nil {
		return nil, err
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		total := order.Total

		for _, line := range req.Products {
			pid, err := uuid.Parse(line.ProductID)
			if err != nil {
				return apperr.New(apperr.KindValidation, "Invalid product id")
			}

			// first line entry wins, duplicates from AddProducts keep
			// their own quantity
			var item *model.SaleOrderItem
			for i := range order.Items {
				if order.Items[i].ProductID == pid {
					item = &order.Items[i]
					break
				}
			}
			if item == nil {
				continue
			}

			product, err := s.productRepo.FindByID(txCtx, pid)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperr.New(apperr.KindNotFound, "Product not found")
				}
				return apperr.Wrap(apperr.KindInternal, "failed to load product", err)
			}

			delta := item.Quantity - line.Quantity

			// advisory read; the conditional update below decides
			if line.Quantity > item.Quantity && line.Quantity-item.Quantity > product.Quantity {
				return apperr.New(apperr.KindOutOfStock, fmt.Sprintf("%s is out of stock", product.ProductName))
			}

			if err := s.productRepo.AdjustStock(txCtx, pid, delta); err != nil {
				if errors.Is(err, repository.ErrInsufficientStock) {
					return apperr.New(apperr.KindOutOfStock, fmt.Sprintf("%s is out of stock", product.ProductName))
				}
				return apperr.Wrap(apperr.KindInternal, "failed to adjust stock", err)
			}

			if err := s.orderRepo.UpdateItemQuantity(txCtx, item.ID, line.Quantity); err != nil {
				return apperr.Wrap(apperr.KindInternal, "failed to update order item", err)
			}

			total = total.Sub(product.SellingPrice.Mul(decimal.NewFromInt(int64(delta))))
			item.Quantity = line.Quantity
		}

		return s.orderRepo.UpdateTotal(txCtx, order.ID, total)
	})
	if err != nil {
		return nil, err
	}

	return s.reload(ctx, order.ID)
}

// PlaceOrder transitions a pending order to completed and emits its invoice.
// The transition is conditional on the order still being pending, so of two
// concurrent placements exactly one completes the order and emits.
// Invoice emission is fire-and-forget: a failure is logged but the completed
// status is not rolled back.
func (s *saleOrderService) PlaceOrder(ctx context.Context, principal model.Principal, orderID string) (*SaleOrderResponse, error) {
	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !principal.IsSameCompany(order.CompanyID) {
		return nil, apperr.New(apperr.KindUnauthorized, "You are not allowed to place an order for this company")
	}

	if err := statusGuard(order.Status); err != nil {
		return nil, err
	}

	err = s.orderRepo.TransitionStatus(ctx, order.ID, model.OrderStatusPending, model.OrderStatusCompleted)
	if errors.Is(err, repository.ErrStatusConflict) {
		// Lost the race to another transition; report the state that won.
		current, loadErr := s.loadOrder(ctx, orderID)
		if loadErr != nil {
			return nil, loadErr
		}
		if guardErr := statusGuard(current.Status); guardErr != nil {
			return nil, guardErr
		}
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to place order", err)
	}

	if _, err := s.invoiceSvc.Emit(ctx, order.ID); err != nil {
		s.log.Error("invoice emission failed",
			zap.String("sale_order_id", order.ID.String()),
			zap.Error(err))
	}

	s.hub.Publish(ws.EventOrderCompleted, map[string]interface{}{
		"sale_order_id":     order.ID.String(),
		"sale_order_number": order.SaleOrderNumber,
	})

	return s.reload(ctx, order.ID)
}

// CancelOrder transitions a pending order to cancelled. Reserved stock is
// not restored.
// TODO: restore line-item stock on cancellation once the desired semantics
// are settled with the frontend team.
func (s *saleOrderService) CancelOrder(ctx context.Context, principal model.Principal, orderID string) (*SaleOrderResponse, error) {
	order, err := s.loadMutableOrder(ctx, principal, orderID)
	if err != nil {
		return nil, err
	}

	err = s.orderRepo.TransitionStatus(ctx, order.ID, model.OrderStatusPending, model.OrderStatusCancelled)
	if errors.Is(err, repository.ErrStatusConflict) {
		current, loadErr := s.loadOrder(ctx, orderID)
		if loadErr != nil {
			return nil, loadErr
		}
		if guardErr := statusGuard(current.Status); guardErr != nil {
			return nil, guardErr
		}
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to cancel order", err)
	}

	return s.reload(ctx, order.ID)
}

func (s *saleOrderService) GetOrder(ctx context.Context, principal model.Principal, orderID string) (*SaleOrderResponse, error) {
	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !principal.IsSameCompany(order.CompanyID) {
		return nil, apperr.New(apperr.KindUnauthorized, "You are not allowed to view this order")
	}

	return mapOrderToResponse(order), nil
}

func (s *saleOrderService) ListOrders(ctx context.Context, principal model.Principal, page, limit int) ([]SaleOrderResponse, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	orders, total, err := s.orderRepo.List(ctx, principal.CompanyID, page, limit)
	if err != nil {
		return nil, 0, apperr.Wrap(apperr.KindInternal, "failed to list orders", err)
	}

	res := make([]SaleOrderResponse, 0, len(orders))
	for i := range orders {
		res = append(res, *mapOrderToResponse(&orders[i]))
	}
	return res, total, nil
}

// reserveLine resolves and validates one requested line against the given
// company, then reserves its stock. The pre-check against the loaded product
// is advisory; a concurrent reservation can still win, in which case the
// conditional decrement rejects.
func (s *saleOrderService) reserveLine(ctx context.Context, companyID uuid.UUID, line OrderLineRequest) (*model.Product, error) {
	pid, err := uuid.Parse(line.ProductID)
	if err != nil {
		return nil, apperr.New(apperr.KindValidation, "Invalid product id")
	}

	product, err := s.productRepo.FindByID(ctx, pid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindValidation, "Invalid product or product does not belong to the company")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load product", err)
	}

	if product.CompanyID != companyID {
		return nil, apperr.New(apperr.KindValidation, "Invalid product or product does not belong to the company")
	}

	if product.Quantity < line.Quantity {
		return nil, apperr.New(apperr.KindOutOfStock, fmt.Sprintf("%s is out of stock", product.ProductName))
	}

	if err := s.productRepo.ReserveStock(ctx, pid, line.Quantity); err != nil {
		if errors.Is(err, repository.ErrInsufficientStock) {
			return nil, apperr.New(apperr.KindOutOfStock, fmt.Sprintf("%s is out of stock", product.ProductName))
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to reserve stock", err)
	}

	s.hub.Publish(ws.EventStockChanged, map[string]interface{}{
		"product_id": product.ID.String(),
		"delta":      -line.Quantity,
	})

	return product, nil
}

// persistNew assigns the order and token numbers lazily, then inserts the
// order with its items. Numbers are only generated when still empty, so they
// are set exactly once and never change afterwards.
func (s *saleOrderService) persistNew(ctx context.Context, order *model.SaleOrder) error {
	if order.SaleOrderNumber == "" {
		v, err := s.seqRepo.Next(ctx, model.SeqSaleOrder, "")
		if err != nil {
			return fmt.Errorf("failed to allocate sale order number: %w", err)
		}
		order.SaleOrderNumber = fmt.Sprintf("%s%d", model.SaleOrderNumberPrefix, v)
	}

	if order.TokenNo == "" {
		day := s.startOfDay().Format("2006-01-02")
		v, err := s.seqRepo.Next(ctx, model.SeqTokenNo, day)
		if err != nil {
			return fmt.Errorf("failed to allocate token number: %w", err)
		}
		order.TokenNo = strconv.FormatInt(v, 10)
	}

	return s.orderRepo.Create(ctx, order)
}

func (s *saleOrderService) startOfDay() time.Time {
	now := s.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

func (s *saleOrderService) loadOrder(ctx context.Context, orderID string) (*model.SaleOrder, error) {
	id, err := uuid.Parse(orderID)
	if err != nil {
		return nil, apperr.New(apperr.KindValidation, "Invalid order id")
	}

	order, err := s.orderRepo.FindByIDWithItems(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "Order not found")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load order", err)
	}
	return order, nil
}

// loadMutableOrder loads the order and applies the shared guards for
// mutating operations: same company, not completed, not cancelled.
func (s *saleOrderService) loadMutableOrder(ctx context.Context, principal model.Principal, orderID string) (*model.SaleOrder, error) {
	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !principal.IsSameCompany(order.CompanyID) {
		return nil, apperr.New(apperr.KindUnauthorized, "You are not allowed to update this order")
	}

	if err := statusGuard(order.Status); err != nil {
		return nil, err
	}

	return order, nil
}

// statusGuard maps a terminal order status to the error reported for it.
// A pending order passes.
func statusGuard(status string) error {
	switch status {
	case model.OrderStatusCompleted:
		return apperr.New(apperr.KindOrderFinalized, "Order has already been placed")
	case model.OrderStatusCancelled:
		return apperr.New(apperr.KindOrderCancelled, "Order has been cancelled")
	}
	return nil
}

func (s *saleOrderService) reload(ctx context.Context, id uuid.UUID) (*SaleOrderResponse, error) {
	order, err := s.orderRepo.FindByIDWithItems(ctx, id)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to reload order", err)
	}
	return mapOrderToResponse(order), nil
}

func mapOrderToResponse(order *model.SaleOrder) *SaleOrderResponse {
	products := make([]OrderLineResponse, 0, len(order.Items))
	for _, item := range order.Items {
		products = append(products, OrderLineResponse{
			ProductID: item.ProductID.String(),
			Quantity:  item.Quantity,
		})
	}

	return &SaleOrderResponse{
		ID:              order.ID.String(),
		SaleOrderNumber: order.SaleOrderNumber,
		TokenNo:         order.TokenNo,
		UserID:          order.UserID.String(),
		CompanyID:       order.CompanyID.String(),
		Status:          order.Status,
		Products:        products,
		Total:           order.Total.String(),
		CreatedAt:       order.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       order.UpdatedAt.Format(time.RFC3339),
	}
}

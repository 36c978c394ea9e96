package service

import (
	"testing"

	"invoicing-backend/internal/database"
	"invoicing-backend/internal/model"
	"invoicing-backend/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// newTestDB opens a fresh in-memory database per test. The pool is capped at
// a single connection so every goroutine sees the same in-memory database and
// concurrent statements serialize instead of racing on separate databases.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

func newOrderService(t *testing.T, db *gorm.DB) *saleOrderService {
	t.Helper()

	invoiceSvc := NewInvoiceService(repository.NewInvoiceRepository(db))
	svc := NewSaleOrderService(
		repository.NewSaleOrderRepository(db),
		repository.NewProductRepository(db),
		repository.NewCompanyRepository(db),
		repository.NewSequenceRepository(db),
		invoiceSvc,
		repository.NewTransactionManager(db),
		nil, // no websocket hub in tests
		zap.NewNop(),
	)
	return svc.(*saleOrderService)
}

func seedCompany(t *testing.T, db *gorm.DB, name string) *model.Company {
	t.Helper()

	company := &model.Company{CompanyName: name}
	require.NoError(t, db.Create(company).Error)
	return company
}

func seedProduct(t *testing.T, db *gorm.DB, companyID uuid.UUID, name string, price string, quantity int) *model.Product {
	t.Helper()

	sellingPrice, err := decimal.NewFromString(price)
	require.NoError(t, err)

	product := &model.Product{
		ProductName:  name,
		ProductCode:  name,
		SellingPrice: sellingPrice,
		Quantity:     quantity,
		Unit:         model.UnitPiece,
		CompanyID:    companyID,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func testPrincipal(companyID uuid.UUID) model.Principal {
	return model.Principal{
		UserID:    uuid.New(),
		CompanyID: companyID,
		Type:      model.UserTypeUser,
	}
}

func productQuantity(t *testing.T, db *gorm.DB, id uuid.UUID) int {
	t.Helper()

	var product model.Product
	require.NoError(t, db.First(&product, "id = ?", id).Error)
	return product.Quantity
}

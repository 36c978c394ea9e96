package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Unit enum constants
const (
	UnitKg    = "kg"
	UnitLtr   = "ltr"
	UnitPiece = "piece"
	UnitGm    = "gm"
)

// Product is a sellable catalog item owned by a company. Quantity is the
// available stock and must never go negative; every write to it goes through
// the conditional stock operations on ProductRepository, not through Save.
type Product struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	ProductName  string          `gorm:"type:varchar(255);not null" json:"product_name"`
	ProductCode  string          `gorm:"type:varchar(100);not null" json:"product_code"`
	SellingPrice decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"selling_price"`
	BuyingPrice  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"buying_price"`
	Description  string          `gorm:"type:text" json:"description"`
	Image        string          `gorm:"type:text" json:"image"`
	Quantity     int             `gorm:"type:int;not null;check:quantity >= 0" json:"quantity"`
	Unit         string          `gorm:"type:varchar(10)" json:"unit"` // kg, ltr, piece, gm
	CategoryID   uuid.UUID       `gorm:"type:uuid;index" json:"category_id"`
	Category     *Category       `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	CompanyID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"company_id"`
	Company      *Company        `gorm:"foreignKey:CompanyID" json:"-"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderStatus enum constants
const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// SaleOrderNumberPrefix is prepended to the sale_order sequence value to
// form the human-readable order number.
const SaleOrderNumberPrefix = "SALEORD"

// Sequence names used by the sale order lifecycle. The token sequence is
// scoped to the calendar day; the order sequence is global.
const (
	SeqSaleOrder = "sale_order"
	SeqTokenNo   = "token_no"
)

// SaleOrder is a customer order within a company. Items and Total are only
// mutated through SaleOrderService while the order is pending; completed and
// cancelled orders are immutable. SaleOrderNumber and TokenNo are assigned
// exactly once, on first persistence.
type SaleOrder struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	SaleOrderNumber string          `gorm:"type:varchar(30);uniqueIndex;not null" json:"sale_order_number"`
	TokenNo         string          `gorm:"type:varchar(20);not null" json:"token_no"`
	UserID          uuid.UUID       `gorm:"type:uuid;index" json:"user_id"`
	User            *User           `gorm:"foreignKey:UserID" json:"-"`
	CompanyID       uuid.UUID       `gorm:"type:uuid;not null;index" json:"company_id"`
	Company         *Company        `gorm:"foreignKey:CompanyID" json:"-"`
	Status          string          `gorm:"type:varchar(20);not null" json:"status"` // pending, completed, cancelled
	Items           []SaleOrderItem `gorm:"foreignKey:SaleOrderID" json:"items"`
	Total           decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"total"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func (o *SaleOrder) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// SaleOrderItem is an ordered line entry within a sale order. The same
// product may appear on more than one line: adding products appends, only
// quantity revision merges in place.
type SaleOrderItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"-"`
	SaleOrderID uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	Product     Product   `gorm:"foreignKey:ProductID" json:"-"`
	Quantity    int       `gorm:"type:int;not null" json:"quantity"`
}

func (i *SaleOrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// SequenceCounter backs the named number sequences (sale order number, daily
// token number). Value is only ever changed by the single-statement
// increment in SequenceRepository, so returned values are unique per
// (name, scope_key) even under concurrent order creation.
type SequenceCounter struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name     string    `gorm:"type:varchar(50);not null;uniqueIndex:ux_sequence_counters_name_scope" json:"name"`
	ScopeKey string    `gorm:"type:varchar(20);not null;default:'';uniqueIndex:ux_sequence_counters_name_scope" json:"scope_key"`
	Value    int64     `gorm:"type:bigint;not null;default:0" json:"value"`
}

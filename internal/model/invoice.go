package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Invoice references a completed sale order. It is created exactly once per
// completion (the unique index on sale_order_id backs that guarantee) and is
// immutable afterwards; no update or cancellation path exists.
type Invoice struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	SaleOrderID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex" json:"sale_order_id"`
	SaleOrder   *SaleOrder `gorm:"foreignKey:SaleOrderID" json:"sale_order,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

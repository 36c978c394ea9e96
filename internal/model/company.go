package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Company is the tenant boundary: every product, category, user and sale
// order belongs to exactly one company.
type Company struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyName string          `gorm:"type:varchar(255);not null" json:"company_name"`
	Email       string          `gorm:"type:varchar(255)" json:"email"`
	Address     string          `gorm:"type:text" json:"address"`
	PhoneNumber string          `gorm:"type:varchar(20)" json:"phone_number"`
	Balance     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"balance"`
	Logo        string          `gorm:"type:text" json:"logo"`
	GSTNumber   string          `gorm:"type:varchar(50)" json:"gst_number"`
	Website     string          `gorm:"type:varchar(255)" json:"website"`
	FSSAINumber string          `gorm:"type:varchar(50)" json:"fssai_number"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (c *Company) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

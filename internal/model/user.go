package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserType enum constants
const (
	UserTypeAdmin = "admin"
	UserTypeUser  = "user"
)

// User is an account attached to a company. Type is either admin or user;
// admins manage companies, categories and products.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"type:varchar(255);not null" json:"-"`
	Type      string    `gorm:"type:varchar(20);not null" json:"type"` // admin, user
	CompanyID uuid.UUID `gorm:"type:uuid;index" json:"company_id"`
	Company   *Company  `gorm:"foreignKey:CompanyID" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// Principal is the verified identity produced by the authentication
// middleware and passed explicitly into every service operation. Core logic
// never parses tokens itself.
type Principal struct {
	UserID    uuid.UUID
	CompanyID uuid.UUID
	Type      string
}

// IsSameCompany reports whether the principal belongs to the given company.
func (p Principal) IsSameCompany(companyID uuid.UUID) bool {
	return p.CompanyID == companyID
}

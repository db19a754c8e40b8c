package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CorporateAccount models a company-level billing relationship.
// CurrentBalance is an accruing receivable: it goes UP by the payment amount
// whenever a folio payment is attributed to the account.
type CorporateAccount struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	PropertyID uint `gorm:"index;column:property_id" json:"property_id"`

	Name          string `gorm:"size:255" json:"name"`
	ContactPerson string `gorm:"size:255" json:"contactPerson"`
	Email         string `gorm:"size:150" json:"email"`
	Phone         string `gorm:"size:50" json:"phone"`

	DiscountPercent decimal.Decimal `gorm:"type:decimal(6,3);default:0" json:"discountPercent"`
	CreditLimit     decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"creditLimit"`
	CurrentBalance  decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"currentBalance"`
}

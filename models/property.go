package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Property is the tenancy root: every guest, room, reservation and folio
// belongs to exactly one property. TaxRate and ServiceChargeRate are the
// current percentages applied when charges are posted.
type Property struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name     string `gorm:"size:255;not null" json:"name"`
	Address  string `gorm:"size:500" json:"address"`
	Phone    string `gorm:"size:50" json:"phone"`
	Email    string `gorm:"size:150" json:"email"`
	Timezone string `gorm:"size:64;default:UTC" json:"timezone"`
	Currency string `gorm:"size:3;default:USD" json:"currency"`

	TaxRate           decimal.Decimal `gorm:"type:decimal(6,3);default:0" json:"taxRate"`
	ServiceChargeRate decimal.Decimal `gorm:"type:decimal(6,3);default:0" json:"serviceChargeRate"`
}

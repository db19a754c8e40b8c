package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Folio item types.
const (
	ItemTypeRoom          = "room"
	ItemTypeFoodBeverage  = "food_beverage"
	ItemTypeDiscount      = "discount"
	ItemTypeMiscellaneous = "miscellaneous"
)

// FolioItem is one charge line. Items are never hard-deleted: voiding flips
// the flag, records who/when/why, and reverses the ledger contribution.
// Transfer and split reassign FolioID, so an item belongs to exactly one
// folio at a time.
type FolioItem struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	FolioID uint `gorm:"index;column:folio_id" json:"folio_id"`

	ItemType    string `gorm:"size:32" json:"itemType"`
	Description string `gorm:"size:255" json:"description"`

	Quantity   decimal.Decimal `gorm:"type:decimal(10,2);default:1" json:"quantity"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"unitPrice"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"totalPrice"`
	TaxAmount  decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"taxAmount"`

	ServiceDate *time.Time `json:"serviceDate,omitempty"`

	Voided     bool       `gorm:"default:false" json:"voided"`
	VoidedByID *uint      `gorm:"column:voided_by_id" json:"voidedById,omitempty"`
	VoidedAt   *time.Time `json:"voidedAt,omitempty"`
	VoidReason string     `gorm:"size:255" json:"voidReason,omitempty"`
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	FolioStatusOpen   = "open"
	FolioStatusClosed = "closed"
)

// Folio is one billable account: normally one per reservation, or ad hoc for
// corporate billing. The aggregate columns are maintained by the folio service
// under two identities that must hold after every mutation:
//
//	total_amount = subtotal + tax_amount + service_charge
//	balance      = total_amount - paid_amount
type Folio struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	FolioNumber string `gorm:"column:folio_number;size:32;uniqueIndex" json:"folioNumber"`
	Status      string `gorm:"size:16;default:'open'" json:"status"`

	PropertyID    uint  `gorm:"index;column:property_id" json:"property_id"`
	GuestID       uint  `gorm:"index;column:guest_id" json:"guest_id"`
	ReservationID *uint `gorm:"index;column:reservation_id" json:"reservation_id,omitempty"`

	Subtotal      decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"subtotal"`
	TaxAmount     decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"taxAmount"`
	ServiceCharge decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"serviceCharge"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"totalAmount"`
	PaidAmount    decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"paidAmount"`
	// overpayment legally drives this negative; never clamped
	Balance decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"balance"`

	Guest    Guest       `gorm:"foreignKey:GuestID" json:"guest,omitempty"`
	Items    []FolioItem `gorm:"foreignKey:FolioID" json:"items,omitempty"`
	Payments []Payment   `gorm:"foreignKey:FolioID" json:"payments,omitempty"`
}

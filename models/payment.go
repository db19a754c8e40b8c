package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Payment methods.
const (
	PaymentMethodCash         = "cash"
	PaymentMethodCreditCard   = "credit_card"
	PaymentMethodDebitCard    = "debit_card"
	PaymentMethodBankTransfer = "bank_transfer"
	PaymentMethodOther        = "other"
)

// Payment is never hard-deleted, only voided.
type Payment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	FolioID uint `gorm:"index;column:folio_id" json:"folio_id"`

	Amount    decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"amount"`
	Method    string          `gorm:"size:32" json:"method"`
	Reference string          `gorm:"size:128" json:"reference,omitempty"`

	// when set, the payment accrues onto the corporate account's receivable
	CorporateAccountID *uint `gorm:"index" json:"corporateAccountId,omitempty"`

	Voided     bool       `gorm:"default:false" json:"voided"`
	VoidedByID *uint      `gorm:"column:voided_by_id" json:"voidedById,omitempty"`
	VoidedAt   *time.Time `json:"voidedAt,omitempty"`
	VoidReason string     `gorm:"size:255" json:"voidReason,omitempty"`
}

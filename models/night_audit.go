package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// NightAuditReport is the persisted daily rollup for one property and one
// business date. PaymentsByMethod is a JSON object keyed by payment method.
type NightAuditReport struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time `json:"created_at"`

	PropertyID   uint      `gorm:"index;column:property_id;uniqueIndex:idx_property_business_date" json:"property_id"`
	BusinessDate time.Time `gorm:"column:business_date;uniqueIndex:idx_property_business_date" json:"businessDate"`

	ChargesPosted    decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"chargesPosted"`
	PaymentsReceived decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"paymentsReceived"`
	OpenBalance      decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"openBalance"`

	PaymentsByMethod datatypes.JSON `gorm:"column:payments_by_method" json:"paymentsByMethod,omitempty"`

	RoomsOccupied int `json:"roomsOccupied"`
	RoomsVacant   int `json:"roomsVacant"`
	RoomsDirty    int `json:"roomsDirty"`

	Arrivals   int `json:"arrivals"`
	Departures int `json:"departures"`
	NoShows    int `json:"noShows"`
}

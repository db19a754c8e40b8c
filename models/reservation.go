package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Reservation status values.
// confirmed -> checked_in -> checked_out, confirmed -> cancelled.
// no_show is terminal and only ever set by the night audit.
const (
	ReservationStatusConfirmed  = "confirmed"
	ReservationStatusCheckedIn  = "checked_in"
	ReservationStatusCheckedOut = "checked_out"
	ReservationStatusCancelled  = "cancelled"
	ReservationStatusNoShow     = "no_show"
)

type Reservation struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	PropertyID uint  `gorm:"index;column:property_id" json:"property_id"`
	GuestID    uint  `gorm:"index;column:guest_id" json:"guest_id"`
	Guest      Guest `gorm:"foreignKey:GuestID" json:"guest,omitempty"`

	ReferenceCode string `gorm:"column:reference_code;size:64;index" json:"reference_code,omitempty"`
	Status        string `gorm:"column:status;size:32;default:'confirmed'" json:"status"`

	CheckInDate  *time.Time `gorm:"column:check_in_date" json:"check_in_date,omitempty"`
	CheckOutDate *time.Time `gorm:"column:check_out_date" json:"check_out_date,omitempty"`
	CheckedInAt  *time.Time `gorm:"column:checked_in_at" json:"checkedInAt,omitempty"`
	CheckedOutAt *time.Time `gorm:"column:checked_out_at" json:"checkedOutAt,omitempty"`

	Nights   int `gorm:"column:nights" json:"nights,omitempty"`
	Adults   int `gorm:"column:adults;default:1" json:"adults"`
	Children int `gorm:"column:children;default:0" json:"children"`

	// total for the stay at booking time; extend-stay rescales this
	// proportionally to the night-count delta
	TotalAmount decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"totalAmount"`

	Rooms []ReservationRoom `gorm:"foreignKey:ReservationID" json:"rooms"`
}

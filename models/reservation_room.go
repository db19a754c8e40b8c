package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ReservationRoom is one room slot on a reservation. RoomID stays nil until a
// concrete room is assigned; check-in refuses to proceed while any slot is
// unassigned.
type ReservationRoom struct {
	gorm.Model
	ReservationID uint  `gorm:"index;column:reservation_id" json:"reservation_id"`
	RoomID        *uint `gorm:"index;column:room_id" json:"room_id,omitempty"`

	RoomTypeID  uint            `gorm:"column:room_type_id" json:"room_type_id"`
	NightlyRate decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"nightlyRate"`

	Room     Room     `gorm:"foreignKey:RoomID;references:ID" json:"room,omitempty"`
	RoomType RoomType `gorm:"foreignKey:RoomTypeID;references:ID" json:"roomType,omitempty"`
}

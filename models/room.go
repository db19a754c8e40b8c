package models

import (
	"gorm.io/gorm"
)

// Room status values. Check-in moves a room to occupied, check-out to dirty,
// housekeeping completion back to vacant.
const (
	RoomStatusVacant      = "vacant"
	RoomStatusOccupied    = "occupied"
	RoomStatusDirty       = "dirty"
	RoomStatusMaintenance = "maintenance"
)

type Room struct {
	gorm.Model

	PropertyID uint `gorm:"column:property_id;uniqueIndex:idx_property_room" json:"property_id"`

	// nullable so a room can exist before its type is picked
	RoomTypeID *uint  `json:"roomTypeId,omitempty" gorm:"column:room_type_id"`
	RoomNumber string `json:"roomNumber" gorm:"column:room_number;uniqueIndex:idx_property_room;type:varchar(50)"`

	Status       string `json:"status" gorm:"size:32;default:'vacant'"`
	Floor        string `json:"floor" gorm:"type:varchar(10)"`
	MaxOccupancy int    `json:"maxOccupancy" gorm:"column:max_occupancy"`
	Description  string `json:"description" gorm:"type:text"`

	RoomType RoomType `gorm:"foreignKey:RoomTypeID"`
}

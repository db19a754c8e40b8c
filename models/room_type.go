package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type RoomType struct {
	ID uint `gorm:"primaryKey" json:"id"`

	PropertyID uint `gorm:"index;column:property_id" json:"property_id"`

	TypeName    string          `json:"typeName"`
	Description string          `json:"description"`
	MaxGuests   uint            `json:"max_guests"`
	BaseRate    decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"baseRate"`

	CreatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

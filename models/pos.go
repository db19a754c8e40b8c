package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// POS order status values.
const (
	PosOrderStatusOpen    = "open"
	PosOrderStatusSettled = "settled"
	PosOrderStatusPosted  = "posted_to_folio"
)

// Outlet is a point-of-sale venue (restaurant, bar) within a property.
type Outlet struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	PropertyID uint   `gorm:"index;column:property_id" json:"property_id"`
	Name       string `gorm:"size:255" json:"name"`
	Kind       string `gorm:"size:32" json:"kind"` // restaurant | bar
}

type MenuItem struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	OutletID uint `gorm:"index;column:outlet_id" json:"outlet_id"`

	Name      string          `gorm:"size:255" json:"name"`
	Category  string          `gorm:"size:64" json:"category"`
	Price     decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"price"`
	Available bool            `gorm:"default:true" json:"available"`
}

// PosOrder is one open tab. Settling records the money at the outlet;
// posting sends the total to a room folio as a single food_beverage charge.
type PosOrder struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	PropertyID uint `gorm:"index;column:property_id" json:"property_id"`
	OutletID   uint `gorm:"index;column:outlet_id" json:"outlet_id"`

	TableNumber string `gorm:"size:16" json:"tableNumber,omitempty"`
	Covers      int    `gorm:"default:1" json:"covers"`
	Status      string `gorm:"size:32;default:'open'" json:"status"`

	Total decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"total"`

	// set when the order was posted to a folio instead of settled directly
	FolioID *uint `gorm:"index" json:"folioId,omitempty"`

	Items []PosOrderItem `gorm:"foreignKey:PosOrderID" json:"items,omitempty"`
}

type PosOrderItem struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time

	PosOrderID uint `gorm:"index;column:pos_order_id" json:"pos_order_id"`
	MenuItemID uint `gorm:"index;column:menu_item_id" json:"menu_item_id"`

	Name      string          `gorm:"size:255" json:"name"`
	Quantity  decimal.Decimal `gorm:"type:decimal(10,2);default:1" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"unitPrice"`
	LineTotal decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"lineTotal"`
}

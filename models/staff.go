package models

import (
	"time"

	"gorm.io/gorm"
)

// Staff roles. RoleHousekeeping members are the pool for cleaning-task
// auto-assignment at check-out.
const (
	RoleManager      = "manager"
	RoleFrontDesk    = "front_desk"
	RoleHousekeeping = "housekeeping"
	RolePOS          = "pos"
)

type Staff struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	PropertyID uint `gorm:"index;column:property_id" json:"property_id"`

	FullName   string `gorm:"size:255" json:"full_name"`
	Email      string `gorm:"uniqueIndex;size:150" json:"email"`
	Phone      string `gorm:"size:50" json:"phone"`
	Role       string `gorm:"size:32;index" json:"role"`
	Department string `gorm:"size:64" json:"department"`
	Active     bool   `gorm:"default:true" json:"active"`

	// bcrypt hash, never returned in JSON
	Password string `gorm:"size:255" json:"-"`
}

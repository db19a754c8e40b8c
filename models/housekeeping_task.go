package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	TaskStatusPending    = "pending"
	TaskStatusInProgress = "in_progress"
	TaskStatusCompleted  = "completed"

	TaskTypeCleaning    = "cleaning"
	TaskTypeMaintenance = "maintenance"
)

// HousekeepingTask is a cleaning work item, normally generated per room at
// check-out and assigned to the least-loaded housekeeping staffer.
type HousekeepingTask struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	PropertyID uint `gorm:"index;column:property_id" json:"property_id"`
	RoomID     uint `gorm:"index;column:room_id" json:"room_id"`

	TaskType string `gorm:"size:32;default:'cleaning'" json:"taskType"`
	Status   string `gorm:"size:32;default:'pending';index" json:"status"`
	Notes    string `gorm:"type:text" json:"notes,omitempty"`

	AssignedToID *uint      `gorm:"index;column:assigned_to_id" json:"assignedToId,omitempty"`
	CompletedAt  *time.Time `json:"completedAt,omitempty"`

	Room       Room  `gorm:"foreignKey:RoomID" json:"room,omitempty"`
	AssignedTo Staff `gorm:"foreignKey:AssignedToID" json:"assignedTo,omitempty"`
}

// services/housekeeping_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"pms-backend/models"

	"gorm.io/gorm"
)

type HousekeepingService struct {
	DB *gorm.DB
}

func NewHousekeepingService(db *gorm.DB) *HousekeepingService {
	return &HousekeepingService{DB: db}
}

// LeastLoadedAttendant picks the active housekeeping staffer with the fewest
// pending/in-progress tasks. Staff are walked in id order, so ties go to the
// earliest row. Returns nil when the property has no active housekeepers.
func (s *HousekeepingService) LeastLoadedAttendant(propertyID uint) (*models.Staff, error) {
	var staff []models.Staff
	err := s.DB.
		Where("property_id = ? AND role = ? AND active = ?", propertyID, models.RoleHousekeeping, true).
		Order("id ASC").
		Find(&staff).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load housekeeping staff: %w", err)
	}
	if len(staff) == 0 {
		return nil, nil
	}

	var best *models.Staff
	bestCount := int64(-1)
	for i := range staff {
		var count int64
		err := s.DB.Model(&models.HousekeepingTask{}).
			Where("assigned_to_id = ? AND status IN ?", staff[i].ID,
				[]string{models.TaskStatusPending, models.TaskStatusInProgress}).
			Count(&count).Error
		if err != nil {
			return nil, fmt.Errorf("failed to count tasks for staff %d: %w", staff[i].ID, err)
		}
		if bestCount < 0 || count < bestCount {
			best = &staff[i]
			bestCount = count
		}
	}
	return best, nil
}

// CreateCleaningTask creates a pending cleaning task for a room and
// auto-assigns it to the least-loaded attendant. Used by check-out.
func (s *HousekeepingService) CreateCleaningTask(propertyID, roomID uint, notes string) (*models.HousekeepingTask, error) {
	attendant, err := s.LeastLoadedAttendant(propertyID)
	if err != nil {
		return nil, err
	}

	task := models.HousekeepingTask{
		PropertyID: propertyID,
		RoomID:     roomID,
		TaskType:   models.TaskTypeCleaning,
		Status:     models.TaskStatusPending,
		Notes:      notes,
	}
	if attendant != nil {
		task.AssignedToID = &attendant.ID
	}

	if err := s.DB.Create(&task).Error; err != nil {
		return nil, fmt.Errorf("failed to create housekeeping task: %w", err)
	}
	return &task, nil
}

// StartTask moves a pending task to in_progress.
func (s *HousekeepingService) StartTask(propertyID, taskID uint) error {
	res := s.DB.Model(&models.HousekeepingTask{}).
		Where("id = ? AND property_id = ? AND status = ?", taskID, propertyID, models.TaskStatusPending).
		Update("status", models.TaskStatusInProgress)
	if res.Error != nil {
		return fmt.Errorf("failed to start task: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// CompleteTask finishes a task and returns the room to vacant.
func (s *HousekeepingService) CompleteTask(propertyID, taskID uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var task models.HousekeepingTask
		if err := tx.Where("property_id = ?", propertyID).First(&task, taskID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTaskNotFound
			}
			return fmt.Errorf("failed to load task %d: %w", taskID, err)
		}

		now := time.Now().UTC()
		if err := tx.Model(&task).Updates(map[string]interface{}{
			"status":       models.TaskStatusCompleted,
			"completed_at": now,
		}).Error; err != nil {
			return fmt.Errorf("failed to complete task: %w", err)
		}

		if err := tx.Model(&models.Room{}).
			Where("id = ?", task.RoomID).
			Update("status", models.RoomStatusVacant).Error; err != nil {
			return fmt.Errorf("failed to release room %d: %w", task.RoomID, err)
		}

		return nil
	})
}

// ListTasks returns tasks for a property, optionally filtered by status.
func (s *HousekeepingService) ListTasks(propertyID uint, status string) ([]models.HousekeepingTask, error) {
	q := s.DB.Preload("Room").Preload("AssignedTo").Where("property_id = ?", propertyID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var tasks []models.HousekeepingTask
	if err := q.Order("created_at DESC").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve tasks: %w", err)
	}
	return tasks, nil
}

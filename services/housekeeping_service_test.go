package services

import (
	"testing"

	"pms-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeastLoadedAttendant(t *testing.T) {
	db := newTestDB(t)
	prop := seedProperty(t, db)
	svc := NewHousekeepingService(db)

	// no housekeepers yet
	attendant, err := svc.LeastLoadedAttendant(prop.ID)
	require.NoError(t, err)
	assert.Nil(t, attendant)

	first := seedHousekeeper(t, db, prop.ID, "hk1@example.com")
	second := seedHousekeeper(t, db, prop.ID, "hk2@example.com")

	// tie: earliest row wins
	attendant, err = svc.LeastLoadedAttendant(prop.ID)
	require.NoError(t, err)
	require.NotNil(t, attendant)
	assert.Equal(t, first.ID, attendant.ID)

	// load the first one, the second becomes least loaded
	require.NoError(t, db.Create(&models.HousekeepingTask{
		PropertyID:   prop.ID,
		RoomID:       1,
		TaskType:     models.TaskTypeCleaning,
		Status:       models.TaskStatusPending,
		AssignedToID: &first.ID,
	}).Error)

	attendant, err = svc.LeastLoadedAttendant(prop.ID)
	require.NoError(t, err)
	require.NotNil(t, attendant)
	assert.Equal(t, second.ID, attendant.ID)
}

func TestLeastLoadedAttendantIgnoresCompletedTasks(t *testing.T) {
	db := newTestDB(t)
	prop := seedProperty(t, db)
	svc := NewHousekeepingService(db)

	first := seedHousekeeper(t, db, prop.ID, "hk1@example.com")
	seedHousekeeper(t, db, prop.ID, "hk2@example.com")

	require.NoError(t, db.Create(&models.HousekeepingTask{
		PropertyID:   prop.ID,
		RoomID:       1,
		TaskType:     models.TaskTypeCleaning,
		Status:       models.TaskStatusCompleted,
		AssignedToID: &first.ID,
	}).Error)

	attendant, err := svc.LeastLoadedAttendant(prop.ID)
	require.NoError(t, err)
	require.NotNil(t, attendant)
	assert.Equal(t, first.ID, attendant.ID)
}

func TestTaskLifecycleReleasesRoom(t *testing.T) {
	db := newTestDB(t)
	prop := seedProperty(t, db)
	rt := seedRoomType(t, db, prop.ID, 100)
	room := seedRoom(t, db, prop.ID, rt.ID, "101")
	require.NoError(t, db.Model(&models.Room{}).
		Where("id = ?", room.ID).
		Update("status", models.RoomStatusDirty).Error)

	svc := NewHousekeepingService(db)
	task, err := svc.CreateCleaningTask(prop.ID, room.ID, "post check-out")
	require.NoError(t, err)
	assert.Equal(t, models.TaskStatusPending, task.Status)
	assert.Nil(t, task.AssignedToID)

	require.NoError(t, svc.StartTask(prop.ID, task.ID))

	// starting twice is a no-op target
	err = svc.StartTask(prop.ID, task.ID)
	assert.ErrorIs(t, err, ErrTaskNotFound)

	require.NoError(t, svc.CompleteTask(prop.ID, task.ID))

	var reloaded models.HousekeepingTask
	require.NoError(t, db.First(&reloaded, task.ID).Error)
	assert.Equal(t, models.TaskStatusCompleted, reloaded.Status)
	assert.NotNil(t, reloaded.CompletedAt)

	var cleanRoom models.Room
	require.NoError(t, db.First(&cleanRoom, room.ID).Error)
	assert.Equal(t, models.RoomStatusVacant, cleanRoom.Status)
}

func TestListTasksFiltersByStatus(t *testing.T) {
	db := newTestDB(t)
	prop := seedProperty(t, db)
	rt := seedRoomType(t, db, prop.ID, 100)
	room := seedRoom(t, db, prop.ID, rt.ID, "101")

	svc := NewHousekeepingService(db)
	task, err := svc.CreateCleaningTask(prop.ID, room.ID, "")
	require.NoError(t, err)
	_, err = svc.CreateCleaningTask(prop.ID, room.ID, "")
	require.NoError(t, err)
	require.NoError(t, svc.StartTask(prop.ID, task.ID))

	pending, err := svc.ListTasks(prop.ID, models.TaskStatusPending)
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	all, err := svc.ListTasks(prop.ID, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
